package ai

import (
	"context"
	"errors"
	"strings"
	"time"

	"studentvoice-backend/internal/logger"
	"studentvoice-backend/internal/telemetry"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/option"

	genai "github.com/google/generative-ai-go/genai"
)

// ErrNoCandidates is returned when Gemini answers without any candidate text.
var ErrNoCandidates = errors.New("gemini returned no candidates")

// contentGenerator is the slice of *genai.GenerativeModel the client uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

type GeminiClient struct {
	client    *genai.Client
	model     contentGenerator
	modelName string
	breaker   *gobreaker.CircuitBreaker
	metrics   *telemetry.Metrics
}

func NewGeminiClient(ctx context.Context, apiKey, modelName string, metrics *telemetry.Metrics) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	gc := newGeminiClient(client.GenerativeModel(modelName), modelName, metrics)
	gc.client = client
	return gc, nil
}

func newGeminiClient(model contentGenerator, modelName string, metrics *telemetry.Metrics) *GeminiClient {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "GeminiAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		// Canceled calls are not failures.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "name", name, "from", from.String(), "to", to.String())
			metrics.RecordCircuitBreakerState(name, to.String())
		},
	})

	return &GeminiClient{
		model:     model,
		modelName: modelName,
		breaker:   breaker,
		metrics:   metrics,
	}
}

// GenerateAdvice sends prompt to the configured model and returns the text of
// the first candidate. There is no retry; an open breaker fails immediately.
func (gc *GeminiClient) GenerateAdvice(ctx context.Context, prompt string) (string, error) {
	tracer := otel.Tracer("gemini-client")
	ctx, span := tracer.Start(ctx, "gemini.generate_content")
	defer span.End()

	span.SetAttributes(
		attribute.String("gemini.model", gc.modelName),
		attribute.Int("gemini.prompt_length", len(prompt)),
	)

	result, err := gc.breaker.Execute(func() (interface{}, error) {
		resp, err := gc.model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return nil, err
		}
		return responseText(resp)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			span.SetAttributes(attribute.Bool("gemini.circuit_breaker_open", true))
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "gemini request failed")
		return "", err
	}

	text := result.(generated)
	if text.tokens > 0 {
		gc.metrics.RecordTokensUsed(int64(text.tokens), gc.modelName)
		span.SetAttributes(attribute.Int("gemini.actual_tokens", text.tokens))
	}
	span.SetAttributes(attribute.Bool("gemini.success", true))
	return text.text, nil
}

type generated struct {
	text   string
	tokens int
}

// responseText concatenates the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (generated, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return generated{}, ErrNoCandidates
	}

	var b strings.Builder
	if content := resp.Candidates[0].Content; content != nil {
		for _, part := range content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}

	out := generated{text: b.String()}
	if resp.UsageMetadata != nil {
		out.tokens = int(resp.UsageMetadata.TotalTokenCount)
	}
	return out, nil
}

// Close the client
func (gc *GeminiClient) Close() error {
	if gc.client != nil {
		return gc.client.Close()
	}
	return nil
}
