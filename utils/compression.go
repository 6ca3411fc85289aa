package utils

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
)

// CompressionAlgorithm is a Content-Encoding token
type CompressionAlgorithm string

const (
	CompressionNone   CompressionAlgorithm = "identity"
	CompressionGzip   CompressionAlgorithm = "gzip"
	CompressionBrotli CompressionAlgorithm = "br"
)

// MinCompressSize is the body size below which compression is skipped
const MinCompressSize = 1024

// CompressData compresses data using the specified algorithm
func CompressData(data []byte, algorithm CompressionAlgorithm) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}

	var buf bytes.Buffer
	var writer io.WriteCloser

	switch algorithm {
	case CompressionNone:
		return data, nil
	case CompressionGzip:
		writer = gzip.NewWriter(&buf)
	case CompressionBrotli:
		writer = brotli.NewWriterLevel(&buf, brotli.DefaultCompression)
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
	}

	if _, err := writer.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write to %s writer: %w", algorithm, err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s writer: %w", algorithm, err)
	}
	return buf.Bytes(), nil
}

// DecompressData decompresses data using the specified algorithm
func DecompressData(compressed []byte, algorithm CompressionAlgorithm) ([]byte, error) {
	if len(compressed) == 0 {
		return compressed, nil
	}

	var reader io.Reader
	switch algorithm {
	case CompressionNone:
		return compressed, nil
	case CompressionGzip:
		gz, err := gzip.NewReader(bytes.NewReader(compressed))
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	case CompressionBrotli:
		reader = brotli.NewReader(bytes.NewReader(compressed))
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", algorithm)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read from %s reader: %w", algorithm, err)
	}
	return data, nil
}

// NegotiateEncoding picks br, then gzip, from an Accept-Encoding header.
// Codings with q=0 are treated as refused.
func NegotiateEncoding(acceptEncoding string) CompressionAlgorithm {
	accepted := map[string]bool{}
	for _, item := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(item), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		accepted[name] = qualityOf(params) > 0
	}

	switch {
	case accepted[string(CompressionBrotli)]:
		return CompressionBrotli
	case accepted[string(CompressionGzip)]:
		return CompressionGzip
	default:
		return CompressionNone
	}
}

func qualityOf(params string) float64 {
	for _, p := range strings.Split(params, ";") {
		key, value, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || strings.TrimSpace(key) != "q" {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return q
	}
	return 1
}
