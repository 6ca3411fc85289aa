package models

// AdviceRequest is the body of POST /generate-advice
type AdviceRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// AdviceResponse wraps the model's text verbatim
type AdviceResponse struct {
	Advice string `json:"advice"`
}
