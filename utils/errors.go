package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	MsgPromptRequired  = "Prompt is required"
	MsgAdviceFailed    = "Failed to get advice from AI. Check backend logs."
	MsgRequestTooLarge = "Request body too large"
	MsgNotFound        = "Not found"
)

// ErrorResponse is the JSON body of every API error. It carries a fixed,
// client-safe message only; details stay in the server logs.
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondWithError sends a standardized error response and aborts the chain
func RespondWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: message})
}

// RespondWithBadRequest sends a 400 Bad Request error
func RespondWithBadRequest(c *gin.Context, message string) {
	RespondWithError(c, http.StatusBadRequest, message)
}

// RespondWithNotFound sends a 404 Not Found error
func RespondWithNotFound(c *gin.Context) {
	RespondWithError(c, http.StatusNotFound, MsgNotFound)
}

// RespondWithInternalError sends a 500 Internal Server Error
func RespondWithInternalError(c *gin.Context, message string) {
	RespondWithError(c, http.StatusInternalServerError, message)
}
