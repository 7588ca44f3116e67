package handler

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"docorch/internal/domain"
	"docorch/internal/middleware"
	"docorch/internal/parser"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var rlErr *parser.RateLimitError
	switch {
	case errors.Is(err, domain.ErrQuestionRequired):
		return http.StatusBadRequest, "QUESTION_REQUIRED", "please upload a file and enter a question"
	case errors.Is(err, domain.ErrEmptyDocument):
		return http.StatusBadRequest, "DOCUMENT_REQUIRED", "please upload a file and enter a question"
	case errors.Is(err, domain.ErrRecipientRequired):
		return http.StatusBadRequest, "RECIPIENT_REQUIRED", "recipient email is required"
	case errors.Is(err, domain.ErrUnsupportedExport):
		return http.StatusBadRequest, "UNSUPPORTED_EXPORT_FORMAT", "unsupported export format; allowed: csv, xlsx"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrExtractionFailed):
		return http.StatusUnprocessableEntity, "EXTRACTION_FAILED", withCause("could not extract text from the document", err)
	case errors.As(err, &rlErr):
		return http.StatusTooManyRequests, "LLM_RATE_LIMITED", "the language model provider is rate limiting requests"
	case errors.Is(err, domain.ErrLLMUnavailable):
		return http.StatusBadGateway, "LLM_UNAVAILABLE", withCause("the language model request failed", err)
	case errors.Is(err, domain.ErrWebhookFailed):
		return http.StatusBadGateway, "WEBHOOK_FAILED", withCause("the automation webhook could not be reached", err)
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, "SESSION_NOT_FOUND", "session not found"
	case errors.Is(err, domain.ErrSessionEmpty):
		return http.StatusConflict, "SESSION_EMPTY", "no extraction yet; run extract first"
	case errors.Is(err, domain.ErrSessionBusy):
		return http.StatusConflict, "SESSION_BUSY", "the same action is already running for this session"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// withCause appends the error text to msg. URL errors are reduced to their cause so the
// configured webhook URL never reaches the client.
func withCause(msg string, err error) string {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		err = urlErr.Err
	}
	return msg + ": " + strings.ReplaceAll(err.Error(), "\n", "; ")
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var rlErr *parser.RateLimitError
	if errors.As(err, &rlErr) {
		c.Header("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
	}
	if status >= 500 {
		zap.L().Error("handler: request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.Int("status", status),
			zap.Error(err))
	}
	RespondError(c, status, code, msg)
}
