package middleware

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Error codes of the external API envelope.
const (
	CodeAuthRequired  = "AUTH_REQUIRED"
	CodeInvalidKey    = "INVALID_KEY"
	CodeKeyExpired    = "KEY_EXPIRED"
	CodeForbidden     = "FORBIDDEN"
	CodeValidation    = "VALIDATION_ERROR"
	CodeNotFound      = "NOT_FOUND"
	CodeNoConnection  = "NO_CONNECTION"
	CodeSendFailed    = "SEND_FAILED"
	CodeRateLimited   = "RATE_LIMITED"
	CodeInternalError = "INTERNAL_ERROR"
)

type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// WriteError answers with the failure envelope of the external API.
func WriteError(w http.ResponseWriter, status int, code string, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(ErrorEnvelope{Success: false, Error: message, Code: code}); err != nil {
		logrus.Warnf("failed to encode/write error response: %v", err)
	}
}
