package model

import (
	"errors"
	"fmt"
	"net/http"
)

var ErrInvalidParameter = errors.New("")  // Base error for invalid parameter
var ErrNotFound = errors.New("")          // Base error for missing records
var ErrConflict = errors.New("")          // Base error for state conflicts
var ErrWebhookError = errors.New("")      // Base error for Webhook
var ErrConnectionError = errors.New("")   // Base error for WhatsApp connection
var ErrCRMError = errors.New("")          // Base error for contacts, tickets and messages
var ErrSignupError = errors.New("")       // Base error for embedded signup
var ErrVerificationError = errors.New("") // Base error for inbound provider verification

// Webhook errors
var ErrWebhookNotFound = fmt.Errorf("webhook not found%w%w", ErrWebhookError, ErrNotFound)
var ErrWebhookUnreachable = fmt.Errorf("webhook unreachable%w", ErrWebhookError)
var ErrUnknownEventType = fmt.Errorf("unknown event type%w%w", ErrWebhookError, ErrInvalidParameter)

// Connection errors
var ErrConnectionNotFound = fmt.Errorf("whatsapp connection not found%w%w", ErrConnectionError, ErrNotFound)
var ErrConnectionNotConnected = fmt.Errorf("whatsapp connection is not connected%w", ErrConnectionError)
var ErrNoConnection = fmt.Errorf("no connected whatsapp found%w", ErrConnectionError)
var ErrInvalidTransition = fmt.Errorf("invalid connection status transition%w%w", ErrConnectionError, ErrConflict)
var ErrUnsupportedProvider = fmt.Errorf("unsupported provider%w", ErrConnectionError)
var ErrSendFailed = fmt.Errorf("failed to send message%w", ErrConnectionError)

// CRM errors
var ErrContactNotFound = fmt.Errorf("contact not found%w%w", ErrCRMError, ErrNotFound)
var ErrTicketNotFound = fmt.Errorf("ticket not found%w%w", ErrCRMError, ErrNotFound)
var ErrRecipientUnknown = fmt.Errorf("could not determine recipient number%w%w", ErrCRMError, ErrInvalidParameter)

// Signup errors
var ErrSignupSessionNotFound = fmt.Errorf("signup session not found%w%w", ErrSignupError, ErrNotFound)
var ErrSignupTimeout = fmt.Errorf("signup signals not correlated in time%w", ErrSignupError)
var ErrSignupCancelled = fmt.Errorf("signup cancelled by user%w", ErrSignupError)

// Inbound verification errors
var ErrVerifyTokenMismatch = fmt.Errorf("verify token mismatch%w", ErrVerificationError)
var ErrSignatureMismatch = fmt.Errorf("payload signature mismatch%w", ErrVerificationError)
var ErrUnknownChannel = fmt.Errorf("unknown channel%w", ErrVerificationError)

// ErrorToHttpStatus maps an error chain onto the HTTP status reported to clients.
func ErrorToHttpStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidParameter):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrVerificationError):
		return http.StatusUnauthorized
	case errors.Is(err, ErrSignupTimeout), errors.Is(err, ErrSignupCancelled):
		return http.StatusConflict
	case errors.Is(err, ErrNoConnection), errors.Is(err, ErrConnectionNotConnected):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
