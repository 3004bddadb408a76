package model

import "github.com/goccy/go-json"

type DeliveryState string

const (
	DeliveryPending         DeliveryState = "PENDING"
	DeliveryInFlight        DeliveryState = "IN_FLIGHT"
	DeliverySucceeded       DeliveryState = "SUCCEEDED"
	DeliveryFailedRetryable DeliveryState = "FAILED_RETRYABLE"
	DeliveryFailedTerminal  DeliveryState = "FAILED_TERMINAL"
)

// Delivery is one queued logical delivery of an event to one webhook.
// Each attempt made for it produces one WebhookLog row.
type Delivery struct {
	RecID         int64         `json:"rec_id"`
	ID            string        `json:"id"`              // Logical delivery ID shared by all attempts.
	WebhookID     string        `json:"webhook_id"`      // Target webhook.
	CompanyID     string        `json:"company_id"`      // Tenant of the webhook.
	EventID       string        `json:"event_id"`        // Source event.
	EventType     EventType     `json:"event_type"`      // Source event type.
	Payload       json.RawMessage `json:"payload"`         // Exact body bytes POSTed on every attempt.
	Attempt       int           `json:"attempt"`         // Number of attempts already made.
	State         DeliveryState `json:"state"`           // PENDING or IN_FLIGHT while queued.
	NextAttemptAt int64         `json:"next_attempt_at"` // Unix Time (in second) the delivery becomes due.
	ClaimedBy     string        `json:"claimed_by"`      // Worker holding the claim.
	ClaimedUntil  int64         `json:"claimed_until"`   // Unix Time (in second) the claim lease ends.
	CreatedAt     int64         `json:"created_at"`
}

// WebhookLog records a single delivery attempt. Rows are never updated.
type WebhookLog struct {
	ID             string          `json:"id"`
	WebhookID      *string         `json:"webhook_id"` // Nil for deliveries not bound to a subscription.
	CompanyID      string          `json:"company_id"`
	DeliveryID     *string         `json:"delivery_id"` // Groups the attempts of one logical delivery. Nil for manual tests.
	EventType      EventType       `json:"event_type"`
	Payload        json.RawMessage `json:"payload"`         // The exact JSON body sent.
	Attempt        int             `json:"attempt"`         // 1-based attempt number.
	Outcome        DeliveryState   `json:"outcome"`         // SUCCEEDED, FAILED_RETRYABLE or FAILED_TERMINAL.
	ResponseStatus *int            `json:"response_status"` // Nil when no HTTP response was received.
	ResponseBody   *string         `json:"response_body"`   // Truncated response body.
	ErrorMessage   *string         `json:"error_message"`   // Set when the attempt did not succeed.
	DurationMs     int64           `json:"duration_ms"`
	NextAttemptAt  *int64          `json:"next_attempt_at"` // Unix Time (in second) of the scheduled retry, if any.
	CreatedAt      int64           `json:"created_at"`      // Unix Time (in second) when the attempt finished.
}
