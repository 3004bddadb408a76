package model

// Webhook is a tenant-registered subscription receiving events over HTTP.
type Webhook struct {
	ID        string            `json:"id"`                // Unique ID of a Webhook.
	Version   int64             `json:"version"`           // Version of the Webhook.
	CompanyID string            `json:"company_id"`        // The tenant this Webhook belongs to.
	Name      string            `json:"name"`              // Display name.
	Url       string            `json:"url"`               // The URL events are POSTed to.
	Events    []EventType       `json:"events"`            // List of events to trigger the Webhook.
	Secret    string            `json:"secret,omitempty"`  // Secret used to generate the HMAC-SHA256 signature.
	Headers   map[string]string `json:"headers,omitempty"` // Extra static headers sent on every delivery.
	IsActive  bool              `json:"is_active"`         // Inactive webhooks are never matched.
	CreatedAt int64             `json:"created_at"`        // Unix Time (in second) when the Webhook was created.
	CreatedBy string            `json:"created_by"`        // User who created the Webhook.
	UpdatedAt int64             `json:"updated_at"`        // Unix Time (in second) when the Webhook was last updated.
	UpdatedBy string            `json:"updated_by"`        // User who last updated the Webhook.
	Deleted   bool              `json:"deleted,omitempty"` // Whether the Webhook is deleted.
}

// Subscribes reports whether the webhook receives events of type t.
func (w Webhook) Subscribes(t EventType) bool {
	for _, e := range w.Events {
		if t.MatchedBy(e) {
			return true
		}
	}
	return false
}
