package model

import (
	"strings"

	"github.com/goccy/go-json"
)

type EventType string

const (
	EventMessageReceived         EventType = "message.received"
	EventMessageSent             EventType = "message.sent"
	EventMessageStatusChanged    EventType = "message.status_changed"
	EventTicketCreated           EventType = "ticket.created"
	EventTicketUpdated           EventType = "ticket.updated"
	EventTicketClosed            EventType = "ticket.closed"
	EventContactCreated          EventType = "contact.created"
	EventContactUpdated          EventType = "contact.updated"
	EventCampaignStarted         EventType = "campaign.started"
	EventCampaignCompleted       EventType = "campaign.completed"
	EventWhatsAppConnected       EventType = "whatsapp.connected"
	EventWhatsAppDisconnected    EventType = "whatsapp.disconnected"
	EventConnectionStatusChanged EventType = "connection.status_changed"
	EventExternalAny             EventType = "external.*"

	// EventTest is only produced by the manual test trigger and never matched against subscriptions.
	EventTest EventType = "test"
)

const externalEventPrefix = "external."

// SubscribableEventTypes lists every value a subscription may register for.
var SubscribableEventTypes = []EventType{
	EventMessageReceived,
	EventMessageSent,
	EventMessageStatusChanged,
	EventTicketCreated,
	EventTicketUpdated,
	EventTicketClosed,
	EventContactCreated,
	EventContactUpdated,
	EventCampaignStarted,
	EventCampaignCompleted,
	EventWhatsAppConnected,
	EventWhatsAppDisconnected,
	EventConnectionStatusChanged,
	EventExternalAny,
}

// IsExternal reports whether the type belongs to the integrator-defined "external." namespace.
func (t EventType) IsExternal() bool {
	return strings.HasPrefix(string(t), externalEventPrefix) && len(t) > len(externalEventPrefix) && t != EventExternalAny
}

// Emittable reports whether an event of this type may be raised by domain code.
func (t EventType) Emittable() bool {
	if t.IsExternal() {
		return true
	}
	for _, known := range SubscribableEventTypes {
		if known == t && t != EventExternalAny {
			return true
		}
	}
	return false
}

// MatchedBy reports whether a subscription registered for `registered` receives events of type t.
func (t EventType) MatchedBy(registered EventType) bool {
	if registered == t {
		return true
	}
	return registered == EventExternalAny && t.IsExternal()
}

// Event is a domain event raised inside the platform and fanned out to subscriptions.
type Event struct {
	ID         string          `json:"id"`          // Unique ID of the event.
	CompanyID  string          `json:"company_id"`  // Tenant the event belongs to.
	Type       EventType       `json:"type"`        // Type of the event.
	Data       json.RawMessage `json:"data"`        // Event payload, always a JSON object.
	OccurredAt int64           `json:"occurred_at"` // Unix Time (in second) when the event happened.
}

// DeliveryPayload is the body POSTed to a subscription.
type DeliveryPayload struct {
	Event     EventType       `json:"event"`
	Data      json.RawMessage `json:"data"`
	Timestamp string          `json:"timestamp"`
	WebhookID string          `json:"webhook_id,omitempty"`
}
