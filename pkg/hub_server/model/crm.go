package model

import "github.com/goccy/go-json"

type TicketStatus string

const (
	TicketOpen    TicketStatus = "open"
	TicketPending TicketStatus = "pending"
	TicketClosed  TicketStatus = "closed"
)

// MessageAck mirrors the WhatsApp delivery receipt level of a message.
type MessageAck int

const (
	AckFailed    MessageAck = -1
	AckPending   MessageAck = 0
	AckSent      MessageAck = 1
	AckDelivered MessageAck = 2
	AckRead      MessageAck = 3
)

type Contact struct {
	ID                string  `json:"id"`
	CompanyID         string  `json:"company_id"`
	Name              string  `json:"name"`
	Number            string  `json:"number"`
	Email             *string `json:"email"`
	WhatsAppID        *string `json:"whatsapp_id"`
	MessagesReceived  int     `json:"messages_received"`
	LastInteractionAt *int64  `json:"last_interaction_at"`
	CreatedAt         int64   `json:"created_at"`
	UpdatedAt         int64   `json:"updated_at"`
}

type Ticket struct {
	ID             string       `json:"id"`
	CompanyID      string       `json:"company_id"`
	ContactID      string       `json:"contact_id"`
	WhatsAppID     *string      `json:"whatsapp_id"`
	QueueID        *string      `json:"queue_id"`
	UserID         *string      `json:"user_id"`
	Status         TicketStatus `json:"status"`
	LastMessage    string       `json:"last_message"`
	UnreadMessages int          `json:"unread_messages"`
	CreatedAt      int64        `json:"created_at"`
	UpdatedAt      int64        `json:"updated_at"`

	Contact  *Contact  `json:"contact,omitempty"`
	Queue    *Queue    `json:"queue,omitempty"`
	Messages []Message `json:"messages,omitempty"`
}

type Message struct {
	ID        string          `json:"id"`
	CompanyID string          `json:"company_id"`
	TicketID  string          `json:"ticket_id"`
	ContactID string          `json:"contact_id"`
	Body      string          `json:"body"`
	FromMe    bool            `json:"from_me"`
	IsRead    bool            `json:"is_read"`
	Wid       *string         `json:"wid"`        // Provider message ID used for de-duplication and receipts.
	RawID     *string         `json:"-"`          // Provider envelope ID when it differs from Wid.
	RemoteJid *string         `json:"remote_jid"` // Sender address as given by the provider.
	MediaURL  *string         `json:"media_url"`
	MediaType *string         `json:"media_type"`
	Ack       MessageAck      `json:"ack"`
	DataJSON  json.RawMessage `json:"data_json,omitempty"`
	CreatedAt int64           `json:"created_at"`
	UpdatedAt int64           `json:"updated_at"`
}

type Queue struct {
	ID                string `json:"id"`
	CompanyID         string `json:"-"`
	Name              string `json:"name"`
	Color             string `json:"color"`
	GreetingMessage   string `json:"greeting_message,omitempty"`
	OutOfHoursMessage string `json:"out_of_hours_message,omitempty"`
	OrderQueue        int    `json:"order_queue"`
}

type Tag struct {
	ID        string `json:"id"`
	CompanyID string `json:"-"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	Kanban    bool   `json:"kanban"`
}

type User struct {
	ID        string `json:"id"`
	CompanyID string `json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Profile   string `json:"profile"`
	Online    bool   `json:"online"`
}
