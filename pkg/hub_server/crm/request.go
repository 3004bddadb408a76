package crm

import (
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/provider"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/goccy/go-json"
)

type ListRequest struct {
	CompanyID string `json:"company_id"`
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
}

type ListContactRequest struct {
	ListRequest
	Search string `json:"search"`
}

type CreateContactRequest struct {
	CompanyID string  `json:"company_id"`
	Name      string  `json:"name"`
	Number    string  `json:"number"`
	Email     *string `json:"email"`
}

type UpdateContactRequest struct {
	CompanyID string  `json:"company_id"`
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	Number    *string `json:"number"`
	Email     *string `json:"email"`
}

type ListTicketRequest struct {
	ListRequest
	Status model.TicketStatus `json:"status"`
}

type GetTicketRequest struct {
	CompanyID       string `json:"company_id"`
	ID              string `json:"id"`
	IncludeMessages bool   `json:"include_messages"`
}

type CreateTicketRequest struct {
	CompanyID string             `json:"company_id"`
	ContactID string             `json:"contact_id"`
	QueueID   *string            `json:"queue_id"`
	Status    model.TicketStatus `json:"status"`
}

type UpdateTicketRequest struct {
	CompanyID string              `json:"company_id"`
	ID        string              `json:"id"`
	Status    *model.TicketStatus `json:"status"`
	QueueID   *string             `json:"queue_id"`
	UserID    *string             `json:"user_id"`
}

type ListMessageRequest struct {
	ListRequest
	TicketID string `json:"ticket_id"`
}

type SendMessageRequest struct {
	CompanyID  string             `json:"company_id"`
	Number     string             `json:"number"`
	TicketID   string             `json:"ticket_id"`
	WhatsAppID string             `json:"whatsapp_id"`
	Message    string             `json:"message"`
	MediaURL   string             `json:"media_url"`
	MediaType  provider.MediaType `json:"media_type"`
	FileName   string             `json:"file_name"`
	Caption    string             `json:"caption"`
}

// InboundMessage is a message received by a connection, already normalized from the provider payload.
type InboundMessage struct {
	Connection model.Connection
	From       string // Digits of the sender number.
	PushName   string
	Wid        string
	RawID      string
	Body       string
	MediaURL   string
	MediaType  string
	Data       json.RawMessage
	Timestamp  int64
}

var ticketStatuses = []interface{}{model.TicketOpen, model.TicketPending, model.TicketClosed}

var mediaTypes = []interface{}{provider.MediaImage, provider.MediaVideo, provider.MediaAudio, provider.MediaDocument}

func invalid(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
}

func ValidateListRequest(req ListRequest) error {
	return invalid(validation.ValidateStruct(&req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Offset, validation.Min(0)),
		validation.Field(&req.Limit, validation.Required, validation.Min(1)),
	))
}

func ValidateCreateContactRequest(req CreateContactRequest) error {
	return invalid(validation.ValidateStruct(&req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Number, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Email, validation.NilOrNotEmpty, is.EmailFormat),
	))
}

func ValidateUpdateContactRequest(req UpdateContactRequest) error {
	return invalid(validation.ValidateStruct(&req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Number, validation.NilOrNotEmpty, validation.Length(1, 64)),
		validation.Field(&req.Email, is.EmailFormat),
	))
}

func ValidateCreateTicketRequest(req CreateTicketRequest) error {
	return invalid(validation.ValidateStruct(&req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.ContactID, validation.Required),
		validation.Field(&req.Status, validation.In(ticketStatuses...)),
	))
}

func ValidateUpdateTicketRequest(req UpdateTicketRequest) error {
	return invalid(validation.ValidateStruct(&req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.Status, validation.NilOrNotEmpty, validation.In(ticketStatuses...)),
	))
}

func ValidateSendMessageRequest(req SendMessageRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Message, validation.When(req.MediaURL == "", validation.Required)),
		validation.Field(&req.Number, validation.When(req.TicketID == "", validation.Required.Error("number or ticket_id is required"))),
		validation.Field(&req.MediaURL, is.URL),
		validation.Field(&req.MediaType, validation.In(mediaTypes...)),
	)
	return invalid(err)
}
