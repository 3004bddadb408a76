package crm

import (
	"context"
	"errors"
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/provider"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var activeTicketStatuses = []model.TicketStatus{model.TicketOpen, model.TicketPending}

type messageEvent struct {
	Message    model.Message `json:"message"`
	TicketID   string        `json:"ticket_id"`
	ContactID  string        `json:"contact_id"`
	WhatsAppID string        `json:"whatsapp_id,omitempty"`
	Number     string        `json:"number,omitempty"`
}

type ackEvent struct {
	MessageID string           `json:"message_id"`
	Wid       *string          `json:"wid"`
	TicketID  string           `json:"ticket_id"`
	Ack       model.MessageAck `json:"ack"`
}

// recipient is what a send resolves to before reaching the provider.
type recipient struct {
	number  string
	contact *model.Contact
	ticket  *model.Ticket
}

func (m *_Manager) SendMessage(ctx context.Context, ts int64, req SendMessageRequest) (model.Message, error) {
	if err := ValidateSendMessageRequest(req); err != nil {
		return model.Message{}, err
	}

	conn, err := m.connections.ResolveSender(ctx, req.CompanyID, req.WhatsAppID)
	if err != nil {
		return model.Message{}, err
	}

	rcpt, err := m.resolveRecipient(ctx, req)
	if err != nil {
		return model.Message{}, err
	}

	body := req.Message
	if req.MediaURL != "" && req.Caption != "" {
		body = req.Caption
	}
	result, err := m.sender.Send(ctx, conn, provider.SendRequest{
		To:        rcpt.number,
		Body:      body,
		MediaURL:  req.MediaURL,
		MediaType: req.MediaType,
		FileName:  req.FileName,
	})
	if err != nil {
		if !errors.Is(err, model.ErrSendFailed) {
			err = fmt.Errorf("%s%w", err.Error(), model.ErrSendFailed)
		}
		return model.Message{}, err
	}

	msg := model.Message{
		ID:        util.NewID("msg"),
		CompanyID: req.CompanyID,
		Body:      body,
		FromMe:    true,
		IsRead:    true,
		RemoteJid: util.Ptr(provider.CleanPhone(rcpt.number) + "@s.whatsapp.net"),
		Ack:       model.AckSent,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if result.MessageID != "" {
		msg.Wid = util.Ptr(result.MessageID)
	}
	if req.MediaURL != "" {
		msg.MediaURL = util.Ptr(req.MediaURL)
		msg.MediaType = util.Ptr(string(req.MediaType))
	}
	msg.DataJSON, _ = json.Marshal(map[string]any{"sentFromSystem": true, "provider": result.Provider})

	err = m.withWriteTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		contact, err := m.ensureContact(ctx, tx, ts, req.CompanyID, rcpt, "", conn.ID)
		if err != nil {
			return err
		}
		ticket, err := m.ensureTicket(ctx, tx, ts, contact, rcpt.ticket, conn)
		if err != nil {
			return err
		}

		msg.TicketID = ticket.ID
		msg.ContactID = contact.ID
		if err := m.storage.StoreMessage(ctx, tx, msg); err != nil {
			return err
		}

		ticket.LastMessage = body
		ticket.WhatsAppID = util.Ptr(conn.ID)
		ticket.UpdatedAt = ts
		if err := m.storage.StoreTicket(ctx, tx, ticket); err != nil {
			return err
		}
		contact.LastInteractionAt = util.Ptr(ts)
		contact.UpdatedAt = ts
		if err := m.storage.StoreContact(ctx, tx, contact); err != nil {
			return err
		}

		return m.emit(ctx, tx, req.CompanyID, model.EventMessageSent, ts, messageEvent{
			Message:    msg,
			TicketID:   ticket.ID,
			ContactID:  contact.ID,
			WhatsAppID: conn.ID,
			Number:     contact.Number,
		})
	})
	if err != nil {
		// The provider already delivered the message.
		logrus.Errorf("failed to store sent message %s: %v", lo.FromPtr(msg.Wid), err)
		return model.Message{}, err
	}
	return msg, nil
}

func (m *_Manager) resolveRecipient(ctx context.Context, req SendMessageRequest) (recipient, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return recipient{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	rcpt := recipient{number: req.Number}
	if req.TicketID != "" {
		ticket, err := m.getTicket(ctx, tx, req.CompanyID, req.TicketID)
		if err != nil {
			return recipient{}, err
		}
		rcpt.ticket = &ticket
		contact, err := m.getContact(ctx, tx, req.CompanyID, ticket.ContactID)
		if err != nil && !errors.Is(err, model.ErrContactNotFound) {
			return recipient{}, err
		}
		if err == nil {
			rcpt.contact = &contact
			if rcpt.number == "" {
				rcpt.number = contact.Number
			}
		}
	} else {
		contact, err := m.findContactByNumber(ctx, tx, req.CompanyID, req.Number)
		if err != nil {
			return recipient{}, err
		}
		rcpt.contact = contact
	}

	if provider.CleanPhone(rcpt.number) == "" {
		return recipient{}, model.ErrRecipientUnknown
	}
	return rcpt, nil
}

func (m *_Manager) RecordInbound(ctx context.Context, ts int64, in InboundMessage) (model.Message, bool, error) {
	if in.Connection.CompanyID == "" || in.From == "" {
		return model.Message{}, false, fmt.Errorf("company and sender are required%w", model.ErrInvalidParameter)
	}
	if in.Timestamp == 0 {
		in.Timestamp = ts
	}

	var msg model.Message
	created := false
	err := m.withWriteTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		companyID := in.Connection.CompanyID
		if in.Wid != "" {
			dup, err := m.storage.ListMessage(ctx, tx, storage.ListMessageRequest{Limit: 1, CompanyID: companyID, Wids: []string{in.Wid}})
			if err != nil {
				return err
			}
			if len(dup.Records) > 0 {
				msg = dup.Records[0]
				return nil
			}
		}

		existing, err := m.findContactByNumber(ctx, tx, companyID, in.From)
		if err != nil {
			return err
		}
		contact, err := m.ensureContact(ctx, tx, ts, companyID, recipient{number: in.From, contact: existing}, in.PushName, in.Connection.ID)
		if err != nil {
			return err
		}
		ticket, err := m.ensureTicket(ctx, tx, ts, contact, nil, in.Connection)
		if err != nil {
			return err
		}

		msg = model.Message{
			ID:        util.NewID("msg"),
			CompanyID: companyID,
			TicketID:  ticket.ID,
			ContactID: contact.ID,
			Body:      in.Body,
			RemoteJid: util.Ptr(in.From + "@s.whatsapp.net"),
			Ack:       model.AckPending,
			DataJSON:  in.Data,
			CreatedAt: in.Timestamp,
			UpdatedAt: ts,
		}
		if in.Wid != "" {
			msg.Wid = util.Ptr(in.Wid)
		}
		if in.RawID != "" && in.RawID != in.Wid {
			msg.RawID = util.Ptr(in.RawID)
		}
		if in.MediaURL != "" {
			msg.MediaURL = util.Ptr(in.MediaURL)
		}
		if in.MediaType != "" {
			msg.MediaType = util.Ptr(in.MediaType)
		}
		if err := m.storage.StoreMessage(ctx, tx, msg); err != nil {
			return err
		}

		ticket.LastMessage = in.Body
		ticket.UnreadMessages++
		ticket.UpdatedAt = ts
		if err := m.storage.StoreTicket(ctx, tx, ticket); err != nil {
			return err
		}
		contact.MessagesReceived++
		contact.LastInteractionAt = util.Ptr(ts)
		contact.UpdatedAt = ts
		if err := m.storage.StoreContact(ctx, tx, contact); err != nil {
			return err
		}
		created = true

		return m.emit(ctx, tx, companyID, model.EventMessageReceived, ts, messageEvent{
			Message:    msg,
			TicketID:   ticket.ID,
			ContactID:  contact.ID,
			WhatsAppID: in.Connection.ID,
			Number:     contact.Number,
		})
	})
	if err != nil {
		return model.Message{}, false, err
	}
	return msg, created, nil
}

func (m *_Manager) ApplyAck(ctx context.Context, ts int64, companyID string, providerID string, ack model.MessageAck) ([]model.Message, error) {
	if companyID == "" || providerID == "" {
		return nil, fmt.Errorf("company and provider message id are required%w", model.ErrInvalidParameter)
	}

	var updated []model.Message
	err := m.withWriteTx(ctx, func(ctx context.Context, tx storage.Tx) (err error) {
		updated, err = m.storage.UpdateMessageAck(ctx, tx, companyID, providerID, ack, ts)
		if err != nil {
			return err
		}
		for _, msg := range updated {
			event := ackEvent{MessageID: msg.ID, Wid: msg.Wid, TicketID: msg.TicketID, Ack: ack}
			if err := m.emit(ctx, tx, companyID, model.EventMessageStatusChanged, ts, event); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		logrus.Debugf("no message of company %s matches receipt %s", companyID, providerID)
	}
	return updated, nil
}

func (m *_Manager) findContactByNumber(ctx context.Context, tx storage.Tx, companyID, number string) (*model.Contact, error) {
	digits := provider.CleanPhone(number)
	if digits == "" {
		return nil, nil
	}
	numbers := lo.Uniq([]string{number, digits, provider.NormalizePhone(digits)})
	result, err := m.storage.ListContact(ctx, tx, storage.ListContactRequest{Limit: 1, CompanyID: companyID, Numbers: numbers})
	if err != nil {
		return nil, err
	}
	if len(result.Records) == 0 {
		return nil, nil
	}
	return &result.Records[0], nil
}

// ensureContact returns the contact of the recipient, creating it when it does not exist yet.
func (m *_Manager) ensureContact(ctx context.Context, tx storage.Tx, ts int64, companyID string, rcpt recipient, name string, whatsappID string) (model.Contact, error) {
	if rcpt.contact != nil {
		return *rcpt.contact, nil
	}

	digits := provider.CleanPhone(rcpt.number)
	contact := model.Contact{
		ID:         util.NewID("ctc"),
		CompanyID:  companyID,
		Name:       name,
		Number:     digits,
		WhatsAppID: util.Ptr(whatsappID),
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if contact.Name == "" {
		contact.Name = digits
	}
	if err := m.storage.StoreContact(ctx, tx, contact); err != nil {
		return model.Contact{}, err
	}
	if err := m.emit(ctx, tx, companyID, model.EventContactCreated, ts, contact); err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

// ensureTicket returns the given ticket, else the active ticket of the contact on the connection, else a new pending one.
func (m *_Manager) ensureTicket(ctx context.Context, tx storage.Tx, ts int64, contact model.Contact, ticket *model.Ticket, conn model.Connection) (model.Ticket, error) {
	if ticket != nil {
		return *ticket, nil
	}

	result, err := m.storage.ListTicket(ctx, tx, storage.ListTicketRequest{
		Limit:      1,
		CompanyID:  contact.CompanyID,
		ContactID:  contact.ID,
		WhatsAppID: conn.ID,
		Statuses:   activeTicketStatuses,
	})
	if err != nil {
		return model.Ticket{}, err
	}
	if len(result.Records) > 0 {
		return result.Records[0], nil
	}

	created := model.Ticket{
		ID:         util.NewID("tkt"),
		CompanyID:  contact.CompanyID,
		ContactID:  contact.ID,
		WhatsAppID: util.Ptr(conn.ID),
		Status:     model.TicketPending,
		CreatedAt:  ts,
		UpdatedAt:  ts,
	}
	if conn.DefaultQueueID != "" {
		created.QueueID = util.Ptr(conn.DefaultQueueID)
	}
	if err := m.storage.StoreTicket(ctx, tx, created); err != nil {
		return model.Ticket{}, err
	}
	if err := m.emit(ctx, tx, contact.CompanyID, model.EventTicketCreated, ts, created); err != nil {
		return model.Ticket{}, err
	}
	return created, nil
}
