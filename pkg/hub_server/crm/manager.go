package crm

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/provider"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	"github.com/codatende/webhookhub/pkg/util"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

// Manager owns contacts, tickets and messages of the tenants and raises their domain events.
type Manager interface {
	ListContacts(ctx context.Context, req ListContactRequest) (storage.ListContactResult, error)
	GetContact(ctx context.Context, companyID, id string) (model.Contact, error)
	CreateContact(ctx context.Context, ts int64, req CreateContactRequest) (model.Contact, error)
	UpdateContact(ctx context.Context, ts int64, req UpdateContactRequest) (model.Contact, error)

	ListTickets(ctx context.Context, req ListTicketRequest) (storage.ListTicketResult, error)
	GetTicket(ctx context.Context, req GetTicketRequest) (model.Ticket, error)
	CreateTicket(ctx context.Context, ts int64, req CreateTicketRequest) (model.Ticket, error)
	UpdateTicket(ctx context.Context, ts int64, req UpdateTicketRequest) (model.Ticket, error)

	ListMessages(ctx context.Context, req ListMessageRequest) (storage.ListMessageResult, error)
	SendMessage(ctx context.Context, ts int64, req SendMessageRequest) (model.Message, error)

	// RecordInbound stores a received message. Messages already stored under the same wid are
	// returned with created false and raise no event.
	RecordInbound(ctx context.Context, ts int64, msg InboundMessage) (stored model.Message, created bool, err error)
	// ApplyAck sets the delivery receipt of the messages identified by the provider id.
	ApplyAck(ctx context.Context, ts int64, companyID string, providerID string, ack model.MessageAck) ([]model.Message, error)

	ListQueues(ctx context.Context, companyID string) ([]model.Queue, error)
	ListTags(ctx context.Context, companyID string) ([]model.Tag, error)
	ListUsers(ctx context.Context, req ListRequest) (storage.ListUserResult, error)
}

type _Manager struct {
	storage     storage.CRMStorage
	emitter     webhook.Emitter
	connections connection.Manager
	sender      provider.Sender
}

func NewManager(storage storage.CRMStorage, emitter webhook.Emitter, connections connection.Manager, sender provider.Sender) Manager {
	return &_Manager{
		storage:     storage,
		emitter:     emitter,
		connections: connections,
		sender:      sender,
	}
}

func (m *_Manager) ListContacts(ctx context.Context, req ListContactRequest) (storage.ListContactResult, error) {
	if err := ValidateListRequest(req.ListRequest); err != nil {
		return storage.ListContactResult{}, err
	}

	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return storage.ListContactResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return m.storage.ListContact(ctx, tx, storage.ListContactRequest{
		Offset:    req.Offset,
		Limit:     req.Limit,
		CompanyID: req.CompanyID,
		Search:    req.Search,
	})
}

func (m *_Manager) GetContact(ctx context.Context, companyID, id string) (model.Contact, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return model.Contact{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return m.getContact(ctx, tx, companyID, id)
}

func (m *_Manager) CreateContact(ctx context.Context, ts int64, req CreateContactRequest) (model.Contact, error) {
	if err := ValidateCreateContactRequest(req); err != nil {
		return model.Contact{}, err
	}

	contact := model.Contact{
		ID:        util.NewID("ctc"),
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Number:    req.Number,
		Email:     req.Email,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	err := m.withWriteTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if err := m.storage.StoreContact(ctx, tx, contact); err != nil {
			return err
		}
		return m.emit(ctx, tx, contact.CompanyID, model.EventContactCreated, ts, contact)
	})
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

func (m *_Manager) UpdateContact(ctx context.Context, ts int64, req UpdateContactRequest) (model.Contact, error) {
	if err := ValidateUpdateContactRequest(req); err != nil {
		return model.Contact{}, err
	}

	var contact model.Contact
	err := m.withWriteTx(ctx, func(ctx context.Context, tx storage.Tx) (err error) {
		contact, err = m.getContact(ctx, tx, req.CompanyID, req.ID)
		if err != nil {
			return err
		}
		if req.Name != nil {
			contact.Name = *req.Name
		}
		if req.Number != nil {
			contact.Number = *req.Number
		}
		if req.Email != nil {
			contact.Email = lo.Ternary(*req.Email == "", nil, req.Email)
		}
		contact.UpdatedAt = ts
		if err := m.storage.StoreContact(ctx, tx, contact); err != nil {
			return err
		}
		return m.emit(ctx, tx, contact.CompanyID, model.EventContactUpdated, ts, contact)
	})
	if err != nil {
		return model.Contact{}, err
	}
	return contact, nil
}

func (m *_Manager) ListTickets(ctx context.Context, req ListTicketRequest) (storage.ListTicketResult, error) {
	if err := ValidateListRequest(req.ListRequest); err != nil {
		return storage.ListTicketResult{}, err
	}
	if err := validation.Validate(req.Status, validation.In(ticketStatuses...)); err != nil {
		return storage.ListTicketResult{}, invalid(fmt.Errorf("status: %w", err))
	}

	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return storage.ListTicketResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	listReq := storage.ListTicketRequest{
		Offset:    req.Offset,
		Limit:     req.Limit,
		CompanyID: req.CompanyID,
	}
	if req.Status != "" {
		listReq.Statuses = []model.TicketStatus{req.Status}
	}
	result, err := m.storage.ListTicket(ctx, tx, listReq)
	if err != nil {
		return storage.ListTicketResult{}, err
	}
	if err := m.attachRelations(ctx, tx, req.CompanyID, result.Records); err != nil {
		return storage.ListTicketResult{}, err
	}
	return result, nil
}

func (m *_Manager) GetTicket(ctx context.Context, req GetTicketRequest) (model.Ticket, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return model.Ticket{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ticket, err := m.getTicket(ctx, tx, req.CompanyID, req.ID)
	if err != nil {
		return model.Ticket{}, err
	}
	tickets := []model.Ticket{ticket}
	if err := m.attachRelations(ctx, tx, req.CompanyID, tickets); err != nil {
		return model.Ticket{}, err
	}
	ticket = tickets[0]

	if req.IncludeMessages {
		msgs, err := m.storage.ListMessage(ctx, tx, storage.ListMessageRequest{Limit: 100, CompanyID: req.CompanyID, TicketID: ticket.ID, Ascending: true})
		if err != nil {
			return model.Ticket{}, err
		}
		ticket.Messages = lo.Ternary(msgs.Records == nil, []model.Message{}, msgs.Records)
	}
	return ticket, nil
}

func (m *_Manager) CreateTicket(ctx context.Context, ts int64, req CreateTicketRequest) (model.Ticket, error) {
	if err := ValidateCreateTicketRequest(req); err != nil {
		return model.Ticket{}, err
	}

	ticket := model.Ticket{
		ID:        util.NewID("tkt"),
		CompanyID: req.CompanyID,
		ContactID: req.ContactID,
		QueueID:   req.QueueID,
		Status:    lo.Ternary(req.Status == "", model.TicketOpen, req.Status),
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	err := m.withWriteTx(ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := m.getContact(ctx, tx, req.CompanyID, req.ContactID); err != nil {
			return err
		}
		if err := m.storage.StoreTicket(ctx, tx, ticket); err != nil {
			return err
		}
		return m.emit(ctx, tx, ticket.CompanyID, model.EventTicketCreated, ts, ticket)
	})
	if err != nil {
		return model.Ticket{}, err
	}
	return ticket, nil
}

func (m *_Manager) UpdateTicket(ctx context.Context, ts int64, req UpdateTicketRequest) (model.Ticket, error) {
	if err := ValidateUpdateTicketRequest(req); err != nil {
		return model.Ticket{}, err
	}

	var ticket model.Ticket
	err := m.withWriteTx(ctx, func(ctx context.Context, tx storage.Tx) (err error) {
		ticket, err = m.getTicket(ctx, tx, req.CompanyID, req.ID)
		if err != nil {
			return err
		}
		wasClosed := ticket.Status == model.TicketClosed
		if req.Status != nil {
			ticket.Status = *req.Status
		}
		if req.QueueID != nil {
			ticket.QueueID = lo.Ternary(*req.QueueID == "", nil, req.QueueID)
		}
		if req.UserID != nil {
			ticket.UserID = lo.Ternary(*req.UserID == "", nil, req.UserID)
		}
		ticket.UpdatedAt = ts
		if err := m.storage.StoreTicket(ctx, tx, ticket); err != nil {
			return err
		}

		eventType := model.EventTicketUpdated
		if ticket.Status == model.TicketClosed && !wasClosed {
			eventType = model.EventTicketClosed
		}
		return m.emit(ctx, tx, ticket.CompanyID, eventType, ts, ticket)
	})
	if err != nil {
		return model.Ticket{}, err
	}
	return ticket, nil
}

func (m *_Manager) ListMessages(ctx context.Context, req ListMessageRequest) (storage.ListMessageResult, error) {
	if err := ValidateListRequest(req.ListRequest); err != nil {
		return storage.ListMessageResult{}, err
	}
	if req.TicketID == "" {
		return storage.ListMessageResult{}, fmt.Errorf("ticket_id is required%w", model.ErrInvalidParameter)
	}

	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return storage.ListMessageResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return m.storage.ListMessage(ctx, tx, storage.ListMessageRequest{
		Offset:    req.Offset,
		Limit:     req.Limit,
		CompanyID: req.CompanyID,
		TicketID:  req.TicketID,
	})
}

func (m *_Manager) ListQueues(ctx context.Context, companyID string) ([]model.Queue, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return m.storage.ListQueue(ctx, tx, companyID)
}

func (m *_Manager) ListTags(ctx context.Context, companyID string) ([]model.Tag, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return m.storage.ListTag(ctx, tx, companyID)
}

func (m *_Manager) ListUsers(ctx context.Context, req ListRequest) (storage.ListUserResult, error) {
	if err := ValidateListRequest(req); err != nil {
		return storage.ListUserResult{}, err
	}

	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return storage.ListUserResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return m.storage.ListUser(ctx, tx, storage.ListUserRequest{Offset: req.Offset, Limit: req.Limit, CompanyID: req.CompanyID})
}

// attachRelations loads the contact and queue of each ticket.
func (m *_Manager) attachRelations(ctx context.Context, tx storage.Tx, companyID string, tickets []model.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	contactIDs := lo.Uniq(lo.Map(tickets, func(t model.Ticket, _ int) string { return t.ContactID }))
	contacts, err := m.storage.ListContact(ctx, tx, storage.ListContactRequest{Limit: len(contactIDs), CompanyID: companyID, IDs: contactIDs})
	if err != nil {
		return err
	}
	contactByID := lo.KeyBy(contacts.Records, func(c model.Contact) string { return c.ID })

	var queueByID map[string]model.Queue
	if lo.ContainsBy(tickets, func(t model.Ticket) bool { return t.QueueID != nil }) {
		queues, err := m.storage.ListQueue(ctx, tx, companyID)
		if err != nil {
			return err
		}
		queueByID = lo.KeyBy(queues, func(q model.Queue) string { return q.ID })
	}

	for i := range tickets {
		if c, ok := contactByID[tickets[i].ContactID]; ok {
			tickets[i].Contact = util.Ptr(c)
		}
		if tickets[i].QueueID != nil {
			if q, ok := queueByID[*tickets[i].QueueID]; ok {
				tickets[i].Queue = util.Ptr(q)
			}
		}
	}
	return nil
}

func (m *_Manager) getContact(ctx context.Context, tx storage.Tx, companyID, id string) (model.Contact, error) {
	result, err := m.storage.ListContact(ctx, tx, storage.ListContactRequest{Limit: 1, CompanyID: companyID, IDs: []string{id}})
	if err != nil {
		return model.Contact{}, err
	}
	if len(result.Records) == 0 {
		return model.Contact{}, model.ErrContactNotFound
	}
	return result.Records[0], nil
}

func (m *_Manager) getTicket(ctx context.Context, tx storage.Tx, companyID, id string) (model.Ticket, error) {
	result, err := m.storage.ListTicket(ctx, tx, storage.ListTicketRequest{Limit: 1, CompanyID: companyID, IDs: []string{id}})
	if err != nil {
		return model.Ticket{}, err
	}
	if len(result.Records) == 0 {
		return model.Ticket{}, model.ErrTicketNotFound
	}
	return result.Records[0], nil
}

func (m *_Manager) emit(ctx context.Context, tx storage.Tx, companyID string, eventType model.EventType, ts int64, data any) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	event := model.Event{
		CompanyID:  companyID,
		Type:       eventType,
		Data:       raw,
		OccurredAt: ts,
	}
	if _, err := m.emitter.EmitWithTx(ctx, tx, event); err != nil {
		return fmt.Errorf("emit %s: %w", eventType, err)
	}
	return nil
}

func (m *_Manager) withWriteTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
