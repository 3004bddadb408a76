package storage

import (
	"context"
	"database/sql"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
)

type StorageContextKey string

const (
	TRANSACTION StorageContextKey = "transaction"
)

type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (Result, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

type Rows interface {
	Close()
	Err() error
	Next() bool
	Scan(dest ...any) error
}

type Row interface {
	Scan(dest ...any) error
}

type Result interface {
	// RowsAffected returns the number of rows affected by an
	// update, insert, or delete.
	RowsAffected() (int64, error)
}

type CreateTxOption func(*sql.TxOptions)

type TransactionInterface interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
}

func TxOptionWithWrite(write bool) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.ReadOnly = !write
	}
}

func TxOptionWithIsolationLevel(level sql.IsolationLevel) CreateTxOption {
	return func(option *sql.TxOptions) {
		option.Isolation = level
	}
}

// ListWebhookRequest is the request to list webhooks.
type ListWebhookRequest struct {
	Offset int `json:"offset"` // Offset of the webhooks to be listed.
	Limit  int `json:"limit"`  // Limit of the webhooks to be listed.

	// Filters
	CompanyID  string            `json:"company_id"`  // The tenant the webhooks belong to.
	IDs        []string          `json:"ids"`         // The IDs of the webhooks.
	Events     []model.EventType `json:"events"`      // Webhooks registered for all of these events.
	ActiveOnly bool              `json:"active_only"` // Only return active webhooks.
}

// ListWebhookResult is the result of listing webhooks.
type ListWebhookResult struct {
	Total   int             `json:"total"`   // Total number of webhooks.
	Records []model.Webhook `json:"records"` // Records of webhook.
}

// ListWebhookLogRequest is the request to list delivery attempt logs.
type ListWebhookLogRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	// Filters
	CompanyID  string                `json:"company_id"`
	WebhookIDs []string              `json:"webhook_ids"`
	DeliveryID string                `json:"delivery_id"`
	EventTypes []model.EventType     `json:"event_types"`
	Outcomes   []model.DeliveryState `json:"outcomes"`
}

type ListWebhookLogResult struct {
	Total   int                `json:"total"`
	Records []model.WebhookLog `json:"records"`
}

// ClaimDeliveryRequest describes one at-most-once dequeue of due deliveries.
type ClaimDeliveryRequest struct {
	WorkerID   string // Worker taking ownership.
	Now        int64  // Deliveries with next_attempt_at <= Now are due.
	LeaseUntil int64  // The claim expires at this Unix Time (in second).
	BatchSize  int    // Maximum number of deliveries to claim.
}

type WebhookStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	AddWebhook(ctx context.Context, tx Tx, webhook model.Webhook) error
	ListWebhook(ctx context.Context, tx Tx, req ListWebhookRequest) (ListWebhookResult, error)
	PurgeWebhookDeliveries(ctx context.Context, tx Tx, webhookID string) (int64, error)
	AddWebhookLog(ctx context.Context, tx Tx, log model.WebhookLog) error
	ListWebhookLog(ctx context.Context, tx Tx, req ListWebhookLogRequest) (ListWebhookLogResult, error)
}

type DeliveryStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	ListWebhook(ctx context.Context, tx Tx, req ListWebhookRequest) (ListWebhookResult, error)
	AddDeliveries(ctx context.Context, tx Tx, deliveries ...model.Delivery) error
	ClaimDeliveries(ctx context.Context, tx Tx, req ClaimDeliveryRequest) ([]model.Delivery, error)
	// RescheduleDelivery and CompleteDelivery only touch a delivery still claimed by workerID.
	// They report false when the claim was lost to another worker.
	RescheduleDelivery(ctx context.Context, tx Tx, recID int64, workerID string, attempt int, nextAttemptAt int64) (bool, error)
	CompleteDelivery(ctx context.Context, tx Tx, recID int64, workerID string) (bool, error)
	AddWebhookLog(ctx context.Context, tx Tx, log model.WebhookLog) error
}

type MaintenanceStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	ReleaseExpiredClaims(ctx context.Context, tx Tx, now int64) (int64, error)
	DeleteWebhookLogBefore(ctx context.Context, tx Tx, ts int64) (int64, error)
	DeleteAPILogBefore(ctx context.Context, tx Tx, ts int64) (int64, error)
}

// ListAPILogRequest is the request to list external API audit logs.
type ListAPILogRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	// Filters
	CompanyID string   `json:"company_id"`
	TokenIDs  []string `json:"token_ids"`
	Statuses  []int    `json:"statuses"`
}

type ListAPILogResult struct {
	Total   int            `json:"total"`
	Records []model.APILog `json:"records"`
}

type APILogStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	AddAPILog(ctx context.Context, tx Tx, log model.APILog) error
	ListAPILog(ctx context.Context, tx Tx, req ListAPILogRequest) (ListAPILogResult, error)
}

// ListConnectionRequest is the request to list WhatsApp connections.
type ListConnectionRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	// Filters
	CompanyID       string                   `json:"company_id"`
	IDs             []string                 `json:"ids"`
	Statuses        []model.ConnectionStatus `json:"statuses"`
	PhoneNumberID   string                   `json:"phone_number_id"`
	WabaID          string                   `json:"waba_id"`
	ChannelTokenSum string                   `json:"channel_token_sum"`
	DefaultOnly     bool                     `json:"default_only"`
}

type ListConnectionResult struct {
	Total   int                `json:"total"`
	Records []model.Connection `json:"records"`
}

type ConnectionStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)
	StoreConnection(ctx context.Context, tx Tx, conn model.Connection) error
	ListConnection(ctx context.Context, tx Tx, req ListConnectionRequest) (ListConnectionResult, error)
	ClearDefaultConnection(ctx context.Context, tx Tx, companyID string, exceptID string) error
}

type ListContactRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	// Filters
	CompanyID string   `json:"company_id"`
	IDs       []string `json:"ids"`
	Numbers   []string `json:"numbers"`
	Search    string   `json:"search"` // Case-insensitive match on name or number.
}

type ListContactResult struct {
	Total   int             `json:"total"`
	Records []model.Contact `json:"records"`
}

type ListTicketRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	// Filters
	CompanyID  string               `json:"company_id"`
	IDs        []string             `json:"ids"`
	ContactID  string               `json:"contact_id"`
	WhatsAppID string               `json:"whatsapp_id"`
	Statuses   []model.TicketStatus `json:"statuses"`
}

type ListTicketResult struct {
	Total   int            `json:"total"`
	Records []model.Ticket `json:"records"`
}

type ListMessageRequest struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`

	// Filters
	CompanyID string   `json:"company_id"`
	TicketID  string   `json:"ticket_id"`
	Wids      []string `json:"wids"`
	Ascending bool     `json:"ascending"` // Oldest first instead of newest first.
}

type ListMessageResult struct {
	Total   int             `json:"total"`
	Records []model.Message `json:"records"`
}

type ListUserRequest struct {
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
	CompanyID string `json:"company_id"`
}

type ListUserResult struct {
	Total   int          `json:"total"`
	Records []model.User `json:"records"`
}

type CRMStorage interface {
	CreateTx(ctx context.Context, options ...CreateTxOption) (Tx, context.Context, error)

	StoreContact(ctx context.Context, tx Tx, contact model.Contact) error
	ListContact(ctx context.Context, tx Tx, req ListContactRequest) (ListContactResult, error)

	StoreTicket(ctx context.Context, tx Tx, ticket model.Ticket) error
	ListTicket(ctx context.Context, tx Tx, req ListTicketRequest) (ListTicketResult, error)

	StoreMessage(ctx context.Context, tx Tx, msg model.Message) error
	ListMessage(ctx context.Context, tx Tx, req ListMessageRequest) (ListMessageResult, error)
	UpdateMessageAck(ctx context.Context, tx Tx, companyID string, providerID string, ack model.MessageAck, ts int64) ([]model.Message, error)

	ListQueue(ctx context.Context, tx Tx, companyID string) ([]model.Queue, error)
	ListTag(ctx context.Context, tx Tx, companyID string) ([]model.Tag, error)
	ListUser(ctx context.Context, tx Tx, req ListUserRequest) (ListUserResult, error)
}
