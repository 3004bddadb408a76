package connection

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Manager owns the lifecycle of the WhatsApp connections of every company.
type Manager interface {
	Create(ctx context.Context, ts int64, req CreateConnectionRequest) (model.Connection, error)
	Update(ctx context.Context, ts int64, req UpdateConnectionRequest) (model.Connection, error)
	Delete(ctx context.Context, ts int64, req ConnectionIDRequest) (model.Connection, error)
	Get(ctx context.Context, req ConnectionIDRequest) (model.Connection, error)
	List(ctx context.Context, req ListConnectionRequest) (storage.ListConnectionResult, error)

	// Transition moves the connection along DISCONNECTED -> CONNECTING|WAITING_QR -> CONNECTED.
	Transition(ctx context.Context, ts int64, req TransitionRequest) (model.Connection, error)
	SetDefault(ctx context.Context, ts int64, req ConnectionIDRequest) (model.Connection, error)

	// CompleteSignup stores the identifiers obtained by embedded signup and marks the connection CONNECTED.
	CompleteSignup(ctx context.Context, ts int64, req CompleteSignupRequest) (model.Connection, error)

	// ApplyProviderUpdate records an asynchronous status or quality report of the provider.
	ApplyProviderUpdate(ctx context.Context, ts int64, conn model.Connection, update ProviderUpdate) (model.Connection, error)

	FindByPhoneNumberID(ctx context.Context, phoneNumberID string) (model.Connection, error)
	FindByWabaID(ctx context.Context, wabaID string) ([]model.Connection, error)
	FindByChannelToken(ctx context.Context, token string) (model.Connection, error)
	// FindByInstanceToken resolves the UazAPI connection owning an instance token.
	FindByInstanceToken(ctx context.Context, token string) (model.Connection, error)

	// ResolveSender picks the connection outbound messages of the company go through.
	// An explicit whatsappID must be CONNECTED; otherwise the default CONNECTED one wins over any other CONNECTED one.
	ResolveSender(ctx context.Context, companyID string, whatsappID string) (model.Connection, error)
}

type CreateConnectionRequest struct {
	Requester      string                   `json:"requester"`
	CompanyID      string                   `json:"company_id"`
	Name           string                   `json:"name"`
	Provider       model.ConnectionProvider `json:"provider"`
	PhoneNumberID  string                   `json:"phone_number_id"`
	WabaID         string                   `json:"waba_id"`
	InstanceID     string                   `json:"instance_id"`
	AccessToken    string                   `json:"access_token"`
	UazAPIURL      string                   `json:"uazapi_url"`
	UazAPIToken    string                   `json:"uazapi_token"`
	DefaultQueueID string                   `json:"default_queue_id"`
	IsDefault      bool                     `json:"is_default"`
}

type UpdateConnectionRequest struct {
	Requester      string  `json:"requester"`
	CompanyID      string  `json:"company_id"`
	ID             string  `json:"id"`
	Name           *string `json:"name"`
	PhoneNumberID  *string `json:"phone_number_id"`
	WabaID         *string `json:"waba_id"`
	InstanceID     *string `json:"instance_id"`
	AccessToken    *string `json:"access_token"`
	UazAPIURL      *string `json:"uazapi_url"`
	UazAPIToken    *string `json:"uazapi_token"`
	DefaultQueueID *string `json:"default_queue_id"`
}

type ConnectionIDRequest struct {
	Requester string `json:"requester"`
	CompanyID string `json:"company_id"`
	ID        string `json:"id"`
}

type TransitionRequest struct {
	ConnectionIDRequest
	Status model.ConnectionStatus `json:"status"`
}

type CompleteSignupRequest struct {
	ConnectionIDRequest
	PhoneNumberID string `json:"phone_number_id"`
	WabaID        string `json:"waba_id"`
	AccessToken   string `json:"access_token"`
}

type ListConnectionRequest struct {
	Offset    int                      `json:"offset"`
	Limit     int                      `json:"limit"`
	CompanyID string                   `json:"company_id"`
	Statuses  []model.ConnectionStatus `json:"statuses"`
}

type ProviderUpdate struct {
	Status        *model.ConnectionStatus
	QualityRating *string
}

type statusChangedData struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	Provider       model.ConnectionProvider `json:"provider"`
	PhoneNumberID  string                   `json:"phone_number_id,omitempty"`
	PreviousStatus model.ConnectionStatus   `json:"previous_status"`
	Status         model.ConnectionStatus   `json:"status"`
	QualityRating  string                   `json:"quality_rating,omitempty"`
}

type _Manager struct {
	storage storage.ConnectionStorage
	emitter webhook.Emitter
}

func NewManager(storage storage.ConnectionStorage, emitter webhook.Emitter) Manager {
	return &_Manager{
		storage: storage,
		emitter: emitter,
	}
}

// ChannelTokenSum is the lookup key of a channel token.
func ChannelTokenSum(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func channelTokenSum(conn model.Connection) string {
	if token := conn.ChannelToken(); token != "" {
		return ChannelTokenSum(token)
	}
	return ""
}

func (m *_Manager) Create(ctx context.Context, ts int64, req CreateConnectionRequest) (model.Connection, error) {
	if err := ValidateCreateConnectionRequest(req); err != nil {
		return model.Connection{}, err
	}

	conn := model.Connection{
		ID:             util.NewID("wac"),
		Version:        1,
		CompanyID:      req.CompanyID,
		Name:           req.Name,
		Provider:       req.Provider,
		Status:         model.ConnectionDisconnected,
		PhoneNumberID:  req.PhoneNumberID,
		WabaID:         req.WabaID,
		IsDefault:      req.IsDefault,
		DefaultQueueID: req.DefaultQueueID,
		InstanceID:     req.InstanceID,
		AccessToken:    req.AccessToken,
		UazAPIURL:      req.UazAPIURL,
		UazAPIToken:    req.UazAPIToken,
		CreatedAt:      ts,
		CreatedBy:      req.Requester,
		UpdatedAt:      ts,
		UpdatedBy:      req.Requester,
	}
	conn.ChannelTokenSum = channelTokenSum(conn)

	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return model.Connection{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if conn.IsDefault {
		if err := m.storage.ClearDefaultConnection(ctx, tx, conn.CompanyID, conn.ID); err != nil {
			return model.Connection{}, err
		}
	}
	if err := m.storage.StoreConnection(ctx, tx, conn); err != nil {
		return model.Connection{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Connection{}, err
	}
	return conn, nil
}

func (m *_Manager) Update(ctx context.Context, ts int64, req UpdateConnectionRequest) (model.Connection, error) {
	if err := ValidateUpdateConnectionRequest(req); err != nil {
		return model.Connection{}, err
	}

	return m.modify(ctx, ts, req.CompanyID, req.ID, req.Requester, func(tx storage.Tx, conn *model.Connection) error {
		assign(&conn.Name, req.Name)
		assign(&conn.PhoneNumberID, req.PhoneNumberID)
		assign(&conn.WabaID, req.WabaID)
		assign(&conn.AccessToken, req.AccessToken)
		assign(&conn.UazAPIURL, req.UazAPIURL)
		assign(&conn.UazAPIToken, req.UazAPIToken)
		assign(&conn.DefaultQueueID, req.DefaultQueueID)
		assign(&conn.InstanceID, req.InstanceID)
		conn.ChannelTokenSum = channelTokenSum(*conn)
		return nil
	})
}

func (m *_Manager) Delete(ctx context.Context, ts int64, req ConnectionIDRequest) (model.Connection, error) {
	if err := ValidateConnectionIDRequest(req); err != nil {
		return model.Connection{}, err
	}

	return m.modify(ctx, ts, req.CompanyID, req.ID, req.Requester, func(tx storage.Tx, conn *model.Connection) error {
		previous := conn.Status
		conn.Deleted = true
		conn.IsDefault = false
		conn.Status = model.ConnectionDisconnected
		return m.emitStatusChange(ctx, tx, *conn, previous)
	})
}

func (m *_Manager) Get(ctx context.Context, req ConnectionIDRequest) (model.Connection, error) {
	if err := ValidateConnectionIDRequest(req); err != nil {
		return model.Connection{}, err
	}

	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return model.Connection{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return m.getConnection(ctx, tx, req.CompanyID, req.ID)
}

func (m *_Manager) List(ctx context.Context, req ListConnectionRequest) (storage.ListConnectionResult, error) {
	if req.CompanyID == "" || req.Limit <= 0 {
		return storage.ListConnectionResult{}, fmt.Errorf("company_id and limit are required%w", model.ErrInvalidParameter)
	}

	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return storage.ListConnectionResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	listReq := storage.ListConnectionRequest{
		Offset:    req.Offset,
		Limit:     req.Limit,
		CompanyID: req.CompanyID,
		Statuses:  req.Statuses,
	}
	return m.storage.ListConnection(ctx, tx, listReq)
}

func (m *_Manager) Transition(ctx context.Context, ts int64, req TransitionRequest) (model.Connection, error) {
	if err := ValidateTransitionRequest(req); err != nil {
		return model.Connection{}, err
	}

	return m.modify(ctx, ts, req.CompanyID, req.ID, req.Requester, func(tx storage.Tx, conn *model.Connection) error {
		return m.transition(ctx, tx, conn, req.Status)
	})
}

func (m *_Manager) SetDefault(ctx context.Context, ts int64, req ConnectionIDRequest) (model.Connection, error) {
	if err := ValidateConnectionIDRequest(req); err != nil {
		return model.Connection{}, err
	}

	return m.modify(ctx, ts, req.CompanyID, req.ID, req.Requester, func(tx storage.Tx, conn *model.Connection) error {
		conn.IsDefault = true
		return m.storage.ClearDefaultConnection(ctx, tx, conn.CompanyID, conn.ID)
	})
}

func (m *_Manager) CompleteSignup(ctx context.Context, ts int64, req CompleteSignupRequest) (model.Connection, error) {
	if err := ValidateConnectionIDRequest(req.ConnectionIDRequest); err != nil {
		return model.Connection{}, err
	}
	if req.PhoneNumberID == "" || req.WabaID == "" {
		return model.Connection{}, fmt.Errorf("phone_number_id and waba_id are required%w", model.ErrInvalidParameter)
	}

	return m.modify(ctx, ts, req.CompanyID, req.ID, req.Requester, func(tx storage.Tx, conn *model.Connection) error {
		conn.Provider = model.ProviderCloudAPI
		conn.PhoneNumberID = req.PhoneNumberID
		conn.WabaID = req.WabaID
		if req.AccessToken != "" {
			conn.AccessToken = req.AccessToken
		}
		if conn.Status == model.ConnectionDisconnected {
			// Embedded signup runs the whole connect flow in one go.
			conn.Status = model.ConnectionConnecting
		}
		return m.transition(ctx, tx, conn, model.ConnectionConnected)
	})
}

func (m *_Manager) ApplyProviderUpdate(ctx context.Context, ts int64, conn model.Connection, update ProviderUpdate) (model.Connection, error) {
	return m.modify(ctx, ts, conn.CompanyID, conn.ID, "provider", func(tx storage.Tx, conn *model.Connection) error {
		previous := conn.Status
		if update.QualityRating != nil {
			conn.QualityRating = *update.QualityRating
		}
		if update.Status != nil && *update.Status != conn.Status {
			if !conn.Status.CanTransition(*update.Status) {
				return fmt.Errorf("%s -> %s: %w", conn.Status, *update.Status, model.ErrInvalidTransition)
			}
			conn.Status = *update.Status
		}
		if conn.Status == previous && update.QualityRating == nil {
			return nil
		}
		return m.emit(ctx, tx, *conn, model.EventConnectionStatusChanged, previous)
	})
}

func (m *_Manager) FindByPhoneNumberID(ctx context.Context, phoneNumberID string) (model.Connection, error) {
	if phoneNumberID == "" {
		return model.Connection{}, model.ErrConnectionNotFound
	}
	return m.findOne(ctx, storage.ListConnectionRequest{Limit: 1, PhoneNumberID: phoneNumberID, Statuses: []model.ConnectionStatus{model.ConnectionConnected}})
}

// FindByWabaID returns the CONNECTED connections of a WhatsApp Business Account.
func (m *_Manager) FindByWabaID(ctx context.Context, wabaID string) ([]model.Connection, error) {
	if wabaID == "" {
		return nil, nil
	}
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := m.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{
		Limit:    100,
		WabaID:   wabaID,
		Statuses: []model.ConnectionStatus{model.ConnectionConnected},
	})
	if err != nil {
		return nil, err
	}
	return result.Records, nil
}

func (m *_Manager) FindByChannelToken(ctx context.Context, token string) (model.Connection, error) {
	if token == "" {
		return model.Connection{}, model.ErrUnknownChannel
	}
	conn, err := m.findOne(ctx, storage.ListConnectionRequest{Limit: 1, ChannelTokenSum: ChannelTokenSum(token)})
	if errors.Is(err, model.ErrConnectionNotFound) {
		return model.Connection{}, model.ErrUnknownChannel
	}
	if err != nil {
		return model.Connection{}, err
	}
	if subtle.ConstantTimeCompare([]byte(conn.InstanceID), []byte(token)) != 1 {
		return model.Connection{}, model.ErrUnknownChannel
	}
	return conn, nil
}

func (m *_Manager) FindByInstanceToken(ctx context.Context, token string) (model.Connection, error) {
	if token == "" {
		return model.Connection{}, model.ErrUnknownChannel
	}
	conn, err := m.findOne(ctx, storage.ListConnectionRequest{Limit: 1, ChannelTokenSum: ChannelTokenSum(token)})
	if errors.Is(err, model.ErrConnectionNotFound) {
		return model.Connection{}, model.ErrUnknownChannel
	}
	if err != nil {
		return model.Connection{}, err
	}
	if conn.Provider != model.ProviderUazAPI || subtle.ConstantTimeCompare([]byte(conn.UazAPIToken), []byte(token)) != 1 {
		return model.Connection{}, model.ErrUnknownChannel
	}
	return conn, nil
}

func (m *_Manager) ResolveSender(ctx context.Context, companyID string, whatsappID string) (model.Connection, error) {
	if companyID == "" {
		return model.Connection{}, fmt.Errorf("company_id is required%w", model.ErrInvalidParameter)
	}

	if whatsappID != "" {
		conn, err := m.findOne(ctx, storage.ListConnectionRequest{Limit: 1, CompanyID: companyID, IDs: []string{whatsappID}})
		if err != nil {
			return model.Connection{}, err
		}
		if conn.Status != model.ConnectionConnected {
			return model.Connection{}, model.ErrConnectionNotConnected
		}
		return conn, nil
	}

	// Storage lists the default connection first.
	conn, err := m.findOne(ctx, storage.ListConnectionRequest{Limit: 1, CompanyID: companyID, Statuses: []model.ConnectionStatus{model.ConnectionConnected}})
	if errors.Is(err, model.ErrConnectionNotFound) {
		return model.Connection{}, model.ErrNoConnection
	}
	return conn, err
}

func (m *_Manager) transition(ctx context.Context, tx storage.Tx, conn *model.Connection, next model.ConnectionStatus) error {
	previous := conn.Status
	if previous == next {
		return nil
	}
	if !previous.CanTransition(next) {
		return fmt.Errorf("%s -> %s: %w", previous, next, model.ErrInvalidTransition)
	}
	conn.Status = next
	return m.emitStatusChange(ctx, tx, *conn, previous)
}

func (m *_Manager) emitStatusChange(ctx context.Context, tx storage.Tx, conn model.Connection, previous model.ConnectionStatus) error {
	if conn.Status == previous {
		return nil
	}
	if err := m.emit(ctx, tx, conn, model.EventConnectionStatusChanged, previous); err != nil {
		return err
	}
	switch conn.Status {
	case model.ConnectionConnected:
		return m.emit(ctx, tx, conn, model.EventWhatsAppConnected, previous)
	case model.ConnectionDisconnected:
		return m.emit(ctx, tx, conn, model.EventWhatsAppDisconnected, previous)
	}
	return nil
}

func (m *_Manager) emit(ctx context.Context, tx storage.Tx, conn model.Connection, eventType model.EventType, previous model.ConnectionStatus) error {
	if m.emitter == nil {
		return nil
	}
	data, err := json.Marshal(statusChangedData{
		ID:             conn.ID,
		Name:           conn.Name,
		Provider:       conn.Provider,
		PhoneNumberID:  conn.PhoneNumberID,
		PreviousStatus: previous,
		Status:         conn.Status,
		QualityRating:  conn.QualityRating,
	})
	if err != nil {
		return err
	}
	event := model.Event{
		CompanyID:  conn.CompanyID,
		Type:       eventType,
		Data:       data,
		OccurredAt: conn.UpdatedAt,
	}
	if _, err := m.emitter.EmitWithTx(ctx, tx, event); err != nil {
		return fmt.Errorf("emit %s: %w", eventType, err)
	}
	return nil
}

func (m *_Manager) modify(ctx context.Context, ts int64, companyID, id, requester string, change func(tx storage.Tx, conn *model.Connection) error) (model.Connection, error) {
	tx, ctx, err := m.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return model.Connection{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	conn, err := m.getConnection(ctx, tx, companyID, id)
	if err != nil {
		return model.Connection{}, err
	}

	conn.Version += 1
	conn.UpdatedAt = ts
	conn.UpdatedBy = requester
	if err := change(tx, &conn); err != nil {
		return model.Connection{}, err
	}

	if err := m.storage.StoreConnection(ctx, tx, conn); err != nil {
		return model.Connection{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Connection{}, err
	}
	logrus.Debugf("whatsapp connection %s stored with status %s", conn.ID, conn.Status)
	return conn, nil
}

func (m *_Manager) findOne(ctx context.Context, req storage.ListConnectionRequest) (model.Connection, error) {
	tx, ctx, err := m.storage.CreateTx(ctx)
	if err != nil {
		return model.Connection{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := m.storage.ListConnection(ctx, tx, req)
	if err != nil {
		return model.Connection{}, err
	}
	if len(result.Records) == 0 {
		return model.Connection{}, model.ErrConnectionNotFound
	}
	return result.Records[0], nil
}

func (m *_Manager) getConnection(ctx context.Context, tx storage.Tx, companyID, id string) (model.Connection, error) {
	req := storage.ListConnectionRequest{
		Limit:     1,
		CompanyID: companyID,
		IDs:       []string{id},
	}
	result, err := m.storage.ListConnection(ctx, tx, req)
	if err != nil {
		return model.Connection{}, err
	}
	if len(result.Records) == 0 {
		return model.Connection{}, model.ErrConnectionNotFound
	}
	return result.Records[0], nil
}

func assign(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
