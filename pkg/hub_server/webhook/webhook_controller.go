package webhook

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

type WebhookController interface {
	Create(ctx context.Context, ts int64, req CreateWebhookRequest) (model.Webhook, error)
	List(ctx context.Context, req ListWebhookRequest) (storage.ListWebhookResult, error)
	Get(ctx context.Context, req WebhookIDRequest) (model.Webhook, error)
	Update(ctx context.Context, ts int64, req UpdateWebhookRequest) (model.Webhook, error)
	SetStatus(ctx context.Context, ts int64, req SetWebhookStatusRequest) (model.Webhook, error)
	Delete(ctx context.Context, ts int64, req WebhookIDRequest) (model.Webhook, error)

	// Test makes one synchronous signed delivery of a sample payload. The delivery queue is not involved.
	Test(ctx context.Context, ts int64, req WebhookIDRequest) (TestWebhookResult, error)
	ListLogs(ctx context.Context, req storage.ListWebhookLogRequest) (storage.ListWebhookLogResult, error)
}

// LogPublisher receives every delivery log row after it is stored.
type LogPublisher interface {
	Publish(log model.WebhookLog)
}

type CreateWebhookRequest struct {
	Requester string            `json:"requester"`
	CompanyID string            `json:"company_id"`
	Name      string            `json:"name"`
	Url       string            `json:"url"`
	Events    []model.EventType `json:"events"`
	Secret    string            `json:"secret"`
	Headers   map[string]string `json:"headers"`
	IsActive  *bool             `json:"is_active"` // Defaults to true.
}

// UpdateWebhookRequest changes only the fields that are set.
type UpdateWebhookRequest struct {
	Requester string            `json:"requester"`
	CompanyID string            `json:"company_id"`
	ID        string            `json:"id"`
	Name      *string           `json:"name"`
	Url       *string           `json:"url"`
	Events    []model.EventType `json:"events"`
	Secret    *string           `json:"secret"` // An empty string removes the secret.
	Headers   map[string]string `json:"headers"`
	IsActive  *bool             `json:"is_active"`
}

type WebhookIDRequest struct {
	Requester string `json:"requester"`
	CompanyID string `json:"company_id"`
	ID        string `json:"id"`
}

type SetWebhookStatusRequest struct {
	WebhookIDRequest
	IsActive bool `json:"is_active"`
}

type ListWebhookRequest struct {
	Offset    int    `json:"offset"`
	Limit     int    `json:"limit"`
	CompanyID string `json:"company_id"`
}

type TestWebhookResult struct {
	Success      bool    `json:"success"`
	Status       *int    `json:"status"`
	DurationMs   int64   `json:"duration_ms"`
	Error        *string `json:"error"`
	ResponseBody *string `json:"response_body"`
}

type _WebhookController struct {
	storage   storage.WebhookStorage
	matcher   Matcher
	deliverer Deliverer
	publisher LogPublisher
}

func NewWebhookController(storage storage.WebhookStorage, matcher Matcher, deliverer Deliverer, publisher LogPublisher) WebhookController {
	return &_WebhookController{
		storage:   storage,
		matcher:   matcher,
		deliverer: deliverer,
		publisher: publisher,
	}
}

func (c *_WebhookController) Create(ctx context.Context, ts int64, req CreateWebhookRequest) (model.Webhook, error) {
	if err := ValidateCreateWebhookRequest(req); err != nil {
		return model.Webhook{}, err
	}

	webhook := model.Webhook{
		ID:        util.NewID("whk"),
		Version:   1,
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Url:       req.Url,
		Events:    lo.Uniq(req.Events),
		Secret:    req.Secret,
		Headers:   req.Headers,
		IsActive:  req.IsActive == nil || *req.IsActive,
		CreatedAt: ts,
		CreatedBy: req.Requester,
		UpdatedAt: ts,
		UpdatedBy: req.Requester,
	}

	tx, ctx, err := c.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return model.Webhook{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := c.storage.AddWebhook(ctx, tx, webhook); err != nil {
		return model.Webhook{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Webhook{}, err
	}
	c.matcher.Invalidate(webhook.CompanyID)

	webhook.Secret = ""
	return webhook, nil
}

func (c *_WebhookController) List(ctx context.Context, req ListWebhookRequest) (storage.ListWebhookResult, error) {
	if err := ValidateListWebhookRequest(req); err != nil {
		return storage.ListWebhookResult{}, err
	}

	tx, ctx, err := c.storage.CreateTx(ctx)
	if err != nil {
		return storage.ListWebhookResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	listReq := storage.ListWebhookRequest{
		Offset:    req.Offset,
		Limit:     req.Limit,
		CompanyID: req.CompanyID,
	}
	result, err := c.storage.ListWebhook(ctx, tx, listReq)
	if err != nil {
		return storage.ListWebhookResult{}, err
	}
	for i := range result.Records {
		result.Records[i].Secret = ""
	}
	return result, nil
}

func (c *_WebhookController) Get(ctx context.Context, req WebhookIDRequest) (model.Webhook, error) {
	if req.CompanyID == "" || req.ID == "" {
		return model.Webhook{}, model.ErrInvalidParameter
	}

	tx, ctx, err := c.storage.CreateTx(ctx)
	if err != nil {
		return model.Webhook{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	webhook, err := c.getWebhook(ctx, tx, req.CompanyID, req.ID)
	if err != nil {
		return model.Webhook{}, err
	}
	webhook.Secret = ""
	return webhook, nil
}

func (c *_WebhookController) Update(ctx context.Context, ts int64, req UpdateWebhookRequest) (model.Webhook, error) {
	if err := ValidateUpdateWebhookRequest(req); err != nil {
		return model.Webhook{}, err
	}

	return c.modify(ctx, ts, req.CompanyID, req.ID, req.Requester, func(w *model.Webhook) {
		if req.Name != nil {
			w.Name = *req.Name
		}
		if req.Url != nil {
			w.Url = *req.Url
		}
		if req.Events != nil {
			w.Events = lo.Uniq(req.Events)
		}
		if req.Secret != nil {
			w.Secret = *req.Secret
		}
		if req.Headers != nil {
			w.Headers = req.Headers
		}
		if req.IsActive != nil {
			w.IsActive = *req.IsActive
		}
	})
}

func (c *_WebhookController) SetStatus(ctx context.Context, ts int64, req SetWebhookStatusRequest) (model.Webhook, error) {
	if err := ValidateWebhookIDRequest(req.WebhookIDRequest); err != nil {
		return model.Webhook{}, err
	}

	return c.modify(ctx, ts, req.CompanyID, req.ID, req.Requester, func(w *model.Webhook) {
		w.IsActive = req.IsActive
	})
}

func (c *_WebhookController) Delete(ctx context.Context, ts int64, req WebhookIDRequest) (model.Webhook, error) {
	if err := ValidateWebhookIDRequest(req); err != nil {
		return model.Webhook{}, err
	}

	return c.modify(ctx, ts, req.CompanyID, req.ID, req.Requester, func(w *model.Webhook) {
		w.IsActive = false
		w.Deleted = true
	})
}

// modify stores a new version of the webhook. Queued deliveries are purged when it stops being active.
func (c *_WebhookController) modify(ctx context.Context, ts int64, companyID, id, requester string, change func(w *model.Webhook)) (model.Webhook, error) {
	tx, ctx, err := c.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelSerializable))
	if err != nil {
		return model.Webhook{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	webhook, err := c.getWebhook(ctx, tx, companyID, id)
	if err != nil {
		return model.Webhook{}, err
	}

	change(&webhook)
	webhook.Version += 1
	webhook.UpdatedAt = ts
	webhook.UpdatedBy = requester

	if err := c.storage.AddWebhook(ctx, tx, webhook); err != nil {
		return model.Webhook{}, err
	}
	if !webhook.IsActive || webhook.Deleted {
		purged, err := c.storage.PurgeWebhookDeliveries(ctx, tx, webhook.ID)
		if err != nil {
			return model.Webhook{}, err
		}
		if purged > 0 {
			logrus.Infof("dropped %d queued deliveries of inactive webhook %s", purged, webhook.ID)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Webhook{}, err
	}
	c.matcher.Invalidate(companyID)

	webhook.Secret = ""
	return webhook, nil
}

func (c *_WebhookController) Test(ctx context.Context, ts int64, req WebhookIDRequest) (TestWebhookResult, error) {
	if err := ValidateWebhookIDRequest(req); err != nil {
		return TestWebhookResult{}, err
	}

	webhook, err := c.loadWebhook(ctx, req.CompanyID, req.ID)
	if err != nil {
		return TestWebhookResult{}, err
	}

	eventType := model.EventTest
	if len(webhook.Events) > 0 {
		eventType = webhook.Events[0]
	}
	occurredAt := time.Unix(ts, 0)
	body, err := BuildPayload(eventType, SampleData(eventType), occurredAt, webhook.ID)
	if err != nil {
		return TestWebhookResult{}, fmt.Errorf("failed to build payload: %w", err)
	}

	attempt := c.deliverer.Deliver(ctx, DeliveryRequest{
		Url:       webhook.Url,
		Secret:    webhook.Secret,
		Headers:   webhook.Headers,
		EventType: eventType,
		Body:      body,
		Timestamp: occurredAt,
	})

	log := model.WebhookLog{
		ID:             util.NewID("wlg"),
		WebhookID:      util.Ptr(webhook.ID),
		CompanyID:      webhook.CompanyID,
		EventType:      eventType,
		Payload:        body,
		Attempt:        1,
		Outcome:        attempt.Outcome,
		ResponseStatus: attempt.ResponseStatus,
		ResponseBody:   attempt.ResponseBody,
		ErrorMessage:   attempt.ErrorMessage(),
		DurationMs:     attempt.Duration.Milliseconds(),
		CreatedAt:      time.Now().Unix(),
	}
	if err := c.appendLog(ctx, log); err != nil {
		return TestWebhookResult{}, err
	}

	return TestWebhookResult{
		Success:      attempt.Outcome == model.DeliverySucceeded,
		Status:       attempt.ResponseStatus,
		DurationMs:   log.DurationMs,
		Error:        log.ErrorMessage,
		ResponseBody: attempt.ResponseBody,
	}, nil
}

func (c *_WebhookController) ListLogs(ctx context.Context, req storage.ListWebhookLogRequest) (storage.ListWebhookLogResult, error) {
	if req.CompanyID == "" || req.Limit <= 0 {
		return storage.ListWebhookLogResult{}, fmt.Errorf("company_id and limit are required%w", model.ErrInvalidParameter)
	}

	tx, ctx, err := c.storage.CreateTx(ctx)
	if err != nil {
		return storage.ListWebhookLogResult{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return c.storage.ListWebhookLog(ctx, tx, req)
}

func (c *_WebhookController) loadWebhook(ctx context.Context, companyID, id string) (model.Webhook, error) {
	tx, ctx, err := c.storage.CreateTx(ctx)
	if err != nil {
		return model.Webhook{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	return c.getWebhook(ctx, tx, companyID, id)
}

func (c *_WebhookController) appendLog(ctx context.Context, log model.WebhookLog) error {
	tx, ctx, err := c.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := c.storage.AddWebhookLog(ctx, tx, log); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}
	if c.publisher != nil {
		c.publisher.Publish(log)
	}
	return nil
}

func (c *_WebhookController) getWebhook(ctx context.Context, tx storage.Tx, companyID, id string) (model.Webhook, error) {
	req := storage.ListWebhookRequest{
		Limit:     1,
		CompanyID: companyID,
		IDs:       []string{id},
	}
	result, err := c.storage.ListWebhook(ctx, tx, req)
	if err != nil {
		return model.Webhook{}, err
	}
	if len(result.Records) == 0 {
		return model.Webhook{}, model.ErrWebhookNotFound
	}
	return result.Records[0], nil
}
