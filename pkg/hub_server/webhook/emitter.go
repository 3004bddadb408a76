package webhook

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Emitter fans a domain event out to the queue of every matching subscription.
type Emitter interface {
	// Emit enqueues the deliveries in its own transaction and returns how many were enqueued.
	Emit(ctx context.Context, event model.Event) (int, error)

	// EmitWithTx enqueues the deliveries in tx, so they commit together with the caller's writes.
	EmitWithTx(ctx context.Context, tx storage.Tx, event model.Event) (int, error)
}

type DeliveryQueue interface {
	CreateTx(ctx context.Context, options ...storage.CreateTxOption) (storage.Tx, context.Context, error)
	AddDeliveries(ctx context.Context, tx storage.Tx, deliveries ...model.Delivery) error
}

type _Emitter struct {
	queue   DeliveryQueue
	matcher Matcher

	emitCount metric.Int64Counter
}

func NewEmitter(queue DeliveryQueue, matcher Matcher) Emitter {
	return &_Emitter{
		queue:     queue,
		matcher:   matcher,
		emitCount: otlp_util.NewInt64Counter("webhook.event.emit.count", metric.WithDescription("The total number of deliveries enqueued for emitted events")),
	}
}

func (e *_Emitter) Emit(ctx context.Context, event model.Event) (int, error) {
	if err := ValidateEvent(event); err != nil {
		return 0, err
	}

	tx, ctx, err := e.queue.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelReadCommitted))
	if err != nil {
		return 0, fmt.Errorf("failed to create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	n, err := e.EmitWithTx(ctx, tx, event)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return n, nil
}

func (e *_Emitter) EmitWithTx(ctx context.Context, tx storage.Tx, event model.Event) (int, error) {
	if err := ValidateEvent(event); err != nil {
		return 0, err
	}
	if event.ID == "" {
		event.ID = util.NewID("evt")
	}
	now := time.Now().Unix()
	if event.OccurredAt == 0 {
		event.OccurredAt = now
	}

	webhooks, err := e.matcher.Match(ctx, event.CompanyID, event.Type)
	if err != nil {
		return 0, fmt.Errorf("failed to match subscriptions: %w", err)
	}
	if len(webhooks) == 0 {
		logrus.Debugf("no subscription for %s event %s of company %s", event.Type, event.ID, event.CompanyID)
		return 0, nil
	}

	deliveries := make([]model.Delivery, 0, len(webhooks))
	for _, w := range webhooks {
		payload, err := BuildPayload(event.Type, event.Data, time.Unix(event.OccurredAt, 0), w.ID)
		if err != nil {
			return 0, fmt.Errorf("failed to build payload: %w", err)
		}
		deliveries = append(deliveries, model.Delivery{
			ID:            util.NewID("dlv"),
			WebhookID:     w.ID,
			CompanyID:     event.CompanyID,
			EventID:       event.ID,
			EventType:     event.Type,
			Payload:       payload,
			Attempt:       0,
			State:         model.DeliveryPending,
			NextAttemptAt: now,
			CreatedAt:     now,
		})
	}

	if err := e.queue.AddDeliveries(ctx, tx, deliveries...); err != nil {
		return 0, fmt.Errorf("failed to enqueue deliveries: %w", err)
	}

	e.emitCount.Add(ctx, int64(len(deliveries)), metric.WithAttributes(attribute.String("event_type", string(event.Type))))
	logrus.Debugf("enqueued %d deliveries for %s event %s", len(deliveries), event.Type, event.ID)
	return len(deliveries), nil
}
