package webhook

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/hub_server/storage/postgres"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/errgroup"
)

// Config of the delivery worker. Durations are in seconds.
type Config struct {
	Database      util.PostgresDatabaseConfig
	WorkerID      string
	CheckInterval int
	BatchSize     int
	Workers       int
	Timeout       int
	Lease         int
	MaxAttempts   int
	BaseDelay     int
	MaxDelay      int
}

type ProcessorOption func(p *Processor)

var errClaimLost = errors.New("delivery is no longer claimed by this worker")

func WithStorage(storage storage.DeliveryStorage) ProcessorOption {
	return func(p *Processor) {
		p.storage = storage
	}
}

func WithDeliverer(deliverer Deliverer) ProcessorOption {
	return func(p *Processor) {
		p.deliverer = deliverer
	}
}

func WithLogPublisher(publisher LogPublisher) ProcessorOption {
	return func(p *Processor) {
		p.publisher = publisher
	}
}

func WithRetryPolicy(policy RetryPolicy) ProcessorOption {
	return func(p *Processor) {
		p.policy = policy
	}
}

func WithClock(now func() time.Time) ProcessorOption {
	return func(p *Processor) {
		p.now = now
	}
}

// Processor claims due deliveries and attempts them with a bounded pool of workers.
type Processor struct {
	workerID      string
	batchSize     int
	workers       int
	checkInterval time.Duration
	lease         time.Duration
	policy        RetryPolicy
	now           func() time.Time

	storage   storage.DeliveryStorage
	deliverer Deliverer
	publisher LogPublisher

	attemptCount metric.Int64Counter
}

func NewProcessorWithConfig(cfg Config, opts ...ProcessorOption) (*Processor, error) {
	timeout := time.Second * time.Duration(cfg.Timeout)
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}
	res := &Processor{
		workerID:      cfg.WorkerID,
		batchSize:     lo.Ternary(cfg.BatchSize > 0, cfg.BatchSize, 50),
		workers:       lo.Ternary(cfg.Workers > 0, cfg.Workers, 4),
		checkInterval: time.Second * time.Duration(lo.Ternary(cfg.CheckInterval > 0, cfg.CheckInterval, 1)),
		lease:         time.Second * time.Duration(lo.Ternary(cfg.Lease > 0, cfg.Lease, 60)),
		policy:        NewRetryPolicy(cfg.MaxAttempts, time.Second*time.Duration(cfg.BaseDelay), time.Second*time.Duration(cfg.MaxDelay)),
		now:           time.Now,
		attemptCount:  otlp_util.NewInt64Counter("webhook.delivery.attempt.count", metric.WithDescription("The total number of webhook delivery attempts")),
	}
	if res.workerID == "" {
		res.workerID = util.NewID("wrk")
	}
	// A claimed batch runs in ceil(batch/workers) waves of at most one timeout each.
	// The lease has to outlive the last wave plus one timeout of slack.
	waves := (res.batchSize + res.workers - 1) / res.workers
	if minLease := time.Duration(waves+1) * timeout; res.lease < minLease {
		logrus.Warnf("webhook lease %v is shorter than a claimed batch can take, using %v", res.lease, minLease)
		res.lease = minLease
	}

	for _, opt := range opts {
		opt(res)
	}
	if res.storage == nil {
		deliveryStorage, err := postgres.NewStorageWithConfig(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("create storage: %w", err)
		}
		res.storage = deliveryStorage
	}
	if res.deliverer == nil {
		res.deliverer = NewHTTPDeliverer(timeout)
	}

	return res, nil
}

func (p *Processor) Run(ctx context.Context) {
	logrus.Infof("Webhook delivery processor %s is now running", p.workerID)

	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(p.checkInterval):
			p._Proc(ctx)
		}
	}
}

func (p *Processor) _Proc(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		n, err := p.ProcessOnce(ctx)
		if err != nil {
			logrus.Errorf("failed to process webhook deliveries: %v", err)
			return
		}
		if n < p.batchSize {
			return
		}
	}
}

// ProcessOnce claims one batch of due deliveries, attempts each of them once and returns the batch size.
// Attempts already started are finished even when ctx is cancelled.
func (p *Processor) ProcessOnce(ctx context.Context) (int, error) {
	deliveries, webhooks, err := p.claim(ctx, p.now())
	if err != nil {
		return 0, err
	}
	if len(deliveries) == 0 {
		return 0, nil
	}
	logrus.Debugf("Claimed %d webhook deliveries", len(deliveries))

	attemptCtx := context.WithoutCancel(ctx)
	g := new(errgroup.Group)
	g.SetLimit(p.workers)
	for _, d := range deliveries {
		d := d
		g.Go(func() error {
			webhook, ok := webhooks[d.WebhookID]
			if !ok {
				p.drop(attemptCtx, d)
				return nil
			}
			if err := p.attempt(attemptCtx, d, webhook); err != nil {
				// The claim lease expires and the delivery is attempted again.
				logrus.Errorf("failed to finalize delivery %s: %v", d.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	return len(deliveries), nil
}

func (p *Processor) claim(ctx context.Context, now time.Time) ([]model.Delivery, map[string]model.Webhook, error) {
	tx, ctx, err := p.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelReadCommitted))
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	req := storage.ClaimDeliveryRequest{
		WorkerID:   p.workerID,
		Now:        now.Unix(),
		LeaseUntil: now.Add(p.lease).Unix(),
		BatchSize:  p.batchSize,
	}
	deliveries, err := p.storage.ClaimDeliveries(ctx, tx, req)
	if err != nil {
		return nil, nil, err
	}
	if len(deliveries) == 0 {
		return nil, nil, nil
	}

	ids := lo.Uniq(lo.Map(deliveries, func(d model.Delivery, _ int) string { return d.WebhookID }))
	result, err := p.storage.ListWebhook(ctx, tx, storage.ListWebhookRequest{Limit: len(ids), IDs: ids, ActiveOnly: true})
	if err != nil {
		return nil, nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return deliveries, lo.KeyBy(result.Records, func(w model.Webhook) string { return w.ID }), nil
}

func (p *Processor) attempt(ctx context.Context, d model.Delivery, webhook model.Webhook) error {
	ctx, span := otlp_util.Start(ctx, "webhook/processor.attempt")
	defer span.End()

	result := p.deliverer.Deliver(ctx, DeliveryRequest{
		Url:        webhook.Url,
		Secret:     webhook.Secret,
		Headers:    webhook.Headers,
		EventType:  d.EventType,
		DeliveryID: d.ID,
		Body:       d.Payload,
		Timestamp:  p.now(),
	})
	finishedAt := p.now()

	attempt := d.Attempt + 1
	log := model.WebhookLog{
		ID:             util.NewID("wlg"),
		WebhookID:      util.Ptr(d.WebhookID),
		CompanyID:      d.CompanyID,
		DeliveryID:     util.Ptr(d.ID),
		EventType:      d.EventType,
		Payload:        d.Payload,
		Attempt:        attempt,
		Outcome:        result.Outcome,
		ResponseStatus: result.ResponseStatus,
		ResponseBody:   result.ResponseBody,
		ErrorMessage:   result.ErrorMessage(),
		DurationMs:     result.Duration.Milliseconds(),
		CreatedAt:      finishedAt.Unix(),
	}
	if log.Outcome == model.DeliveryFailedRetryable {
		if p.policy.Exhausted(attempt) {
			log.Outcome = model.DeliveryFailedTerminal
		} else {
			log.NextAttemptAt = util.Ptr(p.nextAttemptAt(finishedAt, d.Attempt, result.RetryAfter))
		}
	}

	if err := p.finalize(ctx, d, log); err != nil {
		if errors.Is(err, errClaimLost) {
			// Another worker owns the delivery now and records its own attempt.
			logrus.Warnf("delivery %s attempt %d finished after its lease: %s", d.ID, attempt, log.Outcome)
			return nil
		}
		return err
	}

	p.attemptCount.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", string(log.Outcome))))
	if p.publisher != nil {
		p.publisher.Publish(log)
	}
	if log.Outcome != model.DeliverySucceeded {
		logrus.Debugf("delivery %s attempt %d to %s: %s", d.ID, attempt, webhook.Url, log.Outcome)
	}
	return nil
}

// nextAttemptAt honours Retry-After as a lower bound of the backoff, both capped by the policy maximum.
func (p *Processor) nextAttemptAt(from time.Time, attemptsBefore int, retryAfter time.Duration) int64 {
	delay := p.policy.Delay(attemptsBefore)
	retryAfter = min(retryAfter, p.policy.MaxDelay)
	if retryAfter > delay {
		delay = retryAfter
	}
	next := from.Add(delay)
	if next.Nanosecond() > 0 {
		return next.Unix() + 1
	}
	return next.Unix()
}

func (p *Processor) finalize(ctx context.Context, d model.Delivery, log model.WebhookLog) error {
	tx, ctx, err := p.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelReadCommitted))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var owned bool
	if log.NextAttemptAt != nil {
		owned, err = p.storage.RescheduleDelivery(ctx, tx, d.RecID, p.workerID, log.Attempt, *log.NextAttemptAt)
	} else {
		owned, err = p.storage.CompleteDelivery(ctx, tx, d.RecID, p.workerID)
	}
	if err != nil {
		return err
	}
	if !owned {
		return errClaimLost
	}
	if err := p.storage.AddWebhookLog(ctx, tx, log); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// drop removes a claimed delivery whose subscription stopped being active after the claim.
func (p *Processor) drop(ctx context.Context, d model.Delivery) {
	tx, ctx, err := p.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		logrus.Errorf("failed to drop delivery %s: %v", d.ID, err)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	owned, err := p.storage.CompleteDelivery(ctx, tx, d.RecID, p.workerID)
	if err != nil {
		logrus.Errorf("failed to drop delivery %s: %v", d.ID, err)
		return
	}
	if !owned {
		return
	}
	if err := tx.Commit(ctx); err != nil {
		logrus.Errorf("failed to drop delivery %s: %v", d.ID, err)
		return
	}
	logrus.Infof("dropped delivery %s of inactive webhook %s", d.ID, d.WebhookID)
}
