package webhook

import (
	"context"
	"database/sql"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const DefaultRetentionDays = 30

// Sweeper is anything holding expirable in-memory state.
type Sweeper interface {
	Sweep(now time.Time) int
}

type JanitorOption func(j *Janitor)

func WithSweeper(s Sweeper) JanitorOption {
	return func(j *Janitor) {
		j.sweepers = append(j.sweepers, s)
	}
}

func WithJanitorClock(now func() time.Time) JanitorOption {
	return func(j *Janitor) {
		j.now = now
	}
}

// Janitor runs the periodic maintenance of the delivery queue and the append-only logs.
type Janitor struct {
	storage   storage.MaintenanceStorage
	retention time.Duration
	sweepers  []Sweeper
	now       func() time.Time
	cron      *cron.Cron
}

func NewJanitor(s storage.MaintenanceStorage, retentionDays int, opts ...JanitorOption) *Janitor {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	j := &Janitor{
		storage:   s,
		retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
		cron:      cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger))),
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// Run schedules the jobs and blocks until ctx is done.
func (j *Janitor) Run(ctx context.Context) error {
	if _, err := j.cron.AddFunc("@every 1m", func() { j.ReleaseExpiredClaims(ctx) }); err != nil {
		return err
	}
	if _, err := j.cron.AddFunc("@daily", func() { j.PurgeLogs(ctx) }); err != nil {
		return err
	}
	if len(j.sweepers) > 0 {
		if _, err := j.cron.AddFunc("@every 30s", func() { j.Sweep() }); err != nil {
			return err
		}
	}

	j.cron.Start()
	logrus.Info("Webhook janitor is now running")
	<-ctx.Done()
	<-j.cron.Stop().Done()
	return nil
}

// ReleaseExpiredClaims returns deliveries of crashed workers to the queue.
func (j *Janitor) ReleaseExpiredClaims(ctx context.Context) int64 {
	var released int64
	err := j.withTx(ctx, func(ctx context.Context, tx storage.Tx) (err error) {
		released, err = j.storage.ReleaseExpiredClaims(ctx, tx, j.now().Unix())
		return err
	})
	if err != nil {
		logrus.Errorf("failed to release expired delivery claims: %v", err)
		return 0
	}
	if released > 0 {
		logrus.Infof("released %d expired delivery claims", released)
	}
	return released
}

// PurgeLogs deletes delivery and API log rows older than the retention period.
func (j *Janitor) PurgeLogs(ctx context.Context) (webhookLogs, apiLogs int64) {
	before := j.now().Add(-j.retention).Unix()
	err := j.withTx(ctx, func(ctx context.Context, tx storage.Tx) (err error) {
		if webhookLogs, err = j.storage.DeleteWebhookLogBefore(ctx, tx, before); err != nil {
			return err
		}
		apiLogs, err = j.storage.DeleteAPILogBefore(ctx, tx, before)
		return err
	})
	if err != nil {
		logrus.Errorf("failed to purge logs: %v", err)
		return 0, 0
	}
	logrus.Infof("purged %d delivery logs and %d api logs", webhookLogs, apiLogs)
	return webhookLogs, apiLogs
}

func (j *Janitor) Sweep() {
	now := j.now()
	for _, s := range j.sweepers {
		if n := s.Sweep(now); n > 0 {
			logrus.Debugf("swept %d expired entries", n)
		}
	}
}

func (j *Janitor) withTx(ctx context.Context, fn func(ctx context.Context, tx storage.Tx) error) error {
	tx, ctx, err := j.storage.CreateTx(ctx, storage.TxOptionWithWrite(true), storage.TxOptionWithIsolationLevel(sql.LevelReadCommitted))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}
