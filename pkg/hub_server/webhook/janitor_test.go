package webhook_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	mock_storage "github.com/codatende/webhookhub/test/mock/hub_server/storage"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type countingSweeper struct {
	calls []time.Time
}

func (c *countingSweeper) Sweep(now time.Time) int {
	c.calls = append(c.calls, now)
	return 1
}

type JanitorTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	storage *mock_storage.MockMaintenanceStorage
	tx      *mock_storage.MockTx
	now     time.Time
	sweeper *countingSweeper
	janitor *webhook.Janitor
}

func TestJanitor(t *testing.T) {
	suite.Run(t, new(JanitorTestSuite))
}

func (s *JanitorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.storage = mock_storage.NewMockMaintenanceStorage(s.ctrl)
	s.tx = mock_storage.NewMockTx(s.ctrl)
	s.now = time.Unix(1700000000, 0)
	s.sweeper = &countingSweeper{}
	s.janitor = webhook.NewJanitor(s.storage, 7,
		webhook.WithSweeper(s.sweeper),
		webhook.WithJanitorClock(func() time.Time { return s.now }),
	)
}

func (s *JanitorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *JanitorTestSuite) TestReleaseExpiredClaims() {
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ReleaseExpiredClaims(gomock.Any(), s.tx, int64(1700000000)).Return(int64(3), nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	s.Equal(int64(3), s.janitor.ReleaseExpiredClaims(s.ctx))
}

func (s *JanitorTestSuite) TestReleaseExpiredClaimsFailure() {
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ReleaseExpiredClaims(gomock.Any(), s.tx, gomock.Any()).Return(int64(0), errors.New("db down")),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	s.Zero(s.janitor.ReleaseExpiredClaims(s.ctx))
}

func (s *JanitorTestSuite) TestPurgeLogs() {
	cutoff := int64(1700000000 - 7*24*3600)
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().DeleteWebhookLogBefore(gomock.Any(), s.tx, cutoff).Return(int64(10), nil),
		s.storage.EXPECT().DeleteAPILogBefore(gomock.Any(), s.tx, cutoff).Return(int64(4), nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	webhookLogs, apiLogs := s.janitor.PurgeLogs(s.ctx)
	s.Equal(int64(10), webhookLogs)
	s.Equal(int64(4), apiLogs)
}

func (s *JanitorTestSuite) TestSweep() {
	s.janitor.Sweep()
	s.Equal([]time.Time{s.now}, s.sweeper.calls)
}

func (s *JanitorTestSuite) TestRunStopsWithContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	done := make(chan error)
	go func() { done <- s.janitor.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		s.NoError(err)
	case <-time.After(5 * time.Second):
		s.Fail("janitor did not stop")
	}
}
