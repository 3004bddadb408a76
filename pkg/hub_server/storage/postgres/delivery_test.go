package postgres_test

import (
	"testing"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/hub_server/storage/postgres"
	"github.com/stretchr/testify/suite"
)

type DeliveryStorageTestSuite struct {
	BaseTestSuite
	storage interface {
		storage.DeliveryStorage
		storage.MaintenanceStorage
	}
}

func TestDeliveryStorage(t *testing.T) {
	suite.Run(t, new(DeliveryStorageTestSuite))
}

func (s *DeliveryStorageTestSuite) SetupTest() {
	s.BaseTestSuite.SetupTest()
	s.storage = postgres.NewStorageWithPool(s.pgPool)
	s.loadFixtures("testdata/webhook")
}

func (s *DeliveryStorageTestSuite) TestAddDeliveries() {
	tx, ctx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()

	payload := []byte(`{"event":"ticket.created","data":{"id":"t1"},"timestamp":"2024-01-01T00:00:00.000Z","webhook_id":"whk_1"}`)
	deliveries := []model.Delivery{
		{ID: "dlv_a", WebhookID: "whk_1", CompanyID: "company_1", EventID: "evt_9", EventType: model.EventTicketCreated, Payload: payload, State: model.DeliveryPending, NextAttemptAt: 1600000000, CreatedAt: 1600000000},
		{ID: "dlv_b", WebhookID: "whk_2", CompanyID: "company_1", EventID: "evt_9", EventType: model.EventTicketCreated, Payload: payload, State: model.DeliveryPending, NextAttemptAt: 1600000000, CreatedAt: 1600000000},
	}
	s.Require().NoError(s.storage.AddDeliveries(ctx, tx))
	s.Require().NoError(s.storage.AddDeliveries(ctx, tx, deliveries...))

	var stored []byte
	s.Require().NoError(tx.QueryRow(ctx, `SELECT payload FROM webhook_delivery WHERE id = 'dlv_b'`).Scan(&stored))
	s.Assert().Equal(payload, stored)

	claimed, err := s.storage.ClaimDeliveries(ctx, tx, storage.ClaimDeliveryRequest{WorkerID: "w1", Now: 1600000000, LeaseUntil: 1600000060, BatchSize: 10})
	s.Require().NoError(err)
	s.Require().Len(claimed, 2)
	s.Assert().Equal("dlv_a", claimed[0].ID)
	s.Assert().Equal("dlv_b", claimed[1].ID)
	s.Assert().Equal(model.DeliveryInFlight, claimed[0].State)
	s.Assert().Equal("w1", claimed[0].ClaimedBy)
	s.Assert().Equal(int64(1600000060), claimed[0].ClaimedUntil)
	s.Assert().Equal(payload, []byte(claimed[0].Payload))
}

func (s *DeliveryStorageTestSuite) TestClaimDeliveries() {
	tx, ctx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()

	req := storage.ClaimDeliveryRequest{WorkerID: "w1", Now: 1700002000, LeaseUntil: 1700002060, BatchSize: 10}
	claimed, err := s.storage.ClaimDeliveries(ctx, tx, req)
	s.Require().NoError(err)

	// dlv_3 belongs to an inactive webhook, dlv_4 is not due yet.
	s.Require().Len(claimed, 3)
	s.Assert().Equal("dlv_5", claimed[0].ID) // expired lease
	s.Assert().Equal("dlv_2", claimed[1].ID)
	s.Assert().Equal("dlv_1", claimed[2].ID)
	s.Assert().Equal(2, claimed[1].Attempt)
	for _, d := range claimed {
		s.Assert().Equal(model.DeliveryInFlight, d.State)
		s.Assert().Equal("w1", d.ClaimedBy)
	}

	// Nothing left for a second worker.
	req.WorkerID = "w2"
	claimed, err = s.storage.ClaimDeliveries(ctx, tx, req)
	s.Require().NoError(err)
	s.Assert().Empty(claimed)

	// Batch size is honoured.
	for _, r := range []struct {
		recID   int64
		attempt int
		next    int64
	}{{1, 1, 1700001500}, {2, 3, 1700001400}} {
		owned, err := s.storage.RescheduleDelivery(ctx, tx, r.recID, "w1", r.attempt, r.next)
		s.Require().NoError(err)
		s.Require().True(owned)
	}
	req.BatchSize = 1
	claimed, err = s.storage.ClaimDeliveries(ctx, tx, req)
	s.Require().NoError(err)
	s.Require().Len(claimed, 1)
	s.Assert().Equal("dlv_2", claimed[0].ID)
	s.Assert().Equal(3, claimed[0].Attempt)
}

func (s *DeliveryStorageTestSuite) TestRescheduleDelivery() {
	tx, ctx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()

	// Only the worker holding the claim can reschedule.
	owned, err := s.storage.RescheduleDelivery(ctx, tx, 5, "w1", 1, 1700003000)
	s.Require().NoError(err)
	s.Assert().False(owned)
	owned, err = s.storage.RescheduleDelivery(ctx, tx, 5, "worker_dead", 1, 1700003000)
	s.Require().NoError(err)
	s.Assert().True(owned)

	var state string
	var attempt int
	var next int64
	var claimedBy *string
	s.Require().NoError(tx.QueryRow(ctx, `SELECT "state", attempt, next_attempt_at, claimed_by FROM webhook_delivery WHERE rec_id = 5`).Scan(&state, &attempt, &next, &claimedBy))
	s.Assert().Equal("PENDING", state)
	s.Assert().Equal(1, attempt)
	s.Assert().Equal(int64(1700003000), next)
	s.Assert().Nil(claimedBy)

	// A pending delivery is not claimed by anyone.
	owned, err = s.storage.CompleteDelivery(ctx, tx, 5, "worker_dead")
	s.Require().NoError(err)
	s.Assert().False(owned)

	var left int
	s.Require().NoError(tx.QueryRow(ctx, `SELECT COUNT(*) FROM webhook_delivery`).Scan(&left))
	s.Assert().Equal(5, left)
}

func (s *DeliveryStorageTestSuite) TestCompleteDeliveryAfterReclaim() {
	tx, ctx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()

	// dlv_5's lease expired and another worker takes it over.
	claimed, err := s.storage.ClaimDeliveries(ctx, tx, storage.ClaimDeliveryRequest{WorkerID: "w2", Now: 1700002000, LeaseUntil: 1700002060, BatchSize: 1})
	s.Require().NoError(err)
	s.Require().Len(claimed, 1)
	s.Require().Equal("dlv_5", claimed[0].ID)

	owned, err := s.storage.CompleteDelivery(ctx, tx, 5, "worker_dead")
	s.Require().NoError(err)
	s.Assert().False(owned)
	owned, err = s.storage.RescheduleDelivery(ctx, tx, 5, "worker_dead", 1, 1700003000)
	s.Require().NoError(err)
	s.Assert().False(owned)

	owned, err = s.storage.CompleteDelivery(ctx, tx, 5, "w2")
	s.Require().NoError(err)
	s.Assert().True(owned)

	var left int
	s.Require().NoError(tx.QueryRow(ctx, `SELECT COUNT(*) FROM webhook_delivery`).Scan(&left))
	s.Assert().Equal(4, left)
}

func (s *DeliveryStorageTestSuite) TestMaintenance() {
	tx, ctx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()

	n, err := s.storage.ReleaseExpiredClaims(ctx, tx, 1700000030)
	s.Require().NoError(err)
	s.Assert().Equal(int64(0), n)

	n, err = s.storage.ReleaseExpiredClaims(ctx, tx, 1700000100)
	s.Require().NoError(err)
	s.Assert().Equal(int64(1), n)

	n, err = s.storage.DeleteWebhookLogBefore(ctx, tx, 1700000016)
	s.Require().NoError(err)
	s.Assert().Equal(int64(2), n)

	n, err = s.storage.DeleteAPILogBefore(ctx, tx, 1700000016)
	s.Require().NoError(err)
	s.Assert().Equal(int64(0), n)
}
