package postgres_test

import (
	"testing"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/hub_server/storage/postgres"
	"github.com/stretchr/testify/suite"
)

type ConnectionStorageTestSuite struct {
	BaseTestSuite
	storage storage.ConnectionStorage
}

func TestConnectionStorage(t *testing.T) {
	suite.Run(t, new(ConnectionStorageTestSuite))
}

func (s *ConnectionStorageTestSuite) SetupTest() {
	s.BaseTestSuite.SetupTest()
	s.storage = postgres.NewStorageWithPool(s.pgPool)
	s.loadFixtures("testdata/connection")
}

func (s *ConnectionStorageTestSuite) TestStoreAndListConnection() {
	tx, ctx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()

	conn := model.Connection{
		ID:              "wac_new",
		Version:         1,
		CompanyID:       "company_1",
		Name:            "Sales",
		Provider:        model.ProviderNotificaMe,
		Status:          model.ConnectionDisconnected,
		InstanceID:      "secret-channel",
		ChannelTokenSum: "abc123",
		CreatedAt:       1700000500,
		CreatedBy:       "user_1",
		UpdatedAt:       1700000500,
		UpdatedBy:       "user_1",
	}
	s.Require().NoError(s.storage.StoreConnection(ctx, tx, conn))

	res, err := s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{Limit: 10, ChannelTokenSum: "abc123"})
	s.Require().NoError(err)
	s.Require().Len(res.Records, 1)
	s.Assert().Equal(conn, res.Records[0])

	conn.Version = 2
	conn.Status = model.ConnectionConnecting
	s.Require().NoError(s.storage.StoreConnection(ctx, tx, conn))
	res, err = s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{Limit: 10, IDs: []string{"wac_new"}})
	s.Require().NoError(err)
	s.Require().Len(res.Records, 1)
	s.Assert().Equal(model.ConnectionConnecting, res.Records[0].Status)
	s.Assert().Equal(int64(2), res.Records[0].Version)

	// Default connection comes first.
	res, err = s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{Limit: 10, CompanyID: "company_1"})
	s.Require().NoError(err)
	s.Assert().Equal(3, res.Total)
	s.Assert().Equal("wac_1", res.Records[0].ID)
	s.Assert().True(res.Records[0].IsDefault)
	s.Assert().Equal("EAAG-token", res.Records[0].AccessToken)

	res, err = s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{
		Limit:     10,
		CompanyID: "company_1",
		Statuses:  []model.ConnectionStatus{model.ConnectionConnected},
	})
	s.Require().NoError(err)
	s.Require().Len(res.Records, 1)
	s.Assert().Equal("wac_1", res.Records[0].ID)

	res, err = s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{Limit: 10, PhoneNumberID: "1099887766"})
	s.Require().NoError(err)
	s.Require().Len(res.Records, 1)
	s.Assert().Equal("company_1", res.Records[0].CompanyID)

	res, err = s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{Limit: 10, WabaID: "2200"})
	s.Require().NoError(err)
	s.Require().Len(res.Records, 1)
	s.Assert().Equal("wac_1", res.Records[0].ID)
}

func (s *ConnectionStorageTestSuite) TestClearDefaultConnection() {
	tx, ctx, err := s.storage.CreateTx(s.ctx, storage.TxOptionWithWrite(true))
	s.Require().NoError(err)
	defer func() { _ = tx.Rollback(ctx) }()

	s.Require().NoError(s.storage.ClearDefaultConnection(ctx, tx, "company_1", "wac_2"))
	res, err := s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{Limit: 10, CompanyID: "company_1", DefaultOnly: true})
	s.Require().NoError(err)
	s.Assert().Empty(res.Records)

	res, err = s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{Limit: 10, IDs: []string{"wac_2"}})
	s.Require().NoError(err)
	conn := res.Records[0]
	conn.IsDefault = true
	conn.Version += 1
	s.Require().NoError(s.storage.StoreConnection(ctx, tx, conn))

	res, err = s.storage.ListConnection(ctx, tx, storage.ListConnectionRequest{Limit: 10, CompanyID: "company_1", DefaultOnly: true})
	s.Require().NoError(err)
	s.Require().Len(res.Records, 1)
	s.Assert().Equal("wac_2", res.Records[0].ID)
}
