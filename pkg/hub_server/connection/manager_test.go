package connection_test

import (
	"context"
	"testing"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/util"
	mock_storage "github.com/codatende/webhookhub/test/mock/hub_server/storage"
	mock_webhook "github.com/codatende/webhookhub/test/mock/hub_server/webhook"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type ManagerTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	storage *mock_storage.MockConnectionStorage
	tx      *mock_storage.MockTx
	emitter *mock_webhook.MockEmitter
	manager connection.Manager
}

func TestManager(t *testing.T) {
	suite.Run(t, new(ManagerTestSuite))
}

func (s *ManagerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.storage = mock_storage.NewMockConnectionStorage(s.ctrl)
	s.tx = mock_storage.NewMockTx(s.ctrl)
	s.emitter = mock_webhook.NewMockEmitter(s.ctrl)
	s.manager = connection.NewManager(s.storage, s.emitter)
}

func (s *ManagerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ManagerTestSuite) connection(status model.ConnectionStatus) model.Connection {
	return model.Connection{
		ID:            "wac_1",
		Version:       3,
		CompanyID:     "company_1",
		Name:          "Support line",
		Provider:      model.ProviderCloudAPI,
		Status:        status,
		PhoneNumberID: "1098765432",
		CreatedAt:     1700000000,
		CreatedBy:     "creator",
		UpdatedAt:     1700000000,
		UpdatedBy:     "creator",
	}
}

func (s *ManagerTestSuite) expectLoad(conn model.Connection) *gomock.Call {
	return s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, storage.ListConnectionRequest{Limit: 1, CompanyID: conn.CompanyID, IDs: []string{conn.ID}}).
		Return(storage.ListConnectionResult{Total: 1, Records: []model.Connection{conn}}, nil)
}

func (s *ManagerTestSuite) TestCreateConnection() {
	ts := time.Now().Unix()

	req := connection.CreateConnectionRequest{
		Requester:  "requester",
		CompanyID:  "company_1",
		Name:       "NotificaMe channel",
		Provider:   model.ProviderNotificaMe,
		InstanceID: "channel-token",
		IsDefault:  true,
	}

	expected := model.Connection{
		Version:         1,
		CompanyID:       "company_1",
		Name:            "NotificaMe channel",
		Provider:        model.ProviderNotificaMe,
		Status:          model.ConnectionDisconnected,
		IsDefault:       true,
		InstanceID:      "channel-token",
		ChannelTokenSum: connection.ChannelTokenSum("channel-token"),
		CreatedAt:       ts,
		CreatedBy:       "requester",
		UpdatedAt:       ts,
		UpdatedBy:       "requester",
	}

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ClearDefaultConnection(gomock.Any(), s.tx, "company_1", gomock.Any()).Return(nil),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, conn model.Connection) error {
				expected.ID = conn.ID
				s.Assert().Equal(expected, conn)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	conn, err := s.manager.Create(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Contains(conn.ID, "wac_")
	s.Assert().Equal(expected, conn)
}

func (s *ManagerTestSuite) TestCreateConnectionWithInvalidRequest() {
	reqs := []connection.CreateConnectionRequest{
		{Requester: "r", CompanyID: "c", Provider: model.ProviderManual},
		{Requester: "r", CompanyID: "c", Name: "n", Provider: "telegram"},
		{Requester: "r", CompanyID: "c", Name: "n", Provider: model.ProviderNotificaMe},
		{Requester: "r", CompanyID: "c", Name: "n", Provider: model.ProviderUazAPI, UazAPIURL: "not a url", UazAPIToken: "t"},
		{Requester: "r", CompanyID: "c", Name: "n", Provider: model.ProviderCloudAPI, AccessToken: "t"},
	}
	for _, req := range reqs {
		_, err := s.manager.Create(s.ctx, 1, req)
		s.Assert().ErrorIs(err, model.ErrInvalidParameter, "%+v", req)
	}
}

func (s *ManagerTestSuite) TestTransitionToConnected() {
	ts := int64(1700000100)
	conn := s.connection(model.ConnectionConnecting)

	emitted := []model.EventType{}
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.expectLoad(conn),
		s.emitter.EXPECT().EmitWithTx(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, event model.Event) (int, error) {
				emitted = append(emitted, event.Type)
				s.Assert().Equal("company_1", event.CompanyID)
				s.Assert().Equal(ts, event.OccurredAt)
				s.Assert().JSONEq(`{"id":"wac_1","name":"Support line","provider":"cloud_api","phone_number_id":"1098765432","previous_status":"CONNECTING","status":"CONNECTED"}`, string(event.Data))
				return 1, nil
			},
		).Times(2),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, stored model.Connection) error {
				s.Assert().Equal(model.ConnectionConnected, stored.Status)
				s.Assert().Equal(int64(4), stored.Version)
				s.Assert().Equal(ts, stored.UpdatedAt)
				s.Assert().Equal("requester", stored.UpdatedBy)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	req := connection.TransitionRequest{
		ConnectionIDRequest: connection.ConnectionIDRequest{Requester: "requester", CompanyID: "company_1", ID: "wac_1"},
		Status:              model.ConnectionConnected,
	}
	res, err := s.manager.Transition(s.ctx, ts, req)
	s.Require().NoError(err)
	s.Assert().Equal(model.ConnectionConnected, res.Status)
	s.Assert().Equal([]model.EventType{model.EventConnectionStatusChanged, model.EventWhatsAppConnected}, emitted)
}

func (s *ManagerTestSuite) TestInvalidTransition() {
	conn := s.connection(model.ConnectionDisconnected)

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.expectLoad(conn),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	req := connection.TransitionRequest{
		ConnectionIDRequest: connection.ConnectionIDRequest{Requester: "requester", CompanyID: "company_1", ID: "wac_1"},
		Status:              model.ConnectionConnected,
	}
	_, err := s.manager.Transition(s.ctx, 1700000100, req)
	s.Assert().ErrorIs(err, model.ErrInvalidTransition)
	s.Assert().Equal(409, model.ErrorToHttpStatus(err))
}

func (s *ManagerTestSuite) TestSelfTransitionDoesNotEmit() {
	conn := s.connection(model.ConnectionWaitingQR)

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.expectLoad(conn),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	req := connection.TransitionRequest{
		ConnectionIDRequest: connection.ConnectionIDRequest{Requester: "requester", CompanyID: "company_1", ID: "wac_1"},
		Status:              model.ConnectionWaitingQR,
	}
	_, err := s.manager.Transition(s.ctx, 1700000100, req)
	s.Require().NoError(err)
}

func (s *ManagerTestSuite) TestDeleteConnection() {
	conn := s.connection(model.ConnectionConnected)
	conn.IsDefault = true

	emitted := []model.EventType{}
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.expectLoad(conn),
		s.emitter.EXPECT().EmitWithTx(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, event model.Event) (int, error) {
				emitted = append(emitted, event.Type)
				return 0, nil
			},
		).Times(2),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, stored model.Connection) error {
				s.Assert().True(stored.Deleted)
				s.Assert().False(stored.IsDefault)
				s.Assert().Equal(model.ConnectionDisconnected, stored.Status)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.manager.Delete(s.ctx, 1700000100, connection.ConnectionIDRequest{Requester: "requester", CompanyID: "company_1", ID: "wac_1"})
	s.Require().NoError(err)
	s.Assert().Equal([]model.EventType{model.EventConnectionStatusChanged, model.EventWhatsAppDisconnected}, emitted)
}

func (s *ManagerTestSuite) TestGetConnectionNotFound() {
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, gomock.Any()).Return(storage.ListConnectionResult{}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.manager.Get(s.ctx, connection.ConnectionIDRequest{CompanyID: "company_1", ID: "wac_404"})
	s.Assert().ErrorIs(err, model.ErrConnectionNotFound)
}

func (s *ManagerTestSuite) TestSetDefault() {
	conn := s.connection(model.ConnectionConnected)

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.expectLoad(conn),
		s.storage.EXPECT().ClearDefaultConnection(gomock.Any(), s.tx, "company_1", "wac_1").Return(nil),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, stored model.Connection) error {
				s.Assert().True(stored.IsDefault)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	res, err := s.manager.SetDefault(s.ctx, 1700000100, connection.ConnectionIDRequest{Requester: "requester", CompanyID: "company_1", ID: "wac_1"})
	s.Require().NoError(err)
	s.Assert().True(res.IsDefault)
}

func (s *ManagerTestSuite) TestCompleteSignup() {
	conn := s.connection(model.ConnectionDisconnected)
	conn.PhoneNumberID = ""

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.expectLoad(conn),
		s.emitter.EXPECT().EmitWithTx(gomock.Any(), s.tx, gomock.Any()).Return(0, nil).Times(2),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, stored model.Connection) error {
				s.Assert().Equal("555000111", stored.PhoneNumberID)
				s.Assert().Equal("waba_9", stored.WabaID)
				s.Assert().Equal("long-lived", stored.AccessToken)
				s.Assert().Equal(model.ConnectionConnected, stored.Status)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	req := connection.CompleteSignupRequest{
		ConnectionIDRequest: connection.ConnectionIDRequest{Requester: "requester", CompanyID: "company_1", ID: "wac_1"},
		PhoneNumberID:       "555000111",
		WabaID:              "waba_9",
		AccessToken:         "long-lived",
	}
	res, err := s.manager.CompleteSignup(s.ctx, 1700000100, req)
	s.Require().NoError(err)
	s.Assert().Equal(model.ConnectionConnected, res.Status)
}

func (s *ManagerTestSuite) TestApplyProviderQualityUpdate() {
	conn := s.connection(model.ConnectionConnected)

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.expectLoad(conn),
		s.emitter.EXPECT().EmitWithTx(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, event model.Event) (int, error) {
				s.Assert().Equal(model.EventConnectionStatusChanged, event.Type)
				s.Assert().Contains(string(event.Data), `"quality_rating":"YELLOW"`)
				return 1, nil
			},
		),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).Return(nil),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	res, err := s.manager.ApplyProviderUpdate(s.ctx, 1700000100, conn, connection.ProviderUpdate{QualityRating: util.Ptr("YELLOW")})
	s.Require().NoError(err)
	s.Assert().Equal("YELLOW", res.QualityRating)
	s.Assert().Equal("provider", res.UpdatedBy)
}

func (s *ManagerTestSuite) TestFindByChannelToken() {
	conn := s.connection(model.ConnectionConnected)
	conn.Provider = model.ProviderNotificaMe
	conn.InstanceID = "channel-token"

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, storage.ListConnectionRequest{Limit: 1, ChannelTokenSum: connection.ChannelTokenSum("channel-token")}).
			Return(storage.ListConnectionResult{Total: 1, Records: []model.Connection{conn}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	res, err := s.manager.FindByChannelToken(s.ctx, "channel-token")
	s.Require().NoError(err)
	s.Assert().Equal("wac_1", res.ID)
}

func (s *ManagerTestSuite) TestFindByUnknownChannelToken() {
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, gomock.Any()).Return(storage.ListConnectionResult{}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.manager.FindByChannelToken(s.ctx, "nope")
	s.Assert().ErrorIs(err, model.ErrUnknownChannel)

	_, err = s.manager.FindByChannelToken(s.ctx, "")
	s.Assert().ErrorIs(err, model.ErrUnknownChannel)
}

func (s *ManagerTestSuite) TestResolveSender() {
	connected := s.connection(model.ConnectionConnected)
	waiting := s.connection(model.ConnectionWaitingQR)
	waiting.ID = "wac_2"

	s.Run("explicit connected", func() {
		gomock.InOrder(
			s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
			s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, storage.ListConnectionRequest{Limit: 1, CompanyID: "company_1", IDs: []string{"wac_1"}}).
				Return(storage.ListConnectionResult{Total: 1, Records: []model.Connection{connected}}, nil),
			s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
		)
		res, err := s.manager.ResolveSender(s.ctx, "company_1", "wac_1")
		s.Require().NoError(err)
		s.Assert().Equal("wac_1", res.ID)
	})

	s.Run("explicit not connected", func() {
		gomock.InOrder(
			s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
			s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, gomock.Any()).
				Return(storage.ListConnectionResult{Total: 1, Records: []model.Connection{waiting}}, nil),
			s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
		)
		_, err := s.manager.ResolveSender(s.ctx, "company_1", "wac_2")
		s.Assert().ErrorIs(err, model.ErrConnectionNotConnected)
	})

	s.Run("fallback", func() {
		gomock.InOrder(
			s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
			s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, storage.ListConnectionRequest{Limit: 1, CompanyID: "company_1", Statuses: []model.ConnectionStatus{model.ConnectionConnected}}).
				Return(storage.ListConnectionResult{Total: 1, Records: []model.Connection{connected}}, nil),
			s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
		)
		res, err := s.manager.ResolveSender(s.ctx, "company_1", "")
		s.Require().NoError(err)
		s.Assert().Equal("wac_1", res.ID)
	})

	s.Run("none connected", func() {
		gomock.InOrder(
			s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
			s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, gomock.Any()).Return(storage.ListConnectionResult{}, nil),
			s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
		)
		_, err := s.manager.ResolveSender(s.ctx, "company_1", "")
		s.Assert().ErrorIs(err, model.ErrNoConnection)
	})
}

func (s *ManagerTestSuite) TestCreateUazAPIConnectionIndexesInstanceToken() {
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, conn model.Connection) error {
				s.Assert().Equal(connection.ChannelTokenSum("uaz-token"), conn.ChannelTokenSum)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.manager.Create(s.ctx, 1700000000, connection.CreateConnectionRequest{
		Requester:   "requester",
		CompanyID:   "company_1",
		Name:        "UazAPI line",
		Provider:    model.ProviderUazAPI,
		UazAPIURL:   "https://free.uazapi.com",
		UazAPIToken: "uaz-token",
	})
	s.Require().NoError(err)
}

func (s *ManagerTestSuite) TestFindByInstanceToken() {
	conn := s.connection(model.ConnectionWaitingQR)
	conn.Provider = model.ProviderUazAPI
	conn.UazAPIToken = "uaz-token"

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, storage.ListConnectionRequest{Limit: 1, ChannelTokenSum: connection.ChannelTokenSum("uaz-token")}).
			Return(storage.ListConnectionResult{Total: 1, Records: []model.Connection{conn}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	res, err := s.manager.FindByInstanceToken(s.ctx, "uaz-token")
	s.Require().NoError(err)
	s.Assert().Equal("wac_1", res.ID)
}

func (s *ManagerTestSuite) TestFindByInstanceTokenRejectsOtherProviders() {
	// A NotificaMe channel token is not a UazAPI instance token.
	conn := s.connection(model.ConnectionConnected)
	conn.Provider = model.ProviderNotificaMe
	conn.InstanceID = "channel-token"

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().ListConnection(gomock.Any(), s.tx, gomock.Any()).
			Return(storage.ListConnectionResult{Total: 1, Records: []model.Connection{conn}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.manager.FindByInstanceToken(s.ctx, "channel-token")
	s.Assert().ErrorIs(err, model.ErrUnknownChannel)

	_, err = s.manager.FindByInstanceToken(s.ctx, "")
	s.Assert().ErrorIs(err, model.ErrUnknownChannel)
}

func (s *ManagerTestSuite) TestUpdateUazAPITokenReindexesConnection() {
	conn := s.connection(model.ConnectionWaitingQR)
	conn.Provider = model.ProviderUazAPI
	conn.UazAPIToken = "old-token"
	conn.ChannelTokenSum = connection.ChannelTokenSum("old-token")

	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(2)).Return(s.tx, s.ctx, nil),
		s.expectLoad(conn),
		s.storage.EXPECT().StoreConnection(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, stored model.Connection) error {
				s.Assert().Equal("new-token", stored.UazAPIToken)
				s.Assert().Equal(connection.ChannelTokenSum("new-token"), stored.ChannelTokenSum)
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	_, err := s.manager.Update(s.ctx, 1700000100, connection.UpdateConnectionRequest{
		Requester:   "requester",
		CompanyID:   "company_1",
		ID:          "wac_1",
		UazAPIToken: util.Ptr("new-token"),
	})
	s.Require().NoError(err)
}
