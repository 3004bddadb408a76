package inbound_test

import (
	"context"
	"errors"
	"testing"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/crm"
	"github.com/codatende/webhookhub/pkg/hub_server/inbound"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/util"
	mock_connection "github.com/codatende/webhookhub/test/mock/hub_server/connection"
	mock_crm "github.com/codatende/webhookhub/test/mock/hub_server/crm"
	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type IngestorTestSuite struct {
	suite.Suite
	ctx         context.Context
	ctrl        *gomock.Controller
	connections *mock_connection.MockManager
	crm         *mock_crm.MockManager
	ingestor    inbound.Ingestor

	conn model.Connection
}

func TestIngestor(t *testing.T) {
	suite.Run(t, new(IngestorTestSuite))
}

func (s *IngestorTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.connections = mock_connection.NewMockManager(s.ctrl)
	s.crm = mock_crm.NewMockManager(s.ctrl)
	s.ingestor = inbound.NewIngestor(s.connections, s.crm)
	s.conn = model.Connection{ID: "wac_1", CompanyID: "company_1", Status: model.ConnectionConnected, PhoneNumberID: "1099887766", DefaultQueueID: "que_1"}
}

func (s *IngestorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *IngestorTestSuite) TestIngestMeta() {
	changes, err := inbound.ParseMeta([]byte(metaMessages))
	s.Require().NoError(err)
	changes[0].Messages = changes[0].Messages[:2]

	s.connections.EXPECT().FindByPhoneNumberID(gomock.Any(), "1099887766").Return(s.conn, nil)
	gomock.InOrder(
		s.crm.EXPECT().ApplyAck(gomock.Any(), int64(1700000200), "company_1", "wamid.OUT1", model.AckDelivered).Return([]model.Message{{ID: "msg_9"}}, nil),
		s.crm.EXPECT().ApplyAck(gomock.Any(), int64(1700000200), "company_1", "wamid.OUT2", model.AckFailed).Return(nil, nil),
		s.crm.EXPECT().RecordInbound(gomock.Any(), int64(1700000200), gomock.Any()).DoAndReturn(
			func(ctx context.Context, ts int64, in crm.InboundMessage) (model.Message, bool, error) {
				s.Equal(s.conn, in.Connection)
				s.Equal("5511912345678", in.From)
				s.Equal("Ana", in.PushName)
				s.Equal("wamid.TEXT", in.Wid)
				s.Equal("Oi", in.Body)
				s.Empty(in.MediaType)
				s.Equal(int64(1700000100), in.Timestamp)

				var data map[string]any
				s.Require().NoError(json.Unmarshal(in.Data, &data))
				s.Equal("meta_cloud_api", data["source"])
				return model.Message{ID: "msg_1"}, true, nil
			},
		),
		s.crm.EXPECT().RecordInbound(gomock.Any(), int64(1700000200), gomock.Any()).DoAndReturn(
			func(ctx context.Context, ts int64, in crm.InboundMessage) (model.Message, bool, error) {
				s.Equal("foto", in.Body)
				s.Equal("image/jpeg", in.MediaType)
				return model.Message{ID: "msg_2"}, false, nil
			},
		),
	)

	stats, err := s.ingestor.IngestMeta(s.ctx, 1700000200, changes)
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Messages: 1, Duplicates: 1, Statuses: 1, Skipped: 1}, stats)
}

func (s *IngestorTestSuite) TestIngestMetaUnknownNumber() {
	changes := []inbound.MetaChange{{PhoneNumberID: "404", Messages: []inbound.Message{{ID: "wamid.X", From: "5511"}}}}
	s.connections.EXPECT().FindByPhoneNumberID(gomock.Any(), "404").Return(model.Connection{}, model.ErrConnectionNotFound)

	stats, err := s.ingestor.IngestMeta(s.ctx, 1700000200, changes)
	s.Require().NoError(err)
	s.Equal(1, stats.Skipped)
}

func (s *IngestorTestSuite) TestIngestMetaConnectionUpdate() {
	other := s.conn
	other.ID = "wac_2"
	update := connection.ProviderUpdate{QualityRating: util.Ptr("FLAGGED")}
	changes := []inbound.MetaChange{{WabaID: "2200", Field: "phone_number_quality_update", Update: &update}}

	gomock.InOrder(
		s.connections.EXPECT().FindByWabaID(gomock.Any(), "2200").Return([]model.Connection{s.conn, other}, nil),
		s.connections.EXPECT().ApplyProviderUpdate(gomock.Any(), int64(1700000200), s.conn, update).Return(s.conn, nil),
		s.connections.EXPECT().ApplyProviderUpdate(gomock.Any(), int64(1700000200), other, update).Return(other, nil),
	)

	stats, err := s.ingestor.IngestMeta(s.ctx, 1700000200, changes)
	s.Require().NoError(err)
	s.Equal(2, stats.Updates)
}

func (s *IngestorTestSuite) TestIngestMetaStorageFailure() {
	changes := []inbound.MetaChange{{PhoneNumberID: "1099887766", Statuses: []inbound.Status{{ID: "wamid.1", Ack: model.AckRead}}}}
	s.connections.EXPECT().FindByPhoneNumberID(gomock.Any(), "1099887766").Return(s.conn, nil)
	s.crm.EXPECT().ApplyAck(gomock.Any(), gomock.Any(), "company_1", "wamid.1", model.AckRead).Return(nil, errors.New("connection reset"))

	_, err := s.ingestor.IngestMeta(s.ctx, 1700000200, changes)
	s.Error(err)
}

func (s *IngestorTestSuite) TestIngestNotificaMeInbound() {
	env := inbound.NotificaMeEnvelope{
		Direction:     inbound.DirectionIn,
		ChannelTokens: []string{"stale-token", "chan-token-1"},
		Message: inbound.Message{
			ID:      "wamid.PROVIDER",
			RawID:   "nm-raw-1",
			From:    "+55 (11) 91234-5678",
			Content: inbound.TextContent{Text: "Olá"},
		},
		Raw: json.RawMessage(`{"id":"nm-raw-1"}`),
	}

	gomock.InOrder(
		s.connections.EXPECT().FindByChannelToken(gomock.Any(), "stale-token").Return(model.Connection{}, model.ErrUnknownChannel),
		s.connections.EXPECT().FindByChannelToken(gomock.Any(), "chan-token-1").Return(s.conn, nil),
		s.crm.EXPECT().RecordInbound(gomock.Any(), int64(1700000200), gomock.Any()).DoAndReturn(
			func(ctx context.Context, ts int64, in crm.InboundMessage) (model.Message, bool, error) {
				s.Equal("5511912345678", in.From)
				s.Equal("wamid.PROVIDER", in.Wid)
				s.Equal("nm-raw-1", in.RawID)
				s.Equal("Olá", in.Body)
				s.JSONEq(`{"source":"notificame_hub","originalPayload":{"id":"nm-raw-1"}}`, string(in.Data))
				return model.Message{ID: "msg_1"}, true, nil
			},
		),
	)

	stats, err := s.ingestor.IngestNotificaMe(s.ctx, 1700000200, env)
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Messages: 1}, stats)
}

func (s *IngestorTestSuite) TestIngestNotificaMeUnknownChannel() {
	env := inbound.NotificaMeEnvelope{
		Direction:     inbound.DirectionIn,
		ChannelTokens: []string{"forged"},
		Message:       inbound.Message{ID: "x", From: "5511912345678", Content: inbound.TextContent{Text: "hi"}},
	}
	s.connections.EXPECT().FindByChannelToken(gomock.Any(), "forged").Return(model.Connection{}, model.ErrUnknownChannel)

	_, err := s.ingestor.IngestNotificaMe(s.ctx, 1700000200, env)
	s.ErrorIs(err, model.ErrUnknownChannel)

	_, err = s.ingestor.IngestNotificaMe(s.ctx, 1700000200, inbound.NotificaMeEnvelope{Direction: inbound.DirectionIn, Message: env.Message})
	s.ErrorIs(err, model.ErrUnknownChannel)
}

func (s *IngestorTestSuite) TestIngestNotificaMeReceipt() {
	ack := model.AckRead
	env := inbound.NotificaMeEnvelope{
		ChannelTokens: []string{"chan-token-1"},
		Status:        "read",
		Ack:           &ack,
		Message:       inbound.Message{ID: "wamid.PROVIDER", RawID: "nm-raw-1"},
	}

	gomock.InOrder(
		s.connections.EXPECT().FindByChannelToken(gomock.Any(), "chan-token-1").Return(s.conn, nil),
		s.crm.EXPECT().ApplyAck(gomock.Any(), gomock.Any(), "company_1", "wamid.PROVIDER", model.AckRead).Return(nil, nil),
		s.crm.EXPECT().ApplyAck(gomock.Any(), gomock.Any(), "company_1", "nm-raw-1", model.AckRead).Return([]model.Message{{ID: "msg_1"}}, nil),
	)

	stats, err := s.ingestor.IngestNotificaMe(s.ctx, 1700000200, env)
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Statuses: 1}, stats)

	// Receipts of unknown channels are dropped without rejecting the notification.
	s.connections.EXPECT().FindByChannelToken(gomock.Any(), "chan-token-1").Return(model.Connection{}, model.ErrUnknownChannel)
	stats, err = s.ingestor.IngestNotificaMe(s.ctx, 1700000200, env)
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Skipped: 1}, stats)
}

func (s *IngestorTestSuite) TestIngestNotificaMeIgnored() {
	stats, err := s.ingestor.IngestNotificaMe(s.ctx, 1700000200, inbound.NotificaMeEnvelope{Direction: inbound.DirectionOut, Message: inbound.Message{ID: "x", From: "1"}})
	s.Require().NoError(err)
	s.Equal(1, stats.Skipped)

	stats, err = s.ingestor.IngestNotificaMe(s.ctx, 1700000200, inbound.NotificaMeEnvelope{Type: "CHANNEL_STATUS"})
	s.Require().NoError(err)
	s.Equal(1, stats.Skipped)
}

func (s *IngestorTestSuite) uazapiConn(status model.ConnectionStatus) model.Connection {
	return model.Connection{ID: "wac_7", CompanyID: "company_1", Provider: model.ProviderUazAPI, Status: status, UazAPIToken: "uaz-token"}
}

func (s *IngestorTestSuite) TestIngestUazAPIMessage() {
	env, err := inbound.ParseUazAPI("", []byte(uazapiMessage))
	s.Require().NoError(err)
	conn := s.uazapiConn(model.ConnectionConnected)

	gomock.InOrder(
		s.connections.EXPECT().FindByInstanceToken(gomock.Any(), "inst-42").Return(conn, nil),
		s.crm.EXPECT().RecordInbound(gomock.Any(), int64(1700000200), gomock.Any()).DoAndReturn(
			func(ctx context.Context, ts int64, in crm.InboundMessage) (model.Message, bool, error) {
				s.Equal(conn, in.Connection)
				s.Equal("5511912345678", in.From)
				s.Equal("Bruno", in.PushName)
				s.Equal("3EB0C0FFEE", in.Wid)
				s.Equal("nota fiscal", in.Body)
				s.Equal("https://mmg.whatsapp.net/a.jpg", in.MediaURL)

				var data map[string]any
				s.Require().NoError(json.Unmarshal(in.Data, &data))
				s.Equal("uazapi", data["source"])
				s.Equal(false, data["is_group"])
				return model.Message{ID: "msg_1"}, true, nil
			},
		),
	)

	stats, err := s.ingestor.IngestUazAPI(s.ctx, 1700000200, env)
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Messages: 1}, stats)
}

func (s *IngestorTestSuite) TestIngestUazAPIUnknownInstance() {
	gomock.InOrder(
		s.connections.EXPECT().FindByInstanceToken(gomock.Any(), "forged").Return(model.Connection{}, model.ErrUnknownChannel),
		s.connections.EXPECT().FindByInstanceToken(gomock.Any(), "inst-9").Return(model.Connection{}, model.ErrUnknownChannel),
	)

	_, err := s.ingestor.IngestUazAPI(s.ctx, 1700000200, inbound.UazAPIEnvelope{Event: inbound.UazAPIEventMessage, Tokens: []string{"forged", "inst-9"}})
	s.ErrorIs(err, model.ErrUnknownChannel)

	_, err = s.ingestor.IngestUazAPI(s.ctx, 1700000200, inbound.UazAPIEnvelope{Event: inbound.UazAPIEventMessage})
	s.ErrorIs(err, model.ErrUnknownChannel)
}

func (s *IngestorTestSuite) TestIngestUazAPIConnected() {
	conn := s.uazapiConn(model.ConnectionWaitingQR)
	connected := model.ConnectionConnected

	gomock.InOrder(
		s.connections.EXPECT().FindByInstanceToken(gomock.Any(), "uaz-token").Return(conn, nil),
		s.connections.EXPECT().ApplyProviderUpdate(gomock.Any(), int64(1700000200), conn, connection.ProviderUpdate{Status: &connected}).Return(conn, nil),
	)

	stats, err := s.ingestor.IngestUazAPI(s.ctx, 1700000200, inbound.UazAPIEnvelope{Event: inbound.UazAPIEventConnection, Tokens: []string{"uaz-token"}, Status: &connected})
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Updates: 1}, stats)
}

func (s *IngestorTestSuite) TestIngestUazAPIQRCodeAfterConnected() {
	conn := s.uazapiConn(model.ConnectionConnected)
	waiting := model.ConnectionWaitingQR

	gomock.InOrder(
		s.connections.EXPECT().FindByInstanceToken(gomock.Any(), "uaz-token").Return(conn, nil),
		s.connections.EXPECT().ApplyProviderUpdate(gomock.Any(), gomock.Any(), conn, gomock.Any()).Return(model.Connection{}, model.ErrInvalidTransition),
	)

	stats, err := s.ingestor.IngestUazAPI(s.ctx, 1700000200, inbound.UazAPIEnvelope{Event: inbound.UazAPIEventQRCode, Tokens: []string{"uaz-token"}, Status: &waiting})
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Skipped: 1}, stats)
}

func (s *IngestorTestSuite) TestIngestUazAPIAck() {
	conn := s.uazapiConn(model.ConnectionConnected)
	ack := model.AckRead

	gomock.InOrder(
		s.connections.EXPECT().FindByInstanceToken(gomock.Any(), "uaz-token").Return(conn, nil),
		s.crm.EXPECT().ApplyAck(gomock.Any(), int64(1700000200), "company_1", "3EB0", model.AckRead).Return([]model.Message{{ID: "msg_3"}}, nil),
	)

	stats, err := s.ingestor.IngestUazAPI(s.ctx, 1700000200, inbound.UazAPIEnvelope{
		Event:   inbound.UazAPIEventAck,
		Tokens:  []string{"uaz-token"},
		Ack:     &ack,
		Message: inbound.Message{ID: "3EB0"},
	})
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Statuses: 1}, stats)
}

func (s *IngestorTestSuite) TestIngestUazAPIOwnMessageIgnored() {
	s.connections.EXPECT().FindByInstanceToken(gomock.Any(), "uaz-token").Return(s.uazapiConn(model.ConnectionConnected), nil)

	stats, err := s.ingestor.IngestUazAPI(s.ctx, 1700000200, inbound.UazAPIEnvelope{
		Event:   inbound.UazAPIEventMessage,
		Tokens:  []string{"uaz-token"},
		FromMe:  true,
		Message: inbound.Message{ID: "OUT1", From: "5511912345678@s.whatsapp.net"},
	})
	s.Require().NoError(err)
	s.Equal(inbound.Stats{Skipped: 1}, stats)
}
