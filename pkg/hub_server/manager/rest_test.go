package manager_test

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/logstream"
	"github.com/codatende/webhookhub/pkg/hub_server/manager"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/signup"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	mock_auth "github.com/codatende/webhookhub/test/mock/hub_server/auth"
	mock_connection "github.com/codatende/webhookhub/test/mock/hub_server/connection"
	mock_provider "github.com/codatende/webhookhub/test/mock/hub_server/provider"
	mock_storage "github.com/codatende/webhookhub/test/mock/hub_server/storage"
	mock_webhook "github.com/codatende/webhookhub/test/mock/hub_server/webhook"
	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/gorilla/websocket"
	"github.com/samber/lo"
	"github.com/stretchr/testify/suite"
)

const (
	jwtSecret  = "dashboard-secret"
	serviceKey = "service-role-key"
)

type ManagerAPITestSuite struct {
	suite.Suite

	ctx         context.Context
	ctrl        *gomock.Controller
	webhookCtrl *mock_webhook.MockWebhookController
	emitter     *mock_webhook.MockEmitter
	tokenMgr    *mock_auth.MockAPITokenManager
	connMgr     *mock_connection.MockManager
	apiLogs     *mock_storage.MockAPILogStorage
	tx          *mock_storage.MockTx
	graph       *mock_provider.MockGraphClient
	hub         *logstream.Hub
	api         *manager.ManagerAPI

	user  auth.DashboardClaims
	token string
}

func TestManagerAPI(t *testing.T) {
	suite.Run(t, new(ManagerAPITestSuite))
}

func (s *ManagerAPITestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.webhookCtrl = mock_webhook.NewMockWebhookController(s.ctrl)
	s.emitter = mock_webhook.NewMockEmitter(s.ctrl)
	s.tokenMgr = mock_auth.NewMockAPITokenManager(s.ctrl)
	s.connMgr = mock_connection.NewMockManager(s.ctrl)
	s.apiLogs = mock_storage.NewMockAPILogStorage(s.ctrl)
	s.tx = mock_storage.NewMockTx(s.ctrl)
	s.graph = mock_provider.NewMockGraphClient(s.ctrl)
	s.hub = logstream.NewHub()

	dashboard := auth.NewDashboardAuthenticator(jwtSecret)
	s.user = auth.DashboardClaims{CompanyID: "company_1", UserID: "user_1"}
	token, err := dashboard.Issue(s.user, time.Hour)
	s.Require().NoError(err)
	s.token = token

	correlator := signup.NewCorrelator(signup.WithPolling(3, 10*time.Millisecond))
	api, err := manager.NewManagerAPIWithControllers(manager.Controllers{
		Webhooks:    s.webhookCtrl,
		Emitter:     s.emitter,
		Tokens:      s.tokenMgr,
		Connections: s.connMgr,
		Signup:      signup.NewService(correlator, s.connMgr, s.graph),
		APILogs:     s.apiLogs,
		LogStream:   s.hub,
		Dashboard:   dashboard,
	}, serviceKey, "localhost:0")
	s.Require().NoError(err)
	s.api = api
}

func (s *ManagerAPITestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ManagerAPITestSuite) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.api.Handler().ServeHTTP(rec, req)
	return rec
}

func (s *ManagerAPITestSuite) decode(rec *httptest.ResponseRecorder, v any) {
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), v))
}

func (s *ManagerAPITestSuite) TestRequiresDashboardToken() {
	req := httptest.NewRequest(http.MethodGet, "/webhooks", nil)
	rec := httptest.NewRecorder()
	s.api.Handler().ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)

	other, err := auth.NewDashboardAuthenticator("other-secret").Issue(s.user, time.Hour)
	s.Require().NoError(err)
	req = httptest.NewRequest(http.MethodGet, "/webhooks", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	rec = httptest.NewRecorder()
	s.api.Handler().ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)
}

func (s *ManagerAPITestSuite) TestCreateWebhook() {
	expected := model.Webhook{ID: "whk_1", CompanyID: "company_1", Name: "crm", Url: "https://example.com/hook", IsActive: true}
	s.webhookCtrl.EXPECT().Create(gomock.Any(), gomock.Any(), webhook.CreateWebhookRequest{
		Requester: "user_1",
		CompanyID: "company_1",
		Name:      "crm",
		Url:       "https://example.com/hook",
		Events:    []model.EventType{model.EventMessageSent},
	}).Return(expected, nil)

	// Identity comes from the token, never from the body.
	rec := s.do(http.MethodPost, "/webhooks", map[string]any{
		"name":       "crm",
		"url":        "https://example.com/hook",
		"events":     []string{string(model.EventMessageSent)},
		"company_id": "company_2",
	})
	s.Require().Equal(http.StatusCreated, rec.Code)

	var result model.Webhook
	s.decode(rec, &result)
	s.Equal(expected, result)
}

func (s *ManagerAPITestSuite) TestCreateWebhookInvalid() {
	s.webhookCtrl.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(model.Webhook{}, fmt.Errorf("url is invalid%w", model.ErrInvalidParameter))

	rec := s.do(http.MethodPost, "/webhooks", map[string]any{"name": "crm", "url": "ftp://x"})
	s.Equal(http.StatusBadRequest, rec.Code)

	rec = s.do(http.MethodPost, "/webhooks", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ManagerAPITestSuite) TestGetWebhookNotFound() {
	s.webhookCtrl.EXPECT().Get(gomock.Any(), webhook.WebhookIDRequest{Requester: "user_1", CompanyID: "company_1", ID: "whk_9"}).
		Return(model.Webhook{}, model.ErrWebhookNotFound)

	rec := s.do(http.MethodGet, "/webhooks/whk_9", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ManagerAPITestSuite) TestListWebhookLogs() {
	s.webhookCtrl.EXPECT().ListLogs(gomock.Any(), storage.ListWebhookLogRequest{
		Offset:     10,
		Limit:      20,
		CompanyID:  "company_1",
		WebhookIDs: []string{"whk_1", "whk_2"},
		DeliveryID: "dlv_1",
		EventTypes: []model.EventType{model.EventTicketCreated},
		Outcomes:   []model.DeliveryState{model.DeliveryFailedTerminal},
	}).Return(storage.ListWebhookLogResult{Total: 1, Records: []model.WebhookLog{{ID: "wlg_1"}}}, nil)

	rec := s.do(http.MethodGet, "/webhooks/logs?offset=10&limit=20&webhook_id=whk_1&webhook_id=whk_2&delivery_id=dlv_1&event_type=ticket.created&outcome=FAILED_TERMINAL", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var result storage.ListWebhookLogResult
	s.decode(rec, &result)
	s.Equal(1, result.Total)
	s.Equal("wlg_1", result.Records[0].ID)

	rec = s.do(http.MethodGet, "/webhooks/logs?limit=500", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ManagerAPITestSuite) TestSetWebhookStatus() {
	rec := s.do(http.MethodPost, "/webhooks/whk_1/status", map[string]any{})
	s.Equal(http.StatusBadRequest, rec.Code)

	s.webhookCtrl.EXPECT().SetStatus(gomock.Any(), gomock.Any(), webhook.SetWebhookStatusRequest{
		WebhookIDRequest: webhook.WebhookIDRequest{Requester: "user_1", CompanyID: "company_1", ID: "whk_1"},
		IsActive:         false,
	}).Return(model.Webhook{ID: "whk_1"}, nil)

	rec = s.do(http.MethodPost, "/webhooks/whk_1/status", map[string]any{"is_active": false})
	s.Equal(http.StatusOK, rec.Code)
}

func (s *ManagerAPITestSuite) TestTestWebhook() {
	s.webhookCtrl.EXPECT().Test(gomock.Any(), gomock.Any(), webhook.WebhookIDRequest{Requester: "user_1", CompanyID: "company_1", ID: "whk_1"}).
		Return(webhook.TestWebhookResult{Success: true, Status: lo.ToPtr(200), DurationMs: 12}, nil)

	rec := s.do(http.MethodPost, "/webhooks/whk_1/test", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	var result webhook.TestWebhookResult
	s.decode(rec, &result)
	s.True(result.Success)
	s.Equal(200, *result.Status)
}

func (s *ManagerAPITestSuite) TestDispatch() {
	body := `{"companyId":"company_1","eventType":"contact.created","data":{"id":"ctt_1"}}`

	req := httptest.NewRequest(http.MethodPost, "/internal/dispatch", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.api.Handler().ServeHTTP(rec, req)
	s.Equal(http.StatusUnauthorized, rec.Code)

	s.emitter.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event model.Event) (int, error) {
			s.Equal("company_1", event.CompanyID)
			s.Equal(model.EventContactCreated, event.Type)
			s.JSONEq(`{"id":"ctt_1"}`, string(event.Data))
			return 2, nil
		},
	)
	req = httptest.NewRequest(http.MethodPost, "/internal/dispatch", strings.NewReader(body))
	req.Header.Set("apikey", serviceKey)
	rec = httptest.NewRecorder()
	s.api.Handler().ServeHTTP(rec, req)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"success":true,"dispatched":2}`, rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/internal/dispatch", strings.NewReader(`{"companyId":"company_1"}`))
	req.Header.Set("Authorization", "Bearer "+serviceKey)
	rec = httptest.NewRecorder()
	s.api.Handler().ServeHTTP(rec, req)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ManagerAPITestSuite) TestAPITokenLifecycle() {
	created := auth.APIToken{ID: "tok_1", CompanyID: "company_1", Name: "zapier", IsActive: true, Permissions: []auth.Permission{auth.PermissionAll}}
	s.tokenMgr.EXPECT().CreateAPIToken(gomock.Any(), gomock.Any(), auth.CreateAPITokenRequest{
		RequestUser: auth.RequestUser{User: "user_1"},
		CompanyID:   "company_1",
		Name:        "zapier",
		Permissions: []auth.Permission{auth.PermissionAll},
	}).Return(created, auth.APITokenString("cdc_tok_1.secret"), nil)

	rec := s.do(http.MethodPost, "/api_tokens", map[string]any{"name": "zapier", "permissions": []string{string(auth.PermissionAll)}})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var issued manager.IssuedAPIToken
	s.decode(rec, &issued)
	s.Equal("tok_1", issued.Token.ID)
	s.Equal(auth.APITokenString("cdc_tok_1.secret"), issued.Key)

	idReq := auth.APITokenIDRequest{RequestUser: auth.RequestUser{User: "user_1"}, CompanyID: "company_1", ID: "tok_1"}
	s.tokenMgr.EXPECT().RevokeAPIToken(gomock.Any(), gomock.Any(), idReq).Return(created, nil)
	rec = s.do(http.MethodDelete, "/api_tokens/tok_1", nil)
	s.Equal(http.StatusOK, rec.Code)

	idReq.ID = "tok_9"
	s.tokenMgr.EXPECT().RegenerateAPIToken(gomock.Any(), gomock.Any(), idReq).Return(auth.APIToken{}, auth.APITokenString(""), auth.ErrAPITokenNotFound)
	rec = s.do(http.MethodPost, "/api_tokens/tok_9/regenerate", nil)
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ManagerAPITestSuite) TestListAPILogs() {
	gomock.InOrder(
		s.apiLogs.EXPECT().CreateTx(gomock.Any()).Return(s.tx, s.ctx, nil),
		s.apiLogs.EXPECT().ListAPILog(gomock.Any(), s.tx, storage.ListAPILogRequest{
			Limit:     50,
			CompanyID: "company_1",
			TokenIDs:  []string{"tok_1"},
			Statuses:  []int{429, 500},
		}).Return(storage.ListAPILogResult{Total: 1, Records: []model.APILog{{ID: "alg_1", ResponseStatus: 429}}}, nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)

	rec := s.do(http.MethodGet, "/api_logs?token_id=tok_1&status=429&status=500", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	var result storage.ListAPILogResult
	s.decode(rec, &result)
	s.Equal(1, result.Total)

	rec = s.do(http.MethodGet, "/api_logs?status=abc", nil)
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *ManagerAPITestSuite) TestTransitionConnection() {
	s.connMgr.EXPECT().Transition(gomock.Any(), gomock.Any(), connection.TransitionRequest{
		ConnectionIDRequest: connection.ConnectionIDRequest{Requester: "user_1", CompanyID: "company_1", ID: "wpp_1"},
		Status:              model.ConnectionWaitingQR,
	}).Return(model.Connection{}, model.ErrInvalidTransition)

	rec := s.do(http.MethodPost, "/whatsapps/wpp_1/status", map[string]any{"status": model.ConnectionWaitingQR})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ManagerAPITestSuite) TestListConnections() {
	s.connMgr.EXPECT().List(gomock.Any(), connection.ListConnectionRequest{
		Limit:     50,
		CompanyID: "company_1",
		Statuses:  []model.ConnectionStatus{model.ConnectionConnected},
	}).Return(storage.ListConnectionResult{Total: 1, Records: []model.Connection{{ID: "wpp_1", AccessToken: "secret"}}}, nil)

	rec := s.do(http.MethodGet, "/whatsapps?status=CONNECTED", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.NotContains(rec.Body.String(), "secret")
}

func (s *ManagerAPITestSuite) TestSignupFlow() {
	conn := model.Connection{ID: "wpp_1", CompanyID: "company_1", Provider: model.ProviderCloudAPI, Status: model.ConnectionConnecting}
	s.connMgr.EXPECT().Get(gomock.Any(), connection.ConnectionIDRequest{CompanyID: "company_1", ID: "wpp_1"}).Return(conn, nil)

	rec := s.do(http.MethodPost, "/signup/sessions", map[string]any{"connection_id": "wpp_1"})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var session signup.Session
	s.decode(rec, &session)
	s.Equal("wpp_1", session.ConnectionID)

	// The signup popup and the code exchange race each other.
	rec = s.do(http.MethodPost, "/signup/sessions/"+session.ID+"/info", signup.SessionInfo{
		Event:         signup.EventFinish,
		PhoneNumberID: "1055",
		WabaID:        "2066",
	})
	s.Require().Equal(http.StatusNoContent, rec.Code)
	rec = s.do(http.MethodPost, "/signup/sessions/"+session.ID+"/code", map[string]any{"code": "abc"})
	s.Require().Equal(http.StatusNoContent, rec.Code)

	connected := conn
	connected.Status = model.ConnectionConnected
	connected.PhoneNumberID = "1055"
	connected.WabaID = "2066"
	connected.AccessToken = "business-token"
	gomock.InOrder(
		s.connMgr.EXPECT().CompleteSignup(gomock.Any(), gomock.Any(), connection.CompleteSignupRequest{
			ConnectionIDRequest: connection.ConnectionIDRequest{Requester: "user_1", CompanyID: "company_1", ID: "wpp_1"},
			PhoneNumberID:       "1055",
			WabaID:              "2066",
			AccessToken:         "business-token",
		}).Return(connected, nil),
		s.graph.EXPECT().SubscribeApp(gomock.Any(), "2066", "business-token").Return(nil),
	)

	rec = s.do(http.MethodPost, "/signup/sessions/"+session.ID+"/complete", map[string]any{"access_token": "business-token"})
	s.Require().Equal(http.StatusOK, rec.Code)
	var result model.Connection
	s.decode(rec, &result)
	s.Equal(model.ConnectionConnected, result.Status)

	// Sessions are consumed once completed.
	rec = s.do(http.MethodPost, "/signup/sessions/"+session.ID+"/code", map[string]any{"code": "abc"})
	s.Equal(http.StatusNotFound, rec.Code)
}

func (s *ManagerAPITestSuite) TestSignupTimeout() {
	s.connMgr.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Connection{ID: "wpp_1", CompanyID: "company_1"}, nil)

	rec := s.do(http.MethodPost, "/signup/sessions", map[string]any{"connection_id": "wpp_1"})
	s.Require().Equal(http.StatusCreated, rec.Code)
	var session signup.Session
	s.decode(rec, &session)

	rec = s.do(http.MethodPost, "/signup/sessions/"+session.ID+"/code", map[string]any{"code": "abc"})
	s.Require().Equal(http.StatusNoContent, rec.Code)

	rec = s.do(http.MethodPost, "/signup/sessions/"+session.ID+"/complete", map[string]any{"access_token": "t"})
	s.Equal(http.StatusConflict, rec.Code)
}

func (s *ManagerAPITestSuite) TestLogStream() {
	server := httptest.NewServer(s.api.Handler())
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/webhooks/logs/stream?access_token=" + s.token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	s.Require().NoError(err)
	defer conn.Close()

	s.Require().Eventually(func() bool { return s.hub.Subscribers("company_1") == 1 }, 2*time.Second, 10*time.Millisecond)
	s.hub.Publish(model.WebhookLog{ID: "wlg_1", CompanyID: "company_1", Outcome: model.DeliverySucceeded})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	s.Require().NoError(err)
	var log model.WebhookLog
	s.Require().NoError(json.Unmarshal(frame, &log))
	s.Equal("wlg_1", log.ID)

	_, resp, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/webhooks/logs/stream", nil)
	s.Require().Error(err)
	s.Require().NotNil(resp)
	s.Equal(http.StatusUnauthorized, resp.StatusCode)
}
