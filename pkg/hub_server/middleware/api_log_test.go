package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/codatende/webhookhub/pkg/hub_server/middleware"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	mock_auth "github.com/codatende/webhookhub/test/mock/hub_server/auth"
	mock_storage "github.com/codatende/webhookhub/test/mock/hub_server/storage"
	"github.com/goccy/go-json"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type APILoggerTestSuite struct {
	suite.Suite
	ctx     context.Context
	ctrl    *gomock.Controller
	storage *mock_storage.MockAPILogStorage
	tx      *mock_storage.MockTx
	logger  *middleware.APILogger
}

func TestAPILoggerTestSuite(t *testing.T) {
	suite.Run(t, new(APILoggerTestSuite))
}

func (s *APILoggerTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.ctrl = gomock.NewController(s.T())
	s.storage = mock_storage.NewMockAPILogStorage(s.ctrl)
	s.tx = mock_storage.NewMockTx(s.ctrl)
	s.logger = middleware.NewAPILogger(s.storage)
}

func (s *APILoggerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *APILoggerTestSuite) expectStore(capture *model.APILog) {
	gomock.InOrder(
		s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Len(1)).Return(s.tx, s.ctx, nil),
		s.storage.EXPECT().AddAPILog(gomock.Any(), s.tx, gomock.Any()).DoAndReturn(
			func(ctx context.Context, tx storage.Tx, log model.APILog) error {
				*capture = log
				return nil
			},
		),
		s.tx.EXPECT().Commit(gomock.Any()).Return(nil),
		s.tx.EXPECT().Rollback(gomock.Any()).Return(nil),
	)
}

func (s *APILoggerTestSuite) TestLogAuthenticatedRequest() {
	manager := mock_auth.NewMockAPITokenManager(s.ctrl)
	manager.EXPECT().Authenticate(gomock.Any(), gomock.Any(), gomock.Any()).Return(auth.APIToken{ID: "tok_1", CompanyID: "company_1"}, nil)

	var log model.APILog
	s.expectStore(&log)

	var seenBody string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		seenBody = string(body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"ctt_1"}}`))
	})

	body := `{"name":"Ana","password":"hunter2","nested":{"apiKey":"x","items":[{"client_secret":"y","n":1}]}}`
	request := httptest.NewRequest(http.MethodPost, "/functions/v1/external-api/contacts", strings.NewReader(body))
	request.Header.Set("x-api-key", "cdc_tok_1.secret")
	request.Header.Set("User-Agent", "integration/1.0")
	request.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	response := httptest.NewRecorder()

	s.logger.Log(middleware.NewAPITokenAuth(manager).Authenticate(handler)).ServeHTTP(response, request)

	s.Equal(http.StatusCreated, response.Code)
	s.Equal(body, seenBody)

	s.NotEmpty(log.ID)
	s.Equal("company_1", *log.CompanyID)
	s.Equal("tok_1", *log.TokenID)
	s.Equal(http.MethodPost, log.Method)
	s.Equal("/functions/v1/external-api/contacts", log.Endpoint)
	s.Equal(http.StatusCreated, log.ResponseStatus)
	s.Equal("203.0.113.9", *log.IPAddress)
	s.Equal("integration/1.0", *log.UserAgent)
	s.JSONEq(`{"name":"Ana","password":"***","nested":{"apiKey":"***","items":[{"client_secret":"***","n":1}]}}`, string(log.RequestBody))
	s.JSONEq(`{"success":true,"data":{"id":"ctt_1"}}`, string(log.ResponseBody))
}

func (s *APILoggerTestSuite) TestLogRejectedRequest() {
	var log model.APILog
	s.expectStore(&log)

	request := httptest.NewRequest(http.MethodGet, "/functions/v1/external-api/tickets", nil)
	response := httptest.NewRecorder()
	s.logger.Log(middleware.NewAPITokenAuth(mock_auth.NewMockAPITokenManager(s.ctrl)).Authenticate(OkHandler)).ServeHTTP(response, request)

	s.Equal(http.StatusUnauthorized, response.Code)
	s.Nil(log.CompanyID)
	s.Nil(log.TokenID)
	s.Nil(log.RequestBody)
	s.Equal(http.StatusUnauthorized, log.ResponseStatus)
}

func (s *APILoggerTestSuite) TestLogNonJSONBodies() {
	var log model.APILog
	s.expectStore(&log)

	long := strings.Repeat("a", 6000)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(long))
	})
	request := httptest.NewRequest(http.MethodPost, "/functions/v1/external-api/contacts", strings.NewReader("name=Ana"))
	s.logger.Log(handler).ServeHTTP(httptest.NewRecorder(), request)

	var requestText, responseText string
	s.Require().NoError(json.Unmarshal(log.RequestBody, &requestText))
	s.Require().NoError(json.Unmarshal(log.ResponseBody, &responseText))
	s.Equal("name=Ana", requestText)
	s.Len(responseText, 5000)
	s.Equal(http.StatusOK, log.ResponseStatus)
}

func (s *APILoggerTestSuite) TestStoreFailureDoesNotAffectResponse() {
	s.storage.EXPECT().CreateTx(gomock.Any(), gomock.Any()).Return(nil, nil, errors.New("pool exhausted"))

	response := httptest.NewRecorder()
	s.logger.Log(OkHandler).ServeHTTP(response, httptest.NewRequest(http.MethodGet, "/functions/v1/external-api/queues", nil))
	s.Equal(http.StatusOK, response.Code)
	s.Equal("OK", response.Body.String())
}
