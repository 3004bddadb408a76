package manager

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/logstream"
	"github.com/codatende/webhookhub/pkg/hub_server/middleware"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/signup"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const defaultListLimit = 50

type ManagerAPIConfig struct {
	LocalAddress string `yaml:"local_address"`
	JWTSecret    string `yaml:"jwt_secret"`
	ServiceKey   string `yaml:"service_key"`
}

// Controllers are the domain services the dashboard API drives.
type Controllers struct {
	Webhooks    webhook.WebhookController
	Emitter     webhook.Emitter
	Tokens      auth.APITokenManager
	Connections connection.Manager
	Signup      *signup.Service
	APILogs     storage.APILogStorage
	LogStream   *logstream.Hub
	Dashboard   middleware.DashboardVerifier
}

type ManagerAPI struct {
	webhookCtrl webhook.WebhookController
	emitter     webhook.Emitter
	tokenMgr    auth.APITokenManager
	connMgr     connection.Manager
	signup      *signup.Service
	apiLogs     storage.APILogStorage

	httpServer *http.Server
}

func NewManagerAPIWithControllers(ctrls Controllers, serviceKey string, localAddress string) (*ManagerAPI, error) {
	if ctrls.Dashboard == nil {
		return nil, errors.New("dashboard verifier is required")
	}

	apiServer := &ManagerAPI{
		webhookCtrl: ctrls.Webhooks,
		emitter:     ctrls.Emitter,
		tokenMgr:    ctrls.Tokens,
		connMgr:     ctrls.Connections,
		signup:      ctrls.Signup,
		apiLogs:     ctrls.APILogs,
	}

	r := mux.NewRouter()
	r.Use(middleware.TimeTrace)

	internalRouter := r.PathPrefix("/internal").Subrouter()
	internalRouter.Use(middleware.NewServiceKeyAuth(serviceKey).Authenticate)
	internalRouter.HandleFunc("/dispatch", apiServer.dispatch).Methods(http.MethodPost)

	mgrRouter := r.NewRoute().Subrouter()
	mgrRouter.Use(middleware.NewDashboardAuth(ctrls.Dashboard).Authenticate)
	mgrRouter.HandleFunc("/webhooks", apiServer.listWebhooks).Methods(http.MethodGet)
	mgrRouter.HandleFunc("/webhooks", apiServer.createWebhook).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/webhooks/logs", apiServer.listWebhookLogs).Methods(http.MethodGet)
	if ctrls.LogStream != nil {
		mgrRouter.Handle("/webhooks/logs/stream", logstream.NewHandler(ctrls.LogStream, requestCompany)).Methods(http.MethodGet)
	}
	mgrRouter.HandleFunc("/webhooks/{id}", apiServer.getWebhook).Methods(http.MethodGet)
	mgrRouter.HandleFunc("/webhooks/{id}", apiServer.updateWebhook).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/webhooks/{id}", apiServer.deleteWebhook).Methods(http.MethodDelete)
	mgrRouter.HandleFunc("/webhooks/{id}/status", apiServer.setWebhookStatus).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/webhooks/{id}/test", apiServer.testWebhook).Methods(http.MethodPost)

	mgrRouter.HandleFunc("/api_tokens", apiServer.listAPITokens).Methods(http.MethodGet)
	mgrRouter.HandleFunc("/api_tokens", apiServer.createAPIToken).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/api_tokens/{id}", apiServer.updateAPIToken).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/api_tokens/{id}", apiServer.revokeAPIToken).Methods(http.MethodDelete)
	mgrRouter.HandleFunc("/api_tokens/{id}/regenerate", apiServer.regenerateAPIToken).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/api_logs", apiServer.listAPILogs).Methods(http.MethodGet)

	mgrRouter.HandleFunc("/whatsapps", apiServer.listConnections).Methods(http.MethodGet)
	mgrRouter.HandleFunc("/whatsapps", apiServer.createConnection).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/whatsapps/{id}", apiServer.updateConnection).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/whatsapps/{id}", apiServer.deleteConnection).Methods(http.MethodDelete)
	mgrRouter.HandleFunc("/whatsapps/{id}/status", apiServer.transitionConnection).Methods(http.MethodPost)
	mgrRouter.HandleFunc("/whatsapps/{id}/default", apiServer.setDefaultConnection).Methods(http.MethodPost)

	if ctrls.Signup != nil {
		mgrRouter.HandleFunc("/signup/sessions", apiServer.beginSignup).Methods(http.MethodPost)
		mgrRouter.HandleFunc("/signup/sessions/{id}/code", apiServer.signupCode).Methods(http.MethodPost)
		mgrRouter.HandleFunc("/signup/sessions/{id}/info", apiServer.signupInfo).Methods(http.MethodPost)
		mgrRouter.HandleFunc("/signup/sessions/{id}/complete", apiServer.completeSignup).Methods(http.MethodPost)
	}

	httpServer := &http.Server{
		Addr:        localAddress,
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// Webhook tests wait for the subscriber for up to the delivery timeout.
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	apiServer.httpServer = httpServer
	return apiServer, nil
}

func (s *ManagerAPI) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *ManagerAPI) Run() error {
	err := s.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *ManagerAPI) Close(ctx context.Context) error {
	s.httpServer.SetKeepAlivesEnabled(false)
	return s.httpServer.Shutdown(ctx)
}

func requestCompany(r *http.Request) (string, bool) {
	companyID, ok := r.Context().Value(middleware.COMPANY_ID).(string)
	return companyID, ok
}

func requestUser(r *http.Request) auth.DashboardClaims {
	claims, _ := r.Context().Value(middleware.DASHBOARD_USER).(auth.DashboardClaims)
	return claims
}

func respond(w http.ResponseWriter, status int, v any) {
	w.Header().Add("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.Warnf("failed to encode/write response: %v", err)
	}
}

func fail(w http.ResponseWriter, action string, err error) {
	status := model.ErrorToHttpStatus(err)
	if status >= http.StatusInternalServerError {
		logrus.Errorf("failed to %s: %v", action, err)
	} else {
		logrus.Warnf("failed to %s: %v", action, err)
	}
	http.Error(w, err.Error(), status)
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func pagination(w http.ResponseWriter, r *http.Request) (offset, limit int, ok bool) {
	limit = defaultListLimit
	if v := r.URL.Query().Get("offset"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 0 {
			http.Error(w, "offset is invalid", http.StatusBadRequest)
			return 0, 0, false
		}
		offset = int(n)
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil || n < 1 || n > 100 {
			http.Error(w, "limit is invalid", http.StatusBadRequest)
			return 0, 0, false
		}
		limit = int(n)
	}
	return offset, limit, true
}
