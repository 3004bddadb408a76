package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/crm"
	"github.com/codatende/webhookhub/pkg/hub_server/middleware"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/gorilla/mux"
)

// BasePath is where the external API is mounted.
const BasePath = "/functions/v1/external-api"

// RouteRegistrar adds routes served next to the external API, such as the provider webhooks.
type RouteRegistrar interface {
	Register(r *mux.Router)
}

type API struct {
	tokens      auth.APITokenManager
	crm         crm.Manager
	connections connection.Manager

	httpServer *http.Server
}

func NewAPIWithController(
	tokens auth.APITokenManager,
	crmMgr crm.Manager,
	connections connection.Manager,
	apiLogs storage.APILogStorage,
	limiter *middleware.RateLimiter,
	localAddress string,
	extras ...RouteRegistrar,
) (*API, error) {
	apiServer := &API{
		tokens:      tokens,
		crm:         crmMgr,
		connections: connections,
	}

	r := mux.NewRouter()
	r.Use(middleware.TimeTrace)
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	for _, extra := range extras {
		extra.Register(r)
	}

	r.HandleFunc(BasePath, apiServer.docs).Methods(http.MethodGet)
	ext := r.PathPrefix(BasePath).Subrouter()
	ext.NotFoundHandler = http.HandlerFunc(notFound)
	ext.MethodNotAllowedHandler = http.HandlerFunc(notFound)
	ext.HandleFunc("/", apiServer.docs).Methods(http.MethodGet)
	ext.HandleFunc("/docs", apiServer.docs).Methods(http.MethodGet)

	authed := ext.NewRoute().Subrouter()
	authed.Use(middleware.NewAPILogger(apiLogs).Log, middleware.NewAPITokenAuth(tokens).Authenticate)

	route := func(method, path string, perm auth.Permission, tier middleware.RateTier, h http.HandlerFunc) {
		authed.Handle(path, limiter.Limit(tier)(middleware.RequirePermission(perm)(h))).Methods(method)
	}
	route(http.MethodGet, "/contacts", auth.PermissionContactsRead, middleware.TierGeneral, apiServer.listContacts)
	route(http.MethodPost, "/contacts", auth.PermissionContactsWrite, middleware.TierGeneral, apiServer.createContact)
	route(http.MethodGet, "/contacts/{id}", auth.PermissionContactsRead, middleware.TierGeneral, apiServer.getContact)
	route(http.MethodPut, "/contacts/{id}", auth.PermissionContactsWrite, middleware.TierGeneral, apiServer.updateContact)
	route(http.MethodGet, "/tickets", auth.PermissionTicketsRead, middleware.TierGeneral, apiServer.listTickets)
	route(http.MethodPost, "/tickets", auth.PermissionTicketsWrite, middleware.TierGeneral, apiServer.createTicket)
	route(http.MethodGet, "/tickets/{id}", auth.PermissionTicketsRead, middleware.TierGeneral, apiServer.getTicket)
	route(http.MethodPut, "/tickets/{id}", auth.PermissionTicketsWrite, middleware.TierGeneral, apiServer.updateTicket)
	route(http.MethodGet, "/messages", auth.PermissionMessagesRead, middleware.TierGeneral, apiServer.listMessages)
	route(http.MethodPost, "/messages/send", auth.PermissionMessagesWrite, middleware.TierSend, apiServer.sendMessage)
	route(http.MethodPost, "/messages/send-media", auth.PermissionMessagesWrite, middleware.TierSend, apiServer.sendMedia)
	route(http.MethodGet, "/queues", auth.PermissionQueuesRead, middleware.TierGeneral, apiServer.listQueues)
	route(http.MethodGet, "/tags", auth.PermissionTagsRead, middleware.TierGeneral, apiServer.listTags)
	route(http.MethodGet, "/whatsapps", auth.PermissionWhatsAppsRead, middleware.TierGeneral, apiServer.listWhatsApps)
	route(http.MethodGet, "/users", auth.PermissionUsersRead, middleware.TierGeneral, apiServer.listUsers)

	apiServer.httpServer = &http.Server{
		Addr:    localAddress,
		Handler: r,
	}
	return apiServer, nil
}

func (a *API) Run() error {
	err := a.httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *API) Close(ctx context.Context) error {
	a.httpServer.SetKeepAlivesEnabled(false)
	return a.httpServer.Shutdown(ctx)
}

func companyID(r *http.Request) string {
	id, _ := r.Context().Value(middleware.COMPANY_ID).(string)
	return id
}
