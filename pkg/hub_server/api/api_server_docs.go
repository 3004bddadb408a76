package api

import (
	"net/http"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
)

type endpointDoc struct {
	Method      string          `json:"method"`
	Path        string          `json:"path"`
	Permission  auth.Permission `json:"permission"`
	Description string          `json:"description"`
}

type apiDoc struct {
	Name           string            `json:"name"`
	Version        string            `json:"version"`
	BaseURL        string            `json:"base_url"`
	Authentication []string          `json:"authentication"`
	RateLimits     map[string]string `json:"rate_limits"`
	Pagination     map[string]string `json:"pagination"`
	ErrorCodes     []string          `json:"error_codes"`
	Endpoints      []endpointDoc     `json:"endpoints"`
}

var documentation = apiDoc{
	Name:    "External API",
	Version: "1.0.0",
	BaseURL: BasePath,
	Authentication: []string{
		"x-api-key: <token>",
		"Authorization: Bearer <token>",
		"?api_key=<token>",
	},
	RateLimits: map[string]string{
		"general":       "100 requests per minute",
		"messages/send": "30 requests per minute",
	},
	Pagination: map[string]string{
		"limit":  "default 50, maximum 100",
		"offset": "default 0",
	},
	ErrorCodes: []string{
		"AUTH_REQUIRED", "INVALID_KEY", "KEY_EXPIRED", "FORBIDDEN", "VALIDATION_ERROR",
		"NOT_FOUND", "NO_CONNECTION", "SEND_FAILED", "RATE_LIMITED", "INTERNAL_ERROR",
	},
	Endpoints: []endpointDoc{
		{http.MethodGet, "/contacts", auth.PermissionContactsRead, "List contacts. Filter with search."},
		{http.MethodPost, "/contacts", auth.PermissionContactsWrite, "Create a contact."},
		{http.MethodGet, "/contacts/{id}", auth.PermissionContactsRead, "Get a contact."},
		{http.MethodPut, "/contacts/{id}", auth.PermissionContactsWrite, "Update a contact."},
		{http.MethodGet, "/tickets", auth.PermissionTicketsRead, "List tickets. Filter with status."},
		{http.MethodPost, "/tickets", auth.PermissionTicketsWrite, "Create a ticket."},
		{http.MethodGet, "/tickets/{id}", auth.PermissionTicketsRead, "Get a ticket. include_messages=true adds its messages."},
		{http.MethodPut, "/tickets/{id}", auth.PermissionTicketsWrite, "Update status, queue or user of a ticket."},
		{http.MethodGet, "/messages", auth.PermissionMessagesRead, "List messages of ticket_id."},
		{http.MethodPost, "/messages/send", auth.PermissionMessagesWrite, "Send a text message to number or ticket_id."},
		{http.MethodPost, "/messages/send-media", auth.PermissionMessagesWrite, "Send media_url to number or ticket_id."},
		{http.MethodGet, "/queues", auth.PermissionQueuesRead, "List queues."},
		{http.MethodGet, "/tags", auth.PermissionTagsRead, "List tags."},
		{http.MethodGet, "/whatsapps", auth.PermissionWhatsAppsRead, "List WhatsApp connections."},
		{http.MethodGet, "/users", auth.PermissionUsersRead, "List users."},
	},
}

func (a *API) docs(w http.ResponseWriter, r *http.Request) {
	writeData(w, http.StatusOK, documentation, nil)
}
