package manager

import (
	"net/http"
	"strconv"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/gorilla/mux"
)

// IssuedAPIToken carries the token string, which is shown only once.
type IssuedAPIToken struct {
	Token auth.APIToken       `json:"token"`
	Key   auth.APITokenString `json:"key"`
}

func (s *ManagerAPI) listAPITokens(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	result, err := s.tokenMgr.ListAPITokens(r.Context(), auth.ListAPITokenRequest{
		Offset:    offset,
		Limit:     limit,
		CompanyID: requestUser(r).CompanyID,
	})
	if err != nil {
		fail(w, "list API tokens", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) createAPIToken(w http.ResponseWriter, r *http.Request) {
	var req auth.CreateAPITokenRequest
	if !decode(w, r, &req) {
		return
	}
	user := requestUser(r)
	req.User = user.UserID
	req.CompanyID = user.CompanyID

	token, key, err := s.tokenMgr.CreateAPIToken(r.Context(), time.Now().Unix(), req)
	if err != nil {
		fail(w, "create API token", err)
		return
	}
	respond(w, http.StatusCreated, IssuedAPIToken{Token: token, Key: key})
}

func (s *ManagerAPI) updateAPIToken(w http.ResponseWriter, r *http.Request) {
	var req auth.UpdateAPITokenRequest
	if !decode(w, r, &req) {
		return
	}
	user := requestUser(r)
	req.User = user.UserID
	req.CompanyID = user.CompanyID
	req.ID = mux.Vars(r)["id"]

	token, err := s.tokenMgr.UpdateAPIToken(r.Context(), time.Now().Unix(), req)
	if err != nil {
		fail(w, "update API token", err)
		return
	}
	respond(w, http.StatusOK, token)
}

func (s *ManagerAPI) apiTokenIDRequest(r *http.Request) auth.APITokenIDRequest {
	user := requestUser(r)
	return auth.APITokenIDRequest{
		RequestUser: auth.RequestUser{User: user.UserID},
		CompanyID:   user.CompanyID,
		ID:          mux.Vars(r)["id"],
	}
}

func (s *ManagerAPI) regenerateAPIToken(w http.ResponseWriter, r *http.Request) {
	token, key, err := s.tokenMgr.RegenerateAPIToken(r.Context(), time.Now().Unix(), s.apiTokenIDRequest(r))
	if err != nil {
		fail(w, "regenerate API token", err)
		return
	}
	respond(w, http.StatusOK, IssuedAPIToken{Token: token, Key: key})
}

func (s *ManagerAPI) revokeAPIToken(w http.ResponseWriter, r *http.Request) {
	token, err := s.tokenMgr.RevokeAPIToken(r.Context(), time.Now().Unix(), s.apiTokenIDRequest(r))
	if err != nil {
		fail(w, "revoke API token", err)
		return
	}
	respond(w, http.StatusOK, token)
}

// listAPILogs returns the audit trail of the external API. Filters: token_id and status.
func (s *ManagerAPI) listAPILogs(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	req := storage.ListAPILogRequest{
		Offset:    offset,
		Limit:     limit,
		CompanyID: requestUser(r).CompanyID,
		TokenIDs:  r.URL.Query()["token_id"],
	}
	for _, v := range r.URL.Query()["status"] {
		status, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "status is invalid", http.StatusBadRequest)
			return
		}
		req.Statuses = append(req.Statuses, status)
	}

	tx, ctx, err := s.apiLogs.CreateTx(r.Context())
	if err != nil {
		fail(w, "list API logs", err)
		return
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result, err := s.apiLogs.ListAPILog(ctx, tx, req)
	if err != nil {
		fail(w, "list API logs", err)
		return
	}
	respond(w, http.StatusOK, result)
}
