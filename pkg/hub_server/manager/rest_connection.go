package manager

import (
	"net/http"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

func (s *ManagerAPI) connectionIDRequest(r *http.Request) connection.ConnectionIDRequest {
	user := requestUser(r)
	return connection.ConnectionIDRequest{
		Requester: user.UserID,
		CompanyID: user.CompanyID,
		ID:        mux.Vars(r)["id"],
	}
}

func (s *ManagerAPI) listConnections(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	req := connection.ListConnectionRequest{
		Offset:    offset,
		Limit:     limit,
		CompanyID: requestUser(r).CompanyID,
		Statuses: lo.Map(lo.Without(r.URL.Query()["status"], ""), func(v string, _ int) model.ConnectionStatus {
			return model.ConnectionStatus(v)
		}),
	}
	result, err := s.connMgr.List(r.Context(), req)
	if err != nil {
		fail(w, "list connections", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) createConnection(w http.ResponseWriter, r *http.Request) {
	var req connection.CreateConnectionRequest
	if !decode(w, r, &req) {
		return
	}
	user := requestUser(r)
	req.Requester = user.UserID
	req.CompanyID = user.CompanyID

	result, err := s.connMgr.Create(r.Context(), time.Now().Unix(), req)
	if err != nil {
		fail(w, "create connection", err)
		return
	}
	respond(w, http.StatusCreated, result)
}

func (s *ManagerAPI) updateConnection(w http.ResponseWriter, r *http.Request) {
	var req connection.UpdateConnectionRequest
	if !decode(w, r, &req) {
		return
	}
	idReq := s.connectionIDRequest(r)
	req.Requester = idReq.Requester
	req.CompanyID = idReq.CompanyID
	req.ID = idReq.ID

	result, err := s.connMgr.Update(r.Context(), time.Now().Unix(), req)
	if err != nil {
		fail(w, "update connection", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) transitionConnection(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Status model.ConnectionStatus `json:"status"`
	}
	if !decode(w, r, &body) {
		return
	}

	result, err := s.connMgr.Transition(r.Context(), time.Now().Unix(), connection.TransitionRequest{
		ConnectionIDRequest: s.connectionIDRequest(r),
		Status:              body.Status,
	})
	if err != nil {
		fail(w, "transition connection", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) setDefaultConnection(w http.ResponseWriter, r *http.Request) {
	result, err := s.connMgr.SetDefault(r.Context(), time.Now().Unix(), s.connectionIDRequest(r))
	if err != nil {
		fail(w, "set default connection", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) deleteConnection(w http.ResponseWriter, r *http.Request) {
	result, err := s.connMgr.Delete(r.Context(), time.Now().Unix(), s.connectionIDRequest(r))
	if err != nil {
		fail(w, "delete connection", err)
		return
	}
	respond(w, http.StatusOK, result)
}
