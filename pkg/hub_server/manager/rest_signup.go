package manager

import (
	"net/http"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/signup"
	"github.com/gorilla/mux"
)

func (s *ManagerAPI) beginSignup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		ConnectionID string `json:"connection_id"`
	}
	if !decode(w, r, &body) {
		return
	}
	user := requestUser(r)

	// The session must belong to a connection of the signed-in company.
	conn, err := s.connMgr.Get(r.Context(), connection.ConnectionIDRequest{CompanyID: user.CompanyID, ID: body.ConnectionID})
	if err != nil {
		fail(w, "begin signup", err)
		return
	}

	session, err := s.signup.Correlator().Begin(user.CompanyID, conn.ID)
	if err != nil {
		fail(w, "begin signup", err)
		return
	}
	respond(w, http.StatusCreated, session)
}

func (s *ManagerAPI) signupCode(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code"`
	}
	if !decode(w, r, &body) {
		return
	}

	if err := s.signup.Correlator().Code(requestUser(r).CompanyID, mux.Vars(r)["id"], body.Code); err != nil {
		fail(w, "record signup code", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *ManagerAPI) signupInfo(w http.ResponseWriter, r *http.Request) {
	var info signup.SessionInfo
	if !decode(w, r, &info) {
		return
	}

	if err := s.signup.Correlator().Info(requestUser(r).CompanyID, mux.Vars(r)["id"], info); err != nil {
		fail(w, "record signup info", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *ManagerAPI) completeSignup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		AccessToken string `json:"access_token"`
	}
	if !decode(w, r, &body) {
		return
	}
	user := requestUser(r)

	result, err := s.signup.Complete(r.Context(), time.Now().Unix(), signup.CompleteRequest{
		Requester:   user.UserID,
		CompanyID:   user.CompanyID,
		SessionID:   mux.Vars(r)["id"],
		AccessToken: body.AccessToken,
	})
	if err != nil {
		fail(w, "complete signup", err)
		return
	}
	respond(w, http.StatusOK, result)
}
