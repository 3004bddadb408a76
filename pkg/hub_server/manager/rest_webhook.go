package manager

import (
	"net/http"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/samber/lo"
)

func (s *ManagerAPI) listWebhooks(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	result, err := s.webhookCtrl.List(r.Context(), webhook.ListWebhookRequest{
		Offset:    offset,
		Limit:     limit,
		CompanyID: requestUser(r).CompanyID,
	})
	if err != nil {
		fail(w, "list webhooks", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) createWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhook.CreateWebhookRequest
	if !decode(w, r, &req) {
		return
	}
	user := requestUser(r)
	req.CompanyID = user.CompanyID
	req.Requester = user.UserID

	result, err := s.webhookCtrl.Create(r.Context(), time.Now().Unix(), req)
	if err != nil {
		fail(w, "create webhook", err)
		return
	}
	respond(w, http.StatusCreated, result)
}

func (s *ManagerAPI) webhookIDRequest(r *http.Request) webhook.WebhookIDRequest {
	user := requestUser(r)
	return webhook.WebhookIDRequest{
		Requester: user.UserID,
		CompanyID: user.CompanyID,
		ID:        mux.Vars(r)["id"],
	}
}

func (s *ManagerAPI) getWebhook(w http.ResponseWriter, r *http.Request) {
	result, err := s.webhookCtrl.Get(r.Context(), s.webhookIDRequest(r))
	if err != nil {
		fail(w, "get webhook", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) updateWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhook.UpdateWebhookRequest
	if !decode(w, r, &req) {
		return
	}
	idReq := s.webhookIDRequest(r)
	req.Requester = idReq.Requester
	req.CompanyID = idReq.CompanyID
	req.ID = idReq.ID

	result, err := s.webhookCtrl.Update(r.Context(), time.Now().Unix(), req)
	if err != nil {
		fail(w, "update webhook", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) setWebhookStatus(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IsActive *bool `json:"is_active"`
	}
	if !decode(w, r, &body) {
		return
	}
	if body.IsActive == nil {
		http.Error(w, "is_active is required", http.StatusBadRequest)
		return
	}

	result, err := s.webhookCtrl.SetStatus(r.Context(), time.Now().Unix(), webhook.SetWebhookStatusRequest{
		WebhookIDRequest: s.webhookIDRequest(r),
		IsActive:         *body.IsActive,
	})
	if err != nil {
		fail(w, "set webhook status", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) deleteWebhook(w http.ResponseWriter, r *http.Request) {
	result, err := s.webhookCtrl.Delete(r.Context(), time.Now().Unix(), s.webhookIDRequest(r))
	if err != nil {
		fail(w, "delete webhook", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) testWebhook(w http.ResponseWriter, r *http.Request) {
	result, err := s.webhookCtrl.Test(r.Context(), time.Now().Unix(), s.webhookIDRequest(r))
	if err != nil {
		fail(w, "test webhook", err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (s *ManagerAPI) listWebhookLogs(w http.ResponseWriter, r *http.Request) {
	offset, limit, ok := pagination(w, r)
	if !ok {
		return
	}

	query := r.URL.Query()
	req := storage.ListWebhookLogRequest{
		Offset:     offset,
		Limit:      limit,
		CompanyID:  requestUser(r).CompanyID,
		WebhookIDs: lo.Without(query["webhook_id"], ""),
		DeliveryID: query.Get("delivery_id"),
		EventTypes: lo.Map(lo.Without(query["event_type"], ""), func(t string, _ int) model.EventType { return model.EventType(t) }),
		Outcomes:   lo.Map(lo.Without(query["outcome"], ""), func(o string, _ int) model.DeliveryState { return model.DeliveryState(o) }),
	}
	result, err := s.webhookCtrl.ListLogs(r.Context(), req)
	if err != nil {
		fail(w, "list webhook logs", err)
		return
	}
	respond(w, http.StatusOK, result)
}

type DispatchRequest struct {
	CompanyID string          `json:"companyId"`
	EventType model.EventType `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

type DispatchResult struct {
	Success    bool `json:"success"`
	Dispatched int  `json:"dispatched"`
}

// dispatch lets trusted backends raise an event for a company.
func (s *ManagerAPI) dispatch(w http.ResponseWriter, r *http.Request) {
	var req DispatchRequest
	if !decode(w, r, &req) {
		return
	}
	if req.CompanyID == "" || req.EventType == "" {
		http.Error(w, "companyId and eventType are required", http.StatusBadRequest)
		return
	}
	if len(req.Data) == 0 || string(req.Data) == "null" {
		req.Data = json.RawMessage(`{}`)
	}

	n, err := s.emitter.Emit(r.Context(), model.Event{
		CompanyID:  req.CompanyID,
		Type:       req.EventType,
		Data:       req.Data,
		OccurredAt: time.Now().Unix(),
	})
	if err != nil {
		fail(w, "dispatch event", err)
		return
	}
	respond(w, http.StatusOK, DispatchResult{Success: true, Dispatched: n})
}
