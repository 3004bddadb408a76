package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/crm"
	"github.com/codatende/webhookhub/pkg/hub_server/middleware"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
)

func (a *API) listMessages(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	ticketID := r.URL.Query().Get("ticket_id")
	if ticketID == "" {
		writeValidationError(w, "ticket_id is required")
		return
	}

	req := crm.ListMessageRequest{
		ListRequest: crm.ListRequest{CompanyID: companyID(r), Offset: offset, Limit: limit},
		TicketID:    ticketID,
	}
	result, err := a.crm.ListMessages(r.Context(), req)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, nonNil(result.Records), &Pagination{Total: result.Total, Limit: limit, Offset: offset})
}

func (a *API) sendMessage(w http.ResponseWriter, r *http.Request) {
	var req crm.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.Message == "" {
		writeValidationError(w, "message is required")
		return
	}
	// Media goes through send-media only.
	req.MediaURL, req.MediaType, req.FileName, req.Caption = "", "", "", ""
	a.send(w, r, req)
}

func (a *API) sendMedia(w http.ResponseWriter, r *http.Request) {
	var req crm.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	if req.MediaURL == "" {
		writeValidationError(w, "media_url is required")
		return
	}
	a.send(w, r, req)
}

func (a *API) send(w http.ResponseWriter, r *http.Request, req crm.SendMessageRequest) {
	if req.Number == "" && req.TicketID == "" {
		writeValidationError(w, "number or ticket_id is required")
		return
	}
	req.CompanyID = companyID(r)

	msg, err := a.crm.SendMessage(r.Context(), time.Now().Unix(), req)
	if errors.Is(err, model.ErrConnectionNotFound) {
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeNoConnection, err.Error())
		return
	}
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, msg, nil)
}
