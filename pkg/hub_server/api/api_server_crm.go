package api

import (
	"net/http"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/crm"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/gorilla/mux"
)

func (a *API) listContacts(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	req := crm.ListContactRequest{
		ListRequest: crm.ListRequest{CompanyID: companyID(r), Offset: offset, Limit: limit},
		Search:      r.URL.Query().Get("search"),
	}
	result, err := a.crm.ListContacts(r.Context(), req)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, nonNil(result.Records), &Pagination{Total: result.Total, Limit: limit, Offset: offset})
}

func (a *API) getContact(w http.ResponseWriter, r *http.Request) {
	contact, err := a.crm.GetContact(r.Context(), companyID(r), mux.Vars(r)["id"])
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, contact, nil)
}

func (a *API) createContact(w http.ResponseWriter, r *http.Request) {
	var req crm.CreateContactRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	req.CompanyID = companyID(r)

	contact, err := a.crm.CreateContact(r.Context(), time.Now().Unix(), req)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusCreated, contact, nil)
}

func (a *API) updateContact(w http.ResponseWriter, r *http.Request) {
	var req crm.UpdateContactRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	req.CompanyID = companyID(r)
	req.ID = mux.Vars(r)["id"]

	contact, err := a.crm.UpdateContact(r.Context(), time.Now().Unix(), req)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, contact, nil)
}

func (a *API) listTickets(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	req := crm.ListTicketRequest{
		ListRequest: crm.ListRequest{CompanyID: companyID(r), Offset: offset, Limit: limit},
		Status:      model.TicketStatus(r.URL.Query().Get("status")),
	}
	result, err := a.crm.ListTickets(r.Context(), req)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, nonNil(result.Records), &Pagination{Total: result.Total, Limit: limit, Offset: offset})
}

func (a *API) getTicket(w http.ResponseWriter, r *http.Request) {
	req := crm.GetTicketRequest{
		CompanyID:       companyID(r),
		ID:              mux.Vars(r)["id"],
		IncludeMessages: r.URL.Query().Get("include_messages") == "true",
	}
	ticket, err := a.crm.GetTicket(r.Context(), req)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, ticket, nil)
}

func (a *API) createTicket(w http.ResponseWriter, r *http.Request) {
	var req crm.CreateTicketRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	req.CompanyID = companyID(r)

	ticket, err := a.crm.CreateTicket(r.Context(), time.Now().Unix(), req)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusCreated, ticket, nil)
}

func (a *API) updateTicket(w http.ResponseWriter, r *http.Request) {
	var req crm.UpdateTicketRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(w, err.Error())
		return
	}
	req.CompanyID = companyID(r)
	req.ID = mux.Vars(r)["id"]

	ticket, err := a.crm.UpdateTicket(r.Context(), time.Now().Unix(), req)
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, ticket, nil)
}
