package api

import (
	"net/http"
	"slices"
	"strings"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/crm"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
)

func (a *API) listQueues(w http.ResponseWriter, r *http.Request) {
	queues, err := a.crm.ListQueues(r.Context(), companyID(r))
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, nonNil(queues), nil)
}

func (a *API) listTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.crm.ListTags(r.Context(), companyID(r))
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, nonNil(tags), nil)
}

func (a *API) listUsers(w http.ResponseWriter, r *http.Request) {
	offset, limit, err := parsePagination(r)
	if err != nil {
		writeValidationError(w, err.Error())
		return
	}

	result, err := a.crm.ListUsers(r.Context(), crm.ListRequest{CompanyID: companyID(r), Offset: offset, Limit: limit})
	if err != nil {
		writeManagerError(w, err)
		return
	}
	writeData(w, http.StatusOK, nonNil(result.Records), &Pagination{Total: result.Total, Limit: limit, Offset: offset})
}

// listWhatsApps returns the connections of the company ordered by name.
func (a *API) listWhatsApps(w http.ResponseWriter, r *http.Request) {
	result, err := a.connections.List(r.Context(), connection.ListConnectionRequest{CompanyID: companyID(r), Limit: maxPageLimit})
	if err != nil {
		writeManagerError(w, err)
		return
	}

	conns := nonNil(result.Records)
	slices.SortStableFunc(conns, func(x, y model.Connection) int {
		return strings.Compare(x.Name, y.Name)
	})
	writeData(w, http.StatusOK, conns, nil)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
