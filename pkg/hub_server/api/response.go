package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/codatende/webhookhub/pkg/hub_server/middleware"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

const (
	defaultPageLimit = 50
	maxPageLimit     = 100
)

type Pagination struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type Envelope struct {
	Success    bool        `json:"success"`
	Data       any         `json:"data,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

func writeData(w http.ResponseWriter, status int, data any, page *Pagination) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(Envelope{Success: true, Data: data, Pagination: page}); err != nil {
		logrus.Warnf("failed to encode/write response: %v", err)
	}
}

// writeManagerError reports an error returned by a manager with the matching envelope code.
func writeManagerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNoConnection), errors.Is(err, model.ErrConnectionNotConnected):
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeNoConnection, err.Error())
	case errors.Is(err, model.ErrSendFailed):
		middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeSendFailed, err.Error())
	case errors.Is(err, model.ErrInvalidParameter):
		middleware.WriteError(w, http.StatusBadRequest, middleware.CodeValidation, err.Error())
	case errors.Is(err, model.ErrNotFound):
		middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, err.Error())
	default:
		logrus.Errorf("external API request failed: %v", err)
		middleware.WriteError(w, http.StatusInternalServerError, middleware.CodeInternalError, "internal error")
	}
}

func writeValidationError(w http.ResponseWriter, message string) {
	middleware.WriteError(w, http.StatusBadRequest, middleware.CodeValidation, message)
}

func notFound(w http.ResponseWriter, r *http.Request) {
	middleware.WriteError(w, http.StatusNotFound, middleware.CodeNotFound, "route not found: "+r.Method+" "+r.URL.Path)
}

// parsePagination reads limit and offset. Limits above the maximum are clamped.
func parsePagination(r *http.Request) (offset, limit int, err error) {
	limit = defaultPageLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 1 {
			return 0, 0, errors.New("limit is invalid")
		}
		limit = min(limit, maxPageLimit)
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		offset, err = strconv.Atoi(v)
		if err != nil || offset < 0 {
			return 0, 0, errors.New("offset is invalid")
		}
	}
	return offset, limit, nil
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("request body is not valid JSON")
	}
	return nil
}
