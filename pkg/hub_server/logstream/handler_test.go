package logstream_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/logstream"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func companyFromQuery(r *http.Request) (string, bool) {
	companyID := r.URL.Query().Get("company")
	return companyID, companyID != ""
}

func TestHandlerStreamsLogs(t *testing.T) {
	hub := logstream.NewHub()
	server := httptest.NewServer(logstream.NewHandler(hub, companyFromQuery))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "?company=company_1"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.Subscribers("company_1") == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(model.WebhookLog{ID: "wlg_2", CompanyID: "company_2"})
	hub.Publish(model.WebhookLog{ID: "wlg_1", CompanyID: "company_1", Outcome: model.DeliverySucceeded, Attempt: 1})

	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, frame, err := conn.ReadMessage()
	require.NoError(t, err)

	var log model.WebhookLog
	require.NoError(t, json.Unmarshal(frame, &log))
	assert.Equal(t, "wlg_1", log.ID)
	assert.Equal(t, model.DeliverySucceeded, log.Outcome)

	require.NoError(t, conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))
	assert.Eventually(t, func() bool { return hub.Subscribers("company_1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestHandlerRejectsUnauthenticated(t *testing.T) {
	server := httptest.NewServer(logstream.NewHandler(logstream.NewHub(), companyFromQuery))
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http")
	_, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
