package logstream

import (
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// CompanyResolver returns the company the request was authenticated for.
type CompanyResolver func(r *http.Request) (string, bool)

type Handler struct {
	hub        *Hub
	company    CompanyResolver
	wsUpgrader websocket.Upgrader
}

func NewHandler(hub *Hub, company CompanyResolver) *Handler {
	return &Handler{
		hub:     hub,
		company: company,
		wsUpgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	companyID, ok := h.company(r)
	if !ok || companyID == "" {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}

	c, err := h.wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Errorf("failed to upgrade websocket: %v", err)
		return
	}
	defer c.Close()

	logs, cancel := h.hub.Subscribe(companyID)
	defer cancel()

	closed := make(chan struct{})
	go h.readPump(c, closed)

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case <-r.Context().Done():
			_ = c.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, ""), time.Now().Add(writeWait))
			return
		case log, ok := <-logs:
			if !ok {
				return
			}
			frame, err := json.Marshal(log)
			if err != nil {
				logrus.Errorf("failed to marshal log %s: %v", log.ID, err)
				continue
			}
			_ = c.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.WriteMessage(websocket.TextMessage, frame); err != nil {
				logrus.Debugf("failed to write log stream frame: %v", err)
				return
			}
		case <-ticker.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				logrus.Debugf("failed to ping log stream client: %v", err)
				return
			}
		}
	}
}

// readPump consumes client frames so control messages are processed, and reports when the client leaves.
func (h *Handler) readPump(c *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	_ = c.SetReadDeadline(time.Now().Add(pongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logrus.Debugf("log stream client read: %v", err)
			}
			return
		}
	}
}
