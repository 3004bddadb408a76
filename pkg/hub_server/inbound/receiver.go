package inbound

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

const (
	MetaWebhookPath       = "/functions/v1/meta-webhook"
	NotificaMeWebhookPath = "/functions/v1/notificame-webhook"
	UazAPIWebhookPath     = "/functions/v1/uazapi-webhook"

	maxInboundBodySize = 4 << 20
	signatureHeader    = "X-Hub-Signature-256"
	instanceHeader     = "Token"
)

type ReceiverConfig struct {
	// VerifyToken answers the subscription handshake of the Meta App webhook.
	VerifyToken string `yaml:"verify_token"`
	// AppSecret enables X-Hub-Signature-256 verification when set.
	AppSecret string `yaml:"app_secret"`
}

// Receiver serves the fixed provider webhook URLs.
type Receiver struct {
	ingestor Ingestor
	cfg      ReceiverConfig
}

func NewReceiver(ingestor Ingestor, cfg ReceiverConfig) *Receiver {
	if cfg.AppSecret == "" {
		logrus.Warnf("meta webhook: app secret is not configured, %s of notifications is not verified", signatureHeader)
	}
	return &Receiver{
		ingestor: ingestor,
		cfg:      cfg,
	}
}

// Register adds the receiver routes to r.
func (rc *Receiver) Register(r *mux.Router) {
	r.HandleFunc(MetaWebhookPath, rc.verifyMeta).Methods(http.MethodGet)
	r.HandleFunc(MetaWebhookPath, rc.receiveMeta).Methods(http.MethodPost)
	r.HandleFunc(NotificaMeWebhookPath, rc.receiveNotificaMe).Methods(http.MethodPost)
	r.HandleFunc(UazAPIWebhookPath, rc.receiveUazAPI).Methods(http.MethodPost)
}

func (rc *Receiver) verifyMeta(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	mode := query.Get("hub.mode")
	token := query.Get("hub.verify_token")
	challenge := query.Get("hub.challenge")

	if mode != "subscribe" || challenge == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}
	if rc.cfg.VerifyToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(rc.cfg.VerifyToken)) != 1 {
		logrus.Warnf("meta webhook: verification rejected, token mismatch")
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(challenge)); err != nil {
		logrus.Warnf("verifyMeta failed to write response: %v", err)
	}
}

func (rc *Receiver) receiveMeta(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInboundBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	if rc.cfg.AppSecret != "" && !webhook.Verify(rc.cfg.AppSecret, body, r.Header.Get(signatureHeader)) {
		logrus.Warnf("meta webhook: rejected notification with invalid %s", signatureHeader)
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": model.ErrSignatureMismatch.Error()})
		return
	}

	changes, err := ParseMeta(body)
	if err != nil {
		logrus.Warnf("meta webhook: %v", err)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}

	stats, err := rc.ingestor.IngestMeta(ctx, time.Now().Unix(), changes)
	if err != nil {
		logrus.Errorf("meta webhook: failed to ingest notification: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Internal Server Error"})
		return
	}
	logrus.Debugf("meta webhook: %+v", stats)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (rc *Receiver) receiveNotificaMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInboundBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	env, err := ParseNotificaMe(r.Header.Get("Content-Type"), body)
	if err != nil {
		logrus.Warnf("notificame webhook: %v", err)
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
		return
	}
	if env.Ping {
		logrus.Info("notificame webhook: validation ping received")
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Webhook validated"})
		return
	}

	stats, err := rc.ingestor.IngestNotificaMe(ctx, time.Now().Unix(), env)
	if errors.Is(err, model.ErrUnknownChannel) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Unauthorized channel"})
		return
	}
	if err != nil {
		logrus.Errorf("notificame webhook: failed to ingest notification: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Internal error"})
		return
	}
	logrus.Debugf("notificame webhook: %+v", stats)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (rc *Receiver) receiveUazAPI(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxInboundBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": err.Error()})
		return
	}

	env, err := ParseUazAPI(r.Header.Get(instanceHeader), body)
	if err != nil {
		logrus.Warnf("uazapi webhook: %v", err)
		writeJSON(w, http.StatusBadRequest, map[string]any{"success": false, "error": "Malformed payload"})
		return
	}

	stats, err := rc.ingestor.IngestUazAPI(ctx, time.Now().Unix(), env)
	if errors.Is(err, model.ErrUnknownChannel) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"success": false, "error": "Connection not found"})
		return
	}
	if err != nil {
		logrus.Errorf("uazapi webhook: failed to ingest notification: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{"success": false, "error": "Internal error"})
		return
	}
	logrus.Debugf("uazapi webhook: %+v", stats)
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Warnf("failed to encode/write response: %v", err)
	}
}
