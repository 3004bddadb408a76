package middleware

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	maxLoggedBody  = 5000
	maxRequestBody = 1 << 20
	redacted       = "***"
)

var sensitiveKeys = []string{"password", "token", "key", "secret", "authorization", "api_key"}

type logIdentityKey struct{}

// logIdentity is filled by the authentication middleware so the audit record
// knows the caller even though it is written by an outer handler.
type logIdentity struct {
	companyID string
	tokenID   string
}

type APILogger struct {
	storage storage.APILogStorage
}

func NewAPILogger(s storage.APILogStorage) *APILogger {
	return &APILogger{storage: s}
}

// Log writes one api_log record per request, whatever its outcome.
func (l *APILogger) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		var requestBody []byte
		if r.Body != nil {
			requestBody, _ = io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
			_ = r.Body.Close()
			r.Body = io.NopCloser(bytes.NewReader(requestBody))
		}

		identity := &logIdentity{}
		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), logIdentityKey{}, identity)))

		log := model.APILog{
			ID:             util.NewID("alg"),
			CompanyID:      lo.Ternary(identity.companyID != "", &identity.companyID, nil),
			TokenID:        lo.Ternary(identity.tokenID != "", &identity.tokenID, nil),
			Method:         r.Method,
			Endpoint:       r.URL.Path,
			RequestBody:    sanitizeBody(requestBody),
			ResponseStatus: rec.statusCode(),
			ResponseBody:   loggableBody(rec.body.Bytes(), rec.truncated),
			DurationMs:     time.Since(start).Milliseconds(),
			IPAddress:      lo.EmptyableToPtr(clientIP(r)),
			UserAgent:      lo.EmptyableToPtr(r.UserAgent()),
			CreatedAt:      start.Unix(),
		}
		if err := l.store(context.WithoutCancel(r.Context()), log); err != nil {
			logrus.Warnf("failed to store API log of %s %s: %v", r.Method, r.URL.Path, err)
		}
	})
}

func (l *APILogger) store(ctx context.Context, log model.APILog) error {
	tx, ctx, err := l.storage.CreateTx(ctx, storage.TxOptionWithWrite(true))
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := l.storage.AddAPILog(ctx, tx, log); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func markLogIdentity(ctx context.Context, companyID, tokenID string) {
	if identity, ok := ctx.Value(logIdentityKey{}).(*logIdentity); ok {
		identity.companyID = companyID
		identity.tokenID = tokenID
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status    int
	body      bytes.Buffer
	truncated bool
}

func (r *responseRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *responseRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	if room := maxLoggedBody - r.body.Len(); room > 0 {
		r.body.Write(p[:min(room, len(p))])
		if room < len(p) {
			r.truncated = true
		}
	} else if len(p) > 0 {
		r.truncated = true
	}
	return r.ResponseWriter.Write(p)
}

func (r *responseRecorder) statusCode() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// sanitizeBody redacts credentials from a JSON request body. Non JSON bodies are kept as a JSON string.
func sanitizeBody(body []byte) json.RawMessage {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var value any
	if err := json.Unmarshal(body, &value); err != nil {
		return loggableBody(body, false)
	}
	sanitized, err := json.Marshal(redact(value))
	if err != nil {
		return nil
	}
	if len(sanitized) > maxLoggedBody {
		return loggableBody(sanitized, true)
	}
	return sanitized
}

func redact(value any) any {
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			if isSensitiveKey(k) {
				out[k] = redacted
				continue
			}
			out[k] = redact(item)
		}
		return out
	case []any:
		return lo.Map(v, func(item any, _ int) any { return redact(item) })
	default:
		return value
	}
}

func isSensitiveKey(k string) bool {
	k = strings.ToLower(k)
	return lo.ContainsBy(sensitiveKeys, func(s string) bool { return strings.Contains(k, s) })
}

// loggableBody returns body as stored in a JSONB column: untouched when it is complete JSON,
// otherwise as a JSON string of at most maxLoggedBody characters.
func loggableBody(body []byte, truncated bool) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if !truncated && len(body) <= maxLoggedBody && json.Valid(body) {
		return body
	}

	text := string(body)
	if utf8.RuneCountInString(text) > maxLoggedBody {
		text = string([]rune(text)[:maxLoggedBody])
	}
	text = strings.ToValidUTF8(text, "")
	raw, err := json.Marshal(text)
	if err != nil {
		return nil
	}
	return raw
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return strings.TrimSpace(strings.Split(forwarded, ",")[0])
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
