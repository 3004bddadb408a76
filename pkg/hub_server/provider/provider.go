package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/goccy/go-json"
)

const DefaultGraphURL = "https://graph.facebook.com/v21.0"

type MediaType string

const (
	MediaImage    MediaType = "image"
	MediaVideo    MediaType = "video"
	MediaAudio    MediaType = "audio"
	MediaDocument MediaType = "document"
)

type SendRequest struct {
	To        string    // Phone number or JID of the recipient.
	Body      string    // Text, or caption of the media.
	MediaURL  string    // Public URL of the media. Empty for text messages.
	MediaType MediaType // Falls back to the MIME type, then to document.
	MimeType  string
	FileName  string
	IsGroup   bool
}

type SendResult struct {
	MessageID string `json:"message_id"`
	Provider  string `json:"provider"`
}

// Sender delivers an outbound WhatsApp message through the provider of a connection.
type Sender interface {
	Send(ctx context.Context, conn model.Connection, req SendRequest) (SendResult, error)
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// mediaKind resolves the kind of media to send from the explicit type or the MIME type.
func mediaKind(req SendRequest) MediaType {
	switch MediaType(strings.ToLower(string(req.MediaType))) {
	case MediaImage:
		return MediaImage
	case MediaVideo:
		return MediaVideo
	case MediaAudio:
		return MediaAudio
	case MediaDocument:
		return MediaDocument
	}
	switch {
	case strings.HasPrefix(req.MimeType, "image/"):
		return MediaImage
	case strings.HasPrefix(req.MimeType, "video/"):
		return MediaVideo
	case strings.HasPrefix(req.MimeType, "audio/"):
		return MediaAudio
	}
	return MediaDocument
}

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhone keeps the digits of a number and prefixes Brazilian national numbers (10 or 11 digits) with 55.
// A number written with a leading + already carries its country code.
func NormalizePhone(to string) string {
	digits := nonDigit.ReplaceAllString(to, "")
	if strings.HasPrefix(strings.TrimSpace(to), "+") {
		return digits
	}
	if len(digits) == 10 || len(digits) == 11 {
		return "55" + digits
	}
	return digits
}

// CleanPhone strips the WhatsApp JID suffix and any non digit.
func CleanPhone(to string) string {
	to = strings.TrimSuffix(to, "@s.whatsapp.net")
	to = strings.TrimSuffix(to, "@g.us")
	return nonDigit.ReplaceAllString(to, "")
}

// postJSON POSTs body and decodes the JSON answer into out. Non 2xx answers are returned as error with the provider message.
func postJSON(ctx context.Context, client *http.Client, url string, header http.Header, body any, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, util.StructToJSONReader(body))
	if err != nil {
		return 0, fmt.Errorf("create http request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, err
	}
	if len(raw) > 0 && out != nil {
		_ = json.Unmarshal(raw, out)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	return resp.StatusCode, nil
}
