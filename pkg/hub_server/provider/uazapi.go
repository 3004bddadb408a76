package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/sirupsen/logrus"
)

type uazResponse struct {
	Status    string `json:"status"`
	ID        string `json:"id"`
	MessageID string `json:"messageId"`
	Key       *struct {
		ID string `json:"id"`
	} `json:"key"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

type _UazAPISender struct {
	client *http.Client
}

// NewUazAPISender sends through the UazAPI instance configured on each connection.
func NewUazAPISender(timeout time.Duration) Sender {
	return &_UazAPISender{client: newHTTPClient(timeout)}
}

func (s *_UazAPISender) Send(ctx context.Context, conn model.Connection, req SendRequest) (SendResult, error) {
	baseURL := strings.TrimRight(conn.UazAPIURL, "/")
	if baseURL == "" || conn.UazAPIToken == "" {
		return SendResult{}, fmt.Errorf("uazapi is not configured (url or token missing)%w", model.ErrSendFailed)
	}

	phone := CleanPhone(req.To)
	var endpoint string
	var payload map[string]string
	if req.MediaURL == "" {
		endpoint = "/send/text"
		payload = map[string]string{"phone": phone, "message": req.Body}
	} else {
		switch mediaKind(req) {
		case MediaImage:
			endpoint = "/send/image"
			payload = map[string]string{"phone": phone, "image": req.MediaURL, "caption": req.Body}
		case MediaVideo:
			endpoint = "/send/video"
			payload = map[string]string{"phone": phone, "video": req.MediaURL, "caption": req.Body}
		case MediaAudio:
			endpoint = "/send/audio"
			payload = map[string]string{"phone": phone, "audio": req.MediaURL}
		default:
			fileName := req.FileName
			if fileName == "" {
				fileName = "document"
			}
			endpoint = "/send/document"
			payload = map[string]string{"phone": phone, "document": req.MediaURL, "fileName": fileName, "caption": req.Body}
		}
	}

	header := http.Header{}
	header.Set("Token", conn.UazAPIToken)

	var resp uazResponse
	if _, err := postJSON(ctx, s.client, baseURL+endpoint, header, payload, &resp); err != nil {
		if msg := firstNonEmpty(resp.Message, resp.Error); msg != "" {
			err = errors.New(msg)
		}
		logrus.Warnf("uazapi send through %s failed: %v", baseURL, err)
		return SendResult{}, fmt.Errorf("%s%w", err.Error(), model.ErrSendFailed)
	}

	res := SendResult{
		Provider:  string(model.ProviderUazAPI),
		MessageID: firstNonEmpty(resp.ID, resp.MessageID),
	}
	if res.MessageID == "" && resp.Key != nil {
		res.MessageID = resp.Key.ID
	}
	return res, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
