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

type cloudMedia struct {
	Link     string `json:"link"`
	Caption  string `json:"caption,omitempty"`
	Filename string `json:"filename,omitempty"`
}

type cloudText struct {
	Body       string `json:"body"`
	PreviewURL bool   `json:"preview_url"`
}

type cloudMessage struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             *cloudText  `json:"text,omitempty"`
	Image            *cloudMedia `json:"image,omitempty"`
	Video            *cloudMedia `json:"video,omitempty"`
	Audio            *cloudMedia `json:"audio,omitempty"`
	Document         *cloudMedia `json:"document,omitempty"`
}

type graphError struct {
	Error *struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

type cloudResponse struct {
	graphError
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

type _CloudAPISender struct {
	graphURL string
	client   *http.Client
}

// NewCloudAPISender sends through the Meta WhatsApp Cloud API at graphURL (DefaultGraphURL when empty).
func NewCloudAPISender(graphURL string, timeout time.Duration) Sender {
	if graphURL == "" {
		graphURL = DefaultGraphURL
	}
	return &_CloudAPISender{
		graphURL: strings.TrimRight(graphURL, "/"),
		client:   newHTTPClient(timeout),
	}
}

func (s *_CloudAPISender) Send(ctx context.Context, conn model.Connection, req SendRequest) (SendResult, error) {
	if conn.PhoneNumberID == "" || conn.AccessToken == "" {
		return SendResult{}, fmt.Errorf("cloud api is not configured (phone_number_id or access_token missing)%w", model.ErrSendFailed)
	}
	if req.IsGroup || strings.HasSuffix(req.To, "@g.us") {
		return SendResult{}, fmt.Errorf("groups are not supported by the cloud api%w", model.ErrSendFailed)
	}

	msg := cloudMessage{
		MessagingProduct: "whatsapp",
		To:               NormalizePhone(req.To),
	}
	if req.MediaURL == "" {
		body := req.Body
		if body == "" {
			body = "\u200b"
		}
		msg.Type = "text"
		msg.Text = &cloudText{Body: body}
	} else {
		kind := mediaKind(req)
		msg.Type = string(kind)
		media := &cloudMedia{Link: req.MediaURL, Caption: req.Body}
		switch kind {
		case MediaImage:
			msg.Image = media
		case MediaVideo:
			msg.Video = media
		case MediaAudio:
			media.Caption = ""
			msg.Audio = media
		default:
			media.Filename = req.FileName
			msg.Document = media
		}
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+conn.AccessToken)

	var resp cloudResponse
	_, err := postJSON(ctx, s.client, s.graphURL+"/"+conn.PhoneNumberID+"/messages", header, msg, &resp)
	if err != nil {
		if resp.Error != nil && resp.Error.Message != "" {
			err = errors.New(resp.Error.Message)
		}
		logrus.Warnf("cloud api send from %s failed: %v", conn.PhoneNumberID, err)
		return SendResult{}, fmt.Errorf("%s%w", err.Error(), model.ErrSendFailed)
	}

	res := SendResult{Provider: string(model.ProviderCloudAPI)}
	if len(resp.Messages) > 0 {
		res.MessageID = resp.Messages[0].ID
	}
	return res, nil
}
