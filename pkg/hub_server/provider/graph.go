package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sirupsen/logrus"
)

// GraphClient talks to the Meta Graph API on behalf of a business.
type GraphClient interface {
	// SubscribeApp subscribes the app to the webhooks of the WhatsApp Business Account.
	SubscribeApp(ctx context.Context, wabaID string, accessToken string) error
}

type _GraphClient struct {
	graphURL string
	client   *http.Client
	attempts uint
	delay    time.Duration
}

type GraphClientOption func(c *_GraphClient)

func WithGraphRetry(attempts uint, delay time.Duration) GraphClientOption {
	return func(c *_GraphClient) {
		c.attempts = attempts
		c.delay = delay
	}
}

func NewGraphClient(graphURL string, timeout time.Duration, opts ...GraphClientOption) GraphClient {
	if graphURL == "" {
		graphURL = DefaultGraphURL
	}
	c := &_GraphClient{
		graphURL: strings.TrimRight(graphURL, "/"),
		client:   newHTTPClient(timeout),
		attempts: 3,
		delay:    time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *_GraphClient) SubscribeApp(ctx context.Context, wabaID string, accessToken string) error {
	if wabaID == "" || accessToken == "" {
		return errors.New("waba_id and access_token are required")
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+accessToken)
	url := c.graphURL + "/" + wabaID + "/subscribed_apps"

	return retry.Do(
		func() error {
			var resp graphError
			status, err := postJSON(ctx, c.client, url, header, struct{}{}, &resp)
			if err == nil {
				return nil
			}
			if resp.Error != nil && resp.Error.Message != "" {
				err = fmt.Errorf("%s: %s", err.Error(), resp.Error.Message)
			}
			logrus.Debugf("subscribed_apps for %s: %v", wabaID, err)
			if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
				return retry.Unrecoverable(err)
			}
			return err
		},
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
	)
}
