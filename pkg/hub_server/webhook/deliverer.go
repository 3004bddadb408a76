package webhook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	otlp_util "github.com/bluexlab/otlp-util-go"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	DefaultDeliveryTimeout = 15 * time.Second

	maxResponseRead   = 64 * 1024
	maxResponseStored = 5000
)

// DeliveryRequest is one HTTP attempt against a subscription.
type DeliveryRequest struct {
	Url        string
	Secret     string
	Headers    map[string]string // Static subscription headers.
	EventType  model.EventType
	DeliveryID string
	Body       []byte
	Timestamp  time.Time
}

// AttemptResult is the classified outcome of a single attempt.
type AttemptResult struct {
	Outcome        model.DeliveryState
	ResponseStatus *int
	ResponseBody   *string // Truncated.
	Err            error
	Duration       time.Duration
	RetryAfter     time.Duration // Minimum delay requested by the receiver, if any.
}

// ErrorMessage renders the attempt failure for the delivery log.
func (r AttemptResult) ErrorMessage() *string {
	if r.Err != nil {
		return util.Ptr(r.Err.Error())
	}
	if r.Outcome != model.DeliverySucceeded && r.ResponseStatus != nil {
		return util.Ptr(fmt.Sprintf("HTTP %d", *r.ResponseStatus))
	}
	return nil
}

type Deliverer interface {
	Deliver(ctx context.Context, req DeliveryRequest) AttemptResult
}

type _HTTPDeliverer struct {
	client *http.Client
	now    func() time.Time
}

func NewHTTPDeliverer(timeout time.Duration) Deliverer {
	if timeout <= 0 {
		timeout = DefaultDeliveryTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DisableKeepAlives = true
	transport.MaxIdleConnsPerHost = -1
	return &_HTTPDeliverer{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		now: time.Now,
	}
}

func (d *_HTTPDeliverer) Deliver(ctx context.Context, req DeliveryRequest) AttemptResult {
	ctx, span := otlp_util.Start(ctx, "webhook/deliverer.Deliver",
		trace.WithAttributes(
			attribute.String("event_type", string(req.EventType)),
			attribute.String("delivery_id", req.DeliveryID),
		),
	)
	defer span.End()

	start := d.now()
	result := d.deliver(ctx, req)
	result.Duration = d.now().Sub(start)
	if result.Outcome == "" {
		result.Outcome = Classify(lo.FromPtr(result.ResponseStatus), result.Err)
	}
	span.SetAttributes(attribute.String("outcome", string(result.Outcome)))
	return result
}

func (d *_HTTPDeliverer) deliver(ctx context.Context, req DeliveryRequest) AttemptResult {
	signature, err := Sign(req.Secret, req.Body)
	if err != nil {
		return AttemptResult{Outcome: model.DeliveryFailedTerminal, Err: fmt.Errorf("sign payload: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, req.Url, bytes.NewReader(req.Body))
	if err != nil {
		return AttemptResult{Err: fmt.Errorf("create http request: %w", err)}
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(HeaderEvent, string(req.EventType))
	httpReq.Header.Set(HeaderTimestamp, strconv.FormatInt(req.Timestamp.Unix(), 10))
	if req.DeliveryID != "" {
		httpReq.Header.Set(HeaderDelivery, req.DeliveryID)
	}
	if signature != "" {
		httpReq.Header.Set(HeaderSignature, signature)
	}

	resp, err := d.client.Do(httpReq)
	if err != nil {
		return AttemptResult{Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	result := AttemptResult{ResponseStatus: util.Ptr(resp.StatusCode)}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseRead))
	if err == nil || len(body) > 0 {
		result.ResponseBody = util.Ptr(util.TruncateString(string(body), maxResponseStored))
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		if after, ok := ParseRetryAfter(resp.Header.Get("Retry-After"), d.now()); ok {
			result.RetryAfter = after
		}
	}
	return result
}
