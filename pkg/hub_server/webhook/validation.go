package webhook

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/samber/lo"
)

var subscribableEvents = lo.Map(model.SubscribableEventTypes, func(t model.EventType, _ int) interface{} { return t })

var reservedHeaders = []string{
	"Content-Type",
	"Content-Length",
	"Host",
	HeaderSignature,
	HeaderEvent,
	HeaderDelivery,
	HeaderTimestamp,
}

var httpURL = validation.By(func(value interface{}) error {
	v, _ := validation.Indirect(value)
	s, _ := v.(string)
	if s == "" {
		return nil
	}
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an absolute http or https URL")
	}
	return nil
})

var staticHeaders = validation.By(func(value interface{}) error {
	v, _ := validation.Indirect(value)
	headers, _ := v.(map[string]string)
	for name := range headers {
		canonical := http.CanonicalHeaderKey(strings.TrimSpace(name))
		if canonical == "" {
			return errors.New("header name must not be empty")
		}
		if lo.Contains(reservedHeaders, canonical) {
			return fmt.Errorf("header %q can not be overridden", canonical)
		}
	}
	return nil
})

func ValidateCreateWebhookRequest(req CreateWebhookRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Requester, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&req.Events, validation.Required, validation.Each(validation.In(subscribableEvents...))),
		validation.Field(&req.Url, validation.Required, is.URL, httpURL),
		validation.Field(&req.Headers, staticHeaders),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateListWebhookRequest(req ListWebhookRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.Limit, validation.Required, validation.Max(100)),
		validation.Field(&req.CompanyID, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateUpdateWebhookRequest(req UpdateWebhookRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.Requester, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.Name, validation.NilOrNotEmpty, validation.Length(1, 255)),
		validation.Field(&req.Events, validation.NilOrNotEmpty, validation.Each(validation.In(subscribableEvents...))),
		validation.Field(&req.Url, validation.NilOrNotEmpty, is.URL, httpURL),
		validation.Field(&req.Headers, staticHeaders),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

func ValidateWebhookIDRequest(req WebhookIDRequest) error {
	err := validation.ValidateStruct(&req,
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.Requester, validation.Required),
		validation.Field(&req.CompanyID, validation.Required),
	)
	if err != nil {
		return fmt.Errorf("%s%w", err.Error(), model.ErrInvalidParameter)
	}
	return nil
}

// ValidateEvent checks an event before it is fanned out.
func ValidateEvent(event model.Event) error {
	if event.CompanyID == "" {
		return fmt.Errorf("company_id: cannot be blank.%w", model.ErrInvalidParameter)
	}
	if !event.Type.Emittable() {
		return fmt.Errorf("%q: %w", event.Type, model.ErrUnknownEventType)
	}
	if data := bytes.TrimSpace(event.Data); len(data) > 0 && data[0] != '{' {
		return fmt.Errorf("data: must be a JSON object.%w", model.ErrInvalidParameter)
	}
	return nil
}
