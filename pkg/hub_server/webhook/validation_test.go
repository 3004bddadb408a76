package webhook_test

import (
	"testing"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/webhook"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/stretchr/testify/assert"
)

func TestValidateCreateWebhookRequestHeaders(t *testing.T) {
	req := webhook.CreateWebhookRequest{
		Requester: "requester",
		CompanyID: "company_1",
		Name:      "CRM sync",
		Events:    []model.EventType{model.EventTicketCreated},
		Url:       "https://example.com/hook",
		Headers:   map[string]string{"Authorization": "Bearer abc", "X-Tenant": "t1"},
	}
	assert.NoError(t, webhook.ValidateCreateWebhookRequest(req))

	req.Headers = map[string]string{"host": "evil.example.com"}
	assert.ErrorIs(t, webhook.ValidateCreateWebhookRequest(req), model.ErrInvalidParameter)

	req.Headers = map[string]string{" ": "blank"}
	assert.ErrorIs(t, webhook.ValidateCreateWebhookRequest(req), model.ErrInvalidParameter)
}

func TestValidateUpdateWebhookRequestURL(t *testing.T) {
	base := webhook.UpdateWebhookRequest{Requester: "requester", CompanyID: "company_1", ID: "whk_1"}
	assert.NoError(t, webhook.ValidateUpdateWebhookRequest(base))

	ok := base
	ok.Url = util.Ptr("http://example.com/hook")
	assert.NoError(t, webhook.ValidateUpdateWebhookRequest(ok))

	ftp := base
	ftp.Url = util.Ptr("ftp://example.com/hook")
	assert.ErrorIs(t, webhook.ValidateUpdateWebhookRequest(ftp), model.ErrInvalidParameter)

	reserved := base
	reserved.Headers = map[string]string{"X-Webhook-Signature": "forged"}
	assert.ErrorIs(t, webhook.ValidateUpdateWebhookRequest(reserved), model.ErrInvalidParameter)
}
