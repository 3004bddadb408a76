package webhook

import (
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/goccy/go-json"
)

const isoTimestampLayout = "2006-01-02T15:04:05.000Z"

// BuildPayload renders the body POSTed to a subscription. The bytes are built once and reused by every attempt.
func BuildPayload(eventType model.EventType, data json.RawMessage, occurredAt time.Time, webhookID string) ([]byte, error) {
	if len(data) == 0 {
		data = json.RawMessage(`{}`)
	}
	payload := model.DeliveryPayload{
		Event:     eventType,
		Data:      data,
		Timestamp: occurredAt.UTC().Format(isoTimestampLayout),
		WebhookID: webhookID,
	}
	return json.Marshal(payload)
}

var sampleData = map[model.EventType]string{
	model.EventMessageReceived:         `{"id":"msg_sample","ticket_id":"tkt_sample","contact_id":"ctc_sample","body":"Olá! Esta é uma mensagem de teste.","from_me":false,"ack":0}`,
	model.EventMessageSent:             `{"id":"msg_sample","ticket_id":"tkt_sample","contact_id":"ctc_sample","body":"Mensagem enviada pela API","from_me":true,"ack":1}`,
	model.EventMessageStatusChanged:    `{"id":"msg_sample","wid":"wamid.sample","ack":3,"status":"read"}`,
	model.EventTicketCreated:           `{"id":"tkt_sample","contact_id":"ctc_sample","status":"pending","last_message":"Olá!"}`,
	model.EventTicketUpdated:           `{"id":"tkt_sample","contact_id":"ctc_sample","status":"open","last_message":"Olá!"}`,
	model.EventTicketClosed:            `{"id":"tkt_sample","contact_id":"ctc_sample","status":"closed"}`,
	model.EventContactCreated:          `{"id":"ctc_sample","name":"Contato Teste","number":"5511999999999"}`,
	model.EventContactUpdated:          `{"id":"ctc_sample","name":"Contato Teste","number":"5511999999999","email":"teste@example.com"}`,
	model.EventCampaignStarted:         `{"id":"cmp_sample","name":"Campanha Teste","contacts":100}`,
	model.EventCampaignCompleted:       `{"id":"cmp_sample","name":"Campanha Teste","delivered":98,"failed":2}`,
	model.EventWhatsAppConnected:       `{"id":"wac_sample","name":"WhatsApp Principal","status":"CONNECTED"}`,
	model.EventWhatsAppDisconnected:    `{"id":"wac_sample","name":"WhatsApp Principal","status":"DISCONNECTED"}`,
	model.EventConnectionStatusChanged: `{"id":"wac_sample","previous_status":"CONNECTING","status":"CONNECTED"}`,
	model.EventExternalAny:             `{"source":"external","message":"Evento externo de teste"}`,
}

// SampleData returns representative data for an event type, used by manual test deliveries.
func SampleData(eventType model.EventType) json.RawMessage {
	if data, ok := sampleData[eventType]; ok {
		return json.RawMessage(data)
	}
	if eventType.IsExternal() {
		return json.RawMessage(sampleData[model.EventExternalAny])
	}
	return json.RawMessage(`{"message":"Webhook de teste"}`)
}
