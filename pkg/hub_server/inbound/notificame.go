package inbound

import (
	"fmt"
	"mime"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

const (
	DirectionIn  = "IN"
	DirectionOut = "OUT"
)

// NotificaMeEnvelope is a NotificaMe Hub notification with the flat and nested layouts folded together.
type NotificaMeEnvelope struct {
	// Ping is set for the form-encoded probe the hub sends when the webhook is configured.
	Ping bool

	Type      string
	Direction string
	// ChannelTokens are the candidate channel tokens, most specific first.
	ChannelTokens []string
	Message       Message

	Status string
	Ack    *model.MessageAck

	Raw json.RawMessage
}

type notificameBody struct {
	Type               string          `json:"type"`
	SubscriptionID     string          `json:"subscriptionId"`
	SubscriptionIDAlt  string          `json:"subscription_id"`
	Channel            string          `json:"channel"`
	Direction          string          `json:"direction"`
	ID                 string          `json:"id"`
	ProviderMessageID  string          `json:"providerMessageId"`
	ProviderMessageAlt string          `json:"provider_message_id"`
	From               string          `json:"from"`
	To                 string          `json:"to"`
	Visitor            *struct {
		Name string `json:"name"`
	} `json:"visitor"`
	Contents  json.RawMessage `json:"contents"`
	Timestamp json.RawMessage `json:"timestamp"`
	Status    string          `json:"status"`
	Message   *notificameBody `json:"message"`
}

type notificameContent struct {
	Type         string  `json:"type"`
	Text         string  `json:"text"`
	FileURL      string  `json:"fileUrl"`
	URL          string  `json:"url"`
	FileMimeType string  `json:"fileMimeType"`
	FileCaption  string  `json:"fileCaption"`
	FileName     string  `json:"fileName"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Interactive  struct {
		ButtonReply *struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"button_reply"`
		ListReply *struct {
			ID          string `json:"id"`
			Title       string `json:"title"`
			Description string `json:"description"`
		} `json:"list_reply"`
	} `json:"interactive"`
	Template struct {
		Name string `json:"name"`
	} `json:"template"`
}

var notificameAcks = map[string]model.MessageAck{
	"sent":      model.AckSent,
	"delivered": model.AckDelivered,
	"read":      model.AckRead,
	"failed":    model.AckFailed,
	"error":     model.AckFailed,
}

// ParseNotificaMe normalizes a NotificaMe Hub notification. Both JSON and form-encoded bodies are accepted.
func ParseNotificaMe(contentType string, body []byte) (NotificaMeEnvelope, error) {
	mediaType, _, _ := mime.ParseMediaType(contentType)
	if mediaType == "application/x-www-form-urlencoded" {
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return NotificaMeEnvelope{}, fmt.Errorf("malformed notificame form: %w", err)
		}
		if values.Has("mensagem") && !values.Has("id") && !values.Has("channel") {
			return NotificaMeEnvelope{Ping: true}, nil
		}
		body, err = formToJSON(values)
		if err != nil {
			return NotificaMeEnvelope{}, err
		}
	}

	var outer notificameBody
	if err := json.Unmarshal(body, &outer); err != nil {
		return NotificaMeEnvelope{}, fmt.Errorf("malformed notificame payload: %w", err)
	}
	inner := outer
	if outer.Message != nil {
		inner = *outer.Message
	}
	pick := func(fn func(b notificameBody) string) string {
		return firstNonEmpty(fn(inner), fn(outer))
	}

	env := NotificaMeEnvelope{
		Type:      firstNonEmpty(outer.Type, inner.Type),
		Direction: strings.ToUpper(pick(func(b notificameBody) string { return b.Direction })),
		Status:    strings.ToLower(pick(func(b notificameBody) string { return b.Status })),
		Raw:       body,
	}

	token := firstNonEmpty(outer.SubscriptionID, outer.SubscriptionIDAlt, pick(func(b notificameBody) string { return b.To }))
	env.ChannelTokens = lo.Without(lo.Uniq([]string{token, outer.Channel}), "")

	providerID := firstNonEmpty(outer.ProviderMessageID, outer.ProviderMessageAlt, inner.ProviderMessageID, inner.ProviderMessageAlt)
	rawID := pick(func(b notificameBody) string { return b.ID })
	env.Message = Message{
		ID:    firstNonEmpty(providerID, rawID),
		RawID: rawID,
		From:  pick(func(b notificameBody) string { return b.From }),
		Raw:   body,
	}
	if inner.Visitor != nil {
		env.Message.PushName = inner.Visitor.Name
	}
	env.Message.Timestamp = parseTimestamp(lo.Ternary(len(inner.Timestamp) > 0, inner.Timestamp, outer.Timestamp))

	contents := lo.Ternary(len(inner.Contents) > 0, inner.Contents, outer.Contents)
	content, err := parseNotificaMeContents(contents)
	if err != nil {
		return NotificaMeEnvelope{}, err
	}
	env.Message.Content = content

	if ack, ok := notificameAcks[env.Status]; ok {
		env.Ack = &ack
	}
	return env, nil
}

func firstNonEmpty(values ...string) string {
	v, _ := lo.Coalesce(values...)
	return v
}

// formToJSON turns form fields into a JSON object, keeping values that are JSON objects or arrays themselves.
func formToJSON(values url.Values) ([]byte, error) {
	obj := make(map[string]json.RawMessage, len(values))
	for key := range values {
		value := strings.TrimSpace(values.Get(key))
		if (strings.HasPrefix(value, "{") || strings.HasPrefix(value, "[")) && json.Valid([]byte(value)) {
			obj[key] = json.RawMessage(value)
			continue
		}
		quoted, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		obj[key] = quoted
	}
	return json.Marshal(obj)
}

func parseNotificaMeContents(raw json.RawMessage) (Content, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return UnsupportedContent{}, nil
	}

	// Some hub versions send the contents array as a JSON string.
	var encoded string
	if err := json.Unmarshal(raw, &encoded); err == nil {
		raw = json.RawMessage(encoded)
	}

	var items []notificameContent
	if strings.HasPrefix(strings.TrimSpace(string(raw)), "{") {
		var item notificameContent
		if err := json.Unmarshal(raw, &item); err != nil {
			return nil, fmt.Errorf("malformed notificame contents: %w", err)
		}
		items = append(items, item)
	} else if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("malformed notificame contents: %w", err)
	}

	return Merge(lo.Map(items, func(item notificameContent, _ int) Content {
		return notificameContentOf(item)
	})), nil
}

func notificameContentOf(item notificameContent) Content {
	switch item.Type {
	case "text":
		return TextContent{Text: item.Text}
	case "file":
		return FileContent{
			Kind:     "file",
			URL:      firstNonEmpty(item.FileURL, item.URL),
			MimeType: item.FileMimeType,
			FileName: item.FileName,
			Caption:  item.FileCaption,
		}
	case "location":
		return LocationContent{Latitude: item.Latitude, Longitude: item.Longitude}
	case "contacts":
		return ContactsContent{}
	case "interactive":
		if r := item.Interactive.ButtonReply; r != nil {
			return InteractiveButtonContent{ID: r.ID, Title: r.Title}
		}
		if r := item.Interactive.ListReply; r != nil {
			return InteractiveListContent{ID: r.ID, Title: r.Title, Description: r.Description}
		}
		return UnsupportedContent{Type: item.Type}
	case "template":
		return TemplateContent{Name: item.Template.Name}
	default:
		return UnsupportedContent{Type: item.Type}
	}
}

// parseTimestamp accepts unix seconds, unix milliseconds and RFC 3339 strings. Zero means unknown.
func parseTimestamp(raw json.RawMessage) int64 {
	if len(raw) == 0 {
		return 0
	}
	text := strings.Trim(string(raw), `"`)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		if n > 1e12 {
			return n / 1000
		}
		return n
	}
	if t, err := time.Parse(time.RFC3339, text); err == nil {
		return t.Unix()
	}
	return 0
}
