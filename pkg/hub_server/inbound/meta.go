package inbound

import (
	"fmt"
	"strconv"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/util"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

const (
	metaFieldMessages      = "messages"
	metaFieldQualityUpdate = "phone_number_quality_update"
	metaFieldAccountUpdate = "account_update"
)

// Account events after which the number can no longer send messages.
var metaDisconnectEvents = []string{"DISABLED_UPDATE", "ACCOUNT_DELETED"}

// Message is an inbound message normalized from any provider.
type Message struct {
	ID        string // Provider message id, used for de-duplication.
	RawID     string // Secondary provider id that receipts may refer to.
	From      string
	PushName  string
	Timestamp int64
	Content   Content
	Raw       json.RawMessage
}

// Status is a delivery receipt of a message sent by the company.
type Status struct {
	ID    string
	RawID string
	Ack   model.MessageAck
}

// MetaChange is one entry[].changes[] element of a Cloud API notification.
type MetaChange struct {
	WabaID        string
	PhoneNumberID string
	Field         string
	Messages      []Message
	Statuses      []Status
	Update        *connection.ProviderUpdate
}

type metaPayload struct {
	Object string `json:"object"`
	Entry  []struct {
		ID      string `json:"id"`
		Changes []struct {
			Field string    `json:"field"`
			Value metaValue `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

type metaValue struct {
	Metadata struct {
		DisplayPhoneNumber string `json:"display_phone_number"`
		PhoneNumberID      string `json:"phone_number_id"`
	} `json:"metadata"`
	Contacts []struct {
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
		WaID string `json:"wa_id"`
	} `json:"contacts"`
	Messages []json.RawMessage `json:"messages"`
	Statuses []struct {
		ID          string          `json:"id"`
		Status      string          `json:"status"`
		RecipientID string          `json:"recipient_id"`
		Errors      json.RawMessage `json:"errors"`
	} `json:"statuses"`

	// phone_number_quality_update and account_update
	Event        string `json:"event"`
	CurrentLimit string `json:"current_limit"`
}

type metaMedia struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Caption  string `json:"caption"`
	Filename string `json:"filename"`
}

type metaSharedContact struct {
	Name struct {
		FormattedName string `json:"formatted_name"`
	} `json:"name"`
}

type metaMessage struct {
	From      string `json:"from"`
	ID        string `json:"id"`
	Timestamp string `json:"timestamp"`
	Type      string `json:"type"`
	Text      struct {
		Body string `json:"body"`
	} `json:"text"`
	Image    *metaMedia `json:"image"`
	Video    *metaMedia `json:"video"`
	Audio    *metaMedia `json:"audio"`
	Document *metaMedia `json:"document"`
	Sticker  *metaMedia `json:"sticker"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Name      string  `json:"name"`
		Address   string  `json:"address"`
	} `json:"location"`
	Contacts    []metaSharedContact `json:"contacts"`
	Interactive *struct {
		Type        string `json:"type"`
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
	Button *struct {
		Payload string `json:"payload"`
		Text    string `json:"text"`
	} `json:"button"`
}

var metaAcks = map[string]model.MessageAck{
	"sent":      model.AckSent,
	"delivered": model.AckDelivered,
	"read":      model.AckRead,
	"failed":    model.AckFailed,
}

// ParseMeta normalizes a Cloud API webhook notification.
// Changes without anything this service understands are dropped.
func ParseMeta(body []byte) ([]MetaChange, error) {
	var payload metaPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("malformed meta payload: %w", err)
	}

	changes := make([]MetaChange, 0)
	for _, entry := range payload.Entry {
		for _, c := range entry.Changes {
			change := MetaChange{
				WabaID:        entry.ID,
				PhoneNumberID: c.Value.Metadata.PhoneNumberID,
				Field:         c.Field,
			}
			switch c.Field {
			case metaFieldQualityUpdate:
				if c.Value.Event == "" {
					continue
				}
				change.Update = &connection.ProviderUpdate{QualityRating: util.Ptr(c.Value.Event)}
			case metaFieldAccountUpdate:
				if !lo.Contains(metaDisconnectEvents, c.Value.Event) {
					logrus.Debugf("meta account_update %q of waba %s ignored", c.Value.Event, entry.ID)
					continue
				}
				change.Update = &connection.ProviderUpdate{Status: util.Ptr(model.ConnectionDisconnected)}
			case metaFieldMessages, "":
				if err := parseMetaValue(&change, c.Value); err != nil {
					return nil, err
				}
				if len(change.Messages) == 0 && len(change.Statuses) == 0 {
					continue
				}
			default:
				logrus.Debugf("meta field %q ignored", c.Field)
				continue
			}
			changes = append(changes, change)
		}
	}
	return changes, nil
}

func parseMetaValue(change *MetaChange, value metaValue) error {
	for _, status := range value.Statuses {
		ack, ok := metaAcks[status.Status]
		if !ok || status.ID == "" {
			continue
		}
		if ack == model.AckFailed && len(status.Errors) > 0 {
			logrus.Warnf("meta message %s failed: %s", status.ID, string(status.Errors))
		}
		change.Statuses = append(change.Statuses, Status{ID: status.ID, Ack: ack})
	}

	for _, raw := range value.Messages {
		var m metaMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("malformed meta message: %w", err)
		}
		if m.From == "" {
			continue
		}

		msg := Message{
			ID:      m.ID,
			From:    m.From,
			Content: metaContent(m),
			Raw:     raw,
		}
		if ts, err := strconv.ParseInt(m.Timestamp, 10, 64); err == nil {
			msg.Timestamp = ts
		}
		for _, c := range value.Contacts {
			if c.WaID == m.From || msg.PushName == "" {
				msg.PushName = c.Profile.Name
			}
		}
		change.Messages = append(change.Messages, msg)
	}
	return nil
}

func metaContent(m metaMessage) Content {
	file := func(kind string, media *metaMedia) Content {
		if media == nil {
			return UnsupportedContent{Type: kind}
		}
		return FileContent{Kind: kind, MediaID: media.ID, MimeType: media.MimeType, FileName: media.Filename, Caption: media.Caption}
	}

	switch m.Type {
	case "text", "":
		return TextContent{Text: m.Text.Body}
	case "image":
		return file(m.Type, m.Image)
	case "video":
		return file(m.Type, m.Video)
	case "audio":
		return file(m.Type, m.Audio)
	case "document":
		return file(m.Type, m.Document)
	case "sticker":
		return file(m.Type, m.Sticker)
	case "location":
		if m.Location == nil {
			return UnsupportedContent{Type: m.Type}
		}
		return LocationContent{Latitude: m.Location.Latitude, Longitude: m.Location.Longitude, Name: m.Location.Name, Address: m.Location.Address}
	case "contacts":
		return ContactsContent{Names: lo.FilterMap(m.Contacts, func(c metaSharedContact, _ int) (string, bool) {
			return c.Name.FormattedName, c.Name.FormattedName != ""
		})}
	case "interactive":
		switch {
		case m.Interactive == nil:
		case m.Interactive.ButtonReply != nil:
			return InteractiveButtonContent{ID: m.Interactive.ButtonReply.ID, Title: m.Interactive.ButtonReply.Title}
		case m.Interactive.ListReply != nil:
			return InteractiveListContent{ID: m.Interactive.ListReply.ID, Title: m.Interactive.ListReply.Title, Description: m.Interactive.ListReply.Description}
		}
		return UnsupportedContent{Type: m.Type}
	case "button":
		if m.Button == nil {
			return UnsupportedContent{Type: m.Type}
		}
		return InteractiveButtonContent{ID: m.Button.Payload, Title: m.Button.Text}
	default:
		return UnsupportedContent{Type: m.Type}
	}
}
