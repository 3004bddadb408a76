package inbound

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

const (
	UazAPIEventConnection = "connection"
	UazAPIEventQRCode     = "qrcode"
	UazAPIEventAck        = "ack"
	UazAPIEventMessage    = "message"
)

var uazapiEvents = map[string]string{
	"connection":      UazAPIEventConnection,
	"status":          UazAPIEventConnection,
	"qrcode":          UazAPIEventQRCode,
	"qr":              UazAPIEventQRCode,
	"message.ack":     UazAPIEventAck,
	"ack":             UazAPIEventAck,
	"message":         UazAPIEventMessage,
	"messages":        UazAPIEventMessage,
	"messages.upsert": UazAPIEventMessage,
}

var uazapiStates = map[string]model.ConnectionStatus{
	"open":         model.ConnectionConnected,
	"connected":    model.ConnectionConnected,
	"close":        model.ConnectionDisconnected,
	"disconnected": model.ConnectionDisconnected,
	"connecting":   model.ConnectionConnecting,
}

// UazAPIEnvelope is a UazAPI instance notification.
type UazAPIEnvelope struct {
	// Event is one of the UazAPIEvent constants, empty for events this service ignores.
	Event string
	// Tokens are the candidate instance credentials, header first.
	Tokens []string

	Status *model.ConnectionStatus
	QRCode string

	Ack     *model.MessageAck
	FromMe  bool
	IsGroup bool
	Message Message

	Raw json.RawMessage
}

type uazapiBody struct {
	Event      string          `json:"event"`
	Type       string          `json:"type"`
	EventType  string          `json:"EventType"`
	Instance   string          `json:"instance"`
	InstanceID string          `json:"instanceId"`
	Token      string          `json:"token"`
	Data       json.RawMessage `json:"data"`
}

type uazapiData struct {
	State  string          `json:"state"`
	Status json.RawMessage `json:"status"`

	QRCode string `json:"qrcode"`
	Base64 string `json:"base64"`
	QR     string `json:"qr"`

	ID  string          `json:"id"`
	Ack json.RawMessage `json:"ack"`
	Key *struct {
		RemoteJid string `json:"remoteJid"`
		FromMe    bool   `json:"fromMe"`
		ID        string `json:"id"`
	} `json:"key"`
	From             string          `json:"from"`
	PushName         string          `json:"pushName"`
	VerifiedBizName  string          `json:"verifiedBizName"`
	Message          *uazapiMessage  `json:"message"`
	Body             string          `json:"body"`
	Text             string          `json:"text"`
	MessageTimestamp json.RawMessage `json:"messageTimestamp"`
}

type uazapiMedia struct {
	URL      string `json:"url"`
	Mimetype string `json:"mimetype"`
	Caption  string `json:"caption"`
	FileName string `json:"fileName"`
}

type uazapiMessage struct {
	Conversation        string `json:"conversation"`
	ExtendedTextMessage *struct {
		Text string `json:"text"`
	} `json:"extendedTextMessage"`
	ImageMessage    *uazapiMedia `json:"imageMessage"`
	VideoMessage    *uazapiMedia `json:"videoMessage"`
	AudioMessage    *uazapiMedia `json:"audioMessage"`
	DocumentMessage *uazapiMedia `json:"documentMessage"`
	StickerMessage  *uazapiMedia `json:"stickerMessage"`
	LocationMessage *struct {
		DegreesLatitude  float64 `json:"degreesLatitude"`
		DegreesLongitude float64 `json:"degreesLongitude"`
		Name             string  `json:"name"`
		Address          string  `json:"address"`
	} `json:"locationMessage"`
	ContactMessage *struct {
		DisplayName string `json:"displayName"`
	} `json:"contactMessage"`
	ContactsArrayMessage *struct {
		Contacts []struct {
			DisplayName string `json:"displayName"`
		} `json:"contacts"`
	} `json:"contactsArrayMessage"`
	ButtonsResponseMessage *struct {
		SelectedButtonID    string `json:"selectedButtonId"`
		SelectedDisplayText string `json:"selectedDisplayText"`
	} `json:"buttonsResponseMessage"`
	ListResponseMessage *struct {
		Title             string `json:"title"`
		Description       string `json:"description"`
		SingleSelectReply *struct {
			SelectedRowID string `json:"selectedRowId"`
		} `json:"singleSelectReply"`
	} `json:"listResponseMessage"`
}

// ParseUazAPI normalizes a UazAPI notification. The event data is either nested under "data" or
// sits next to the event name.
func ParseUazAPI(headerToken string, body []byte) (UazAPIEnvelope, error) {
	var outer uazapiBody
	if err := json.Unmarshal(body, &outer); err != nil {
		return UazAPIEnvelope{}, fmt.Errorf("malformed uazapi payload: %w", err)
	}
	rawData := body
	if len(outer.Data) > 0 && string(outer.Data) != "null" {
		rawData = outer.Data
	}
	var data uazapiData
	if err := json.Unmarshal(rawData, &data); err != nil {
		return UazAPIEnvelope{}, fmt.Errorf("malformed uazapi data: %w", err)
	}

	env := UazAPIEnvelope{
		Event:  uazapiEvents[strings.ToLower(firstNonEmpty(outer.Event, outer.Type, outer.EventType))],
		Tokens: lo.Without(lo.Uniq([]string{headerToken, outer.Token, outer.Instance, outer.InstanceID}), ""),
		Raw:    body,
	}

	switch env.Event {
	case UazAPIEventConnection:
		state := strings.ToLower(firstNonEmpty(data.State, unquote(data.Status)))
		status, ok := uazapiStates[state]
		if !ok {
			status = model.ConnectionDisconnected
		}
		env.Status = &status
	case UazAPIEventQRCode:
		env.QRCode = firstNonEmpty(data.QRCode, data.Base64, data.QR)
		if env.QRCode != "" {
			env.Status = lo.ToPtr(model.ConnectionWaitingQR)
		}
	case UazAPIEventAck:
		env.Message.ID = data.ID
		if data.Key != nil {
			env.Message.ID = firstNonEmpty(data.ID, data.Key.ID)
		}
		raw := unquote(lo.Ternary(len(data.Ack) > 0, data.Ack, data.Status))
		if ack, err := strconv.Atoi(raw); err == nil {
			env.Ack = lo.ToPtr(model.MessageAck(ack))
		} else if ack, ok := notificameAcks[strings.ToLower(raw)]; ok {
			env.Ack = &ack
		}
	case UazAPIEventMessage:
		remoteJid := data.From
		if data.Key != nil {
			remoteJid = firstNonEmpty(data.Key.RemoteJid, data.From)
			env.FromMe = data.Key.FromMe
			env.Message.ID = data.Key.ID
		}
		env.Message.ID = firstNonEmpty(env.Message.ID, data.ID)
		env.Message.From = remoteJid
		env.IsGroup = strings.HasSuffix(remoteJid, "@g.us")
		env.Message.PushName = firstNonEmpty(data.PushName, data.VerifiedBizName)
		env.Message.Timestamp = parseTimestamp(data.MessageTimestamp)
		env.Message.Content = uazapiContent(data)
		env.Message.Raw = rawData
	}
	return env, nil
}

func unquote(raw json.RawMessage) string {
	return strings.Trim(strings.TrimSpace(string(raw)), `"`)
}

func uazapiContent(data uazapiData) Content {
	m := data.Message
	if m == nil {
		m = &uazapiMessage{}
	}
	file := func(kind string, media *uazapiMedia) Content {
		return FileContent{Kind: kind, URL: media.URL, MimeType: media.Mimetype, FileName: media.FileName, Caption: media.Caption}
	}

	switch {
	case m.Conversation != "":
		return TextContent{Text: m.Conversation}
	case m.ExtendedTextMessage != nil && m.ExtendedTextMessage.Text != "":
		return TextContent{Text: m.ExtendedTextMessage.Text}
	case m.ImageMessage != nil:
		return file("image", m.ImageMessage)
	case m.VideoMessage != nil:
		return file("video", m.VideoMessage)
	case m.AudioMessage != nil:
		return file("audio", m.AudioMessage)
	case m.DocumentMessage != nil:
		doc := file("document", m.DocumentMessage).(FileContent)
		if doc.Caption == "" {
			doc.Caption = doc.FileName
		}
		return doc
	case m.StickerMessage != nil:
		return file("sticker", m.StickerMessage)
	case m.LocationMessage != nil:
		return LocationContent{
			Latitude:  m.LocationMessage.DegreesLatitude,
			Longitude: m.LocationMessage.DegreesLongitude,
			Name:      m.LocationMessage.Name,
			Address:   m.LocationMessage.Address,
		}
	case m.ContactMessage != nil:
		return ContactsContent{Names: lo.Without([]string{m.ContactMessage.DisplayName}, "")}
	case m.ContactsArrayMessage != nil:
		names := make([]string, 0, len(m.ContactsArrayMessage.Contacts))
		for _, c := range m.ContactsArrayMessage.Contacts {
			if c.DisplayName != "" {
				names = append(names, c.DisplayName)
			}
		}
		return ContactsContent{Names: names}
	case m.ButtonsResponseMessage != nil:
		return InteractiveButtonContent{ID: m.ButtonsResponseMessage.SelectedButtonID, Title: m.ButtonsResponseMessage.SelectedDisplayText}
	case m.ListResponseMessage != nil:
		reply := InteractiveListContent{Title: m.ListResponseMessage.Title, Description: m.ListResponseMessage.Description}
		if m.ListResponseMessage.SingleSelectReply != nil {
			reply.ID = m.ListResponseMessage.SingleSelectReply.SelectedRowID
		}
		return reply
	}

	if text := firstNonEmpty(data.Body, data.Text); text != "" {
		return TextContent{Text: text}
	}
	return UnsupportedContent{}
}
