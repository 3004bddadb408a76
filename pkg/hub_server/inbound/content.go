package inbound

import (
	"fmt"
	"strings"
)

// Content is the payload of one inbound message. The set of implementations is closed.
type Content interface {
	// Summary is the text stored as the message body.
	Summary() string
	// Media returns the url and type of an attached file, if any.
	Media() (url string, mediaType string)

	isContent()
}

type TextContent struct {
	Text string `json:"text"`
}

// FileContent covers image, video, audio, document and sticker messages.
type FileContent struct {
	Kind     string `json:"kind"`
	URL      string `json:"url,omitempty"`
	MediaID  string `json:"media_id,omitempty"`
	MimeType string `json:"mime_type,omitempty"`
	FileName string `json:"file_name,omitempty"`
	Caption  string `json:"caption,omitempty"`
}

type TemplateContent struct {
	Name     string `json:"name"`
	Language string `json:"language,omitempty"`
}

type InteractiveButtonContent struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

type InteractiveListContent struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

type LocationContent struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Name      string  `json:"name,omitempty"`
	Address   string  `json:"address,omitempty"`
}

type ContactsContent struct {
	Names []string `json:"names"`
}

// UnsupportedContent keeps the provider's type name of a message this service cannot represent.
type UnsupportedContent struct {
	Type string `json:"type"`
}

func (TextContent) isContent()              {}
func (FileContent) isContent()              {}
func (TemplateContent) isContent()          {}
func (InteractiveButtonContent) isContent() {}
func (InteractiveListContent) isContent()   {}
func (LocationContent) isContent()          {}
func (ContactsContent) isContent()          {}
func (UnsupportedContent) isContent()       {}

func (c TextContent) Summary() string { return c.Text }

func (c FileContent) Summary() string {
	if c.Caption != "" {
		return c.Caption
	}
	if c.MimeType != "" {
		return fmt.Sprintf("[%s]", c.MimeType)
	}
	return fmt.Sprintf("[%s]", c.Kind)
}

func (c TemplateContent) Summary() string { return fmt.Sprintf("[template: %s]", c.Name) }

func (c InteractiveButtonContent) Summary() string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

func (c InteractiveListContent) Summary() string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

func (c LocationContent) Summary() string {
	if c.Name != "" {
		return fmt.Sprintf("📍 %s (%v, %v)", c.Name, c.Latitude, c.Longitude)
	}
	return fmt.Sprintf("📍 Localização: %v, %v", c.Latitude, c.Longitude)
}

func (c ContactsContent) Summary() string {
	if len(c.Names) == 0 {
		return "📇 Contato compartilhado"
	}
	return "📇 " + strings.Join(c.Names, ", ")
}

func (c UnsupportedContent) Summary() string {
	if c.Type == "" {
		return "[mensagem sem texto]"
	}
	return fmt.Sprintf("[%s]", c.Type)
}

func (TextContent) Media() (string, string) { return "", "" }

func (c FileContent) Media() (string, string) {
	mediaType := c.Kind
	if c.MimeType != "" {
		mediaType = c.MimeType
	}
	return c.URL, mediaType
}

func (TemplateContent) Media() (string, string)          { return "", "" }
func (InteractiveButtonContent) Media() (string, string) { return "", "" }
func (InteractiveListContent) Media() (string, string)   { return "", "" }
func (LocationContent) Media() (string, string)          { return "", "" }
func (ContactsContent) Media() (string, string)          { return "", "" }
func (UnsupportedContent) Media() (string, string)       { return "", "" }

// Merge folds several contents of one message into one. The last text-like content wins the
// body, a file keeps its media.
func Merge(contents []Content) Content {
	var merged Content
	for _, c := range contents {
		if c == nil {
			continue
		}
		if merged == nil {
			merged = c
			continue
		}
		if file, ok := merged.(FileContent); ok {
			if text, ok := c.(TextContent); ok && file.Caption == "" {
				file.Caption = text.Text
				merged = file
				continue
			}
		}
		merged = c
	}
	if merged == nil {
		return UnsupportedContent{}
	}
	return merged
}
