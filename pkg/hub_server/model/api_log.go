package model

import "github.com/goccy/go-json"

// APILog is the audit record of one external API request.
type APILog struct {
	ID             string          `json:"id"`
	CompanyID      *string         `json:"company_id"`
	TokenID        *string         `json:"token_id"`
	Method         string          `json:"method"`
	Endpoint       string          `json:"endpoint"`
	RequestBody    json.RawMessage `json:"request_body"` // Sanitized copy of the request body.
	ResponseStatus int             `json:"response_status"`
	ResponseBody   json.RawMessage `json:"response_body"`
	DurationMs     int64           `json:"duration_ms"`
	IPAddress      *string         `json:"ip_address"`
	UserAgent      *string         `json:"user_agent"`
	CreatedAt      int64           `json:"created_at"`
}
