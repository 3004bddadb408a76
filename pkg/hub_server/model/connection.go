package model

type ConnectionProvider string

const (
	ProviderCloudAPI   ConnectionProvider = "cloud_api"
	ProviderUazAPI     ConnectionProvider = "uazapi"
	ProviderNotificaMe ConnectionProvider = "notificame"
	ProviderManual     ConnectionProvider = "manual"
)

type ConnectionStatus string

const (
	ConnectionDisconnected ConnectionStatus = "DISCONNECTED"
	ConnectionConnecting   ConnectionStatus = "CONNECTING"
	ConnectionWaitingQR    ConnectionStatus = "WAITING_QR"
	ConnectionConnected    ConnectionStatus = "CONNECTED"
)

var connectionTransitions = map[ConnectionStatus][]ConnectionStatus{
	ConnectionDisconnected: {ConnectionConnecting, ConnectionWaitingQR},
	ConnectionConnecting:   {ConnectionWaitingQR, ConnectionConnected},
	ConnectionWaitingQR:    {ConnectionConnecting, ConnectionConnected},
	ConnectionConnected:    {},
}

// CanTransition reports whether a connection may move from s to next.
// DISCONNECTED is reachable from every state; self transitions are allowed.
func (s ConnectionStatus) CanTransition(next ConnectionStatus) bool {
	if next == s || next == ConnectionDisconnected {
		_, known := connectionTransitions[next]
		return known
	}
	for _, allowed := range connectionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Connection is a WhatsApp channel of a tenant.
type Connection struct {
	ID             string             `json:"id"`
	Version        int64              `json:"version"`
	CompanyID      string             `json:"company_id"`
	Name           string             `json:"name"`
	Provider       ConnectionProvider `json:"provider"`
	Status         ConnectionStatus   `json:"status"`
	PhoneNumberID  string             `json:"phone_number_id,omitempty"` // Cloud API phone number ID.
	WabaID         string             `json:"waba_id,omitempty"`         // WhatsApp Business Account ID.
	QualityRating  string             `json:"quality_rating,omitempty"`
	IsDefault      bool               `json:"is_default"`
	DefaultQueueID string             `json:"default_queue_id,omitempty"`

	// Credentials. Never returned by the APIs.
	InstanceID      string `json:"-"` // NotificaMe channel token.
	ChannelTokenSum string `json:"-"` // Hex SHA-256 of ChannelToken(), used for lookups.
	AccessToken     string `json:"-"` // Cloud API access token.
	UazAPIURL       string `json:"-"`
	UazAPIToken     string `json:"-"`

	CreatedAt int64  `json:"created_at"`
	CreatedBy string `json:"created_by"`
	UpdatedAt int64  `json:"updated_at"`
	UpdatedBy string `json:"updated_by"`
	Deleted   bool   `json:"deleted,omitempty"`
}

// ChannelToken is the credential a provider presents on its inbound webhook.
func (c Connection) ChannelToken() string {
	if c.Provider == ProviderUazAPI {
		return c.UazAPIToken
	}
	return c.InstanceID
}
