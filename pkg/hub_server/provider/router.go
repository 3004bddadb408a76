package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
)

type _Router struct {
	cloud Sender
	uaz   Sender
}

// NewRouter picks the Sender matching the provider of the connection.
// Connections of an unknown provider are routed by the credentials they carry.
func NewRouter(cloud Sender, uaz Sender) Sender {
	return &_Router{
		cloud: cloud,
		uaz:   uaz,
	}
}

func (r *_Router) Send(ctx context.Context, conn model.Connection, req SendRequest) (SendResult, error) {
	if conn.Status != model.ConnectionConnected {
		return SendResult{}, model.ErrConnectionNotConnected
	}

	switch strings.ToLower(string(conn.Provider)) {
	case "uazapi":
		return r.uaz.Send(ctx, conn, req)
	case "cloud_api", "meta", "coex":
		return r.cloud.Send(ctx, conn, req)
	}

	switch {
	case conn.UazAPIURL != "" && conn.UazAPIToken != "":
		return r.uaz.Send(ctx, conn, req)
	case conn.PhoneNumberID != "" && conn.AccessToken != "":
		return r.cloud.Send(ctx, conn, req)
	}
	return SendResult{}, fmt.Errorf("%s: %w", conn.Provider, model.ErrUnsupportedProvider)
}
