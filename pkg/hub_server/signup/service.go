package signup

import (
	"context"
	"fmt"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/provider"
	"github.com/sirupsen/logrus"
)

type CompleteRequest struct {
	Requester   string `json:"requester"`
	CompanyID   string `json:"company_id"`
	SessionID   string `json:"session_id"`
	AccessToken string `json:"access_token"` // Business token obtained by the client from the code.
}

// Service finishes embedded signups onto WhatsApp connections.
type Service struct {
	correlator  *Correlator
	connections connection.Manager
	graph       provider.GraphClient
}

func NewService(correlator *Correlator, connections connection.Manager, graph provider.GraphClient) *Service {
	return &Service{
		correlator:  correlator,
		connections: connections,
		graph:       graph,
	}
}

func (s *Service) Correlator() *Correlator {
	return s.correlator
}

// Complete waits for the signup signals and marks the connection of the session CONNECTED.
// Subscribing the app to the business account is best effort.
func (s *Service) Complete(ctx context.Context, ts int64, req CompleteRequest) (model.Connection, error) {
	if req.CompanyID == "" || req.SessionID == "" {
		return model.Connection{}, fmt.Errorf("company_id and session_id are required%w", model.ErrInvalidParameter)
	}

	result, err := s.correlator.Await(ctx, req.CompanyID, req.SessionID)
	if err != nil {
		return model.Connection{}, err
	}
	if result.Info.PhoneNumberID == "" {
		return model.Connection{}, fmt.Errorf("signup finished without a phone number%w", model.ErrInvalidParameter)
	}

	conn, err := s.connections.CompleteSignup(ctx, ts, connection.CompleteSignupRequest{
		ConnectionIDRequest: connection.ConnectionIDRequest{
			Requester: req.Requester,
			CompanyID: req.CompanyID,
			ID:        result.ConnectionID,
		},
		PhoneNumberID: result.Info.PhoneNumberID,
		WabaID:        result.Info.WabaID,
		AccessToken:   req.AccessToken,
	})
	if err != nil {
		return model.Connection{}, err
	}

	if s.graph != nil && conn.AccessToken != "" {
		if err := s.graph.SubscribeApp(ctx, conn.WabaID, conn.AccessToken); err != nil {
			logrus.Warnf("failed to subscribe app to waba %s: %v", conn.WabaID, err)
		}
	}
	return conn, nil
}
