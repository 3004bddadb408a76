package inbound

import (
	"context"
	"errors"

	"github.com/codatende/webhookhub/pkg/hub_server/connection"
	"github.com/codatende/webhookhub/pkg/hub_server/crm"
	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/provider"
	"github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
)

// Stats counts what one notification turned into.
type Stats struct {
	Messages   int `json:"messages"`
	Duplicates int `json:"duplicates"`
	Statuses   int `json:"statuses"`
	Updates    int `json:"updates"`
	Skipped    int `json:"skipped"`
}

// Ingestor applies normalized provider notifications to connections and CRM records.
type Ingestor interface {
	IngestMeta(ctx context.Context, ts int64, changes []MetaChange) (Stats, error)
	// IngestNotificaMe returns model.ErrUnknownChannel when an inbound message names no known channel.
	IngestNotificaMe(ctx context.Context, ts int64, env NotificaMeEnvelope) (Stats, error)
	// IngestUazAPI returns model.ErrUnknownChannel when no presented token belongs to a UazAPI connection.
	IngestUazAPI(ctx context.Context, ts int64, env UazAPIEnvelope) (Stats, error)
}

type _Ingestor struct {
	connections connection.Manager
	crm         crm.Manager
}

func NewIngestor(connections connection.Manager, crmMgr crm.Manager) Ingestor {
	return &_Ingestor{
		connections: connections,
		crm:         crmMgr,
	}
}

func (i *_Ingestor) IngestMeta(ctx context.Context, ts int64, changes []MetaChange) (Stats, error) {
	stats := Stats{}
	for _, change := range changes {
		if change.Update != nil {
			if err := i.applyMetaUpdate(ctx, ts, change, &stats); err != nil {
				return stats, err
			}
			continue
		}

		conn, err := i.connections.FindByPhoneNumberID(ctx, change.PhoneNumberID)
		if errors.Is(err, model.ErrConnectionNotFound) {
			logrus.Infof("meta webhook: no connected number %q, %d messages and %d statuses skipped", change.PhoneNumberID, len(change.Messages), len(change.Statuses))
			stats.Skipped += len(change.Messages) + len(change.Statuses)
			continue
		}
		if err != nil {
			return stats, err
		}

		for _, status := range change.Statuses {
			if err := i.applyStatus(ctx, ts, conn, status, &stats); err != nil {
				return stats, err
			}
		}
		for _, msg := range change.Messages {
			data, err := json.Marshal(map[string]any{"source": "meta_cloud_api", "message": msg.Raw, "content": msg.Content})
			if err != nil {
				return stats, err
			}
			if err := i.recordMessage(ctx, ts, conn, msg, data, &stats); err != nil {
				return stats, err
			}
		}
	}
	return stats, nil
}

func (i *_Ingestor) applyMetaUpdate(ctx context.Context, ts int64, change MetaChange, stats *Stats) error {
	var targets []model.Connection
	if change.PhoneNumberID != "" {
		conn, err := i.connections.FindByPhoneNumberID(ctx, change.PhoneNumberID)
		if err != nil && !errors.Is(err, model.ErrConnectionNotFound) {
			return err
		}
		if err == nil {
			targets = append(targets, conn)
		}
	} else {
		conns, err := i.connections.FindByWabaID(ctx, change.WabaID)
		if err != nil {
			return err
		}
		targets = conns
	}

	if len(targets) == 0 {
		logrus.Infof("meta webhook: %s for unknown waba %q skipped", change.Field, change.WabaID)
		stats.Skipped++
		return nil
	}
	for _, conn := range targets {
		if _, err := i.connections.ApplyProviderUpdate(ctx, ts, conn, *change.Update); err != nil {
			if errors.Is(err, model.ErrInvalidTransition) {
				logrus.Warnf("meta webhook: %s not applicable to connection %s: %v", change.Field, conn.ID, err)
				continue
			}
			return err
		}
		stats.Updates++
	}
	return nil
}

func (i *_Ingestor) IngestNotificaMe(ctx context.Context, ts int64, env NotificaMeEnvelope) (Stats, error) {
	stats := Stats{}
	if env.Ping {
		return stats, nil
	}
	if env.Direction == DirectionOut {
		logrus.Debugf("notificame webhook: outbound message %s ignored", env.Message.ID)
		stats.Skipped++
		return stats, nil
	}

	isInbound := env.Direction == DirectionIn && env.Message.From != ""
	hasReceipt := env.Ack != nil && env.Message.ID != ""
	if !isInbound && !hasReceipt {
		logrus.Debugf("notificame webhook: %q notification without message or receipt ignored", env.Type)
		stats.Skipped++
		return stats, nil
	}

	conn, err := i.resolveChannel(ctx, env.ChannelTokens)
	if errors.Is(err, model.ErrUnknownChannel) && !isInbound {
		logrus.Infof("notificame webhook: receipt %s for unknown channel skipped", env.Message.ID)
		stats.Skipped++
		return stats, nil
	}
	if err != nil {
		return stats, err
	}

	if isInbound {
		data, err := json.Marshal(map[string]any{"source": "notificame_hub", "originalPayload": env.Raw})
		if err != nil {
			return stats, err
		}
		if err := i.recordMessage(ctx, ts, conn, env.Message, data, &stats); err != nil {
			return stats, err
		}
	}
	if hasReceipt {
		status := Status{ID: env.Message.ID, RawID: env.Message.RawID, Ack: *env.Ack}
		if err := i.applyStatus(ctx, ts, conn, status, &stats); err != nil {
			return stats, err
		}
	}
	return stats, nil
}

func (i *_Ingestor) IngestUazAPI(ctx context.Context, ts int64, env UazAPIEnvelope) (Stats, error) {
	stats := Stats{}
	conn, err := i.resolveInstance(ctx, env.Tokens)
	if err != nil {
		return stats, err
	}

	switch env.Event {
	case UazAPIEventConnection, UazAPIEventQRCode:
		if env.Status == nil {
			stats.Skipped++
			return stats, nil
		}
		if _, err := i.connections.ApplyProviderUpdate(ctx, ts, conn, connection.ProviderUpdate{Status: env.Status}); err != nil {
			if errors.Is(err, model.ErrInvalidTransition) {
				logrus.Warnf("uazapi webhook: %s not applicable to connection %s: %v", env.Event, conn.ID, err)
				stats.Skipped++
				return stats, nil
			}
			return stats, err
		}
		stats.Updates++
	case UazAPIEventAck:
		if env.Ack == nil || env.Message.ID == "" {
			stats.Skipped++
			return stats, nil
		}
		if err := i.applyStatus(ctx, ts, conn, Status{ID: env.Message.ID, Ack: *env.Ack}, &stats); err != nil {
			return stats, err
		}
	case UazAPIEventMessage:
		if env.FromMe || provider.CleanPhone(env.Message.From) == "" {
			logrus.Debugf("uazapi webhook: message %s skipped, from me %t", env.Message.ID, env.FromMe)
			stats.Skipped++
			return stats, nil
		}
		data, err := json.Marshal(map[string]any{"source": "uazapi", "is_group": env.IsGroup, "originalPayload": env.Raw})
		if err != nil {
			return stats, err
		}
		if err := i.recordMessage(ctx, ts, conn, env.Message, data, &stats); err != nil {
			return stats, err
		}
	default:
		stats.Skipped++
	}
	return stats, nil
}

func (i *_Ingestor) resolveInstance(ctx context.Context, tokens []string) (model.Connection, error) {
	for _, token := range tokens {
		conn, err := i.connections.FindByInstanceToken(ctx, token)
		if errors.Is(err, model.ErrUnknownChannel) {
			continue
		}
		return conn, err
	}
	logrus.Warnf("uazapi webhook: rejected notification, none of %d instance tokens is configured", len(tokens))
	return model.Connection{}, model.ErrUnknownChannel
}

// resolveChannel tries the candidate tokens in order.
func (i *_Ingestor) resolveChannel(ctx context.Context, tokens []string) (model.Connection, error) {
	for _, token := range tokens {
		conn, err := i.connections.FindByChannelToken(ctx, token)
		if errors.Is(err, model.ErrUnknownChannel) {
			continue
		}
		return conn, err
	}
	logrus.Warnf("notificame webhook: rejected notification, none of %d channel tokens is configured", len(tokens))
	return model.Connection{}, model.ErrUnknownChannel
}

func (i *_Ingestor) recordMessage(ctx context.Context, ts int64, conn model.Connection, msg Message, data json.RawMessage, stats *Stats) error {
	content := msg.Content
	if content == nil {
		content = UnsupportedContent{}
	}
	mediaURL, mediaType := content.Media()

	_, created, err := i.crm.RecordInbound(ctx, ts, crm.InboundMessage{
		Connection: conn,
		From:       provider.CleanPhone(msg.From),
		PushName:   msg.PushName,
		Wid:        msg.ID,
		RawID:      msg.RawID,
		Body:       content.Summary(),
		MediaURL:   mediaURL,
		MediaType:  mediaType,
		Data:       data,
		Timestamp:  msg.Timestamp,
	})
	if err != nil {
		return err
	}
	if created {
		stats.Messages++
	} else {
		logrus.Debugf("duplicate message %s of connection %s ignored", msg.ID, conn.ID)
		stats.Duplicates++
	}
	return nil
}

func (i *_Ingestor) applyStatus(ctx context.Context, ts int64, conn model.Connection, status Status, stats *Stats) error {
	updated, err := i.crm.ApplyAck(ctx, ts, conn.CompanyID, status.ID, status.Ack)
	if err != nil {
		return err
	}
	if len(updated) == 0 && status.RawID != "" && status.RawID != status.ID {
		if updated, err = i.crm.ApplyAck(ctx, ts, conn.CompanyID, status.RawID, status.Ack); err != nil {
			return err
		}
	}
	if len(updated) == 0 {
		stats.Skipped++
		return nil
	}
	stats.Statuses++
	return nil
}
