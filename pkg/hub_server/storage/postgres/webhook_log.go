package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

const webhookLogColumns = `id, webhook_id, company_id, delivery_id, event_type, payload, attempt, outcome, response_status, response_body, error_message, duration_ms, next_attempt_at, created_at`

func (s *_Storage) AddWebhookLog(ctx context.Context, tx storage.Tx, log model.WebhookLog) error {
	query := `INSERT INTO webhook_log (` + webhookLogColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := tx.Exec(
		ctx,
		query,
		log.ID,
		log.WebhookID,
		log.CompanyID,
		log.DeliveryID,
		string(log.EventType),
		[]byte(log.Payload),
		log.Attempt,
		string(log.Outcome),
		log.ResponseStatus,
		log.ResponseBody,
		log.ErrorMessage,
		log.DurationMs,
		log.NextAttemptAt,
		log.CreatedAt,
	)
	return err
}

func (s *_Storage) ListWebhookLog(ctx context.Context, tx storage.Tx, req storage.ListWebhookLogRequest) (storage.ListWebhookLogResult, error) {
	filter := `
FROM webhook_log
WHERE
	company_id = $1 AND
	(COALESCE(array_length($2::TEXT[], 1), 0) = 0 OR webhook_id = ANY($2)) AND
	($3 = '' OR delivery_id = $3) AND
	(COALESCE(array_length($4::TEXT[], 1), 0) = 0 OR event_type = ANY($4)) AND
	(COALESCE(array_length($5::TEXT[], 1), 0) = 0 OR outcome = ANY($5))`
	args := []any{req.CompanyID, req.WebhookIDs, req.DeliveryID, textArray(req.EventTypes), textArray(req.Outcomes)}

	var res storage.ListWebhookLogResult
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) `+filter, args...).Scan(&res.Total); err != nil {
		return storage.ListWebhookLogResult{}, err
	}

	query := `SELECT ` + webhookLogColumns + filter + `
ORDER BY rec_id DESC
OFFSET $6 LIMIT $7`
	rows, err := tx.Query(ctx, query, append(args, req.Offset, req.Limit)...)
	if err != nil {
		return storage.ListWebhookLogResult{}, err
	}
	defer rows.Close()

	for rows.Next() {
		log, err := scanWebhookLog(rows)
		if err != nil {
			return storage.ListWebhookLogResult{}, err
		}
		res.Records = append(res.Records, log)
	}
	if err := rows.Err(); err != nil {
		return storage.ListWebhookLogResult{}, err
	}

	return res, nil
}

func scanWebhookLog(row storage.Row) (model.WebhookLog, error) {
	var log model.WebhookLog
	var eventType, outcome string
	var payload []byte
	err := row.Scan(
		&log.ID,
		&log.WebhookID,
		&log.CompanyID,
		&log.DeliveryID,
		&eventType,
		&payload,
		&log.Attempt,
		&outcome,
		&log.ResponseStatus,
		&log.ResponseBody,
		&log.ErrorMessage,
		&log.DurationMs,
		&log.NextAttemptAt,
		&log.CreatedAt,
	)
	if err != nil {
		return model.WebhookLog{}, err
	}
	log.EventType = model.EventType(eventType)
	log.Outcome = model.DeliveryState(outcome)
	log.Payload = payload
	return log, nil
}
