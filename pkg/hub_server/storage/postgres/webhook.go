package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

func (s *_Storage) AddWebhook(ctx context.Context, tx storage.Tx, webhook model.Webhook) error {
	query := `
WITH new_data AS (
	INSERT INTO webhook (id, "version", company_id, events, is_active, deleted, webhook, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (id) DO UPDATE SET
		"version" = excluded."version",
		events = excluded.events,
		is_active = excluded.is_active,
		deleted = excluded.deleted,
		webhook = excluded.webhook,
		updated_at = excluded.updated_at
	RETURNING id, "version", webhook, updated_at
)
INSERT INTO webhook_history (id, "version", webhook, created_at)
SELECT * FROM new_data
`
	_, err := tx.Exec(
		ctx,
		query,
		webhook.ID,
		webhook.Version,
		webhook.CompanyID,
		textArray(webhook.Events),
		webhook.IsActive,
		webhook.Deleted,
		webhook,
		webhook.CreatedAt,
		webhook.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

func (s *_Storage) ListWebhook(ctx context.Context, tx storage.Tx, req storage.ListWebhookRequest) (storage.ListWebhookResult, error) {
	query := `
	WITH filtered_record AS (
		SELECT
			rec_id,
			webhook
		FROM webhook w
		WHERE
			NOT deleted AND
			($3 = '' OR company_id = $3) AND
			(COALESCE(array_length($4::TEXT[], 1), 0) = 0 OR id = ANY($4)) AND
			(COALESCE(array_length($5::TEXT[], 1), 0) = 0 OR events @> $5) AND
			(NOT $6 OR is_active)
	)
	SELECT
		total,
		webhook
	FROM (SELECT COUNT(*) AS total FROM filtered_record) AS report
	FULL OUTER JOIN (SELECT webhook FROM filtered_record ORDER BY rec_id ASC OFFSET $1 LIMIT $2) AS record ON FALSE
	`
	rows, err := tx.Query(ctx, query, req.Offset, req.Limit, req.CompanyID, req.IDs, textArray(req.Events), req.ActiveOnly)
	if err != nil {
		return storage.ListWebhookResult{}, err
	}
	defer rows.Close()

	var res storage.ListWebhookResult
	for rows.Next() {
		var total *int
		var webhook *model.Webhook

		if err := rows.Scan(&total, &webhook); err != nil {
			return storage.ListWebhookResult{}, err
		}
		if total != nil {
			res.Total = *total
		}
		if webhook != nil {
			res.Records = append(res.Records, *webhook)
		}
	}
	if err := rows.Err(); err != nil {
		return storage.ListWebhookResult{}, err
	}

	return res, nil
}

// PurgeWebhookDeliveries drops every queued delivery of the webhook, claimed or not.
func (s *_Storage) PurgeWebhookDeliveries(ctx context.Context, tx storage.Tx, webhookID string) (int64, error) {
	result, err := tx.Exec(ctx, `DELETE FROM webhook_delivery WHERE webhook_id = $1`, webhookID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func textArray[T ~string](values []T) []string {
	if values == nil {
		return nil
	}
	res := make([]string, 0, len(values))
	for _, v := range values {
		res = append(res, string(v))
	}
	return res
}
