package postgres

import (
	"cmp"
	"context"
	"slices"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

func (s *_Storage) AddDeliveries(ctx context.Context, tx storage.Tx, deliveries ...model.Delivery) error {
	if len(deliveries) == 0 {
		return nil
	}

	ids := make([]string, 0, len(deliveries))
	webhookIDs := make([]string, 0, len(deliveries))
	companyIDs := make([]string, 0, len(deliveries))
	eventIDs := make([]string, 0, len(deliveries))
	eventTypes := make([]string, 0, len(deliveries))
	payloads := make([][]byte, 0, len(deliveries))
	attempts := make([]int32, 0, len(deliveries))
	states := make([]string, 0, len(deliveries))
	nextAttemptAts := make([]int64, 0, len(deliveries))
	createdAts := make([]int64, 0, len(deliveries))
	for _, d := range deliveries {
		ids = append(ids, d.ID)
		webhookIDs = append(webhookIDs, d.WebhookID)
		companyIDs = append(companyIDs, d.CompanyID)
		eventIDs = append(eventIDs, d.EventID)
		eventTypes = append(eventTypes, string(d.EventType))
		payloads = append(payloads, []byte(d.Payload))
		attempts = append(attempts, int32(d.Attempt))
		states = append(states, string(d.State))
		nextAttemptAts = append(nextAttemptAts, d.NextAttemptAt)
		createdAts = append(createdAts, d.CreatedAt)
	}

	query := `
INSERT INTO webhook_delivery (id, webhook_id, company_id, event_id, event_type, payload, attempt, "state", next_attempt_at, created_at)
SELECT * FROM unnest($1::TEXT[], $2::TEXT[], $3::TEXT[], $4::TEXT[], $5::TEXT[], $6::BYTEA[], $7::INT[], $8::TEXT[], $9::BIGINT[], $10::BIGINT[])
`
	_, err := tx.Exec(ctx, query, ids, webhookIDs, companyIDs, eventIDs, eventTypes, payloads, attempts, states, nextAttemptAts, createdAts)
	return err
}

// ClaimDeliveries moves due deliveries of active webhooks to IN_FLIGHT under a lease.
// A delivery whose lease expired is due again. Rows locked by another worker are skipped.
func (s *_Storage) ClaimDeliveries(ctx context.Context, tx storage.Tx, req storage.ClaimDeliveryRequest) ([]model.Delivery, error) {
	query := `
WITH due AS (
	SELECT d.rec_id
	FROM webhook_delivery d
	JOIN webhook w ON w.id = d.webhook_id AND w.is_active AND NOT w.deleted
	WHERE
		(d."state" = 'PENDING' AND d.next_attempt_at <= $1) OR
		(d."state" = 'IN_FLIGHT' AND d.claimed_until < $1)
	ORDER BY d.next_attempt_at ASC, d.rec_id ASC
	LIMIT $2
	FOR UPDATE OF d SKIP LOCKED
)
UPDATE webhook_delivery d SET
	"state" = 'IN_FLIGHT',
	claimed_by = $3,
	claimed_until = $4
FROM due
WHERE d.rec_id = due.rec_id
RETURNING d.rec_id, d.id, d.webhook_id, d.company_id, d.event_id, d.event_type, d.payload, d.attempt, d."state", d.next_attempt_at, d.claimed_by, d.claimed_until, d.created_at
`
	rows, err := tx.Query(ctx, query, req.Now, req.BatchSize, req.WorkerID, req.LeaseUntil)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	deliveries := make([]model.Delivery, 0, req.BatchSize)
	for rows.Next() {
		var d model.Delivery
		var eventType, state string
		var payload []byte
		err := rows.Scan(
			&d.RecID,
			&d.ID,
			&d.WebhookID,
			&d.CompanyID,
			&d.EventID,
			&eventType,
			&payload,
			&d.Attempt,
			&state,
			&d.NextAttemptAt,
			&d.ClaimedBy,
			&d.ClaimedUntil,
			&d.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		d.EventType = model.EventType(eventType)
		d.State = model.DeliveryState(state)
		d.Payload = payload
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// RETURNING does not keep the order of the CTE.
	slices.SortFunc(deliveries, func(a, b model.Delivery) int {
		if c := cmp.Compare(a.NextAttemptAt, b.NextAttemptAt); c != 0 {
			return c
		}
		return cmp.Compare(a.RecID, b.RecID)
	})
	return deliveries, nil
}

func (s *_Storage) RescheduleDelivery(ctx context.Context, tx storage.Tx, recID int64, workerID string, attempt int, nextAttemptAt int64) (bool, error) {
	query := `
UPDATE webhook_delivery SET
	"state" = 'PENDING',
	attempt = $3,
	next_attempt_at = $4,
	claimed_by = NULL,
	claimed_until = NULL
WHERE rec_id = $1 AND "state" = 'IN_FLIGHT' AND claimed_by = $2`
	result, err := tx.Exec(ctx, query, recID, workerID, attempt, nextAttemptAt)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}

func (s *_Storage) CompleteDelivery(ctx context.Context, tx storage.Tx, recID int64, workerID string) (bool, error) {
	result, err := tx.Exec(ctx, `DELETE FROM webhook_delivery WHERE rec_id = $1 AND "state" = 'IN_FLIGHT' AND claimed_by = $2`, recID, workerID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	return n > 0, err
}
