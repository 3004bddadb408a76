package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

func (s *_Storage) ReleaseExpiredClaims(ctx context.Context, tx storage.Tx, now int64) (int64, error) {
	query := `
UPDATE webhook_delivery SET
	"state" = 'PENDING',
	claimed_by = NULL,
	claimed_until = NULL
WHERE "state" = 'IN_FLIGHT' AND claimed_until < $1`
	result, err := tx.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *_Storage) DeleteWebhookLogBefore(ctx context.Context, tx storage.Tx, ts int64) (int64, error) {
	result, err := tx.Exec(ctx, `DELETE FROM webhook_log WHERE created_at < $1`, ts)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *_Storage) DeleteAPILogBefore(ctx context.Context, tx storage.Tx, ts int64) (int64, error) {
	result, err := tx.Exec(ctx, `DELETE FROM api_log WHERE created_at < $1`, ts)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
