package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/auth"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

func (s *_Storage) StoreAPIToken(ctx context.Context, tx storage.Tx, token auth.APIToken) error {
	query := `
WITH new_data AS (
	INSERT INTO api_token (id, "version", company_id, "name", is_active, deleted, api_token, last_used_at, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	ON CONFLICT (id) DO UPDATE SET
		"version" = excluded."version",
		"name" = excluded."name",
		is_active = excluded.is_active,
		deleted = excluded.deleted,
		api_token = excluded.api_token,
		updated_at = excluded.updated_at
	RETURNING id, "version", api_token, updated_at
)
INSERT INTO api_token_history (id, "version", api_token, created_at)
SELECT * FROM new_data`

	_, err := tx.Exec(
		ctx,
		query,
		token.ID,
		token.Version,
		token.CompanyID,
		token.Name,
		token.IsActive,
		token.Deleted,
		token,
		token.LastUsedAt,
		token.CreatedAt,
		token.UpdatedAt,
	)
	if err != nil {
		return err
	}

	return nil
}

func (s *_Storage) ListAPITokens(ctx context.Context, tx storage.Tx, req auth.ListAPITokenRequest) (auth.ListAPITokenResult, error) {
	query := `
SELECT count(*) OVER (), jsonb_set(api_token, '{last_used_at}', COALESCE(to_jsonb(last_used_at), 'null'::jsonb))
FROM api_token
WHERE
	NOT deleted AND
	($3 = '' OR company_id = $3) AND
	(COALESCE(array_length($4::TEXT[], 1), 0) = 0 OR id = ANY($4)) AND
	(COALESCE(array_length($5::TEXT[], 1), 0) = 0 OR "name" = ANY($5))
ORDER BY rec_id ASC
OFFSET $1 LIMIT $2`

	rows, err := tx.Query(ctx, query, req.Offset, req.Limit, req.CompanyID, req.IDs, req.Names)
	if err != nil {
		return auth.ListAPITokenResult{}, err
	}
	defer rows.Close()

	result := auth.ListAPITokenResult{}
	for rows.Next() {
		token := auth.APIToken{}
		if err := rows.Scan(&result.Total, &token); err != nil {
			return auth.ListAPITokenResult{}, err
		}
		result.Records = append(result.Records, token)
	}
	if err := rows.Err(); err != nil {
		return auth.ListAPITokenResult{}, err
	}

	return result, nil
}

// TouchAPIToken stamps the last use of a token without creating a new version.
func (s *_Storage) TouchAPIToken(ctx context.Context, tx storage.Tx, id string, ts int64) error {
	_, err := tx.Exec(ctx, `UPDATE api_token SET last_used_at = $2 WHERE id = $1`, id, ts)
	return err
}
