package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

const connectionColumns = `id, "version", company_id, "name", provider, "status",
	COALESCE(phone_number_id, ''), COALESCE(waba_id, ''), COALESCE(quality_rating, ''),
	is_default, COALESCE(default_queue_id, ''),
	COALESCE(instance_id, ''), COALESCE(channel_token_sum, ''), COALESCE(access_token, ''),
	COALESCE(uazapi_url, ''), COALESCE(uazapi_token, ''),
	deleted, created_at, created_by, updated_at, updated_by`

func (s *_Storage) StoreConnection(ctx context.Context, tx storage.Tx, conn model.Connection) error {
	query := `
INSERT INTO whatsapp_connection (
	id, "version", company_id, "name", provider, "status", phone_number_id, waba_id, quality_rating,
	is_default, default_queue_id, instance_id, channel_token_sum, access_token, uazapi_url, uazapi_token,
	deleted, created_at, created_by, updated_at, updated_by
)
VALUES (
	$1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''),
	$10, NULLIF($11, ''), NULLIF($12, ''), NULLIF($13, ''), NULLIF($14, ''), NULLIF($15, ''), NULLIF($16, ''),
	$17, $18, $19, $20, $21
)
ON CONFLICT (id) DO UPDATE SET
	"version" = excluded."version",
	"name" = excluded."name",
	provider = excluded.provider,
	"status" = excluded."status",
	phone_number_id = excluded.phone_number_id,
	waba_id = excluded.waba_id,
	quality_rating = excluded.quality_rating,
	is_default = excluded.is_default,
	default_queue_id = excluded.default_queue_id,
	instance_id = excluded.instance_id,
	channel_token_sum = excluded.channel_token_sum,
	access_token = excluded.access_token,
	uazapi_url = excluded.uazapi_url,
	uazapi_token = excluded.uazapi_token,
	deleted = excluded.deleted,
	updated_at = excluded.updated_at,
	updated_by = excluded.updated_by`

	_, err := tx.Exec(
		ctx,
		query,
		conn.ID,
		conn.Version,
		conn.CompanyID,
		conn.Name,
		string(conn.Provider),
		string(conn.Status),
		conn.PhoneNumberID,
		conn.WabaID,
		conn.QualityRating,
		conn.IsDefault,
		conn.DefaultQueueID,
		conn.InstanceID,
		conn.ChannelTokenSum,
		conn.AccessToken,
		conn.UazAPIURL,
		conn.UazAPIToken,
		conn.Deleted,
		conn.CreatedAt,
		conn.CreatedBy,
		conn.UpdatedAt,
		conn.UpdatedBy,
	)
	return err
}

func (s *_Storage) ListConnection(ctx context.Context, tx storage.Tx, req storage.ListConnectionRequest) (storage.ListConnectionResult, error) {
	query := `
SELECT count(*) OVER (), ` + connectionColumns + `
FROM whatsapp_connection
WHERE
	NOT deleted AND
	($3 = '' OR company_id = $3) AND
	(COALESCE(array_length($4::TEXT[], 1), 0) = 0 OR id = ANY($4)) AND
	(COALESCE(array_length($5::TEXT[], 1), 0) = 0 OR "status" = ANY($5)) AND
	($6 = '' OR phone_number_id = $6) AND
	($7 = '' OR channel_token_sum = $7) AND
	(NOT $8 OR is_default) AND
	($9 = '' OR waba_id = $9)
ORDER BY is_default DESC, rec_id ASC
OFFSET $1 LIMIT $2`

	rows, err := tx.Query(
		ctx,
		query,
		req.Offset,
		req.Limit,
		req.CompanyID,
		req.IDs,
		textArray(req.Statuses),
		req.PhoneNumberID,
		req.ChannelTokenSum,
		req.DefaultOnly,
		req.WabaID,
	)
	if err != nil {
		return storage.ListConnectionResult{}, err
	}
	defer rows.Close()

	result := storage.ListConnectionResult{}
	for rows.Next() {
		var conn model.Connection
		var provider, status string
		err := rows.Scan(
			&result.Total,
			&conn.ID,
			&conn.Version,
			&conn.CompanyID,
			&conn.Name,
			&provider,
			&status,
			&conn.PhoneNumberID,
			&conn.WabaID,
			&conn.QualityRating,
			&conn.IsDefault,
			&conn.DefaultQueueID,
			&conn.InstanceID,
			&conn.ChannelTokenSum,
			&conn.AccessToken,
			&conn.UazAPIURL,
			&conn.UazAPIToken,
			&conn.Deleted,
			&conn.CreatedAt,
			&conn.CreatedBy,
			&conn.UpdatedAt,
			&conn.UpdatedBy,
		)
		if err != nil {
			return storage.ListConnectionResult{}, err
		}
		conn.Provider = model.ConnectionProvider(provider)
		conn.Status = model.ConnectionStatus(status)
		result.Records = append(result.Records, conn)
	}
	if err := rows.Err(); err != nil {
		return storage.ListConnectionResult{}, err
	}

	return result, nil
}

// ClearDefaultConnection unsets the default flag on every connection of the company except exceptID.
func (s *_Storage) ClearDefaultConnection(ctx context.Context, tx storage.Tx, companyID string, exceptID string) error {
	query := `
UPDATE whatsapp_connection SET is_default = FALSE
WHERE company_id = $1 AND id <> $2 AND is_default AND NOT deleted`
	_, err := tx.Exec(ctx, query, companyID, exceptID)
	return err
}
