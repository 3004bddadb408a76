package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

func (s *_Storage) AddAPILog(ctx context.Context, tx storage.Tx, log model.APILog) error {
	query := `
INSERT INTO api_log (id, company_id, token_id, "method", endpoint, request_body, response_status, response_body, duration_ms, ip_address, user_agent, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := tx.Exec(
		ctx,
		query,
		log.ID,
		log.CompanyID,
		log.TokenID,
		log.Method,
		log.Endpoint,
		nullableJSON(log.RequestBody),
		log.ResponseStatus,
		nullableJSON(log.ResponseBody),
		log.DurationMs,
		log.IPAddress,
		log.UserAgent,
		log.CreatedAt,
	)
	return err
}

func (s *_Storage) ListAPILog(ctx context.Context, tx storage.Tx, req storage.ListAPILogRequest) (storage.ListAPILogResult, error) {
	query := `
SELECT count(*) OVER (), id, company_id, token_id, "method", endpoint, request_body, response_status, response_body, duration_ms, ip_address, user_agent, created_at
FROM api_log
WHERE
	company_id = $3 AND
	(COALESCE(array_length($4::TEXT[], 1), 0) = 0 OR token_id = ANY($4)) AND
	(COALESCE(array_length($5::INT[], 1), 0) = 0 OR response_status = ANY($5))
ORDER BY rec_id DESC
OFFSET $1 LIMIT $2`

	rows, err := tx.Query(ctx, query, req.Offset, req.Limit, req.CompanyID, req.TokenIDs, req.Statuses)
	if err != nil {
		return storage.ListAPILogResult{}, err
	}
	defer rows.Close()

	result := storage.ListAPILogResult{}
	for rows.Next() {
		var log model.APILog
		var requestBody, responseBody []byte
		err := rows.Scan(
			&result.Total,
			&log.ID,
			&log.CompanyID,
			&log.TokenID,
			&log.Method,
			&log.Endpoint,
			&requestBody,
			&log.ResponseStatus,
			&responseBody,
			&log.DurationMs,
			&log.IPAddress,
			&log.UserAgent,
			&log.CreatedAt,
		)
		if err != nil {
			return storage.ListAPILogResult{}, err
		}
		log.RequestBody = requestBody
		log.ResponseBody = responseBody
		result.Records = append(result.Records, log)
	}
	if err := rows.Err(); err != nil {
		return storage.ListAPILogResult{}, err
	}

	return result, nil
}

// nullableJSON turns an empty document into SQL NULL and passes the rest as text for the JSONB column.
func nullableJSON(doc []byte) *string {
	if len(doc) == 0 {
		return nil
	}
	s := string(doc)
	return &s
}
