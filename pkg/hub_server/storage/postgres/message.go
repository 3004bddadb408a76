package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

const messageColumns = `id, company_id, ticket_id, contact_id, body, from_me, is_read, wid, raw_id, remote_jid, media_url, media_type, ack, data_json, created_at, updated_at`

func (s *_Storage) StoreMessage(ctx context.Context, tx storage.Tx, msg model.Message) error {
	query := `
INSERT INTO message (` + messageColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
ON CONFLICT (id) DO UPDATE SET
	body = excluded.body,
	is_read = excluded.is_read,
	wid = excluded.wid,
	raw_id = excluded.raw_id,
	media_url = excluded.media_url,
	media_type = excluded.media_type,
	ack = excluded.ack,
	data_json = excluded.data_json,
	updated_at = excluded.updated_at`

	_, err := tx.Exec(
		ctx,
		query,
		msg.ID,
		msg.CompanyID,
		msg.TicketID,
		msg.ContactID,
		msg.Body,
		msg.FromMe,
		msg.IsRead,
		msg.Wid,
		msg.RawID,
		msg.RemoteJid,
		msg.MediaURL,
		msg.MediaType,
		int(msg.Ack),
		nullableJSON(msg.DataJSON),
		msg.CreatedAt,
		msg.UpdatedAt,
	)
	return err
}

func (s *_Storage) ListMessage(ctx context.Context, tx storage.Tx, req storage.ListMessageRequest) (storage.ListMessageResult, error) {
	filter := `
FROM message
WHERE
	company_id = $1 AND
	($2 = '' OR ticket_id = $2) AND
	(COALESCE(array_length($3::TEXT[], 1), 0) = 0 OR wid = ANY($3))`
	args := []any{req.CompanyID, req.TicketID, req.Wids}

	var res storage.ListMessageResult
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) `+filter, args...).Scan(&res.Total); err != nil {
		return storage.ListMessageResult{}, err
	}

	order := `ORDER BY created_at DESC, rec_id DESC`
	if req.Ascending {
		order = `ORDER BY created_at ASC, rec_id ASC`
	}
	query := `SELECT ` + messageColumns + filter + "\n" + order + `
OFFSET $4 LIMIT $5`
	rows, err := tx.Query(ctx, query, append(args, req.Offset, req.Limit)...)
	if err != nil {
		return storage.ListMessageResult{}, err
	}
	defer rows.Close()

	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return storage.ListMessageResult{}, err
		}
		res.Records = append(res.Records, msg)
	}
	if err := rows.Err(); err != nil {
		return storage.ListMessageResult{}, err
	}

	return res, nil
}

// UpdateMessageAck sets the ack of the messages carrying providerID as wid.
// The raw provider id is only consulted when no message has that wid.
func (s *_Storage) UpdateMessageAck(ctx context.Context, tx storage.Tx, companyID string, providerID string, ack model.MessageAck, ts int64) ([]model.Message, error) {
	query := `
UPDATE message SET ack = $3, updated_at = $4
WHERE
	company_id = $1 AND
	(
		wid = $2 OR
		(raw_id = $2 AND NOT EXISTS (SELECT 1 FROM message m WHERE m.company_id = $1 AND m.wid = $2))
	)
RETURNING ` + messageColumns

	rows, err := tx.Query(ctx, query, companyID, providerID, int(ack), ts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var updated []model.Message
	for rows.Next() {
		msg, err := scanMessage(rows)
		if err != nil {
			return nil, err
		}
		updated = append(updated, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return updated, nil
}

func scanMessage(row storage.Row) (model.Message, error) {
	var msg model.Message
	var ack int
	var dataJSON []byte
	err := row.Scan(
		&msg.ID,
		&msg.CompanyID,
		&msg.TicketID,
		&msg.ContactID,
		&msg.Body,
		&msg.FromMe,
		&msg.IsRead,
		&msg.Wid,
		&msg.RawID,
		&msg.RemoteJid,
		&msg.MediaURL,
		&msg.MediaType,
		&ack,
		&dataJSON,
		&msg.CreatedAt,
		&msg.UpdatedAt,
	)
	if err != nil {
		return model.Message{}, err
	}
	msg.Ack = model.MessageAck(ack)
	msg.DataJSON = dataJSON
	return msg, nil
}
