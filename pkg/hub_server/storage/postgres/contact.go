package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

const contactColumns = `id, company_id, "name", "number", email, whatsapp_id, messages_received, last_interaction_at, created_at, updated_at`

func (s *_Storage) StoreContact(ctx context.Context, tx storage.Tx, contact model.Contact) error {
	query := `
INSERT INTO contact (` + contactColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (id) DO UPDATE SET
	"name" = excluded."name",
	"number" = excluded."number",
	email = excluded.email,
	whatsapp_id = excluded.whatsapp_id,
	messages_received = excluded.messages_received,
	last_interaction_at = excluded.last_interaction_at,
	updated_at = excluded.updated_at`

	_, err := tx.Exec(
		ctx,
		query,
		contact.ID,
		contact.CompanyID,
		contact.Name,
		contact.Number,
		contact.Email,
		contact.WhatsAppID,
		contact.MessagesReceived,
		contact.LastInteractionAt,
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	return err
}

func (s *_Storage) ListContact(ctx context.Context, tx storage.Tx, req storage.ListContactRequest) (storage.ListContactResult, error) {
	filter := `
FROM contact
WHERE
	company_id = $1 AND
	(COALESCE(array_length($2::TEXT[], 1), 0) = 0 OR id = ANY($2)) AND
	(COALESCE(array_length($3::TEXT[], 1), 0) = 0 OR "number" = ANY($3)) AND
	($4 = '' OR "name" ILIKE '%' || $4 || '%' OR "number" ILIKE '%' || $4 || '%')`
	args := []any{req.CompanyID, req.IDs, req.Numbers, req.Search}

	var res storage.ListContactResult
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) `+filter, args...).Scan(&res.Total); err != nil {
		return storage.ListContactResult{}, err
	}

	query := `SELECT ` + contactColumns + filter + `
ORDER BY "name" ASC, rec_id ASC
OFFSET $5 LIMIT $6`
	rows, err := tx.Query(ctx, query, append(args, req.Offset, req.Limit)...)
	if err != nil {
		return storage.ListContactResult{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var c model.Contact
		err := rows.Scan(
			&c.ID,
			&c.CompanyID,
			&c.Name,
			&c.Number,
			&c.Email,
			&c.WhatsAppID,
			&c.MessagesReceived,
			&c.LastInteractionAt,
			&c.CreatedAt,
			&c.UpdatedAt,
		)
		if err != nil {
			return storage.ListContactResult{}, err
		}
		res.Records = append(res.Records, c)
	}
	if err := rows.Err(); err != nil {
		return storage.ListContactResult{}, err
	}

	return res, nil
}
