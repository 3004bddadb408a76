package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

const ticketColumns = `id, company_id, contact_id, whatsapp_id, queue_id, user_id, "status", last_message, unread_messages, created_at, updated_at`

func (s *_Storage) StoreTicket(ctx context.Context, tx storage.Tx, ticket model.Ticket) error {
	query := `
INSERT INTO ticket (` + ticketColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
ON CONFLICT (id) DO UPDATE SET
	whatsapp_id = excluded.whatsapp_id,
	queue_id = excluded.queue_id,
	user_id = excluded.user_id,
	"status" = excluded."status",
	last_message = excluded.last_message,
	unread_messages = excluded.unread_messages,
	updated_at = excluded.updated_at`

	_, err := tx.Exec(
		ctx,
		query,
		ticket.ID,
		ticket.CompanyID,
		ticket.ContactID,
		ticket.WhatsAppID,
		ticket.QueueID,
		ticket.UserID,
		string(ticket.Status),
		ticket.LastMessage,
		ticket.UnreadMessages,
		ticket.CreatedAt,
		ticket.UpdatedAt,
	)
	return err
}

func (s *_Storage) ListTicket(ctx context.Context, tx storage.Tx, req storage.ListTicketRequest) (storage.ListTicketResult, error) {
	filter := `
FROM ticket
WHERE
	company_id = $1 AND
	(COALESCE(array_length($2::TEXT[], 1), 0) = 0 OR id = ANY($2)) AND
	($3 = '' OR contact_id = $3) AND
	($4 = '' OR whatsapp_id = $4) AND
	(COALESCE(array_length($5::TEXT[], 1), 0) = 0 OR "status" = ANY($5))`
	args := []any{req.CompanyID, req.IDs, req.ContactID, req.WhatsAppID, textArray(req.Statuses)}

	var res storage.ListTicketResult
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) `+filter, args...).Scan(&res.Total); err != nil {
		return storage.ListTicketResult{}, err
	}

	query := `SELECT ` + ticketColumns + filter + `
ORDER BY updated_at DESC, rec_id DESC
OFFSET $6 LIMIT $7`
	rows, err := tx.Query(ctx, query, append(args, req.Offset, req.Limit)...)
	if err != nil {
		return storage.ListTicketResult{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var t model.Ticket
		var status string
		err := rows.Scan(
			&t.ID,
			&t.CompanyID,
			&t.ContactID,
			&t.WhatsAppID,
			&t.QueueID,
			&t.UserID,
			&status,
			&t.LastMessage,
			&t.UnreadMessages,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return storage.ListTicketResult{}, err
		}
		t.Status = model.TicketStatus(status)
		res.Records = append(res.Records, t)
	}
	if err := rows.Err(); err != nil {
		return storage.ListTicketResult{}, err
	}

	return res, nil
}
