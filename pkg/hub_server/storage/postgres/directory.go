package postgres

import (
	"context"

	"github.com/codatende/webhookhub/pkg/hub_server/model"
	"github.com/codatende/webhookhub/pkg/hub_server/storage"
)

func (s *_Storage) ListQueue(ctx context.Context, tx storage.Tx, companyID string) ([]model.Queue, error) {
	query := `
SELECT id, company_id, "name", color, greeting_message, out_of_hours_message, order_queue
FROM queue
WHERE company_id = $1
ORDER BY order_queue ASC, rec_id ASC`
	rows, err := tx.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	queues := make([]model.Queue, 0)
	for rows.Next() {
		var q model.Queue
		if err := rows.Scan(&q.ID, &q.CompanyID, &q.Name, &q.Color, &q.GreetingMessage, &q.OutOfHoursMessage, &q.OrderQueue); err != nil {
			return nil, err
		}
		queues = append(queues, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return queues, nil
}

func (s *_Storage) ListTag(ctx context.Context, tx storage.Tx, companyID string) ([]model.Tag, error) {
	query := `SELECT id, company_id, "name", color, kanban FROM tag WHERE company_id = $1 ORDER BY "name" ASC`
	rows, err := tx.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tags := make([]model.Tag, 0)
	for rows.Next() {
		var t model.Tag
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Name, &t.Color, &t.Kanban); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *_Storage) ListUser(ctx context.Context, tx storage.Tx, req storage.ListUserRequest) (storage.ListUserResult, error) {
	query := `
SELECT count(*) OVER (), id, company_id, "name", email, profile, online
FROM app_user
WHERE company_id = $3
ORDER BY "name" ASC, rec_id ASC
OFFSET $1 LIMIT $2`
	rows, err := tx.Query(ctx, query, req.Offset, req.Limit, req.CompanyID)
	if err != nil {
		return storage.ListUserResult{}, err
	}
	defer rows.Close()

	result := storage.ListUserResult{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&result.Total, &u.ID, &u.CompanyID, &u.Name, &u.Email, &u.Profile, &u.Online); err != nil {
			return storage.ListUserResult{}, err
		}
		result.Records = append(result.Records, u)
	}
	if err := rows.Err(); err != nil {
		return storage.ListUserResult{}, err
	}
	return result, nil
}
