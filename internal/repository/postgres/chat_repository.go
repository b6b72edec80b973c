package postgres

import (
	"context"
	"database/sql"
	"time"

	"placenet/internal/common"
	"placenet/internal/domain/chat"
)

type ChatRepository struct {
	db *sql.DB
}

func NewChatRepository(db *sql.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Create(ctx context.Context, m chat.Message) (*chat.Message, error) {
	m.ID = common.NewUUID()
	m.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO chat_messages (id, sender_id, receiver_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5)`, m.ID, m.SenderID, m.ReceiverID, m.Body, m.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create message", err)
	}
	return &m, nil
}

func (r *ChatRepository) ListBetween(ctx context.Context, a, b common.UUID, limit, offset int) ([]chat.Message, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, sender_id, receiver_id, body, created_at FROM chat_messages
		WHERE (sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1)
		ORDER BY created_at ASC LIMIT $3 OFFSET $4`, a, b, limit, offset)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list messages", err)
	}
	defer rows.Close()
	var items []chat.Message
	for rows.Next() {
		var m chat.Message
		if err := rows.Scan(&m.ID, &m.SenderID, &m.ReceiverID, &m.Body, &m.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan message", err)
		}
		items = append(items, m)
	}
	return items, nil
}
