package chat

import (
	"context"
	"time"

	"placenet/internal/common"
)

// Message is a directed message between two users. Immutable once created.
type Message struct {
	ID         common.UUID `json:"id"`
	SenderID   common.UUID `json:"sender_id"`
	ReceiverID common.UUID `json:"receiver_id"`
	Body       string      `json:"body"`
	CreatedAt  time.Time   `json:"created_at"`
}

type Repository interface {
	Create(ctx context.Context, m Message) (*Message, error)
	// ListBetween returns the union of a→b and b→a ordered by created_at
	// ascending.
	ListBetween(ctx context.Context, a, b common.UUID, limit, offset int) ([]Message, error)
}
