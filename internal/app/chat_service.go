package app

import (
	"context"
	"strings"

	"placenet/internal/common"
	"placenet/internal/domain/analytics"
	"placenet/internal/domain/chat"
)

// Publisher is the real-time fan-out channel. Delivery is best-effort; the
// persisted message is the durable record.
type Publisher interface {
	Publish(v any) error
}

type ChatService struct {
	repo      chat.Repository
	analytics analytics.Repository
	publisher Publisher
}

func NewChatService(repo chat.Repository, analyticsRepo analytics.Repository, publisher Publisher) *ChatService {
	return &ChatService{repo: repo, analytics: analyticsRepo, publisher: publisher}
}

type chatEvent struct {
	Type    string        `json:"type"`
	Message *chat.Message `json:"message"`
}

func (s *ChatService) Send(ctx context.Context, senderID, receiverID common.UUID, body string) (*chat.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, common.NewValidationError("invalid message", map[string]string{"body": "body is required"})
	}
	if receiverID.IsZero() {
		return nil, common.NewValidationError("invalid message", map[string]string{"receiver_id": "receiver_id is required"})
	}
	if senderID == receiverID {
		return nil, common.NewValidationError("invalid message", map[string]string{"receiver_id": "cannot message yourself"})
	}
	created, err := s.repo.Create(ctx, chat.Message{SenderID: senderID, ReceiverID: receiverID, Body: body})
	if err != nil {
		return nil, err
	}
	if s.publisher != nil {
		// Fan-out failures are not surfaced: the message is durable and a
		// client recovers it on its next history fetch.
		_ = s.publisher.Publish(chatEvent{Type: "chat_message", Message: created})
	}
	_ = s.analytics.Create(ctx, analytics.Event{Name: "chat.message_sent", UserID: &senderID, Payload: map[string]string{"message_id": created.ID.String()}})
	return created, nil
}

func (s *ChatService) ListBetween(ctx context.Context, userID, otherID common.UUID, limit, offset int) ([]chat.Message, error) {
	if limit <= 0 || limit > 200 {
		return nil, common.NewValidationError("invalid limit", map[string]string{"limit": "limit must be between 1 and 200"})
	}
	if offset < 0 {
		return nil, common.NewValidationError("invalid offset", map[string]string{"offset": "offset must be >= 0"})
	}
	return s.repo.ListBetween(ctx, userID, otherID, limit, offset)
}
