package store

import (
	"context"
	"strings"
	"time"

	"linkhub/internal/bridge"
	"linkhub/internal/models"
)

// SendMessage appends a chat message from the acting user.
func (s *Store) SendMessage(ctx context.Context, actor *models.User, text string) (*models.ChatMessage, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	message := models.ChatMessage{
		ID:        nextID(maxMessageID(s.chatMessages)),
		Username:  actor.Username,
		Text:      text,
		Timestamp: time.Now().UTC(),
	}
	s.chatMessages = append(s.chatMessages, message)
	s.persist(ctx, bridge.KeyChatMessages)
	return &message, nil
}
