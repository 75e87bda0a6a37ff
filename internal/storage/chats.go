package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// maxStoredMessages bounds a conversation; older messages are dropped.
const maxStoredMessages = 100

// AppendChat adds messages to the user's conversation.
func (s *Store) AppendChat(ctx context.Context, userID string, msgs ...models.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec ChatConversationRecord
		err := tx.Where("user_id = ?", userID).First(&rec).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("load conversation: %w", err)
		}
		rec.UserID = userID
		rec.Messages = append(rec.Messages, msgs...)
		if n := len(rec.Messages); n > maxStoredMessages {
			rec.Messages = rec.Messages[n-maxStoredMessages:]
		}
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("save conversation: %w", err)
		}
		return nil
	})
}

// RecentChat returns up to limit of the most recent messages, oldest first.
func (s *Store) RecentChat(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	var rec ChatConversationRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []models.ChatMessage{}, nil
		}
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	msgs := rec.Messages
	if limit > 0 && len(msgs) > limit {
		msgs = msgs[len(msgs)-limit:]
	}
	return append([]models.ChatMessage(nil), msgs...), nil
}
