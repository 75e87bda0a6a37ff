package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

func (s *Store) RecordMood(ctx context.Context, userID string, mood models.Mood) error {
	rec := MoodRecord{
		UserID:    userID,
		Current:   mood.Current,
		Libido:    models.ClampLibido(mood.Libido),
		CreatedAt: mood.LastUpdated,
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = s.now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("record mood: %w", err)
	}
	return nil
}

// LatestMood returns the most recent mood, or nil if none was recorded.
func (s *Store) LatestMood(ctx context.Context, userID string) (*models.Mood, error) {
	var rec MoodRecord
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		First(&rec).Error
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest mood: %w", err)
	}
	return &models.Mood{Current: rec.Current, Libido: rec.Libido, LastUpdated: rec.CreatedAt.UTC()}, nil
}
