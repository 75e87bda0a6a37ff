package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// SaveSuggestions persists generated suggestions, assigning ids and
// timestamps where missing. The stored values are returned.
func (s *Store) SaveSuggestions(ctx context.Context, suggestions []models.Suggestion) ([]models.Suggestion, error) {
	if len(suggestions) == 0 {
		return []models.Suggestion{}, nil
	}
	now := s.now().UTC()
	recs := make([]SuggestionRecord, len(suggestions))
	for i, sg := range suggestions {
		if sg.ID == "" {
			sg.ID = uuid.NewString()
		}
		if sg.CreatedAt.IsZero() {
			sg.CreatedAt = now
		}
		recs[i] = SuggestionRecord{
			ID:        sg.ID,
			UserID:    sg.UserID,
			Category:  sg.Category,
			Title:     sg.Title,
			Content:   sg.Content,
			IsRead:    sg.IsRead,
			IsApplied: sg.IsApplied,
			CreatedAt: sg.CreatedAt,
		}
	}
	if err := s.db.WithContext(ctx).Create(&recs).Error; err != nil {
		return nil, fmt.Errorf("save suggestions: %w", err)
	}
	out := make([]models.Suggestion, len(recs))
	for i, r := range recs {
		out[i] = toSuggestion(r)
	}
	return out, nil
}

// ListSuggestions returns the user's newest suggestions first.
func (s *Store) ListSuggestions(ctx context.Context, userID string, limit int) ([]models.Suggestion, error) {
	if limit <= 0 {
		limit = 20
	}
	var recs []SuggestionRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list suggestions: %w", err)
	}
	out := make([]models.Suggestion, len(recs))
	for i, r := range recs {
		out[i] = toSuggestion(r)
	}
	return out, nil
}

func (s *Store) MarkSuggestionRead(ctx context.Context, userID, id string) error {
	return s.markSuggestion(ctx, userID, id, "is_read")
}

func (s *Store) MarkSuggestionApplied(ctx context.Context, userID, id string) error {
	return s.markSuggestion(ctx, userID, id, "is_applied")
}

func (s *Store) markSuggestion(ctx context.Context, userID, id, column string) error {
	res := s.db.WithContext(ctx).Model(&SuggestionRecord{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update(column, true)
	if res.Error != nil {
		return fmt.Errorf("mark suggestion: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func toSuggestion(r SuggestionRecord) models.Suggestion {
	return models.Suggestion{
		ID:        r.ID,
		UserID:    r.UserID,
		Category:  r.Category,
		Title:     r.Title,
		Content:   r.Content,
		IsRead:    r.IsRead,
		IsApplied: r.IsApplied,
		CreatedAt: r.CreatedAt.UTC(),
	}
}
