package storage

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// SaveBlueprint stores profile as the user's current blueprint, replacing
// any earlier submission.
func (s *Store) SaveBlueprint(ctx context.Context, userID string, profile models.BlueprintProfile) error {
	rec := BlueprintRecord{
		UserID:      userID,
		Scores:      profile.Scores,
		PrimaryType: string(profile.PrimaryType),
		CompletedAt: profile.CompletedAt,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"scores", "primary_type", "completed_at", "updated_at"}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("save blueprint: %w", err)
	}
	return nil
}

// GetBlueprint returns the user's profile, or nil if the quiz was never completed.
func (s *Store) GetBlueprint(ctx context.Context, userID string) (*models.BlueprintProfile, error) {
	var rec BlueprintRecord
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&rec).Error
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get blueprint: %w", err)
	}
	return &models.BlueprintProfile{
		Scores:      rec.Scores,
		PrimaryType: models.Dimension(rec.PrimaryType),
		CompletedAt: rec.CompletedAt.UTC(),
	}, nil
}
