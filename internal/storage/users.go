package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// EnsureUser creates the user on first sight and refreshes the identity
// fields the auth provider supplies. Non-empty fields overwrite.
func (s *Store) EnsureUser(ctx context.Context, user models.UserIdentity) error {
	rec := UserRecord{
		ID:             user.ID,
		Email:          user.Email,
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Gender:         user.Gender,
		Identity:       user.Identity,
		SpicinessLevel: models.DefaultSpiciness,
	}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&rec).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	updates := map[string]interface{}{}
	if user.Email != "" {
		updates["email"] = user.Email
	}
	if user.FirstName != "" {
		updates["first_name"] = user.FirstName
	}
	if user.LastName != "" {
		updates["last_name"] = user.LastName
	}
	if len(updates) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(&UserRecord{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (UserRecord, error) {
	var rec UserRecord
	if err := s.db.WithContext(ctx).Where("id = ?", userID).First(&rec).Error; err != nil {
		return UserRecord{}, notFound(err)
	}
	return rec, nil
}

// UpdateSpiciness stores the clamped level and returns it.
func (s *Store) UpdateSpiciness(ctx context.Context, userID string, level int) (int, error) {
	level = models.ClampSpiciness(level)
	if err := s.updateUser(ctx, userID, map[string]interface{}{"spiciness_level": level}); err != nil {
		return 0, err
	}
	return level, nil
}

func (s *Store) UpdateIdentity(ctx context.Context, userID, gender, identity string) error {
	return s.updateUser(ctx, userID, map[string]interface{}{"gender": gender, "identity": identity})
}

func (s *Store) updateUser(ctx context.Context, userID string, updates map[string]interface{}) error {
	res := s.db.WithContext(ctx).Model(&UserRecord{}).Where("id = ?", userID).Updates(updates)
	if res.Error != nil {
		return fmt.Errorf("update user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// defaultPartnerName stands in for partners whose token carried no given name.
const defaultPartnerName = "Partner"

func (s *Store) firstName(tx *gorm.DB, userID string) string {
	var rec UserRecord
	if err := tx.Select("first_name").Where("id = ?", userID).First(&rec).Error; err != nil || rec.FirstName == "" {
		return defaultPartnerName
	}
	return rec.FirstName
}
