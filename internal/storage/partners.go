package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

const inviteCodeLength = 6

func newInviteCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:inviteCodeLength]
}

func toConnection(rec PartnerRecord) models.PartnerConnection {
	conn := models.PartnerConnection{
		UserID:      rec.UserID,
		Status:      rec.Status,
		PartnerID:   rec.PartnerID,
		PartnerName: rec.PartnerName,
		UpdatedAt:   rec.UpdatedAt.UTC(),
	}
	if rec.InviteCode != nil {
		conn.InviteCode = *rec.InviteCode
	}
	if conn.Status == "" {
		conn.Status = models.PartnerStatusNone
	}
	return conn
}

// GetPartner returns the user's link state. Users who never invited anyone
// report status "none".
func (s *Store) GetPartner(ctx context.Context, userID string) (models.PartnerConnection, error) {
	rec, err := s.partnerRecord(s.db.WithContext(ctx), userID)
	if err != nil {
		return models.PartnerConnection{}, err
	}
	return toConnection(rec), nil
}

func (s *Store) partnerRecord(tx *gorm.DB, userID string) (PartnerRecord, error) {
	var rec PartnerRecord
	err := tx.Where("user_id = ?", userID).First(&rec).Error
	if err != nil {
		if errors.Is(notFound(err), ErrNotFound) {
			return PartnerRecord{UserID: userID, Status: models.PartnerStatusNone}, nil
		}
		return PartnerRecord{}, fmt.Errorf("get partner: %w", err)
	}
	return rec, nil
}

// CreateInvite issues a fresh invite code and marks the user pending. An
// existing link is left untouched.
func (s *Store) CreateInvite(ctx context.Context, userID string) (models.PartnerConnection, error) {
	var out models.PartnerConnection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.partnerRecord(tx, userID)
		if err != nil {
			return err
		}
		if rec.Status == models.PartnerStatusConnected {
			out = toConnection(rec)
			return nil
		}
		code := newInviteCode()
		rec.Status = models.PartnerStatusPending
		rec.InviteCode = &code
		rec.PartnerID = ""
		rec.PartnerName = ""
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error; err != nil {
			return fmt.Errorf("save invite: %w", err)
		}
		out = toConnection(rec)
		return nil
	})
	return out, err
}

// LinkPartner connects userID with the owner of code. Both sides are
// updated in one transaction and the code is consumed. A user who is
// already connected must unlink first.
func (s *Store) LinkPartner(ctx context.Context, userID, code string) (models.PartnerConnection, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	var out models.PartnerConnection
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var inviter PartnerRecord
		err := tx.Where("invite_code = ? AND status = ?", code, models.PartnerStatusPending).First(&inviter).Error
		if err != nil {
			if errors.Is(notFound(err), ErrNotFound) {
				return ErrInvalidInvite
			}
			return fmt.Errorf("find invite: %w", err)
		}
		if inviter.UserID == userID {
			return ErrSelfLink
		}
		current, err := s.partnerRecord(tx, userID)
		if err != nil {
			return err
		}
		if current.Status == models.PartnerStatusConnected {
			return ErrAlreadyLinked
		}

		inviter.Status = models.PartnerStatusConnected
		inviter.InviteCode = nil
		inviter.PartnerID = userID
		inviter.PartnerName = s.firstName(tx, userID)
		inviter.PartnerBlueprint = nil
		if err := tx.Save(&inviter).Error; err != nil {
			return fmt.Errorf("save inviter link: %w", err)
		}

		self := PartnerRecord{
			UserID:      userID,
			Status:      models.PartnerStatusConnected,
			PartnerID:   inviter.UserID,
			PartnerName: s.firstName(tx, inviter.UserID),
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&self).Error; err != nil {
			return fmt.Errorf("save partner link: %w", err)
		}
		out = toConnection(self)
		return nil
	})
	return out, err
}

var unlinkedColumns = map[string]interface{}{
	"status":            models.PartnerStatusNone,
	"invite_code":       nil,
	"partner_id":        "",
	"partner_name":      "",
	"partner_blueprint": nil,
}

// UnlinkPartner clears the user's link, including any predicted partner
// blueprint. The partner's row is cleared only while it still points back
// at userID.
func (s *Store) UnlinkPartner(ctx context.Context, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.partnerRecord(tx, userID)
		if err != nil {
			return err
		}
		err = tx.Model(&PartnerRecord{}).Where("user_id = ?", userID).Updates(unlinkedColumns).Error
		if err != nil {
			return fmt.Errorf("unlink partner: %w", err)
		}
		if rec.PartnerID == "" {
			return nil
		}
		err = tx.Model(&PartnerRecord{}).
			Where("user_id = ? AND partner_id = ?", rec.PartnerID, userID).
			Updates(unlinkedColumns).Error
		if err != nil {
			return fmt.Errorf("unlink partner side: %w", err)
		}
		return nil
	})
}

// SetPartnerBlueprint stores the user's estimate of their partner's blueprint.
func (s *Store) SetPartnerBlueprint(ctx context.Context, userID string, pb models.PartnerBlueprint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.partnerRecord(tx, userID)
		if err != nil {
			return err
		}
		if rec.Status != models.PartnerStatusConnected {
			return ErrNotLinked
		}
		rec.PartnerBlueprint = &pb
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("set partner blueprint: %w", err)
		}
		return nil
	})
}

// PartnerBlueprint resolves the partner's blueprint for a linked user. The
// partner's own quiz result wins over a predicted one.
func (s *Store) PartnerBlueprint(ctx context.Context, conn models.PartnerConnection) (*models.PartnerBlueprint, error) {
	if conn.Status != models.PartnerStatusConnected || conn.PartnerID == "" {
		return nil, nil
	}
	own, err := s.GetBlueprint(ctx, conn.PartnerID)
	if err != nil {
		return nil, err
	}
	if own != nil {
		return &models.PartnerBlueprint{Scores: own.Scores, PrimaryType: own.PrimaryType}, nil
	}
	rec, err := s.partnerRecord(s.db.WithContext(ctx), conn.UserID)
	if err != nil {
		return nil, err
	}
	return rec.PartnerBlueprint, nil
}
