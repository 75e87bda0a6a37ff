package storage

import (
	"context"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// The methods below let a Store act as memory.Source.

func (s *Store) LoadUser(ctx context.Context, userID string) (models.UserIdentity, int, error) {
	rec, err := s.GetUser(ctx, userID)
	if err != nil {
		return models.UserIdentity{}, 0, err
	}
	return models.UserIdentity{
		ID:        rec.ID,
		Email:     rec.Email,
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Gender:    rec.Gender,
		Identity:  rec.Identity,
	}, rec.SpicinessLevel, nil
}

func (s *Store) LoadBlueprint(ctx context.Context, userID string) (*models.BlueprintProfile, error) {
	return s.GetBlueprint(ctx, userID)
}

func (s *Store) LoadPartner(ctx context.Context, userID string) (models.PartnerConnection, *models.PartnerBlueprint, error) {
	conn, err := s.GetPartner(ctx, userID)
	if err != nil {
		return models.PartnerConnection{}, nil, err
	}
	pb, err := s.PartnerBlueprint(ctx, conn)
	if err != nil {
		return models.PartnerConnection{}, nil, err
	}
	return conn, pb, nil
}

func (s *Store) LoadMood(ctx context.Context, userID string) (*models.Mood, error) {
	return s.LatestMood(ctx, userID)
}
