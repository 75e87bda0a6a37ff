package memory

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
)

// Source supplies the independently persisted pieces of a user's memory.
// Missing optional records are reported as nil with a nil error.
type Source interface {
	LoadUser(ctx context.Context, userID string) (models.UserIdentity, int, error)
	LoadBlueprint(ctx context.Context, userID string) (*models.BlueprintProfile, error)
	LoadPartner(ctx context.Context, userID string) (models.PartnerConnection, *models.PartnerBlueprint, error)
	LoadMood(ctx context.Context, userID string) (*models.Mood, error)
}

// Loader rebuilds a session's memory at session start.
type Loader struct {
	src Source
	log *logger.Logger
}

func NewLoader(src Source, baseLog *logger.Logger) *Loader {
	return &Loader{src: src, log: baseLog.With("component", "MemoryLoader")}
}

// Load fetches every part concurrently and assembles the memory.
func (l *Loader) Load(ctx context.Context, userID string) (models.UserMemoryContext, error) {
	var (
		user      models.UserIdentity
		spiciness int
		profile   *models.BlueprintProfile
		conn      models.PartnerConnection
		partnerBP *models.PartnerBlueprint
		mood      *models.Mood
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, spiciness, err = l.src.LoadUser(gctx, userID)
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		profile, err = l.src.LoadBlueprint(gctx, userID)
		if err != nil {
			return fmt.Errorf("load blueprint: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		conn, partnerBP, err = l.src.LoadPartner(gctx, userID)
		if err != nil {
			return fmt.Errorf("load partner: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		mood, err = l.src.LoadMood(gctx, userID)
		if err != nil {
			return fmt.Errorf("load mood: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		l.log.Warn("memory load failed", "user_id", userID, "error", err)
		return models.UserMemoryContext{}, err
	}

	mem := models.UserMemoryContext{
		UserID:         userID,
		FirstName:      user.FirstName,
		Gender:         user.Gender,
		Identity:       user.Identity,
		SpicinessLevel: spiciness,
		Blueprint:      profile,
		Mood:           mood,
	}
	if conn.Status == models.PartnerStatusConnected {
		mem.PartnerID = conn.PartnerID
		mem.PartnerName = conn.PartnerName
		mem.PartnerLinked = true
		mem.PartnerBlueprint = partnerBP
	}
	if mem.SpicinessLevel == 0 {
		mem.SpicinessLevel = models.DefaultSpiciness
	}
	mem.SpicinessLevel = models.ClampSpiciness(mem.SpicinessLevel)
	return mem, nil
}

// Session loads the memory and wraps it in a new Session.
func (l *Loader) Session(ctx context.Context, userID string, notifier Notifier) (*Session, error) {
	mem, err := l.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Restore(mem, notifier), nil
}
