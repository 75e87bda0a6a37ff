package memory

import (
	"strings"
	"sync"
	"time"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

// Notifier receives every state change of a Session. A cleared session is
// reported with ok == false.
type Notifier interface {
	MemoryChanged(mem models.UserMemoryContext, ok bool)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(mem models.UserMemoryContext, ok bool)

func (f NotifierFunc) MemoryChanged(mem models.UserMemoryContext, ok bool) { f(mem, ok) }

type nopNotifier struct{}

func (nopNotifier) MemoryChanged(models.UserMemoryContext, bool) {}

// Session owns one user's memory for the lifetime of a session or request.
// Mutators return the resulting snapshot; once cleared they are no-ops.
type Session struct {
	mu       sync.Mutex
	mem      *models.UserMemoryContext
	notifier Notifier
	now      func() time.Time
}

// NewSession starts a session for user at the default spiciness with no
// partner, blueprint or mood.
func NewSession(user models.UserIdentity, notifier Notifier) *Session {
	mem := models.UserMemoryContext{
		UserID:         user.ID,
		FirstName:      user.FirstName,
		Gender:         user.Gender,
		Identity:       user.Identity,
		SpicinessLevel: models.DefaultSpiciness,
	}
	return Restore(mem, notifier)
}

// Restore wraps an already assembled memory, e.g. one built by Loader.
func Restore(mem models.UserMemoryContext, notifier Notifier) *Session {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	mem = mem.Clone()
	if mem.SpicinessLevel == 0 {
		mem.SpicinessLevel = models.DefaultSpiciness
	}
	mem.SpicinessLevel = models.ClampSpiciness(mem.SpicinessLevel)
	s := &Session{mem: &mem, notifier: notifier, now: time.Now}
	s.notifier.MemoryChanged(mem.Clone(), true)
	return s
}

// Snapshot returns a copy of the current memory.
func (s *Session) Snapshot() (models.UserMemoryContext, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mem == nil {
		return models.UserMemoryContext{}, false
	}
	return s.mem.Clone(), true
}

// Context renders the current memory with BuildContext. Empty once cleared.
func (s *Session) Context() string {
	mem, ok := s.Snapshot()
	if !ok {
		return ""
	}
	return BuildContext(mem)
}

func (s *Session) update(fn func(m *models.UserMemoryContext)) models.UserMemoryContext {
	s.mu.Lock()
	if s.mem == nil {
		s.mu.Unlock()
		return models.UserMemoryContext{}
	}
	fn(s.mem)
	snap := s.mem.Clone()
	s.mu.Unlock()

	s.notifier.MemoryChanged(snap.Clone(), true)
	return snap
}

// UpdateSpicinessLevel clamps n into 1..5; out-of-range input is not an error.
func (s *Session) UpdateSpicinessLevel(n int) models.UserMemoryContext {
	return s.update(func(m *models.UserMemoryContext) {
		m.SpicinessLevel = models.ClampSpiciness(n)
	})
}

func (s *Session) UpdateIdentity(gender, identity string) models.UserMemoryContext {
	return s.update(func(m *models.UserMemoryContext) {
		m.Gender = strings.TrimSpace(gender)
		m.Identity = strings.TrimSpace(identity)
	})
}

// UpdateBlueprint replaces the user's own profile, as on quiz resubmission.
func (s *Session) UpdateBlueprint(profile models.BlueprintProfile) models.UserMemoryContext {
	return s.update(func(m *models.UserMemoryContext) {
		m.Blueprint = &profile
	})
}

func (s *Session) UpdatePartnerInfo(partnerID, partnerName string) models.UserMemoryContext {
	return s.update(func(m *models.UserMemoryContext) {
		m.PartnerID = partnerID
		m.PartnerName = partnerName
		m.PartnerLinked = true
	})
}

func (s *Session) SetPartnerBlueprint(pb models.PartnerBlueprint) models.UserMemoryContext {
	return s.update(func(m *models.UserMemoryContext) {
		m.PartnerBlueprint = &pb
	})
}

// RemovePartnerLink drops every partner field, including the partner's blueprint.
func (s *Session) RemovePartnerLink() models.UserMemoryContext {
	return s.update(func(m *models.UserMemoryContext) {
		m.PartnerID = ""
		m.PartnerName = ""
		m.PartnerLinked = false
		m.PartnerBlueprint = nil
	})
}

// UpdateMood records the current mood; libido is clamped into 1..10.
func (s *Session) UpdateMood(mood string, libido int) models.UserMemoryContext {
	now := s.now().UTC()
	return s.update(func(m *models.UserMemoryContext) {
		m.Mood = &models.Mood{
			Current:     strings.TrimSpace(mood),
			Libido:      models.ClampLibido(libido),
			LastUpdated: now,
		}
	})
}

// Clear ends the session, e.g. on logout.
func (s *Session) Clear() {
	s.mu.Lock()
	s.mem = nil
	s.mu.Unlock()
	s.notifier.MemoryChanged(models.UserMemoryContext{}, false)
}
