package memory

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

type recorder struct {
	mu     sync.Mutex
	events []models.UserMemoryContext
	oks    []bool
}

func (r *recorder) MemoryChanged(mem models.UserMemoryContext, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, mem)
	r.oks = append(r.oks, ok)
}

func newTestSession(rec *recorder) *Session {
	return NewSession(models.UserIdentity{ID: "u1", FirstName: "Riley", Gender: "nonbinary"}, rec)
}

func TestNewSessionDefaults(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec)

	mem, ok := s.Snapshot()
	require.True(t, ok)
	assert.Equal(t, models.DefaultSpiciness, mem.SpicinessLevel)
	assert.False(t, mem.PartnerLinked)
	assert.Nil(t, mem.Blueprint)
	assert.Len(t, rec.events, 1)
}

func TestUpdateSpicinessLevelClamps(t *testing.T) {
	s := newTestSession(&recorder{})

	assert.Equal(t, 1, s.UpdateSpicinessLevel(0).SpicinessLevel)
	assert.Equal(t, 5, s.UpdateSpicinessLevel(9).SpicinessLevel)
	assert.Equal(t, 1, s.UpdateSpicinessLevel(-3).SpicinessLevel)
	assert.Equal(t, 4, s.UpdateSpicinessLevel(4).SpicinessLevel)

	mem, _ := s.Snapshot()
	assert.Equal(t, 4, mem.SpicinessLevel)
}

func TestPartnerLifecycle(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec)

	s.UpdatePartnerInfo("p1", "Sam")
	s.SetPartnerBlueprint(models.PartnerBlueprint{PrimaryType: models.Kinky, IsPredicted: true})
	assert.Contains(t, s.Context(), "Partner blueprint: Kinky (predicted)")

	mem := s.RemovePartnerLink()
	assert.False(t, mem.PartnerLinked)
	assert.Empty(t, mem.PartnerID)
	assert.Empty(t, mem.PartnerName)
	assert.Nil(t, mem.PartnerBlueprint)
	assert.Contains(t, s.Context(), "Single/no partner linked")
	assert.Len(t, rec.events, 4)
}

func TestUpdateMoodStampsAndClamps(t *testing.T) {
	s := newTestSession(&recorder{})
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	s.now = func() time.Time { return at }

	mem := s.UpdateMood(" flirty ", 12)
	require.NotNil(t, mem.Mood)
	assert.Equal(t, "flirty", mem.Mood.Current)
	assert.Equal(t, 10, mem.Mood.Libido)
	assert.Equal(t, at, mem.Mood.LastUpdated)
}

func TestSnapshotDoesNotAlias(t *testing.T) {
	s := newTestSession(&recorder{})
	s.UpdateBlueprint(models.BlueprintProfile{PrimaryType: models.Sensual})

	mem, _ := s.Snapshot()
	mem.Blueprint.PrimaryType = models.Kinky

	again, _ := s.Snapshot()
	assert.Equal(t, models.Sensual, again.Blueprint.PrimaryType)
}

func TestClearDisablesUpdates(t *testing.T) {
	rec := &recorder{}
	s := newTestSession(rec)
	s.Clear()

	_, ok := s.Snapshot()
	assert.False(t, ok)
	assert.Equal(t, "", s.Context())
	assert.Equal(t, models.UserMemoryContext{}, s.UpdateSpicinessLevel(2))
	assert.Equal(t, []bool{true, false}, rec.oks)
}

func TestSessionsAreIndependent(t *testing.T) {
	a := NewSession(models.UserIdentity{ID: "u1"}, nil)
	b := NewSession(models.UserIdentity{ID: "u2"}, NotifierFunc(func(models.UserMemoryContext, bool) {}))

	a.UpdateSpicinessLevel(5)
	memB, _ := b.Snapshot()
	assert.Equal(t, models.DefaultSpiciness, memB.SpicinessLevel)
}

func TestConcurrentUpdates(t *testing.T) {
	s := newTestSession(&recorder{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.UpdateSpicinessLevel(n % 7)
			_ = s.Context()
		}(i)
	}
	wg.Wait()

	mem, ok := s.Snapshot()
	require.True(t, ok)
	assert.GreaterOrEqual(t, mem.SpicinessLevel, 1)
	assert.LessOrEqual(t, mem.SpicinessLevel, 5)
}
