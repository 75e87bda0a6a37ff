package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/blueprint"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/memory"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/metrics"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/suggest"
)

// Store is the persistence the handlers need. *storage.Store implements it.
type Store interface {
	memory.Source

	Ping(ctx context.Context) error

	SaveBlueprint(ctx context.Context, userID string, profile models.BlueprintProfile) error
	GetBlueprint(ctx context.Context, userID string) (*models.BlueprintProfile, error)

	UpdateSpiciness(ctx context.Context, userID string, level int) (int, error)
	UpdateIdentity(ctx context.Context, userID, gender, identity string) error
	RecordMood(ctx context.Context, userID string, mood models.Mood) error

	CreateInvite(ctx context.Context, userID string) (models.PartnerConnection, error)
	LinkPartner(ctx context.Context, userID, code string) (models.PartnerConnection, error)
	UnlinkPartner(ctx context.Context, userID string) error
	SetPartnerBlueprint(ctx context.Context, userID string, pb models.PartnerBlueprint) error

	SaveSuggestions(ctx context.Context, suggestions []models.Suggestion) ([]models.Suggestion, error)
	ListSuggestions(ctx context.Context, userID string, limit int) ([]models.Suggestion, error)
	MarkSuggestionRead(ctx context.Context, userID, id string) error
	MarkSuggestionApplied(ctx context.Context, userID, id string) error

	AppendChat(ctx context.Context, userID string, msgs ...models.ChatMessage) error
	RecentChat(ctx context.Context, userID string, limit int) ([]models.ChatMessage, error)
}

type Handler struct {
	store      Store
	loader     *memory.Loader
	classifier *blueprint.Classifier
	suggest    *suggest.Service
	metrics    *metrics.Recorder
	log        *logger.Logger
	now        func() time.Time
}

func NewHandler(store Store, classifier *blueprint.Classifier, svc *suggest.Service, rec *metrics.Recorder, baseLog *logger.Logger) *Handler {
	if classifier == nil {
		classifier = blueprint.NewClassifier(nil)
	}
	return &Handler{
		store:      store,
		loader:     memory.NewLoader(store, baseLog),
		classifier: classifier,
		suggest:    svc,
		metrics:    rec,
		log:        baseLog.With("handler", "APIHandler"),
		now:        time.Now,
	}
}

// Health reports liveness plus whether storage answers and AI is configured.
func (h *Handler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status, code := "ok", http.StatusOK
	dbStatus := "ok"
	if err := h.store.Ping(ctx); err != nil {
		h.log.Warn("health: database ping failed", "error", err)
		status, code, dbStatus = "degraded", http.StatusServiceUnavailable, "unavailable"
	}
	c.JSON(code, gin.H{
		"status":   status,
		"database": dbStatus,
		"ai":       h.suggest.Enabled(),
	})
}

// session rebuilds the caller's memory from storage for this request.
func (h *Handler) session(c *gin.Context) (*memory.Session, error) {
	userID := auth.UserID(c)
	return h.loader.Session(c.Request.Context(), userID, memory.NotifierFunc(func(mem models.UserMemoryContext, ok bool) {
		h.log.Debug("memory changed", "user_id", userID, "active", ok, "spiciness", mem.SpicinessLevel, "partner_linked", mem.PartnerLinked)
	}))
}

type memoryResponse struct {
	Memory  models.UserMemoryContext `json:"memory"`
	Context string                   `json:"context"`
}

func newMemoryResponse(mem models.UserMemoryContext) memoryResponse {
	return memoryResponse{Memory: mem, Context: memory.BuildContext(mem)}
}

// GetMemory returns the caller's memory and its rendered context line.
func (h *Handler) GetMemory(c *gin.Context) {
	sess, err := h.session(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	mem, _ := sess.Snapshot()
	respondOK(c, newMemoryResponse(mem))
}
