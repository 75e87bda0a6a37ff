package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/a2a"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/blueprint"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/metrics"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/storage"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/suggest"
)

const testSecret = "router-test-secret"

type testServer struct {
	t      *testing.T
	router *gin.Engine
	store  *storage.Store
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	log := logger.Nop()
	store, err := storage.New(db, log)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	reg := prometheus.NewRegistry()
	rec := metrics.New(reg)
	svc := suggest.NewService(suggest.Options{Metrics: rec}, log)
	h := NewHandler(store, blueprint.NewClassifier(nil), svc, rec, log)

	router := NewRouter(RouterConfig{
		Handler:        h,
		AuthMiddleware: auth.NewMiddleware(testSecret, store, log),
		A2A:            a2a.NewHandler(svc, nil, a2a.DefaultCard("http://test"), log),
		Metrics:        rec,
		Gatherer:       reg,
		Origins:        []string{"http://localhost:3000"},
		Log:            log,
	})
	return &testServer{t: t, router: router, store: store}
}

func (s *testServer) token(id, first string) string {
	s.t.Helper()
	tok, err := auth.IssueToken(testSecret, models.UserIdentity{ID: id, FirstName: first}, time.Hour)
	require.NoError(s.t, err)
	return tok
}

func (s *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	s.t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[ErrorEnvelope](t, w).Error.Code
}

func sensualAnswers() map[string]string {
	return map[string]string{"1": "gentle", "2": "emotional", "3": "romantic", "4": "slowly", "5": "appreciation"}
}

func TestHealthAndMetrics(t *testing.T) {
	s := newTestServer(t)

	w := s.do(http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	health := decode[map[string]any](t, w)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, false, health["ai"])

	w = s.do(http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "blueprint_quiz_classifications_total")
}

func TestAPIRequiresAuth(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/api/memory", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBlueprintQuizFlow(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "Ada")

	w := s.do(http.MethodGet, "/api/blueprint/questions", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	qs := decode[struct {
		Questions []models.QuizQuestion `json:"questions"`
	}](t, w)
	assert.Len(t, qs.Questions, 5)

	w = s.do(http.MethodGet, "/api/blueprint", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "blueprint_not_found", errorCode(t, w))

	w = s.do(http.MethodPost, "/api/blueprint/submit", tok, map[string]any{"answers": sensualAnswers()})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	got := decode[struct {
		Profile models.BlueprintProfile `json:"profile"`
	}](t, w)
	assert.Equal(t, models.Sensual, got.Profile.PrimaryType)
	assert.Equal(t, 60, got.Profile.Scores.Sensual)

	w = s.do(http.MethodGet, "/api/blueprint", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/memory", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mem := decode[memoryResponse](t, w)
	assert.Equal(t, "Spiciness preference: 3/5, Blueprint: Sensual, Single/no partner linked", mem.Context)
}

func TestSubmitValidationErrors(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "Ada")

	incomplete := sensualAnswers()
	delete(incomplete, "3")
	w := s.do(http.MethodPost, "/api/blueprint/submit", tok, map[string]any{"answers": incomplete})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(blueprint.KindIncompleteSubmission), errorCode(t, w))

	unknown := sensualAnswers()
	unknown["2"] = "nope"
	w = s.do(http.MethodPost, "/api/blueprint/submit", tok, map[string]any{"answers": unknown})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, string(blueprint.KindUnknownOptionValue), errorCode(t, w))

	w = s.do(http.MethodPost, "/api/blueprint/submit", tok, "garbage")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid_request", errorCode(t, w))
}

func TestPreferencesMoodAndProfile(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "Ada")

	w := s.do(http.MethodPut, "/api/preferences/spiciness", tok, map[string]any{"level": 9})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, decode[memoryResponse](t, w).Memory.SpicinessLevel)

	w = s.do(http.MethodPut, "/api/preferences/spiciness", tok, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodPost, "/api/mood", tok, map[string]any{"mood": "playful", "libido": 12})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPut, "/api/profile", tok, map[string]any{"gender": "female", "identity": "queer"})
	require.Equal(t, http.StatusOK, w.Code)

	// a fresh load sees everything persisted
	w = s.do(http.MethodGet, "/api/memory", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t,
		"Gender: female, Identity: queer, Spiciness preference: 5/5, Single/no partner linked, Current mood: playful, libido: 10/10",
		decode[memoryResponse](t, w).Context)
}

func TestPartnerFlow(t *testing.T) {
	s := newTestServer(t)
	ada := s.token("u1", "Ada")
	ben := s.token("u2", "Ben")
	// make sure Ben exists before Ada's link resolves his name
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/memory", ben, nil).Code)

	w := s.do(http.MethodPost, "/api/partner/invite", ada, nil)
	require.Equal(t, http.StatusOK, w.Code)
	invite := decode[struct {
		Partner models.PartnerConnection `json:"partner"`
	}](t, w).Partner
	require.Len(t, invite.InviteCode, 6)

	w = s.do(http.MethodPost, "/api/partner/link", ada, map[string]any{"code": invite.InviteCode})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "self_link", errorCode(t, w))

	w = s.do(http.MethodPost, "/api/partner/link", ben, map[string]any{"code": "ZZZZZZ"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "invalid_invite", errorCode(t, w))

	w = s.do(http.MethodPut, "/api/partner/blueprint", ada, map[string]any{"primaryType": "kinky"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = s.do(http.MethodPost, "/api/partner/link", ben, map[string]any{"code": invite.InviteCode})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	cy := s.token("u3", "Cy")
	w = s.do(http.MethodPost, "/api/partner/invite", cy, nil)
	require.Equal(t, http.StatusOK, w.Code)
	other := decode[struct {
		Partner models.PartnerConnection `json:"partner"`
	}](t, w).Partner
	w = s.do(http.MethodPost, "/api/partner/link", ben, map[string]any{"code": other.InviteCode})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "already_linked", errorCode(t, w))

	w = s.do(http.MethodPut, "/api/partner/blueprint", ada, map[string]any{"primaryType": "kinky"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t,
		"Spiciness preference: 3/5, Partner: Ben (linked), Partner blueprint: Kinky (predicted)",
		decode[memoryResponse](t, w).Context)

	w = s.do(http.MethodPut, "/api/partner/blueprint", ada, map[string]any{"primaryType": "spicy"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(http.MethodDelete, "/api/partner/link", ben, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[memoryResponse](t, w).Memory.PartnerLinked)

	w = s.do(http.MethodGet, "/api/memory", ada, nil)
	mem := decode[memoryResponse](t, w)
	assert.False(t, mem.Memory.PartnerLinked)
	assert.Nil(t, mem.Memory.PartnerBlueprint)
}

func TestBoudoirFallback(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "Ada")

	w := s.do(http.MethodGet, "/api/boudoir/topics", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodPost, "/api/boudoir/generate", tok, map[string]any{"topic": "Massage", "spiciness": 2})
	require.Equal(t, http.StatusOK, w.Code)
	idea := decode[ideaResponse](t, w)
	assert.Equal(t, models.SourceFallback, idea.Source)
	assert.Equal(t, suggest.SelectFallback(2, "Massage"), idea.Idea)

	w = s.do(http.MethodPost, "/api/boudoir/generate", tok, map[string]any{"topic": " "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestionsLifecycle(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "Ada")

	w := s.do(http.MethodPost, "/api/suggestions/generate", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	gen := decode[struct {
		Suggestions []models.Suggestion `json:"suggestions"`
		Source      models.Source       `json:"source"`
	}](t, w)
	assert.Equal(t, models.SourceFallback, gen.Source)
	require.Len(t, gen.Suggestions, len(suggest.DefaultSuggestions()))
	assert.Equal(t, "general", gen.Suggestions[0].Category)

	id := gen.Suggestions[0].ID
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/suggestions/"+id+"/read", tok, nil).Code)
	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/suggestions/"+id+"/applied", tok, nil).Code)

	w = s.do(http.MethodPost, "/api/suggestions/missing/read", tok, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// another user cannot touch it
	other := s.token("u2", "Ben")
	assert.Equal(t, http.StatusNotFound, s.do(http.MethodPost, "/api/suggestions/"+id+"/read", other, nil).Code)

	w = s.do(http.MethodGet, "/api/suggestions", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[struct {
		Suggestions []models.Suggestion `json:"suggestions"`
	}](t, w).Suggestions
	var found bool
	for _, sg := range list {
		if sg.ID == id {
			found = true
			assert.True(t, sg.IsRead)
			assert.True(t, sg.IsApplied)
		}
	}
	assert.True(t, found)
}

func TestChatPersistsHistory(t *testing.T) {
	s := newTestServer(t)
	tok := s.token("u1", "Ada")

	w := s.do(http.MethodPost, "/api/chat", tok, map[string]any{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "empty_message", errorCode(t, w))

	w = s.do(http.MethodPost, "/api/chat", tok, map[string]any{"message": "How do we talk about desire?"})
	require.Equal(t, http.StatusOK, w.Code)
	reply := decode[chatResponse](t, w)
	assert.Equal(t, models.SourceFallback, reply.Source)
	assert.Equal(t, suggest.FallbackChatReply("How do we talk about desire?"), reply.Reply)

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, "/api/chat", tok, map[string]any{"message": "and then?"}).Code)

	history, err := s.store.RecentChat(t.Context(), "u1", 0)
	require.NoError(t, err)
	require.Len(t, history, 4)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, models.RoleAssistant, history[3].Role)
}

func TestA2AMounted(t *testing.T) {
	s := newTestServer(t)
	w := s.do(http.MethodGet, "/.well-known/agent.json", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://test/a2a/companion", decode[a2a.AgentCard](t, w).URL)
}
