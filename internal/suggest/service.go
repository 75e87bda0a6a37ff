package suggest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/cache"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/metrics"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
)

const (
	DefaultTimeout = 20 * time.Second
	// ChatHistoryLimit is how many earlier messages are replayed to the model.
	ChatHistoryLimit = 5
)

// Completer is the AI completion collaborator.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Cache stores generated content by namespace and key.
type Cache interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
}

// Result is generated text plus where it came from.
type Result struct {
	Text   string        `json:"text"`
	Source models.Source `json:"source"`
}

// Service wraps the AI collaborator with timeouts, caching and fallbacks.
// None of its methods fail: when the AI path errors, times out or is not
// configured, canned content is returned instead.
type Service struct {
	ai      Completer
	cache   Cache
	metrics *metrics.Recorder
	log     *logger.Logger
	timeout time.Duration
}

type Options struct {
	// AI may be nil, in which case every call is served from fallbacks.
	AI      Completer
	Cache   Cache
	Metrics *metrics.Recorder
	Timeout time.Duration
}

func NewService(opts Options, baseLog *logger.Logger) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Service{
		ai:      opts.AI,
		cache:   opts.Cache,
		metrics: opts.Metrics,
		log:     baseLog.With("service", "SuggestService"),
		timeout: opts.Timeout,
	}
}

// Enabled reports whether an AI collaborator is configured.
func (s *Service) Enabled() bool { return s.ai != nil }

type IdeaRequest struct {
	Topic string
	// Spiciness overrides the memory's level when non-zero.
	Spiciness int
	Memory    models.UserMemoryContext
}

// GenerateIdea produces one boudoir idea for the topic.
func (s *Service) GenerateIdea(ctx context.Context, req IdeaRequest) Result {
	spiciness := req.Spiciness
	if spiciness == 0 {
		spiciness = req.Memory.SpicinessLevel
	}
	spiciness = models.ClampSpiciness(spiciness)
	topic := strings.TrimSpace(req.Topic)

	mem := req.Memory
	mem.SpicinessLevel = spiciness
	prompt := ideaPrompt(topic, spiciness, mem)
	key := cache.Key(ideaSystemPrompt, prompt)
	if text, ok := s.cached(ctx, "idea", key); ok {
		return Result{Text: text, Source: models.SourceCache}
	}

	text, err := s.complete(ctx, "idea", CompletionRequest{
		System:      ideaSystemPrompt,
		Prompt:      prompt,
		Temperature: 0.8,
		MaxTokens:   200,
	})
	if err != nil {
		s.metrics.Fallback("idea")
		return Result{Text: SelectFallback(spiciness, topic), Source: models.SourceFallback}
	}
	s.store(ctx, "idea", key, text)
	return Result{Text: text, Source: models.SourceAI}
}

// GenerateSuggestions produces a short list of personalized suggestions.
func (s *Service) GenerateSuggestions(ctx context.Context, mem models.UserMemoryContext) ([]string, models.Source) {
	prompt := suggestionsPrompt(mem)
	key := cache.Key(suggestionsSystemPrompt, prompt)
	if raw, ok := s.cached(ctx, "suggestions", key); ok {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil && len(list) > 0 {
			return list, models.SourceCache
		}
	}

	raw, err := s.complete(ctx, "suggestions", CompletionRequest{
		System:    suggestionsSystemPrompt,
		Prompt:    prompt,
		MaxTokens: 300,
		JSON:      true,
	})
	if err == nil {
		list, perr := parseSuggestionList(raw)
		if perr == nil {
			if encoded, merr := json.Marshal(list); merr == nil {
				s.store(ctx, "suggestions", key, string(encoded))
			}
			return list, models.SourceAI
		}
		s.log.Warn("unparseable suggestion list", "error", perr, "response_len", len(raw))
	}
	s.metrics.Fallback("suggestions")
	return DefaultSuggestions(), models.SourceFallback
}

// Chat answers message as the assistant. Only the most recent history
// messages are replayed. Chat replies are never cached.
func (s *Service) Chat(ctx context.Context, mem models.UserMemoryContext, history []models.ChatMessage, message string) Result {
	if len(history) > ChatHistoryLimit {
		history = history[len(history)-ChatHistoryLimit:]
	}
	text, err := s.complete(ctx, "chat", CompletionRequest{
		System:      chatSystemPrompt(mem),
		History:     history,
		Prompt:      message,
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		s.metrics.Fallback("chat")
		return Result{Text: FallbackChatReply(message), Source: models.SourceFallback}
	}
	return Result{Text: text, Source: models.SourceAI}
}

func (s *Service) complete(ctx context.Context, feature string, req CompletionRequest) (string, error) {
	if s.ai == nil {
		return "", errNotConfigured
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	text, err := s.ai.Complete(ctx, req)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errEmptyResponse
	}
	s.metrics.AICall(feature, err)
	if err != nil {
		s.log.Warn("ai completion failed, using fallback", "feature", feature, "error", err, "elapsed", time.Since(start))
		return "", err
	}
	s.log.Debug("ai completion", "feature", feature, "elapsed", time.Since(start), "response_len", len(text))
	return strings.TrimSpace(text), nil
}

func (s *Service) cached(ctx context.Context, namespace, key string) (string, bool) {
	if s.cache == nil {
		return "", false
	}
	val, ok, err := s.cache.Get(ctx, namespace, key)
	if err != nil {
		s.log.Warn("cache lookup failed", "namespace", namespace, "error", err)
		return "", false
	}
	s.metrics.CacheLookup(ok)
	return val, ok
}

func (s *Service) store(ctx context.Context, namespace, key, value string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, namespace, key, value); err != nil {
		s.log.Warn("cache store failed", "namespace", namespace, "error", err)
	}
}
