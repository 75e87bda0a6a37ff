package a2a

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/suggest"
)

type fakeChat struct {
	mem     models.UserMemoryContext
	history []models.ChatMessage
	message string
}

func (f *fakeChat) Chat(_ context.Context, mem models.UserMemoryContext, history []models.ChatMessage, message string) suggest.Result {
	f.mem, f.history, f.message = mem, history, message
	return suggest.Result{Text: "reply to " + message, Source: models.SourceAI}
}

type fakeLoader struct {
	mem    models.UserMemoryContext
	err    error
	loaded []string
}

func (f *fakeLoader) Load(_ context.Context, userID string) (models.UserMemoryContext, error) {
	f.loaded = append(f.loaded, userID)
	return f.mem, f.err
}

const testSecret = "a2a-test-secret"

func newTestRouter(chat Chatter, loader MemoryLoader) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(chat, loader, DefaultCard("http://localhost:8080"), logger.Nop())
	mw := auth.NewMiddleware(testSecret, nil, logger.Nop())
	r := gin.New()
	r.GET("/.well-known/agent.json", h.ServeAgentCard)
	r.POST("/a2a/companion", mw.OptionalAuth(), h.HandleMessage)
	return r
}

func tokenFor(t *testing.T, secret, userID string) string {
	t.Helper()
	tok, err := auth.IssueToken(secret, models.UserIdentity{ID: userID}, time.Hour)
	require.NoError(t, err)
	return tok
}

func post(t *testing.T, r http.Handler, body string) JSONRPCResponse {
	t.Helper()
	return postAs(t, r, "", body)
}

func postAs(t *testing.T, r http.Handler, token, body string) JSONRPCResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/a2a/companion", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp JSONRPCResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func taskOf(t *testing.T, resp JSONRPCResponse) TaskResult {
	t.Helper()
	require.Nil(t, resp.Error)
	raw, err := json.Marshal(resp.Result)
	require.NoError(t, err)
	var task TaskResult
	require.NoError(t, json.Unmarshal(raw, &task))
	return task
}

func TestServeAgentCard(t *testing.T) {
	r := newTestRouter(&fakeChat{}, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/.well-known/agent.json", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var card AgentCard
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &card))
	assert.Equal(t, "http://localhost:8080/a2a/companion", card.URL)
	require.Len(t, card.Skills, 1)
}

func TestMessageSendPersonalized(t *testing.T) {
	chat := &fakeChat{}
	loader := &fakeLoader{mem: models.UserMemoryContext{UserID: "u1", SpicinessLevel: 4}}
	r := newTestRouter(chat, loader)

	resp := postAs(t, r, tokenFor(t, testSecret, "u1"), `{
		"jsonrpc": "2.0", "id": 7, "method": "message/send",
		"params": {"message": {"kind": "message", "role": "user", "taskId": "t-1", "parts": [
			{"kind": "text", "text": "<p>How do we slow down?</p>"}
		]}}
	}`)
	assert.Equal(t, "7", string(resp.ID))

	task := taskOf(t, resp)
	assert.Equal(t, "t-1", task.ID)
	assert.Equal(t, StateCompleted, task.Status.State)
	require.NotNil(t, task.Status.Message)
	require.NotNil(t, task.Status.Message.TaskID)
	assert.Equal(t, "t-1", *task.Status.Message.TaskID)
	assert.Equal(t, "reply to How do we slow down?", task.Status.Message.Parts[0].Text)
	require.Len(t, task.Artifacts, 1)

	assert.Equal(t, []string{"u1"}, loader.loaded)
	assert.Equal(t, "u1", chat.mem.UserID)
	assert.Equal(t, 4, chat.mem.SpicinessLevel)
}

func TestBodyUserIDIsNotTrusted(t *testing.T) {
	body := `{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"parts":[
		{"kind":"text","text":"what do you know about me?"},{"kind":"data","data":{"userId":"victim"}}]}}}`

	for name, token := range map[string]string{
		"no token":     "",
		"forged token": tokenFor(t, "wrong-secret", "victim"),
	} {
		t.Run(name, func(t *testing.T) {
			chat := &fakeChat{}
			loader := &fakeLoader{mem: models.UserMemoryContext{UserID: "victim", Gender: "female"}}
			r := newTestRouter(chat, loader)

			task := taskOf(t, postAs(t, r, token, body))
			assert.Equal(t, StateCompleted, task.Status.State)
			assert.Empty(t, loader.loaded)
			assert.Empty(t, chat.mem.UserID)
			assert.Empty(t, chat.mem.Gender)
			assert.Equal(t, "what do you know about me?", chat.message)
		})
	}
}

func TestMessageSendHistoryDataPart(t *testing.T) {
	chat := &fakeChat{}
	r := newTestRouter(chat, nil)

	resp := post(t, r, `{
		"jsonrpc": "2.0", "id": "a", "method": "message/send",
		"params": {"message": {"role": "user", "parts": [
			{"kind": "data", "data": [
				{"kind": "text", "text": "first question"},
				{"kind": "text", "text": "latest question"}
			]}
		]}}
	}`)
	task := taskOf(t, resp)
	assert.Equal(t, StateCompleted, task.Status.State)
	assert.Equal(t, "latest question", chat.message)
	require.Len(t, chat.history, 1)
	assert.Equal(t, "first question", chat.history[0].Content)
	assert.Equal(t, models.DefaultSpiciness, chat.mem.SpicinessLevel)
}

func TestLoaderFailureStillAnswers(t *testing.T) {
	chat := &fakeChat{}
	r := newTestRouter(chat, &fakeLoader{err: errors.New("db down")})

	resp := postAs(t, r, tokenFor(t, testSecret, "u1"),
		`{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"hi"}]}}}`)
	task := taskOf(t, resp)
	assert.Equal(t, StateCompleted, task.Status.State)
	assert.Empty(t, chat.mem.UserID)
}

func TestEmptyMessageFailsTask(t *testing.T) {
	r := newTestRouter(&fakeChat{}, nil)
	resp := post(t, r, `{"jsonrpc":"2.0","id":1,"method":"message/send","params":{"message":{"parts":[{"kind":"text","text":"  "}]}}}`)
	task := taskOf(t, resp)
	assert.Equal(t, StateFailed, task.Status.State)
}

func TestRPCErrors(t *testing.T) {
	r := newTestRouter(&fakeChat{}, nil)

	resp := post(t, r, `{"jsonrpc":"1.0","id":1,"method":"message/send","params":{}}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeInvalidRequest, resp.Error.Code)

	resp = post(t, r, `{"jsonrpc":"2.0","id":1,"method":"tasks/cancel","params":{}}`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeMethodNotFound, resp.Error.Code)

	resp = post(t, r, `not json`)
	require.NotNil(t, resp.Error)
	assert.Equal(t, CodeParseError, resp.Error.Code)
}

func TestDirectMessageWithoutEnvelope(t *testing.T) {
	chat := &fakeChat{}
	r := newTestRouter(chat, nil)
	resp := post(t, r, `{"message":{"parts":[{"kind":"text","text":"hello"}]}}`)
	task := taskOf(t, resp)
	assert.Equal(t, StateCompleted, task.Status.State)
	assert.Equal(t, "hello", chat.message)
}
