package a2a

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/platform/logger"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/suggest"
)

const maxBodyBytes = 1 << 20

// Chatter answers a message for a user's memory.
type Chatter interface {
	Chat(ctx context.Context, mem models.UserMemoryContext, history []models.ChatMessage, message string) suggest.Result
}

// MemoryLoader rebuilds a user's memory for personalization.
type MemoryLoader interface {
	Load(ctx context.Context, userID string) (models.UserMemoryContext, error)
}

type Handler struct {
	chat   Chatter
	loader MemoryLoader
	card   AgentCard
	log    *logger.Logger
}

// NewHandler builds the A2A endpoint. loader may be nil, in which case every
// message is answered without personalization.
func NewHandler(chat Chatter, loader MemoryLoader, card AgentCard, baseLog *logger.Logger) *Handler {
	return &Handler{chat: chat, loader: loader, card: card, log: baseLog.With("handler", "A2AHandler")}
}

func (h *Handler) ServeAgentCard(c *gin.Context) {
	c.JSON(http.StatusOK, h.card)
}

// HandleMessage processes JSON-RPC "message/send" requests. Bare
// MessageParams bodies without the JSON-RPC wrapper are accepted too.
// Replies are personalized only for the user of a verified bearer token.
func (h *Handler) HandleMessage(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		h.log.Warn("read request body failed", "error", err)
		h.sendError(c, nil, "Failed to read request body", CodeParseError)
		return
	}
	h.log.Debug("a2a request", "body_len", len(body))

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(body, &rpcReq); err != nil || rpcReq.Method == "" {
		h.handleDirectMessage(c, body)
		return
	}
	if rpcReq.JSONRPC != "2.0" {
		h.log.Warn("invalid JSON-RPC version", "version", rpcReq.JSONRPC)
		h.sendError(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "message/send", "agent/task":
		var params MessageParams
		if err := json.Unmarshal(rpcReq.Params, &params); err != nil {
			h.log.Warn("invalid params", "error", err)
			h.sendError(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
			return
		}
		h.sendResult(c, rpcReq.ID, h.reply(c.Request.Context(), auth.UserID(c), params.Message))
	default:
		h.log.Warn("unknown method", "method", rpcReq.Method)
		h.sendError(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

func (h *Handler) handleDirectMessage(c *gin.Context, body []byte) {
	var params MessageParams
	if err := json.Unmarshal(body, &params); err != nil || len(params.Message.Parts) == 0 {
		h.sendError(c, nil, "Invalid request format", CodeParseError)
		return
	}
	h.sendResult(c, nil, h.reply(c.Request.Context(), auth.UserID(c), params.Message))
}

// reply runs one chat turn and wraps it in a task.
func (h *Handler) reply(ctx context.Context, userID string, msg Message) TaskResult {
	taskID := uuid.NewString()
	if msg.TaskID != nil && *msg.TaskID != "" {
		taskID = *msg.TaskID
	}
	contextID := taskID
	if msg.ContextID != nil && *msg.ContextID != "" {
		contextID = *msg.ContextID
	}

	in := extractInput(msg)
	if in.text == "" {
		return failedTask(taskID, contextID, "Please send a message for the companion to answer.")
	}

	mem := h.memory(ctx, userID)
	res := h.chat.Chat(ctx, mem, in.history, in.text)
	h.log.Info("a2a reply", "task_id", taskID, "personalized", mem.UserID != "", "source", res.Source)
	return completedTask(taskID, contextID, res.Text)
}

func (h *Handler) memory(ctx context.Context, userID string) models.UserMemoryContext {
	anon := models.UserMemoryContext{SpicinessLevel: models.DefaultSpiciness}
	if userID == "" || h.loader == nil {
		return anon
	}
	mem, err := h.loader.Load(ctx, userID)
	if err != nil {
		h.log.Warn("load memory failed, answering without personalization", "user_id", userID, "error", err)
		return anon
	}
	return mem
}

type input struct {
	text    string
	history []models.ChatMessage
}

// extractInput collects the user's text and earlier turns from an array
// data part. Object data parts are ignored.
func extractInput(msg Message) input {
	var in input
	var texts []string
	for _, part := range msg.Parts {
		switch part.Kind {
		case "text":
			if t := cleanText(part.Text); t != "" {
				texts = append(texts, t)
			}
		case "data":
			if len(part.Data) == 0 {
				continue
			}
			var items []MessagePart
			if err := json.Unmarshal(part.Data, &items); err == nil {
				for _, item := range items {
					if item.Kind != "text" {
						continue
					}
					if t := cleanText(item.Text); t != "" {
						in.history = append(in.history, models.ChatMessage{Role: models.RoleUser, Content: t})
					}
				}
			}
		}
	}
	in.text = strings.TrimSpace(strings.Join(texts, " "))
	// with no text part, the newest history entry is the message
	if in.text == "" && len(in.history) > 0 {
		last := len(in.history) - 1
		in.text = in.history[last].Content
		in.history = in.history[:last]
	}
	return in
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, "<p>", "")
	s = strings.ReplaceAll(s, "</p>", "")
	return strings.TrimSpace(s)
}

func completedTask(taskID, contextID, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message: &Message{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    &taskID,
				Parts:     []MessagePart{TextPart(text)},
			},
		},
		Artifacts: []Artifact{{
			ArtifactID: uuid.NewString(),
			Name:       "Companion Reply",
			Parts:      []MessagePart{TextPart(text)},
		}},
	}
}

func failedTask(taskID, contextID, errorMsg string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: contextID,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message: &Message{
				Kind:      "message",
				Role:      RoleAgent,
				MessageID: uuid.NewString(),
				TaskID:    &taskID,
				Parts:     []MessagePart{TextPart(errorMsg)},
			},
		},
	}
}

func (h *Handler) sendResult(c *gin.Context, id json.RawMessage, result TaskResult) {
	c.JSON(http.StatusOK, JSONRPCResponse{JSONRPC: "2.0", ID: id, Result: result})
}

// JSON-RPC errors are sent with 200 OK.
func (h *Handler) sendError(c *gin.Context, id json.RawMessage, message string, code int) {
	h.log.Debug("a2a rpc error", "code", code, "message", message)
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   &RPCError{Code: code, Message: message},
	})
}
