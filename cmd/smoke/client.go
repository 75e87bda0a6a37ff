package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/BerylCAtieno/blueprint-companion-agent/internal/auth"
	"github.com/BerylCAtieno/blueprint-companion-agent/internal/models"
)

type clientOptions struct {
	baseURL string
	secret  string
	userID  string
	timeout time.Duration
}

type client struct {
	baseURL string
	token   string
	http    *http.Client
}

func newClient(opts *clientOptions) (*client, error) {
	token, err := auth.IssueToken(opts.secret, models.UserIdentity{ID: opts.userID, FirstName: "Smoke"}, time.Hour)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &client{
		baseURL: strings.TrimRight(opts.baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: opts.timeout},
	}, nil
}

// do sends body as JSON and decodes a 200 response into out.
func (c *client) do(method, path string, authed bool, body, out interface{}) error {
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	fmt.Printf("  %s %s\n", method, req.URL)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("expected status 200, got %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("invalid JSON response: %w", err)
	}
	return nil
}

func (c *client) checkHealth() error {
	var health struct {
		Status   string `json:"status"`
		Database string `json:"database"`
		AI       bool   `json:"ai"`
	}
	if err := c.do(http.MethodGet, "/health", false, nil, &health); err != nil {
		return err
	}
	if health.Status != "ok" {
		return fmt.Errorf("expected status ok, got %q", health.Status)
	}
	if !health.AI {
		note("AI disabled: responses will come from fallback content")
	}
	return nil
}

func (c *client) checkAgentCard() error {
	var card map[string]interface{}
	if err := c.do(http.MethodGet, "/.well-known/agent.json", false, nil, &card); err != nil {
		return err
	}
	for _, field := range []string{"name", "description", "url", "version", "capabilities", "skills"} {
		if _, ok := card[field]; !ok {
			return fmt.Errorf("agent card missing field %q", field)
		}
	}
	return nil
}

func (c *client) questions() ([]models.QuizQuestion, error) {
	var resp struct {
		Questions []models.QuizQuestion `json:"questions"`
	}
	if err := c.do(http.MethodGet, "/api/blueprint/questions", true, nil, &resp); err != nil {
		return nil, err
	}
	if len(resp.Questions) == 0 {
		return nil, fmt.Errorf("no questions returned")
	}
	return resp.Questions, nil
}

func (c *client) checkQuestions() error {
	qs, err := c.questions()
	if err != nil {
		return err
	}
	note("%d questions", len(qs))
	return nil
}

// checkQuiz answers every question with its first option and checks the
// stored profile matches.
func (c *client) checkQuiz() error {
	qs, err := c.questions()
	if err != nil {
		return err
	}
	answers := make(map[int]string, len(qs))
	for _, q := range qs {
		answers[q.ID] = q.Options[0].Value
	}
	var submitted struct {
		Profile models.BlueprintProfile `json:"profile"`
	}
	if err := c.do(http.MethodPost, "/api/blueprint/submit", true, map[string]interface{}{"answers": answers}, &submitted); err != nil {
		return err
	}
	var stored struct {
		Profile models.BlueprintProfile `json:"profile"`
	}
	if err := c.do(http.MethodGet, "/api/blueprint", true, nil, &stored); err != nil {
		return err
	}
	if stored.Profile.PrimaryType != submitted.Profile.PrimaryType {
		return fmt.Errorf("stored type %s, submitted %s", stored.Profile.PrimaryType, submitted.Profile.PrimaryType)
	}
	note("primary type %s, scores %+v", submitted.Profile.PrimaryType, submitted.Profile.Scores)
	return nil
}

func (c *client) checkChat() error {
	var resp struct {
		Reply  string        `json:"reply"`
		Source models.Source `json:"source"`
	}
	body := map[string]string{"message": "How can we reconnect after a busy week?"}
	if err := c.do(http.MethodPost, "/api/chat", true, body, &resp); err != nil {
		return err
	}
	if strings.TrimSpace(resp.Reply) == "" {
		return fmt.Errorf("empty reply")
	}
	note("[%s] %s", resp.Source, resp.Reply)
	return nil
}

func (c *client) checkA2A() error {
	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      uuid.NewString(),
		"method":  "message/send",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind": "message",
				"role": "user",
				"parts": []map[string]interface{}{
					{"kind": "text", "text": "Any ideas for a slow evening together?"},
				},
			},
			"configuration": map[string]interface{}{"blocking": true},
		},
	}
	var resp struct {
		Error  *struct{ Message string } `json:"error"`
		Result struct {
			Status struct {
				State   string `json:"state"`
				Message struct {
					Parts []struct {
						Text string `json:"text"`
					} `json:"parts"`
				} `json:"message"`
			} `json:"status"`
		} `json:"result"`
	}
	if err := c.do(http.MethodPost, "/a2a/companion", true, request, &resp); err != nil {
		return err
	}
	if resp.Error != nil {
		return fmt.Errorf("rpc error: %s", resp.Error.Message)
	}
	if resp.Result.Status.State != "completed" {
		return fmt.Errorf("expected state completed, got %q", resp.Result.Status.State)
	}
	for _, p := range resp.Result.Status.Message.Parts {
		note("%s", p.Text)
	}
	return nil
}
