package suggest

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"
)

// parseSuggestionList extracts a list of suggestion strings from model
// output. Both {"suggestions": [...]} and a bare array are accepted, and
// truncated or fenced JSON is repaired first.
func parseSuggestionList(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")

	start := strings.IndexAny(raw, "[{")
	if start == -1 {
		return nil, fmt.Errorf("no JSON found in response")
	}
	fixed, err := jsonrepair.JSONRepair(raw[start:])
	if err != nil {
		return nil, fmt.Errorf("repair suggestion JSON: %w", err)
	}

	var list []string
	var obj struct {
		Suggestions []string `json:"suggestions"`
	}
	if err := json.Unmarshal([]byte(fixed), &obj); err == nil {
		list = obj.Suggestions
	} else if err := json.Unmarshal([]byte(fixed), &list); err != nil {
		return nil, fmt.Errorf("parse suggestion JSON: %w", err)
	}

	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no suggestions in response")
	}
	return out, nil
}
