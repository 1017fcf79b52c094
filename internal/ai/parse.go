package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("no valid json in model reply")

// ExtractJSON pulls the JSON payload out of a free-form model reply. A fenced
// block labeled json wins, then the first fenced block of any kind, then the
// raw text itself. ErrNoJSON when the winning candidate does not parse.
func ExtractJSON(text string) (json.RawMessage, error) {
	candidate := strings.TrimSpace(text)

	if i := strings.Index(text, "```json"); i >= 0 {
		rest := text[i+len("```json"):]
		if j := strings.Index(rest, "```"); j >= 0 {
			candidate = strings.TrimSpace(rest[:j])
		}
	} else if i := strings.Index(text, "```"); i >= 0 {
		rest := text[i+3:]
		if j := strings.Index(rest, "```"); j >= 0 {
			candidate = strings.TrimSpace(rest[:j])
		}
	}

	if !json.Valid([]byte(candidate)) {
		return nil, ErrNoJSON
	}

	return json.RawMessage(candidate), nil
}
