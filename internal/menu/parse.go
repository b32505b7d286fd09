package menu

import (
	"encoding/json"
	"fmt"
	"strings"
)

// parseSuggestion decodes the model's reply, tolerating markdown code
// fences around the JSON body.
func parseSuggestion(text string) (*Suggestion, error) {
	payload := stripFences(text)
	if payload == "" {
		return nil, fmt.Errorf("empty response")
	}

	var suggestion Suggestion
	if err := json.Unmarshal([]byte(payload), &suggestion); err != nil {
		return nil, fmt.Errorf("unmarshalling response: %w", err)
	}
	if len(suggestion.MenuItems) == 0 {
		return nil, fmt.Errorf("response contains no menu items")
	}
	return &suggestion, nil
}

func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
