package model

import (
	"time"

	"github.com/google/uuid"
)

// timestampLayouts are tried in order when parsing entry timestamps.
// RFC 3339 covers the Z suffix and numeric offsets; the second layout
// accepts zone-less ISO-8601 text, interpreted as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// Parse validates a raw device payload and returns the typed entry.
// Validation order: required fields, timestamp parse, variant
// selection. Unknown top-level keys in the payload are ignored.
func Parse(raw map[string]any) (*Entry, error) {
	typeStr, err := requireString(raw, "type")
	if err != nil {
		return nil, err
	}
	userID, err := requireString(raw, "userId")
	if err != nil {
		return nil, err
	}
	title, err := requireString(raw, "title")
	if err != nil {
		return nil, err
	}

	archived, ok := raw["archived"].(bool)
	if !ok {
		if _, present := raw["archived"]; !present {
			return nil, NewValidationError("archived", "field is required")
		}
		return nil, NewValidationError("archived", "must be a boolean")
	}

	createdOn, err := parseTimestamp(raw, "createdOn")
	if err != nil {
		return nil, err
	}
	modifiedOn, err := parseTimestamp(raw, "modifiedOn")
	if err != nil {
		return nil, err
	}

	data, err := requireObject(raw, "data")
	if err != nil {
		return nil, err
	}
	utterance, err := parseUtterance(raw)
	if err != nil {
		return nil, err
	}

	// Variant selection happens last so field problems surface before
	// an unknown type does.
	et, err := ParseEntryType(typeStr)
	if err != nil {
		return nil, err
	}

	id := stringOr(raw, "_id", stringOr(raw, "id", ""))
	if id == "" {
		id = uuid.NewString()
	}

	return &Entry{
		ID:         id,
		UserID:     userID,
		CreatedOn:  createdOn,
		ModifiedOn: modifiedOn,
		Archived:   archived,
		Type:       et,
		Title:      title,
		Data:       data,
		Utterance:  utterance,
	}, nil
}

// BasicPayload builds a minimal conversation-shaped payload from free
// text. The result goes through the same Parse path as device
// payloads; there is no validation bypass.
func BasicPayload(userInput string) map[string]any {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	return map[string]any{
		"_id":        uuid.NewString(),
		"userId":     "local_user",
		"createdOn":  now,
		"modifiedOn": now,
		"archived":   false,
		"type":       string(TypeConversation),
		"title":      "CLI Input",
		"data": map[string]any{
			"conversationData": map[string]any{"textContent": ""},
		},
		"utterance": map[string]any{
			"prompt":    userInput,
			"intention": "CONVERSATION",
		},
	}
}

func requireString(raw map[string]any, field string) (string, error) {
	v, present := raw[field]
	if !present {
		return "", NewValidationError(field, "field is required")
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", NewValidationError(field, "must be a non-empty string")
	}
	return s, nil
}

func requireObject(raw map[string]any, field string) (map[string]any, error) {
	v, present := raw[field]
	if !present {
		return nil, NewValidationError(field, "field is required")
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, NewValidationError(field, "must be an object")
	}
	return m, nil
}

func parseTimestamp(raw map[string]any, field string) (time.Time, error) {
	v, present := raw[field]
	if !present {
		return time.Time{}, NewValidationError(field, "field is required")
	}
	s, ok := v.(string)
	if !ok {
		return time.Time{}, NewValidationError(field, "must be an ISO-8601 string")
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			if layout == time.RFC3339 {
				return ts, nil
			}
			return ts.UTC(), nil
		}
	}
	return time.Time{}, InvalidTimestampError{Field: field, Value: s}
}

func parseUtterance(raw map[string]any) (map[string]string, error) {
	obj, err := requireObject(raw, "utterance")
	if err != nil {
		return nil, err
	}
	out := make(map[string]string, len(obj))
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			return nil, NewValidationError("utterance", "values must be strings")
		}
		out[k] = s
	}
	if _, ok := out["prompt"]; !ok {
		return nil, NewValidationError("utterance", "prompt is required")
	}
	if _, ok := out["intention"]; !ok {
		return nil, NewValidationError("utterance", "intention is required")
	}
	return out, nil
}

func stringOr(raw map[string]any, field, fallback string) string {
	if s, ok := raw[field].(string); ok && s != "" {
		return s
	}
	return fallback
}
