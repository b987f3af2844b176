// Package model defines the journal entry record, its closed set of
// variants, and the factory that builds validated entries from raw
// device payloads.
package model

import "time"

// EntryType selects one variant of the closed entry set.
type EntryType string

const (
	TypeVision           EntryType = "vision"
	TypeMagicCamera      EntryType = "magic-camera"
	TypeAIGeneratedImage EntryType = "ai-generated-image"
	TypeNote             EntryType = "note"
	TypeConversation     EntryType = "conversation"
	TypeSearch           EntryType = "search"
	TypeSearchMemory     EntryType = "search-memory"
)

// aliasBetaRabbit is an alternate wire name for conversation entries.
const aliasBetaRabbit = "beta-rabbit"

// ParseEntryType maps a wire type string to its variant, normalizing
// the beta-rabbit alias to conversation.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(s) {
	case TypeVision, TypeMagicCamera, TypeAIGeneratedImage,
		TypeNote, TypeConversation, TypeSearch, TypeSearchMemory:
		return EntryType(s), nil
	}
	if s == aliasBetaRabbit {
		return TypeConversation, nil
	}
	return "", UnknownEntryTypeError{Type: s}
}

// Entry is an immutable, validated journal record. It is read-only
// after insertion into the journal.
type Entry struct {
	ID         string            `json:"_id"`
	UserID     string            `json:"userId"`
	CreatedOn  time.Time         `json:"createdOn"`
	ModifiedOn time.Time         `json:"modifiedOn"`
	Archived   bool              `json:"archived"`
	Type       EntryType         `json:"type"`
	Title      string            `json:"title"`
	Data       map[string]any    `json:"data"`
	Utterance  map[string]string `json:"utterance"`
}

// Prompt returns the user utterance text, or "" when absent.
func (e *Entry) Prompt() string {
	return e.Utterance["prompt"]
}

// ResourceURLs returns the ordered remote resource URLs referenced by
// the entry. Only the media-bearing variants carry resources; missing
// nested structure yields an empty result, never an error.
func (e *Entry) ResourceURLs() []string {
	switch e.Type {
	case TypeVision:
		return fileURLs(e.Data, "visionData", "files")
	case TypeMagicCamera:
		return fileURLs(e.Data, "magicCameraData", "aiGeneratedImages")
	case TypeAIGeneratedImage:
		return fileURLs(e.Data, "aiGeneratedImageData", "files")
	default:
		return nil
	}
}

// fileURLs walks data[section][listKey] collecting each descriptor's
// optional url. Descriptors without a url are skipped.
func fileURLs(data map[string]any, section, listKey string) []string {
	sec, ok := data[section].(map[string]any)
	if !ok {
		return nil
	}
	items, ok := sec[listKey].([]any)
	if !ok {
		return nil
	}
	var urls []string
	for _, it := range items {
		desc, ok := it.(map[string]any)
		if !ok {
			continue
		}
		if u, ok := desc["url"].(string); ok && u != "" {
			urls = append(urls, u)
		}
	}
	return urls
}
