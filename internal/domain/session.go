package domain

import (
	"strings"
	"unicode"
)

// Snapshot is an immutable copy of the capture session handed to presenters
type Snapshot struct {
	Affordances        Affordances
	CameraType         CameraType
	HUDVisible         bool
	LastStats          Stats
	MapNodes           int
	MenuOpen           bool
	OpenedDatabasePath string
	PendingJob         *JobKind
	State              CaptureState
	TotalLoopClosures  int
	ViewMode           ViewMode
}

// HasOpenedDatabase reports whether the map came from a saved database
func (s Snapshot) HasOpenedDatabase() bool {
	return s.OpenedDatabasePath != ""
}

// PromptKind distinguishes choice prompts from text input prompts
type PromptKind int

const (
	PromptChoice PromptKind = iota
	PromptInput
)

// Prompt is a modal question shown to the user. Answers come back through
// the session using the prompt ID.
type Prompt struct {
	Choices []string
	Default string
	ID      string
	Kind    PromptKind
	Message string
	Title   string
}

// SanitizeScanName converts a display name to a file-system safe scan name.
// - Letters, digits, hyphens, underscores and periods are kept
// - Spaces, parentheses and slashes become underscores (consecutive ones collapsed)
// - Everything else is removed
func SanitizeScanName(displayName string) string {
	var result strings.Builder
	lastWasUnderscore := false

	for _, r := range displayName {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '.' {
			result.WriteRune(r)
			lastWasUnderscore = false
		} else if r == '_' {
			result.WriteRune('_')
			lastWasUnderscore = true
		} else if unicode.IsSpace(r) || r == '(' || r == ')' || r == '/' {
			if !lastWasUnderscore && result.Len() > 0 {
				result.WriteRune('_')
				lastWasUnderscore = true
			}
		}
	}

	// Trim trailing separators and a trailing .db the user may have typed
	name := strings.TrimRight(result.String(), "_.")
	name = strings.TrimSuffix(name, DatabaseExt)
	return strings.TrimRight(name, "_.")
}
