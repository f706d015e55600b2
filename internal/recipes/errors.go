package recipes

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the requested recipe id does not exist.
var ErrNotFound = errors.New("recipes: recipe not found")

// FieldError describes one rejected input field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every offending field from an input, not just the
// first one, so callers can surface a complete fix list.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, field := range e.Fields {
		parts[i] = fmt.Sprintf("%s: %s", field.Field, field.Reason)
	}
	return "recipes: invalid input: " + strings.Join(parts, "; ")
}

// VersionRangeError is returned when a version number falls outside
// [1, currentVersion].
type VersionRangeError struct {
	Version int
	Current int
}

func (e *VersionRangeError) Error() string {
	return fmt.Sprintf("recipes: version %d outside valid range [1, %d]", e.Version, e.Current)
}

// IntegrityError signals store corruption: a heritage cycle, a head
// pointing at a missing version, or a dangling parent pointer. It is fatal
// and must propagate to the caller unmodified.
type IntegrityError struct {
	RecipeID uint
	Reason   string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("recipes: integrity violation on recipe %d: %s", e.RecipeID, e.Reason)
}
