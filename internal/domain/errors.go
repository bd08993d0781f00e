package domain

import "strings"

// ValidationError reports every rule an input violated, not just the first.
// The API layer renders the joined list as a 400 response.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}

// violations collects rule failures during validation.
type violations []string

func (v *violations) add(msg string) { *v = append(*v, msg) }

// err returns nil when nothing was violated, otherwise a *ValidationError.
func (v violations) err() error {
	if len(v) == 0 {
		return nil
	}
	return &ValidationError{Violations: v}
}
