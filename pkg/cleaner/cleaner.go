// Package cleaner defines the interface shared by text cleaners and small
// helpers for composing them.
package cleaner

// Cleaner turns arbitrary input into cleaned text. Implementations never
// fail: malformed input produces an imperfect but safe string.
type Cleaner interface {
	// Clean converts v to text (see Text) and cleans it.
	Clean(v any) string

	// Name returns the cleaner type for logging/debugging.
	Name() string
}
