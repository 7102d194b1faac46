package textclean

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultForm is the recommended normalization form for scraped text.
const DefaultForm = norm.NFKC

// ParseForm maps "NFC", "NFD", "NFKC" or "NFKD" (any case) to a norm.Form.
func ParseForm(name string) (norm.Form, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "NFC":
		return norm.NFC, nil
	case "NFD":
		return norm.NFD, nil
	case "NFKC":
		return norm.NFKC, nil
	case "NFKD":
		return norm.NFKD, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
}

// NormalizeUnicode applies the given normalization form to text.
func (c *Cleaner) NormalizeUnicode(text string, form norm.Form) string {
	if text == "" {
		return ""
	}
	return form.String(text)
}

// RemoveAccents decomposes text (NFD) and drops nonspacing marks, so
// "café" becomes "cafe". The result is left decomposed.
func (c *Cleaner) RemoveAccents(text string) string {
	if text == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return out
}

// Truncate cuts text to maxLength codepoints at a word boundary and appends "...".
func (c *Cleaner) Truncate(text string, maxLength int) string {
	return c.TruncateWithSuffix(text, maxLength, TruncateSuffix)
}

// TruncateWithSuffix is Truncate with a caller-chosen suffix. Text already
// within maxLength is returned unchanged.
func (c *Cleaner) TruncateWithSuffix(text string, maxLength int, suffix string) string {
	if text == "" {
		return ""
	}
	return truncateAtWord(text, maxLength, suffix)
}
