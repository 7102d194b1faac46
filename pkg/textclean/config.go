// Package textclean normalizes dirty text harvested from web pages and
// scraped product data into clean, predictable strings.
//
// A Cleaner runs a fixed, ordered pipeline of stages. Each stage can be
// toggled through Config:
//
//  1. decode HTML entities
//  2. strip HTML tags (<br>, <p> and <li> become line breaks first)
//  3. remove invisible and control characters
//  4. map exotic spaces to a plain space
//  5. map dash variants to '-'
//  6. replace quotation marks with a space
//  7. remove ExtraRemove characters
//  8. keep only AllowedChars
//  9. normalize whitespace (single line, or paragraphs with PreserveNewlines)
//  10. lowercase
//  11. trim
//  12. truncate at a word boundary to MaxLength codepoints
//
// Cleaning never fails. Configuration errors surface from New.
package textclean

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config defines all configuration options for a Cleaner.
type Config struct {
	// RemoveQuotes replaces every quotation mark variant with a space.
	RemoveQuotes bool `json:"remove_quotes" yaml:"remove_quotes" mapstructure:"remove_quotes"`

	// NormalizeDashes maps en/em dashes, minus signs and friends to '-'.
	NormalizeDashes bool `json:"normalize_dashes" yaml:"normalize_dashes" mapstructure:"normalize_dashes"`

	// NormalizeSpaces maps NBSP, thin spaces, ideographic space etc. to ' '.
	NormalizeSpaces bool `json:"normalize_spaces" yaml:"normalize_spaces" mapstructure:"normalize_spaces"`

	// RemoveHTMLTags strips markup, turning <br>, <p> and <li> into line breaks.
	RemoveHTMLTags bool `json:"remove_html_tags" yaml:"remove_html_tags" mapstructure:"remove_html_tags"`

	// DecodeHTMLEntities decodes &amp;, &#169; and similar references.
	DecodeHTMLEntities bool `json:"decode_html_entities" yaml:"decode_html_entities" mapstructure:"decode_html_entities"`

	// RemoveInvisible drops control characters, zero-width joiners and
	// replacement characters.
	RemoveInvisible bool `json:"remove_invisible" yaml:"remove_invisible" mapstructure:"remove_invisible"`

	// PreserveNewlines keeps paragraph structure. When false the output is a single line.
	PreserveNewlines bool `json:"preserve_newlines" yaml:"preserve_newlines" mapstructure:"preserve_newlines"`

	// Lowercase folds the result to lower case.
	Lowercase bool `json:"lowercase" yaml:"lowercase" mapstructure:"lowercase"`

	// MaxLength truncates the result to this many codepoints at a word
	// boundary and appends "...". Zero means no limit.
	MaxLength int `json:"max_length,omitempty" yaml:"max_length,omitempty" mapstructure:"max_length" validate:"gte=0"`

	// AllowedChars is the body of a regexp character class, e.g. `\w\s.-`.
	// Every character outside the class is removed. Empty means no filter.
	AllowedChars string `json:"allowed_chars,omitempty" yaml:"allowed_chars,omitempty" mapstructure:"allowed_chars"`

	// ExtraRemove lists literal characters to delete.
	ExtraRemove string `json:"extra_remove,omitempty" yaml:"extra_remove,omitempty" mapstructure:"extra_remove"`
}

// DefaultConfig returns the configuration used by the package-level functions:
// every cleaning stage on, single-line output, original case, no length limit.
func DefaultConfig() Config {
	return Config{
		RemoveQuotes:       true,
		NormalizeDashes:    true,
		NormalizeSpaces:    true,
		RemoveHTMLTags:     true,
		DecodeHTMLEntities: true,
		RemoveInvisible:    true,
		PreserveNewlines:   false,
		Lowercase:          false,
	}
}

// PresetMultiline returns DefaultConfig with line structure preserved.
func PresetMultiline() Config {
	cfg := DefaultConfig()
	cfg.PreserveNewlines = true
	return cfg
}

// PresetKeepQuotes returns DefaultConfig with quotation marks left in place.
func PresetKeepQuotes() Config {
	cfg := DefaultConfig()
	cfg.RemoveQuotes = false
	return cfg
}

// PresetDescription keeps paragraphs and embedded quotations, which suits
// long product descriptions.
func PresetDescription() Config {
	cfg := DefaultConfig()
	cfg.RemoveQuotes = false
	cfg.PreserveNewlines = true
	return cfg
}

var validate = validator.New()

// Validate checks the config for values New would reject.
// AllowedChars syntax is checked by New when the pattern is compiled.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// Option configures a Cleaner.
type Option func(*Config)

// WithConfig replaces the whole configuration. Options after it still apply.
func WithConfig(cfg Config) Option {
	return func(c *Config) {
		*c = cfg
	}
}

// WithRemoveQuotes toggles the quote stage.
func WithRemoveQuotes(enabled bool) Option {
	return func(c *Config) {
		c.RemoveQuotes = enabled
	}
}

// WithNormalizeDashes toggles the dash stage.
func WithNormalizeDashes(enabled bool) Option {
	return func(c *Config) {
		c.NormalizeDashes = enabled
	}
}

// WithNormalizeSpaces toggles the special space stage.
func WithNormalizeSpaces(enabled bool) Option {
	return func(c *Config) {
		c.NormalizeSpaces = enabled
	}
}

// WithRemoveHTMLTags toggles tag stripping.
func WithRemoveHTMLTags(enabled bool) Option {
	return func(c *Config) {
		c.RemoveHTMLTags = enabled
	}
}

// WithDecodeHTMLEntities toggles entity decoding.
func WithDecodeHTMLEntities(enabled bool) Option {
	return func(c *Config) {
		c.DecodeHTMLEntities = enabled
	}
}

// WithRemoveInvisible toggles removal of control and zero-width characters.
func WithRemoveInvisible(enabled bool) Option {
	return func(c *Config) {
		c.RemoveInvisible = enabled
	}
}

// WithPreserveNewlines keeps line structure in the output.
func WithPreserveNewlines(enabled bool) Option {
	return func(c *Config) {
		c.PreserveNewlines = enabled
	}
}

// WithLowercase folds output to lower case.
func WithLowercase(enabled bool) Option {
	return func(c *Config) {
		c.Lowercase = enabled
	}
}

// WithMaxLength sets the truncation limit in codepoints. Zero disables it.
func WithMaxLength(n int) Option {
	return func(c *Config) {
		c.MaxLength = n
	}
}

// WithAllowedChars sets the allow-list character class body.
func WithAllowedChars(class string) Option {
	return func(c *Config) {
		c.AllowedChars = class
	}
}

// WithExtraRemove sets additional literal characters to delete.
func WithExtraRemove(chars string) Option {
	return func(c *Config) {
		c.ExtraRemove = chars
	}
}
