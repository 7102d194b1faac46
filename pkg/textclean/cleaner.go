package textclean

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jmylchreest/textclean/pkg/cleaner"
)

// Stage names a step of the cleaning pipeline.
type Stage string

const (
	StageDecodeEntities  Stage = "decode_entities"
	StageStripTags       Stage = "strip_tags"
	StageRemoveInvisible Stage = "remove_invisible"
	StageNormalizeSpaces Stage = "normalize_spaces"
	StageNormalizeDashes Stage = "normalize_dashes"
	StageRemoveQuotes    Stage = "remove_quotes"
	StageExtraRemove     Stage = "extra_remove"
	StageAllowList       Stage = "allow_list"
	StageWhitespace      Stage = "whitespace"
	StageLowercase       Stage = "lowercase"
	StageTrim            Stage = "trim"
	StageTruncate        Stage = "truncate"
)

// TruncateSuffix is appended to text cut by MaxLength.
const TruncateSuffix = "..."

var (
	brTagRegex        = regexp.MustCompile(`(?i)<br[` + spaceClass + `]*/?>`)
	pTagRegex         = regexp.MustCompile(`(?i)</?p[` + spaceClass + `]*/?>`)
	liTagRegex        = regexp.MustCompile(`(?i)<li\b[^>]*>`)
	htmlTagRegex      = regexp.MustCompile(`<[^>]+>`)
	multiSpaceRegex   = regexp.MustCompile(`[ \t]+`)
	multiNewlineRegex = regexp.MustCompile(`\n[` + spaceClass + `]*\n+`)

	lineBreakReplacer = strings.NewReplacer("\n", " ", "\r", " ")
)

type stage struct {
	name  Stage
	apply func(string) string
}

// Cleaner applies the configured pipeline to text.
// A Cleaner is immutable after New and safe for concurrent use.
type Cleaner struct {
	config  Config
	allowed *regexp.Regexp
	stages  []stage
}

var _ cleaner.Cleaner = (*Cleaner)(nil)

// New creates a Cleaner from DefaultConfig with opts applied.
func New(opts ...Option) (*Cleaner, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return NewFromConfig(cfg)
}

// NewFromConfig creates a Cleaner from a complete configuration.
func NewFromConfig(cfg Config) (*Cleaner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cleaner{config: cfg}

	if cfg.AllowedChars != "" {
		re, err := regexp.Compile("[^" + cfg.AllowedChars + "]")
		if err != nil {
			return nil, fmt.Errorf("%w %q: %v", ErrInvalidAllowedChars, cfg.AllowedChars, err)
		}
		c.allowed = re
	}

	c.stages = c.buildStages()
	return c, nil
}

// MustNew is like New but panics on error. It is meant for configurations
// known to be valid at compile time.
func MustNew(opts ...Option) *Cleaner {
	c, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the cleaner name for logging.
func (c *Cleaner) Name() string {
	return "textclean"
}

// Config returns a copy of the cleaner configuration.
func (c *Cleaner) Config() Config {
	return c.config
}

// Stages returns the enabled stages in the order they run.
func (c *Cleaner) Stages() []Stage {
	names := make([]Stage, len(c.stages))
	for i, s := range c.stages {
		names[i] = s.name
	}
	return names
}

// Clean runs the configured pipeline over v. nil yields "", strings and
// byte slices are used as is, anything else is formatted with fmt.Sprint.
func (c *Cleaner) Clean(v any) string {
	text := cleaner.Text(v)
	if text == "" {
		return ""
	}
	for _, s := range c.stages {
		text = s.apply(text)
	}
	return text
}

// IsEmpty reports whether v cleans to the empty string under this configuration.
func (c *Cleaner) IsEmpty(v any) bool {
	return c.Clean(v) == ""
}

// buildStages assembles the enabled stages in pipeline order. Whitespace
// handling and trim always run.
func (c *Cleaner) buildStages() []stage {
	cfg := c.config
	var stages []stage

	if cfg.DecodeHTMLEntities {
		stages = append(stages, stage{StageDecodeEntities, decodeEntities})
	}
	if cfg.RemoveHTMLTags {
		stages = append(stages, stage{StageStripTags, stripTags})
	}
	if cfg.RemoveInvisible {
		stages = append(stages, stage{StageRemoveInvisible, removeInvisible})
	}
	if cfg.NormalizeSpaces {
		stages = append(stages, stage{StageNormalizeSpaces, normalizeSpaces})
	}
	if cfg.NormalizeDashes {
		stages = append(stages, stage{StageNormalizeDashes, normalizeDashes})
	}
	if cfg.RemoveQuotes {
		stages = append(stages, stage{StageRemoveQuotes, removeQuotes})
	}
	if cfg.ExtraRemove != "" {
		extra := newRuneSet([]rune(cfg.ExtraRemove)...)
		stages = append(stages, stage{StageExtraRemove, func(s string) string {
			return strings.Map(func(r rune) rune {
				if extra.has(r) {
					return -1
				}
				return r
			}, s)
		}})
	}
	if c.allowed != nil {
		re := c.allowed
		stages = append(stages, stage{StageAllowList, func(s string) string {
			return re.ReplaceAllLiteralString(s, "")
		}})
	}

	if cfg.PreserveNewlines {
		stages = append(stages, stage{StageWhitespace, collapseParagraphs})
	} else {
		stages = append(stages, stage{StageWhitespace, collapseSingleLine})
	}

	if cfg.Lowercase {
		stages = append(stages, stage{StageLowercase, lower})
	}

	stages = append(stages, stage{StageTrim, trimSpace})

	if cfg.MaxLength > 0 {
		limit := cfg.MaxLength
		stages = append(stages, stage{StageTruncate, func(s string) string {
			return truncateAtWord(s, limit, TruncateSuffix)
		}})
	}

	return stages
}

// decodeEntities decodes character references, then applies the fixed
// entity table so &nbsp; always ends up as a plain space.
func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	s = html.UnescapeString(s)
	for _, e := range htmlEntities {
		s = strings.ReplaceAll(s, e.name, e.replacement)
	}
	return s
}

func stripTags(s string) string {
	if !strings.Contains(s, "<") {
		return s
	}
	s = brTagRegex.ReplaceAllLiteralString(s, "\n")
	s = pTagRegex.ReplaceAllLiteralString(s, "\n")
	s = liTagRegex.ReplaceAllLiteralString(s, "\n\u2022 ")
	return htmlTagRegex.ReplaceAllLiteralString(s, "")
}

func removeInvisible(s string) string {
	return strings.Map(func(r rune) rune {
		if invisibleSet.has(r) {
			return -1
		}
		return r
	}, s)
}

func normalizeSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if specialSpaceSet.has(r) {
			return ' '
		}
		return r
	}, s)
}

func normalizeDashes(s string) string {
	return strings.Map(func(r rune) rune {
		if dashSet.has(r) {
			return '-'
		}
		return r
	}, s)
}

// removeQuotes replaces quotes with a space rather than deleting them so
// `said "hi"` does not collapse into `saidhi`.
func removeQuotes(s string) string {
	return strings.Map(func(r rune) rune {
		if quoteSet.has(r) {
			return ' '
		}
		return r
	}, s)
}

func removeSpecialSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if specialSpaceSet.has(r) {
			return -1
		}
		return r
	}, s)
}

// collapseParagraphs squeezes space runs, reduces blank-line runs to a single
// blank line and trims every line.
func collapseParagraphs(s string) string {
	s = multiSpaceRegex.ReplaceAllLiteralString(s, " ")
	s = multiNewlineRegex.ReplaceAllLiteralString(s, "\n\n")
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = trimSpace(line)
	}
	return strings.Join(lines, "\n")
}

func collapseSingleLine(s string) string {
	s = lineBreakReplacer.Replace(s)
	return multiSpaceRegex.ReplaceAllLiteralString(s, " ")
}

// lower builds a fresh Caser per call; casers keep state between calls.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}

func upper(s string) string {
	return cases.Upper(language.Und).String(s)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// truncateAtWord cuts s to limit codepoints, backs off to the last space in
// the cut when there is one, and appends suffix. When the cut has no space
// the result keeps the hard cut plus suffix and may exceed limit.
func truncateAtWord(s string, limit int, suffix string) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	if limit < 0 {
		limit = 0
	}
	cut := string(runes[:limit])
	if i := strings.LastIndexByte(cut, ' '); i >= 0 {
		cut = cut[:i]
	}
	return cut + suffix
}
