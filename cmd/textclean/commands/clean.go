package commands

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/text/unicode/norm"

	"github.com/jmylchreest/textclean/internal/logger"
	"github.com/jmylchreest/textclean/internal/output"
	"github.com/jmylchreest/textclean/pkg/cleaner"
	"github.com/jmylchreest/textclean/pkg/textclean"
)

// record is one cleaned input as written by the output writers.
type record struct {
	Input  string           `json:"input" yaml:"input"`
	Output string           `json:"output" yaml:"output"`
	Stats  *textclean.Stats `json:"stats,omitempty" yaml:"stats,omitempty"`
}

func (r record) String() string { return r.Output }

// Modes accepted by --mode.
const (
	modeText        = "text"
	modeMultiline   = "multiline"
	modeKeepQuotes  = "keep-quotes"
	modeProduct     = "product"
	modeBrand       = "brand"
	modeSKU         = "sku"
	modeDescription = "description"
	modePrice       = "price"
	modeURL         = "url"
	modeEmail       = "email"
	modeAccents     = "accents"
	modeNormalize   = "normalize"
	modeEmpty       = "empty"
)

var modeNames = []string{
	modeText, modeMultiline, modeKeepQuotes, modeProduct, modeBrand, modeSKU,
	modeDescription, modePrice, modeURL, modeEmail, modeAccents, modeNormalize, modeEmpty,
}

// Viper keys for Config, settable from the config file
// (cleaner: section) or TEXTCLEAN_CLEANER_* environment variables.
const (
	keyRemoveQuotes       = "cleaner.remove_quotes"
	keyNormalizeDashes    = "cleaner.normalize_dashes"
	keyNormalizeSpaces    = "cleaner.normalize_spaces"
	keyRemoveHTMLTags     = "cleaner.remove_html_tags"
	keyDecodeHTMLEntities = "cleaner.decode_html_entities"
	keyRemoveInvisible    = "cleaner.remove_invisible"
	keyPreserveNewlines   = "cleaner.preserve_newlines"
	keyLowercase          = "cleaner.lowercase"
	keyMaxLength          = "cleaner.max_length"
	keyAllowedChars       = "cleaner.allowed_chars"
	keyExtraRemove        = "cleaner.extra_remove"
)

func newCleanCommand(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean [text...]",
		Short: "Clean text from arguments, a file or stdin",
		Long: `Clean text with the configured pipeline.

Each argument is cleaned as a separate record. Without arguments the
input is read from --file or stdin; --lines cleans every line on its own.

Cleaner options come from flags, then TEXTCLEAN_CLEANER_* environment
variables, then the cleaner: section of the config file.

Modes:
  ` + strings.Join(modeNames, ", ") + `

Examples:
  textclean clean --lowercase --max-length 40 "Some <i>very</i> long title"
  textclean clean --mode sku "ab-12 / x"
  cat listing.html | textclean clean --preserve-newlines --stats`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClean(cmd, v, args)
		},
	}

	flags := cmd.Flags()

	// Cleaner configuration
	flags.Bool("keep-quotes", false, "leave quotation marks in place")
	flags.Bool("keep-dashes", false, "leave dash variants unchanged")
	flags.Bool("keep-spaces", false, "leave special spaces unchanged")
	flags.Bool("keep-tags", false, "leave HTML tags in place")
	flags.Bool("keep-entities", false, "do not decode HTML entities")
	flags.Bool("keep-invisible", false, "keep control and zero-width characters")
	flags.Bool("preserve-newlines", false, "keep line and paragraph structure")
	flags.Bool("lowercase", false, "lowercase the result")
	flags.Int("max-length", 0, "truncate to this many characters at a word boundary (0=unlimited)")
	flags.String("allowed-chars", "", `regexp character class body of characters to keep, e.g. "\w\s.-"`)
	flags.String("extra-remove", "", "additional characters to delete")

	// Operation
	flags.StringP("mode", "m", modeText, "cleaning mode")
	flags.Bool("strip-accents", false, "remove accents after cleaning")
	flags.String("normalize-form", "", "apply Unicode normalization after cleaning: NFC, NFD, NFKC, NFKD")

	// Input
	flags.StringP("file", "f", "", "read input from file")
	flags.BoolP("lines", "l", false, "clean each input line separately")
	flags.String("max-input-size", "", "reject input larger than this (e.g., 512KB, 10MB; empty=unlimited)")

	// Output
	flags.StringP("format", "o", "text", "output format: text, json, jsonl, yaml")
	flags.Bool("stats", false, "report what the pipeline changed")

	setCleanerDefaults(v)

	return cmd
}

func setCleanerDefaults(v *viper.Viper) {
	def := textclean.DefaultConfig()
	v.SetDefault(keyRemoveQuotes, def.RemoveQuotes)
	v.SetDefault(keyNormalizeDashes, def.NormalizeDashes)
	v.SetDefault(keyNormalizeSpaces, def.NormalizeSpaces)
	v.SetDefault(keyRemoveHTMLTags, def.RemoveHTMLTags)
	v.SetDefault(keyDecodeHTMLEntities, def.DecodeHTMLEntities)
	v.SetDefault(keyRemoveInvisible, def.RemoveInvisible)
	v.SetDefault(keyPreserveNewlines, def.PreserveNewlines)
	v.SetDefault(keyLowercase, def.Lowercase)
	v.SetDefault(keyMaxLength, def.MaxLength)
	v.SetDefault(keyAllowedChars, def.AllowedChars)
	v.SetDefault(keyExtraRemove, def.ExtraRemove)
}

// resolveConfig layers flags that were set explicitly over viper's view of
// the config file, environment and defaults.
func resolveConfig(v *viper.Viper, flags *pflag.FlagSet) textclean.Config {
	cfg := textclean.Config{
		RemoveQuotes:       v.GetBool(keyRemoveQuotes),
		NormalizeDashes:    v.GetBool(keyNormalizeDashes),
		NormalizeSpaces:    v.GetBool(keyNormalizeSpaces),
		RemoveHTMLTags:     v.GetBool(keyRemoveHTMLTags),
		DecodeHTMLEntities: v.GetBool(keyDecodeHTMLEntities),
		RemoveInvisible:    v.GetBool(keyRemoveInvisible),
		PreserveNewlines:   v.GetBool(keyPreserveNewlines),
		Lowercase:          v.GetBool(keyLowercase),
		MaxLength:          v.GetInt(keyMaxLength),
		AllowedChars:       v.GetString(keyAllowedChars),
		ExtraRemove:        v.GetString(keyExtraRemove),
	}

	negated := map[string]*bool{
		"keep-quotes":    &cfg.RemoveQuotes,
		"keep-dashes":    &cfg.NormalizeDashes,
		"keep-spaces":    &cfg.NormalizeSpaces,
		"keep-tags":      &cfg.RemoveHTMLTags,
		"keep-entities":  &cfg.DecodeHTMLEntities,
		"keep-invisible": &cfg.RemoveInvisible,
	}
	for name, field := range negated {
		if flags.Changed(name) {
			keep, _ := flags.GetBool(name)
			*field = !keep
		}
	}

	if flags.Changed("preserve-newlines") {
		cfg.PreserveNewlines, _ = flags.GetBool("preserve-newlines")
	}
	if flags.Changed("lowercase") {
		cfg.Lowercase, _ = flags.GetBool("lowercase")
	}
	if flags.Changed("max-length") {
		cfg.MaxLength, _ = flags.GetInt("max-length")
	}
	if flags.Changed("allowed-chars") {
		cfg.AllowedChars, _ = flags.GetString("allowed-chars")
	}
	if flags.Changed("extra-remove") {
		cfg.ExtraRemove, _ = flags.GetString("extra-remove")
	}

	return cfg
}

func runClean(cmd *cobra.Command, v *viper.Viper, args []string) error {
	flags := cmd.Flags()

	mode, _ := flags.GetString("mode")
	mode = strings.ToLower(strings.TrimSpace(mode))

	formatStr, _ := flags.GetString("format")
	format, err := output.ParseFormat(formatStr)
	if err != nil {
		return err
	}

	withStats, _ := flags.GetBool("stats")
	if withStats && !isPipelineMode(mode) {
		return fmt.Errorf("--stats requires mode %s, %s or %s", modeText, modeMultiline, modeKeepQuotes)
	}

	cfg := resolveConfig(v, flags)
	switch mode {
	case modeMultiline:
		cfg.PreserveNewlines = true
	case modeKeepQuotes:
		cfg.RemoveQuotes = false
	}
	logger.Debug("resolved cleaner config", "mode", mode, "config", cfg)

	c, err := textclean.NewFromConfig(cfg)
	if err != nil {
		return err
	}

	p, err := buildPipeline(c, mode, flags)
	if err != nil {
		return err
	}
	logger.Debug("pipeline ready", "name", p.Name(), "stages", c.Stages())

	inputs, err := readInputs(cmd, flags, args)
	if err != nil {
		return err
	}
	logger.Debug("inputs read", "count", len(inputs))

	w, err := output.NewWriter(cmd.OutOrStdout(), format)
	if err != nil {
		return err
	}

	tail := cleaner.NewChain(p.cleaners[1:]...)
	for _, in := range inputs {
		rec := record{Input: in}
		if withStats {
			res := c.CleanWithStats(in)
			rec.Stats = res.Stats
			// The chain tail (accents, normalization) runs on the pipeline output.
			rec.Output = tail.Clean(res.Content)
			logStats(cmd, format, rec.Stats)
		} else {
			rec.Output = p.Clean(in)
		}

		if err := w.Write(rec); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}

	return w.Flush()
}

// logStats prints stats to stderr in text mode, where stdout only carries
// the cleaned text.
func logStats(cmd *cobra.Command, format output.Format, s *textclean.Stats) {
	logger.Debug("cleaned record",
		"input_bytes", s.InputBytes,
		"output_bytes", s.OutputBytes,
		"stages_changed", s.StagesChanged,
		"truncated", s.Truncated,
		"duration", s.Duration)

	if format != output.FormatText {
		return
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s\n%s\n",
		humanize.Bytes(uint64(s.InputBytes)), humanize.Bytes(uint64(s.OutputBytes)), s.String())
}

func isPipelineMode(mode string) bool {
	return mode == modeText || mode == modeMultiline || mode == modeKeepQuotes
}

// pipeline keeps the chained cleaners alongside the chain so the stats path
// can run the first one itself.
type pipeline struct {
	*cleaner.ChainCleaner
	cleaners []cleaner.Cleaner
}

func buildPipeline(c *textclean.Cleaner, mode string, flags *pflag.FlagSet) (*pipeline, error) {
	var form norm.Form
	hasForm := false
	if name, _ := flags.GetString("normalize-form"); name != "" {
		f, err := textclean.ParseForm(name)
		if err != nil {
			return nil, err
		}
		form, hasForm = f, true
	}

	first, err := modeCleaner(c, mode, form, hasForm)
	if err != nil {
		return nil, err
	}
	stages := []cleaner.Cleaner{first}

	if strip, _ := flags.GetBool("strip-accents"); strip && mode != modeAccents {
		stages = append(stages, cleaner.Func("accents", c.RemoveAccents))
	}
	if hasForm && mode != modeNormalize {
		stages = append(stages, cleaner.Func("normalize", func(s string) string {
			return c.NormalizeUnicode(s, form)
		}))
	}

	return &pipeline{ChainCleaner: cleaner.NewChain(stages...), cleaners: stages}, nil
}

func modeCleaner(c *textclean.Cleaner, mode string, form norm.Form, hasForm bool) (cleaner.Cleaner, error) {
	switch mode {
	case modeText, modeMultiline, modeKeepQuotes:
		return c, nil
	case modeProduct:
		return cleaner.Func(mode, func(s string) string { return c.CleanProductName(s) }), nil
	case modeBrand:
		return cleaner.Func(mode, func(s string) string { return c.CleanBrand(s) }), nil
	case modeSKU:
		return cleaner.Func(mode, func(s string) string { return c.CleanSKU(s) }), nil
	case modeDescription:
		return cleaner.Func(mode, func(s string) string { return c.CleanDescription(s) }), nil
	case modePrice:
		return cleaner.Func(mode, func(s string) string { return c.CleanPriceText(s) }), nil
	case modeURL:
		return cleaner.Func(mode, func(s string) string { return c.CleanURL(s) }), nil
	case modeEmail:
		return cleaner.Func(mode, func(s string) string { return c.CleanEmail(s) }), nil
	case modeAccents:
		return cleaner.Func(mode, c.RemoveAccents), nil
	case modeNormalize:
		if !hasForm {
			form = textclean.DefaultForm
		}
		return cleaner.Func(mode, func(s string) string { return c.NormalizeUnicode(s, form) }), nil
	case modeEmpty:
		return cleaner.Func(mode, func(s string) string { return strconv.FormatBool(c.IsEmpty(s)) }), nil
	default:
		return nil, fmt.Errorf("unknown mode %q (want one of: %s)", mode, strings.Join(modeNames, ", "))
	}
}

// readInputs returns the records to clean: one per argument, otherwise the
// whole of --file or stdin, split per line with --lines.
func readInputs(cmd *cobra.Command, flags *pflag.FlagSet, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}

	var limit uint64
	if s, _ := flags.GetString("max-input-size"); strings.TrimSpace(s) != "" && s != "0" {
		n, err := humanize.ParseBytes(s)
		if err != nil {
			return nil, fmt.Errorf("invalid max-input-size %q: %w", s, err)
		}
		limit = n
	}

	var r io.Reader = cmd.InOrStdin()
	if path, _ := flags.GetString("file"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening input: %w", err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	data, err := readLimited(r, limit)
	if err != nil {
		return nil, err
	}

	if lines, _ := flags.GetBool("lines"); !lines {
		return []string{string(data)}, nil
	}

	var out []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(nil, len(data)+1)
	for sc.Scan() {
		out = append(out, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading lines: %w", err)
	}
	return out, nil
}

func readLimited(r io.Reader, limit uint64) ([]byte, error) {
	if limit == 0 {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		return data, nil
	}
	data, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if uint64(len(data)) > limit {
		return nil, fmt.Errorf("input exceeds max-input-size of %s", humanize.Bytes(limit))
	}
	return data, nil
}
