package textclean

import (
	"errors"
	"strings"
	"sync"
	"testing"
)

func mustNew(t *testing.T, opts ...Option) *Cleaner {
	t.Helper()
	c, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew(t *testing.T) {
	t.Run("no options uses default config", func(t *testing.T) {
		c := mustNew(t)
		if c.Config() != DefaultConfig() {
			t.Errorf("expected default config, got %+v", c.Config())
		}
	})

	t.Run("options override defaults", func(t *testing.T) {
		c := mustNew(t, WithRemoveQuotes(false), WithMaxLength(20))
		cfg := c.Config()
		if cfg.RemoveQuotes {
			t.Error("expected RemoveQuotes to be false")
		}
		if cfg.MaxLength != 20 {
			t.Errorf("expected MaxLength 20, got %d", cfg.MaxLength)
		}
		if !cfg.NormalizeDashes {
			t.Error("expected NormalizeDashes to keep its default")
		}
	})

	t.Run("negative max length is rejected", func(t *testing.T) {
		_, err := New(WithMaxLength(-1))
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("malformed allowed chars fail at construction", func(t *testing.T) {
		for _, class := range []string{`\`, `z-a`, `[:bogus:]`} {
			_, err := New(WithAllowedChars(class))
			if !errors.Is(err, ErrInvalidAllowedChars) {
				t.Errorf("AllowedChars %q: expected ErrInvalidAllowedChars, got %v", class, err)
			}
		}
	})
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid config")
		}
	}()
	MustNew(WithMaxLength(-5))
}

func TestName(t *testing.T) {
	if got := mustNew(t).Name(); got != "textclean" {
		t.Errorf("expected name 'textclean', got '%s'", got)
	}
}

func TestStages(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		want := []Stage{
			StageDecodeEntities, StageStripTags, StageRemoveInvisible,
			StageNormalizeSpaces, StageNormalizeDashes, StageRemoveQuotes,
			StageWhitespace, StageTrim,
		}
		assertStages(t, mustNew(t).Stages(), want)
	})

	t.Run("everything on", func(t *testing.T) {
		c := mustNew(t, WithExtraRemove("#"), WithAllowedChars(`\w\s`), WithLowercase(true), WithMaxLength(10))
		want := []Stage{
			StageDecodeEntities, StageStripTags, StageRemoveInvisible,
			StageNormalizeSpaces, StageNormalizeDashes, StageRemoveQuotes,
			StageExtraRemove, StageAllowList, StageWhitespace, StageLowercase,
			StageTrim, StageTruncate,
		}
		assertStages(t, c.Stages(), want)
	})

	t.Run("everything off", func(t *testing.T) {
		c := mustNew(t,
			WithDecodeHTMLEntities(false), WithRemoveHTMLTags(false), WithRemoveInvisible(false),
			WithNormalizeSpaces(false), WithNormalizeDashes(false), WithRemoveQuotes(false),
		)
		assertStages(t, c.Stages(), []Stage{StageWhitespace, StageTrim})
	})
}

func assertStages(t *testing.T, got, want []Stage) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("stage %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestClean_Default(t *testing.T) {
	c := mustNew(t)

	tests := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, ""},
		{"empty", "", ""},
		{"int", 123, "123"},
		{"float", 99.5, "99.5"},
		{"bytes", []byte("  raw  bytes "), "raw bytes"},
		{"quotes keep word boundaries", `He said "hi" to "her"`, "He said hi to her"},
		{"dashes", "2020–2021 — done", "2020-2021 - done"},
		{"minus sign", "x−y", "x-y"},
		{"nbsp", "Text\u00a0with\u00a0NBSP", "Text with NBSP"},
		{"multiple spaces", "  Multiple   spaces  ", "Multiple spaces"},
		{"tabs", "tab\there", "tab here"},
		{"html and entities", "<p>HTML &amp; entities</p>", "HTML & entities"},
		{"encoded markup is stripped", "&lt;b&gt;bold&lt;/b&gt;", "bold"},
		{"numeric entity", "&#169; 2024", "© 2024"},
		{"double encoded nbsp", "a&amp;nbsp;b", "a b"},
		{"apostrophe entity becomes space", "Tom&#39;s", "Tom s"},
		{"currency untouched", "Price: €99.99", "Price: €99.99"},
		{"mixed quotes", "\"«Quotes»„everywhere”", "Quotes everywhere"},
		{"curly single quotes", "‘single’", "single"},
		{"zero width space becomes space", "zero\u200bwidth", "zero width"},
		{"zero width joiner removed", "a\u200db", "ab"},
		{"control characters removed", "a\x00b\x07c", "abc"},
		{"replacement char removed", "bad\ufffdbyte", "badbyte"},
		{"invalid utf8 removed", "bad\xffbyte", "badbyte"},
		{"line breaks become spaces", "line1\nline2\r\nline3", "line1 line2 line3"},
		{"br tags", "one<br>two<BR/>three<br />four", "one two three four"},
		{"list items get bullets", `<ul><li class="x">One</li><li>Two</li></ul>`, "• One • Two"},
		{"link tag is not a list item", `<link rel="x">Text`, "Text"},
		{"ideographic space trimmed", "\u3000ideographic\u3000", "ideographic"},
		{"only quotes", `""  ""`, ""},
		{"cafe untouched", "café", "café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_PreserveNewlines(t *testing.T) {
	c := mustNew(t, WithPreserveNewlines(true))

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"paragraph and break", "<p>Hello &amp; welcome</p><br>Next line", "Hello & welcome\n\nNext line"},
		{"blank line runs collapse", "a\n\n\n\nb", "a\n\nb"},
		{"blank lines with whitespace collapse", "a\n \n\t\n b", "a\n\nb"},
		{"lines trimmed", "  line one  \n   line two  ", "line one\nline two"},
		{"list", "<ul><li>One</li><li>Two</li></ul>", "• One\n• Two"},
		{"spaces collapse inside lines", "a    b\nc\t\td", "a b\nc d"},
		{"single newline kept", "a\nb", "a\nb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}

	t.Run("entity and tag handling yields two content lines", func(t *testing.T) {
		got := c.Clean("<p>Hello &amp; welcome</p><br>Next line")
		var lines []string
		for _, line := range strings.Split(got, "\n") {
			if line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) != 2 || lines[0] != "Hello & welcome" || lines[1] != "Next line" {
			t.Errorf("unexpected lines %q", lines)
		}
	})
}

func TestClean_DisabledStages(t *testing.T) {
	tests := []struct {
		name  string
		opt   Option
		input string
		want  string
	}{
		{"tags kept", WithRemoveHTMLTags(false), "<b>x</b>", "<b>x</b>"},
		{"entities kept", WithDecodeHTMLEntities(false), "a &amp; b", "a &amp; b"},
		{"quotes kept", WithRemoveQuotes(false), `say "x"`, `say "x"`},
		{"dashes kept", WithNormalizeDashes(false), "a–b", "a–b"},
		{"special spaces kept", WithNormalizeSpaces(false), "a\u00a0b", "a\u00a0b"},
		{"invisible kept", WithRemoveInvisible(false), "a\u200cb", "a\u200cb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustNew(t, tt.opt)
			if got := c.Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_Lowercase(t *testing.T) {
	c := mustNew(t, WithLowercase(true))
	if got := c.Clean("HeLLo WÖRLD"); got != "hello wörld" {
		t.Errorf("expected %q, got %q", "hello wörld", got)
	}
}

func TestClean_ExtraRemove(t *testing.T) {
	c := mustNew(t, WithExtraRemove("*#"))
	if got := c.Clean("**Sale** #1"); got != "Sale 1" {
		t.Errorf("expected %q, got %q", "Sale 1", got)
	}
}

func TestClean_AllowedChars(t *testing.T) {
	tests := []struct {
		name  string
		class string
		input string
		want  string
	}{
		{"lowercase letters and space", "a-z ", "Hello World 123", "ello orld"},
		{"digits only", `0-9`, "Order #42 (x3)", "423"},
		{"unicode letters", `\p{L} `, "naïve 1 café!", "naïve café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustNew(t, WithAllowedChars(tt.class))
			if got := c.Clean(tt.input); got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestClean_MaxLength(t *testing.T) {
	tests := []struct {
		name  string
		max   int
		input string
		want  string
	}{
		{"backs off to word boundary", 10, "hello world foo", "hello..."},
		{"within limit unchanged", 10, "short", "short"},
		{"exact limit unchanged", 5, "hello", "hello"},
		{"no space keeps hard cut", 10, "abcdefghijklmno", "abcdefghij..."},
		{"counts codepoints", 5, strings.Repeat("é", 11), strings.Repeat("é", 5) + "..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := mustNew(t, WithMaxLength(tt.max))
			got := c.Clean(tt.input)
			if got != tt.want {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := c.Clean(got); again != got {
				t.Errorf("second Clean changed %q to %q", got, again)
			}
		})
	}

	t.Run("never splits mid-word when a space exists", func(t *testing.T) {
		c := mustNew(t, WithMaxLength(10))
		got := c.Clean("hello world foo")
		if len([]rune(got)) > len([]rune("hello world foo")) {
			t.Errorf("output %q longer than input", got)
		}
		if !strings.HasSuffix(got, TruncateSuffix) {
			t.Errorf("expected %q suffix, got %q", TruncateSuffix, got)
		}
		if strings.Contains(got, "wor") {
			t.Errorf("expected partial word to be dropped, got %q", got)
		}
	})
}

var idempotenceCorpus = []string{
	`He said "hi" to "her"`,
	"2020–2021 — done",
	"<p>Hello &amp; welcome</p><br>Next line",
	"<ul><li>One</li><li>Two</li></ul>",
	"  Multiple   spaces \t and\ttabs  ",
	"Text\u00a0with\u00a0NBSP and\u200bzero\u200dwidth",
	"line1\n\n\n line2\r\nline3",
	"«Quotes» “everywhere”",
	"Price: &euro;99,99 &ndash; today only",
	"café résumé naïve",
	"hello world foo bar baz qux",
	"abcdefghijklmnopqrstuvwxyz",
}

func TestClean_Idempotent(t *testing.T) {
	configs := map[string][]Option{
		"default":    nil,
		"multiline":  {WithPreserveNewlines(true)},
		"keepQuotes": {WithRemoveQuotes(false)},
		"lowercase":  {WithLowercase(true)},
		"allowList":  {WithAllowedChars(`\p{L}\p{N}\s`), WithExtraRemove("x")},
	}

	for name, opts := range configs {
		t.Run(name, func(t *testing.T) {
			c := mustNew(t, opts...)
			for _, s := range idempotenceCorpus {
				once := c.Clean(s)
				twice := c.Clean(once)
				if once != twice {
					t.Errorf("not idempotent for %q: %q -> %q", s, once, twice)
				}
			}
		})
	}
}

func TestClean_RepeatedTruncationNeverGrows(t *testing.T) {
	c := mustNew(t, WithMaxLength(12))
	for _, s := range idempotenceCorpus {
		prev := c.Clean(s)
		for i := 0; i < 3; i++ {
			next := c.Clean(prev)
			if len([]rune(next)) > len([]rune(prev)) {
				t.Errorf("truncation grew %q to %q", prev, next)
			}
			prev = next
		}
	}
}

func TestClean_SingleLineNeverHasLineBreaks(t *testing.T) {
	c := mustNew(t)
	inputs := append([]string{
		"a\rb\nc",
		"<br><br><p>x</p>",
		"\n\n\n",
		"x\u2028y",
	}, idempotenceCorpus...)

	for _, s := range inputs {
		got := c.Clean(s)
		if strings.ContainsAny(got, "\n\r") {
			t.Errorf("Clean(%q) = %q contains a line break", s, got)
		}
	}
}

func TestClean_EmptyForAllConfigs(t *testing.T) {
	configs := [][]Option{
		nil,
		{WithPreserveNewlines(true)},
		{WithRemoveQuotes(false), WithLowercase(true)},
		{WithMaxLength(3), WithAllowedChars("a")},
	}
	for _, opts := range configs {
		c := mustNew(t, opts...)
		if got := c.Clean(nil); got != "" {
			t.Errorf("Clean(nil) = %q, want empty", got)
		}
		if got := c.Clean(""); got != "" {
			t.Errorf("Clean(\"\") = %q, want empty", got)
		}
	}
}

func TestIsEmpty(t *testing.T) {
	c := mustNew(t)

	tests := []struct {
		input any
		want  bool
	}{
		{nil, true},
		{"", true},
		{`""  ""`, true},
		{"<br><p></p>", true},
		{"\u00a0\u200b\u200d", true},
		{"a", false},
		{0, false},
	}

	for _, tt := range tests {
		if got := c.IsEmpty(tt.input); got != tt.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	keep := mustNew(t, WithRemoveQuotes(false))
	if keep.IsEmpty(`""`) {
		t.Error("expected quotes to count as content when quotes are kept")
	}
}

func TestCleaner_ConcurrentUse(t *testing.T) {
	c := mustNew(t, WithAllowedChars(`\p{L}\s-`), WithLowercase(true), WithMaxLength(15))
	want := c.Clean("<b>Hello</b> “World” – again and again")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := c.Clean("<b>Hello</b> “World” – again and again"); got != want {
					t.Errorf("concurrent Clean = %q, want %q", got, want)
					return
				}
			}
		}()
	}
	wg.Wait()
}
