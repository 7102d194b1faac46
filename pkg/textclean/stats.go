package textclean

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/jmylchreest/textclean/pkg/cleaner"
)

// Stats captures what a single Clean call did.
type Stats struct {
	// Size metrics
	InputBytes  int `json:"input_bytes" yaml:"input_bytes"`
	OutputBytes int `json:"output_bytes" yaml:"output_bytes"`
	InputRunes  int `json:"input_runes" yaml:"input_runes"`
	OutputRunes int `json:"output_runes" yaml:"output_runes"`

	// Stages that ran, in order, and the subset that changed the text.
	StagesRun     []Stage `json:"stages_run" yaml:"stages_run"`
	StagesChanged []Stage `json:"stages_changed" yaml:"stages_changed"`

	Truncated bool `json:"truncated" yaml:"truncated"`

	Duration time.Duration `json:"duration_ns" yaml:"duration"`
}

// Result holds cleaned content together with its stats.
type Result struct {
	Content string `json:"content" yaml:"content"`
	Stats   *Stats `json:"stats" yaml:"stats"`
}

// CleanWithStats cleans v exactly like Clean and records per-stage details.
func (c *Cleaner) CleanWithStats(v any) *Result {
	start := time.Now()
	text := cleaner.Text(v)
	stats := &Stats{
		InputBytes: len(text),
		InputRunes: utf8.RuneCountInString(text),
	}

	if text != "" {
		for _, s := range c.stages {
			out := s.apply(text)
			stats.StagesRun = append(stats.StagesRun, s.name)
			if out != text {
				stats.StagesChanged = append(stats.StagesChanged, s.name)
				if s.name == StageTruncate {
					stats.Truncated = true
				}
			}
			text = out
		}
	}

	stats.OutputBytes = len(text)
	stats.OutputRunes = utf8.RuneCountInString(text)
	stats.Duration = time.Since(start)

	return &Result{Content: text, Stats: stats}
}

// ReductionPercent returns the percentage reduction in byte size.
func (s *Stats) ReductionPercent() float64 {
	if s.InputBytes == 0 {
		return 0
	}
	return float64(s.InputBytes-s.OutputBytes) / float64(s.InputBytes) * 100
}

// Changed reports whether the given stage modified the text.
func (s *Stats) Changed(stage Stage) bool {
	for _, st := range s.StagesChanged {
		if st == stage {
			return true
		}
	}
	return false
}

// String returns a human-readable summary of the stats.
func (s *Stats) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Size: %d -> %d bytes, %d -> %d chars (%.1f%% reduction)\n",
		s.InputBytes, s.OutputBytes, s.InputRunes, s.OutputRunes, s.ReductionPercent()))

	changed := make([]string, len(s.StagesChanged))
	for i, st := range s.StagesChanged {
		changed[i] = string(st)
	}
	if len(changed) == 0 {
		sb.WriteString(fmt.Sprintf("Stages: %d run, none changed the text\n", len(s.StagesRun)))
	} else {
		sb.WriteString(fmt.Sprintf("Stages: %d run, changed by %s\n", len(s.StagesRun), strings.Join(changed, ", ")))
	}

	if s.Truncated {
		sb.WriteString("Truncated: yes\n")
	}

	sb.WriteString(fmt.Sprintf("Time: %v", s.Duration))

	return sb.String()
}
