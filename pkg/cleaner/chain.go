package cleaner

import (
	"strings"
)

// ChainCleaner applies multiple cleaners in sequence.
// This allows composing cleaners for multi-stage processing.
type ChainCleaner struct {
	cleaners []Cleaner
}

// NewChain creates a new cleaner that applies multiple cleaners in sequence.
// Cleaners are applied in the order provided.
//
// Example:
//
//	chain := cleaner.NewChain(
//	    textclean.MustNew(textclean.WithLowercase(true)),
//	    cleaner.Func("accents", textclean.RemoveAccents),
//	)
func NewChain(cleaners ...Cleaner) *ChainCleaner {
	return &ChainCleaner{
		cleaners: cleaners,
	}
}

// Clean applies all cleaners in sequence. The first cleaner receives v,
// later ones receive the previous output.
func (c *ChainCleaner) Clean(v any) string {
	if len(c.cleaners) == 0 {
		return Text(v)
	}
	content := c.cleaners[0].Clean(v)
	for _, cl := range c.cleaners[1:] {
		content = cl.Clean(content)
	}
	return content
}

// Name returns the names of all chained cleaners.
func (c *ChainCleaner) Name() string {
	names := make([]string, len(c.cleaners))
	for i, cl := range c.cleaners {
		names[i] = cl.Name()
	}
	return "chain(" + strings.Join(names, "->") + ")"
}

// Len returns the number of chained cleaners.
func (c *ChainCleaner) Len() int {
	return len(c.cleaners)
}
