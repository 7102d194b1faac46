package cleaner

// NoopCleaner passes content through without modification.
type NoopCleaner struct{}

// NewNoop creates a new no-op cleaner.
func NewNoop() *NoopCleaner {
	return &NoopCleaner{}
}

// Clean returns the text form of v unchanged.
func (c *NoopCleaner) Clean(v any) string {
	return Text(v)
}

// Name returns the cleaner type.
func (c *NoopCleaner) Name() string {
	return "noop"
}
