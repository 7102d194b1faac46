package cleaner

// FuncCleaner adapts a plain string function to the Cleaner interface.
type FuncCleaner struct {
	name string
	fn   func(string) string
}

// Func wraps fn as a named Cleaner.
func Func(name string, fn func(string) string) *FuncCleaner {
	return &FuncCleaner{name: name, fn: fn}
}

// Clean applies the wrapped function to the text form of v.
func (c *FuncCleaner) Clean(v any) string {
	return c.fn(Text(v))
}

// Name returns the name given to Func.
func (c *FuncCleaner) Name() string {
	return c.name
}
