package textclean

import "golang.org/x/text/unicode/norm"

var (
	defaultCleaner     = MustNew()
	multilineCleaner   = MustNew(WithConfig(PresetMultiline()))
	keepQuotesCleaner  = MustNew(WithConfig(PresetKeepQuotes()))
	descriptionCleaner = MustNew(WithConfig(PresetDescription()))
)

// Default returns the shared Cleaner behind the package-level functions.
func Default() *Cleaner {
	return defaultCleaner
}

// Clean cleans v with DefaultConfig.
func Clean(v any) string { return defaultCleaner.Clean(v) }

// CleanMultiline cleans v keeping line structure.
func CleanMultiline(v any) string { return multilineCleaner.Clean(v) }

// CleanKeepQuotes cleans v leaving quotation marks in place.
func CleanKeepQuotes(v any) string { return keepQuotesCleaner.Clean(v) }

func CleanProductName(v any) string { return defaultCleaner.CleanProductName(v) }

func CleanBrand(v any) string { return defaultCleaner.CleanBrand(v) }

func CleanSKU(v any) string { return defaultCleaner.CleanSKU(v) }

func CleanDescription(v any) string { return defaultCleaner.CleanDescription(v) }

func CleanPriceText(v any) string { return defaultCleaner.CleanPriceText(v) }

func CleanURL(v any) string { return defaultCleaner.CleanURL(v) }

func CleanEmail(v any) string { return defaultCleaner.CleanEmail(v) }

func NormalizeUnicode(text string, form norm.Form) string {
	return defaultCleaner.NormalizeUnicode(text, form)
}

func RemoveAccents(text string) string { return defaultCleaner.RemoveAccents(text) }

func Truncate(text string, maxLength int) string {
	return defaultCleaner.Truncate(text, maxLength)
}

func IsEmpty(v any) bool { return defaultCleaner.IsEmpty(v) }
