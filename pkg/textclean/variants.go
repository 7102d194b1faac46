package textclean

import (
	"regexp"

	"golang.org/x/net/html"

	"github.com/jmylchreest/textclean/pkg/cleaner"
)

var (
	skuRejectRegex   = regexp.MustCompile(`[^\p{L}\p{N}_\-.]`)
	priceRejectRegex = regexp.MustCompile(`[^\p{Nd}.,]`)
)

// CleanProductName cleans a product title with the configured pipeline.
func (c *Cleaner) CleanProductName(v any) string {
	return c.Clean(v)
}

// CleanBrand cleans a brand or vendor name with the configured pipeline.
func (c *Cleaner) CleanBrand(v any) string {
	return c.Clean(v)
}

// CleanSKU cleans v, keeps only letters, digits, '_', '-' and '.', and
// upper-cases the result.
func (c *Cleaner) CleanSKU(v any) string {
	text := c.Clean(v)
	if text == "" {
		return ""
	}
	return upper(skuRejectRegex.ReplaceAllLiteralString(text, ""))
}

// CleanDescription cleans long-form text keeping paragraphs and quotations.
// It always uses PresetDescription, whatever the receiver's configuration.
func (c *Cleaner) CleanDescription(v any) string {
	return descriptionCleaner.Clean(v)
}

// CleanPriceText decodes entities and keeps only digits, '.' and ','.
// Separators are left as found: "1.299,00" stays "1.299,00".
func (c *Cleaner) CleanPriceText(v any) string {
	text := cleaner.Text(v)
	if text == "" {
		return ""
	}
	text = html.UnescapeString(text)
	return trimSpace(priceRejectRegex.ReplaceAllLiteralString(text, ""))
}

// CleanURL trims v and removes invisible characters. Case, percent-encoding
// and everything else are left alone.
func (c *Cleaner) CleanURL(v any) string {
	text := cleaner.Text(v)
	if text == "" {
		return ""
	}
	return removeInvisible(trimSpace(text))
}

// CleanEmail trims and lower-cases v, then drops invisible characters and
// special spaces.
func (c *Cleaner) CleanEmail(v any) string {
	text := cleaner.Text(v)
	if text == "" {
		return ""
	}
	text = lower(trimSpace(text))
	return removeSpecialSpaces(removeInvisible(text))
}
