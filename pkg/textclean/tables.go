package textclean

import "unicode"

type runeSet map[rune]struct{}

func newRuneSet(rs ...rune) runeSet {
	s := make(runeSet, len(rs))
	for _, r := range rs {
		s[r] = struct{}{}
	}
	return s
}

func (s runeSet) has(r rune) bool {
	_, ok := s[r]
	return ok
}

// quoteSet holds every quotation mark variant the quote stage replaces.
var quoteSet = newRuneSet(
	'"', '\'', // ASCII
	'\u00ab', '\u00bb', // guillemets
	'\u2039', '\u203a', // single guillemets
	'\u201e', '\u201a', // low-9 (German)
	'\u201c', '\u201d', '\u201f', // double curly, double high-reversed
	'\u2018', '\u2019', '\u201b', // single curly, single high-reversed
	'`', '\u00b4', // backtick, acute
	'\u2033', '\u2032', // primes
	'\u301d', '\u301e', '\u301f', // CJK
	'\uff02', '\uff07', // fullwidth
)

// specialSpaceSet holds whitespace codepoints beyond ASCII space and tab.
// Each one maps to a plain space.
var specialSpaceSet = newRuneSet(
	'\u00a0', // no-break space
	'\u2000', // en quad
	'\u2001', // em quad
	'\u2002', // en space
	'\u2003', // em space
	'\u2004', // three-per-em space
	'\u2005', // four-per-em space
	'\u2006', // six-per-em space
	'\u2007', // figure space
	'\u2008', // punctuation space
	'\u2009', // thin space
	'\u200a', // hair space
	'\u200b', // zero-width space
	'\u202f', // narrow no-break space
	'\u205f', // medium mathematical space
	'\u3000', // ideographic space
	'\ufeff', // BOM
)

// dashSet holds dash and hyphen lookalikes. Each one maps to '-'.
var dashSet = newRuneSet(
	'\u2013', // en dash
	'\u2014', // em dash
	'\u2015', // horizontal bar
	'\u2010', // hyphen
	'\u2011', // non-breaking hyphen
	'\u2012', // figure dash
	'\u2212', // minus sign
	'\u2043', // hyphen bullet
	'\u2e3a', // two-em dash
	'\u2e3b', // three-em dash
	'\ufe58', // small em dash
	'\ufe63', // small hyphen-minus
	'\uff0d', // fullwidth hyphen-minus
)

// invisibleSet holds control characters (except tab, newline and carriage
// return), zero-width joiners and invalid or replacement codepoints.
var invisibleSet = func() runeSet {
	s := newRuneSet(
		'\u200c', // zero-width non-joiner
		'\u200d', // zero-width joiner
		'\u2060', // word joiner
		'\u2061', // function application
		'\u2062', // invisible times
		'\u2063', // invisible separator
		'\u2064', // invisible plus
		'\ufffe', // noncharacter
		'\uffff', // noncharacter
		'\ufffd', // replacement character
	)
	for r := rune(0); r < 0x20; r++ {
		if r != '\t' && r != '\n' && r != '\r' {
			s[r] = struct{}{}
		}
	}
	return s
}()

type entity struct {
	name        string
	replacement string
}

// htmlEntities is applied after generic entity decoding, in order, one
// replacement pass per entry. Order matters: text such as "&amp;nbsp;" is
// first decoded to "&nbsp;" and then hits the nbsp entry.
var htmlEntities = []entity{
	{"&nbsp;", " "},
	{"&amp;", "&"},
	{"&lt;", "<"},
	{"&gt;", ">"},
	{"&quot;", `"`},
	{"&apos;", "'"},
	{"&#39;", "'"},
	{"&#34;", `"`},
	{"&mdash;", "-"},
	{"&ndash;", "-"},
	{"&bull;", "\u2022"},
	{"&copy;", "\u00a9"},
	{"&reg;", "\u00ae"},
	{"&trade;", "\u2122"},
	{"&euro;", "\u20ac"},
	{"&pound;", "\u00a3"},
	{"&yen;", "\u00a5"},
	{"&cent;", "\u00a2"},
	{"&deg;", "\u00b0"},
	{"&plusmn;", "\u00b1"},
	{"&times;", "\u00d7"},
	{"&divide;", "\u00f7"},
	{"&frac12;", "\u00bd"},
	{"&frac14;", "\u00bc"},
	{"&frac34;", "\u00be"},
}

// IsQuote reports whether r is removed by the quote stage.
func IsQuote(r rune) bool { return quoteSet.has(r) }

// IsSpecialSpace reports whether r is replaced by a plain space in the space stage.
func IsSpecialSpace(r rune) bool { return specialSpaceSet.has(r) }

// IsDash reports whether r is replaced by '-' in the dash stage.
func IsDash(r rune) bool { return dashSet.has(r) }

// IsInvisible reports whether r is removed by the invisible stage.
func IsInvisible(r rune) bool { return invisibleSet.has(r) }

// HTMLEntities returns a copy of the fixed entity table in application order.
func HTMLEntities() [][2]string {
	out := make([][2]string, len(htmlEntities))
	for i, e := range htmlEntities {
		out[i] = [2]string{e.name, e.replacement}
	}
	return out
}

// isSpace matches the whitespace notion used for trimming and blank-line
// detection: Unicode White_Space plus the ASCII information separators.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// spaceClass is the regexp character-class body equivalent of isSpace.
const spaceClass = `\t-\r\x{1c}-\x{20}\x{85}\p{Z}`
