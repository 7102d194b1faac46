package textclean

import "errors"

var (
	// ErrInvalidConfig is returned when a Config fails validation.
	ErrInvalidConfig = errors.New("invalid cleaner config")

	// ErrInvalidAllowedChars is returned when AllowedChars does not compile
	// as the body of a character class.
	ErrInvalidAllowedChars = errors.New("invalid allowed_chars character class")

	// ErrUnknownForm is returned by ParseForm for names other than NFC, NFD, NFKC and NFKD.
	ErrUnknownForm = errors.New("unknown unicode normalization form")
)
