package buffer

import (
	"slices"
	"unicode/utf16"

	"github.com/dmitrymomot/intl/pkg/status"
)

// UTF16 encodes s as UTF-16. Invalid UTF-8 becomes U+FFFD.
func UTF16(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// String16 decodes UTF-16 units. Unpaired surrogates become U+FFFD.
func String16(u []uint16) string {
	return string(utf16.Decode(u))
}

// Input16 reads caller supplied UTF-16 text of length units. Length -1 means
// the text is terminated by a zero unit.
func Input16(src []uint16, length int) (string, error) {
	switch {
	case length < -1:
		return "", status.Invalid("buffer.Input16", "invalid length %d", length)
	case length == -1:
		end := slices.Index(src, 0)
		if end < 0 {
			return "", status.Invalid("buffer.Input16", "missing terminator")
		}
		return String16(src[:end]), nil
	case length > len(src):
		return "", status.Invalid("buffer.Input16", "length %d exceeds input of %d units", length, len(src))
	}
	return String16(src[:length]), nil
}

// Len16 returns the length of s in UTF-16 units.
func Len16(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
