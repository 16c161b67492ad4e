package deserialize

import (
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// lossyMarker precedes four hex digits naming a code unit the producer
// could not store as UTF-8.
const lossyMarker = "\uFFFD"

// unescapeLossy replaces every U+FFFD followed by four hex digits with the
// code unit they name. Surrogate pairs are joined; lone surrogates have no
// UTF-8 form and become U+FFFD.
func unescapeLossy(s string) string {
	if !strings.Contains(s, lossyMarker) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for {
		i := strings.Index(s, lossyMarker)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}
		b.WriteString(s[:i])
		s = s[i+len(lossyMarker):]
		cu, ok := hex4(s)
		if !ok {
			b.WriteString(lossyMarker)
			continue
		}
		s = s[4:]
		r := rune(cu)
		if utf16.IsSurrogate(r) && strings.HasPrefix(s, lossyMarker) {
			if lo, ok := hex4(s[len(lossyMarker):]); ok {
				if pair := utf16.DecodeRune(r, rune(lo)); pair != utf8.RuneError {
					s = s[len(lossyMarker)+4:]
					r = pair
				}
			}
		}
		b.WriteRune(r)
	}
}

func hex4(s string) (uint16, bool) {
	if len(s) < 4 {
		return 0, false
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, false
	}
	return uint16(v), true
}
