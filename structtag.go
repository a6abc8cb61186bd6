package keyopts

import (
	"strings"
)

// parseStructTagInner parses the inside of an `opts:"..."` tag into a map.
// Entries are separated by commas and are either a bare key or key=value.
// Values may be wrapped in single quotes to include commas. Spaces outside
// quotes are dropped from keys.
func parseStructTagInner(tagInner string) map[string]string {
	ret := map[string]string{}

	var key, val strings.Builder
	inKey, inQuote := true, false
	flush := func() {
		if key.Len() > 0 || !inKey {
			ret[key.String()] = val.String()
		}
		key.Reset()
		val.Reset()
		inKey = true
	}

	for _, c := range tagInner {
		switch {
		case inQuote:
			if c == '\'' {
				inQuote = false
			} else {
				val.WriteRune(c)
			}
		case c == ',':
			flush()
		case inKey && c == '=':
			inKey = false
		case inKey && c == ' ':
		case inKey:
			key.WriteRune(c)
		case c == '\'':
			inQuote = true
		default:
			val.WriteRune(c)
		}
	}
	if key.Len() > 0 {
		flush()
	}

	return ret
}
