package mqtt

import (
	"regexp"
	"strings"
)

// Topic legality at the codec level is deliberately small: a topic name or
// filter must be non-empty and must not contain the NUL character. Wildcard
// placement is a concern for the session layer; ValidFilter and FilterRegexp
// are offered as helpers but never gate encoding or decoding.

// ValidName returns true if s is a legal topic name for a PUBLISH packet:
// non-empty, free of NUL and free of the '+' and '#' wildcards.
func ValidName(s string) bool {
	if !ValidTopic(s) {
		return false
	}
	return !strings.ContainsAny(s, "+#")
}

// ValidTopic returns true if s is non-empty and free of the NUL character.
// This is the only constraint the codec itself enforces on filters.
func ValidTopic(s string) bool {
	return s != "" && !strings.ContainsRune(s, 0)
}

// ValidFilter returns true if s is a legal subscription filter: a legal
// topic where '+' only occurs as a whole segment and '#' only as the whole
// last segment.
func ValidFilter(s string) bool {
	if !ValidTopic(s) {
		return false
	}
	segs := strings.Split(s, "/")
	for i, p := range segs {
		if strings.ContainsRune(p, '#') {
			if p != "#" || i != len(segs)-1 {
				return false
			}
		}
		if strings.ContainsRune(p, '+') && p != "+" {
			return false
		}
	}
	return true
}

// FilterRegexp compiles a subscription filter into a regexp that matches the
// topic names covered by that filter.
func FilterRegexp(filter string) *regexp.Regexp {
	w := strings.Builder{}
	w.WriteByte('^')
	for i, p := range strings.Split(filter, "/") {
		if i > 0 && p != "#" {
			w.WriteByte('/')
		}
		switch p {
		case "+":
			w.WriteString(`[^/]*`)
		case "#":
			if i > 0 {
				w.WriteString(`(/.*)?`)
			} else {
				w.WriteString(`.*`)
			}
		default:
			w.WriteString(regexp.QuoteMeta(p))
		}
	}
	w.WriteByte('$')
	return regexp.MustCompile(w.String())
}

// Matches returns true if the given topic name is covered by the given
// subscription filter. Names starting with '$' are only matched by filters
// that also start with '$'.
func Matches(filter, name string) bool {
	if strings.HasPrefix(name, "$") != strings.HasPrefix(filter, "$") {
		return false
	}
	return FilterRegexp(filter).MatchString(name)
}
