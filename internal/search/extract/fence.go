package extract

import (
	"strings"
	"unicode"
)

// StripCodeFence removes a markdown code fence wrapping model output, such as
// "```json\n{...}\n```". Anything after the last closing fence is dropped.
// Text without a leading fence is only trimmed.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	rest := strings.TrimPrefix(s, "```")
	// Language tag, if any, directly follows the opening fence
	tagEnd := strings.IndexFunc(rest, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	switch {
	case tagEnd > 0:
		rest = rest[tagEnd:]
	case tagEnd == -1:
		rest = ""
	}
	if end := strings.LastIndex(rest, "```"); end >= 0 {
		rest = rest[:end]
	}
	return strings.TrimSpace(rest)
}
