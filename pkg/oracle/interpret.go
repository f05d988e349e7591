package oracle

import "strings"

// Unknown is the fallback verdict for any reply that cannot be matched
// against the allowed vocabulary.
const Unknown = "Unknown"

// Interpret maps a raw oracle reply onto a closed vocabulary.
// The reply is trimmed of surrounding whitespace, then compared for exact,
// case-sensitive membership in allowed. No fuzzy or partial matching: a
// reply outside the vocabulary yields Unknown.
func Interpret(raw string, allowed []string) string {
	reply := strings.TrimSpace(raw)
	for _, candidate := range allowed {
		if reply == candidate {
			return candidate
		}
	}

	return Unknown
}
