package chat

import "strings"

// nearMePhrases are the fixed intent markers that make an outbound
// message location-aware.
var nearMePhrases = []string{
	"near me",
	"nearby",
	"close to me",
	"around me",
}

// NeedsLocation reports whether the message asks about the user's
// surroundings and should carry coordinates. Matching is a
// case-insensitive substring check against the fixed phrase set.
func NeedsLocation(text string) bool {
	lower := strings.ToLower(text)
	for _, phrase := range nearMePhrases {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
