package extract

import (
	"strings"
	"time"

	"github.com/pfrederiksen/gram-events/internal/dates"
)

// eventVocabulary is the fixed term list a caption must hit to be considered
// an event announcement at all.
var eventVocabulary = []string{
	"event", "party", "concert", "show", "festival", "gathering", "meetup",
	"launch", "opening", "premiere", "exhibition", "workshop", "seminar",
	"conference", "meet", "celebration", "ceremony", "reception", "dinner",
	"lunch", "brunch", "drunch", "ball", "masquerade", "karaoke", "live",
	"performance", "gig", "tour", "tournament", "competition", "race",
	"marathon", "walk", "run", "challenge", "contest", "auction", "sale",
	"fair", "market", "bazaar", "expo", "convention", "summit", "forum",
}

// locationCues are spatial prepositions and venue-type nouns that suggest
// the caption names a place.
var locationCues = []string{
	"at ", "in ", "venue", "location", "place", "club", "restaurant", "cafe", "bar",
}

// actionCues are call-to-action phrases typical of event announcements.
var actionCues = []string{
	"join", "come", "attend", "be there", "don't miss", "save the date", "rsvp",
}

// IsProspectiveEvent reports whether a caption describes a prospective event.
// The caption must contain an event-vocabulary term AND at least one
// supporting signal: a resolvable date, a resolvable time, a location cue, or
// a call-to-action phrase. Vocabulary alone or a signal alone is not enough;
// the rule favors precision over recall.
func IsProspectiveEvent(caption string, now time.Time) bool {
	lower := strings.ToLower(caption)

	if !containsAny(lower, eventVocabulary) {
		return false
	}

	if _, ok := dates.ResolveDate(caption, now); ok {
		return true
	}
	if _, ok := dates.ResolveTime(caption); ok {
		return true
	}
	return containsAny(lower, locationCues) || containsAny(lower, actionCues)
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
