// Package menu implements the channel selector: the highlighted index, circular navigation and
// jump-to-name lookup. Rendering lives in the tui package.
package menu

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/leanback-cli/leanback/backend"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Selector tracks which channel is highlighted. The zero value is an empty, closed selector.
type Selector struct {
	Channels []backend.Channel
	Index    int
}

// Open loads channels and highlights currentID, or the first channel when it is absent.
func (s *Selector) Open(channels []backend.Channel, currentID backend.ID) {
	s.Channels = channels
	_, index, found := lo.FindIndexOf(channels, func(c backend.Channel) bool {
		return currentID != "" && c.ID == currentID
	})
	if !found {
		index = 0
	}
	s.Index = index
}

// Up moves the highlight up, wrapping from the first channel to the last.
func (s *Selector) Up() {
	if len(s.Channels) == 0 {
		return
	}
	s.Index = (s.Index - 1 + len(s.Channels)) % len(s.Channels)
}

// Down moves the highlight down, wrapping from the last channel to the first.
func (s *Selector) Down() {
	if len(s.Channels) == 0 {
		return
	}
	s.Index = (s.Index + 1) % len(s.Channels)
}

// Selected returns the highlighted channel.
func (s *Selector) Selected() mo.Option[backend.Channel] {
	if s.Index < 0 || s.Index >= len(s.Channels) {
		return mo.None[backend.Channel]()
	}
	return mo.Some(s.Channels[s.Index])
}

// Find highlights the channel whose name best matches query and reports whether one matched.
func (s *Selector) Find(query string) bool {
	index, ok := bestMatch(s.Channels, query)
	if ok {
		s.Index = index
	}
	return ok
}

// Closest resolves a channel by id or, failing that, by the best fuzzy match on its name.
func Closest(channels []backend.Channel, ref string) mo.Option[backend.Channel] {
	if byID, ok := lo.Find(channels, func(c backend.Channel) bool {
		return c.ID.String() == ref
	}); ok {
		return mo.Some(byID)
	}

	if index, ok := bestMatch(channels, ref); ok {
		return mo.Some(channels[index])
	}
	return mo.None[backend.Channel]()
}

func bestMatch(channels []backend.Channel, query string) (int, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0, false
	}

	candidates := lo.Filter(lo.Range(len(channels)), func(i int, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, channels[i].Name)
	})
	if len(candidates) == 0 {
		return 0, false
	}

	// Prefix matches win; ties go to the smallest edit distance, then to list order.
	score := func(i int) (bool, int) {
		name := strings.ToLower(channels[i].Name)
		return strings.HasPrefix(name, query), levenshtein.Distance(query, name)
	}

	return lo.MinBy(candidates, func(a, b int) bool {
		prefixA, distA := score(a)
		prefixB, distB := score(b)
		if prefixA != prefixB {
			return prefixA
		}
		return distA < distB
	}), true
}
