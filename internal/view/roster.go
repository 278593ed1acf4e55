package view

import (
	"sort"

	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
)

type RosterEntry struct {
	ID         int
	Name       string
	Unlocked   bool
	Power      int
	Rank       int
	Trophies   int
	Gadgets    int
	StarPowers int
}

// MergeRoster marks every catalog brawler as locked or unlocked against the
// owned list. Unlocked entries come first by trophies descending, locked
// entries follow by id ascending. Owned brawlers absent from the catalog are
// kept as unlocked.
func MergeRoster(catalog []domain.GlobalBrawler, owned []domain.BrawlerProgress) []RosterEntry {
	byID := make(map[int]domain.BrawlerProgress, len(owned))
	for _, b := range owned {
		byID[b.ID] = b
	}

	roster := make([]RosterEntry, 0, len(catalog)+len(owned))
	seen := make(map[int]bool, len(catalog))
	for _, g := range catalog {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true

		entry := RosterEntry{ID: g.ID, Name: g.Name}
		if b, ok := byID[g.ID]; ok {
			entry = unlocked(b)
			if entry.Name == "" {
				entry.Name = g.Name
			}
		}
		roster = append(roster, entry)
	}
	for _, b := range owned {
		if !seen[b.ID] {
			seen[b.ID] = true
			roster = append(roster, unlocked(b))
		}
	}

	SortRoster(roster)
	return roster
}

func unlocked(b domain.BrawlerProgress) RosterEntry {
	return RosterEntry{
		ID:         b.ID,
		Name:       b.Name,
		Unlocked:   true,
		Power:      b.Power,
		Rank:       b.Rank,
		Trophies:   b.Trophies,
		Gadgets:    b.Gadgets,
		StarPowers: b.StarPowers,
	}
}

func SortRoster(roster []RosterEntry) {
	sort.SliceStable(roster, func(i, j int) bool {
		a, b := roster[i], roster[j]
		if a.Unlocked != b.Unlocked {
			return a.Unlocked
		}
		if a.Unlocked && a.Trophies != b.Trophies {
			return a.Trophies > b.Trophies
		}
		return a.ID < b.ID
	})
}

func UnlockedCount(roster []RosterEntry) int {
	n := 0
	for _, e := range roster {
		if e.Unlocked {
			n++
		}
	}
	return n
}
