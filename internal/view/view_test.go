package view

import (
	"math/rand"
	"testing"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeRosterOrdering(t *testing.T) {
	catalog := []domain.GlobalBrawler{
		{ID: 5, Name: "E"}, {ID: 1, Name: "A"}, {ID: 3, Name: "C"}, {ID: 2, Name: "B"}, {ID: 4, Name: "D"},
	}
	owned := []domain.BrawlerProgress{
		{ID: 2, Trophies: 300, Power: 9},
		{ID: 4, Trophies: 800, Power: 11},
	}

	roster := MergeRoster(catalog, owned)

	ids := make([]int, len(roster))
	for i, e := range roster {
		ids[i] = e.ID
	}
	assert.Equal(t, []int{4, 2, 1, 3, 5}, ids)
	assert.Equal(t, 2, UnlockedCount(roster))
	assert.Equal(t, "D", roster[0].Name)
	assert.Equal(t, 11, roster[0].Power)
}

func TestMergeRosterKeepsUnknownOwned(t *testing.T) {
	roster := MergeRoster(
		[]domain.GlobalBrawler{{ID: 1, Name: "A"}},
		[]domain.BrawlerProgress{{ID: 99, Name: "NEW", Trophies: 10}},
	)
	require.Len(t, roster, 2)
	assert.Equal(t, 99, roster[0].ID)
	assert.True(t, roster[0].Unlocked)
	assert.False(t, roster[1].Unlocked)
}

func TestMergeRosterProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for iter := 0; iter < 200; iter++ {
		var catalog []domain.GlobalBrawler
		var owned []domain.BrawlerProgress
		for _, id := range rng.Perm(40) {
			catalog = append(catalog, domain.GlobalBrawler{ID: 16000000 + id})
			if rng.Intn(2) == 0 {
				owned = append(owned, domain.BrawlerProgress{ID: 16000000 + id, Trophies: rng.Intn(1000)})
			}
		}

		roster := MergeRoster(catalog, owned)
		require.Len(t, roster, len(catalog))

		seenLocked := false
		for i, e := range roster {
			if !e.Unlocked {
				seenLocked = true
			} else {
				assert.False(t, seenLocked, "unlocked entry after a locked one")
			}
			if i == 0 {
				continue
			}
			prev := roster[i-1]
			if prev.Unlocked && e.Unlocked {
				assert.GreaterOrEqual(t, prev.Trophies, e.Trophies)
			}
			if !prev.Unlocked && !e.Unlocked {
				assert.LessOrEqual(t, prev.ID, e.ID)
			}
		}
	}
}

func TestSortMembers(t *testing.T) {
	members := []domain.ClubMember{
		{Name: "b", Trophies: 100},
		{Name: "a", Trophies: 300},
		{Name: "c", Trophies: 100},
	}
	sorted := SortMembers(members)

	assert.Equal(t, []string{"a", "b", "c"}, []string{sorted[0].Name, sorted[1].Name, sorted[2].Name})
	assert.Equal(t, "b", members[0].Name, "input must not be reordered")
	assert.Equal(t, "Vice President", RoleLabel("vicePresident"))
	assert.Equal(t, "Member", RoleLabel("unknown"))
}

func TestSummarizeBattles(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var log []domain.Battle
	for i := 0; i < 12; i++ {
		b := domain.Battle{Time: base.Add(time.Duration(i) * time.Hour), Result: "defeat", TrophyChange: -5}
		if i%3 == 0 {
			b.Result = "victory"
			b.TrophyChange = 8
		}
		log = append(log, b)
	}

	s := SummarizeBattles(log, 10)
	require.Len(t, s.Battles, 10)
	assert.Equal(t, base.Add(11*time.Hour), s.Battles[0].Time)
	// kept hours 2..11; victories at 3, 6, 9
	assert.Equal(t, 3, s.Wins)
	assert.Equal(t, 30, s.WinRate)
	assert.Equal(t, 3*8-7*5, s.TrophyDelta)
}

func TestWinRate(t *testing.T) {
	assert.Equal(t, 0, WinRate(0, 0))
	assert.Equal(t, 67, WinRate(2, 3))
	assert.Equal(t, 33, WinRate(1, 3))
	assert.Equal(t, 100, WinRate(4, 4))

	for n := 1; n <= 30; n++ {
		for w := 0; w <= n; w++ {
			got := WinRate(w, n)
			exact := 100 * float64(w) / float64(n)
			assert.InDelta(t, exact, float64(got), 0.5)
		}
	}
}

func TestIsWinShowdown(t *testing.T) {
	assert.True(t, IsWin(domain.Battle{Rank: 1, TrophyChange: 10}))
	assert.False(t, IsWin(domain.Battle{Rank: 7, TrophyChange: -4}))
	assert.False(t, IsWin(domain.Battle{Result: "draw"}))
}

func TestAssets(t *testing.T) {
	a := Assets{BaseURL: "https://cdn.test", Fallback: "/f.png"}
	assert.Equal(t, "https://cdn.test/brawlers/borders/16000000.png", a.Brawler(16000000))
	assert.Equal(t, "https://cdn.test/game-modes/regular/gem-grab.png", a.Mode("gemGrab"))
	assert.Equal(t, "gem-grab", ModeSlug("Gem Grab"))
	assert.Equal(t, "showdown", ModeSlug("showdown"))
}
