package view

import (
	"math"
	"sort"

	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
)

type BattleSummary struct {
	Battles     []domain.Battle
	Wins        int
	WinRate     int
	TrophyDelta int
}

// SummarizeBattles keeps the most recent limit battles and computes the win
// rate over them as round(100*wins/n), 0 for an empty log.
func SummarizeBattles(log []domain.Battle, limit int) BattleSummary {
	recent := make([]domain.Battle, len(log))
	copy(recent, log)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].Time.After(recent[j].Time)
	})
	if limit > 0 && len(recent) > limit {
		recent = recent[:limit]
	}

	s := BattleSummary{Battles: recent}
	for _, b := range recent {
		if IsWin(b) {
			s.Wins++
		}
		s.TrophyDelta += b.TrophyChange
	}
	s.WinRate = WinRate(s.Wins, len(recent))
	return s
}

// IsWin treats an explicit victory as a win. Battles without a result
// (showdown) count as a win when they gained trophies.
func IsWin(b domain.Battle) bool {
	if b.Result != "" {
		return b.Result == "victory"
	}
	return b.TrophyChange > 0
}

func WinRate(wins, n int) int {
	if n == 0 {
		return 0
	}
	return int(math.Round(100 * float64(wins) / float64(n)))
}
