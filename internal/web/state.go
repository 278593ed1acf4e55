package web

import (
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/chart"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
	"github.com/Azterny/Brawl-Track-sub000/internal/router"
	"github.com/Azterny/Brawl-Track-sub000/internal/service"
	"github.com/Azterny/Brawl-Track-sub000/internal/view"
)

// ViewState is everything one page render needs. It is created when a view
// is entered and dropped once the response is written.
type ViewState struct {
	Match   router.Match
	Session *domain.Session
	Title   string
	User    string
	Error   string
	Canvas  chart.Canvas

	Home      *HomePage
	Player    *PlayerPage
	Club      *ClubPage
	Dashboard *DashboardPage
}

type HomePage struct {
	Events []domain.EventSlot
}

type PlayerPage struct {
	Profile          domain.Player
	Roster           []view.RosterEntry
	Unlocked         int
	CatalogAvailable bool
	Battles          view.BattleSummary
	BattlesAvailable bool
	Chart            chart.Data
	ChartAvailable   bool
}

type ClubPage struct {
	Club    domain.Club
	Members []domain.ClubMember
}

type DashboardPage struct {
	Account domain.Account
	Player  *PlayerPage
}

// renderPlayer decides the presentation of each partially loaded resource.
func (st *ViewState) renderPlayer(pv *service.PlayerView, window chart.Window, now time.Time) *PlayerPage {
	catalog := pv.Catalog.Value
	page := &PlayerPage{
		Profile:          pv.Profile,
		Roster:           view.MergeRoster(catalog, pv.Profile.Brawlers),
		CatalogAvailable: pv.Catalog.OK(),
		BattlesAvailable: pv.Battles.OK(),
	}
	page.Unlocked = view.UnlockedCount(page.Roster)

	if page.BattlesAvailable {
		page.Battles = view.SummarizeBattles(pv.Battles.Value, constants.BattleLogDisplayLimit)
	}

	if pv.History.OK() {
		live := pv.Profile.Trophies
		st.Canvas.Replace(chart.Build(pv.History.Value, window, now, &live))
		if s, ok := st.Canvas.Current(); ok {
			page.Chart = s.Data()
			page.ChartAvailable = true
		}
	}
	return page
}

func sortedMembers(c *domain.Club) []domain.ClubMember {
	return view.SortMembers(c.Members)
}
