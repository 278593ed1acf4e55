package service

import (
	"fmt"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/api"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
)

const battleTimeLayout = "20060102T150405.000Z"

func toCatalog(resp *api.BrawlersResponse) []domain.GlobalBrawler {
	if resp == nil {
		return nil
	}
	out := make([]domain.GlobalBrawler, 0, len(resp.Items))
	for _, b := range resp.Items {
		out = append(out, domain.GlobalBrawler{ID: b.ID, Name: b.Name})
	}
	return out
}

func toPlayer(p *api.PlayerData) domain.Player {
	player := domain.Player{
		Tag:             p.Tag,
		Name:            p.Name,
		NameColor:       p.NameColor,
		Trophies:        p.Trophies,
		HighestTrophies: p.HighestTrophies,
		ExpLevel:        p.ExpLevel,
		Brawlers:        make([]domain.BrawlerProgress, 0, len(p.Brawlers)),
	}
	if p.Club.Tag != "" {
		player.Club = &domain.ClubRef{Tag: p.Club.Tag, Name: p.Club.Name}
	}
	for _, b := range p.Brawlers {
		player.Brawlers = append(player.Brawlers, domain.BrawlerProgress{
			ID:              b.ID,
			Name:            b.Name,
			Power:           b.Power,
			Rank:            b.Rank,
			Trophies:        b.Trophies,
			HighestTrophies: b.HighestTrophies,
			Gadgets:         len(b.Gadgets),
			StarPowers:      len(b.StarPowers),
		})
	}
	return player
}

func toBattles(resp *api.BattleLogResponse) []domain.Battle {
	if resp == nil {
		return nil
	}
	out := make([]domain.Battle, 0, len(resp.Items))
	for _, item := range resp.Items {
		t, _ := time.Parse(battleTimeLayout, item.BattleTime)
		mode := item.Event.Mode
		if mode == "" {
			mode = item.Battle.Mode
		}
		out = append(out, domain.Battle{
			Time:         t,
			Mode:         mode,
			Map:          item.Event.Map,
			Type:         item.Battle.Type,
			Result:       item.Battle.Result,
			Rank:         item.Battle.Rank,
			TrophyChange: item.Battle.TrophyChange,
		})
	}
	return out
}

func toClub(c *api.ClubData) domain.Club {
	club := domain.Club{
		Tag:              c.Tag,
		Name:             c.Name,
		Description:      c.Description,
		Type:             c.Type,
		Trophies:         c.Trophies,
		RequiredTrophies: c.RequiredTrophies,
		Members:          make([]domain.ClubMember, 0, len(c.Members)),
	}
	for _, m := range c.Members {
		club.Members = append(club.Members, domain.ClubMember{
			Tag:       m.Tag,
			Name:      m.Name,
			NameColor: m.NameColor,
			Role:      m.Role,
			Trophies:  m.Trophies,
		})
	}
	return club
}

func toRotation(slots []api.EventSlotData) []domain.EventSlot {
	out := make([]domain.EventSlot, 0, len(slots))
	for _, s := range slots {
		start, _ := time.Parse(battleTimeLayout, s.StartTime)
		end, _ := time.Parse(battleTimeLayout, s.EndTime)
		out = append(out, domain.EventSlot{
			ID:        s.Event.ID,
			Mode:      s.Event.Mode,
			Map:       s.Event.Map,
			StartTime: start,
			EndTime:   end,
		})
	}
	return out
}

var historyDateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

func parseHistoryDate(s string) (time.Time, error) {
	for _, layout := range historyDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized history date %q", s)
}

// toHistory drops points whose date cannot be parsed.
func toHistory(points []api.HistoryPointData) []domain.HistoryPoint {
	out := make([]domain.HistoryPoint, 0, len(points))
	for _, p := range points {
		d, err := parseHistoryDate(p.Date)
		if err != nil {
			continue
		}
		out = append(out, domain.HistoryPoint{Date: d, Trophies: p.Trophies, BrawlerID: p.BrawlerID})
	}
	return out
}
