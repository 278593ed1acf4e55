package domain

import (
	"time"
)

type GlobalBrawler struct {
	ID   int
	Name string
}

type BrawlerProgress struct {
	ID              int
	Name            string
	Power           int
	Rank            int
	Trophies        int
	HighestTrophies int
	Gadgets         int
	StarPowers      int
}

type ClubRef struct {
	Tag  string
	Name string
}

type Player struct {
	Tag             string
	Name            string
	NameColor       string
	Trophies        int
	HighestTrophies int
	ExpLevel        int
	Club            *ClubRef
	Brawlers        []BrawlerProgress
}

type ClubMember struct {
	Tag       string
	Name      string
	NameColor string
	Role      string
	Trophies  int
}

type Club struct {
	Tag              string
	Name             string
	Description      string
	Type             string
	Trophies         int
	RequiredTrophies int
	Members          []ClubMember
}

type Battle struct {
	Time         time.Time
	Mode         string
	Map          string
	Type         string
	Result       string // "victory", "defeat", "draw" or empty for showdown
	Rank         int    // showdown placement, 0 otherwise
	TrophyChange int
}

type EventSlot struct {
	ID        int
	Mode      string
	Map       string
	StartTime time.Time
	EndTime   time.Time
}

// HistoryPoint is one archived trophy snapshot. BrawlerID is 0 for the
// account-wide total.
type HistoryPoint struct {
	Date      time.Time
	Trophies  int
	BrawlerID int
}

// Account is the user bound to a session token.
type Account struct {
	Username  string
	PlayerTag string
}

type Session struct {
	ID        string
	Token     string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type LookupKind string

const (
	LookupPlayer LookupKind = "player"
	LookupClub   LookupKind = "club"
)

type Lookup struct {
	Kind     LookupKind
	Tag      string
	Name     string
	Trophies int
	SeenAt   time.Time
}
