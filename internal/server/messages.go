package server

type PlayerRequest struct {
	Tag string `json:"tag"`
}

type ClubRef struct {
	Tag  string `json:"tag"`
	Name string `json:"name"`
}

type Brawler struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Unlocked bool   `json:"unlocked"`
	Power    int    `json:"power,omitempty"`
	Trophies int    `json:"trophies,omitempty"`
	ImageURL string `json:"imageUrl"`
}

type PlayerResponse struct {
	Tag              string    `json:"tag"`
	Name             string    `json:"name"`
	NameColor        string    `json:"nameColor,omitempty"`
	Trophies         int       `json:"trophies"`
	HighestTrophies  int       `json:"highestTrophies"`
	ExpLevel         int       `json:"expLevel"`
	Club             *ClubRef  `json:"club,omitempty"`
	Brawlers         []Brawler `json:"brawlers"`
	UnlockedCount    int       `json:"unlockedCount"`
	CatalogAvailable bool      `json:"catalogAvailable"`
	BattlesAvailable bool      `json:"battlesAvailable"`
	WinRate          int       `json:"winRate"`
	TrophyDelta      int       `json:"trophyDelta"`
}

type ClubRequest struct {
	Tag string `json:"tag"`
}

type ClubMember struct {
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Trophies int    `json:"trophies"`
	Path     string `json:"path"`
}

type ClubResponse struct {
	Tag              string       `json:"tag"`
	Name             string       `json:"name"`
	Description      string       `json:"description,omitempty"`
	Trophies         int          `json:"trophies"`
	RequiredTrophies int          `json:"requiredTrophies"`
	Members          []ClubMember `json:"members"`
}

type EventsRequest struct{}

type Event struct {
	ID       int    `json:"id"`
	Mode     string `json:"mode"`
	Map      string `json:"map"`
	EndTime  string `json:"endTime,omitempty"`
	ImageURL string `json:"imageUrl"`
}

type EventsResponse struct {
	Events []Event `json:"events"`
}

type TrophyChartRequest struct {
	Tag       string `json:"tag"`
	BrawlerID int    `json:"brawlerId,omitempty"`
	// Window is "all", a day count ("30", "7d") or a duration ("12h").
	Window string `json:"window,omitempty"`
}

type SearchSuggestionsRequest struct {
	Query string `json:"query"`
}

type Suggestion struct {
	Kind     string `json:"kind"`
	Tag      string `json:"tag"`
	Name     string `json:"name"`
	Trophies int    `json:"trophies"`
	Path     string `json:"path"`
}

type SearchSuggestionsResponse struct {
	Suggestions []Suggestion `json:"suggestions"`
}
