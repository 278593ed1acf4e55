package api

type ErrorResponse struct {
	Message string `json:"message"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type AccountData struct {
	Username  string `json:"username"`
	PlayerTag string `json:"player_tag"`
}

type BrawlersResponse struct {
	Items []BrawlerData `json:"items"`
}

type BrawlerData struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type EventSlotData struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Event     struct {
		ID   int    `json:"id"`
		Mode string `json:"mode"`
		Map  string `json:"map"`
	} `json:"event"`
}

type PlayerData struct {
	Tag             string `json:"tag"`
	Name            string `json:"name"`
	NameColor       string `json:"nameColor"`
	Trophies        int    `json:"trophies"`
	HighestTrophies int    `json:"highestTrophies"`
	ExpLevel        int    `json:"expLevel"`
	Club            struct {
		Tag  string `json:"tag"`
		Name string `json:"name"`
	} `json:"club"`
	Brawlers []PlayerBrawlerData `json:"brawlers"`
}

type PlayerBrawlerData struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	Power           int    `json:"power"`
	Rank            int    `json:"rank"`
	Trophies        int    `json:"trophies"`
	HighestTrophies int    `json:"highestTrophies"`
	Gadgets         []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"gadgets"`
	StarPowers []struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	} `json:"starPowers"`
}

type BattleLogResponse struct {
	Items []BattleLogItem `json:"items"`
}

type BattleLogItem struct {
	BattleTime string `json:"battleTime"`
	Event      struct {
		ID   int    `json:"id"`
		Mode string `json:"mode"`
		Map  string `json:"map"`
	} `json:"event"`
	Battle struct {
		Mode         string `json:"mode"`
		Type         string `json:"type"`
		Result       string `json:"result"`
		Rank         int    `json:"rank"`
		TrophyChange int    `json:"trophyChange"`
	} `json:"battle"`
}

type ClubData struct {
	Tag              string           `json:"tag"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Type             string           `json:"type"`
	Trophies         int              `json:"trophies"`
	RequiredTrophies int              `json:"requiredTrophies"`
	Members          []ClubMemberData `json:"members"`
}

type ClubMemberData struct {
	Tag       string `json:"tag"`
	Name      string `json:"name"`
	NameColor string `json:"nameColor"`
	Role      string `json:"role"`
	Trophies  int    `json:"trophies"`
}

type HistoryPointData struct {
	Date      string `json:"date"`
	Trophies  int    `json:"trophies"`
	BrawlerID int    `json:"brawler_id,omitempty"`
}
