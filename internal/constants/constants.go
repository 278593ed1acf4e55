package constants

import "time"

const (
	CatalogCacheTTL  = 10 * time.Minute
	RotationCacheTTL = 2 * time.Minute
)

const (
	ExternalAPITimeout = 10 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 30 * time.Second
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	SearchSuggestionLimit = 10
	BattleLogDisplayLimit = 10
)

const (
	SessionCookieName = "bt_session"
	SessionCookieTTL  = 365 * 24 * time.Hour
)

const (
	DefaultCDNBaseURL = "https://cdn.brawlify.com"
	FallbackImagePath = "/static/img/fallback.svg"
)
