package fx

import (
	"database/sql"

	"github.com/Azterny/Brawl-Track-sub000/internal/api"
	"github.com/Azterny/Brawl-Track-sub000/internal/cache"
	"github.com/Azterny/Brawl-Track-sub000/internal/config"
	"github.com/Azterny/Brawl-Track-sub000/internal/database"
	"github.com/Azterny/Brawl-Track-sub000/internal/db"
	"github.com/Azterny/Brawl-Track-sub000/internal/logger"
	"github.com/Azterny/Brawl-Track-sub000/internal/repository"
	"github.com/Azterny/Brawl-Track-sub000/internal/server"
	"github.com/Azterny/Brawl-Track-sub000/internal/service"
	"github.com/Azterny/Brawl-Track-sub000/internal/session"
	"github.com/Azterny/Brawl-Track-sub000/internal/web"

	"go.uber.org/fx"
)

func ProvideQueries(sqlDB *sql.DB) *db.Queries {
	return db.New(sqlDB)
}

func ProvideBrawlAPI(c *api.Client) service.BrawlAPI {
	return c
}

func ProvideSessionStore(r *repository.SessionRepository) session.Store {
	return r
}

var Module = fx.Options(
	logger.Module,
	fx.Provide(config.Load),
	fx.Provide(database.New),
	fx.Provide(ProvideQueries),
	fx.Provide(cache.New),
	// repos
	fx.Provide(repository.NewSessionRepository),
	fx.Provide(repository.NewLookupRepository),
	fx.Provide(ProvideSessionStore),
	// api client
	fx.Provide(api.NewClient),
	fx.Provide(ProvideBrawlAPI),
	// svc
	fx.Provide(service.NewCatalogService),
	fx.Provide(service.NewPlayerService),
	fx.Provide(service.NewClubService),
	fx.Provide(service.NewHistoryService),
	fx.Provide(service.NewAccountService),
	fx.Provide(service.NewSearchService),
	fx.Provide(session.NewManager),
	// server
	fx.Provide(web.NewServer),
	fx.Provide(server.NewStatsServer),
)
