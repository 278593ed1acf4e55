package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"

	"github.com/Azterny/Brawl-Track-sub000/internal/cache"
	"github.com/Azterny/Brawl-Track-sub000/internal/config"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/database"
	fxmodules "github.com/Azterny/Brawl-Track-sub000/internal/fx"
	"github.com/Azterny/Brawl-Track-sub000/internal/middleware"
	"github.com/Azterny/Brawl-Track-sub000/internal/server"
	"github.com/Azterny/Brawl-Track-sub000/internal/web"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runServer),
	).Run()
}

func runServer(
	lc fx.Lifecycle,
	site *web.Server,
	statsServer *server.StatsServer,
	cfg *config.Config,
	db *sql.DB,
	responseCache cache.Cache,
	logger zerolog.Logger,
) {
	mux := http.NewServeMux()

	statsPath, statsHandler := server.NewStatsServiceHandler(statsServer)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	mux.Handle(statsPath, c.Handler(statsHandler))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.Check(r.Context(), db); err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("health check failed")
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("OK"))
	})
	mux.Handle("/", site)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.ServerPort),
		Handler: middleware.RequestID(logger)(mux),
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				logger.Info().Str("addr", srv.Addr).Str("api", cfg.APIBaseURL).Msg("server starting")
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}

			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			if closer, ok := responseCache.(interface{ Close() error }); ok {
				if err := closer.Close(); err != nil {
					logger.Warn().Err(err).Msg("error closing cache")
				}
			}

			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}
