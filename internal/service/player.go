package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/api"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
	"github.com/Azterny/Brawl-Track-sub000/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type PlayerView struct {
	Profile domain.Player
	Catalog Result[[]domain.GlobalBrawler]
	Battles Result[[]domain.Battle]
	History Result[[]domain.HistoryPoint]
}

type PlayerService struct {
	api     BrawlAPI
	catalog *CatalogService
	lookups *repository.LookupRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewPlayerService(api BrawlAPI, catalog *CatalogService, lookups *repository.LookupRepository, logger zerolog.Logger) *PlayerService {
	return &PlayerService{api: api, catalog: catalog, lookups: lookups, logger: logger, now: time.Now}
}

type loadOptions struct {
	skipHistory bool
}

type LoadOption func(*loadOptions)

// WithoutHistory leaves the trophy archive unfetched; PlayerView.History is
// reported as skipped.
func WithoutHistory() LoadOption {
	return func(o *loadOptions) { o.skipHistory = true }
}

// LoadPlayer fetches the profile together with the battle log, the brawler
// catalog and the trophy archive. Only a profile failure is returned as an
// error.
func (s *PlayerService) LoadPlayer(ctx context.Context, tag, token string, opts ...LoadOption) (*PlayerView, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	s.logger.Info().Str("tag", tag).Msg("loading player")

	apiCtx, apiCancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer apiCancel()

	var (
		view    PlayerView
		profile *api.PlayerData
	)

	g, gCtx := errgroup.WithContext(apiCtx)
	g.Go(func() error {
		var err error
		profile, err = s.api.GetPlayer(gCtx, tag, token)
		return err
	})
	g.Go(func() error {
		view.Catalog = s.catalog.Catalog(gCtx)
		return nil
	})
	g.Go(func() error {
		resp, err := s.api.GetBattleLog(gCtx, tag, token)
		if err != nil {
			s.logger.Warn().Err(err).Str("tag", tag).Msg("failed to fetch battle log")
			view.Battles = Degraded[[]domain.Battle](err)
			return nil
		}
		view.Battles = Success(toBattles(resp))
		return nil
	})
	if o.skipHistory {
		view.History = Skipped[[]domain.HistoryPoint]()
	} else {
		g.Go(func() error {
			points, err := s.api.GetHistory(gCtx, tag, 0, token)
			if err != nil {
				s.logger.Warn().Err(err).Str("tag", tag).Msg("failed to fetch trophy history")
				view.History = Degraded[[]domain.HistoryPoint](err)
				return nil
			}
			view.History = Success(toHistory(points))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("tag", tag).Msg("failed to fetch player")
		return nil, fmt.Errorf("failed to fetch player: %w", err)
	}

	view.Profile = toPlayer(profile)
	s.record(ctx, domain.Lookup{
		Kind:     domain.LookupPlayer,
		Tag:      view.Profile.Tag,
		Name:     view.Profile.Name,
		Trophies: view.Profile.Trophies,
		SeenAt:   s.now(),
	})

	s.logger.Info().Str("tag", tag).Msg("player loaded")
	return &view, nil
}

// record is best effort; a failed insert only costs a search suggestion.
func (s *PlayerService) record(ctx context.Context, l domain.Lookup) {
	if s.lookups == nil || l.Tag == "" {
		return
	}
	if err := s.lookups.Record(ctx, l); err != nil {
		s.logger.Warn().Err(err).Str("tag", l.Tag).Msg("failed to record lookup")
	}
}

// IsNotFound reports whether err means the requested player or club does not
// exist.
func IsNotFound(err error) bool {
	return errors.Is(err, api.ErrNotFound)
}

// IsUnauthorized reports whether the API rejected the session token.
func IsUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized)
}
