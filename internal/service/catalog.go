package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/cache"
	"github.com/Azterny/Brawl-Track-sub000/internal/config"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"

	"github.com/rs/zerolog"
)

const (
	catalogCacheKey  = "catalog"
	rotationCacheKey = "rotation"
)

// CatalogService serves the shared, rarely changing resources: the global
// brawler catalog and the event rotation.
type CatalogService struct {
	api         BrawlAPI
	cache       cache.Cache
	catalogTTL  time.Duration
	rotationTTL time.Duration
	logger      zerolog.Logger
}

// NewCatalogService caches the catalog for cfg.CacheTTL. The rotation changes
// more often and is never kept longer than RotationCacheTTL.
func NewCatalogService(api BrawlAPI, c cache.Cache, cfg *config.Config, logger zerolog.Logger) *CatalogService {
	s := &CatalogService{
		api:         api,
		cache:       c,
		catalogTTL:  constants.CatalogCacheTTL,
		rotationTTL: constants.RotationCacheTTL,
		logger:      logger,
	}
	if cfg.CacheTTL > 0 {
		s.catalogTTL = cfg.CacheTTL
		s.rotationTTL = min(cfg.CacheTTL, constants.RotationCacheTTL)
	}
	return s
}

// Catalog never fails a view: errors come back degraded.
func (s *CatalogService) Catalog(ctx context.Context) Result[[]domain.GlobalBrawler] {
	var catalog []domain.GlobalBrawler
	if ok, err := s.cache.Get(ctx, catalogCacheKey, &catalog); err == nil && ok {
		return Success(catalog)
	} else if err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache read failed")
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	resp, err := s.api.GetBrawlers(apiCtx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to fetch brawler catalog")
		return Degraded[[]domain.GlobalBrawler](fmt.Errorf("failed to fetch brawler catalog: %w", err))
	}

	catalog = toCatalog(resp)
	if err := s.cache.Set(ctx, catalogCacheKey, catalog, s.catalogTTL); err != nil {
		s.logger.Warn().Err(err).Msg("catalog cache write failed")
	}
	return Success(catalog)
}

// Rotation is the primary resource of the home view.
func (s *CatalogService) Rotation(ctx context.Context) Result[[]domain.EventSlot] {
	var slots []domain.EventSlot
	if ok, err := s.cache.Get(ctx, rotationCacheKey, &slots); err == nil && ok {
		return Success(slots)
	} else if err != nil {
		s.logger.Warn().Err(err).Msg("rotation cache read failed")
	}

	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	resp, err := s.api.GetRotation(apiCtx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to fetch event rotation")
		return Failed[[]domain.EventSlot](fmt.Errorf("failed to fetch event rotation: %w", err))
	}

	slots = toRotation(resp)
	if err := s.cache.Set(ctx, rotationCacheKey, slots, s.rotationTTL); err != nil {
		s.logger.Warn().Err(err).Msg("rotation cache write failed")
	}
	return Success(slots)
}
