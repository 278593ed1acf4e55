package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
	"github.com/Azterny/Brawl-Track-sub000/internal/repository"

	"github.com/rs/zerolog"
)

type ClubService struct {
	api     BrawlAPI
	lookups *repository.LookupRepository
	logger  zerolog.Logger
	now     func() time.Time
}

func NewClubService(api BrawlAPI, lookups *repository.LookupRepository, logger zerolog.Logger) *ClubService {
	return &ClubService{api: api, lookups: lookups, logger: logger, now: time.Now}
}

func (s *ClubService) LoadClub(ctx context.Context, tag, token string) (*domain.Club, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	s.logger.Info().Str("tag", tag).Msg("loading club")

	resp, err := s.api.GetClub(apiCtx, tag, token)
	if err != nil {
		s.logger.Error().Err(err).Str("tag", tag).Msg("failed to fetch club")
		return nil, fmt.Errorf("failed to fetch club: %w", err)
	}

	club := toClub(resp)
	if s.lookups != nil && club.Tag != "" {
		err := s.lookups.Record(ctx, domain.Lookup{
			Kind:     domain.LookupClub,
			Tag:      club.Tag,
			Name:     club.Name,
			Trophies: club.Trophies,
			SeenAt:   s.now(),
		})
		if err != nil {
			s.logger.Warn().Err(err).Str("tag", club.Tag).Msg("failed to record lookup")
		}
	}

	return &club, nil
}
