package service

import (
	"context"
	"strings"

	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
	"github.com/Azterny/Brawl-Track-sub000/internal/repository"

	"github.com/rs/zerolog"
)

type SearchService struct {
	lookups *repository.LookupRepository
	logger  zerolog.Logger
}

func NewSearchService(lookups *repository.LookupRepository, logger zerolog.Logger) *SearchService {
	return &SearchService{lookups: lookups, logger: logger}
}

func (s *SearchService) Suggestions(ctx context.Context, query string) ([]domain.Lookup, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	query = strings.TrimSpace(query)
	s.logger.Debug().Str("query", query).Msg("searching lookups")

	found, err := s.lookups.Search(ctx, query, constants.SearchSuggestionLimit)
	if err != nil {
		s.logger.Error().Err(err).Str("query", query).Msg("failed to search lookups")
		return nil, err
	}

	s.logger.Info().Int("count", len(found)).Str("query", query).Msg("search completed")
	return found, nil
}
