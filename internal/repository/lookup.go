package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/Azterny/Brawl-Track-sub000/internal/db"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"

	"github.com/rs/zerolog"
)

// LookupRepository remembers the players and clubs recently viewed, feeding
// search suggestions.
type LookupRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
}

func NewLookupRepository(queries *db.Queries, logger zerolog.Logger) *LookupRepository {
	return &LookupRepository{queries: queries, logger: logger}
}

func (r *LookupRepository) Record(ctx context.Context, l domain.Lookup) error {
	err := r.queries.UpsertLookup(ctx, db.Lookup{
		Kind:     string(l.Kind),
		Tag:      l.Tag,
		Name:     l.Name,
		Trophies: int64(l.Trophies),
		SeenAt:   l.SeenAt,
	})
	if err != nil {
		return fmt.Errorf("failed to record lookup: %w", err)
	}
	return nil
}

func (r *LookupRepository) Search(ctx context.Context, query string, limit int) ([]domain.Lookup, error) {
	pattern := "%" + escapeLike(query) + "%"
	rows, err := r.queries.SearchLookups(ctx, db.SearchLookupsParams{
		Name:  pattern,
		Tag:   pattern,
		Limit: int64(limit),
	})
	if err != nil {
		return nil, err
	}

	result := make([]domain.Lookup, len(rows))
	for i, l := range rows {
		result[i] = domain.Lookup{
			Kind:     domain.LookupKind(l.Kind),
			Tag:      l.Tag,
			Name:     l.Name,
			Trophies: int(l.Trophies),
			SeenAt:   l.SeenAt,
		}
	}
	return result, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
