package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/chart"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"

	"github.com/rs/zerolog"
)

type ChartRequest struct {
	Tag       string
	BrawlerID int
	Window    chart.Window
	// Live is the currently known trophy count. When nil it is read from the
	// player profile.
	Live  *int
	Token string
}

// HistoryService turns trophy archives into chart series.
type HistoryService struct {
	api    BrawlAPI
	logger zerolog.Logger
	now    func() time.Time
}

func NewHistoryService(api BrawlAPI, logger zerolog.Logger) *HistoryService {
	return &HistoryService{api: api, logger: logger, now: time.Now}
}

// TrophyChart fails when the archive cannot be fetched. A missing live value
// only drops the live point.
func (s *HistoryService) TrophyChart(ctx context.Context, req ChartRequest) (chart.Series, error) {
	apiCtx, cancel := context.WithTimeout(ctx, constants.ExternalAPITimeout)
	defer cancel()

	resp, err := s.api.GetHistory(apiCtx, req.Tag, req.BrawlerID, req.Token)
	if err != nil {
		s.logger.Error().Err(err).Str("tag", req.Tag).Int("brawler_id", req.BrawlerID).Msg("failed to fetch trophy history")
		return chart.Series{}, fmt.Errorf("failed to fetch trophy history: %w", err)
	}

	live := req.Live
	if live == nil {
		live = s.liveTrophies(apiCtx, req)
	}

	return chart.Build(toHistory(resp), req.Window, s.now(), live), nil
}

func (s *HistoryService) liveTrophies(ctx context.Context, req ChartRequest) *int {
	profile, err := s.api.GetPlayer(ctx, req.Tag, req.Token)
	if err != nil {
		s.logger.Warn().Err(err).Str("tag", req.Tag).Msg("live trophies unavailable")
		return nil
	}
	if req.BrawlerID == 0 {
		return &profile.Trophies
	}
	for _, b := range profile.Brawlers {
		if b.ID == req.BrawlerID {
			trophies := b.Trophies
			return &trophies
		}
	}
	return nil
}
