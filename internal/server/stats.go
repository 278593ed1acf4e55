package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/chart"
	"github.com/Azterny/Brawl-Track-sub000/internal/config"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
	"github.com/Azterny/Brawl-Track-sub000/internal/router"
	"github.com/Azterny/Brawl-Track-sub000/internal/service"
	"github.com/Azterny/Brawl-Track-sub000/internal/session"
	"github.com/Azterny/Brawl-Track-sub000/internal/view"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const StatsServicePath = "/brawltrack.v1.StatsService/"

const (
	GetPlayerProcedure         = StatsServicePath + "GetPlayer"
	GetClubProcedure           = StatsServicePath + "GetClub"
	GetEventsProcedure         = StatsServicePath + "GetEvents"
	GetTrophyChartProcedure    = StatsServicePath + "GetTrophyChart"
	SearchSuggestionsProcedure = StatsServicePath + "SearchSuggestions"
)

// StatsServer exposes the page loaders to scripts running on the site.
type StatsServer struct {
	sessions *session.Manager
	catalog  *service.CatalogService
	players  *service.PlayerService
	clubs    *service.ClubService
	history  *service.HistoryService
	search   *service.SearchService
	assets   view.Assets
	logger   zerolog.Logger
}

func NewStatsServer(
	cfg *config.Config,
	sessions *session.Manager,
	catalog *service.CatalogService,
	players *service.PlayerService,
	clubs *service.ClubService,
	history *service.HistoryService,
	search *service.SearchService,
	logger zerolog.Logger,
) *StatsServer {
	return &StatsServer{
		sessions: sessions,
		catalog:  catalog,
		players:  players,
		clubs:    clubs,
		history:  history,
		search:   search,
		assets:   view.Assets{BaseURL: cfg.CDNBaseURL, Fallback: constants.FallbackImagePath},
		logger:   logger,
	}
}

// NewStatsServiceHandler returns the path the service is mounted on and its
// handler.
func NewStatsServiceHandler(s *StatsServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{
		connect.WithCodec(jsonCodec{}),
		connect.WithInterceptors(s.timing()),
	}, opts...)

	mux := http.NewServeMux()
	mux.Handle(GetPlayerProcedure, connect.NewUnaryHandler(GetPlayerProcedure, s.GetPlayer, opts...))
	mux.Handle(GetClubProcedure, connect.NewUnaryHandler(GetClubProcedure, s.GetClub, opts...))
	mux.Handle(GetEventsProcedure, connect.NewUnaryHandler(GetEventsProcedure, s.GetEvents, opts...))
	mux.Handle(GetTrophyChartProcedure, connect.NewUnaryHandler(GetTrophyChartProcedure, s.GetTrophyChart, opts...))
	mux.Handle(SearchSuggestionsProcedure, connect.NewUnaryHandler(SearchSuggestionsProcedure, s.SearchSuggestions, opts...))
	return StatsServicePath, mux
}

func (s *StatsServer) timing() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)
			ev := s.logger.Debug()
			if err != nil {
				ev = s.logger.Warn().Err(err).Str("code", connect.CodeOf(err).String())
			}
			ev.Str("procedure", req.Spec().Procedure).
				Int64("duration_ms", time.Since(start).Milliseconds()).
				Msg("rpc completed")
			return resp, err
		}
	}
}

func (s *StatsServer) GetPlayer(ctx context.Context, req *connect.Request[PlayerRequest]) (*connect.Response[PlayerResponse], error) {
	tag, err := parseTag(req.Msg.Tag)
	if err != nil {
		return nil, err
	}
	sess := s.sessions.Peek(ctx, req.Header())

	pv, err := s.players.LoadPlayer(ctx, tag, token(sess), service.WithoutHistory())
	if err != nil {
		return nil, s.toConnectError(ctx, sess, err)
	}

	roster := view.MergeRoster(pv.Catalog.Value, pv.Profile.Brawlers)
	resp := &PlayerResponse{
		Tag:              pv.Profile.Tag,
		Name:             pv.Profile.Name,
		NameColor:        pv.Profile.NameColor,
		Trophies:         pv.Profile.Trophies,
		HighestTrophies:  pv.Profile.HighestTrophies,
		ExpLevel:         pv.Profile.ExpLevel,
		Brawlers:         make([]Brawler, 0, len(roster)),
		UnlockedCount:    view.UnlockedCount(roster),
		CatalogAvailable: pv.Catalog.OK(),
		BattlesAvailable: pv.Battles.OK(),
	}
	if c := pv.Profile.Club; c != nil {
		resp.Club = &ClubRef{Tag: c.Tag, Name: c.Name}
	}
	for _, b := range roster {
		resp.Brawlers = append(resp.Brawlers, Brawler{
			ID:       b.ID,
			Name:     b.Name,
			Unlocked: b.Unlocked,
			Power:    b.Power,
			Trophies: b.Trophies,
			ImageURL: s.assets.Brawler(b.ID),
		})
	}
	if pv.Battles.OK() {
		summary := view.SummarizeBattles(pv.Battles.Value, constants.BattleLogDisplayLimit)
		resp.WinRate = summary.WinRate
		resp.TrophyDelta = summary.TrophyDelta
	}

	return connect.NewResponse(resp), nil
}

func (s *StatsServer) GetClub(ctx context.Context, req *connect.Request[ClubRequest]) (*connect.Response[ClubResponse], error) {
	tag, err := parseTag(req.Msg.Tag)
	if err != nil {
		return nil, err
	}
	sess := s.sessions.Peek(ctx, req.Header())

	club, err := s.clubs.LoadClub(ctx, tag, token(sess))
	if err != nil {
		return nil, s.toConnectError(ctx, sess, err)
	}

	members := view.SortMembers(club.Members)
	resp := &ClubResponse{
		Tag:              club.Tag,
		Name:             club.Name,
		Description:      club.Description,
		Trophies:         club.Trophies,
		RequiredTrophies: club.RequiredTrophies,
		Members:          make([]ClubMember, 0, len(members)),
	}
	for _, m := range members {
		resp.Members = append(resp.Members, ClubMember{
			Tag:      m.Tag,
			Name:     m.Name,
			Role:     view.RoleLabel(m.Role),
			Trophies: m.Trophies,
			Path:     router.PlayerPath(m.Tag),
		})
	}
	return connect.NewResponse(resp), nil
}

func (s *StatsServer) GetEvents(ctx context.Context, req *connect.Request[EventsRequest]) (*connect.Response[EventsResponse], error) {
	rotation := s.catalog.Rotation(ctx)
	if !rotation.OK() {
		return nil, s.toConnectError(ctx, nil, rotation.Err)
	}

	resp := &EventsResponse{Events: make([]Event, 0, len(rotation.Value))}
	for _, e := range rotation.Value {
		ev := Event{ID: e.ID, Mode: e.Mode, Map: e.Map, ImageURL: s.assets.Mode(e.Mode)}
		if !e.EndTime.IsZero() {
			ev.EndTime = e.EndTime.UTC().Format(time.RFC3339)
		}
		resp.Events = append(resp.Events, ev)
	}
	return connect.NewResponse(resp), nil
}

func (s *StatsServer) GetTrophyChart(ctx context.Context, req *connect.Request[TrophyChartRequest]) (*connect.Response[chart.Data], error) {
	tag, err := parseTag(req.Msg.Tag)
	if err != nil {
		return nil, err
	}
	window, err := chart.ParseWindow(req.Msg.Window)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	sess := s.sessions.Peek(ctx, req.Header())

	series, err := s.history.TrophyChart(ctx, service.ChartRequest{
		Tag:       tag,
		BrawlerID: req.Msg.BrawlerID,
		Window:    window,
		Token:     token(sess),
	})
	if err != nil {
		return nil, s.toConnectError(ctx, sess, err)
	}

	data := series.Data()
	return connect.NewResponse(&data), nil
}

func (s *StatsServer) SearchSuggestions(ctx context.Context, req *connect.Request[SearchSuggestionsRequest]) (*connect.Response[SearchSuggestionsResponse], error) {
	found, err := s.search.Suggestions(ctx, req.Msg.Query)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	resp := &SearchSuggestionsResponse{Suggestions: make([]Suggestion, 0, len(found))}
	for _, l := range found {
		path := router.PlayerPath(l.Tag)
		if l.Kind == domain.LookupClub {
			path = router.ClubPath(l.Tag)
		}
		resp.Suggestions = append(resp.Suggestions, Suggestion{
			Kind:     string(l.Kind),
			Tag:      l.Tag,
			Name:     l.Name,
			Trophies: l.Trophies,
			Path:     path,
		})
	}
	return connect.NewResponse(resp), nil
}

func parseTag(raw string) (string, error) {
	tag := router.NormalizeTag(raw)
	if tag == "#" || !router.ValidTag(tag) {
		return "", connect.NewError(connect.CodeInvalidArgument, errors.New("tag must contain only letters, digits and #"))
	}
	return tag, nil
}

func token(sess *domain.Session) string {
	if sess == nil {
		return ""
	}
	return sess.Token
}

// toConnectError maps loader errors to RPC codes. A token the API rejects is
// cleared from the session, as the pages do.
func (s *StatsServer) toConnectError(ctx context.Context, sess *domain.Session, err error) error {
	switch {
	case service.IsNotFound(err):
		return connect.NewError(connect.CodeNotFound, err)
	case service.IsUnauthorized(err):
		if session.Authenticated(sess) {
			if clearErr := s.sessions.Clear(ctx, sess); clearErr != nil {
				s.logger.Error().Err(clearErr).Msg("failed to clear session")
			}
		}
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, context.DeadlineExceeded):
		return connect.NewError(connect.CodeDeadlineExceeded, err)
	case errors.Is(err, context.Canceled):
		return connect.NewError(connect.CodeCanceled, err)
	default:
		return connect.NewError(connect.CodeUnavailable, err)
	}
}
