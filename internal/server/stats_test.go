package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/api"
	"github.com/Azterny/Brawl-Track-sub000/internal/cache"
	"github.com/Azterny/Brawl-Track-sub000/internal/chart"
	"github.com/Azterny/Brawl-Track-sub000/internal/config"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/database"
	"github.com/Azterny/Brawl-Track-sub000/internal/db"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
	"github.com/Azterny/Brawl-Track-sub000/internal/repository"
	"github.com/Azterny/Brawl-Track-sub000/internal/service"
	"github.com/Azterny/Brawl-Track-sub000/internal/session"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAPI struct {
	historyCalls atomic.Int32

	player  *api.PlayerData
	club    *api.ClubData
	history []api.HistoryPointData
	errs    map[string]error
	tokens  []string
}

func (f *fakeAPI) GetBrawlers(ctx context.Context) (*api.BrawlersResponse, error) {
	return &api.BrawlersResponse{Items: []api.BrawlerData{{ID: 1, Name: "SHELLY"}, {ID: 2, Name: "COLT"}}}, f.errs["brawlers"]
}

func (f *fakeAPI) GetRotation(ctx context.Context) ([]api.EventSlotData, error) {
	var slot api.EventSlotData
	slot.Event.ID = 7
	slot.Event.Mode = "brawlBall"
	slot.Event.Map = "Backyard Bowl"
	slot.EndTime = "20240102T080000.000Z"
	return []api.EventSlotData{slot}, f.errs["rotation"]
}

func (f *fakeAPI) GetPlayer(ctx context.Context, tag, token string) (*api.PlayerData, error) {
	f.tokens = append(f.tokens, token)
	return f.player, f.errs["player"]
}

func (f *fakeAPI) GetBattleLog(ctx context.Context, tag, token string) (*api.BattleLogResponse, error) {
	return &api.BattleLogResponse{}, f.errs["battlelog"]
}

func (f *fakeAPI) GetClub(ctx context.Context, tag, token string) (*api.ClubData, error) {
	return f.club, f.errs["club"]
}

func (f *fakeAPI) GetHistory(ctx context.Context, tag string, brawlerID int, token string) ([]api.HistoryPointData, error) {
	f.historyCalls.Add(1)
	return f.history, f.errs["history"]
}

func (f *fakeAPI) GetMe(ctx context.Context, token string) (*api.AccountData, error) {
	return &api.AccountData{}, f.errs["me"]
}

func (f *fakeAPI) Login(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	return &api.AuthResponse{}, f.errs["login"]
}

func (f *fakeAPI) Register(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	return &api.AuthResponse{}, f.errs["register"]
}

type rpcHarness struct {
	url      string
	sessions *repository.SessionRepository
	lookups  *repository.LookupRepository
}

func newRPCHarness(t *testing.T, fake *fakeAPI) *rpcHarness {
	t.Helper()
	sqlDB, err := database.Open(filepath.Join(t.TempDir(), "rpc.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	logger := zerolog.Nop()
	cfg := &config.Config{CDNBaseURL: "https://cdn.test"}
	queries := db.New(sqlDB)
	sessRepo := repository.NewSessionRepository(queries, logger)
	lookups := repository.NewLookupRepository(queries, logger)
	catalog := service.NewCatalogService(fake, cache.NewMemory(time.Now), cfg, logger)

	stats := NewStatsServer(
		cfg,
		session.NewManager(sessRepo, cfg, logger),
		catalog,
		service.NewPlayerService(fake, catalog, lookups, logger),
		service.NewClubService(fake, lookups, logger),
		service.NewHistoryService(fake, logger),
		service.NewSearchService(lookups, logger),
		logger,
	)
	path, handler := NewStatsServiceHandler(stats)
	mux := http.NewServeMux()
	mux.Handle(path, handler)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return &rpcHarness{url: ts.URL, sessions: sessRepo, lookups: lookups}
}

func call[Req, Res any](t *testing.T, h *rpcHarness, procedure string, msg *Req, cookie string) (*connect.Response[Res], error) {
	t.Helper()
	client := connect.NewClient[Req, Res](http.DefaultClient, h.url+procedure, connect.WithCodec(jsonCodec{}))
	req := connect.NewRequest(msg)
	if cookie != "" {
		req.Header().Set("Cookie", constants.SessionCookieName+"="+cookie)
	}
	return client.CallUnary(context.Background(), req)
}

func TestGetPlayer(t *testing.T) {
	fake := &fakeAPI{player: &api.PlayerData{
		Tag:      "#2PP",
		Name:     "Sam",
		Trophies: 120,
		Brawlers: []api.PlayerBrawlerData{{ID: 2, Name: "COLT", Trophies: 120, Power: 9}},
	}}
	h := newRPCHarness(t, fake)

	resp, err := call[PlayerRequest, PlayerResponse](t, h, GetPlayerProcedure, &PlayerRequest{Tag: "2pp"}, "")
	require.NoError(t, err)

	assert.Equal(t, "Sam", resp.Msg.Name)
	assert.Equal(t, 1, resp.Msg.UnlockedCount)
	require.Len(t, resp.Msg.Brawlers, 2)
	assert.Equal(t, 2, resp.Msg.Brawlers[0].ID)
	assert.True(t, resp.Msg.Brawlers[0].Unlocked)
	assert.False(t, resp.Msg.Brawlers[1].Unlocked)
	assert.Equal(t, "https://cdn.test/brawlers/borders/2.png", resp.Msg.Brawlers[0].ImageURL)
	assert.True(t, resp.Msg.BattlesAvailable)
	assert.Equal(t, 0, resp.Msg.WinRate)
	assert.Equal(t, int32(0), fake.historyCalls.Load(), "the player RPC has no use for trophy history")
}

func TestGetPlayerErrors(t *testing.T) {
	fake := &fakeAPI{errs: map[string]error{"player": &api.APIError{Status: 404, Message: "no such player"}}}
	h := newRPCHarness(t, fake)

	_, err := call[PlayerRequest, PlayerResponse](t, h, GetPlayerProcedure, &PlayerRequest{Tag: "NOPE"}, "")
	assert.Equal(t, connect.CodeNotFound, connect.CodeOf(err))

	_, err = call[PlayerRequest, PlayerResponse](t, h, GetPlayerProcedure, &PlayerRequest{Tag: "no pe"}, "")
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

	fake.errs["player"] = &api.APIError{Status: 500}
	_, err = call[PlayerRequest, PlayerResponse](t, h, GetPlayerProcedure, &PlayerRequest{Tag: "2PP"}, "")
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}

func TestRejectedTokenClearsSession(t *testing.T) {
	fake := &fakeAPI{errs: map[string]error{"player": &api.APIError{Status: 401}}}
	h := newRPCHarness(t, fake)

	ctx := context.Background()
	s, err := h.sessions.Create(ctx)
	require.NoError(t, err)
	require.NoError(t, h.sessions.SetCredentials(ctx, s.ID, "stale", "sam"))

	_, err = call[PlayerRequest, PlayerResponse](t, h, GetPlayerProcedure, &PlayerRequest{Tag: "2PP"}, s.ID)
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
	assert.Equal(t, []string{"stale"}, fake.tokens)

	_, err = h.sessions.Get(ctx, s.ID)
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
}

func TestGetClubSortsMembers(t *testing.T) {
	fake := &fakeAPI{club: &api.ClubData{Tag: "#C", Name: "Club", Members: []api.ClubMemberData{
		{Tag: "#A", Name: "a", Role: "member", Trophies: 5},
		{Tag: "#B", Name: "b", Role: "vicePresident", Trophies: 50},
	}}}
	h := newRPCHarness(t, fake)

	resp, err := call[ClubRequest, ClubResponse](t, h, GetClubProcedure, &ClubRequest{Tag: "#c"}, "")
	require.NoError(t, err)
	require.Len(t, resp.Msg.Members, 2)
	assert.Equal(t, "b", resp.Msg.Members[0].Name)
	assert.Equal(t, "Vice President", resp.Msg.Members[0].Role)
	assert.Equal(t, "/stats/player/%23B", resp.Msg.Members[0].Path)
}

func TestGetEvents(t *testing.T) {
	h := newRPCHarness(t, &fakeAPI{})

	resp, err := call[EventsRequest, EventsResponse](t, h, GetEventsProcedure, &EventsRequest{}, "")
	require.NoError(t, err)
	require.Len(t, resp.Msg.Events, 1)
	assert.Equal(t, "Backyard Bowl", resp.Msg.Events[0].Map)
	assert.Equal(t, "2024-01-02T08:00:00Z", resp.Msg.Events[0].EndTime)
	assert.Equal(t, "https://cdn.test/game-modes/regular/brawl-ball.png", resp.Msg.Events[0].ImageURL)
}

func TestGetEventsUnavailable(t *testing.T) {
	h := newRPCHarness(t, &fakeAPI{errs: map[string]error{"rotation": &api.APIError{Status: 502}}})

	_, err := call[EventsRequest, EventsResponse](t, h, GetEventsProcedure, &EventsRequest{}, "")
	assert.Equal(t, connect.CodeUnavailable, connect.CodeOf(err))
}

func TestGetTrophyChart(t *testing.T) {
	fake := &fakeAPI{
		player: &api.PlayerData{Tag: "#2PP", Trophies: 160},
		history: []api.HistoryPointData{
			{Date: "2024-01-10", Trophies: 150},
			{Date: "2024-01-01", Trophies: 100},
		},
	}
	h := newRPCHarness(t, fake)

	resp, err := call[TrophyChartRequest, chart.Data](t, h, GetTrophyChartProcedure, &TrophyChartRequest{Tag: "2PP", Window: "all"}, "")
	require.NoError(t, err)
	assert.Equal(t, []int{100, 150, 160}, resp.Msg.Values)
	assert.Equal(t, 60, resp.Msg.Gain)
	assert.True(t, resp.Msg.Live)

	_, err = call[TrophyChartRequest, chart.Data](t, h, GetTrophyChartProcedure, &TrophyChartRequest{Tag: "2PP", Window: "-3"}, "")
	assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))
}

func TestSearchSuggestions(t *testing.T) {
	h := newRPCHarness(t, &fakeAPI{})
	ctx := context.Background()
	require.NoError(t, h.lookups.Record(ctx, domain.Lookup{Kind: domain.LookupPlayer, Tag: "#2PP", Name: "Sam", SeenAt: time.Now()}))
	require.NoError(t, h.lookups.Record(ctx, domain.Lookup{Kind: domain.LookupClub, Tag: "#CLUB", Name: "Samurai", SeenAt: time.Now()}))

	resp, err := call[SearchSuggestionsRequest, SearchSuggestionsResponse](t, h, SearchSuggestionsProcedure, &SearchSuggestionsRequest{Query: "sam"}, "")
	require.NoError(t, err)
	require.Len(t, resp.Msg.Suggestions, 2)

	paths := map[string]string{}
	for _, s := range resp.Msg.Suggestions {
		paths[s.Tag] = s.Path
	}
	assert.Equal(t, "/stats/player/%232PP", paths["#2PP"])
	assert.Equal(t, "/stats/club/%23CLUB", paths["#CLUB"])
}
