package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(&config.Config{APIBaseURL: srv.URL})
}

func TestGetPlayerEscapesTagAndSendsToken(t *testing.T) {
	var gotPath, gotAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{
			"tag":      "#2PP",
			"name":     "Shelly Main",
			"trophies": 12000,
			"club":     map[string]string{"tag": "#CLUB", "name": "Brawlers"},
			"brawlers": []map[string]any{{"id": 16000000, "trophies": 700, "power": 11}},
		})
	})

	player, err := c.GetPlayer(context.Background(), "#2PP", "tok")
	require.NoError(t, err)

	assert.Equal(t, "/api/players/%232PP", gotPath)
	assert.Equal(t, "Bearer tok", gotAuth)
	assert.Equal(t, "Shelly Main", player.Name)
	assert.Equal(t, "#CLUB", player.Club.Tag)
	require.Len(t, player.Brawlers, 1)
	assert.Equal(t, 700, player.Brawlers[0].Trophies)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var hadAuth bool
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, hadAuth = r.Header["Authorization"]
		w.Write([]byte(`{"items":[{"id":1,"name":"SHELLY"}]}`))
	})

	resp, err := c.GetBrawlers(context.Background())
	require.NoError(t, err)
	assert.False(t, hadAuth)
	assert.Equal(t, []BrawlerData{{ID: 1, Name: "SHELLY"}}, resp.Items)
}

func TestErrorResponsesAreTyped(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		target  error
		message string
	}{
		{"not found", http.StatusNotFound, `{"message":"Player not found"}`, ErrNotFound, "Player not found"},
		{"unauthorized", http.StatusUnauthorized, `{"message":"Invalid token"}`, ErrUnauthorized, "Invalid token"},
		{"forbidden", http.StatusForbidden, ``, ErrUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := c.GetClub(context.Background(), "#C", "")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target))

			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.Status)
			assert.Equal(t, tt.message, apiErr.Message)
		})
	}
}

func TestMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items": "nope"}`))
	})

	_, err := c.GetBattleLog(context.Background(), "#P", "")
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestGetHistoryBrawlerQuery(t *testing.T) {
	var gotQuery string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[{"date":"2024-01-01","trophies":100}]`))
	})

	points, err := c.GetHistory(context.Background(), "#P", 16000001, "")
	require.NoError(t, err)
	assert.Equal(t, "brawler=16000001", gotQuery)
	assert.Equal(t, []HistoryPointData{{Date: "2024-01-01", Trophies: 100}}, points)
}

func TestLoginPostsCredentials(t *testing.T) {
	var creds Credentials
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		json.NewDecoder(r.Body).Decode(&creds)
		w.Write([]byte(`{"token":"abc","username":"sam"}`))
	})

	resp, err := c.Login(context.Background(), "sam", "pw")
	require.NoError(t, err)
	assert.Equal(t, Credentials{Username: "sam", Password: "pw"}, creds)
	assert.Equal(t, "abc", resp.Token)
}

func TestCanceledContextSkipsRequest(t *testing.T) {
	called := false
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	cancel()

	_, err := c.GetRotation(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "bad", UserMessage(&APIError{Status: 400, Message: "bad"}, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("boom"), "fallback"))
}
