package chart

import (
	"math/rand"
	"strconv"
	"testing"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBuildWithLivePoint(t *testing.T) {
	points := []domain.HistoryPoint{
		{Date: day("2024-01-10"), Trophies: 150},
		{Date: day("2024-01-01"), Trophies: 100},
	}
	now := day("2024-02-01")
	live := 160

	w, err := ParseWindow("0")
	require.NoError(t, err)

	s := Build(points, w, now, &live)
	require.Len(t, s.Points, 3)
	assert.Equal(t, 100, s.Points[0].Trophies)
	assert.Equal(t, 160, s.Points[2].Trophies)
	assert.Equal(t, now, s.Points[2].Date)
	assert.Equal(t, 60, s.Gain)
	assert.True(t, s.Live)

	d := s.Data()
	assert.Equal(t, []string{"2024-01-01", "2024-01-10", "2024-02-01"}, d.Labels)
	assert.Equal(t, []int{100, 150, 160}, d.Values)
	assert.Equal(t, "all", d.Window)
}

func TestBuildWithoutLive(t *testing.T) {
	s := Build([]domain.HistoryPoint{{Date: day("2024-01-01"), Trophies: 5}}, AllTime, day("2024-01-02"), nil)
	assert.Len(t, s.Points, 1)
	assert.Equal(t, 0, s.Gain)
	assert.False(t, s.Live)
}

func TestFilterWindowBounds(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	rng := rand.New(rand.NewSource(7))

	var points []domain.HistoryPoint
	for i := 0; i < 300; i++ {
		offset := time.Duration(rng.Int63n(int64(90*24*time.Hour))) - 10*24*time.Hour
		points = append(points, domain.HistoryPoint{Date: now.Add(-offset), Trophies: i})
	}

	for _, days := range []int{1, 7, 30} {
		w := Days(days)
		got := Filter(points, w, now)
		want := 0
		for _, p := range points {
			if !p.Date.Before(now.AddDate(0, 0, -days)) && !p.Date.After(now) {
				want++
			}
		}
		assert.Len(t, got, want)
		for i, p := range got {
			assert.False(t, p.Date.Before(now.Add(-w.Span)))
			assert.False(t, p.Date.After(now))
			if i > 0 {
				assert.False(t, p.Date.Before(got[i-1].Date))
			}
		}
	}

	assert.Len(t, Filter(points, AllTime, now), len(points))
}

func TestFilterInclusiveEdges(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	points := []domain.HistoryPoint{
		{Date: now.Add(-24 * time.Hour)},
		{Date: now},
		{Date: now.Add(-24*time.Hour - time.Second)},
		{Date: now.Add(time.Second)},
	}
	assert.Len(t, Filter(points, Days(1), now), 2)
}

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in   string
		want Window
	}{
		{"all", AllTime},
		{"", AllTime},
		{"0", AllTime},
		{"7", Days(7)},
		{"30d", Days(30)},
		{"12h", Window{Span: 12 * time.Hour}},
	}
	for _, tt := range tests {
		got, err := ParseWindow(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	for _, bad := range []string{"-1", "week", "-3h", "200000d", "300000d", "99999999999999999999"} {
		_, err := ParseWindow(bad)
		assert.Error(t, err, bad)
	}

	assert.Equal(t, "7d", Days(7).String())
	assert.Equal(t, "12h", Window{Span: 12 * time.Hour}.String())
}

func TestLargestDayWindow(t *testing.T) {
	w, err := ParseWindow(strconv.Itoa(MaxDays) + "d")
	require.NoError(t, err)
	assert.False(t, w.IsAll())
	assert.Positive(t, w.Span)
}

func TestWindowStringMatchesSpan(t *testing.T) {
	for _, in := range []string{"90m", "1h30m", "45m", "2h", "36h"} {
		w, err := ParseWindow(in)
		require.NoError(t, err, in)

		again, err := ParseWindow(w.String())
		require.NoError(t, err, w.String())
		assert.Equal(t, w, again, in)
	}
	assert.Equal(t, "1h30m0s", Window{Span: 90 * time.Minute}.String())
}

func TestSubDayLabels(t *testing.T) {
	now := time.Date(2024, 6, 1, 18, 30, 0, 0, time.UTC)
	s := Build([]domain.HistoryPoint{{Date: now.Add(-2 * time.Hour), Trophies: 1}}, Window{Span: 6 * time.Hour}, now, nil)
	assert.Equal(t, []string{"16:30"}, s.Data().Labels)
}

func TestCanvasReplace(t *testing.T) {
	var c Canvas
	_, ok := c.Current()
	assert.False(t, ok)

	assert.Nil(t, c.Replace(Series{Gain: 1}))
	prev := c.Replace(Series{Gain: 2})
	require.NotNil(t, prev)
	assert.Equal(t, 1, prev.Gain)

	cur, ok := c.Current()
	assert.True(t, ok)
	assert.Equal(t, 2, cur.Gain)
}
