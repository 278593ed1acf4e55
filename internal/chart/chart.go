// Package chart prepares trophy history series for the client-side charting
// library.
package chart

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
)

// Window selects the time span shown on a chart. A zero Span means all-time.
type Window struct {
	Span time.Duration
}

var AllTime = Window{}

// MaxDays is the longest day window a time.Duration can hold.
const MaxDays = int(math.MaxInt64 / int64(24*time.Hour))

func Days(n int) Window {
	return Window{Span: time.Duration(n) * 24 * time.Hour}
}

func (w Window) IsAll() bool {
	return w.Span <= 0
}

func (w Window) String() string {
	switch {
	case w.IsAll():
		return "all"
	case w.Span%(24*time.Hour) == 0:
		return strconv.Itoa(int(w.Span/(24*time.Hour))) + "d"
	case w.Span%time.Hour == 0:
		return strconv.Itoa(int(w.Span/time.Hour)) + "h"
	default:
		return w.Span.String()
	}
}

// ParseWindow accepts "all", a bare day count ("0" meaning all-time, "30"),
// a day suffix ("7d") or any Go duration for sub-day windows ("12h").
func ParseWindow(s string) (Window, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" || s == "all" {
		return AllTime, nil
	}
	if n, err := strconv.Atoi(strings.TrimSuffix(s, "d")); err == nil {
		if n < 0 || n > MaxDays {
			return Window{}, fmt.Errorf("invalid chart window %q", s)
		}
		return Days(n), nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return Window{}, fmt.Errorf("invalid chart window %q", s)
	}
	return Window{Span: d}, nil
}

// Filter returns the points inside [now-span, now] sorted by date. The
// all-time window keeps every point.
func Filter(points []domain.HistoryPoint, w Window, now time.Time) []domain.HistoryPoint {
	out := make([]domain.HistoryPoint, 0, len(points))
	from := now.Add(-w.Span)
	for _, p := range points {
		if w.IsAll() || (!p.Date.Before(from) && !p.Date.After(now)) {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

type Series struct {
	Window Window
	Points []domain.HistoryPoint
	Live   bool
	Gain   int
}

// Build filters points to w and, when live is non-nil, appends a synthetic
// point at now carrying the currently known trophy count. Gain is the
// difference between the last and first point shown.
func Build(points []domain.HistoryPoint, w Window, now time.Time, live *int) Series {
	s := Series{Window: w, Points: Filter(points, w, now)}
	if live != nil {
		brawlerID := 0
		if len(points) > 0 {
			brawlerID = points[0].BrawlerID
		}
		s.Points = append(s.Points, domain.HistoryPoint{Date: now, Trophies: *live, BrawlerID: brawlerID})
		s.Live = true
	}
	if len(s.Points) > 1 {
		s.Gain = s.Points[len(s.Points)-1].Trophies - s.Points[0].Trophies
	}
	return s
}

// Data is the payload handed to the charting library.
type Data struct {
	Window string   `json:"window"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Live   bool     `json:"live"`
	Gain   int      `json:"gain"`
}

func (s Series) Data() Data {
	layout := "2006-01-02"
	if !s.Window.IsAll() && s.Window.Span < 24*time.Hour {
		layout = "15:04"
	}
	d := Data{
		Window: s.Window.String(),
		Labels: make([]string, len(s.Points)),
		Values: make([]int, len(s.Points)),
		Live:   s.Live,
		Gain:   s.Gain,
	}
	for i, p := range s.Points {
		d.Labels[i] = p.Date.UTC().Format(layout)
		d.Values[i] = p.Trophies
	}
	return d
}

// Canvas owns the chart currently rendered for a view. Replace discards the
// previous one.
type Canvas struct {
	current *Series
}

func (c *Canvas) Replace(s Series) *Series {
	prev := c.current
	c.current = &s
	return prev
}

func (c *Canvas) Current() (Series, bool) {
	if c.current == nil {
		return Series{}, false
	}
	return *c.current, true
}
