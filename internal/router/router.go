// Package router declares the site's views and registers them on a chi
// router. The route table is the single list of views; anything it does not
// claim resolves to the home view.
package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
)

type View string

const (
	ViewHome      View = "home"
	ViewPlayer    View = "player"
	ViewClub      View = "club"
	ViewDashboard View = "dashboard"
)

const (
	PlayerPrefix  = "/stats/player/"
	ClubPrefix    = "/stats/club/"
	DashboardPath = "/dashboard"
)

const tagParam = "tag"

type Route struct {
	View View
	// Pattern is a chi pattern. A {tag} segment is unescaped and validated
	// before the view sees it.
	Pattern      string
	RequiresAuth bool
}

type Match struct {
	View         View
	Tag          string
	RequiresAuth bool
}

type Table []Route

// Default is the site's route table.
var Default = Table{
	{View: ViewPlayer, Pattern: PlayerPrefix + "{" + tagParam + "}"},
	{View: ViewClub, Pattern: ClubPrefix + "{" + tagParam + "}"},
	{View: ViewDashboard, Pattern: DashboardPath, RequiresAuth: true},
}

// Handler renders the view a request resolved to.
type Handler func(w http.ResponseWriter, r *http.Request, m Match)

// Mount registers every route of t as a GET on r. Routes that require
// authentication are wrapped in gate. Unclaimed paths, and tag routes whose
// tag is invalid, resolve to the home view.
func (t Table) Mount(r chi.Router, gate func(http.Handler) http.Handler, h Handler) {
	home := func(w http.ResponseWriter, req *http.Request) {
		if req.Method != http.MethodGet && req.Method != http.MethodHead {
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		h(w, req, Match{View: ViewHome})
	}

	for _, route := range t {
		route := route // per-iteration copy; the handler closure captures it
		withTag := strings.Contains(route.Pattern, "{"+tagParam+"}")
		handler := func(w http.ResponseWriter, req *http.Request) {
			m := Match{View: route.View, RequiresAuth: route.RequiresAuth}
			if withTag {
				tag, ok := ParseTag(chi.URLParam(req, tagParam))
				if !ok {
					home(w, req)
					return
				}
				m.Tag = tag
			}
			h(w, req, m)
		}

		if route.RequiresAuth && gate != nil {
			r.With(gate).Get(route.Pattern, handler)
		} else {
			r.Get(route.Pattern, handler)
		}
	}
	r.NotFound(home)
}

// ParseTag unescapes a tag taken from a path segment and validates it.
func ParseTag(raw string) (string, bool) {
	tag, err := url.PathUnescape(raw)
	if err != nil || !ValidTag(tag) {
		return "", false
	}
	return tag, true
}

// ValidTag reports whether s is non-empty and made only of ASCII letters,
// digits and '#'.
func ValidTag(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '#':
		default:
			return false
		}
	}
	return true
}

// NormalizeTag produces the API lookup key: upper case with a single leading '#'.
func NormalizeTag(tag string) string {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	tag = strings.TrimLeft(tag, "#")
	return "#" + tag
}

func PlayerPath(tag string) string {
	return PlayerPrefix + url.PathEscape(tag)
}

func ClubPath(tag string) string {
	return ClubPrefix + url.PathEscape(tag)
}
