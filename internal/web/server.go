// Package web serves the site's pages. Every page request is resolved through
// the route table, loaded, and rendered server side.
package web

import (
	"bytes"
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/config"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/router"
	"github.com/Azterny/Brawl-Track-sub000/internal/service"
	"github.com/Azterny/Brawl-Track-sub000/internal/session"
	"github.com/Azterny/Brawl-Track-sub000/internal/view"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

type Server struct {
	routes   router.Table
	sessions *session.Manager
	catalog  *service.CatalogService
	players  *service.PlayerService
	clubs    *service.ClubService
	accounts *service.AccountService
	tmpl     *template.Template
	logger   zerolog.Logger
	mux      chi.Router
	now      func() time.Time
}

func NewServer(
	cfg *config.Config,
	sessions *session.Manager,
	catalog *service.CatalogService,
	players *service.PlayerService,
	clubs *service.ClubService,
	accounts *service.AccountService,
	logger zerolog.Logger,
) (*Server, error) {
	tmpl, err := parseTemplates(view.Assets{BaseURL: cfg.CDNBaseURL, Fallback: constants.FallbackImagePath})
	if err != nil {
		return nil, err
	}

	s := &Server{
		routes:   router.Default,
		sessions: sessions,
		catalog:  catalog,
		players:  players,
		clubs:    clubs,
		accounts: accounts,
		tmpl:     tmpl,
		logger:   logger,
		mux:      chi.NewRouter(),
		now:      time.Now,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	s.mux.Use(chimw.Recoverer)
	s.mux.Use(chimw.StripSlashes)
	s.mux.Use(chimw.Compress(5))

	static, _ := fs.Sub(staticFS, "static")
	s.mux.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	s.mux.Group(func(r chi.Router) {
		r.Use(s.withSession)
		r.Post("/search", s.handleSearch)
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Post("/logout", s.handleLogout)
		s.routes.Mount(r, s.requireAuth, s.handleView)
	})
}

func (s *Server) withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := s.sessions.Load(w, r)
		if err != nil {
			zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to load session")
			http.Error(w, "Session unavailable, please try again later.", http.StatusInternalServerError)
			return
		}
		next.ServeHTTP(w, r.WithContext(session.WithSession(r.Context(), sess)))
	})
}

// requireAuth sends browsers without a token home before the view runs.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !session.Authenticated(session.FromContext(r.Context())) {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handleSearch navigates to the searched player or club.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	tag := router.NormalizeTag(r.PostFormValue("tag"))
	if !router.ValidTag(tag) || tag == "#" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	target := router.PlayerPath(tag)
	if r.PostFormValue("kind") == "club" {
		target = router.ClubPath(tag)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.authenticate(w, r, s.accounts.Login, "Login failed.")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	s.authenticate(w, r, s.accounts.Register, "Registration failed.")
}

type authFunc func(ctx context.Context, username, password string) (token, name string, err error)

// authenticate passes the posted credentials to the API and signs the
// browser in with the returned token.
func (s *Server) authenticate(w http.ResponseWriter, r *http.Request, auth authFunc, failure string) {
	sess := session.FromContext(r.Context())
	username := strings.TrimSpace(r.PostFormValue("username"))

	token, name, err := auth(r.Context(), username, r.PostFormValue("password"))
	if err != nil {
		status := http.StatusBadGateway
		if service.IsUnauthorized(err) {
			status = http.StatusUnauthorized
		}
		http.Error(w, apiMessage(err, failure), status)
		return
	}

	if err := s.sessions.SignIn(r.Context(), w, sess, token, name); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to store session token")
		http.Error(w, failure, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, router.DashboardPath, http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.signOut(w, r)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) signOut(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Clear(r.Context(), session.FromContext(r.Context())); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Msg("failed to clear session")
	}
	s.sessions.Expire(w)
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, st *ViewState) {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, "layout", st); err != nil {
		zerolog.Ctx(r.Context()).Error().Err(err).Str("view", string(st.Match.View)).Msg("failed to render view")
		http.Error(w, "Something went wrong.", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
