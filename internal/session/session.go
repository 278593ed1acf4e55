// Package session keeps the authentication token and username of each
// browser. The presence of a token is the only authentication signal; there is
// no expiry or refresh.
package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azterny/Brawl-Track-sub000/internal/config"
	"github.com/Azterny/Brawl-Track-sub000/internal/constants"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"
	"github.com/Azterny/Brawl-Track-sub000/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

type Store interface {
	Create(ctx context.Context) (*domain.Session, error)
	Get(ctx context.Context, id string) (*domain.Session, error)
	SetCredentials(ctx context.Context, id, token, username string) error
	Delete(ctx context.Context, id string) error
}

var _ Store = (*repository.SessionRepository)(nil)

type Manager struct {
	store  Store
	secure bool
	logger zerolog.Logger
}

func NewManager(store Store, cfg *config.Config, logger zerolog.Logger) *Manager {
	return &Manager{store: store, secure: cfg.CookieSecure, logger: logger}
}

// Load returns the session named by the request cookie. Without a known
// cookie it returns an anonymous session that is not stored; rows are only
// written by SignIn. A cookie naming a deleted session is expired.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*domain.Session, error) {
	c, err := r.Cookie(constants.SessionCookieName)
	if err != nil || c.Value == "" {
		return &domain.Session{}, nil
	}

	s, err := m.store.Get(r.Context(), c.Value)
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, repository.ErrSessionNotFound) {
		return nil, err
	}
	m.logger.Debug().Msg("unknown session cookie")
	m.Expire(w)
	return &domain.Session{}, nil
}

// Peek returns the session named by the cookie in h without creating one. It
// returns nil when there is no usable session.
func (m *Manager) Peek(ctx context.Context, h http.Header) *domain.Session {
	c, err := (&http.Request{Header: h}).Cookie(constants.SessionCookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	s, err := m.store.Get(ctx, c.Value)
	if err != nil {
		if !errors.Is(err, repository.ErrSessionNotFound) {
			m.logger.Warn().Err(err).Msg("failed to read session")
		}
		return nil
	}
	return s
}

// SignIn stores token and username on s, persisting the session and setting
// its cookie first when s is anonymous.
func (m *Manager) SignIn(ctx context.Context, w http.ResponseWriter, s *domain.Session, token, username string) error {
	if s.ID == "" {
		created, err := m.store.Create(ctx)
		if err != nil {
			return fmt.Errorf("failed to start session: %w", err)
		}
		*s = *created
		http.SetCookie(w, &http.Cookie{
			Name:     constants.SessionCookieName,
			Value:    s.ID,
			Path:     "/",
			MaxAge:   int(constants.SessionCookieTTL.Seconds()),
			HttpOnly: true,
			Secure:   m.secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	if err := m.store.SetCredentials(ctx, s.ID, token, username); err != nil {
		return err
	}
	s.Token = token
	s.Username = username
	return nil
}

// Clear signs the browser out by deleting its session. s becomes anonymous.
func (m *Manager) Clear(ctx context.Context, s *domain.Session) error {
	if s == nil {
		return nil
	}
	if s.ID != "" {
		if err := m.store.Delete(ctx, s.ID); err != nil {
			return err
		}
	}
	*s = domain.Session{}
	return nil
}

// Expire tells the browser to drop its session cookie.
func (m *Manager) Expire(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func Authenticated(s *domain.Session) bool {
	return s != nil && s.Token != ""
}

// DisplayName is the stored username, or the subject of the token when it is
// a JWT. The token signature is not checked; the API does that.
func DisplayName(s *domain.Session) string {
	if s == nil {
		return ""
	}
	if s.Username != "" {
		return s.Username
	}
	if s.Token == "" {
		return ""
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.Token, claims); err != nil {
		return ""
	}
	if name, ok := claims["username"].(string); ok && name != "" {
		return name
	}
	sub, _ := claims.GetSubject()
	return sub
}

type contextKey struct{}

func WithSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

func FromContext(ctx context.Context) *domain.Session {
	s, _ := ctx.Value(contextKey{}).(*domain.Session)
	return s
}
