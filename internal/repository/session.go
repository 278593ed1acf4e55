package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Azterny/Brawl-Track-sub000/internal/db"
	"github.com/Azterny/Brawl-Track-sub000/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository struct {
	queries *db.Queries
	logger  zerolog.Logger
	now     func() time.Time
}

func NewSessionRepository(queries *db.Queries, logger zerolog.Logger) *SessionRepository {
	return &SessionRepository{queries: queries, logger: logger, now: time.Now}
}

func (r *SessionRepository) Create(ctx context.Context) (*domain.Session, error) {
	id, err := gonanoid.New(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate session id: %w", err)
	}

	now := r.now()
	if err := r.queries.CreateSession(ctx, db.CreateSessionParams{ID: id, CreatedAt: now, UpdatedAt: now}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	r.logger.Debug().Msg("session created")
	return &domain.Session{ID: id, CreatedAt: now, UpdatedAt: now}, nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*domain.Session, error) {
	s, err := r.queries.GetSession(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &domain.Session{
		ID:        s.ID,
		Token:     s.Token,
		Username:  s.Username,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}, nil
}

// SetCredentials stores token and username on the session. An empty token
// signs the session out.
func (r *SessionRepository) SetCredentials(ctx context.Context, id, token, username string) error {
	n, err := r.queries.UpdateSessionCredentials(ctx, db.UpdateSessionCredentialsParams{
		Token:     token,
		Username:  username,
		UpdatedAt: r.now(),
		ID:        id,
	})
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.queries.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
