package db

import (
	"context"
	"time"
)

type Session struct {
	ID        string
	Token     string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const getSession = `SELECT id, token, username, created_at, updated_at FROM sessions WHERE id = ?`

func (q *Queries) GetSession(ctx context.Context, id string) (Session, error) {
	row := q.db.QueryRowContext(ctx, getSession, id)
	var s Session
	err := row.Scan(&s.ID, &s.Token, &s.Username, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const createSession = `INSERT INTO sessions (id, token, username, created_at, updated_at) VALUES (?, '', '', ?, ?)`

type CreateSessionParams struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateSession(ctx context.Context, arg CreateSessionParams) error {
	_, err := q.db.ExecContext(ctx, createSession, arg.ID, arg.CreatedAt, arg.UpdatedAt)
	return err
}

const updateSessionCredentials = `UPDATE sessions SET token = ?, username = ?, updated_at = ? WHERE id = ?`

type UpdateSessionCredentialsParams struct {
	Token     string
	Username  string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateSessionCredentials(ctx context.Context, arg UpdateSessionCredentialsParams) (int64, error) {
	res, err := q.db.ExecContext(ctx, updateSessionCredentials, arg.Token, arg.Username, arg.UpdatedAt, arg.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

const deleteSession = `DELETE FROM sessions WHERE id = ?`

func (q *Queries) DeleteSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, deleteSession, id)
	return err
}
