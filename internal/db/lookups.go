package db

import (
	"context"
	"time"
)

type Lookup struct {
	Kind     string
	Tag      string
	Name     string
	Trophies int64
	SeenAt   time.Time
}

const upsertLookup = `
INSERT INTO lookups (kind, tag, name, trophies, seen_at) VALUES (?, ?, ?, ?, ?)
ON CONFLICT (kind, tag) DO UPDATE SET name = excluded.name, trophies = excluded.trophies, seen_at = excluded.seen_at`

func (q *Queries) UpsertLookup(ctx context.Context, arg Lookup) error {
	_, err := q.db.ExecContext(ctx, upsertLookup, arg.Kind, arg.Tag, arg.Name, arg.Trophies, arg.SeenAt)
	return err
}

const searchLookups = `
SELECT kind, tag, name, trophies, seen_at FROM lookups
WHERE name LIKE ? ESCAPE '\' OR tag LIKE ? ESCAPE '\'
ORDER BY seen_at DESC
LIMIT ?`

type SearchLookupsParams struct {
	Name  string
	Tag   string
	Limit int64
}

func (q *Queries) SearchLookups(ctx context.Context, arg SearchLookupsParams) ([]Lookup, error) {
	rows, err := q.db.QueryContext(ctx, searchLookups, arg.Name, arg.Tag, arg.Limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Lookup
	for rows.Next() {
		var l Lookup
		if err := rows.Scan(&l.Kind, &l.Tag, &l.Name, &l.Trophies, &l.SeenAt); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
