package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps documents in a single jsonb table, one row per
// record. It exists so local development does not need a Mongo instance;
// the schema comes from the embedded migrations.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Create(ctx context.Context, collection string, rec Record) (string, error) {
	doc, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("marshal document: %w", err)
	}
	const q = `
INSERT INTO documents (collection, doc)
VALUES ($1, $2)
RETURNING id::text
`
	var id string
	if err := s.pool.QueryRow(ctx, q, collection, doc).Scan(&id); err != nil {
		return "", fmt.Errorf("insert into %s: %w", collection, err)
	}
	return id, nil
}

func (s *PostgresStore) Get(ctx context.Context, collection, id string) (Record, error) {
	const q = `
SELECT id::text, doc
FROM documents
WHERE collection = $1 AND id::text = $2
`
	var gotID string
	var doc []byte
	if err := s.pool.QueryRow(ctx, q, collection, id).Scan(&gotID, &doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get from %s: %w", collection, err)
	}
	return recordFromRow(gotID, doc)
}

func (s *PostgresStore) Update(ctx context.Context, collection, id string, partial Record) error {
	doc, err := json.Marshal(partial)
	if err != nil {
		return fmt.Errorf("marshal partial document: %w", err)
	}
	const q = `
UPDATE documents
SET doc = doc || $3::jsonb, updated_at = now()
WHERE collection = $1 AND id::text = $2
`
	tag, err := s.pool.Exec(ctx, q, collection, id, doc)
	if err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Query(ctx context.Context, collection string, filter Record) ([]Record, error) {
	match, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("marshal filter: %w", err)
	}
	if filter == nil {
		match = []byte(`{}`)
	}
	const q = `
SELECT id::text, doc
FROM documents
WHERE collection = $1 AND doc @> $2::jsonb
ORDER BY created_at
`
	rows, err := s.pool.Query(ctx, q, collection, match)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", collection, err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var id string
		var doc []byte
		if err := rows.Scan(&id, &doc); err != nil {
			return nil, fmt.Errorf("scan document from %s: %w", collection, err)
		}
		rec, err := recordFromRow(id, doc)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", collection, err)
	}
	return out, nil
}

func recordFromRow(id string, doc []byte) (Record, error) {
	rec := Record{}
	if err := json.Unmarshal(doc, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", id, err)
	}
	rec["id"] = id
	return rec, nil
}
