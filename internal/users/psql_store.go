package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/2beens/fittrack/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const collectionName = "users"

// PsqlStore keeps the whole users collection as a single JSONB document.
type PsqlStore struct {
	db *pgxpool.Pool
}

func NewPsqlStore(ctx context.Context, db *pgxpool.Pool) (*PsqlStore, error) {
	if db == nil {
		return nil, errors.New("db pool is nil")
	}

	if _, err := db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS user_collection (
			name       TEXT PRIMARY KEY,
			data       JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`,
	); err != nil {
		return nil, fmt.Errorf("create user_collection table: %w", err)
	}

	return &PsqlStore{
		db: db,
	}, nil
}

func (s *PsqlStore) Load(ctx context.Context) (_ []User, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "psqlStore.load")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()

	var data []byte
	err = s.db.QueryRow(
		ctx,
		`SELECT data FROM user_collection WHERE name = $1;`,
		collectionName,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []User{}, nil
		}
		return nil, fmt.Errorf("select users: %w", err)
	}

	var users []User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageCorrupt, err)
	}
	if users == nil {
		users = []User{}
	}

	span.SetAttributes(attribute.Int("users", len(users)))
	return users, nil
}

func (s *PsqlStore) Save(ctx context.Context, users []User) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "psqlStore.save")
	defer func() { tracing.EndSpanWithErrCheck(span, err) }()
	span.SetAttributes(attribute.Int("users", len(users)))

	if users == nil {
		users = []User{}
	}
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("marshal users: %w", err)
	}

	if _, err = s.db.Exec(
		ctx,
		`INSERT INTO user_collection (name, data, updated_at) VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET data = EXCLUDED.data, updated_at = now();`,
		collectionName, data,
	); err != nil {
		return fmt.Errorf("upsert users: %w", err)
	}

	return nil
}
