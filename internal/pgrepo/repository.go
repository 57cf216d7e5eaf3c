// Package pgrepo is the reference Postgres-backed implementation of
// ports.Repository and ports.EventStore (§4.8), wired the way
// udisondev/la2go's internal/db package wires PostgreSQL: one struct
// wrapping a pgxpool.Pool, one method per operation, errors wrapped with
// fmt.Errorf("...: %w", err).
//
// The core (internal/save, internal/action, ...) never imports this
// package directly — only cmd/farmengine does, satisfying an
// internal/ports interface.
package pgrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/farmforge/engine/internal/farmstate"
	"github.com/farmforge/engine/internal/ports"
)

// Repository implements ports.Repository and ports.EventStore over
// PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a Repository handle.
func New(ctx context.Context, dsn string) (*Repository, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgrepo: connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgrepo: pinging database: %w", err)
	}
	return &Repository{pool: pool}, nil
}

// Close closes the underlying connection pool.
func (r *Repository) Close() {
	r.pool.Close()
}

// GetFarmByID implements ports.Repository.
func (r *Repository) GetFarmByID(ctx context.Context, id int64) (*ports.Farm, error) {
	var (
		address string
		session []byte
		raw     []byte
	)
	err := r.pool.QueryRow(ctx,
		`SELECT address, session, game_state FROM farms WHERE id = $1`, id,
	).Scan(&address, &session, &raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("pgrepo: querying farm %d: %w", id, err)
	}

	var doc farmstate.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("pgrepo: decoding game_state for farm %d: %w", id, err)
	}

	farm := &ports.Farm{ID: id, Address: address, State: doc}
	copy(farm.Session[:], session)
	return farm, nil
}

// UpdateGameState implements ports.Repository's compare-and-swap contract.
func (r *Repository) UpdateGameState(ctx context.Context, id int64, oldSession, newSession [32]byte, state farmstate.Document) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("pgrepo: encoding game_state for farm %d: %w", id, err)
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE farms SET game_state = $1, session = $2, updated_at = now()
		 WHERE id = $3 AND session = $4`,
		raw, newSession[:], id, oldSession[:],
	)
	if err != nil {
		return fmt.Errorf("pgrepo: updating farm %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM farms WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("pgrepo: checking farm %d: %w", id, err)
		}
		if !exists {
			return ports.ErrFarmNotFound
		}
		return ports.ErrSessionConflict
	}
	return nil
}

// CreateFarm inserts a new farm row, the way udisondev/la2go's
// CharacterRepository.Create and ItemRepository.Create seed a single row
// ahead of the operations that later mutate it. It is idempotent on id so a
// demo run can call it every startup without failing on a row it already
// created.
func (r *Repository) CreateFarm(ctx context.Context, farm ports.Farm) error {
	raw, err := json.Marshal(farm.State)
	if err != nil {
		return fmt.Errorf("pgrepo: encoding game_state for farm %d: %w", farm.ID, err)
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO farms (id, address, session, game_state)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO NOTHING`,
		farm.ID, farm.Address, farm.Session[:], raw,
	)
	if err != nil {
		return fmt.Errorf("pgrepo: creating farm %d: %w", farm.ID, err)
	}
	return nil
}

// Append implements ports.EventStore.
func (r *Repository) Append(ctx context.Context, farmID int64, session [32]byte, events []ports.AuditEvent) error {
	if len(events) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, event := range events {
		batch.Queue(
			`INSERT INTO farm_events (id, farm_id, session, kind, payload, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			uuid.New(), farmID, session[:], event.Kind, event.Payload, event.CreatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("pgrepo: appending audit events for farm %d: %w", farmID, err)
		}
	}
	return nil
}
