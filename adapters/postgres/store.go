package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"gridpulse/ports"
)

// Store bundles the three repositories into the full Data Store
// collaborator.
type Store struct {
	*loadRepository
	*weatherRepository
	*comparisonRepository
	db *sqlx.DB
}

var _ ports.Store = (*Store)(nil)

// NewStore creates the Postgres-backed data store
func NewStore(db *sqlx.DB) *Store {
	return &Store{
		loadRepository:       NewLoadRepository(db),
		weatherRepository:    NewWeatherRepository(db),
		comparisonRepository: NewComparisonRepository(db),
		db:                   db,
	}
}

// Ping verifies database connectivity for health checks.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database unreachable: %w", err)
	}
	return nil
}
