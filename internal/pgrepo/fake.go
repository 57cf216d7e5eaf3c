package pgrepo

import (
	"context"
	"sync"

	"github.com/farmforge/engine/internal/farmstate"
	"github.com/farmforge/engine/internal/ports"
)

// Fake is an in-memory ports.Repository and ports.EventStore, used by tests
// and by cmd/farmengine's demo mode so neither needs a live PostgreSQL
// instance. It honors the same compare-and-swap contract as Repository.
type Fake struct {
	mu     sync.Mutex
	farms  map[int64]*ports.Farm
	events map[int64][]ports.AuditEvent
}

// NewFake returns an empty Fake.
func NewFake() *Fake {
	return &Fake{
		farms:  make(map[int64]*ports.Farm),
		events: make(map[int64][]ports.AuditEvent),
	}
}

// Seed inserts or overwrites a farm, for test setup.
func (f *Fake) Seed(farm ports.Farm) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := farm
	f.farms[farm.ID] = &copied
}

// GetFarmByID implements ports.Repository.
func (f *Fake) GetFarmByID(ctx context.Context, id int64) (*ports.Farm, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	farm, ok := f.farms[id]
	if !ok {
		return nil, nil
	}
	copied := *farm
	return &copied, nil
}

// UpdateGameState implements ports.Repository.
func (f *Fake) UpdateGameState(ctx context.Context, id int64, oldSession, newSession [32]byte, state farmstate.Document) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	farm, ok := f.farms[id]
	if !ok {
		return ports.ErrFarmNotFound
	}
	if farm.Session != oldSession {
		return ports.ErrSessionConflict
	}
	farm.Session = newSession
	farm.State = state
	return nil
}

// Append implements ports.EventStore.
func (f *Fake) Append(ctx context.Context, farmID int64, session [32]byte, events []ports.AuditEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[farmID] = append(f.events[farmID], events...)
	return nil
}

// Events returns the audit log recorded for a farm, for test assertions.
func (f *Fake) Events(farmID int64) []ports.AuditEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]ports.AuditEvent, len(f.events[farmID]))
	copy(out, f.events[farmID])
	return out
}
