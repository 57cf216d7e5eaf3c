package pgrepo

import (
	"context"
	"testing"

	"github.com/farmforge/engine/internal/farmstate"
	"github.com/farmforge/engine/internal/ports"
)

func TestFake_UpdateGameState_CAS(t *testing.T) {
	f := NewFake()
	f.Seed(ports.Farm{ID: 1, Address: "0xfarmer", State: farmstate.New("0xfarmer").ToDocument()})

	ctx := context.Background()
	var newSession [32]byte
	newSession[0] = 1

	if err := f.UpdateGameState(ctx, 1, [32]byte{}, newSession, farmstate.New("0xfarmer").ToDocument()); err != nil {
		t.Fatalf("UpdateGameState() with correct oldSession error: %v", err)
	}

	// Stale oldSession — as if a second writer raced ahead of us.
	err := f.UpdateGameState(ctx, 1, [32]byte{}, [32]byte{2}, farmstate.New("0xfarmer").ToDocument())
	if err != ports.ErrSessionConflict {
		t.Errorf("UpdateGameState() with stale session = %v, want %v", err, ports.ErrSessionConflict)
	}
}

func TestFake_UpdateGameState_UnknownFarm(t *testing.T) {
	f := NewFake()
	err := f.UpdateGameState(context.Background(), 999, [32]byte{}, [32]byte{1}, farmstate.Document{})
	if err != ports.ErrFarmNotFound {
		t.Errorf("UpdateGameState() on unknown farm = %v, want %v", err, ports.ErrFarmNotFound)
	}
}

func TestFake_GetFarmByID_Absent(t *testing.T) {
	f := NewFake()
	farm, err := f.GetFarmByID(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetFarmByID() error: %v", err)
	}
	if farm != nil {
		t.Errorf("GetFarmByID(absent) = %+v, want nil", farm)
	}
}

func TestFake_Append_RecordsEvents(t *testing.T) {
	f := NewFake()
	f.Seed(ports.Farm{ID: 1, Address: "0xfarmer"})

	events := []ports.AuditEvent{{Kind: "item.redeemed", CreatedAt: "2026-01-01T00:00:00Z", Payload: []byte(`{}`)}}
	if err := f.Append(context.Background(), 1, [32]byte{}, events); err != nil {
		t.Fatalf("Append() error: %v", err)
	}
	if got := f.Events(1); len(got) != 1 || got[0].Kind != "item.redeemed" {
		t.Errorf("Events(1) = %+v, want one item.redeemed event", got)
	}
}
