// Package save orchestrates one save invocation end to end (§4.6, C6):
// load → reconcile → temporal gate → replay → persist → audit → snapshot.
//
// Design reference: udisondev/la2go cmd/gameserver/main.go's use of
// golang.org/x/sync/errgroup to run independent subsystems concurrently —
// here narrowed to the reconcile step's two independent on-chain reads.
package save

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/farmforge/engine/internal/action"
	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/farmstate"
	"github.com/farmforge/engine/internal/ports"
	"github.com/farmforge/engine/internal/reconcile"
	"github.com/farmforge/engine/internal/temporal"
)

// Pipeline wires the core (C1–C5) to its external collaborators (C8).
type Pipeline struct {
	Catalog    *catalog.Catalog
	Converter  reconcile.Converter
	Repository ports.Repository
	Events     ports.EventStore
	Chain      ports.Chain
	Now        func() time.Time // overridable for tests; defaults to time.Now
}

// Request is one save invocation's input (§4.6, §6).
type Request struct {
	FarmID  int64
	Sender  string
	Actions []action.Action
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now().UTC()
}

// Save runs the full pipeline and returns the committed snapshot.
func (p *Pipeline) Save(ctx context.Context, req Request) (*farmstate.State, error) {
	farm, err := p.Repository.GetFarmByID(ctx, req.FarmID)
	if err != nil {
		slog.Error("save: repository unavailable", "farmID", req.FarmID, "error", err)
		return nil, fmt.Errorf("%w: %v", ports.ErrExternalUnavailable, err)
	}
	if farm == nil {
		slog.Warn("save rejected", "farmID", req.FarmID, "reason", ports.ErrFarmNotFound)
		return nil, ports.ErrFarmNotFound
	}

	owner, err := p.Chain.OwnerOf(ctx, req.FarmID)
	if err != nil {
		slog.Error("save: chain unavailable", "farmID", req.FarmID, "error", err)
		return nil, fmt.Errorf("%w: %v", ports.ErrExternalUnavailable, err)
	}
	if owner != req.Sender || farm.Address != req.Sender {
		slog.Warn("save rejected", "farmID", req.FarmID, "sender", req.Sender, "reason", ports.ErrNotOwner)
		return nil, ports.ErrNotOwner
	}

	state, err := farmstate.FromDocument(farm.State)
	if err != nil {
		slog.Error("save: stored farm state is malformed", "farmID", req.FarmID, "error", err)
		return nil, fmt.Errorf("save: decoding stored farm state: %w", err)
	}

	var onchainBalance string
	var onchainInventory []string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		onchainBalance, err = p.Chain.LoadBalance(gctx, req.Sender)
		return err
	})
	g.Go(func() error {
		var err error
		onchainInventory, err = p.Chain.LoadInventory(gctx, req.Sender)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Error("save: chain read failed", "farmID", req.FarmID, "error", err)
		return nil, fmt.Errorf("%w: %v", ports.ErrExternalUnavailable, err)
	}

	reconciled, err := reconcile.Reconcile(p.Catalog, p.Converter, state, onchainBalance, onchainInventory)
	if err != nil {
		slog.Error("save: reconcile failed", "farmID", req.FarmID, "error", err)
		return nil, fmt.Errorf("save: %w", err)
	}

	if err := temporal.Validate(req.Actions, p.now()); err != nil {
		slog.Warn("save rejected", "farmID", req.FarmID, "sender", req.Sender, "actions", len(req.Actions), "reason", err)
		return nil, err
	}

	committed, err := action.Replay(p.Catalog, reconciled, req.Actions)
	if err != nil {
		slog.Warn("save rejected", "farmID", req.FarmID, "sender", req.Sender, "reason", err)
		return nil, err
	}

	if err := farmstate.CheckInvariants(committed); err != nil {
		slog.Error("save: post-replay invariant violation", "farmID", req.FarmID, "error", err)
		return nil, fmt.Errorf("save: post-replay invariant violation: %w", err)
	}

	newSession, err := newSessionToken()
	if err != nil {
		slog.Error("save: session token generation failed", "farmID", req.FarmID, "error", err)
		return nil, fmt.Errorf("save: generating session token: %w", err)
	}

	if err := p.Repository.UpdateGameState(ctx, req.FarmID, farm.Session, newSession, committed.ToDocument()); err != nil {
		slog.Warn("save rejected", "farmID", req.FarmID, "reason", err)
		return nil, err // may be ports.ErrSessionConflict; surfaced verbatim
	}

	events := make([]ports.AuditEvent, 0, len(req.Actions))
	for _, act := range req.Actions {
		payload, err := json.Marshal(act)
		if err != nil {
			slog.Error("save: audit event encoding failed", "farmID", req.FarmID, "error", err)
			return nil, fmt.Errorf("save: encoding audit event: %w", err)
		}
		events = append(events, ports.AuditEvent{
			Kind:      string(act.Kind()),
			CreatedAt: act.Timestamp().UTC().Format(time.RFC3339Nano),
			Payload:   payload,
		})
	}
	if err := p.Events.Append(ctx, req.FarmID, newSession, events); err != nil {
		slog.Error("save: audit append failed", "farmID", req.FarmID, "error", err)
		return nil, fmt.Errorf("%w: %v", ports.ErrExternalUnavailable, err)
	}

	slog.Info("save committed",
		"farmID", req.FarmID,
		"sender", req.Sender,
		"actions", len(req.Actions),
		"balance", committed.Balance.String())

	return committed, nil
}

func newSessionToken() ([32]byte, error) {
	var token [32]byte
	if _, err := rand.Read(token[:]); err != nil {
		return token, err
	}
	return token, nil
}
