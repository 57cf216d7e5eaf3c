// Command farmengine is the reference process that wires the core packages
// (internal/catalog, internal/farmstate, internal/action, internal/temporal,
// internal/reconcile, internal/withdraw, internal/save) to the external
// collaborator adapters (internal/pgrepo, internal/onchain, internal/signer)
// and runs one save-then-withdraw cycle against a seeded farm.
//
// It is a demo/smoke-test driver, not a network-facing server: request
// dispatch (HTTP, Lambda, or otherwise) is out of scope (§1 Non-goals).
//
// Design reference: udisondev/la2go cmd/gameserver/main.go — config loaded
// first to set the log level, slog.SetDefault with a text handler,
// sequential wiring with early returns wrapped in fmt.Errorf, a run(ctx)
// error split from main() for os.Exit handling.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/action"
	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/config"
	"github.com/farmforge/engine/internal/farmstate"
	"github.com/farmforge/engine/internal/onchain"
	"github.com/farmforge/engine/internal/pgrepo"
	"github.com/farmforge/engine/internal/ports"
	"github.com/farmforge/engine/internal/save"
	"github.com/farmforge/engine/internal/signer"
	"github.com/farmforge/engine/internal/weiconv"
	"github.com/farmforge/engine/internal/whitelist"
	"github.com/farmforge/engine/internal/withdraw"
)

const ConfigPath = "config/farmengine.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("FARMENGINE_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	})))

	slog.Info("farmengine starting", "network", cfg.Network, "log_level", cfg.LogLevel)

	gate, err := whitelist.Load(cfg.WhitelistPath, cfg.Network)
	if err != nil {
		return fmt.Errorf("loading whitelist: %w", err)
	}

	cat := catalog.Load()
	slog.Info("catalog loaded", "fields", cat.FieldCount(), "trees", cat.TreeCount())

	const farmID = int64(1)
	const owner = "0xfarmer000000000000000000000000000001"

	if !gate.Allow(owner) {
		return fmt.Errorf("%w: %s", ports.ErrNotWhitelisted, owner)
	}

	repository, events, closeStore, err := buildStore(ctx, cfg, farmID, owner)
	if err != nil {
		return fmt.Errorf("wiring storage: %w", err)
	}
	defer closeStore()

	chain := onchain.New(cat)
	chain.SetOwner(farmID, owner)
	chain.SetBalance(owner, "5000000000000000000") // 5 SFL on-chain

	sign, err := signer.New()
	if err != nil {
		return fmt.Errorf("creating signer: %w", err)
	}

	pipeline := &save.Pipeline{
		Catalog:    cat,
		Converter:  weiconv.Converter{Catalog: cat},
		Repository: repository,
		Events:     events,
		Chain:      chain,
	}

	now := time.Now().UTC()
	actions := []action.Action{
		action.NewRedeemed(now, "HARVESTFEST"),
	}

	slog.Info("running save", "farm_id", farmID, "actions", len(actions))
	state, err := pipeline.Save(ctx, save.Request{FarmID: farmID, Sender: owner, Actions: actions})
	if err != nil {
		return fmt.Errorf("save: %w", err)
	}
	slog.Info("save committed", "balance", state.Balance.String(), "wood", state.Inventory["Wood"].String())

	withdrawReq := withdraw.Request{
		FarmID:  farmID,
		Sender:  owner,
		SFL:     decimal.RequireFromString("5"),
		IDs:     []int{},
		Amounts: []string{},
	}
	signed, err := withdraw.Prepare(ctx, cat, sign, withdrawReq)
	if err != nil {
		return fmt.Errorf("withdraw: %w", err)
	}
	slog.Info("withdrawal signed", "deadline", signed.Deadline)

	return nil
}

// buildStore wires the repository backend named by cfg.Storage. "postgres"
// migrates and seeds a real database via internal/pgrepo.Repository;
// anything else (including the zero value) falls back to an in-process
// pgrepo.Fake. The returned func closes the backend's resources, a no-op for
// the in-memory case.
func buildStore(ctx context.Context, cfg config.Config, farmID int64, owner string) (ports.Repository, ports.EventStore, func(), error) {
	if cfg.Storage != "postgres" {
		fake := pgrepo.NewFake()
		fake.Seed(ports.Farm{
			ID:      farmID,
			Address: owner,
			State:   farmstate.New(owner).ToDocument(),
		})
		return fake, fake, func() {}, nil
	}

	dsn := cfg.Database.DSN()
	if err := pgrepo.RunMigrations(ctx, dsn); err != nil {
		return nil, nil, nil, fmt.Errorf("running migrations: %w", err)
	}

	repo, err := pgrepo.New(ctx, dsn)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := repo.CreateFarm(ctx, ports.Farm{
		ID:      farmID,
		Address: owner,
		State:   farmstate.New(owner).ToDocument(),
	}); err != nil {
		repo.Close()
		return nil, nil, nil, fmt.Errorf("seeding farm: %w", err)
	}
	return repo, repo, repo.Close, nil
}

// parseLogLevel converts a string log level to slog.Level, defaulting to
// info on an unrecognized value.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
