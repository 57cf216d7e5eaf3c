// Package onchain is a deterministic in-memory reference implementation of
// ports.Chain (§4.5, §6): a stand-in for the RPC client a production
// deployment would point at an EVM node. Addresses are strings and
// quantities are wei-strings, matching the ChainBackend shape the retrieval
// pack's go-ethereum-derived adapter (alexwelcing/go-ethereum) exposes,
// adapted here to the farm domain and to synchronous map storage the way
// udisondev/la2go's in-memory stores are built.
package onchain

import (
	"context"
	"fmt"
	"sync"

	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/ports"
)

// Chain is an in-memory ports.Chain. Production deployments would replace it
// with an adapter that calls an EVM RPC endpoint; this one lets
// cmd/farmengine and the test suite exercise the reconciliation path without
// a live node.
type Chain struct {
	mu        sync.RWMutex
	catalog   *catalog.Catalog
	balances  map[string]string   // address -> SFL wei
	inventory map[string][]string // address -> wei, ordered by catalog.OnChainOrder
	owners    map[int64]string    // farmID -> address
}

// New returns a Chain seeded against cat's on-chain ID ordering.
func New(cat *catalog.Catalog) *Chain {
	return &Chain{
		catalog:   cat,
		balances:  make(map[string]string),
		inventory: make(map[string][]string),
		owners:    make(map[int64]string),
	}
}

// SetOwner registers farmID's owning address, for test and demo setup.
func (c *Chain) SetOwner(farmID int64, address string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.owners[farmID] = address
}

// SetBalance sets address's on-chain SFL balance in wei.
func (c *Chain) SetBalance(address, wei string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.balances[address] = wei
}

// SetInventory sets address's on-chain inventory, wei-strings ordered by
// catalog.OnChainOrder.
func (c *Chain) SetInventory(address string, wei []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inventory[address] = wei
}

// LoadBalance implements ports.Chain.
func (c *Chain) LoadBalance(ctx context.Context, address string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if wei, ok := c.balances[address]; ok {
		return wei, nil
	}
	return "0", nil
}

// LoadInventory implements ports.Chain.
func (c *Chain) LoadInventory(ctx context.Context, address string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	order := c.catalog.OnChainOrder()
	if wei, ok := c.inventory[address]; ok {
		if len(wei) != len(order) {
			return nil, fmt.Errorf("onchain: inventory length %d does not match catalog length %d", len(wei), len(order))
		}
		out := make([]string, len(wei))
		copy(out, wei)
		return out, nil
	}

	out := make([]string, len(order))
	for i := range out {
		out[i] = "0"
	}
	return out, nil
}

// OwnerOf implements ports.Chain.
func (c *Chain) OwnerOf(ctx context.Context, farmID int64) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	address, ok := c.owners[farmID]
	if !ok {
		return "", ports.ErrFarmNotFound
	}
	return address, nil
}
