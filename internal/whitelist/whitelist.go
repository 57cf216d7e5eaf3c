// Package whitelist gates sync-like operations by wallet address when
// NETWORK=mainnet (§4.10, §6). On testnet every address passes.
//
// Design reference: udisondev/la2go internal/config — a small YAML-decoded
// struct with a loader function, no framework.
package whitelist

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Network is the §6 NETWORK flag, read once per process start.
type Network string

const (
	Mainnet Network = "mainnet"
	Testnet Network = "testnet"
)

// List is a YAML-decoded set of eligible addresses.
type List struct {
	Addresses []string `yaml:"addresses"`
}

// Load reads a whitelist file. A missing testnet whitelist is not an error
// (testnet never consults it); a missing mainnet whitelist is, since
// mainnet sync would otherwise silently allow everyone.
func Load(path string, network Network) (*Gate, error) {
	if network != Mainnet {
		return &Gate{network: network}, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("whitelist: reading %q: %w", path, err)
	}
	var list List
	if err := yaml.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("whitelist: parsing %q: %w", path, err)
	}

	set := make(map[string]struct{}, len(list.Addresses))
	for _, addr := range list.Addresses {
		set[addr] = struct{}{}
	}
	return &Gate{network: network, addresses: set}, nil
}

// Gate answers whether an address may perform a sync-like operation.
type Gate struct {
	network   Network
	addresses map[string]struct{}
}

// Allow reports whether address passes the whitelist gate. Testnet always
// allows; mainnet requires membership in the loaded list.
func (g *Gate) Allow(address string) bool {
	if g.network != Mainnet {
		return true
	}
	_, ok := g.addresses[address]
	return ok
}
