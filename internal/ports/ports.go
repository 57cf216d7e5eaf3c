// Package ports declares the external collaborators the core consumes but
// never implements as domain logic (§1 "Deliberately out of scope", §6
// "Consumed interfaces"): the farm repository, the event audit log, the
// on-chain reader, the withdrawal signer, and the wallet-signature verifier.
//
// Concrete adapters for these interfaces live in internal/pgrepo,
// internal/onchain and internal/signer; nothing in internal/save,
// internal/action, internal/reconcile or internal/withdraw imports those
// packages, only their interfaces here.
package ports

import (
	"context"

	"github.com/farmforge/engine/internal/farmstate"
)

// Farm is the repository's on-disk shape (§3 "Farm document"): quantities
// are decimal strings, plus the identity and CAS fields the repository
// itself owns.
type Farm struct {
	ID      int64
	Address string
	Session [32]byte
	State   farmstate.Document
}

// Repository is the farm key/value store (§1, §6).
type Repository interface {
	// GetFarmByID loads a farm by ID. Returns (nil, nil) if absent.
	GetFarmByID(ctx context.Context, id int64) (*Farm, error)

	// UpdateGameState persists a farm's new state under a new session,
	// contingent on the caller supplying the session it last observed
	// (optimistic concurrency, §5). Returns ErrSessionConflict if the
	// farm's current session no longer matches oldSession.
	UpdateGameState(ctx context.Context, id int64, oldSession, newSession [32]byte, state farmstate.Document) error
}

// EventStore is the append-only action audit log (§1, §6).
type EventStore interface {
	Append(ctx context.Context, farmID int64, session [32]byte, actions []AuditEvent) error
}

// AuditEvent is one action as recorded in the audit log — kind plus raw
// payload, no interpretation.
type AuditEvent struct {
	Kind      string
	CreatedAt string
	Payload   []byte
}

// Chain is the read side of the on-chain contract facade (§6).
type Chain interface {
	// LoadBalance returns the address's SFL balance as a wei-string.
	LoadBalance(ctx context.Context, address string) (string, error)

	// LoadInventory returns wei-strings positionally ordered by the
	// catalog's on-chain ID order (catalog.Catalog.OnChainOrder).
	LoadInventory(ctx context.Context, address string) ([]string, error)

	// OwnerOf returns the wallet address that owns farmID.
	OwnerOf(ctx context.Context, farmID int64) (string, error)
}

// Signer produces the signed payload an on-chain contract will trust for a
// withdrawal (§4.7, §6).
type Signer interface {
	WithdrawSignature(ctx context.Context, payload WithdrawPayload) (SignedWithdrawal, error)
}

// WithdrawPayload is what C7 hands to the signer.
type WithdrawPayload struct {
	Sender    string
	FarmID    int64
	SessionID [32]byte
	SFL       string
	IDs       []int
	Amounts   []string
	TaxBps    int
}

// SignedWithdrawal is the signer's response, returned verbatim (§4.7).
type SignedWithdrawal struct {
	Signature string
	Deadline  int64
}

// Wallet verifies that a message was signed by address (§6).
type Wallet interface {
	Verify(ctx context.Context, address, signature, message string) (bool, error)
}
