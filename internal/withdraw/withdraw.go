// Package withdraw implements the withdrawal preparer (§4.7, C7): it taxes
// an SFL amount, validates the requested item IDs against the catalog's
// withdrawable set, and hands the bundled payload to the external signer.
//
// The core never mutates the farm here — the on-chain contract does that,
// and a later save's reconcile step (internal/reconcile) will observe it.
package withdraw

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/farmforge/engine/internal/action"
	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/ports"
)

// Request is a withdrawal request as decoded from the boundary (schema
// validation and signature verification already done by the caller — see
// SPEC_FULL.md §1 Non-goals).
type Request struct {
	FarmID    int64
	SessionID [32]byte
	Sender    string
	SFL       decimal.Decimal
	IDs       []int
	Amounts   []string // wei-strings, passed through verbatim to the signer
}

// Prepare validates req against the catalog and returns the signer's
// response verbatim (§4.7).
//
// §9 Open Questions, preserved intentionally:
//   - an empty IDs/Amounts pair is a legal no-op that still consumes a
//     signature (the source validates amounts.min(0), not .min(1));
//   - the source never checks len(ids) == len(amounts) itself, trusting the
//     on-chain contract; this implementation adds that check as
//     defense-in-depth, since it is cheap and catches an obviously malformed
//     request before it reaches the signer.
func Prepare(ctx context.Context, cat *catalog.Catalog, signer ports.Signer, req Request) (ports.SignedWithdrawal, error) {
	if len(req.IDs) != len(req.Amounts) {
		return ports.SignedWithdrawal{}, fmt.Errorf("withdraw: ids has %d entries, amounts has %d", len(req.IDs), len(req.Amounts))
	}

	for _, id := range req.IDs {
		name, ok := cat.LookupOnChainID(id)
		if !ok || !cat.IsWithdrawable(name) {
			return ports.SignedWithdrawal{}, fmt.Errorf("%w: on-chain ID %d", action.ErrNotWithdrawable, id)
		}
	}

	taxBps := TaxBasisPoints(req.SFL)

	payload := ports.WithdrawPayload{
		Sender:    req.Sender,
		FarmID:    req.FarmID,
		SessionID: req.SessionID,
		SFL:       req.SFL.String(),
		IDs:       req.IDs,
		Amounts:   req.Amounts,
		TaxBps:    taxBps,
	}

	signed, err := signer.WithdrawSignature(ctx, payload)
	if err != nil {
		return ports.SignedWithdrawal{}, fmt.Errorf("%w: %v", ports.ErrExternalUnavailable, err)
	}
	return signed, nil
}
