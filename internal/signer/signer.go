// Package signer is the reference implementation of ports.Signer and
// ports.Wallet (§4.7, §6): an ECDSA keypair signs the fields a withdrawal
// contract would verify on-chain, and Verify checks a signature the same
// way. Production deployments would swap this for whatever signing service
// or hardware wallet actually authorizes withdrawals; this adapter exists so
// internal/withdraw and cmd/farmengine have something concrete to run
// against.
//
// Uses crypto/ecdsa and crypto/sha256 from the standard library rather than
// an ecosystem chain SDK: see DESIGN.md for why go-ethereum's signing stack
// was not adopted here.
package signer

import (
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/farmforge/engine/internal/ports"
)

// SignatureValidity is how long a produced signature remains acceptable
// on-chain before its deadline expires.
const SignatureValidity = 15 * time.Minute

// Signer produces withdrawal signatures under a single ECDSA keypair.
type Signer struct {
	key *ecdsa.PrivateKey
	now func() time.Time
}

// New generates a fresh signing keypair. In a production deployment this key
// would be loaded from a secrets manager rather than generated at startup.
func New() (*Signer, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("signer: generating keypair: %w", err)
	}
	return &Signer{key: key, now: time.Now}, nil
}

// WithdrawSignature implements ports.Signer.
func (s *Signer) WithdrawSignature(ctx context.Context, payload ports.WithdrawPayload) (ports.SignedWithdrawal, error) {
	deadline := s.now().Add(SignatureValidity).Unix()
	message := withdrawalMessage(payload, deadline)
	digest := sha256.Sum256([]byte(message))

	r, sv, err := ecdsa.Sign(rand.Reader, s.key, digest[:])
	if err != nil {
		return ports.SignedWithdrawal{}, fmt.Errorf("signer: signing withdrawal: %w", err)
	}

	sig := hex.EncodeToString(r.Bytes()) + ":" + hex.EncodeToString(sv.Bytes())
	return ports.SignedWithdrawal{Signature: sig, Deadline: deadline}, nil
}

// WithdrawalMessage returns the canonical string a withdrawal's signature
// covers, so a caller can reconstruct it for Wallet.Verify.
func WithdrawalMessage(payload ports.WithdrawPayload, deadline int64) string {
	return withdrawalMessage(payload, deadline)
}

// PublicKey exposes the verifying key, for wiring a matching Wallet.
func (s *Signer) PublicKey() *ecdsa.PublicKey {
	return &s.key.PublicKey
}

// Wallet verifies signatures produced by a Signer's public key.
type Wallet struct {
	pub *ecdsa.PublicKey
}

// NewWallet builds a Wallet that trusts signatures from pub.
func NewWallet(pub *ecdsa.PublicKey) *Wallet {
	return &Wallet{pub: pub}
}

// Verify implements ports.Wallet. address is unused beyond being part of
// message's construction by the caller; the trust anchor here is the
// keypair, not the address (§4.7 leaves address ownership to internal/save).
func (w *Wallet) Verify(ctx context.Context, address, signature, message string) (bool, error) {
	parts := strings.SplitN(signature, ":", 2)
	if len(parts) != 2 {
		return false, nil
	}
	rBytes, err := hex.DecodeString(parts[0])
	if err != nil {
		return false, nil
	}
	sBytes, err := hex.DecodeString(parts[1])
	if err != nil {
		return false, nil
	}

	sum := sha256.Sum256([]byte(message))
	r := new(big.Int).SetBytes(rBytes)
	sv := new(big.Int).SetBytes(sBytes)
	return ecdsa.Verify(w.pub, sum[:], r, sv), nil
}

func withdrawalMessage(payload ports.WithdrawPayload, deadline int64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%x|%s|%d", payload.Sender, payload.FarmID, payload.SessionID, payload.SFL, payload.TaxBps)
	for i, id := range payload.IDs {
		fmt.Fprintf(&b, "|%d:%s", id, payload.Amounts[i])
	}
	b.WriteString("|")
	b.WriteString(strconv.FormatInt(deadline, 10))
	return b.String()
}
