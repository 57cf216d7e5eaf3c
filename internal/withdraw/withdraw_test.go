package withdraw

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/farmforge/engine/internal/action"
	"github.com/farmforge/engine/internal/catalog"
	"github.com/farmforge/engine/internal/ports"
)

func TestTaxBasisPoints_Schedule(t *testing.T) {
	cases := []struct {
		sfl  string
		want int
	}{
		{"1", 3000},
		{"9.999999999999999999", 3000},
		{"10", 2500},
		{"99", 2500},
		{"100", 2000},
		{"999", 2000},
		{"1000", 1000},
		{"9999", 1000},
		{"10000", FloorTaxBps},
		{"1000000", FloorTaxBps},
	}
	for _, c := range cases {
		got := TaxBasisPoints(decimal.RequireFromString(c.sfl))
		if got != c.want {
			t.Errorf("TaxBasisPoints(%s) = %d, want %d", c.sfl, got, c.want)
		}
	}
}

type stubSigner struct {
	payload ports.WithdrawPayload
	called  bool
}

func (s *stubSigner) WithdrawSignature(ctx context.Context, payload ports.WithdrawPayload) (ports.SignedWithdrawal, error) {
	s.called = true
	s.payload = payload
	return ports.SignedWithdrawal{Signature: "stub", Deadline: 1234}, nil
}

func TestPrepare_ComputesTaxAndCallsSigner(t *testing.T) {
	cat := catalog.Load()
	signer := &stubSigner{}

	req := Request{
		FarmID:  1,
		Sender:  "0xfarmer",
		SFL:     decimal.RequireFromString("50"),
		IDs:     []int{cat.OnChainID("Wood")},
		Amounts: []string{"1000000000000000000"},
	}

	signed, err := Prepare(context.Background(), cat, signer, req)
	require.NoError(t, err)
	require.Equal(t, "stub", signed.Signature)
	require.True(t, signer.called)
	require.Equal(t, TaxBasisPoints(req.SFL), signer.payload.TaxBps)
}

func TestPrepare_RejectsNonWithdrawableItem(t *testing.T) {
	cat := catalog.Load()
	signer := &stubSigner{}

	req := Request{
		Sender:  "0xfarmer",
		SFL:     decimal.RequireFromString("1"),
		IDs:     []int{cat.OnChainID("Sunflower Seed")},
		Amounts: []string{"1"},
	}

	_, err := Prepare(context.Background(), cat, signer, req)
	require.ErrorIs(t, err, action.ErrNotWithdrawable)
}

func TestPrepare_RejectsMismatchedLengths(t *testing.T) {
	cat := catalog.Load()
	signer := &stubSigner{}

	req := Request{
		Sender:  "0xfarmer",
		SFL:     decimal.RequireFromString("1"),
		IDs:     []int{1, 2},
		Amounts: []string{"1"},
	}

	_, err := Prepare(context.Background(), cat, signer, req)
	require.Error(t, err)
}

func TestPrepare_EmptyArraysAreLegalNoOp(t *testing.T) {
	cat := catalog.Load()
	signer := &stubSigner{}

	req := Request{
		Sender:  "0xfarmer",
		SFL:     decimal.RequireFromString("1"),
		IDs:     []int{},
		Amounts: []string{},
	}

	_, err := Prepare(context.Background(), cat, signer, req)
	require.NoError(t, err)
	require.True(t, signer.called)
}
