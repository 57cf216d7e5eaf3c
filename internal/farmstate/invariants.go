package farmstate

import "fmt"

// CheckInvariants verifies §3 invariants 1 and 2 hold for s. It is used by
// tests (P1) and, defensively, at the end of the save pipeline before a
// state is persisted.
func CheckInvariants(s *State) error {
	if s.Balance.IsNegative() {
		return fmt.Errorf("farmstate: negative balance %s", s.Balance)
	}
	for item, qty := range s.Inventory {
		if !qty.IsPositive() {
			return fmt.Errorf("farmstate: inventory entry %q is not positive (%s)", item, qty)
		}
	}
	for item, qty := range s.Stock {
		if qty.IsNegative() {
			return fmt.Errorf("farmstate: negative stock %q (%s)", item, qty)
		}
	}
	return nil
}
