package action

import "errors"

// Sentinel errors for the action dispatcher (§4.4, §7). errors.Is is the
// expected way to classify a failure; NotCraftable and UnknownAction wrap an
// identifying detail via fmt.Errorf("%w: ...", Err...).
var (
	ErrUnknownAction         = errors.New("unknown action")
	ErrUnknownItem           = errors.New("unknown item")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrNotCraftable          = errors.New("This item is not craftable")
	ErrNotSellable           = errors.New("item is not sellable")
	ErrNotWithdrawable       = errors.New("item is not withdrawable")
	ErrFieldOccupied         = errors.New("field is occupied")
	ErrFieldEmpty            = errors.New("field is empty")
	ErrNotGrown              = errors.New("crop is not grown yet")
	ErrTreeNotRecovered      = errors.New("tree has not recovered")
	ErrInvalidIndex          = errors.New("invalid index")
	ErrInvalidAmount         = errors.New("invalid amount")
	ErrAlreadyRedeemed       = errors.New("promo code already redeemed")
	ErrUnknownRedeemCode     = errors.New("unknown redeem code")
)
