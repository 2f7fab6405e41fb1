package services

import "errors"

// Domain errors. Handlers translate these to HTTP statuses; anything else
// coming out of a service is a storage failure and maps to 500.
var (
	ErrInsufficientFunds = errors.New("insufficient coins")
	ErrInvalidAmount     = errors.New("amount must be non-negative")
	ErrWalletNotFound    = errors.New("wallet not found")

	ErrAssetNotFound    = errors.New("asset not found")
	ErrAssetUnavailable = errors.New("asset is not available for purchase")

	ErrNotOwned     = errors.New("asset not owned by user")
	ErrSlotMismatch = errors.New("asset does not fit the requested slot")

	ErrRewardNotFound = errors.New("daily reward not found")
	ErrAlreadyClaimed = errors.New("reward already claimed")
	ErrClaimTooEarly  = errors.New("reward not claimable yet")
	ErrInvalidDay     = errors.New("day is not the currently claimable day")
)
