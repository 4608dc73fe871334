package core

import "strconv"

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrUnauthorized caller lacks operator permission
	ErrUnauthorized ErrorCode = 100001
	// ErrInvalidAmount invalid amount
	ErrInvalidAmount ErrorCode = 100002

	// ErrMarketNotFound no market
	ErrMarketNotFound ErrorCode = 100100
	// ErrMarketClosed market closed
	ErrMarketClosed ErrorCode = 100101
	// ErrInvalidPrice oracle price missing or not positive
	ErrInvalidPrice ErrorCode = 100102

	// ErrUnliquidatable account is still collateralized
	ErrUnliquidatable ErrorCode = 100200
	// ErrUnvaporizable account still holds positive balances
	ErrUnvaporizable ErrorCode = 100201
	// ErrInvalidCollateral held balance negative going into a liquidation
	ErrInvalidCollateral ErrorCode = 100202
	// ErrInvalidBorrow owed balance positive going into a liquidation
	ErrInvalidBorrow ErrorCode = 100203
	// ErrExpiryMismatch supplied expiration does not match the record
	ErrExpiryMismatch ErrorCode = 100204
	// ErrAmountBoundsViolated output exceeds the caller supplied cap
	ErrAmountBoundsViolated ErrorCode = 100205
	// ErrAssetNotWhitelisted registry rejected the market for this proxy
	ErrAssetNotWhitelisted ErrorCode = 100206
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}
