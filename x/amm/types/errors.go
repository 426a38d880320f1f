package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrDuplicatePair                = errors.Register(ModuleName, 2, "pair already exists")
	ErrIdenticalAssets              = errors.Register(ModuleName, 3, "identical assets")
	ErrUnauthorized                 = errors.Register(ModuleName, 4, "unauthorized")
	ErrInsufficientInitialLiquidity = errors.Register(ModuleName, 5, "insufficient initial liquidity")
	ErrInsufficientLiquidityMinted  = errors.Register(ModuleName, 6, "insufficient liquidity minted")
	ErrInsufficientLiquidityBurned  = errors.Register(ModuleName, 7, "insufficient liquidity burned")
	ErrInsufficientLiquidity        = errors.Register(ModuleName, 8, "insufficient liquidity")
	ErrInvalidOutputAmounts         = errors.Register(ModuleName, 9, "invalid output amounts")
	ErrInsufficientInputAmount      = errors.Register(ModuleName, 10, "insufficient input amount")
	ErrInvariantViolation           = errors.Register(ModuleName, 11, "constant product invariant violated")
	ErrReentrancy                   = errors.Register(ModuleName, 12, "reentrancy detected")
	ErrPairNotFound                 = errors.Register(ModuleName, 13, "pair not found")
	ErrInvalidAsset                 = errors.Register(ModuleName, 14, "invalid asset")
	ErrInvalidRecipient             = errors.Register(ModuleName, 15, "invalid recipient")
	ErrCalleeNotFound               = errors.Register(ModuleName, 16, "no swap callee registered for recipient")
	ErrOverflow                     = errors.Register(ModuleName, 17, "reserve overflow")
	ErrInsufficientShares           = errors.Register(ModuleName, 18, "insufficient liquidity shares")
	ErrInvalidParams                = errors.Register(ModuleName, 19, "invalid params")
	ErrInvalidGenesis               = errors.Register(ModuleName, 20, "invalid genesis state")
	ErrInvalidAmount                = errors.Register(ModuleName, 21, "invalid amount")
)
