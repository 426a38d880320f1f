package types

import (
	"cosmossdk.io/errors"
)

// Asset module sentinel errors
var (
	ErrInsufficientFunds = errors.Register(ModuleName, 2, "insufficient funds")
	ErrInvalidAmount     = errors.Register(ModuleName, 3, "invalid amount")
	ErrInvalidDenom      = errors.Register(ModuleName, 4, "invalid denom")
	ErrInvalidAddress    = errors.Register(ModuleName, 5, "invalid address")
	ErrInvalidGenesis    = errors.Register(ModuleName, 6, "invalid genesis state")
)
