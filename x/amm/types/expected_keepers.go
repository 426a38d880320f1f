package types

import (
	"context"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// AssetKeeper defines the fungible asset ledger the AMM settles against.
type AssetKeeper interface {
	BalanceOf(ctx context.Context, denom string, holder sdk.AccAddress) math.Int
	Transfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error
}

// SwapCallee is invoked during a flash swap after the requested outputs have
// been paid to the recipient. It must deposit enough input into the pair
// before returning; returning an error aborts the whole swap.
type SwapCallee interface {
	OnSwapCallback(ctx context.Context, sender sdk.AccAddress, amountXOut, amountYOut math.Int, data []byte) error
}

// SwapCalleeFunc adapts a function to the SwapCallee interface.
type SwapCalleeFunc func(ctx context.Context, sender sdk.AccAddress, amountXOut, amountYOut math.Int, data []byte) error

// OnSwapCallback calls f.
func (f SwapCalleeFunc) OnSwapCallback(ctx context.Context, sender sdk.AccAddress, amountXOut, amountYOut math.Int, data []byte) error {
	return f(ctx, sender, amountXOut, amountYOut, data)
}
