package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// mintProtocolFee mints the protocol's share of fee growth since the last
// liquidity event and reports whether the protocol fee is on.
//
// Growth is measured in sqrt(k): with rootK = sqrt(reserveX*reserveY) and
// rootKLast = sqrt(LastK) the recipient receives
//
//	totalShares * (rootK - rootKLast) / (rootK*divisor + rootKLast)
//
// shares, which dilutes providers by 1/(divisor+1) of the growth. Turning the
// fee off clears LastK so a later re-enable does not charge for the gap.
func (k Keeper) mintProtocolFee(ctx context.Context, pair *types.Pair, params types.Params) (bool, error) {
	recipient, feeOn := k.GetFeeRecipient(ctx)
	if !feeOn {
		if !pair.LastK.IsZero() {
			pair.LastK = math.ZeroInt()
		}
		return false, nil
	}
	if pair.LastK.IsZero() {
		return true, nil
	}

	rootK := sqrtInt(pair.K())
	rootKLast := sqrtInt(pair.LastK)
	if rootK.LTE(rootKLast) {
		return true, nil
	}

	numerator := pair.TotalShares.Mul(rootK.Sub(rootKLast))
	denominator := rootK.Mul(math.NewIntFromUint64(params.ProtocolFeeDivisor)).Add(rootKLast)
	shares := numerator.Quo(denominator)
	if !shares.IsPositive() {
		return true, nil
	}

	if err := k.mintShares(ctx, pair, recipient, shares); err != nil {
		return true, fmt.Errorf("mintProtocolFee: %w", err)
	}
	k.metrics.ProtocolFeeShares.WithLabelValues(fmt.Sprintf("%d", pair.Id)).Add(toFloat(shares))
	return true, nil
}
