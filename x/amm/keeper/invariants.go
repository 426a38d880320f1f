package keeper

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// RegisterInvariants registers all AMM invariants
func RegisterInvariants(ir sdk.InvariantRegistry, k Keeper) {
	ir.RegisterRoute(types.ModuleName, "share-supply", ShareSupplyInvariant(k))
	ir.RegisterRoute(types.ModuleName, "reserve-backing", ReserveBackingInvariant(k))
	ir.RegisterRoute(types.ModuleName, "active-reserves", ActiveReservesInvariant(k))
}

// ShareSupplyInvariant checks that each pair's total shares equal the sum of
// its share balances, locked minimum liquidity included.
func ShareSupplyInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePairs(ctx, func(pair types.Pair) bool {
			sum := math.ZeroInt()
			if err := k.IterateShareBalances(ctx, pair.Id, func(bal types.ShareBalance) bool {
				sum = sum.Add(bal.Shares)
				return false
			}); err != nil {
				count++
				msg += fmt.Sprintf("pair %d: %v\n", pair.Id, err)
				return false
			}
			if !sum.Equal(pair.TotalShares) {
				count++
				msg += fmt.Sprintf("pair %d: total shares %s != sum of balances %s\n", pair.Id, pair.TotalShares, sum)
			}
			return false
		})
		if err != nil {
			count++
			msg += err.Error() + "\n"
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "share-supply",
			fmt.Sprintf("found %d share supply mismatches\n%s", count, msg),
		), broken
	}
}

// ReserveBackingInvariant checks that every pair holds at least its recorded
// reserves of each asset.
func ReserveBackingInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePairs(ctx, func(pair types.Pair) bool {
			balanceX, balanceY := k.pairBalances(ctx, pair)
			if balanceX.LT(pair.ReserveX) {
				count++
				msg += fmt.Sprintf("pair %d: balance of %s (%s) < reserve (%s)\n",
					pair.Id, pair.AssetX, balanceX, pair.ReserveX)
			}
			if balanceY.LT(pair.ReserveY) {
				count++
				msg += fmt.Sprintf("pair %d: balance of %s (%s) < reserve (%s)\n",
					pair.Id, pair.AssetY, balanceY, pair.ReserveY)
			}
			return false
		})
		if err != nil {
			count++
			msg += err.Error() + "\n"
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "reserve-backing",
			fmt.Sprintf("found %d under-backed reserves\n%s", count, msg),
		), broken
	}
}

// ActiveReservesInvariant checks that a pair with outstanding shares has both
// reserves positive and that an unfunded pair has no shares.
func ActiveReservesInvariant(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		var (
			msg   string
			count int
		)

		err := k.IteratePairs(ctx, func(pair types.Pair) bool {
			if pair.TotalShares.IsPositive() && (!pair.ReserveX.IsPositive() || !pair.ReserveY.IsPositive()) {
				count++
				msg += fmt.Sprintf("pair %d: %s shares outstanding with reserves %s/%s\n",
					pair.Id, pair.TotalShares, pair.ReserveX, pair.ReserveY)
			}
			return false
		})
		if err != nil {
			count++
			msg += err.Error() + "\n"
		}

		broken := count != 0
		return sdk.FormatInvariant(
			types.ModuleName, "active-reserves",
			fmt.Sprintf("found %d active pairs without reserves\n%s", count, msg),
		), broken
	}
}
