package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Sync forces the pair's reserves to match its actual asset balances, e.g.
// after a direct transfer that bypassed Mint or Swap. Shares are untouched.
func (k Keeper) Sync(ctx context.Context, pairID uint64) error {
	err := k.execute(ctx, pairLockName(pairID), "sync", func(ctx sdk.Context) error {
		pair, err := k.GetPairByID(ctx, pairID)
		if err != nil {
			return err
		}
		balanceX, balanceY := k.pairBalances(ctx, pair)
		if err := k.updateReserves(ctx, &pair, balanceX, balanceY); err != nil {
			return err
		}
		return k.SetPair(ctx, pair)
	})
	if err != nil {
		return err
	}
	k.recordPairMetrics(ctx, pairID)
	return nil
}

// Skim sends the pair's balances in excess of its reserves to the given
// address and returns the amounts sent. Reserves and shares are untouched.
func (k Keeper) Skim(ctx context.Context, pairID uint64, to sdk.AccAddress) (math.Int, math.Int, error) {
	if to.Empty() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidRecipient.Wrap("skim recipient cannot be empty")
	}

	var excessX, excessY math.Int
	err := k.execute(ctx, pairLockName(pairID), "skim", func(ctx sdk.Context) error {
		pair, err := k.GetPairByID(ctx, pairID)
		if err != nil {
			return err
		}
		balanceX, balanceY := k.pairBalances(ctx, pair)
		excessX = excessOver(balanceX, pair.ReserveX)
		excessY = excessOver(balanceY, pair.ReserveY)

		if err := k.assetKeeper.Transfer(ctx, pair.AssetX, pair.Address, to, excessX); err != nil {
			return fmt.Errorf("Skim: transfer %s: %w", pair.AssetX, err)
		}
		if err := k.assetKeeper.Transfer(ctx, pair.AssetY, pair.Address, to, excessY); err != nil {
			return fmt.Errorf("Skim: transfer %s: %w", pair.AssetY, err)
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSkim,
				sdk.NewAttribute(types.AttributeKeyPairID, fmt.Sprintf("%d", pair.Id)),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
				sdk.NewAttribute(types.AttributeKeyAmountX, excessX.String()),
				sdk.NewAttribute(types.AttributeKeyAmountY, excessY.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}
	return excessX, excessY, nil
}

// pairBalances reads the pair's actual ledger balances of both assets.
func (k Keeper) pairBalances(ctx context.Context, pair types.Pair) (math.Int, math.Int) {
	return k.assetKeeper.BalanceOf(ctx, pair.AssetX, pair.Address),
		k.assetKeeper.BalanceOf(ctx, pair.AssetY, pair.Address)
}

// updateReserves sets the tracked reserves to the given balances and emits a
// sync event. The caller persists the pair.
func (k Keeper) updateReserves(ctx context.Context, pair *types.Pair, balanceX, balanceY math.Int) error {
	if err := checkReserveBounds(balanceX, balanceY); err != nil {
		return err
	}
	pair.ReserveX = balanceX
	pair.ReserveY = balanceY

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeSync,
			sdk.NewAttribute(types.AttributeKeyPairID, fmt.Sprintf("%d", pair.Id)),
			sdk.NewAttribute(types.AttributeKeyReserveX, balanceX.String()),
			sdk.NewAttribute(types.AttributeKeyReserveY, balanceY.String()),
		),
	)
	return nil
}

// recordPairMetrics publishes reserve and supply gauges after a committed change.
func (k Keeper) recordPairMetrics(ctx context.Context, pairID uint64) {
	pair, err := k.GetPairByID(ctx, pairID)
	if err != nil {
		return
	}
	id := fmt.Sprintf("%d", pair.Id)
	k.metrics.Reserves.WithLabelValues(id, pair.AssetX).Set(toFloat(pair.ReserveX))
	k.metrics.Reserves.WithLabelValues(id, pair.AssetY).Set(toFloat(pair.ReserveY))
	k.metrics.ShareSupply.WithLabelValues(id).Set(toFloat(pair.TotalShares))
}
