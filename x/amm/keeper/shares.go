package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// ShareBalance returns holder's liquidity share balance in a pair
func (k Keeper) ShareBalance(ctx context.Context, pairID uint64, holder sdk.AccAddress) math.Int {
	bz := k.getStore(ctx).Get(types.ShareBalanceKey(pairID, holder))
	if bz == nil {
		return math.ZeroInt()
	}

	var shares math.Int
	if err := shares.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt share balance", "pair_id", pairID, "holder", holder.String(), "error", err)
		return math.ZeroInt()
	}
	return shares
}

// setShareBalance writes a share balance, deleting the entry when it reaches zero
func (k Keeper) setShareBalance(ctx context.Context, pairID uint64, holder sdk.AccAddress, shares math.Int) error {
	store := k.getStore(ctx)
	if shares.IsZero() {
		store.Delete(types.ShareBalanceKey(pairID, holder))
		return nil
	}

	bz, err := shares.Marshal()
	if err != nil {
		return err
	}
	store.Set(types.ShareBalanceKey(pairID, holder), bz)
	return nil
}

// TransferShares moves liquidity shares between holders of a pair. Sending
// shares to the pair's own address is how they are queued for Burn.
func (k Keeper) TransferShares(ctx context.Context, pairID uint64, from, to sdk.AccAddress, amount math.Int) error {
	if from.Empty() || to.Empty() {
		return types.ErrInvalidRecipient.Wrap("share transfer endpoints cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("share amount must be non-negative, got %s", amount)
	}

	return k.execute(ctx, pairLockName(pairID), "transfer_shares", func(ctx sdk.Context) error {
		if _, err := k.GetPairByID(ctx, pairID); err != nil {
			return err
		}

		fromBalance := k.ShareBalance(ctx, pairID, from)
		if fromBalance.LT(amount) {
			return types.ErrInsufficientShares.Wrapf("%s holds %s shares of pair %d, needs %s", from, fromBalance, pairID, amount)
		}
		if amount.IsZero() || from.Equals(to) {
			return nil
		}

		if err := k.setShareBalance(ctx, pairID, from, fromBalance.Sub(amount)); err != nil {
			return fmt.Errorf("TransferShares: debit: %w", err)
		}
		if err := k.setShareBalance(ctx, pairID, to, k.ShareBalance(ctx, pairID, to).Add(amount)); err != nil {
			return fmt.Errorf("TransferShares: credit: %w", err)
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeShareTransfer,
				sdk.NewAttribute(types.AttributeKeyPairID, fmt.Sprintf("%d", pairID)),
				sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
				sdk.NewAttribute(types.AttributeKeyTo, to.String()),
				sdk.NewAttribute(types.AttributeKeyShares, amount.String()),
			),
		)
		return nil
	})
}

// mintShares credits new shares to a holder and grows the pair's supply.
func (k Keeper) mintShares(ctx context.Context, pair *types.Pair, to sdk.AccAddress, amount math.Int) error {
	if err := k.setShareBalance(ctx, pair.Id, to, k.ShareBalance(ctx, pair.Id, to).Add(amount)); err != nil {
		return fmt.Errorf("mintShares: %w", err)
	}
	pair.TotalShares = pair.TotalShares.Add(amount)
	return nil
}

// burnShares destroys shares held by from and shrinks the pair's supply.
func (k Keeper) burnShares(ctx context.Context, pair *types.Pair, from sdk.AccAddress, amount math.Int) error {
	balance := k.ShareBalance(ctx, pair.Id, from)
	if balance.LT(amount) {
		return types.ErrInsufficientShares.Wrapf("%s holds %s shares of pair %d, burning %s", from, balance, pair.Id, amount)
	}
	if err := k.setShareBalance(ctx, pair.Id, from, balance.Sub(amount)); err != nil {
		return fmt.Errorf("burnShares: %w", err)
	}
	pair.TotalShares = pair.TotalShares.Sub(amount)
	return nil
}

// IterateShareBalances iterates over every share balance of a pair
func (k Keeper) IterateShareBalances(ctx context.Context, pairID uint64, cb func(balance types.ShareBalance) (stop bool)) error {
	return k.iterateShareBalances(ctx, types.ShareBalancePairPrefix(pairID), cb)
}

func (k Keeper) iterateShareBalances(ctx context.Context, prefix []byte, cb func(balance types.ShareBalance) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), prefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var shares math.Int
		if err := shares.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("iterateShareBalances: unmarshal: %w", err)
		}
		pairID, holder := types.SplitShareBalanceKey(iterator.Key())
		if cb(types.ShareBalance{PairId: pairID, Holder: holder, Shares: shares}) {
			break
		}
	}
	return nil
}
