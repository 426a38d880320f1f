package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/asset/types"
)

// Keeper is a minimal fungible asset ledger keyed by denom and holder.
type Keeper struct {
	storeKey storetypes.StoreKey
}

// NewKeeper creates a new asset Keeper instance
func NewKeeper(key storetypes.StoreKey) Keeper {
	return Keeper{storeKey: key}
}

// getStore returns the KVStore for the asset module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// BalanceOf returns holder's balance of denom, zero if none.
func (k Keeper) BalanceOf(ctx context.Context, denom string, holder sdk.AccAddress) math.Int {
	return k.getInt(ctx, types.BalanceKey(denom, holder))
}

// Supply returns the total minted amount of denom.
func (k Keeper) Supply(ctx context.Context, denom string) math.Int {
	return k.getInt(ctx, types.SupplyKey(denom))
}

// Mint creates amount of denom and credits it to recipient.
func (k Keeper) Mint(ctx context.Context, denom string, recipient sdk.AccAddress, amount math.Int) error {
	if err := sdk.ValidateDenom(denom); err != nil {
		return types.ErrInvalidDenom.Wrap(err.Error())
	}
	if recipient.Empty() {
		return types.ErrInvalidAddress.Wrap("recipient cannot be empty")
	}
	if amount.IsNil() || !amount.IsPositive() {
		return types.ErrInvalidAmount.Wrapf("mint amount must be positive, got %s", amount)
	}

	if err := k.setInt(ctx, types.BalanceKey(denom, recipient), k.BalanceOf(ctx, denom, recipient).Add(amount)); err != nil {
		return fmt.Errorf("Mint: set balance: %w", err)
	}
	if err := k.setInt(ctx, types.SupplyKey(denom), k.Supply(ctx, denom).Add(amount)); err != nil {
		return fmt.Errorf("Mint: set supply: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeMint,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// Transfer moves amount of denom from one holder to another. Zero-amount
// transfers succeed without touching state.
func (k Keeper) Transfer(ctx context.Context, denom string, from, to sdk.AccAddress, amount math.Int) error {
	if from.Empty() || to.Empty() {
		return types.ErrInvalidAddress.Wrap("transfer endpoints cannot be empty")
	}
	if amount.IsNil() || amount.IsNegative() {
		return types.ErrInvalidAmount.Wrapf("transfer amount must be non-negative, got %s", amount)
	}
	if amount.IsZero() || from.Equals(to) {
		return nil
	}

	fromBalance := k.BalanceOf(ctx, denom, from)
	if fromBalance.LT(amount) {
		return types.ErrInsufficientFunds.Wrapf("%s has %s%s, needs %s%s", from, fromBalance, denom, amount, denom)
	}

	if err := k.setInt(ctx, types.BalanceKey(denom, from), fromBalance.Sub(amount)); err != nil {
		return fmt.Errorf("Transfer: debit: %w", err)
	}
	if err := k.setInt(ctx, types.BalanceKey(denom, to), k.BalanceOf(ctx, denom, to).Add(amount)); err != nil {
		return fmt.Errorf("Transfer: credit: %w", err)
	}

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeTransfer,
			sdk.NewAttribute(types.AttributeKeyDenom, denom),
			sdk.NewAttribute(types.AttributeKeyFrom, from.String()),
			sdk.NewAttribute(types.AttributeKeyTo, to.String()),
			sdk.NewAttribute(types.AttributeKeyAmount, amount.String()),
		),
	)
	return nil
}

// IterateBalances iterates over every non-zero balance in key order.
func (k Keeper) IterateBalances(ctx context.Context, cb func(balance types.Balance) (stop bool)) error {
	store := k.getStore(ctx)
	iterator := storetypes.KVStorePrefixIterator(store, types.BalanceKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var amount math.Int
		if err := amount.Unmarshal(iterator.Value()); err != nil {
			return fmt.Errorf("IterateBalances: unmarshal: %w", err)
		}
		denom, holder := types.SplitBalanceKey(iterator.Key())
		if cb(types.Balance{Denom: denom, Holder: holder, Amount: amount}) {
			break
		}
	}
	return nil
}

func (k Keeper) getInt(ctx context.Context, key []byte) math.Int {
	bz := k.getStore(ctx).Get(key)
	if bz == nil {
		return math.ZeroInt()
	}
	var v math.Int
	if err := v.Unmarshal(bz); err != nil {
		k.Logger(ctx).Error("corrupt ledger entry", "key", fmt.Sprintf("%X", key), "error", err)
		return math.ZeroInt()
	}
	return v
}

func (k Keeper) setInt(ctx context.Context, key []byte, v math.Int) error {
	store := k.getStore(ctx)
	if v.IsZero() {
		store.Delete(key)
		return nil
	}
	bz, err := v.Marshal()
	if err != nil {
		return err
	}
	store.Set(key, bz)
	return nil
}
