package keeper

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// MaxIterationLimit caps the number of pairs returned by GetAllPairs.
const MaxIterationLimit = 100

// CreatePair registers a new, empty pair for an unordered asset pair and
// returns its id. Assets are ordered lexicographically. Returns
// ErrIdenticalAssets for assetA == assetB and ErrDuplicatePair if the pair
// already exists.
func (k Keeper) CreatePair(ctx context.Context, assetA, assetB string) (uint64, error) {
	if assetA == assetB {
		return 0, types.ErrIdenticalAssets.Wrapf("cannot pair %s with itself", assetA)
	}
	if err := sdk.ValidateDenom(assetA); err != nil {
		return 0, types.ErrInvalidAsset.Wrap(err.Error())
	}
	if err := sdk.ValidateDenom(assetB); err != nil {
		return 0, types.ErrInvalidAsset.Wrap(err.Error())
	}

	var pair types.Pair
	err := k.execute(ctx, types.RegistryLockName, "create_pair", func(ctx sdk.Context) error {
		if existing, found := k.GetPair(ctx, assetA, assetB); found {
			assetX, assetY := types.SortAssets(assetA, assetB)
			return types.ErrDuplicatePair.Wrapf("pair %d already exists for %s/%s", existing, assetX, assetY)
		}

		pair = types.NewPair(k.nextPairID(ctx), assetA, assetB)
		if err := k.SetPair(ctx, pair); err != nil {
			return err
		}
		k.getStore(ctx).Set(types.PairByAssetsKey(pair.AssetX, pair.AssetY), sdk.Uint64ToBigEndian(pair.Id))

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypePairCreated,
				sdk.NewAttribute(types.AttributeKeyAssetX, pair.AssetX),
				sdk.NewAttribute(types.AttributeKeyAssetY, pair.AssetY),
				sdk.NewAttribute(types.AttributeKeyPairID, fmt.Sprintf("%d", pair.Id)),
				sdk.NewAttribute(types.AttributeKeyPairAddress, pair.Address.String()),
			),
		)
		return nil
	})
	if err != nil {
		return 0, err
	}

	k.metrics.PairsCreated.Inc()
	k.Logger(ctx).Info("pair created", "pair_id", pair.Id, "asset_x", pair.AssetX, "asset_y", pair.AssetY)
	return pair.Id, nil
}

// GetPair looks up the pair id for an asset pair in either order.
func (k Keeper) GetPair(ctx context.Context, assetA, assetB string) (uint64, bool) {
	bz := k.getStore(ctx).Get(types.PairByAssetsKey(assetA, assetB))
	if bz == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}

// GetPairByID retrieves a pair record. Returns ErrPairNotFound if absent.
func (k Keeper) GetPairByID(ctx context.Context, pairID uint64) (types.Pair, error) {
	bz := k.getStore(ctx).Get(types.PairKey(pairID))
	if bz == nil {
		return types.Pair{}, types.ErrPairNotFound.Wrapf("pair %d not found", pairID)
	}

	var pair types.Pair
	if err := json.Unmarshal(bz, &pair); err != nil {
		return types.Pair{}, fmt.Errorf("GetPairByID: unmarshal pair %d: %w", pairID, err)
	}
	return pair, nil
}

// SetPair saves a pair record to the store
func (k Keeper) SetPair(ctx context.Context, pair types.Pair) error {
	bz, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("SetPair: marshal pair %d: %w", pair.Id, err)
	}
	k.getStore(ctx).Set(types.PairKey(pair.Id), bz)
	return nil
}

// IteratePairs iterates over all pairs in id order
func (k Keeper) IteratePairs(ctx context.Context, cb func(pair types.Pair) (stop bool)) error {
	iterator := storetypes.KVStorePrefixIterator(k.getStore(ctx), types.PairKeyPrefix)
	defer iterator.Close()

	for ; iterator.Valid(); iterator.Next() {
		var pair types.Pair
		if err := json.Unmarshal(iterator.Value(), &pair); err != nil {
			return fmt.Errorf("IteratePairs: unmarshal pair: %w", err)
		}
		if cb(pair) {
			break
		}
	}
	return nil
}

// GetAllPairs returns up to MaxIterationLimit pairs
func (k Keeper) GetAllPairs(ctx context.Context) ([]types.Pair, error) {
	pairs := make([]types.Pair, 0, MaxIterationLimit)
	err := k.IteratePairs(ctx, func(pair types.Pair) bool {
		pairs = append(pairs, pair)
		return len(pairs) >= MaxIterationLimit
	})
	return pairs, err
}

// SetFeeRecipient designates the protocol fee recipient. Only the registry
// admin may call it; an empty recipient turns the protocol fee off.
func (k Keeper) SetFeeRecipient(ctx context.Context, caller, recipient sdk.AccAddress) error {
	if err := k.requireAdmin(ctx, caller); err != nil {
		return err
	}
	k.setFeeRecipient(ctx, recipient)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeFeeRecipientUpdated,
			sdk.NewAttribute(types.AttributeKeyAdmin, caller.String()),
			sdk.NewAttribute(types.AttributeKeyFeeRecipient, recipient.String()),
		),
	)
	k.Logger(ctx).Info("fee recipient updated", "fee_recipient", recipient.String())
	return nil
}

// SetAdmin hands the registry admin role to newAdmin. Only the current admin
// may call it.
func (k Keeper) SetAdmin(ctx context.Context, caller, newAdmin sdk.AccAddress) error {
	if err := k.requireAdmin(ctx, caller); err != nil {
		return err
	}
	if newAdmin.Empty() {
		return types.ErrUnauthorized.Wrap("new admin cannot be empty")
	}
	k.setAdmin(ctx, newAdmin)

	sdk.UnwrapSDKContext(ctx).EventManager().EmitEvent(
		sdk.NewEvent(
			types.EventTypeAdminUpdated,
			sdk.NewAttribute(types.AttributeKeyAdmin, newAdmin.String()),
		),
	)
	return nil
}

func (k Keeper) requireAdmin(ctx context.Context, caller sdk.AccAddress) error {
	admin, found := k.GetAdmin(ctx)
	if !found || caller.Empty() || !admin.Equals(caller) {
		return types.ErrUnauthorized.Wrapf("%s is not the registry admin", caller)
	}
	return nil
}

// nextPairID returns the next pair id and increments the counter
func (k Keeper) nextPairID(ctx context.Context) uint64 {
	store := k.getStore(ctx)
	pairID := uint64(1)
	if bz := store.Get(types.PairCountKey); bz != nil {
		pairID = binary.BigEndian.Uint64(bz)
	}
	store.Set(types.PairCountKey, sdk.Uint64ToBigEndian(pairID+1))
	return pairID
}

// getNextPairID returns the next pair id without consuming it
func (k Keeper) getNextPairID(ctx context.Context) uint64 {
	bz := k.getStore(ctx).Get(types.PairCountKey)
	if bz == nil {
		return 1
	}
	return binary.BigEndian.Uint64(bz)
}
