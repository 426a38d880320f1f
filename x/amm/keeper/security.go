package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// pairLockName returns the reentrancy lock name for a pair
func pairLockName(pairID uint64) string {
	return fmt.Sprintf("pair/%d", pairID)
}

// execute runs fn as one all-or-nothing unit guarded by the named lock.
//
// fn runs against a CacheContext branch. The lock marker is written into that
// branch, so anything fn calls with the branched context (a swap callee in
// particular) sees the lock and is rejected with ErrReentrancy, while the
// parent store never observes the marker. The branch, and the events emitted
// on it, are committed only when fn succeeds.
func (k Keeper) execute(ctx context.Context, lockName, operation string, fn func(ctx sdk.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	lockKey := types.ReentrancyLockKey(lockName)

	if sdkCtx.KVStore(k.storeKey).Has(lockKey) {
		k.metrics.ReentrancyRejections.WithLabelValues(lockName, operation).Inc()
		k.Logger(sdkCtx).Error("reentrant call rejected", "lock", lockName, "operation", operation)
		return types.ErrReentrancy.Wrapf("%s while %s is locked", operation, lockName)
	}

	cacheCtx, writeFn := sdkCtx.CacheContext()
	store := cacheCtx.KVStore(k.storeKey)
	store.Set(lockKey, []byte{0x01})

	if err := fn(cacheCtx); err != nil {
		// the branch, lock marker included, is dropped
		return err
	}

	store.Delete(lockKey)
	writeFn()
	return nil
}
