package keeper

import (
	"context"
	"fmt"
	"sync"

	"cosmossdk.io/log"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Keeper of the amm store
type Keeper struct {
	storeKey    storetypes.StoreKey
	assetKeeper types.AssetKeeper
	callees     *calleeRouter
	metrics     *AMMMetrics
}

// NewKeeper creates a new amm Keeper instance
func NewKeeper(key storetypes.StoreKey, assetKeeper types.AssetKeeper) Keeper {
	return Keeper{
		storeKey:    key,
		assetKeeper: assetKeeper,
		callees:     &calleeRouter{callees: make(map[string]types.SwapCallee)},
		metrics:     NewAMMMetrics(),
	}
}

// getStore returns the KVStore for the amm module
func (k Keeper) getStore(ctx context.Context) storetypes.KVStore {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.KVStore(k.storeKey)
}

// Logger returns a module-specific logger
func (k Keeper) Logger(ctx context.Context) log.Logger {
	return sdk.UnwrapSDKContext(ctx).Logger().With("module", fmt.Sprintf("x/%s", types.ModuleName))
}

// RegisterSwapCallee installs the callback invoked when a swap paying holder
// carries non-empty data. Passing a nil callee removes the registration.
func (k Keeper) RegisterSwapCallee(holder sdk.AccAddress, callee types.SwapCallee) {
	k.callees.set(holder, callee)
}

type calleeRouter struct {
	mu      sync.RWMutex
	callees map[string]types.SwapCallee
}

func (r *calleeRouter) set(holder sdk.AccAddress, callee types.SwapCallee) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if callee == nil {
		delete(r.callees, string(holder))
		return
	}
	r.callees[string(holder)] = callee
}

func (r *calleeRouter) get(holder sdk.AccAddress) (types.SwapCallee, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	callee, ok := r.callees[string(holder)]
	return callee, ok
}
