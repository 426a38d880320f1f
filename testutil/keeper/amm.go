package keeper

import (
	"testing"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	"cosmossdk.io/store"
	"cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
	"github.com/stretchr/testify/require"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
	assetkeeper "github.com/paw-chain/pawswap/x/asset/keeper"
	assettypes "github.com/paw-chain/pawswap/x/asset/types"
)

// AMMKeeper creates a test keeper for the AMM module backed by a real asset
// ledger, both mounted on an in-memory IAVL multistore.
func AMMKeeper(t testing.TB) (keeper.Keeper, assetkeeper.Keeper, sdk.Context) {
	ammKey := storetypes.NewKVStoreKey(types.StoreKey)
	assetKey := storetypes.NewKVStoreKey(assettypes.StoreKey)

	db := dbm.NewMemDB()
	stateStore := store.NewCommitMultiStore(db, log.NewNopLogger(), metrics.NewNoOpMetrics())
	stateStore.MountStoreWithDB(ammKey, storetypes.StoreTypeIAVL, db)
	stateStore.MountStoreWithDB(assetKey, storetypes.StoreTypeIAVL, db)
	require.NoError(t, stateStore.LoadLatestVersion())

	ak := assetkeeper.NewKeeper(assetKey)
	k := keeper.NewKeeper(ammKey, ak)

	ctx := sdk.NewContext(stateStore, cmtproto.Header{}, false, log.NewNopLogger())
	require.NoError(t, k.InitGenesis(ctx, *types.DefaultGenesis()))

	return k, ak, ctx
}

// TestAddr derives a deterministic account address from a name.
func TestAddr(name string) sdk.AccAddress {
	return sdk.AccAddress(address.Hash("test", []byte(name)))
}

// FundAccount mints amount of denom to holder.
func FundAccount(t testing.TB, ak assetkeeper.Keeper, ctx sdk.Context, denom string, holder sdk.AccAddress, amount math.Int) {
	require.NoError(t, ak.Mint(ctx, denom, holder, amount))
}

// CreateFundedPair creates a pair and seeds it with amountA of assetA and
// amountB of assetB minted to and deposited by provider. It returns the pair
// id and the shares minted to provider.
func CreateFundedPair(
	t testing.TB,
	k keeper.Keeper,
	ak assetkeeper.Keeper,
	ctx sdk.Context,
	provider sdk.AccAddress,
	assetA, assetB string,
	amountA, amountB math.Int,
) (uint64, math.Int) {
	pairID, err := k.CreatePair(ctx, assetA, assetB)
	require.NoError(t, err)

	shares := AddLiquidity(t, k, ak, ctx, provider, pairID, assetA, assetB, amountA, amountB)
	return pairID, shares
}

// AddLiquidity mints and deposits both amounts into an existing pair on
// behalf of provider and mints shares to provider.
func AddLiquidity(
	t testing.TB,
	k keeper.Keeper,
	ak assetkeeper.Keeper,
	ctx sdk.Context,
	provider sdk.AccAddress,
	pairID uint64,
	assetA, assetB string,
	amountA, amountB math.Int,
) math.Int {
	pair, err := k.GetPairByID(ctx, pairID)
	require.NoError(t, err)

	FundAccount(t, ak, ctx, assetA, provider, amountA)
	FundAccount(t, ak, ctx, assetB, provider, amountB)
	require.NoError(t, ak.Transfer(ctx, assetA, provider, pair.Address, amountA))
	require.NoError(t, ak.Transfer(ctx, assetB, provider, pair.Address, amountB))

	shares, err := k.Mint(ctx, provider, pairID, provider)
	require.NoError(t, err)
	return shares
}
