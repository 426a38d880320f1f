package keeper

import (
	"context"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// InitGenesis initializes the amm module's state from a genesis state
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return fmt.Errorf("invalid amm genesis: %w", err)
	}

	if err := k.SetParams(ctx, genState.Params); err != nil {
		return fmt.Errorf("failed to set params: %w", err)
	}
	k.setAdmin(ctx, genState.Admin)
	k.setFeeRecipient(ctx, genState.FeeRecipient)

	store := k.getStore(ctx)
	store.Set(types.PairCountKey, sdk.Uint64ToBigEndian(genState.NextPairId))

	for _, pair := range genState.Pairs {
		if err := k.SetPair(ctx, pair); err != nil {
			return fmt.Errorf("failed to set pair %d: %w", pair.Id, err)
		}
		store.Set(types.PairByAssetsKey(pair.AssetX, pair.AssetY), sdk.Uint64ToBigEndian(pair.Id))
	}

	for _, bal := range genState.ShareBalances {
		if err := k.setShareBalance(ctx, bal.PairId, bal.Holder, bal.Shares); err != nil {
			return fmt.Errorf("failed to set shares of %s in pair %d: %w", bal.Holder, bal.PairId, err)
		}
	}
	return nil
}

// ExportGenesis returns the amm module's exported genesis
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get params: %w", err)
	}

	genesis := types.DefaultGenesis()
	genesis.Params = params
	genesis.NextPairId = k.getNextPairID(ctx)
	if admin, found := k.GetAdmin(ctx); found {
		genesis.Admin = admin
	}
	if recipient, found := k.GetFeeRecipient(ctx); found {
		genesis.FeeRecipient = recipient
	}

	if err := k.IteratePairs(ctx, func(pair types.Pair) bool {
		genesis.Pairs = append(genesis.Pairs, pair)
		return false
	}); err != nil {
		return nil, err
	}

	if err := k.iterateShareBalances(ctx, types.ShareBalanceKeyPrefix, func(bal types.ShareBalance) bool {
		genesis.ShareBalances = append(genesis.ShareBalances, bal)
		return false
	}); err != nil {
		return nil, err
	}
	return genesis, nil
}
