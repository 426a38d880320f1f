package keeper

import (
	"context"
	"fmt"

	"github.com/paw-chain/pawswap/x/asset/types"
)

// InitGenesis loads balances into the ledger and derives supplies from them.
func (k Keeper) InitGenesis(ctx context.Context, genState types.GenesisState) error {
	if err := genState.Validate(); err != nil {
		return err
	}
	for _, b := range genState.Balances {
		if err := k.Mint(ctx, b.Denom, b.Holder, b.Amount); err != nil {
			return fmt.Errorf("InitGenesis: balance of %s for %s: %w", b.Denom, b.Holder, err)
		}
	}
	return nil
}

// ExportGenesis returns the ledger's current balances.
func (k Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	genState := types.DefaultGenesis()
	err := k.IterateBalances(ctx, func(b types.Balance) bool {
		genState.Balances = append(genState.Balances, b)
		return false
	})
	if err != nil {
		return nil, err
	}
	return genState, nil
}
