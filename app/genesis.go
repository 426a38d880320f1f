package app

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	ammtypes "github.com/paw-chain/pawswap/x/amm/types"
	assettypes "github.com/paw-chain/pawswap/x/asset/types"
)

// GenesisState represents the genesis state of the application, keyed by module name
type GenesisState map[string]json.RawMessage

// NewDefaultGenesisState generates the default genesis state of every module
func NewDefaultGenesisState() GenesisState {
	genesis := make(GenesisState)
	genesis[assettypes.ModuleName] = mustMarshalJSON(assettypes.DefaultGenesis())
	genesis[ammtypes.ModuleName] = mustMarshalJSON(ammtypes.DefaultGenesis())
	return genesis
}

// InitGenesis loads every module's genesis state in one atomic unit. The
// asset ledger is loaded first so pair balances exist before pairs do.
func (app *App) InitGenesis(ctx context.Context, genesis GenesisState) error {
	assetGenesis := assettypes.DefaultGenesis()
	if bz, ok := genesis[assettypes.ModuleName]; ok {
		if err := json.Unmarshal(bz, assetGenesis); err != nil {
			return fmt.Errorf("failed to decode %s genesis: %w", assettypes.ModuleName, err)
		}
	}

	ammGenesis := ammtypes.DefaultGenesis()
	if bz, ok := genesis[ammtypes.ModuleName]; ok {
		if err := json.Unmarshal(bz, ammGenesis); err != nil {
			return fmt.Errorf("failed to decode %s genesis: %w", ammtypes.ModuleName, err)
		}
	}

	_, err := app.Exec(ctx, "init_genesis", func(ctx sdk.Context) error {
		if err := app.AssetKeeper.InitGenesis(ctx, *assetGenesis); err != nil {
			return err
		}
		if err := app.AMMKeeper.InitGenesis(ctx, *ammGenesis); err != nil {
			return err
		}
		if msg, broken := app.checkInvariants(ctx); broken {
			return fmt.Errorf("genesis breaks invariants: %s", msg)
		}
		return nil
	})
	return err
}

// ExportGenesis exports the state of every module
func (app *App) ExportGenesis(ctx context.Context) (GenesisState, error) {
	genesis := make(GenesisState)
	err := app.Query(ctx, func(ctx sdk.Context) error {
		assetGenesis, err := app.AssetKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}
		ammGenesis, err := app.AMMKeeper.ExportGenesis(ctx)
		if err != nil {
			return err
		}

		if genesis[assettypes.ModuleName], err = json.Marshal(assetGenesis); err != nil {
			return err
		}
		genesis[ammtypes.ModuleName], err = json.Marshal(ammGenesis)
		return err
	})
	if err != nil {
		return nil, err
	}
	return genesis, nil
}

func mustMarshalJSON(v interface{}) json.RawMessage {
	bz, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return bz
}
