package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Balance is a holder's balance of a single denom.
type Balance struct {
	Denom  string         `json:"denom"`
	Holder sdk.AccAddress `json:"holder"`
	Amount math.Int       `json:"amount"`
}

// GenesisState defines the asset ledger's genesis state. Supplies are derived
// from the balances.
type GenesisState struct {
	Balances []Balance `json:"balances"`
}

// DefaultGenesis returns an empty ledger.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Balances: []Balance{}}
}

// Validate performs basic genesis state validation returning an error upon any failure.
func (gs GenesisState) Validate() error {
	seen := make(map[string]struct{}, len(gs.Balances))
	for _, b := range gs.Balances {
		if err := sdk.ValidateDenom(b.Denom); err != nil {
			return ErrInvalidGenesis.Wrapf("balance denom: %v", err)
		}
		if b.Holder.Empty() {
			return ErrInvalidGenesis.Wrapf("balance of %s has empty holder", b.Denom)
		}
		if b.Amount.IsNil() || !b.Amount.IsPositive() {
			return ErrInvalidGenesis.Wrapf("balance of %s for %s must be positive", b.Denom, b.Holder)
		}
		key := fmt.Sprintf("%s/%s", b.Denom, b.Holder)
		if _, dup := seen[key]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate balance of %s for %s", b.Denom, b.Holder)
		}
		seen[key] = struct{}{}
	}
	return nil
}
