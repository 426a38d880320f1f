package types

import (
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ShareBalance is a single liquidity share balance held in a pair.
type ShareBalance struct {
	PairId uint64         `json:"pair_id"`
	Holder sdk.AccAddress `json:"holder"`
	Shares math.Int       `json:"shares"`
}

// GenesisState defines the AMM module's genesis state.
type GenesisState struct {
	Params        Params         `json:"params"`
	Admin         sdk.AccAddress `json:"admin"`
	FeeRecipient  sdk.AccAddress `json:"fee_recipient"`
	NextPairId    uint64         `json:"next_pair_id"`
	Pairs         []Pair         `json:"pairs"`
	ShareBalances []ShareBalance `json:"share_balances"`
}

// DefaultGenesis returns the default genesis state with no admin and no pairs.
func DefaultGenesis() *GenesisState {
	return &GenesisState{
		Params:        DefaultParams(),
		NextPairId:    1,
		Pairs:         []Pair{},
		ShareBalances: []ShareBalance{},
	}
}

// Validate performs basic genesis state validation returning an error upon any failure.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}
	if gs.NextPairId == 0 {
		return ErrInvalidGenesis.Wrap("next pair id must be positive")
	}

	pairs := make(map[uint64]Pair, len(gs.Pairs))
	assetIndex := make(map[string]uint64, len(gs.Pairs))
	for _, pair := range gs.Pairs {
		if err := pair.Validate(); err != nil {
			return ErrInvalidGenesis.Wrap(err.Error())
		}
		if _, dup := pairs[pair.Id]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate pair id %d", pair.Id)
		}
		if pair.Id >= gs.NextPairId {
			return ErrInvalidGenesis.Wrapf("pair id %d not below next pair id %d", pair.Id, gs.NextPairId)
		}
		key := string(PairByAssetsKey(pair.AssetX, pair.AssetY))
		if other, dup := assetIndex[key]; dup {
			return ErrInvalidGenesis.Wrapf("pairs %d and %d share assets %s/%s", other, pair.Id, pair.AssetX, pair.AssetY)
		}
		pairs[pair.Id] = pair
		assetIndex[key] = pair.Id
	}

	sums := make(map[uint64]math.Int, len(pairs))
	seen := make(map[string]struct{}, len(gs.ShareBalances))
	for _, bal := range gs.ShareBalances {
		if _, ok := pairs[bal.PairId]; !ok {
			return ErrInvalidGenesis.Wrapf("share balance references unknown pair %d", bal.PairId)
		}
		if bal.Holder.Empty() {
			return ErrInvalidGenesis.Wrapf("share balance in pair %d has empty holder", bal.PairId)
		}
		if bal.Shares.IsNil() || !bal.Shares.IsPositive() {
			return ErrInvalidGenesis.Wrapf("share balance of %s in pair %d must be positive", bal.Holder, bal.PairId)
		}
		key := fmt.Sprintf("%d/%s", bal.PairId, bal.Holder)
		if _, dup := seen[key]; dup {
			return ErrInvalidGenesis.Wrapf("duplicate share balance for %s in pair %d", bal.Holder, bal.PairId)
		}
		seen[key] = struct{}{}
		sum, ok := sums[bal.PairId]
		if !ok {
			sum = math.ZeroInt()
		}
		sums[bal.PairId] = sum.Add(bal.Shares)
	}

	for id, pair := range pairs {
		sum, ok := sums[id]
		if !ok {
			sum = math.ZeroInt()
		}
		if !sum.Equal(pair.TotalShares) {
			return ErrInvalidGenesis.Wrapf("pair %d total shares %s != sum of balances %s", id, pair.TotalShares, sum)
		}
	}
	return nil
}
