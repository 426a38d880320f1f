package types

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

// MaxReserve bounds each tracked reserve to 112 bits so that every product
// formed during invariant checks stays well inside the 256-bit math.Int range.
var MaxReserve = math.NewIntFromBigInt(new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 112), big.NewInt(1)))

// BurnAddress holds the minimum liquidity locked on the first mint of every
// pair. No key controls it.
var BurnAddress = sdk.AccAddress(address.Module(ModuleName, []byte("minimum-liquidity")))

// Pair is a constant-product liquidity pair over two assets.
type Pair struct {
	Id          uint64         `json:"id"`
	Address     sdk.AccAddress `json:"address"`
	AssetX      string         `json:"asset_x"`
	AssetY      string         `json:"asset_y"`
	ReserveX    math.Int       `json:"reserve_x"`
	ReserveY    math.Int       `json:"reserve_y"`
	TotalShares math.Int       `json:"total_shares"`
	LastK       math.Int       `json:"last_k"`
}

// NewPair returns an empty, uninitialized pair for the given assets.
func NewPair(id uint64, assetA, assetB string) Pair {
	assetX, assetY := SortAssets(assetA, assetB)
	return Pair{
		Id:          id,
		Address:     PairAddress(assetX, assetY),
		AssetX:      assetX,
		AssetY:      assetY,
		ReserveX:    math.ZeroInt(),
		ReserveY:    math.ZeroInt(),
		TotalShares: math.ZeroInt(),
		LastK:       math.ZeroInt(),
	}
}

// SortAssets orders two asset denoms lexicographically.
func SortAssets(assetA, assetB string) (string, string) {
	if assetA > assetB {
		return assetB, assetA
	}
	return assetA, assetB
}

// PairAddress derives the ledger address of the pair for the given assets.
// The result does not depend on argument order.
func PairAddress(assetA, assetB string) sdk.AccAddress {
	assetX, assetY := SortAssets(assetA, assetB)
	return sdk.AccAddress(address.Module(ModuleName, []byte(assetX+"/"+assetY)))
}

// IsActive reports whether the pair has outstanding shares.
func (p Pair) IsActive() bool {
	return p.TotalShares.IsPositive()
}

// K returns the product of the current reserves.
func (p Pair) K() math.Int {
	return p.ReserveX.Mul(p.ReserveY)
}

// HasAsset reports whether denom is one of the pair's assets.
func (p Pair) HasAsset(denom string) bool {
	return denom == p.AssetX || denom == p.AssetY
}

// Reserves returns the reserves ordered as (in, out) for a trade that sells assetIn.
func (p Pair) Reserves(assetIn string) (math.Int, math.Int, error) {
	switch assetIn {
	case p.AssetX:
		return p.ReserveX, p.ReserveY, nil
	case p.AssetY:
		return p.ReserveY, p.ReserveX, nil
	default:
		return math.Int{}, math.Int{}, ErrInvalidAsset.Wrapf("asset %s is not part of pair %d (%s/%s)", assetIn, p.Id, p.AssetX, p.AssetY)
	}
}

// Validate performs stateless validation of a pair record.
func (p Pair) Validate() error {
	if p.Id == 0 {
		return fmt.Errorf("pair id cannot be zero")
	}
	if err := sdk.ValidateDenom(p.AssetX); err != nil {
		return ErrInvalidAsset.Wrapf("pair %d asset x: %v", p.Id, err)
	}
	if err := sdk.ValidateDenom(p.AssetY); err != nil {
		return ErrInvalidAsset.Wrapf("pair %d asset y: %v", p.Id, err)
	}
	if p.AssetX >= p.AssetY {
		return ErrInvalidAsset.Wrapf("pair %d assets not canonically ordered: %s/%s", p.Id, p.AssetX, p.AssetY)
	}
	if !p.Address.Equals(PairAddress(p.AssetX, p.AssetY)) {
		return fmt.Errorf("pair %d address does not match its assets", p.Id)
	}
	for name, v := range map[string]math.Int{
		"reserve_x":    p.ReserveX,
		"reserve_y":    p.ReserveY,
		"total_shares": p.TotalShares,
		"last_k":       p.LastK,
	} {
		if v.IsNil() || v.IsNegative() {
			return fmt.Errorf("pair %d %s must be non-negative", p.Id, name)
		}
	}
	if p.ReserveX.GT(MaxReserve) || p.ReserveY.GT(MaxReserve) {
		return ErrOverflow.Wrapf("pair %d reserves exceed %s", p.Id, MaxReserve)
	}
	return nil
}
