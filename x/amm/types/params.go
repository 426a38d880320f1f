package types

import (
	"encoding/json"

	"cosmossdk.io/math"
)

// Default parameter values
const (
	DefaultSwapFeeNumerator   uint64 = 3
	DefaultFeeDenominator     uint64 = 1000
	DefaultMinimumLiquidity   int64  = 1000
	DefaultProtocolFeeDivisor uint64 = 5
)

// Params defines the fee and bootstrap parameters shared by all pairs.
type Params struct {
	// SwapFeeNumerator / FeeDenominator is the fee charged on swap inputs.
	SwapFeeNumerator uint64 `json:"swap_fee_numerator"`
	FeeDenominator   uint64 `json:"fee_denominator"`
	// MinimumLiquidity is locked to BurnAddress on the first mint of a pair.
	MinimumLiquidity math.Int `json:"minimum_liquidity"`
	// ProtocolFeeDivisor sets the protocol's cut of fee growth to 1/(divisor+1).
	ProtocolFeeDivisor uint64 `json:"protocol_fee_divisor"`
}

// DefaultParams returns the default parameters: a 0.3% swap fee, 1000 locked
// shares and a one-sixth protocol fee.
func DefaultParams() Params {
	return Params{
		SwapFeeNumerator:   DefaultSwapFeeNumerator,
		FeeDenominator:     DefaultFeeDenominator,
		MinimumLiquidity:   math.NewInt(DefaultMinimumLiquidity),
		ProtocolFeeDivisor: DefaultProtocolFeeDivisor,
	}
}

// Validate checks that the parameters are internally consistent.
func (p Params) Validate() error {
	if p.FeeDenominator == 0 {
		return ErrInvalidParams.Wrap("fee denominator must be positive")
	}
	if p.SwapFeeNumerator >= p.FeeDenominator {
		return ErrInvalidParams.Wrapf("swap fee %d/%d must be below 100%%", p.SwapFeeNumerator, p.FeeDenominator)
	}
	if p.MinimumLiquidity.IsNil() || !p.MinimumLiquidity.IsPositive() {
		return ErrInvalidParams.Wrap("minimum liquidity must be positive")
	}
	if p.ProtocolFeeDivisor == 0 {
		return ErrInvalidParams.Wrap("protocol fee divisor must be positive")
	}
	return nil
}

// String implements fmt.Stringer
func (p Params) String() string {
	bz, _ := json.Marshal(p)
	return string(bz)
}
