package keeper

import (
	"math/big"

	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// sqrtInt returns floor(sqrt(x)) for a non-negative x.
func sqrtInt(x math.Int) math.Int {
	return math.NewIntFromBigInt(new(big.Int).Sqrt(x.BigInt()))
}

// mulDiv computes floor(a * b / c) with a 512-bit-safe intermediate.
func mulDiv(a, b, c math.Int) (math.Int, error) {
	if c.IsZero() {
		return math.Int{}, types.ErrInsufficientLiquidity.Wrap("division by zero reserve")
	}
	result := new(big.Int).Mul(a.BigInt(), b.BigInt())
	return intFromBig(result.Quo(result, c.BigInt()))
}

// intFromBig converts x to a math.Int, failing instead of panicking when it
// does not fit.
func intFromBig(x *big.Int) (math.Int, error) {
	if x.BitLen() > math.MaxBitLen {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("%s exceeds %d bits", x, math.MaxBitLen)
	}
	return math.NewIntFromBigInt(x), nil
}

// checkReserveBounds rejects balances that cannot be tracked as reserves.
func checkReserveBounds(balanceX, balanceY math.Int) error {
	if balanceX.GT(types.MaxReserve) || balanceY.GT(types.MaxReserve) {
		return types.ErrOverflow.Wrapf("balances %s/%s exceed max reserve %s", balanceX, balanceY, types.MaxReserve)
	}
	return nil
}

// excessOver returns balance - base when positive, zero otherwise.
func excessOver(balance, base math.Int) math.Int {
	if balance.GT(base) {
		return balance.Sub(base)
	}
	return math.ZeroInt()
}

// verifyConstantProduct checks the fee-adjusted invariant
//
//	(bX*D - inX*N) * (bY*D - inY*N) >= rX * rY * D^2
//
// on big.Int so no intermediate product can wrap.
func verifyConstantProduct(balanceX, balanceY, amountXIn, amountYIn, reserveX, reserveY math.Int, params types.Params) error {
	num := new(big.Int).SetUint64(params.SwapFeeNumerator)
	den := new(big.Int).SetUint64(params.FeeDenominator)

	adjusted := func(balance, amountIn math.Int) *big.Int {
		b := new(big.Int).Mul(balance.BigInt(), den)
		return b.Sub(b, new(big.Int).Mul(amountIn.BigInt(), num))
	}
	adjustedX := adjusted(balanceX, amountXIn)
	adjustedY := adjusted(balanceY, amountYIn)

	lhs := new(big.Int).Mul(adjustedX, adjustedY)
	rhs := new(big.Int).Mul(reserveX.BigInt(), reserveY.BigInt())
	rhs.Mul(rhs, new(big.Int).Mul(den, den))

	if adjustedX.Sign() < 0 || adjustedY.Sign() < 0 || lhs.Cmp(rhs) < 0 {
		return types.ErrInvariantViolation.Wrapf(
			"adjusted product %s < %s (reserves %s/%s, balances %s/%s, inputs %s/%s)",
			lhs, rhs, reserveX, reserveY, balanceX, balanceY, amountXIn, amountYIn,
		)
	}
	return nil
}
