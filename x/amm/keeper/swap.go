package keeper

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Swap pays amountXOut/amountYOut to recipient and then verifies, from the
// pair's actual balances, that enough input arrived to keep the fee-adjusted
// constant product from decreasing.
//
// Outputs are transferred optimistically. When data is non-empty the
// SwapCallee registered for recipient is invoked with the branched context
// before the check, which lets it use the outputs and repay within the same
// call (a flash swap). Empty data never invokes a callee. Any failure,
// including a failed check after the callee ran, discards every effect of the
// swap.
func (k Keeper) Swap(
	ctx context.Context,
	sender sdk.AccAddress,
	pairID uint64,
	amountXOut, amountYOut math.Int,
	recipient sdk.AccAddress,
	data []byte,
) (err error) {
	start := time.Now()
	pairFound := false
	defer func() {
		k.metrics.SwapLatency.Observe(time.Since(start).Seconds())
		// unknown pair ids stay out of the label set
		if !pairFound {
			return
		}
		status := "success"
		if err != nil {
			status = "failed"
		}
		k.metrics.SwapsTotal.WithLabelValues(fmt.Sprintf("%d", pairID), status).Inc()
	}()

	if amountXOut.IsNil() || amountYOut.IsNil() || amountXOut.IsNegative() || amountYOut.IsNegative() {
		return types.ErrInvalidOutputAmounts.Wrap("output amounts must be non-negative")
	}
	if amountXOut.IsZero() && amountYOut.IsZero() {
		return types.ErrInvalidOutputAmounts.Wrap("at least one output amount must be positive")
	}
	if recipient.Empty() {
		return types.ErrInvalidRecipient.Wrap("swap recipient cannot be empty")
	}

	var amountXIn, amountYIn math.Int
	err = k.execute(ctx, pairLockName(pairID), "swap", func(ctx sdk.Context) error {
		pair, err := k.GetPairByID(ctx, pairID)
		if err != nil {
			return err
		}
		pairFound = true
		params, err := k.GetParams(ctx)
		if err != nil {
			return err
		}

		if amountXOut.GTE(pair.ReserveX) || amountYOut.GTE(pair.ReserveY) {
			return types.ErrInsufficientLiquidity.Wrapf(
				"outputs %s/%s must be below reserves %s/%s",
				amountXOut, amountYOut, pair.ReserveX, pair.ReserveY,
			)
		}
		if recipient.Equals(pair.Address) {
			return types.ErrInvalidRecipient.Wrap("swap recipient cannot be the pair itself")
		}

		if err := k.assetKeeper.Transfer(ctx, pair.AssetX, pair.Address, recipient, amountXOut); err != nil {
			return fmt.Errorf("Swap: transfer %s: %w", pair.AssetX, err)
		}
		if err := k.assetKeeper.Transfer(ctx, pair.AssetY, pair.Address, recipient, amountYOut); err != nil {
			return fmt.Errorf("Swap: transfer %s: %w", pair.AssetY, err)
		}

		if len(data) > 0 {
			callee, found := k.callees.get(recipient)
			if !found {
				return types.ErrCalleeNotFound.Wrapf("recipient %s", recipient)
			}
			if err := callee.OnSwapCallback(ctx, sender, amountXOut, amountYOut, data); err != nil {
				return fmt.Errorf("Swap: callback: %w", err)
			}
		}

		balanceX, balanceY := k.pairBalances(ctx, pair)
		amountXIn = excessOver(balanceX, pair.ReserveX.Sub(amountXOut))
		amountYIn = excessOver(balanceY, pair.ReserveY.Sub(amountYOut))
		if amountXIn.IsZero() && amountYIn.IsZero() {
			return types.ErrInsufficientInputAmount.Wrapf("no input arrived for outputs %s/%s", amountXOut, amountYOut)
		}
		if err := checkReserveBounds(balanceX, balanceY); err != nil {
			return err
		}

		if err := verifyConstantProduct(balanceX, balanceY, amountXIn, amountYIn, pair.ReserveX, pair.ReserveY, params); err != nil {
			k.metrics.InvariantViolations.WithLabelValues(fmt.Sprintf("%d", pair.Id)).Inc()
			k.Logger(ctx).Error("swap rejected by invariant check", "pair_id", pair.Id, "sender", sender.String(), "error", err)
			return err
		}

		if err := k.updateReserves(ctx, &pair, balanceX, balanceY); err != nil {
			return err
		}
		if err := k.SetPair(ctx, pair); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeSwap,
				sdk.NewAttribute(types.AttributeKeyPairID, fmt.Sprintf("%d", pair.Id)),
				sdk.NewAttribute(types.AttributeKeySender, sender.String()),
				sdk.NewAttribute(types.AttributeKeyAmountXIn, amountXIn.String()),
				sdk.NewAttribute(types.AttributeKeyAmountYIn, amountYIn.String()),
				sdk.NewAttribute(types.AttributeKeyAmountXOut, amountXOut.String()),
				sdk.NewAttribute(types.AttributeKeyAmountYOut, amountYOut.String()),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
			),
		)
		return nil
	})
	if err != nil {
		return err
	}

	k.recordPairMetrics(ctx, pairID)
	k.Logger(ctx).Debug("swap executed", "pair_id", pairID,
		"amount_x_in", amountXIn.String(), "amount_y_in", amountYIn.String(),
		"amount_x_out", amountXOut.String(), "amount_y_out", amountYOut.String(),
	)
	return nil
}

// GetAmountOut returns the largest output a swap of amountIn can request
// against the given reserves under the fee in params.
func GetAmountOut(amountIn, reserveIn, reserveOut math.Int, params types.Params) (math.Int, error) {
	if amountIn.IsNil() || !amountIn.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientInputAmount.Wrap("input amount must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("pair reserves must be positive")
	}

	if amountIn.GT(types.MaxReserve) {
		return math.ZeroInt(), types.ErrOverflow.Wrapf("input %s exceeds max reserve %s", amountIn, types.MaxReserve)
	}

	amountInWithFee := new(big.Int).Mul(amountIn.BigInt(), new(big.Int).SetUint64(params.FeeDenominator-params.SwapFeeNumerator))
	denominator := new(big.Int).Mul(reserveIn.BigInt(), new(big.Int).SetUint64(params.FeeDenominator))
	denominator.Add(denominator, amountInWithFee)

	out := new(big.Int).Mul(amountInWithFee, reserveOut.BigInt())
	return intFromBig(out.Quo(out, denominator))
}

// GetAmountIn returns the smallest input that satisfies the invariant for a
// swap requesting amountOut against the given reserves.
func GetAmountIn(amountOut, reserveIn, reserveOut math.Int, params types.Params) (math.Int, error) {
	if amountOut.IsNil() || !amountOut.IsPositive() {
		return math.ZeroInt(), types.ErrInvalidOutputAmounts.Wrap("output amount must be positive")
	}
	if !reserveIn.IsPositive() || !reserveOut.IsPositive() {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrap("pair reserves must be positive")
	}
	if amountOut.GTE(reserveOut) {
		return math.ZeroInt(), types.ErrInsufficientLiquidity.Wrapf("output %s must be below reserve %s", amountOut, reserveOut)
	}

	numerator := new(big.Int).Mul(reserveIn.BigInt(), amountOut.BigInt())
	numerator.Mul(numerator, new(big.Int).SetUint64(params.FeeDenominator))
	denominator := new(big.Int).Sub(reserveOut.BigInt(), amountOut.BigInt())
	denominator.Mul(denominator, new(big.Int).SetUint64(params.FeeDenominator-params.SwapFeeNumerator))

	in := numerator.Quo(numerator, denominator)
	return intFromBig(in.Add(in, big.NewInt(1)))
}

// SimulateSwap quotes the output of selling amountIn of assetIn into a pair
// without changing state.
func (k Keeper) SimulateSwap(ctx context.Context, pairID uint64, assetIn string, amountIn math.Int) (math.Int, error) {
	pair, err := k.GetPairByID(ctx, pairID)
	if err != nil {
		return math.ZeroInt(), err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}
	reserveIn, reserveOut, err := pair.Reserves(assetIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	return GetAmountOut(amountIn, reserveIn, reserveOut, params)
}

// SimulateSwapExactOut quotes the input of assetIn needed to buy amountOut of
// the other asset without changing state.
func (k Keeper) SimulateSwapExactOut(ctx context.Context, pairID uint64, assetIn string, amountOut math.Int) (math.Int, error) {
	pair, err := k.GetPairByID(ctx, pairID)
	if err != nil {
		return math.ZeroInt(), err
	}
	params, err := k.GetParams(ctx)
	if err != nil {
		return math.ZeroInt(), err
	}
	reserveIn, reserveOut, err := pair.Reserves(assetIn)
	if err != nil {
		return math.ZeroInt(), err
	}
	return GetAmountIn(amountOut, reserveIn, reserveOut, params)
}
