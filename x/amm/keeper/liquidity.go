package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// Mint issues liquidity shares to recipient for the assets deposited into the
// pair since the last sync. The caller transfers assets to the pair address
// first; Mint credits whatever the pair holds beyond its reserves.
//
// The first mint issues floor(sqrt(amountX*amountY)) shares less
// MinimumLiquidity, which is locked to BurnAddress. Later mints issue the
// smaller of the two proportional amounts, so any excess of the other asset is
// donated to existing holders.
func (k Keeper) Mint(ctx context.Context, sender sdk.AccAddress, pairID uint64, recipient sdk.AccAddress) (math.Int, error) {
	if recipient.Empty() {
		return math.ZeroInt(), types.ErrInvalidRecipient.Wrap("mint recipient cannot be empty")
	}

	var (
		shares           math.Int
		amountX, amountY math.Int
	)
	err := k.execute(ctx, pairLockName(pairID), "mint", func(ctx sdk.Context) error {
		pair, err := k.GetPairByID(ctx, pairID)
		if err != nil {
			return err
		}
		params, err := k.GetParams(ctx)
		if err != nil {
			return err
		}

		balanceX, balanceY := k.pairBalances(ctx, pair)
		if err := checkReserveBounds(balanceX, balanceY); err != nil {
			return err
		}
		amountX = excessOver(balanceX, pair.ReserveX)
		amountY = excessOver(balanceY, pair.ReserveY)

		feeOn, err := k.mintProtocolFee(ctx, &pair, params)
		if err != nil {
			return err
		}

		if pair.TotalShares.IsZero() {
			shares = sqrtInt(amountX.Mul(amountY)).Sub(params.MinimumLiquidity)
			if !shares.IsPositive() {
				return types.ErrInsufficientInitialLiquidity.Wrapf(
					"sqrt(%s * %s) does not exceed minimum liquidity %s",
					amountX, amountY, params.MinimumLiquidity,
				)
			}
			if err := k.mintShares(ctx, &pair, types.BurnAddress, params.MinimumLiquidity); err != nil {
				return err
			}
		} else {
			sharesX, err := mulDiv(amountX, pair.TotalShares, pair.ReserveX)
			if err != nil {
				return err
			}
			sharesY, err := mulDiv(amountY, pair.TotalShares, pair.ReserveY)
			if err != nil {
				return err
			}
			shares = math.MinInt(sharesX, sharesY)
			if !shares.IsPositive() {
				return types.ErrInsufficientLiquidityMinted.Wrapf(
					"deposits %s/%s against reserves %s/%s mint no shares",
					amountX, amountY, pair.ReserveX, pair.ReserveY,
				)
			}
		}

		if err := k.mintShares(ctx, &pair, recipient, shares); err != nil {
			return err
		}
		if err := k.updateReserves(ctx, &pair, balanceX, balanceY); err != nil {
			return err
		}
		if feeOn {
			pair.LastK = pair.K()
		}
		if err := k.SetPair(ctx, pair); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeMint,
				sdk.NewAttribute(types.AttributeKeyPairID, fmt.Sprintf("%d", pair.Id)),
				sdk.NewAttribute(types.AttributeKeySender, sender.String()),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
				sdk.NewAttribute(types.AttributeKeyAmountX, amountX.String()),
				sdk.NewAttribute(types.AttributeKeyAmountY, amountY.String()),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), err
	}

	k.metrics.SharesMinted.WithLabelValues(fmt.Sprintf("%d", pairID)).Add(toFloat(shares))
	k.recordPairMetrics(ctx, pairID)
	k.Logger(ctx).Debug("liquidity minted", "pair_id", pairID, "amount_x", amountX.String(), "amount_y", amountY.String(), "shares", shares.String())
	return shares, nil
}

// Burn redeems the shares held by the pair itself for a proportional amount
// of both reserves, paid to recipient. The caller transfers shares to the pair
// address with TransferShares first.
func (k Keeper) Burn(ctx context.Context, sender sdk.AccAddress, pairID uint64, recipient sdk.AccAddress) (math.Int, math.Int, error) {
	if recipient.Empty() {
		return math.ZeroInt(), math.ZeroInt(), types.ErrInvalidRecipient.Wrap("burn recipient cannot be empty")
	}

	var amountX, amountY, shares math.Int
	err := k.execute(ctx, pairLockName(pairID), "burn", func(ctx sdk.Context) error {
		pair, err := k.GetPairByID(ctx, pairID)
		if err != nil {
			return err
		}
		params, err := k.GetParams(ctx)
		if err != nil {
			return err
		}

		shares = k.ShareBalance(ctx, pair.Id, pair.Address)
		feeOn, err := k.mintProtocolFee(ctx, &pair, params)
		if err != nil {
			return err
		}
		if pair.TotalShares.IsZero() {
			return types.ErrInsufficientLiquidityBurned.Wrapf("pair %d has no liquidity", pair.Id)
		}

		amountX, err = mulDiv(shares, pair.ReserveX, pair.TotalShares)
		if err != nil {
			return err
		}
		amountY, err = mulDiv(shares, pair.ReserveY, pair.TotalShares)
		if err != nil {
			return err
		}
		if !amountX.IsPositive() || !amountY.IsPositive() {
			return types.ErrInsufficientLiquidityBurned.Wrapf(
				"%s shares of %s redeem %s/%s", shares, pair.TotalShares, amountX, amountY,
			)
		}

		if err := k.burnShares(ctx, &pair, pair.Address, shares); err != nil {
			return err
		}
		if err := k.assetKeeper.Transfer(ctx, pair.AssetX, pair.Address, recipient, amountX); err != nil {
			return fmt.Errorf("Burn: transfer %s: %w", pair.AssetX, err)
		}
		if err := k.assetKeeper.Transfer(ctx, pair.AssetY, pair.Address, recipient, amountY); err != nil {
			return fmt.Errorf("Burn: transfer %s: %w", pair.AssetY, err)
		}

		balanceX, balanceY := k.pairBalances(ctx, pair)
		if err := k.updateReserves(ctx, &pair, balanceX, balanceY); err != nil {
			return err
		}
		if feeOn {
			pair.LastK = pair.K()
		}
		if err := k.SetPair(ctx, pair); err != nil {
			return err
		}

		ctx.EventManager().EmitEvent(
			sdk.NewEvent(
				types.EventTypeBurn,
				sdk.NewAttribute(types.AttributeKeyPairID, fmt.Sprintf("%d", pair.Id)),
				sdk.NewAttribute(types.AttributeKeySender, sender.String()),
				sdk.NewAttribute(types.AttributeKeyRecipient, recipient.String()),
				sdk.NewAttribute(types.AttributeKeyAmountX, amountX.String()),
				sdk.NewAttribute(types.AttributeKeyAmountY, amountY.String()),
				sdk.NewAttribute(types.AttributeKeyShares, shares.String()),
			),
		)
		return nil
	})
	if err != nil {
		return math.ZeroInt(), math.ZeroInt(), err
	}

	k.metrics.SharesBurned.WithLabelValues(fmt.Sprintf("%d", pairID)).Add(toFloat(shares))
	k.recordPairMetrics(ctx, pairID)
	k.Logger(ctx).Debug("liquidity burned", "pair_id", pairID, "shares", shares.String(), "amount_x", amountX.String(), "amount_y", amountY.String())
	return amountX, amountY, nil
}
