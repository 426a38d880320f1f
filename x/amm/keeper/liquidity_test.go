package keeper_test

import (
	"cosmossdk.io/math"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

func (suite *KeeperTestSuite) TestMintBootstrapLocksMinimumLiquidity() {
	pairID, shares := keepertest.CreateFundedPair(suite.T(), suite.keeper, suite.assets, suite.ctx, suite.user1, tokenA, tokenB, depositA, depositB)

	suite.Require().Equal(math.NewInt(316_226_766), shares)
	suite.Require().Equal(shares, suite.keeper.ShareBalance(suite.ctx, pairID, suite.user1))
	suite.Require().Equal(math.NewInt(1000), suite.keeper.ShareBalance(suite.ctx, pairID, types.BurnAddress))

	pair := suite.pair(pairID)
	suite.Require().Equal(math.NewInt(316_227_766), pair.TotalShares)
	suite.Require().Equal(depositA, pair.ReserveX)
	suite.Require().Equal(depositB, pair.ReserveY)
	suite.Require().True(pair.LastK.IsZero())

	event := suite.lastEvent(types.EventTypeMint)
	suite.Require().Equal("316226766", attribute(event, types.AttributeKeyShares))
	suite.Require().Equal(suite.user1.String(), attribute(event, types.AttributeKeyRecipient))
	suite.requireInvariantsHold()
}

func (suite *KeeperTestSuite) TestMintSecondProviderGetsProportionalShares() {
	pairID := suite.seedPair()

	suite.Require().Equal(math.NewInt(316_226_766), suite.keeper.ShareBalance(suite.ctx, pairID, suite.user1))
	suite.Require().Equal(math.NewInt(316_227_766), suite.keeper.ShareBalance(suite.ctx, pairID, suite.user2))

	pair := suite.pair(pairID)
	suite.Require().Equal(math.NewInt(632_455_532), pair.TotalShares)
	suite.Require().Equal(math.NewInt(2_000_000_000), pair.ReserveX)
	suite.Require().Equal(math.NewInt(200_000_000), pair.ReserveY)
	suite.requireInvariantsHold()
}

func (suite *KeeperTestSuite) TestMintMinimumLiquidityBoundary() {
	tests := []struct {
		name    string
		amount  int64
		shares  int64
		wantErr bool
	}{
		{"below minimum", 999, 0, true},
		{"exactly minimum", 1000, 0, true},
		{"one above minimum", 1001, 1, false},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			pairID, err := suite.keeper.CreatePair(suite.ctx, tokenA, tokenB)
			suite.Require().NoError(err)
			suite.deposit(tokenA, suite.user1, pairID, tc.amount)
			suite.deposit(tokenB, suite.user1, pairID, tc.amount)

			shares, err := suite.keeper.Mint(suite.ctx, suite.user1, pairID, suite.user1)
			if tc.wantErr {
				suite.Require().ErrorIs(err, types.ErrInsufficientInitialLiquidity)
				pair := suite.pair(pairID)
				suite.Require().True(pair.TotalShares.IsZero())
				suite.Require().True(pair.ReserveX.IsZero())
				suite.Require().True(suite.keeper.ShareBalance(suite.ctx, pairID, types.BurnAddress).IsZero())
				return
			}
			suite.Require().NoError(err)
			suite.Require().Equal(math.NewInt(tc.shares), shares)
		})
	}
}

func (suite *KeeperTestSuite) TestMintDonatesExcess() {
	pairID, _ := keepertest.CreateFundedPair(suite.T(), suite.keeper, suite.assets, suite.ctx, suite.user1, tokenA, tokenB, depositA, depositB)

	shares := keepertest.AddLiquidity(suite.T(), suite.keeper, suite.assets, suite.ctx, suite.user2, pairID, tokenA, tokenB, depositA, depositB.MulRaw(2))
	suite.Require().Equal(math.NewInt(316_227_766), shares)

	pair := suite.pair(pairID)
	suite.Require().Equal(math.NewInt(2_000_000_000), pair.ReserveX)
	suite.Require().Equal(math.NewInt(300_000_000), pair.ReserveY)
	suite.requireInvariantsHold()
}

func (suite *KeeperTestSuite) TestMintErrors() {
	pairID := suite.seedPair()

	_, err := suite.keeper.Mint(suite.ctx, suite.user1, pairID, suite.user1)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidityMinted)

	suite.deposit(tokenA, suite.user1, pairID, 1_000_000)
	_, err = suite.keeper.Mint(suite.ctx, suite.user1, pairID, suite.user1)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidityMinted)

	_, err = suite.keeper.Mint(suite.ctx, suite.user1, 99, suite.user1)
	suite.Require().ErrorIs(err, types.ErrPairNotFound)

	_, err = suite.keeper.Mint(suite.ctx, suite.user1, pairID, nil)
	suite.Require().ErrorIs(err, types.ErrInvalidRecipient)
}

func (suite *KeeperTestSuite) TestBurnHalfOfShares() {
	pairID := suite.seedPair()
	suite.swapBForA(pairID, 1003, 100)

	half := math.NewInt(158_113_883)
	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pairID, suite.user2, suite.pair(pairID).Address, half))

	amountA, amountB, err := suite.keeper.Burn(suite.ctx, suite.user2, pairID, suite.user2)
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(499_999_975), amountA)
	suite.Require().Equal(math.NewInt(50_000_250), amountB)

	suite.Require().Equal(amountA, suite.assets.BalanceOf(suite.ctx, tokenA, suite.user2))
	suite.Require().Equal(amountB, suite.assets.BalanceOf(suite.ctx, tokenB, suite.user2))
	suite.Require().Equal(half, suite.keeper.ShareBalance(suite.ctx, pairID, suite.user2))

	pair := suite.pair(pairID)
	suite.Require().Equal(math.NewInt(474_341_649), pair.TotalShares)
	suite.Require().Equal(math.NewInt(1_499_999_925), pair.ReserveX)
	suite.Require().Equal(math.NewInt(150_000_753), pair.ReserveY)
	suite.Require().True(suite.keeper.ShareBalance(suite.ctx, pairID, pair.Address).IsZero())

	event := suite.lastEvent(types.EventTypeBurn)
	suite.Require().Equal("158113883", attribute(event, types.AttributeKeyShares))
	suite.requireInvariantsHold()
}

func (suite *KeeperTestSuite) TestBurnAllLeavesLockedLiquidity() {
	pairID, shares := keepertest.CreateFundedPair(suite.T(), suite.keeper, suite.assets, suite.ctx, suite.user1, tokenA, tokenB, depositA, depositB)
	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pairID, suite.user1, suite.pair(pairID).Address, shares))

	amountA, amountB, err := suite.keeper.Burn(suite.ctx, suite.user1, pairID, suite.user1)
	suite.Require().NoError(err)
	suite.Require().True(amountA.LT(depositA))
	suite.Require().True(amountB.LT(depositB))

	pair := suite.pair(pairID)
	suite.Require().Equal(math.NewInt(1000), pair.TotalShares)
	suite.Require().True(pair.ReserveX.IsPositive())
	suite.Require().True(pair.ReserveY.IsPositive())
	suite.requireInvariantsHold()
}

func (suite *KeeperTestSuite) TestBurnErrors() {
	emptyID, err := suite.keeper.CreatePair(suite.ctx, tokenA, tokenC)
	suite.Require().NoError(err)
	_, _, err = suite.keeper.Burn(suite.ctx, suite.user1, emptyID, suite.user1)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidityBurned)

	pairID := suite.seedPair()
	_, _, err = suite.keeper.Burn(suite.ctx, suite.user1, pairID, suite.user1)
	suite.Require().ErrorIs(err, types.ErrInsufficientLiquidityBurned)

	_, _, err = suite.keeper.Burn(suite.ctx, suite.user1, pairID, nil)
	suite.Require().ErrorIs(err, types.ErrInvalidRecipient)

	_, _, err = suite.keeper.Burn(suite.ctx, suite.user1, 99, suite.user1)
	suite.Require().ErrorIs(err, types.ErrPairNotFound)
}

func (suite *KeeperTestSuite) TestTransferShares() {
	pairID := suite.seedPair()

	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pairID, suite.user1, suite.user3, math.NewInt(500)))
	suite.Require().Equal(math.NewInt(500), suite.keeper.ShareBalance(suite.ctx, pairID, suite.user3))
	suite.Require().Equal(math.NewInt(316_226_266), suite.keeper.ShareBalance(suite.ctx, pairID, suite.user1))
	suite.Require().Equal("500", attribute(suite.lastEvent(types.EventTypeShareTransfer), types.AttributeKeyShares))

	err := suite.keeper.TransferShares(suite.ctx, pairID, suite.user3, suite.user1, math.NewInt(501))
	suite.Require().ErrorIs(err, types.ErrInsufficientShares)

	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pairID, suite.user3, suite.user3, math.NewInt(500)))
	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pairID, suite.user3, suite.user1, math.ZeroInt()))
	suite.Require().Equal(math.NewInt(500), suite.keeper.ShareBalance(suite.ctx, pairID, suite.user3))

	suite.Require().ErrorIs(suite.keeper.TransferShares(suite.ctx, 99, suite.user1, suite.user3, math.NewInt(1)), types.ErrPairNotFound)
	suite.Require().ErrorIs(suite.keeper.TransferShares(suite.ctx, pairID, suite.user1, nil, math.NewInt(1)), types.ErrInvalidRecipient)
	suite.Require().ErrorIs(suite.keeper.TransferShares(suite.ctx, pairID, suite.user1, suite.user3, math.NewInt(-1)), types.ErrInvalidAmount)
	suite.requireInvariantsHold()
}
