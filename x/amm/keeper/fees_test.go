package keeper_test

import (
	"cosmossdk.io/math"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
)

func (suite *KeeperTestSuite) TestProtocolFeeMintedOnBurn() {
	feeTo := keepertest.TestAddr("fee-to")
	suite.Require().NoError(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, feeTo))

	pairID := suite.seedPair()
	pair := suite.pair(pairID)
	suite.Require().Equal(pair.K(), pair.LastK)
	suite.Require().True(suite.keeper.ShareBalance(suite.ctx, pairID, feeTo).IsZero())

	suite.swapBForA(pairID, 1003, 100)
	suite.Require().Equal(pair.LastK, suite.pair(pairID).LastK)

	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pairID, suite.user2, pair.Address, math.NewInt(158_113_883)))
	amountA, amountB, err := suite.keeper.Burn(suite.ctx, suite.user2, pairID, suite.user2)
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(499_999_768), amountA)
	suite.Require().Equal(math.NewInt(50_000_230), amountB)
	suite.Require().Equal(math.NewInt(261), suite.keeper.ShareBalance(suite.ctx, pairID, feeTo))

	pair = suite.pair(pairID)
	suite.Require().Equal(math.NewInt(474_341_910), pair.TotalShares)
	suite.Require().Equal(pair.K(), pair.LastK)
	suite.requireInvariantsHold()
}

func (suite *KeeperTestSuite) TestProtocolFeeOffMintsNothing() {
	pairID := suite.seedPair()
	suite.swapBForA(pairID, 1003, 100)

	suite.Require().NoError(suite.keeper.TransferShares(suite.ctx, pairID, suite.user2, suite.pair(pairID).Address, math.NewInt(158_113_883)))
	_, _, err := suite.keeper.Burn(suite.ctx, suite.user2, pairID, suite.user2)
	suite.Require().NoError(err)

	pair := suite.pair(pairID)
	suite.Require().True(pair.LastK.IsZero())
	suite.Require().Equal(math.NewInt(474_341_649), pair.TotalShares)
}

func (suite *KeeperTestSuite) TestDisablingProtocolFeeClearsLastK() {
	feeTo := keepertest.TestAddr("fee-to")
	suite.Require().NoError(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, feeTo))
	pairID := suite.seedPair()
	suite.Require().True(suite.pair(pairID).LastK.IsPositive())

	suite.Require().NoError(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, nil))
	suite.swapBForA(pairID, 1003, 100)
	keepertest.AddLiquidity(suite.T(), suite.keeper, suite.assets, suite.ctx, suite.user3, pairID, tokenA, tokenB, depositA, depositB)

	suite.Require().True(suite.pair(pairID).LastK.IsZero())
	suite.Require().True(suite.keeper.ShareBalance(suite.ctx, pairID, feeTo).IsZero())

	// re-enabling does not charge for growth while the fee was off
	suite.Require().NoError(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, feeTo))
	keepertest.AddLiquidity(suite.T(), suite.keeper, suite.assets, suite.ctx, suite.user3, pairID, tokenA, tokenB, depositA, depositB)
	suite.Require().True(suite.keeper.ShareBalance(suite.ctx, pairID, feeTo).IsZero())
	suite.Require().Equal(suite.pair(pairID).K(), suite.pair(pairID).LastK)
	suite.requireInvariantsHold()
}
