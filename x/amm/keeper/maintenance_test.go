package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/paw-chain/pawswap/x/amm/types"
)

func (suite *KeeperTestSuite) TestSync() {
	pairID := suite.seedPair()
	before := suite.pair(pairID)

	suite.deposit(tokenA, suite.user3, pairID, 500)
	suite.Require().NoError(suite.keeper.Sync(suite.ctx, pairID))

	after := suite.pair(pairID)
	suite.Require().Equal(before.ReserveX.AddRaw(500), after.ReserveX)
	suite.Require().Equal(before.ReserveY, after.ReserveY)
	suite.Require().Equal(before.TotalShares, after.TotalShares)
	suite.Require().Equal(after.ReserveX.String(), attribute(suite.lastEvent(types.EventTypeSync), types.AttributeKeyReserveX))

	sharesBefore := suite.keeper.ShareBalance(suite.ctx, pairID, suite.user1)
	suite.Require().NoError(suite.keeper.Sync(suite.ctx, pairID))
	again := suite.pair(pairID)
	suite.Require().Equal(after, again)
	suite.Require().True(after.LastK.Equal(again.LastK))
	sync := suite.lastEvent(types.EventTypeSync)
	suite.Require().Equal(after.ReserveX.String(), attribute(sync, types.AttributeKeyReserveX))
	suite.Require().Equal(after.ReserveY.String(), attribute(sync, types.AttributeKeyReserveY))
	suite.Require().Equal(sharesBefore, suite.keeper.ShareBalance(suite.ctx, pairID, suite.user1))
	suite.Require().Equal(again.ReserveX, suite.assets.BalanceOf(suite.ctx, tokenA, again.Address))

	suite.Require().ErrorIs(suite.keeper.Sync(suite.ctx, 99), types.ErrPairNotFound)
}

func (suite *KeeperTestSuite) TestSkim() {
	pairID := suite.seedPair()
	before := suite.pair(pairID)

	suite.deposit(tokenA, suite.user1, pairID, 500)
	suite.deposit(tokenB, suite.user1, pairID, 70)

	excessA, excessB, err := suite.keeper.Skim(suite.ctx, pairID, suite.user3)
	suite.Require().NoError(err)
	suite.Require().Equal(math.NewInt(500), excessA)
	suite.Require().Equal(math.NewInt(70), excessB)
	suite.Require().Equal(excessA, suite.assets.BalanceOf(suite.ctx, tokenA, suite.user3))

	after := suite.pair(pairID)
	suite.Require().Equal(before.ReserveX, after.ReserveX)
	suite.Require().Equal(before.ReserveY, after.ReserveY)
	suite.Require().Equal(after.ReserveX, suite.assets.BalanceOf(suite.ctx, tokenA, after.Address))

	excessA, excessB, err = suite.keeper.Skim(suite.ctx, pairID, suite.user3)
	suite.Require().NoError(err)
	suite.Require().True(excessA.IsZero())
	suite.Require().True(excessB.IsZero())

	_, _, err = suite.keeper.Skim(suite.ctx, pairID, nil)
	suite.Require().ErrorIs(err, types.ErrInvalidRecipient)
}

func (suite *KeeperTestSuite) TestSyncRejectsOverflowingBalance() {
	pairID, err := suite.keeper.CreatePair(suite.ctx, tokenA, tokenB)
	suite.Require().NoError(err)
	pair := suite.pair(pairID)

	suite.Require().NoError(suite.assets.Mint(suite.ctx, tokenB, pair.Address, types.MaxReserve.AddRaw(1)))

	suite.Require().ErrorIs(suite.keeper.Sync(suite.ctx, pairID), types.ErrOverflow)
	suite.Require().True(suite.pair(pairID).ReserveY.IsZero())
}
