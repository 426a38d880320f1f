package keeper_test

import (
	"fmt"

	"github.com/paw-chain/pawswap/x/amm/types"
)

func (suite *KeeperTestSuite) TestCreatePair() {
	pairID, err := suite.keeper.CreatePair(suite.ctx, tokenB, tokenA)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), pairID)

	pair := suite.pair(pairID)
	suite.Require().Equal(tokenA, pair.AssetX)
	suite.Require().Equal(tokenB, pair.AssetY)
	suite.Require().Equal(types.PairAddress(tokenA, tokenB), pair.Address)
	suite.Require().True(pair.ReserveX.IsZero())
	suite.Require().True(pair.TotalShares.IsZero())
	suite.Require().False(pair.IsActive())

	event := suite.lastEvent(types.EventTypePairCreated)
	suite.Require().Equal(tokenA, attribute(event, types.AttributeKeyAssetX))
	suite.Require().Equal("1", attribute(event, types.AttributeKeyPairID))

	for _, order := range [][2]string{{tokenA, tokenB}, {tokenB, tokenA}} {
		got, found := suite.keeper.GetPair(suite.ctx, order[0], order[1])
		suite.Require().True(found)
		suite.Require().Equal(pairID, got)
	}

	_, found := suite.keeper.GetPair(suite.ctx, tokenA, tokenC)
	suite.Require().False(found)
}

func (suite *KeeperTestSuite) TestCreatePairErrors() {
	_, err := suite.keeper.CreatePair(suite.ctx, tokenA, tokenB)
	suite.Require().NoError(err)

	tests := []struct {
		name   string
		assetA string
		assetB string
		err    error
	}{
		{"duplicate", tokenA, tokenB, types.ErrDuplicatePair},
		{"duplicate reversed", tokenB, tokenA, types.ErrDuplicatePair},
		{"identical assets", tokenC, tokenC, types.ErrIdenticalAssets},
		{"invalid denom", tokenC, "1bad", types.ErrInvalidAsset},
		{"empty denom", "", tokenC, types.ErrInvalidAsset},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			_, err := suite.keeper.CreatePair(suite.ctx, tc.assetA, tc.assetB)
			suite.Require().ErrorIs(err, tc.err)
		})
	}

	pairs, err := suite.keeper.GetAllPairs(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pairs, 1)
}

func (suite *KeeperTestSuite) TestGetAllPairsInCreationOrder() {
	assets := [][2]string{{tokenA, tokenB}, {tokenC, tokenA}, {tokenB, tokenC}}
	for i, a := range assets {
		pairID, err := suite.keeper.CreatePair(suite.ctx, a[0], a[1])
		suite.Require().NoError(err)
		suite.Require().Equal(uint64(i+1), pairID)
	}

	pairs, err := suite.keeper.GetAllPairs(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(pairs, 3)
	got := make([]string, 0, len(pairs))
	for _, p := range pairs {
		got = append(got, fmt.Sprintf("%d:%s/%s", p.Id, p.AssetX, p.AssetY))
	}
	suite.Require().Equal([]string{"1:tokenA/tokenB", "2:tokenA/tokenC", "3:tokenB/tokenC"}, got)
}

func (suite *KeeperTestSuite) TestGetPairByIDNotFound() {
	_, err := suite.keeper.GetPairByID(suite.ctx, 42)
	suite.Require().ErrorIs(err, types.ErrPairNotFound)
}

func (suite *KeeperTestSuite) TestSetFeeRecipientRequiresAdmin() {
	suite.Require().ErrorIs(suite.keeper.SetFeeRecipient(suite.ctx, suite.user1, suite.user1), types.ErrUnauthorized)
	suite.Require().ErrorIs(suite.keeper.SetFeeRecipient(suite.ctx, nil, suite.user1), types.ErrUnauthorized)

	suite.Require().NoError(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, suite.user3))
	recipient, on := suite.keeper.GetFeeRecipient(suite.ctx)
	suite.Require().True(on)
	suite.Require().Equal(suite.user3, recipient)
	suite.Require().Equal(suite.user3.String(), attribute(suite.lastEvent(types.EventTypeFeeRecipientUpdated), types.AttributeKeyFeeRecipient))

	suite.Require().NoError(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, nil))
	_, on = suite.keeper.GetFeeRecipient(suite.ctx)
	suite.Require().False(on)
}

func (suite *KeeperTestSuite) TestSetAdmin() {
	suite.Require().ErrorIs(suite.keeper.SetAdmin(suite.ctx, suite.user1, suite.user1), types.ErrUnauthorized)
	suite.Require().ErrorIs(suite.keeper.SetAdmin(suite.ctx, suite.owner, nil), types.ErrUnauthorized)

	suite.Require().NoError(suite.keeper.SetAdmin(suite.ctx, suite.owner, suite.user1))
	admin, found := suite.keeper.GetAdmin(suite.ctx)
	suite.Require().True(found)
	suite.Require().Equal(suite.user1, admin)

	suite.Require().ErrorIs(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, suite.owner), types.ErrUnauthorized)
	suite.Require().NoError(suite.keeper.SetFeeRecipient(suite.ctx, suite.user1, suite.owner))
}

func (suite *KeeperTestSuite) TestNoAdminAtDefaultGenesis() {
	suite.Require().NoError(suite.keeper.InitGenesis(suite.ctx, *types.DefaultGenesis()))
	_, found := suite.keeper.GetAdmin(suite.ctx)
	suite.Require().False(found)
	suite.Require().ErrorIs(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, suite.owner), types.ErrUnauthorized)
}
