package keeper_test

import (
	"encoding/json"

	"cosmossdk.io/math"

	keepertest "github.com/paw-chain/pawswap/testutil/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

func (suite *KeeperTestSuite) TestExportGenesisDefault() {
	genesis, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), genesis.NextPairId)
	suite.Require().Equal(suite.owner, genesis.Admin)
	suite.Require().Empty(genesis.FeeRecipient)
	suite.Require().Empty(genesis.Pairs)
	suite.Require().NoError(genesis.Validate())
}

func (suite *KeeperTestSuite) TestGenesisRoundTrip() {
	feeTo := keepertest.TestAddr("fee-to")
	suite.Require().NoError(suite.keeper.SetFeeRecipient(suite.ctx, suite.owner, feeTo))
	pairID := suite.seedPair()
	suite.seedOtherPair()
	suite.swapBForA(pairID, 1003, 100)

	exported, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(3), exported.NextPairId)
	suite.Require().Len(exported.Pairs, 2)
	// burn address, user1 and user2 in the first pair, user1 in the second
	suite.Require().Len(exported.ShareBalances, 5)

	k, ak, ctx := keepertest.AMMKeeper(suite.T())
	suite.Require().NoError(k.InitGenesis(ctx, *exported))
	reexported, err := k.ExportGenesis(ctx)
	suite.Require().NoError(err)

	want, err := json.Marshal(exported)
	suite.Require().NoError(err)
	got, err := json.Marshal(reexported)
	suite.Require().NoError(err)
	suite.Require().JSONEq(string(want), string(got))

	// a restored registry keeps deduplicating and numbering
	_, err = k.CreatePair(ctx, tokenB, tokenA)
	suite.Require().ErrorIs(err, types.ErrDuplicatePair)
	nextID, err := k.CreatePair(ctx, tokenB, tokenC)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(3), nextID)
	suite.Require().Equal(math.NewInt(316_226_766), k.ShareBalance(ctx, pairID, suite.user1))
	suite.Require().True(ak.BalanceOf(ctx, tokenA, suite.user1).IsZero())
}

func (suite *KeeperTestSuite) TestInitGenesisRejectsInvalid() {
	genesis := types.DefaultGenesis()
	genesis.NextPairId = 0
	suite.Require().ErrorIs(suite.keeper.InitGenesis(suite.ctx, *genesis), types.ErrInvalidGenesis)

	genesis = types.DefaultGenesis()
	genesis.Params.FeeDenominator = 0
	suite.Require().ErrorIs(suite.keeper.InitGenesis(suite.ctx, *genesis), types.ErrInvalidParams)
}
