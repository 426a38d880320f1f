package keeper_test

import (
	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

type invariantRegistry struct {
	routes     []string
	invariants []sdk.Invariant
}

func (r *invariantRegistry) RegisterRoute(moduleName, route string, invar sdk.Invariant) {
	r.routes = append(r.routes, moduleName+"/"+route)
	r.invariants = append(r.invariants, invar)
}

// checkInvariants runs every registered AMM invariant and reports the first
// broken one.
func checkInvariants(k keeper.Keeper, ctx sdk.Context) (string, bool) {
	registry := &invariantRegistry{}
	keeper.RegisterInvariants(registry, k)
	for _, invar := range registry.invariants {
		if msg, broken := invar(ctx); broken {
			return msg, true
		}
	}
	return "", false
}

func (suite *KeeperTestSuite) TestRegisterInvariants() {
	registry := &invariantRegistry{}
	keeper.RegisterInvariants(registry, suite.keeper)
	suite.Require().Equal([]string{"amm/share-supply", "amm/reserve-backing", "amm/active-reserves"}, registry.routes)
}

func (suite *KeeperTestSuite) TestInvariantsDetectCorruption() {
	tests := []struct {
		name    string
		corrupt func(pair *types.Pair)
		route   string
	}{
		{
			name:    "share supply mismatch",
			corrupt: func(pair *types.Pair) { pair.TotalShares = pair.TotalShares.AddRaw(1) },
			route:   "share-supply",
		},
		{
			name:    "reserve above balance",
			corrupt: func(pair *types.Pair) { pair.ReserveY = pair.ReserveY.AddRaw(1) },
			route:   "reserve-backing",
		},
		{
			name:    "shares without reserves",
			corrupt: func(pair *types.Pair) { pair.ReserveX = math.ZeroInt() },
			route:   "active-reserves",
		},
	}

	for _, tc := range tests {
		suite.Run(tc.name, func() {
			suite.SetupTest()
			pairID := suite.seedPair()
			suite.requireInvariantsHold()

			pair := suite.pair(pairID)
			tc.corrupt(&pair)
			suite.Require().NoError(suite.keeper.SetPair(suite.ctx, pair))

			msg, broken := checkInvariants(suite.keeper, suite.ctx)
			suite.Require().True(broken)
			suite.Require().Contains(msg, tc.route)
		})
	}
}
