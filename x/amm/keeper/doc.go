// Package keeper implements the AMM module keeper.
//
// The AMM module runs constant-product pairs in the style of a two-asset
// exchange pool. A registry creates at most one pair per unordered asset pair
// and each pair holds reserves of both assets, issuing liquidity shares against
// them.
//
// # Core Functionality
//
// Registry: CreatePair, GetPair and GetAllPairs manage the pair set. The
// registry admin designates the protocol fee recipient.
//
// Liquidity: Mint issues shares for assets already transferred to the pair.
// Burn redeems the shares the pair holds of itself. The first mint of a pair
// permanently locks the minimum liquidity to BurnAddress.
//
// Swaps: Swap pays the requested outputs first and then checks, from actual
// balances, that the fee-adjusted product of reserves did not decrease. A
// non-empty data payload invokes the recipient's registered SwapCallee in
// between, so the outputs can be used and repaid within one call.
//
// Maintenance: Sync aligns reserves with balances and Skim pays out the
// excess of balances over reserves.
//
// # Atomicity
//
// Every state-changing operation runs in a CacheContext branch holding a lock
// marker for its pair. Nested calls through the branched context are rejected
// with ErrReentrancy and the branch is committed only on success.
//
// # Usage Patterns
//
// Adding liquidity:
//
//	_ = assetKeeper.Transfer(ctx, "atom", provider, pair.Address, amountX)
//	_ = assetKeeper.Transfer(ctx, "usdc", provider, pair.Address, amountY)
//	shares, err := keeper.Mint(ctx, provider, pairID, provider)
//
// Executing a swap:
//
//	_ = assetKeeper.Transfer(ctx, "usdc", trader, pair.Address, amountIn)
//	err := keeper.Swap(ctx, trader, pairID, amountOut, math.ZeroInt(), trader, nil)
package keeper
