package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	PairKeyPrefix           = []byte{0x01} // pair records by id
	PairCountKey            = []byte{0x02} // next pair id
	PairByAssetsKeyPrefix   = []byte{0x03} // canonical asset pair -> pair id
	ShareBalanceKeyPrefix   = []byte{0x04} // liquidity share balances by pair and holder
	ParamsKey               = []byte{0x05}
	AdminKey                = []byte{0x06}
	FeeRecipientKey         = []byte{0x07}
	ReentrancyLockKeyPrefix = []byte{0x08}
)

// RegistryLockName is the reentrancy lock name guarding pair creation.
const RegistryLockName = "registry"

// PairKey returns the store key for a pair by ID
func PairKey(pairID uint64) []byte {
	return append(append([]byte{}, PairKeyPrefix...), sdk.Uint64ToBigEndian(pairID)...)
}

// PairByAssetsKey returns the index key for an asset pair. Ordering of the
// arguments does not matter.
func PairByAssetsKey(assetA, assetB string) []byte {
	assetX, assetY := SortAssets(assetA, assetB)
	key := append([]byte{}, PairByAssetsKeyPrefix...)
	key = append(key, []byte(assetX)...)
	key = append(key, '/')
	return append(key, []byte(assetY)...)
}

// ShareBalanceKey returns the store key for a holder's share balance in a pair
func ShareBalanceKey(pairID uint64, holder sdk.AccAddress) []byte {
	return append(ShareBalancePairPrefix(pairID), holder.Bytes()...)
}

// ShareBalancePairPrefix returns the prefix for all share balances of a pair
func ShareBalancePairPrefix(pairID uint64) []byte {
	return append(append([]byte{}, ShareBalanceKeyPrefix...), sdk.Uint64ToBigEndian(pairID)...)
}

// SplitShareBalanceKey splits a full share balance key into pair id and holder.
func SplitShareBalanceKey(key []byte) (uint64, sdk.AccAddress) {
	rest := key[len(ShareBalanceKeyPrefix):]
	return sdk.BigEndianToUint64(rest[:8]), sdk.AccAddress(rest[8:])
}

// ReentrancyLockKey returns the store key of a named reentrancy lock
func ReentrancyLockKey(name string) []byte {
	return append(append([]byte{}, ReentrancyLockKeyPrefix...), []byte(name)...)
}
