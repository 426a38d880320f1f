package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/cosmos/cosmos-sdk/types/address"
)

const (
	// ModuleName defines the module name
	ModuleName = "asset"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

// Store key prefixes
var (
	BalanceKeyPrefix = []byte{0x01}
	SupplyKeyPrefix  = []byte{0x02}
)

// BalanceKey returns the store key for a holder's balance of denom
func BalanceKey(denom string, holder sdk.AccAddress) []byte {
	return append(DenomBalancesPrefix(denom), holder.Bytes()...)
}

// DenomBalancesPrefix returns the prefix for all balances of denom
func DenomBalancesPrefix(denom string) []byte {
	return append(append([]byte{}, BalanceKeyPrefix...), address.MustLengthPrefix([]byte(denom))...)
}

// SplitBalanceKey extracts denom and holder from a full balance key
func SplitBalanceKey(key []byte) (string, sdk.AccAddress) {
	rest := key[len(BalanceKeyPrefix):]
	denomLen := int(rest[0])
	return string(rest[1 : 1+denomLen]), sdk.AccAddress(rest[1+denomLen:])
}

// SupplyKey returns the store key for the total supply of denom
func SupplyKey(denom string) []byte {
	return append(append([]byte{}, SupplyKeyPrefix...), []byte(denom)...)
}
