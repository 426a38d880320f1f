package keeper

import (
	"context"
	"encoding/json"
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/paw-chain/pawswap/x/amm/types"
)

// GetParams returns the current parameters from the store
func (k Keeper) GetParams(ctx context.Context) (types.Params, error) {
	bz := k.getStore(ctx).Get(types.ParamsKey)
	if bz == nil {
		return types.DefaultParams(), nil
	}

	var params types.Params
	if err := json.Unmarshal(bz, &params); err != nil {
		return types.Params{}, fmt.Errorf("GetParams: unmarshal: %w", err)
	}
	return params, nil
}

// SetParams validates and stores the parameters
func (k Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	bz, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("SetParams: marshal: %w", err)
	}
	k.getStore(ctx).Set(types.ParamsKey, bz)
	return nil
}

// GetAdmin returns the registry administrator, if one is set.
func (k Keeper) GetAdmin(ctx context.Context) (sdk.AccAddress, bool) {
	bz := k.getStore(ctx).Get(types.AdminKey)
	if len(bz) == 0 {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

// GetFeeRecipient returns the protocol fee recipient. The protocol fee is on
// exactly when a recipient is set.
func (k Keeper) GetFeeRecipient(ctx context.Context) (sdk.AccAddress, bool) {
	bz := k.getStore(ctx).Get(types.FeeRecipientKey)
	if len(bz) == 0 {
		return nil, false
	}
	return sdk.AccAddress(bz), true
}

func (k Keeper) setAdmin(ctx context.Context, admin sdk.AccAddress) {
	store := k.getStore(ctx)
	if admin.Empty() {
		store.Delete(types.AdminKey)
		return
	}
	store.Set(types.AdminKey, admin.Bytes())
}

func (k Keeper) setFeeRecipient(ctx context.Context, recipient sdk.AccAddress) {
	store := k.getStore(ctx)
	if recipient.Empty() {
		store.Delete(types.FeeRecipientKey)
		return
	}
	store.Set(types.FeeRecipientKey, recipient.Bytes())
}
