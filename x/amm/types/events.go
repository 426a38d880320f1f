package types

// Event types for the AMM module
const (
	EventTypePairCreated         = "pair_created"
	EventTypeMint                = "mint"
	EventTypeBurn                = "burn"
	EventTypeSwap                = "swap"
	EventTypeSync                = "sync"
	EventTypeSkim                = "skim"
	EventTypeShareTransfer       = "share_transfer"
	EventTypeFeeRecipientUpdated = "fee_recipient_updated"
	EventTypeAdminUpdated        = "admin_updated"

	AttributeKeyPairID       = "pair_id"
	AttributeKeyPairAddress  = "pair_address"
	AttributeKeyAssetX       = "asset_x"
	AttributeKeyAssetY       = "asset_y"
	AttributeKeySender       = "sender"
	AttributeKeyRecipient    = "recipient"
	AttributeKeyAmountX      = "amount_x"
	AttributeKeyAmountY      = "amount_y"
	AttributeKeyAmountXIn    = "amount_x_in"
	AttributeKeyAmountYIn    = "amount_y_in"
	AttributeKeyAmountXOut   = "amount_x_out"
	AttributeKeyAmountYOut   = "amount_y_out"
	AttributeKeyReserveX     = "reserve_x"
	AttributeKeyReserveY     = "reserve_y"
	AttributeKeyShares       = "shares"
	AttributeKeyFrom         = "from"
	AttributeKeyTo           = "to"
	AttributeKeyFeeRecipient = "fee_recipient"
	AttributeKeyAdmin        = "admin"
)
