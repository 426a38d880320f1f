package types

// Event types for the asset module
const (
	EventTypeMint     = "asset_minted"
	EventTypeTransfer = "asset_transfer"

	AttributeKeyDenom     = "denom"
	AttributeKeyFrom      = "from"
	AttributeKeyTo        = "to"
	AttributeKeyRecipient = "recipient"
	AttributeKeyAmount    = "amount"
)
