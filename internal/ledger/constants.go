package ledger

// Synthetic redemption prize presentation
const (
	RedeemPrizeColor     = "#009845"
	RedeemPrizeTextColor = "#fff"
	RedeemPrizeIcon      = "fuel"
)

// Log messages
const (
	LogMsgPlayerRegistered = "Player registered"
	LogMsgWinRecorded      = "Win recorded"
	LogMsgDropletsRedeemed = "Droplets redeemed"
	LogMsgWinRejected      = "Win rejected, player not eligible"
)
