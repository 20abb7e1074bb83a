package domain

import "time"

// Game defaults
const (
	DefaultMaxRetries   = 3
	DefaultDailyLimit   = 0
	DefaultOddsGrand    = 12
	DefaultOddsTryAgain = 70
	DefaultOddsDroplets = 18
	OddsTotal           = 100
)

// Droplet draw bounds, inclusive
const (
	MinDropletAward = 1
	MaxDropletAward = 20
)

// Code prefixes
const (
	ClaimCodePrefix      = "IOCL"
	RedemptionCodePrefix = "RED"
	CodeSuffixLength     = 6
)

// Identity rules
const (
	MinMobileLength = 10
	MaxMobileLength = 15
)

// Reveal timing
const (
	DefaultSpinRevealDelay    = 1 * time.Second
	DefaultScratchRevealDelay = 1500 * time.Millisecond
	ScratchRevealThreshold    = 40 // percent of surface
)

// Redemption records
const (
	RedeemPrizeIDPrefix    = "redeem-"
	RedeemPrizeDescription = "Redeemed via Fuel Droplets"
	DailyPlaysDateLayout   = "2006-01-02"
)

// User-facing messages
const (
	MsgMaxAttemptsFormat = "You have reached the maximum limit of %d attempts."
	MsgDailyLimitFormat  = "You have reached today's limit of %d games. Come back tomorrow!"
	MsgGameDisabled      = "The contest is currently paused for maintenance. Please check back later."
	MsgInvalidMobile     = "Please enter a valid mobile number"
	MsgNotRegistered     = "Please log in before playing."
	MsgInsufficientFmt   = "Insufficient droplets! You need %d more."
	MsgDropletsFormat    = "You have collected %d Fuel Droplets! Collect 100 to get 1 Litre Free Fuel."
)
