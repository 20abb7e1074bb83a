package domain

import "fmt"

// GameConfig is the operator-tunable game configuration
type GameConfig struct {
	MaxRetries int  `json:"max_retries" yaml:"max_retries" validate:"min=1"`
	EnableGame bool `json:"enable_game" yaml:"enable_game"`
	DailyLimit int  `json:"daily_limit" yaml:"daily_limit" validate:"min=0"`
	Odds       Odds `json:"odds" yaml:"odds"`
}

// DefaultGameConfig returns the out-of-the-box configuration
func DefaultGameConfig() GameConfig {
	return GameConfig{
		MaxRetries: DefaultMaxRetries,
		EnableGame: true,
		DailyLimit: DefaultDailyLimit,
		Odds: Odds{
			Grand:    DefaultOddsGrand,
			TryAgain: DefaultOddsTryAgain,
			Droplets: DefaultOddsDroplets,
		},
	}
}

// Validate is the hard commit-time check
func (c GameConfig) Validate() error {
	if c.MaxRetries < 1 {
		return fmt.Errorf("%w: max retries must be at least 1", ErrInvalidConfig)
	}
	if c.DailyLimit < 0 {
		return fmt.Errorf("%w: daily limit cannot be negative", ErrInvalidConfig)
	}
	return c.Odds.Validate()
}
