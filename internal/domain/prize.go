package domain

import "fmt"

// Category partitions the catalog and decides how a resolved prize is treated
type Category string

const (
	CategoryGrand    Category = "GRAND"
	CategoryTryAgain Category = "TRY_AGAIN"
	CategoryDroplets Category = "DROPLETS"
)

// Categories lists every category in resolver threshold order
var Categories = []Category{CategoryGrand, CategoryTryAgain, CategoryDroplets}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	switch c {
	case CategoryGrand, CategoryTryAgain, CategoryDroplets:
		return true
	}
	return false
}

// Claimable reports whether a win of this category earns a physical-prize
// claim code. Droplets are credited to the balance when the win is recorded.
func (c Category) Claimable() bool {
	return c == CategoryGrand
}

// Prize is a catalog entry. Presentation fields are carried but never interpreted.
type Prize struct {
	ID            string   `json:"id" yaml:"id"`
	Label         string   `json:"label" yaml:"label" validate:"required,max=100"`
	Category      Category `json:"category" yaml:"category" validate:"required,category"`
	Color         string   `json:"color,omitempty" yaml:"color"`
	TextColor     string   `json:"text_color,omitempty" yaml:"text_color"`
	Icon          string   `json:"icon,omitempty" yaml:"icon"`
	Value         string   `json:"value,omitempty" yaml:"value"`
	Description   string   `json:"description,omitempty" yaml:"description"`
	OverrideValue string   `json:"override_value,omitempty" yaml:"-"`
}

// DisplayValue is what gets shown and fed to the message generator
func (p Prize) DisplayValue() string {
	if p.OverrideValue != "" {
		return p.OverrideValue
	}
	return p.Label
}

// Odds holds percentage weights per category
type Odds struct {
	Grand    int `json:"grand" yaml:"grand" validate:"min=0,max=100"`
	TryAgain int `json:"try_again" yaml:"try_again" validate:"min=0,max=100"`
	Droplets int `json:"droplets" yaml:"droplets" validate:"min=0,max=100"`
}

// Sum returns the total weight
func (o Odds) Sum() int {
	return o.Grand + o.TryAgain + o.Droplets
}

// Validate enforces non-negative weights summing to 100
func (o Odds) Validate() error {
	if o.Grand < 0 || o.TryAgain < 0 || o.Droplets < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidOdds)
	}
	if sum := o.Sum(); sum != OddsTotal {
		return fmt.Errorf("%w: odds must sum to 100%%, current sum: %d%%", ErrInvalidOdds, sum)
	}
	return nil
}

// Weight returns the configured weight of a category
func (o Odds) Weight(c Category) int {
	switch c {
	case CategoryGrand:
		return o.Grand
	case CategoryTryAgain:
		return o.TryAgain
	case CategoryDroplets:
		return o.Droplets
	}
	return 0
}

// RedeemableReward is a fixed-cost reward bought with droplets
type RedeemableReward struct {
	ID          string `json:"id" yaml:"id"`
	Label       string `json:"label" yaml:"label"`
	Cost        int    `json:"cost" yaml:"cost"`
	Icon        string `json:"icon,omitempty" yaml:"icon"`
	Description string `json:"description,omitempty" yaml:"description"`
}
