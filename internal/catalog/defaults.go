package catalog

import "github.com/kylasweb/IOC-Spinwheel/internal/domain"

// DefaultPrizes is the built-in wheel used when no seed file is configured
func DefaultPrizes() []domain.Prize {
	return []domain.Prize{
		{
			ID: "1", Label: "10% Cashback", Category: domain.CategoryGrand,
			Color: "#F37021", TextColor: "#ffffff", Icon: "percent",
			Description: "Enjoy 10% cashback on your next premium fuel purchase. Valid at all participating IndianOil outlets.",
		},
		{
			ID: "2", Label: "Free Car Wash", Category: domain.CategoryGrand,
			Color: "#0054A6", TextColor: "#ffffff", Icon: "droplet",
			Description: "Get a sparkling clean car with our complimentary car wash service. Redeemable on weekends.",
		},
		{
			ID: "3", Label: "Servo Oil 1L", Category: domain.CategoryGrand,
			Color: "#FFCD00", TextColor: "#000000", Icon: "oil",
			Description: "Keep your engine running smoothly with a free 1L pack of Servo lubricant.",
		},
		{
			ID: "4", Label: "Fuel Droplets", Category: domain.CategoryDroplets,
			Color: "#009845", TextColor: "#ffffff", Icon: "droplet",
			Description: "Collect Fuel Droplets! 100 Droplets = 1 Litre of Free Fuel.",
		},
		{
			ID: "5", Label: "Try Again", Category: domain.CategoryTryAgain,
			Color: "#666666", TextColor: "#ffffff", Icon: "frown",
			Description: "Better luck next time! Don't worry, you can spin again tomorrow.",
		},
		{
			ID: "6", Label: "₹100 Fuel", Category: domain.CategoryGrand,
			Color: "#F37021", TextColor: "#ffffff", Icon: "fuel",
			Description: "Win a fuel voucher worth ₹100. Drive more, save more with IndianOil.",
		},
	}
}

// DefaultRewards lists what droplets can be exchanged for
func DefaultRewards() []domain.RedeemableReward {
	return []domain.RedeemableReward{
		{ID: "petrol-1l", Label: "1 Litre Petrol", Cost: 100, Icon: "fuel", Description: "Get 1L Petrol Free"},
		{ID: "diesel-1l", Label: "1 Litre Diesel", Cost: 100, Icon: "fuel", Description: "Get 1L Diesel Free"},
		{ID: "xp95-1l", Label: "XP95 Premium", Cost: 110, Icon: "fuel", Description: "1L XP95 Premium Fuel"},
	}
}

// DefaultSeed bundles the built-in catalog, rewards and config
func DefaultSeed() Seed {
	return Seed{
		Config:  domain.DefaultGameConfig(),
		Prizes:  DefaultPrizes(),
		Rewards: DefaultRewards(),
	}
}
