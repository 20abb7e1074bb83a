// Package prize turns an odds table and a catalog into a concrete prize.
package prize

import (
	"fmt"
	"strconv"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

// Resolve draws one prize. It never fails: when the drawn category has no
// prizes it falls back to the first TryAgain prize and then to catalog[0].
// The returned prize is a copy and never aliases the catalog.
func Resolve(odds domain.Odds, catalog []domain.Prize, rng RandomSource) domain.Prize {
	if rng == nil {
		rng = DefaultRNG()
	}

	target := SelectCategory(odds, rng.Float64()*PercentScale)
	chosen, ok := pick(catalog, target, rng)
	if !ok {
		return domain.Prize{Category: domain.CategoryTryAgain}
	}

	if chosen.Category == domain.CategoryDroplets {
		n := domain.MinDropletAward + rng.IntN(domain.MaxDropletAward-domain.MinDropletAward+1)
		chosen = withDroplets(chosen, n)
	}
	return chosen
}

// SelectCategory applies the cumulative thresholds in fixed order.
// Droplets absorbs whatever mass the first two do not claim.
func SelectCategory(odds domain.Odds, r float64) domain.Category {
	switch {
	case r < float64(odds.Grand):
		return domain.CategoryGrand
	case r < float64(odds.Grand+odds.TryAgain):
		return domain.CategoryTryAgain
	default:
		return domain.CategoryDroplets
	}
}

func pick(catalog []domain.Prize, target domain.Category, rng RandomSource) (domain.Prize, bool) {
	if len(catalog) == 0 {
		return domain.Prize{}, false
	}

	matches := make([]int, 0, len(catalog))
	for i := range catalog {
		if catalog[i].Category == target {
			matches = append(matches, i)
		}
	}
	if len(matches) > 0 {
		return catalog[matches[rng.IntN(len(matches))]], true
	}

	for i := range catalog {
		if catalog[i].Category == domain.CategoryTryAgain {
			return catalog[i], true
		}
	}
	return catalog[0], true
}

func withDroplets(p domain.Prize, n int) domain.Prize {
	p.Value = strconv.Itoa(n)
	p.OverrideValue = fmt.Sprintf(DropletsLabelFormat, n)
	p.Description = fmt.Sprintf(domain.MsgDropletsFormat, n)
	return p
}

// DropletCount parses the per-draw droplet value of a resolved prize
func DropletCount(p domain.Prize) int {
	if p.Category != domain.CategoryDroplets {
		return 0
	}
	n, err := strconv.Atoi(p.Value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
