package prize

import "github.com/kylasweb/IOC-Spinwheel/internal/domain"

// Distribution is the outcome of a Monte-Carlo run over the resolver
type Distribution struct {
	Draws          int                         `json:"draws"`
	Counts         map[domain.Category]int     `json:"counts"`
	Percent        map[domain.Category]float64 `json:"percent"`
	DropletsTotal  int                         `json:"droplets_total"`
	DropletsPerWin float64                     `json:"droplets_per_win"`
}

// Simulate runs n draws and reports observed category frequencies.
// Frequencies are of the resolved prize, so fallbacks show up here.
func Simulate(odds domain.Odds, catalog []domain.Prize, rng RandomSource, n int) Distribution {
	if n <= 0 {
		n = DefaultSimulationDraws
	}
	if n > MaxSimulationDraws {
		n = MaxSimulationDraws
	}

	d := Distribution{
		Draws:   n,
		Counts:  make(map[domain.Category]int, len(domain.Categories)),
		Percent: make(map[domain.Category]float64, len(domain.Categories)),
	}
	for i := 0; i < n; i++ {
		p := Resolve(odds, catalog, rng)
		d.Counts[p.Category]++
		d.DropletsTotal += DropletCount(p)
	}

	for _, c := range domain.Categories {
		d.Percent[c] = float64(d.Counts[c]) * PercentScale / float64(n)
	}
	if wins := d.Counts[domain.CategoryDroplets]; wins > 0 {
		d.DropletsPerWin = float64(d.DropletsTotal) / float64(wins)
	}
	return d
}
