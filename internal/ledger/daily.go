package ledger

import (
	"time"

	"github.com/kylasweb/IOC-Spinwheel/internal/domain"
)

// playsToday reads the daily counter, treating a stale date as zero
func playsToday(p *domain.Profile, now time.Time) int {
	if p.DailyPlaysDate != dayKey(now) {
		return 0
	}
	return p.DailyPlays
}

// rollDaily resets the counter on the first game of a new UTC day
func rollDaily(p *domain.Profile, now time.Time) {
	if key := dayKey(now); p.DailyPlaysDate != key {
		p.DailyPlaysDate = key
		p.DailyPlays = 0
	}
}

func dayKey(t time.Time) string {
	return t.UTC().Format(domain.DailyPlaysDateLayout)
}
