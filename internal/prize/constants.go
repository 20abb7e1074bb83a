package prize

const (
	PercentScale        = 100.0
	DropletsLabelFormat = "%d Droplets"

	// MaxSimulationDraws bounds a single odds preview
	MaxSimulationDraws     = 100000
	DefaultSimulationDraws = 10000
)
