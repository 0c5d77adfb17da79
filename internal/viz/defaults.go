package viz

// Default caps applied when a configuration leaves a bound at zero. Deployed
// servers override them through the caps section of the config file.
const (
	DefaultGroupCap          = 50
	DefaultSeriesCap         = 10
	DefaultRankingCap        = 15
	DefaultMatrixAxisCap     = 50
	DefaultMaxCells          = 2500
	DefaultRadarCategories   = 20
	DefaultTableRows         = 1000
	DefaultPageSize          = 10
	DefaultLineXCap          = 100
	DefaultLineSeriesCap     = 10
	DefaultScatterPoints     = 500
	DefaultScatterCategories = 10

	// rankingCeiling bounds the distinct keys a ranking aggregates before
	// sorting by value and keeping the top N.
	rankingCeiling = 10000

	// defaultScatterSize is the marker size when the size field is unusable.
	defaultScatterSize = 5
)
