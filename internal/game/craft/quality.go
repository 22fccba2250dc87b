package craft

import (
	"math"

	"github.com/udisondev/exilecraft/internal/model"
)

// DefaultQualityCurrency is spent when a quality state does not name its own
// currency type.
const DefaultQualityCurrency = "glassblower_bauble"

// ImproveCost returns the total currency required to raise a quality state
// from its current level to target. Each step l costs baseCost scaled by
// scalingFactor^(l-1); the summed cost is rounded up to a whole unit.
func ImproveCost(q model.QualityState, target int32) int64 {
	if target <= q.Level {
		return 0
	}
	base := q.BaseCost
	if base <= 0 {
		base = 1
	}
	scaling := q.ScalingFactor
	if scaling <= 0 {
		scaling = 1
	}

	total := 0.0
	for level := q.Level + 1; level <= target; level++ {
		total += base * math.Pow(scaling, float64(level-1))
	}
	return int64(math.Ceil(total))
}

// QualityCurrency resolves the currency type a quality state consumes.
func QualityCurrency(q model.QualityState) string {
	if q.CurrencyType != "" {
		return q.CurrencyType
	}
	return DefaultQualityCurrency
}
