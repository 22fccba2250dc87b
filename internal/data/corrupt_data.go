package data

import (
	"github.com/udisondev/exilecraft/internal/model"
)

// corruptionOutcomeDefs — the weighted corruption table. Outcome selection
// is weight / total-weight; the destroy and no-change rolls are drawn
// independently after selection.
var corruptionOutcomeDefs = []model.CorruptionOutcome{
	{
		ID:             "corrupt_add_modifier",
		Name:           "Add Random Modifier",
		Weight:         30,
		DestroyChance:  0.25,
		NoChangeChance: 0.25,
		Effect:         model.CorruptAddModifier,
	},
	{
		ID:             "corrupt_remove_modifier",
		Name:           "Remove Random Modifier",
		Weight:         20,
		DestroyChance:  0.25,
		NoChangeChance: 0.25,
		Effect:         model.CorruptRemoveModifier,
	},
	{
		ID:             "corrupt_transform_unique",
		Name:           "Transform to Unique",
		Weight:         10,
		DestroyChance:  0.25,
		NoChangeChance: 0.10,
		Effect:         model.CorruptTransformUnique,
		UniqueBaseID:   "unique_taste_of_hate",
	},
	{
		ID:             "corrupt_add_implicit",
		Name:           "Add Implicit",
		Weight:         40,
		DestroyChance:  0.20,
		NoChangeChance: 0.20,
		Effect:         model.CorruptAddImplicit,
		Implicit: &model.FlaskModifier{
			Kind: model.FlaskModMaxCharges, Value: 15, IsPercentage: true,
		},
	},
}

var (
	corruptionOutcomes    []*model.CorruptionOutcome
	corruptionTotalWeight int32
)

// LoadCorruptionOutcomes builds the corruption table and its total weight.
func LoadCorruptionOutcomes() {
	corruptionOutcomes = make([]*model.CorruptionOutcome, 0, len(corruptionOutcomeDefs))
	corruptionTotalWeight = 0
	for i := range corruptionOutcomeDefs {
		corruptionOutcomes = append(corruptionOutcomes, &corruptionOutcomeDefs[i])
		corruptionTotalWeight += corruptionOutcomeDefs[i].Weight
	}
}

// CorruptionOutcomes returns the loaded outcome rows.
func CorruptionOutcomes() []*model.CorruptionOutcome {
	return corruptionOutcomes
}

// CorruptionTotalWeight returns the sum of all outcome weights.
func CorruptionTotalWeight() int32 {
	return corruptionTotalWeight
}

// PickCorruptionOutcome maps a roll in [0, totalWeight) onto an outcome.
// Returns nil for an out-of-range roll or an unloaded table.
func PickCorruptionOutcome(roll int32) *model.CorruptionOutcome {
	if roll < 0 || roll >= corruptionTotalWeight {
		return nil
	}
	for _, o := range corruptionOutcomes {
		if roll < o.Weight {
			return o
		}
		roll -= o.Weight
	}
	return nil
}
