package data

import (
	"github.com/udisondev/exilecraft/internal/model"
)

// flaskBaseDefs — built-in flask base templates. Rolled affixes, quality
// and corruption state all start empty; the customization engines mutate
// copies, never these templates.
var flaskBaseDefs = []model.FlaskData{
	{
		ID:             "small_life_flask",
		Name:           "Small Life Flask",
		BaseType:       "life",
		Type:           model.FlaskLife,
		RecoveryAmount: 70,
		RecoveryMs:     0, // instant
		Charges: model.FlaskCharges{
			Current: 21, Maximum: 21, UsedPerUse: 7,
			GainOnKill: 1, GainOnCrit: 0, ChargeRecovery: 0.5,
		},
		Requirements: model.FlaskRequirements{Level: 1},
	},
	{
		ID:             "grand_life_flask",
		Name:           "Grand Life Flask",
		BaseType:       "life",
		Type:           model.FlaskLife,
		RecoveryAmount: 350,
		RecoveryMs:     0,
		Charges: model.FlaskCharges{
			Current: 30, Maximum: 30, UsedPerUse: 10,
			GainOnKill: 1, GainOnCrit: 0, ChargeRecovery: 0.4,
		},
		Requirements: model.FlaskRequirements{Level: 24},
	},
	{
		ID:             "grand_mana_flask",
		Name:           "Grand Mana Flask",
		BaseType:       "mana",
		Type:           model.FlaskMana,
		RecoveryAmount: 170,
		RecoveryMs:     0,
		Charges: model.FlaskCharges{
			Current: 24, Maximum: 24, UsedPerUse: 8,
			GainOnKill: 1, ChargeRecovery: 0.4,
		},
		Requirements: model.FlaskRequirements{Level: 24},
	},
	{
		ID:             "sacred_hybrid_flask",
		Name:           "Sacred Hybrid Flask",
		BaseType:       "hybrid",
		Type:           model.FlaskHybrid,
		RecoveryAmount: 480,
		RecoveryMs:     0,
		Charges: model.FlaskCharges{
			Current: 30, Maximum: 30, UsedPerUse: 15,
			GainOnKill: 1, ChargeRecovery: 0.3,
		},
		Requirements: model.FlaskRequirements{Level: 35},
	},
	{
		ID:       "quicksilver_flask",
		Name:     "Quicksilver Flask",
		BaseType: "quicksilver",
		Type:     model.FlaskUtility,
		Charges: model.FlaskCharges{
			Current: 30, Maximum: 30, UsedPerUse: 20,
			GainOnKill: 1, GainOnCrit: 1, ChargeRecovery: 0.3,
		},
		Effects: []model.FlaskEffectDef{
			{
				ID: "quicksilver_speed", Stat: "speed_movement",
				Magnitude: 40, DurationMs: 4_000,
				Tags: []string{"speed", "utility"},
			},
		},
		Requirements: model.FlaskRequirements{Level: 4},
	},
	{
		ID:       "granite_flask",
		Name:     "Granite Flask",
		BaseType: "granite",
		Type:     model.FlaskUtility,
		Charges: model.FlaskCharges{
			Current: 30, Maximum: 30, UsedPerUse: 15,
			GainOnKill: 1, ChargeRecovery: 0.3,
		},
		Effects: []model.FlaskEffectDef{
			{
				ID: "granite_armour", Stat: "armour",
				Magnitude: 1500, DurationMs: 4_000,
				Tags: []string{"defence", "utility"},
			},
		},
		Requirements: model.FlaskRequirements{Level: 27},
	},
}

// uniqueBaseDefs — unique flasks a corruption can transform into.
var uniqueBaseDefs = []model.FlaskData{
	{
		ID:       "unique_taste_of_hate",
		Name:     "Taste of Hate",
		BaseType: "sapphire",
		Type:     model.FlaskUtility,
		Rarity:   model.RarityUnique,
		Charges: model.FlaskCharges{
			Current: 30, Maximum: 30, UsedPerUse: 15,
			GainOnKill: 1, ChargeRecovery: 0.3,
		},
		Effects: []model.FlaskEffectDef{
			{
				ID: "taste_of_hate_cold", Stat: "cold_damage_taken",
				Magnitude: -20, DurationMs: 5_000,
				Tags: []string{"defence", "unique"},
			},
		},
		Requirements: model.FlaskRequirements{Level: 18},
	},
}

var (
	flaskBaseTable  map[string]*model.FlaskData
	uniqueBaseTable map[string]*model.FlaskData
)

// LoadFlaskBases builds the flask template registries.
func LoadFlaskBases() {
	flaskBaseTable = make(map[string]*model.FlaskData, len(flaskBaseDefs))
	for i := range flaskBaseDefs {
		flaskBaseTable[flaskBaseDefs[i].ID] = &flaskBaseDefs[i]
	}
	uniqueBaseTable = make(map[string]*model.FlaskData, len(uniqueBaseDefs))
	for i := range uniqueBaseDefs {
		uniqueBaseTable[uniqueBaseDefs[i].ID] = &uniqueBaseDefs[i]
	}
}

// NewFlaskFromBase returns a deep copy of a base template, or nil if the
// base is unknown. Callers own and mutate the copy.
func NewFlaskFromBase(baseID string) *model.FlaskData {
	if flaskBaseTable == nil {
		return nil
	}
	base := flaskBaseTable[baseID]
	if base == nil {
		return nil
	}
	return base.Clone()
}

// GetUniqueBase returns a unique flask template, or nil if unknown.
func GetUniqueBase(id string) *model.FlaskData {
	if uniqueBaseTable == nil {
		return nil
	}
	return uniqueBaseTable[id]
}
