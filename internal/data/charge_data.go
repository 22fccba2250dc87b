// Package data holds the static definition tables: charge types, charge
// sources, consumptions, flask bases, affix pools, enchantments, corruption
// outcomes and crafting operations. Tables are Go literals built into
// registries by the Load functions; gameplay numbers are externally
// supplied and can be replaced via yaml overrides (see loader.go).
package data

import (
	"github.com/udisondev/exilecraft/internal/model"
)

// chargeTypeDefs — built-in charge type definitions.
var chargeTypeDefs = []model.ChargeType{
	{
		ID:         "power",
		Name:       "Power Charge",
		Category:   model.CategoryPower,
		MaxCharges: 3,
		DurationMs: 10_000,
		DecayRate:  1,
		Effects: []model.ChargeEffect{
			{Stat: "critical_chance", Value: 40, Kind: model.ValueFlat, PerCharge: true},
		},
	},
	{
		ID:         "frenzy",
		Name:       "Frenzy Charge",
		Category:   model.CategoryFrenzy,
		MaxCharges: 3,
		DurationMs: 10_000,
		DecayRate:  1,
		Effects: []model.ChargeEffect{
			{Stat: "speed_attack", Value: 4, Kind: model.ValuePercentage, PerCharge: true},
			{Stat: "speed_cast", Value: 4, Kind: model.ValuePercentage, PerCharge: true},
			{Stat: "speed_movement", Value: 4, Kind: model.ValuePercentage, PerCharge: true},
		},
	},
	{
		ID:         "endurance",
		Name:       "Endurance Charge",
		Category:   model.CategoryEndurance,
		MaxCharges: 3,
		DurationMs: 10_000,
		DecayRate:  1,
		Effects: []model.ChargeEffect{
			{Stat: "physical_damage_reduction", Value: 4, Kind: model.ValuePercentage, PerCharge: true},
			{Stat: "elemental_resistance", Value: 4, Kind: model.ValueFlat, PerCharge: true},
		},
	},
	{
		ID:         "spirit",
		Name:       "Spirit Charge",
		Category:   model.CategorySpirit,
		MaxCharges: 5,
		DurationMs: 8_000,
		DecayRate:  0, // persists until consumed
		Effects: []model.ChargeEffect{
			{Stat: "damage", Value: 1.05, Kind: model.ValueMultiplier},
			{Stat: "mana_regeneration", Value: 2, Kind: model.ValueFlat, PerCharge: true},
		},
	},
}

// chargeSourceDefs — built-in charge generators.
var chargeSourceDefs = []model.ChargeSource{
	{
		ID:   "power_on_crit",
		Name: "Power on Critical Strike",
		Triggers: []model.ChargeTrigger{
			{Event: model.TriggerCriticalStrike, Chance: 0.25},
		},
		ChargeTypes: []string{"power"},
		BaseAmount:  1,
		CooldownMs:  500,
	},
	{
		ID:   "frenzy_on_kill",
		Name: "Frenzy on Kill",
		Triggers: []model.ChargeTrigger{
			{Event: model.TriggerKill, Chance: 0.3},
		},
		ChargeTypes: []string{"frenzy"},
		BaseAmount:  1,
		CooldownMs:  250,
	},
	{
		ID:   "endurance_when_hit",
		Name: "Endurance when Hit",
		Triggers: []model.ChargeTrigger{
			{Event: model.TriggerHitTaken, Chance: 0.2},
			{Event: model.TriggerBlock, Chance: 0.35},
		},
		ChargeTypes: []string{"endurance"},
		BaseAmount:  1,
		CooldownMs:  1_000,
	},
	{
		ID:   "warlord_slaughter",
		Name: "Warlord's Slaughter",
		Triggers: []model.ChargeTrigger{
			{
				Event:     model.TriggerKill,
				Condition: model.Condition{Kind: model.ConditionEnemyLevelAbove, Threshold: 40},
				Chance:    0.5,
			},
		},
		ChargeTypes: []string{"endurance", "spirit"},
		BaseAmount:  1,
		Scaling:     model.ScalePerEnemyLevel,
		CooldownMs:  2_000,
	},
	{
		ID:   "blood_rage",
		Name: "Blood Rage",
		Triggers: []model.ChargeTrigger{
			{
				Event:      model.TriggerHit,
				Condition:  model.Condition{Kind: model.ConditionLowLife, Threshold: 0.35},
				Chance:     1.0,
				CooldownMs: 4_000,
			},
		},
		ChargeTypes: []string{"frenzy"},
		BaseAmount:  1,
		Scaling:     model.ScalePerDamage,
		CooldownMs:  1_000,
	},
}

// consumptionDefs — built-in charge spenders.
var consumptionDefs = []model.ChargeConsumption{
	{
		ID:         "discharge_power",
		Name:       "Discharge (Power)",
		ChargeType: "power",
		Kind:       model.ConsumeAll,
		Effects: []model.ConsumptionEffect{
			{Kind: model.ConsumptionDamage, Value: 120, PerChargeConsumed: true},
		},
		CooldownMs: 3_000,
	},
	{
		ID:         "spirit_burst",
		Name:       "Spirit Burst",
		ChargeType: "spirit",
		Kind:       model.ConsumePartial,
		Amount:     2,
		Effects: []model.ConsumptionEffect{
			{Kind: model.ConsumptionHealing, Value: 50, PerChargeConsumed: true},
		},
		CooldownMs: 1_500,
	},
	{
		ID:         "frenzy_surge",
		Name:       "Frenzy Surge",
		ChargeType: "frenzy",
		Kind:       model.ConsumePerUse,
		Amount:     1,
		Effects: []model.ConsumptionEffect{
			{Kind: model.ConsumptionBuff, Stat: "speed_attack", Value: 10, DurationMs: 4_000},
		},
		CooldownMs: 500,
	},
}

// Registries. map[id]*def, built by LoadChargeDefinitions.
var (
	chargeTypeTable   map[string]*model.ChargeType
	chargeSourceTable map[string]*model.ChargeSource
	consumptionTable  map[string]*model.ChargeConsumption
)

// LoadChargeDefinitions builds the charge registries from Go literals.
func LoadChargeDefinitions() {
	chargeTypeTable = make(map[string]*model.ChargeType, len(chargeTypeDefs))
	for i := range chargeTypeDefs {
		chargeTypeTable[chargeTypeDefs[i].ID] = &chargeTypeDefs[i]
	}
	chargeSourceTable = make(map[string]*model.ChargeSource, len(chargeSourceDefs))
	for i := range chargeSourceDefs {
		chargeSourceTable[chargeSourceDefs[i].ID] = &chargeSourceDefs[i]
	}
	consumptionTable = make(map[string]*model.ChargeConsumption, len(consumptionDefs))
	for i := range consumptionDefs {
		consumptionTable[consumptionDefs[i].ID] = &consumptionDefs[i]
	}
}

// GetChargeType returns the charge type definition, or nil if unknown.
func GetChargeType(id string) *model.ChargeType {
	if chargeTypeTable == nil {
		return nil
	}
	return chargeTypeTable[id]
}

// GetChargeSource returns the charge source definition, or nil if unknown.
func GetChargeSource(id string) *model.ChargeSource {
	if chargeSourceTable == nil {
		return nil
	}
	return chargeSourceTable[id]
}

// GetConsumption returns the consumption definition, or nil if unknown.
func GetConsumption(id string) *model.ChargeConsumption {
	if consumptionTable == nil {
		return nil
	}
	return consumptionTable[id]
}

// AllChargeTypes returns every loaded charge type definition.
func AllChargeTypes() []*model.ChargeType {
	out := make([]*model.ChargeType, 0, len(chargeTypeTable))
	for _, ct := range chargeTypeTable {
		out = append(out, ct)
	}
	return out
}
