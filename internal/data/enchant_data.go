package data

import (
	"github.com/udisondev/exilecraft/internal/model"
)

// enchantmentDefs — built-in flask enchantments. Conflict lists are
// symmetric: each side names the other.
var enchantmentDefs = []model.Enchantment{
	{
		ID:   "enchant_increased_effect",
		Name: "Increased Effect",
		Effects: []model.FlaskModifier{
			{Kind: model.FlaskModEffect, Stat: "flask_effect", Value: 20, IsPercentage: true},
		},
		ConflictsWith: []string{"enchant_increased_duration"},
		Requirements:  model.EnchantRequirements{MinLevel: 20, MinQuality: 10},
	},
	{
		ID:   "enchant_increased_duration",
		Name: "Increased Duration",
		Effects: []model.FlaskModifier{
			{Kind: model.FlaskModDuration, Value: 30, IsPercentage: true},
		},
		ConflictsWith: []string{"enchant_increased_effect"},
		Requirements: model.EnchantRequirements{
			MinLevel: 20, MinQuality: 10,
			FlaskTypes: []string{"utility"},
		},
	},
	{
		ID:   "enchant_recovery_low_life",
		Name: "Recovery when on Low Life",
		Effects: []model.FlaskModifier{
			{
				Kind: model.FlaskModRecoveryAmount, Value: 40, IsPercentage: true,
				Condition: model.Condition{Kind: model.ConditionLowLife, Threshold: 0.35},
			},
		},
		Requirements: model.EnchantRequirements{
			MinLevel:   30,
			FlaskTypes: []string{"life", "hybrid"},
		},
	},
	{
		ID:   "enchant_quicksilver_steady",
		Name: "Steady Sprint",
		Effects: []model.FlaskModifier{
			{Kind: model.FlaskModEffect, Stat: "speed_movement", Value: 8, IsPercentage: true},
		},
		Requirements: model.EnchantRequirements{
			MinLevel:  12,
			BaseTypes: []string{"quicksilver"},
		},
	},
}

var enchantmentTable map[string]*model.Enchantment

// LoadEnchantments builds the enchantment registry.
func LoadEnchantments() {
	enchantmentTable = make(map[string]*model.Enchantment, len(enchantmentDefs))
	for i := range enchantmentDefs {
		enchantmentTable[enchantmentDefs[i].ID] = &enchantmentDefs[i]
	}
}

// GetEnchantment returns an enchantment definition, or nil if unknown.
func GetEnchantment(id string) *model.Enchantment {
	if enchantmentTable == nil {
		return nil
	}
	return enchantmentTable[id]
}
