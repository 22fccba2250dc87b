package data

import (
	"math/rand/v2"

	"github.com/udisondev/exilecraft/internal/model"
)

// Affix pools rolled by the crafting operations. Prefixes adjust the
// flask's own numbers, suffixes grant effects or immunities while active.

var prefixPool = []model.ModifierBundle{
	{
		ID: "prefix_bountiful", Name: "Bountiful", Tier: 1,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModCharges, Value: 25, IsPercentage: true},
		},
	},
	{
		ID: "prefix_ample", Name: "Ample", Tier: 1,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModMaxCharges, Value: 10},
		},
	},
	{
		ID: "prefix_saturated", Name: "Saturated", Tier: 2,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModRecoveryAmount, Value: 50, IsPercentage: true},
			{Kind: model.FlaskModRecoverySpeed, Value: -33, IsPercentage: true},
		},
	},
	{
		ID: "prefix_catalysed", Name: "Catalysed", Tier: 2,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModRecoverySpeed, Value: 50, IsPercentage: true},
		},
	},
	{
		ID: "prefix_surgeons", Name: "Surgeon's", Tier: 3,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModChargeOnCrit, Value: 1},
		},
	},
	{
		ID: "prefix_experimenters", Name: "Experimenter's", Tier: 2,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModDuration, Value: 25, IsPercentage: true},
		},
	},
}

var suffixPool = []model.ModifierBundle{
	{
		ID: "suffix_staunching", Name: "of Staunching", Tier: 1,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModImmunity, Stat: "bleed"},
		},
	},
	{
		ID: "suffix_heat", Name: "of Heat", Tier: 1,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModImmunity, Stat: "freeze"},
		},
	},
	{
		ID: "suffix_adrenaline", Name: "of Adrenaline", Tier: 2,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModEffect, Stat: "speed_movement", Value: 20, IsPercentage: true},
		},
	},
	{
		ID: "suffix_iron_skin", Name: "of Iron Skin", Tier: 2,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModEffect, Stat: "armour", Value: 60, IsPercentage: true},
		},
	},
	{
		ID: "suffix_warding", Name: "of Warding", Tier: 3,
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModImmunity, Stat: "curse"},
		},
	},
}

// PrefixPool returns the rollable prefix bundles.
func PrefixPool() []model.ModifierBundle { return prefixPool }

// SuffixPool returns the rollable suffix bundles.
func SuffixPool() []model.ModifierBundle { return suffixPool }

// RandomPrefix picks a uniform random prefix not already present on the
// flask. Returns nil when the pool is exhausted.
func RandomPrefix(exclude []model.ModifierBundle) *model.ModifierBundle {
	return pickBundle(prefixPool, exclude, rand.IntN)
}

// RandomSuffix picks a uniform random suffix not already present.
func RandomSuffix(exclude []model.ModifierBundle) *model.ModifierBundle {
	return pickBundle(suffixPool, exclude, rand.IntN)
}

// RandomPrefixWithPick and RandomSuffixWithPick take the index function
// explicitly for deterministic tests.
func RandomPrefixWithPick(exclude []model.ModifierBundle, pick func(int) int) *model.ModifierBundle {
	return pickBundle(prefixPool, exclude, pick)
}

func RandomSuffixWithPick(exclude []model.ModifierBundle, pick func(int) int) *model.ModifierBundle {
	return pickBundle(suffixPool, exclude, pick)
}

func pickBundle(pool, exclude []model.ModifierBundle, pick func(int) int) *model.ModifierBundle {
	candidates := make([]*model.ModifierBundle, 0, len(pool))
outer:
	for i := range pool {
		for _, ex := range exclude {
			if ex.ID == pool[i].ID {
				continue outer
			}
		}
		candidates = append(candidates, &pool[i])
	}
	if len(candidates) == 0 {
		return nil
	}
	b := *candidates[pick(len(candidates))]
	b.Modifiers = append([]model.FlaskModifier(nil), b.Modifiers...)
	return &b
}
