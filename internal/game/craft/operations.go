// Package craft implements the flask customization engines: quality
// improvement, currency-gated crafting transforms, deterministic bench
// crafting, and the per-flask investment tracking facade.
package craft

import (
	"github.com/udisondev/exilecraft/internal/data"
	"github.com/udisondev/exilecraft/internal/model"
)

// affixLimit is the prefix cap (and separately the suffix cap) at a
// rarity. Normal and unique flasks hold no rolled affixes.
func affixLimit(r model.Rarity) int {
	switch r {
	case model.RarityMagic:
		return 1
	case model.RarityRare:
		return 3
	default:
		return 0
	}
}

// ApplyTransform mutates the flask per the operation's transform. pick
// drives pool and slot selection, valueRoll drives divine value rerolls
// in [0,1). Reports whether the transform changed anything; rarity gating
// and currency are the caller's job.
func ApplyTransform(f *model.FlaskData, op *model.CraftOperation, pick func(int) int, valueRoll func() float64) bool {
	switch op.Transform {
	case model.TransformUpgradeMagic, model.TransformUpgradeRare:
		f.Rarity = op.ResultRarity
		addRandomAffix(f, pick)
		return true

	case model.TransformRerollMagic:
		f.Prefixes = nil
		f.Suffixes = nil
		for n := 1 + pick(2); n > 0; n-- {
			addRandomAffix(f, pick)
		}
		return true

	case model.TransformRerollRare:
		f.Prefixes = nil
		f.Suffixes = nil
		for n := 3 + pick(2); n > 0; n-- {
			addRandomAffix(f, pick)
		}
		return true

	case model.TransformAddModifier:
		return addRandomAffix(f, pick)

	case model.TransformDivine:
		return rerollValues(f, valueRoll)

	case model.TransformAnnul:
		return removeRandomAffix(f, pick)

	case model.TransformScour:
		if len(f.Prefixes) == 0 && len(f.Suffixes) == 0 && f.Rarity == model.RarityNormal {
			return false
		}
		f.Prefixes = nil
		f.Suffixes = nil
		f.Rarity = model.RarityNormal
		return true
	}
	return false
}

// addRandomAffix rolls one bundle into an open prefix or suffix slot.
// When both sides are open the side is picked at random. Returns false
// when every slot is filled or the pools are exhausted.
func addRandomAffix(f *model.FlaskData, pick func(int) int) bool {
	limit := affixLimit(f.Rarity)
	prefixOpen := len(f.Prefixes) < limit
	suffixOpen := len(f.Suffixes) < limit

	tryPrefix := func() bool {
		b := data.RandomPrefixWithPick(f.Prefixes, pick)
		if b == nil {
			return false
		}
		f.Prefixes = append(f.Prefixes, *b)
		return true
	}
	trySuffix := func() bool {
		b := data.RandomSuffixWithPick(f.Suffixes, pick)
		if b == nil {
			return false
		}
		f.Suffixes = append(f.Suffixes, *b)
		return true
	}

	switch {
	case prefixOpen && suffixOpen:
		if pick(2) == 0 {
			return tryPrefix() || trySuffix()
		}
		return trySuffix() || tryPrefix()
	case prefixOpen:
		return tryPrefix()
	case suffixOpen:
		return trySuffix()
	default:
		return false
	}
}

func removeRandomAffix(f *model.FlaskData, pick func(int) int) bool {
	total := len(f.Prefixes) + len(f.Suffixes)
	if total == 0 {
		return false
	}
	idx := pick(total)
	if idx < len(f.Prefixes) {
		f.Prefixes = append(f.Prefixes[:idx], f.Prefixes[idx+1:]...)
	} else {
		idx -= len(f.Prefixes)
		f.Suffixes = append(f.Suffixes[:idx], f.Suffixes[idx+1:]...)
	}
	return true
}

// rerollValues rerolls every numeric affix line into 80%..120% of its
// current value. Immunity lines carry no number and are untouched.
func rerollValues(f *model.FlaskData, valueRoll func() float64) bool {
	changed := false
	reroll := func(bundles []model.ModifierBundle) {
		for i := range bundles {
			for j := range bundles[i].Modifiers {
				m := &bundles[i].Modifiers[j]
				if m.Value == 0 {
					continue
				}
				m.Value *= 0.8 + 0.4*valueRoll()
				changed = true
			}
		}
	}
	reroll(f.Prefixes)
	reroll(f.Suffixes)
	return changed
}
