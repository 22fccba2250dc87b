// Package enchant implements the flask enchantment rules: requirement
// gating and symmetric conflict checking. Enchantments are deterministic;
// all randomness in flask customization lives in corrupt and craft.
package enchant

import (
	"github.com/udisondev/exilecraft/internal/game/event"
	"github.com/udisondev/exilecraft/internal/model"
)

// Validate checks whether the enchantment can be attached to the flask.
// Returns FailNone when every gate passes.
//
// Gates, in order: corruption lock, duplicate, level/quality/type/base
// requirements, conflicts (symmetric: either side naming the other blocks).
func Validate(cust *model.FlaskCustomization, ench *model.Enchantment, characterLevel int32) event.FailureReason {
	if cust == nil || ench == nil {
		return event.FailUnknownDefinition
	}
	if cust.Flask.Corrupted {
		return event.FailConflictingEnchantment
	}
	if cust.HasEnchantment(ench.ID) {
		return event.FailConflictingEnchantment
	}

	req := ench.Requirements
	if characterLevel < req.MinLevel {
		return event.FailInsufficientResource
	}
	if cust.Quality.Level < req.MinQuality {
		return event.FailInsufficientResource
	}
	if !req.AllowsFlaskType(cust.Flask.Type) {
		return event.FailRarityMismatch
	}
	if !req.AllowsBaseType(cust.Flask.BaseType) {
		return event.FailRarityMismatch
	}

	for _, attached := range cust.Enchantments {
		if conflicts(&attached, ench) {
			return event.FailConflictingEnchantment
		}
	}
	return event.FailNone
}

// conflicts reports whether either enchantment names the other.
func conflicts(a *model.Enchantment, b *model.Enchantment) bool {
	for _, id := range a.ConflictsWith {
		if id == b.ID {
			return true
		}
	}
	for _, id := range b.ConflictsWith {
		if id == a.ID {
			return true
		}
	}
	return false
}

// Attach records the enchantment and applies its stat lines to the flask.
// Caller must have validated first; Attach does not re-check.
func Attach(cust *model.FlaskCustomization, ench *model.Enchantment) {
	cust.Enchantments = append(cust.Enchantments, *ench)
	cust.Flask.EnchantMods = append(cust.Flask.EnchantMods, ench.Effects...)
}
