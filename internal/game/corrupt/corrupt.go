// Package corrupt implements the one-shot, irreversible flask corruption
// roll: a weighted outcome selection followed by two independent rolls
// for destruction and no-change, then the outcome's mutation.
package corrupt

import (
	"math/rand/v2"

	"github.com/udisondev/exilecraft/internal/data"
	"github.com/udisondev/exilecraft/internal/model"
)

// Result describes a corruption attempt.
type Result struct {
	// Attempted is false when the flask was already corrupted (or the
	// outcome table is empty); nothing changed.
	Attempted bool
	// OutcomeID is the selected outcome row.
	OutcomeID string
	// Destroyed: the flask is gone; the caller must drop its
	// customization and investment tracker. The outcome's effect was
	// NOT applied.
	Destroyed bool
	// NoChange: the flask is corrupted but otherwise untouched.
	NoChange bool
}

// TryCorrupt corrupts the flask with live RNG.
func TryCorrupt(cust *model.FlaskCustomization) Result {
	total := data.CorruptionTotalWeight()
	if total <= 0 {
		return Result{}
	}
	return TryCorruptWithRolls(cust,
		rand.Int32N(total),
		rand.Float64(),
		rand.Float64(),
		rand.IntN)
}

// TryCorruptWithRolls is TryCorrupt with explicit rolls, for
// deterministic tests. outcomeRoll selects the weighted row;
// destroyRoll and noChangeRoll are compared against the row's chances;
// pick drives any random modifier selection the outcome performs.
func TryCorruptWithRolls(cust *model.FlaskCustomization, outcomeRoll int32, destroyRoll, noChangeRoll float64, pick func(int) int) Result {
	if cust == nil || cust.Flask.Corrupted {
		return Result{}
	}
	outcome := data.PickCorruptionOutcome(outcomeRoll)
	if outcome == nil {
		return Result{}
	}

	res := Result{Attempted: true, OutcomeID: outcome.ID}

	if destroyRoll < outcome.DestroyChance {
		res.Destroyed = true
		return res
	}

	cust.Flask.Corrupted = true
	cust.CorruptionApplied = append(cust.CorruptionApplied, outcome.ID)

	if noChangeRoll < outcome.NoChangeChance {
		res.NoChange = true
		return res
	}

	applyOutcome(cust, outcome, pick)
	return res
}

func applyOutcome(cust *model.FlaskCustomization, outcome *model.CorruptionOutcome, pick func(int) int) {
	f := cust.Flask
	switch outcome.Effect {
	case model.CorruptAddModifier:
		// Prefer a prefix slot, fall back to a suffix.
		if b := data.RandomPrefixWithPick(f.Prefixes, pick); b != nil {
			f.Prefixes = append(f.Prefixes, *b)
		} else if b := data.RandomSuffixWithPick(f.Suffixes, pick); b != nil {
			f.Suffixes = append(f.Suffixes, *b)
		}

	case model.CorruptRemoveModifier:
		total := len(f.Prefixes) + len(f.Suffixes)
		if total == 0 {
			return
		}
		i := pick(total)
		if i < len(f.Prefixes) {
			f.Prefixes = append(f.Prefixes[:i], f.Prefixes[i+1:]...)
		} else {
			i -= len(f.Prefixes)
			f.Suffixes = append(f.Suffixes[:i], f.Suffixes[i+1:]...)
		}

	case model.CorruptTransformUnique:
		unique := data.GetUniqueBase(outcome.UniqueBaseID)
		if unique == nil {
			return
		}
		transformed := unique.Clone()
		transformed.ID = f.ID // the owned item keeps its identity
		transformed.Corrupted = true
		transformed.Quality = f.Quality
		*f = *transformed

	case model.CorruptAddImplicit:
		if outcome.Implicit != nil {
			f.Implicits = append(f.Implicits, *outcome.Implicit)
		}
	}
}
