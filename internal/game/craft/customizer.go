package craft

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/udisondev/exilecraft/internal/data"
	"github.com/udisondev/exilecraft/internal/game/corrupt"
	"github.com/udisondev/exilecraft/internal/game/enchant"
	"github.com/udisondev/exilecraft/internal/game/event"
	"github.com/udisondev/exilecraft/internal/model"
)

// Default quality cost curve for flasks entering the system.
const (
	defaultMaxQuality     = 20
	defaultQualityCost    = 1.0
	defaultQualityScaling = 1.2
)

// Customizer owns the per-flask customization state and runs every
// mutation through it: quality, enchantments, corruption, crafting and
// bench crafting. Currency checks and debits go through the holder
// collaborator; outcomes are published on the bus.
//
// Not safe for concurrent use; serialize calls the way engine updates
// are serialized.
type Customizer struct {
	bus      *event.Bus
	currency model.CurrencyHolder

	customizations map[string]*model.FlaskCustomization
	nowMs          int64
}

// NewCustomizer returns a customizer with no tracked flasks.
func NewCustomizer(bus *event.Bus, currency model.CurrencyHolder) *Customizer {
	return &Customizer{
		bus:            bus,
		currency:       currency,
		customizations: make(map[string]*model.FlaskCustomization),
	}
}

// Advance moves the customizer's clock, used to timestamp history records.
func (c *Customizer) Advance(deltaMs int64) {
	c.nowMs += deltaMs
}

// Track enters a flask into the customization system with the default
// quality cost curve. Tracking an already-tracked flask returns the
// existing state unchanged.
func (c *Customizer) Track(f *model.FlaskData) *model.FlaskCustomization {
	if cust, ok := c.customizations[f.ID]; ok {
		return cust
	}
	cust := &model.FlaskCustomization{
		FlaskID: f.ID,
		Flask:   f,
		Quality: model.QualityState{
			Level:         f.Quality,
			MaxLevel:      defaultMaxQuality,
			BaseCost:      defaultQualityCost,
			ScalingFactor: defaultQualityScaling,
		},
		Investment: model.NewInvestmentLedger(),
	}
	cust.RecomputeValue()
	c.customizations[f.ID] = cust
	return cust
}

// Get returns the customization state, or nil when untracked.
func (c *Customizer) Get(flaskID string) *model.FlaskCustomization {
	return c.customizations[flaskID]
}

// Release drops a flask from the system, returning its final state.
// Called when the flask leaves the player's possession.
func (c *Customizer) Release(flaskID string) *model.FlaskCustomization {
	cust := c.customizations[flaskID]
	delete(c.customizations, flaskID)
	return cust
}

// ImproveQuality raises the flask's quality by up to levels, capped at
// the state's maximum. The whole raise is a single purchase: cost is the
// ceiling of the summed per-level curve, checked and debited up front.
func (c *Customizer) ImproveQuality(flaskID string, levels int32) bool {
	cust := c.customizations[flaskID]
	if cust == nil {
		c.bus.Publish(event.FlaskQualityFailedEvent{FlaskID: flaskID, Reason: event.FailUnknownDefinition})
		return false
	}
	target := cust.Quality.Level + levels
	if target > cust.Quality.MaxLevel {
		target = cust.Quality.MaxLevel
	}
	if levels <= 0 || target <= cust.Quality.Level {
		c.bus.Publish(event.FlaskQualityFailedEvent{FlaskID: flaskID, Reason: event.FailCapacityExceeded})
		return false
	}

	cost := ImproveCost(cust.Quality, target)
	currency := QualityCurrency(cust.Quality)
	if !c.spend(cust, map[string]int64{currency: cost}) {
		c.bus.Publish(event.FlaskQualityFailedEvent{FlaskID: flaskID, Reason: event.FailInsufficientResource})
		return false
	}

	cust.Quality.Level = target
	cust.Flask.Quality = target
	c.record(cust, "quality", true, fmt.Sprintf("level %d", target))
	c.bus.Publish(event.FlaskQualityImprovedEvent{FlaskID: flaskID, NewLevel: target, Cost: cost})
	return true
}

// Enchant attaches an enchantment after the full requirement check.
func (c *Customizer) Enchant(flaskID, enchantmentID string, characterLevel int32) bool {
	cust := c.customizations[flaskID]
	ench := data.GetEnchantment(enchantmentID)
	if cust == nil || ench == nil {
		c.bus.Publish(event.EnchantmentFailedEvent{
			FlaskID: flaskID, EnchantmentID: enchantmentID, Reason: event.FailUnknownDefinition,
		})
		return false
	}
	if reason := enchant.Validate(cust, ench, characterLevel); reason != event.FailNone {
		c.bus.Publish(event.EnchantmentFailedEvent{
			FlaskID: flaskID, EnchantmentID: enchantmentID, Reason: reason,
		})
		return false
	}

	enchant.Attach(cust, ench)
	c.record(cust, "enchant", true, ench.ID)
	c.bus.Publish(event.EnchantmentAddedEvent{FlaskID: flaskID, EnchantmentID: enchantmentID})
	return true
}

// Corrupt runs the one-shot corruption roll with live RNG.
func (c *Customizer) Corrupt(flaskID string) corrupt.Result {
	total := data.CorruptionTotalWeight()
	if total <= 0 {
		return corrupt.Result{}
	}
	return c.CorruptWithRolls(flaskID,
		rand.Int32N(total), rand.Float64(), rand.Float64(), rand.IntN)
}

// CorruptWithRolls is Corrupt with explicit rolls for deterministic
// tests. A destroyed flask leaves the system entirely: its customization
// state and investment ledger are dropped with it.
func (c *Customizer) CorruptWithRolls(flaskID string, outcomeRoll int32, destroyRoll, noChangeRoll float64, pick func(int) int) corrupt.Result {
	cust := c.customizations[flaskID]
	if cust == nil {
		return corrupt.Result{}
	}
	res := corrupt.TryCorruptWithRolls(cust, outcomeRoll, destroyRoll, noChangeRoll, pick)
	if !res.Attempted {
		return res
	}

	switch {
	case res.Destroyed:
		delete(c.customizations, flaskID)
		c.bus.Publish(event.FlaskCorruptionDestroyedEvent{FlaskID: flaskID, OutcomeID: res.OutcomeID})
	case res.NoChange:
		c.record(cust, "corrupt", true, res.OutcomeID+" (no change)")
		c.bus.Publish(event.FlaskCorruptionNoChangeEvent{FlaskID: flaskID, OutcomeID: res.OutcomeID})
	default:
		c.record(cust, "corrupt", true, res.OutcomeID)
		c.bus.Publish(event.FlaskCorruptionAppliedEvent{FlaskID: flaskID, OutcomeID: res.OutcomeID})
	}
	return res
}

// Craft applies a currency-gated crafting operation with live RNG.
func (c *Customizer) Craft(flaskID, operationID string) bool {
	return c.CraftWithRoll(flaskID, operationID, rand.Float64(), rand.IntN, rand.Float64)
}

// CraftWithRoll is Craft with the success roll, pool picker and divine
// value roll supplied explicitly. Currency is debited before the success
// roll; a failed roll keeps the debit and lands in the history.
func (c *Customizer) CraftWithRoll(flaskID, operationID string, roll float64, pick func(int) int, valueRoll func() float64) bool {
	cust := c.customizations[flaskID]
	op := data.GetCraftOperation(operationID)
	if cust == nil || op == nil {
		c.bus.Publish(event.CraftingFailedEvent{
			FlaskID: flaskID, Operation: operationID, Reason: event.FailUnknownDefinition,
		})
		return false
	}
	if !op.AllowsRarity(cust.Flask.Rarity) {
		c.bus.Publish(event.CraftingFailedEvent{
			FlaskID: flaskID, Operation: operationID, Reason: event.FailRarityMismatch,
		})
		return false
	}
	if !c.spend(cust, op.Currencies) {
		c.bus.Publish(event.CraftingFailedEvent{
			FlaskID: flaskID, Operation: operationID, Reason: event.FailInsufficientResource,
		})
		return false
	}

	if roll >= op.SuccessChance {
		c.record(cust, op.ID, false, "failed roll")
		c.bus.Publish(event.CraftingFailedEvent{
			FlaskID: flaskID, Operation: operationID, Reason: event.FailRandomFailure,
		})
		return false
	}

	ApplyTransform(cust.Flask, op, pick, valueRoll)
	c.record(cust, op.ID, true, "")
	c.bus.Publish(event.CraftingSuccessEvent{FlaskID: flaskID, Operation: operationID})
	return true
}

// MasterCraft applies a deterministic bench modifier. One copy of each
// bench mod per flask; the mod occupies a regular affix slot.
func (c *Customizer) MasterCraft(flaskID, benchModID string) bool {
	cust := c.customizations[flaskID]
	bench := data.GetBenchMod(benchModID)
	if cust == nil || bench == nil {
		c.bus.Publish(event.MasterCraftFailedEvent{
			FlaskID: flaskID, BenchModID: benchModID, Reason: event.FailUnknownDefinition,
		})
		return false
	}

	f := cust.Flask
	bundleID := "crafted_" + bench.ID
	for _, b := range append(append([]model.ModifierBundle(nil), f.Prefixes...), f.Suffixes...) {
		if b.ID == bundleID {
			c.bus.Publish(event.MasterCraftFailedEvent{
				FlaskID: flaskID, BenchModID: benchModID, Reason: event.FailConflictingEnchantment,
			})
			return false
		}
	}

	limit := affixLimit(f.Rarity)
	side := &f.Prefixes
	if bench.IsSuffix {
		side = &f.Suffixes
	}
	if len(*side) >= limit {
		c.bus.Publish(event.MasterCraftFailedEvent{
			FlaskID: flaskID, BenchModID: benchModID, Reason: event.FailCapacityExceeded,
		})
		return false
	}

	cost := bench.Cost()
	if !c.spend(cust, map[string]int64{bench.CurrencyType: cost}) {
		c.bus.Publish(event.MasterCraftFailedEvent{
			FlaskID: flaskID, BenchModID: benchModID, Reason: event.FailInsufficientResource,
		})
		return false
	}

	*side = append(*side, model.ModifierBundle{
		ID:        bundleID,
		Name:      bench.Name,
		Tier:      bench.Tier,
		Modifiers: []model.FlaskModifier{bench.Modifier},
	})
	c.record(cust, "bench", true, bench.ID)
	c.bus.Publish(event.MasterCraftAppliedEvent{FlaskID: flaskID, BenchModID: benchModID, Cost: cost})
	return true
}

// spend checks every required currency, debits them all through the
// holder, and only then books the ledger and publishes the debits. The
// holder stays authoritative: if it refuses a consume that its own check
// cleared, nothing is booked or published, so the ledger never records a
// partial transaction.
func (c *Customizer) spend(cust *model.FlaskCustomization, currencies map[string]int64) bool {
	for currency, amount := range currencies {
		if !c.currency.HasRequiredCurrency(currency, amount) {
			return false
		}
	}
	consumed := make(map[string]int64, len(currencies))
	for currency, amount := range currencies {
		if !c.currency.ConsumeCurrency(currency, amount) {
			return false
		}
		consumed[currency] = amount
	}
	for currency, amount := range consumed {
		cust.Investment.Spend(currency, amount)
		c.bus.Publish(event.CurrencyConsumedEvent{
			FlaskID: cust.FlaskID, Currency: currency, Amount: amount,
		})
	}
	return true
}

// record appends a history entry and refreshes the investment estimates.
func (c *Customizer) record(cust *model.FlaskCustomization, operation string, success bool, detail string) {
	cust.History = append(cust.History, model.CraftRecord{
		RecordID:  uuid.NewString(),
		Operation: operation,
		Success:   success,
		TimeMs:    c.nowMs,
		Detail:    detail,
	})
	cust.Investment.OperationsPerformed++
	cust.RecomputeValue()
}
