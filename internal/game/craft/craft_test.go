package craft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/exilecraft/internal/data"
	"github.com/udisondev/exilecraft/internal/game/event"
	"github.com/udisondev/exilecraft/internal/model"
)

// testWallet implements model.CurrencyHolder over a plain balance map.
type testWallet struct {
	balances map[string]int64
}

func newTestWallet(balances map[string]int64) *testWallet {
	if balances == nil {
		balances = make(map[string]int64)
	}
	return &testWallet{balances: balances}
}

func (w *testWallet) HasRequiredCurrency(currency string, amount int64) bool {
	return w.balances[currency] >= amount
}

func (w *testWallet) ConsumeCurrency(currency string, amount int64) bool {
	if w.balances[currency] < amount {
		return false
	}
	w.balances[currency] -= amount
	return true
}

func newTestCustomizer(t *testing.T, balances map[string]int64) (*Customizer, *testWallet, *event.Bus) {
	t.Helper()
	data.LoadAll()
	bus := event.NewBus()
	wallet := newTestWallet(balances)
	return NewCustomizer(bus, wallet), wallet, bus
}

func trackedFlask(t *testing.T, c *Customizer, baseID string) *model.FlaskData {
	t.Helper()
	f := data.NewFlaskFromBase(baseID)
	require.NotNil(t, f)
	c.Track(f)
	return f
}

// pickZero always selects the first candidate.
func pickZero(int) int { return 0 }

func TestImproveCost_GeometricCurve(t *testing.T) {
	q := model.QualityState{Level: 0, MaxLevel: 20, BaseCost: 1, ScalingFactor: 1.2}

	// 1 + 1.2 + 1.44 = 3.64, rounded up.
	assert.Equal(t, int64(4), ImproveCost(q, 3))
	assert.Equal(t, int64(1), ImproveCost(q, 1))
	assert.Equal(t, int64(0), ImproveCost(q, 0))

	q.Level = 3
	assert.Equal(t, int64(0), ImproveCost(q, 3))
	// 1.2^3 + 1.2^4 + 1.2^5 = 6.29...
	assert.Equal(t, int64(7), ImproveCost(q, 6))
}

func TestImproveQuality_DebitsAndApplies(t *testing.T) {
	c, wallet, bus := newTestCustomizer(t, map[string]int64{DefaultQualityCurrency: 10})
	f := trackedFlask(t, c, "small_life_flask")

	var improved []event.FlaskQualityImprovedEvent
	bus.Subscribe(event.FlaskQualityImproved, func(e event.Event) {
		improved = append(improved, e.(event.FlaskQualityImprovedEvent))
	})

	require.True(t, c.ImproveQuality(f.ID, 3))

	cust := c.Get(f.ID)
	assert.Equal(t, int32(3), cust.Quality.Level)
	assert.Equal(t, int32(3), f.Quality)
	assert.Equal(t, int64(6), wallet.balances[DefaultQualityCurrency])
	assert.Equal(t, int64(4), cust.Investment.TotalSpent)
	require.Len(t, improved, 1)
	assert.Equal(t, int64(4), improved[0].Cost)
	assert.Len(t, cust.History, 1)
	assert.True(t, cust.History[0].Success)
}

func TestImproveQuality_InsufficientCurrency(t *testing.T) {
	c, wallet, bus := newTestCustomizer(t, map[string]int64{DefaultQualityCurrency: 2})
	f := trackedFlask(t, c, "small_life_flask")

	var failed []event.FlaskQualityFailedEvent
	bus.Subscribe(event.FlaskQualityFailed, func(e event.Event) {
		failed = append(failed, e.(event.FlaskQualityFailedEvent))
	})

	// 0→3 costs 4, wallet holds 2.
	assert.False(t, c.ImproveQuality(f.ID, 3))

	cust := c.Get(f.ID)
	assert.Equal(t, int32(0), cust.Quality.Level)
	assert.Equal(t, int64(2), wallet.balances[DefaultQualityCurrency])
	assert.Empty(t, cust.History)
	require.Len(t, failed, 1)
	assert.Equal(t, event.FailInsufficientResource, failed[0].Reason)
}

func TestImproveQuality_AtMaximum(t *testing.T) {
	c, _, bus := newTestCustomizer(t, map[string]int64{DefaultQualityCurrency: 1000})
	f := trackedFlask(t, c, "small_life_flask")
	cust := c.Get(f.ID)
	cust.Quality.Level = cust.Quality.MaxLevel

	var failed []event.FlaskQualityFailedEvent
	bus.Subscribe(event.FlaskQualityFailed, func(e event.Event) {
		failed = append(failed, e.(event.FlaskQualityFailedEvent))
	})

	assert.False(t, c.ImproveQuality(f.ID, 1))
	require.Len(t, failed, 1)
	assert.Equal(t, event.FailCapacityExceeded, failed[0].Reason)
}

func TestImproveQuality_ClampsAtMaximum(t *testing.T) {
	c, _, _ := newTestCustomizer(t, map[string]int64{DefaultQualityCurrency: 1 << 30})
	f := trackedFlask(t, c, "small_life_flask")

	require.True(t, c.ImproveQuality(f.ID, 99))
	assert.Equal(t, int32(20), c.Get(f.ID).Quality.Level)
	assert.Equal(t, int32(20), f.Quality)
}

func TestEnchant_AppliesAndRejectsUnknown(t *testing.T) {
	c, _, bus := newTestCustomizer(t, nil)
	f := trackedFlask(t, c, "quicksilver_flask")

	var added, failed int
	var reason event.FailureReason
	bus.Subscribe(event.EnchantmentAdded, func(event.Event) { added++ })
	bus.Subscribe(event.EnchantmentFailed, func(e event.Event) {
		failed++
		reason = e.(event.EnchantmentFailedEvent).Reason
	})

	require.True(t, c.Enchant(f.ID, "enchant_quicksilver_steady", 12))
	assert.Len(t, f.EnchantMods, 1)
	assert.Len(t, c.Get(f.ID).History, 1)
	assert.Equal(t, 1, added)

	assert.False(t, c.Enchant(f.ID, "no_such_enchant", 12))
	require.Equal(t, 1, failed)
	assert.Equal(t, event.FailUnknownDefinition, reason)
}

func TestEnchant_ValidationFailurePublishesReason(t *testing.T) {
	c, _, bus := newTestCustomizer(t, nil)
	f := trackedFlask(t, c, "quicksilver_flask")

	var reasons []event.FailureReason
	bus.Subscribe(event.EnchantmentFailed, func(e event.Event) {
		reasons = append(reasons, e.(event.EnchantmentFailedEvent).Reason)
	})

	// Character below the level requirement.
	assert.False(t, c.Enchant(f.ID, "enchant_quicksilver_steady", 5))
	require.Len(t, reasons, 1)
	assert.Equal(t, event.FailInsufficientResource, reasons[0])
	assert.Empty(t, f.EnchantMods)
}

func TestCraft_UpgradeMagic(t *testing.T) {
	c, wallet, bus := newTestCustomizer(t, map[string]int64{"orb_transmutation": 2})
	f := trackedFlask(t, c, "small_life_flask")

	var success []event.CraftingSuccessEvent
	var consumed []event.CurrencyConsumedEvent
	bus.Subscribe(event.CraftingSuccess, func(e event.Event) {
		success = append(success, e.(event.CraftingSuccessEvent))
	})
	bus.Subscribe(event.CurrencyConsumed, func(e event.Event) {
		consumed = append(consumed, e.(event.CurrencyConsumedEvent))
	})

	require.True(t, c.CraftWithRoll(f.ID, "orb_transmutation", 0, pickZero, nil))

	assert.Equal(t, model.RarityMagic, f.Rarity)
	assert.Len(t, f.Prefixes, 1)
	assert.Equal(t, int64(1), wallet.balances["orb_transmutation"])
	require.Len(t, success, 1)
	require.Len(t, consumed, 1)
	assert.Equal(t, int64(1), consumed[0].Amount)

	cust := c.Get(f.ID)
	require.Len(t, cust.History, 1)
	assert.Equal(t, "orb_transmutation", cust.History[0].Operation)
	assert.True(t, cust.History[0].Success)
	assert.NotEmpty(t, cust.History[0].RecordID)
	// Value estimate reflects the new rarity and affix.
	assert.Equal(t, 2*(1+5.0), cust.Investment.ValueEstimate)
}

func TestCraft_RarityMismatchSpendsNothing(t *testing.T) {
	c, wallet, bus := newTestCustomizer(t, map[string]int64{"chaos_orb": 1})
	f := trackedFlask(t, c, "small_life_flask")

	var reasons []event.FailureReason
	bus.Subscribe(event.CraftingFailed, func(e event.Event) {
		reasons = append(reasons, e.(event.CraftingFailedEvent).Reason)
	})

	assert.False(t, c.CraftWithRoll(f.ID, "chaos_orb", 0, pickZero, nil))
	assert.Equal(t, int64(1), wallet.balances["chaos_orb"])
	assert.Empty(t, c.Get(f.ID).History)
	require.Len(t, reasons, 1)
	assert.Equal(t, event.FailRarityMismatch, reasons[0])
}

func TestCraft_FailedRollStillSpendsCurrency(t *testing.T) {
	c, wallet, bus := newTestCustomizer(t, map[string]int64{"risky_orb": 3})
	f := trackedFlask(t, c, "small_life_flask")
	f.Rarity = model.RarityRare

	data.SetTestCraftOperation(model.CraftOperation{
		ID:             "risky_orb",
		Name:           "Risky Orb",
		TargetRarities: []model.Rarity{model.RarityRare},
		Currencies:     map[string]int64{"risky_orb": 1},
		SuccessChance:  0.5,
		Transform:      model.TransformAddModifier,
	})

	var reasons []event.FailureReason
	bus.Subscribe(event.CraftingFailed, func(e event.Event) {
		reasons = append(reasons, e.(event.CraftingFailedEvent).Reason)
	})

	// Roll above the chance: the orb is gone, nothing was added, and the
	// attempt is on record.
	assert.False(t, c.CraftWithRoll(f.ID, "risky_orb", 0.9, pickZero, nil))
	assert.Equal(t, int64(2), wallet.balances["risky_orb"])
	assert.Empty(t, f.Prefixes)
	assert.Empty(t, f.Suffixes)

	cust := c.Get(f.ID)
	require.Len(t, cust.History, 1)
	assert.False(t, cust.History[0].Success)
	require.Len(t, reasons, 1)
	assert.Equal(t, event.FailRandomFailure, reasons[0])

	// A roll under the chance lands normally.
	require.True(t, c.CraftWithRoll(f.ID, "risky_orb", 0.3, pickZero, nil))
	assert.Equal(t, int64(1), wallet.balances["risky_orb"])
	assert.Len(t, f.Prefixes, 1)
	require.Len(t, cust.History, 2)
	assert.True(t, cust.History[1].Success)
}

// refusingWallet reports funds but refuses every debit, the way a holder
// racing another spender would.
type refusingWallet struct{}

func (refusingWallet) HasRequiredCurrency(string, int64) bool { return true }

func (refusingWallet) ConsumeCurrency(string, int64) bool { return false }

func TestCraft_HolderRefusalBooksNothing(t *testing.T) {
	data.LoadAll()
	bus := event.NewBus()
	c := NewCustomizer(bus, refusingWallet{})

	f := data.NewFlaskFromBase("small_life_flask")
	require.NotNil(t, f)
	c.Track(f)
	f.Rarity = model.RarityRare

	data.SetTestCraftOperation(model.CraftOperation{
		ID:             "dual_orb",
		Name:           "Dual Orb",
		TargetRarities: []model.Rarity{model.RarityRare},
		Currencies:     map[string]int64{"orb_a": 1, "orb_b": 2},
		SuccessChance:  1.0,
		Transform:      model.TransformAddModifier,
	})

	var consumed int
	var reasons []event.FailureReason
	bus.Subscribe(event.CurrencyConsumed, func(event.Event) { consumed++ })
	bus.Subscribe(event.CraftingFailed, func(e event.Event) {
		reasons = append(reasons, e.(event.CraftingFailedEvent).Reason)
	})

	assert.False(t, c.CraftWithRoll(f.ID, "dual_orb", 0, pickZero, nil))

	// The holder reneged mid-transaction: the ledger and the bus saw none
	// of it.
	cust := c.Get(f.ID)
	assert.Zero(t, cust.Investment.TotalSpent)
	assert.Empty(t, cust.Investment.CurrencySpent)
	assert.Zero(t, consumed)
	assert.Empty(t, f.Prefixes)
	require.Len(t, reasons, 1)
	assert.Equal(t, event.FailInsufficientResource, reasons[0])
}

func TestCraft_DivineRerollsValues(t *testing.T) {
	c, _, _ := newTestCustomizer(t, map[string]int64{"divine_orb": 1})
	f := trackedFlask(t, c, "small_life_flask")
	f.Rarity = model.RarityMagic
	f.Prefixes = []model.ModifierBundle{{
		ID: "prefix_bountiful",
		Modifiers: []model.FlaskModifier{
			{Kind: model.FlaskModCharges, Value: 25, IsPercentage: true},
		},
	}}

	highRoll := func() float64 { return 1.0 }
	require.True(t, c.CraftWithRoll(f.ID, "divine_orb", 0, pickZero, highRoll))
	assert.InDelta(t, 30.0, f.Prefixes[0].Modifiers[0].Value, 1e-9)
}

func TestCraft_AnnulAndScour(t *testing.T) {
	c, _, _ := newTestCustomizer(t, map[string]int64{
		"orb_annulment": 1,
		"orb_scouring":  1,
	})
	f := trackedFlask(t, c, "small_life_flask")
	f.Rarity = model.RarityRare
	f.Prefixes = []model.ModifierBundle{{ID: "prefix_ample"}, {ID: "prefix_catalysed"}}
	f.Suffixes = []model.ModifierBundle{{ID: "suffix_heat"}}

	// pick 0 removes the first prefix.
	require.True(t, c.CraftWithRoll(f.ID, "orb_annulment", 0, pickZero, nil))
	require.Len(t, f.Prefixes, 1)
	assert.Equal(t, "prefix_catalysed", f.Prefixes[0].ID)
	assert.Len(t, f.Suffixes, 1)

	require.True(t, c.CraftWithRoll(f.ID, "orb_scouring", 0, pickZero, nil))
	assert.Equal(t, model.RarityNormal, f.Rarity)
	assert.Empty(t, f.Prefixes)
	assert.Empty(t, f.Suffixes)
}

func TestCraft_RerollRareFillsSlots(t *testing.T) {
	c, _, _ := newTestCustomizer(t, map[string]int64{"chaos_orb": 1})
	f := trackedFlask(t, c, "small_life_flask")
	f.Rarity = model.RarityRare
	f.Prefixes = []model.ModifierBundle{{ID: "prefix_ample"}}

	require.True(t, c.CraftWithRoll(f.ID, "chaos_orb", 0, pickZero, nil))
	// 3 + pick(2)=0 fresh affixes; the old roll was wiped first, so the
	// first new prefix is the pool's first bundle again.
	assert.Equal(t, 3, len(f.Prefixes)+len(f.Suffixes))
	require.NotEmpty(t, f.Prefixes)
	assert.Equal(t, "prefix_bountiful", f.Prefixes[0].ID)
}

func TestMasterCraft_DeterministicAndTierCosted(t *testing.T) {
	c, wallet, bus := newTestCustomizer(t, map[string]int64{"crafting_shard": 40})
	f := trackedFlask(t, c, "small_life_flask")
	f.Rarity = model.RarityMagic

	var applied []event.MasterCraftAppliedEvent
	var failed []event.MasterCraftFailedEvent
	bus.Subscribe(event.MasterCraftApplied, func(e event.Event) {
		applied = append(applied, e.(event.MasterCraftAppliedEvent))
	})
	bus.Subscribe(event.MasterCraftFailed, func(e event.Event) {
		failed = append(failed, e.(event.MasterCraftFailedEvent))
	})

	// Tier 1 prefix: 2^1 × 5 = 10.
	require.True(t, c.MasterCraft(f.ID, "bench_extra_charges"))
	require.Len(t, f.Prefixes, 1)
	assert.Equal(t, "crafted_bench_extra_charges", f.Prefixes[0].ID)
	assert.Equal(t, int64(30), wallet.balances["crafting_shard"])
	require.Len(t, applied, 1)
	assert.Equal(t, int64(10), applied[0].Cost)

	// Same mod twice.
	assert.False(t, c.MasterCraft(f.ID, "bench_extra_charges"))
	require.Len(t, failed, 1)
	assert.Equal(t, event.FailConflictingEnchantment, failed[0].Reason)

	// Prefix slot is full on a magic flask.
	assert.False(t, c.MasterCraft(f.ID, "bench_recovery"))
	require.Len(t, failed, 2)
	assert.Equal(t, event.FailCapacityExceeded, failed[1].Reason)

	// Suffix side is still open; tier 2 costs 20.
	require.True(t, c.MasterCraft(f.ID, "bench_bleed_immunity"))
	require.Len(t, f.Suffixes, 1)
	assert.Equal(t, int64(10), wallet.balances["crafting_shard"])
}

func TestCorrupt_DestroyRemovesTracking(t *testing.T) {
	c, _, bus := newTestCustomizer(t, map[string]int64{DefaultQualityCurrency: 10})
	f := trackedFlask(t, c, "small_life_flask")
	require.True(t, c.ImproveQuality(f.ID, 3))

	var destroyed []event.FlaskCorruptionDestroyedEvent
	bus.Subscribe(event.FlaskCorruptionDestroyed, func(e event.Event) {
		destroyed = append(destroyed, e.(event.FlaskCorruptionDestroyedEvent))
	})

	// Outcome roll 0 selects corrupt_add_modifier (destroyChance 0.25);
	// a destroy roll under that threshold deletes the flask's state.
	res := c.CorruptWithRolls(f.ID, 0, 0.1, 0.9, pickZero)
	require.True(t, res.Attempted)
	assert.True(t, res.Destroyed)

	assert.Nil(t, c.Get(f.ID))
	require.Len(t, destroyed, 1)
	assert.Equal(t, "corrupt_add_modifier", destroyed[0].OutcomeID)
	// The outcome's normal effect was not applied on the way out.
	assert.Empty(t, f.Prefixes)
	assert.False(t, f.Corrupted)
}

func TestCorrupt_AppliedKeepsTracking(t *testing.T) {
	c, _, bus := newTestCustomizer(t, nil)
	f := trackedFlask(t, c, "small_life_flask")

	var applied []event.FlaskCorruptionAppliedEvent
	bus.Subscribe(event.FlaskCorruptionApplied, func(e event.Event) {
		applied = append(applied, e.(event.FlaskCorruptionAppliedEvent))
	})

	// Roll 60 selects corrupt_add_implicit; survive both follow-up rolls.
	res := c.CorruptWithRolls(f.ID, 60, 0.9, 0.9, pickZero)
	require.True(t, res.Attempted)
	assert.False(t, res.Destroyed)
	assert.False(t, res.NoChange)

	assert.True(t, f.Corrupted)
	require.Len(t, f.Implicits, 1)
	cust := c.Get(f.ID)
	require.NotNil(t, cust)
	require.Len(t, cust.History, 1)
	require.Len(t, applied, 1)
	assert.Equal(t, "corrupt_add_implicit", applied[0].OutcomeID)

	// One corruption per flask.
	res = c.CorruptWithRolls(f.ID, 60, 0.9, 0.9, pickZero)
	assert.False(t, res.Attempted)
	assert.Len(t, cust.History, 1)
}

func TestAdvance_TimestampsHistory(t *testing.T) {
	c, _, _ := newTestCustomizer(t, map[string]int64{DefaultQualityCurrency: 10})
	f := trackedFlask(t, c, "small_life_flask")

	c.Advance(2500)
	require.True(t, c.ImproveQuality(f.ID, 1))
	assert.Equal(t, int64(2500), c.Get(f.ID).History[0].TimeMs)
}
