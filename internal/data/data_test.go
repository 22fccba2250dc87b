package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/exilecraft/internal/model"
)

func TestLoadAll_Registries(t *testing.T) {
	LoadAll()

	require.NotNil(t, GetChargeType("power"))
	assert.Equal(t, int32(3), GetChargeType("power").MaxCharges)
	assert.Nil(t, GetChargeType("missing"))

	require.NotNil(t, GetChargeSource("power_on_crit"))
	require.NotNil(t, GetConsumption("discharge_power"))
	require.NotNil(t, GetEnchantment("enchant_increased_effect"))
	require.NotNil(t, GetCraftOperation("chaos_orb"))
	require.NotNil(t, GetBenchMod("bench_recovery"))
	assert.Len(t, AllChargeTypes(), 4)
}

func TestNewFlaskFromBase_ReturnsIndependentCopy(t *testing.T) {
	LoadAll()

	a := NewFlaskFromBase("grand_life_flask")
	b := NewFlaskFromBase("grand_life_flask")
	require.NotNil(t, a)
	require.NotNil(t, b)

	a.Charges.Current = 0
	a.Quality = 20
	assert.Equal(t, int32(30), b.Charges.Current)
	assert.Equal(t, int32(0), b.Quality)

	assert.Nil(t, NewFlaskFromBase("missing_base"))
}

func TestPickCorruptionOutcome(t *testing.T) {
	LoadAll()

	total := CorruptionTotalWeight()
	require.Equal(t, int32(100), total)

	// Rolls map onto rows in table order.
	assert.Equal(t, "corrupt_add_modifier", PickCorruptionOutcome(0).ID)
	assert.Equal(t, "corrupt_add_modifier", PickCorruptionOutcome(29).ID)
	assert.Equal(t, "corrupt_remove_modifier", PickCorruptionOutcome(30).ID)
	assert.Equal(t, "corrupt_transform_unique", PickCorruptionOutcome(50).ID)
	assert.Equal(t, "corrupt_add_implicit", PickCorruptionOutcome(99).ID)
	assert.Nil(t, PickCorruptionOutcome(total))
	assert.Nil(t, PickCorruptionOutcome(-1))
}

func TestRandomPrefix_ExcludesExisting(t *testing.T) {
	LoadAll()

	var exclude []model.ModifierBundle
	for i := 0; i < len(prefixPool)-1; i++ {
		exclude = append(exclude, prefixPool[i])
	}

	// Only one candidate remains, any pick function must return it.
	got := RandomPrefixWithPick(exclude, func(n int) int {
		require.Equal(t, 1, n)
		return 0
	})
	require.NotNil(t, got)
	assert.Equal(t, prefixPool[len(prefixPool)-1].ID, got.ID)

	// Fully excluded pool yields nil.
	exclude = append(exclude, prefixPool[len(prefixPool)-1])
	assert.Nil(t, RandomPrefixWithPick(exclude, func(int) int { return 0 }))
}

func TestLoadOverrides(t *testing.T) {
	LoadAll()

	src := `
charge_types:
  - id: power
    name: Power Charge
    category: power
    max_charges: 5
    duration_ms: 12000
    decay_rate: 1
    effects:
      - stat: critical_chance
        value: 50
        kind: flat
        per_charge: true
flask_bases:
  - id: colossal_life_flask
    name: Colossal Life Flask
    base_type: life
    type: life
    recovery_amount: 600
    max_charges: 40
    used_per_use: 10
    gain_on_kill: 1
    charge_recovery: 0.4
    required_level: 40
`
	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	require.NoError(t, LoadOverrides(path))

	ct := GetChargeType("power")
	require.NotNil(t, ct)
	assert.Equal(t, int32(5), ct.MaxCharges)
	assert.Equal(t, int64(12_000), ct.DurationMs)

	fb := NewFlaskFromBase("colossal_life_flask")
	require.NotNil(t, fb)
	assert.Equal(t, int32(40), fb.Charges.Maximum)

	// Restore built-ins for other tests.
	LoadAll()
}

func TestLoadOverrides_Invalid(t *testing.T) {
	LoadAll()

	tests := []struct {
		name string
		src  string
	}{
		{"bad category", "charge_types:\n  - id: x\n    category: arcane\n    max_charges: 1\n"},
		{"zero max charges", "charge_types:\n  - id: x\n    category: power\n    max_charges: 0\n"},
		{"bad flask type", "flask_bases:\n  - id: x\n    type: potion\n    max_charges: 10\n    used_per_use: 5\n"},
		{"use exceeds max", "flask_bases:\n  - id: x\n    type: life\n    max_charges: 10\n    used_per_use: 11\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.src), 0o644))
			assert.Error(t, LoadOverrides(path))
		})
	}
}

func TestBenchModCost(t *testing.T) {
	LoadAll()

	// 2^tier × 5
	assert.Equal(t, int64(10), GetBenchMod("bench_extra_charges").Cost()) // tier 1
	assert.Equal(t, int64(20), GetBenchMod("bench_recovery").Cost())      // tier 2
	assert.Equal(t, int64(40), GetBenchMod("bench_charge_on_crit").Cost())
}
