package enchant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/exilecraft/internal/data"
	"github.com/udisondev/exilecraft/internal/game/event"
	"github.com/udisondev/exilecraft/internal/model"
)

func makeCustomization(t *testing.T, baseID string) *model.FlaskCustomization {
	t.Helper()
	data.LoadAll()
	f := data.NewFlaskFromBase(baseID)
	require.NotNil(t, f)
	return &model.FlaskCustomization{
		FlaskID:    "test-flask",
		Flask:      f,
		Quality:    model.QualityState{MaxLevel: 20, BaseCost: 1, ScalingFactor: 1.2},
		Investment: model.NewInvestmentLedger(),
	}
}

func TestValidate_Requirements(t *testing.T) {
	tests := []struct {
		name    string
		baseID  string
		enchID  string
		level   int32
		quality int32
		want    event.FailureReason
	}{
		{"level too low", "quicksilver_flask", "enchant_quicksilver_steady", 5, 0, event.FailInsufficientResource},
		{"base type mismatch", "granite_flask", "enchant_quicksilver_steady", 40, 0, event.FailRarityMismatch},
		{"quality too low", "quicksilver_flask", "enchant_increased_duration", 40, 5, event.FailInsufficientResource},
		{"flask type mismatch", "grand_life_flask", "enchant_increased_duration", 40, 15, event.FailRarityMismatch},
		{"ok", "quicksilver_flask", "enchant_quicksilver_steady", 40, 0, event.FailNone},
		{"ok utility duration", "quicksilver_flask", "enchant_increased_duration", 40, 15, event.FailNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cust := makeCustomization(t, tt.baseID)
			cust.Quality.Level = tt.quality
			ench := data.GetEnchantment(tt.enchID)
			require.NotNil(t, ench)
			assert.Equal(t, tt.want, Validate(cust, ench, tt.level))
		})
	}
}

func TestValidate_ConflictIsSymmetric(t *testing.T) {
	cust := makeCustomization(t, "quicksilver_flask")
	cust.Quality.Level = 15

	effect := data.GetEnchantment("enchant_increased_effect")
	duration := data.GetEnchantment("enchant_increased_duration")
	require.NotNil(t, effect)
	require.NotNil(t, duration)

	require.Equal(t, event.FailNone, Validate(cust, duration, 40))
	Attach(cust, duration)

	// enchant_increased_effect conflicts with the attached duration enchant.
	assert.Equal(t, event.FailConflictingEnchantment, Validate(cust, effect, 40))

	// One-sided declaration still blocks in both directions.
	oneSided := &model.Enchantment{ID: "enchant_one_sided"}
	cust2 := makeCustomization(t, "quicksilver_flask")
	cust2.Quality.Level = 15
	Attach(cust2, oneSided)
	blocked := &model.Enchantment{ID: "enchant_blocker", ConflictsWith: []string{"enchant_one_sided"}}
	assert.Equal(t, event.FailConflictingEnchantment, Validate(cust2, blocked, 40))
}

func TestValidate_DuplicateAndCorrupted(t *testing.T) {
	cust := makeCustomization(t, "quicksilver_flask")
	ench := data.GetEnchantment("enchant_quicksilver_steady")
	require.NotNil(t, ench)

	Attach(cust, ench)
	assert.Equal(t, event.FailConflictingEnchantment, Validate(cust, ench, 40))

	cust2 := makeCustomization(t, "quicksilver_flask")
	cust2.Flask.Corrupted = true
	assert.Equal(t, event.FailConflictingEnchantment, Validate(cust2, ench, 40))
}

func TestAttach_AppliesStatLines(t *testing.T) {
	cust := makeCustomization(t, "quicksilver_flask")
	ench := data.GetEnchantment("enchant_quicksilver_steady")
	require.NotNil(t, ench)

	Attach(cust, ench)

	assert.True(t, cust.HasEnchantment("enchant_quicksilver_steady"))
	require.Len(t, cust.Flask.EnchantMods, 1)
	assert.Equal(t, model.FlaskModEffect, cust.Flask.EnchantMods[0].Kind)
	assert.Equal(t, "speed_movement", cust.Flask.EnchantMods[0].Stat)
}
