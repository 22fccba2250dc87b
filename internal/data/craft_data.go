package data

import (
	"github.com/udisondev/exilecraft/internal/model"
)

// craftOperationDefs — currency-gated crafting operations. SuccessChance
// is 1.0 across the shipped table; the engine still rolls it, so partial
// chances can ship as data without code changes.
var craftOperationDefs = []model.CraftOperation{
	{
		ID:             "orb_transmutation",
		Name:           "Orb of Transmutation",
		TargetRarities: []model.Rarity{model.RarityNormal},
		Currencies:     map[string]int64{"orb_transmutation": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformUpgradeMagic,
		ResultRarity:   model.RarityMagic,
	},
	{
		ID:             "orb_alteration",
		Name:           "Orb of Alteration",
		TargetRarities: []model.Rarity{model.RarityMagic},
		Currencies:     map[string]int64{"orb_alteration": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformRerollMagic,
		ResultRarity:   model.RarityMagic,
	},
	{
		ID:             "orb_augmentation",
		Name:           "Orb of Augmentation",
		TargetRarities: []model.Rarity{model.RarityMagic},
		Currencies:     map[string]int64{"orb_augmentation": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformAddModifier,
		ResultRarity:   model.RarityMagic,
	},
	{
		ID:             "regal_orb",
		Name:           "Regal Orb",
		TargetRarities: []model.Rarity{model.RarityMagic},
		Currencies:     map[string]int64{"regal_orb": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformUpgradeRare,
		ResultRarity:   model.RarityRare,
	},
	{
		ID:             "chaos_orb",
		Name:           "Chaos Orb",
		TargetRarities: []model.Rarity{model.RarityRare},
		Currencies:     map[string]int64{"chaos_orb": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformRerollRare,
		ResultRarity:   model.RarityRare,
	},
	{
		ID:             "exalted_orb",
		Name:           "Exalted Orb",
		TargetRarities: []model.Rarity{model.RarityRare},
		Currencies:     map[string]int64{"exalted_orb": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformAddModifier,
		ResultRarity:   model.RarityRare,
	},
	{
		ID:             "divine_orb",
		Name:           "Divine Orb",
		TargetRarities: []model.Rarity{model.RarityMagic, model.RarityRare, model.RarityUnique},
		Currencies:     map[string]int64{"divine_orb": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformDivine,
	},
	{
		ID:             "orb_annulment",
		Name:           "Orb of Annulment",
		TargetRarities: []model.Rarity{model.RarityMagic, model.RarityRare},
		Currencies:     map[string]int64{"orb_annulment": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformAnnul,
	},
	{
		ID:             "orb_scouring",
		Name:           "Orb of Scouring",
		TargetRarities: []model.Rarity{model.RarityMagic, model.RarityRare},
		Currencies:     map[string]int64{"orb_scouring": 1},
		SuccessChance:  1.0,
		Transform:      model.TransformScour,
		ResultRarity:   model.RarityNormal,
	},
}

// benchModDefs — master-crafting bench modifiers.
var benchModDefs = []model.BenchMod{
	{
		ID: "bench_extra_charges", Name: "Bench: Maximum Charges", Tier: 1,
		Modifier:     model.FlaskModifier{Kind: model.FlaskModMaxCharges, Value: 5},
		CurrencyType: "crafting_shard",
	},
	{
		ID: "bench_recovery", Name: "Bench: Recovery Amount", Tier: 2,
		Modifier:     model.FlaskModifier{Kind: model.FlaskModRecoveryAmount, Value: 20, IsPercentage: true},
		CurrencyType: "crafting_shard",
	},
	{
		ID: "bench_charge_on_crit", Name: "Bench: Charge on Critical", Tier: 3,
		Modifier:     model.FlaskModifier{Kind: model.FlaskModChargeOnCrit, Value: 1},
		CurrencyType: "crafting_shard",
	},
	{
		ID: "bench_bleed_immunity", Name: "Bench: Bleed Immunity", Tier: 2, IsSuffix: true,
		Modifier:     model.FlaskModifier{Kind: model.FlaskModImmunity, Stat: "bleed"},
		CurrencyType: "crafting_shard",
	},
}

var (
	craftOperationTable map[string]*model.CraftOperation
	benchModTable       map[string]*model.BenchMod
)

// LoadCraftOperations builds the crafting registries.
func LoadCraftOperations() {
	craftOperationTable = make(map[string]*model.CraftOperation, len(craftOperationDefs))
	for i := range craftOperationDefs {
		craftOperationTable[craftOperationDefs[i].ID] = &craftOperationDefs[i]
	}
	benchModTable = make(map[string]*model.BenchMod, len(benchModDefs))
	for i := range benchModDefs {
		benchModTable[benchModDefs[i].ID] = &benchModDefs[i]
	}
}

// GetCraftOperation returns a crafting operation, or nil if unknown.
func GetCraftOperation(id string) *model.CraftOperation {
	if craftOperationTable == nil {
		return nil
	}
	return craftOperationTable[id]
}

// GetBenchMod returns a bench modifier, or nil if unknown.
func GetBenchMod(id string) *model.BenchMod {
	if benchModTable == nil {
		return nil
	}
	return benchModTable[id]
}
