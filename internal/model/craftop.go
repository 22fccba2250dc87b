package model

// TransformKind is the closed set of crafting-operation transforms.
type TransformKind int8

const (
	TransformUpgradeMagic TransformKind = iota // normal → magic, add one affix
	TransformRerollMagic                       // reroll affixes of a magic flask
	TransformAddModifier                       // add one affix, keep the rest
	TransformUpgradeRare                       // magic → rare, add one affix
	TransformRerollRare                        // reroll all affixes of a rare flask
	TransformDivine                            // reroll numeric values of existing affixes
	TransformAnnul                             // remove one random affix
	TransformScour                             // strip all affixes, rarity → normal
)

// CraftOperation is the immutable definition of a currency-gated crafting
// operation. SuccessChance below 1 is a supported path: currency is spent
// before the roll and a failed roll still lands in the crafting history.
type CraftOperation struct {
	ID             string
	Name           string
	TargetRarities []Rarity
	Currencies     map[string]int64
	SuccessChance  float64
	Transform      TransformKind
	ResultRarity   Rarity // rarity after a successful transform, where it changes
}

// AllowsRarity reports whether the flask's rarity is a valid target.
func (op *CraftOperation) AllowsRarity(r Rarity) bool {
	for _, tr := range op.TargetRarities {
		if tr == r {
			return true
		}
	}
	return false
}

// BenchMod is a master-crafting bench modifier: deterministic, tier-costed.
type BenchMod struct {
	ID           string
	Name         string
	Tier         int32
	IsSuffix     bool
	Modifier     FlaskModifier
	CurrencyType string
}

// Cost is the bench price for the mod's tier: 2^tier × 5.
func (b *BenchMod) Cost() int64 {
	return (int64(1) << b.Tier) * 5
}
