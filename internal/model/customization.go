package model

// Enchantment is a rule-gated, deterministic flask bonus.
type Enchantment struct {
	ID            string
	Name          string
	Effects       []FlaskModifier
	ConflictsWith []string // enchantment IDs, symmetric
	Requirements  EnchantRequirements
}

// EnchantRequirements gate attaching an enchantment.
type EnchantRequirements struct {
	MinLevel   int32
	MinQuality int32
	FlaskTypes []string // empty = any
	BaseTypes  []string // empty = any
}

// AllowsFlaskType reports whether the flask type passes the requirement.
func (r EnchantRequirements) AllowsFlaskType(t FlaskType) bool {
	if len(r.FlaskTypes) == 0 {
		return true
	}
	for _, ft := range r.FlaskTypes {
		if ft == t.String() {
			return true
		}
	}
	return false
}

// AllowsBaseType reports whether the flask base passes the requirement.
func (r EnchantRequirements) AllowsBaseType(base string) bool {
	if len(r.BaseTypes) == 0 {
		return true
	}
	for _, bt := range r.BaseTypes {
		if bt == base {
			return true
		}
	}
	return false
}

// CorruptionEffectKind is what a corruption outcome does to the flask.
type CorruptionEffectKind int8

const (
	CorruptAddModifier CorruptionEffectKind = iota
	CorruptRemoveModifier
	CorruptTransformUnique
	CorruptAddImplicit
)

// CorruptionOutcome is one weighted row of the corruption table. The
// destroy and no-change rolls are independent of the outcome selection.
type CorruptionOutcome struct {
	ID             string
	Name           string
	Weight         int32
	DestroyChance  float64
	NoChangeChance float64
	Effect         CorruptionEffectKind
	Implicit       *FlaskModifier // for CorruptAddImplicit
	UniqueBaseID   string         // for CorruptTransformUnique
}

// QualityState tracks a flask's quality level and cost curve.
type QualityState struct {
	Level         int32
	MaxLevel      int32
	BaseCost      float64
	ScalingFactor float64
	CurrencyType  string
}

// CraftRecord is one entry of a flask's crafting history, success or not.
type CraftRecord struct {
	RecordID  string
	Operation string
	Success   bool
	TimeMs    int64
	Detail    string
}

// InvestmentLedger accumulates per-flask currency spend and a heuristic
// value estimate.
type InvestmentLedger struct {
	CurrencySpent       map[string]int64
	OperationsPerformed int32
	TotalSpent          int64
	ValueEstimate       float64
	ProfitLoss          float64
}

// NewInvestmentLedger returns an empty ledger.
func NewInvestmentLedger() *InvestmentLedger {
	return &InvestmentLedger{CurrencySpent: make(map[string]int64)}
}

// Spend records a currency debit.
func (l *InvestmentLedger) Spend(currency string, amount int64) {
	l.CurrencySpent[currency] += amount
	l.TotalSpent += amount
}

// FlaskCustomization pairs a player-owned flask with its mutable crafting
// state. One per flask; destroyed only explicitly (flask loss, corruption
// destruction).
type FlaskCustomization struct {
	FlaskID           string
	Flask             *FlaskData
	Quality           QualityState
	Enchantments      []Enchantment
	CorruptionApplied []string // outcome IDs, in application order
	History           []CraftRecord
	Investment        *InvestmentLedger
}

// HasEnchantment reports whether the enchantment is already attached.
func (c *FlaskCustomization) HasEnchantment(id string) bool {
	for _, e := range c.Enchantments {
		if e.ID == id {
			return true
		}
	}
	return false
}

// RecomputeValue refreshes the ledger's heuristic value estimate:
// base 1 + 0.5 per quality level + 10 per enchantment + 5 per affix,
// scaled by the rarity multiplier.
func (c *FlaskCustomization) RecomputeValue() {
	affixes := len(c.Flask.Prefixes) + len(c.Flask.Suffixes)
	v := 1 + 0.5*float64(c.Quality.Level) +
		10*float64(len(c.Enchantments)) +
		5*float64(affixes)
	v *= c.Flask.Rarity.ValueMultiplier()
	c.Investment.ValueEstimate = v
	c.Investment.ProfitLoss = v - float64(c.Investment.TotalSpent)
}
