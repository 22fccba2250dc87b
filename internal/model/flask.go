package model

// FlaskType determines what a flask recovers and how quality scales it.
type FlaskType int8

const (
	FlaskLife FlaskType = iota
	FlaskMana
	FlaskHybrid
	FlaskUtility
)

func (t FlaskType) String() string {
	switch t {
	case FlaskLife:
		return "life"
	case FlaskMana:
		return "mana"
	case FlaskHybrid:
		return "hybrid"
	case FlaskUtility:
		return "utility"
	default:
		return "unknown"
	}
}

// Rarity of a flask. Gates crafting operations and scales value estimates.
type Rarity int8

const (
	RarityNormal Rarity = iota
	RarityMagic
	RarityRare
	RarityUnique
)

func (r Rarity) String() string {
	switch r {
	case RarityNormal:
		return "normal"
	case RarityMagic:
		return "magic"
	case RarityRare:
		return "rare"
	case RarityUnique:
		return "unique"
	default:
		return "unknown"
	}
}

// ValueMultiplier is the rarity factor used by investment value estimates.
func (r Rarity) ValueMultiplier() float64 {
	switch r {
	case RarityMagic:
		return 2
	case RarityRare:
		return 5
	case RarityUnique:
		return 10
	default:
		return 1
	}
}

// FlaskModKind is the closed set of flask modifier behaviors.
type FlaskModKind int8

const (
	FlaskModRecoveryAmount FlaskModKind = iota
	FlaskModRecoverySpeed
	FlaskModDuration
	FlaskModCharges // charge recovery rate
	FlaskModMaxCharges
	FlaskModChargeOnCrit // bonus charges gained on critical strike
	FlaskModEffect       // generic stat while active
	FlaskModImmunity     // ailment immunity while active
)

// FlaskModifier is one rolled line inside a prefix or suffix bundle.
type FlaskModifier struct {
	Kind         FlaskModKind
	Stat         string // for FlaskModEffect/FlaskModImmunity
	Value        float64
	IsPercentage bool
	Condition    Condition
}

// ModifierBundle is a named prefix or suffix holding one or more modifiers.
type ModifierBundle struct {
	ID        string
	Name      string
	Tier      int32
	Modifiers []FlaskModifier
}

// FlaskCharges is a flask's internal fuel pool. Independent from the
// entity-level power/frenzy/endurance charge system.
type FlaskCharges struct {
	Current        int32
	Maximum        int32
	UsedPerUse     int32
	GainOnKill     int32
	GainOnCrit     int32
	ChargeRecovery float64 // charges restored per recovery tick
}

// FlaskEffectDef is a utility-flask buff applied on use.
type FlaskEffectDef struct {
	ID         string
	Stat       string
	Magnitude  float64
	DurationMs int64
	Stackable  bool
	Tags       []string
}

// FlaskRequirements gate equipping a flask.
type FlaskRequirements struct {
	Level        int32
	Strength     int32
	Dexterity    int32
	Intelligence int32
}

// FlaskData is a flask template. The customization engines mutate it; the
// flask engine reads it. RecoveryAmount/RecoveryMs apply to life/mana/hybrid
// flasks, Effects to utility flasks.
type FlaskData struct {
	ID             string
	Name           string
	BaseType       string
	Type           FlaskType
	RecoveryAmount float64
	RecoveryMs     int64
	Charges        FlaskCharges
	Effects        []FlaskEffectDef
	Prefixes       []ModifierBundle
	Suffixes       []ModifierBundle
	Requirements   FlaskRequirements
	Rarity         Rarity
	Quality        int32 // 0..20
	Corrupted      bool
	// Implicits added by corruption outcomes.
	Implicits []FlaskModifier
	// EnchantMods are the stat lines applied by attached enchantments.
	EnchantMods []FlaskModifier
}

// Clone returns a deep copy. Equip seeds an instance from a clone so that
// unequip can hand the caller back an unmutated template.
func (f *FlaskData) Clone() *FlaskData {
	c := *f
	c.Effects = append([]FlaskEffectDef(nil), f.Effects...)
	for i, e := range c.Effects {
		c.Effects[i].Tags = append([]string(nil), e.Tags...)
	}
	c.Prefixes = cloneBundles(f.Prefixes)
	c.Suffixes = cloneBundles(f.Suffixes)
	c.Implicits = append([]FlaskModifier(nil), f.Implicits...)
	c.EnchantMods = append([]FlaskModifier(nil), f.EnchantMods...)
	return &c
}

func cloneBundles(in []ModifierBundle) []ModifierBundle {
	out := append([]ModifierBundle(nil), in...)
	for i, b := range out {
		out[i].Modifiers = append([]FlaskModifier(nil), b.Modifiers...)
	}
	return out
}

// AllModifiers yields every prefix and suffix modifier line.
func (f *FlaskData) AllModifiers() []FlaskModifier {
	var mods []FlaskModifier
	for _, b := range f.Prefixes {
		mods = append(mods, b.Modifiers...)
	}
	for _, b := range f.Suffixes {
		mods = append(mods, b.Modifiers...)
	}
	return mods
}

// ActiveFlaskEffect is a running utility buff, tracked by absolute deadline
// and swept on tick.
type ActiveFlaskEffect struct {
	EffectID    string
	StartTimeMs int64
	EndTimeMs   int64
	Magnitude   float64
	Source      string // flask instance ID
	Tags        []string
}

// Expired reports whether the effect's deadline has passed.
func (e *ActiveFlaskEffect) Expired(nowMs int64) bool {
	return nowMs >= e.EndTimeMs
}

// FlaskInstance is an equipped flask occupying a slot.
type FlaskInstance struct {
	InstanceID     string
	Flask          *FlaskData
	CurrentCharges int32
	IsActive       bool
	ActiveEffects  []*ActiveFlaskEffect
	CooldownEndMs  int64
	LastUsedMs     int64
}
