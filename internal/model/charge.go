// Package model contains the value types shared by the charge, flask and
// crafting engines: charge definitions and per-entity charge instances,
// flask templates and equipped flask state, and the customization record
// that the crafting engines mutate.
package model

// ChargeCategory groups charge types by their gameplay role.
type ChargeCategory int8

const (
	CategoryPower ChargeCategory = iota
	CategoryFrenzy
	CategoryEndurance
	CategorySpirit
	CategoryFlask
)

func (c ChargeCategory) String() string {
	switch c {
	case CategoryPower:
		return "power"
	case CategoryFrenzy:
		return "frenzy"
	case CategoryEndurance:
		return "endurance"
	case CategorySpirit:
		return "spirit"
	case CategoryFlask:
		return "flask"
	default:
		return "unknown"
	}
}

// ValueKind defines how an effect value combines with others on the same stat.
type ValueKind int8

const (
	ValueFlat       ValueKind = iota // additive absolute bonus
	ValuePercentage                  // additive percentage bonus
	ValueMultiplier                  // multiplicative, composed starting from 1
)

// ChargeEffect is one stat contribution granted while a charge instance is
// active. PerCharge effects are multiplied by the instance's current charge
// count before aggregation.
type ChargeEffect struct {
	Stat      string
	Value     float64
	Kind      ValueKind
	PerCharge bool
}

// ChargeType is the immutable definition of a charge category's behavior.
// DurationMs is the decay window; every time it elapses DecayRate charges
// are removed. DecayRate 0 means charges persist until consumed.
type ChargeType struct {
	ID         string
	Name       string
	Category   ChargeCategory
	MaxCharges int32
	DurationMs int64
	DecayRate  int32
	Effects    []ChargeEffect
}

// TriggerEvent is a combat event a charge source can listen for.
type TriggerEvent int8

const (
	TriggerKill TriggerEvent = iota
	TriggerCriticalStrike
	TriggerHit
	TriggerHitTaken
	TriggerBlock
	TriggerSkillUse
)

func (e TriggerEvent) String() string {
	switch e {
	case TriggerKill:
		return "kill"
	case TriggerCriticalStrike:
		return "critical_strike"
	case TriggerHit:
		return "hit"
	case TriggerHitTaken:
		return "hit_taken"
	case TriggerBlock:
		return "block"
	case TriggerSkillUse:
		return "skill_use"
	default:
		return "unknown"
	}
}

// ConditionKind is the closed set of trigger conditions. Unknown kinds
// evaluate to false: a trigger whose condition cannot be understood does
// not fire.
type ConditionKind int8

const (
	ConditionNone            ConditionKind = iota
	ConditionLowLife                       // life below threshold fraction
	ConditionFullLife                      // life at maximum
	ConditionEnemyLevelAbove               // enemy level above threshold
	ConditionDamageAbove                   // damage dealt above threshold
)

// Condition restricts when a trigger fires. Threshold meaning depends on
// Kind (fraction for low-life, absolute for levels and damage).
type Condition struct {
	Kind      ConditionKind
	Threshold float64
}

// TriggerContext carries the combat-event data conditions and amount
// scaling are evaluated against.
type TriggerContext struct {
	DamageDealt  float64
	EnemyLevel   int32
	LifeFraction float64 // 0..1 of the triggering entity
}

// Evaluate reports whether the condition holds for the context.
// Fail-closed: an unrecognized kind is never satisfied.
func (c Condition) Evaluate(ctx TriggerContext) bool {
	switch c.Kind {
	case ConditionNone:
		return true
	case ConditionLowLife:
		return ctx.LifeFraction <= c.Threshold
	case ConditionFullLife:
		return ctx.LifeFraction >= 1.0
	case ConditionEnemyLevelAbove:
		return float64(ctx.EnemyLevel) > c.Threshold
	case ConditionDamageAbove:
		return ctx.DamageDealt > c.Threshold
	default:
		return false
	}
}

// AmountScaling selects the context-derived bonus added to a source's
// BaseAmount on a successful generation.
type AmountScaling int8

const (
	ScaleNone          AmountScaling = iota
	ScalePerDamage                   // +1 charge per 1000 damage dealt
	ScalePerEnemyLevel               // +1 charge per 10 enemy levels
)

// ChargeTrigger binds a charge source to one combat event.
type ChargeTrigger struct {
	Event      TriggerEvent
	Condition  Condition
	Chance     float64 // 0..1 probability the trigger fires
	CooldownMs int64
}

// ChargeSource is the immutable definition of a charge generator.
type ChargeSource struct {
	ID          string
	Name        string
	Triggers    []ChargeTrigger
	ChargeTypes []string // charge type IDs produced
	BaseAmount  int32
	Scaling     AmountScaling
	CooldownMs  int64
}

// ModifierKind is what aspect of a charge type a ChargeModifier adjusts.
type ModifierKind int8

const (
	ModGainRate ModifierKind = iota
	ModMaxCharges
	ModDuration
	ModEffectMagnitude
	ModDecayRate
)

// ChargeModifier adjusts a charge instance's behavior. AppliesTo restricts
// the modifier to one charge type; empty applies to all types on the entity.
type ChargeModifier struct {
	ID        string
	Kind      ModifierKind
	Value     float64
	Source    string
	AppliesTo string // charge type ID, "" = global
}

// ChargeInstance is the per-entity live state for one charge type.
// Invariant: 0 <= CurrentCharges <= EffectiveMaxCharges.
type ChargeInstance struct {
	TypeID         string
	CurrentCharges int32
	Source         string
	StartTimeMs    int64
	LastGainMs     int64
	DecayTimerMs   int64
	Modifiers      []ChargeModifier
}

// EffectiveMaxCharges returns the type's cap adjusted by max_charges
// modifiers attached to this instance (flat add, floored at 1).
func (ci *ChargeInstance) EffectiveMaxCharges(ct *ChargeType) int32 {
	maxCharges := ct.MaxCharges
	for _, m := range ci.Modifiers {
		if m.Kind == ModMaxCharges && (m.AppliesTo == "" || m.AppliesTo == ci.TypeID) {
			maxCharges += int32(m.Value)
		}
	}
	if maxCharges < 1 {
		maxCharges = 1
	}
	return maxCharges
}

// EffectiveDuration returns the decay window adjusted by duration modifiers
// (percentage add, e.g. 0.2 = +20%).
func (ci *ChargeInstance) EffectiveDuration(ct *ChargeType) int64 {
	pct := 1.0
	for _, m := range ci.Modifiers {
		if m.Kind == ModDuration && (m.AppliesTo == "" || m.AppliesTo == ci.TypeID) {
			pct += m.Value
		}
	}
	d := float64(ct.DurationMs) * pct
	if d < 0 {
		d = 0
	}
	return int64(d)
}

// EffectiveDecayRate returns the charges lost per expired decay window,
// adjusted by decay_rate modifiers (flat add, floored at 0). A type with
// base rate 0 stays persistent regardless of modifiers.
func (ci *ChargeInstance) EffectiveDecayRate(ct *ChargeType) int32 {
	if ct.DecayRate == 0 {
		return 0
	}
	rate := ct.DecayRate
	for _, m := range ci.Modifiers {
		if m.Kind == ModDecayRate && (m.AppliesTo == "" || m.AppliesTo == ci.TypeID) {
			rate += int32(m.Value)
		}
	}
	if rate < 0 {
		rate = 0
	}
	return rate
}

// EffectMagnitudeScale returns the multiplier applied to this instance's
// effect values from effect_magnitude modifiers.
func (ci *ChargeInstance) EffectMagnitudeScale() float64 {
	scale := 1.0
	for _, m := range ci.Modifiers {
		if m.Kind == ModEffectMagnitude && (m.AppliesTo == "" || m.AppliesTo == ci.TypeID) {
			scale += m.Value
		}
	}
	if scale < 0 {
		scale = 0
	}
	return scale
}

// ConsumptionKind selects how many charges a consumption takes.
type ConsumptionKind int8

const (
	ConsumeAll ConsumptionKind = iota
	ConsumePartial
	ConsumePerUse
)

// ConsumptionEffectKind is the closed set of effects a consumption applies.
type ConsumptionEffectKind int8

const (
	ConsumptionDamage ConsumptionEffectKind = iota
	ConsumptionHealing
	ConsumptionBuff
)

// ConsumptionEffect is applied when charges are spent. PerChargeConsumed
// scales Value by the number of charges actually removed.
type ConsumptionEffect struct {
	Kind              ConsumptionEffectKind
	Stat              string // buff stat, unused for damage/healing
	Value             float64
	DurationMs        int64 // buff duration, 0 for instant kinds
	PerChargeConsumed bool
}

// ChargeConsumption is the immutable definition of a charge spender.
type ChargeConsumption struct {
	ID         string
	Name       string
	ChargeType string
	Kind       ConsumptionKind
	Amount     int32 // required/consumed count for partial and per_use
	Effects    []ConsumptionEffect
	CooldownMs int64
}
