// Package flask implements the per-player flask engine: slot management,
// activation gated on cooldowns and charge sufficiency, instant recovery,
// timed utility effects and charge regeneration over time.
package flask

import (
	"math"

	"github.com/google/uuid"

	"github.com/udisondev/exilecraft/internal/game/event"
	"github.com/udisondev/exilecraft/internal/model"
)

// Config holds the flask engine's tuning knobs. Gameplay numbers are
// externally supplied; DefaultConfig mirrors the shipped balance.
type Config struct {
	SlotCount          int
	GlobalCooldownMs   int64
	FlaskCooldownMs    int64
	ChargeRecoveryRate float64 // multiplier on each flask's ChargeRecovery
	RecoveryIntervalMs int64   // recovery tick period
}

// DefaultConfig returns the shipped flask tuning.
func DefaultConfig() Config {
	return Config{
		SlotCount:          5,
		GlobalCooldownMs:   200,
		FlaskCooldownMs:    250,
		ChargeRecoveryRate: 1.0,
		RecoveryIntervalMs: 1_000,
	}
}

// slotState is one flask slot. The template pointer is what equip received;
// the instance works on a deep copy so unequip hands the template back
// unmutated.
type slotState struct {
	template *model.FlaskData
	instance *model.FlaskInstance
	disabled bool
	// Fractional charge recovery carried between ticks.
	chargeAcc float64
}

// Engine is one player's flask engine. Single-owner, synchronous; the
// global cooldown and active-effect set belong to this player alone, so
// independent engines never share state.
type Engine struct {
	bus   *event.Bus
	cfg   Config
	nowMs int64

	slots               []slotState
	globalCooldownEndMs int64
	activeEffects       []*model.ActiveFlaskEffect
	recoveryAccMs       int64
}

// NewEngine creates a flask engine with the given tuning.
func NewEngine(bus *event.Bus, cfg Config) *Engine {
	if cfg.SlotCount <= 0 {
		cfg = DefaultConfig()
	}
	return &Engine{
		bus:   bus,
		cfg:   cfg,
		slots: make([]slotState, cfg.SlotCount),
	}
}

// Now returns the engine's simulation clock in milliseconds.
func (e *Engine) Now() int64 { return e.nowMs }

// Slot returns the equipped instance, or nil for an empty/invalid slot.
func (e *Engine) Slot(slotID int) *model.FlaskInstance {
	if slotID < 0 || slotID >= len(e.slots) {
		return nil
	}
	return e.slots[slotID].instance
}

// ActiveEffects returns the player's running flask effects.
func (e *Engine) ActiveEffects() []*model.ActiveFlaskEffect {
	return e.activeEffects
}

// SetSlotDisabled toggles a slot. Disabled slots refuse use but keep
// their flask and keep recovering charges.
func (e *Engine) SetSlotDisabled(slotID int, disabled bool) {
	if slotID < 0 || slotID >= len(e.slots) {
		return
	}
	e.slots[slotID].disabled = disabled
}

// Equip places a flask into an empty slot. The instance is seeded with
// the template's current charge count and works on a private copy.
func (e *Engine) Equip(slotID int, f *model.FlaskData) bool {
	if slotID < 0 || slotID >= len(e.slots) || f == nil {
		return false
	}
	s := &e.slots[slotID]
	if s.instance != nil {
		return false
	}

	s.template = f
	s.instance = &model.FlaskInstance{
		InstanceID:     uuid.NewString(),
		Flask:          f.Clone(),
		CurrentCharges: f.Charges.Current,
	}
	s.chargeAcc = 0

	e.bus.Publish(event.FlaskEquippedEvent{SlotID: slotID, FlaskID: f.ID})
	return true
}

// Unequip removes the slot's flask, dropping its active effects, and
// returns the template exactly as it was handed to Equip.
func (e *Engine) Unequip(slotID int) *model.FlaskData {
	if slotID < 0 || slotID >= len(e.slots) {
		return nil
	}
	s := &e.slots[slotID]
	if s.instance == nil {
		return nil
	}

	e.removeEffectsFrom(s.instance.InstanceID)

	tmpl := s.template
	flaskID := s.instance.Flask.ID
	*s = slotState{}

	e.bus.Publish(event.FlaskUnequippedEvent{SlotID: slotID, FlaskID: flaskID})
	return tmpl
}

// Use activates the slot's flask with a neutral (full-life) context.
func (e *Engine) Use(slotID int) bool {
	return e.UseWithContext(slotID, model.TriggerContext{LifeFraction: 1.0})
}

// UseWithContext activates a flask. The context gates conditional
// modifiers such as "recovery when on low life".
//
// Gate order: slot state, cooldowns (global then per-flask), charge
// sufficiency. Each refusal is a state no-op reported on the bus.
func (e *Engine) UseWithContext(slotID int, ctx model.TriggerContext) bool {
	if slotID < 0 || slotID >= len(e.slots) {
		return false
	}
	s := &e.slots[slotID]
	inst := s.instance
	if inst == nil || s.disabled {
		return false
	}
	f := inst.Flask

	if e.nowMs < e.globalCooldownEndMs || e.nowMs < inst.CooldownEndMs {
		remaining := e.globalCooldownEndMs - e.nowMs
		if r := inst.CooldownEndMs - e.nowMs; r > remaining {
			remaining = r
		}
		e.bus.Publish(event.FlaskOnCooldownEvent{
			SlotID: slotID, FlaskID: f.ID, RemainingMs: remaining,
		})
		return false
	}

	if inst.CurrentCharges < f.Charges.UsedPerUse {
		e.bus.Publish(event.FlaskInsufficientChargesEvent{
			SlotID:   slotID,
			FlaskID:  f.ID,
			Current:  inst.CurrentCharges,
			Required: f.Charges.UsedPerUse,
		})
		return false
	}

	inst.CurrentCharges -= f.Charges.UsedPerUse

	life, mana := e.recoveryAmounts(f, ctx)
	e.applyEffects(slotID, s, ctx)

	inst.CooldownEndMs = e.nowMs + e.cfg.FlaskCooldownMs
	inst.LastUsedMs = e.nowMs
	e.globalCooldownEndMs = e.nowMs + e.cfg.GlobalCooldownMs

	e.bus.Publish(event.FlaskUsedEvent{
		SlotID:       slotID,
		FlaskID:      f.ID,
		LifeRecovery: life,
		ManaRecovery: mana,
		ChargesLeft:  inst.CurrentCharges,
	})
	return true
}

// recoveryAmounts computes the quality- and modifier-adjusted instant
// recovery, split 60/40 (floored) for hybrid flasks.
func (e *Engine) recoveryAmounts(f *model.FlaskData, ctx model.TriggerContext) (life, mana float64) {
	if f.Type == model.FlaskUtility || f.RecoveryAmount <= 0 {
		return 0, 0
	}

	amount := f.RecoveryAmount
	pct := 0.0
	for _, m := range allFlaskModifiers(f) {
		if m.Kind != model.FlaskModRecoveryAmount {
			continue
		}
		if !m.Condition.Evaluate(ctx) {
			continue
		}
		if m.IsPercentage {
			pct += m.Value
		} else {
			amount += m.Value
		}
	}
	amount *= 1 + pct/100
	amount *= 1 + float64(f.Quality)/100

	switch f.Type {
	case model.FlaskLife:
		return amount, 0
	case model.FlaskMana:
		return 0, amount
	case model.FlaskHybrid:
		return math.Floor(amount * 0.6), math.Floor(amount * 0.4)
	default:
		return 0, 0
	}
}

// applyEffects turns the flask's utility effects into timed active
// effects. A non-stackable effect replaces its running twin.
func (e *Engine) applyEffects(slotID int, s *slotState, ctx model.TriggerContext) {
	inst := s.instance
	f := inst.Flask
	if len(f.Effects) == 0 {
		return
	}

	durationPct := 0.0
	effectPct := 0.0
	for _, m := range allFlaskModifiers(f) {
		if !m.Condition.Evaluate(ctx) {
			continue
		}
		switch m.Kind {
		case model.FlaskModDuration:
			if m.IsPercentage {
				durationPct += m.Value
			}
		case model.FlaskModEffect:
			if m.Stat == "flask_effect" && m.IsPercentage {
				effectPct += m.Value
			}
		}
	}

	for _, def := range f.Effects {
		if !def.Stackable {
			e.removeEffectByID(def.ID, true)
		}

		// Quality lengthens utility buffs the way it boosts recovery on
		// life/mana flasks.
		duration := int64(float64(def.DurationMs) * (1 + durationPct/100) * (1 + float64(f.Quality)/100))
		ae := &model.ActiveFlaskEffect{
			EffectID:    def.ID,
			StartTimeMs: e.nowMs,
			EndTimeMs:   e.nowMs + duration,
			Magnitude:   def.Magnitude * (1 + effectPct/100),
			Source:      inst.InstanceID,
			Tags:        append([]string(nil), def.Tags...),
		}
		e.activeEffects = append(e.activeEffects, ae)
		inst.ActiveEffects = append(inst.ActiveEffects, ae)
		inst.IsActive = true

		e.bus.Publish(event.FlaskEffectAppliedEvent{
			SlotID:     slotID,
			EffectID:   def.ID,
			Magnitude:  ae.Magnitude,
			DurationMs: duration,
		})
	}
}

// OnKill adds each equipped flask's charge-gain-on-kill.
func (e *Engine) OnKill() {
	for i := range e.slots {
		inst := e.slots[i].instance
		if inst == nil {
			continue
		}
		e.gainCharges(i, inst, inst.Flask.Charges.GainOnKill)
	}
}

// OnCriticalStrike adds charge-gain-on-crit plus any "gain charge on
// critical strike" modifier bonus.
func (e *Engine) OnCriticalStrike() {
	for i := range e.slots {
		inst := e.slots[i].instance
		if inst == nil {
			continue
		}
		gain := inst.Flask.Charges.GainOnCrit
		for _, m := range allFlaskModifiers(inst.Flask) {
			if m.Kind == model.FlaskModChargeOnCrit {
				gain += int32(m.Value)
			}
		}
		e.gainCharges(i, inst, gain)
	}
}

func (e *Engine) gainCharges(slotID int, inst *model.FlaskInstance, amount int32) {
	if amount <= 0 {
		return
	}
	maxCharges := effectiveMaxCharges(inst.Flask)
	if inst.CurrentCharges >= maxCharges {
		return
	}
	gained := min(amount, maxCharges-inst.CurrentCharges)
	inst.CurrentCharges += gained

	e.bus.Publish(event.FlaskChargesGainedEvent{
		SlotID:  slotID,
		FlaskID: inst.Flask.ID,
		Amount:  gained,
		Current: inst.CurrentCharges,
	})
	if inst.CurrentCharges >= maxCharges {
		e.bus.Publish(event.FlaskChargesFullEvent{SlotID: slotID, FlaskID: inst.Flask.ID})
	}
}

// Update advances the clock, recovers charges on the recovery tick and
// sweeps expired effects. Expiry resolves before any flask use the caller
// issues for the same tick.
func (e *Engine) Update(deltaMs int64) {
	e.nowMs += deltaMs

	e.sweepExpiredEffects()

	e.recoveryAccMs += deltaMs
	for e.recoveryAccMs >= e.cfg.RecoveryIntervalMs {
		e.recoveryAccMs -= e.cfg.RecoveryIntervalMs
		e.recoveryTick()
	}
}

// recoveryTick restores flask charges: ChargeRecovery × configured rate,
// further scaled by any percentage charges modifier, capped at max.
func (e *Engine) recoveryTick() {
	for i := range e.slots {
		inst := e.slots[i].instance
		if inst == nil {
			continue
		}
		f := inst.Flask
		maxCharges := effectiveMaxCharges(f)
		if inst.CurrentCharges >= maxCharges {
			continue
		}

		rate := f.Charges.ChargeRecovery * e.cfg.ChargeRecoveryRate
		for _, m := range allFlaskModifiers(f) {
			if m.Kind == model.FlaskModCharges && m.IsPercentage {
				rate *= 1 + m.Value/100
			}
		}

		e.slots[i].chargeAcc += rate
		gained := int32(e.slots[i].chargeAcc)
		if gained <= 0 {
			continue
		}
		e.slots[i].chargeAcc -= float64(gained)
		e.gainCharges(i, inst, gained)
	}
}

func (e *Engine) sweepExpiredEffects() {
	if len(e.activeEffects) == 0 {
		return
	}
	kept := e.activeEffects[:0]
	for _, ae := range e.activeEffects {
		if ae.Expired(e.nowMs) {
			e.detachFromInstance(ae)
			e.bus.Publish(event.FlaskEffectRemovedEvent{
				EffectID: ae.EffectID,
				Source:   ae.Source,
			})
			continue
		}
		kept = append(kept, ae)
	}
	e.activeEffects = kept
}

// removeEffectByID drops a running effect (non-stackable replacement).
func (e *Engine) removeEffectByID(effectID string, replaced bool) {
	kept := e.activeEffects[:0]
	for _, ae := range e.activeEffects {
		if ae.EffectID == effectID {
			e.detachFromInstance(ae)
			e.bus.Publish(event.FlaskEffectRemovedEvent{
				EffectID: ae.EffectID,
				Source:   ae.Source,
				Replaced: replaced,
			})
			continue
		}
		kept = append(kept, ae)
	}
	e.activeEffects = kept
}

// removeEffectsFrom drops every effect owned by a flask instance (unequip).
func (e *Engine) removeEffectsFrom(instanceID string) {
	kept := e.activeEffects[:0]
	for _, ae := range e.activeEffects {
		if ae.Source == instanceID {
			e.bus.Publish(event.FlaskEffectRemovedEvent{
				EffectID: ae.EffectID,
				Source:   ae.Source,
			})
			continue
		}
		kept = append(kept, ae)
	}
	e.activeEffects = kept
}

// detachFromInstance removes the cross-reference and clears IsActive once
// the owning instance has no running effects left.
func (e *Engine) detachFromInstance(ae *model.ActiveFlaskEffect) {
	for i := range e.slots {
		inst := e.slots[i].instance
		if inst == nil || inst.InstanceID != ae.Source {
			continue
		}
		kept := inst.ActiveEffects[:0]
		for _, ref := range inst.ActiveEffects {
			if ref != ae {
				kept = append(kept, ref)
			}
		}
		inst.ActiveEffects = kept
		if len(kept) == 0 {
			inst.IsActive = false
		}
		return
	}
}

// effectiveMaxCharges applies max-charge modifiers to the base maximum.
func effectiveMaxCharges(f *model.FlaskData) int32 {
	maxCharges := float64(f.Charges.Maximum)
	flat := 0.0
	for _, m := range allFlaskModifiers(f) {
		if m.Kind != model.FlaskModMaxCharges {
			continue
		}
		if m.IsPercentage {
			maxCharges *= 1 + m.Value/100
		} else {
			flat += m.Value
		}
	}
	result := int32(maxCharges + flat)
	if result < 1 {
		result = 1
	}
	return result
}

// allFlaskModifiers yields affix, implicit and enchantment-applied lines.
func allFlaskModifiers(f *model.FlaskData) []model.FlaskModifier {
	mods := f.AllModifiers()
	mods = append(mods, f.Implicits...)
	return append(mods, f.EnchantMods...)
}
