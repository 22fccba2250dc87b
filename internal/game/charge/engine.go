// Package charge implements the per-entity charge generation, decay and
// consumption engine. Entities are stored arena-style: a dense table of
// records indexed by a stable handle, with one instance slot per charge
// category, so per-entity updates can run in parallel shards.
package charge

import (
	"math"
	"math/rand/v2"

	"github.com/udisondev/exilecraft/internal/data"
	"github.com/udisondev/exilecraft/internal/game/event"
	"github.com/udisondev/exilecraft/internal/model"
)

// Handle identifies a registered entity inside the engine's arena.
type Handle int32

// InvalidHandle is returned when registration is refused.
const InvalidHandle Handle = -1

// historyCap bounds the generation history; oldest records drop first.
const historyCap = 1000

const numCategories = int(model.CategoryFlask) + 1

// GenerationRecord is one entry of the engine's generation history.
type GenerationRecord struct {
	TimeMs   int64
	EntityID uint32
	SourceID string
	Types    []string
	Amount   int32 // total charges granted across Types
}

// entityRecord is the arena slot for one registered entity.
// Charge instances live in a fixed array indexed by charge category;
// at most one charge type per category is active at a time.
type entityRecord struct {
	entity    model.Entity
	alive     bool
	instances [numCategories]*model.ChargeInstance
	modifiers []model.ChargeModifier
	// Absolute cooldown deadlines, swept on tick.
	sourceCooldowns      map[string]int64
	consumptionCooldowns map[string]int64
}

// Engine is the charge generation/consumption engine. All operations are
// synchronous state transitions against the engine's simulation clock,
// advanced only by Update. Not safe for concurrent mutation of the same
// entity; per-entity sharding is safe because records share no state.
type Engine struct {
	bus     *event.Bus
	nowMs   int64
	records []entityRecord
	free    []Handle
	history []GenerationRecord
}

// NewEngine creates an engine publishing notifications on bus (nil = unobserved).
func NewEngine(bus *event.Bus) *Engine {
	return &Engine{bus: bus}
}

// Now returns the engine's simulation clock in milliseconds.
func (e *Engine) Now() int64 { return e.nowMs }

// Register adds an entity to the arena. Refused unless the entity carries
// the Character and Charges components.
func (e *Engine) Register(ent model.Entity) (Handle, bool) {
	if ent == nil || !ent.HasComponents(model.ComponentCharacter, model.ComponentCharges) {
		return InvalidHandle, false
	}

	rec := entityRecord{
		entity:               ent,
		alive:                true,
		sourceCooldowns:      make(map[string]int64, 4),
		consumptionCooldowns: make(map[string]int64, 2),
	}

	if n := len(e.free); n > 0 {
		h := e.free[n-1]
		e.free = e.free[:n-1]
		e.records[h] = rec
		return h, true
	}
	e.records = append(e.records, rec)
	return Handle(len(e.records) - 1), true
}

// Unregister frees the entity's slot. Its handle becomes invalid.
func (e *Engine) Unregister(h Handle) {
	rec := e.record(h)
	if rec == nil {
		return
	}
	*rec = entityRecord{}
	e.free = append(e.free, h)
}

func (e *Engine) record(h Handle) *entityRecord {
	if h < 0 || int(h) >= len(e.records) {
		return nil
	}
	rec := &e.records[h]
	if !rec.alive {
		return nil
	}
	return rec
}

// GenerateCharge processes a trigger event against a charge source.
// Returns false, with no state change and no notification, if the source
// is unknown, no trigger matches the event, the source is on cooldown,
// the chance roll fails, or the trigger condition does not hold.
func (e *Engine) GenerateCharge(h Handle, sourceID string, ev model.TriggerEvent, ctx model.TriggerContext) bool {
	return e.GenerateChargeWithRoll(h, sourceID, ev, ctx, rand.Float64())
}

// GenerateChargeWithRoll is GenerateCharge with an explicit chance roll in
// [0,1). The trigger fires when roll < chance. Used for deterministic tests.
func (e *Engine) GenerateChargeWithRoll(h Handle, sourceID string, ev model.TriggerEvent, ctx model.TriggerContext, roll float64) bool {
	rec := e.record(h)
	if rec == nil {
		return false
	}
	src := data.GetChargeSource(sourceID)
	if src == nil {
		return false
	}

	var trigger *model.ChargeTrigger
	for i := range src.Triggers {
		if src.Triggers[i].Event == ev {
			trigger = &src.Triggers[i]
			break
		}
	}
	if trigger == nil {
		return false
	}

	if end, ok := rec.sourceCooldowns[sourceID]; ok && e.nowMs < end {
		return false
	}
	if roll >= trigger.Chance {
		return false
	}
	if !trigger.Condition.Evaluate(ctx) {
		return false
	}

	gained := false
	var gainedTypes []string
	var total int32
	for _, typeID := range src.ChargeTypes {
		amount := e.scaledAmount(rec, src, ctx, typeID)
		if e.addCharges(rec, typeID, amount, sourceID) {
			gained = true
			gainedTypes = append(gainedTypes, typeID)
			total += amount
			e.bus.Publish(event.ChargeGeneratedEvent{
				EntityID:   rec.entity.ObjectID(),
				SourceID:   sourceID,
				ChargeType: typeID,
				Amount:     amount,
			})
		}
	}
	if !gained {
		return false
	}

	cooldown := src.CooldownMs
	if trigger.CooldownMs > cooldown {
		cooldown = trigger.CooldownMs
	}
	if cooldown > 0 {
		rec.sourceCooldowns[sourceID] = e.nowMs + cooldown
	}

	e.history = append(e.history, GenerationRecord{
		TimeMs:   e.nowMs,
		EntityID: rec.entity.ObjectID(),
		SourceID: sourceID,
		Types:    gainedTypes,
		Amount:   total,
	})
	if len(e.history) > historyCap {
		e.history = e.history[len(e.history)-historyCap:]
	}
	return true
}

// scaledAmount computes baseAmount plus the context bonus, scaled by the
// gain_rate modifiers in scope for the granted type, floored at 1.
func (e *Engine) scaledAmount(rec *entityRecord, src *model.ChargeSource, ctx model.TriggerContext, typeID string) int32 {
	amount := src.BaseAmount
	switch src.Scaling {
	case model.ScalePerDamage:
		amount += int32(ctx.DamageDealt / 1000)
	case model.ScalePerEnemyLevel:
		amount += ctx.EnemyLevel / 10
	}

	gainPct := 1.0
	for _, m := range rec.modifiers {
		if m.Kind == model.ModGainRate && (m.AppliesTo == "" || m.AppliesTo == typeID) {
			gainPct += m.Value
		}
	}
	amount = int32(math.Floor(float64(amount) * gainPct))
	if amount < 1 {
		amount = 1
	}
	return amount
}

// AddCharges grants charges of a type, clamped at the modified maximum.
// Returns false if the type is unknown, amount is not positive, the
// category slot is held by a different type, or the clamp absorbs the
// whole amount (already full).
func (e *Engine) AddCharges(h Handle, typeID string, amount int32, source string) bool {
	rec := e.record(h)
	if rec == nil {
		return false
	}
	return e.addCharges(rec, typeID, amount, source)
}

func (e *Engine) addCharges(rec *entityRecord, typeID string, amount int32, source string) bool {
	ct := data.GetChargeType(typeID)
	if ct == nil || amount <= 0 {
		return false
	}

	slot := int(ct.Category)
	inst := rec.instances[slot]
	if inst != nil && inst.TypeID != typeID {
		return false
	}
	created := false
	if inst == nil {
		inst = &model.ChargeInstance{
			TypeID:      typeID,
			Source:      source,
			StartTimeMs: e.nowMs,
		}
		inst.Modifiers = applicableModifiers(rec.modifiers, typeID)
		created = true
	}

	maxCharges := inst.EffectiveMaxCharges(ct)
	gained := min(amount, maxCharges-inst.CurrentCharges)
	if gained <= 0 {
		return false
	}

	inst.CurrentCharges += gained
	inst.LastGainMs = e.nowMs
	inst.DecayTimerMs = inst.EffectiveDuration(ct)
	if created {
		rec.instances[slot] = inst
	}

	e.bus.Publish(event.ChargesAddedEvent{
		EntityID:   rec.entity.ObjectID(),
		ChargeType: typeID,
		Amount:     gained,
		Current:    inst.CurrentCharges,
		Source:     source,
	})
	return true
}

// RemoveCharges takes charges from an instance, clamped at its current
// count. Returns false if no instance exists or amount is not positive.
// Removing the last charge destroys the instance and fires exactly one
// expiry notification.
func (e *Engine) RemoveCharges(h Handle, typeID string, amount int32) bool {
	rec := e.record(h)
	if rec == nil {
		return false
	}
	return e.removeCharges(rec, typeID, amount)
}

func (e *Engine) removeCharges(rec *entityRecord, typeID string, amount int32) bool {
	ct := data.GetChargeType(typeID)
	if ct == nil || amount <= 0 {
		return false
	}
	slot := int(ct.Category)
	inst := rec.instances[slot]
	if inst == nil || inst.TypeID != typeID || inst.CurrentCharges == 0 {
		return false
	}

	removed := min(amount, inst.CurrentCharges)
	inst.CurrentCharges -= removed

	e.bus.Publish(event.ChargesRemovedEvent{
		EntityID:   rec.entity.ObjectID(),
		ChargeType: typeID,
		Amount:     removed,
		Current:    inst.CurrentCharges,
	})

	if inst.CurrentCharges == 0 {
		rec.instances[slot] = nil
		e.bus.Publish(event.ChargeInstanceExpiredEvent{
			EntityID:   rec.entity.ObjectID(),
			ChargeType: typeID,
		})
	}
	return true
}

// ConsumeCharges spends charges through a consumption definition and
// applies its effects. Atomic: if any precondition fails nothing changes.
func (e *Engine) ConsumeCharges(h Handle, consumptionID string) bool {
	rec := e.record(h)
	if rec == nil {
		return false
	}
	def := data.GetConsumption(consumptionID)
	if def == nil {
		return false
	}
	if end, ok := rec.consumptionCooldowns[consumptionID]; ok && e.nowMs < end {
		return false
	}

	ct := data.GetChargeType(def.ChargeType)
	if ct == nil {
		return false
	}
	inst := rec.instances[ct.Category]
	if inst == nil || inst.TypeID != def.ChargeType {
		return false
	}

	var toConsume int32
	switch def.Kind {
	case model.ConsumeAll:
		toConsume = inst.CurrentCharges
		if toConsume == 0 {
			return false
		}
	case model.ConsumePartial, model.ConsumePerUse:
		toConsume = def.Amount
		if inst.CurrentCharges < toConsume {
			return false
		}
	default:
		return false
	}

	// Preconditions hold; effects first, removal after, both unconditional.
	for i, eff := range def.Effects {
		value := eff.Value
		if eff.PerChargeConsumed {
			value *= float64(toConsume)
		}
		e.bus.Publish(event.ConsumptionEffectAppliedEvent{
			EntityID:      rec.entity.ObjectID(),
			ConsumptionID: consumptionID,
			EffectIndex:   i,
			Value:         value,
		})
	}

	e.removeCharges(rec, def.ChargeType, toConsume)

	if def.CooldownMs > 0 {
		rec.consumptionCooldowns[consumptionID] = e.nowMs + def.CooldownMs
	}

	e.bus.Publish(event.ChargesConsumedEvent{
		EntityID:      rec.entity.ObjectID(),
		ConsumptionID: consumptionID,
		ChargeType:    def.ChargeType,
		Consumed:      toConsume,
	})
	return true
}

// CurrentCharges returns the live charge count for a type, 0 if none.
func (e *Engine) CurrentCharges(h Handle, typeID string) int32 {
	rec := e.record(h)
	if rec == nil {
		return 0
	}
	ct := data.GetChargeType(typeID)
	if ct == nil {
		return 0
	}
	inst := rec.instances[ct.Category]
	if inst == nil || inst.TypeID != typeID {
		return 0
	}
	return inst.CurrentCharges
}

// ChargeEffects aggregates the stat contributions of every active
// instance. Flat and percentage values accumulate additively per stat;
// multipliers compose from 1 and scale the additive result. Per-charge
// values are pre-multiplied by the instance's current count. Magnitude
// modifiers scale flat and percentage values directly and multipliers
// by their distance from 1.
func (e *Engine) ChargeEffects(h Handle) map[string]float64 {
	rec := e.record(h)
	if rec == nil {
		return nil
	}

	adds := make(map[string]float64)
	muls := make(map[string]float64)

	for _, inst := range rec.instances {
		if inst == nil || inst.CurrentCharges == 0 {
			continue
		}
		ct := data.GetChargeType(inst.TypeID)
		if ct == nil {
			continue
		}
		scale := inst.EffectMagnitudeScale()
		for _, eff := range ct.Effects {
			switch eff.Kind {
			case model.ValueFlat, model.ValuePercentage:
				v := eff.Value * scale
				if eff.PerCharge {
					v *= float64(inst.CurrentCharges)
				}
				adds[eff.Stat] += v
			case model.ValueMultiplier:
				// Magnitude scaling moves a multiplier toward or away
				// from its neutral point of 1.
				m := 1 + (eff.Value-1)*scale
				if eff.PerCharge {
					m = math.Pow(m, float64(inst.CurrentCharges))
				}
				if cur, ok := muls[eff.Stat]; ok {
					muls[eff.Stat] = cur * m
				} else {
					muls[eff.Stat] = m
				}
			}
		}
	}

	for stat, m := range muls {
		if base, ok := adds[stat]; ok {
			adds[stat] = base * m
		} else {
			adds[stat] = m
		}
	}
	return adds
}

// AddModifier attaches a charge modifier to the entity. AppliesTo scopes
// it to one charge type; empty applies to every instance.
func (e *Engine) AddModifier(h Handle, mod model.ChargeModifier) bool {
	rec := e.record(h)
	if rec == nil {
		return false
	}
	rec.modifiers = append(rec.modifiers, mod)
	e.rebuildInstanceModifiers(rec)
	e.bus.Publish(event.ChargeModifierAddedEvent{
		EntityID:   rec.entity.ObjectID(),
		ModifierID: mod.ID,
		ChargeType: mod.AppliesTo,
	})
	return true
}

// RemoveModifier detaches a modifier by id. Charges above a lowered cap
// are clamped down on the next gain, not retroactively removed.
func (e *Engine) RemoveModifier(h Handle, modID string) bool {
	rec := e.record(h)
	if rec == nil {
		return false
	}
	for i, m := range rec.modifiers {
		if m.ID == modID {
			rec.modifiers = append(rec.modifiers[:i], rec.modifiers[i+1:]...)
			e.rebuildInstanceModifiers(rec)
			e.bus.Publish(event.ChargeModifierRemovedEvent{
				EntityID:   rec.entity.ObjectID(),
				ModifierID: modID,
			})
			return true
		}
	}
	return false
}

func (e *Engine) rebuildInstanceModifiers(rec *entityRecord) {
	for _, inst := range rec.instances {
		if inst != nil {
			inst.Modifiers = applicableModifiers(rec.modifiers, inst.TypeID)
		}
	}
}

func applicableModifiers(mods []model.ChargeModifier, typeID string) []model.ChargeModifier {
	var out []model.ChargeModifier
	for _, m := range mods {
		if m.AppliesTo == "" || m.AppliesTo == typeID {
			out = append(out, m)
		}
	}
	return out
}

// Reset clears every charge instance and cooldown on the entity.
func (e *Engine) Reset(h Handle) {
	rec := e.record(h)
	if rec == nil {
		return
	}
	for i := range rec.instances {
		rec.instances[i] = nil
	}
	clear(rec.sourceCooldowns)
	clear(rec.consumptionCooldowns)
	e.bus.Publish(event.ChargesResetEvent{EntityID: rec.entity.ObjectID()})
}

// History returns the generation history, most recent last, capped at
// the last 1000 successful generations across all entities.
func (e *Engine) History() []GenerationRecord {
	return e.history
}

// Update advances the simulation clock and runs the decay/cooldown state
// machine for every entity. Expiry resolves here, before any trigger
// processing the caller does for the same tick.
func (e *Engine) Update(deltaMs int64) {
	e.nowMs += deltaMs
	for h := range e.records {
		if e.records[h].alive {
			e.updateRecord(&e.records[h], deltaMs)
		}
	}
}

// UpdateEntity runs one entity's share of a tick already clocked by
// AdvanceClock. Safe to call concurrently for distinct handles.
func (e *Engine) UpdateEntity(h Handle, deltaMs int64) {
	rec := e.record(h)
	if rec == nil {
		return
	}
	e.updateRecord(rec, deltaMs)
}

// AdvanceClock moves the simulation clock without touching entity state.
// Pair with UpdateEntity when sharding a tick across workers.
func (e *Engine) AdvanceClock(deltaMs int64) {
	e.nowMs += deltaMs
}

// Handles returns every live handle, for sharded iteration.
func (e *Engine) Handles() []Handle {
	out := make([]Handle, 0, len(e.records))
	for h := range e.records {
		if e.records[h].alive {
			out = append(out, Handle(h))
		}
	}
	return out
}

func (e *Engine) updateRecord(rec *entityRecord, deltaMs int64) {
	for slot, inst := range rec.instances {
		if inst == nil {
			continue
		}
		ct := data.GetChargeType(inst.TypeID)
		if ct == nil {
			rec.instances[slot] = nil
			continue
		}
		rate := inst.EffectiveDecayRate(ct)
		if rate == 0 {
			continue
		}

		inst.DecayTimerMs -= deltaMs
		for inst.DecayTimerMs <= 0 && inst.CurrentCharges > 0 {
			e.removeCharges(rec, inst.TypeID, min(rate, inst.CurrentCharges))
			if rec.instances[slot] == nil {
				break
			}
			inst.DecayTimerMs += inst.EffectiveDuration(ct)
		}
	}

	for id, end := range rec.sourceCooldowns {
		if e.nowMs >= end {
			delete(rec.sourceCooldowns, id)
		}
	}
	for id, end := range rec.consumptionCooldowns {
		if e.nowMs >= end {
			delete(rec.consumptionCooldowns, id)
		}
	}
}
