// Package event implements the engine notification channel: a closed set
// of typed payloads dispatched synchronously to per-kind listener lists.
// Fire-and-forget, no acknowledgement; listeners must not block.
package event

import "sync"

// Kind identifies one notification variant.
type Kind int16

const (
	// Charge engine
	ChargeGenerated Kind = iota
	ChargesAdded
	ChargesRemoved
	ChargeInstanceExpired
	ChargesConsumed
	ConsumptionEffectApplied
	ChargeModifierAdded
	ChargeModifierRemoved
	ChargesReset

	// Flask engine
	FlaskUsed
	FlaskOnCooldown
	FlaskInsufficientCharges
	FlaskChargesGained
	FlaskChargesFull
	FlaskEffectApplied
	FlaskEffectRemoved
	FlaskEquipped
	FlaskUnequipped

	// Customization engines
	FlaskQualityImproved
	FlaskQualityFailed
	EnchantmentAdded
	EnchantmentFailed
	FlaskCorruptionApplied
	FlaskCorruptionNoChange
	FlaskCorruptionDestroyed
	CraftingSuccess
	CraftingFailed
	MasterCraftApplied
	MasterCraftFailed
	CurrencyConsumed
)

// FailureReason classifies why an engine operation refused to proceed.
// Failed operations are state no-ops; the reason travels in the payload.
type FailureReason int8

const (
	FailNone FailureReason = iota
	FailUnknownDefinition
	FailCooldownActive
	FailInsufficientResource
	FailCapacityExceeded
	FailRarityMismatch
	FailConflictingEnchantment
	FailRandomFailure
)

func (r FailureReason) String() string {
	switch r {
	case FailNone:
		return "none"
	case FailUnknownDefinition:
		return "unknown_definition"
	case FailCooldownActive:
		return "cooldown_active"
	case FailInsufficientResource:
		return "insufficient_resource"
	case FailCapacityExceeded:
		return "capacity_exceeded"
	case FailRarityMismatch:
		return "rarity_mismatch"
	case FailConflictingEnchantment:
		return "conflicting_enchantment"
	case FailRandomFailure:
		return "random_failure"
	default:
		return "unknown"
	}
}

// Event is implemented by every payload type in this package.
type Event interface {
	EventKind() Kind
}

// Listener receives published events of the kind it subscribed to.
type Listener func(Event)

// Bus fans events out to subscribers. Dispatch is synchronous and in
// subscription order. Thread-safe.
type Bus struct {
	mu        sync.RWMutex
	listeners map[Kind][]Listener
}

// NewBus returns an empty bus.
func NewBus() *Bus {
	return &Bus{listeners: make(map[Kind][]Listener)}
}

// Subscribe registers a listener for one event kind.
func (b *Bus) Subscribe(k Kind, l Listener) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners[k] = append(b.listeners[k], l)
}

// Publish delivers the event to every listener of its kind.
// A nil bus is a valid no-op sink, so engines can run unobserved.
func (b *Bus) Publish(e Event) {
	if b == nil {
		return
	}
	b.mu.RLock()
	ls := b.listeners[e.EventKind()]
	b.mu.RUnlock()
	for _, l := range ls {
		l(e)
	}
}
