package event

// Payload shapes are fixed per event kind. Consumers (UI, analytics)
// subscribe by kind and type-assert the concrete payload.

// --- charge engine ---

type ChargeGeneratedEvent struct {
	EntityID   uint32
	SourceID   string
	ChargeType string
	Amount     int32
}

func (ChargeGeneratedEvent) EventKind() Kind { return ChargeGenerated }

type ChargesAddedEvent struct {
	EntityID   uint32
	ChargeType string
	Amount     int32 // actually gained after clamping
	Current    int32
	Source     string
}

func (ChargesAddedEvent) EventKind() Kind { return ChargesAdded }

type ChargesRemovedEvent struct {
	EntityID   uint32
	ChargeType string
	Amount     int32
	Current    int32
}

func (ChargesRemovedEvent) EventKind() Kind { return ChargesRemoved }

type ChargeInstanceExpiredEvent struct {
	EntityID   uint32
	ChargeType string
}

func (ChargeInstanceExpiredEvent) EventKind() Kind { return ChargeInstanceExpired }

type ChargesConsumedEvent struct {
	EntityID      uint32
	ConsumptionID string
	ChargeType    string
	Consumed      int32
}

func (ChargesConsumedEvent) EventKind() Kind { return ChargesConsumed }

type ConsumptionEffectAppliedEvent struct {
	EntityID      uint32
	ConsumptionID string
	EffectIndex   int
	Value         float64 // scaled by charges consumed when per-charge
}

func (ConsumptionEffectAppliedEvent) EventKind() Kind { return ConsumptionEffectApplied }

type ChargeModifierAddedEvent struct {
	EntityID   uint32
	ModifierID string
	ChargeType string // "" = global
}

func (ChargeModifierAddedEvent) EventKind() Kind { return ChargeModifierAdded }

type ChargeModifierRemovedEvent struct {
	EntityID   uint32
	ModifierID string
}

func (ChargeModifierRemovedEvent) EventKind() Kind { return ChargeModifierRemoved }

type ChargesResetEvent struct {
	EntityID uint32
}

func (ChargesResetEvent) EventKind() Kind { return ChargesReset }

// --- flask engine ---

type FlaskUsedEvent struct {
	SlotID       int
	FlaskID      string
	LifeRecovery float64
	ManaRecovery float64
	ChargesLeft  int32
}

func (FlaskUsedEvent) EventKind() Kind { return FlaskUsed }

type FlaskOnCooldownEvent struct {
	SlotID      int
	FlaskID     string
	RemainingMs int64
}

func (FlaskOnCooldownEvent) EventKind() Kind { return FlaskOnCooldown }

type FlaskInsufficientChargesEvent struct {
	SlotID   int
	FlaskID  string
	Current  int32
	Required int32
}

func (FlaskInsufficientChargesEvent) EventKind() Kind { return FlaskInsufficientCharges }

type FlaskChargesGainedEvent struct {
	SlotID  int
	FlaskID string
	Amount  int32
	Current int32
}

func (FlaskChargesGainedEvent) EventKind() Kind { return FlaskChargesGained }

type FlaskChargesFullEvent struct {
	SlotID  int
	FlaskID string
}

func (FlaskChargesFullEvent) EventKind() Kind { return FlaskChargesFull }

type FlaskEffectAppliedEvent struct {
	SlotID     int
	EffectID   string
	Magnitude  float64
	DurationMs int64
}

func (FlaskEffectAppliedEvent) EventKind() Kind { return FlaskEffectApplied }

type FlaskEffectRemovedEvent struct {
	EffectID string
	Source   string // flask instance ID
	Replaced bool   // removed to make room for a non-stackable reapply
}

func (FlaskEffectRemovedEvent) EventKind() Kind { return FlaskEffectRemoved }

type FlaskEquippedEvent struct {
	SlotID  int
	FlaskID string
}

func (FlaskEquippedEvent) EventKind() Kind { return FlaskEquipped }

type FlaskUnequippedEvent struct {
	SlotID  int
	FlaskID string
}

func (FlaskUnequippedEvent) EventKind() Kind { return FlaskUnequipped }

// --- customization engines ---

type FlaskQualityImprovedEvent struct {
	FlaskID  string
	NewLevel int32
	Cost     int64
}

func (FlaskQualityImprovedEvent) EventKind() Kind { return FlaskQualityImproved }

type FlaskQualityFailedEvent struct {
	FlaskID string
	Reason  FailureReason
}

func (FlaskQualityFailedEvent) EventKind() Kind { return FlaskQualityFailed }

type EnchantmentAddedEvent struct {
	FlaskID       string
	EnchantmentID string
}

func (EnchantmentAddedEvent) EventKind() Kind { return EnchantmentAdded }

type EnchantmentFailedEvent struct {
	FlaskID       string
	EnchantmentID string
	Reason        FailureReason
}

func (EnchantmentFailedEvent) EventKind() Kind { return EnchantmentFailed }

type FlaskCorruptionAppliedEvent struct {
	FlaskID   string
	OutcomeID string
}

func (FlaskCorruptionAppliedEvent) EventKind() Kind { return FlaskCorruptionApplied }

type FlaskCorruptionNoChangeEvent struct {
	FlaskID   string
	OutcomeID string
}

func (FlaskCorruptionNoChangeEvent) EventKind() Kind { return FlaskCorruptionNoChange }

type FlaskCorruptionDestroyedEvent struct {
	FlaskID   string
	OutcomeID string
}

func (FlaskCorruptionDestroyedEvent) EventKind() Kind { return FlaskCorruptionDestroyed }

type CraftingSuccessEvent struct {
	FlaskID   string
	Operation string
}

func (CraftingSuccessEvent) EventKind() Kind { return CraftingSuccess }

type CraftingFailedEvent struct {
	FlaskID   string
	Operation string
	Reason    FailureReason
}

func (CraftingFailedEvent) EventKind() Kind { return CraftingFailed }

type MasterCraftAppliedEvent struct {
	FlaskID    string
	BenchModID string
	Cost       int64
}

func (MasterCraftAppliedEvent) EventKind() Kind { return MasterCraftApplied }

type MasterCraftFailedEvent struct {
	FlaskID    string
	BenchModID string
	Reason     FailureReason
}

func (MasterCraftFailedEvent) EventKind() Kind { return MasterCraftFailed }

type CurrencyConsumedEvent struct {
	FlaskID  string
	Currency string
	Amount   int64
}

func (CurrencyConsumedEvent) EventKind() Kind { return CurrencyConsumed }
