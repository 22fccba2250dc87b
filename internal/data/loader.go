package data

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/udisondev/exilecraft/internal/model"
)

// LoadAll builds every definition registry from the built-in Go literals.
func LoadAll() {
	LoadChargeDefinitions()
	LoadFlaskBases()
	LoadEnchantments()
	LoadCorruptionOutcomes()
	LoadCraftOperations()

	slog.Info("loaded definition tables",
		"chargeTypes", len(chargeTypeTable),
		"chargeSources", len(chargeSourceTable),
		"consumptions", len(consumptionTable),
		"flaskBases", len(flaskBaseTable),
		"enchantments", len(enchantmentTable),
		"corruptionOutcomes", len(corruptionOutcomes),
		"craftOperations", len(craftOperationTable))
}

// Override file shapes. Entries replace same-ID built-ins or add new ones;
// gameplay numbers are authored externally, the engine only validates.

type overrideFile struct {
	ChargeTypes []chargeTypeOverride `yaml:"charge_types"`
	FlaskBases  []flaskBaseOverride  `yaml:"flask_bases"`
}

type chargeTypeOverride struct {
	ID         string                 `yaml:"id"`
	Name       string                 `yaml:"name"`
	Category   string                 `yaml:"category"`
	MaxCharges int32                  `yaml:"max_charges"`
	DurationMs int64                  `yaml:"duration_ms"`
	DecayRate  int32                  `yaml:"decay_rate"`
	Effects    []chargeEffectOverride `yaml:"effects"`
}

type chargeEffectOverride struct {
	Stat      string  `yaml:"stat"`
	Value     float64 `yaml:"value"`
	Kind      string  `yaml:"kind"` // flat | percentage | multiplier
	PerCharge bool    `yaml:"per_charge"`
}

type flaskBaseOverride struct {
	ID             string  `yaml:"id"`
	Name           string  `yaml:"name"`
	BaseType       string  `yaml:"base_type"`
	Type           string  `yaml:"type"` // life | mana | hybrid | utility
	RecoveryAmount float64 `yaml:"recovery_amount"`
	MaxCharges     int32   `yaml:"max_charges"`
	UsedPerUse     int32   `yaml:"used_per_use"`
	GainOnKill     int32   `yaml:"gain_on_kill"`
	GainOnCrit     int32   `yaml:"gain_on_crit"`
	ChargeRecovery float64 `yaml:"charge_recovery"`
	RequiredLevel  int32   `yaml:"required_level"`
}

// LoadOverrides reads a yaml override file and merges it into the loaded
// registries. Must be called after LoadAll.
func LoadOverrides(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read overrides %s: %w", path, err)
	}

	var f overrideFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse overrides %s: %w", path, err)
	}

	for _, o := range f.ChargeTypes {
		ct, err := o.toChargeType()
		if err != nil {
			return fmt.Errorf("charge type %q: %w", o.ID, err)
		}
		chargeTypeTable[ct.ID] = ct
	}
	for _, o := range f.FlaskBases {
		fb, err := o.toFlaskBase()
		if err != nil {
			return fmt.Errorf("flask base %q: %w", o.ID, err)
		}
		flaskBaseTable[fb.ID] = fb
	}

	slog.Info("applied definition overrides",
		"path", path,
		"chargeTypes", len(f.ChargeTypes),
		"flaskBases", len(f.FlaskBases))
	return nil
}

func (o chargeTypeOverride) toChargeType() (*model.ChargeType, error) {
	if o.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if o.MaxCharges < 1 {
		return nil, fmt.Errorf("max_charges must be >= 1, got %d", o.MaxCharges)
	}
	if o.DecayRate < 0 {
		return nil, fmt.Errorf("decay_rate must be >= 0, got %d", o.DecayRate)
	}

	var cat model.ChargeCategory
	switch o.Category {
	case "power":
		cat = model.CategoryPower
	case "frenzy":
		cat = model.CategoryFrenzy
	case "endurance":
		cat = model.CategoryEndurance
	case "spirit":
		cat = model.CategorySpirit
	case "flask":
		cat = model.CategoryFlask
	default:
		return nil, fmt.Errorf("unknown category %q", o.Category)
	}

	ct := &model.ChargeType{
		ID:         o.ID,
		Name:       o.Name,
		Category:   cat,
		MaxCharges: o.MaxCharges,
		DurationMs: o.DurationMs,
		DecayRate:  o.DecayRate,
	}
	for _, e := range o.Effects {
		var kind model.ValueKind
		switch e.Kind {
		case "flat", "":
			kind = model.ValueFlat
		case "percentage":
			kind = model.ValuePercentage
		case "multiplier":
			kind = model.ValueMultiplier
		default:
			return nil, fmt.Errorf("effect %q: unknown kind %q", e.Stat, e.Kind)
		}
		ct.Effects = append(ct.Effects, model.ChargeEffect{
			Stat: e.Stat, Value: e.Value, Kind: kind, PerCharge: e.PerCharge,
		})
	}
	return ct, nil
}

func (o flaskBaseOverride) toFlaskBase() (*model.FlaskData, error) {
	if o.ID == "" {
		return nil, fmt.Errorf("missing id")
	}
	if o.MaxCharges < 1 {
		return nil, fmt.Errorf("max_charges must be >= 1, got %d", o.MaxCharges)
	}
	if o.UsedPerUse < 1 || o.UsedPerUse > o.MaxCharges {
		return nil, fmt.Errorf("used_per_use %d out of range 1..%d", o.UsedPerUse, o.MaxCharges)
	}

	var ft model.FlaskType
	switch o.Type {
	case "life":
		ft = model.FlaskLife
	case "mana":
		ft = model.FlaskMana
	case "hybrid":
		ft = model.FlaskHybrid
	case "utility":
		ft = model.FlaskUtility
	default:
		return nil, fmt.Errorf("unknown flask type %q", o.Type)
	}

	return &model.FlaskData{
		ID:             o.ID,
		Name:           o.Name,
		BaseType:       o.BaseType,
		Type:           ft,
		RecoveryAmount: o.RecoveryAmount,
		Charges: model.FlaskCharges{
			Current:        o.MaxCharges,
			Maximum:        o.MaxCharges,
			UsedPerUse:     o.UsedPerUse,
			GainOnKill:     o.GainOnKill,
			GainOnCrit:     o.GainOnCrit,
			ChargeRecovery: o.ChargeRecovery,
		},
		Requirements: model.FlaskRequirements{Level: o.RequiredLevel},
	}, nil
}
