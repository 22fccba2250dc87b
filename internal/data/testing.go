package data

import "github.com/udisondev/exilecraft/internal/model"

// Helpers for cross-package test setup. Tests install custom definitions
// on top of LoadAll without touching the built-in literal slices.

// SetTestChargeType installs a charge type definition.
func SetTestChargeType(ct model.ChargeType) {
	if chargeTypeTable == nil {
		chargeTypeTable = make(map[string]*model.ChargeType, 8)
	}
	chargeTypeTable[ct.ID] = &ct
}

// SetTestChargeSource installs a charge source definition.
func SetTestChargeSource(cs model.ChargeSource) {
	if chargeSourceTable == nil {
		chargeSourceTable = make(map[string]*model.ChargeSource, 8)
	}
	chargeSourceTable[cs.ID] = &cs
}

// SetTestConsumption installs a consumption definition.
func SetTestConsumption(cc model.ChargeConsumption) {
	if consumptionTable == nil {
		consumptionTable = make(map[string]*model.ChargeConsumption, 8)
	}
	consumptionTable[cc.ID] = &cc
}

// SetTestEnchantment installs an enchantment definition.
func SetTestEnchantment(e model.Enchantment) {
	if enchantmentTable == nil {
		enchantmentTable = make(map[string]*model.Enchantment, 8)
	}
	enchantmentTable[e.ID] = &e
}

// SetTestCraftOperation installs a crafting operation definition.
func SetTestCraftOperation(op model.CraftOperation) {
	if craftOperationTable == nil {
		craftOperationTable = make(map[string]*model.CraftOperation, 8)
	}
	craftOperationTable[op.ID] = &op
}
