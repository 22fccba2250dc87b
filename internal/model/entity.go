package model

// Component names the charge engine requires on a registered entity.
const (
	ComponentCharacter = "Character"
	ComponentCharges   = "Charges"
)

// Entity is the capability surface the engines need from the external
// entity-component system. Implementations live with the ECS collaborator.
type Entity interface {
	ObjectID() uint32
	HasComponents(names ...string) bool
}

// CurrencyHolder is the capability surface of the currency/inventory
// collaborator. Both calls are synchronous and authoritative.
type CurrencyHolder interface {
	HasRequiredCurrency(currency string, amount int64) bool
	ConsumeCurrency(currency string, amount int64) bool
}
