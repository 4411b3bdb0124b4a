package domain

import "fmt"

type ShippingMethod string

const (
	ShippingDoorToDoor ShippingMethod = "door_to_door"
	ShippingPickUp     ShippingMethod = "pick_up"
	// ShippingEWallet is listed for display but stays disabled until wallet payments exist.
	ShippingEWallet ShippingMethod = "ewallet"
)

// ShippingOption is a method together with its availability flag.
type ShippingOption struct {
	Method  ShippingMethod
	Enabled bool
}

// ShippingMethods lists every method in display order.
func ShippingMethods() []ShippingOption {
	return []ShippingOption{
		{Method: ShippingDoorToDoor, Enabled: ShippingDoorToDoor.Enabled()},
		{Method: ShippingPickUp, Enabled: ShippingPickUp.Enabled()},
		{Method: ShippingEWallet, Enabled: ShippingEWallet.Enabled()},
	}
}

func ParseShippingMethod(s string) (ShippingMethod, error) {
	switch m := ShippingMethod(s); m {
	case ShippingDoorToDoor, ShippingPickUp, ShippingEWallet:
		return m, nil
	default:
		return "", fmt.Errorf("shipping method[%s] is not known", s)
	}
}

func (m ShippingMethod) Enabled() bool {
	switch m {
	case ShippingDoorToDoor, ShippingPickUp:
		return true
	default:
		return false
	}
}

func (m ShippingMethod) String() string {
	return string(m)
}
