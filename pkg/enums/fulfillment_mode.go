package enums

import "fmt"

// FulfillmentMode describes how the buyer receives a sale.
type FulfillmentMode string

const (
	FulfillmentModePickup   FulfillmentMode = "pickup"
	FulfillmentModeDelivery FulfillmentMode = "delivery"
	FulfillmentModeDineIn   FulfillmentMode = "dine_in"
)

var validFulfillmentModes = []FulfillmentMode{
	FulfillmentModePickup,
	FulfillmentModeDelivery,
	FulfillmentModeDineIn,
}

// String implements fmt.Stringer.
func (f FulfillmentMode) String() string {
	return string(f)
}

// IsValid reports whether the value is a known FulfillmentMode.
func (f FulfillmentMode) IsValid() bool {
	for _, candidate := range validFulfillmentModes {
		if candidate == f {
			return true
		}
	}
	return false
}

// ParseFulfillmentMode converts raw input into a FulfillmentMode.
func ParseFulfillmentMode(value string) (FulfillmentMode, error) {
	for _, candidate := range validFulfillmentModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid fulfillment mode %q", value)
}
