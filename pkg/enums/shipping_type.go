package enums

import "fmt"

// ShippingType distinguishes free from paid shipping on a product.
type ShippingType string

const (
	ShippingTypeFree ShippingType = "Free"
	ShippingTypePaid ShippingType = "Paid"
)

var validShippingTypes = []ShippingType{
	ShippingTypeFree,
	ShippingTypePaid,
}

// String implements fmt.Stringer.
func (s ShippingType) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ShippingType.
func (s ShippingType) IsValid() bool {
	for _, candidate := range validShippingTypes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseShippingType converts raw input into a ShippingType.
func ParseShippingType(value string) (ShippingType, error) {
	for _, candidate := range validShippingTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipping type %q", value)
}
