package types

import "github.com/evermart/evermart-backend/pkg/enums"

// ShippingInfo describes how a product ships and what it costs. Persisted as
// jsonb on the product row.
type ShippingInfo struct {
	Type enums.ShippingType `json:"type"`
	Cost float64            `json:"cost"`
}

// IsFree reports whether the product ships at no charge.
func (s ShippingInfo) IsFree() bool {
	return s.Type == enums.ShippingTypeFree
}
