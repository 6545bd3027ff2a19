package checkout

// LineProductInput carries the product fields Stripe needs for a line item.
type LineProductInput struct {
	Title  string   `json:"title"`
	Price  float64  `json:"price"`
	Images []string `json:"images"`
}

// LineItemInput is one purchasable line in a checkout session request.
type LineItemInput struct {
	Quantity int              `json:"quantity"`
	Product  LineProductInput `json:"product"`
}

// CreateSessionInput is the payload for starting a hosted checkout.
type CreateSessionInput struct {
	Products []LineItemInput `json:"products"`
}

// SessionDTO is the handoff the frontend needs to redirect into Stripe.
type SessionDTO struct {
	ID  string `json:"id"`
	URL string `json:"url,omitempty"`
}
