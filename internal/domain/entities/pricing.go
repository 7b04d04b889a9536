package entities

// PostcodeValidation is the result of validating a raw postcode against the
// lookup service. Produced fresh per request and never persisted.
type PostcodeValidation struct {
	Valid    bool   `json:"valid"`
	Postcode string `json:"postcode,omitempty"`
	Region   string `json:"region,omitempty"`
	District string `json:"district,omitempty"`
}

// PropertyPriceEstimate is a per-request market value estimate in whole GBP.
type PropertyPriceEstimate struct {
	AveragePrice int    `json:"averagePrice"`
	RecentSales  int    `json:"recentSales"`
	MinPrice     int    `json:"minPrice"`
	MaxPrice     int    `json:"maxPrice"`
	LastUpdated  string `json:"lastUpdated"`
}

// OfferDetails is the cash-offer derivation from a market value estimate.
// Invariant: OfferPrice + DiscountAmount == market value (± rounding).
type OfferDetails struct {
	OfferPrice         int `json:"offerPrice"`
	DiscountAmount     int `json:"discountAmount"`
	DiscountPercentage int `json:"discountPercentage"`
}

// AddressCandidate is one possible address for a validated postcode.
type AddressCandidate struct {
	Line1    string `json:"line1"`
	Line2    string `json:"line2,omitempty"`
	Town     string `json:"town,omitempty"`
	Postcode string `json:"postcode"`
}
