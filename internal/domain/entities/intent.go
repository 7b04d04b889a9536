package entities

// Intent classifies the purpose of a free-text user query
type Intent string

const (
	IntentConversation   Intent = "conversation"
	IntentPropertySearch Intent = "property_search"
	IntentUnknown        Intent = "unknown"
)

// SearchFilters is the structured form of a property search query. All
// fields are optional; zero values mean "not specified".
type SearchFilters struct {
	ListingType  ListingType    `json:"listingType,omitempty"`
	PropertyType []PropertyType `json:"propertyType,omitempty"`
	Bedrooms     int            `json:"bedrooms,omitempty"`
	Bathrooms    int            `json:"bathrooms,omitempty"`
	MinPrice     int            `json:"minPrice,omitempty"`
	MaxPrice     int            `json:"maxPrice,omitempty"`
	Postcode     string         `json:"postcode,omitempty"`
	Areas        []string       `json:"areas,omitempty"`
}

// ParsedIntent is the output contract shared by both intent parser
// implementations. Confidence is always within [0,1].
type ParsedIntent struct {
	Filters     SearchFilters `json:"filters"`
	Intent      Intent        `json:"intent"`
	Confidence  float64       `json:"confidence"`
	Explanation string        `json:"explanation"`
}

// ClampConfidence forces the confidence score into [0,1].
func (p *ParsedIntent) ClampConfidence() {
	if p.Confidence < 0 {
		p.Confidence = 0
	}
	if p.Confidence > 1 {
		p.Confidence = 1
	}
}
