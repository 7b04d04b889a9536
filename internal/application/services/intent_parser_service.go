package services

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/pkg/ukpostcode"
)

var (
	greetingPattern = regexp.MustCompile(`(?i)^\s*(hi|hiya|hello|hey|good\s+(morning|afternoon|evening)|thanks|thank\s+you|how\s+are\s+you)\b`)
	searchCues      = regexp.MustCompile(`(?i)\b(show|find|search|looking\s+for|browse|list|properties|property|flats?|houses?|apartments?|studios?|maisonettes?|bungalows?|homes?)\b`)

	rentPattern = regexp.MustCompile(`(?i)\b(rent|rental|renting|let|letting|to\s+let|pcm|per\s+month)\b`)
	salePattern = regexp.MustCompile(`(?i)\b(buy|buying|sale|purchase|for\s+sale)\b`)

	bedroomPattern  = regexp.MustCompile(`(?i)(\d+)\s*bed(room)?s?\b`)
	bathroomPattern = regexp.MustCompile(`(?i)(\d+)\s*bath(room)?s?\b`)

	maxPricePattern     = regexp.MustCompile(`(?i)\b(?:under|below|max(?:imum)?|up\s+to|less\s+than)\s*£?\s*([\d,]+\s*k?)`)
	minPricePattern     = regexp.MustCompile(`(?i)\b(?:over|above|min(?:imum)?|more\s+than|at\s+least|from)\s*£?\s*([\d,]+\s*k?)`)
	betweenPricePattern = regexp.MustCompile(`(?i)\bbetween\s*£?\s*([\d,]+\s*k?)\s*(?:and|-|to)\s*£?\s*([\d,]+\s*k?)`)
)

// propertyTypeVocab maps vocabulary words to canonical property types. All
// matches are collected, not just the first.
var propertyTypeVocab = []struct {
	pattern      *regexp.Regexp
	propertyType entities.PropertyType
}{
	{regexp.MustCompile(`(?i)\bsemi[\s-]?detached\b`), entities.PropertyTypeSemiDetached},
	{regexp.MustCompile(`(?i)\bdetached\b`), entities.PropertyTypeDetached},
	{regexp.MustCompile(`(?i)\bterraced?\b`), entities.PropertyTypeTerraced},
	{regexp.MustCompile(`(?i)\b(flats?|apartments?|studios?|maisonettes?)\b`), entities.PropertyTypeFlat},
	{regexp.MustCompile(`(?i)\bbungalows?\b`), entities.PropertyTypeBungalow},
	{regexp.MustCompile(`(?i)\b(houses?|homes?)\b`), entities.PropertyTypeOther},
}

// areaGazetteer canonicalizes the West-London neighbourhoods we operate in.
var areaGazetteer = map[string]string{
	"bayswater":       "Bayswater",
	"notting hill":    "Notting Hill",
	"kensington":      "Kensington",
	"chelsea":         "Chelsea",
	"maida vale":      "Maida Vale",
	"paddington":      "Paddington",
	"westbourne park": "Westbourne Park",
	"holland park":    "Holland Park",
	"shepherd's bush": "Shepherd's Bush",
	"shepherds bush":  "Shepherd's Bush",
	"queen's park":    "Queen's Park",
	"queens park":     "Queen's Park",
	"ladbroke grove":  "Ladbroke Grove",
}

// outcodeAreas maps postcode districts to their primary neighbourhood.
var outcodeAreas = map[string]string{
	"W2":  "Bayswater",
	"W8":  "Kensington",
	"W9":  "Maida Vale",
	"W10": "Ladbroke Grove",
	"W11": "Notting Hill",
	"W12": "Shepherd's Bush",
	"W14": "Holland Park",
	"SW3": "Chelsea",
	"NW6": "Queen's Park",
}

// Confidence scoring: base when the query looks like a search, plus a
// fixed delta per extracted field, clamped to [0,1].
const (
	greetingConfidence = 0.9
	searchConfidence   = 0.5
	unknownConfidence  = 0.3
	fieldDelta         = 0.1
)

// RegexIntentParser is the deterministic fallback parser. It never fails
// and needs no external services.
type RegexIntentParser struct{}

// NewRegexIntentParser creates the deterministic parser.
func NewRegexIntentParser() *RegexIntentParser {
	return &RegexIntentParser{}
}

var _ providers.IntentParser = (*RegexIntentParser)(nil)

// ParseQuery extracts a search intent from the query via ordered regex
// patterns. Greetings short-circuit to a conversation intent.
func (p *RegexIntentParser) ParseQuery(_ context.Context, query string) (*entities.ParsedIntent, error) {
	if greetingPattern.MatchString(query) && !searchCues.MatchString(query) {
		return &entities.ParsedIntent{
			Intent:      entities.IntentConversation,
			Confidence:  greetingConfidence,
			Explanation: "greeting or conversational message",
		}, nil
	}

	filters := entities.SearchFilters{}
	matched := 0

	if rentPattern.MatchString(query) {
		filters.ListingType = entities.ListingTypeRent
		matched++
	} else if salePattern.MatchString(query) {
		filters.ListingType = entities.ListingTypeSale
		matched++
	}

	for _, entry := range propertyTypeVocab {
		if entry.pattern.MatchString(query) && !containsType(filters.PropertyType, entry.propertyType) {
			filters.PropertyType = append(filters.PropertyType, entry.propertyType)
		}
	}
	if len(filters.PropertyType) > 0 {
		matched++
	}

	if m := bedroomPattern.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filters.Bedrooms = n
			matched++
		}
	}
	if m := bathroomPattern.FindStringSubmatch(query); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			filters.Bathrooms = n
			matched++
		}
	}

	if m := betweenPricePattern.FindStringSubmatch(query); m != nil {
		filters.MinPrice = parsePriceString(m[1])
		filters.MaxPrice = parsePriceString(m[2])
		matched++
	} else {
		if m := maxPricePattern.FindStringSubmatch(query); m != nil {
			filters.MaxPrice = parsePriceString(m[1])
			matched++
		}
		if m := minPricePattern.FindStringSubmatch(query); m != nil {
			filters.MinPrice = parsePriceString(m[1])
			matched++
		}
	}

	lower := strings.ToLower(query)
	for key, canonical := range areaGazetteer {
		if strings.Contains(lower, key) && !containsString(filters.Areas, canonical) {
			filters.Areas = append(filters.Areas, canonical)
		}
	}
	for _, m := range ukpostcode.OutcodePattern.FindAllString(strings.ToUpper(query), -1) {
		if area, ok := outcodeAreas[m]; ok {
			filters.Postcode = m
			if !containsString(filters.Areas, area) {
				filters.Areas = append(filters.Areas, area)
			}
		}
	}
	if len(filters.Areas) > 0 || filters.Postcode != "" {
		matched++
	}

	isSearch := searchCues.MatchString(query) || matched > 0
	result := &entities.ParsedIntent{Filters: filters}
	if isSearch {
		result.Intent = entities.IntentPropertySearch
		result.Confidence = searchConfidence + float64(matched)*fieldDelta
		result.Explanation = "matched property search patterns"
	} else {
		result.Intent = entities.IntentUnknown
		result.Confidence = unknownConfidence
		result.Explanation = "no search patterns matched"
	}
	result.ClampConfidence()
	return result, nil
}

// parsePriceString turns a matched price token into whole GBP. A trailing
// "k" means thousands; bare values between 100 and 10000 exclusive are
// assumed to be thousands too.
func parsePriceString(raw string) int {
	cleaned := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), ",", ""))
	thousands := strings.Contains(cleaned, "k")
	cleaned = strings.TrimSpace(strings.ReplaceAll(cleaned, "k", ""))

	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0
	}
	if thousands {
		return n * 1000
	}
	if n > 100 && n < 10000 {
		return n * 1000
	}
	return n
}

func containsType(types []entities.PropertyType, t entities.PropertyType) bool {
	for _, existing := range types {
		if existing == t {
			return true
		}
	}
	return false
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
