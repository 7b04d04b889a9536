package services

import (
	"context"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/observability"
)

const (
	// ukWideAreaCode is the index area used when no regional match exists.
	ukWideAreaCode = "United_Kingdom"

	offerDiscountPercentage = 15
	defaultRecentSales      = 5
)

// regionAreaCodes maps the UK's 12 statistical regions to the price index
// service's area codes. Local-authority and region names are matched
// against the keys: exact first, then substring containment either way.
var regionAreaCodes = map[string]string{
	"london":                   "London",
	"south east":               "South_East",
	"south west":               "South_West",
	"east of england":          "East_of_England",
	"east midlands":            "East_Midlands",
	"west midlands":            "West_Midlands",
	"north east":               "North_East",
	"north west":               "North_West",
	"yorkshire and the humber": "Yorkshire_and_The_Humber",
	"wales":                    "Wales",
	"scotland":                 "Scotland",
	"northern ireland":         "Northern_Ireland",
}

// basePrices is the hardcoded last-resort tier by property type, whole GBP.
var basePrices = map[entities.PropertyType]int{
	entities.PropertyTypeDetached:     425000,
	entities.PropertyTypeSemiDetached: 275000,
	entities.PropertyTypeTerraced:     240000,
	entities.PropertyTypeFlat:         210000,
	entities.PropertyTypeBungalow:     350000,
	entities.PropertyTypeOther:        290000,
}

// typeMultipliers adjusts an index average (which blends all property
// types) toward the requested type.
var typeMultipliers = map[entities.PropertyType]float64{
	entities.PropertyTypeDetached:     1.4,
	entities.PropertyTypeSemiDetached: 1.2,
	entities.PropertyTypeTerraced:     1.0,
	entities.PropertyTypeFlat:         0.9,
	entities.PropertyTypeOther:        1.1,
}

// PricingService estimates market value through tiered degradation:
// regional index, UK-wide index, hardcoded base prices. It never returns
// an error to the caller.
type PricingService struct {
	postcodes  providers.PostcodeProvider
	priceIndex providers.PriceIndexProvider
	metrics    *observability.Metrics
	now        func() time.Time
}

// NewPricingService creates a new pricing service.
func NewPricingService(postcodes providers.PostcodeProvider, priceIndex providers.PriceIndexProvider) *PricingService {
	return &PricingService{
		postcodes:  postcodes,
		priceIndex: priceIndex,
		now:        time.Now,
	}
}

// SetMetrics enables fallback-tier and upstream-error metrics.
func (s *PricingService) SetMetrics(metrics *observability.Metrics) {
	s.metrics = metrics
}

// Estimate returns a price estimate for the postcode, adjusted by property
// type and bedroom count. Always returns a value; upstream failures
// degrade through the fallback tiers.
func (s *PricingService) Estimate(ctx context.Context, postcode string, propertyType entities.PropertyType, bedrooms int) *entities.PropertyPriceEstimate {
	areaCode := ukWideAreaCode
	if record, err := s.postcodes.Lookup(ctx, postcode); err == nil {
		if code, ok := resolveAreaCode(record.AdminDistrict, record.Region); ok {
			areaCode = code
		}
	} else {
		s.recordUpstreamError(ctx, "postcodes")
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("postcode", postcode).
			Msg("postcode region lookup failed, using UK-wide index")
	}

	point, err := s.priceIndex.LatestIndex(ctx, areaCode, s.now())
	if err != nil || point == nil || point.AveragePrice <= 0 {
		if err != nil {
			s.recordUpstreamError(ctx, "price_index")
		}
		s.recordFallback(ctx, "national")
		return s.estimateNationalAverage(ctx, propertyType, bedrooms)
	}

	return s.buildEstimate(point.AveragePrice, point.SalesVolume, point.Date, propertyType, bedrooms)
}

// estimateNationalAverage tries one UK-wide index fetch, then the
// hardcoded base-price table.
func (s *PricingService) estimateNationalAverage(ctx context.Context, propertyType entities.PropertyType, bedrooms int) *entities.PropertyPriceEstimate {
	point, err := s.priceIndex.LatestIndex(ctx, ukWideAreaCode, s.now())
	if err == nil && point != nil && point.AveragePrice > 0 {
		return s.buildEstimate(point.AveragePrice, point.SalesVolume, point.Date, propertyType, bedrooms)
	}

	if err != nil {
		s.recordUpstreamError(ctx, "price_index")
	}
	s.recordFallback(ctx, "hardcoded")
	observability.LoggerFromContext(ctx).Warn().
		Err(err).
		Msg("UK-wide index unavailable, using base price table")

	base, ok := basePrices[propertyType]
	if !ok {
		base = basePrices[entities.PropertyTypeOther]
	}
	// The base table is already per-type, so only the bedroom multiplier
	// applies here.
	average := int(math.Round(float64(base) * bedroomMultiplier(bedrooms)))
	return finishEstimate(average, defaultRecentSales, s.now().UTC().Format(time.RFC3339))
}

func (s *PricingService) buildEstimate(indexAverage float64, salesVolume int, date string, propertyType entities.PropertyType, bedrooms int) *entities.PropertyPriceEstimate {
	average := int(math.Round(indexAverage * typeMultiplier(propertyType) * bedroomMultiplier(bedrooms)))

	recentSales := defaultRecentSales
	if salesVolume > 0 {
		recentSales = clamp(int(math.Round(float64(salesVolume)/10)), 1, 100)
	}

	if date == "" {
		date = s.now().UTC().Format(time.RFC3339)
	}
	return finishEstimate(average, recentSales, date)
}

func finishEstimate(average, recentSales int, lastUpdated string) *entities.PropertyPriceEstimate {
	return &entities.PropertyPriceEstimate{
		AveragePrice: average,
		RecentSales:  recentSales,
		MinPrice:     int(math.Round(float64(average) * 0.9)),
		MaxPrice:     int(math.Round(float64(average) * 1.1)),
		LastUpdated:  lastUpdated,
	}
}

func (s *PricingService) recordFallback(ctx context.Context, tier string) {
	if s.metrics == nil {
		return
	}
	s.metrics.FallbackCount.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tier", tier),
	))
}

func (s *PricingService) recordUpstreamError(ctx context.Context, upstream string) {
	if s.metrics == nil {
		return
	}
	s.metrics.UpstreamErrors.Add(ctx, 1, metric.WithAttributes(
		attribute.String("upstream", upstream),
	))
}

// CalculateOffer applies the fixed discount policy to a market value.
// Pure derivation: offerPrice + discountAmount == marketValue.
func CalculateOffer(marketValue int) entities.OfferDetails {
	discount := int(math.Round(float64(marketValue) * float64(offerDiscountPercentage) / 100))
	return entities.OfferDetails{
		OfferPrice:         marketValue - discount,
		DiscountAmount:     discount,
		DiscountPercentage: offerDiscountPercentage,
	}
}

// resolveAreaCode maps a local authority, then a region, to an index area
// code. Exact match first, then substring containment in either direction.
func resolveAreaCode(localAuthority, region string) (string, bool) {
	for _, name := range []string{localAuthority, region} {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if candidate == "" {
			continue
		}
		if code, ok := regionAreaCodes[candidate]; ok {
			return code, true
		}
		for key, code := range regionAreaCodes {
			if strings.Contains(candidate, key) || strings.Contains(key, candidate) {
				return code, true
			}
		}
	}
	return "", false
}

func typeMultiplier(propertyType entities.PropertyType) float64 {
	if m, ok := typeMultipliers[propertyType]; ok {
		return m
	}
	return typeMultipliers[entities.PropertyTypeOther]
}

func bedroomMultiplier(bedrooms int) float64 {
	switch {
	case bedrooms <= 1:
		return 0.7
	case bedrooms == 2:
		return 0.9
	case bedrooms == 3:
		return 1.0
	case bedrooms == 4:
		return 1.3
	default:
		return 1.5
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
