package providers

import (
	"context"
	"time"
)

// PriceIndexPoint is one monthly data point from the house price index.
type PriceIndexPoint struct {
	Date         string
	AveragePrice float64
	SalesVolume  int
}

// PriceIndexProvider fetches house price index data for a statistical area.
type PriceIndexProvider interface {
	// LatestIndex returns the most recent data point for the area code in
	// the given month, or an error when the index has no usable data.
	LatestIndex(ctx context.Context, areaCode string, month time.Time) (*PriceIndexPoint, error)
}
