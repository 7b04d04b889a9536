package providers

import (
	"context"
	"errors"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

// ErrPostcodeNotFound indicates the lookup service does not know the
// postcode (a 404-equivalent response, not a transport failure).
var ErrPostcodeNotFound = errors.New("postcode not found")

// PostcodeRecord is the lookup service's metadata for a known postcode.
type PostcodeRecord struct {
	Postcode      string
	Region        string
	AdminDistrict string
	AdminWard     string
}

// PostcodeProvider resolves UK postcodes to region/district metadata.
type PostcodeProvider interface {
	// Lookup resolves a postcode. Returns ErrPostcodeNotFound for unknown
	// postcodes and other errors for transport/service failures.
	Lookup(ctx context.Context, postcode string) (*PostcodeRecord, error)
}

// AddressProvider returns candidate addresses for a search term.
type AddressProvider interface {
	FindAddresses(ctx context.Context, term string) ([]entities.AddressCandidate, error)
}
