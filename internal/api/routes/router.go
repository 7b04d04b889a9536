package routes

import (
	"net/http"

	"github.com/S3nssay/catwalkframes-sub000/internal/api/handlers"
	"github.com/S3nssay/catwalkframes-sub000/internal/api/middleware"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux              *http.ServeMux
	valuationHandler *handlers.ValuationHandler
	aiHandler        *handlers.AIHandler
	addressHandler   *handlers.AddressHandler
	propertyHandler  *handlers.PropertyHandler
	metrics          *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	valuationHandler *handlers.ValuationHandler,
	aiHandler *handlers.AIHandler,
	addressHandler *handlers.AddressHandler,
	propertyHandler *handlers.PropertyHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:              http.NewServeMux(),
		valuationHandler: valuationHandler,
		aiHandler:        aiHandler,
		addressHandler:   addressHandler,
		propertyHandler:  propertyHandler,
		metrics:          metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Valuation funnel endpoints
	r.mux.HandleFunc("POST /api/hpi-valuation", r.valuationHandler.ProcessValuation)
	r.mux.HandleFunc("POST /api/valuation-request", r.valuationHandler.RecordValuation)

	// Natural-language endpoints
	r.mux.HandleFunc("POST /api/ai/parse", r.aiHandler.ParseQuery)
	r.mux.HandleFunc("POST /api/ai/chat", r.aiHandler.Chat)

	// Address lookup endpoint
	r.mux.HandleFunc("GET /api/addresses/lookup", r.addressHandler.LookupAddresses)

	// Property endpoints
	if r.propertyHandler != nil {
		r.mux.HandleFunc("POST /api/properties/natural-search", r.propertyHandler.NaturalSearch)
		r.mux.HandleFunc("GET /api/properties", r.propertyHandler.ListProperties)
		r.mux.HandleFunc("GET /api/properties/{id}", r.propertyHandler.GetProperty)
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so error responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
