package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/cache"
	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/database"
	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/providers/addresses"
	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/providers/landregistry"
	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/providers/postcodes"
	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/search"
	"github.com/S3nssay/catwalkframes-sub000/internal/api/handlers"
	"github.com/S3nssay/catwalkframes-sub000/internal/api/routes"
	"github.com/S3nssay/catwalkframes-sub000/internal/application/services"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/repositories"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/openai"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/postgres"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/redis"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/typesense"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/notifications"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/observability"
	"github.com/S3nssay/catwalkframes-sub000/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL client: %v", err)
		// Continue without persistence - the funnel still prices and notifies
	} else {
		defer pgClient.Close()
		log.Println("PostgreSQL client initialized successfully")
	}

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize Typesense client
	typesenseClient, err := typesense.NewClient(&cfg.Typesense)
	if err != nil {
		log.Printf("Warning: Failed to initialize Typesense client: %v", err)
	} else {
		log.Println("Typesense client initialized successfully")
	}

	// Initialize adapters
	var propertyAdapter repositories.PropertyRepository
	var contactAdapter repositories.ContactRepository
	var valuationAdapter repositories.ValuationRepository
	var deliveryLogDB *sqlx.DB
	if pgClient != nil {
		propertyAdapter = database.NewPropertyAdapter(pgClient)
		contactAdapter = database.NewContactAdapter(pgClient)
		valuationAdapter = database.NewValuationAdapter(pgClient)
		deliveryLogDB = sqlx.NewDb(pgClient.DB(), "postgres")
	}

	var searchRepo repositories.PropertySearchRepository
	if typesenseClient != nil {
		adapter := search.NewTypesenseAdapter(typesenseClient)
		if err := adapter.InitSchema(context.Background()); err != nil {
			log.Printf("Warning: Failed to init Typesense schema: %v", err)
		}
		searchRepo = adapter
	}

	postcodeProvider := postcodes.NewClient(&cfg.Postcodes, cacheProvider)
	addressProvider := addresses.NewClient(&cfg.Addresses)
	priceIndexProvider := landregistry.NewClient(&cfg.LandRegistry)

	var llmParser providers.IntentParser
	var chatResponder providers.ChatResponder
	if cfg.OpenAI.APIKey == "" {
		log.Println("Warning: OPENAI_API_KEY is not set; using deterministic parser only")
	} else {
		openaiClient, err := openai.NewClient(&cfg.OpenAI)
		if err != nil {
			log.Printf("Warning: Failed to initialize OpenAI client: %v", err)
		} else {
			llmParser = openaiClient
			chatResponder = openaiClient
		}
	}

	var messageSender providers.MessageSender
	if !cfg.Twilio.Enabled() {
		log.Println("Warning: Twilio gateway is not configured; notifications disabled")
	} else {
		sender, err := notifications.NewTwilioSender(&cfg.Twilio)
		if err != nil {
			log.Printf("Warning: Failed to initialize Twilio sender: %v", err)
		} else {
			messageSender = sender
			log.Println("Twilio sender initialized successfully")
		}
	}

	// Initialize services
	postcodeService := services.NewPostcodeService(postcodeProvider)
	pricingService := services.NewPricingService(postcodeProvider, priceIndexProvider)
	pricingService.SetMetrics(metrics)
	notificationService := services.NewNotificationService(messageSender, deliveryLogDB)
	valuationService := services.NewValuationService(
		postcodeService,
		pricingService,
		notificationService,
		propertyAdapter,
		contactAdapter,
		valuationAdapter,
	)

	intentService := services.NewIntentService(llmParser, services.NewRegexIntentParser(), chatResponder)
	searchService := services.NewSearchService(intentService, searchRepo)

	// Initialize handlers
	valuationHandler := handlers.NewValuationHandler(valuationService)
	aiHandler := handlers.NewAIHandler(intentService)
	addressHandler := handlers.NewAddressHandler(addressProvider)

	var propertyHandler *handlers.PropertyHandler
	if propertyAdapter != nil {
		propertyHandler = handlers.NewPropertyHandler(searchService, propertyAdapter)
	}

	// Set up router
	router := routes.NewRouter(
		valuationHandler,
		aiHandler,
		addressHandler,
		propertyHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
