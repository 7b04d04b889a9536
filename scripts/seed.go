package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/database"
	"github.com/S3nssay/catwalkframes-sub000/internal/adapters/search"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/postgres"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/typesense"
	"github.com/S3nssay/catwalkframes-sub000/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS properties (
	id UUID PRIMARY KEY,
	postcode TEXT NOT NULL,
	address_line1 TEXT NOT NULL DEFAULT '',
	area TEXT NOT NULL DEFAULT '',
	property_type TEXT NOT NULL,
	bedrooms INT NOT NULL DEFAULT 0,
	bathrooms INT NOT NULL DEFAULT 0,
	price BIGINT NOT NULL DEFAULT 0,
	listing_type TEXT NOT NULL DEFAULT 'sale',
	description TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS contacts (
	id UUID PRIMARY KEY,
	full_name TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	phone TEXT NOT NULL,
	inquiry_type TEXT NOT NULL DEFAULT '',
	timeframe TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS valuations (
	id UUID PRIMARY KEY,
	contact_id UUID NOT NULL REFERENCES contacts(id),
	property_id UUID NULL,
	postcode TEXT NOT NULL,
	estimated_value BIGINT NOT NULL,
	offer_value BIGINT NOT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS message_notifications (
	id UUID PRIMARY KEY,
	channel TEXT NOT NULL,
	recipient TEXT NOT NULL,
	status TEXT NOT NULL,
	message_sid TEXT NULL,
	error_message TEXT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer pgClient.Close()

	tsClient, err := typesense.NewClient(&cfg.Typesense)
	var searchRepo *search.TypesenseAdapter
	if err == nil {
		searchRepo = search.NewTypesenseAdapter(tsClient)
		searchRepo.InitSchema(context.Background())
	}

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatalf("Failed to create schema: %v", err)
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, truncating tables before seeding")
		_, err := pgClient.DB().ExecContext(ctx, `
			TRUNCATE TABLE
				message_notifications,
				valuations,
				contacts,
				properties
			RESTART IDENTITY CASCADE
		`)
		if err != nil {
			log.Fatalf("Failed to reset tables: %v", err)
		}
	}

	propertyRepo := database.NewPropertyAdapter(pgClient)

	properties := []entities.Property{
		{ID: uuid.New().String(), Postcode: "W2 4UW", AddressLine1: "12 Porchester Gardens", Area: "Bayswater", PropertyType: entities.PropertyTypeFlat, Bedrooms: 2, Bathrooms: 1, Price: 3200, ListingType: entities.ListingTypeRent, Description: "Bright two-bedroom flat moments from Kensington Gardens"},
		{ID: uuid.New().String(), Postcode: "W11 2ES", AddressLine1: "45 Westbourne Grove", Area: "Notting Hill", PropertyType: entities.PropertyTypeFlat, Bedrooms: 1, Bathrooms: 1, Price: 2400, ListingType: entities.ListingTypeRent, Description: "Characterful one-bed close to Portobello Road market"},
		{ID: uuid.New().String(), Postcode: "W8 4PX", AddressLine1: "8 Kensington Church Street", Area: "Kensington", PropertyType: entities.PropertyTypeFlat, Bedrooms: 3, Bathrooms: 2, Price: 1850000, ListingType: entities.ListingTypeSale, Description: "Lateral three-bedroom apartment with porter"},
		{ID: uuid.New().String(), Postcode: "SW3 5RZ", AddressLine1: "22 Flood Street", Area: "Chelsea", PropertyType: entities.PropertyTypeTerraced, Bedrooms: 4, Bathrooms: 3, Price: 3650000, ListingType: entities.ListingTypeSale, Description: "Freehold terraced house on a quiet Chelsea side street"},
		{ID: uuid.New().String(), Postcode: "W9 1JS", AddressLine1: "3 Warwick Avenue", Area: "Maida Vale", PropertyType: entities.PropertyTypeFlat, Bedrooms: 2, Bathrooms: 2, Price: 895000, ListingType: entities.ListingTypeSale, Description: "Canal-side two-bedroom with private balcony"},
		{ID: uuid.New().String(), Postcode: "W12 8QQ", AddressLine1: "67 Lime Grove", Area: "Shepherd's Bush", PropertyType: entities.PropertyTypeTerraced, Bedrooms: 3, Bathrooms: 1, Price: 2900, ListingType: entities.ListingTypeRent, Description: "Family house with garden near Westfield"},
		{ID: uuid.New().String(), Postcode: "NW6 6RD", AddressLine1: "19 Salusbury Road", Area: "Queen's Park", PropertyType: entities.PropertyTypeSemiDetached, Bedrooms: 4, Bathrooms: 2, Price: 1450000, ListingType: entities.ListingTypeSale, Description: "Semi-detached Victorian house by the park"},
		{ID: uuid.New().String(), Postcode: "W10 5NL", AddressLine1: "88 Golborne Road", Area: "Ladbroke Grove", PropertyType: entities.PropertyTypeFlat, Bedrooms: 1, Bathrooms: 1, Price: 1900, ListingType: entities.ListingTypeRent, Description: "Top-floor one-bed with far-reaching views"},
	}

	seeded := 0
	for i := range properties {
		properties[i].CreatedAt = time.Now()
		if err := propertyRepo.Create(ctx, &properties[i]); err != nil {
			log.Printf("Failed to create property %s: %v", properties[i].AddressLine1, err)
			continue
		}
		if searchRepo != nil {
			if err := searchRepo.Index(ctx, &properties[i]); err != nil {
				log.Printf("Failed to index property %s: %v", properties[i].AddressLine1, err)
			}
		}
		seeded++
	}

	log.Printf("Seeded %d properties", seeded)
}
