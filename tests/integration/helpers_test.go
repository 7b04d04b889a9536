//go:build integration

package integration

import (
	"context"
	"os"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/postgres"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/clients/typesense"
	"github.com/S3nssay/catwalkframes-sub000/pkg/config"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func newTestPostgresClient(t *testing.T) *postgres.Client {
	t.Helper()

	if os.Getenv("TEST_DB_HOST") == "" {
		t.Skip("Skipping integration test: TEST_DB_HOST not set")
	}

	cfg := &config.DatabaseConfig{
		Host:     getEnv("TEST_DB_HOST", "localhost"),
		Port:     getEnvAsInt("TEST_DB_PORT", 5432),
		User:     getEnv("TEST_DB_USER", "postgres"),
		Password: getEnv("TEST_DB_PASSWORD", "postgres"),
		Database: getEnv("TEST_DB_NAME", "catwalk_frames_test"),
		SSLMode:  getEnv("TEST_DB_SSLMODE", "disable"),
	}

	client, err := postgres.NewClient(cfg)
	require.NoError(t, err, "Failed to create postgres client")
	t.Cleanup(func() { client.Close() })

	ensureSchema(t, client)
	return client
}

// ensureSchema creates the tables the adapters expect. Matches the DDL in
// scripts/seed.go.
func ensureSchema(t *testing.T, client *postgres.Client) {
	t.Helper()

	ddl := `
CREATE TABLE IF NOT EXISTS properties (
	id UUID PRIMARY KEY,
	postcode TEXT NOT NULL,
	address_line1 TEXT NOT NULL,
	area TEXT NULL,
	property_type TEXT NOT NULL,
	bedrooms INT NOT NULL DEFAULT 0,
	bathrooms INT NOT NULL DEFAULT 0,
	price BIGINT NOT NULL DEFAULT 0,
	listing_type TEXT NOT NULL,
	description TEXT NULL,
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
`
	_, err := client.DB().ExecContext(context.Background(), ddl)
	require.NoError(t, err, "Failed to create schema")
}

func newTestTypesenseClient(t *testing.T) *typesense.Client {
	t.Helper()

	if os.Getenv("TEST_TYPESENSE_URL") == "" {
		t.Skip("Skipping integration test: TEST_TYPESENSE_URL not set")
	}

	cfg := &config.TypesenseConfig{
		URL:    getEnv("TEST_TYPESENSE_URL", "http://localhost:8108"),
		APIKey: getEnv("TEST_TYPESENSE_API_KEY", "xyz"),
	}

	client, err := typesense.NewClient(cfg)
	require.NoError(t, err, "Failed to create typesense client")
	return client
}
