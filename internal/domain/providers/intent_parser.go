package providers

import (
	"context"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
)

// IntentParser converts a free-text query into structured search filters
// plus an intent classification. Two implementations exist: a deterministic
// regex parser and an LLM-backed parser.
type IntentParser interface {
	ParseQuery(ctx context.Context, query string) (*entities.ParsedIntent, error)
}

// ChatResponder produces a conversational reply to a user message.
type ChatResponder interface {
	Chat(ctx context.Context, message string) (string, error)
}
