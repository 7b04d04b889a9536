package services

import (
	"context"

	"github.com/S3nssay/catwalkframes-sub000/internal/domain/entities"
	"github.com/S3nssay/catwalkframes-sub000/internal/domain/providers"
	"github.com/S3nssay/catwalkframes-sub000/internal/infrastructure/observability"
)

const fallbackChatReply = "Thanks for getting in touch! I can help you search our West London property listings or arrange a free valuation of your home. What can I do for you?"

// IntentService resolves query intent, preferring the LLM parser and
// falling back to the deterministic one on any error.
type IntentService struct {
	primary  providers.IntentParser
	fallback providers.IntentParser
	chat     providers.ChatResponder
}

// NewIntentService creates an intent service. primary and chat may be nil
// when no LLM is configured; the deterministic parser then handles
// everything.
func NewIntentService(primary providers.IntentParser, fallback providers.IntentParser, chat providers.ChatResponder) *IntentService {
	return &IntentService{primary: primary, fallback: fallback, chat: chat}
}

// ParseQuery returns the parsed intent for a free-text query. Never
// returns an error: LLM failures degrade to the deterministic parser.
func (s *IntentService) ParseQuery(ctx context.Context, query string) *entities.ParsedIntent {
	if s.primary != nil {
		parsed, err := s.primary.ParseQuery(ctx, query)
		if err == nil {
			return parsed
		}
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Msg("LLM intent parsing failed, using deterministic parser")
	}

	parsed, err := s.fallback.ParseQuery(ctx, query)
	if err != nil {
		// The deterministic parser does not fail; guard anyway.
		return &entities.ParsedIntent{
			Intent:      entities.IntentUnknown,
			Confidence:  0,
			Explanation: "parsing unavailable",
		}
	}
	return parsed
}

// Chat answers a conversational message. Falls back to a canned reply
// when the responder is unconfigured or errors.
func (s *IntentService) Chat(ctx context.Context, message string) string {
	if s.chat == nil {
		return fallbackChatReply
	}
	reply, err := s.chat.Chat(ctx, message)
	if err != nil || reply == "" {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Msg("chat completion failed, using canned reply")
		return fallbackChatReply
	}
	return reply
}
