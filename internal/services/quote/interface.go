package quote

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_provider.go github.com/KirkDiggler/focusbot/internal/services/quote Provider

// Provider fetches motivational quotes for the session panel
type Provider interface {
	// FetchQuote returns a formatted quote. It never fails; the fallback quote
	// is returned when the quote API can't be reached.
	FetchQuote(ctx context.Context) string
}
