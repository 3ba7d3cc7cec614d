package provider

import (
	"context"

	"github.com/shopspring/decimal"

	"portfoliohub/internal/domain"
)

// OMS is the position-provider capability backed by the order management
// system. Implementations report backend failures as errors; absence of an
// account is signalled with a nil Account and a nil error.
type OMS interface {
	// GetAccountByID returns the account, or nil if no such account exists.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByClient returns all accounts owned by the client. A client
	// with no accounts yields an empty slice, not an error.
	GetAccountsByClient(ctx context.Context, clientID string) ([]domain.Account, error)

	// GetPositionsByAccount returns the account's positions. An empty slice is
	// returned whether the account has no holdings or does not exist; account
	// existence must be checked separately via GetAccountByID.
	GetPositionsByAccount(ctx context.Context, accountID string) ([]domain.Position, error)
}

// MarketData is the pricing-provider capability backed by the vendor feed.
// Symbol lookups are case-insensitive; implementations normalize to uppercase.
type MarketData interface {
	// GetCurrentPrice returns a usable price for the symbol. Unknown symbols
	// yield the provider's fallback price, never a not-found error.
	GetCurrentPrice(ctx context.Context, symbol string) (decimal.Decimal, error)

	// GetInstrumentBySymbol returns instrument metadata, or nil if the symbol
	// is unknown to the vendor.
	GetInstrumentBySymbol(ctx context.Context, symbol string) (*domain.Instrument, error)
}
