package provider

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"portfoliohub/internal/domain"
)

// SimulatedMarketData is an in-memory vendor feed. The price table may be
// updated while requests read it (the NATS tick consumer does this), so it is
// guarded by a RWMutex. Instrument metadata is fixed at construction.
type SimulatedMarketData struct {
	mu          sync.RWMutex
	prices      map[string]decimal.Decimal
	instruments map[string]domain.Instrument
	fallback    decimal.Decimal
}

// NewSimulatedMarketData creates a SimulatedMarketData over the given price
// and instrument tables. Keys are normalized to uppercase. fallback is the
// price returned for symbols not in the table.
func NewSimulatedMarketData(prices map[string]decimal.Decimal, instruments map[string]domain.Instrument, fallback decimal.Decimal) *SimulatedMarketData {
	m := &SimulatedMarketData{
		prices:      make(map[string]decimal.Decimal, len(prices)),
		instruments: make(map[string]domain.Instrument, len(instruments)),
		fallback:    fallback,
	}
	for sym, price := range prices {
		m.prices[strings.ToUpper(sym)] = price
	}
	for sym, inst := range instruments {
		m.instruments[strings.ToUpper(sym)] = inst
	}
	return m
}

// NewSeededMarketData creates a SimulatedMarketData loaded with the demo
// dataset: prices for five large caps and instrument metadata for three.
func NewSeededMarketData(fallback decimal.Decimal) *SimulatedMarketData {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	prices := map[string]decimal.Decimal{
		"AAPL":  decimal.RequireFromString("175.25"),
		"MSFT":  decimal.RequireFromString("380.50"),
		"GOOGL": decimal.RequireFromString("140.75"),
		"TSLA":  decimal.RequireFromString("250.00"),
		"AMZN":  decimal.RequireFromString("145.30"),
	}
	instruments := map[string]domain.Instrument{
		"AAPL": {
			Symbol:       "AAPL",
			Name:         "Apple Inc.",
			AssetClass:   domain.AssetClassEquity,
			Exchange:     "NASDAQ",
			CurrentPrice: prices["AAPL"],
			Currency:     "USD",
			SecurityID:   "037833100",
			Sector:       "Technology",
			Industry:     "Consumer Electronics",
			LastUpdated:  today,
		},
		"MSFT": {
			Symbol:       "MSFT",
			Name:         "Microsoft Corporation",
			AssetClass:   domain.AssetClassEquity,
			Exchange:     "NASDAQ",
			CurrentPrice: prices["MSFT"],
			Currency:     "USD",
			SecurityID:   "594918104",
			Sector:       "Technology",
			Industry:     "Software",
			LastUpdated:  today,
		},
		"GOOGL": {
			Symbol:       "GOOGL",
			Name:         "Alphabet Inc.",
			AssetClass:   domain.AssetClassEquity,
			Exchange:     "NASDAQ",
			CurrentPrice: prices["GOOGL"],
			Currency:     "USD",
			SecurityID:   "02079K305",
			Sector:       "Technology",
			Industry:     "Internet Content & Information",
			LastUpdated:  today,
		},
	}
	return NewSimulatedMarketData(prices, instruments, fallback)
}

// GetCurrentPrice returns the symbol's price, or the fallback price for
// symbols unknown to the feed. It never signals not-found.
func (m *SimulatedMarketData) GetCurrentPrice(_ context.Context, symbol string) (decimal.Decimal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if price, ok := m.prices[strings.ToUpper(symbol)]; ok {
		return price, nil
	}
	return m.fallback, nil
}

// GetInstrumentBySymbol returns instrument metadata, or nil for unknown symbols.
func (m *SimulatedMarketData) GetInstrumentBySymbol(_ context.Context, symbol string) (*domain.Instrument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inst, ok := m.instruments[strings.ToUpper(symbol)]; ok {
		return &inst, nil
	}
	return nil, nil
}

// SetPrice updates (or adds) the price for a symbol. Used by the vendor-feed
// tick consumer.
func (m *SimulatedMarketData) SetPrice(symbol string, price decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[strings.ToUpper(symbol)] = price
}
