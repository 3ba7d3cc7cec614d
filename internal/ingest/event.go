package ingest

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PriceEvent is the JSON structure for vendor price ticks received via NATS.
type PriceEvent struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Currency  string          `json:"currency,omitempty"`
	Timestamp string          `json:"timestamp"`
}

// Validate checks that the price event has all required fields and valid values.
func (e *PriceEvent) Validate() error {
	if e.Symbol == "" {
		return fmt.Errorf("missing required field: symbol")
	}
	if !e.Price.IsPositive() {
		return fmt.Errorf("price must be positive, got %s", e.Price)
	}
	if e.Timestamp == "" {
		return fmt.Errorf("missing required field: timestamp")
	}

	// Validate timestamp is parseable
	if _, err := time.Parse(time.RFC3339, e.Timestamp); err != nil {
		return fmt.Errorf("invalid timestamp: %w", err)
	}

	return nil
}
