package hub

import (
	"context"

	"portfoliohub/internal/provider"
)

// ReferenceDataService resolves instrument metadata via the vendor feed.
type ReferenceDataService struct {
	marketData provider.MarketData
}

// NewReferenceDataService creates a ReferenceDataService over the market-data
// provider.
func NewReferenceDataService(marketData provider.MarketData) *ReferenceDataService {
	return &ReferenceDataService{marketData: marketData}
}

// GetInstrument returns reference data for the symbol, or NotFound if the
// vendor does not know it.
func (s *ReferenceDataService) GetInstrument(ctx context.Context, symbol string) (*InstrumentView, error) {
	inst, err := s.marketData.GetInstrumentBySymbol(ctx, symbol)
	if err != nil {
		return nil, ProviderFailure(err)
	}
	if inst == nil {
		return nil, NotFound("instrument", symbol)
	}
	view := NewInstrumentView(*inst)
	return &view, nil
}
