package hub

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"portfoliohub/internal/domain"
	"portfoliohub/internal/provider"
)

// DefaultCurrency is reported for portfolios with no positions.
const DefaultCurrency = "USD"

var hundred = decimal.NewFromInt(100)

// PortfolioService aggregates an account's positions from the OMS and
// enriches each with live pricing from the vendor feed.
type PortfolioService struct {
	oms        provider.OMS
	marketData provider.MarketData
	now        func() time.Time
}

// NewPortfolioService creates a PortfolioService over the two providers.
func NewPortfolioService(oms provider.OMS, marketData provider.MarketData) *PortfolioService {
	return &PortfolioService{oms: oms, marketData: marketData, now: time.Now}
}

// GetPortfolio computes the valuation of the account's holdings.
//
// The account existence check precedes position retrieval: an empty position
// list is a valid portfolio for a known account, while an unknown account is
// NotFound. A pricing failure for any single position aborts the whole
// aggregation; there are no retries or partial results.
func (s *PortfolioService) GetPortfolio(ctx context.Context, accountID string) (*PortfolioView, error) {
	acct, err := s.oms.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, ProviderFailure(err)
	}
	if acct == nil {
		return nil, NotFound("account", accountID)
	}

	positions, err := s.oms.GetPositionsByAccount(ctx, accountID)
	if err != nil {
		return nil, ProviderFailure(err)
	}

	enriched := make([]EnrichedPosition, 0, len(positions))
	for _, pos := range positions {
		ep, err := s.enrich(ctx, pos)
		if err != nil {
			return nil, err
		}
		enriched = append(enriched, ep)
	}

	totalValue := decimal.Zero
	totalCostBasis := decimal.Zero
	for _, ep := range enriched {
		totalValue = totalValue.Add(ep.PositionValue)
		totalCostBasis = totalCostBasis.Add(ep.TotalCostBasis)
	}
	totalGainLoss := totalValue.Sub(totalCostBasis)

	// The portfolio-level guard is on the summed cost basis, unlike the
	// per-position guard on cost basis per share.
	totalGainLossPercent := decimal.Zero
	if totalCostBasis.IsPositive() {
		totalGainLossPercent = gainLossPercent(totalGainLoss, totalCostBasis)
	}

	// Positions are assumed to share one currency; mixed-currency portfolios
	// are summed without conversion or validation.
	currency := DefaultCurrency
	if len(enriched) > 0 {
		currency = enriched[0].Currency
	}

	return &PortfolioView{
		AccountID:                      accountID,
		TotalValue:                     totalValue,
		TotalCostBasis:                 totalCostBasis,
		TotalUnrealizedGainLoss:        totalGainLoss,
		TotalUnrealizedGainLossPercent: totalGainLossPercent,
		Currency:                       currency,
		Positions:                      enriched,
		AsOfDate:                       s.now().UTC(),
	}, nil
}

// enrich fetches the current price for the position and computes its derived
// valuation fields.
func (s *PortfolioService) enrich(ctx context.Context, pos domain.Position) (EnrichedPosition, error) {
	price, err := s.marketData.GetCurrentPrice(ctx, pos.Symbol)
	if err != nil {
		return EnrichedPosition{}, ProviderFailure(err)
	}

	positionValue := pos.Quantity.Mul(price)
	totalCostBasis := pos.Quantity.Mul(pos.CostBasisPerShare)
	gainLoss := positionValue.Sub(totalCostBasis)

	// The per-share guard alone is not enough: a zero-quantity position has a
	// positive per-share basis but a zero total basis, and the division must
	// never fault.
	percent := decimal.Zero
	if pos.CostBasisPerShare.IsPositive() && totalCostBasis.IsPositive() {
		percent = gainLossPercent(gainLoss, totalCostBasis)
	}

	return EnrichedPosition{
		Symbol:                    pos.Symbol,
		InstrumentName:            pos.InstrumentName,
		AssetClass:                pos.AssetClass,
		Quantity:                  pos.Quantity,
		CurrentPrice:              price,
		PositionValue:             positionValue,
		CostBasisPerShare:         pos.CostBasisPerShare,
		TotalCostBasis:            totalCostBasis,
		UnrealizedGainLoss:        gainLoss,
		UnrealizedGainLossPercent: percent,
		Currency:                  pos.Currency,
	}, nil
}

// gainLossPercent computes (gainLoss / costBasis) * 100 rounded to four
// decimal places, half up. Callers guard against a zero cost basis.
func gainLossPercent(gainLoss, costBasis decimal.Decimal) decimal.Decimal {
	return gainLoss.Div(costBasis).Mul(hundred).Round(4)
}
