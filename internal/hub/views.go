package hub

import (
	"time"

	"github.com/shopspring/decimal"

	"portfoliohub/internal/domain"
)

// AccountView is the wire representation of an account. Fields map verbatim
// from domain.Account; there are no derived fields.
type AccountView struct {
	AccountID     string               `json:"accountId"`
	ClientID      string               `json:"clientId"`
	AccountType   domain.AccountType   `json:"accountType"`
	Status        domain.AccountStatus `json:"status"`
	DisplayName   string               `json:"displayName"`
	AccountNumber string               `json:"accountNumber"`
	CurrentValue  decimal.Decimal      `json:"currentValue"`
	Currency      string               `json:"currency"`
	OpenedDate    time.Time            `json:"openedDate"`
	LastUpdated   time.Time            `json:"lastUpdated"`
}

// NewAccountView maps an account to its view.
func NewAccountView(a domain.Account) AccountView {
	return AccountView{
		AccountID:     a.AccountID,
		ClientID:      a.ClientID,
		AccountType:   a.AccountType,
		Status:        a.Status,
		DisplayName:   a.DisplayName,
		AccountNumber: a.AccountNumber,
		CurrentValue:  a.CurrentValue,
		Currency:      a.Currency,
		OpenedDate:    a.OpenedDate,
		LastUpdated:   a.LastUpdated,
	}
}

// Account maps the view back to the domain value.
func (v AccountView) Account() domain.Account {
	return domain.Account{
		AccountID:     v.AccountID,
		ClientID:      v.ClientID,
		AccountType:   v.AccountType,
		Status:        v.Status,
		DisplayName:   v.DisplayName,
		AccountNumber: v.AccountNumber,
		CurrentValue:  v.CurrentValue,
		Currency:      v.Currency,
		OpenedDate:    v.OpenedDate,
		LastUpdated:   v.LastUpdated,
	}
}

// EnrichedPosition is a position augmented with the live price and derived
// valuation fields. It is computed per request and never persisted.
type EnrichedPosition struct {
	Symbol                    string            `json:"symbol"`
	InstrumentName            string            `json:"instrumentName"`
	AssetClass                domain.AssetClass `json:"assetClass"`
	Quantity                  decimal.Decimal   `json:"quantity"`
	CurrentPrice              decimal.Decimal   `json:"currentPrice"`
	PositionValue             decimal.Decimal   `json:"positionValue"`
	CostBasisPerShare         decimal.Decimal   `json:"costBasisPerShare"`
	TotalCostBasis            decimal.Decimal   `json:"totalCostBasis"`
	UnrealizedGainLoss        decimal.Decimal   `json:"unrealizedGainLoss"`
	UnrealizedGainLossPercent decimal.Decimal   `json:"unrealizedGainLossPercent"`
	Currency                  string            `json:"currency"`
}

// Position maps the enriched view back to the underlying domain position,
// dropping the derived fields.
func (v EnrichedPosition) Position() domain.Position {
	return domain.Position{
		Symbol:            v.Symbol,
		InstrumentName:    v.InstrumentName,
		AssetClass:        v.AssetClass,
		Quantity:          v.Quantity,
		CostBasisPerShare: v.CostBasisPerShare,
		Currency:          v.Currency,
	}
}

// PortfolioView is the aggregated valuation of one account's holdings.
type PortfolioView struct {
	AccountID                      string             `json:"accountId"`
	TotalValue                     decimal.Decimal    `json:"totalValue"`
	TotalCostBasis                 decimal.Decimal    `json:"totalCostBasis"`
	TotalUnrealizedGainLoss        decimal.Decimal    `json:"totalUnrealizedGainLoss"`
	TotalUnrealizedGainLossPercent decimal.Decimal    `json:"totalUnrealizedGainLossPercent"`
	Currency                       string             `json:"currency"`
	Positions                      []EnrichedPosition `json:"positions"`
	AsOfDate                       time.Time          `json:"asOfDate"`
}

// InstrumentView is the wire representation of instrument reference data.
type InstrumentView struct {
	Symbol       string            `json:"symbol"`
	Name         string            `json:"name"`
	AssetClass   domain.AssetClass `json:"assetClass"`
	Exchange     string            `json:"exchange"`
	CurrentPrice decimal.Decimal   `json:"currentPrice"`
	Currency     string            `json:"currency"`
	SecurityID   string            `json:"securityId"`
	Sector       string            `json:"sector"`
	Industry     string            `json:"industry"`
	LastUpdated  time.Time         `json:"lastUpdated"`
}

// NewInstrumentView maps an instrument to its view.
func NewInstrumentView(i domain.Instrument) InstrumentView {
	return InstrumentView{
		Symbol:       i.Symbol,
		Name:         i.Name,
		AssetClass:   i.AssetClass,
		Exchange:     i.Exchange,
		CurrentPrice: i.CurrentPrice,
		Currency:     i.Currency,
		SecurityID:   i.SecurityID,
		Sector:       i.Sector,
		Industry:     i.Industry,
		LastUpdated:  i.LastUpdated,
	}
}

// Instrument maps the view back to the domain value.
func (v InstrumentView) Instrument() domain.Instrument {
	return domain.Instrument{
		Symbol:       v.Symbol,
		Name:         v.Name,
		AssetClass:   v.AssetClass,
		Exchange:     v.Exchange,
		CurrentPrice: v.CurrentPrice,
		Currency:     v.Currency,
		SecurityID:   v.SecurityID,
		Sector:       v.Sector,
		Industry:     v.Industry,
		LastUpdated:  v.LastUpdated,
	}
}
