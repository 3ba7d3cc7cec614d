package provider

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"portfoliohub/internal/domain"
)

// SimulatedOMS is an in-memory OMS used for local development and tests.
// The datasets are supplied at construction and never mutated afterwards, so
// concurrent reads need no locking.
type SimulatedOMS struct {
	accounts  []domain.Account
	positions map[string][]domain.Position
}

// NewSimulatedOMS creates a SimulatedOMS over the given datasets. positions is
// keyed by account id.
func NewSimulatedOMS(accounts []domain.Account, positions map[string][]domain.Position) *SimulatedOMS {
	return &SimulatedOMS{accounts: accounts, positions: positions}
}

// NewSeededOMS creates a SimulatedOMS loaded with the demo dataset: two
// accounts for CLIENT-98765, with equity holdings on ACC-12345.
func NewSeededOMS() *SimulatedOMS {
	now := time.Now().UTC()
	accounts := []domain.Account{
		{
			AccountID:     "ACC-12345",
			ClientID:      "CLIENT-98765",
			AccountType:   domain.AccountTypeBrokerage,
			Status:        domain.AccountStatusActive,
			DisplayName:   "My Investment Account",
			AccountNumber: "****1234",
			CurrentValue:  decimal.RequireFromString("125000.50"),
			Currency:      "USD",
			OpenedDate:    time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
			LastUpdated:   now,
		},
		{
			AccountID:     "ACC-12346",
			ClientID:      "CLIENT-98765",
			AccountType:   domain.AccountTypeIRA,
			Status:        domain.AccountStatusActive,
			DisplayName:   "My Retirement Account",
			AccountNumber: "****5678",
			CurrentValue:  decimal.RequireFromString("250000.00"),
			Currency:      "USD",
			OpenedDate:    time.Date(2018, 6, 20, 0, 0, 0, 0, time.UTC),
			LastUpdated:   now,
		},
	}
	positions := map[string][]domain.Position{
		"ACC-12345": {
			{
				Symbol:            "AAPL",
				InstrumentName:    "Apple Inc.",
				AssetClass:        domain.AssetClassEquity,
				Quantity:          decimal.NewFromInt(100),
				CostBasisPerShare: decimal.RequireFromString("150.00"),
				Currency:          "USD",
			},
			{
				Symbol:            "MSFT",
				InstrumentName:    "Microsoft Corporation",
				AssetClass:        domain.AssetClassEquity,
				Quantity:          decimal.NewFromInt(50),
				CostBasisPerShare: decimal.RequireFromString("200.00"),
				Currency:          "USD",
			},
			{
				Symbol:            "GOOGL",
				InstrumentName:    "Alphabet Inc.",
				AssetClass:        domain.AssetClassEquity,
				Quantity:          decimal.NewFromInt(25),
				CostBasisPerShare: decimal.RequireFromString("100.00"),
				Currency:          "USD",
			},
		},
	}
	return NewSimulatedOMS(accounts, positions)
}

// GetAccountByID returns the account with the given id, or nil.
func (s *SimulatedOMS) GetAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	for i := range s.accounts {
		if s.accounts[i].AccountID == accountID {
			acct := s.accounts[i]
			return &acct, nil
		}
	}
	return nil, nil
}

// GetAccountsByClient returns all accounts owned by the client.
func (s *SimulatedOMS) GetAccountsByClient(_ context.Context, clientID string) ([]domain.Account, error) {
	accounts := []domain.Account{}
	for _, acct := range s.accounts {
		if acct.ClientID == clientID {
			accounts = append(accounts, acct)
		}
	}
	return accounts, nil
}

// GetPositionsByAccount returns the account's positions, empty if none.
func (s *SimulatedOMS) GetPositionsByAccount(_ context.Context, accountID string) ([]domain.Position, error) {
	positions := s.positions[accountID]
	out := make([]domain.Position, len(positions))
	copy(out, positions)
	return out, nil
}
