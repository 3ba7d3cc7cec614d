package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType represents the regulatory/product type of an account.
type AccountType string

const (
	AccountTypeBrokerage      AccountType = "BROKERAGE"
	AccountTypeIRA            AccountType = "IRA"
	AccountTypeRetirement401K AccountType = "RETIREMENT_401K"
	AccountTypeTrust          AccountType = "TRUST"
	AccountTypeJoint          AccountType = "JOINT"
	AccountTypeCorporate      AccountType = "CORPORATE"
	AccountTypeCustodial      AccountType = "CUSTODIAL"
)

// Valid reports whether t is one of the known account types.
func (t AccountType) Valid() bool {
	switch t {
	case AccountTypeBrokerage, AccountTypeIRA, AccountTypeRetirement401K,
		AccountTypeTrust, AccountTypeJoint, AccountTypeCorporate, AccountTypeCustodial:
		return true
	}
	return false
}

// AccountStatus represents the lifecycle status of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "ACTIVE"
	AccountStatusClosed    AccountStatus = "CLOSED"
	AccountStatusPending   AccountStatus = "PENDING"
	AccountStatusSuspended AccountStatus = "SUSPENDED"
	AccountStatusDormant   AccountStatus = "DORMANT"
)

// Valid reports whether s is one of the known account statuses.
func (s AccountStatus) Valid() bool {
	switch s {
	case AccountStatusActive, AccountStatusClosed, AccountStatusPending,
		AccountStatusSuspended, AccountStatusDormant:
		return true
	}
	return false
}

// AssetClass classifies an instrument or position.
type AssetClass string

const (
	AssetClassEquity      AssetClass = "EQUITY"
	AssetClassFixedIncome AssetClass = "FIXED_INCOME"
	AssetClassCash        AssetClass = "CASH"
	AssetClassCommodity   AssetClass = "COMMODITY"
	AssetClassREIT        AssetClass = "REIT"
	AssetClassETF         AssetClass = "ETF"
	AssetClassMutualFund  AssetClass = "MUTUAL_FUND"
	AssetClassOption      AssetClass = "OPTION"
	AssetClassFuture      AssetClass = "FUTURE"
	AssetClassCrypto      AssetClass = "CRYPTO"
)

// Valid reports whether a is one of the known asset classes.
func (a AssetClass) Valid() bool {
	switch a {
	case AssetClassEquity, AssetClassFixedIncome, AssetClassCash,
		AssetClassCommodity, AssetClassREIT, AssetClassETF,
		AssetClassMutualFund, AssetClassOption, AssetClassFuture, AssetClassCrypto:
		return true
	}
	return false
}

// Account is an OMS account as returned by the position provider.
// Instances are value snapshots; the core never mutates them.
type Account struct {
	AccountID     string          `json:"accountId"`
	ClientID      string          `json:"clientId"`
	AccountType   AccountType     `json:"accountType"`
	Status        AccountStatus   `json:"status"`
	DisplayName   string          `json:"displayName"`
	AccountNumber string          `json:"accountNumber"`
	CurrentValue  decimal.Decimal `json:"currentValue"`
	Currency      string          `json:"currency"`
	OpenedDate    time.Time       `json:"openedDate"`
	LastUpdated   time.Time       `json:"lastUpdated"`
}

// Position is a holding of one instrument in one account. Positions carry no
// account reference; the caller supplies the account id as context.
type Position struct {
	Symbol            string          `json:"symbol"`
	InstrumentName    string          `json:"instrumentName"`
	AssetClass        AssetClass      `json:"assetClass"`
	Quantity          decimal.Decimal `json:"quantity"`
	CostBasisPerShare decimal.Decimal `json:"costBasisPerShare"`
	Currency          string          `json:"currency"`
}

// Instrument is point-in-time reference data from the market-data vendor.
type Instrument struct {
	Symbol       string          `json:"symbol"`
	Name         string          `json:"name"`
	AssetClass   AssetClass      `json:"assetClass"`
	Exchange     string          `json:"exchange"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Currency     string          `json:"currency"`
	SecurityID   string          `json:"securityId"`
	Sector       string          `json:"sector"`
	Industry     string          `json:"industry"`
	LastUpdated  time.Time       `json:"lastUpdated"`
}
