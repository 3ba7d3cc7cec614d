package provider

import (
	"context"
	"fmt"

	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfoliohub/internal/domain"
)

// PostgresOMS is the networked OMS variant, reading accounts and positions
// from the OMS replica database. It satisfies the same contract as
// SimulatedOMS and is selected via configuration.
type PostgresOMS struct {
	pool *pgxpool.Pool
}

// NewPostgresOMS creates a PostgresOMS with a connection pool. The shopspring
// decimal codec is registered so numeric columns scan into decimal.Decimal.
func NewPostgresOMS(ctx context.Context, databaseURL string) (*PostgresOMS, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	config.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	return &PostgresOMS{pool: pool}, nil
}

// Pool returns the underlying connection pool (for the migration runner).
func (p *PostgresOMS) Pool() *pgxpool.Pool {
	return p.pool
}

// Ping checks the database connection.
func (p *PostgresOMS) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// Close closes the connection pool.
func (p *PostgresOMS) Close() {
	p.pool.Close()
}

// GetAccountByID returns the account with the given id, or nil if absent.
func (p *PostgresOMS) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var acct domain.Account
	var acctType, status string
	err := p.pool.QueryRow(ctx, `
		SELECT account_id, client_id, account_type, status, display_name,
			account_number, current_value, currency, opened_date, last_updated
		FROM hub_accounts WHERE account_id = $1
	`, accountID).Scan(
		&acct.AccountID, &acct.ClientID, &acctType, &status, &acct.DisplayName,
		&acct.AccountNumber, &acct.CurrentValue, &acct.Currency,
		&acct.OpenedDate, &acct.LastUpdated,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	acct.AccountType = domain.AccountType(acctType)
	acct.Status = domain.AccountStatus(status)
	return &acct, nil
}

// GetAccountsByClient returns all accounts owned by the client.
func (p *PostgresOMS) GetAccountsByClient(ctx context.Context, clientID string) ([]domain.Account, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT account_id, client_id, account_type, status, display_name,
			account_number, current_value, currency, opened_date, last_updated
		FROM hub_accounts WHERE client_id = $1 ORDER BY opened_date
	`, clientID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		var acct domain.Account
		var acctType, status string
		if err := rows.Scan(
			&acct.AccountID, &acct.ClientID, &acctType, &status, &acct.DisplayName,
			&acct.AccountNumber, &acct.CurrentValue, &acct.Currency,
			&acct.OpenedDate, &acct.LastUpdated,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		acct.AccountType = domain.AccountType(acctType)
		acct.Status = domain.AccountStatus(status)
		accounts = append(accounts, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// GetPositionsByAccount returns the account's positions in insertion order.
func (p *PostgresOMS) GetPositionsByAccount(ctx context.Context, accountID string) ([]domain.Position, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT symbol, instrument_name, asset_class, quantity, cost_basis_per_share, currency
		FROM hub_positions WHERE account_id = $1 ORDER BY id
	`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	defer rows.Close()

	positions := []domain.Position{}
	for rows.Next() {
		var pos domain.Position
		var assetClass string
		if err := rows.Scan(
			&pos.Symbol, &pos.InstrumentName, &assetClass,
			&pos.Quantity, &pos.CostBasisPerShare, &pos.Currency,
		); err != nil {
			return nil, fmt.Errorf("scan position: %w", err)
		}
		pos.AssetClass = domain.AssetClass(assetClass)
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}
	return positions, nil
}
