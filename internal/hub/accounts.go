package hub

import (
	"context"

	"portfoliohub/internal/domain"
	"portfoliohub/internal/provider"
)

// AccountService resolves and filters a client's accounts via the OMS.
type AccountService struct {
	oms provider.OMS
}

// NewAccountService creates an AccountService over the OMS provider.
func NewAccountService(oms provider.OMS) *AccountService {
	return &AccountService{oms: oms}
}

// ListAccounts returns the client's accounts, optionally filtered by status
// and type. The filters are independent conjunctive equality predicates; a
// nil filter passes everything.
//
// An empty OMS result yields NotFound: a client with zero accounts is
// indistinguishable from an unknown client here, and that ambiguity is
// deliberate. An empty result after filtering, however, is a valid outcome.
func (s *AccountService) ListAccounts(ctx context.Context, clientID string, status *domain.AccountStatus, acctType *domain.AccountType) ([]AccountView, error) {
	accounts, err := s.oms.GetAccountsByClient(ctx, clientID)
	if err != nil {
		return nil, ProviderFailure(err)
	}
	if len(accounts) == 0 {
		return nil, NotFound("client", clientID)
	}

	views := []AccountView{}
	for _, acct := range accounts {
		if status != nil && acct.Status != *status {
			continue
		}
		if acctType != nil && acct.AccountType != *acctType {
			continue
		}
		views = append(views, NewAccountView(acct))
	}
	return views, nil
}
