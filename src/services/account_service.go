// backend/src/services/account_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"github.com/username/fintrack/backend/src/ledger"
	"github.com/username/fintrack/backend/src/logger"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/money"
	"github.com/username/fintrack/backend/src/security/validation"
	"github.com/username/fintrack/backend/src/store"
)

type accountServiceImpl struct {
	store       store.Store
	reportCache *cache.Cache
}

func NewAccountService(st store.Store, reportCache *cache.Cache) AccountService {
	return &accountServiceImpl{
		store:       st,
		reportCache: reportCache,
	}
}

func (s *accountServiceImpl) CreateAccount(ctx context.Context, userID string, input AccountInput) (models.Account, error) {
	params, err := accountParamsFromInput(input)
	if err != nil {
		return models.Account{}, err
	}
	account, err := s.store.CreateAccount(ctx, userID, params)
	if err != nil {
		return models.Account{}, err
	}
	s.InvalidateUserCache(userID)
	logger.L.Info("Account created", "userID", userID, "accountID", account.ID)
	return account, nil
}

func (s *accountServiceImpl) UpdateAccount(ctx context.Context, userID, accountID string, input AccountInput) (models.Account, error) {
	params, err := accountParamsFromInput(input)
	if err != nil {
		return models.Account{}, err
	}
	account, err := s.store.UpdateAccount(ctx, userID, accountID, params)
	if err != nil {
		return models.Account{}, err
	}
	s.InvalidateUserCache(userID)
	return account, nil
}

// accountParamsFromInput is the one validation gate for account writes:
// creation and editing both pass through here so they accept and reject
// identical inputs.
func accountParamsFromInput(input AccountInput) (store.AccountParams, error) {
	name := strings.TrimSpace(validation.SanitizeText(validation.StripUnprintable(input.Name)))
	if err := validation.ValidateAccountName(name); err != nil {
		return store.AccountParams{}, err
	}
	if err := validation.ValidateHexColor(input.Color); err != nil {
		return store.AccountParams{}, err
	}

	balance := money.ValidateOpeningBalanceInput(input.OpeningBalance)
	if !balance.IsValid {
		return store.AccountParams{}, fmt.Errorf("%w: %s", validation.ErrValidationFailed, balance.Error)
	}

	color := strings.TrimSpace(input.Color)
	if color == "" {
		color = accountPalette[0]
	}
	return store.AccountParams{
		Name:           name,
		Color:          color,
		OpeningBalance: balance.Value,
	}, nil
}

func (s *accountServiceImpl) ListAccounts(ctx context.Context, userID string) ([]models.AccountWithBalance, error) {
	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	balances := ledger.Balances(accounts, txs)
	result := make([]models.AccountWithBalance, 0, len(accounts))
	for _, a := range accounts {
		result = append(result, models.AccountWithBalance{
			Account: a,
			Balance: balances[a.ID],
		})
	}
	return result, nil
}

func (s *accountServiceImpl) GetSummary(ctx context.Context, userID string, accountIDs []string) (*SummaryResult, error) {
	// Only the whole-ledger summary is cached; filtered views are cheap and
	// too varied to be worth cache keys.
	useCache := len(accountIDs) == 0
	cacheKey := fmt.Sprintf(ckSummary, userID)
	if useCache {
		if cached, found := s.reportCache.Get(cacheKey); found {
			return cached.(*SummaryResult), nil
		}
	}

	accounts, err := s.store.ListAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(accountIDs) > 0 {
		wanted := make(map[string]bool, len(accountIDs))
		for _, id := range accountIDs {
			wanted[id] = true
		}
		filtered := accounts[:0:0]
		for _, a := range accounts {
			if wanted[a.ID] {
				filtered = append(filtered, a)
			}
		}
		accounts = filtered
	}
	selected := make(map[string]bool, len(accounts))
	for _, a := range accounts {
		selected[a.ID] = true
	}

	balances := ledger.Balances(accounts, txs)
	result := &SummaryResult{
		TotalOpening: decimal.Zero,
		TotalBalance: decimal.Zero,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		Accounts:     make([]AccountSummaryRow, 0, len(accounts)),
		LastUpdated:  time.Now().Format(time.RFC3339),
	}
	for _, a := range accounts {
		balance := balances[a.ID]
		result.TotalOpening = result.TotalOpening.Add(a.OpeningBalance)
		result.TotalBalance = result.TotalBalance.Add(balance)
		result.Accounts = append(result.Accounts, AccountSummaryRow{
			AccountID:   a.ID,
			AccountName: a.Name,
			Color:       a.Color,
			Balance:     balance,
		})
	}
	for _, tx := range txs {
		if !selected[tx.AccountID] {
			continue
		}
		switch tx.Type {
		case models.TypeIncome:
			result.TotalIncome = result.TotalIncome.Add(tx.Amount)
		case models.TypeExpense:
			result.TotalExpense = result.TotalExpense.Add(tx.Amount)
		}
	}

	if useCache {
		s.reportCache.Set(cacheKey, result, cache.DefaultExpiration)
	}
	return result, nil
}

func (s *accountServiceImpl) InvalidateUserCache(userID string) {
	s.reportCache.Delete(fmt.Sprintf(ckSummary, userID))
}
