package services

import (
	"context"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/security/validation"
	"github.com/username/fintrack/backend/src/store"
)

func TestCreateAccountValidation(t *testing.T) {
	svc := NewAccountService(&memStore{}, cache.New(time.Minute, time.Minute))

	tests := []struct {
		name  string
		input AccountInput
	}{
		{"empty name", AccountInput{Name: "", OpeningBalance: "10"}},
		{"missing balance", AccountInput{Name: "Wallet", OpeningBalance: ""}},
		{"three decimals", AccountInput{Name: "Wallet", OpeningBalance: "12.345"}},
		{"not a number", AccountInput{Name: "Wallet", OpeningBalance: "ten"}},
		{"bad color", AccountInput{Name: "Wallet", Color: "red", OpeningBalance: "10"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateAccount(context.Background(), "u1", tt.input)
			assert.ErrorIs(t, err, validation.ErrValidationFailed)
		})
	}
}

func TestCreateAccountRoundsBalanceAndDefaultsColor(t *testing.T) {
	svc := NewAccountService(&memStore{}, cache.New(time.Minute, time.Minute))

	account, err := svc.CreateAccount(context.Background(), "u1", AccountInput{
		Name:           "  Wallet  ",
		OpeningBalance: "-5",
	})
	require.NoError(t, err)
	assert.Equal(t, "Wallet", account.Name)
	assert.Equal(t, "-5", account.OpeningBalance.String())
	assert.Equal(t, accountPalette[0], account.Color)
}

func TestCreateAccountDuplicateName(t *testing.T) {
	st := &memStore{}
	svc := NewAccountService(st, cache.New(time.Minute, time.Minute))

	_, err := svc.CreateAccount(context.Background(), "u1", AccountInput{Name: "Wallet", OpeningBalance: "0"})
	require.NoError(t, err)
	_, err = svc.CreateAccount(context.Background(), "u1", AccountInput{Name: "wallet", OpeningBalance: "0"})
	assert.ErrorIs(t, err, store.ErrDuplicateName)
}

func TestListAccountsComputesBalances(t *testing.T) {
	st := &memStore{
		accounts: []models.Account{
			{ID: "a1", UserID: "u1", Name: "Wallet", OpeningBalance: mustDecimal("100")},
		},
		txs: []models.Transaction{
			{ID: "t1", UserID: "u1", AccountID: "a1", Type: models.TypeExpense, Amount: mustDecimal("30")},
			{ID: "t2", UserID: "u1", AccountID: "a1", Type: models.TypeIncome, Amount: mustDecimal("5.50")},
		},
	}
	svc := NewAccountService(st, cache.New(time.Minute, time.Minute))

	accounts, err := svc.ListAccounts(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "75.5", accounts[0].Balance.String())
}

func TestGetSummaryCachesAndInvalidates(t *testing.T) {
	st := &memStore{
		accounts: []models.Account{
			{ID: "a1", UserID: "u1", Name: "Wallet", OpeningBalance: mustDecimal("10")},
		},
	}
	svc := NewAccountService(st, cache.New(time.Minute, time.Minute))

	first, err := svc.GetSummary(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, "10", first.TotalBalance.String())
	assert.Equal(t, "10", first.TotalOpening.String())

	// A write that bypasses the service is invisible until invalidation.
	st.txs = append(st.txs, models.Transaction{
		ID: "t1", UserID: "u1", AccountID: "a1", Type: models.TypeIncome, Amount: mustDecimal("5"),
	})
	cached, err := svc.GetSummary(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, "10", cached.TotalBalance.String())

	svc.InvalidateUserCache("u1")
	fresh, err := svc.GetSummary(context.Background(), "u1", nil)
	require.NoError(t, err)
	assert.Equal(t, "15", fresh.TotalBalance.String())
	assert.Equal(t, "5", fresh.TotalIncome.String())
}

func TestGetSummaryFiltersAccountSet(t *testing.T) {
	st := &memStore{
		accounts: []models.Account{
			{ID: "a1", UserID: "u1", Name: "Wallet", OpeningBalance: mustDecimal("10")},
			{ID: "a2", UserID: "u1", Name: "Savings", OpeningBalance: mustDecimal("100")},
		},
		txs: []models.Transaction{
			{ID: "t1", UserID: "u1", AccountID: "a1", Type: models.TypeIncome, Amount: mustDecimal("5")},
			{ID: "t2", UserID: "u1", AccountID: "a2", Type: models.TypeExpense, Amount: mustDecimal("20")},
		},
	}
	svc := NewAccountService(st, cache.New(time.Minute, time.Minute))

	summary, err := svc.GetSummary(context.Background(), "u1", []string{"a2"})
	require.NoError(t, err)
	require.Len(t, summary.Accounts, 1)
	assert.Equal(t, "a2", summary.Accounts[0].AccountID)
	assert.Equal(t, "100", summary.TotalOpening.String())
	assert.Equal(t, "80", summary.TotalBalance.String())
	assert.True(t, summary.TotalIncome.IsZero(), "other account's income must not leak in")
	assert.Equal(t, "20", summary.TotalExpense.String())
}
