package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/security/validation"
	"github.com/username/fintrack/backend/src/store"
)

func newTransactionFixture(st *memStore) TransactionService {
	accountService := NewAccountService(st, cache.New(time.Minute, time.Minute))
	return NewTransactionService(st, accountService)
}

func TestAddTransaction(t *testing.T) {
	st := &memStore{accounts: []models.Account{{ID: "a1", UserID: "u1", Name: "Wallet"}}}
	svc := newTransactionFixture(st)

	tx, err := svc.AddTransaction(context.Background(), "u1", TransactionInput{
		AccountID:   "a1",
		Description: "Groceries",
		Amount:      mustDecimal("42.499"),
		Type:        "Expense",
	})
	require.NoError(t, err)
	assert.Equal(t, models.TypeExpense, tx.Type)
	assert.Equal(t, "42.5", tx.Amount.String())
	assert.NotEmpty(t, tx.ID)
	require.Len(t, st.txs, 1)
}

func TestAddTransactionRejections(t *testing.T) {
	st := &memStore{accounts: []models.Account{{ID: "a1", UserID: "u1", Name: "Wallet"}}}
	svc := newTransactionFixture(st)

	tests := []struct {
		name    string
		input   TransactionInput
		wantErr error
	}{
		{"transfer type not allowed here", TransactionInput{AccountID: "a1", Amount: mustDecimal("5"), Type: "transfer"}, validation.ErrValidationFailed},
		{"zero amount", TransactionInput{AccountID: "a1", Amount: mustDecimal("0"), Type: "income"}, validation.ErrValidationFailed},
		{"negative amount", TransactionInput{AccountID: "a1", Amount: mustDecimal("-5"), Type: "income"}, validation.ErrValidationFailed},
		{"unknown account", TransactionInput{AccountID: "nope", Amount: mustDecimal("5"), Type: "income"}, store.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddTransaction(context.Background(), "u1", tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
	assert.Equal(t, 0, st.insertCalls)
}

func TestAddTransfer(t *testing.T) {
	st := &memStore{accounts: []models.Account{
		{ID: "a1", UserID: "u1", Name: "Wallet"},
		{ID: "a2", UserID: "u1", Name: "Savings"},
	}}
	svc := newTransactionFixture(st)

	pair, err := svc.AddTransfer(context.Background(), "u1", TransferInput{
		FromAccountID: "a1",
		ToAccountID:   "a2",
		Amount:        mustDecimal("25"),
	})
	require.NoError(t, err)
	require.Len(t, pair, 2)

	assert.Equal(t, models.TypeExpense, pair[0].Type)
	assert.Equal(t, models.TypeIncome, pair[1].Type)
	assert.Equal(t, "Transfer to Savings", pair[0].Description)
	assert.Equal(t, "Transfer from Wallet", pair[1].Description)
	assert.Equal(t, 1, st.insertCalls, "the pair must go in as one batch")
	assert.Len(t, st.txs, 2)
}

func TestAddTransferRejections(t *testing.T) {
	st := &memStore{accounts: []models.Account{
		{ID: "a1", UserID: "u1", Name: "Wallet"},
		{ID: "a2", UserID: "u1", Name: "Savings"},
	}}
	svc := newTransactionFixture(st)

	_, err := svc.AddTransfer(context.Background(), "u1", TransferInput{
		FromAccountID: "a1", ToAccountID: "a1", Amount: mustDecimal("5"),
	})
	assert.ErrorIs(t, err, validation.ErrValidationFailed)

	_, err = svc.AddTransfer(context.Background(), "u1", TransferInput{
		FromAccountID: "a1", ToAccountID: "missing", Amount: mustDecimal("5"),
	})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Equal(t, 0, st.insertCalls)
}

func TestExportCSVGuardsFormulaInjection(t *testing.T) {
	date := time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
	st := &memStore{
		accounts: []models.Account{{ID: "a1", UserID: "u1", Name: "Wallet"}},
		txs: []models.Transaction{
			{ID: "t1", UserID: "u1", AccountID: "a1", Description: "=SUM(A1:A9)", Amount: mustDecimal("5"), Type: models.TypeIncome, Date: &date},
		},
	}
	svc := newTransactionFixture(st)

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), "u1", &buf))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, exportHeader, records[0])
	assert.Equal(t, "a1", records[1][1])
	assert.Equal(t, "'=SUM(A1:A9)", records[1][2])
	assert.Equal(t, "5.00", records[1][3])
	assert.Equal(t, "income", records[1][4])
	assert.Equal(t, "2024-03-01 12:30:00", records[1][5])
}
