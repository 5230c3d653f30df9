package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/username/fintrack/backend/src/logger"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/store"
)

func init() {
	logger.InitLogger("error")
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// memStore is an in-memory Store for service tests.
type memStore struct {
	accounts    []models.Account
	txs         []models.Transaction
	insertCalls int
	insertErr   error
}

func (m *memStore) ListAccounts(_ context.Context, userID string) ([]models.Account, error) {
	var out []models.Account
	for _, a := range m.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *memStore) GetAccount(_ context.Context, userID, id string) (models.Account, error) {
	for _, a := range m.accounts {
		if a.UserID == userID && a.ID == id {
			return a, nil
		}
	}
	return models.Account{}, store.ErrNotFound
}

func (m *memStore) CreateAccount(_ context.Context, userID string, params store.AccountParams) (models.Account, error) {
	for _, a := range m.accounts {
		if a.UserID == userID && strings.EqualFold(a.Name, params.Name) {
			return models.Account{}, store.ErrDuplicateName
		}
	}
	account := models.Account{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           params.Name,
		Color:          params.Color,
		OpeningBalance: params.OpeningBalance,
	}
	m.accounts = append(m.accounts, account)
	return account, nil
}

func (m *memStore) UpdateAccount(_ context.Context, userID, id string, params store.AccountParams) (models.Account, error) {
	for i, a := range m.accounts {
		if a.UserID == userID && a.ID == id {
			m.accounts[i].Name = params.Name
			m.accounts[i].Color = params.Color
			m.accounts[i].OpeningBalance = params.OpeningBalance
			return m.accounts[i], nil
		}
	}
	return models.Account{}, store.ErrNotFound
}

func (m *memStore) ListTransactions(_ context.Context, userID string) ([]models.Transaction, error) {
	var out []models.Transaction
	for _, tx := range m.txs {
		if tx.UserID == userID {
			out = append(out, tx)
		}
	}
	return out, nil
}

func (m *memStore) InsertTransactions(_ context.Context, userID string, txs []models.Transaction) error {
	m.insertCalls++
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, tx := range txs {
		if tx.ID == "" {
			tx.ID = uuid.NewString()
		}
		tx.UserID = userID
		m.txs = append(m.txs, tx)
	}
	return nil
}
