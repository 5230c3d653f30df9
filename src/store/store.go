// backend/src/store/store.go
package store

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/username/fintrack/backend/src/models"
)

// Common store errors. Collaborator failures other than these are propagated
// as-is; the core performs no retries.
var (
	ErrNotFound      = errors.New("record not found")
	ErrDuplicateName = errors.New("account name already exists")
)

// AccountParams carries the caller-supplied fields of an account; ids are
// assigned by the store on creation.
type AccountParams struct {
	Name           string
	Color          string
	OpeningBalance decimal.Decimal
}

// Store is the persistence collaborator contract. Every operation is scoped
// by an opaque user identity supplied by the authentication collaborator; the
// store treats it as a filter and nothing more.
type Store interface {
	ListAccounts(ctx context.Context, userID string) ([]models.Account, error)
	GetAccount(ctx context.Context, userID, id string) (models.Account, error)
	CreateAccount(ctx context.Context, userID string, params AccountParams) (models.Account, error)
	UpdateAccount(ctx context.Context, userID, id string, params AccountParams) (models.Account, error)

	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	// InsertTransactions writes the whole batch atomically: all rows or
	// none. Transfer pairs rely on this so a half-written pair can never
	// be observed.
	InsertTransactions(ctx context.Context, userID string, txs []models.Transaction) error
}
