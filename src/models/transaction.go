// backend/src/models/transaction.go
package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a transaction's effect on its account balance.
// "transfer" is accepted at the API boundary only; it is decomposed into an
// expense/income pair before anything reaches the store.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// NormalizeTransactionType maps free-form type text to a canonical type.
// Comparison is case-insensitive and ignores all whitespace; "expenses" is
// accepted as a common plural. Returns false if the text is unrecognized.
func NormalizeTransactionType(raw string) (TransactionType, bool) {
	t := strings.ToLower(raw)
	t = strings.Join(strings.Fields(t), "")
	switch t {
	case "income":
		return TypeIncome, true
	case "expense", "expenses":
		return TypeExpense, true
	}
	return "", false
}

// Transaction is one stored ledger row. Amount is always positive; the sign
// of its contribution to the account balance is carried by Type. ToAccountID
// is set only on the rows of a transfer pair.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"-"`
	AccountID   string          `json:"account_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        TransactionType `json:"type"`
	Date        *time.Time      `json:"date,omitempty"`
	ToAccountID string          `json:"to_account_id,omitempty"`
}

// DraftTransaction is a normalized import row before account resolution.
// AccountName carries the free-text account name found in the source data,
// if any; the resolver turns it into an AccountID.
type DraftTransaction struct {
	AccountID   string
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Date        *time.Time
	AccountName string
}

// ImportResult reports the outcome of one import run. Partial success is the
// common case: skipped and dropped rows never fail the batch.
type ImportResult struct {
	Imported         int       `json:"imported"`
	SkippedRows      int       `json:"skipped_rows"`
	DroppedNoAccount int       `json:"dropped_no_account"`
	CreatedAccounts  []Account `json:"created_accounts,omitempty"`
}
