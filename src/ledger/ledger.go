// backend/src/ledger/ledger.go
package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/username/fintrack/backend/src/models"
)

// BalanceFor computes the running balance of one account: opening balance,
// plus every income row, minus every expense row. The fold is pure and
// commutative, so the result never depends on transaction order. Transfers
// need no special handling here; they are already stored as an income/expense
// pair on the two accounts involved.
func BalanceFor(account models.Account, txs []models.Transaction) decimal.Decimal {
	balance := account.OpeningBalance
	for _, tx := range txs {
		if tx.AccountID != account.ID {
			continue
		}
		switch tx.Type {
		case models.TypeIncome:
			balance = balance.Add(tx.Amount)
		case models.TypeExpense:
			balance = balance.Sub(tx.Amount)
		}
	}
	return balance
}

// Balances computes running balances for every given account in one pass.
func Balances(accounts []models.Account, txs []models.Transaction) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		balances[a.ID] = a.OpeningBalance
	}
	for _, tx := range txs {
		balance, ok := balances[tx.AccountID]
		if !ok {
			continue
		}
		switch tx.Type {
		case models.TypeIncome:
			balances[tx.AccountID] = balance.Add(tx.Amount)
		case models.TypeExpense:
			balances[tx.AccountID] = balance.Sub(tx.Amount)
		}
	}
	return balances
}

// TransferRequest describes one user-initiated transfer between two accounts.
// Boundary validation (positive amount, distinct existing accounts) happens
// before this package is reached.
type TransferRequest struct {
	FromAccountID string
	ToAccountID   string
	FromName      string
	ToName        string
	Amount        decimal.Decimal
	Date          *time.Time
}

// transferPairSuffix derives the income row's id from the expense row's id,
// so the pair stays correlated without a side table.
const transferPairSuffix = "-to"

// NewTransferPair materializes a transfer as its two linked rows: an expense
// on the source account and an income on the destination, sharing amount and
// date. No row with type "transfer" is ever produced. Violated preconditions
// are programming errors and panic rather than being coerced.
func NewTransferPair(req TransferRequest) (expense, income models.Transaction) {
	if req.FromAccountID == req.ToAccountID {
		panic(fmt.Sprintf("ledger: transfer with identical source and destination account %q", req.FromAccountID))
	}
	if !req.Amount.IsPositive() {
		panic(fmt.Sprintf("ledger: transfer with non-positive amount %s", req.Amount))
	}

	baseID := uuid.NewString()

	expense = models.Transaction{
		ID:          baseID,
		AccountID:   req.FromAccountID,
		Description: "Transfer to " + counterpartName(req.ToName),
		Amount:      req.Amount,
		Type:        models.TypeExpense,
		Date:        req.Date,
		ToAccountID: req.ToAccountID,
	}
	income = models.Transaction{
		ID:          baseID + transferPairSuffix,
		AccountID:   req.ToAccountID,
		Description: "Transfer from " + counterpartName(req.FromName),
		Amount:      req.Amount,
		Type:        models.TypeIncome,
		Date:        req.Date,
		ToAccountID: req.ToAccountID,
	}
	return expense, income
}

func counterpartName(name string) string {
	if name == "" {
		return "account"
	}
	return name
}
