// backend/src/models/account.go
package models

import "github.com/shopspring/decimal"

// Account is a ledger account owned by a user scope. The id is assigned by
// the store on creation and never changes afterwards.
type Account struct {
	ID             string          `json:"id"`
	UserID         string          `json:"-"`
	Name           string          `json:"name"`
	Color          string          `json:"color"`
	OpeningBalance decimal.Decimal `json:"opening_balance"`
}

// AccountWithBalance pairs an account with its computed running balance.
type AccountWithBalance struct {
	Account
	Balance decimal.Decimal `json:"balance"`
}
