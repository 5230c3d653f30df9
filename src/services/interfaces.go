// backend/src/services/interfaces.go
package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/fintrack/backend/src/importer"
	"github.com/username/fintrack/backend/src/models"
)

// Define common service errors
var (
	ErrParsingFailed = errors.New("csv parsing failed")
	ErrNoValidRows   = errors.New("no valid rows in import")
	ErrNoAccounts    = errors.New("no accounts available")
)

// Summary cache key, per user scope.
const ckSummary = "report_summary_user_%s"

// AccountInput carries user-supplied account fields. OpeningBalance arrives
// as raw text and goes through the single validation gate before storage.
type AccountInput struct {
	Name           string `json:"name"`
	Color          string `json:"color"`
	OpeningBalance string `json:"opening_balance"`
}

// TransactionInput is a manually entered income or expense row.
type TransactionInput struct {
	AccountID   string          `json:"account_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Type        string          `json:"type"`
	Date        *time.Time      `json:"date,omitempty"`
}

// TransferInput is a manually entered transfer between two accounts.
type TransferInput struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Date          *time.Time      `json:"date,omitempty"`
}

// AccountSummaryRow is one account's slice of the summary report.
type AccountSummaryRow struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	Color       string          `json:"color"`
	Balance     decimal.Decimal `json:"balance"`
}

// SummaryResult is the aggregate report across a user's accounts, or across
// a selected subset of them.
type SummaryResult struct {
	TotalOpening decimal.Decimal     `json:"total_opening"`
	TotalBalance decimal.Decimal     `json:"total_balance"`
	TotalIncome  decimal.Decimal     `json:"total_income"`
	TotalExpense decimal.Decimal     `json:"total_expense"`
	Accounts     []AccountSummaryRow `json:"accounts"`
	LastUpdated  string              `json:"last_updated"`
}

// ImportOptions steers account resolution for one import run.
// SelectedAccountIDs are the accounts the user picked in the UI before
// uploading; when exactly one is selected it becomes the target for rows
// that carry no account name of their own. Rows that do name an account
// always resolve: unknown names create the account.
type ImportOptions struct {
	SelectedAccountIDs []string `json:"selected_account_ids"`
}

// AccountService defines account management and reporting.
type AccountService interface {
	CreateAccount(ctx context.Context, userID string, input AccountInput) (models.Account, error)
	UpdateAccount(ctx context.Context, userID, accountID string, input AccountInput) (models.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]models.AccountWithBalance, error)
	// GetSummary reports over the given account ids, or over every account
	// when none are given.
	GetSummary(ctx context.Context, userID string, accountIDs []string) (*SummaryResult, error)
	InvalidateUserCache(userID string)
}

// TransactionService defines manual ledger entry and export.
type TransactionService interface {
	AddTransaction(ctx context.Context, userID string, input TransactionInput) (models.Transaction, error)
	AddTransfer(ctx context.Context, userID string, input TransferInput) ([]models.Transaction, error)
	ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error)
	ExportCSV(ctx context.Context, userID string, w io.Writer) error
}

// ImportService defines the import pipeline: decode, sniff, normalize,
// resolve accounts, persist.
type ImportService interface {
	ImportCSV(ctx context.Context, userID string, fileReader io.Reader, opts ImportOptions) (*models.ImportResult, error)
	ImportRows(ctx context.Context, userID string, headers []string, rows []importer.Row, opts ImportOptions) (*models.ImportResult, error)
}
