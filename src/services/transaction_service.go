// backend/src/services/transaction_service.go
package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/username/fintrack/backend/src/ledger"
	"github.com/username/fintrack/backend/src/logger"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/money"
	"github.com/username/fintrack/backend/src/security/validation"
	"github.com/username/fintrack/backend/src/store"
)

type transactionServiceImpl struct {
	store          store.Store
	accountService AccountService
}

func NewTransactionService(st store.Store, accountService AccountService) TransactionService {
	return &transactionServiceImpl{
		store:          st,
		accountService: accountService,
	}
}

func (s *transactionServiceImpl) AddTransaction(ctx context.Context, userID string, input TransactionInput) (models.Transaction, error) {
	txType, ok := models.NormalizeTransactionType(input.Type)
	if !ok {
		return models.Transaction{}, fmt.Errorf("%w: type must be income or expense", validation.ErrValidationFailed)
	}
	if !input.Amount.IsPositive() {
		return models.Transaction{}, fmt.Errorf("%w: amount must be positive", validation.ErrValidationFailed)
	}

	description := strings.TrimSpace(validation.SanitizeText(validation.StripUnprintable(input.Description)))
	if err := validation.ValidateDescription(description); err != nil {
		return models.Transaction{}, err
	}
	if description == "" {
		description = "Transaction"
	}

	// The target account must exist before anything is written.
	if _, err := s.store.GetAccount(ctx, userID, input.AccountID); err != nil {
		return models.Transaction{}, err
	}

	tx := models.Transaction{
		ID:          uuid.NewString(),
		AccountID:   input.AccountID,
		Description: description,
		Amount:      input.Amount.Round(2),
		Type:        txType,
		Date:        input.Date,
	}
	if err := s.store.InsertTransactions(ctx, userID, []models.Transaction{tx}); err != nil {
		return models.Transaction{}, err
	}
	s.accountService.InvalidateUserCache(userID)
	return tx, nil
}

func (s *transactionServiceImpl) AddTransfer(ctx context.Context, userID string, input TransferInput) ([]models.Transaction, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, fmt.Errorf("%w: source and destination accounts must differ", validation.ErrValidationFailed)
	}
	if !input.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: amount must be positive", validation.ErrValidationFailed)
	}

	from, err := s.store.GetAccount(ctx, userID, input.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.store.GetAccount(ctx, userID, input.ToAccountID)
	if err != nil {
		return nil, err
	}

	expense, income := ledger.NewTransferPair(ledger.TransferRequest{
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		FromName:      from.Name,
		ToName:        to.Name,
		Amount:        input.Amount.Round(2),
		Date:          input.Date,
	})
	pair := []models.Transaction{expense, income}

	// Both rows land in one database transaction so a half-written transfer
	// can never be observed.
	if err := s.store.InsertTransactions(ctx, userID, pair); err != nil {
		return nil, err
	}
	s.accountService.InvalidateUserCache(userID)
	logger.L.Info("Transfer recorded", "userID", userID, "from", from.ID, "to", to.ID)
	return pair, nil
}

func (s *transactionServiceImpl) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	return s.store.ListTransactions(ctx, userID)
}

// Export columns mirror the persisted row shape.
var exportHeader = []string{"id", "account_id", "description", "amount", "type", "date", "to_account_id"}

// ExportCSV streams the user's full ledger. Text cells pass through the
// formula injection guard so exported files open safely in spreadsheets.
func (s *transactionServiceImpl) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	txs, err := s.store.ListTransactions(ctx, userID)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("error writing export header: %w", err)
	}
	for _, tx := range txs {
		date := ""
		if tx.Date != nil {
			date = tx.Date.Format("2006-01-02 15:04:05")
		}
		record := []string{
			tx.ID,
			tx.AccountID,
			validation.SanitizeForFormulaInjection(tx.Description),
			money.FormatAmount(tx.Amount),
			string(tx.Type),
			date,
			tx.ToAccountID,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("error writing export row %s: %w", tx.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
