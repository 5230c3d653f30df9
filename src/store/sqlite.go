// backend/src/store/sqlite.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/username/fintrack/backend/src/models"
)

// SQLiteStore implements Store on an injected database handle. The handle's
// lifecycle belongs to the composition root, not to this package.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) ListAccounts(ctx context.Context, userID string) ([]models.Account, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, color, opening_balance
		FROM accounts
		WHERE user_id = ?
		ORDER BY created_at ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying accounts for user %s: %w", userID, err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		account, err := scanAccount(rows, userID)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over account rows: %w", err)
	}
	return accounts, nil
}

func (s *SQLiteStore) GetAccount(ctx context.Context, userID, id string) (models.Account, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, name, color, opening_balance
		FROM accounts
		WHERE user_id = ? AND id = ?`, userID, id)

	account, err := scanAccount(row, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, ErrNotFound
	}
	if err != nil {
		return models.Account{}, err
	}
	return account, nil
}

func (s *SQLiteStore) CreateAccount(ctx context.Context, userID string, params AccountParams) (models.Account, error) {
	account := models.Account{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           params.Name,
		Color:          params.Color,
		OpeningBalance: params.OpeningBalance,
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO accounts (id, user_id, name, color, opening_balance)
		VALUES (?, ?, ?, ?, ?)`,
		account.ID, userID, account.Name, account.Color, account.OpeningBalance.String())
	if err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, ErrDuplicateName
		}
		return models.Account{}, fmt.Errorf("error inserting account %q: %w", params.Name, err)
	}
	return account, nil
}

func (s *SQLiteStore) UpdateAccount(ctx context.Context, userID, id string, params AccountParams) (models.Account, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE accounts
		SET name = ?, color = ?, opening_balance = ?
		WHERE user_id = ? AND id = ?`,
		params.Name, params.Color, params.OpeningBalance.String(), userID, id)
	if err != nil {
		if isUniqueViolation(err) {
			return models.Account{}, ErrDuplicateName
		}
		return models.Account{}, fmt.Errorf("error updating account %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.Account{}, fmt.Errorf("error checking update result for account %s: %w", id, err)
	}
	if affected == 0 {
		return models.Account{}, ErrNotFound
	}

	return models.Account{
		ID:             id,
		UserID:         userID,
		Name:           params.Name,
		Color:          params.Color,
		OpeningBalance: params.OpeningBalance,
	}, nil
}

func (s *SQLiteStore) ListTransactions(ctx context.Context, userID string) ([]models.Transaction, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, account_id, description, amount, type, date, to_account_id
		FROM transactions
		WHERE user_id = ?
		ORDER BY date IS NULL ASC, date DESC, created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	var txs []models.Transaction
	for rows.Next() {
		var (
			tx          models.Transaction
			amountStr   string
			dateStr     sql.NullString
			toAccountID sql.NullString
		)
		if err := rows.Scan(&tx.ID, &tx.AccountID, &tx.Description, &amountStr, &tx.Type, &dateStr, &toAccountID); err != nil {
			return nil, fmt.Errorf("error scanning transaction row: %w", err)
		}
		tx.UserID = userID
		tx.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("corrupt amount %q on transaction %s: %w", amountStr, tx.ID, err)
		}
		if dateStr.Valid && dateStr.String != "" {
			parsed, err := time.Parse(time.RFC3339, dateStr.String)
			if err != nil {
				return nil, fmt.Errorf("corrupt date %q on transaction %s: %w", dateStr.String, tx.ID, err)
			}
			tx.Date = &parsed
		}
		tx.ToAccountID = toAccountID.String
		txs = append(txs, tx)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over transaction rows: %w", err)
	}
	return txs, nil
}

func (s *SQLiteStore) InsertTransactions(ctx context.Context, userID string, txs []models.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx, `
		INSERT INTO transactions (id, user_id, account_id, description, amount, type, date, to_account_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, tx := range txs {
		id := tx.ID
		if id == "" {
			id = uuid.NewString()
		}
		var dateVal any
		if tx.Date != nil {
			dateVal = tx.Date.Format(time.RFC3339)
		}
		var toAccountVal any
		if tx.ToAccountID != "" {
			toAccountVal = tx.ToAccountID
		}
		if _, err := stmt.ExecContext(ctx, id, userID, tx.AccountID, tx.Description,
			tx.Amount.String(), string(tx.Type), dateVal, toAccountVal); err != nil {
			return fmt.Errorf("error inserting transaction %q: %w", tx.Description, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("error committing transactions: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner, userID string) (models.Account, error) {
	var (
		account    models.Account
		balanceStr string
	)
	if err := row.Scan(&account.ID, &account.Name, &account.Color, &balanceStr); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Account{}, err
		}
		return models.Account{}, fmt.Errorf("error scanning account row: %w", err)
	}
	account.UserID = userID

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return models.Account{}, fmt.Errorf("corrupt opening balance %q on account %s: %w", balanceStr, account.ID, err)
	}
	account.OpeningBalance = balance
	return account, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "unique constraint failed")
}
