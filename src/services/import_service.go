// backend/src/services/import_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/username/fintrack/backend/src/importer"
	"github.com/username/fintrack/backend/src/logger"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/security/validation"
	"github.com/username/fintrack/backend/src/store"
)

type importServiceImpl struct {
	store          store.Store
	accountService AccountService
}

func NewImportService(st store.Store, accountService AccountService) ImportService {
	return &importServiceImpl{
		store:          st,
		accountService: accountService,
	}
}

func (s *importServiceImpl) ImportCSV(ctx context.Context, userID string, fileReader io.Reader, opts ImportOptions) (*models.ImportResult, error) {
	headers, rows, err := importer.DecodeCSV(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	return s.ImportRows(ctx, userID, headers, rows, opts)
}

// ImportRows runs the pipeline over already-decoded rows: sniff the schema
// from the headers, normalize each row, resolve account names, then persist
// the survivors in one batch. Bad rows are counted, never fatal; the batch
// only fails when nothing at all survives or a collaborator breaks.
func (s *importServiceImpl) ImportRows(ctx context.Context, userID string, headers []string, rows []importer.Row, opts ImportOptions) (*models.ImportResult, error) {
	startTime := time.Now()
	normalizer := importer.NewNormalizer(headers)
	logger.L.Info("Import START", "userID", userID, "rows", len(rows), "schema", normalizer.Mode().String())

	resolver, err := newAccountResolver(ctx, s.store, userID, opts)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{}
	var txs []models.Transaction
	for _, row := range rows {
		draft, skip := normalizer.NormalizeRow(row)
		if skip == importer.SkipBlankRow {
			continue
		}
		if skip != importer.SkipNone {
			result.SkippedRows++
			continue
		}

		accountID, ok, err := resolver.Resolve(ctx, draft)
		if err != nil {
			return nil, err
		}
		if !ok {
			result.DroppedNoAccount++
			continue
		}

		// Imported descriptions pass the same sanitization gate as manual
		// entry before persistence.
		description := cleanImportedText(draft.Description, validation.MaxDescriptionLength)
		if description == "" {
			description = "Transaction"
		}

		txs = append(txs, models.Transaction{
			AccountID:   accountID,
			Description: description,
			Amount:      draft.Amount,
			Type:        draft.Type,
			Date:        draft.Date,
		})
	}

	if len(txs) == 0 {
		if result.DroppedNoAccount > 0 {
			return nil, fmt.Errorf("%w: no account to receive the imported rows", ErrNoAccounts)
		}
		return nil, fmt.Errorf("%w: no row survived normalization", ErrNoValidRows)
	}

	if err := s.store.InsertTransactions(ctx, userID, txs); err != nil {
		return nil, err
	}
	result.Imported = len(txs)
	result.CreatedAccounts = resolver.CreatedAccounts()

	s.accountService.InvalidateUserCache(userID)
	logger.L.Info("Import END", "userID", userID,
		"imported", result.Imported,
		"skipped", result.SkippedRows,
		"droppedNoAccount", result.DroppedNoAccount,
		"createdAccounts", len(result.CreatedAccounts),
		"duration", time.Since(startTime))
	return result, nil
}
