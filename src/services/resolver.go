// backend/src/services/resolver.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/username/fintrack/backend/src/logger"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/security/validation"
	"github.com/username/fintrack/backend/src/store"
)

// accountPalette provides colors for accounts created during import, cycled
// in order as new accounts appear.
var accountPalette = []string{"#10b981", "#ef4444", "#f59e0b", "#3b82f6", "#8b5cf6"}

// accountResolver maps the free-text account names of an import batch to
// account ids. Matching is case-insensitive on the sanitized, trimmed name,
// and a name created mid-batch is found by every later row that repeats it,
// so one name never produces two accounts in a single run. Unknown names
// always create their account; only nameless rows can end up without a
// target.
type accountResolver struct {
	store            store.Store
	userID           string
	idsByName        map[string]string
	knownIDs         map[string]bool
	defaultAccountID string
	created          []models.Account
	colorIndex       int
}

// newAccountResolver snapshots the user's accounts once, up front. Rows are
// resolved against that snapshot plus whatever the batch itself creates;
// nothing else mutates accounts while an import runs.
func newAccountResolver(ctx context.Context, st store.Store, userID string, opts ImportOptions) (*accountResolver, error) {
	accounts, err := st.ListAccounts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading accounts for import: %w", err)
	}

	r := &accountResolver{
		store:      st,
		userID:     userID,
		idsByName:  make(map[string]string, len(accounts)),
		knownIDs:   make(map[string]bool, len(accounts)),
		colorIndex: len(accounts),
	}
	for _, a := range accounts {
		r.idsByName[normalizeAccountName(a.Name)] = a.ID
		r.knownIDs[a.ID] = true
	}

	// The fallback target for rows without an account name: the single
	// selected account if the user picked exactly one, otherwise the first
	// known account, otherwise none.
	if len(opts.SelectedAccountIDs) == 1 && r.knownIDs[opts.SelectedAccountIDs[0]] {
		r.defaultAccountID = opts.SelectedAccountIDs[0]
	} else if len(accounts) > 0 {
		r.defaultAccountID = accounts[0].ID
	}
	return r, nil
}

// Resolve returns the account id for one draft. ok=false means the row has
// no usable target and must be dropped, never that the batch should abort.
func (r *accountResolver) Resolve(ctx context.Context, draft models.DraftTransaction) (string, bool, error) {
	// Imported names pass the same sanitization gate as manual account
	// creation before they are matched or stored.
	name := cleanImportedText(draft.AccountName, validation.MaxAccountNameLength)
	key := normalizeAccountName(name)
	if key == "" {
		if r.defaultAccountID == "" {
			return "", false, nil
		}
		return r.defaultAccountID, true, nil
	}

	if id, found := r.idsByName[key]; found {
		return id, true, nil
	}

	account, err := r.store.CreateAccount(ctx, r.userID, store.AccountParams{
		Name:           name,
		Color:          r.nextColor(),
		OpeningBalance: decimal.Zero,
	})
	if err != nil {
		return "", false, fmt.Errorf("error creating account %q during import: %w", name, err)
	}
	logger.L.Info("Created account during import", "userID", r.userID, "accountName", account.Name)

	r.idsByName[key] = account.ID
	r.knownIDs[account.ID] = true
	r.created = append(r.created, account)
	if r.defaultAccountID == "" {
		r.defaultAccountID = account.ID
	}
	return account.ID, true, nil
}

// CreatedAccounts lists the accounts this batch brought into existence, in
// creation order.
func (r *accountResolver) CreatedAccounts() []models.Account {
	return r.created
}

func (r *accountResolver) nextColor() string {
	color := accountPalette[r.colorIndex%len(accountPalette)]
	r.colorIndex++
	return color
}

func normalizeAccountName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// cleanImportedText applies the persistence gate to free text coming out of
// an uploaded file: strip markup and unprintables, trim, cap the length.
func cleanImportedText(s string, maxLength int) string {
	cleaned := strings.TrimSpace(validation.SanitizeText(validation.StripUnprintable(s)))
	return validation.TruncateToLength(cleaned, maxLength)
}
