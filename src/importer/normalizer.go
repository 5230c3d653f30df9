// backend/src/importer/normalizer.go
package importer

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/username/fintrack/backend/src/models"
	"github.com/username/fintrack/backend/src/money"
)

// SkipReason says why a row contributed nothing to the batch. Skipped rows
// never abort an import.
type SkipReason int

const (
	SkipNone SkipReason = iota
	// SkipBlankRow marks a structurally empty row (no description, no
	// amount); dropped silently rather than counted as a data error.
	SkipBlankRow
	// SkipBadAmount marks a row whose amount is missing or unparseable.
	SkipBadAmount
)

// Normalizer converts raw rows of one detected schema into draft
// transactions. Build one per import with NewNormalizer.
type Normalizer struct {
	mode   SchemaMode
	fields *fieldAccessor
}

func NewNormalizer(headers []string) *Normalizer {
	mode := DetectSchemaMode(headers)
	return &Normalizer{
		mode:   mode,
		fields: newFieldAccessor(headers, mode),
	}
}

func (n *Normalizer) Mode() SchemaMode { return n.mode }

// NormalizeRow turns one raw row into a draft transaction, or reports why it
// was dropped. The draft's amount is always the absolute value; the sign has
// already been consumed to determine the type. The free-text account name, if
// present, travels on the draft for the resolver; accountId is never assigned
// here.
func (n *Normalizer) NormalizeRow(row Row) (models.DraftTransaction, SkipReason) {
	description := strings.TrimSpace(stringOf(n.fields.value(row, "description")))
	amount, amountOK := amountOf(n.fields.value(row, "amount"))

	if description == "" && !amountOK {
		return models.DraftTransaction{}, SkipBlankRow
	}
	if !amountOK || amount.IsZero() {
		// Zero never represents a real movement; stored amounts are
		// strictly positive.
		return models.DraftTransaction{}, SkipBadAmount
	}

	txType := resolveType(stringOf(n.fields.value(row, "type")), amount)

	if description == "" {
		description = "Transaction"
	}

	return models.DraftTransaction{
		Description: description,
		Amount:      amount.Abs(),
		Type:        txType,
		Date:        parseDate(n.fields.value(row, "date")),
		AccountName: strings.TrimSpace(stringOf(n.fields.value(row, "account"))),
	}, SkipNone
}

// resolveType prefers an explicit type column, then falls back to the sign of
// the parsed amount: non-negative is income, negative is expense.
func resolveType(raw string, amount decimal.Decimal) models.TransactionType {
	if t, ok := models.NormalizeTransactionType(raw); ok {
		return t
	}
	if amount.IsNegative() {
		return models.TypeExpense
	}
	return models.TypeIncome
}

// Common bank export timestamp, treated as local time rather than UTC.
var localTimestampRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}$`)

var fallbackDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// parseDate accepts a native date when the decoder already produced one,
// otherwise tries the known string formats. A row with no parseable date is
// still valid; it simply has no timestamp.
func parseDate(v any) *time.Time {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		if val.IsZero() {
			return nil
		}
		return &val
	case *time.Time:
		return val
	}

	s := strings.TrimSpace(stringOf(v))
	if s == "" {
		return nil
	}
	if localTimestampRegex.MatchString(s) {
		if t, err := time.ParseInLocation("2006-01-02 15:04:05", s, time.Local); err == nil {
			return &t
		}
	}
	for _, layout := range fallbackDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

// stringOf renders a raw cell as text. Decoders may hand us non-string
// scalars (JSON numbers, booleans); anything else is formatted the default
// way.
func stringOf(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprintf("%v", val)
	}
}

// amountOf coerces a raw cell into a decimal amount. Numeric cells are taken
// as-is; text goes through the import amount parser.
func amountOf(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case nil:
		return decimal.Decimal{}, false
	case float64:
		return decimal.NewFromFloat(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int64:
		return decimal.NewFromInt(val), true
	case decimal.Decimal:
		return val, true
	case string:
		return money.ParseAmount(val)
	default:
		return money.ParseAmount(stringOf(v))
	}
}
