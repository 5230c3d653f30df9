// backend/src/importer/schema.go
package importer

import "strings"

// Row is one raw record from an uploaded table, keyed by column header. The
// tabular decoding collaborator may supply values as strings (CSV) or as
// native types (numbers, dates) when the source format carries them.
type Row map[string]any

// SchemaMode is the detected shape of an imported table. It determines which
// columns map to which semantic fields.
type SchemaMode int

const (
	// SchemaGeneric is the simple description/amount shape, and the
	// fallback when no shape is recognized; the per-row normalizer makes
	// the final accept/reject call.
	SchemaGeneric SchemaMode = iota
	// SchemaReport is the bank/report export shape with account, category,
	// currency, type and note columns.
	SchemaReport
)

func (m SchemaMode) String() string {
	if m == SchemaReport {
		return "report"
	}
	return "generic"
}

var reportColumns = []string{"account", "category", "currency", "amount", "type", "note", "date"}

// DetectSchemaMode classifies a header set. Matching is case-insensitive and
// order-independent; extra columns are tolerated. Report is checked first.
func DetectSchemaMode(headers []string) SchemaMode {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[strings.ToLower(strings.TrimSpace(h))] = true
	}

	isReport := true
	for _, col := range reportColumns {
		if !set[col] {
			isReport = false
			break
		}
	}
	if isReport {
		return SchemaReport
	}
	return SchemaGeneric
}

// Semantic fields the normalizer reads, mapped to source columns per mode.
var fieldColumns = map[SchemaMode]map[string]string{
	SchemaReport: {
		"description": "note",
		"amount":      "amount",
		"type":        "type",
		"date":        "date",
		"account":     "account",
	},
	SchemaGeneric: {
		"description": "description",
		"amount":      "amount",
		"type":        "type",
		"date":        "date",
		"account":     "account",
	},
}

// fieldAccessor resolves semantic fields against a row set's actual headers.
// It is built once per import so per-row lookups stay cheap and header casing
// is handled in one place.
type fieldAccessor struct {
	columns map[string]string // semantic field -> actual header key
}

func newFieldAccessor(headers []string, mode SchemaMode) *fieldAccessor {
	byLower := make(map[string]string, len(headers))
	for _, h := range headers {
		trimmed := strings.TrimSpace(h)
		lower := strings.ToLower(trimmed)
		if _, exists := byLower[lower]; !exists {
			byLower[lower] = trimmed
		}
	}

	columns := make(map[string]string, len(fieldColumns[mode]))
	for field, col := range fieldColumns[mode] {
		if actual, ok := byLower[col]; ok {
			columns[field] = actual
		}
	}
	return &fieldAccessor{columns: columns}
}

// value returns the raw cell for a semantic field, or nil when the source
// table has no matching column.
func (a *fieldAccessor) value(row Row, field string) any {
	col, ok := a.columns[field]
	if !ok {
		return nil
	}
	return row[col]
}
