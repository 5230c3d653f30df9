// backend/src/importer/csv.go
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNotTabular marks input that cannot be interpreted as a table at all
// (empty file, no header row). Per-row problems never produce it.
var ErrNotTabular = errors.New("input is not tabular data")

// DecodeCSV reads an uploaded CSV into header-keyed rows. The importer is
// agnostic to the file format that produced the rows; this is simply the
// decoder for the format we accept directly. Short records are padded with
// missing columns, extra cells beyond the header are ignored.
func DecodeCSV(r io.Reader) ([]string, []Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // Allow variable number of fields per record

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, fmt.Errorf("%w: empty file", ErrNotTabular)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to read CSV header: %v", ErrNotTabular, err)
	}

	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("%w: failed to read CSV records: %v", ErrNotTabular, err)
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			if i < len(record) {
				row[h] = record[i]
			}
		}
		rows = append(rows, row)
	}
	return headers, rows, nil
}
