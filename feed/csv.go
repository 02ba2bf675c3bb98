// Package feed decodes the external tabular and JSON feeds into typed records.
// Malformed rows are skipped and counted; only an unreadable stream or a
// missing header is an error.
package feed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrNoHeader is returned when a feed has no header row
var ErrNoHeader = errors.New("feed has no header row")

// readCSV returns the header and the data rows of a CSV stream.
// Rows that fail to parse are counted as skipped.
func readCSV(r io.Reader) (header []string, rows [][]string, skipped int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err = reader.Read()
	if err == io.EOF {
		return nil, nil, 0, ErrNoHeader
	}
	if err != nil {
		return nil, nil, 0, fmt.Errorf("failed to read header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				continue
			}
			return nil, nil, skipped, fmt.Errorf("failed to read row: %w", err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		rows = append(rows, record)
	}
	return header, rows, skipped, nil
}

// columnIndex returns the index of the first header matching one of names
func columnIndex(header []string, names ...string) int {
	for i, h := range header {
		for _, name := range names {
			if strings.EqualFold(h, name) {
				return i
			}
		}
	}
	return -1
}

func field(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
