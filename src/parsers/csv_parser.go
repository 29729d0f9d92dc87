package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/username/salescope/src/models"
)

type CSVSalesParser struct{}

func NewCSVParser() *CSVSalesParser {
	return &CSVSalesParser{}
}

// Parse reads a header-driven CSV file into raw rows. Header names are kept
// as-is (minus surrounding whitespace) so downstream field resolution can
// match the source's own naming. Short rows yield rows with fewer keys;
// no row is rejected here.
func (p *CSVSalesParser) Parse(file io.Reader) ([]models.RawRow, error) {
	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read all CSV records: %w", err)
	}

	rows := make([]models.RawRow, 0, len(records))
	for _, record := range records {
		row := make(models.RawRow, len(header))
		for i, value := range record {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(value)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
