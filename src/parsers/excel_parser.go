package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/username/salescope/src/models"
	"github.com/xuri/excelize/v2"
)

type ExcelSalesParser struct{}

func NewExcelParser() *ExcelSalesParser {
	return &ExcelSalesParser{}
}

// Parse reads the first worksheet of an OOXML (.xlsx) workbook into raw
// rows, first row as header. Cell values come back as display strings, same
// loose shape the CSV parser produces. Legacy binary (.xls) workbooks are
// rejected at open.
func (p *ExcelSalesParser) Parse(file io.Reader) ([]models.RawRow, error) {
	wb, err := excelize.OpenReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no worksheets")
	}

	records, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("worksheet %q has no header row", sheets[0])
	}

	header := records[0]
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	rows := make([]models.RawRow, 0, len(records)-1)
	for _, record := range records[1:] {
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
