package parsers

import (
	"fmt"
	"path/filepath"
	"strings"
)

// GetParser selects a parser from the uploaded file's extension. Legacy
// binary .xls workbooks are not supported; only OOXML workbooks can be read.
func GetParser(filename string) (Parser, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewExcelParser(), nil
	default:
		return nil, fmt.Errorf("no parser available for file: %s", filename)
	}
}
