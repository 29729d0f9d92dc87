package processors

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/username/salescope/src/logger"
	"github.com/username/salescope/src/models"
	"github.com/username/salescope/src/utils"
)

// Candidate source keys per canonical field, tried in priority order.
// Sources disagree on casing and naming; the lists pin the known variants
// instead of doing any dynamic lookup.
var (
	productKeys  = []string{"product_name", "Product Name", "product", "Product"}
	quantityKeys = []string{"quantity", "Quantity"}
	priceKeys    = []string{"price", "Price"}
	dateKeys     = []string{"sale_date", "Sale Date", "date", "Date"}
)

type RecordNormalizer struct{}

func NewRecordNormalizer() *RecordNormalizer { return &RecordNormalizer{} }

// Normalize maps each raw row to exactly one SalesRecord. Rows are never
// dropped here: missing or unparsable quantity/price become 0, an
// unresolvable date stays zero. The "skip rows without a product" policy
// belongs to the aggregator.
func (n *RecordNormalizer) Normalize(rows []models.RawRow) []models.SalesRecord {
	records := make([]models.SalesRecord, 0, len(rows))
	for i, row := range rows {
		record := models.SalesRecord{
			Product:   strings.TrimSpace(resolveField(row, productKeys)),
			Quantity:  parseQuantity(row, i),
			UnitPrice: parsePrice(row, i),
			Date:      utils.ParseDate(resolveField(row, dateKeys)),
		}
		records = append(records, record)
	}
	return records
}

// resolveField returns the first candidate key present in the row, as a
// string. Non-string values (numeric database columns) are formatted.
func resolveField(row models.RawRow, candidates []string) string {
	for _, key := range candidates {
		value, ok := row[key]
		if !ok || value == nil {
			continue
		}
		switch v := value.(type) {
		case string:
			return v
		case []byte:
			return string(v)
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		case int64:
			return strconv.FormatInt(v, 10)
		default:
			return fmt.Sprintf("%v", v)
		}
	}
	return ""
}

func parseQuantity(row models.RawRow, rowIndex int) int {
	raw := strings.TrimSpace(resolveField(row, quantityKeys))
	if raw == "" {
		return 0
	}
	if qty, err := strconv.Atoi(raw); err == nil {
		return qty
	}
	// Database NUMERIC columns round-trip as floats ("3.0").
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return int(f)
	}
	if logger.L != nil {
		logger.L.Debug("Unparsable quantity, defaulting to 0", "row", rowIndex, "value", raw)
	}
	return 0
}

func parsePrice(row models.RawRow, rowIndex int) float64 {
	raw := strings.TrimSpace(resolveField(row, priceKeys))
	if raw == "" {
		return 0
	}
	if price, err := strconv.ParseFloat(raw, 64); err == nil {
		return price
	}
	if logger.L != nil {
		logger.L.Debug("Unparsable price, defaulting to 0", "row", rowIndex, "value", raw)
	}
	return 0
}
