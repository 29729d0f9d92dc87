package models

import "time"

// RawRow is one source record in its original, loosely typed shape.
// Keys are whatever the CSV header, worksheet header, or database column
// happened to be called; values are strings or numbers depending on source.
type RawRow map[string]any

// SalesRecord is the canonical normalized record. Quantity and UnitPrice
// default to 0 when the source field is missing or unparsable. A zero Date
// means the source row carried no resolvable date.
type SalesRecord struct {
	Product   string    `json:"product"`
	Quantity  int       `json:"quantity"`
	UnitPrice float64   `json:"unitPrice"`
	Date      time.Time `json:"date"`
}

// Revenue is derived, never stored.
func (r SalesRecord) Revenue() float64 {
	return float64(r.Quantity) * r.UnitPrice
}

// HasDate reports whether the record carries a resolvable calendar date.
func (r SalesRecord) HasDate() bool {
	return !r.Date.IsZero()
}

// ProductAggregate is one product's summed revenue, rounded to whole
// currency units.
type ProductAggregate struct {
	Name         string  `json:"name"`
	TotalRevenue float64 `json:"revenue"`
}

// ChartSummary is the aggregate view used for both charting and LLM prompt
// context. Products holds at most the top 10 by revenue; TotalRevenue and
// TotalUnits are sums over every record with a non-empty product name, not
// just the listed ones.
type ChartSummary struct {
	Products           []ProductAggregate `json:"products"`
	TotalRevenue       float64            `json:"totalRevenue"`
	TotalUnits         int                `json:"totalUnits"`
	UniqueProductCount int                `json:"uniqueProducts"`
}

// TimeSeriesPoint is one day's summed revenue, rounded to whole currency
// units. Date uses the ISO calendar-date form (2006-01-02).
type TimeSeriesPoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

// ReportBundle is the caller-facing result of a report generation run.
type ReportBundle struct {
	Report         string            `json:"report"`
	ChartData      ChartSummary      `json:"chartData"`
	TimeSeriesData []TimeSeriesPoint `json:"timeSeriesData"`
}
