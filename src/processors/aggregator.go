package processors

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/username/salescope/src/models"
)

const topProductLimit = 10

type SalesAggregator struct{}

func NewSalesAggregator() *SalesAggregator { return &SalesAggregator{} }

type productGroup struct {
	name    string
	revenue decimal.Decimal
}

// Aggregate computes the chart summary and the daily revenue time series in
// one pass. It is a pure function of its input.
//
// Two inclusion rules apply, and they differ on purpose (pinned behavior,
// pending product-owner confirmation): the summary counts only records with
// a non-empty product name, while the time series counts every record with a
// resolvable date.
func (a *SalesAggregator) Aggregate(records []models.SalesRecord) (models.ChartSummary, []models.TimeSeriesPoint) {
	// Insertion-ordered product accumulator so revenue ties keep encounter
	// order through the stable sort.
	groupIndex := make(map[string]int)
	var groups []*productGroup

	totalRevenue := decimal.Zero
	totalUnits := 0

	dailyRevenue := make(map[string]decimal.Decimal)

	for _, record := range records {
		revenue := decimal.NewFromInt(int64(record.Quantity)).Mul(decimal.NewFromFloat(record.UnitPrice))

		if record.Product != "" {
			idx, ok := groupIndex[record.Product]
			if !ok {
				idx = len(groups)
				groupIndex[record.Product] = idx
				groups = append(groups, &productGroup{name: record.Product})
			}
			groups[idx].revenue = groups[idx].revenue.Add(revenue)

			totalRevenue = totalRevenue.Add(revenue)
			totalUnits += record.Quantity
		}

		if record.HasDate() {
			day := record.Date.Format("2006-01-02")
			dailyRevenue[day] = dailyRevenue[day].Add(revenue)
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].revenue.GreaterThan(groups[j].revenue)
	})

	limit := topProductLimit
	if len(groups) < limit {
		limit = len(groups)
	}
	products := make([]models.ProductAggregate, 0, limit)
	for _, g := range groups[:limit] {
		products = append(products, models.ProductAggregate{
			Name:         g.name,
			TotalRevenue: roundToUnit(g.revenue),
		})
	}

	summary := models.ChartSummary{
		Products:     products,
		TotalRevenue: roundToUnit(totalRevenue),
		TotalUnits:   totalUnits,
		// Reports the count of returned products, not the count of all
		// distinct products. Callers depend on the current value.
		UniqueProductCount: len(products),
	}

	series := make([]models.TimeSeriesPoint, 0, len(dailyRevenue))
	for day, revenue := range dailyRevenue {
		series = append(series, models.TimeSeriesPoint{
			Date:    day,
			Revenue: roundToUnit(revenue),
		})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	return summary, series
}

// roundToUnit rounds to the nearest whole currency unit, half away from zero.
func roundToUnit(d decimal.Decimal) float64 {
	f, _ := d.Round(0).Float64()
	return f
}
