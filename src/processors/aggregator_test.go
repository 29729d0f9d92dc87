package processors

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/username/salescope/src/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAggregate_BasicScenario(t *testing.T) {
	records := []models.SalesRecord{
		{Product: "A", Quantity: 2, UnitPrice: 10, Date: day(2024, 1, 1)},
		{Product: "A", Quantity: 1, UnitPrice: 10, Date: day(2024, 1, 2)},
		{Product: "", Quantity: 5, UnitPrice: 100},
	}

	summary, series := NewSalesAggregator().Aggregate(records)

	wantSummary := models.ChartSummary{
		Products:           []models.ProductAggregate{{Name: "A", TotalRevenue: 30}},
		TotalRevenue:       30,
		TotalUnits:         3,
		UniqueProductCount: 1,
	}
	if diff := cmp.Diff(wantSummary, summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}

	wantSeries := []models.TimeSeriesPoint{
		{Date: "2024-01-01", Revenue: 20},
		{Date: "2024-01-02", Revenue: 10},
	}
	if diff := cmp.Diff(wantSeries, series); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_EmptyInput(t *testing.T) {
	summary, series := NewSalesAggregator().Aggregate(nil)

	if summary.TotalRevenue != 0 || summary.TotalUnits != 0 || summary.UniqueProductCount != 0 {
		t.Errorf("empty input totals = %+v, want all zero", summary)
	}
	if len(summary.Products) != 0 {
		t.Errorf("got %d products, want 0", len(summary.Products))
	}
	if len(series) != 0 {
		t.Errorf("got %d series points, want 0", len(series))
	}
}

func TestAggregate_EmptyProductExcludedFromSummaryButNotSeries(t *testing.T) {
	// Records without a product name contribute nothing to the summary but
	// still count toward the daily series when they carry a date. Current
	// behavior, pinned on purpose.
	records := []models.SalesRecord{
		{Product: "A", Quantity: 1, UnitPrice: 10, Date: day(2024, 3, 1)},
		{Product: "", Quantity: 2, UnitPrice: 50, Date: day(2024, 3, 1)},
	}

	summary, series := NewSalesAggregator().Aggregate(records)

	if summary.TotalRevenue != 10 {
		t.Errorf("TotalRevenue = %v, want 10", summary.TotalRevenue)
	}
	if summary.TotalUnits != 1 {
		t.Errorf("TotalUnits = %d, want 1", summary.TotalUnits)
	}
	if len(series) != 1 || series[0].Revenue != 110 {
		t.Errorf("series = %+v, want one point with revenue 110", series)
	}
}

func TestAggregate_TopTenTruncation(t *testing.T) {
	var records []models.SalesRecord
	for i := 0; i < 15; i++ {
		records = append(records, models.SalesRecord{
			Product:   fmt.Sprintf("P%02d", i),
			Quantity:  1,
			UnitPrice: float64(100 - i), // descending revenue by construction
		})
	}

	summary, _ := NewSalesAggregator().Aggregate(records)

	if len(summary.Products) != 10 {
		t.Fatalf("got %d products, want 10", len(summary.Products))
	}
	// Reports the truncated length, not the 15 distinct products seen.
	if summary.UniqueProductCount != 10 {
		t.Errorf("UniqueProductCount = %d, want 10", summary.UniqueProductCount)
	}
	for i := 1; i < len(summary.Products); i++ {
		if summary.Products[i].TotalRevenue > summary.Products[i-1].TotalRevenue {
			t.Errorf("products not sorted by revenue desc at index %d", i)
		}
	}
	if summary.Products[0].Name != "P00" {
		t.Errorf("top product = %q, want P00", summary.Products[0].Name)
	}
}

func TestAggregate_TiesKeepEncounterOrder(t *testing.T) {
	records := []models.SalesRecord{
		{Product: "First", Quantity: 1, UnitPrice: 50},
		{Product: "Second", Quantity: 1, UnitPrice: 50},
		{Product: "Third", Quantity: 1, UnitPrice: 50},
	}

	summary, _ := NewSalesAggregator().Aggregate(records)

	want := []string{"First", "Second", "Third"}
	for i, p := range summary.Products {
		if p.Name != want[i] {
			t.Fatalf("tie order broken: products[%d] = %q, want %q", i, p.Name, want[i])
		}
	}
}

func TestAggregate_SeriesSortedAscendingNoDuplicates(t *testing.T) {
	records := []models.SalesRecord{
		{Product: "A", Quantity: 1, UnitPrice: 5, Date: day(2024, 6, 3)},
		{Product: "A", Quantity: 1, UnitPrice: 5, Date: day(2024, 6, 1)},
		{Product: "B", Quantity: 2, UnitPrice: 5, Date: day(2024, 6, 3)},
		{Product: "C", Quantity: 1, UnitPrice: 5}, // no date, excluded from series
	}

	_, series := NewSalesAggregator().Aggregate(records)

	want := []models.TimeSeriesPoint{
		{Date: "2024-06-01", Revenue: 5},
		{Date: "2024-06-03", Revenue: 15},
	}
	if diff := cmp.Diff(want, series); diff != "" {
		t.Errorf("series mismatch (-want +got):\n%s", diff)
	}
}

func TestAggregate_RevenueRoundedToWholeUnits(t *testing.T) {
	records := []models.SalesRecord{
		{Product: "A", Quantity: 3, UnitPrice: 0.15, Date: day(2024, 1, 1)}, // 0.45
		{Product: "B", Quantity: 1, UnitPrice: 9.5, Date: day(2024, 1, 1)},  // 9.5
	}

	summary, series := NewSalesAggregator().Aggregate(records)

	// 0.45 + 9.5 = 9.95 rounds to 10; per-product 0.45 -> 0 and 9.5 -> 10.
	if summary.TotalRevenue != 10 {
		t.Errorf("TotalRevenue = %v, want 10", summary.TotalRevenue)
	}
	byName := map[string]float64{}
	for _, p := range summary.Products {
		byName[p.Name] = p.TotalRevenue
	}
	if byName["A"] != 0 {
		t.Errorf("product A revenue = %v, want 0", byName["A"])
	}
	if byName["B"] != 10 {
		t.Errorf("product B revenue = %v, want 10", byName["B"])
	}
	if len(series) != 1 || series[0].Revenue != 10 {
		t.Errorf("series = %+v, want one point with revenue 10", series)
	}
}

func TestAggregate_Idempotent(t *testing.T) {
	records := []models.SalesRecord{
		{Product: "A", Quantity: 2, UnitPrice: 10, Date: day(2024, 1, 1)},
		{Product: "B", Quantity: 3, UnitPrice: 7, Date: day(2024, 1, 2)},
		{Product: "", Quantity: 1, UnitPrice: 99, Date: day(2024, 1, 2)},
	}

	agg := NewSalesAggregator()
	summary1, series1 := agg.Aggregate(records)
	summary2, series2 := agg.Aggregate(records)

	if diff := cmp.Diff(summary1, summary2); diff != "" {
		t.Errorf("summary not idempotent (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(series1, series2); diff != "" {
		t.Errorf("series not idempotent (-first +second):\n%s", diff)
	}
}
