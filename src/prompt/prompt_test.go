package prompt

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/username/salescope/src/models"
)

func makeRecords(n int) []models.SalesRecord {
	records := make([]models.SalesRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, models.SalesRecord{
			Product:   fmt.Sprintf("Product %d", i),
			Quantity:  1,
			UnitPrice: 9.99,
			Date:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i%28),
		})
	}
	return records
}

func TestBuildReportPrompt_ContainsAggregates(t *testing.T) {
	summary := models.ChartSummary{
		Products:           []models.ProductAggregate{{Name: "Laptop", TotalRevenue: 2000}},
		TotalRevenue:       2000,
		TotalUnits:         2,
		UniqueProductCount: 1,
	}
	series := []models.TimeSeriesPoint{{Date: "2024-01-15", Revenue: 2000}}

	got := NewBuilder().BuildReportPrompt(makeRecords(2), summary, series)

	for _, want := range []string{
		"- Total Revenue: $2000",
		"- Total Units Sold: 2",
		"- Products Listed: 1",
		"1. Laptop ($2000)",
		"- 2024-01-15: $2000",
		"Start directly with <h3>Sales Analysis Report</h3>",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildReportPrompt_SmallSetHasNoTruncationNote(t *testing.T) {
	got := NewBuilder().BuildReportPrompt(makeRecords(SampleLimit), models.ChartSummary{}, nil)

	if !strings.Contains(got, fmt.Sprintf("Sales Records (%d of %d total):", SampleLimit, SampleLimit)) {
		t.Error("prompt missing record count line")
	}
	if strings.Contains(got, "Note: only the first") {
		t.Error("truncation note present for a set at the limit")
	}
}

func TestBuildReportPrompt_LargeSetTruncatesWithTrueTotal(t *testing.T) {
	const total = 120
	got := NewBuilder().BuildReportPrompt(makeRecords(total), models.ChartSummary{}, nil)

	if !strings.Contains(got, fmt.Sprintf("Sales Records (%d of %d total):", SampleLimit, total)) {
		t.Errorf("prompt should report %d of %d records", SampleLimit, total)
	}
	if !strings.Contains(got, fmt.Sprintf("the dataset contains %d records in total", total)) {
		t.Error("truncation note missing the true total")
	}
	if n := strings.Count(got, "- product="); n != SampleLimit {
		t.Errorf("embedded %d record lines, want %d", n, SampleLimit)
	}
}

func TestBuildReportPrompt_DatelessRecordShowsUnknown(t *testing.T) {
	records := []models.SalesRecord{{Product: "Widget", Quantity: 1, UnitPrice: 5}}

	got := NewBuilder().BuildReportPrompt(records, models.ChartSummary{}, nil)

	if !strings.Contains(got, `- product="Widget" quantity=1 unit_price=5.00 date=unknown`) {
		t.Errorf("record line not rendered as expected:\n%s", got)
	}
}

func TestBuildReportPrompt_Deterministic(t *testing.T) {
	records := makeRecords(75)
	summary := models.ChartSummary{TotalRevenue: 100, TotalUnits: 10, UniqueProductCount: 5}
	series := []models.TimeSeriesPoint{{Date: "2024-01-01", Revenue: 100}}

	b := NewBuilder()
	first := b.BuildReportPrompt(records, summary, series)
	second := b.BuildReportPrompt(records, summary, series)
	if first != second {
		t.Error("identical inputs produced different prompts")
	}
}

func TestBuildChatPrompt(t *testing.T) {
	summary := models.ChartSummary{
		Products: []models.ProductAggregate{
			{Name: "Alpha", TotalRevenue: 300},
			{Name: "Beta", TotalRevenue: 200},
			{Name: "Gamma", TotalRevenue: 100},
			{Name: "Delta", TotalRevenue: 50},
		},
		TotalRevenue:       650,
		TotalUnits:         65,
		UniqueProductCount: 4,
	}

	got := NewBuilder().BuildChatPrompt("Which product sold best?", summary)

	for _, want := range []string{
		"- Total Revenue: $650",
		"- Total Units: 65",
		"- Top Products: Alpha, Beta, Gamma",
		"User Question: Which product sold best?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("chat prompt missing %q", want)
		}
	}
	if strings.Contains(got, "Delta") {
		t.Error("chat prompt should list at most the top 3 products")
	}
}

func TestBuildChatPrompt_NoProducts(t *testing.T) {
	got := NewBuilder().BuildChatPrompt("Anything?", models.ChartSummary{})
	if strings.Contains(got, "Top Products:") {
		t.Error("empty summary should omit the top products line")
	}
}
