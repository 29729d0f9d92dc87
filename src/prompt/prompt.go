// Package prompt builds the instruction text sent to the LLM collaborator.
// Output is deterministic for identical inputs; any variability in the final
// report comes from the model, never from here.
package prompt

import (
	"fmt"
	"strings"

	"github.com/username/salescope/src/models"
	"github.com/username/salescope/src/utils"
)

// SampleLimit caps how many raw records are embedded verbatim in the report
// prompt. The cap is a token-budget contract with the LLM collaborator, not
// an incidental limit.
const SampleLimit = 50

type Builder struct{}

func NewBuilder() *Builder { return &Builder{} }

// BuildReportPrompt serializes the aggregates and a bounded record sample
// into the report instruction. When the record set exceeds SampleLimit the
// prompt says so and states the true total.
func (b *Builder) BuildReportPrompt(records []models.SalesRecord, summary models.ChartSummary, series []models.TimeSeriesPoint) string {
	var sb strings.Builder

	sb.WriteString("You are an expert data analyst. Analyze this sales data and generate a comprehensive business report.\n\n")

	sb.WriteString("Aggregated Summary:\n")
	fmt.Fprintf(&sb, "- Total Revenue: $%.0f\n", summary.TotalRevenue)
	fmt.Fprintf(&sb, "- Total Units Sold: %d\n", summary.TotalUnits)
	fmt.Fprintf(&sb, "- Products Listed: %d\n", summary.UniqueProductCount)
	sb.WriteString("- Top Products by Revenue:\n")
	for i, p := range summary.Products {
		fmt.Fprintf(&sb, "  %d. %s ($%.0f)\n", i+1, p.Name, p.TotalRevenue)
	}

	if len(series) > 0 {
		sb.WriteString("\nDaily Revenue:\n")
		for _, point := range series {
			fmt.Fprintf(&sb, "- %s: $%.0f\n", point.Date, point.Revenue)
		}
	}

	sampleSize := utils.MinInt(len(records), SampleLimit)
	fmt.Fprintf(&sb, "\nSales Records (%d of %d total):\n", sampleSize, len(records))
	if len(records) > SampleLimit {
		fmt.Fprintf(&sb, "Note: only the first %d records are shown below; the dataset contains %d records in total. The aggregated summary above covers all of them.\n", SampleLimit, len(records))
	}
	for _, record := range records[:sampleSize] {
		date := "unknown"
		if record.HasDate() {
			date = record.Date.Format(utils.ISODateFormat)
		}
		fmt.Fprintf(&sb, "- product=%q quantity=%d unit_price=%.2f date=%s\n", record.Product, record.Quantity, record.UnitPrice, date)
	}

	sb.WriteString(`
Generate a report with these sections:
1. Executive Summary
2. Revenue Analysis (totals and what drives them)
3. Top Performing Products (use the exact figures above)
4. Trend Analysis (patterns, seasonality, anomalies in the daily revenue)
5. Customer Behavior Insights
6. Anomalies Worth Flagging
7. Exactly 3 Actionable Business Recommendations, in priority order

Format your response ONLY using these HTML tags: <h3>, <p>, <ul>, <li>, <strong>
Do NOT include markdown, code blocks, or any other formatting.
Start directly with <h3>Sales Analysis Report</h3>`)

	return sb.String()
}

// BuildChatPrompt builds the follow-up Q&A instruction from the chart
// summary the client already holds.
func (b *Builder) BuildChatPrompt(message string, summary models.ChartSummary) string {
	var sb strings.Builder

	sb.WriteString("You are a helpful AI data analyst assistant. Answer questions about this sales data concisely and accurately.\n\n")
	sb.WriteString("Data Summary:\n")
	fmt.Fprintf(&sb, "- Total Revenue: $%.0f\n", summary.TotalRevenue)
	fmt.Fprintf(&sb, "- Total Units: %d\n", summary.TotalUnits)
	fmt.Fprintf(&sb, "- Products: %d\n", summary.UniqueProductCount)

	topCount := utils.MinInt(len(summary.Products), 3)
	if topCount > 0 {
		names := make([]string, 0, topCount)
		for _, p := range summary.Products[:topCount] {
			names = append(names, p.Name)
		}
		fmt.Fprintf(&sb, "- Top Products: %s\n", strings.Join(names, ", "))
	}

	fmt.Fprintf(&sb, "\nUser Question: %s\n\n", message)
	sb.WriteString("Provide a clear, concise answer (2-3 sentences max). Be specific with numbers when relevant.")

	return sb.String()
}
