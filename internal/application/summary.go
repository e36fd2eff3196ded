package application

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
	"github.com/e-stacy/lebanon-property-tax-map/internal/report"
)

// Columns previewed after each step.
var (
	importSampleColumns = []string{"parcel_id", "owner_name", "total_value", "year_built", "living_area_sqft", "bedrooms"}
	mergeSampleColumns  = []string{"parcel_id", "owner_name", "total_value", "year_built", "building_style", "living_area_sqft"}
	dedupSampleColumns  = []string{"parcel_id", "owner_name", "total_value", "year_built", "building_style", "living_area_sqft", "bedrooms", "full_baths"}
)

// nhdraColumns are the enhanced columns that only the NHDRA side fills.
var nhdraColumns = []string{
	"year_built", "building_style", "building_grade", "living_area_sqft",
	"total_rooms", "bedrooms", "full_baths", "half_baths",
	"heating_type", "heating_fuel", "ac_type", "roof_material",
	"exterior_walls", "stories", "zoning", "last_sale_price",
	"last_sale_date", "condition_percent",
}

var printer = message.NewPrinter(language.English)

func count(n int) string { return printer.Sprintf("%d", n) }

func importSummary(res *core.ImportResult, sampleRows int) report.Summary {
	s := report.Summary{
		Title: "NHDRA import",
		Facts: []report.Fact{
			{Label: "Source", Value: res.Source},
			{Label: "Source rows", Value: count(res.SourceRows)},
			{Label: "Dropped (no parcel_id)", Value: count(res.Dropped)},
			{Label: "Written", Value: fmt.Sprintf("%s rows, %d columns", count(res.Written), len(res.Table.Columns()))},
			{Label: "Output", Value: res.Output},
			{Label: "Run", Value: res.RunID},
		},
	}
	s.Columns, s.Sample = report.Sample(res.Table, importSampleColumns, sampleRows)
	s.Notes = missingNotes(res.MissingColumns)
	return s
}

func mergeSummary(res *core.MergeResult, sampleRows int) report.Summary {
	js := res.Join
	s := report.Summary{
		Title: "Merge with NHDRA",
		Facts: []report.Fact{
			{Label: "Parcels", Value: count(js.Total)},
			{Label: "Matched", Value: printer.Sprintf("%d of %d (%.1f%%)", js.Matched, js.Total, js.Rate())},
			{Label: "Ambiguous matches", Value: count(js.Ambiguous)},
			{Label: "Written", Value: fmt.Sprintf("%s rows, %d columns", count(res.Table.Len()), len(res.Table.Columns()))},
			{Label: "Output", Value: res.Output},
			{Label: "Run", Value: res.RunID},
		},
		Coverage: report.ColumnCoverage(res.Table, nhdraColumns),
	}
	s.Columns, s.Sample = report.Sample(res.Table, mergeSampleColumns, sampleRows)
	if js.Ambiguous > 0 {
		s.Notes = append(s.Notes, printer.Sprintf(
			"%d parcels share owner and total value with several NHDRA rows; the first NHDRA row was used", js.Ambiguous))
	}
	s.Notes = append(s.Notes, missingNotes(res.MissingColumns)...)
	return s
}

func dedupSummary(res *core.CleanupResult, sampleRows int) report.Summary {
	ds := res.Dedup
	s := report.Summary{
		Title: "Duplicate cleanup",
		Facts: []report.Fact{
			{Label: "Input rows", Value: count(ds.Input)},
			{Label: "Removed", Value: count(ds.Removed)},
			{Label: "Kept", Value: fmt.Sprintf("%s rows, %d columns", count(ds.Kept), len(res.Table.Columns()))},
			{Label: "Rows without identifier", Value: count(ds.NullIDs)},
			{Label: "Outputs", Value: strings.Join(res.Outputs, ", ")},
			{Label: "Run", Value: res.RunID},
		},
	}
	s.Columns, s.Sample = report.Sample(res.Table, dedupSampleColumns, sampleRows)
	for _, g := range ds.Samples {
		s.Notes = append(s.Notes, fmt.Sprintf("%s appears %d times (data rows %s)", g.ID, len(g.Rows), rowNumbers(g.Rows)))
	}
	if ds.Groups > len(ds.Samples) {
		s.Notes = append(s.Notes, printer.Sprintf("%d more duplicated identifiers not listed", ds.Groups-len(ds.Samples)))
	}
	return s
}

func mappingSummary(m core.Mapping) report.Summary {
	s := report.Summary{
		Title:   fmt.Sprintf("%s (%s)", m.Label, m.Key),
		Facts:   []report.Fact{{Label: "Columns", Value: count(len(m.Columns))}},
		Columns: []string{"target", "type", "source"},
	}
	for _, c := range m.Columns {
		src := c.Source
		if len(c.Sources) > 0 {
			src = strings.Join(c.Sources, " + ")
		}
		s.Sample = append(s.Sample, []string{c.Name, c.Type.String(), src})
	}
	return s
}

func missingNotes(cols []string) []string {
	notes := make([]string, 0, len(cols))
	for _, c := range cols {
		notes = append(notes, fmt.Sprintf("source column %q not found; target left empty", c))
	}
	return notes
}

// rowNumbers renders data row positions 1-based, counting records after the
// header rather than file lines.
func rowNumbers(rows []int) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = fmt.Sprint(r + 1)
	}
	return strings.Join(parts, ", ")
}
