// Package report renders the human-readable summary printed after each
// command: headline facts, per-column coverage and a sample of the rows
// written. Terminals get tablewriter tables, pipes and files get markdown.
package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	md "github.com/nao1215/markdown"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Format selects how a Summary is rendered.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatTable    Format = "table"
	FormatMarkdown Format = "markdown"
	FormatNone     Format = "none"
)

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(s)))
	switch format {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatTable, FormatMarkdown, FormatNone:
		return format, nil
	default:
		return "", fmt.Errorf("invalid report format %q: must be one of: auto, table, markdown, none", s)
	}
}

// fdWriter is implemented by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// DetectFormat resolves FormatAuto: table for a terminal, markdown
// otherwise. Explicit formats are returned unchanged.
func DetectFormat(format Format, w io.Writer) Format {
	if format != FormatAuto && format != "" {
		return format
	}
	if f, ok := w.(fdWriter); ok {
		if isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()) {
			return FormatTable
		}
	}
	return FormatMarkdown
}

// Fact is one headline figure, e.g. "Matched" / "812 of 1,024 (79.3%)".
type Fact struct {
	Label string
	Value string
}

// Coverage is the share of rows with data in one column.
type Coverage struct {
	Column  string
	NonNull int
	Total   int
}

// Percent returns NonNull as a percentage of Total.
func (c Coverage) Percent() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.NonNull) / float64(c.Total) * 100
}

// Summary is everything printed for one run.
type Summary struct {
	Title    string
	Facts    []Fact
	Coverage []Coverage
	Columns  []string   // Sample header
	Sample   [][]string // Sample rows, aligned with Columns
	Notes    []string
}

// Reporter writes summaries in a fixed format.
type Reporter struct {
	w      io.Writer
	format Format
}

// New creates a reporter. FormatAuto is resolved against w immediately.
func New(w io.Writer, format Format) *Reporter {
	if w == nil {
		w = os.Stdout
	}
	return &Reporter{w: w, format: DetectFormat(format, w)}
}

// Format returns the resolved output format.
func (r *Reporter) Format() Format { return r.format }

// Render writes s. FormatNone writes nothing.
func (r *Reporter) Render(s Summary) error {
	switch r.format {
	case FormatNone:
		return nil
	case FormatMarkdown:
		return r.renderMarkdown(s)
	default:
		return r.renderTable(s)
	}
}

func (r *Reporter) renderTable(s Summary) error {
	if s.Title != "" {
		if _, err := fmt.Fprintf(r.w, "\n%s\n\n", s.Title); err != nil {
			return err
		}
	}

	if len(s.Facts) > 0 {
		rows := make([][]string, len(s.Facts))
		for i, f := range s.Facts {
			rows[i] = []string{f.Label, f.Value}
		}
		if err := r.table(nil, rows, []tw.Align{tw.AlignLeft, tw.AlignRight}); err != nil {
			return err
		}
	}

	if len(s.Coverage) > 0 {
		if _, err := fmt.Fprintln(r.w, "\nColumn coverage:"); err != nil {
			return err
		}
		if err := r.table([]string{"Column", "With data", "Rows", "%"}, coverageRows(s.Coverage),
			[]tw.Align{tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignRight}); err != nil {
			return err
		}
	}

	if len(s.Sample) > 0 {
		if _, err := fmt.Fprintln(r.w, "\nSample:"); err != nil {
			return err
		}
		if err := r.table(s.Columns, s.Sample, nil); err != nil {
			return err
		}
	}

	for _, n := range s.Notes {
		if _, err := fmt.Fprintf(r.w, "%s\n", n); err != nil {
			return err
		}
	}
	return nil
}

func (r *Reporter) table(header []string, rows [][]string, align []tw.Align) error {
	config := tablewriter.Config{}
	if len(align) > 0 {
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}
	t := tablewriter.NewTable(r.w, tablewriter.WithConfig(config))

	if len(header) > 0 {
		h := make([]any, len(header))
		for i, v := range header {
			h[i] = v
		}
		t.Header(h...)
	}
	for _, row := range rows {
		cells := make([]any, len(row))
		for i, v := range row {
			cells[i] = v
		}
		if err := t.Append(cells...); err != nil {
			return err
		}
	}
	return t.Render()
}

func (r *Reporter) renderMarkdown(s Summary) error {
	doc := md.NewMarkdown(r.w)
	if s.Title != "" {
		doc.H2(s.Title)
	}

	if len(s.Facts) > 0 {
		items := make([]string, len(s.Facts))
		for i, f := range s.Facts {
			items[i] = fmt.Sprintf("%s: %s", md.Bold(f.Label), f.Value)
		}
		doc.BulletList(items...)
	}

	if len(s.Coverage) > 0 {
		doc.H3("Column coverage")
		doc.Table(md.TableSet{
			Header: []string{"Column", "With data", "Rows", "%"},
			Rows:   coverageRows(s.Coverage),
		})
	}

	if len(s.Sample) > 0 {
		doc.H3("Sample")
		doc.Table(md.TableSet{
			Header: s.Columns,
			Rows:   s.Sample,
		})
	}

	for _, n := range s.Notes {
		doc.PlainText(n)
	}
	return doc.Build()
}

func coverageRows(cov []Coverage) [][]string {
	rows := make([][]string, len(cov))
	for i, c := range cov {
		rows[i] = []string{
			c.Column,
			fmt.Sprintf("%d", c.NonNull),
			fmt.Sprintf("%d", c.Total),
			fmt.Sprintf("%.1f", c.Percent()),
		}
	}
	return rows
}
