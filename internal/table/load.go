package table

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// DefaultMaxFileSize caps a single input file (512MB).
var DefaultMaxFileSize int64 = 512 * 1024 * 1024

// LoadOptions controls how a delimited file becomes a Table.
type LoadOptions struct {
	// SkipRows is the number of leading lines discarded before the header,
	// e.g. 1 for exports that carry a banner line above the real header.
	SkipRows int

	// MaxFileSize limits raw bytes read. Zero disables the limit.
	MaxFileSize int64
}

// Load reads the CSV file at path. The file is closed before Load returns.
func Load(path string, opts LoadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if opts.MaxFileSize > 0 {
		if info, err := f.Stat(); err == nil && info.Size() > opts.MaxFileSize {
			return nil, fmt.Errorf("%s: %w: %d bytes exceeds %d", path, ErrFileTooLarge, info.Size(), opts.MaxFileSize)
		}
	}

	t, n, err := read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	slog.Debug("csv loaded",
		"path", path,
		"rows", t.Len(),
		"columns", len(t.columns),
		"bytes", n,
	)
	return t, nil
}

// Read parses CSV from r. Cells are kept as raw text; empty cells become
// Null. Coercion happens later, so a malformed cell never fails the load.
func Read(r io.Reader, opts LoadOptions) (*Table, error) {
	t, _, err := read(r, opts)
	return t, err
}

func read(r io.Reader, opts LoadOptions) (*Table, int64, error) {
	in, limited := wrapInput(r, opts.MaxFileSize)
	br := bufio.NewReader(in)

	// Banner lines are dropped as raw text, before CSV parsing, so a stray
	// quote in a banner cannot swallow the header.
	for i := 0; i < opts.SkipRows; i++ {
		line, err := br.ReadString('\n')
		if errors.Is(err, io.EOF) {
			if i == 0 && line == "" {
				return nil, limited.read, ErrEmptyFile
			}
			break
		}
		if err != nil {
			return nil, limited.read, fmt.Errorf("skip line %d: %w", i+1, err)
		}
	}

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		if opts.SkipRows > 0 {
			return nil, limited.read, ErrNoHeader
		}
		return nil, limited.read, ErrEmptyFile
	}
	if err != nil {
		return nil, limited.read, fmt.Errorf("read header: %w", err)
	}

	t := MustNew(headerNames(header)...)
	width := len(t.columns)
	truncated := 0

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, limited.read, fmt.Errorf("parse CSV: %w", err)
		}
		if isEmptyRow(rec) {
			continue
		}
		if len(rec) > width {
			truncated++
			rec = rec[:width]
		}

		row := make(Record, width)
		for i, cell := range rec {
			if cell != "" {
				row[i] = String(cell)
			}
		}
		t.rows = append(t.rows, row)
	}

	if truncated > 0 {
		slog.Debug("dropped surplus cells", "rows", truncated, "columns", width)
	}
	return t, limited.read, nil
}

// headerNames trims header cells, names blank ones "Unnamed: N" and
// disambiguates repeats as name.1, name.2, ... so every column is addressable.
func headerNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	taken := make(map[string]bool, len(header))

	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		base := name
		for taken[name] {
			seen[base]++
			name = base + "." + strconv.Itoa(seen[base])
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
