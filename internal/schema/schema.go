// Package schema holds the column mappings between source exports and the
// parcels schema. Mappings are YAML files embedded at build time.
package schema

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/goccy/go-yaml"

	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
)

// FS embeds every mapping definition.
//
//go:embed mappings/*.yaml
var FS embed.FS

// mappingFile is the on-disk shape of one mapping definition.
type mappingFile struct {
	Key     string       `yaml:"key"`
	Label   string       `yaml:"label"`
	Columns []columnFile `yaml:"columns"`
}

type columnFile struct {
	Name    string   `yaml:"name"`
	Source  string   `yaml:"source"`
	Sources []string `yaml:"sources"`
	Type    string   `yaml:"type"`
}

// Mappings parses every embedded mapping, sorted by file name.
func Mappings() ([]core.Mapping, error) {
	return Load(FS, "mappings")
}

// Load parses every *.yaml file in dir of fsys.
func Load(fsys fs.FS, dir string) ([]core.Mapping, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var out []core.Mapping
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".yaml" {
			continue
		}
		name := path.Join(dir, e.Name())
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		m, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", name, err)
		}
		out = append(out, m)
	}
	return out, nil
}

// Parse decodes and validates one mapping definition.
func Parse(data []byte) (core.Mapping, error) {
	var f mappingFile
	if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
		return core.Mapping{}, err
	}

	m := core.Mapping{Key: f.Key, Label: f.Label}
	for _, c := range f.Columns {
		ft, err := core.ParseFieldType(c.Type)
		if err != nil {
			return core.Mapping{}, fmt.Errorf("column %s: %w", c.Name, err)
		}
		spec := core.ColumnSpec{Name: c.Name, Source: c.Source, Type: ft}
		switch {
		case len(c.Sources) > 0:
			spec.Sources = c.Sources
		case ft == core.FieldParcelID && c.Source != "":
			// A prebuilt identifier is a single component.
			spec.Sources = []string{c.Source}
			spec.Source = ""
		}
		m.Columns = append(m.Columns, spec)
	}

	if err := core.ValidateMapping(m); err != nil {
		return core.Mapping{}, err
	}
	return m, nil
}
