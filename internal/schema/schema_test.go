package schema

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/e-stacy/lebanon-property-tax-map/internal/core"
)

func TestMappings_Embedded(t *testing.T) {
	maps, err := Mappings()
	require.NoError(t, err)
	require.Len(t, maps, 2)

	byKey := map[string]core.Mapping{}
	for _, m := range maps {
		byKey[m.Key] = m
	}

	imp, ok := byKey[core.MappingNHDRAImport]
	require.True(t, ok)
	merge, ok := byKey[core.MappingEnhancedMerge]
	require.True(t, ok)

	// Both produce the same parcels schema.
	assert.Equal(t, imp.TargetColumns(), merge.TargetColumns())
	assert.Len(t, imp.TargetColumns(), 25)
	assert.Equal(t, "parcel_id", imp.Columns[0].Name)
	assert.Equal(t, core.FieldParcelID, imp.Columns[0].Type)
	assert.Equal(t, []string{"rem mblu map", "rem mblu block", "rem mblu lot"}, imp.Columns[0].Sources)

	assert.Equal(t, []string{"parcel_id"}, merge.Columns[0].Sources, "single parcel_id source becomes a component")

	for _, c := range imp.Columns {
		if c.Name == "class_code" {
			assert.Equal(t, core.FieldClassCode, c.Type)
		}
		if c.Name == "total_value" {
			assert.Equal(t, core.FieldMoney, c.Type)
			assert.Equal(t, core.NHDRATotalValue, c.Source)
		}
		if c.Name == "owner_name" {
			assert.Equal(t, core.FieldText, c.Type)
			assert.Equal(t, core.NHDRAOwnerName, c.Source)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "unknown field", data: "key: x\ncolumns:\n  - {name: a, source: b, typo: c}\n"},
		{name: "unknown type", data: "key: x\ncolumns:\n  - {name: a, source: b, type: date}\n"},
		{name: "missing key", data: "columns:\n  - {name: a, source: b}\n"},
		{name: "duplicate target", data: "key: x\ncolumns:\n  - {name: a, source: b}\n  - {name: a, source: c}\n"},
		{name: "missing source", data: "key: x\ncolumns:\n  - {name: a}\n"},
		{name: "not yaml", data: "key: [unterminated\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestLoad_SkipsOtherFiles(t *testing.T) {
	fsys := fstest.MapFS{
		"m/a.yaml":    {Data: []byte("key: a\ncolumns:\n  - {name: x, source: y}\n")},
		"m/notes.txt": {Data: []byte("ignored")},
	}

	maps, err := Load(fsys, "m")
	require.NoError(t, err)
	require.Len(t, maps, 1)
	assert.Equal(t, "a", maps[0].Key)
	assert.Equal(t, core.FieldText, maps[0].Columns[0].Type)

	_, err = Load(fsys, "missing")
	assert.Error(t, err)
}
