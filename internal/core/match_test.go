package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	joinParcelsCSV = "parcel_id,owner_name,total_value\n" +
		"1-1,SMITH JOHN,150000\n" +
		"1-2,,90000\n" +
		"1-3,JONES MARY,200000\n"

	joinNHDRACSV = "own name,prc ttl assess,vns ayb,total_value\n" +
		"smith john ,150000.0,1990,x\n" +
		"BROWN ALICE,50000,1975,y\n"
)

func TestLeftJoin_BlankOwnerScenario(t *testing.T) {
	a := csvTable(t, joinParcelsCSV)
	b := csvTable(t, joinNHDRACSV)

	out, stats, err := LeftJoin(context.Background(), a, b,
		OwnerTotalKey("owner_name", "total_value"),
		OwnerTotalKey("own name", "prc ttl assess"),
		JoinOptions{},
	)
	require.NoError(t, err)

	require.Equal(t, a.Len(), out.Len())
	assert.Equal(t, []string{
		"parcel_id", "owner_name", "total_value",
		"own name", "prc ttl assess", "vns ayb", "total_value_nhdra",
	}, out.Columns())
	assert.Equal(t, []string{"1-1", "1-2", "1-3"}, column(out, "parcel_id"), "A order is kept")

	assert.Equal(t, "1990", out.Get(0, "vns ayb").Text())
	assert.Equal(t, "x", out.Get(0, "total_value_nhdra").Text())
	assert.Equal(t, "150000", out.Get(0, "total_value").Text(), "A's column keeps its name")

	for _, col := range []string{"own name", "prc ttl assess", "vns ayb", "total_value_nhdra"} {
		assert.True(t, out.Get(1, col).IsNull(), "blank-owner row: %s should be null", col)
		assert.True(t, out.Get(2, col).IsNull(), "unmatched row: %s should be null", col)
	}

	assert.Equal(t, JoinStats{Total: 3, Matched: 1}, stats)
	assert.InDelta(t, 33.3, stats.Rate(), 0.1)
}

func TestLeftJoin_FirstMatchWins(t *testing.T) {
	a := csvTable(t, "owner_name,total_value\nSMITH,100\nSMITH,100\n")
	b := csvTable(t, "own name,prc ttl assess,vns ayb\nSMITH,100,1901\nSMITH,100,1902\n")

	out, stats, err := LeftJoin(context.Background(), a, b,
		OwnerTotalKey("owner_name", "total_value"),
		OwnerTotalKey("own name", "prc ttl assess"),
		JoinOptions{},
	)
	require.NoError(t, err)

	assert.Equal(t, 2, out.Len(), "duplicate B keys never multiply A rows")
	assert.Equal(t, []string{"1901", "1901"}, column(out, "vns ayb"))
	assert.Equal(t, 2, stats.Matched)
	assert.Equal(t, 2, stats.Ambiguous)
}

func TestLeftJoin_LengthAlwaysMatchesA(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
	}{
		{name: "empty B", a: "owner_name,total_value\nA,1\nB,2\n", b: "own name,prc ttl assess\n"},
		{name: "empty A", a: "owner_name,total_value\n", b: "own name,prc ttl assess\nA,1\n"},
		{name: "all match", a: "owner_name,total_value\nA,1\nB,2\n", b: "own name,prc ttl assess\nB,2\nA,1\n"},
		{name: "B lacks key columns", a: "owner_name,total_value\nA,1\n", b: "x\n1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := csvTable(t, tt.a)
			out, stats, err := LeftJoin(context.Background(), a, csvTable(t, tt.b),
				OwnerTotalKey("owner_name", "total_value"),
				OwnerTotalKey("own name", "prc ttl assess"),
				JoinOptions{},
			)
			require.NoError(t, err)
			assert.Equal(t, a.Len(), out.Len())
			assert.Equal(t, a.Len(), stats.Total)
		})
	}
}

func TestLeftJoin_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := csvTable(t, "owner_name,total_value\nA,1\n")
	_, _, err := LeftJoin(ctx, a, a,
		OwnerTotalKey("owner_name", "total_value"),
		OwnerTotalKey("owner_name", "total_value"),
		JoinOptions{},
	)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJoinColumnNames(t *testing.T) {
	got := joinColumnNames(
		[]string{"id", "name", "name_x"},
		[]string{"name", "id", "other"},
		"_x",
	)
	assert.Equal(t, []string{"name_x_x", "id_x", "other"}, got)
}
