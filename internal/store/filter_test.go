package store

import (
	"cloud.google.com/go/bigtable"
	"github.com/litetable/mta-bus-queries/internal/catalog"
	"github.com/litetable/mta-bus-queries/internal/schema"
	"github.com/stretchr/testify/require"
	"regexp"
	"testing"
)

func TestAnyOf(t *testing.T) {
	t.Parallel()
	pattern := anyOf([]string{schema.LatitudeQualifier, schema.LongitudeQualifier})
	require.Equal(t, `(?:VehicleLocation\.Latitude|VehicleLocation\.Longitude)`, pattern)

	// Bigtable matches the whole qualifier
	re := regexp.MustCompile("^" + pattern + "$")
	require.True(t, re.MatchString(schema.LatitudeQualifier))
	require.True(t, re.MatchString(schema.LongitudeQualifier))
	require.False(t, re.MatchString(schema.DestinationQualifier))
	require.False(t, re.MatchString("VehicleLocationXLatitude"))
}

func TestExactly(t *testing.T) {
	t.Parallel()
	re := regexp.MustCompile("^" + exactly("Select Bus Service Westside West End AV") + "$")
	require.True(t, re.MatchString("Select Bus Service Westside West End AV"))
	require.False(t, re.MatchString("Select Bus Service Westside West End AVE"))
	require.Equal(t, `a\.b\*`, exactly("a.b*"))
}

func TestBuildRowSet(t *testing.T) {
	t.Parallel()
	t.Run("prefix scan", func(t *testing.T) {
		set := buildRowSet(&catalog.ReadSpec{Prefix: "MTA/M86-SBS/"})
		require.Equal(t, bigtable.PrefixRange("MTA/M86-SBS/"), set)
	})

	t.Run("ranges inside a prefix", func(t *testing.T) {
		spec := &catalog.ReadSpec{
			Prefix: "MTA/M",
			Ranges: []schema.RowRange{
				{Start: "MTA/M1/1496275200000", End: "MTA/M1/1496275200001"},
				{Start: "MTA/Q1/1496275200000", End: "MTA/Q1/1496275200001"},
			},
		}
		set := buildRowSet(spec)
		require.Equal(t, bigtable.RowRangeList{
			bigtable.NewRange("MTA/M1/1496275200000", "MTA/M1/1496275200001"),
		}, set)
	})

	t.Run("unbounded prefix", func(t *testing.T) {
		spec := &catalog.ReadSpec{
			Prefix: "\xff",
			Ranges: []schema.RowRange{{Start: "\xff\x01"}},
		}
		set := buildRowSet(spec)
		require.Equal(t, bigtable.RowRangeList{bigtable.InfiniteRange("\xff\x01")}, set)
	})
}
