package store

import (
	"cloud.google.com/go/bigtable"
	"github.com/litetable/mta-bus-queries/internal/catalog"
	"regexp"
	"strings"
)

// buildFilter projects the requested columns, limits versions and, when the read has a value
// match, drops every row whose newest match column value differs.
func buildFilter(spec *catalog.ReadSpec) bigtable.Filter {
	projection := []bigtable.Filter{
		bigtable.FamilyFilter(exactly(spec.Family)),
		bigtable.ColumnFilter(anyOf(spec.Qualifiers)),
	}
	if spec.Latest > 0 {
		projection = append(projection, bigtable.LatestNFilter(spec.Latest))
	}
	filter := bigtable.ChainFilters(projection...)

	m := spec.Match
	if m == nil {
		return filter
	}

	predicate := bigtable.ChainFilters(
		bigtable.FamilyFilter(exactly(m.Family)),
		bigtable.ColumnFilter(exactly(m.Qualifier)),
		bigtable.LatestNFilter(1),
		bigtable.ValueFilter(exactly(m.Value)),
	)
	return bigtable.ConditionFilter(predicate, filter, bigtable.BlockAllFilter())
}

// buildRowSet returns the rows a scan visits: the prefix, or the prefix narrowed to the union
// of the read's ranges.
func buildRowSet(spec *catalog.ReadSpec) bigtable.RowSet {
	if len(spec.Ranges) == 0 {
		return bigtable.PrefixRange(spec.Prefix)
	}

	ranges := spec.ScanRanges()
	list := make(bigtable.RowRangeList, 0, len(ranges))
	for _, r := range ranges {
		if r.End == "" {
			list = append(list, bigtable.InfiniteRange(r.Start))
			continue
		}
		list = append(list, bigtable.NewRange(r.Start, r.End))
	}
	return list
}

// exactly returns an RE2 pattern matching only s. Bigtable matches patterns against the whole
// value.
func exactly(s string) string {
	return regexp.QuoteMeta(s)
}

func anyOf(values []string) string {
	quoted := make([]string, 0, len(values))
	for _, v := range values {
		quoted = append(quoted, exactly(v))
	}
	return "(?:" + strings.Join(quoted, "|") + ")"
}
