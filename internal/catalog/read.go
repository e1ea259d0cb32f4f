package catalog

import (
	"errors"
	"github.com/litetable/mta-bus-queries/internal/schema"
)

// ReadSpec describes one read against the table: where to look, which columns to return,
// how many versions to keep and which rows to drop.
type ReadSpec struct {
	// RowKey selects a single row. Mutually exclusive with Prefix.
	RowKey string
	// Prefix selects every row whose key starts with it.
	Prefix string
	// Ranges narrows a prefix scan to the union of these half-open ranges.
	Ranges []schema.RowRange

	Family     string
	Qualifiers []string

	// Latest is the number of most recent versions to return per column; 0 means all of them.
	Latest int

	// Match keeps only the rows whose newest Match.Qualifier value equals Match.Value.
	Match *ValueMatch
}

// ValueMatch is a single-column value equality predicate. The column is consulted by the
// filter and never returned.
type ValueMatch struct {
	Family    string
	Qualifier string
	Value     string
}

// AllVersions reports whether the read returns every stored version.
func (s *ReadSpec) AllVersions() bool {
	return s.Latest == 0
}

// IsLookup reports whether the read is a single row get.
func (s *ReadSpec) IsLookup() bool {
	return s.RowKey != ""
}

// ScanRanges returns the row ranges a scan visits: the prefix range intersected with each of
// Ranges, or the prefix range alone. Ranges falling outside the prefix are dropped.
func (s *ReadSpec) ScanRanges() []schema.RowRange {
	outer := schema.PrefixRange(s.Prefix)
	if len(s.Ranges) == 0 {
		return []schema.RowRange{outer}
	}

	ranges := make([]schema.RowRange, 0, len(s.Ranges))
	for _, r := range s.Ranges {
		clipped := outer.Intersect(r)
		if clipped.Empty() {
			continue
		}
		ranges = append(ranges, clipped)
	}
	return ranges
}

func (s *ReadSpec) validate() error {
	var errGrp []error

	switch {
	case s.RowKey == "" && s.Prefix == "":
		errGrp = append(errGrp, newError(errMissingKey, "provide one of row key or prefix"))
	case s.RowKey != "" && s.Prefix != "":
		errGrp = append(errGrp, newError(errInvalidSpec,
			"only one search key type allowed: provide exactly one of row key or prefix"))
	}

	if s.RowKey != "" && len(s.Ranges) > 0 {
		errGrp = append(errGrp, newError(errInvalidSpec, "ranges require a prefix scan"))
	}
	if s.Family == "" {
		errGrp = append(errGrp, newError(errInvalidSpec, "missing family"))
	}
	if len(s.Qualifiers) == 0 {
		errGrp = append(errGrp, newError(errInvalidSpec, "at least one qualifier is required"))
	}
	if s.Latest < 0 {
		errGrp = append(errGrp, newError(errInvalidSpec,
			"latest must be greater than or equal to 0. received %d", s.Latest))
	}

	if s.Prefix != "" && len(s.Ranges) > 0 {
		outer := schema.PrefixRange(s.Prefix)
		for _, r := range s.Ranges {
			if r.Empty() {
				errGrp = append(errGrp, newError(errInvalidSpec, "empty range [%s, %s)",
					r.Start, r.End))
				continue
			}
			if outer.Intersect(r).Empty() {
				errGrp = append(errGrp, newError(errInvalidSpec,
					"range [%s, %s) lies outside prefix %s", r.Start, r.End, s.Prefix))
			}
		}
	}

	if m := s.Match; m != nil {
		if m.Family == "" || m.Qualifier == "" {
			errGrp = append(errGrp, newError(errInvalidSpec,
				"value match requires a family and a qualifier"))
		}
		for _, q := range s.Qualifiers {
			if m.Family == s.Family && q == m.Qualifier {
				errGrp = append(errGrp, newError(errInvalidSpec,
					"value match column %s must not be projected", m.Qualifier))
			}
		}
	}

	return errors.Join(errGrp...)
}
