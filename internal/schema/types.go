package schema

import (
	"time"
)

// Cell stores a single version of a value with its timestamp.
type Cell struct {
	Value     []byte    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// VersionedQualifier maps qualifiers to their versions, newest first.
type VersionedQualifier map[string][]Cell

// Row is a row as returned by a read:
//
//	Row{
//	  Key: "MTA/M86-SBS/1496275200000/NYCT_5824",
//	  Columns: map[string]VersionedQualifier{
//	    "cf": {
//	      "VehicleLocation.Latitude":  {{Value: []byte("40.78")}, {Value: []byte("40.79")}},
//	      "VehicleLocation.Longitude": {{Value: []byte("-73.95")}, {Value: []byte("-73.94")}},
//	    },
//	  },
//	}
//
// Only the columns a read asked for are present.
type Row struct {
	Key     string                        `json:"key"`
	Columns map[string]VersionedQualifier `json:"cols"` // family → qualifier → []Cell
}

// Cells returns the versions stored under family:qualifier, or nil if the row has none.
func (r *Row) Cells(family, qualifier string) []Cell {
	if r == nil {
		return nil
	}
	qualifiers, ok := r.Columns[family]
	if !ok {
		return nil
	}
	return qualifiers[qualifier]
}

// Len returns the number of cells in the row across all families and qualifiers.
func (r *Row) Len() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, qualifiers := range r.Columns {
		for _, cells := range qualifiers {
			n += len(cells)
		}
	}
	return n
}
