package catalog

import (
	"fmt"
	"github.com/litetable/mta-bus-queries/internal/schema"
	"github.com/rs/zerolog/log"
	"io"
)

// WritePairs writes one "<latitude>,<longitude>" line per version of a row's location. The
// i-th latitude version is paired with the i-th longitude version, both in the order the
// store returned them (newest first).
//
// A row carrying only one of the two columns is skipped. Unequal version counts break the
// ingestion contract and return ErrUnpairedCells.
func WritePairs(w io.Writer, row *schema.Row) error {
	latitudes := row.Cells(schema.Family, schema.LatitudeQualifier)
	longitudes := row.Cells(schema.Family, schema.LongitudeQualifier)

	switch {
	case len(latitudes) == 0 && len(longitudes) == 0:
		return nil
	case len(latitudes) == 0 || len(longitudes) == 0:
		log.Warn().
			Str("row", row.Key).
			Int("latitudes", len(latitudes)).
			Int("longitudes", len(longitudes)).
			Msg("skipping row without a complete location")
		return nil
	case len(latitudes) != len(longitudes):
		return newError(ErrUnpairedCells, "row %s has %d latitude and %d longitude cells",
			row.Key, len(latitudes), len(longitudes))
	}

	for i := range latitudes {
		if _, err := fmt.Fprintf(w, "%s,%s\n", latitudes[i].Value, longitudes[i].Value); err != nil {
			return err
		}
	}
	return nil
}
