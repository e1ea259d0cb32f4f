// Package schema holds the row-key and column contract shared with the MTA bus telemetry
// ingestion pipeline. Everything that reads the table agrees on these names.
package schema

const (
	// Family is the single column family holding every vehicle attribute.
	Family = "cf"

	LatitudeQualifier    = "VehicleLocation.Latitude"
	LongitudeQualifier   = "VehicleLocation.Longitude"
	DestinationQualifier = "DestinationName"

	// KeyRoot is the first segment of every row key.
	KeyRoot = "MTA"

	// BucketWidth is the fixed width of the epoch millisecond bucket segment.
	BucketWidth = 13

	// ExampleBucket is 2017-06-01 00:00:00 UTC, the hour every "given hour" query reads.
	ExampleBucket = "1496275200000"

	keySeparator = "/"
)

// ManhattanBusLines lists the Manhattan MTA lines in the order multi-range scans are built.
var ManhattanBusLines = []string{
	"M1", "M2", "M3", "M4", "M5", "M7", "M8", "M9", "M10", "M11", "M12", "M15", "M20", "M21",
	"M22", "M31", "M35", "M42", "M50", "M55", "M57", "M66", "M72", "M96", "M98", "M100", "M101",
	"M102", "M103", "M104", "M106", "M116", "M14A", "M34A-SBS", "M14D", "M15-SBS", "M23-SBS",
	"M34-SBS", "M60-SBS", "M79-SBS", "M86-SBS",
}

// Bytes returns the UTF-8 encoding of s with no terminator.
func Bytes(s string) []byte {
	return []byte(s)
}

// Column returns the "family:qualifier" coordinate used by the store for a cell.
func Column(family, qualifier string) string {
	return family + ":" + qualifier
}
