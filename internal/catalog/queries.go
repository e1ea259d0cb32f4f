package catalog

import (
	"github.com/litetable/mta-bus-queries/internal/schema"
)

const (
	m86Line = "M86-SBS"

	eastboundDestination = "Select Bus Service Yorkville East End AV"
	westboundDestination = "Select Bus Service Westside West End AV"

	// manhattanPrefix bounds the Manhattan scan. Every Manhattan range already lies inside
	// it.
	manhattanPrefix = schema.KeyRoot + "/M"
)

var lookupVehicle = schema.RowKey{
	Line:    m86Line,
	Bucket:  schema.ExampleBucket,
	Vehicle: "NYCT_5824",
}

// locationSpec projects the two location qualifiers, the only columns any query returns.
func locationSpec(latest int) *ReadSpec {
	return &ReadSpec{
		Family:     schema.Family,
		Qualifiers: []string{schema.LatitudeQualifier, schema.LongitudeQualifier},
		Latest:     latest,
	}
}

func destinationIs(destination string) *ValueMatch {
	return &ValueMatch{
		Family:    schema.Family,
		Qualifier: schema.DestinationQualifier,
		Value:     destination,
	}
}

// lookupVehicleInGivenHour reads every recorded position of one M86 vehicle in the example
// hour.
func lookupVehicleInGivenHour() (*Query, error) {
	spec := locationSpec(0)
	spec.RowKey = lookupVehicle.String()

	return &Query{
		Name:   "lookupVehicleInGivenHour",
		Header: "Lookup a specific vehicle on the M86 route on June 1, 2017 from 12:00am to 1:00am:",
		Spec:   spec,
	}, nil
}

func scanBusLineInGivenHour() (*Query, error) {
	spec := locationSpec(0)
	spec.Prefix = schema.BucketPrefix(m86Line, schema.ExampleBucket)

	return &Query{
		Name:   "scanBusLineInGivenHour",
		Header: "Scan for all M86 buses on June 1, 2017 from 12:00am to 1:00am:",
		Spec:   spec,
	}, nil
}

func scanEntireBusLine() (*Query, error) {
	spec := locationSpec(1)
	spec.Prefix = schema.LinePrefix(m86Line)

	return &Query{
		Name:   "scanEntireBusLine",
		Header: "Scan for all m86 during the month:",
		Spec:   spec,
	}, nil
}

func filterBusesGoingEast() (*Query, error) {
	spec := locationSpec(1)
	spec.Prefix = schema.LinePrefix(m86Line)
	spec.Match = destinationIs(eastboundDestination)

	return &Query{
		Name:   "filterBusesGoingEast",
		Header: "Scan for all m86 heading East during the month:",
		Spec:   spec,
	}, nil
}

func filterBusesGoingWest() (*Query, error) {
	spec := locationSpec(1)
	spec.Prefix = schema.LinePrefix(m86Line)
	spec.Match = destinationIs(westboundDestination)

	return &Query{
		Name:   "filterBusesGoingWest",
		Header: "Scan for all m86 heading West during the month:",
		Spec:   spec,
	}, nil
}

// scanManhattanBusesInGivenHour reads the example hour of every Manhattan line as one scan
// over the union of per-line bucket ranges.
func scanManhattanBusesInGivenHour() (*Query, error) {
	ranges := make([]schema.RowRange, 0, len(schema.ManhattanBusLines))
	for _, line := range schema.ManhattanBusLines {
		r, err := schema.BucketRange(line, schema.ExampleBucket)
		if err != nil {
			return nil, newError(errInvalidSpec, "line %s: %v", line, err)
		}
		ranges = append(ranges, r)
	}

	spec := locationSpec(0)
	spec.Prefix = manhattanPrefix
	spec.Ranges = ranges

	return &Query{
		Name:   "scanManhattanBusesInGivenHour",
		Header: "Scan for all buses on June 1, 2017 from 12:00am to 1:00am:",
		Spec:   spec,
	}, nil
}
