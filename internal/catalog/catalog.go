// Package catalog maps query names to the reads they issue against the bus telemetry table
// and prints what those reads return.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Query is a named read with the header printed before its results.
type Query struct {
	Name   string
	Header string
	Spec   *ReadSpec
}

// Catalog holds the queries that can be run by name.
type Catalog struct {
	queries map[string]*Query
	names   []string
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{
		queries: make(map[string]*Query),
	}
}

// Default returns the catalog of bus telemetry queries.
func Default() (*Catalog, error) {
	c := New()
	builders := []func() (*Query, error){
		lookupVehicleInGivenHour,
		scanBusLineInGivenHour,
		scanEntireBusLine,
		filterBusesGoingEast,
		filterBusesGoingWest,
		scanManhattanBusesInGivenHour,
	}

	var errGrp []error
	for _, build := range builders {
		q, err := build()
		if err != nil {
			errGrp = append(errGrp, err)
			continue
		}
		if err = c.Register(q); err != nil {
			errGrp = append(errGrp, err)
		}
	}
	if err := errors.Join(errGrp...); err != nil {
		return nil, err
	}

	return c, nil
}

// Register adds a query to the catalog. Names must be unique and the read must be valid.
func (c *Catalog) Register(q *Query) error {
	if q == nil || q.Name == "" {
		return newError(errInvalidSpec, "query name is required")
	}
	if _, exists := c.queries[q.Name]; exists {
		return newError(errInvalidSpec, "query %s is already registered", q.Name)
	}
	if q.Spec == nil {
		return newError(errInvalidSpec, "query %s has no read", q.Name)
	}
	if err := q.Spec.validate(); err != nil {
		return fmt.Errorf("query %s: %w", q.Name, err)
	}

	c.queries[q.Name] = q
	c.names = append(c.names, q.Name)
	return nil
}

// Lookup returns the query registered under name.
func (c *Catalog) Lookup(name string) (*Query, error) {
	q, ok := c.queries[name]
	if !ok {
		return nil, newError(ErrUnknownQuery, "%s", name)
	}
	return q, nil
}

// Names returns the registered query names in registration order.
func (c *Catalog) Names() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	return names
}

// Usage is the message shown when no known query was requested.
func (c *Catalog) Usage() string {
	return "Please provide one of the following queries: " + strings.Join(c.names, ", ") + "."
}
