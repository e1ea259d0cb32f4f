// Package storetest runs an in-process Bigtable emulator seeded with bus telemetry rows.
package storetest

import (
	"cloud.google.com/go/bigtable"
	"cloud.google.com/go/bigtable/bttest"
	"context"
	"github.com/litetable/mta-bus-queries/internal/schema"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	"testing"
	"time"
)

const (
	Project  = "test-project"
	Instance = "test-instance"
	Table    = "bus-data"
)

// Emulator is a bttest server with the bus table and its column family created.
type Emulator struct {
	t      testing.TB
	server *bttest.Server
	table  *bigtable.Table
}

// Position is one version of a vehicle's location.
type Position struct {
	Latitude  string
	Longitude string
	// Millis is the cell timestamp in epoch milliseconds.
	Millis int64
}

// NewEmulator starts an emulator that is shut down when the test ends.
func NewEmulator(t testing.TB) *Emulator {
	t.Helper()
	ctx := context.Background()

	srv, err := bttest.NewServer("localhost:0")
	require.NoError(t, err)
	t.Cleanup(srv.Close)

	e := &Emulator{t: t, server: srv}

	admin, err := bigtable.NewAdminClient(ctx, Project, Instance, e.ClientOptions()...)
	require.NoError(t, err)
	defer admin.Close()

	require.NoError(t, admin.CreateTable(ctx, Table))
	require.NoError(t, admin.CreateColumnFamily(ctx, Table, schema.Family))

	client, err := bigtable.NewClientWithConfig(ctx, Project, Instance, bigtable.ClientConfig{
		MetricsProvider: bigtable.NoopMetricsProvider{},
	}, e.ClientOptions()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	e.table = client.Open(Table)

	return e
}

// ClientOptions dials a new connection to the emulator. Each client gets its own connection
// since closing a client closes it.
func (e *Emulator) ClientOptions() []option.ClientOption {
	e.t.Helper()
	conn, err := grpc.NewClient(e.server.Addr,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(e.t, err)
	e.t.Cleanup(func() { _ = conn.Close() })

	return []option.ClientOption{option.WithGRPCConn(conn)}
}

// Addr is the emulator's listen address, usable as BIGTABLE_EMULATOR_HOST.
func (e *Emulator) Addr() string {
	return e.server.Addr
}

// Set writes a single cell.
func (e *Emulator) Set(rowKey, qualifier string, millis int64, value string) {
	e.t.Helper()
	mut := bigtable.NewMutation()
	mut.Set(schema.Family, qualifier, bigtable.Time(time.UnixMilli(millis)), schema.Bytes(value))
	require.NoError(e.t, e.table.Apply(context.Background(), rowKey, mut))
}

// SetPositions writes each position as one version of the latitude and longitude columns.
func (e *Emulator) SetPositions(rowKey string, positions ...Position) {
	e.t.Helper()
	for _, p := range positions {
		e.Set(rowKey, schema.LatitudeQualifier, p.Millis, p.Latitude)
		e.Set(rowKey, schema.LongitudeQualifier, p.Millis, p.Longitude)
	}
}

// SetDestination writes the destination sign of a row.
func (e *Emulator) SetDestination(rowKey string, millis int64, destination string) {
	e.t.Helper()
	e.Set(rowKey, schema.DestinationQualifier, millis, destination)
}
