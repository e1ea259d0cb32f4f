// Package store reads the bus telemetry table from Cloud Bigtable.
package store

import (
	"cloud.google.com/go/bigtable"
	"context"
	"errors"
	"fmt"
	"github.com/litetable/mta-bus-queries/internal/catalog"
	"github.com/litetable/mta-bus-queries/internal/schema"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
	"google.golang.org/grpc/status"
	"time"
)

const storeName = "Bigtable Store"

type table interface {
	ReadRow(ctx context.Context, row string, opts ...bigtable.ReadOption) (bigtable.Row, error)
	ReadRows(ctx context.Context, arg bigtable.RowSet, f func(bigtable.Row) bool,
		opts ...bigtable.ReadOption) error
}

// Store implements the app.Dependency interface for a Bigtable connection and the
// catalog.Reader interface over one of its tables.
type Store struct {
	projectID  string
	instanceID string
	tableName  string
	appProfile string
	noMetrics  bool
	opts       []option.ClientOption

	client *bigtable.Client
	table  table
}

type Config struct {
	ProjectID  string
	InstanceID string
	Table      string
	// AppProfile routes requests through a Bigtable app profile. Empty uses the default.
	AppProfile string
	// DisableMetrics turns off client-side metrics export, for emulators.
	DisableMetrics bool
	// ClientOptions are passed to the Bigtable client, e.g. a grpc connection to an emulator.
	ClientOptions []option.ClientOption
}

func (c *Config) validate() error {
	var errGrp []error
	if c.ProjectID == "" {
		errGrp = append(errGrp, errors.New("project ID is required"))
	}
	if c.InstanceID == "" {
		errGrp = append(errGrp, errors.New("instance ID is required"))
	}
	if c.Table == "" {
		errGrp = append(errGrp, errors.New("table is required"))
	}
	return errors.Join(errGrp...)
}

// New returns a Store. No connection is made until Start.
func New(cfg *Config) (*Store, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &Store{
		projectID:  cfg.ProjectID,
		instanceID: cfg.InstanceID,
		tableName:  cfg.Table,
		appProfile: cfg.AppProfile,
		noMetrics:  cfg.DisableMetrics,
		opts:       cfg.ClientOptions,
	}, nil
}

// Start opens the Bigtable client and the table handle.
func (s *Store) Start(ctx context.Context) error {
	clientCfg := bigtable.ClientConfig{
		AppProfile: s.appProfile,
	}
	if s.noMetrics {
		clientCfg.MetricsProvider = bigtable.NoopMetricsProvider{}
	}

	client, err := bigtable.NewClientWithConfig(ctx, s.projectID, s.instanceID, clientCfg, s.opts...)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to connect to instance %s in project %s",
			s.instanceID, s.projectID)
	}

	s.client = client
	s.table = client.Open(s.tableName)
	log.Debug().
		Str("project", s.projectID).
		Str("instance", s.instanceID).
		Str("table", s.tableName).
		Msg("bigtable client opened")
	return nil
}

// Stop closes the Bigtable client. It is safe to call when Start failed or never ran.
func (s *Store) Stop() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	s.table = nil
	if err != nil {
		return fmt.Errorf("failed to close bigtable client: %w", err)
	}
	return nil
}

func (s *Store) Name() string {
	return storeName
}

// Read executes spec against the table and calls fn for every returned row in ascending key
// order. A lookup of a missing row returns without calling fn.
func (s *Store) Read(ctx context.Context, spec *catalog.ReadSpec, fn func(row *schema.Row) bool) error {
	if s.table == nil {
		return pkgerrors.New("bigtable store is not started")
	}

	now := time.Now()
	filter := bigtable.RowFilter(buildFilter(spec))

	if spec.IsLookup() {
		row, err := s.table.ReadRow(ctx, spec.RowKey, filter)
		if err != nil {
			return readError(err, "failed to read row %s", spec.RowKey)
		}
		log.Debug().Str("row", spec.RowKey).Dur("latency", time.Since(now)).Msg("lookup complete")
		if len(row) == 0 {
			return nil
		}
		fn(convertRow(spec.RowKey, row))
		return nil
	}

	err := s.table.ReadRows(ctx, buildRowSet(spec), func(row bigtable.Row) bool {
		return fn(convertRow(row.Key(), row))
	}, filter)
	if err != nil {
		return readError(err, "failed to scan rows with prefix %s", spec.Prefix)
	}

	log.Debug().Str("prefix", spec.Prefix).Dur("latency", time.Since(now)).Msg("scan complete")
	return nil
}

func readError(err error, format string, args ...interface{}) error {
	log.Debug().Str("code", status.Code(err).String()).Err(err).Msg("bigtable read failed")
	return pkgerrors.Wrapf(err, format, args...)
}
