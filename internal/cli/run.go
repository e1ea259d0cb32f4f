package cli

import (
	"context"
	"errors"
	"github.com/litetable/mta-bus-queries/internal/app"
	"github.com/litetable/mta-bus-queries/internal/catalog"
	"github.com/litetable/mta-bus-queries/internal/config"
	"github.com/litetable/mta-bus-queries/internal/store"
	pkgerrors "github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"os"
	"time"
)

const (
	serviceName     = "MTA bus queries"
	stopTimeout     = 5 * time.Second
	emulatorHostEnv = "BIGTABLE_EMULATOR_HOST"
	logLevelEnv     = "LOG_LEVEL"
)

type runner struct {
	opts  *Options
	flags *flags
}

func (r *runner) run(cmd *cobra.Command, args []string) error {
	setupLogging(r.opts.Stderr, r.flags.debug, os.Getenv(logLevelEnv))

	cfg, err := config.Load(r.sources(args))
	if err != nil {
		return &usageError{message: err.Error()}
	}

	queries, err := catalog.Default()
	if err != nil {
		return pkgerrors.WithStack(err)
	}
	q, err := queries.Lookup(cfg.Query)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownQuery) {
			return &usageError{message: queries.Usage()}
		}
		return pkgerrors.WithStack(err)
	}

	// The store is the only dependency: it is opened before the query runs and closed on
	// every exit path.
	bt, err := store.New(&store.Config{
		ProjectID:      cfg.ProjectID,
		InstanceID:     cfg.InstanceID,
		Table:          cfg.Table,
		AppProfile:     cfg.AppProfile,
		DisableMetrics: r.opts.DisableMetrics || os.Getenv(emulatorHostEnv) != "",
		ClientOptions:  r.opts.ClientOptions,
	})
	if err != nil {
		return pkgerrors.WithStack(err)
	}

	application, err := app.CreateApp(&app.Config{
		ServiceName: serviceName,
		StopTimeout: stopTimeout,
	}, bt)
	if err != nil {
		return pkgerrors.WithStack(err)
	}

	log.Debug().Str("query", q.Name).Str("table", cfg.Table).Msg("running query")
	return application.Run(cmd.Context(), func(ctx context.Context) error {
		return withStack(catalog.Run(ctx, bt, q, r.opts.Stdout))
	})
}

// sources maps the command line onto config sources. A positional query name is overridden by
// --query.
func (r *runner) sources(args []string) *config.Sources {
	overrides := map[string]string{
		config.PropertyProjectID:  r.flags.projectID,
		config.PropertyInstanceID: r.flags.instanceID,
		config.PropertyTable:      r.flags.table,
		config.PropertyAppProfile: r.flags.appProfile,
		config.PropertyQuery:      r.flags.query,
	}
	if len(args) == 1 && r.flags.query == "" {
		overrides[config.PropertyQuery] = args[0]
	}

	return &config.Sources{
		EnvFile:        r.flags.envFile,
		PropertiesFile: r.flags.propertiesFile,
		Definitions:    r.flags.definitions,
		Overrides:      overrides,
	}
}
