// Package cli is the command line entry point: it resolves properties, opens the table and
// runs one catalog query.
package cli

import (
	"context"
	"github.com/litetable/mta-bus-queries/internal/catalog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"google.golang.org/api/option"
	"io"
	"os"
	"strings"
)

const commandName = "mta-bus-queries"

// Options carries the process surroundings of a run.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	// ClientOptions are passed to the Bigtable client.
	ClientOptions []option.ClientOption
	// DisableMetrics turns off Bigtable client-side metrics. It is also turned off when
	// BIGTABLE_EMULATOR_HOST is set.
	DisableMetrics bool
}

type flags struct {
	definitions    []string
	propertiesFile string
	envFile        string
	projectID      string
	instanceID     string
	table          string
	appProfile     string
	query          string
	debug          bool
}

// Execute runs the command line and returns the process exit code.
func Execute(ctx context.Context, args []string, opts *Options) int {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	cmd := newRootCommand(opts)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		report(opts.Stderr, err)
		return 1
	}
	return 0
}

func newRootCommand(opts *Options) *cobra.Command {
	f := &flags{}
	r := &runner{opts: opts, flags: f}

	cmd := &cobra.Command{
		Use:   commandName + " [query]",
		Short: "Run a read query against the MTA bus telemetry table in Cloud Bigtable",
		Long: `Runs one of a fixed catalog of read queries against a Cloud Bigtable table of New York
MTA bus positions and prints the matching latitude,longitude pairs.

Properties (bigtable.projectID, bigtable.instanceID, bigtable.table, query) are read, lowest
precedence first, from the environment (BIGTABLE_PROJECTID, BIGTABLE_INSTANCEID,
BIGTABLE_TABLE, QUERY), an env file, a properties file, -D definitions and flags.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          r.run,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	cmd.SetOut(opts.Stdout)
	cmd.SetErr(opts.Stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return &usageError{message: err.Error()}
	})

	fs := cmd.Flags()
	fs.StringArrayVarP(&f.definitions, "define", "D", nil,
		"set a property, e.g. -Dbigtable.projectID=my-project (repeatable)")
	fs.StringVar(&f.propertiesFile, "properties", "", "read properties from a key=value file")
	fs.StringVar(&f.envFile, "env-file", "", "load environment variables from a file (default .env if present)")
	fs.StringVar(&f.projectID, "project", "", "bigtable.projectID")
	fs.StringVar(&f.instanceID, "instance", "", "bigtable.instanceID")
	fs.StringVar(&f.table, "table", "", "bigtable.table")
	fs.StringVar(&f.appProfile, "app-profile", "", "bigtable.appProfile")
	fs.StringVar(&f.query, "query", "", "query to run")
	fs.BoolVar(&f.debug, "debug", false, "write debug logs to stderr")
	// --app_profile and --app-profile are the same flag
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	cmd.AddCommand(newQueriesCommand(opts))
	return cmd
}

func newQueriesCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "queries",
		Short: "List the queries that can be run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := catalog.Default()
			if err != nil {
				return err
			}
			for _, name := range c.Names() {
				if _, err = io.WriteString(opts.Stdout, name+"\n"); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
