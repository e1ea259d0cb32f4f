package config

import (
	"errors"
	"github.com/stretchr/testify/require"
	"os"
	"path/filepath"
	"testing"
)

// clearEnv unsets every property variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, p := range properties {
		name := EnvName(p)
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEnvName(t *testing.T) {
	require.Equal(t, "BIGTABLE_PROJECTID", EnvName(PropertyProjectID))
	require.Equal(t, "QUERY", EnvName(PropertyQuery))
}

func TestLoad_Missing(t *testing.T) {
	clearEnv(t)
	tests := map[string]struct {
		definitions []string
		missing     string
	}{
		"nothing set": {
			missing: "bigtable.projectID",
		},
		"missing instance": {
			definitions: []string{"bigtable.projectID=p"},
			missing:     "bigtable.instanceID",
		},
		"missing table": {
			definitions: []string{"bigtable.projectID=p", "bigtable.instanceID=i"},
			missing:     "bigtable.table",
		},
		"missing query": {
			definitions: []string{"bigtable.projectID=p", "bigtable.instanceID=i",
				"bigtable.table=t"},
			missing: "query",
		},
		"empty query": {
			definitions: []string{"bigtable.projectID=p", "bigtable.instanceID=i",
				"bigtable.table=t", "query="},
			missing: "query",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(&Sources{Definitions: tc.definitions})
			require.Nil(t, cfg)

			var missing *MissingPropertyError
			require.True(t, errors.As(err, &missing))
			require.Equal(t, tc.missing, missing.Name)
			require.Equal(t, "Missing required system property: "+tc.missing, err.Error())
		})
	}
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("BIGTABLE_PROJECTID", "env-project")
	t.Setenv("BIGTABLE_INSTANCEID", "env-instance")
	t.Setenv("BIGTABLE_TABLE", "env-table")
	t.Setenv("QUERY", "scanEntireBusLine")

	cfg, err := Load(nil)
	require.NoError(t, err)
	require.Equal(t, &Config{
		ProjectID:  "env-project",
		InstanceID: "env-instance",
		Table:      "env-table",
		Query:      "scanEntireBusLine",
	}, cfg)
}

func TestLoad_Precedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("BIGTABLE_PROJECTID", "env-project")
	t.Setenv("BIGTABLE_INSTANCEID", "env-instance")
	t.Setenv("BIGTABLE_TABLE", "env-table")
	t.Setenv("QUERY", "env-query")

	props := writeFile(t, "codelab.properties", `
# bus data
bigtable.instanceID = file-instance
bigtable.table=file-table
not a property
bigtable.appProfile=file-profile
`)

	cfg, err := Load(&Sources{
		PropertiesFile: props,
		Definitions:    []string{"bigtable.table=defined-table", "query=defined-query"},
		Overrides: map[string]string{
			PropertyQuery:     "flag-query",
			PropertyProjectID: "",
		},
	})
	require.NoError(t, err)
	require.Equal(t, &Config{
		ProjectID:  "env-project",
		InstanceID: "file-instance",
		Table:      "defined-table",
		Query:      "flag-query",
		AppProfile: "file-profile",
	}, cfg)
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("BIGTABLE_PROJECTID", "env-project")

	envFile := writeFile(t, "codelab.env", "BIGTABLE_PROJECTID=file-project\n"+
		"BIGTABLE_INSTANCEID=file-instance\nBIGTABLE_TABLE=file-table\nQUERY=scanEntireBusLine\n")

	cfg, err := Load(&Sources{EnvFile: envFile})
	require.NoError(t, err)
	// variables already set are not replaced
	require.Equal(t, "env-project", cfg.ProjectID)
	require.Equal(t, "file-instance", cfg.InstanceID)
	require.Equal(t, "file-table", cfg.Table)
	require.Equal(t, "scanEntireBusLine", cfg.Query)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)
	tests := map[string]struct {
		sources  *Sources
		contains string
	}{
		"missing env file": {
			sources:  &Sources{EnvFile: filepath.Join(t.TempDir(), "missing.env")},
			contains: "failed to load env file",
		},
		"missing properties file": {
			sources:  &Sources{PropertiesFile: filepath.Join(t.TempDir(), "missing.properties")},
			contains: "failed to open properties file",
		},
		"definition without value": {
			sources:  &Sources{Definitions: []string{"bigtable.projectID"}},
			contains: "invalid property definition",
		},
		"definition without key": {
			sources:  &Sources{Definitions: []string{"=value"}},
			contains: "invalid property definition",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cfg, err := Load(tc.sources)
			require.Nil(t, cfg)
			require.ErrorContains(t, err, tc.contains)

			var missing *MissingPropertyError
			require.False(t, errors.As(err, &missing))
		})
	}
}

func TestReadPropertiesFile(t *testing.T) {
	t.Parallel()
	path := writeFile(t, "p.properties", "a=1\n#b=2\n\nc = x=y\n=skip\n")
	got, err := readPropertiesFile(path)
	require.NoError(t, err)
	require.Equal(t, map[string]string{"a": "1", "c": "x=y"}, got)
}
