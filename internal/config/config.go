// Package config resolves the properties a query run needs from the environment, env files,
// properties files and command line definitions.
package config

import (
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/v2"
	"io/fs"
	"reflect"
	"strings"
)

const (
	PropertyProjectID  = "bigtable.projectID"
	PropertyInstanceID = "bigtable.instanceID"
	PropertyTable      = "bigtable.table"
	PropertyAppProfile = "bigtable.appProfile"
	PropertyQuery      = "query"

	defaultEnvFile = ".env"
)

// properties lists every property this program reads, in the order they are reported missing.
var properties = []string{
	PropertyProjectID,
	PropertyInstanceID,
	PropertyTable,
	PropertyQuery,
	PropertyAppProfile,
}

// Config is the resolved set of properties.
type Config struct {
	ProjectID  string `property:"bigtable.projectID" validate:"required"`
	InstanceID string `property:"bigtable.instanceID" validate:"required"`
	Table      string `property:"bigtable.table" validate:"required"`
	Query      string `property:"query" validate:"required"`
	AppProfile string `property:"bigtable.appProfile"`
}

// Sources are the places properties are read from. Later sources win: environment, env file,
// properties file, definitions, then overrides.
type Sources struct {
	// EnvFile is loaded into the environment without replacing variables already set. When
	// empty, a .env file in the working directory is loaded if present.
	EnvFile string
	// PropertiesFile holds key=value lines.
	PropertiesFile string
	// Definitions are key=value pairs, as given with -D.
	Definitions []string
	// Overrides are set by dedicated flags. Empty values are ignored.
	Overrides map[string]string
}

// MissingPropertyError reports the first required property that has no value.
type MissingPropertyError struct {
	Name string
}

func (e *MissingPropertyError) Error() string {
	return "Missing required system property: " + e.Name
}

// EnvName returns the environment variable a property can be supplied through, e.g.
// bigtable.projectID → BIGTABLE_PROJECTID.
func EnvName(property string) string {
	return strings.ToUpper(strings.ReplaceAll(property, ".", "_"))
}

// Load resolves and validates the properties.
func Load(src *Sources) (*Config, error) {
	if src == nil {
		src = &Sources{}
	}
	k := koanf.New(".")

	if err := loadEnvFile(src.EnvFile); err != nil {
		return nil, err
	}
	if err := loadEnvironment(k); err != nil {
		return nil, err
	}

	if src.PropertiesFile != "" {
		values, err := readPropertiesFile(src.PropertiesFile)
		if err != nil {
			return nil, err
		}
		if err = setAll(k, values); err != nil {
			return nil, err
		}
	}

	definitions, err := parseDefinitions(src.Definitions)
	if err != nil {
		return nil, err
	}
	if err = setAll(k, definitions); err != nil {
		return nil, err
	}

	for key, value := range src.Overrides {
		if value == "" {
			continue
		}
		if err = k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	cfg := &Config{
		ProjectID:  k.String(PropertyProjectID),
		InstanceID: k.String(PropertyInstanceID),
		Table:      k.String(PropertyTable),
		Query:      k.String(PropertyQuery),
		AppProfile: k.String(PropertyAppProfile),
	}
	if err = cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

func loadEnvironment(k *koanf.Koanf) error {
	envToProperty := make(map[string]string, len(properties))
	for _, p := range properties {
		envToProperty[EnvName(p)] = p
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			property, ok := envToProperty[key]
			if !ok || value == "" {
				return "", nil
			}
			return property, value
		},
	}), nil); err != nil {
		return fmt.Errorf("failed to load environment variables: %w", err)
	}
	return nil
}

func setAll(k *koanf.Koanf, values map[string]string) error {
	for key, value := range values {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("failed to set %s: %w", key, err)
		}
	}
	return nil
}

// parseDefinitions splits key=value definitions. The last definition of a key wins.
func parseDefinitions(definitions []string) (map[string]string, error) {
	values := make(map[string]string, len(definitions))
	for _, d := range definitions {
		parts := strings.SplitN(d, "=", 2)
		key := strings.TrimSpace(parts[0])
		if len(parts) != 2 || key == "" {
			return nil, fmt.Errorf("invalid property definition %q: expected key=value", d)
		}
		values[key] = parts[1]
	}
	return values, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		return field.Tag.Get("property")
	})
	return v
}

// validate returns a MissingPropertyError naming the first missing required property.
func (c *Config) validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &MissingPropertyError{Name: verrs[0].Field()}
	}
	return err
}
