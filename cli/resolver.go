package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag defaults
// from a YAML mapping.
//
// It can be used with [kong.Configuration] like this:
//
//	kong.Configuration(resolveYAML, "/path/to/config.yaml")
//
// Flag names with hyphens (e.g., "log-level") may use underscores in
// the config file (e.g., "log_level"). Command-line flags override
// config file values.
//
// Example config file:
//
//	log_level: debug
//	log_format: text
//	log_pretty: true
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		// Unreadable config never blocks the CLI.
		return config{}, nil
	}

	cfg := make(config, len(values))
	for key, value := range values {
		// Kong expects scalar values as strings.
		switch value.(type) {
		case map[string]any, []any, nil:
			cfg[key] = value
		case string, bool:
			cfg[key] = value
		default:
			cfg[key] = fmt.Sprint(value)
		}
	}

	return cfg, nil
}

// config implements [kong.Resolver] for YAML configs.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r config) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := r[flag.Name]; ok {
		return value, nil
	}

	// Underscore variant of hyphenated flag names.
	if value, ok := r[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}
