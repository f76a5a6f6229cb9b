package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/alecthomas/kong"
	"gopkg.in/yaml.v3"
)

// appName names the XDG config and data subdirectories.
const appName = "cannibal"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfig reads flag defaults from a YAML file. Keys are flag names,
// with hyphens or underscores:
//
//	max-pages: 200
//	scoring: weighted
//	exclude: ["/tag/", "/page/"]
func LoadConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	values := map[string]any{}
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	normalized := make(map[string]any, len(values))
	for k, v := range values {
		normalized[strings.ReplaceAll(strings.ToLower(k), "_", "-")] = v
	}
	return normalized, nil
}

// ConfigResolver resolves flags missing from the command line from
// config values. Values are rendered as strings so every flag type is
// decoded by its own kong mapper.
func ConfigResolver(values map[string]any) kong.Resolver {
	return kong.ResolverFunc(func(_ *kong.Context, _ *kong.Path, flag *kong.Flag) (any, error) {
		v, ok := values[flag.Name]
		if !ok {
			return nil, nil
		}
		switch v := v.(type) {
		case []any:
			parts := make([]string, 0, len(v))
			for _, item := range v {
				parts = append(parts, fmt.Sprint(item))
			}
			return strings.Join(parts, ","), nil
		case map[string]any:
			return nil, fmt.Errorf("config key %q: nested values are not supported", flag.Name)
		default:
			return fmt.Sprint(v), nil
		}
	})
}

// defaultConfigPath returns $CANNIBAL_CONFIG, or the XDG config file
// when one exists, or "".
func defaultConfigPath() string {
	if path := os.Getenv("CANNIBAL_CONFIG"); path != "" {
		return path
	}
	path, err := xdg.SearchConfigFile(filepath.Join(appName, "config.yaml"))
	if err != nil {
		return ""
	}
	return path
}

// defaultDBPath returns $CANNIBAL_DB or the XDG data file for saved reports.
func defaultDBPath() string {
	if path := os.Getenv("CANNIBAL_DB"); path != "" {
		return path
	}
	path, err := xdg.DataFile(filepath.Join(appName, "reports.db"))
	if err != nil {
		return appName + ".db"
	}
	return path
}
