// Package config resolves unitylink's configuration from built-in defaults,
// an optional JSON config file, environment variables and command-line
// options.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvUnityPath names the environment variable that overrides the Unity
// build directory. It keeps the name the Expo plugin has always read.
const EnvUnityPath = "EXPO_UNITY_PATH"

// EnvPrefix prefixes every other environment override, e.g.
// UNITYLINK_PROJECT_FILE.
const EnvPrefix = "UNITYLINK_"

// DefaultConfigFile is the project-local config file name.
const DefaultConfigFile = ".unitylink.json"

// Configuration represents the unitylink configuration
type Configuration struct {
	UnityPath     string `koanf:"unity_path" validate:"required"`
	ProjectFile   string `koanf:"project_file"`
	ProjectRoot   string `koanf:"project_root"`
	FrameworkName string `koanf:"framework_name" validate:"required,excludesall=/\\"`

	// UnityPathSource records which tier supplied UnityPath.
	UnityPathSource Source `koanf:"-"`
}

// Options carries explicit values, typically from command-line flags.
// Empty fields are treated as not supplied.
type Options struct {
	UnityPath     string
	ProjectFile   string
	ProjectRoot   string
	FrameworkName string
}

// Load loads configuration from defaults, the config file at configPath
// (skipped when it does not exist), the environment and opts.
// Priority: Options > Environment variables > Config file > Defaults
//
// unity_path is resolved with ResolveUnityPath so that exactly one tier
// supplies it; the config file value belongs to the default tier.
func Load(configPath string, opts Options) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	fromFile := false
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			if err := ValidateFile(configPath); err != nil {
				return nil, err
			}
			fk := koanf.New(".")
			if err := fk.Load(file.Provider(configPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
			fromFile = fk.String("unity_path") != ""
			if err := k.Merge(fk); err != nil {
				return nil, fmt.Errorf("failed to merge config file: %w", err)
			}
		}
	}

	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envValue), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	setIfNotEmpty(k, "project_file", opts.ProjectFile)
	setIfNotEmpty(k, "project_root", opts.ProjectRoot)
	setIfNotEmpty(k, "framework_name", opts.FrameworkName)

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.UnityPath, cfg.UnityPathSource = ResolveUnityPath(opts.UnityPath, os.Getenv(EnvUnityPath), cfg.UnityPath)
	if cfg.UnityPathSource == SourceDefault && fromFile {
		cfg.UnityPathSource = SourceConfigFile
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.UnityPath = expandHomePath(cfg.UnityPath)
	cfg.ProjectFile = expandHomePath(cfg.ProjectFile)
	cfg.ProjectRoot = expandHomePath(cfg.ProjectRoot)

	return &cfg, nil
}

func setIfNotEmpty(k *koanf.Koanf, key, value string) {
	if value != "" {
		k.Set(key, value)
	}
}

// envValue maps an environment variable to a config key. Empty values
// are dropped.
func envValue(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	return envTransform(key), value
}

// envTransform converts environment variable names to config keys.
// Example: UNITYLINK_PROJECT_FILE -> project_file
// UNITYLINK_UNITY_PATH is ignored; EXPO_UNITY_PATH is the only
// environment source for unity_path.
func envTransform(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if key == "unity_path" {
		return ""
	}
	return key
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
