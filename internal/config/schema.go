package config

import "sort"

// ConfigKeySchema describes a known configuration key.
type ConfigKeySchema struct {
	Path        string // Key as written in the config file (e.g., "unity_path")
	Env         string // Environment variable that overrides the key
	Description string // Human-readable description for help text
	Default     string // Default value
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"unity_path": {
		Path:        "unity_path",
		Env:         EnvUnityPath,
		Description: "Directory containing the Unity iOS build",
		Default:     DefaultUnityPath,
	},
	"project_file": {
		Path:        "project_file",
		Env:         EnvPrefix + "PROJECT_FILE",
		Description: "Path to project.pbxproj (discovered when empty)",
	},
	"project_root": {
		Path:        "project_root",
		Env:         EnvPrefix + "PROJECT_ROOT",
		Description: "Expo project root (git worktree root when empty)",
	},
	"framework_name": {
		Path:        "framework_name",
		Env:         EnvPrefix + "FRAMEWORK_NAME",
		Description: "Name of the Unity framework bundle, without extension",
		Default:     "UnityFramework",
	},
}

// ErrUnknownKey is returned when trying to access an unknown configuration key.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return "unknown configuration key: " + e.Key
}

// GetKeySchema returns the schema for a known configuration key.
// Returns ErrUnknownKey if the key is not in the registry.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns the known key names in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
