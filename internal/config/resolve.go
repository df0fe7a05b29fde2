package config

// Source identifies where a resolved value came from.
type Source int

const (
	// SourceDefault is the built-in default.
	SourceDefault Source = iota
	// SourceConfigFile is the config file, which shares the default tier.
	SourceConfigFile
	// SourceEnvironment is an environment variable.
	SourceEnvironment
	// SourceOption is an explicit option such as a command-line flag.
	SourceOption
)

// String returns a human-readable representation of the source.
func (s Source) String() string {
	switch s {
	case SourceDefault:
		return "default"
	case SourceConfigFile:
		return "config file"
	case SourceEnvironment:
		return "environment"
	case SourceOption:
		return "option"
	default:
		return "unknown"
	}
}

// ResolveUnityPath picks the first non-empty of option, environment and
// fallback. Values are never combined.
func ResolveUnityPath(option, environment, fallback string) (string, Source) {
	switch {
	case option != "":
		return option, SourceOption
	case environment != "":
		return environment, SourceEnvironment
	default:
		return fallback, SourceDefault
	}
}
