package errors

import (
	"fmt"
	"strings"
)

// ProjectNotFound is returned when no project.pbxproj can be discovered.
func ProjectNotFound(root string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("no Xcode project found under %s", root),
		"Run 'npx expo prebuild -p ios' to generate the native project",
		"Or pass the project file explicitly with --project <path/to/project.pbxproj>",
	)
}

// ProjectParseError is returned when project.pbxproj cannot be read.
func ProjectParseError(path string, err error) *CLIError {
	e := NewRuntimeError(
		fmt.Sprintf("failed to read Xcode project %s: %v", path, err),
		"Open the project in Xcode to check that it is not corrupted",
		"Regenerate it with 'npx expo prebuild -p ios --clean'",
	)
	e.Cause = err
	return e
}

// ProjectWriteError is returned when the patched project cannot be saved.
func ProjectWriteError(path string, err error) *CLIError {
	e := NewRuntimeError(
		fmt.Sprintf("failed to write Xcode project %s: %v", path, err),
		"Check that the file and its directory are writable",
	)
	e.Cause = err
	return e
}

// NoAppTarget is returned when the project has no application target.
func NoAppTarget(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("Xcode project %s has no application target", path),
		"Make sure --project points at the app project, not a Pods or framework project",
	)
}

// ConfigFileNotFound is returned when an explicitly requested config file is missing.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Create the file or omit --config to use .unitylink.json in the project root",
	)
}

// ConfigParseError is returned when the configuration cannot be loaded.
func ConfigParseError(path string, err error) *CLIError {
	e := NewConfigError(
		fmt.Sprintf("failed to load configuration from %s: %v", path, err),
		"Check that the file is a JSON object with string values",
		"Run 'unitylink config' to see the known keys",
	)
	e.Cause = err
	return e
}

// DirectoryNotFound is returned when a directory given on the command line is missing.
func DirectoryNotFound(path string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("directory not found: %s", path),
		"Check the --root path",
	)
}

// InvalidOutputFormat is returned for an unsupported --format value.
func InvalidOutputFormat(command, format string, allowed []string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid output format %q", format),
		fmt.Sprintf("%s --format <%s>", command, strings.Join(allowed, "|")),
	)
}
