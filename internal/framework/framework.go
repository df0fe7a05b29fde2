// Package framework registers a prebuilt dynamic framework with a host
// project so that it is linked, embedded in the application bundle, and
// code signed on copy.
//
// Registration is conditional: when the framework has not been built yet the
// Registrar skips it and reports NotBuilt. That is a normal state before the
// upstream Unity export has run, not an error.
package framework

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is the bundle name produced by a Unity as a Library export.
const DefaultName = "UnityFramework"

// Attributes controls how the host registers a framework.
type Attributes struct {
	// Custom marks an external framework rather than a product of one of
	// the project's own targets.
	Custom bool
	// Embed copies the framework into the application bundle.
	Embed bool
	// Sign applies the code signature when the framework is copied.
	Sign bool
}

// EmbeddedAttributes returns the attributes for an external dynamic
// framework: custom, embedded and signed.
func EmbeddedAttributes() Attributes {
	return Attributes{Custom: true, Embed: true, Sign: true}
}

// Host is the part of a project document that accepts framework registrations.
type Host interface {
	RegisterFramework(path string, attrs Attributes) error
}

// Inspector is implemented by hosts that can report an existing registration.
type Inspector interface {
	HasFramework(path string) bool
}

// Artifact locates a framework bundle.
type Artifact struct {
	// Name is the bundle file name, e.g. UnityFramework.framework.
	Name string
	// Location is the absolute on-disk path used for the existence check.
	Location string
	// Reference is the path recorded in the project: relative to the
	// project directory when the bundle lives beneath it, absolute otherwise.
	Reference string
}

// Locate computes where the framework named name (without extension) is
// expected beneath unityPath. Build variables in unityPath are expanded
// against projectDir, the directory that contains the .xcodeproj.
func Locate(unityPath, projectDir, name string) Artifact {
	if name == "" {
		name = DefaultName
	}
	bundle := name + ".framework"
	location := filepath.Join(ExpandBuildVars(unityPath, projectDir), bundle)

	reference := location
	if projectDir != "" {
		if rel, err := filepath.Rel(projectDir, location); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			reference = filepath.ToSlash(rel)
		}
	}

	return Artifact{Name: bundle, Location: location, Reference: reference}
}

// projectDirVars are the build variables that name the project directory.
var projectDirVars = []string{"PROJECT_DIR", "SRCROOT", "SOURCE_ROOT"}

// ExpandBuildVars replaces $(VAR) and ${VAR} references to the project
// directory and resolves relative results against projectDir.
func ExpandBuildVars(p, projectDir string) string {
	for _, v := range projectDirVars {
		p = strings.ReplaceAll(p, "$("+v+")", projectDir)
		p = strings.ReplaceAll(p, "${"+v+"}", projectDir)
	}
	if !filepath.IsAbs(p) && projectDir != "" {
		p = filepath.Join(projectDir, p)
	}
	return filepath.Clean(p)
}

// Outcome is the result of a registration attempt.
type Outcome int

const (
	// NotBuilt indicates the framework was absent on disk and was skipped.
	NotBuilt Outcome = iota
	// Registered indicates the host accepted the registration.
	Registered
)

// String returns a human-readable representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case NotBuilt:
		return "not built"
	case Registered:
		return "registered"
	default:
		return "unknown"
	}
}

// StatFunc matches os.Stat.
type StatFunc func(name string) (fs.FileInfo, error)

// Registrar registers a framework with a Host when it exists on disk.
type Registrar struct {
	host  Host
	stat  StatFunc
	attrs Attributes
}

// NewRegistrar creates a Registrar using os.Stat and EmbeddedAttributes.
func NewRegistrar(host Host) *Registrar {
	return &Registrar{host: host, stat: os.Stat, attrs: EmbeddedAttributes()}
}

// WithStat replaces the existence check, mainly for tests.
func (r *Registrar) WithStat(stat StatFunc) *Registrar {
	if stat != nil {
		r.stat = stat
	}
	return r
}

// Exists reports whether the artifact is present on disk.
// Any stat error counts as absent.
func (r *Registrar) Exists(a Artifact) bool {
	_, err := r.stat(a.Location)
	return err == nil
}

// Register calls the host once when the artifact exists and returns
// Registered; otherwise it returns NotBuilt without calling the host.
// Host errors are returned wrapped.
func (r *Registrar) Register(a Artifact) (Outcome, error) {
	if !r.Exists(a) {
		return NotBuilt, nil
	}

	if err := r.host.RegisterFramework(a.Reference, r.attrs); err != nil {
		return NotBuilt, fmt.Errorf("registering %s: %w", a.Name, err)
	}
	return Registered, nil
}
