// Package transform applies the Unity as a Library changes to a host
// project document: it patches the build settings of every configuration
// and registers UnityFramework for embedding when it has been built.
//
// The document is borrowed for the duration of a call and mutated in place.
// Persisting it is the caller's job.
package transform

import (
	"context"
	"fmt"

	slogctx "github.com/veqryn/slog-context"

	"github.com/expo-unity/unitylink/internal/buildsettings"
	"github.com/expo-unity/unitylink/internal/framework"
)

// Document is the capability set a host project must provide.
type Document interface {
	// Configurations enumerates every build configuration.
	Configurations() ([]buildsettings.Configuration, error)
	framework.Host
}

// Options are the resolved inputs of a transform.
type Options struct {
	// UnityPath is the directory holding the framework bundle. It is
	// written verbatim into FRAMEWORK_SEARCH_PATHS.
	UnityPath string
	// ProjectDir is the directory containing the .xcodeproj; build
	// variables in UnityPath are expanded against it for the existence check.
	ProjectDir string
	// FrameworkName is the bundle name without extension.
	FrameworkName string
	// Stat overrides the existence check. Nil means os.Stat.
	Stat framework.StatFunc
}

func (o Options) artifact() framework.Artifact {
	return framework.Locate(o.UnityPath, o.ProjectDir, o.FrameworkName)
}

func (o Options) registrar(host framework.Host) *framework.Registrar {
	return framework.NewRegistrar(host).WithStat(o.Stat)
}

// Result summarizes an Apply call.
type Result struct {
	Configurations []buildsettings.ConfigurationResult
	Artifact       framework.Artifact
	Framework      framework.Outcome
}

// Changed reports whether any setting was rewritten.
// Framework registration is idempotent in the host and not counted.
func (r *Result) Changed() bool {
	for _, c := range r.Configurations {
		if len(c.Changes) > 0 {
			return true
		}
	}
	return false
}

// Patched returns the names of configurations whose settings changed.
func (r *Result) Patched() []string {
	var names []string
	for _, c := range r.Configurations {
		if len(c.Changes) > 0 {
			names = append(names, c.Name)
		}
	}
	return names
}

// Skipped returns the names of configurations without a settings mapping.
func (r *Result) Skipped() []string {
	var names []string
	for _, c := range r.Configurations {
		if c.Skipped {
			names = append(names, c.Name)
		}
	}
	return names
}

// Apply patches every configuration of doc and registers the framework.
// Errors from the document are returned and leave the transform incomplete.
func Apply(ctx context.Context, doc Document, opts Options) (*Result, error) {
	logger := slogctx.FromCtx(ctx)

	configs, err := doc.Configurations()
	if err != nil {
		return nil, fmt.Errorf("enumerating build configurations: %w", err)
	}

	res := &Result{Artifact: opts.artifact()}
	res.Configurations = buildsettings.PatchAll(configs, opts.UnityPath)
	for _, c := range res.Configurations {
		switch {
		case c.Skipped:
			logger.Debug("skipped configuration without build settings", "configuration", c.Name)
		case len(c.Changes) > 0:
			logger.Debug("patched configuration", "configuration", c.Name, "changes", len(c.Changes))
		}
	}

	res.Framework, err = opts.registrar(doc).Register(res.Artifact)
	if err != nil {
		return nil, err
	}
	if res.Framework == framework.NotBuilt {
		logger.Info("framework not built yet, skipping registration", "path", res.Artifact.Location)
	} else {
		logger.Debug("registered framework", "reference", res.Artifact.Reference)
	}

	return res, nil
}
