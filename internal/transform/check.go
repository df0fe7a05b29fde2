package transform

import (
	"fmt"

	"github.com/expo-unity/unitylink/internal/buildsettings"
	"github.com/expo-unity/unitylink/internal/framework"
)

// ConfigurationStatus describes one configuration in a Report.
type ConfigurationStatus struct {
	Name    string   `json:"name" yaml:"name"`
	Skipped bool     `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	Pending []string `json:"pending,omitempty" yaml:"pending,omitempty"`
}

// Report is the read-only counterpart of Apply. Registered is nil when the
// document cannot report registrations.
type Report struct {
	UnityPath      string                `json:"unity_path" yaml:"unity_path"`
	FrameworkPath  string                `json:"framework_path" yaml:"framework_path"`
	FrameworkBuilt bool                  `json:"framework_built" yaml:"framework_built"`
	Registered     *bool                 `json:"framework_registered,omitempty" yaml:"framework_registered,omitempty"`
	Configurations []ConfigurationStatus `json:"configurations" yaml:"configurations"`
}

// Configured reports whether Apply would leave the document unchanged:
// no configuration has pending settings, and a built framework is registered.
func (r *Report) Configured() bool {
	for _, c := range r.Configurations {
		if len(c.Pending) > 0 {
			return false
		}
	}
	if r.FrameworkBuilt && r.Registered != nil && !*r.Registered {
		return false
	}
	return true
}

// Check inspects doc without mutating it.
func Check(doc Document, opts Options) (*Report, error) {
	configs, err := doc.Configurations()
	if err != nil {
		return nil, fmt.Errorf("enumerating build configurations: %w", err)
	}

	artifact := opts.artifact()
	report := &Report{
		UnityPath:      opts.UnityPath,
		FrameworkPath:  artifact.Location,
		FrameworkBuilt: opts.registrar(doc).Exists(artifact),
	}

	for _, planned := range buildsettings.PlanAll(configs, opts.UnityPath) {
		status := ConfigurationStatus{Name: planned.Name, Skipped: planned.Skipped}
		for _, c := range planned.Changes {
			status.Pending = append(status.Pending, c.Key)
		}
		report.Configurations = append(report.Configurations, status)
	}

	if inspector, ok := doc.(framework.Inspector); ok {
		registered := inspector.HasFramework(artifact.Reference)
		report.Registered = &registered
	}

	return report, nil
}
