package buildsettings

// Setting keys written by Patch.
const (
	KeyEnableBitcode        = "ENABLE_BITCODE"
	KeyCxxLanguageStandard  = "CLANG_CXX_LANGUAGE_STANDARD"
	KeyFrameworkSearchPaths = "FRAMEWORK_SEARCH_PATHS"
	BitcodeDisabled         = "NO"
	CxxLanguageStandard     = "c++17"
)

// Change records one setting rewritten by Patch.
type Change struct {
	Key    string
	Before Value
	After  Value
}

// Plan computes the changes Patch would make to s without applying them.
// An empty plan means s is already patched.
func Plan(s Settings, searchPath string) []Change {
	var changes []Change

	// UnityFramework is built without bitcode.
	if before := s.Lookup(KeyEnableBitcode); !settled(s, KeyEnableBitcode, before, ScalarValue(BitcodeDisabled)) {
		changes = append(changes, Change{Key: KeyEnableBitcode, Before: before, After: ScalarValue(BitcodeDisabled)})
	}

	// Unity headers require C++17.
	if before := s.Lookup(KeyCxxLanguageStandard); !settled(s, KeyCxxLanguageStandard, before, ScalarValue(CxxLanguageStandard)) {
		changes = append(changes, Change{Key: KeyCxxLanguageStandard, Before: before, After: ScalarValue(CxxLanguageStandard)})
	}

	before := s.Lookup(KeyFrameworkSearchPaths)
	if after, changed := MergeSearchPath(before, searchPath); changed {
		changes = append(changes, Change{Key: KeyFrameworkSearchPaths, Before: before, After: after})
	}

	return changes
}

// settled reports whether key already holds want, in the stored form
// when s can report it. An unquoted c++17 in raw text equals the target
// value but still has to be rewritten quoted.
func settled(s Settings, key string, before, want Value) bool {
	if !before.Equal(want) {
		return false
	}
	if f, ok := s.(storedForm); ok {
		return f.Stores(key, want)
	}
	return true
}

// Patch applies the unitylink settings to s and returns what changed.
// Applying it a second time with the same searchPath changes nothing.
func Patch(s Settings, searchPath string) []Change {
	changes := Plan(s, searchPath)
	for _, c := range changes {
		s.Set(c.Key, c.After)
	}
	return changes
}

// ConfigurationResult is the outcome of patching one configuration.
type ConfigurationResult struct {
	Name    string
	Skipped bool
	Changes []Change
}

// PatchAll patches every configuration that has a settings mapping.
// Configurations without one are reported as skipped and left untouched.
func PatchAll(configs []Configuration, searchPath string) []ConfigurationResult {
	results := make([]ConfigurationResult, 0, len(configs))
	for _, cfg := range configs {
		res := ConfigurationResult{Name: cfg.Name()}
		settings, ok := cfg.Settings()
		if !ok || settings == nil {
			res.Skipped = true
			results = append(results, res)
			continue
		}
		res.Changes = Patch(settings, searchPath)
		results = append(results, res)
	}
	return results
}

// PlanAll is PatchAll without mutation.
func PlanAll(configs []Configuration, searchPath string) []ConfigurationResult {
	results := make([]ConfigurationResult, 0, len(configs))
	for _, cfg := range configs {
		res := ConfigurationResult{Name: cfg.Name()}
		settings, ok := cfg.Settings()
		if !ok || settings == nil {
			res.Skipped = true
		} else {
			res.Changes = Plan(settings, searchPath)
		}
		results = append(results, res)
	}
	return results
}
