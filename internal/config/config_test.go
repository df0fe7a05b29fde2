// Package config_test tests configuration loading, unity path precedence and config file validation.
// Related: internal/config/config.go, internal/config/resolve.go, internal/config/validate.go
// Tags: config, loading, env-vars, json, precedence, validation
package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expo-unity/unitylink/internal/testutil"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	return testutil.WriteConfig(t, t.TempDir(), content)
}

// isolateEnv clears every variable Load reads so host settings cannot leak in.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvUnityPath, "")
	for _, k := range KnownKeys {
		if k.Env != EnvUnityPath {
			t.Setenv(k.Env, "")
		}
	}
}

func TestResolveUnityPath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		option     string
		env        string
		fallback   string
		want       string
		wantSource Source
	}{
		"option wins over env":  {option: "/opt", env: "/env", fallback: DefaultUnityPath, want: "/opt", wantSource: SourceOption},
		"env wins over default": {env: "/env", fallback: DefaultUnityPath, want: "/env", wantSource: SourceEnvironment},
		"default when unset":    {fallback: DefaultUnityPath, want: DefaultUnityPath, wantSource: SourceDefault},
		"empty option ignored":  {option: "", env: "/env", fallback: DefaultUnityPath, want: "/env", wantSource: SourceEnvironment},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got, source := ResolveUnityPath(tc.option, tc.env, tc.fallback)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantSource, source)
		})
	}
}

func TestSource_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "default", SourceDefault.String())
	assert.Equal(t, "config file", SourceConfigFile.String())
	assert.Equal(t, "environment", SourceEnvironment.String())
	assert.Equal(t, "option", SourceOption.String())
	assert.Equal(t, "unknown", Source(42).String())
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load("", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultUnityPath, cfg.UnityPath)
	assert.Equal(t, SourceDefault, cfg.UnityPathSource)
	assert.Equal(t, "UnityFramework", cfg.FrameworkName)
	assert.Empty(t, cfg.ProjectFile)
	assert.Empty(t, cfg.ProjectRoot)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"), Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultUnityPath, cfg.UnityPath)
}

func TestLoad_ConfigFile(t *testing.T) {
	isolateEnv(t)

	path := writeConfig(t, `{
		"unity_path": "/srv/unity/ios",
		"project_file": "/srv/app/ios/App.xcodeproj/project.pbxproj",
		"framework_name": "GameFramework"
	}`)

	cfg, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "/srv/unity/ios", cfg.UnityPath)
	assert.Equal(t, SourceConfigFile, cfg.UnityPathSource)
	assert.Equal(t, "/srv/app/ios/App.xcodeproj/project.pbxproj", cfg.ProjectFile)
	assert.Equal(t, "GameFramework", cfg.FrameworkName)
}

func TestLoad_UnityPathPrecedence(t *testing.T) {
	tests := map[string]struct {
		file       string
		env        string
		option     string
		want       string
		wantSource Source
	}{
		"option beats env and file": {
			file: "/file", env: "/env", option: "/option",
			want: "/option", wantSource: SourceOption,
		},
		"env beats file": {
			file: "/file", env: "/env",
			want: "/env", wantSource: SourceEnvironment,
		},
		"file beats builtin default": {
			file: "/file",
			want: "/file", wantSource: SourceConfigFile,
		},
		"builtin default": {
			want: DefaultUnityPath, wantSource: SourceDefault,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			t.Setenv(EnvUnityPath, tc.env)

			configPath := ""
			if tc.file != "" {
				configPath = writeConfig(t, `{"unity_path": "`+tc.file+`"}`)
			}

			cfg, err := Load(configPath, Options{UnityPath: tc.option})
			require.NoError(t, err)
			assert.Equal(t, tc.want, cfg.UnityPath)
			assert.Equal(t, tc.wantSource, cfg.UnityPathSource)
		})
	}
}

func TestLoad_PrefixedUnityPathIgnored(t *testing.T) {
	isolateEnv(t)
	t.Setenv(EnvPrefix+"UNITY_PATH", "/ignored")

	cfg, err := Load("", Options{})
	require.NoError(t, err)
	assert.Equal(t, DefaultUnityPath, cfg.UnityPath)
}

func TestLoad_EnvAndOptionOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv(EnvPrefix+"FRAMEWORK_NAME", "EnvFramework")
	t.Setenv(EnvPrefix+"PROJECT_ROOT", "/env/root")

	path := writeConfig(t, `{"framework_name": "FileFramework", "project_root": "/file/root"}`)

	cfg, err := Load(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, "EnvFramework", cfg.FrameworkName)
	assert.Equal(t, "/env/root", cfg.ProjectRoot)

	cfg, err = Load(path, Options{FrameworkName: "FlagFramework", ProjectRoot: "/flag/root"})
	require.NoError(t, err)
	assert.Equal(t, "FlagFramework", cfg.FrameworkName)
	assert.Equal(t, "/flag/root", cfg.ProjectRoot)
}

func TestLoad_ExpandsHome(t *testing.T) {
	isolateEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load("", Options{UnityPath: "~/unity/ios"})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "unity/ios"), cfg.UnityPath)
}

func TestLoad_Errors(t *testing.T) {
	tests := map[string]struct {
		content  string
		opts     Options
		contains string
	}{
		"syntax error": {
			content:  "{\n  \"unity_path\": \n}",
			contains: ":3:",
		},
		"unknown key": {
			content:  `{"max_retries": 3}`,
			contains: "field 'max_retries': unknown configuration key",
		},
		"non-string value": {
			content:  `{"unity_path": 7}`,
			contains: "field 'unity_path': must be a string",
		},
		"framework name with slash": {
			content:  `{"framework_name": "a/b"}`,
			contains: "validation failed",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			_, err := Load(writeConfig(t, tc.content), tc.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestValidateBytes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content  string
		wantErr  bool
		wantLine int
	}{
		"empty":        {content: "  \n"},
		"valid":        {content: `{"unity_path": "/x"}`},
		"not object":   {content: `["unity_path"]`, wantErr: true},
		"syntax error": {content: "{\n\"a\": ,\n}", wantErr: true, wantLine: 2},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			err := ValidateBytes([]byte(tc.content), "cfg.json")
			if !tc.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tc.wantLine, ve.Line)
		})
	}
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input string
		want  string
	}{
		"project file":   {input: "UNITYLINK_PROJECT_FILE", want: "project_file"},
		"framework name": {input: "UNITYLINK_FRAMEWORK_NAME", want: "framework_name"},
		"unity path":     {input: "UNITYLINK_UNITY_PATH", want: ""},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, envTransform(tc.input))
		})
	}
}

func TestExpandHomePath(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		input    string
		contains string
	}{
		"tilde prefix": {
			input:    "~/unity/builds/ios",
			contains: "unity/builds/ios",
		},
		"absolute path": {
			input:    "/absolute/path",
			contains: "/absolute/path",
		},
		"build variable": {
			input:    DefaultUnityPath,
			contains: "$(PROJECT_DIR)",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := expandHomePath(tc.input)
			assert.Contains(t, result, tc.contains)
		})
	}
}

func TestGetKeySchema(t *testing.T) {
	t.Parallel()

	schema, err := GetKeySchema("unity_path")
	require.NoError(t, err)
	assert.Equal(t, EnvUnityPath, schema.Env)
	assert.Equal(t, DefaultUnityPath, schema.Default)

	_, err = GetKeySchema("nope")
	assert.EqualError(t, err, "unknown configuration key: nope")

	assert.Equal(t, []string{"framework_name", "project_file", "project_root", "unity_path"}, SortedKeys())
	for key, def := range GetDefaults() {
		if s := KnownKeys[key]; s.Default != "" {
			assert.Equal(t, s.Default, def, key)
		}
	}
}

func TestDefaultConfigFile(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultConfigFile, testutil.ConfigFileName)
}
