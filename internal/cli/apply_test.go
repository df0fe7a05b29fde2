// Package cli_test tests the apply command: patching, registration, idempotence and dry runs.
// Related: internal/cli/apply.go
// Tags: cli, apply, dry-run, idempotence, framework
package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expo-unity/unitylink/internal/buildsettings"
	"github.com/expo-unity/unitylink/internal/config"
	"github.com/expo-unity/unitylink/internal/testutil"
	"github.com/expo-unity/unitylink/internal/xcodeproj"
)

const projectRef = "ios/App.xcodeproj/project.pbxproj"

// assertPatched checks every configuration of the project at path against searchPath.
func assertPatched(t *testing.T, path, searchPath string) *xcodeproj.Project {
	t.Helper()
	proj, err := xcodeproj.Load(path)
	require.NoError(t, err)
	configs, err := proj.Configurations()
	require.NoError(t, err)
	require.Len(t, configs, 4)
	for _, c := range configs {
		s, ok := c.Settings()
		require.True(t, ok)
		assert.Empty(t, buildsettings.Plan(s, searchPath), "configuration %s", c.Name())
		assert.Equal(t, searchPath, s.Lookup(buildsettings.KeyFrameworkSearchPaths).Items()[0])
	}
	return proj
}

func TestApply_FrameworkNotBuilt(t *testing.T) {
	root, path := setupProject(t)

	stdout, stderr, code := runCLI(t, "apply", "--root", root)
	require.Equal(t, ExitSuccess, code, stderr)

	assert.Contains(t, stdout, "Unity path: "+config.DefaultUnityPath+" (default)")
	assert.Contains(t, stdout, "ENABLE_BITCODE, CLANG_CXX_LANGUAGE_STANDARD, FRAMEWORK_SEARCH_PATHS")
	assert.Contains(t, stdout, "UnityFramework.framework not built yet")
	assert.Contains(t, stdout, "Updated "+projectRef)

	proj := assertPatched(t, path, config.DefaultUnityPath)
	assert.False(t, proj.HasFramework("unity/builds/ios/UnityFramework.framework"))
}

func TestApply_RegistersBuiltFramework(t *testing.T) {
	root, path := setupProject(t)
	testutil.CreateFramework(t, filepath.Join(root, "ios", "unity", "builds", "ios"), "UnityFramework")

	stdout, stderr, code := runCLI(t, "apply", "--root", root)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Framework: unity/builds/ios/UnityFramework.framework embedded and signed")

	proj := assertPatched(t, path, config.DefaultUnityPath)
	assert.True(t, proj.HasFramework("unity/builds/ios/UnityFramework.framework"))
}

func TestApply_Idempotent(t *testing.T) {
	root, path := setupProject(t)
	testutil.CreateFramework(t, filepath.Join(root, "ios", "unity", "builds", "ios"), "UnityFramework")

	_, _, code := runCLI(t, "apply", "--root", root)
	require.Equal(t, ExitSuccess, code)
	first := testutil.ReadFile(t, path)

	stdout, _, code := runCLI(t, "apply", "--root", root)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, projectRef+" is already configured")
	assert.Contains(t, stdout, "Debug        unchanged")

	assert.Equal(t, first, testutil.ReadFile(t, path))
}

func TestApply_DryRun(t *testing.T) {
	root, path := setupProject(t)
	original := testutil.ReadFile(t, path)

	stdout, _, code := runCLI(t, "apply", "--root", root, "--dry-run")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "Dry run: "+projectRef+" was not written")

	assert.Equal(t, original, testutil.ReadFile(t, path))
}

func TestApply_UnityPathFromEnvironment(t *testing.T) {
	root, path := setupProject(t)
	unityDir := t.TempDir()
	testutil.CreateFramework(t, unityDir, "UnityFramework")
	t.Setenv(config.EnvUnityPath, unityDir)

	stdout, stderr, code := runCLI(t, "apply", "--root", root)
	require.Equal(t, ExitSuccess, code, stderr)
	assert.Contains(t, stdout, "Unity path: "+unityDir+" (environment)")

	proj := assertPatched(t, path, unityDir)
	assert.True(t, proj.HasFramework(filepath.Join(unityDir, "UnityFramework.framework")))
}

func TestApply_UnityPathFlagBeatsEnvironment(t *testing.T) {
	root, path := setupProject(t)
	t.Setenv(config.EnvUnityPath, "/from/env")

	stdout, _, code := runCLI(t, "apply", "--root", root, "--unity-path", "/from/flag")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "(option)")
	assertPatched(t, path, "/from/flag")
}

func TestApply_ProjectSelection(t *testing.T) {
	tests := map[string]struct {
		args   func(root string) []string
		config string
	}{
		"project flag with xcodeproj directory": {
			args: func(root string) []string {
				return []string{"--project", filepath.Join(root, "ios", "App.xcodeproj")}
			},
		},
		"project_file relative to root": {
			config: `{"project_file": "ios/App.xcodeproj/project.pbxproj"}`,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			root := t.TempDir()
			// A second project the discovery order would otherwise pick.
			testutil.WriteXcodeProject(t, root, "Aaa", testutil.SampleProject)
			path := testutil.WriteXcodeProject(t, root, "App", testutil.SampleProject)
			if tc.config != "" {
				testutil.WriteConfig(t, root, tc.config)
			}

			args := []string{"apply", "--root", root}
			if tc.args != nil {
				args = append(args, tc.args(root)...)
			}
			_, stderr, code := runCLI(t, args...)
			require.Equal(t, ExitSuccess, code, stderr)

			assertPatched(t, path, config.DefaultUnityPath)
			untouched := testutil.ReadFile(t, filepath.Join(root, "ios", "Aaa.xcodeproj", xcodeproj.FileName))
			assert.Equal(t, testutil.SampleProject, untouched)
		})
	}
}

func TestApply_CustomFrameworkName(t *testing.T) {
	root, path := setupProject(t)
	testutil.CreateFramework(t, filepath.Join(root, "ios", "unity", "builds", "ios"), "GameFramework")

	stdout, _, code := runCLI(t, "apply", "--root", root, "--framework-name", "GameFramework")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "GameFramework.framework embedded and signed")

	proj, err := xcodeproj.Load(path)
	require.NoError(t, err)
	assert.True(t, proj.HasFramework("unity/builds/ios/GameFramework.framework"))
}
