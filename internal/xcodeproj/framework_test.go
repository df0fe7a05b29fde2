// Package xcodeproj_test tests framework registration on the application target.
// Related: internal/xcodeproj/framework.go
// Tags: xcodeproj, framework, embed, code-sign, idempotence
package xcodeproj

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/expo-unity/unitylink/internal/framework"
	"github.com/expo-unity/unitylink/internal/testutil"
)

const unityRef = "unity/builds/ios/UnityFramework.framework"

// phasesOf returns the build phase objects of the sample app target by isa.
func phasesOf(t *testing.T, p *Project, isa string) []map[string]interface{} {
	t.Helper()
	target := p.object(testutil.SampleAppTargetID)
	require.NotNil(t, target)

	var out []map[string]interface{}
	for _, id := range stringSlice(target["buildPhases"]) {
		if phase := p.object(id); phase["isa"] == isa {
			out = append(out, phase)
		}
	}
	return out
}

func TestRegisterFramework(t *testing.T) {
	t.Parallel()

	p := parseSample(t)
	require.False(t, p.HasFramework(unityRef))

	require.NoError(t, p.RegisterFramework(unityRef, framework.EmbeddedAttributes()))

	fileRef := p.findFileReference(unityRef)
	require.NotEmpty(t, fileRef)
	ref := p.object(fileRef)
	assert.Equal(t, "wrapper.framework", ref["lastKnownFileType"])
	assert.Equal(t, "UnityFramework.framework", ref["name"])
	assert.Equal(t, "SOURCE_ROOT", ref["sourceTree"])

	link := phasesOf(t, p, "PBXFrameworksBuildPhase")
	require.Len(t, link, 1)
	assert.NotNil(t, p.buildFile(link[0], fileRef))

	embed := phasesOf(t, p, "PBXCopyFilesBuildPhase")
	require.Len(t, embed, 1)
	assert.Equal(t, "10", embed[0]["dstSubfolderSpec"])
	assert.Equal(t, "Embed Frameworks", embed[0]["name"])
	files := stringSlice(embed[0]["files"])
	require.Len(t, files, 1)
	buildFile := p.object(files[0])
	settings, ok := buildFile["settings"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"CodeSignOnCopy", "RemoveHeadersOnCopy"}, settings["ATTRIBUTES"])

	group := p.object(testutil.SampleFrameworksGroup)
	assert.Contains(t, stringSlice(group["children"]), fileRef)

	assert.True(t, p.HasFramework(unityRef))
}

func TestRegisterFramework_Idempotent(t *testing.T) {
	t.Parallel()

	p := parseSample(t)
	require.NoError(t, p.RegisterFramework(unityRef, framework.EmbeddedAttributes()))
	objs, err := p.objects()
	require.NoError(t, err)
	count := len(objs)
	first, err := p.Bytes()
	require.NoError(t, err)

	require.NoError(t, p.RegisterFramework(unityRef, framework.EmbeddedAttributes()))

	assert.Len(t, objs, count)
	second, err := p.Bytes()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRegisterFramework_Attributes(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		path           string
		attrs          framework.Attributes
		wantSourceTree string
		wantEmbed      bool
		wantAttributes []interface{}
	}{
		"absolute custom": {
			path:           "/opt/unity/UnityFramework.framework",
			attrs:          framework.EmbeddedAttributes(),
			wantSourceTree: "<absolute>",
			wantEmbed:      true,
			wantAttributes: []interface{}{"CodeSignOnCopy", "RemoveHeadersOnCopy"},
		},
		"embed without signing": {
			path:           unityRef,
			attrs:          framework.Attributes{Custom: true, Embed: true},
			wantSourceTree: "SOURCE_ROOT",
			wantEmbed:      true,
			wantAttributes: []interface{}{"RemoveHeadersOnCopy"},
		},
		"link only first-party": {
			path:           "UnityFramework.framework",
			attrs:          framework.Attributes{},
			wantSourceTree: "BUILT_PRODUCTS_DIR",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p := parseSample(t)
			require.NoError(t, p.RegisterFramework(tc.path, tc.attrs))

			ref := p.object(p.findFileReference(tc.path))
			assert.Equal(t, tc.wantSourceTree, ref["sourceTree"])

			embed := phasesOf(t, p, "PBXCopyFilesBuildPhase")
			if !tc.wantEmbed {
				assert.Empty(t, embed)
				return
			}
			require.Len(t, embed, 1)
			bf := p.object(stringSlice(embed[0]["files"])[0])
			settings := bf["settings"].(map[string]interface{})
			assert.Equal(t, tc.wantAttributes, settings["ATTRIBUTES"])
		})
	}
}

func TestRegisterFramework_SignsExistingEmbed(t *testing.T) {
	t.Parallel()

	p := parseSample(t)
	require.NoError(t, p.RegisterFramework(unityRef, framework.Attributes{Custom: true, Embed: true}))
	assert.False(t, p.HasFramework(unityRef), "an unsigned embed does not count as registered")

	embed := phasesOf(t, p, "PBXCopyFilesBuildPhase")
	require.Len(t, embed, 1)
	bf := p.object(stringSlice(embed[0]["files"])[0])
	bf["settings"].(map[string]interface{})["COMPILER_FLAGS"] = "-w"

	require.NoError(t, p.RegisterFramework(unityRef, framework.EmbeddedAttributes()))

	files := stringSlice(embed[0]["files"])
	require.Len(t, files, 1, "the existing build file is reused")
	settings := p.object(files[0])["settings"].(map[string]interface{})
	assert.Equal(t, []interface{}{"CodeSignOnCopy", "RemoveHeadersOnCopy"}, settings["ATTRIBUTES"])
	assert.Equal(t, "-w", settings["COMPILER_FLAGS"])
	assert.True(t, p.HasFramework(unityRef))
}

func TestRegisterFramework_SignsEmbedWithoutSettings(t *testing.T) {
	t.Parallel()

	p := parseSample(t)
	require.NoError(t, p.RegisterFramework(unityRef, framework.EmbeddedAttributes()))
	embed := phasesOf(t, p, "PBXCopyFilesBuildPhase")
	require.Len(t, embed, 1)
	bf := p.object(stringSlice(embed[0]["files"])[0])
	delete(bf, "settings")
	require.False(t, p.HasFramework(unityRef))

	require.NoError(t, p.RegisterFramework(unityRef, framework.EmbeddedAttributes()))

	assert.Equal(t, []string{"CodeSignOnCopy", "RemoveHeadersOnCopy"}, attributesOf(bf))
	assert.True(t, p.HasFramework(unityRef))
}

func TestRegisterFramework_SurvivesSave(t *testing.T) {
	t.Parallel()

	path := testutil.WriteXcodeProject(t, t.TempDir(), "App", testutil.SampleProject)
	p, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, p.RegisterFramework(unityRef, framework.EmbeddedAttributes()))
	require.NoError(t, p.Save())

	reloaded, err := Load(path)
	require.NoError(t, err)
	assert.True(t, reloaded.HasFramework(unityRef))
}

func TestRegisterFramework_Errors(t *testing.T) {
	t.Parallel()

	t.Run("dangling root object", func(t *testing.T) {
		t.Parallel()
		p := parseSample(t)
		p.data["rootObject"] = "DOESNOTEXIST"
		err := p.RegisterFramework(unityRef, framework.EmbeddedAttributes())
		assert.ErrorIs(t, err, ErrNoRootObject)
	})

	t.Run("no targets", func(t *testing.T) {
		t.Parallel()
		p := parseSample(t)
		root := p.object(p.data["rootObject"].(string))
		root["targets"] = []interface{}{}
		err := p.RegisterFramework(unityRef, framework.EmbeddedAttributes())
		assert.ErrorIs(t, err, ErrNoAppTarget)
	})
}
