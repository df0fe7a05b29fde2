package xcodeproj

import (
	"fmt"
	"path"
	"slices"

	"github.com/expo-unity/unitylink/internal/framework"
)

// dstSubfolderSpec 10 is the Frameworks folder of the product bundle.
const (
	productTypeApplication = "com.apple.product-type.application"
	embedPhaseName         = "Embed Frameworks"
	dstSubfolderFrameworks = "10"
	buildActionMaskAll     = "2147483647"

	attrCodeSignOnCopy      = "CodeSignOnCopy"
	attrRemoveHeadersOnCopy = "RemoveHeadersOnCopy"
)

// RegisterFramework links the framework at path into the application
// target and, when attrs.Embed is set, copies it into the bundle. Calling it
// again for the same path only fills in whatever is missing.
func (p *Project) RegisterFramework(frameworkPath string, attrs framework.Attributes) error {
	target, err := p.appTarget()
	if err != nil {
		return err
	}

	fileRef := p.ensureFileReference(frameworkPath, attrs)

	linkPhase := p.ensurePhase(target, "PBXFrameworksBuildPhase", func(map[string]interface{}) bool {
		return true
	}, func() map[string]interface{} {
		return map[string]interface{}{
			"isa":                                "PBXFrameworksBuildPhase",
			"buildActionMask":                    buildActionMaskAll,
			"files":                              []interface{}{},
			"runOnlyForDeploymentPostprocessing": "0",
		}
	})
	p.ensureBuildFile(linkPhase, fileRef, nil)

	if attrs.Embed {
		embedPhase := p.ensurePhase(target, "PBXCopyFilesBuildPhase", func(phase map[string]interface{}) bool {
			spec, _ := phase["dstSubfolderSpec"].(string)
			return spec == dstSubfolderFrameworks
		}, func() map[string]interface{} {
			return map[string]interface{}{
				"isa":                                "PBXCopyFilesBuildPhase",
				"buildActionMask":                    buildActionMaskAll,
				"dstPath":                            "",
				"dstSubfolderSpec":                   dstSubfolderFrameworks,
				"files":                              []interface{}{},
				"name":                               embedPhaseName,
				"runOnlyForDeploymentPostprocessing": "0",
			}
		})
		p.ensureBuildFile(embedPhase, fileRef, embedSettings(attrs))
	}

	p.ensureInGroup(fileRef)
	return nil
}

// HasFramework reports whether the framework at path is both linked into
// and embedded in the application target, with code signing on copy.
func (p *Project) HasFramework(frameworkPath string) bool {
	fileRef := p.findFileReference(frameworkPath)
	if fileRef == "" {
		return false
	}
	target, err := p.appTarget()
	if err != nil {
		return false
	}

	linked, embedded := false, false
	for _, phaseID := range stringSlice(target["buildPhases"]) {
		phase := p.object(phaseID)
		if phase == nil {
			continue
		}
		bf := p.buildFile(phase, fileRef)
		if bf == nil {
			continue
		}
		switch phase["isa"] {
		case "PBXFrameworksBuildPhase":
			linked = true
		case "PBXCopyFilesBuildPhase":
			embedded = embedded || slices.Contains(attributesOf(bf), attrCodeSignOnCopy)
		}
	}
	return linked && embedded
}

// appTarget returns the first application target of the root project, or
// the first native target when none is an application.
func (p *Project) appTarget() (map[string]interface{}, error) {
	objs, err := p.objects()
	if err != nil {
		return nil, err
	}
	rootID, _ := p.data["rootObject"].(string)
	root, _ := objs[rootID].(map[string]interface{})
	if root == nil {
		return nil, ErrNoRootObject
	}

	var fallback map[string]interface{}
	for _, id := range stringSlice(root["targets"]) {
		target := p.object(id)
		if target == nil || target["isa"] != "PBXNativeTarget" {
			continue
		}
		if target["productType"] == productTypeApplication {
			return target, nil
		}
		if fallback == nil {
			fallback = target
		}
	}
	if fallback == nil {
		return nil, ErrNoAppTarget
	}
	return fallback, nil
}

// findFileReference returns the id of the PBXFileReference whose path is
// frameworkPath, or "".
func (p *Project) findFileReference(frameworkPath string) string {
	for _, id := range p.idsOfType("PBXFileReference") {
		if ref := p.object(id); ref["path"] == frameworkPath {
			return id
		}
	}
	return ""
}

func (p *Project) ensureFileReference(frameworkPath string, attrs framework.Attributes) string {
	if id := p.findFileReference(frameworkPath); id != "" {
		return id
	}

	id := p.newID("PBXFileReference", frameworkPath)
	p.addObject(id, map[string]interface{}{
		"isa":               "PBXFileReference",
		"lastKnownFileType": "wrapper.framework",
		"name":              path.Base(frameworkPath),
		"path":              frameworkPath,
		"sourceTree":        sourceTree(frameworkPath, attrs),
	})
	return id
}

// sourceTree picks how Xcode resolves the reference. Frameworks built by a
// target of the project live in BUILT_PRODUCTS_DIR; external ones are either
// absolute or relative to the project directory.
func sourceTree(frameworkPath string, attrs framework.Attributes) string {
	switch {
	case !attrs.Custom:
		return "BUILT_PRODUCTS_DIR"
	case path.IsAbs(frameworkPath):
		return "<absolute>"
	default:
		return "SOURCE_ROOT"
	}
}

func embedSettings(attrs framework.Attributes) map[string]interface{} {
	var attributes []interface{}
	if attrs.Sign {
		attributes = append(attributes, attrCodeSignOnCopy)
	}
	attributes = append(attributes, attrRemoveHeadersOnCopy)
	return map[string]interface{}{"ATTRIBUTES": attributes}
}

// attributesOf returns the ATTRIBUTES of a build file's settings.
func attributesOf(buildFile map[string]interface{}) []string {
	settings, _ := buildFile["settings"].(map[string]interface{})
	return stringSlice(settings["ATTRIBUTES"])
}

// mergeSettings adds the ATTRIBUTES of want that buildFile lacks. Existing
// entries and other settings are kept.
func mergeSettings(buildFile, want map[string]interface{}) {
	have := attributesOf(buildFile)
	merged := slices.Clone(have)
	for _, attr := range stringSlice(want["ATTRIBUTES"]) {
		if !slices.Contains(merged, attr) {
			merged = append(merged, attr)
		}
	}
	if len(merged) == len(have) {
		return
	}
	slices.Sort(merged)

	settings, ok := buildFile["settings"].(map[string]interface{})
	if !ok {
		settings = make(map[string]interface{})
		buildFile["settings"] = settings
	}
	attributes := make([]interface{}, len(merged))
	for i, attr := range merged {
		attributes[i] = attr
	}
	settings["ATTRIBUTES"] = attributes
}

// ensurePhase returns the first build phase of target with the given isa
// that satisfies match, creating and appending one when there is none.
func (p *Project) ensurePhase(target map[string]interface{}, isa string, match func(map[string]interface{}) bool, create func() map[string]interface{}) map[string]interface{} {
	phases := stringSlice(target["buildPhases"])
	for _, id := range phases {
		phase := p.object(id)
		if phase != nil && phase["isa"] == isa && match(phase) {
			return phase
		}
	}

	phase := create()
	id := p.newID(isa, fmt.Sprint(target["name"]))
	p.addObject(id, phase)
	target["buildPhases"] = appendID(target["buildPhases"], id)
	return phase
}

// buildFile returns the PBXBuildFile of phase that references fileRef.
func (p *Project) buildFile(phase map[string]interface{}, fileRef string) map[string]interface{} {
	for _, id := range stringSlice(phase["files"]) {
		if bf := p.object(id); bf != nil && bf["fileRef"] == fileRef {
			return bf
		}
	}
	return nil
}

// ensureBuildFile adds a PBXBuildFile for fileRef to phase. An existing one
// gets whatever ATTRIBUTES of settings it is missing.
func (p *Project) ensureBuildFile(phase map[string]interface{}, fileRef string, settings map[string]interface{}) {
	if bf := p.buildFile(phase, fileRef); bf != nil {
		if settings != nil {
			mergeSettings(bf, settings)
		}
		return
	}

	buildFile := map[string]interface{}{
		"isa":     "PBXBuildFile",
		"fileRef": fileRef,
	}
	if settings != nil {
		buildFile["settings"] = settings
	}
	id := p.newID("PBXBuildFile", fileRef+fmt.Sprint(phase["isa"]))
	p.addObject(id, buildFile)
	phase["files"] = appendID(phase["files"], id)
}

// ensureInGroup adds fileRef to the Frameworks group, or to the main group
// when the project has none.
func (p *Project) ensureInGroup(fileRef string) {
	root := p.object(fmt.Sprint(p.data["rootObject"]))
	if root == nil {
		return
	}
	mainGroupID, _ := root["mainGroup"].(string)
	mainGroup := p.object(mainGroupID)
	if mainGroup == nil {
		return
	}

	group := mainGroup
	for _, id := range stringSlice(mainGroup["children"]) {
		child := p.object(id)
		if child != nil && child["isa"] == "PBXGroup" && (child["name"] == "Frameworks" || child["path"] == "Frameworks") {
			group = child
			break
		}
	}

	if slices.Contains(stringSlice(group["children"]), fileRef) {
		return
	}
	group["children"] = appendID(group["children"], fileRef)
}

func (p *Project) addObject(id string, obj map[string]interface{}) {
	objs, err := p.objects()
	if err != nil {
		return
	}
	objs[id] = obj
}

// stringSlice converts a decoded array to its string elements.
func stringSlice(v interface{}) []string {
	raw, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func appendID(list interface{}, id string) []interface{} {
	raw, _ := list.([]interface{})
	return append(raw, id)
}
