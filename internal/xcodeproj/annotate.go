package xcodeproj

import (
	"fmt"
	"path/filepath"
	"strings"
)

// defaultPhaseNames are the names Xcode shows for unnamed build phases.
var defaultPhaseNames = map[string]string{
	"PBXSourcesBuildPhase":     "Sources",
	"PBXFrameworksBuildPhase":  "Frameworks",
	"PBXResourcesBuildPhase":   "Resources",
	"PBXHeadersBuildPhase":     "Headers",
	"PBXCopyFilesBuildPhase":   "CopyFiles",
	"PBXShellScriptBuildPhase": "ShellScript",
	"PBXRezBuildPhase":         "Rez",
}

// annotations returns the comment Xcode writes after each object id,
// keyed by id. Objects without a meaningful label are left out.
func (p *Project) annotations() map[string]string {
	objs, err := p.objects()
	if err != nil {
		return nil
	}

	phaseOf := make(map[string]map[string]interface{})
	listOwner := make(map[string]map[string]interface{})
	for _, raw := range objs {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if isa, _ := obj["isa"].(string); strings.HasSuffix(isa, "BuildPhase") {
			for _, id := range stringSlice(obj["files"]) {
				phaseOf[id] = obj
			}
		}
		if list, ok := obj["buildConfigurationList"].(string); ok {
			listOwner[list] = obj
		}
	}

	comments := make(map[string]string, len(objs))
	for id, raw := range objs {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		var c string
		switch isa, _ := obj["isa"].(string); {
		case isa == "PBXProject":
			c = "Project object"
		case isa == "PBXBuildFile":
			c = p.buildFileLabel(obj, phaseOf[id])
		case isa == "XCConfigurationList":
			if owner := listOwner[id]; owner != nil {
				c = fmt.Sprintf("Build configuration list for %s %q", owner["isa"], p.ownerName(owner))
			}
		case strings.HasSuffix(isa, "BuildPhase"):
			c = phaseName(obj)
		case isa == "PBXContainerItemProxy", isa == "PBXTargetDependency":
			c = isa
		case isa == "XCSwiftPackageProductDependency":
			c, _ = obj["productName"].(string)
		default:
			c = label(obj)
		}
		if c != "" {
			comments[id] = c
		}
	}
	return comments
}

// buildFileLabel is "<file> in <phase>", e.g. "AppDelegate.mm in Sources".
func (p *Project) buildFileLabel(buildFile, phase map[string]interface{}) string {
	var name string
	if ref, ok := buildFile["fileRef"].(string); ok {
		name = label(p.object(ref))
	} else if ref, ok := buildFile["productRef"].(string); ok {
		name, _ = p.object(ref)["productName"].(string)
	}
	if name == "" || phase == nil {
		return name
	}
	return name + " in " + phaseName(phase)
}

// ownerName names the target or project that owns a configuration list.
// The project is named after its .xcodeproj bundle, or after its first
// target when the project was parsed from memory.
func (p *Project) ownerName(owner map[string]interface{}) string {
	if owner["isa"] != "PBXProject" {
		name, _ := owner["name"].(string)
		return name
	}
	if bundle := filepath.Base(filepath.Dir(p.path)); p.path != "" && strings.HasSuffix(bundle, ".xcodeproj") {
		return strings.TrimSuffix(bundle, ".xcodeproj")
	}
	for _, id := range stringSlice(owner["targets"]) {
		if name, ok := p.object(id)["name"].(string); ok {
			return name
		}
	}
	return ""
}

func phaseName(phase map[string]interface{}) string {
	if name, ok := phase["name"].(string); ok && name != "" {
		return name
	}
	isa, _ := phase["isa"].(string)
	return defaultPhaseNames[isa]
}

// label is an object's name, or its path when it has none.
func label(obj map[string]interface{}) string {
	if name, ok := obj["name"].(string); ok && name != "" {
		return name
	}
	path, _ := obj["path"].(string)
	return path
}
