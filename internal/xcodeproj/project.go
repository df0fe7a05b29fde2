// Package xcodeproj loads, edits and saves Xcode project.pbxproj files.
// It is the concrete host document for the transform: it enumerates
// XCBuildConfiguration objects and registers framework bundles on the
// application target.
//
// The file is decoded into a generic object graph (maps, slices and
// strings) so that every key the package does not touch survives a
// load/save cycle.
package xcodeproj

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"howett.net/plist"

	"github.com/expo-unity/unitylink/internal/buildsettings"
)

// FileName is the project file inside an .xcodeproj bundle.
const FileName = "project.pbxproj"

// header is the encoding marker Xcode writes on the first line.
const header = "// !$*UTF8*$!\n"

var (
	// ErrNoObjects indicates the document has no objects dictionary.
	ErrNoObjects = errors.New("project has no objects")
	// ErrNoRootObject indicates rootObject is missing or dangling.
	ErrNoRootObject = errors.New("project has no root object")
	// ErrNoAppTarget indicates no native target could receive the framework.
	ErrNoAppTarget = errors.New("project has no application target")
)

// Project is a decoded project.pbxproj.
type Project struct {
	path string
	data map[string]interface{}
}

// Load reads and decodes the project file at path.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading project file %s: %w", path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing project file %s: %w", path, err)
	}
	p.path = path
	return p, nil
}

// Parse decodes project.pbxproj content. The result has no path; use
// SaveAs to persist it.
func Parse(data []byte) (*Project, error) {
	p := &Project{data: make(map[string]interface{})}
	if _, err := plist.Unmarshal(data, &p.data); err != nil {
		return nil, err
	}
	if _, err := p.objects(); err != nil {
		return nil, err
	}
	return p, nil
}

// Path returns the file the project was loaded from.
func (p *Project) Path() string {
	return p.path
}

// Dir returns the directory containing the .xcodeproj bundle, which is
// what Xcode calls PROJECT_DIR.
func (p *Project) Dir() string {
	if p.path == "" {
		return ""
	}
	return filepath.Dir(filepath.Dir(p.path))
}

// Bytes encodes the project in Xcode's layout with the header line,
// object sections and the /* ... */ comments Xcode writes after ids.
func (p *Project) Bytes() ([]byte, error) {
	e := newEncoder(p.annotations())
	e.buf.WriteString(header)
	e.value(p.data, 0, true)
	e.buf.WriteByte('\n')
	return e.buf.Bytes(), nil
}

// Save writes the project back to the file it was loaded from.
func (p *Project) Save() error {
	if p.path == "" {
		return errors.New("project has no path; use SaveAs")
	}
	return p.SaveAs(p.path)
}

// SaveAs writes the project to path using an atomic write and records
// path as the project's location.
func (p *Project) SaveAs(path string) error {
	data, err := p.Bytes()
	if err != nil {
		return err
	}
	if err := atomicWrite(path, data); err != nil {
		return err
	}
	p.path = path
	return nil
}

// objects returns the objects dictionary.
func (p *Project) objects() (map[string]interface{}, error) {
	objs, ok := p.data["objects"].(map[string]interface{})
	if !ok {
		return nil, ErrNoObjects
	}
	return objs, nil
}

// object returns the object with the given id, or nil.
func (p *Project) object(id string) map[string]interface{} {
	objs, err := p.objects()
	if err != nil {
		return nil
	}
	obj, _ := objs[id].(map[string]interface{})
	return obj
}

// idsOfType returns the sorted ids of all objects whose isa is isa.
func (p *Project) idsOfType(isa string) []string {
	objs, err := p.objects()
	if err != nil {
		return nil
	}
	var ids []string
	for id, raw := range objs {
		obj, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		if s, _ := obj["isa"].(string); s == isa {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// Configuration is one XCBuildConfiguration object.
type Configuration struct {
	id  string
	obj map[string]interface{}
}

// ID returns the object id.
func (c *Configuration) ID() string {
	return c.id
}

// Name returns the configuration name, e.g. Debug.
func (c *Configuration) Name() string {
	name, _ := c.obj["name"].(string)
	return name
}

// Settings returns a view over buildSettings that edits the document in
// place, or false when buildSettings is missing or not a dictionary.
func (c *Configuration) Settings() (buildsettings.Settings, bool) {
	bs, ok := c.obj["buildSettings"].(map[string]interface{})
	if !ok {
		return nil, false
	}
	return buildsettings.PlistSettings(bs), true
}

// BuildConfigurations returns every XCBuildConfiguration in id order.
func (p *Project) BuildConfigurations() ([]*Configuration, error) {
	if _, err := p.objects(); err != nil {
		return nil, err
	}
	ids := p.idsOfType("XCBuildConfiguration")
	configs := make([]*Configuration, 0, len(ids))
	for _, id := range ids {
		configs = append(configs, &Configuration{id: id, obj: p.object(id)})
	}
	return configs, nil
}

// Configurations implements transform.Document.
func (p *Project) Configurations() ([]buildsettings.Configuration, error) {
	configs, err := p.BuildConfigurations()
	if err != nil {
		return nil, err
	}
	out := make([]buildsettings.Configuration, len(configs))
	for i, c := range configs {
		out[i] = c
	}
	return out, nil
}

// atomicWrite writes data to a file atomically using temp file + rename.
func atomicWrite(filePath string, data []byte) error {
	dir := filepath.Dir(filePath)
	tmpFile, err := os.CreateTemp(dir, ".pbxproj-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on any error
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	mode := os.FileMode(0644)
	if info, err := os.Stat(filePath); err == nil {
		mode = info.Mode().Perm()
	}
	if err := tmpFile.Chmod(mode); err != nil {
		tmpFile.Close()
		return fmt.Errorf("setting temp file mode: %w", err)
	}

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmpPath, filePath); err != nil {
		return fmt.Errorf("renaming temp file to %s: %w", filePath, err)
	}

	tmpPath = ""
	return nil
}
