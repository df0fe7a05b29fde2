package buildsettings

import "fmt"

// Settings is a mutable view over one configuration's build settings.
type Settings interface {
	// Lookup returns the parsed value for key, Absent when unset.
	Lookup(key string) Value
	// Set stores v under key. Setting an Absent value removes the key.
	Set(key string, v Value)
}

// storedForm is implemented by Settings whose serialized form can differ
// between equal values.
type storedForm interface {
	// Stores reports whether key is stored exactly as v would be written.
	Stores(key string, v Value) bool
}

// Configuration is a named build configuration owned by a host document.
type Configuration interface {
	Name() string
	// Settings returns the configuration's settings, or false when the
	// entry has no usable settings mapping.
	Settings() (Settings, bool)
}

// RawSettings stores values in quoted-text form, e.g.
// FRAMEWORK_SEARCH_PATHS = `("$(inherited)", "/a/b")`.
type RawSettings map[string]string

// Lookup implements Settings.
func (s RawSettings) Lookup(key string) Value {
	return ParseRaw(s[key])
}

// Set implements Settings.
func (s RawSettings) Set(key string, v Value) {
	if v.IsAbsent() {
		delete(s, key)
		return
	}
	s[key] = v.Raw()
}

// Stores reports whether key already holds v.Raw() verbatim.
func (s RawSettings) Stores(key string, v Value) bool {
	return s[key] == v.Raw()
}

// PlistSettings stores values as decoded from a property list: strings and
// []interface{} of strings. It aliases the dictionary it was built from, so
// Set mutates the host document in place.
type PlistSettings map[string]interface{}

// Lookup implements Settings.
func (s PlistSettings) Lookup(key string) Value {
	return FromPlist(s[key])
}

// Set implements Settings.
func (s PlistSettings) Set(key string, v Value) {
	if v.IsAbsent() {
		delete(s, key)
		return
	}
	s[key] = v.Plist()
}

// FromPlist converts a decoded property list value into a Value.
// nil and "" are Absent.
func FromPlist(raw interface{}) Value {
	switch t := raw.(type) {
	case nil:
		return AbsentValue()
	case string:
		if t == "" {
			return AbsentValue()
		}
		return ScalarValue(t)
	case []string:
		return ListValue(t...)
	case []interface{}:
		items := make([]string, 0, len(t))
		for _, item := range t {
			if str, ok := item.(string); ok {
				items = append(items, str)
				continue
			}
			items = append(items, fmt.Sprint(item))
		}
		return ListValue(items...)
	default:
		return ScalarValue(fmt.Sprint(t))
	}
}

// Plist returns the value in property list form: nil, a string, or
// []interface{} of strings.
func (v Value) Plist() interface{} {
	switch v.kind {
	case Scalar:
		return v.scalar
	case List:
		out := make([]interface{}, len(v.items))
		for i, item := range v.items {
			out[i] = item
		}
		return out
	default:
		return nil
	}
}
