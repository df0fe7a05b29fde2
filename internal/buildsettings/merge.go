package buildsettings

// Inherited is the Xcode token that pulls in the value from the enclosing level.
const Inherited = "$(inherited)"

// MergeSearchPath adds path to the front of a search path setting.
// The second result is false when the value already holds path as an entry
// and is returned unchanged.
//
//	Absent          -> (path, $(inherited))
//	Scalar s        -> (path, s)
//	List (a, b, ..) -> (path, a, b, ..)
func MergeSearchPath(v Value, path string) (Value, bool) {
	if v.Contains(path) {
		return v, false
	}
	if v.IsAbsent() {
		return ListValue(path, Inherited), true
	}
	return v.Prepend(path), true
}
