package buildsettings

import "slices"

// Kind discriminates the shape of a Value.
type Kind int

const (
	// Absent indicates the setting is not present.
	Absent Kind = iota
	// Scalar indicates a single string value.
	Scalar
	// List indicates an ordered list of strings.
	List
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case Absent:
		return "absent"
	case Scalar:
		return "scalar"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// Value is a build setting value. The zero Value is Absent.
type Value struct {
	kind   Kind
	scalar string
	items  []string
}

// AbsentValue returns a Value representing an unset key.
func AbsentValue() Value {
	return Value{}
}

// ScalarValue returns a single-string Value.
func ScalarValue(s string) Value {
	return Value{kind: Scalar, scalar: s}
}

// ListValue returns a list Value holding a copy of items.
func ListValue(items ...string) Value {
	return Value{kind: List, items: slices.Clone(items)}
}

// Kind returns the shape of the value.
func (v Value) Kind() Kind {
	return v.kind
}

// IsAbsent reports whether the value is unset.
func (v Value) IsAbsent() bool {
	return v.kind == Absent
}

// Scalar returns the string of a Scalar value and "" otherwise.
func (v Value) Scalar() string {
	return v.scalar
}

// Items returns the entries of the value: a copy of the list for List,
// a single entry for Scalar, nil for Absent.
func (v Value) Items() []string {
	switch v.kind {
	case Scalar:
		return []string{v.scalar}
	case List:
		return slices.Clone(v.items)
	default:
		return nil
	}
}

// Contains reports whether entry is one of the value's entries.
// Matching is on whole entries, never on substrings.
func (v Value) Contains(entry string) bool {
	switch v.kind {
	case Scalar:
		return v.scalar == entry
	case List:
		return slices.Contains(v.items, entry)
	default:
		return false
	}
}

// Equal reports whether two values have the same shape and entries.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case Scalar:
		return v.scalar == o.scalar
	case List:
		return slices.Equal(v.items, o.items)
	default:
		return true
	}
}

// Prepend returns a List value with entry followed by the existing entries.
func (v Value) Prepend(entry string) Value {
	return ListValue(append([]string{entry}, v.Items()...)...)
}
