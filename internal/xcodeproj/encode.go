package xcodeproj

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// inlineISAs are written on a single line, as Xcode does.
var inlineISAs = map[string]bool{
	"PBXBuildFile":     true,
	"PBXFileReference": true,
}

// unannotatedKeys hold values that are never written with an object
// comment, even when they happen to equal an object id.
var unannotatedKeys = map[string]bool{
	"buildSettings":        true,
	"remoteGlobalIDString": true,
}

// encoder writes the old-style ASCII property list layout Xcode uses for
// project.pbxproj: tab indentation, "key = value;" pairs, isa first in
// every dictionary and the remaining keys sorted. Object ids found in
// comments are followed by their /* comment */, and the objects
// dictionary is split into one section per isa.
type encoder struct {
	buf      bytes.Buffer
	comments map[string]string
}

func newEncoder(comments map[string]string) *encoder {
	return &encoder{comments: comments}
}

func (e *encoder) value(v interface{}, depth int, annotate bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		e.dict(t, depth, annotate)
	case []interface{}:
		e.array(t, depth, annotate)
	case []string:
		e.array(toInterfaces(t), depth, annotate)
	default:
		e.scalar(v, annotate)
	}
}

func (e *encoder) scalar(v interface{}, annotate bool) {
	switch t := v.(type) {
	case string:
		e.buf.WriteString(quoteString(t))
		if annotate {
			e.comment(t)
		}
	case []byte:
		fmt.Fprintf(&e.buf, "<%x>", t)
	case nil:
		e.buf.WriteString(`""`)
	default:
		e.buf.WriteString(quoteString(fmt.Sprint(t)))
	}
}

// comment writes " /* ... */" when id names an object with a comment.
func (e *encoder) comment(id string) {
	if c := e.comments[id]; c != "" {
		e.buf.WriteString(" /* ")
		e.buf.WriteString(c)
		e.buf.WriteString(" */")
	}
}

func (e *encoder) dict(m map[string]interface{}, depth int, annotate bool) {
	e.buf.WriteString("{\n")
	for _, k := range dictKeys(m) {
		indent(&e.buf, depth+1)
		e.buf.WriteString(quoteString(k))
		e.buf.WriteString(" = ")
		if objs, ok := m[k].(map[string]interface{}); ok && depth == 0 && k == "objects" {
			e.objects(objs, depth+1)
		} else {
			e.value(m[k], depth+1, annotate && !unannotatedKeys[k])
		}
		e.buf.WriteString(";\n")
	}
	indent(&e.buf, depth)
	e.buf.WriteByte('}')
}

func (e *encoder) array(items []interface{}, depth int, annotate bool) {
	e.buf.WriteString("(\n")
	for _, item := range items {
		indent(&e.buf, depth+1)
		e.value(item, depth+1, annotate)
		e.buf.WriteString(",\n")
	}
	indent(&e.buf, depth)
	e.buf.WriteByte(')')
}

// inline writes v on a single line: {a = b; c = (d, e, ); }.
func (e *encoder) inline(v interface{}, annotate bool) {
	switch t := v.(type) {
	case map[string]interface{}:
		e.buf.WriteByte('{')
		for _, k := range dictKeys(t) {
			e.buf.WriteString(quoteString(k))
			e.buf.WriteString(" = ")
			e.inline(t[k], annotate && !unannotatedKeys[k])
			e.buf.WriteString("; ")
		}
		e.buf.WriteByte('}')
	case []interface{}:
		e.buf.WriteByte('(')
		for _, item := range t {
			e.inline(item, annotate)
			e.buf.WriteString(", ")
		}
		e.buf.WriteByte(')')
	case []string:
		e.inline(toInterfaces(t), annotate)
	default:
		e.scalar(v, annotate)
	}
}

// objects writes the objects dictionary grouped into
// "/* Begin <isa> section */" blocks, sections and ids in sorted order.
func (e *encoder) objects(objs map[string]interface{}, depth int) {
	sections := make(map[string][]string)
	for id, raw := range objs {
		isa := ""
		if obj, ok := raw.(map[string]interface{}); ok {
			isa, _ = obj["isa"].(string)
		}
		sections[isa] = append(sections[isa], id)
	}
	isas := make([]string, 0, len(sections))
	for isa := range sections {
		isas = append(isas, isa)
	}
	sort.Strings(isas)

	e.buf.WriteString("{\n")
	for _, isa := range isas {
		ids := sections[isa]
		sort.Strings(ids)
		if isa != "" {
			fmt.Fprintf(&e.buf, "\n/* Begin %s section */\n", isa)
		}
		for _, id := range ids {
			indent(&e.buf, depth+1)
			e.buf.WriteString(quoteString(id))
			e.comment(id)
			e.buf.WriteString(" = ")
			if inlineISAs[isa] {
				e.inline(objs[id], true)
			} else {
				e.value(objs[id], depth+1, true)
			}
			e.buf.WriteString(";\n")
		}
		if isa != "" {
			fmt.Fprintf(&e.buf, "/* End %s section */\n", isa)
		}
	}
	indent(&e.buf, depth)
	e.buf.WriteByte('}')
}

func toInterfaces(items []string) []interface{} {
	out := make([]interface{}, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}

// dictKeys returns the keys of m sorted, with isa first.
func dictKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == "isa" || keys[j] == "isa" {
			return keys[i] == "isa"
		}
		return keys[i] < keys[j]
	})
	return keys
}

func indent(buf *bytes.Buffer, depth int) {
	for range depth {
		buf.WriteByte('\t')
	}
}

// quoteString leaves s bare only when every character is one Xcode itself
// writes unquoted; '+' and '-' are always quoted.
func quoteString(s string) string {
	if s != "" && !strings.ContainsFunc(s, needsQuoting) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteRune(r)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func needsQuoting(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '_' || r == '$' || r == '/' || r == ':' || r == '.':
		return false
	default:
		return true
	}
}
