package tmcore

import (
	"strings"

	"github.com/kaptinlin/jsonpointer"
)

// splitRef separates a ref/href value at its first "#" into a file part and
// a fragment, mirroring the "$ref" splitting idiom the teacher uses before
// walking a JSON Pointer (ref.go's resolveRef/resolveJSONPointer).
func splitRef(s string) (file, fragment string) {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		return s[:i], s[i+1:]
	}
	return s, ""
}

// canonicalRefPath builds the canonical (file, pointer) key the Reporter
// groups cross-file registrations by. It reuses jsonpointer.Parse to walk
// the fragment's segments the same way the teacher resolves a JSON Pointer
// inside a schema, then re-escapes each segment so that two differently
// escaped pointers to the same location (e.g. "a~1b" and a literal "/")
// register under one canonical key.
func canonicalRefPath(file, fragment string) string {
	if fragment == "" {
		return file
	}
	var b strings.Builder
	b.WriteString(file)
	b.WriteByte('#')
	for _, seg := range jsonpointer.Parse(fragment) {
		b.WriteByte('/')
		seg = strings.ReplaceAll(seg, "~", "~0")
		seg = strings.ReplaceAll(seg, "/", "~1")
		b.WriteString(seg)
	}
	return b.String()
}

// generatedName derives the identifier a downstream code generator would
// assign to an affordance or schema definition: the PascalCase rendering of
// its title when present, otherwise of its own key (§4.2 Glossary,
// "Generated Name").
func generatedName(title *Value[string], key string) string {
	if title != nil && title.Val != "" {
		if cn, err := NewCodeName(title.Val); err == nil {
			return cn.Pascal()
		}
	}
	if cn, err := NewCodeName(key); err == nil {
		return cn.Pascal()
	}
	return key
}
