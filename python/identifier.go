package python

import (
	"sort"
	"strings"
	"unicode"
)

// defaultRenames maps wire names that collide with Python builtins or
// keywords to a suffixed safe form. The table is data, not code: callers
// may replace it wholesale (see NewSanitizer) to target a different
// reserved-word set.
var defaultRenames = map[string]string{
	"from":   "from_",
	"format": "format_",
	"type":   "type_",
}

// Sanitizer rewrites raw schema identifiers into legal Python ones while
// remembering the original wire spelling. Only names in the rename table
// are touched; everything else passes through unchanged, so sanitizing an
// already-safe name is a no-op.
type Sanitizer struct {
	renames map[string]string // wire name -> safe identifier
	wire    map[string]string // safe identifier -> wire name
}

// NewSanitizer builds a Sanitizer from a wire-name -> safe-identifier
// table. A nil table selects the default Python one.
func NewSanitizer(renames map[string]string) *Sanitizer {
	if renames == nil {
		renames = defaultRenames
	}
	s := &Sanitizer{
		renames: make(map[string]string, len(renames)),
		wire:    make(map[string]string, len(renames)),
	}
	for raw, safe := range renames {
		s.renames[raw] = safe
		s.wire[safe] = raw
	}
	return s
}

// Ident returns the identifier to use in generated source for a raw
// wire name.
func (s *Sanitizer) Ident(raw string) string {
	if safe, ok := s.renames[raw]; ok {
		return safe
	}
	return raw
}

// WireName inverts Ident: given a sanitized identifier it returns the
// original wire name, or the identifier itself when no rename fired.
func (s *Sanitizer) WireName(ident string) string {
	if raw, ok := s.wire[ident]; ok {
		return raw
	}
	return ident
}

// SafeNames returns the sanitized forms of every renamed identifier,
// sorted. The generated model module embeds this list so that pydantic's
// alias generator can map sanitized attributes back to wire names.
func (s *Sanitizer) SafeNames() []string {
	names := make([]string, 0, len(s.renames))
	for _, safe := range s.renames {
		names = append(names, safe)
	}
	sort.Strings(names)
	return names
}

// ToSnakeCase converts an API operation name like "sendMessage" to a
// Python callable name like "send_message": an underscore goes before
// every interior capital and the result is lowercased. The transform is
// total and deterministic.
func ToSnakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// sanitizeDescription makes free-form description text safe to
// interpolate into generated Python string literals: double quotes become
// single quotes and backslash escapes are stripped.
func sanitizeDescription(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	return strings.ReplaceAll(s, `\`, "")
}
