// Package python emits Python source for a parsed Bot API schema:
// pydantic model declarations for objects and an async client class with
// one method per API operation. Emission is pure text transformation;
// file layout, headers and imports are the caller's concern.
package python

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/telegen/telegen/schema"
)

// RefMode controls how a reference descriptor renders.
type RefMode int

const (
	// ForwardRef renders a quoted name, usable before the target class
	// is declared in the same module.
	ForwardRef RefMode = iota

	// DirectRef renders the name itself, qualified with the model module
	// when resolving outside it. Usable once all declarations exist.
	DirectRef
)

// primitiveTypes maps schema primitive kinds to Python builtins.
var primitiveTypes = map[schema.Kind]string{
	schema.KindInteger: "int",
	schema.KindString:  "str",
	schema.KindBool:    "bool",
	schema.KindFloat:   "float",
}

// Resolver turns type descriptors into Python type expressions.
// ModelModule qualifies direct references; it is empty when resolving
// inside the model module itself and "objects" (or similar) when
// resolving from the client module.
type Resolver struct {
	ModelModule string
}

// Resolve renders a descriptor as a Python type expression, depth-first.
// A structurally broken descriptor (array or union without its nested
// descriptor, reference without a target, unmapped primitive kind) is an
// error: there is no safe partial output for it.
func (r *Resolver) Resolve(t *schema.TypeInfo, mode RefMode) (string, error) {
	switch t.Kind {
	case schema.KindAnyOf:
		if len(t.AnyOf) == 0 {
			return "", errors.New("any_of descriptor has no alternatives")
		}
		parts := make([]string, 0, len(t.AnyOf))
		for i, alt := range t.AnyOf {
			p, err := r.Resolve(alt, mode)
			if err != nil {
				return "", errors.Wrapf(err, "any_of alternative %d", i)
			}
			parts = append(parts, p)
		}
		return "Union[" + strings.Join(parts, ", ") + "]", nil

	case schema.KindArray:
		if t.Array == nil {
			return "", errors.New("array descriptor has no element")
		}
		elem, err := r.Resolve(t.Array, mode)
		if err != nil {
			return "", errors.Wrap(err, "array element")
		}
		return "List[" + elem + "]", nil

	case schema.KindReference:
		if t.Reference == "" {
			return "", errors.New("reference descriptor has no target")
		}
		if mode == ForwardRef {
			return `"` + t.Reference + `"`, nil
		}
		if r.ModelModule != "" {
			return r.ModelModule + "." + t.Reference, nil
		}
		return t.Reference, nil

	case schema.KindUnknown:
		return "Any", nil

	default:
		if py, ok := primitiveTypes[t.Kind]; ok {
			return py, nil
		}
		return "", errors.Newf("no Python type for descriptor kind %q", t.Kind)
	}
}
