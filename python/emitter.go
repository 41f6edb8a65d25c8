package python

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/cockroachdb/errors"

	"github.com/telegen/telegen/schema"
)

// Options configures an Emitter.
type Options struct {
	// ModelModule is the Python module name that holds the generated
	// models, used to qualify direct references from the client module.
	// Default "objects".
	ModelModule string

	// Renames overrides the reserved-word table. Nil selects the
	// default Python table.
	Renames map[string]string
}

// Emitter renders schema objects and methods as Python source.
// Objects resolve references as quoted forward names within the model
// module, the client resolves them through the model module import.
type Emitter struct {
	Sanitizer *Sanitizer
	Models    *Resolver
	Client    *Resolver
}

// NewEmitter creates an Emitter.
func NewEmitter(opts Options) *Emitter {
	mod := opts.ModelModule
	if mod == "" {
		mod = "objects"
	}
	return &Emitter{
		Sanitizer: NewSanitizer(opts.Renames),
		Models:    &Resolver{},
		Client:    &Resolver{ModelModule: mod},
	}
}

// EmitObject renders one schema object as a model declaration. An object
// of unrecognized kind is skipped: nothing is written and a diagnostic
// naming the object is returned, so a schema that introduces new object
// kinds still generates everything else.
func (e *Emitter) EmitObject(buf *bytes.Buffer, obj *schema.Object) ([]schema.Diagnostic, error) {
	switch obj.Kind {
	case schema.KindProperties:
		return nil, e.emitRecord(buf, obj)
	case schema.KindAnyOf:
		return nil, e.emitUnionAlias(buf, obj)
	case schema.KindUnknown:
		e.emitOpaqueAlias(buf, obj)
		return nil, nil
	default:
		return []schema.Diagnostic{{
			Code:       "unrecognized_object_kind",
			Message:    fmt.Sprintf("object %s has unrecognized kind %q, skipped", obj.Name, obj.Kind),
			ObjectName: obj.Name,
		}}, nil
	}
}

// emitRecord renders a record object as a pydantic model. Attribute
// names are sanitized; the alias generator in model_config maps them
// back to wire names so encoding and decoding stay wire-compatible.
func (e *Emitter) emitRecord(buf *bytes.Buffer, obj *schema.Object) error {
	if len(obj.Properties) == 0 {
		return errors.Newf("record object %s has no properties", obj.Name)
	}

	fmt.Fprintf(buf, "class %s(BaseModel):\n", obj.Name)
	buf.WriteString(`    """` + sanitizeDescription(obj.Description) + "\n")
	if obj.DocumentationLink != "" {
		buf.WriteString("\n    " + obj.DocumentationLink + "\n")
	}
	buf.WriteString("    \"\"\"\n")
	buf.WriteString("    model_config = ConfigDict(\n")
	buf.WriteString("        populate_by_name=True,\n")
	buf.WriteString("        alias_generator=lambda x: x[:-1] if x in reserved_python else x,\n")
	buf.WriteString("    )\n")

	// Required properties without a default must precede the rest; this
	// is a Python constructor constraint, not a wire-format one.
	for _, p := range partitionProperties(obj.Properties) {
		hint, err := e.propertyHint(&p, e.Models, ForwardRef)
		if err != nil {
			return errors.Wrapf(err, "object %s property %s", obj.Name, p.Name)
		}
		doc, err := e.docLine(&p)
		if err != nil {
			return errors.Wrapf(err, "object %s property %s", obj.Name, p.Name)
		}
		buf.WriteString("    " + hint + "\n")
		buf.WriteString(`    """` + doc + `"""` + "\n")
	}
	return nil
}

// emitUnionAlias renders a tagged-union object as a type alias listing
// the alternatives in schema order. The alias right-hand side is
// evaluated at import time, possibly before the alternative classes are
// declared, so reference alternatives must render as forward references.
func (e *Emitter) emitUnionAlias(buf *bytes.Buffer, obj *schema.Object) error {
	union, err := e.Models.Resolve(&schema.TypeInfo{Kind: schema.KindAnyOf, AnyOf: obj.AnyOf}, ForwardRef)
	if err != nil {
		return errors.Wrapf(err, "object %s", obj.Name)
	}
	fmt.Fprintf(buf, "%s = %s\n", obj.Name, union)
	fmt.Fprintf(buf, `"""%s"""`+"\n", sanitizeDescription(obj.Description))
	return nil
}

// emitOpaqueAlias renders an opaque object as an alias to Any.
func (e *Emitter) emitOpaqueAlias(buf *bytes.Buffer, obj *schema.Object) {
	fmt.Fprintf(buf, "%s = Any\n", obj.Name)
	fmt.Fprintf(buf, `"""%s"""`+"\n", sanitizeDescription(obj.Description))
}

// propertyHint renders one property or argument as a typed Python
// declaration, including its default when the schema declares one.
func (e *Emitter) propertyHint(p *schema.Property, r *Resolver, mode RefMode) (string, error) {
	ident := e.Sanitizer.Ident(p.Name)
	typ, err := r.Resolve(&p.Type, mode)
	if err != nil {
		return "", err
	}
	switch {
	case !p.Required:
		dflt := "None"
		if p.Type.HasDefault() {
			dflt = pythonLiteral(p.Type.Default)
		}
		return fmt.Sprintf("%s: Optional[%s] = %s", ident, typ, dflt), nil
	case p.Type.HasDefault():
		return fmt.Sprintf("%s: %s = %s", ident, typ, pythonLiteral(p.Type.Default)), nil
	default:
		return fmt.Sprintf("%s: %s", ident, typ), nil
	}
}

// docLine renders the documentation line for a property: sanitized name,
// forward-reference type and description.
func (e *Emitter) docLine(p *schema.Property) (string, error) {
	typ, err := e.Models.Resolve(&p.Type, ForwardRef)
	if err != nil {
		return "", err
	}
	line := fmt.Sprintf("%s (%s): %s", e.Sanitizer.Ident(p.Name), typ, sanitizeDescription(p.Description))
	if len(p.Type.Enumeration) > 0 {
		line += fmt.Sprintf(" One of: %s.", enumValues(p.Type.Enumeration))
	}
	return line, nil
}

// partitionProperties orders required-without-default properties before
// optional or defaulted ones, keeping schema order within each group.
func partitionProperties(props []schema.Property) []schema.Property {
	out := make([]schema.Property, 0, len(props))
	var deferred []schema.Property
	for _, p := range props {
		if p.Required && !p.Type.HasDefault() {
			out = append(out, p)
		} else {
			deferred = append(deferred, p)
		}
	}
	return append(out, deferred...)
}

// pythonLiteral renders a raw JSON default value as a Python literal.
func pythonLiteral(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case bytes.Equal(trimmed, []byte("true")):
		return "True"
	case bytes.Equal(trimmed, []byte("false")):
		return "False"
	case len(trimmed) > 0 && trimmed[0] == '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return fmt.Sprintf("%q", s)
		}
		return string(trimmed)
	default:
		// Numbers pass through; other JSON shapes do not occur as
		// defaults in published schemas.
		return string(trimmed)
	}
}

// enumValues joins enumeration values for documentation text.
func enumValues(values []any) string {
	var b bytes.Buffer
	for i, v := range values {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%v", v)
	}
	return sanitizeDescription(b.String())
}
