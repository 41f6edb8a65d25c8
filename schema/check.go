package schema

import "fmt"

// DanglingReferences walks every descriptor in the schema and reports
// references whose target is not among the declared objects. A dangling
// reference is legal (the document parses and generates), but the
// generated module will not import-check, so the check command surfaces
// them as diagnostics.
func (s *Schema) DanglingReferences() []Diagnostic {
	declared := make(map[string]bool, len(s.Objects))
	for i := range s.Objects {
		declared[s.Objects[i].Name] = true
	}

	var diags []Diagnostic
	report := func(owner, target string) {
		diags = append(diags, Diagnostic{
			Code:       "dangling_reference",
			Message:    fmt.Sprintf("%s references undeclared object %s", owner, target),
			ObjectName: target,
		})
	}

	var walk func(owner string, t *TypeInfo)
	walk = func(owner string, t *TypeInfo) {
		if t == nil {
			return
		}
		switch t.Kind {
		case KindReference:
			if t.Reference != "" && !declared[t.Reference] {
				report(owner, t.Reference)
			}
		case KindArray:
			walk(owner, t.Array)
		case KindAnyOf:
			for _, alt := range t.AnyOf {
				walk(owner, alt)
			}
		}
	}

	for i := range s.Objects {
		obj := &s.Objects[i]
		for j := range obj.Properties {
			walk(obj.Name, &obj.Properties[j].Type)
		}
		for _, alt := range obj.AnyOf {
			walk(obj.Name, alt)
		}
	}
	for i := range s.Methods {
		m := &s.Methods[i]
		for j := range m.Arguments {
			walk(m.Name, &m.Arguments[j].Type)
		}
		walk(m.Name, &m.ReturnType)
	}
	return diags
}
