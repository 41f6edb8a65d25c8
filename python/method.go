package python

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/telegen/telegen/schema"
)

// EmitMethod renders one API operation as an async client method. The
// method serializes its arguments into a wire payload keyed by original
// argument names, awaits the client's generic exec_request primitive and
// returns the typed result; failures raised by exec_request propagate
// untranslated.
func (e *Emitter) EmitMethod(buf *bytes.Buffer, m *schema.Method) error {
	retType, err := e.Client.Resolve(&m.ReturnType, DirectRef)
	if err != nil {
		return errors.Wrapf(err, "method %s return type", m.Name)
	}

	params := []string{"self"}
	var optional []string
	for _, arg := range partitionProperties(m.Arguments) {
		hint, err := e.propertyHint(&arg, e.Client, DirectRef)
		if err != nil {
			return errors.Wrapf(err, "method %s argument %s", m.Name, arg.Name)
		}
		if arg.Required && !arg.Type.HasDefault() {
			params = append(params, hint)
		} else {
			optional = append(optional, hint)
		}
	}
	if len(optional) > 0 {
		// Keyword-only marker separates required from optional arguments.
		params = append(params, "*")
		params = append(params, optional...)
	}

	fmt.Fprintf(buf, "async def %s(%s) -> %s:\n", ToSnakeCase(m.Name), strings.Join(params, ", "), retType)

	buf.WriteString(`    """` + sanitizeDescription(m.Description) + "\n")
	if m.MaybeMultipart {
		buf.WriteString("\n    May be sent as multipart/form-data.\n")
	}
	if len(m.Arguments) > 0 {
		buf.WriteString("\n    Args:\n")
		for _, arg := range m.Arguments {
			doc, err := e.docLine(&arg)
			if err != nil {
				return errors.Wrapf(err, "method %s argument %s", m.Name, arg.Name)
			}
			buf.WriteString("        " + doc + "\n")
		}
	}
	buf.WriteString("    \"\"\"\n")

	// Wire payload keyed by original names, in declared order.
	if len(m.Arguments) == 0 {
		buf.WriteString("    payload = {}\n")
	} else {
		buf.WriteString("    payload = {\n")
		for _, arg := range m.Arguments {
			ident := e.Sanitizer.Ident(arg.Name)
			fmt.Fprintf(buf, "        %q: %s,\n", e.Sanitizer.WireName(ident), ident)
		}
		buf.WriteString("    }\n")
	}

	buf.WriteString("    return await self.exec_request(\n")
	fmt.Fprintf(buf, "        %q,\n", m.Name)
	buf.WriteString("        json=payload,\n")
	fmt.Fprintf(buf, "        return_type=%s,  # type: ignore\n", retType)
	buf.WriteString("    )\n")
	return nil
}

// EmitClient renders the containing client class: construction with a
// token and base address, the shared AsyncClient transport, the generic
// exec_request primitive, and one method per operation in schema order.
func (e *Emitter) EmitClient(buf *bytes.Buffer, methods []schema.Method, baseURL string) error {
	buf.WriteString("class ApiWrapper:\n")
	fmt.Fprintf(buf, "    def __init__(self, token: str, *, api_url: str = %q):\n", baseURL)
	buf.WriteString("        self.token = token\n")
	buf.WriteString("        self.api_url = api_url\n")
	buf.WriteString("        self.client = AsyncClient(base_url=api_url + \"bot\" + token + \"/\")\n")
	buf.WriteString("\n")
	buf.WriteString("    async def exec_request(self, method: str, json: Dict, return_type: Type[T]) -> T:\n")
	buf.WriteString("        result = await self.client.post(method, json=json)\n")
	buf.WriteString("        response = ApiResponse[return_type].model_validate(result.json())  # type: ignore\n")
	buf.WriteString("        return response.result\n")

	for i := range methods {
		var method bytes.Buffer
		if err := e.EmitMethod(&method, &methods[i]); err != nil {
			return err
		}
		buf.WriteString("\n")
		buf.WriteString(indent(method.String(), "    "))
	}
	return nil
}

// indent prefixes every non-empty line.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
