package telegen

import (
	"fmt"
	"strings"

	"github.com/telegen/telegen/python"
)

// ClientFileName is the file name of the generated client module.
const ClientFileName = "api_wrapper.py"

// ModelsFileName returns the file name of the generated models module,
// tracking Config.ModelModule.
func ModelsFileName(cfg *Config) string {
	return applyConfigDefaults(cfg).ModelModule + ".py"
}

// RenderModelsFile wraps the model block in its file header: typing and
// pydantic imports, the reserved-name tuple consumed by each model's
// alias generator, and lint pragmas for the long generated lines.
func RenderModelsFile(res *Result, cfg *Config) string {
	cfg = applyConfigDefaults(cfg)

	var b strings.Builder
	b.WriteString("from typing import Union, Optional, Any, List\n")
	b.WriteString("\n")
	b.WriteString("from pydantic import BaseModel, ConfigDict\n")
	b.WriteString("\n")
	b.WriteString("reserved_python = " + reservedTuple(cfg) + "\n")
	b.WriteString("\n")
	b.WriteString("# pylint: disable=C0301,C0302,W0611\n")
	b.WriteString("\n")
	b.WriteString(res.ModelBlock)
	return b.String()
}

// RenderClientFile wraps the client block in its file header: imports,
// the models module import, and the ApiResponse envelope that
// exec_request unwraps.
func RenderClientFile(res *Result, cfg *Config) string {
	cfg = applyConfigDefaults(cfg)

	var b strings.Builder
	b.WriteString("from typing import Dict, Union, Optional, List, TypeVar, Generic, Type\n")
	b.WriteString("\n")
	b.WriteString("from httpx import AsyncClient\n")
	b.WriteString("from pydantic import BaseModel\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "from %s import %s\n", cfg.PackageName, cfg.ModelModule)
	b.WriteString("\n")
	b.WriteString("# pylint: disable=C0301,C0302\n")
	b.WriteString("\n")
	b.WriteString("T = TypeVar(\"T\")\n")
	b.WriteString("\n")
	b.WriteString("\n")
	b.WriteString("class ApiResponse(BaseModel, Generic[T]):\n")
	b.WriteString("    ok: bool\n")
	b.WriteString("    result: T\n")
	b.WriteString("\n")
	b.WriteString("\n")
	b.WriteString(res.ClientBlock)
	return b.String()
}

// reservedTuple renders the sanitized reserved names as a Python tuple.
// The trailing comma keeps single-element tuples valid.
func reservedTuple(cfg *Config) string {
	names := python.NewSanitizer(cfg.ReservedWords).SafeNames()
	if len(names) == 0 {
		return "()"
	}
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return "(" + strings.Join(quoted, ", ") + ",)"
}
