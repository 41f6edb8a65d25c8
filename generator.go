// Package telegen generates a typed Python client package from a Bot API
// schema document: a models module of pydantic declarations and a client
// module with one async method per API operation.
//
// The engine is a pure function from a parsed schema to text. Fetching
// the schema and writing files are separate steps (internal/fetch and
// sink); Generate itself performs no I/O.
package telegen

import (
	"bytes"

	"github.com/cockroachdb/errors"

	"github.com/telegen/telegen/python"
	"github.com/telegen/telegen/schema"
)

// Result holds the two generated source blocks and any non-fatal
// diagnostics collected along the way. The blocks carry declarations
// only; RenderModelsFile and RenderClientFile wrap them in file headers.
type Result struct {
	// ModelBlock contains one declaration per schema object, in schema
	// order, separated by blank lines.
	ModelBlock string

	// ClientBlock contains the client class wrapping one method per
	// schema method, in schema order.
	ClientBlock string

	// Diagnostics lists objects that were skipped as unrecognized.
	Diagnostics []schema.Diagnostic
}

// Generate emits Python source for the whole schema. Objects of
// unrecognized kind are skipped with a diagnostic; a structurally broken
// type descriptor fails the run.
func Generate(s *schema.Schema, cfg *Config) (*Result, error) {
	cfg = applyConfigDefaults(cfg)
	em := python.NewEmitter(python.Options{
		ModelModule: cfg.ModelModule,
		Renames:     cfg.ReservedWords,
	})

	res := &Result{}

	var models bytes.Buffer
	for i := range s.Objects {
		var decl bytes.Buffer
		diags, err := em.EmitObject(&decl, &s.Objects[i])
		if err != nil {
			return nil, errors.Wrap(err, "emitting objects")
		}
		res.Diagnostics = append(res.Diagnostics, diags...)
		if decl.Len() == 0 {
			continue
		}
		if models.Len() > 0 {
			models.WriteString("\n")
		}
		models.Write(decl.Bytes())
	}
	res.ModelBlock = models.String()

	var client bytes.Buffer
	if err := em.EmitClient(&client, s.Methods, cfg.BaseURL); err != nil {
		return nil, errors.Wrap(err, "emitting client")
	}
	res.ClientBlock = client.String()

	return res, nil
}
