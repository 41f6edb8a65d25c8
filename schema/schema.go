// Package schema defines the parsed representation of a Bot API schema
// document: the ordered lists of objects and methods the generator
// consumes. The document format is the one published at
// https://ark0f.github.io/tg-bot-api/ (custom_v2.json).
//
// A Schema is immutable once parsed. Generation is a pure function from
// Schema to source text; see the python and root packages.
package schema

import (
	"bytes"
	"encoding/json"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Kind discriminates type descriptors and object declarations.
type Kind string

const (
	// Object-level kinds.
	KindProperties Kind = "properties" // record with named fields
	KindAnyOf      Kind = "any_of"     // tagged union of alternatives
	KindUnknown    Kind = "unknown"    // opaque, no structure published

	// Descriptor-level kinds.
	KindReference Kind = "reference"
	KindArray     Kind = "array"
	KindInteger   Kind = "integer"
	KindString    Kind = "string"
	KindBool      Kind = "bool"
	KindFloat     Kind = "float"
)

// TypeInfo is a node in the recursive type-description tree.
// Exactly one payload field is meaningful, selected by Kind. References
// resolve by name, never by inlined structure, so self-referential and
// mutually-referential types stay representable. A dangling reference is
// a valid parse-time value.
type TypeInfo struct {
	Kind Kind `json:"type" validate:"required,oneof=properties reference any_of unknown integer string bool array float"`

	// Enumeration lists the allowed values for primitive kinds that are
	// restricted to a fixed set. It never changes the resolved type.
	Enumeration []any `json:"enumeration,omitempty"`

	// Reference is the target object name for KindReference.
	Reference string `json:"reference,omitempty"`

	// Default is the raw JSON default value, or nil when the schema
	// declares none. Presence and value are distinct: an explicit 0,
	// "" or false is a real default.
	Default json.RawMessage `json:"default,omitempty"`

	// Array is the element descriptor for KindArray.
	Array *TypeInfo `json:"array,omitempty"`

	// AnyOf holds the union alternatives for KindAnyOf, in schema order.
	// Order is meaningful: downstream decoders treat the first
	// alternative as the preferred type on ambiguous input.
	AnyOf []*TypeInfo `json:"any_of,omitempty" validate:"dive,required"`
}

// HasDefault reports whether the schema declared a default value.
// An explicit JSON null counts as no default.
func (t *TypeInfo) HasDefault() bool {
	return len(t.Default) > 0 && !bytes.Equal(bytes.TrimSpace(t.Default), []byte("null"))
}

// Property is one named field of an object, or one argument of a method.
// Name carries the original wire spelling; identifier sanitization
// happens at emission and never mutates the parsed schema.
type Property struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Required    bool     `json:"required"`
	Type        TypeInfo `json:"type_info" validate:"required"`
}

// UnmarshalJSON rejects a property whose required flag is absent.
// Defaulting the flag would silently turn a required field into an
// optional one in every emitted signature, so absence fails the parse.
func (p *Property) UnmarshalJSON(data []byte) error {
	type property Property
	aux := struct {
		Required *bool `json:"required"`
		*property
	}{property: (*property)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if aux.Required == nil {
		return errors.Newf("property %q is missing the required flag", p.Name)
	}
	p.Required = *aux.Required
	return nil
}

// Object is one declared schema type. Kind selects which payload is
// populated: Properties for records, AnyOf for tagged unions, neither
// for opaque objects. Kind is deliberately not restricted here — an
// unrecognized object kind is skipped per object at emission time
// rather than failing the whole document.
type Object struct {
	Name              string      `json:"name" validate:"required"`
	Description       string      `json:"description"`
	Kind              Kind        `json:"type" validate:"required"`
	DocumentationLink string      `json:"documentation_link"`
	Properties        []Property  `json:"properties,omitempty" validate:"dive"`
	AnyOf             []*TypeInfo `json:"any_of,omitempty" validate:"dive,required"`
}

// Method is one callable API operation. Name keeps the API's original
// casing (e.g. "sendMessage"); the emitted callable name is derived
// from it at emission time.
type Method struct {
	Name           string     `json:"name" validate:"required"`
	Description    string     `json:"description"`
	Arguments      []Property `json:"arguments" validate:"dive"`
	MaybeMultipart bool       `json:"maybe_multipart"`
	ReturnType     TypeInfo   `json:"return_type" validate:"required"`
}

// Schema is the aggregate root: every object and method of the API,
// in document order.
type Schema struct {
	Objects []Object `json:"objects" validate:"required,dive"`
	Methods []Method `json:"methods" validate:"required,dive"`
}

// FindObject looks up an object by name. Returns nil if not found.
func (s *Schema) FindObject(name string) *Object {
	for i := range s.Objects {
		if s.Objects[i].Name == name {
			return &s.Objects[i]
		}
	}
	return nil
}

var validate = validator.New()

// Parse decodes and validates a schema document. The whole document is
// rejected when a required field is absent or a descriptor carries an
// unrecognized kind; unrecognized object kinds survive parsing and are
// handled per object during emission.
func Parse(data []byte) (*Schema, error) {
	var s Schema
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, errors.Wrap(err, "decoding schema document")
	}
	if err := validate.Struct(&s); err != nil {
		return nil, errors.Wrap(err, "validating schema document")
	}
	return &s, nil
}
