package schema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDocument = `{
  "objects": [
    {
      "name": "Update",
      "description": "This object represents an incoming update.",
      "type": "properties",
      "documentation_link": "https://core.telegram.org/bots/api#update",
      "properties": [
        {
          "name": "update_id",
          "description": "The update's unique identifier.",
          "required": true,
          "type_info": {"type": "integer"}
        },
        {
          "name": "message",
          "description": "New incoming message.",
          "required": false,
          "type_info": {"type": "reference", "reference": "Message"}
        }
      ]
    },
    {
      "name": "ChatId",
      "description": "Chat identifier.",
      "type": "any_of",
      "documentation_link": "",
      "any_of": [{"type": "integer"}, {"type": "string"}]
    }
  ],
  "methods": [
    {
      "name": "sendMessage",
      "description": "Use this method to send text messages.",
      "maybe_multipart": false,
      "arguments": [
        {
          "name": "chat_id",
          "description": "Target chat.",
          "required": true,
          "type_info": {"type": "integer"}
        },
        {
          "name": "parse_mode",
          "description": "Formatting mode.",
          "required": false,
          "type_info": {"type": "string", "default": "HTML", "enumeration": ["HTML", "Markdown"]}
        }
      ],
      "return_type": {"type": "reference", "reference": "Message"}
    }
  ]
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(validDocument))
	require.NoError(t, err)

	require.Len(t, s.Objects, 2)
	require.Len(t, s.Methods, 1)

	update := s.Objects[0]
	assert.Equal(t, "Update", update.Name)
	assert.Equal(t, KindProperties, update.Kind)
	require.Len(t, update.Properties, 2)
	assert.True(t, update.Properties[0].Required)
	assert.Equal(t, KindInteger, update.Properties[0].Type.Kind)
	assert.Equal(t, "Message", update.Properties[1].Type.Reference)

	chatID := s.Objects[1]
	assert.Equal(t, KindAnyOf, chatID.Kind)
	require.Len(t, chatID.AnyOf, 2)
	assert.Equal(t, KindInteger, chatID.AnyOf[0].Kind)
	assert.Equal(t, KindString, chatID.AnyOf[1].Kind)

	send := s.Methods[0]
	assert.Equal(t, "sendMessage", send.Name)
	assert.False(t, send.MaybeMultipart)
	require.Len(t, send.Arguments, 2)
	assert.Equal(t, []any{"HTML", "Markdown"}, send.Arguments[1].Type.Enumeration)
	assert.Equal(t, KindReference, send.ReturnType.Kind)
}

func TestParse_RejectsInvalidDocuments(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{"objects": [`},
		{"missing objects", `{"methods": []}`},
		{"missing methods", `{"objects": []}`},
		{
			"object without name",
			`{"objects": [{"description": "x", "type": "properties"}], "methods": []}`,
		},
		{
			"descriptor with unrecognized kind",
			`{"objects": [{"name": "X", "type": "properties", "properties": [
				{"name": "f", "required": true, "type_info": {"type": "quaternion"}}
			]}], "methods": []}`,
		},
		{
			"property without required flag",
			`{"objects": [{"name": "X", "type": "properties", "properties": [
				{"name": "f", "type_info": {"type": "integer"}}
			]}], "methods": []}`,
		},
		{
			"argument without required flag",
			`{"objects": [], "methods": [{"name": "getMe", "arguments": [
				{"name": "f", "type_info": {"type": "integer"}}
			], "return_type": {"type": "bool"}}]}`,
		},
		{
			"method without return type",
			`{"objects": [], "methods": [{"name": "getMe", "arguments": []}]}`,
		},
		{
			"method without name",
			`{"objects": [], "methods": [{"return_type": {"type": "bool"}}]}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_UnrecognizedObjectKindIsNotAParseError(t *testing.T) {
	doc := `{
		"objects": [{"name": "Future", "description": "x", "type": "hologram"}],
		"methods": []
	}`
	s, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, Kind("hologram"), s.Objects[0].Kind)
}

func TestTypeInfo_HasDefault(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
	}{
		{"absent", "", false},
		{"explicit null", "null", false},
		{"zero", "0", true},
		{"empty string", `""`, true},
		{"false", "false", true},
		{"string", `"HTML"`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ti := TypeInfo{Kind: KindString}
			if tt.raw != "" {
				ti.Default = json.RawMessage(tt.raw)
			}
			assert.Equal(t, tt.want, ti.HasDefault())
		})
	}
}

func TestSchema_FindObject(t *testing.T) {
	s, err := Parse([]byte(validDocument))
	require.NoError(t, err)

	require.NotNil(t, s.FindObject("Update"))
	assert.Equal(t, "Update", s.FindObject("Update").Name)
	assert.Nil(t, s.FindObject("Message"))
}

func TestSchema_DanglingReferences(t *testing.T) {
	s, err := Parse([]byte(validDocument))
	require.NoError(t, err)

	// "Message" is referenced by Update.message and sendMessage's return
	// type but never declared.
	diags := s.DanglingReferences()
	require.Len(t, diags, 2)
	for _, d := range diags {
		assert.Equal(t, "dangling_reference", d.Code)
		assert.Equal(t, "Message", d.ObjectName)
	}
	assert.Contains(t, diags[0].Message, "Update")
	assert.Contains(t, diags[1].Message, "sendMessage")
}
