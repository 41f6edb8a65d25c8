package telegen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/telegen/telegen/schema"
)

// loadFixture reads a txtar archive and returns its files by name.
func loadFixture(t *testing.T, path string) map[string][]byte {
	t.Helper()
	arc, err := txtar.ParseFile(path)
	require.NoError(t, err)
	files := make(map[string][]byte, len(arc.Files))
	for _, f := range arc.Files {
		files[f.Name] = f.Data
	}
	return files
}

func TestGenerate_Fixture(t *testing.T) {
	files := loadFixture(t, filepath.Join("testdata", "sendmessage.txtar"))

	s, err := schema.Parse(files["schema.json"])
	require.NoError(t, err)

	res, err := Generate(s, nil)
	require.NoError(t, err)

	require.Len(t, res.Diagnostics, 1)
	assert.Equal(t, "unrecognized_object_kind", res.Diagnostics[0].Code)
	assert.Equal(t, "Mystery", res.Diagnostics[0].ObjectName)
	assert.NotContains(t, res.ModelBlock, "Mystery")

	models := RenderModelsFile(res, nil)
	for _, line := range fixtureLines(files["want_models"]) {
		assert.Contains(t, models, line+"\n", "models module missing line %q", line)
	}

	client := RenderClientFile(res, nil)
	for _, line := range fixtureLines(files["want_client"]) {
		assert.Contains(t, client, line+"\n", "client module missing line %q", line)
	}
}

func TestGenerate_ObjectOrderAndSeparation(t *testing.T) {
	files := loadFixture(t, filepath.Join("testdata", "sendmessage.txtar"))
	s, err := schema.Parse(files["schema.json"])
	require.NoError(t, err)

	res, err := Generate(s, nil)
	require.NoError(t, err)

	update := strings.Index(res.ModelBlock, "class Update(BaseModel):")
	message := strings.Index(res.ModelBlock, "class Message(BaseModel):")
	chatID := strings.Index(res.ModelBlock, "ChatId = Union[int, str]")
	require.NotEqual(t, -1, update)
	require.NotEqual(t, -1, message)
	require.NotEqual(t, -1, chatID)
	assert.Less(t, update, message, "objects must keep schema order")
	assert.Less(t, message, chatID, "objects must keep schema order")

	// One blank line between declarations.
	assert.Contains(t, res.ModelBlock, "\n\nclass Message(BaseModel):")
	assert.Contains(t, res.ModelBlock, "\n\nChatId = Union[int, str]")
	assert.False(t, strings.HasPrefix(res.ModelBlock, "\n"))
}

func TestGenerate_BrokenDescriptorFails(t *testing.T) {
	s := &schema.Schema{
		Objects: []schema.Object{{
			Name: "Broken",
			Kind: schema.KindProperties,
			Properties: []schema.Property{{
				Name:     "items",
				Required: true,
				Type:     schema.TypeInfo{Kind: schema.KindArray},
			}},
		}},
	}
	_, err := Generate(s, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Broken")
}

func TestRenderModelsFile_Header(t *testing.T) {
	res := &Result{ModelBlock: "Poll = Any\n\"\"\"A poll.\"\"\"\n"}

	got := RenderModelsFile(res, nil)
	assert.True(t, strings.HasPrefix(got, "from typing import Union, Optional, Any, List\n"))
	assert.Contains(t, got, `reserved_python = ("format_", "from_", "type_",)`)
	assert.Contains(t, got, "# pylint: disable=C0301,C0302,W0611\n")
	assert.True(t, strings.HasSuffix(got, res.ModelBlock))

	got = RenderModelsFile(res, &Config{ReservedWords: map[string]string{"async": "async_"}})
	assert.Contains(t, got, `reserved_python = ("async_",)`)
}

func TestRenderClientFile_Header(t *testing.T) {
	res := &Result{ClientBlock: "class ApiWrapper:\n    pass\n"}

	got := RenderClientFile(res, nil)
	assert.Contains(t, got, "from api_types import objects\n")
	assert.Contains(t, got, "class ApiResponse(BaseModel, Generic[T]):\n")
	assert.True(t, strings.HasSuffix(got, res.ClientBlock))

	got = RenderClientFile(res, &Config{PackageName: "tg", ModelModule: "models"})
	assert.Contains(t, got, "from tg import models\n")
}

func TestModelsFileName(t *testing.T) {
	assert.Equal(t, "objects.py", ModelsFileName(nil))
	assert.Equal(t, "models.py", ModelsFileName(&Config{ModelModule: "models"}))
}

func TestLoadReservedWords(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "reserved.toml")
	require.NoError(t, os.WriteFile(path, []byte("from = \"from_\"\nawait = \"await_\"\n"), 0o644))

	table, err := LoadReservedWords(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"from": "from_", "await": "await_"}, table)
}

func TestLoadReservedWords_Errors(t *testing.T) {
	dir := t.TempDir()

	empty := filepath.Join(dir, "empty.toml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	_, err := LoadReservedWords(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty")

	_, err = LoadReservedWords(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
}

// fixtureLines splits a want file into its non-empty lines.
func fixtureLines(data []byte) []string {
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
