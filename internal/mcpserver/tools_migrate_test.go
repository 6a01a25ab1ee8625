package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const swaggerPetJSON = `{
  "swagger": "2.0",
  "info": {"title": "Pets", "version": "1.0.0"},
  "paths": {
    "/pets": {
      "get": {
        "responses": {
          "200": {"schema": {"$ref": "#/definitions/Pet"}}
        }
      }
    }
  },
  "definitions": {
    "Pet": {"type": "object"}
  }
}`

const swaggerSecurityYAML = `swagger: "2.0"
info:
  title: Secure
  version: 1.0.0
paths: {}
securityDefinitions:
  apiKey:
    type: apiKey
    name: X-API-Key
    in: header
definitions:
  Thing:
    type: object
`

func TestHandleMigrate_ContentDryRun(t *testing.T) {
	input := migrateInput{Content: swaggerPetJSON, DryRun: true}

	result, output, err := handleMigrate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, 2, output.ChangeCount)
	assert.Equal(t, 2, output.Returned)
	assert.Equal(t, "json", output.Format)
	require.Len(t, output.Changes, 2)
	assert.Equal(t, "relocate-definitions", output.Changes[0].Type)
	assert.Equal(t, "components.schemas", output.Changes[0].Path)
	assert.Equal(t, "rewrite-refs", output.Changes[1].Type)
	assert.Empty(t, output.WrittenTo)
	assert.Empty(t, output.Document)
}

func TestHandleMigrate_FileInPlace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pets.json")
	require.NoError(t, os.WriteFile(path, []byte(swaggerPetJSON), 0o600))

	input := migrateInput{File: path}

	result, output, err := handleMigrate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, path, output.WrittenTo)

	migrated, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Contains(t, string(migrated), `"components"`)
	assert.Contains(t, string(migrated), "#/components/schemas/Pet")
	assert.NotContains(t, string(migrated), "#/definitions/Pet")
}

func TestHandleMigrate_OutputPath(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in.json")
	dst := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(src, []byte(swaggerPetJSON), 0o600))

	input := migrateInput{File: src, Output: dst}

	result, output, err := handleMigrate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)
	assert.Equal(t, dst, output.WrittenTo)

	// The source file stays untouched.
	original, readErr := os.ReadFile(src)
	require.NoError(t, readErr)
	assert.Equal(t, swaggerPetJSON, string(original))

	migrated, readErr := os.ReadFile(dst)
	require.NoError(t, readErr)
	assert.Contains(t, string(migrated), "#/components/schemas/Pet")
}

func TestHandleMigrate_IncludeDocument(t *testing.T) {
	input := migrateInput{Content: swaggerPetJSON, DryRun: true, IncludeDocument: true}

	_, output, err := handleMigrate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	// Dry run skips the document payload along with the write.
	assert.Empty(t, output.Document)

	input.DryRun = false
	_, output, err = handleMigrate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	assert.Contains(t, output.Document, "#/components/schemas/Pet")
	assert.Empty(t, output.WrittenTo)
}

func TestHandleMigrate_Full(t *testing.T) {
	input := migrateInput{Content: swaggerSecurityYAML, DryRun: true, Full: true, IncludeDocument: true}

	result, output, err := handleMigrate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, result)

	assert.Equal(t, "yaml", output.Format)
	types := make([]string, 0, len(output.Changes))
	for _, change := range output.Changes {
		types = append(types, change.Type)
	}
	assert.Contains(t, types, "relocate-security-definitions")
	assert.Contains(t, types, "stamp-version")
}

func TestHandleMigrate_Pagination(t *testing.T) {
	input := migrateInput{Content: swaggerPetJSON, DryRun: true, Offset: 1, Limit: 1}

	_, output, err := handleMigrate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)

	assert.Equal(t, 2, output.ChangeCount)
	assert.Equal(t, 1, output.Returned)
	require.Len(t, output.Changes, 1)
	assert.Equal(t, "rewrite-refs", output.Changes[0].Type)
}

func TestHandleMigrate_InputErrors(t *testing.T) {
	tests := []struct {
		name  string
		input migrateInput
	}{
		{name: "neither file nor content", input: migrateInput{}},
		{name: "both file and content", input: migrateInput{File: "x.json", Content: "{}"}},
		{name: "missing file", input: migrateInput{File: filepath.Join(t.TempDir(), "nope.json")}},
		{name: "malformed content", input: migrateInput{Content: "a: [1, 2\n"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, _, err := handleMigrate(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, result)
			assert.True(t, result.IsError)
		})
	}
}
