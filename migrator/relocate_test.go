package migrator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swagfix/swagfix/swagerrors"
)

func TestEnsureComponents(t *testing.T) {
	t.Run("creates components when absent", func(t *testing.T) {
		root := map[string]any{}
		components, err := ensureComponents(root)
		require.NoError(t, err)
		require.NotNil(t, components)

		// The returned mapping is the one stored at root["components"].
		components["schemas"] = map[string]any{}
		stored := root["components"].(map[string]any)
		assert.Contains(t, stored, "schemas")
	})

	t.Run("returns existing mapping", func(t *testing.T) {
		existing := map[string]any{"securitySchemes": map[string]any{}}
		root := map[string]any{"components": existing}
		components, err := ensureComponents(root)
		require.NoError(t, err)
		assert.Equal(t, existing, components)
	})

	t.Run("non-mapping components is fatal", func(t *testing.T) {
		root := map[string]any{"components": "not a mapping"}
		_, err := ensureComponents(root)
		require.Error(t, err)
		assert.ErrorIs(t, err, swagerrors.ErrTypeMismatch)

		var tmErr *swagerrors.TypeMismatchError
		require.ErrorAs(t, err, &tmErr)
		assert.Equal(t, "components", tmErr.Path)
		assert.Equal(t, "mapping", tmErr.Expected)
	})
}

func TestMigrateDocument_ComponentsTypeMismatch(t *testing.T) {
	doc := parseDoc(t, `{"components": [1, 2], "definitions": {"Pet": {}}}`)

	_, err := New().MigrateDocument(doc)
	require.Error(t, err)
	assert.ErrorIs(t, err, swagerrors.ErrTypeMismatch)
}

func TestMigrateDocument_SiblingRelocations(t *testing.T) {
	doc := parseDoc(t, `{
		"swagger": "2.0",
		"definitions": {"Pet": {}},
		"securityDefinitions": {"api_key": {"type": "apiKey"}},
		"parameters": {"limitParam": {"name": "limit", "in": "query"}},
		"responses": {"NotFound": {"description": "missing"}}
	}`)

	m := &Migrator{EnabledMigrations: AllMigrations()}
	result, err := m.MigrateDocument(doc)
	require.NoError(t, err)

	root := rootOf(t, doc)
	for _, moved := range []string{"definitions", "securityDefinitions", "parameters", "responses", "swagger"} {
		assert.NotContains(t, root, moved)
	}

	components := root["components"].(map[string]any)
	assert.Contains(t, components, "schemas")
	assert.Contains(t, components, "securitySchemes")
	assert.Contains(t, components, "parameters")
	assert.Contains(t, components, "responses")

	secSchemes := components["securitySchemes"].(map[string]any)
	assert.Contains(t, secSchemes, "api_key")

	assert.Equal(t, openAPIVersion, root["openapi"])
	assert.Equal(t, 5, result.ChangeCount)
}

func TestStampVersion(t *testing.T) {
	t.Run("replaces swagger marker", func(t *testing.T) {
		root := map[string]any{"swagger": "2.0"}
		result := &MigrationResult{}
		New().stampVersion(root, result)

		assert.NotContains(t, root, "swagger")
		assert.Equal(t, openAPIVersion, root["openapi"])
		require.Len(t, result.Changes, 1)
		assert.Equal(t, "2.0", result.Changes[0].Before)
		assert.Equal(t, openAPIVersion, result.Changes[0].After)
	})

	t.Run("no-op without swagger marker", func(t *testing.T) {
		root := map[string]any{"openapi": "3.1.0"}
		result := &MigrationResult{}
		New().stampVersion(root, result)

		assert.Equal(t, "3.1.0", root["openapi"])
		assert.Empty(t, result.Changes)
	})
}
