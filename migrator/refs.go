// refs.go implements the $ref rewrite half of the migration: a recursive
// walk over the generic document tree that substitutes 2.0 reference
// prefixes with their 3.0 counterparts.

package migrator

import (
	"fmt"
	"slices"
	"strings"
)

// refKey is the reserved key whose string values are reference pointers.
const refKey = "$ref"

// refMapping defines a substring substitution applied to $ref values.
type refMapping struct {
	from string
	to   string
}

// refMappingsByType maps each relocation migration to the $ref substitution
// it implies. The definitions mapping is always part of the rewrite; the
// others apply only when their relocation is enabled.
var refMappingsByType = map[MigrationType]refMapping{
	MigrationTypeSchemas:         {"#/definitions/", "#/components/schemas/"},
	MigrationTypeSecuritySchemes: {"#/securityDefinitions/", "#/components/securitySchemes/"},
	MigrationTypeParameters:      {"#/parameters/", "#/components/parameters/"},
	MigrationTypeResponses:       {"#/responses/", "#/components/responses/"},
}

// refMappings returns the substitutions implied by the enabled migrations,
// in relocation order.
func (m *Migrator) refMappings() []refMapping {
	mappings := []refMapping{refMappingsByType[MigrationTypeSchemas]}
	for _, rel := range relocations {
		if rel.typ != MigrationTypeSchemas && m.isEnabled(rel.typ) {
			mappings = append(mappings, refMappingsByType[rel.typ])
		}
	}
	return mappings
}

// rewriteRefs recursively visits every node of the tree. String values under
// a $ref key get every occurrence of each mapped substring replaced, not
// just a leading match. Non-string $ref values are not rewritten but are
// still descended into. Mapping keys are visited in sorted order so the
// recorded changes are deterministic.
func (m *Migrator) rewriteRefs(node any, path string, mappings []refMapping, result *MigrationResult) {
	switch v := node.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)

		for _, key := range keys {
			val := v[key]
			childPath := joinPath(path, key)
			if key == refKey {
				if ref, ok := val.(string); ok {
					if rewritten := rewriteRef(ref, mappings); rewritten != ref {
						v[key] = rewritten
						result.Changes = append(result.Changes, Change{
							Type:        MigrationTypeRefs,
							Path:        childPath,
							Description: fmt.Sprintf("rewrote reference %q to %q", ref, rewritten),
							Before:      ref,
							After:       rewritten,
						})
					}
					continue
				}
			}
			m.rewriteRefs(val, childPath, mappings, result)
		}

	case []any:
		for i, item := range v {
			m.rewriteRefs(item, fmt.Sprintf("%s[%d]", path, i), mappings, result)
		}
	}
}

// rewriteRef applies every mapping to the reference string as a plain
// substring replacement.
func rewriteRef(ref string, mappings []refMapping) string {
	for _, mapping := range mappings {
		ref = strings.ReplaceAll(ref, mapping.from, mapping.to)
	}
	return ref
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}
