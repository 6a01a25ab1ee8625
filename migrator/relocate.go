// relocate.go implements the structural half of the migration: moving the
// 2.0-era top-level component maps under "components".

package migrator

import (
	"fmt"

	"github.com/swagfix/swagfix/swagerrors"
)

// openAPIVersion is the version written by the version stamp migration.
const openAPIVersion = "3.0.3"

// relocation describes a top-level key that moves under "components".
type relocation struct {
	source string
	target string
	typ    MigrationType
}

// relocations lists the 2.0 component maps and their 3.0 destinations, in
// application order.
var relocations = []relocation{
	{"definitions", "schemas", MigrationTypeSchemas},
	{"securityDefinitions", "securitySchemes", MigrationTypeSecuritySchemes},
	{"parameters", "parameters", MigrationTypeParameters},
	{"responses", "responses", MigrationTypeResponses},
}

// relocate moves root[rel.source] to components[rel.target]. Absent source
// keys are a no-op. Pre-existing members of "components" are preserved.
func (m *Migrator) relocate(root map[string]any, rel relocation, result *MigrationResult) error {
	val, ok := root[rel.source]
	if !ok {
		return nil
	}

	components, err := ensureComponents(root)
	if err != nil {
		return err
	}

	components[rel.target] = val
	delete(root, rel.source)

	result.Changes = append(result.Changes, Change{
		Type:        rel.typ,
		Path:        "components." + rel.target,
		Description: fmt.Sprintf("moved top-level %q to components.%s", rel.source, rel.target),
		After:       val,
	})
	m.log().Debug("relocated component map", "from", rel.source, "to", "components."+rel.target)
	return nil
}

// ensureComponents returns the top-level "components" mapping, creating it
// as an empty mapping when absent. A pre-existing "components" value that is
// not a mapping makes relocation impossible and is a fatal
// [swagerrors.TypeMismatchError].
func ensureComponents(root map[string]any) (map[string]any, error) {
	existing, ok := root["components"]
	if !ok {
		components := map[string]any{}
		root["components"] = components
		return components, nil
	}

	components, ok := existing.(map[string]any)
	if !ok {
		return nil, &swagerrors.TypeMismatchError{
			Path:     "components",
			Expected: "mapping",
			Actual:   existing,
		}
	}
	return components, nil
}

// stampVersion replaces the top-level "swagger" version marker with an
// "openapi" one. Documents without a "swagger" key are left alone so an
// already-3.0 document is never restamped.
func (m *Migrator) stampVersion(root map[string]any, result *MigrationResult) {
	before, ok := root["swagger"]
	if !ok {
		return
	}

	delete(root, "swagger")
	root["openapi"] = openAPIVersion

	result.Changes = append(result.Changes, Change{
		Type:        MigrationTypeVersionStamp,
		Path:        "openapi",
		Description: fmt.Sprintf("replaced swagger version marker with openapi %s", openAPIVersion),
		Before:      before,
		After:       openAPIVersion,
	})
	m.log().Debug("stamped version", "openapi", openAPIVersion)
}
