// Package swagfix migrates Swagger/OpenAPI 2.0 documents to the OpenAPI 3.0
// component layout.
//
// The migration relocates the top-level "definitions" map to
// "components.schemas" and rewrites every local $ref string that points into
// the old location so it points into the new one. The document is otherwise
// left untouched: swagfix performs no validation and no semantic conversion
// of paths, parameters, or responses unless the optional sibling relocations
// are enabled.
//
// # Packages
//
//   - document: load and save documents as a generic tree, preserving the
//     source format (JSON or YAML) and key ordering
//   - migrator: the relocation and $ref rewrite pipeline
//   - swagerrors: structured error types for programmatic handling
//
// # Quick Start
//
// Migrate a file in place:
//
//	import "github.com/swagfix/swagfix/migrator"
//
//	result, err := migrator.MigrateWithOptions(
//	    migrator.WithFilePath("docs/openapi.json"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := result.Document.Save("docs/openapi.json"); err != nil {
//	    log.Fatal(err)
//	}
//
// Or use the CLI:
//
//	swagfix migrate docs/openapi.json
package swagfix
