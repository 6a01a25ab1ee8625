// Package migrator moves Swagger/OpenAPI 2.0 documents to the OpenAPI 3.0
// component layout.
//
// The default pipeline relocates the top-level "definitions" map to
// "components.schemas" and rewrites every local $ref that points into the
// old location. Optional migrations additionally relocate
// "securityDefinitions", "parameters", and "responses" into their
// components counterparts and stamp the document with an OpenAPI 3.0
// version marker.
//
// The migrator works on the generic [document.Document] tree and has no
// knowledge of schema semantics: it performs structural moves and textual
// $ref substitution regardless of whether the resulting references resolve.
package migrator

import (
	"fmt"

	"github.com/swagfix/swagfix/document"
)

// MigrationType identifies a category of migration applied to a document.
type MigrationType string

const (
	// MigrationTypeSchemas relocates top-level "definitions" to "components.schemas"
	MigrationTypeSchemas MigrationType = "relocate-definitions"
	// MigrationTypeSecuritySchemes relocates top-level "securityDefinitions" to "components.securitySchemes"
	MigrationTypeSecuritySchemes MigrationType = "relocate-security-definitions"
	// MigrationTypeParameters relocates top-level "parameters" to "components.parameters"
	MigrationTypeParameters MigrationType = "relocate-parameters"
	// MigrationTypeResponses relocates top-level "responses" to "components.responses"
	MigrationTypeResponses MigrationType = "relocate-responses"
	// MigrationTypeRefs rewrites $ref strings from 2.0 locations to their 3.0 counterparts
	MigrationTypeRefs MigrationType = "rewrite-refs"
	// MigrationTypeVersionStamp replaces the top-level "swagger" marker with an "openapi" one
	MigrationTypeVersionStamp MigrationType = "stamp-version"
)

// DefaultMigrations returns the migrations applied when none are configured:
// the definitions relocation and the matching $ref rewrite.
func DefaultMigrations() []MigrationType {
	return []MigrationType{MigrationTypeSchemas, MigrationTypeRefs}
}

// AllMigrations returns every supported migration, including the sibling
// component relocations and the version stamp.
func AllMigrations() []MigrationType {
	return []MigrationType{
		MigrationTypeSchemas,
		MigrationTypeSecuritySchemes,
		MigrationTypeParameters,
		MigrationTypeResponses,
		MigrationTypeRefs,
		MigrationTypeVersionStamp,
	}
}

// Change represents a single mutation applied to the document
type Change struct {
	// Type identifies the category of migration
	Type MigrationType
	// Path is the dotted path to the changed location (e.g., "components.schemas")
	Path string
	// Description is a human-readable description of the change
	Description string
	// Before is the value before the change (nil if adding a new element)
	Before any
	// After is the value that was set (nil if removing an element)
	After any
}

// MigrationResult contains the results of a migration run
type MigrationResult struct {
	// Document is the migrated document, mutated in place
	Document *document.Document
	// SourcePath is the path the document was loaded from, if any
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat document.SourceFormat
	// Changes contains all mutations applied, in document order
	Changes []Change
	// ChangeCount is the total number of mutations applied
	ChangeCount int
	// Success is true if the migration completed without errors
	Success bool
}

// HasChanges returns true if any mutations were applied
func (r *MigrationResult) HasChanges() bool {
	return r.ChangeCount > 0
}

// Migrator applies the 2.0 to 3.0 layout migration
type Migrator struct {
	// EnabledMigrations specifies which migrations to apply.
	// If nil or empty, DefaultMigrations() is used.
	EnabledMigrations []MigrationType
	// Logger receives debug output during migration. Nil disables logging.
	Logger Logger
}

// New creates a new Migrator instance with default settings
func New() *Migrator {
	return &Migrator{}
}

// Migrate loads the document at path and applies the enabled migrations.
func (m *Migrator) Migrate(path string) (*MigrationResult, error) {
	doc, err := document.Load(path)
	if err != nil {
		return nil, fmt.Errorf("migrator: loading document: %w", err)
	}
	return m.MigrateDocument(doc)
}

// MigrateDocument applies the enabled migrations to an already-loaded
// document, mutating its tree in place.
//
// The relocations only apply when the document root is a mapping; any
// other root is left alone, matching the behavior of membership checks on
// non-mapping roots. The $ref rewrite applies to every node regardless.
func (m *Migrator) MigrateDocument(doc *document.Document) (*MigrationResult, error) {
	result := &MigrationResult{
		Document:     doc,
		SourcePath:   doc.SourcePath,
		SourceFormat: doc.Format,
	}

	if root, ok := doc.Mapping(); ok {
		for _, rel := range relocations {
			if !m.isEnabled(rel.typ) {
				continue
			}
			if err := m.relocate(root, rel, result); err != nil {
				return nil, fmt.Errorf("migrator: %w", err)
			}
		}
		if m.isEnabled(MigrationTypeVersionStamp) {
			m.stampVersion(root, result)
		}
	}

	if m.isEnabled(MigrationTypeRefs) {
		m.rewriteRefs(doc.Root, "", m.refMappings(), result)
	}

	result.ChangeCount = len(result.Changes)
	result.Success = true
	m.log().Debug("migration complete", "changes", result.ChangeCount, "source", doc.SourcePath)
	return result, nil
}

// isEnabled checks if a migration type should be applied
func (m *Migrator) isEnabled(typ MigrationType) bool {
	enabled := m.EnabledMigrations
	if len(enabled) == 0 {
		enabled = DefaultMigrations()
	}
	for _, t := range enabled {
		if t == typ {
			return true
		}
	}
	return false
}

// Option is a function that configures a migration operation
type Option func(*migrateConfig) error

// migrateConfig holds configuration for a migration operation
type migrateConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	doc      *document.Document

	// Configuration options
	migrations []MigrationType
	logger     Logger
}

// MigrateWithOptions migrates a document using functional options.
// This combines input source selection and configuration in a single call.
//
// Example:
//
//	result, err := migrator.MigrateWithOptions(
//	    migrator.WithFilePath("docs/openapi.json"),
//	    migrator.WithMigrations(migrator.AllMigrations()...),
//	)
func MigrateWithOptions(opts ...Option) (*MigrationResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("migrator: invalid options: %w", err)
	}

	m := &Migrator{
		EnabledMigrations: cfg.migrations,
		Logger:            cfg.logger,
	}

	if cfg.filePath != nil {
		return m.Migrate(*cfg.filePath)
	}
	return m.MigrateDocument(cfg.doc)
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*migrateConfig, error) {
	cfg := &migrateConfig{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	sources := 0
	if cfg.filePath != nil {
		sources++
	}
	if cfg.doc != nil {
		sources++
	}

	if sources == 0 {
		return nil, fmt.Errorf("no input source specified: use WithFilePath or WithDocument")
	}
	if sources > 1 {
		return nil, fmt.Errorf("multiple input sources specified: use only one of WithFilePath or WithDocument")
	}

	return cfg, nil
}

// WithFilePath specifies the file path to migrate
func WithFilePath(path string) Option {
	return func(cfg *migrateConfig) error {
		if path == "" {
			return fmt.Errorf("file path cannot be empty")
		}
		cfg.filePath = &path
		return nil
	}
}

// WithDocument specifies an already-loaded document to migrate
func WithDocument(doc *document.Document) Option {
	return func(cfg *migrateConfig) error {
		if doc == nil {
			return fmt.Errorf("document cannot be nil")
		}
		cfg.doc = doc
		return nil
	}
}

// WithMigrations specifies which migrations to apply
func WithMigrations(migrations ...MigrationType) Option {
	return func(cfg *migrateConfig) error {
		cfg.migrations = migrations
		return nil
	}
}

// WithLogger sets the logger used during migration
func WithLogger(logger Logger) Option {
	return func(cfg *migrateConfig) error {
		cfg.logger = logger
		return nil
	}
}
