// Package document loads and saves API description documents as a generic
// tree of nested mappings, sequences, and primitives.
//
// The tree is deliberately untyped: a Document makes no assumptions about
// OpenAPI structure beyond being YAML or JSON. Key order from the source is
// retained so that a load/save round trip produces minimal diffs.
package document

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/swagfix/swagfix/swagerrors"
	"go.yaml.in/yaml/v4"
)

// Document is an in-memory API description document.
//
// Root holds the generic tree: map[string]any for mappings, []any for
// sequences, and string/int/float64/bool/nil for primitives. Mutating Root
// (as the migrator does) is supported; keys added after loading are emitted
// after the original keys on save.
type Document struct {
	// Root is the document tree. For OpenAPI documents this is a
	// map[string]any, but any well-formed YAML/JSON value is accepted.
	Root any
	// Format is the detected source format, which Save and Marshal honor.
	Format SourceFormat
	// SourcePath is the path the document was loaded from, if any.
	SourcePath string
	// SourceSize is the size of the source content in bytes.
	SourceSize int64

	// sourceNode retains the parsed YAML node tree so key order from the
	// source survives re-serialization.
	sourceNode *yaml.Node
}

// Load reads and parses the document at path.
//
// The format is detected from the file extension first, then from the
// content. Returns a [swagerrors.IOError] if the file cannot be read and a
// [swagerrors.ParseError] if the content is not well-formed YAML/JSON.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304 - path is user-provided input (CLI tool)
	if err != nil {
		return nil, &swagerrors.IOError{Path: path, Op: "read", Cause: err}
	}

	doc, err := Parse(data)
	if err != nil {
		var parseErr *swagerrors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.Path = path
		}
		return nil, err
	}

	doc.SourcePath = path
	if format := detectFormatFromPath(path); format != SourceFormatUnknown {
		doc.Format = format
	}
	return doc, nil
}

// LoadReader reads and parses a document from r, typically stdin.
// The format is detected from the content.
func LoadReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &swagerrors.IOError{Op: "read", Cause: err}
	}
	return Parse(data)
}

// Parse parses raw document content. YAML is a superset of JSON here, so a
// single decode handles both formats; the original format is detected from
// the content so Marshal can reproduce it.
func Parse(data []byte) (*Document, error) {
	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &swagerrors.ParseError{Message: "invalid YAML/JSON", Cause: err}
	}

	doc := &Document{
		Root:       normalizeKeys(root),
		Format:     detectFormatFromContent(data),
		SourceSize: int64(len(data)),
	}

	// Keep the node tree for order-preserving marshaling. The generic decode
	// above already succeeded, so this cannot fail on the same input.
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err == nil {
		doc.sourceNode = &node
	}

	return doc, nil
}

// normalizeKeys rewrites mappings decoded as map[any]any into
// map[string]any. The YAML decoder produces map[any]any for any mapping
// with a non-string key, which Swagger documents hit routinely through
// numeric response codes (responses: {200: ...}). Converting up front means
// the rest of the module only ever sees string-keyed mappings, which JSON
// output requires anyway.
func normalizeKeys(val any) any {
	switch v := val.(type) {
	case map[string]any:
		for k, item := range v {
			v[k] = normalizeKeys(item)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, item := range v {
			m[keyString(k)] = normalizeKeys(item)
		}
		return m
	case []any:
		for i, item := range v {
			v[i] = normalizeKeys(item)
		}
		return v
	default:
		return val
	}
}

// keyString renders a mapping key the same way the YAML node tree does, so
// normalized keys still line up with sourceKeys for order preservation.
func keyString(k any) string {
	if s, ok := k.(string); ok {
		return s
	}
	return fmt.Sprint(k)
}

// HasPreservedOrder returns true if this Document retains the original key
// ordering from its source content.
func (d *Document) HasPreservedOrder() bool {
	return d.sourceNode != nil
}

// Mapping returns the root as a mapping. The second return value is false
// when the root is a sequence or primitive.
func (d *Document) Mapping() (map[string]any, bool) {
	m, ok := d.Root.(map[string]any)
	return m, ok
}

// String describes the document for diagnostics.
func (d *Document) String() string {
	src := d.SourcePath
	if src == "" {
		src = "<memory>"
	}
	return fmt.Sprintf("document(%s, %s, %d bytes)", src, d.Format, d.SourceSize)
}
