package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"go.yaml.in/yaml/v4"
)

// Marshal serializes the document in its source format.
//
// JSON output is indented with 2 spaces, with HTML characters and non-ASCII
// text emitted literally. YAML output uses 2-space indentation. In both
// formats, mapping keys appear in the same order as the source document;
// keys added after loading are appended in sorted order.
func (d *Document) Marshal() ([]byte, error) {
	root := ordered(d.sourceNode, d.Root)
	if d.Format == SourceFormatJSON {
		return marshalJSON(root)
	}
	return marshalYAML(root)
}

func marshalJSON(root any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("document: marshaling JSON: %w", err)
	}
	return buf.Bytes(), nil
}

func marshalYAML(root any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("document: marshaling YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: closing YAML encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// orderedMap is a mapping that serializes its keys in a fixed order, to both
// JSON and YAML. The encoding packages otherwise sort map keys, which would
// shuffle a document on every round trip.
type orderedMap struct {
	keys   []string
	values map[string]any
}

// MarshalJSON writes the mapping compactly in key order. The surrounding
// encoder re-indents the output.
func (m *orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSONValue(&buf, k); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSONValue(&buf, m.values[k]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalYAML returns a mapping node with entries in key order.
func (m *orderedMap) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, k := range m.keys {
		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}
		valNode := &yaml.Node{}
		if err := valNode.Encode(m.values[k]); err != nil {
			return nil, fmt.Errorf("document: encoding value for key %q: %w", k, err)
		}
		node.Content = append(node.Content, keyNode, valNode)
	}
	return node, nil
}

// encodeJSONValue writes a single JSON value without HTML escaping, so that
// characters like '<' and '&' in descriptions survive literally.
func encodeJSONValue(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode terminates the value with a newline; strip it.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// ordered rebuilds val with every mapping replaced by an orderedMap whose
// key order follows node, the corresponding source tree position. Keys not
// present in the source (added during migration) are appended sorted, and a
// nil node yields fully sorted keys for determinism.
func ordered(node *yaml.Node, val any) any {
	if node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			node = nil
		} else {
			node = node.Content[0]
		}
	}

	switch v := val.(type) {
	case map[string]any:
		idx := childIndex(node)
		keys := make([]string, 0, len(v))
		seen := make(map[string]bool, len(v))
		for _, k := range sourceKeys(node) {
			if _, ok := v[k]; ok && !seen[k] {
				keys = append(keys, k)
				seen[k] = true
			}
		}
		var extras []string
		for k := range v {
			if !seen[k] {
				extras = append(extras, k)
			}
		}
		slices.Sort(extras)
		keys = append(keys, extras...)

		values := make(map[string]any, len(v))
		for _, k := range keys {
			values[k] = ordered(idx[k], v[k])
		}
		return &orderedMap{keys: keys, values: values}

	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			var child *yaml.Node
			if node != nil && node.Kind == yaml.SequenceNode && i < len(node.Content) {
				child = node.Content[i]
			}
			out[i] = ordered(child, item)
		}
		return out

	default:
		return val
	}
}

// sourceKeys returns the keys of a mapping node in source order.
func sourceKeys(node *yaml.Node) []string {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	keys := make([]string, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode {
			keys = append(keys, node.Content[i].Value)
		}
	}
	return keys
}

// childIndex maps mapping node keys to their value nodes.
func childIndex(node *yaml.Node) map[string]*yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	idx := make(map[string]*yaml.Node, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Kind == yaml.ScalarNode {
			idx[node.Content[i].Value] = node.Content[i+1]
		}
	}
	return idx
}
