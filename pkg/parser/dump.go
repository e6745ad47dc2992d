package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// DumpJSON writes node as JSON followed by a newline. indent > 0 pretty-prints
// with that many spaces per level; otherwise the output is compact.
func DumpJSON(w io.Writer, node Node, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(node); err != nil {
		return fmt.Errorf("dump json: %w", err)
	}
	return nil
}

// DumpYAML writes node as a YAML document. Keys keep their JSON order, so
// "type" leads every mapping. indent <= 0 uses two spaces.
func DumpYAML(w io.Writer, node Node, indent int) error {
	doc, err := yamlNode(node)
	if err != nil {
		return err
	}

	if indent <= 0 {
		indent = 2
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(indent)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dump yaml: %w", err)
	}
	return enc.Close()
}

// yamlNode goes through the JSON encoding: decoding JSON text into a
// yaml.Node keeps mapping order, which decoding into a map would lose.
func yamlNode(node Node) (*yaml.Node, error) {
	data, err := encodeJSON(node)
	if err != nil {
		return nil, fmt.Errorf("dump yaml: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("dump yaml: %w", err)
	}
	clearStyle(&doc)
	return &doc, nil
}

// clearStyle switches flow collections and quoted scalars parsed from JSON to
// block style, keeping quotes only where a plain scalar would change meaning.
func clearStyle(n *yaml.Node) {
	switch n.Kind {
	case yaml.MappingNode, yaml.SequenceNode:
		n.Style = 0
	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			n.Style = 0
		}
	}
	for _, c := range n.Content {
		clearStyle(c)
	}
}
