package manifest

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Document is the raw YAML tree of a manifest. Edits go through the node tree
// so comments, key order and unrelated content survive a rewrite.
type Document struct {
	root *yaml.Node
}

// ParseDocument decodes raw YAML into a Document
func ParseDocument(data []byte) (*Document, error) {
	node, err := decodeNode(data)
	if err != nil {
		return nil, err
	}
	return &Document{root: node}, nil
}

// NewProjectDocument builds the initial manifest written by init: one
// executable target named after the project with a single main.cpp source.
func NewProjectDocument(projectName, version string) *Document {
	target := mappingNode()
	setKey(target, KeySrc, stringSeq("main.cpp"))

	targets := mappingNode()
	setKey(targets, projectName, target)

	root := mappingNode()
	if version != "" {
		setKey(root, KeyVersion, stringNode(version))
	}
	setKey(root, KeyMainTarget, stringNode(projectName))
	setKey(root, KeyTargets, targets)

	return &Document{root: &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{root}}}
}

// Bytes serializes the document with two-space indentation
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Manifest parses the document into a Manifest
func (d *Document) Manifest() (*Manifest, error) {
	return Parse(d.root)
}

// mapping returns the root mapping, creating it for an empty document.
func (d *Document) mapping() *yaml.Node {
	if d.root == nil {
		d.root = &yaml.Node{Kind: yaml.DocumentNode}
	}
	if d.root.Kind != yaml.DocumentNode {
		d.root = &yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{d.root}}
	}
	if len(d.root.Content) == 0 || isNull(d.root.Content[0]) {
		d.root.Content = []*yaml.Node{mappingNode()}
	}
	return resolveAlias(d.root.Content[0])
}

// section returns the mapping under key, replacing a null or missing value
// with an empty mapping. The bool reports whether a usable mapping exists.
func (d *Document) section(key string) (*yaml.Node, bool) {
	root := d.mapping()
	if root.Kind != yaml.MappingNode {
		return nil, false
	}
	v := lookup(root, key)
	switch {
	case v == nil:
		v = mappingNode()
		setKey(root, key, v)
	case isNull(v):
		m := mappingNode()
		setKey(root, key, m)
		v = m
	case v.Kind != yaml.MappingNode:
		return nil, false
	}
	return v, true
}

// explicitMainTarget returns the main-target value of whichever key the
// document uses.
func (d *Document) explicitMainTarget() string {
	root := d.mapping()
	shape := detectShape(root)
	if shape == shapeImplicit {
		return ""
	}
	v := lookup(root, mainTargetKeyFor(shape))
	if v == nil || v.Kind != yaml.ScalarNode {
		return ""
	}
	return v.Value
}

func hasKey(m *yaml.Node, key string) bool {
	return lookup(m, key) != nil
}

// setKey replaces the value of key in place, or appends the pair.
func setKey(m *yaml.Node, key string, value *yaml.Node) {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content[i+1] = value
			return
		}
	}
	m.Content = append(m.Content, stringNode(key), value)
}

// deleteKey removes key from the mapping and reports whether it was present.
func deleteKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			m.Content = append(m.Content[:i], m.Content[i+2:]...)
			return true
		}
	}
	return false
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func emptyFlowMapping() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
}

func stringNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func stringSeq(values ...string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, v := range values {
		seq.Content = append(seq.Content, stringNode(v))
	}
	return seq
}
