package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Document keys
const (
	KeyVersion        = "version"
	KeyMainTarget     = "mainTarget"
	KeyMainTargetOld  = "main_target"
	KeyTargets        = "targets"
	KeyDependPackages = "dependPackages"
	KeyType           = "type"
	KeySrc            = "src"
	KeySources        = "sources"
	KeyDependLibs     = "dependLibs"
	KeyAutolink       = "autolink"
)

// schemaShape identifies which historical manifest layout a document uses.
type schemaShape int

const (
	shapeImplicit schemaShape = iota // no main-target key: first executable wins
	shapeCurrent                     // mainTarget
	shapeLegacy                      // main_target
)

// mainTargetDecoders maps each shape to the rule extracting its explicit main target.
var mainTargetDecoders = map[schemaShape]func(root *yaml.Node) (string, error){
	shapeImplicit: func(*yaml.Node) (string, error) { return "", nil },
	shapeCurrent:  decodeMainTargetKey(KeyMainTarget),
	shapeLegacy:   decodeMainTargetKey(KeyMainTargetOld),
}

// Parse converts a YAML node tree into a Manifest, enforcing required fields,
// defaults and the main-target rules. It accepts both the current and the
// legacy schema layout.
func Parse(doc *yaml.Node) (*Manifest, error) {
	root := documentRoot(doc)
	if root == nil || root.Kind != yaml.MappingNode {
		return nil, schemaErr(KeyTargets, ErrMissingOrWrongType)
	}

	targetsNode := lookup(root, KeyTargets)
	if targetsNode == nil || targetsNode.Kind != yaml.MappingNode {
		return nil, schemaErr(KeyTargets, ErrMissingOrWrongType)
	}

	m := &Manifest{}

	if v := lookup(root, KeyVersion); v != nil && v.Kind == yaml.ScalarNode && !isNull(v) {
		m.Version = v.Value
	}

	seen := make(map[string]bool, len(targetsNode.Content)/2)
	for i := 0; i+1 < len(targetsNode.Content); i += 2 {
		key := resolveAlias(targetsNode.Content[i])
		if key.Kind != yaml.ScalarNode || isNull(key) || key.Value == "" {
			return nil, schemaErr(KeyTargets, fmt.Errorf("%w: target name must be a non-empty string", ErrMissingOrWrongType))
		}
		if seen[key.Value] {
			return nil, schemaErr(KeyTargets+"."+key.Value, ErrDuplicateTarget)
		}
		seen[key.Value] = true

		target, err := parseTarget(key.Value, resolveAlias(targetsNode.Content[i+1]))
		if err != nil {
			return nil, err
		}
		m.Targets = append(m.Targets, target)
	}

	shape := detectShape(root)
	explicit, err := mainTargetDecoders[shape](root)
	if err != nil {
		return nil, err
	}
	if shape != shapeImplicit {
		t, ok := m.Target(explicit)
		if !ok || t.Type != Executable {
			return nil, schemaErr(mainTargetKeyFor(shape), fmt.Errorf("%w: %q", ErrInvalidMainTarget, explicit))
		}
		m.MainTarget = explicit
	} else {
		for _, t := range m.Targets {
			if t.Type == Executable {
				m.MainTarget = t.Name
				break
			}
		}
	}

	pkgs, err := parseDependPackages(lookup(root, KeyDependPackages))
	if err != nil {
		return nil, err
	}
	m.DependPackages = pkgs

	return m, nil
}

// detectShape picks the layout by the main-target key present. The current
// key takes precedence when a document carries both.
func detectShape(root *yaml.Node) schemaShape {
	if v := lookup(root, KeyMainTarget); v != nil && !isNull(v) {
		return shapeCurrent
	}
	if v := lookup(root, KeyMainTargetOld); v != nil && !isNull(v) {
		return shapeLegacy
	}
	return shapeImplicit
}

func mainTargetKeyFor(shape schemaShape) string {
	if shape == shapeLegacy {
		return KeyMainTargetOld
	}
	return KeyMainTarget
}

func decodeMainTargetKey(key string) func(root *yaml.Node) (string, error) {
	return func(root *yaml.Node) (string, error) {
		v := lookup(root, key)
		if v == nil || v.Kind != yaml.ScalarNode {
			return "", schemaErr(key, ErrMissingOrWrongType)
		}
		return v.Value, nil
	}
}

func parseTarget(name string, node *yaml.Node) (Target, error) {
	field := KeyTargets + "." + name
	if node.Kind != yaml.MappingNode {
		return Target{}, schemaErr(field, ErrMissingOrWrongType)
	}

	target := Target{Name: name, Type: Executable}

	if typeNode := lookup(node, KeyType); typeNode != nil && !isNull(typeNode) {
		if typeNode.Kind != yaml.ScalarNode {
			return Target{}, schemaErr(field+"."+KeyType, ErrInvalidTargetType)
		}
		t, err := ParseTargetType(typeNode.Value)
		if err != nil {
			return Target{}, schemaErr(field+"."+KeyType, err)
		}
		target.Type = t
	}

	srcKey := KeySrc
	srcNode := lookup(node, KeySrc)
	if srcNode == nil {
		srcKey = KeySources
		srcNode = lookup(node, KeySources)
	}
	if srcNode == nil {
		return Target{}, schemaErr(field+"."+KeySrc, ErrMissingOrWrongType)
	}
	sources, err := decodeStringSeq(srcNode)
	if err != nil {
		return Target{}, schemaErr(field+"."+srcKey, err)
	}
	if len(sources) == 0 {
		return Target{}, schemaErr(field+"."+srcKey, ErrEmptySources)
	}
	target.Sources = sources

	if libsNode := lookup(node, KeyDependLibs); libsNode != nil && !isNull(libsNode) {
		libs, err := decodeStringSeq(libsNode)
		if err != nil {
			return Target{}, schemaErr(field+"."+KeyDependLibs, err)
		}
		target.DependLibs = dedupe(libs)
	}

	return target, nil
}

func parseDependPackages(node *yaml.Node) ([]DependencyPackage, error) {
	if node == nil || isNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, schemaErr(KeyDependPackages, ErrMissingOrWrongType)
	}

	var pkgs []DependencyPackage
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := resolveAlias(node.Content[i])
		if key.Kind != yaml.ScalarNode || key.Value == "" {
			return nil, schemaErr(KeyDependPackages, ErrMissingOrWrongType)
		}
		field := KeyDependPackages + "." + key.Value

		pkg := DependencyPackage{Name: key.Value, Autolink: true}
		value := resolveAlias(node.Content[i+1])
		switch {
		case isNull(value):
		case value.Kind == yaml.MappingNode:
			if al := lookup(value, KeyAutolink); al != nil && !isNull(al) {
				var b bool
				if al.Kind != yaml.ScalarNode || al.Decode(&b) != nil {
					return nil, schemaErr(field+"."+KeyAutolink, ErrMissingOrWrongType)
				}
				pkg.Autolink = b
			}
		default:
			return nil, schemaErr(field, ErrMissingOrWrongType)
		}
		pkgs = append(pkgs, pkg)
	}
	return pkgs, nil
}

// decodeStringSeq reads a sequence of scalars. Nested collections are a schema
// violation rather than a value.
func decodeStringSeq(node *yaml.Node) ([]string, error) {
	node = resolveAlias(node)
	if node.Kind != yaml.SequenceNode {
		return nil, fmt.Errorf("%w: expected a sequence of strings", ErrMissingOrWrongType)
	}
	out := make([]string, 0, len(node.Content))
	for _, elem := range node.Content {
		elem = resolveAlias(elem)
		if elem.Kind != yaml.ScalarNode || isNull(elem) {
			return nil, fmt.Errorf("%w: sequence element must be a string", ErrMissingOrWrongType)
		}
		out = append(out, elem.Value)
	}
	return out, nil
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil
		}
		return resolveAlias(doc.Content[0])
	}
	return resolveAlias(doc)
}

// lookup returns the value for key in a mapping node, or nil.
func lookup(m *yaml.Node, key string) *yaml.Node {
	if m == nil || m.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return resolveAlias(m.Content[i+1])
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
