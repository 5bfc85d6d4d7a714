package tree

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Iron-Ham/prodpath/internal/errors"
	"github.com/Iron-Ham/prodpath/internal/util"
)

// maxQuoted bounds how much of an offending scalar is echoed in errors.
const maxQuoted = 32

// Decode reads a whole YAML or JSON document from r and builds a tree from it.
// See Unmarshal for the accepted shapes.
func Decode(r io.Reader) (*Node, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read tree")
	}
	return Unmarshal(data)
}

// Unmarshal builds a tree from a YAML or JSON document that is either a
// breadth-first list of values with null holes, or a nested mapping with
// "value", "left" and "right" keys. An empty document, null or an empty list
// yields a nil tree.
func Unmarshal(data []byte) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewInputError("parse document", fmt.Errorf("%w: %v", errors.ErrInvalidTree, err))
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	top := doc.Content[0]
	switch {
	case isNull(top):
		return nil, nil
	case top.Kind == yaml.SequenceNode:
		return fromLevelOrder(top.Content)
	case top.Kind == yaml.MappingNode:
		return fromMapping(top)
	default:
		return nil, errors.NewInputError("expected a list or a mapping", errors.ErrInvalidTree).WithPosition(top.Line)
	}
}

// ParseLevelOrder parses a breadth-first list such as "[10, 4, -2, null, 7]".
func ParseLevelOrder(s string) (*Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(s), &doc); err != nil {
		return nil, errors.NewInputError("parse level order", fmt.Errorf("%w: %v", errors.ErrInvalidTree, err))
	}
	if doc.Kind == 0 || len(doc.Content) == 0 || doc.Content[0].Kind != yaml.SequenceNode {
		return nil, errors.NewInputError("expected a list like [1, 2, null, 3]", errors.ErrInvalidTree)
	}
	return fromLevelOrder(doc.Content[0].Content)
}

// FormatLevelOrder renders root as a breadth-first list, the inverse of
// ParseLevelOrder. Trailing nulls are trimmed.
func FormatLevelOrder(root *Node) string {
	var items []string
	queue := []*Node{root}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		if n == nil {
			items = append(items, "null")
			continue
		}
		items = append(items, strconv.FormatInt(n.Value, 10))
		queue = append(queue, n.Left, n.Right)
	}
	for len(items) > 0 && items[len(items)-1] == "null" {
		items = items[:len(items)-1]
	}
	return "[" + strings.Join(items, ",") + "]"
}

func isNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}

func scalarValue(n *yaml.Node) (int64, error) {
	var v int64
	if n.Kind != yaml.ScalarNode {
		return 0, fmt.Errorf("expected integer, got %s", kindName(n.Kind))
	}
	// Decode would silently truncate floats, so insist on the int tag first.
	if n.ShortTag() != "!!int" {
		return 0, fmt.Errorf("expected integer, got %s", util.QuoteTruncated(n.Value, maxQuoted))
	}
	if err := n.Decode(&v); err != nil {
		return 0, fmt.Errorf("expected integer, got %s", util.QuoteTruncated(n.Value, maxQuoted))
	}
	return v, nil
}

func fromLevelOrder(items []*yaml.Node) (*Node, error) {
	nodes := make([]*Node, len(items))
	for i, item := range items {
		if isNull(item) {
			continue
		}
		v, err := scalarValue(item)
		if err != nil {
			return nil, errors.NewInputError(err.Error(), errors.ErrInvalidTree).WithPosition(i)
		}
		nodes[i] = New(v)
	}

	if len(nodes) == 0 {
		return nil, nil
	}

	root := nodes[0]
	var queue []*Node
	if root != nil {
		queue = append(queue, root)
	}
	i := 1
	for len(queue) > 0 && i < len(nodes) {
		parent := queue[0]
		queue = queue[1:]

		if parent.Left = nodes[i]; parent.Left != nil {
			queue = append(queue, parent.Left)
		}
		i++
		if i < len(nodes) {
			if parent.Right = nodes[i]; parent.Right != nil {
				queue = append(queue, parent.Right)
			}
			i++
		}
	}
	for ; i < len(nodes); i++ {
		if nodes[i] != nil {
			return nil, errors.NewInputError("value has no parent", errors.ErrInvalidTree).WithPosition(i)
		}
	}
	return root, nil
}

func fromMapping(m *yaml.Node) (*Node, error) {
	n := &Node{}
	hasValue := false
	seen := make(map[string]bool, 3)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		field := key.Value
		if field == "val" {
			field = "value"
		}
		if seen[field] {
			return nil, errors.NewInputError("duplicate key "+util.QuoteTruncated(key.Value, maxQuoted), errors.ErrInvalidTree).WithPosition(key.Line)
		}
		seen[field] = true

		switch key.Value {
		case "value", "val":
			v, err := scalarValue(val)
			if err != nil {
				return nil, errors.NewInputError(err.Error(), errors.ErrInvalidTree).WithPosition(val.Line)
			}
			n.Value = v
			hasValue = true
		case "left", "right":
			var child *Node
			if !isNull(val) {
				if val.Kind != yaml.MappingNode {
					return nil, errors.NewInputError(key.Value+" must be a mapping or null", errors.ErrInvalidTree).WithPosition(val.Line)
				}
				var err error
				if child, err = fromMapping(val); err != nil {
					return nil, err
				}
			}
			if key.Value == "left" {
				n.Left = child
			} else {
				n.Right = child
			}
		default:
			return nil, errors.NewInputError("unknown key "+util.QuoteTruncated(key.Value, maxQuoted), errors.ErrInvalidTree).WithPosition(key.Line)
		}
	}
	if !hasValue {
		return nil, errors.NewInputError("node has no value", errors.ErrInvalidTree).WithPosition(m.Line)
	}
	return n, nil
}

func kindName(k yaml.Kind) string {
	switch k {
	case yaml.SequenceNode:
		return "list"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	default:
		return "scalar"
	}
}
