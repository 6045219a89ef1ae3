// Package syntax defines the tree produced by the parser and consumed by
// the HIR builder. Only semantically interesting tokens survive as leaves;
// punctuation contributes to composite ranges and is then dropped.
package syntax

import (
	"fmt"
	"strings"

	"quill/internal/source"
)

// Node is one syntax tree node. Leaves carry Text; composites carry
// Children. Range always covers the full extent including dropped
// punctuation.
type Node struct {
	Kind     NodeKind
	Range    source.TextRange
	Text     string
	Children []*Node
}

// NewLeaf builds a leaf node.
func NewLeaf(kind NodeKind, rng source.TextRange, text string) *Node {
	return &Node{Kind: kind, Range: rng, Text: text}
}

// NewNode builds a composite covering the given range.
func NewNode(kind NodeKind, rng source.TextRange, children ...*Node) *Node {
	return &Node{Kind: kind, Range: rng, Children: children}
}

// Add appends a child and widens the node's range to cover it.
func (n *Node) Add(child *Node) {
	if child == nil {
		return
	}
	n.Children = append(n.Children, child)
	if n.Range.Empty() {
		n.Range = child.Range
	} else {
		n.Range = n.Range.Cover(child.Range)
	}
}

// Is reports whether the node exists and has the given kind.
func (n *Node) Is(kind NodeKind) bool {
	return n != nil && n.Kind == kind
}

// FirstOfKind returns the first direct child of the given kind, or nil.
func (n *Node) FirstOfKind(kind NodeKind) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == kind {
			return c
		}
	}
	return nil
}

// NthOfKind returns the i-th (0-based) direct child of the given kind.
func (n *Node) NthOfKind(kind NodeKind, i int) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind != kind {
			continue
		}
		if i == 0 {
			return c
		}
		i--
	}
	return nil
}

// ChildrenOfKind returns all direct children of the given kind.
func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, c := range n.Children {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

// Child returns the i-th direct child, or nil when out of bounds.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// IdentText returns the text of the first Ident child, or "".
func (n *Node) IdentText() string {
	if id := n.FirstOfKind(NodeIdent); id != nil {
		return id.Text
	}
	return ""
}

// OpText returns the text of the first Op child, or "".
func (n *Node) OpText() string {
	if op := n.FirstOfKind(NodeOp); op != nil {
		return op.Text
	}
	return ""
}

// StringValue returns the unquoted, unescaped value of a LitString leaf.
func (n *Node) StringValue() string {
	if n == nil || n.Kind != NodeLitString {
		return ""
	}
	return unquote(n.Text)
}

// DocText joins leading Doc children into the documentation string,
// stripping the comment markers.
func (n *Node) DocText() string {
	if n == nil {
		return ""
	}
	var lines []string
	for _, c := range n.Children {
		if c.Kind != NodeDoc && c.Kind != NodeModuleDoc {
			break
		}
		lines = append(lines, stripDocMarker(c.Text))
	}
	return strings.Join(lines, "\n")
}

func stripDocMarker(text string) string {
	text = strings.TrimPrefix(text, "///")
	text = strings.TrimPrefix(text, "//!")
	return strings.TrimPrefix(text, " ")
}

func unquote(text string) string {
	if len(text) < 2 {
		return text
	}
	body := text[1 : len(text)-1]
	if !strings.ContainsRune(body, '\\') {
		return body
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' || i+1 >= len(body) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case '\'':
			sb.WriteByte('\'')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(body[i])
		}
	}
	return sb.String()
}

// Walk visits n and all descendants in document order. The visitor
// returns false to skip a node's children.
func Walk(n *Node, visit func(*Node) bool) {
	if n == nil || !visit(n) {
		return
	}
	for _, c := range n.Children {
		Walk(c, visit)
	}
}

// Dump renders the tree for tests and debugging.
func Dump(n *Node) string {
	var sb strings.Builder
	dump(&sb, n, 0)
	return sb.String()
}

func dump(sb *strings.Builder, n *Node, depth int) {
	if n == nil {
		return
	}
	sb.WriteString(strings.Repeat("  ", depth))
	if n.Kind.IsLeaf() {
		fmt.Fprintf(sb, "%s %q @ %s\n", n.Kind, n.Text, n.Range)
	} else {
		fmt.Fprintf(sb, "%s @ %s\n", n.Kind, n.Range)
	}
	for _, c := range n.Children {
		dump(sb, c, depth+1)
	}
}
