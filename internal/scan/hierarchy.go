package scan

import "fmt"

// NoOwner is the OwnerIndex of a node with no enclosing node in the scanned window.
const NoOwner = -1

// Node is one named construct found by Hierarchy.
type Node struct {
	Kind Kind   `json:"kind" yaml:"kind"`
	Name string `json:"name" yaml:"name"`
	// Depth is the brace balance at this line relative to the cursor line.
	// Moving upward, a closing brace raises it and an opening brace lowers it.
	Depth int `json:"depth" yaml:"depth"`
	// OwnerIndex indexes the enclosing node in the same result, or NoOwner.
	OwnerIndex int      `json:"ownerIndex" yaml:"ownerIndex"`
	Position   Position `json:"position" yaml:"position"`
	Indent     string   `json:"indent" yaml:"indent"`
}

// Hierarchy collects every named construct from the cursor line upward,
// nearest first. Line 0 is not scanned.
//
// When a node is appended, every node collected before it whose depth is
// greater than the new node's depth is pointed at the new node, walking back
// from the most recent and stopping at the first node that is not deeper.
// A node can therefore be re-pointed several times; the farthest shallower
// node wins.
func (s *Scanner) Hierarchy(cursor Position) ([]Node, error) {
	if !s.inRange(cursor.Line) {
		return nil, ErrNotFound
	}

	var nodes []Node
	depth := 0
	for line, examined := cursor.Line, 1; line > 0; line, examined = line-1, examined+1 {
		if s.exceeded(examined) {
			s.logger.Debug("hierarchy scan hit limit", "cursor", cursor.Line, "limit", s.maxLines)
			return nodes, fmt.Errorf("hierarchy from line %d: %w", cursor.Line, ErrScanLimitExceeded)
		}

		raw := s.src.LineText(line)
		code := StripComments(raw)
		kind := Classify(code)
		name := ExtractName(code, kind)
		depth += CountChar(code, '}') - CountChar(code, '{')
		if name == "" {
			continue
		}

		next := len(nodes)
		for i := next - 1; i >= 0 && nodes[i].Depth > depth; i-- {
			nodes[i].OwnerIndex = next
		}
		nodes = append(nodes, Node{
			Kind:       kind,
			Name:       name,
			Depth:      depth,
			OwnerIndex: NoOwner,
			Position:   Position{Line: line},
			Indent:     Indent(raw),
		})
	}

	s.logger.Debug("hierarchy built", "cursor", cursor.Line, "nodes", len(nodes))
	return nodes, nil
}

// Ancestors follows OwnerIndex links from the innermost node (index 0) outward.
func Ancestors(nodes []Node) []Node {
	if len(nodes) == 0 {
		return nil
	}
	chain := []Node{nodes[0]}
	for i := nodes[0].OwnerIndex; i != NoOwner && i < len(nodes); i = nodes[i].OwnerIndex {
		chain = append(chain, nodes[i])
	}
	return chain
}
