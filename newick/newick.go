// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements an in-memory representation
// of a phylogenetic tree with branch lengths,
// read from, and written to,
// newick (parenthetical) tree files.
//
// Nodes are stored in a contiguous arena
// and identified by integer IDs,
// so that a node is referenced by its ID
// instead of a pointer.
// The root node always has the ID 0
// and a parent of -1.
package newick

import (
	"fmt"
	"slices"
)

// A Tree is a rooted phylogenetic tree,
// either bifurcating or multifurcating,
// with branch lengths on its edges.
type Tree struct {
	nodes []*node
}

type node struct {
	id       int
	parent   int
	children []int

	// taxon is the name of a terminal,
	// or the label of an internal node
	// (which might be empty).
	taxon string

	// brLen is the length of the branch
	// between the node and its parent.
	// hasLen indicates that the length
	// was defined explicitly.
	brLen  float64
	hasLen bool
}

// NewRoot creates a new tree
// with a single root node.
func NewRoot(label string) *Tree {
	t := &Tree{}
	t.nodes = append(t.nodes, &node{
		id:     0,
		parent: -1,
		taxon:  label,
	})
	return t
}

// Add adds a new node as a child of the indicated node,
// and returns the ID of the added node.
// It returns an error if the parent node is not defined.
func (t *Tree) Add(parent int, label string, brLen float64) (int, error) {
	if parent < 0 || parent >= len(t.nodes) {
		return -1, fmt.Errorf("parent node %d: undefined", parent)
	}
	id := len(t.nodes)
	n := &node{
		id:     id,
		parent: parent,
		taxon:  label,
		brLen:  brLen,
		hasLen: true,
	}
	t.nodes = append(t.nodes, n)
	p := t.nodes[parent]
	p.children = append(p.children, id)
	return id, nil
}

// AddNoLen adds a new node without a defined branch length.
func (t *Tree) AddNoLen(parent int, label string) (int, error) {
	id, err := t.Add(parent, label, 0)
	if err != nil {
		return -1, err
	}
	t.nodes[id].hasLen = false
	return id, nil
}

// BrLen returns the length of the branch
// between a node and its parent.
// The branch length of the root is always zero.
func (t *Tree) BrLen(id int) float64 {
	if id < 0 || id >= len(t.nodes) {
		return 0
	}
	return t.nodes[id].brLen
}

// HasBrLen returns true if the branch length
// between the node and its parent
// was defined explicitly.
func (t *Tree) HasBrLen(id int) bool {
	if id < 0 || id >= len(t.nodes) {
		return false
	}
	return t.nodes[id].hasLen
}

// Children returns the IDs of the children of a node.
func (t *Tree) Children(id int) []int {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	n := t.nodes[id]
	return slices.Clone(n.children)
}

// Copy returns a deep copy of a tree.
func (t *Tree) Copy() *Tree {
	nt := &Tree{
		nodes: make([]*node, 0, len(t.nodes)),
	}
	for _, n := range t.nodes {
		nc := &node{
			id:       n.id,
			parent:   n.parent,
			children: slices.Clone(n.children),
			taxon:    n.taxon,
			brLen:    n.brLen,
			hasLen:   n.hasLen,
		}
		nt.nodes = append(nt.nodes, nc)
	}
	return nt
}

// Depth returns the sum of the branch lengths
// in the path between a node and the root.
func (t *Tree) Depth(id int) float64 {
	var d float64
	for id > 0 {
		n := t.nodes[id]
		d += n.brLen
		id = n.parent
	}
	return d
}

// IsRoot returns true if the indicated node
// is the root of the tree.
func (t *Tree) IsRoot(id int) bool {
	return id == 0
}

// IsTerm returns true if the indicated node
// is a terminal of the tree.
func (t *Tree) IsTerm(id int) bool {
	if id < 0 || id >= len(t.nodes) {
		return false
	}
	return len(t.nodes[id].children) == 0
}

// Label returns the label of a node,
// which is the taxon name for a terminal,
// and might be empty for internal nodes.
func (t *Tree) Label(id int) string {
	if id < 0 || id >= len(t.nodes) {
		return ""
	}
	return t.nodes[id].taxon
}

// Len returns the number of nodes of the tree.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Parent returns the ID of the parent
// of the indicated node.
// The parent of the root is -1.
func (t *Tree) Parent(id int) int {
	if id < 0 || id >= len(t.nodes) {
		return -1
	}
	return t.nodes[id].parent
}

// Root returns the ID of the root node,
// which is always 0.
func (t *Tree) Root() int {
	return 0
}

// SetLabel sets the label of a node.
func (t *Tree) SetLabel(id int, label string) {
	if id < 0 || id >= len(t.nodes) {
		return
	}
	t.nodes[id].taxon = label
}

// TermNode returns the ID of the terminal
// with the indicated taxon name.
// It returns -1 if the taxon is not in the tree.
func (t *Tree) TermNode(name string) int {
	for _, n := range t.nodes {
		if len(n.children) > 0 {
			continue
		}
		if n.taxon == name {
			return n.id
		}
	}
	return -1
}

// Terms returns the taxon names of the tree terminals
// in tree order
// (i.e., the order in which the terminals are found
// in a pre-order traversal of the tree).
// This order is used by all taxtree packages
// whenever a deterministic iteration over terminals
// is required.
func (t *Tree) Terms() []string {
	var terms []string
	for _, id := range t.TermNodes() {
		terms = append(terms, t.nodes[id].taxon)
	}
	return terms
}

// TermNodes returns the IDs of the tree terminals
// in tree order.
func (t *Tree) TermNodes() []int {
	var ids []int
	t.walkTerms(0, &ids)
	return ids
}

func (t *Tree) walkTerms(id int, ids *[]int) {
	n := t.nodes[id]
	if len(n.children) == 0 {
		*ids = append(*ids, id)
		return
	}
	for _, c := range n.children {
		t.walkTerms(c, ids)
	}
}

// Subtree returns the taxon names of the terminals
// that descend from the indicated node,
// in tree order.
func (t *Tree) Subtree(id int) []string {
	if id < 0 || id >= len(t.nodes) {
		return nil
	}
	var ids []int
	t.walkTerms(id, &ids)
	terms := make([]string, 0, len(ids))
	for _, v := range ids {
		terms = append(terms, t.nodes[v].taxon)
	}
	return terms
}
