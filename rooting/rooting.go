// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rooting implements the rooting
// of a phylogenetic tree,
// either at the midpoint of the two most distant terminals,
// or at the branch above a designated outgroup.
package rooting

import (
	"fmt"

	"github.com/js-arias/taxtree/newick"
)

// Method is a tree rooting method.
type Method int

// Valid rooting methods.
const (
	// None uses the tree as it is given.
	None Method = iota

	// Midpoint roots the tree at the point
	// equidistant from the two most distant terminals.
	Midpoint

	// Outgroup roots the tree at the branch
	// above the smallest clade
	// that contains the outgroup terminals.
	Outgroup
)

// ParseMethod returns a rooting method
// from a string.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "none":
		return None, nil
	case "midpoint":
		return Midpoint, nil
	case "outgroup":
		return Outgroup, nil
	}
	return None, fmt.Errorf("unknown rooting method %q", s)
}

func (m Method) String() string {
	switch m {
	case None:
		return "none"
	case Midpoint:
		return "midpoint"
	case Outgroup:
		return "outgroup"
	}
	return "unknown"
}

// RootingError is an error produced
// when a tree cannot be rooted
// with the requested method.
type RootingError struct {
	Method Method
	Msg    string
}

func (e *RootingError) Error() string {
	return fmt.Sprintf("rooting: %s: %s", e.Method, e.Msg)
}

// Root returns a new rooted copy of a tree
// using the indicated rooting method.
// The outgroup terminals are used only
// by the outgroup method.
// The input tree is never modified.
//
// Any rooting method preserves the terminal set
// and every branch length of the input tree;
// the only exception is the branch
// split by the midpoint method,
// whose two resulting segments
// sum to the original length.
func Root(t *newick.Tree, m Method, outgroup []string) (*newick.Tree, error) {
	switch m {
	case None:
		return t.Copy(), nil
	case Midpoint:
		return midpoint(t)
	case Outgroup:
		return rootOutgroup(t, outgroup)
	}
	return nil, &RootingError{Method: m, Msg: "unknown method"}
}

// RerootEdge builds a new tree
// rooted at a point of the branch
// between the node child and its parent,
// at distance childLen from child.
// ParentLen is the remaining segment of the branch.
func rerootEdge(t *newick.Tree, child int, childLen, parentLen float64, hasLen bool) *newick.Tree {
	nt := newick.NewRoot("")
	copyClade(t, nt, child, nt.Root(), childLen, hasLen)
	addReversed(t, nt, t.Parent(child), child, nt.Root(), parentLen, hasLen)
	return nt
}

// RerootNode builds a new tree
// rooted at the indicated node.
func rerootNode(t *newick.Tree, id int) *newick.Tree {
	if t.IsRoot(id) {
		return t.Copy()
	}
	nt := newick.NewRoot(t.Label(id))
	for _, c := range t.Children(id) {
		copyClade(t, nt, c, nt.Root(), t.BrLen(c), t.HasBrLen(c))
	}
	addReversed(t, nt, t.Parent(id), id, nt.Root(), t.BrLen(id), t.HasBrLen(id))
	return nt
}

// CopyClade copies the whole clade of srcID,
// as a child of dstParent,
// keeping the descendants in their original order.
func copyClade(src, dst *newick.Tree, srcID, dstParent int, brLen float64, hasLen bool) {
	id := addNode(src, dst, dstParent, srcID, brLen, hasLen)
	for _, c := range src.Children(srcID) {
		copyClade(src, dst, c, id, src.BrLen(c), src.HasBrLen(c))
	}
}

// AddReversed copies a node whose branch was reversed
// by the rerooting:
// its original parent becomes one of its descendants.
// The original child on the path to the new root
// (skip)
// is not copied.
func addReversed(src, dst *newick.Tree, srcID, skip, dstParent int, brLen float64, hasLen bool) {
	id := addNode(src, dst, dstParent, srcID, brLen, hasLen)
	for _, c := range src.Children(srcID) {
		if c == skip {
			continue
		}
		copyClade(src, dst, c, id, src.BrLen(c), src.HasBrLen(c))
	}
	if !src.IsRoot(srcID) {
		addReversed(src, dst, src.Parent(srcID), srcID, id, src.BrLen(srcID), src.HasBrLen(srcID))
	}
}

func addNode(src, dst *newick.Tree, dstParent, srcID int, brLen float64, hasLen bool) int {
	if !hasLen {
		id, _ := dst.AddNoLen(dstParent, src.Label(srcID))
		return id
	}
	id, _ := dst.Add(dstParent, src.Label(srcID), brLen)
	return id
}
