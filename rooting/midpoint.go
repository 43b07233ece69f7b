// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rooting

import (
	"fmt"

	"github.com/js-arias/taxtree/newick"
	"gonum.org/v1/gonum/mat"
)

// Tolerance used to decide if the midpoint
// falls on a node instead of inside a branch.
const eps = 1e-9

// Midpoint roots a tree at the point
// equidistant from the two most distant terminals
// (the terminals that define the tree diameter).
// If several pairs tie for the maximum distance,
// the first pair found in tree order is used.
func midpoint(t *newick.Tree) (*newick.Tree, error) {
	terms := t.TermNodes()
	if len(terms) < 2 {
		return nil, &RootingError{Method: Midpoint, Msg: fmt.Sprintf("tree with %d terminals", len(terms))}
	}

	d := distMatrix(t, terms)

	bu, bv := 0, 1
	max := d.At(0, 1)
	for i := range terms {
		for j := i + 1; j < len(terms); j++ {
			if d.At(i, j) > max {
				max = d.At(i, j)
				bu, bv = i, j
			}
		}
	}
	if max <= eps {
		return nil, &RootingError{Method: Midpoint, Msg: "tree without branch lengths"}
	}

	path := termPath(t, terms[bu], terms[bv])
	target := max / 2

	var acc float64
	for k := 0; k < len(path)-1; k++ {
		a, b := path[k], path[k+1]

		// branch length of the path segment:
		// the branch belongs to the child node,
		// whichever the direction of the path.
		child := a
		if t.Parent(b) == a {
			child = b
		}
		ln := t.BrLen(child)

		if acc+ln < target-eps {
			acc += ln
			continue
		}

		into := target - acc
		if into <= eps {
			return rerootNode(t, a), nil
		}
		if ln-into <= eps {
			return rerootNode(t, b), nil
		}

		// split the branch above child
		childLen := into
		if child == b {
			childLen = ln - into
		}
		return rerootEdge(t, child, childLen, ln-childLen, true), nil
	}

	// the segment lengths along the path sum to the diameter
	// and the target is half of it,
	// so the loop always finds the midpoint
	panic("rooting: midpoint outside the diameter path")
}

// DistMatrix returns the matrix of patristic distances
// between every pair of terminals.
func distMatrix(t *newick.Tree, terms []int) *mat.SymDense {
	d := mat.NewSymDense(len(terms), nil)
	for i := range terms {
		for j := i + 1; j < len(terms); j++ {
			d.SetSym(i, j, t.Dist(terms[i], terms[j]))
		}
	}
	return d
}

// TermPath returns the node path
// that connects two terminals,
// going up from a to the common ancestor,
// and then down to b.
func termPath(t *newick.Tree, a, b int) []int {
	anc := make(map[int]bool)
	for n := a; ; n = t.Parent(n) {
		anc[n] = true
		if t.IsRoot(n) {
			break
		}
	}

	var down []int
	m := b
	for !anc[m] {
		down = append(down, m)
		m = t.Parent(m)
	}

	var path []int
	for n := a; n != m; n = t.Parent(n) {
		path = append(path, n)
	}
	path = append(path, m)
	for i := len(down) - 1; i >= 0; i-- {
		path = append(path, down[i])
	}
	return path
}
