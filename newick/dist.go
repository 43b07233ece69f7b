// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

// Dist returns the patristic distance
// between two nodes,
// that is the sum of the branch lengths
// of the path that connects them.
func (t *Tree) Dist(a, b int) float64 {
	if a < 0 || a >= len(t.nodes) {
		return 0
	}
	if b < 0 || b >= len(t.nodes) {
		return 0
	}

	up := make(map[int]float64)
	var d float64
	for {
		up[a] = d
		if a == 0 {
			break
		}
		d += t.nodes[a].brLen
		a = t.nodes[a].parent
	}

	d = 0
	for {
		if v, ok := up[b]; ok {
			return d + v
		}
		d += t.nodes[b].brLen
		b = t.nodes[b].parent
	}
}

// MRCA returns the most recent common ancestor
// of a set of nodes.
// It returns -1 if no node is given.
func (t *Tree) MRCA(ids ...int) int {
	if len(ids) == 0 {
		return -1
	}
	m := ids[0]
	if m < 0 || m >= len(t.nodes) {
		return -1
	}
	for _, id := range ids[1:] {
		if id < 0 || id >= len(t.nodes) {
			return -1
		}
		m = t.pairMRCA(m, id)
	}
	return m
}

func (t *Tree) pairMRCA(a, b int) int {
	up := make(map[int]bool)
	for {
		up[a] = true
		if a == 0 {
			break
		}
		a = t.nodes[a].parent
	}
	for {
		if up[b] {
			return b
		}
		b = t.nodes[b].parent
	}
}
