// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rooting

import (
	"fmt"

	"github.com/js-arias/taxtree/newick"
)

// RootOutgroup roots a tree at the branch
// above the smallest clade
// that contains all the outgroup terminals.
// The outgroup clade keeps its original branch length,
// and the branch to the rest of the tree
// is set to zero,
// so every branch length of the input tree
// is preserved.
func rootOutgroup(t *newick.Tree, outgroup []string) (*newick.Tree, error) {
	if len(outgroup) == 0 {
		return nil, &RootingError{Method: Outgroup, Msg: "no outgroup defined"}
	}

	ids := make([]int, 0, len(outgroup))
	for _, nm := range outgroup {
		id := t.TermNode(nm)
		if id < 0 {
			return nil, &RootingError{Method: Outgroup, Msg: fmt.Sprintf("terminal %q not in tree", nm)}
		}
		ids = append(ids, id)
	}

	clade := t.MRCA(ids...)
	if t.IsRoot(clade) {
		return nil, &RootingError{Method: Outgroup, Msg: "outgroup clade spans the whole tree"}
	}

	if t.IsRoot(t.Parent(clade)) && len(t.Children(t.Root())) == 2 {
		// the tree is already rooted at the outgroup branch
		return t.Copy(), nil
	}
	return rerootEdge(t, clade, t.BrLen(clade), 0, t.HasBrLen(clade)), nil
}
