// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package monophyly finds,
// for every taxon assigned to the terminals of a tree,
// the smallest set of monophyletic clades
// that covers all the terminals of the taxon.
//
// A taxon whose terminals descend
// from a single uniform ancestor
// is covered by one clade;
// a paraphyletic or polyphyletic taxon
// is covered by several disjoint clades.
package monophyly

import (
	"slices"

	"github.com/js-arias/taxtree/newick"
	"github.com/js-arias/taxtree/taxonomy"
)

// A Clade is a subtree
// in which all terminals
// belong to a single taxon,
// and that is not contained
// in any larger subtree
// with the same property.
type Clade struct {
	// ID of the node at the root of the clade.
	Node int

	// Taxon of the terminals of the clade.
	Taxon string

	// Names of the terminals of the clade,
	// in tree order.
	Terms []string
}

// A Partition is the collection
// of the maximal uniform clades of a tree,
// grouped by taxon.
//
// For any taxon,
// its clades are pairwise disjoint
// and their union is exactly the set of terminals
// assigned to the taxon.
type Partition struct {
	taxa   []string
	clades map[string][]Clade
	total  int
}

// Coverage detects the maximal uniform clades of a tree
// under a taxon binding.
// It computes the set of distinct taxa
// below every node in a post-order pass,
// and then collects the clades in a pre-order walk
// that stops at the first uniform node of each path,
// so only maximal uniform nodes are recorded.
// Clades are collected in tree order,
// which also orders the clades of each taxon
// by their first terminal.
func Coverage(t *newick.Tree, b *taxonomy.Binding) *Partition {
	sets := make([]map[string]bool, t.Len())
	taxaBelow(t, b, t.Root(), sets)

	p := &Partition{
		clades: make(map[string][]Clade),
	}
	p.collect(t, t.Root(), sets)
	return p
}

// TaxaBelow computes the set of distinct taxa
// among the terminals that descend from a node.
func taxaBelow(t *newick.Tree, b *taxonomy.Binding, id int, sets []map[string]bool) map[string]bool {
	if t.IsTerm(id) {
		sets[id] = map[string]bool{b.Taxon(t.Label(id)): true}
		return sets[id]
	}

	taxa := make(map[string]bool)
	for _, c := range t.Children(id) {
		for tax := range taxaBelow(t, b, c, sets) {
			taxa[tax] = true
		}
	}
	sets[id] = taxa
	return taxa
}

func (p *Partition) collect(t *newick.Tree, id int, sets []map[string]bool) {
	if len(sets[id]) == 1 {
		var tax string
		for v := range sets[id] {
			tax = v
		}
		if _, ok := p.clades[tax]; !ok {
			p.taxa = append(p.taxa, tax)
		}
		p.clades[tax] = append(p.clades[tax], Clade{
			Node:  id,
			Taxon: tax,
			Terms: t.Subtree(id),
		})
		p.total++
		return
	}

	for _, c := range t.Children(id) {
		p.collect(t, c, sets)
	}
}

// Clades returns the maximal clades of a taxon,
// ordered by the first terminal of each clade
// in tree order.
func (p *Partition) Clades(taxon string) []Clade {
	return slices.Clone(p.clades[taxon])
}

// Len returns the total number of clades
// in the partition.
func (p *Partition) Len() int {
	return p.total
}

// Taxa returns the taxa of the partition,
// ordered by their first terminal in tree order.
func (p *Partition) Taxa() []string {
	return slices.Clone(p.taxa)
}
