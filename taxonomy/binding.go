// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import "slices"

// A Binding is an immutable assignment
// of a taxon at a given rank
// to every terminal of a tree.
// Terminals without an entry in the taxonomy table
// are assigned to Unknown.
type Binding struct {
	rank      Rank
	taxon     map[string]string
	taxa      []string
	abundance map[string]int
	unmatched []string
}

// Bind assigns a taxon at the indicated rank
// to every terminal of the given list.
// The terminals must be given
// in a deterministic order
// (usually tree order),
// as that order defines the first-seen order
// of the taxa.
func (tb *Table) Bind(terms []string, rank Rank) *Binding {
	b := &Binding{
		rank:      rank,
		taxon:     make(map[string]string, len(terms)),
		abundance: make(map[string]int),
	}
	for _, nm := range terms {
		tax := tb.Taxon(nm, rank)
		b.taxon[nm] = tax
		if b.abundance[tax] == 0 {
			b.taxa = append(b.taxa, tax)
		}
		b.abundance[tax]++
		if !tb.HasID(nm) {
			b.unmatched = append(b.unmatched, nm)
		}
	}
	return b
}

// Abundance returns the number of terminals
// assigned to a taxon.
func (b *Binding) Abundance(taxon string) int {
	return b.abundance[taxon]
}

// Len returns the number of bound terminals.
func (b *Binding) Len() int {
	return len(b.taxon)
}

// Rank returns the rank used for the binding.
func (b *Binding) Rank() Rank {
	return b.rank
}

// Taxa returns the taxa of the binding
// in first-seen order.
func (b *Binding) Taxa() []string {
	return slices.Clone(b.taxa)
}

// Taxon returns the taxon assigned to a terminal.
// Terminals outside the binding resolve to Unknown.
func (b *Binding) Taxon(term string) string {
	if tax, ok := b.taxon[term]; ok {
		return tax
	}
	return Unknown
}

// Unmatched returns the terminals
// without an entry in the taxonomy table,
// in the binding order.
func (b *Binding) Unmatched() []string {
	return slices.Clone(b.unmatched)
}
