// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package itol

import (
	"image/color"
	"slices"
	"strings"

	"github.com/js-arias/taxtree/monophyly"
	"github.com/js-arias/taxtree/newick"
	"github.com/js-arias/taxtree/taxonomy"
)

// A Range is a color annotation
// for the terminals of a clade.
// The clade is bounded by its two most divergent terminals.
type Range struct {
	// Names of the two most divergent terminals
	// of the clade.
	Start, End string

	// Fill color of the clade.
	Color color.RGBA

	// Label of the legend entry of the clade.
	Label string

	// Taxon of the terminals of the clade.
	Taxon string
}

// A Label is a text annotation for a terminal.
type Label struct {
	// Name of the terminal.
	Term string

	// Taxon assigned to the terminal.
	Taxon string

	// Text displayed for the terminal.
	Text string

	// Color of the displayed text.
	Color color.RGBA

	// Bold is true for taxa with a distinct color;
	// lumped taxa are displayed in italics.
	Bold bool
}

// A Legend is an entry of the dataset legend.
type Legend struct {
	Label string
	Color color.RGBA
}

// An Annotation is the full set of color
// and text annotations for a tree,
// under a given taxon binding and palette.
// It is immutable once computed.
type Annotation struct {
	ranges []Range
	labels []Label
	legend []Legend
	colors map[string]color.RGBA
	taxLab map[string]string
}

// Assign ranks the taxa of a binding
// by their abundance
// (number of terminals,
// ties broken by first-seen order),
// gives a distinct palette color
// to each of the top taxa,
// and lumps the rest
// into a single "Other <rank>" entry
// with the reserved color of the palette.
// Unknown terminals always receive
// the reserved unknown color.
//
// The clades of the partition become range annotations
// and every terminal becomes a text annotation,
// both keeping the upstream order,
// so the output is fully deterministic.
func Assign(t *newick.Tree, b *taxonomy.Binding, p *monophyly.Partition, pal Palette) *Annotation {
	a := &Annotation{
		colors: make(map[string]color.RGBA),
		taxLab: make(map[string]string),
	}
	a.build(t, b, p, pal, rankTaxa(b))
	return a
}

// RankTaxa returns the taxa of a binding,
// except Unknown,
// sorted by descending abundance;
// ties keep the first-seen order.
func rankTaxa(b *taxonomy.Binding) []string {
	taxa := make([]string, 0, len(b.Taxa()))
	for _, tax := range b.Taxa() {
		if tax == taxonomy.Unknown {
			continue
		}
		taxa = append(taxa, tax)
	}
	slices.SortStableFunc(taxa, func(x, y string) int {
		return b.Abundance(y) - b.Abundance(x)
	})
	return taxa
}

func (a *Annotation) build(t *newick.Tree, b *taxonomy.Binding, p *monophyly.Partition, pal Palette, ranked []string) {
	other := "Other " + titleCase(b.Rank().String())
	max := pal.MaxColors()

	usedOther := false
	for i, tax := range ranked {
		if i < max {
			a.colors[tax] = pal.Colors[i]
			a.taxLab[tax] = tax
			a.legend = append(a.legend, Legend{Label: tax, Color: pal.Colors[i]})
			continue
		}
		a.colors[tax] = pal.Other
		a.taxLab[tax] = other
		usedOther = true
	}
	if usedOther {
		a.legend = append(a.legend, Legend{Label: other, Color: pal.Other})
	}
	if b.Abundance(taxonomy.Unknown) > 0 {
		a.colors[taxonomy.Unknown] = pal.Unknown
		a.taxLab[taxonomy.Unknown] = taxonomy.Unknown
		a.legend = append(a.legend, Legend{Label: taxonomy.Unknown, Color: pal.Unknown})
	}

	for _, tax := range p.Taxa() {
		for _, cl := range p.Clades(tax) {
			start, end := boundPair(t, cl)
			a.ranges = append(a.ranges, Range{
				Start: start,
				End:   end,
				Color: a.colors[tax],
				Label: a.taxLab[tax],
				Taxon: tax,
			})
		}
	}

	for _, nm := range t.Terms() {
		tax := b.Taxon(nm)
		a.labels = append(a.labels, Label{
			Term:  nm,
			Taxon: tax,
			Text:  tax,
			Color: a.colors[tax],
			Bold:  a.taxLab[tax] == tax && tax != taxonomy.Unknown,
		})
	}
}

// BoundPair returns the two most divergent terminals
// of a clade
// (the pair with the largest patristic distance,
// the first pair in tree order if there are ties).
// In a clade with a single terminal
// both bounds are the same terminal.
func boundPair(t *newick.Tree, cl monophyly.Clade) (start, end string) {
	var ids []int
	collectTerms(t, cl.Node, &ids)
	if len(ids) == 1 {
		nm := t.Label(ids[0])
		return nm, nm
	}

	bi, bj := 0, 1
	max := t.Dist(ids[0], ids[1])
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			if d := t.Dist(ids[i], ids[j]); d > max {
				max = d
				bi, bj = i, j
			}
		}
	}
	return t.Label(ids[bi]), t.Label(ids[bj])
}

func collectTerms(t *newick.Tree, id int, ids *[]int) {
	if t.IsTerm(id) {
		*ids = append(*ids, id)
		return
	}
	for _, c := range t.Children(id) {
		collectTerms(t, c, ids)
	}
}

// Color returns the color assigned to a taxon.
func (a *Annotation) Color(taxon string) (color.RGBA, bool) {
	c, ok := a.colors[taxon]
	return c, ok
}

// Labels returns the text annotations,
// one per terminal,
// in tree order.
func (a *Annotation) Labels() []Label {
	return slices.Clone(a.labels)
}

// Legend returns the legend entries:
// colored taxa by descending abundance,
// then the lumped taxa entry,
// and then the unknown entry,
// each one only if present in the tree.
func (a *Annotation) Legend() []Legend {
	return slices.Clone(a.legend)
}

// Ranges returns the clade color ranges
// in the order produced by the clade detection.
func (a *Annotation) Ranges() []Range {
	return slices.Clone(a.ranges)
}

// TitleCase returns a string
// with its first letter in upper case.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
