// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxonomy provides a table
// of taxonomic rank values
// for a set of sequence identifiers,
// and the binding of the terminals of a tree
// to their taxa at a given rank.
package taxonomy

import (
	"fmt"
	"slices"
	"strings"
)

// Unknown is the taxon assigned to any identifier
// without a value in a taxonomy table.
const Unknown = "Unknown"

// Rank is a taxonomic rank
// supported by a taxonomy table.
type Rank int

// Valid taxonomic ranks.
const (
	Superkingdom Rank = iota
	Phylum
	Class
	Order
	Family
)

var ranks = []Rank{Superkingdom, Phylum, Class, Order, Family}

// Ranks returns the supported taxonomic ranks,
// from the most to the least inclusive.
func Ranks() []Rank {
	return slices.Clone(ranks)
}

// ParseRank returns a rank from a string.
func ParseRank(s string) (Rank, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range ranks {
		if s == r.String() {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rank %q", s)
}

func (r Rank) String() string {
	switch r {
	case Superkingdom:
		return "superkingdom"
	case Phylum:
		return "phylum"
	case Class:
		return "class"
	case Order:
		return "order"
	case Family:
		return "family"
	}
	return "unknown"
}

// A Table is a collection of taxonomic rank values
// indexed by sequence identifier.
// It is immutable after load:
// the readers of a table only look up values.
type Table struct {
	ids map[string]*record
}

type record struct {
	taxa [Family + 1]string
}

// New creates a new empty taxonomy table.
func New() *Table {
	return &Table{
		ids: make(map[string]*record),
	}
}

// Add adds a rank value for an identifier.
// Empty values are ignored,
// so the identifier will report Unknown
// at that rank.
func (tb *Table) Add(id string, rank Rank, v string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return
	}
	v = strings.Join(strings.Fields(v), " ")
	if v == "" {
		return
	}

	rec, ok := tb.ids[id]
	if !ok {
		rec = &record{}
		tb.ids[id] = rec
	}
	rec.taxa[rank] = v
}

// HasID returns true if the identifier
// has an entry in the table.
func (tb *Table) HasID(id string) bool {
	_, ok := tb.ids[id]
	return ok
}

// IDs returns the identifiers in the table,
// sorted alphabetically.
func (tb *Table) IDs() []string {
	ids := make([]string, 0, len(tb.ids))
	for id := range tb.ids {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Len returns the number of identifiers in the table.
func (tb *Table) Len() int {
	return len(tb.ids)
}

// Taxon returns the taxon of an identifier
// at the indicated rank.
// Identifiers without an entry,
// or without a value at the rank,
// resolve to Unknown.
func (tb *Table) Taxon(id string, rank Rank) string {
	rec, ok := tb.ids[id]
	if !ok {
		return Unknown
	}
	if v := rec.taxa[rank]; v != "" {
		return v
	}
	return Unknown
}
