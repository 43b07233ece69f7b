// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxonomy

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadTSV reads a taxonomy table from a TSV file.
//
// The TSV file must contain the field "full_id"
// with the sequence identifier,
// and one field per taxonomic rank
// ("superkingdom", "phylum", "class", "order",
// and "family").
// Any other field is ignored.
// Empty rank values resolve to Unknown.
//
// Here is an example file:
//
//	full_id	superkingdom	phylum	class	order	family
//	GCF_000005845.2-WP_000002.1	Bacteria	Pseudomonadota	Gammaproteobacteria	Enterobacterales	Enterobacteriaceae
//	GCF_000091665.1-WP_010870.1	Archaea	Euryarchaeota	Methanococci	Methanococcales	Methanococcaceae
func ReadTSV(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	if _, ok := fields["full_id"]; !ok {
		return nil, fmt.Errorf("expecting field %q", "full_id")
	}
	for _, rk := range Ranks() {
		if _, ok := fields[rk.String()]; !ok {
			return nil, fmt.Errorf("expecting field %q", rk.String())
		}
	}

	tb := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		id := strings.TrimSpace(row[fields["full_id"]])
		if id == "" {
			continue
		}
		for _, rk := range Ranks() {
			tb.Add(id, rk, row[fields[rk.String()]])
		}
	}
	return tb, nil
}

// TSV writes a taxonomy table as a TSV file.
func (tb *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := []string{"full_id"}
	for _, rk := range Ranks() {
		header = append(header, rk.String())
	}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, id := range tb.IDs() {
		rec := tb.ids[id]
		row := []string{id}
		for _, rk := range Ranks() {
			row = append(row, rec.taxa[rk])
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
