// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package annotate_test

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/js-arias/taxtree/annotate"
	"github.com/js-arias/taxtree/itol"
	"github.com/js-arias/taxtree/rooting"
	"github.com/js-arias/taxtree/taxonomy"
)

func TestTreeFile(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "geneA_verification_aln.treefile")
	writeTree(t, name, "((A:1,B:1):1,(C:1,D:1):1);\n")

	tax := taxonomy.New()
	tax.Add("A", taxonomy.Phylum, "phyX")
	tax.Add("B", taxonomy.Phylum, "phyX")
	tax.Add("C", taxonomy.Phylum, "phyY")

	r, err := annotate.TreeFile(name, tax, annotate.Options{
		Rank:    taxonomy.Phylum,
		Method:  rooting.None,
		Labels:  true,
		Palette: itol.DefaultPalette(),
		OutDir:  dir,
		Logger:  log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if r.Terms != 4 {
		t.Errorf("terminals: got %d, want %d", r.Terms, 4)
	}
	if r.Matched != 3 {
		t.Errorf("matched: got %d, want %d", r.Matched, 3)
	}
	if r.Taxa != 3 {
		t.Errorf("taxa: got %d, want %d", r.Taxa, 3)
	}

	// phyX is a single clade,
	// but C and D are separated
	// by their taxonomy
	if r.Clades != 3 {
		t.Errorf("clades: got %d, want %d", r.Clades, 3)
	}

	rf := filepath.Join(dir, "geneA_verification_aln_itol_colors.txt")
	if r.RangeFile != rf {
		t.Errorf("range file: got %q, want %q", r.RangeFile, rf)
	}
	if first := readFirstLine(t, r.RangeFile); first != "DATASET_RANGE" {
		t.Errorf("range file: first line: got %q", first)
	}

	lf := filepath.Join(dir, "geneA_verification_aln_itol_labels.txt")
	if r.LabelFile != lf {
		t.Errorf("label file: got %q, want %q", r.LabelFile, lf)
	}
	if first := readFirstLine(t, r.LabelFile); first != "DATASET_TEXT" {
		t.Errorf("label file: first line: got %q", first)
	}

	if r.RootedFile != "" {
		t.Errorf("unexpected rooted file %q", r.RootedFile)
	}
}

func TestTreeFileRooted(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "geneA_verification_aln.treefile")
	writeTree(t, name, "(A:1,B:3);\n")

	tax := taxonomy.New()
	tax.Add("A", taxonomy.Phylum, "phyX")
	tax.Add("B", taxonomy.Phylum, "phyX")

	r, err := annotate.TreeFile(name, tax, annotate.Options{
		Rank:       taxonomy.Phylum,
		Method:     rooting.Midpoint,
		SaveRooted: true,
		Palette:    itol.DefaultPalette(),
		OutDir:     dir,
		Logger:     log.New(io.Discard),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rt := filepath.Join(dir, "geneA_midpoint.treefile")
	if r.RootedFile != rt {
		t.Errorf("rooted file: got %q, want %q", r.RootedFile, rt)
	}
	data, err := os.ReadFile(r.RootedFile)
	if err != nil {
		t.Fatalf("unable to read rooted tree: %v", err)
	}
	if w := "(B:2,(A:1):1);\n"; string(data) != w {
		t.Errorf("rooted tree: got %q, want %q", string(data), w)
	}
}

func TestTreeFileError(t *testing.T) {
	dir := t.TempDir()
	name := filepath.Join(dir, "bad.treefile")
	writeTree(t, name, "(A:1,B:3;\n")

	tax := taxonomy.New()
	_, err := annotate.TreeFile(name, tax, annotate.Options{
		Rank:    taxonomy.Phylum,
		Method:  rooting.None,
		Palette: itol.DefaultPalette(),
		OutDir:  dir,
		Logger:  log.New(io.Discard),
	})
	if err == nil {
		t.Errorf("expecting error on malformed tree")
	}
}

func writeTree(t testing.TB, name, tree string) {
	t.Helper()

	if err := os.WriteFile(name, []byte(tree), 0644); err != nil {
		t.Fatalf("unable to write tree file: %v", err)
	}
}

func readFirstLine(t testing.TB, name string) string {
	t.Helper()

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatalf("unable to read %q: %v", name, err)
	}
	line, _, _ := strings.Cut(string(data), "\n")
	return line
}
