// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package annotate drives the annotation
// of a single phylogenetic tree file:
// it reads the tree,
// roots it,
// binds its terminals to their taxa,
// detects the maximal monophyletic clades,
// and writes the iTOL annotation files.
//
// Each tree file is processed independently,
// without any shared mutable state,
// so different tree files can be annotated
// in parallel.
package annotate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/js-arias/taxtree/itol"
	"github.com/js-arias/taxtree/monophyly"
	"github.com/js-arias/taxtree/newick"
	"github.com/js-arias/taxtree/rooting"
	"github.com/js-arias/taxtree/taxonomy"
)

// Options is the configuration
// for the annotation of a tree file.
type Options struct {
	// Rank used for clade detection and coloring.
	Rank taxonomy.Rank

	// Rooting method.
	Method rooting.Method

	// Outgroup terminals,
	// used only by the outgroup method.
	Outgroup []string

	// Labels indicates that a text label file
	// will be written.
	Labels bool

	// SaveRooted indicates that the rooted tree
	// will be written as a newick file.
	SaveRooted bool

	// Color palette.
	Palette itol.Palette

	// Output is the name of the range annotation file.
	// If empty,
	// the name is derived from the tree file name.
	Output string

	// OutDir is the directory for the output files.
	OutDir string

	// Logger used to report
	// warnings and progress.
	// If nil,
	// the default logger is used.
	Logger *log.Logger
}

// A Result reports the outcome
// of the annotation of a tree file.
type Result struct {
	// Name of the input tree file.
	TreeFile string

	// Names of the written files.
	RangeFile  string
	LabelFile  string
	RootedFile string

	// Terms is the number of terminals of the tree,
	// and Matched the number of terminals
	// with an entry in the taxonomy table.
	Terms   int
	Matched int

	// Taxa is the number of distinct taxa,
	// and Clades the total number
	// of detected clades.
	Taxa   int
	Clades int
}

// TreeFile annotates a single tree file
// using a previously loaded taxonomy table.
// The table and the palette are read-only
// and can be shared between concurrent calls.
func TreeFile(name string, tax *taxonomy.Table, opt Options) (*Result, error) {
	l := opt.Logger
	if l == nil {
		l = log.Default()
	}

	t, err := readTree(name)
	if err != nil {
		return nil, err
	}

	rt, err := rooting.Root(t, opt.Method, opt.Outgroup)
	if err != nil {
		return nil, fmt.Errorf("on tree %q: %v", name, err)
	}

	b := tax.Bind(rt.Terms(), opt.Rank)
	for _, nm := range b.Unmatched() {
		l.Warn("terminal without taxonomy", "tree", name, "terminal", nm)
	}

	p := monophyly.Coverage(rt, b)
	a := itol.Assign(rt, b, p, opt.Palette)

	r := &Result{
		TreeFile: name,
		Terms:    b.Len(),
		Matched:  b.Len() - len(b.Unmatched()),
		Taxa:     len(b.Taxa()),
		Clades:   p.Len(),
	}

	rootMsg := rootingInfo(opt.Method, opt.Outgroup)
	treeName := filepath.Base(name)

	r.RangeFile = opt.Output
	if r.RangeFile == "" {
		r.RangeFile = baseName(name) + "_itol_colors.txt"
	}
	r.RangeFile = inDir(opt.OutDir, r.RangeFile)
	if err := writeFile(r.RangeFile, func(f *os.File) error {
		return a.WriteRanges(f, treeName, rootMsg)
	}); err != nil {
		return nil, err
	}

	if opt.Labels {
		r.LabelFile = labelFileName(r.RangeFile)
		if err := writeFile(r.LabelFile, func(f *os.File) error {
			return a.WriteLabels(f, treeName, rootMsg)
		}); err != nil {
			return nil, err
		}
	}

	if opt.SaveRooted && opt.Method != rooting.None {
		r.RootedFile = inDir(opt.OutDir, fmt.Sprintf("%s_%s.treefile", geneName(name), opt.Method))
		if err := writeFile(r.RootedFile, func(f *os.File) error {
			return rt.Newick(f)
		}); err != nil {
			return nil, err
		}
	}

	l.Debug("tree annotated",
		"tree", name,
		"terminals", r.Terms,
		"matched", r.Matched,
		"taxa", r.Taxa,
		"clades", r.Clades,
		"rooting", rootMsg)
	return r, nil
}

func readTree(name string) (*newick.Tree, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := newick.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("on tree file %q: %v", name, err)
	}
	return t, nil
}

func writeFile(name string, fn func(f *os.File) error) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := fn(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	return nil
}

func rootingInfo(m rooting.Method, outgroup []string) string {
	switch m {
	case rooting.Midpoint:
		return "midpoint rooting"
	case rooting.Outgroup:
		return fmt.Sprintf("outgroup rooting with %s", strings.Join(outgroup, ","))
	}
	return "no rooting applied"
}

func baseName(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func labelFileName(rangeFile string) string {
	if strings.HasSuffix(rangeFile, "_colors.txt") {
		return strings.TrimSuffix(rangeFile, "_colors.txt") + "_labels.txt"
	}
	ext := filepath.Ext(rangeFile)
	return strings.TrimSuffix(rangeFile, ext) + "_labels" + ext
}

// GeneName extracts the gene name
// from a tree file name,
// cutting the usual suffixes
// of the verification pipelines.
func geneName(name string) string {
	base := filepath.Base(name)
	for _, sep := range []string{"_verification_", "_filtered_"} {
		if i := strings.Index(base, sep); i > 0 {
			return base[:i]
		}
	}
	if i := strings.Index(base, "_"); i > 0 {
		return base[:i]
	}
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func inDir(dir, name string) string {
	if dir == "" {
		return name
	}
	return filepath.Join(dir, filepath.Base(name))
}
