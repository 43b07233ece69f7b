// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package color implements a command to color
// the terminals of a phylogenetic tree
// by their taxonomy.
package color

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/js-arias/command"
	"github.com/js-arias/taxtree/annotate"
	"github.com/js-arias/taxtree/rooting"
	"github.com/js-arias/taxtree/taxonomy"
)

var Command = &command.Command{
	Usage: `color [--rank <rank>]
	[--method <method>] [--outgroup <terminal>]
	[--labels] [--save-rooted]
	[--palette <palette-file>] [--rainbow <number>] [--colors <number>]
	[-o|--output <output-file>]
	[-v|--verbose]
	<tree-file> <taxonomy-file>`,
	Short: "color a phylogenetic tree by taxonomy",
	Long: `
Command color reads a phylogenetic tree in newick format and a taxonomy file,
roots the tree, detects the monophyletic groups of each taxon at the given
rank, and writes an iTOL DATASET_RANGE file with a color range for each
detected group.

The first argument of the command is the name of the tree file, and the
second is the name of the taxonomy file (see "taxtree help taxonomy-files").

By default, taxa are grouped at the phylum rank. Use the flag --rank to set a
different rank (valid ranks are "superkingdom", "phylum", "class", "order",
and "family").

By default, the tree is rooted at the midpoint of its two most distant
terminals. Use the flag --method to set a different rooting method: "none"
uses the tree as it is given, and "outgroup" roots the tree at the branch
above the terminal, or terminals, given with the flag --outgroup (use commas
to separate multiple terminals). The flag --outgroup is required by the
outgroup method.

Taxa are ranked by the number of terminals, and each of the most abundant
taxa gets its own color; the remaining taxa are lumped into a single "other"
entry. By default a built-in palette is used. Use the flag --palette to read
the colors from a palette file (see "taxtree help palette-files"), or the
flag --rainbow to use the indicated number of colors from a colorblind-safe
rainbow. The flag --colors limits the number of taxa with a distinct color.

If the flag --labels is set, an iTOL DATASET_TEXT file with a taxon label for
each terminal will be written. If the flag --save-rooted is set, the rooted
tree will be written as a newick file.

By default, the name of the output file is derived from the name of the tree
file. Use the flag -o, or --output, to set a different name.

If the flag -v, or --verbose, is set, the run summary will be reported to the
standard error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var colorsFlag int
var labelsFlag bool
var methodFlag string
var outgroupFlag string
var output string
var paletteFile string
var rainbowFlag int
var rankFlag string
var saveRooted bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&labelsFlag, "labels", false, "")
	c.Flags().BoolVar(&saveRooted, "save-rooted", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
	c.Flags().BoolVar(&verbose, "v", false, "")
	c.Flags().IntVar(&colorsFlag, "colors", 0, "")
	c.Flags().IntVar(&rainbowFlag, "rainbow", 0, "")
	c.Flags().StringVar(&methodFlag, "method", "midpoint", "")
	c.Flags().StringVar(&outgroupFlag, "outgroup", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&paletteFile, "palette", "", "")
	c.Flags().StringVar(&rankFlag, "rank", "phylum", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting tree and taxonomy files")
	}
	treeFile := args[0]
	taxFile := args[1]

	rank, err := taxonomy.ParseRank(rankFlag)
	if err != nil {
		return err
	}
	method, err := rooting.ParseMethod(methodFlag)
	if err != nil {
		return err
	}
	var outgroup []string
	if outgroupFlag != "" {
		outgroup = strings.Split(outgroupFlag, ",")
	}
	if method == rooting.Outgroup && len(outgroup) == 0 {
		return c.UsageError("flag --outgroup is required by the outgroup method")
	}

	pal, err := annotate.LoadPalette(paletteFile, rainbowFlag, colorsFlag)
	if err != nil {
		return err
	}

	tax, err := readTaxonomy(taxFile)
	if err != nil {
		return err
	}

	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	l := log.NewWithOptions(c.Stderr(), log.Options{
		Level: level,
	})

	r, err := annotate.TreeFile(treeFile, tax, annotate.Options{
		Rank:       rank,
		Method:     method,
		Outgroup:   outgroup,
		Labels:     labelsFlag,
		SaveRooted: saveRooted,
		Palette:    pal,
		Output:     output,
		Logger:     l,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(c.Stdout(), "%s\n", r.RangeFile)
	if r.LabelFile != "" {
		fmt.Fprintf(c.Stdout(), "%s\n", r.LabelFile)
	}
	if r.RootedFile != "" {
		fmt.Fprintf(c.Stdout(), "%s\n", r.RootedFile)
	}
	return nil
}

func readTaxonomy(name string) (*taxonomy.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tax, err := taxonomy.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("on taxonomy file %q: %v", name, err)
	}
	return tax, nil
}
