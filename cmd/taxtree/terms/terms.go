// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the terminals of a phylogenetic tree.
package terms

import (
	"fmt"
	"os"

	"github.com/js-arias/command"
	"github.com/js-arias/taxtree/newick"
	"github.com/js-arias/taxtree/taxonomy"
)

var Command = &command.Command{
	Usage: "terms [--rank <rank>] <tree-file> [<taxonomy-file>]",
	Short: "print the terminals of a tree",
	Long: `
Command terms reads a phylogenetic tree in newick format and prints the names
of its terminals, in tree order, to the standard output.

The first argument of the command is the name of the tree file. If a taxonomy
file is given as a second argument, the taxon of each terminal will be
printed next to its name. By default, taxa are given at the phylum rank; use
the flag --rank to set a different rank.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var rankFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&rankFlag, "rank", "phylum", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}
	name := args[0]

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	t, err := newick.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("on tree file %q: %v", name, err)
	}

	if len(args) < 2 {
		for _, nm := range t.Terms() {
			fmt.Fprintf(c.Stdout(), "%s\n", nm)
		}
		return nil
	}

	rank, err := taxonomy.ParseRank(rankFlag)
	if err != nil {
		return err
	}

	tf, err := os.Open(args[1])
	if err != nil {
		return err
	}
	tax, err := taxonomy.ReadTSV(tf)
	tf.Close()
	if err != nil {
		return fmt.Errorf("on taxonomy file %q: %v", args[1], err)
	}

	b := tax.Bind(t.Terms(), rank)
	for _, nm := range t.Terms() {
		fmt.Fprintf(c.Stdout(), "%s\t%s\n", nm, b.Taxon(nm))
	}
	return nil
}
