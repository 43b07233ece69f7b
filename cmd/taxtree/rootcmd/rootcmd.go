// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rootcmd implements a command to root
// a phylogenetic tree.
package rootcmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/taxtree/newick"
	"github.com/js-arias/taxtree/rooting"
)

var Command = &command.Command{
	Usage: `root [--method <method>] [--outgroup <terminal>]
	[-o|--output <output-file>]
	<tree-file>`,
	Short: "root a phylogenetic tree",
	Long: `
Command root reads a phylogenetic tree in newick format, roots it, and writes
the rooted tree in newick format.

The argument of the command is the name of the tree file.

By default, the tree is rooted at the midpoint of its two most distant
terminals. Use the flag --method to set a different rooting method: "none"
returns the tree as it is given, and "outgroup" roots the tree at the branch
above the terminal, or terminals, given with the flag --outgroup (use commas
to separate multiple terminals).

By default, the rooted tree is written to the standard output. Use the flag
-o, or --output, to write it to a file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var methodFlag string
var outgroupFlag string
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&methodFlag, "method", "midpoint", "")
	c.Flags().StringVar(&outgroupFlag, "outgroup", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting tree file")
	}
	name := args[0]

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

	f, err := os.Open(name)
	if err != nil {
		return err
	}
	t, err := newick.Parse(f)
	f.Close()
	if err != nil {
		return fmt.Errorf("on tree file %q: %v", name, err)
	}

	rt, err := rooting.Root(t, method, outgroup)
	if err != nil {
		return fmt.Errorf("on tree %q: %v", name, err)
	}

	if output == "" {
		return rt.Newick(c.Stdout())
	}

	out, err := os.Create(output)
	if err != nil {
		return err
	}
	if err := rt.Newick(out); err != nil {
		out.Close()
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return out.Close()
}
