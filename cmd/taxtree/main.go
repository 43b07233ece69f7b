// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// TaxTree is a tool to color phylogenetic trees
// by the taxonomy of their terminals,
// producing annotation files for the iTOL viewer.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/taxtree/cmd/taxtree/batch"
	"github.com/js-arias/taxtree/cmd/taxtree/color"
	"github.com/js-arias/taxtree/cmd/taxtree/rootcmd"
	"github.com/js-arias/taxtree/cmd/taxtree/terms"
)

var app = &command.Command{
	Usage: "taxtree <command> [<argument>...]",
	Short: "a tool to color phylogenetic trees by taxonomy",
}

func init() {
	app.Add(batch.Command)
	app.Add(color.Command)
	app.Add(rootcmd.Command)
	app.Add(terms.Command)
}

func main() {
	app.Main()
}
