// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(paletteFilesGuide)
	app.Add(taxonomyFilesGuide)
}

var taxonomyFilesGuide = &command.Command{
	Usage: "taxonomy-files",
	Short: "about taxonomy files",
	Long: `
TaxTree reads the taxonomy of the tree terminals from a tab-delimited file.
Each row gives the taxonomic classification of a sequence, and the sequence
identifier must be identical to the name of a terminal in the tree.

A taxonomy file must contain the following columns:

	- full_id       the sequence identifier
	- superkingdom  the taxon at the superkingdom rank
	- phylum        the taxon at the phylum rank
	- class         the taxon at the class rank
	- order         the taxon at the order rank
	- family        the taxon at the family rank

Any other column will be ignored. Here is an example file:

	full_id	superkingdom	phylum	class	order	family
	GCF_000005845.2-WP_000002.1	Bacteria	Pseudomonadota	Gammaproteobacteria	Enterobacterales	Enterobacteriaceae
	GCF_000091665.1-WP_010870.1	Archaea	Euryarchaeota	Methanococci	Methanococcales	Methanococcaceae

A terminal without a row in the taxonomy file is not an error: it will be
assigned to the "Unknown" taxon at every rank, reported with a warning, and
colored with the reserved unknown color.
	`,
}

var paletteFilesGuide = &command.Command{
	Usage: "palette-files",
	Short: "about palette files",
	Long: `
By default, TaxTree uses a built-in palette ordered by taxon abundance. A
palette file can be used to define a different set of colors.

A palette file is a tab-delimited file with the following columns:

	- key    the abundance rank of the color (1 is the color of the most
	         abundant taxon), or the reserved words "other" and "unknown"
	- color  an RGB value separated by commas, for example "70,130,180"

Any other column will be ignored. Here is an example file:

	key	color	comment
	1	70, 130, 180	steel blue
	2	50, 205, 50	lime green
	3	255, 20, 147	deep pink
	other	176, 224, 230	light blue
	unknown	211, 211, 211	light gray

The "other" color is used for all the taxa beyond the last keyed color, which
share a single legend entry; the "unknown" color is used for the terminals
without taxonomy.
	`,
}
