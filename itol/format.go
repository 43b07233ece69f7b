// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package itol

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"strings"
)

// WriteRanges writes the clade color annotations
// as an iTOL DATASET_RANGE file.
// TreeName and rooting are reported
// as comments in the file header.
// The data lines keep the order of the ranges,
// so the output is reproducible.
func (a *Annotation) WriteRanges(w io.Writer, treeName, rooting string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "DATASET_RANGE\n")
	fmt.Fprintf(bw, "#Taxonomic range coloring\n")
	fmt.Fprintf(bw, "#Tree: %s\n", treeName)
	if rooting != "" {
		fmt.Fprintf(bw, "#Rooting: %s\n", rooting)
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "SEPARATOR COMMA\n\n")
	fmt.Fprintf(bw, "DATASET_LABEL,Taxonomic_Ranges\n")
	fmt.Fprintf(bw, "COLOR,#ffff00\n\n")

	fmt.Fprintf(bw, "RANGE_TYPE,box\n")
	fmt.Fprintf(bw, "RANGE_COVER,clade\n")
	fmt.Fprintf(bw, "UNROOTED_SMOOTH,simplify\n")
	fmt.Fprintf(bw, "COVER_LABELS,1\n")
	fmt.Fprintf(bw, "COVER_DATASETS,0\n")
	fmt.Fprintf(bw, "FIT_LABELS,0\n\n")

	if legend := a.Legend(); len(legend) > 0 {
		fmt.Fprintf(bw, "LEGEND_TITLE,Taxonomy\n")
		fmt.Fprintf(bw, "LEGEND_POSITION_X,100\n")
		fmt.Fprintf(bw, "LEGEND_POSITION_Y,100\n")
		fmt.Fprintf(bw, "LEGEND_HORIZONTAL,0\n")

		shapes := make([]string, len(legend))
		colors := make([]string, len(legend))
		labels := make([]string, len(legend))
		scales := make([]string, len(legend))
		for i, lg := range legend {
			shapes[i] = "1"
			colors[i] = hexColor(lg.Color)
			labels[i] = lg.Label
			scales[i] = "1"
		}
		fmt.Fprintf(bw, "LEGEND_SHAPES,%s\n", strings.Join(shapes, ","))
		fmt.Fprintf(bw, "LEGEND_COLORS,%s\n", strings.Join(colors, ","))
		fmt.Fprintf(bw, "LEGEND_LABELS,%s\n", strings.Join(labels, ","))
		fmt.Fprintf(bw, "LEGEND_SHAPE_SCALES,%s\n", strings.Join(scales, ","))
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "DATA\n")
	for _, rg := range a.Ranges() {
		fmt.Fprintf(bw, "%s,%s,%s,%s\n", rg.Start, rg.End, hexColor(rg.Color), rg.Label)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing ranges: %v", err)
	}
	return nil
}

// WriteLabels writes the terminal text annotations
// as an iTOL DATASET_TEXT file.
// Taxa with a distinct color are displayed in bold,
// and lumped taxa in italics.
func (a *Annotation) WriteLabels(w io.Writer, treeName, rooting string) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "DATASET_TEXT\n")
	fmt.Fprintf(bw, "#Taxonomic labels for tree terminals\n")
	fmt.Fprintf(bw, "#Tree: %s\n", treeName)
	if rooting != "" {
		fmt.Fprintf(bw, "#Rooting: %s\n", rooting)
	}
	fmt.Fprintf(bw, "\n")

	fmt.Fprintf(bw, "SEPARATOR TAB\n\n")
	fmt.Fprintf(bw, "DATASET_LABEL\tTaxonomic Groups\n")
	fmt.Fprintf(bw, "COLOR\t#000000\n\n")

	fmt.Fprintf(bw, "MARGIN\t20\n")
	fmt.Fprintf(bw, "SHOW_INTERNAL\t0\n")
	fmt.Fprintf(bw, "LABEL_ROTATION\t0\n")
	fmt.Fprintf(bw, "ALIGN_TO_TREE\t0\n")
	fmt.Fprintf(bw, "SIZE_FACTOR\t1.3\n\n")

	fmt.Fprintf(bw, "DATA\n")
	fmt.Fprintf(bw, "#ID\tlabel\tposition\tcolor\tstyle\tsize_factor\trotation\n")
	for _, lb := range a.Labels() {
		style := "italic"
		if lb.Bold {
			style = "bold"
		}
		fmt.Fprintf(bw, "%s\t%s\t-1\t%s\t%s\t1.3\t0\n", lb.Term, lb.Text, hexColor(lb.Color), style)
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing labels: %v", err)
	}
	return nil
}

// HexColor returns the hexadecimal form of a color,
// as used by iTOL files.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
