// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package itol assigns colors and labels
// to the taxa of an annotated phylogenetic tree,
// and writes the annotations
// as iTOL dataset files
// <https://itol.embl.de/help.cgi>.
package itol

import (
	"encoding/csv"
	"errors"
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/blind"
)

// A Palette is an ordered collection of colors
// for the most abundant taxa of a tree,
// with reserved colors
// for the taxa lumped into the "other" bucket,
// and for the terminals
// without taxonomic information.
type Palette struct {
	// Ordered colors,
	// assigned to taxa by abundance rank.
	Colors []color.RGBA

	// Reserved color for low abundance taxa.
	Other color.RGBA

	// Reserved color for unknown taxa.
	Unknown color.RGBA

	// Max is the maximum number of taxa
	// with a distinct color.
	// If Max is zero,
	// or larger than the number of colors,
	// all colors can be used.
	Max int
}

// MaxColors returns the number of taxa
// that will receive a distinct color.
func (p Palette) MaxColors() int {
	if p.Max <= 0 || p.Max > len(p.Colors) {
		return len(p.Colors)
	}
	return p.Max
}

// DefaultPalette returns the default color palette,
// ordered by the abundance of the phyla
// in the reference sequence database
// that the palette was built for.
func DefaultPalette() Palette {
	return Palette{
		Colors: []color.RGBA{
			{0x46, 0x82, 0xb4, 255}, // steel blue
			{0x7d, 0xf9, 0xff, 255}, // electric blue
			{0x32, 0xcd, 0x32, 255}, // lime green
			{0xff, 0x14, 0x93, 255}, // deep pink
			{0x00, 0xbf, 0xff, 255}, // deep sky blue
			{0x00, 0xa8, 0x6b, 255}, // sea green
			{0xff, 0xb9, 0x0f, 255}, // dark goldenrod
			{0x87, 0xce, 0xeb, 255}, // sky blue
			{0x93, 0x70, 0xdb, 255}, // medium orchid
			{0x64, 0x95, 0xed, 255}, // cornflower blue
			{0xff, 0x8c, 0x00, 255}, // dark orange
			{0xdc, 0x14, 0x3c, 255}, // crimson
			{0xff, 0x63, 0x47, 255}, // tomato
			{0x8a, 0x2b, 0xe2, 255}, // blue violet
			{0x00, 0xce, 0xd1, 255}, // dark turquoise
			{0x99, 0x32, 0xcc, 255}, // dark orchid
			{0x20, 0xb2, 0xaa, 255}, // light sea green
			{0x40, 0xe0, 0xd0, 255}, // turquoise
			{0x98, 0xfb, 0x98, 255}, // pale green
			{0xff, 0xd7, 0x00, 255}, // gold
			{0xff, 0x69, 0xb4, 255}, // hot pink
			{0xdd, 0xa0, 0xdd, 255}, // plum
		},
		Other:   color.RGBA{0xb0, 0xe0, 0xe6, 255},
		Unknown: color.RGBA{0xd3, 0xd3, 0xd3, 255},
	}
}

// RainbowPalette returns a palette of k colors
// sampled from the rainbow color scheme of Paul Tol
// <https://personal.sron.nl/~pault/#fig:scheme_rainbow_smooth>,
// which is safe for colorblind people.
func RainbowPalette(k int) Palette {
	p := Palette{
		Colors:  make([]color.RGBA, 0, k),
		Other:   color.RGBA{0xb0, 0xe0, 0xe6, 255},
		Unknown: color.RGBA{0xd3, 0xd3, 0xd3, 255},
	}
	for i := 0; i < k; i++ {
		v := (float64(i) + 0.5) / float64(k)
		c := blind.Sequential(blind.RainbowPurpleToRed, v)
		p.Colors = append(p.Colors, color.RGBAModel.Convert(c).(color.RGBA))
	}
	return p
}

// ReadPalette reads a palette from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - key	the abundance rank of the color
//     (1 is the most abundant taxon),
//     or the reserved words "other" and "unknown".
//   - color	an RGB value separated by commas,
//     for example "70,130,180".
//
// Any other column will be ignored.
// Here is an example file:
//
//	key	color	comment
//	1	70, 130, 180	steel blue
//	2	50, 205, 50	lime green
//	3	255, 20, 147	deep pink
//	other	176, 224, 230	light blue
//	unknown	211, 211, 211	light gray
func ReadPalette(r io.Reader) (Palette, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return Palette{}, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"key", "color"} {
		if _, ok := fields[h]; !ok {
			return Palette{}, fmt.Errorf("expecting field %q", h)
		}
	}

	p := Palette{
		Other:   color.RGBA{0xb0, 0xe0, 0xe6, 255},
		Unknown: color.RGBA{0xd3, 0xd3, 0xd3, 255},
	}
	keyed := make(map[int]color.RGBA)
	max := 0
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return Palette{}, fmt.Errorf("on row %d: %v", ln, err)
		}

		c, err := parseColor(row[fields["color"]])
		if err != nil {
			return Palette{}, fmt.Errorf("on row %d: field %q: %v", ln, "color", err)
		}

		key := strings.ToLower(strings.TrimSpace(row[fields["key"]]))
		switch key {
		case "other":
			p.Other = c
			continue
		case "unknown":
			p.Unknown = c
			continue
		}
		k, err := strconv.Atoi(key)
		if err != nil {
			return Palette{}, fmt.Errorf("on row %d: field %q: %v", ln, "key", err)
		}
		if k < 1 {
			return Palette{}, fmt.Errorf("on row %d: field %q: invalid rank %d", ln, "key", k)
		}
		keyed[k] = c
		if k > max {
			max = k
		}
	}
	if max == 0 {
		return Palette{}, fmt.Errorf("palette without colors")
	}

	p.Colors = make([]color.RGBA, max)
	for i := range p.Colors {
		c, ok := keyed[i+1]
		if !ok {
			return Palette{}, fmt.Errorf("palette without a color for rank %d", i+1)
		}
		p.Colors[i] = c
	}
	return p, nil
}

func parseColor(s string) (color.RGBA, error) {
	vals := strings.Split(s, ",")
	if len(vals) != 3 {
		return color.RGBA{}, fmt.Errorf("found %d values, want 3", len(vals))
	}

	var rgb [3]uint8
	for i, v := range vals {
		x, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return color.RGBA{}, err
		}
		if x < 0 || x > 255 {
			return color.RGBA{}, fmt.Errorf("invalid value %d", x)
		}
		rgb[i] = uint8(x)
	}
	return color.RGBA{rgb[0], rgb[1], rgb[2], 255}, nil
}
