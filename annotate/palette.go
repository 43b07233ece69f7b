// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package annotate

import (
	"fmt"
	"os"

	"github.com/js-arias/taxtree/itol"
)

// LoadPalette builds the palette
// for an annotation run.
// If name is not empty,
// the palette is read from the indicated file;
// otherwise,
// if rainbow is greater than zero,
// a rainbow palette of that size is used;
// otherwise the default palette is used.
// If max is greater than zero,
// it limits the number of taxa
// with a distinct color.
func LoadPalette(name string, rainbow, max int) (itol.Palette, error) {
	var pal itol.Palette
	switch {
	case name != "":
		f, err := os.Open(name)
		if err != nil {
			return itol.Palette{}, err
		}
		defer f.Close()

		pal, err = itol.ReadPalette(f)
		if err != nil {
			return itol.Palette{}, fmt.Errorf("on palette file %q: %v", name, err)
		}
	case rainbow > 0:
		pal = itol.RainbowPalette(rainbow)
	default:
		pal = itol.DefaultPalette()
	}

	pal.Max = max
	return pal, nil
}
