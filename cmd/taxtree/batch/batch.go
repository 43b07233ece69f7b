// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package batch implements a command to annotate
// all the tree files of a directory.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/js-arias/command"
	"github.com/js-arias/taxtree/annotate"
	"github.com/js-arias/taxtree/rooting"
	"github.com/js-arias/taxtree/taxonomy"
)

var Command = &command.Command{
	Usage: `batch [--ext <extension>] [--outdir <directory>]
	[--cpu <number>]
	[--rank <rank>]
	[--method <method>] [--outgroup <terminal>]
	[--labels] [--save-rooted]
	[--palette <palette-file>] [--rainbow <number>] [--colors <number>]
	[-v|--verbose]
	<trees-directory> <taxonomy-file>`,
	Short: "color all trees of a directory",
	Long: `
Command batch reads all the tree files of a directory and colors each of them
by taxonomy, as the color command does, sharing a single taxonomy file and
color palette.

The first argument of the command is the name of the directory with the tree
files, and the second is the name of the taxonomy file (see "taxtree help
taxonomy-files").

By default, files with the ".treefile" extension are processed; use the flag
--ext to set a different extension. Output files are written to the tree
directory; use the flag --outdir to set a different output directory.

Trees are processed in parallel, using one process per available CPU; use the
flag --cpu to set a different number of processes. Each tree is independent:
the failure of a tree is reported, but it does not stop the processing of the
other trees. The command fails if one or more trees failed.

The rooting, ranking, and palette flags are the same as in the color command;
see "taxtree help color".
	`,
	SetFlags: setFlags,
	Run:      run,
}

var colorsFlag int
var cpuFlag int
var extFlag string
var labelsFlag bool
var methodFlag string
var outDir string
var outgroupFlag string
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
	c.Flags().IntVar(&cpuFlag, "cpu", 0, "")
	c.Flags().IntVar(&rainbowFlag, "rainbow", 0, "")
	c.Flags().StringVar(&extFlag, "ext", ".treefile", "")
	c.Flags().StringVar(&methodFlag, "method", "midpoint", "")
	c.Flags().StringVar(&outDir, "outdir", "", "")
	c.Flags().StringVar(&outgroupFlag, "outgroup", "", "")
	c.Flags().StringVar(&paletteFile, "palette", "", "")
	c.Flags().StringVar(&rankFlag, "rank", "phylum", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 2 {
		return c.UsageError("expecting trees directory and taxonomy file")
	}
	treeDir := args[0]
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

	files, err := treeFiles(treeDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no %q files in directory %q", extFlag, treeDir)
	}

	if outDir == "" {
		outDir = treeDir
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}

	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	l := log.NewWithOptions(c.Stderr(), log.Options{
		Level: level,
	})

	opt := annotate.Options{
		Rank:       rank,
		Method:     method,
		Outgroup:   outgroup,
		Labels:     labelsFlag,
		SaveRooted: saveRooted,
		Palette:    pal,
		OutDir:     outDir,
		Logger:     l,
	}

	cpu := cpuFlag
	if cpu == 0 {
		cpu = runtime.NumCPU()
	}

	// The taxonomy table and the palette
	// are read-only,
	// so the tree files can be annotated
	// without any synchronization.
	jobs := make(chan string, cpu*2)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var failed []string
	for i := 0; i < cpu; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for name := range jobs {
				if _, err := annotate.TreeFile(name, tax, opt); err != nil {
					l.Error("tree failed", "tree", name, "err", err)
					mu.Lock()
					failed = append(failed, name)
					mu.Unlock()
					continue
				}
				l.Info("tree done", "tree", name)
			}
		}()
	}
	for _, name := range files {
		jobs <- name
	}
	close(jobs)
	wg.Wait()

	fmt.Fprintf(c.Stdout(), "%d of %d trees processed\n", len(files)-len(failed), len(files))
	if len(failed) > 0 {
		slices.Sort(failed)
		return fmt.Errorf("%d of %d trees failed: %s", len(failed), len(files), strings.Join(failed, ", "))
	}
	return nil
}

func treeFiles(dir string) ([]string, error) {
	ls, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range ls {
		if e.IsDir() {
			continue
		}
		if filepath.Ext(e.Name()) != extFlag {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	slices.Sort(files)
	return files, nil
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
