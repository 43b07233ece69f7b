// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick_test

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/taxtree/newick"
)

func TestParse(t *testing.T) {
	tree := "((Pan:0.18,Homo:0.11)hominini:0.59,Gorilla:0.63);\n"
	tr, err := newick.Parse(strings.NewReader(tree))
	if err != nil {
		t.Fatalf("unable to parse tree: %v", err)
	}

	if l := tr.Len(); l != 5 {
		t.Errorf("nodes: got %d, want %d", l, 5)
	}

	terms := []string{"Pan", "Homo", "Gorilla"}
	if g := tr.Terms(); !reflect.DeepEqual(g, terms) {
		t.Errorf("terms: got %v, want %v", g, terms)
	}

	if !tr.IsRoot(tr.Root()) {
		t.Errorf("node %d: expecting root", tr.Root())
	}
	if p := tr.Parent(tr.Root()); p != -1 {
		t.Errorf("root parent: got %d, want %d", p, -1)
	}

	hom := tr.TermNode("Homo")
	if hom < 0 {
		t.Fatalf("terminal %q not found", "Homo")
	}
	if !tr.IsTerm(hom) {
		t.Errorf("node %d [taxon %q]: expecting a terminal", hom, "Homo")
	}
	if l := tr.BrLen(hom); l != 0.11 {
		t.Errorf("branch length of %q: got %.3f, want %.3f", "Homo", l, 0.11)
	}

	anc := tr.Parent(hom)
	if lb := tr.Label(anc); lb != "hominini" {
		t.Errorf("label of node %d: got %q, want %q", anc, lb, "hominini")
	}
	if l := tr.BrLen(anc); l != 0.59 {
		t.Errorf("branch length of %q: got %.3f, want %.3f", "hominini", l, 0.59)
	}
	children := tr.Children(anc)
	if len(children) != 2 {
		t.Fatalf("children of %q: got %d, want %d", "hominini", len(children), 2)
	}

	sub := []string{"Pan", "Homo"}
	if g := tr.Subtree(anc); !reflect.DeepEqual(g, sub) {
		t.Errorf("subtree of %q: got %v, want %v", "hominini", g, sub)
	}
}

func TestNewick(t *testing.T) {
	trees := []string{
		"((Pan:0.18,Homo:0.11)hominini:0.59,Gorilla:0.63);\n",
		"((A:1,B:1):1,(C:1,D:1):1);\n",
		"((A:1,B:1):1,(C:1,D:1):1):0.5;\n",
		"(((A,B),C),D);\n",
		"('Homo sapiens':1,Pan:1);\n",
		"A:0.25;\n",
	}
	for _, tree := range trees {
		tr, err := newick.Parse(strings.NewReader(tree))
		if err != nil {
			t.Fatalf("unable to parse tree %q: %v", tree, err)
		}

		var buf bytes.Buffer
		if err := tr.Newick(&buf); err != nil {
			t.Fatalf("unable to write tree %q: %v", tree, err)
		}
		if buf.String() != tree {
			t.Errorf("tree output: got %q, want %q", buf.String(), tree)
		}
	}
}

func TestParseError(t *testing.T) {
	tests := map[string]string{
		"empty":          "",
		"no terminator":  "(A,B)",
		"unbalanced":     "(A,(B,C);",
		"no name":        "(,);",
		"bad length":     "(A:x,B:1);",
		"negative":       "(A:-1,B:1);",
		"repeated names": "(A,(B,A));",
	}
	for name, tree := range tests {
		_, err := newick.Parse(strings.NewReader(tree))
		if err == nil {
			t.Errorf("%s: expecting error for %q", name, tree)
			continue
		}
		var pe *newick.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: got error %q, want a ParseError", name, err)
		}
	}
}

func TestDist(t *testing.T) {
	tree := "((A:1,B:2):3,(C:4,D:5):6);"
	tr, err := newick.Parse(strings.NewReader(tree))
	if err != nil {
		t.Fatalf("unable to parse tree: %v", err)
	}

	a := tr.TermNode("A")
	b := tr.TermNode("B")
	cc := tr.TermNode("C")
	d := tr.TermNode("D")

	dist := []struct {
		x, y int
		d    float64
	}{
		{a, b, 3},
		{a, cc, 14},
		{a, a, 0},
		{cc, d, 9},
		{b, d, 16},
	}
	for _, v := range dist {
		if g := tr.Dist(v.x, v.y); g != v.d {
			t.Errorf("distance %q-%q: got %.3f, want %.3f", tr.Label(v.x), tr.Label(v.y), g, v.d)
		}
		if g := tr.Dist(v.y, v.x); g != v.d {
			t.Errorf("distance %q-%q: got %.3f, want %.3f", tr.Label(v.y), tr.Label(v.x), g, v.d)
		}
	}

	if g := tr.Depth(a); g != 4 {
		t.Errorf("depth of %q: got %.3f, want %.3f", "A", g, 4.0)
	}

	if m := tr.MRCA(a, b); m != tr.Parent(a) {
		t.Errorf("mrca of %q-%q: got %d, want %d", "A", "B", m, tr.Parent(a))
	}
	if m := tr.MRCA(a, cc); m != tr.Root() {
		t.Errorf("mrca of %q-%q: got %d, want %d", "A", "C", m, tr.Root())
	}
	if m := tr.MRCA(d); m != d {
		t.Errorf("mrca of %q: got %d, want %d", "D", m, d)
	}
	if m := tr.MRCA(); m != -1 {
		t.Errorf("empty mrca: got %d, want %d", m, -1)
	}
}
