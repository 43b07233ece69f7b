// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rooting_test

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/taxtree/newick"
	"github.com/js-arias/taxtree/rooting"
)

func TestParseMethod(t *testing.T) {
	methods := map[string]rooting.Method{
		"none":     rooting.None,
		"midpoint": rooting.Midpoint,
		"outgroup": rooting.Outgroup,
	}
	for s, m := range methods {
		g, err := rooting.ParseMethod(s)
		if err != nil {
			t.Errorf("method %q: unexpected error: %v", s, err)
			continue
		}
		if g != m {
			t.Errorf("method %q: got %v, want %v", s, g, m)
		}
		if g.String() != s {
			t.Errorf("method %q: string: got %q", s, g.String())
		}
	}

	if _, err := rooting.ParseMethod("middle"); err == nil {
		t.Errorf("method %q: expecting error", "middle")
	}
}

func TestNone(t *testing.T) {
	tr := parse(t, "((A:1,B:1):1,(C:1,D:1):1);")

	rt, err := rooting.Root(tr, rooting.None, nil)
	if err != nil {
		t.Fatalf("unable to root tree: %v", err)
	}
	testTerms(t, "none", tr, rt)

	var buf bytes.Buffer
	if err := rt.Newick(&buf); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	if want := "((A:1,B:1):1,(C:1,D:1):1);\n"; buf.String() != want {
		t.Errorf("none: got %q, want %q", buf.String(), want)
	}
}

func TestMidpoint(t *testing.T) {
	tr := parse(t, "(A:1,B:3);")

	rt, err := rooting.Root(tr, rooting.Midpoint, nil)
	if err != nil {
		t.Fatalf("unable to root tree: %v", err)
	}
	testTerms(t, "midpoint", tr, rt)

	// the two segments of the split branch
	// must sum the original branch length,
	// and both terminals must be at the same distance
	// from the new root
	a := rt.TermNode("A")
	b := rt.TermNode("B")
	if d := rt.Dist(a, b); d != 4 {
		t.Errorf("midpoint: distance %q-%q: got %.3f, want %.3f", "A", "B", d, 4.0)
	}
	if d := rt.Depth(a); d != 2 {
		t.Errorf("midpoint: depth of %q: got %.3f, want %.3f", "A", d, 2.0)
	}
	if d := rt.Depth(b); d != 2 {
		t.Errorf("midpoint: depth of %q: got %.3f, want %.3f", "B", d, 2.0)
	}

	var buf bytes.Buffer
	if err := rt.Newick(&buf); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	if want := "(B:2,(A:1):1);\n"; buf.String() != want {
		t.Errorf("midpoint: got %q, want %q", buf.String(), want)
	}

	// the input tree must not be modified
	var orig bytes.Buffer
	if err := tr.Newick(&orig); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	if want := "(A:1,B:3);\n"; orig.String() != want {
		t.Errorf("input tree modified: got %q, want %q", orig.String(), want)
	}
}

func TestMidpointLastBranch(t *testing.T) {
	// the midpoint falls inside the last branch
	// of the path between the two most distant terminals
	tr := parse(t, "(A:1,(B:1,(C:5,D:1):1):1);")

	rt, err := rooting.Root(tr, rooting.Midpoint, nil)
	if err != nil {
		t.Fatalf("unable to root tree: %v", err)
	}
	testTerms(t, "midpoint", tr, rt)

	a := rt.TermNode("A")
	c := rt.TermNode("C")
	if d := rt.Dist(a, c); d != 8 {
		t.Errorf("midpoint: distance %q-%q: got %.3f, want %.3f", "A", "C", d, 8.0)
	}
	if d := rt.Depth(a); d != 4 {
		t.Errorf("midpoint: depth of %q: got %.3f, want %.3f", "A", d, 4.0)
	}
	if d := rt.Depth(c); d != 4 {
		t.Errorf("midpoint: depth of %q: got %.3f, want %.3f", "C", d, 4.0)
	}
}

func TestMidpointIdempotent(t *testing.T) {
	trees := []string{
		"(A:1,B:3);",
		"((A:1,B:1):1,(C:1,D:1):1);",
		"(((A:1,C:1):1,B:1):1,D:1);",
	}
	for _, tree := range trees {
		tr := parse(t, tree)
		rt, err := rooting.Root(tr, rooting.Midpoint, nil)
		if err != nil {
			t.Fatalf("tree %q: unable to root tree: %v", tree, err)
		}
		rrt, err := rooting.Root(rt, rooting.Midpoint, nil)
		if err != nil {
			t.Fatalf("tree %q: unable to re-root tree: %v", tree, err)
		}
		testTerms(t, tree, rt, rrt)

		var first, second bytes.Buffer
		if err := rt.Newick(&first); err != nil {
			t.Fatalf("tree %q: unable to write tree: %v", tree, err)
		}
		if err := rrt.Newick(&second); err != nil {
			t.Fatalf("tree %q: unable to write tree: %v", tree, err)
		}
		if first.String() != second.String() {
			t.Errorf("tree %q: midpoint not idempotent: got %q, want %q", tree, second.String(), first.String())
		}
	}
}

func TestOutgroup(t *testing.T) {
	tr := parse(t, "(((A,B),C),D);")

	rt, err := rooting.Root(tr, rooting.Outgroup, []string{"D"})
	if err != nil {
		t.Fatalf("unable to root tree: %v", err)
	}
	testTerms(t, "outgroup", tr, rt)

	children := rt.Children(rt.Root())
	if len(children) != 2 {
		t.Fatalf("outgroup: root children: got %d, want %d", len(children), 2)
	}
	in := rt.Subtree(children[0])
	out := rt.Subtree(children[1])
	if !slices.Equal(out, []string{"D"}) {
		t.Errorf("outgroup clade: got %v, want %v", out, []string{"D"})
	}
	ingroup := []string{"A", "B", "C"}
	slices.Sort(in)
	if !slices.Equal(in, ingroup) {
		t.Errorf("ingroup clade: got %v, want %v", in, ingroup)
	}
}

func TestOutgroupReroot(t *testing.T) {
	tr := parse(t, "(((A:1,B:1):1,C:1):1,D:1);")

	rt, err := rooting.Root(tr, rooting.Outgroup, []string{"A"})
	if err != nil {
		t.Fatalf("unable to root tree: %v", err)
	}
	testTerms(t, "outgroup", tr, rt)

	children := rt.Children(rt.Root())
	if len(children) != 2 {
		t.Fatalf("outgroup: root children: got %d, want %d", len(children), 2)
	}
	out := rt.Subtree(children[0])
	if !slices.Equal(out, []string{"A"}) {
		t.Errorf("outgroup clade: got %v, want %v", out, []string{"A"})
	}
	rest := rt.Subtree(children[1])
	slices.Sort(rest)
	if want := []string{"B", "C", "D"}; !slices.Equal(rest, want) {
		t.Errorf("ingroup clade: got %v, want %v", rest, want)
	}

	// every branch length is preserved:
	// the distance between any pair of terminals
	// does not change
	pairs := []struct {
		x, y string
		d    float64
	}{
		{"A", "B", 2},
		{"A", "D", 4},
		{"B", "C", 3},
		{"C", "D", 3},
	}
	for _, p := range pairs {
		g := rt.Dist(rt.TermNode(p.x), rt.TermNode(p.y))
		if g != p.d {
			t.Errorf("distance %q-%q: got %.3f, want %.3f", p.x, p.y, g, p.d)
		}
	}
}

func TestRootingError(t *testing.T) {
	tests := []struct {
		name     string
		tree     string
		method   rooting.Method
		outgroup []string
	}{
		{"single terminal", "A;", rooting.Midpoint, nil},
		{"no branch lengths", "((A,B),C);", rooting.Midpoint, nil},
		{"outgroup not found", "((A:1,B:1):1,C:1);", rooting.Outgroup, []string{"X"}},
		{"no outgroup", "((A:1,B:1):1,C:1);", rooting.Outgroup, nil},
		{"whole tree outgroup", "((A:1,B:1):1,C:1);", rooting.Outgroup, []string{"A", "C"}},
	}
	for _, test := range tests {
		tr := parse(t, test.tree)
		_, err := rooting.Root(tr, test.method, test.outgroup)
		if err == nil {
			t.Errorf("%s: expecting error", test.name)
			continue
		}
		var re *rooting.RootingError
		if !errors.As(err, &re) {
			t.Errorf("%s: got error %q, want a RootingError", test.name, err)
		}
	}
}

func parse(t testing.TB, tree string) *newick.Tree {
	t.Helper()

	tr, err := newick.Parse(strings.NewReader(tree))
	if err != nil {
		t.Fatalf("unable to parse tree %q: %v", tree, err)
	}
	return tr
}

func testTerms(t testing.TB, name string, tr, rt *newick.Tree) {
	t.Helper()

	want := slices.Clone(tr.Terms())
	slices.Sort(want)
	got := slices.Clone(rt.Terms())
	slices.Sort(got)
	if !slices.Equal(got, want) {
		t.Errorf("%s: terminals: got %v, want %v", name, got, want)
	}
}
