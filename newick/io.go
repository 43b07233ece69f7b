// Copyright © 2025 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// ParseError is an error produced
// when reading a malformed newick tree.
type ParseError struct {
	Pos int    // byte position of the error
	Msg string // description of the error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: at byte %d: %s", e.Pos, e.Msg)
}

// Parse reads a tree in newick
// (parenthetical)
// format.
//
// A tree is terminated by a semicolon,
// terminals must have a name,
// branch lengths are preceded by a colon,
// and internal nodes can have an optional label:
//
//	((Pan:0.18,Homo:0.11)hominini:0.59,Gorilla:0.63);
//
// Names with spaces or punctuation
// must be enclosed in single quotes.
// Terminal names must be unique within the tree.
func Parse(r io.Reader) (*Tree, error) {
	p := &parser{
		r: bufio.NewReader(r),
	}
	t, err := p.tree()
	if err != nil {
		return nil, err
	}

	names := make(map[string]bool)
	for _, nm := range t.Terms() {
		if nm == "" {
			return nil, &ParseError{Pos: p.pos, Msg: "terminal without a name"}
		}
		if names[nm] {
			return nil, &ParseError{Pos: p.pos, Msg: fmt.Sprintf("repeated terminal name %q", nm)}
		}
		names[nm] = true
	}
	return t, nil
}

type parser struct {
	r   *bufio.Reader
	pos int
}

func (p *parser) tree() (*Tree, error) {
	r, err := p.next()
	if err != nil {
		return nil, &ParseError{Pos: p.pos, Msg: "empty tree"}
	}

	t := NewRoot("")
	if r == '(' {
		if err := p.children(t, t.Root()); err != nil {
			return nil, err
		}
		label, brLen, hasLen, err := p.nodeData()
		if err != nil {
			return nil, err
		}
		t.nodes[0].taxon = label
		t.nodes[0].brLen = brLen
		t.nodes[0].hasLen = hasLen
	} else {
		// a tree with a single terminal
		p.unread(r)
		label, brLen, hasLen, err := p.nodeData()
		if err != nil {
			return nil, err
		}
		if label == "" {
			return nil, &ParseError{Pos: p.pos, Msg: "terminal without a name"}
		}
		t.nodes[0].taxon = label
		t.nodes[0].brLen = brLen
		t.nodes[0].hasLen = hasLen
	}

	r, err = p.next()
	if err != nil || r != ';' {
		return nil, &ParseError{Pos: p.pos, Msg: "expecting ';'"}
	}
	return t, nil
}

// Children reads the descendants of a node,
// after the opening parenthesis was consumed.
func (p *parser) children(t *Tree, parent int) error {
	for {
		r, err := p.next()
		if err != nil {
			return &ParseError{Pos: p.pos, Msg: "unbalanced parenthesis"}
		}

		var id int
		if r == '(' {
			id, _ = t.AddNoLen(parent, "")
			if err := p.children(t, id); err != nil {
				return err
			}
			label, brLen, hasLen, err := p.nodeData()
			if err != nil {
				return err
			}
			t.nodes[id].taxon = label
			t.nodes[id].brLen = brLen
			t.nodes[id].hasLen = hasLen
		} else {
			p.unread(r)
			label, brLen, hasLen, err := p.nodeData()
			if err != nil {
				return err
			}
			if label == "" {
				return &ParseError{Pos: p.pos, Msg: "terminal without a name"}
			}
			id, _ = t.AddNoLen(parent, label)
			t.nodes[id].brLen = brLen
			t.nodes[id].hasLen = hasLen
		}

		r, err = p.next()
		if err != nil {
			return &ParseError{Pos: p.pos, Msg: "unbalanced parenthesis"}
		}
		if r == ',' {
			continue
		}
		if r == ')' {
			return nil
		}
		return &ParseError{Pos: p.pos, Msg: fmt.Sprintf("unexpected character %q", r)}
	}
}

// NodeData reads the label and the branch length
// of a node,
// both of which might be absent.
func (p *parser) nodeData() (label string, brLen float64, hasLen bool, err error) {
	label, err = p.label()
	if err != nil {
		return "", 0, false, err
	}

	r, err := p.next()
	if err != nil {
		return label, 0, false, nil
	}
	if r != ':' {
		p.unread(r)
		return label, 0, false, nil
	}

	tok, err := p.token()
	if err != nil {
		return "", 0, false, &ParseError{Pos: p.pos, Msg: "expecting branch length"}
	}
	brLen, err = strconv.ParseFloat(tok, 64)
	if err != nil {
		return "", 0, false, &ParseError{Pos: p.pos, Msg: fmt.Sprintf("invalid branch length %q", tok)}
	}
	if brLen < 0 {
		return "", 0, false, &ParseError{Pos: p.pos, Msg: fmt.Sprintf("negative branch length %q", tok)}
	}
	return label, brLen, true, nil
}

func (p *parser) label() (string, error) {
	r, err := p.next()
	if err != nil {
		return "", nil
	}
	if r == '\'' {
		return p.quoted()
	}
	p.unread(r)
	return p.token()
}

// Quoted reads a label enclosed in single quotes.
// A pair of single quotes inside the label
// is read as a single quote character.
func (p *parser) quoted() (string, error) {
	var b strings.Builder
	for {
		r, _, err := p.r.ReadRune()
		if err != nil {
			return "", &ParseError{Pos: p.pos, Msg: "unclosed quotation"}
		}
		p.pos++
		if r == '\'' {
			n, _, err := p.r.ReadRune()
			if err == nil && n == '\'' {
				p.pos++
				b.WriteRune('\'')
				continue
			}
			if err == nil {
				p.r.UnreadRune()
			}
			return b.String(), nil
		}
		b.WriteRune(r)
	}
}

// Token reads an unquoted string,
// terminated by any structural character.
func (p *parser) token() (string, error) {
	var b strings.Builder
	for {
		r, _, err := p.r.ReadRune()
		if err != nil {
			return b.String(), nil
		}
		p.pos++
		if strings.ContainsRune("(),:;'", r) || unicode.IsSpace(r) {
			p.pos--
			p.r.UnreadRune()
			return b.String(), nil
		}
		b.WriteRune(r)
	}
}

// Next returns the next character
// that is not a space.
func (p *parser) next() (rune, error) {
	for {
		r, _, err := p.r.ReadRune()
		if err != nil {
			return 0, err
		}
		p.pos++
		if unicode.IsSpace(r) {
			continue
		}
		return r, nil
	}
}

func (p *parser) unread(r rune) {
	p.pos--
	p.r.UnreadRune()
}

// Newick writes a tree in newick format,
// terminated by a semicolon and a newline.
// The output is lossless for names
// and branch lengths.
func (t *Tree) Newick(w io.Writer) error {
	bw := bufio.NewWriter(w)
	t.writeNode(bw, t.Root())
	bw.WriteString(";\n")
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("when writing tree: %v", err)
	}
	return nil
}

func (t *Tree) writeNode(w *bufio.Writer, id int) {
	n := t.nodes[id]
	if len(n.children) > 0 {
		w.WriteByte('(')
		for i, c := range n.children {
			if i > 0 {
				w.WriteByte(',')
			}
			t.writeNode(w, c)
		}
		w.WriteByte(')')
	}
	w.WriteString(quote(n.taxon))
	if n.hasLen {
		w.WriteByte(':')
		w.WriteString(strconv.FormatFloat(n.brLen, 'g', -1, 64))
	}
}

// Quote encloses a name in single quotes
// if it contains any character
// with an structural meaning in a newick file.
func quote(name string) string {
	if !strings.ContainsAny(name, "(),:;' \t\n") {
		return name
	}
	return "'" + strings.ReplaceAll(name, "'", "''") + "'"
}
