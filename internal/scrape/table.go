package scrape

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Row is one table row keyed by header text.
type Row map[string]string

// ParseTables extracts every <table> in the document. Header names come from
// the table's <th> cells; a row whose <td> count differs from the header
// count (header rows, spanning cells) is skipped.
func ParseTables(r io.Reader) ([]Row, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var rows []Row
	for _, table := range findAll(doc, atom.Table) {
		var headers []string
		for _, th := range findAll(table, atom.Th) {
			headers = append(headers, textOf(th))
		}
		if len(headers) == 0 {
			continue
		}
		for _, tr := range findAll(table, atom.Tr) {
			cells := childrenOf(tr, atom.Td)
			if len(cells) != len(headers) {
				continue
			}
			row := make(Row, len(headers))
			for i, h := range headers {
				row[h] = textOf(cells[i])
			}
			rows = append(rows, row)
		}
	}
	return rows, nil
}

// HasColumns reports whether the row carries every named column.
func (r Row) HasColumns(cols ...string) bool {
	for _, c := range cols {
		if _, ok := r[c]; !ok {
			return false
		}
	}
	return true
}

// First returns the value of the first present column.
func (r Row) First(cols ...string) string {
	for _, c := range cols {
		if v, ok := r[c]; ok {
			return v
		}
	}
	return ""
}

func findAll(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == a {
				out = append(out, c)
			}
			walk(c)
		}
	}
	walk(n)
	return out
}

func childrenOf(n *html.Node, a atom.Atom) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == a {
			out = append(out, c)
		}
	}
	return out
}

// textOf joins the node's text fragments with single spaces.
func textOf(n *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.Join(strings.Fields(n.Data), " "); s != "" {
				parts = append(parts, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(parts, " ")
}
