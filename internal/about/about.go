// Package about renders the introduction shown at the top of the dashboard.
package about

import (
	"bytes"
	_ "embed"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

//go:embed intro.md
var introMarkdown []byte

// Page is rendered markdown plus the metadata the page header needs.
type Page struct {
	Title string   `json:"title"`
	HTML  string   `json:"html"`
	Links []string `json:"links"`
}

// Markdown returns the introduction source.
func Markdown() []byte {
	return bytes.Clone(introMarkdown)
}

// Intro renders the built-in introduction.
func Intro() (*Page, error) {
	return Render(introMarkdown)
}

// Render converts markdown to HTML. The first level-one heading becomes the
// title; link destinations are collected in document order.
func Render(source []byte) (*Page, error) {
	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(source))

	page := &Page{Links: []string{}}
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Heading:
			if v.Level == 1 && page.Title == "" {
				page.Title = headingText(v, source)
			}
		case *ast.Link:
			page.Links = append(page.Links, string(v.Destination))
		case *ast.AutoLink:
			page.Links = append(page.Links, string(v.URL(source)))
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking markdown: %w", err)
	}

	var buf bytes.Buffer
	if err := md.Renderer().Render(&buf, source, doc); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	page.HTML = buf.String()
	return page, nil
}

func headingText(h *ast.Heading, source []byte) string {
	var buf bytes.Buffer
	for c := h.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Segment.Value(source))
		}
	}
	return buf.String()
}
