// Package view provides output formatting for cflprep commands.
package view

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/open-cli-collective/confluence-prep/pkg/adoc"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatPlain Format = "plain"
)

// Renderer renders data in a specific format.
type Renderer struct {
	format  Format
	writer  io.Writer
	noColor bool
}

// NewRenderer creates a new renderer with the specified format.
func NewRenderer(format Format, noColor bool) *Renderer {
	if noColor {
		color.NoColor = true
	}
	return &Renderer{
		format:  format,
		writer:  os.Stdout,
		noColor: noColor,
	}
}

// SetWriter sets the output writer.
func (r *Renderer) SetWriter(w io.Writer) {
	r.writer = w
}

// pageJSON mirrors the page tree for JSON output.
type pageJSON struct {
	Path     string     `json:"path"`
	Children []pageJSON `json:"children,omitempty"`
}

func toPageJSON(p *adoc.Page) pageJSON {
	out := pageJSON{Path: p.Path()}
	for _, child := range p.Children() {
		out.Children = append(out.Children, toPageJSON(child))
	}
	return out
}

// RenderStructure renders the page structure produced by a preparation run.
func (r *Renderer) RenderStructure(s *adoc.Structure) error {
	if r.format == FormatJSON {
		var pages []pageJSON
		for _, p := range s.Pages() {
			pages = append(pages, toPageJSON(p))
		}
		return r.RenderJSON(pages)
	}

	for _, p := range s.Pages() {
		r.renderPage(p, 0)
	}
	return nil
}

func (r *Renderer) renderPage(p *adoc.Page, depth int) {
	indent := strings.Repeat("  ", depth)
	if depth == 0 && r.format != FormatPlain {
		bold := color.New(color.Bold)
		bold.Fprintf(r.writer, "%s%s\n", indent, p.Path())
	} else {
		fmt.Fprintf(r.writer, "%s%s\n", indent, p.Path())
	}
	for _, child := range p.Children() {
		r.renderPage(child, depth+1)
	}
}

// RenderJSON renders an object as JSON.
func (r *Renderer) RenderJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(r.writer, string(data))
	return nil
}

// RenderText renders plain text.
func (r *Renderer) RenderText(text string) {
	fmt.Fprintln(r.writer, text)
}

// RenderKeyValue renders a key-value pair.
func (r *Renderer) RenderKeyValue(key, value string) {
	if r.format == FormatJSON {
		fmt.Fprintf(r.writer, `{"%s": "%s"}`+"\n", key, value)
		return
	}
	bold := color.New(color.Bold)
	bold.Fprintf(r.writer, "%s: ", key)
	fmt.Fprintln(r.writer, value)
}

// Success prints a success message.
func (r *Renderer) Success(msg string) {
	green := color.New(color.FgGreen)
	green.Fprintln(r.writer, "✓ "+msg)
}

// Error prints an error message.
func (r *Renderer) Error(msg string) {
	red := color.New(color.FgRed)
	red.Fprintln(r.writer, "✗ "+msg)
}
