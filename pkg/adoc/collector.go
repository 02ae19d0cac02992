package adoc

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
)

// mapping records the working-directory target computed for every source
// file in an include closure. Insertion order is significant: it determines
// write order, and membership distinguishes promoted pages from inlined
// references during rewriting.
type mapping struct {
	targets map[string]string
	order   []string
}

func newMapping() *mapping {
	return &mapping{targets: map[string]string{}}
}

func (m *mapping) put(source, target string) {
	if _, ok := m.targets[source]; ok {
		return
	}
	m.targets[source] = target
	m.order = append(m.order, source)
}

func (m *mapping) get(source string) (string, bool) {
	target, ok := m.targets[source]
	return target, ok
}

// collector walks the include graph of one top-level document, building its
// page tree and populating the source-to-target mapping as it goes. Only the
// include grammar is followed; all other references are handled later by the
// rewriter.
type collector struct {
	attrs    Attributes
	enc      encoding.Encoding
	listener Listener
	files    *mapping
}

// includeRef is a promoted include waiting to be descended into.
type includeRef struct {
	source string
	target string
}

// frame is one file on the traversal work list: its page under construction
// and the promoted includes found in it, in line order.
type frame struct {
	page    *Page
	pending []includeRef
	next    int
}

// collect traverses the include graph depth-first using an explicit frame
// stack, so deep or malformed include chains cannot exhaust the call stack.
// A source already present in the mapping is not descended into again: it
// becomes a leaf page carrying the target computed on first visit, which
// also terminates mutually-including documents.
func (c *collector) collect(source, target string) (*Page, error) {
	root, err := c.visit(source, target)
	if err != nil {
		return nil, err
	}

	stack := []*frame{root}
	for {
		top := stack[len(stack)-1]
		if top.next < len(top.pending) {
			inc := top.pending[top.next]
			top.next++

			if existing, ok := c.files.get(inc.source); ok {
				top.page.children = append(top.page.children, &Page{path: existing})
				continue
			}

			child, err := c.visit(inc.source, inc.target)
			if err != nil {
				return nil, err
			}
			stack = append(stack, child)
			continue
		}

		stack = stack[:len(stack)-1]
		if len(stack) == 0 {
			return top.page, nil
		}
		parent := stack[len(stack)-1]
		parent.page.children = append(parent.page.children, top.page)
	}
}

// visit records the mapping entry for source, scans it for includes and
// returns its work-list frame. The mapping entry is recorded before any
// descent so that self-references and repeat visits short-circuit.
func (c *collector) visit(source, target string) (*frame, error) {
	c.listener.ProcessFile(source, target)
	c.files.put(source, target)

	lines, err := readLines(source, c.enc)
	if err != nil {
		return nil, fmt.Errorf("unable to read file %s: %w", source, err)
	}

	f := &frame{page: &Page{path: target}}
	for _, line := range lines {
		line = c.attrs.Apply(line)
		for _, m := range Include.matches(line) {
			ref := strings.TrimSpace(m.ref)
			resolved := resolveReference(source, ref)

			// An include stays inline when it carries the confluence=include
			// marker or does not point at a promotable document.
			if isConfluenceInclude(m.attrs) || !IsDocumentFile(resolved) {
				c.listener.RejectInclude(ref, resolved, source, target)
				continue
			}

			childTarget, err := mirrorTarget(source, target, resolved)
			if err != nil {
				return nil, fmt.Errorf("unable to map include %s from %s: %w", ref, source, err)
			}
			c.listener.CollectInclude(ref, resolved, childTarget, source, target)
			f.pending = append(f.pending, includeRef{source: resolved, target: childTarget})
		}
	}
	return f, nil
}

// isConfluenceInclude reports whether the bracketed attribute list carries
// the exact pair confluence=include, which suppresses promotion.
func isConfluenceInclude(attrs string) bool {
	for _, attr := range strings.Split(attrs, ",") {
		parts := strings.Split(attr, "=")
		if len(parts) == 2 && parts[0] == "confluence" && parts[1] == "include" {
			return true
		}
	}
	return false
}

// readLines reads a source file through the configured decoder, splitting on
// line terminators (LF or CRLF).
func readLines(path string, enc encoding.Encoding) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(enc.NewDecoder().Reader(f))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}
