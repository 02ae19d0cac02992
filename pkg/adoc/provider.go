// Package adoc discovers the include graph of a tree of AsciiDoc documents
// and materializes rewritten copies of every involved file into a working
// directory, ready for a downstream renderer and publisher.
//
// Each non-prefixed document becomes a page; includes of non-prefixed
// documents are promoted to child pages and their directives removed from
// the rewritten parent, while all other local references (images, diagrams,
// links, cross-references, imagesdir declarations) are re-pointed so the
// rewritten copies stay consistent at their new location.
package adoc

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding"
)

// Provider builds the page structure for a configured source and populates
// the working directory. Construction validates the configuration; no file
// content is read before Build is called.
type Provider struct {
	source   string
	workDir  string
	attrs    Attributes
	enc      encoding.Encoding
	listener Listener
}

// Option configures a Provider.
type Option func(*Provider)

// WithAttributes sets the attribute values substituted into every line
// before reference grammars are evaluated.
func WithAttributes(attrs map[string]string) Option {
	return func(p *Provider) {
		if attrs != nil {
			p.attrs = Attributes(attrs)
		}
	}
}

// WithEncoding sets the text encoding used to read sources and write
// rewritten copies. Defaults to UTF-8.
func WithEncoding(enc encoding.Encoding) Option {
	return func(p *Provider) {
		if enc != nil {
			p.enc = enc
		}
	}
}

// WithListener installs a listener for preparation events. Defaults to a
// no-op.
func WithListener(l Listener) Option {
	return func(p *Provider) {
		if l != nil {
			p.listener = l
		}
	}
}

// NewProvider validates source and workDir and returns a Provider. The
// source must exist and be either a directory or a non-prefixed document
// file; the working directory, if it exists, must be a directory. These are
// configuration errors: they fail before any traversal starts.
func NewProvider(source, workDir string, opts ...Option) (*Provider, error) {
	source, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("invalid source %s: %w", source, err)
	}
	workDir, err = filepath.Abs(workDir)
	if err != nil {
		return nil, fmt.Errorf("invalid working directory %s: %w", workDir, err)
	}

	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("source not found: %s", source)
	}
	if !info.IsDir() && !IsDocumentFile(source) {
		return nil, fmt.Errorf("invalid source %s: must be a directory or %s file", source, DocumentExtension)
	}
	if winfo, err := os.Stat(workDir); err == nil && !winfo.IsDir() {
		return nil, fmt.Errorf("working directory is not a directory: %s", workDir)
	}

	p := &Provider{
		source:   source,
		workDir:  workDir,
		attrs:    Attributes{},
		enc:      DefaultEncoding,
		listener: NoOpListener{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Build discovers and rewrites the include closure of every top-level
// document and returns the resulting page structure. A directory source
// contributes one top-level page per non-prefixed document in its immediate
// listing; sub-directories are reachable only through includes. Any I/O
// failure aborts the run, leaving already-written targets in place.
func (p *Provider) Build() (*Structure, error) {
	var pages []*Page

	info, err := os.Stat(p.source)
	if err != nil {
		return nil, fmt.Errorf("source not found: %s", p.source)
	}

	if info.IsDir() {
		p.listener.ProcessDirectory(p.source)
		entries, err := os.ReadDir(p.source)
		if err != nil {
			return nil, fmt.Errorf("unable to list source directory %s: %w", p.source, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !IsDocumentFile(entry.Name()) {
				continue
			}
			file := filepath.Join(p.source, entry.Name())
			page, err := p.preparePage(file, filepath.Join(p.workDir, entry.Name()))
			if err != nil {
				return nil, err
			}
			pages = append(pages, page)
		}
	} else {
		page, err := p.preparePage(p.source, filepath.Join(p.workDir, filepath.Base(p.source)))
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}

	return &Structure{pages: pages}, nil
}

// preparePage runs the two phases for one top-level document: collection
// populates the page tree and the source-to-target mapping for the whole
// include closure, then rewriting consumes the completed mapping. The
// phases are not interleaved because rewriting's promoted-page decisions
// need the full mapping.
func (p *Provider) preparePage(source, target string) (*Page, error) {
	files := newMapping()

	c := &collector{attrs: p.attrs, enc: p.enc, listener: p.listener, files: files}
	page, err := c.collect(source, filepath.Clean(target))
	if err != nil {
		return nil, err
	}

	r := &rewriter{attrs: p.attrs, enc: p.enc, listener: p.listener, files: files}
	if err := r.rewriteAll(); err != nil {
		return nil, err
	}
	return page, nil
}
