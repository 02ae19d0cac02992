package adoc

// Page is one document that becomes an independent unit of output. Its path
// points at the rewritten copy in the working directory. Pages are built
// during collection and immutable afterwards.
type Page struct {
	path     string
	children []*Page
}

// NewPage creates a page rooted at a target path with the given children.
func NewPage(path string, children ...*Page) *Page {
	return &Page{path: path, children: children}
}

// Path returns the page's target path in the working directory.
func (p *Page) Path() string {
	return p.path
}

// Children returns the pages promoted out of this page's includes, in order
// of first appearance in the source text.
func (p *Page) Children() []*Page {
	return p.children
}

// Structure is the ordered set of top-level pages produced by one run.
type Structure struct {
	pages []*Page
}

// NewStructure creates a structure from ordered top-level pages.
func NewStructure(pages ...*Page) *Structure {
	return &Structure{pages: pages}
}

// Pages returns the top-level pages, one per top-level document.
func (s *Structure) Pages() []*Page {
	return s.pages
}
