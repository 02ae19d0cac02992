package adoc

// Listener receives a callback at each decision point of a preparation run.
// Implementations are purely observational: calls return nothing and must
// not affect control flow. All paths passed to hooks are absolute.
type Listener interface {
	// ProcessDirectory reports that a directory source is being enumerated.
	ProcessDirectory(dir string)

	// ProcessFile reports a document entering the include graph, with the
	// working-directory path computed for it.
	ProcessFile(file, targetFile string)

	// CollectInclude reports an include promoted to its own page.
	CollectInclude(ref string, resolved, target, file, targetFile string)

	// RejectInclude reports an include left for literal inlining.
	RejectInclude(ref string, resolved, file, targetFile string)

	// RewriteFile reports a source file about to be rewritten to its target.
	RewriteFile(file, targetFile string)

	// ChangePath reports a reference whose path was adjusted (or whose
	// directive was removed because the referenced document became a page).
	ChangePath(ref string, resolved, rewritten, file, targetFile string, d *Delimiter)

	// MissingPath reports a reference that resolves to a path absent on
	// disk; the directive is emitted unchanged.
	MissingPath(ref string, resolved, file, targetFile string, d *Delimiter)
}

// NoOpListener ignores all events. It is the default when no listener is
// supplied.
type NoOpListener struct{}

var _ Listener = NoOpListener{}

func (NoOpListener) ProcessDirectory(string) {}
func (NoOpListener) ProcessFile(string, string) {}
func (NoOpListener) CollectInclude(string, string, string, string, string) {}
func (NoOpListener) RejectInclude(string, string, string, string) {}
func (NoOpListener) RewriteFile(string, string) {}
func (NoOpListener) ChangePath(string, string, string, string, string, *Delimiter) {}
func (NoOpListener) MissingPath(string, string, string, string, *Delimiter) {}
