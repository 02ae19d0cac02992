package prepare

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/open-cli-collective/confluence-prep/pkg/adoc"
)

// Stats tallies the outcome of a preparation run.
type Stats struct {
	FilesWritten int
	Promoted     int
	Inlined      int
	MissingRefs  []string
}

// runListener collects Stats and, in verbose mode, streams each decision to
// stderr as it happens.
type runListener struct {
	Stats

	verbose bool
}

var _ adoc.Listener = (*runListener)(nil)

func (l *runListener) ProcessDirectory(dir string) {
	l.debugf("scanning %s", dir)
}

func (l *runListener) ProcessFile(file, targetFile string) {
	l.debugf("collecting %s -> %s", file, targetFile)
}

func (l *runListener) CollectInclude(ref string, resolved, target, file, _ string) {
	l.Promoted++
	l.debugf("promoting include %s (%s) to page %s", ref, file, target)
}

func (l *runListener) RejectInclude(ref string, resolved, file, _ string) {
	l.Inlined++
	l.debugf("keeping include %s (%s) inline", ref, file)
}

func (l *runListener) RewriteFile(file, targetFile string) {
	l.FilesWritten++
	l.debugf("rewriting %s -> %s", file, targetFile)
}

func (l *runListener) ChangePath(ref string, _, rewritten, file, _ string, d *adoc.Delimiter) {
	l.debugf("adjusted %s%s in %s -> %s", d.Start, ref, file, rewritten)
}

func (l *runListener) MissingPath(ref string, resolved, file, _ string, d *adoc.Delimiter) {
	l.MissingRefs = append(l.MissingRefs, fmt.Sprintf("%s%s (in %s)", d.Start, ref, file))
	if l.verbose {
		yellow := color.New(color.FgYellow)
		yellow.Fprintf(os.Stderr, "missing: %s resolves to %s, leaving line unchanged\n", ref, resolved)
	}
}

func (l *runListener) debugf(format string, args ...interface{}) {
	if !l.verbose {
		return
	}
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(os.Stderr, format+"\n", args...)
}
