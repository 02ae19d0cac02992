package adoc

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
)

// rewriter re-reads every mapped source file and writes its rewritten copy
// to the working directory. It runs only once the mapping is complete for
// the whole include closure, since the promoted-vs-inlined decision for each
// reference depends on mapping membership.
type rewriter struct {
	attrs    Attributes
	enc      encoding.Encoding
	listener Listener
	files    *mapping
}

// rewriteAll processes the mapping in insertion order. Each target file is
// written exactly once per run.
func (r *rewriter) rewriteAll() error {
	for _, source := range r.files.order {
		target := r.files.targets[source]
		if err := r.rewriteFile(source, target); err != nil {
			return err
		}
	}
	return nil
}

func (r *rewriter) rewriteFile(source, target string) error {
	r.listener.RewriteFile(source, target)

	lines, err := readLines(source, r.enc)
	if err != nil {
		return fmt.Errorf("unable to read file %s: %w", source, err)
	}

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = r.attrs.Apply(line)
		for _, d := range rewriteOrder {
			line, err = r.rewriteLine(line, d, source, target)
			if err != nil {
				return fmt.Errorf("unable to rewrite file %s: %w", source, err)
			}
		}
		out = append(out, line)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("unable to create directory for %s: %w", target, err)
	}
	if err := writeLines(target, out, r.enc); err != nil {
		return fmt.Errorf("unable to write file %s: %w", target, err)
	}
	return nil
}

// rewriteLine processes every occurrence of one delimiter on a line and
// splices the results back together. A reference missing on disk survives
// verbatim; an on-disk reference is re-pointed relative to the target file's
// directory; a reference to a promoted page is removed outright, since its
// content now lives in a separate page.
func (r *rewriter) rewriteLine(line string, d *Delimiter, source, target string) (string, error) {
	ms := d.matches(line)
	if len(ms) == 0 {
		return line, nil
	}

	var b strings.Builder
	prev := 0
	for _, m := range ms {
		b.WriteString(line[prev:m.start])
		prev = m.end

		ref := strings.TrimSpace(m.ref)
		resolved := resolveReference(source, ref)

		if _, err := os.Stat(resolved); err != nil {
			r.listener.MissingPath(ref, resolved, source, target, d)
			b.WriteString(line[m.start:m.end])
			continue
		}

		// A mapping hit means the referenced document was promoted to its
		// own page elsewhere; anything else is an on-disk resource.
		dest, promoted := r.files.get(resolved)
		if !promoted {
			dest = resolved
		}

		rel, err := filepath.Rel(filepath.Dir(target), dest)
		if err != nil {
			return "", err
		}
		r.listener.ChangePath(ref, resolved, rel, source, target, d)

		if promoted {
			continue
		}
		b.WriteString(d.render(rel, m.attrs))
	}
	b.WriteString(line[prev:])
	return b.String(), nil
}

// writeLines writes lines through the configured encoder, one per line with
// a trailing newline.
func writeLines(path string, lines []string, enc encoding.Encoding) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(enc.NewEncoder().Writer(f))
	for _, line := range lines {
		if _, err := w.WriteString(line); err != nil {
			f.Close()
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
