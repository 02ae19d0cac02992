package adoc

import (
	"path/filepath"
	"strings"
)

const (
	// DocumentExtension is the file suffix of AsciiDoc sources eligible to
	// become pages.
	DocumentExtension = ".adoc"

	// includePrefix marks documents that only exist to be included and are
	// never published standalone.
	includePrefix = "_"
)

// IsDocumentFile reports whether path names a document eligible to become a
// page: correct extension, not include-prefixed.
func IsDocumentFile(path string) bool {
	name := filepath.Base(path)
	return strings.HasSuffix(name, DocumentExtension) && !strings.HasPrefix(name, includePrefix)
}

// resolveReference returns the normalized path a reference denotes relative
// to the file containing it.
func resolveReference(file, ref string) string {
	return filepath.Clean(filepath.Join(filepath.Dir(file), ref))
}

// mirrorTarget re-applies the offset from file to resolved under the target
// file's directory, so an included file keeps its relative position in the
// working directory.
func mirrorTarget(file, targetFile, resolved string) (string, error) {
	rel, err := filepath.Rel(filepath.Dir(file), resolved)
	if err != nil {
		return "", err
	}
	return filepath.Clean(filepath.Join(filepath.Dir(targetFile), rel)), nil
}
