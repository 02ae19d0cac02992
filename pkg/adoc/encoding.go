package adoc

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// DefaultEncoding is used when no source encoding is configured.
var DefaultEncoding = unicode.UTF8

// ResolveEncoding maps an IANA charset name (as found in publisher
// configuration, e.g. "UTF-8" or "ISO-8859-1") to its encoding. An empty
// name selects the default.
func ResolveEncoding(name string) (encoding.Encoding, error) {
	if name == "" {
		return DefaultEncoding, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("unknown source encoding %q: %w", name, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported source encoding %q", name)
	}
	return enc, nil
}
