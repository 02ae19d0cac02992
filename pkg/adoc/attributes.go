package adoc

import "strings"

// Attributes maps attribute names to their replacement values. Placeholders
// of the form {name} are substituted on every line before any reference
// grammar is evaluated, so attribute values may form part of a reference
// path. Placeholders without a mapping are left verbatim.
type Attributes map[string]string

// Apply substitutes all known placeholders in line.
func (a Attributes) Apply(line string) string {
	for name, value := range a {
		line = strings.ReplaceAll(line, "{"+name+"}", value)
	}
	return line
}
