// delimiter.go defines the reference grammars recognized during preparation.
package adoc

import (
	"regexp"
	"strings"
)

// Delimiter describes one recognized reference syntax: a start token, an
// optional terminator between the referenced path and any trailing attribute
// text, and an end token. Block-form delimiters match at line start only;
// inline delimiters may appear anywhere after the first column.
type Delimiter struct {
	Start  string
	RefEnd string
	End    string

	inline  bool
	pattern *regexp.Regexp
}

// The grammars, in the order the rewriter applies them to each line.
var (
	ImagesDir = &Delimiter{
		Start:   ":imagesdir: ",
		pattern: regexp.MustCompile(`^(:imagesdir:)(\s*\S+)(.*)$`),
	}
	Include      = newDelimiter("include::", "[", "]", false)
	ImageBlock   = newDelimiter("image::", "[", "]", false)
	DiagramBlock = newDelimiter("plantuml::", "[", "]", false)
	InlineImage  = newDelimiter("image:", "[", "]", true)
	InlineLink   = newDelimiter("link:", "[", "]", true)
	CrossRef     = newDelimiter("<<", "#,", ">>", true)
)

var rewriteOrder = []*Delimiter{
	ImagesDir,
	Include,
	ImageBlock,
	DiagramBlock,
	InlineImage,
	InlineLink,
	CrossRef,
}

func newDelimiter(start, refEnd, end string, inline bool) *Delimiter {
	var b strings.Builder
	if !inline {
		b.WriteString("^")
	}
	b.WriteString("(" + regexp.QuoteMeta(start) + ")")
	b.WriteString("([^" + charClass(refEnd) + "]*)" + regexp.QuoteMeta(refEnd))
	b.WriteString("([^" + charClass(end) + "]*)" + regexp.QuoteMeta(end))

	return &Delimiter{
		Start:   start,
		RefEnd:  refEnd,
		End:     end,
		inline:  inline,
		pattern: regexp.MustCompile(b.String()),
	}
}

// charClass escapes a token's characters for use inside a negated character
// class. Duplicate characters are harmless.
func charClass(token string) string {
	var b strings.Builder
	for _, c := range token {
		switch c {
		case '\\', ']', '^', '-':
			b.WriteRune('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// match is one occurrence of a delimiter on a line: the byte span of the
// full directive, the raw reference text, and the trailing attribute text.
type match struct {
	start, end int
	ref        string
	attrs      string
}

// matches returns every non-overlapping occurrence of d on line, left to
// right. Inline delimiters never match at column zero, which keeps the
// inline form distinct from its block counterpart (image: vs image::).
func (d *Delimiter) matches(line string) []match {
	if !d.inline {
		idx := d.pattern.FindStringSubmatchIndex(line)
		if idx == nil {
			return nil
		}
		return []match{d.spanOf(line, idx)}
	}

	var out []match
	for _, idx := range d.pattern.FindAllStringSubmatchIndex(line, -1) {
		if idx[0] == 0 {
			continue
		}
		out = append(out, d.spanOf(line, idx))
	}
	return out
}

func (d *Delimiter) spanOf(line string, idx []int) match {
	return match{
		start: idx[0],
		end:   idx[1],
		ref:   line[idx[4]:idx[5]],
		attrs: line[idx[6]:idx[7]],
	}
}

// render reassembles a directive around a new reference path, preserving the
// trailing attribute text.
func (d *Delimiter) render(path, attrs string) string {
	return d.Start + path + d.RefEnd + attrs + d.End
}
