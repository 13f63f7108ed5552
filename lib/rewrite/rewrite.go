// Package rewrite is the template preprocessor: a lexical source-to-source
// transform that converts capitalized component tags in template text into
// pipelines dispatching through a psc.Registry. It runs once per template
// file, before html/template compiles the source.
//
// The transform is regex-driven, not an HTML parser. Capitalized tags are
// matched wherever they appear, including inside template comments or
// attribute values, and attribute text on an opening tag may not contain a
// ">". These are accepted limitations of the lexical approach. Nesting is
// checked: an unmatched or mis-nested component tag fails the rewrite with
// an error wrapping psc.ErrUnmatchedTag rather than silently producing
// broken output.
package rewrite

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pthm/psc"
)

// tagPattern matches component tags: a closing form "</Name>" or an opening
// form "<Name attrs>" where Name starts with one uppercase letter. An
// opening tag ending in "/" is self-closing. Lowercase HTML is untouched.
var tagPattern = regexp.MustCompile(`</([A-Z]\w*)\s*>|<([A-Z]\w*)([^>]*?)(/?)>`)

// frame is one open component tag on the rewrite stack.
type frame struct {
	name  string
	attrs string
	buf   strings.Builder
}

// define is a hoisted children block, emitted at the end of the rewritten
// source as a {{define}} so the underlying engine compiles it like any
// other template and renders it lazily via "include".
type define struct {
	id   string
	body string
}

// Rewrite transforms template source, replacing each component block
//
//	<Card><Title>Hi</Title></Card>
//
// with an invocation of the render dispatcher:
//
//	{{component "Card" (include "psc:page.html:2" .)}}
//	{{define "psc:page.html:2"}}{{component "Title" (include "psc:page.html:1" .)}}{{end}}
//	{{define "psc:page.html:1"}}Hi{{end}}
//
// Children stay ordinary template source inside their define, so nested
// components, actions, and the current data value all behave normally; the
// define is only executed when the component pipeline evaluates. Attribute
// text on an opening tag is passed through verbatim as an extra quoted
// argument, which the dispatcher ignores.
//
// path namespaces the generated define names, so rewritten sources from
// different files can be parsed into one template set. The rewrite is pure:
// identical input always produces identical output.
func Rewrite(path, src string) (string, error) {
	matches := tagPattern.FindAllStringSubmatchIndex(src, -1)
	if len(matches) == 0 {
		return src, nil
	}

	root := &frame{}
	stack := []*frame{root}
	var defines []define
	counter := 0
	last := 0

	for _, m := range matches {
		top := stack[len(stack)-1]
		top.buf.WriteString(src[last:m[0]])
		last = m[1]

		if m[2] >= 0 {
			// closing tag
			name := src[m[2]:m[3]]
			if len(stack) == 1 {
				return "", fmt.Errorf("%w: unexpected </%s> in %s", psc.ErrUnmatchedTag, name, path)
			}
			if top.name != name {
				return "", fmt.Errorf("%w: </%s> closes <%s> in %s", psc.ErrUnmatchedTag, name, top.name, path)
			}
			stack = stack[:len(stack)-1]
			counter++
			id := defineID(path, counter)
			defines = append(defines, define{id: id, body: top.buf.String()})
			stack[len(stack)-1].buf.WriteString(invocation(name, fmt.Sprintf("(include %q .)", id), top.attrs))
			continue
		}

		name := src[m[4]:m[5]]
		attrs := strings.TrimSpace(src[m[6]:m[7]])
		if m[8] != m[9] {
			// self-closing tag renders with empty children
			top.buf.WriteString(invocation(name, `""`, attrs))
			continue
		}
		stack = append(stack, &frame{name: name, attrs: attrs})
	}

	if len(stack) != 1 {
		open := stack[len(stack)-1]
		return "", fmt.Errorf("%w: <%s> has no closing tag in %s", psc.ErrUnmatchedTag, open.name, path)
	}

	root.buf.WriteString(src[last:])

	var out strings.Builder
	out.WriteString(root.buf.String())
	for _, d := range defines {
		fmt.Fprintf(&out, "{{define %q}}%s{{end}}", d.id, d.body)
	}
	return out.String(), nil
}

// invocation renders the dispatcher call for one component tag.
func invocation(name, children, attrs string) string {
	if attrs == "" {
		return fmt.Sprintf("{{component %q %s}}", name, children)
	}
	return fmt.Sprintf("{{component %q %s %q}}", name, children, attrs)
}

// defineID names a hoisted children block. IDs are deterministic: they
// depend only on the source path and the order in which blocks close.
func defineID(path string, n int) string {
	return fmt.Sprintf("psc:%s:%d", path, n)
}
