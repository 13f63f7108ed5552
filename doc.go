// Package psc is a compile-time component system for Go HTML templates.
//
// psc turns declarative component definition files into render functions
// callable from templates, uniquely-namespaced CSS classes, and a single
// aggregated stylesheet. A companion preprocessor rewrites capitalized
// custom tags in template source into calls to those render functions, so
// page templates can compose components the way JSX does:
//
//	<Card><Title>Hello</Title></Card>
//
// # Core Concepts
//
// A component is one definition file: a YAML document naming an HTML tag
// and an optional block of CSS properties. The file's base name is the
// component's name and must be a capitalized identifier, since that is how
// templates reference it.
//
//	# Title.yaml
//	tag: h1
//	style: |
//	  color: red;
//
// Compiling a definitions directory produces a Registry mapping each
// component name to a render function that wraps child content in the
// component's tag, carrying a generated class unique to that component
// ("psc-Title"). The same pass regenerates the aggregated stylesheet from
// scratch, so stylesheet and registry always describe the same component
// set; there is no partial or incremental publication.
//
// # Registration and Dispatch
//
// Registries are built explicitly by the compiler (see lib/compiler) and
// passed by reference to whatever renders templates. Lookup of a name not
// in the registry is an error wrapping ErrUnknownComponent; a template
// referencing an undeclared component fails loudly at render time rather
// than rendering nothing.
//
// # Template Integration
//
// The preprocessor (see lib/rewrite) rewrites capitalized tags into
// {{component ...}} pipelines before html/template compiles the source.
// Registry.TemplateFuncs supplies the "component" and "include" functions
// those pipelines call:
//
//	reg, err := compiler.New(opts).Compile()
//	t := template.New("page.html")
//	t.Funcs(reg.TemplateFuncs(t))
//	src, err := rewrite.Rewrite("page.html", raw)
//	template.Must(t.Parse(src))
//
// Children are compiled by html/template itself and rendered lazily when
// the component pipeline is evaluated, so nesting and template actions
// inside component bodies behave normally.
//
// # Design Rationale
//
// The system favors explicitness over magic:
//   - Explicit registries (no init() side effects, no globals)
//   - Declarative definitions (data files, not executed code)
//   - Deterministic class names (readable prefix, not a hash)
//   - Loud failures (a broken definition aborts the whole pass)
//
// Compilation is an ahead-of-time build step, not per-request work. The
// compiler also exposes a directory-mtime staleness check so a watch loop
// can decide when a rebuild is due.
package psc
