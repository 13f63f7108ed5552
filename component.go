package psc

import (
	"fmt"
	"regexp"
)

// ClassPrefix is prepended to every generated CSS class name.
//
// A readable prefix is used instead of a hash: class names stay debuggable
// in browser developer tools, and component names are developer-chosen
// identifiers reviewed in source control, not untrusted input. Injectivity
// follows directly: distinct names yield distinct classes.
const ClassPrefix = "psc-"

// namePattern matches a valid component name: one uppercase letter followed
// by word characters. This mirrors the capitalized-tag syntax templates use
// to reference components.
var namePattern = regexp.MustCompile(`^[A-Z]\w*$`)

// tagPattern matches a plain HTML element name. Tags come from definition
// files and end up in generated markup verbatim, so they are held to the
// same standard as names.
var tagPattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9-]*$`)

// Descriptor is the compiled in-memory representation of one component.
//
// Descriptors are constructed once per compilation pass from their
// definition files and treated as immutable afterwards; a recompilation
// rebuilds the whole set rather than patching individual descriptors.
type Descriptor struct {
	// Name is the component's unique identifier, derived from the
	// definition file's base name.
	Name string

	// Tag is the HTML element the component renders as.
	Tag string

	// RawStyle is the component's CSS property text, verbatim from the
	// definition file. May be empty.
	RawStyle string

	// ClassName is the generated, collision-free CSS class scoped to this
	// component.
	ClassName string

	// Source is the path of the definition file the descriptor was loaded
	// from, kept for diagnostics and the build manifest.
	Source string
}

// ClassName derives the scoped CSS class for a component name. It is a pure
// function: deterministic, and injective over valid component names.
func ClassName(name string) string {
	return ClassPrefix + name
}

// ValidName reports whether name is a usable component identifier.
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// NewDescriptor builds a descriptor, deriving the class name and validating
// the component name and tag. It is the single construction path, so every
// descriptor in a registry carries a well-formed, unique class.
func NewDescriptor(name, tag, rawStyle, source string) (Descriptor, error) {
	if !ValidName(name) {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if tag == "" {
		return Descriptor{}, fmt.Errorf("%w: component %q", ErrMissingTag, name)
	}
	if !tagPattern.MatchString(tag) {
		return Descriptor{}, fmt.Errorf("psc: component %q has malformed tag %q", name, tag)
	}
	return Descriptor{
		Name:      name,
		Tag:       tag,
		RawStyle:  rawStyle,
		ClassName: ClassName(name),
		Source:    source,
	}, nil
}
