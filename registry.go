package psc

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// RenderFunc wraps already-resolved child content in a component's markup.
type RenderFunc func(children templ.Component) templ.Component

// Registry maps component names to their render functions. It is built once
// per compilation pass from the full descriptor set and treated as immutable
// afterwards; the template engine consults it by name at render time.
type Registry struct {
	components map[string]Descriptor
	renderers  map[string]RenderFunc
	order      []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		components: make(map[string]Descriptor),
		renderers:  make(map[string]RenderFunc),
	}
}

// Add registers a descriptor and binds its render function. Names are
// unique; registering the same name twice is an error so a compilation
// pass can never silently shadow one component with another.
func (reg *Registry) Add(desc Descriptor) error {
	if _, exists := reg.components[desc.Name]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateComponent, desc.Name)
	}
	reg.components[desc.Name] = desc
	reg.renderers[desc.Name] = renderFunc(desc.Tag, desc.ClassName)
	reg.order = append(reg.order, desc.Name)
	return nil
}

// Len returns the number of registered components.
func (reg *Registry) Len() int {
	return len(reg.order)
}

// Names returns component names in registration order.
func (reg *Registry) Names() []string {
	names := make([]string, len(reg.order))
	copy(names, reg.order)
	return names
}

// Descriptor returns the descriptor registered under name.
func (reg *Registry) Descriptor(name string) (Descriptor, bool) {
	desc, ok := reg.components[name]
	return desc, ok
}

// Component returns the component's markup wrapping children. It fails with
// an error wrapping ErrUnknownComponent if name is not registered, so a
// template referencing an undeclared component surfaces as a render-time
// error instead of disappearing silently.
func (reg *Registry) Component(name string, children templ.Component) (templ.Component, error) {
	fn, ok := reg.renderers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	return fn(children), nil
}

// Render looks up name and writes its markup around children to w.
func (reg *Registry) Render(ctx context.Context, w io.Writer, name string, children templ.Component) error {
	c, err := reg.Component(name, children)
	if err != nil {
		return err
	}
	return c.Render(ctx, w)
}

// TemplateFuncs returns the function map preprocessed templates need. The
// returned funcs close over t, so install them on the same template the
// rewritten source will be parsed into, before parsing:
//
//	t := template.New("page.html")
//	t.Funcs(reg.TemplateFuncs(t))
//
// "component" dispatches through the registry and returns the component's
// markup; extra string arguments (passed-through attribute text) are
// accepted and ignored. "include" executes an associated template by name
// and returns its output, which is how rewritten component children are
// rendered lazily at the point the component pipeline is evaluated.
func (reg *Registry) TemplateFuncs(t *template.Template) template.FuncMap {
	return template.FuncMap{
		"component": func(name string, children any, _ ...string) (template.HTML, error) {
			child, err := childContent(children)
			if err != nil {
				return "", err
			}
			var sb strings.Builder
			if err := reg.Render(context.Background(), &sb, name, child); err != nil {
				return "", err
			}
			return template.HTML(sb.String()), nil
		},
		"include": func(name string, data any) (template.HTML, error) {
			var sb strings.Builder
			if err := t.ExecuteTemplate(&sb, name, data); err != nil {
				return "", err
			}
			return template.HTML(sb.String()), nil
		},
	}
}

// childContent adapts the loosely-typed child argument a template pipeline
// produces into a templ component. Child markup has already been through
// the engine's own escaping, so it passes through raw here.
func childContent(children any) (templ.Component, error) {
	switch c := children.(type) {
	case nil:
		return nil, nil
	case templ.Component:
		return c, nil
	case template.HTML:
		return templ.Raw(string(c)), nil
	case string:
		return templ.Raw(c), nil
	default:
		return nil, fmt.Errorf("psc: unsupported children type %T", children)
	}
}

// voidElements are the HTML elements that take no closing tag. Components
// over a void tag render as a bare open tag; children are ignored, since
// the element cannot contain any.
var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"param": true, "source": true, "track": true, "wbr": true,
}

// renderFunc builds the render closure for one descriptor: tag wrapping
// children, with the component's generated class attached.
func renderFunc(tag, class string) RenderFunc {
	if voidElements[tag] {
		return func(templ.Component) templ.Component {
			return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
				_, err := io.WriteString(w, `<`+tag+` class="`+class+`">`)
				return err
			})
		}
	}
	return func(children templ.Component) templ.Component {
		return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			if _, err := io.WriteString(w, `<`+tag+` class="`+class+`">`); err != nil {
				return err
			}
			if children != nil {
				if err := children.Render(ctx, w); err != nil {
					return err
				}
			}
			_, err := io.WriteString(w, `</`+tag+`>`)
			return err
		})
	}
}
