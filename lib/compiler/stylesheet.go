package compiler

import (
	"errors"
	"io"
	"strings"
	"time"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"

	"github.com/pthm/psc"
)

// styleIndent is the margin applied to every property line inside a rule.
const styleIndent = "  "

// RenderStylesheet formats the aggregated stylesheet for a descriptor set:
// a machine-readable generation comment on the first line, then one rule
// block per descriptor in the given order. The result replaces the previous
// stylesheet wholesale; it is never merged with stale content, so rules for
// deleted components cannot linger.
func RenderStylesheet(descs []psc.Descriptor, generatedAt time.Time) string {
	var sb strings.Builder
	sb.WriteString("/* psc:generated ")
	sb.WriteString(generatedAt.UTC().Format(time.RFC3339))
	sb.WriteString(" */\n")

	for _, desc := range descs {
		sb.WriteString("\n")
		sb.WriteString(renderBlock(desc))
	}
	return sb.String()
}

// renderBlock emits one component's CSS rule: the raw style text trimmed,
// split into lines, each indented by two spaces, wrapped in the component's
// scoped class selector.
func renderBlock(desc psc.Descriptor) string {
	var sb strings.Builder
	sb.WriteString(".")
	sb.WriteString(desc.ClassName)
	sb.WriteString(" {\n")

	style := strings.TrimSpace(desc.RawStyle)
	if style != "" {
		for _, line := range strings.Split(style, "\n") {
			sb.WriteString(styleIndent)
			sb.WriteString(strings.TrimSpace(line))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("}\n")
	return sb.String()
}

// lintStyle runs the raw style text through a CSS tokenizer and logs a
// warning for anything that does not lex as a declaration. Style text is
// opaque to the compiler and emitted verbatim regardless; this only gives
// the author an early signal instead of a silently broken rule in the
// browser.
func lintStyle(log *zap.Logger, desc psc.Descriptor) {
	style := strings.TrimSpace(desc.RawStyle)
	if style == "" {
		return
	}

	p := css.NewParser(parse.NewInput(strings.NewReader(style)), true)
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && !errors.Is(err, io.EOF) {
				log.Warn("style text did not lex cleanly",
					zap.String("component", desc.Name),
					zap.String("source", desc.Source),
					zap.Error(err))
			}
			return
		case css.DeclarationGrammar, css.CustomPropertyGrammar, css.CommentGrammar:
			// well-formed
		default:
			log.Warn("unexpected token in style text",
				zap.String("component", desc.Name),
				zap.String("source", desc.Source),
				zap.String("token", string(data)))
		}
	}
}
