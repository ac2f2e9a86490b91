package docgen

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Style selects the target of rendered help text.
type Style int

const (
	// Plain renders help for the command-line --help output.
	Plain Style = iota
	// Roff renders help for man pages: fonts become \fB/\fI escapes and
	// every '-' is written as '\-'.
	Roff
)

// markupChars are the characters that may start inline markup. Help text
// without any of them is used as is.
const markupChars = "*`_[<"

var md = goldmark.New()

// RenderHelp renders the inline markup of a help text. Text that does not
// parse as a single paragraph is used verbatim.
func RenderHelp(help string, style Style) string {
	if !strings.ContainsAny(help, markupChars) {
		return escape(help, style)
	}

	src := []byte(help)
	doc := md.Parser().Parse(text.NewReader(src))
	para, ok := doc.FirstChild().(*ast.Paragraph)
	if !ok || para.NextSibling() != nil {
		return escape(help, style)
	}

	var b strings.Builder
	err := ast.Walk(para, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		switch n := n.(type) {
		case *ast.Text:
			if entering {
				b.WriteString(escape(string(n.Segment.Value(src)), style))
				if n.SoftLineBreak() || n.HardLineBreak() {
					b.WriteByte(' ')
				}
			}
		case *ast.String:
			if entering {
				b.WriteString(escape(string(n.Value), style))
			}
		case *ast.CodeSpan:
			b.WriteString(font(style, entering, `\fB`))
		case *ast.Emphasis:
			f := `\fI`
			if n.Level == 2 {
				f = `\fB`
			}
			b.WriteString(font(style, entering, f))
		case *ast.AutoLink:
			if entering {
				b.WriteString(escape("<"+string(n.URL(src))+">", style))
			}
			return ast.WalkSkipChildren, nil
		case *ast.Link:
			if !entering {
				b.WriteString(escape(" ("+string(n.Destination)+")", style))
			}
		case *ast.RawHTML:
			if entering {
				for i := 0; i < n.Segments.Len(); i++ {
					seg := n.Segments.At(i)
					b.WriteString(escape(string(seg.Value(src)), style))
				}
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return escape(help, style)
	}
	return b.String()
}

func font(style Style, entering bool, f string) string {
	if style != Roff {
		return ""
	}
	if entering {
		return f
	}
	return `\fR`
}

// EscapeRoff escapes '-' for man page output.
func EscapeRoff(s string) string {
	return strings.ReplaceAll(s, "-", `\-`)
}

func escape(s string, style Style) string {
	if style == Roff {
		return EscapeRoff(s)
	}
	return s
}
