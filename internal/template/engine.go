package template

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/fjglira/mkoptions/internal/domain"
)

// Placeholders in template files are written ${name}$. The same strings are
// used as action delimiters, so curly braces in the target language never
// need escaping.
const (
	leftDelim  = "${"
	rightDelim = "}$"
)

var placeholderRe = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}\$`)

// literalEscaper turns stray left delimiters in template text into actions
// that print them.
var literalEscaper = strings.NewReplacer(leftDelim, leftDelim+`"`+leftDelim+`"`+rightDelim)

// Slots maps placeholder names to generated fragments.
type Slots map[string]string

// TemplateEngine fills placeholders of named templates.
type TemplateEngine interface {
	Render(name string, slots Slots) (string, error)
	ListTemplates() []string
}

// Source names a template file.
type Source struct {
	Dir  string
	Name string
}

// Path returns the file path of the template.
func (s Source) Path() string {
	return filepath.Join(s.Dir, s.Name)
}

// DefaultEngine implements TemplateEngine.
type DefaultEngine struct {
	templates map[string]*template.Template
}

// NewEngine creates an engine with the given template files loaded. Every
// file must exist; the first one that cannot be read or parsed aborts.
func NewEngine(sources ...Source) (*DefaultEngine, error) {
	engine := &DefaultEngine{
		templates: make(map[string]*template.Template),
	}

	for _, src := range sources {
		content, err := os.ReadFile(src.Path())
		if err != nil {
			return nil, domain.NewError("template", src.Path(), 0, "could not read template", err)
		}
		if err := engine.Add(src.Name, string(content)); err != nil {
			return nil, domain.NewError("template", src.Path(), 0, "failed to parse template", err)
		}
	}

	return engine, nil
}

// Add compiles text under name, replacing any template of the same name.
func (e *DefaultEngine) Add(name, text string) error {
	tmpl, err := template.New(name).
		Delims(leftDelim, rightDelim).
		Option("missingkey=error").
		Parse(Prepare(name, text))
	if err != nil {
		return err
	}
	e.templates[name] = tmpl
	return nil
}

// Prepare rewrites raw template text into text/template syntax: every
// ${name}$ becomes a lookup of slot name, any other "${" is escaped so it is
// printed literally, and lines starting with #line get ${line}$ (the number
// of the following line) and ${template}$ (the template name) filled in.
func Prepare(name, text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#line") {
			line = strings.ReplaceAll(line, leftDelim+"line"+rightDelim, strconv.Itoa(i+2))
			lines[i] = strings.ReplaceAll(line, leftDelim+"template"+rightDelim, name)
		}
	}
	text = strings.Join(lines, "\n")

	var b strings.Builder
	last := 0
	for _, m := range placeholderRe.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(literalEscaper.Replace(text[last:m[0]]))
		b.WriteString(leftDelim + "." + text[m[2]:m[3]] + rightDelim)
		last = m[1]
	}
	b.WriteString(literalEscaper.Replace(text[last:]))
	return b.String()
}

// Render fills the placeholders of template name with slots. A placeholder
// without a slot is an error.
func (e *DefaultEngine) Render(name string, slots Slots) (string, error) {
	tmpl, ok := e.templates[name]
	if !ok {
		return "", domain.NewError("template", "", 0,
			fmt.Sprintf("template %q not found (available: %s)", name, strings.Join(e.ListTemplates(), ", ")), nil)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]string(slots)); err != nil {
		return "", domain.NewError("template", name, 0, "failed to fill template", err)
	}
	return buf.String(), nil
}

// ListTemplates returns the names of all loaded templates.
func (e *DefaultEngine) ListTemplates() []string {
	names := make([]string, 0, len(e.templates))
	for name := range e.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
