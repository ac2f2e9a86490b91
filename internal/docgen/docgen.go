// Package docgen renders the option model into command-line help text and
// the three manual pages.
package docgen

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fjglira/mkoptions/internal/domain"
	tmpl "github.com/fjglira/mkoptions/internal/template"
)

// Settings control the layout of the help text.
type Settings struct {
	HelpWidth   int // total width, e.g. 80
	OptionWidth int // width of the option column, e.g. 25

	// Markup renders inline help markup. Help is copied verbatim otherwise.
	Markup bool
}

func (s Settings) render(help string, style Style) string {
	if s.Markup {
		return RenderHelp(help, style)
	}
	return escape(help, style)
}

// section collects the documentation of one category group.
type section struct {
	help      []string // quoted help lines
	man       []string // command manual
	smt       []string // external name manual
	internals []string // internal name manual
}

// Docs holds the rendered documentation, split into common options and
// all others.
type Docs struct {
	Common section
	Others section
}

// entry is the documentation view shared by options and aliases.
type entry struct {
	category domain.Category
	name     string
	smtName  string
	short    string
	long     string
	typ      string
	def      string
	help     string
	negation bool
}

var upper = cases.Upper(language.Und)

// Build renders the documentation of all modules. Modules are visited in
// input order and their options and aliases in numbering order.
func Build(modules []*domain.Module, s Settings) *Docs {
	d := &Docs{}
	for _, m := range modules {
		if len(m.Options) > 0 || len(m.Aliases) > 0 {
			heading := upper.String(m.Name)
			d.Others.help = append(d.Others.help, fmt.Sprintf(`"\nFrom the %s module:\n"`, m.Name))
			d.Others.man = append(d.Others.man, fmt.Sprintf(".SH %s OPTIONS", heading))
			d.Others.smt = append(d.Others.smt, fmt.Sprintf(".TP\n.I \"%s OPTIONS\"", heading))
			d.Others.internals = append(d.Others.internals, fmt.Sprintf(".TP\n.I \"%s OPTIONS\"", heading))
		}

		for _, opt := range m.SortedOptions() {
			d.add(entry{
				category: opt.Category,
				name:     opt.Name,
				smtName:  opt.SMTName,
				short:    opt.Short,
				long:     opt.Long,
				typ:      opt.Type,
				def:      opt.Default,
				help:     opt.Help,
				negation: opt.IsBool() && opt.Alternate,
			}, s)
		}
		for _, alias := range m.SortedAliases() {
			d.add(entry{
				category: alias.Category,
				long:     alias.Long,
				help:     alias.Help,
			}, s)
		}
	}
	return d
}

func (d *Docs) add(e entry, s Settings) {
	sec := &d.Others
	if e.category == domain.CategoryCommon {
		sec = &d.Common
	}

	help := e.help
	if help == "" {
		help = "[undocumented]"
	}
	suffix := ""
	if e.category == domain.CategoryExpert {
		suffix = " (EXPERTS only)"
	}

	opts := FormatOptions(e.short, e.long)
	if opts != "" && e.category != domain.CategoryUndocumented {
		cmdSuffix := suffix
		if e.negation {
			cmdSuffix += " [*]"
		}
		sec.help = append(sec.help,
			HelpLines(s.render(help, Plain)+cmdSuffix, opts, s.HelpWidth, s.OptionWidth)...)
		sec.man = append(sec.man,
			fmt.Sprintf(".IP \"%s\"", EscapeRoff(opts)),
			s.render(help, Roff)+EscapeRoff(cmdSuffix))
	}

	roffHelp := s.render(help, Roff) + EscapeRoff(suffix)

	if e.smtName != "" || e.long != "" {
		smtName := e.smtName
		if smtName == "" {
			smtName = domain.LongOption(e.long)
		}
		sec.smt = append(sec.smt, fmt.Sprintf(".TP\n.B \"%s\"", smtName))
		if e.typ != "" {
			sec.smt = append(sec.smt, fmt.Sprintf("(%s) %s", e.typ, roffHelp))
		} else {
			sec.smt = append(sec.smt, roffHelp)
		}
	}

	if e.name != "" {
		sec.internals = append(sec.internals, fmt.Sprintf(".TP\n.B \"%s\"", e.name))
		switch {
		case e.def != "":
			sec.internals = append(sec.internals, fmt.Sprintf("(%s, default = %s)", e.typ, EscapeRoff(e.def)))
		case e.typ != "":
			sec.internals = append(sec.internals, fmt.Sprintf("(%s)", e.typ))
		}
		sec.internals = append(sec.internals, ".br\n"+roffHelp)
	}
}

// HelpSlots returns the help text slots of the aggregate options source.
func (d *Docs) HelpSlots() tmpl.Slots {
	return tmpl.Slots{
		"help_common": strings.Join(d.Common.help, "\n"),
		"help_others": strings.Join(d.Others.help, "\n"),
	}
}

// ManSlots returns the slots of the command manual.
func (d *Docs) ManSlots() tmpl.Slots {
	return tmpl.Slots{
		"man_common": strings.Join(d.Common.man, "\n"),
		"man_others": strings.Join(d.Others.man, "\n"),
	}
}

// SMTSlots returns the slots of the external name manual.
func (d *Docs) SMTSlots() tmpl.Slots {
	return tmpl.Slots{
		"man_common_smt": strings.Join(d.Common.smt, "\n"),
		"man_others_smt": strings.Join(d.Others.smt, "\n"),
	}
}

// InternalsSlots returns the slots of the internal name manual.
func (d *Docs) InternalsSlots() tmpl.Slots {
	return tmpl.Slots{
		"man_common_internals": strings.Join(d.Common.internals, "\n"),
		"man_others_internals": strings.Join(d.Others.internals, "\n"),
	}
}
