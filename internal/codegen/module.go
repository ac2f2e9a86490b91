// Package codegen builds the generated source fragments that fill the
// placeholders of the source templates.
package codegen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fjglira/mkoptions/internal/domain"
	tmpl "github.com/fjglira/mkoptions/internal/template"
)

// ModuleSlots returns the placeholder values of the per-module header and
// source templates. Only options with an internal name get accessors;
// read-only options get no mutator.
func ModuleSlots(m *domain.Module, s Settings) (header, source tmpl.Slots) {
	includes := make(map[string]bool)
	holderSpecs := []string{"#define " + s.holderMacro(m.ID)}
	var decls, specs, inls, accs, defs []string

	for _, opt := range m.Options {
		if opt.Name == "" {
			continue
		}
		name := opt.Name

		for _, inc := range opt.Includes {
			includes[formatInclude(inc)] = true
		}

		holderSpecs = append(holderSpecs, fmt.Sprintf(hHolderAttr, name))

		decl := hStructRW
		if opt.ReadOnly {
			decl = hStructRO
		}
		decls = append(decls, fmt.Sprintf(decl, name, opt.Type, s.ExportMacro))

		if !opt.ReadOnly {
			specs = append(specs, fmt.Sprintf(hSpecSet, name))
		}
		specs = append(specs, fmt.Sprintf(hSpecGet, name), fmt.Sprintf(hSpecWasSetByUser, name))
		if opt.IsBool() {
			specs = append(specs, fmt.Sprintf(hSpecAssignBool, name))
		} else {
			specs = append(specs, fmt.Sprintf(hSpecAssign, name))
		}

		inls = append(inls, fmt.Sprintf(hInlineGet, name), fmt.Sprintf(hInlineWasSetByUser, name))
		if !opt.ReadOnly {
			inls = append(inls, fmt.Sprintf(hInlineSet, name))
			accs = append(accs, fmt.Sprintf(cAccSet, name))
		}
		accs = append(accs, fmt.Sprintf(cAccGet, name), fmt.Sprintf(cAccWasSetByUser, name))

		defs = append(defs, fmt.Sprintf(cStruct, name))
	}

	sortedIncludes := make([]string, 0, len(includes))
	for inc := range includes {
		sortedIncludes = append(sortedIncludes, inc)
	}
	sort.Strings(sortedIncludes)

	filename := m.BaseName()
	header = tmpl.Slots{
		"filename":    filename,
		"header":      m.Header,
		"id":          m.ID,
		"includes":    strings.Join(sortedIncludes, "\n"),
		"holder_spec": strings.Join(holderSpecs, " \\\n"),
		"decls":       strings.Join(decls, "\n"),
		"specs":       strings.Join(specs, "\n"),
		"inls":        strings.Join(inls, "\n"),
	}
	source = tmpl.Slots{
		"filename": filename,
		"accs":     strings.Join(accs, "\n"),
		"defs":     strings.Join(defs, "\n"),
	}
	return header, source
}
