package codegen

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/fjglira/mkoptions/internal/compiler"
	"github.com/fjglira/mkoptions/internal/domain"
	tmpl "github.com/fjglira/mkoptions/internal/template"
)

// registry accumulates the fragments of the aggregate options source.
type registry struct {
	settings Settings
	comp     *compiler.Compilation

	headersModule     []string
	macrosModule      []string
	getoptShort       []string
	optionsSMT        []string
	optionsGetOptions []string
	optionsHandler    []string
	defaults          []string
	customHandlers    []string
	setOptionHandlers []string
	getOptionHandlers []string
}

// RegistrySlots returns the placeholder values of the aggregate options
// source and of the option holder header. Help text slots are produced by
// the documentation formatter.
func RegistrySlots(c *compiler.Compilation, s Settings) (options, holder tmpl.Slots) {
	r := &registry{settings: s, comp: c}
	for _, m := range c.Modules {
		r.headersModule = append(r.headersModule, formatInclude(m.Header))
		r.macrosModule = append(r.macrosModule, s.holderMacro(m.ID))

		for _, opt := range m.SortedOptions() {
			r.addOption(opt)
		}
		for _, alias := range m.SortedAliases() {
			r.addAlias(alias)
		}
	}

	var cmdline []string
	for _, e := range c.Numbering.Entries {
		cmdline = append(cmdline, getoptLong(e.Long, e.ArgumentRequired, e.Code))
	}

	headersModule := strings.Join(r.headersModule, "\n")
	options = tmpl.Slots{
		"headers_module":     headersModule,
		"headers_handler":    "",
		"custom_handlers":    strings.Join(r.customHandlers, "\n"),
		"module_defaults":    strings.Join(r.defaults, ",\n  "),
		"cmdline_options":    strings.Join(cmdline, "\n  "),
		"options_short":      strings.Join(r.getoptShort, ""),
		"options_handler":    strings.Join(r.optionsHandler, "\n    "),
		"option_value_begin": strconv.Itoa(c.Numbering.Base),
		"option_value_end":   strconv.Itoa(c.Numbering.End),
		"options_smt":        strings.Join(r.optionsSMT, "\n  "),
		"options_getoptions": strings.Join(r.optionsGetOptions, "\n  "),
		"setoption_handlers": strings.Join(r.setOptionHandlers, "\n"),
		"getoption_handlers": strings.Join(r.getOptionHandlers, "\n"),
	}
	holder = tmpl.Slots{
		"headers_module": headersModule,
		"macros_module":  strings.Join(r.macrosModule, "\n"),
	}
	return options, holder
}

func (r *registry) code(long string) int {
	code, ok := r.comp.Numbering.Code(long)
	if !ok {
		panic(fmt.Sprintf("codegen: long option %q was not numbered", long))
	}
	return code
}

// handlerCall returns the expression converting the option argument, or ""
// for boolean options without a custom handler.
func handlerCall(opt *domain.Option) string {
	switch {
	case opt.Handler != "" && opt.Type == domain.TypeVoid:
		return fmt.Sprintf("handler->%s(option)", opt.Handler)
	case opt.Handler != "":
		return fmt.Sprintf("handler->%s(option, optionarg)", opt.Handler)
	case !opt.IsBool():
		return fmt.Sprintf("handleOption<%s>(option, optionarg)", opt.Type)
	}
	return ""
}

func (r *registry) addOption(opt *domain.Option) {
	argumentRequired := opt.ArgumentRequired()
	handler := handlerCall(opt)

	var predicates []string
	for _, p := range opt.Predicates {
		if opt.IsBool() {
			predicates = append(predicates, fmt.Sprintf("handler->%s(option, b);", p))
		} else {
			predicates = append(predicates, fmt.Sprintf("handler->%s(option, retval);", p))
		}
	}
	var notifications []string
	for _, n := range opt.Notifies {
		notifications = append(notifications, fmt.Sprintf("d_handler->%s(option);", n))
	}

	r.addDispatch(opt, handler)

	if opt.SMTName != "" || opt.Long != "" {
		r.addSetGetOption(opt, argumentRequired)
	}

	if opt.HasNegation() {
		r.optionsHandler = append(r.optionsHandler,
			fmt.Sprintf("case %d:// --no-%s", r.code(domain.NegationOf(opt.LongName())), opt.Long),
			callAssignBool(opt.Name, "option", "false"),
			"  break;\n")
	}

	if opt.Name == "" {
		return
	}

	if optname := opt.ExternalName(); optname != "" {
		r.optionsSMT = append(r.optionsSMT, quote(optname)+",")
		r.optionsGetOptions = append(r.optionsGetOptions, getOptionsEntry(opt, optname))
	}

	switch {
	case opt.IsBool() && len(predicates) > 0:
		r.customHandlers = append(r.customHandlers,
			fmt.Sprintf(runBoolPredicates, opt.Name, handler, strings.Join(predicates, "\n")))
	case !opt.IsBool() && (opt.Short != "" || opt.Long != ""):
		r.customHandlers = append(r.customHandlers,
			fmt.Sprintf(runHandler, opt.Name, handler, strings.Join(predicates, "\n")))
	}

	switch {
	case opt.IsBool():
		r.customHandlers = append(r.customHandlers,
			fmt.Sprintf(assignBool, opt.Name, strings.Join(notifications, "\n")))
	case opt.Short != "" || opt.Long != "" || opt.SMTName != "":
		r.customHandlers = append(r.customHandlers,
			fmt.Sprintf(assign, opt.Name, strings.Join(notifications, "\n")))
	}

	r.defaults = append(r.defaults,
		fmt.Sprintf("%s(%s)", opt.Name, opt.Default),
		fmt.Sprintf("%s__setByUser__(false)", opt.Name))
}

// addDispatch emits the switch cases of the short and long form of opt.
func (r *registry) addDispatch(opt *domain.Option, handler string) {
	var cases []string
	if opt.Short != "" {
		cases = append(cases, fmt.Sprintf("case '%s':", opt.Short))
		r.getoptShort = append(r.getoptShort, opt.Short)
		if opt.ArgumentRequired() {
			r.getoptShort = append(r.getoptShort, ":")
		}
	}
	if opt.Long != "" {
		cases = append(cases, fmt.Sprintf("case %d:// --%s", r.code(opt.LongName()), opt.Long))
	}
	if len(cases) == 0 {
		return
	}

	switch {
	case opt.IsBool() && opt.Name != "":
		cases = append(cases, callAssignBool(opt.Name, "option", "true"))
	case opt.Type != domain.TypeVoid && opt.Name != "":
		cases = append(cases, callAssign(opt.Name, "option"))
	case handler != "":
		cases = append(cases, handler+";")
	}
	for _, link := range opt.Links {
		cases = append(cases, pushBackPreemption(quote(link)))
	}
	cases = append(cases, "  break;\n")

	r.optionsHandler = append(r.optionsHandler, cases...)
}

// addSetGetOption emits the set-option and get-option handlers reachable
// through the smt_name and long name of opt.
func (r *registry) addSetGetOption(opt *domain.Option, argumentRequired bool) {
	var links []string
	for _, link := range opt.Links {
		target, value, ok := r.comp.Resolved.Match(link)
		if !ok {
			continue
		}
		links = append(links, callSetOption(target.ExternalName(), strconv.FormatBool(value)))
	}

	keys := make(map[string]bool)
	if opt.SMTName != "" {
		keys[opt.SMTName] = true
	}
	if opt.Long != "" {
		keys[opt.LongName()] = true
	}
	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)
	conds := make([]string, len(sorted))
	for i, k := range sorted {
		conds[i] = fmt.Sprintf(`key == "%s"`, k)
	}
	cond := strings.Join(conds, " || ")
	smtname := quote(opt.ExternalName())

	r.setOptionHandlers = append(r.setOptionHandlers, fmt.Sprintf("if(%s) {", cond))
	switch {
	case opt.IsBool():
		r.setOptionHandlers = append(r.setOptionHandlers,
			callAssignBool(opt.Name, smtname, `optionarg == "true"`))
	case argumentRequired && opt.Name != "":
		r.setOptionHandlers = append(r.setOptionHandlers, callAssign(opt.Name, smtname))
	case opt.Handler != "":
		h := fmt.Sprintf("handler->%s(%s", opt.Handler, smtname)
		if argumentRequired {
			h += ", optionarg"
		}
		r.setOptionHandlers = append(r.setOptionHandlers, h+");")
	}
	if len(links) > 0 {
		r.setOptionHandlers = append(r.setOptionHandlers, strings.Join(links, "\n"))
	}
	r.setOptionHandlers = append(r.setOptionHandlers, "return;", "}")

	if opt.Name == "" {
		return
	}
	r.getOptionHandlers = append(r.getOptionHandlers, fmt.Sprintf("if (%s) {", cond))
	if opt.IsBool() {
		r.getOptionHandlers = append(r.getOptionHandlers,
			fmt.Sprintf(`return options::%s() ? "true" : "false";`, opt.Name))
	} else {
		r.getOptionHandlers = append(r.getOptionHandlers, "std::stringstream ss;")
		if isNumeric(opt.Type) {
			r.getOptionHandlers = append(r.getOptionHandlers, "ss << std::fixed << std::setprecision(8);")
		}
		r.getOptionHandlers = append(r.getOptionHandlers,
			fmt.Sprintf("ss << options::%s();", opt.Name),
			"return ss.str();")
	}
	r.getOptionHandlers = append(r.getOptionHandlers, "}")
}

func getOptionsEntry(opt *domain.Option, optname string) string {
	var b strings.Builder
	if opt.IsBool() {
		b.WriteString("{ std::vector<std::string> v; ")
		fmt.Fprintf(&b, `v.push_back("%s"); `, optname)
		fmt.Fprintf(&b, `v.push_back(std::string(d_holder->%s ? "true" : "false")); `, opt.Name)
		b.WriteString("opts.push_back(v); }")
		return b.String()
	}
	b.WriteString("{ std::stringstream ss; ")
	if isNumeric(opt.Type) {
		b.WriteString("ss << std::fixed << std::setprecision(8); ")
	}
	fmt.Fprintf(&b, "ss << d_holder->%s; ", opt.Name)
	b.WriteString("std::vector<std::string> v; ")
	fmt.Fprintf(&b, `v.push_back("%s"); `, optname)
	b.WriteString("v.push_back(ss.str()); ")
	b.WriteString("opts.push_back(v); }")
	return b.String()
}

func (r *registry) addAlias(alias *domain.Alias) {
	argumentRequired := alias.ArgumentRequired()
	r.optionsHandler = append(r.optionsHandler,
		fmt.Sprintf("case %d:// --%s", r.code(alias.LongName()), alias.Long))

	if alias.AlternateFor != nil {
		r.optionsHandler = append(r.optionsHandler,
			callAssignBool(alias.AlternateFor.Name, "option", "false"))
	}

	arg, hasArg := domain.LongArg(alias.Long)
	for _, link := range alias.Links {
		linkArg, linkHasArg := domain.LongArg(link)
		if hasArg == linkHasArg && arg == linkArg {
			r.optionsHandler = append(r.optionsHandler, pushBackPreemption(quote(domain.LongOption(link))))
			if argumentRequired {
				r.optionsHandler = append(r.optionsHandler, pushBackPreemption("optionarg.c_str()"))
			}
		} else {
			r.optionsHandler = append(r.optionsHandler, pushBackPreemption(quote(link)))
		}
	}

	r.optionsHandler = append(r.optionsHandler, "  break;\n")
}
