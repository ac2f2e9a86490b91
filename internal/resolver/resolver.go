// Package resolver links options and aliases across all specification files
// of a run.
package resolver

import (
	"strings"

	"github.com/fjglira/mkoptions/internal/domain"
	"github.com/fjglira/mkoptions/internal/schema"
	"github.com/fjglira/mkoptions/internal/symbols"
)

// Result is the resolved model of a run.
type Result struct {
	Modules []*domain.Module

	byLong       map[string]*domain.Option
	withArgument map[string]bool
}

// Resolve builds the global long option table, lets aliases of the form
// "no-<long>" take over the negation of boolean options, and checks that
// every link names an existing long option. Modules are processed in input
// order and declarations in file order.
func Resolve(modules []*domain.Module, table *symbols.Table) (*Result, error) {
	r := &Result{
		Modules:      modules,
		byLong:       make(map[string]*domain.Option),
		withArgument: make(map[string]bool),
	}

	for _, m := range modules {
		for _, opt := range m.Options {
			if err := r.defineOption(opt, table); err != nil {
				return nil, err
			}
		}
	}

	for _, m := range modules {
		for _, alias := range m.Aliases {
			if err := r.defineAlias(alias, table); err != nil {
				return nil, err
			}
		}
	}

	for _, m := range modules {
		for _, opt := range m.Options {
			if err := r.checkLinks(opt.Pos, opt.Links, table); err != nil {
				return nil, err
			}
		}
		for _, alias := range m.Aliases {
			if err := r.checkLinks(alias.Pos, alias.Links, table); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

func (r *Result) defineOption(opt *domain.Option, table *symbols.Table) error {
	if opt.Long == "" {
		return nil
	}
	if err := schema.CheckLongSyntax(opt.Pos, opt.Long); err != nil {
		return err
	}
	name := opt.LongName()
	if err := table.Define(symbols.Long, name, opt.Pos); err != nil {
		return err
	}
	if opt.IsBool() {
		if err := table.Reserve(domain.NegationOf(name), opt.Pos); err != nil {
			return err
		}
	}
	r.byLong[name] = opt
	if opt.ArgumentRequired() {
		r.withArgument[name] = true
	}
	return nil
}

func (r *Result) defineAlias(alias *domain.Alias, table *symbols.Table) error {
	if err := schema.CheckLongSyntax(alias.Pos, alias.Long); err != nil {
		return err
	}
	name := alias.LongName()
	if target, ok := strings.CutPrefix(name, "no-"); ok {
		if opt := r.byLong[target]; opt != nil && opt.IsBool() {
			opt.Alternate = false
			alias.AlternateFor = opt
			table.ReleaseNegation(name)
		}
	}
	if err := table.Define(symbols.Long, name, alias.Pos); err != nil {
		return err
	}
	if alias.ArgumentRequired() {
		r.withArgument[name] = true
	}
	return nil
}

func (r *Result) checkLinks(pos domain.Position, links []string, table *symbols.Table) error {
	for _, link := range links {
		name := domain.LongOption(strings.TrimPrefix(link, "--"))
		target := name
		if !table.Has(symbols.Long, target) {
			target = strings.TrimPrefix(name, "no-")
		}
		if !table.Has(symbols.Long, target) {
			return domain.Errorf("resolve", pos, "invalid long option '%s' in links list", link)
		}
		if r.withArgument[target] && !strings.Contains(link, "=") {
			return domain.Errorf("resolve", pos, "linked option '%s' requires an argument", link)
		}
	}
	return nil
}

// Option returns the option whose long name is long.
func (r *Result) Option(long string) (*domain.Option, bool) {
	opt, ok := r.byLong[long]
	return opt, ok
}

// RequiresArgument reports whether the long option or alias named long
// takes an argument.
func (r *Result) RequiresArgument(long string) bool {
	return r.withArgument[long]
}

// Match looks up the option a link refers to. value is false when the link
// names the negation of a boolean option.
func (r *Result) Match(link string) (opt *domain.Option, value bool, ok bool) {
	name := domain.LongOption(strings.TrimPrefix(link, "--"))
	if opt, ok := r.byLong[name]; ok {
		return opt, true, true
	}
	if target, neg := strings.CutPrefix(name, "no-"); neg {
		if opt, ok := r.byLong[target]; ok && opt.IsBool() {
			return opt, false, true
		}
	}
	return nil, false, false
}
