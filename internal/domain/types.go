package domain

import (
	"fmt"
	"path"
	"sort"
	"strings"
)

// Position identifies a definition site in a specification file.
type Position struct {
	File string
	Line int // 1-based
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// Category controls where an option or alias is documented.
type Category string

const (
	CategoryCommon       Category = "common"
	CategoryExpert       Category = "expert"
	CategoryRegular      Category = "regular"
	CategoryUndocumented Category = "undocumented"
)

// Categories lists the valid category values.
var Categories = []Category{CategoryCommon, CategoryExpert, CategoryRegular, CategoryUndocumented}

// ParseCategory returns the category named s.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Type names with special meaning.
const (
	TypeBool = "bool"
	TypeVoid = "void"
)

// Module holds everything defined by one specification file.
type Module struct {
	ID       string
	Name     string
	Header   string // e.g. "options/base_options.h"
	Filename string // source specification file
	Options  []*Option
	Aliases  []*Alias
}

// BaseName returns the header file name without directory and extension,
// which names the generated per-module source pair.
func (m *Module) BaseName() string {
	return strings.TrimSuffix(path.Base(m.Header), ".h")
}

// SortedOptions returns the options ordered by long option name, falling
// back to the internal name for options without a long form. The sort is
// stable so equal keys keep declaration order.
func (m *Module) SortedOptions() []*Option {
	opts := append([]*Option(nil), m.Options...)
	sort.SliceStable(opts, func(i, j int) bool {
		return opts[i].sortKey() < opts[j].sortKey()
	})
	return opts
}

// SortedAliases returns the aliases ordered by their long form.
func (m *Module) SortedAliases() []*Alias {
	aliases := append([]*Alias(nil), m.Aliases...)
	sort.SliceStable(aliases, func(i, j int) bool {
		return aliases[i].Long < aliases[j].Long
	})
	return aliases
}

// Option is one configurable setting.
type Option struct {
	Pos        Position
	Category   Category
	Type       string
	Name       string
	SMTName    string
	Short      string
	Long       string // may carry an argument name: "long=ARG"
	Default    string
	Help       string
	Includes   []string
	Handler    string
	Predicates []string
	Notifies   []string
	Links      []string
	ReadOnly   bool
	// Alternate controls the auto-generated "no-<long>" form of boolean
	// options. The resolver clears it when an alias takes over the negation.
	Alternate bool
}

func (o *Option) sortKey() string {
	if o.Long != "" {
		return o.Long
	}
	return o.Name
}

// IsBool reports whether the option is a boolean flag.
func (o *Option) IsBool() bool {
	return o.Type == TypeBool
}

// ArgumentRequired reports whether the long/short form takes an argument.
func (o *Option) ArgumentRequired() bool {
	return o.Type != TypeBool && o.Type != TypeVoid
}

// LongName returns the long option without its argument part.
func (o *Option) LongName() string {
	return LongOption(o.Long)
}

// HasNegation reports whether a "no-<long>" form is generated for the option.
func (o *Option) HasNegation() bool {
	return o.Long != "" && o.IsBool() && o.Alternate
}

// ExternalName returns the name used by set-option/get-option. It defaults
// to the long option name when no smt_name is given.
func (o *Option) ExternalName() string {
	if o.SMTName != "" {
		return o.SMTName
	}
	return o.LongName()
}

// Alias is a long option that expands into other long options.
type Alias struct {
	Pos      Position
	Category Category
	Long     string
	Links    []string
	Help     string
	// AlternateFor is set when the alias replaces the generated negation
	// of a boolean option.
	AlternateFor *Option
}

// LongName returns the long form without its argument part.
func (a *Alias) LongName() string {
	return LongOption(a.Long)
}

// ArgumentRequired reports whether the alias takes an argument.
func (a *Alias) ArgumentRequired() bool {
	return strings.Contains(a.Long, "=")
}

// LongOption extracts the option part of "long=ARG".
func LongOption(long string) string {
	name, _, _ := strings.Cut(long, "=")
	return name
}

// LongArg extracts the argument part of "long=ARG". ok is false when there
// is none.
func LongArg(long string) (arg string, ok bool) {
	_, arg, ok = strings.Cut(long, "=")
	return arg, ok
}

// NegationOf returns the negated long form of name.
func NegationOf(name string) string {
	return "no-" + name
}
