// Package enum numbers the long options dispatched by the generated
// command-line parser.
package enum

import "github.com/fjglira/mkoptions/internal/domain"

// DefaultBase is the first code handed out. Codes below it are left to
// single character short options.
const DefaultBase = 256

// Kind says what produced an entry.
type Kind int

const (
	KindOption Kind = iota
	KindNegation
	KindAlias
)

func (k Kind) String() string {
	switch k {
	case KindOption:
		return "option"
	case KindNegation:
		return "negation"
	case KindAlias:
		return "alias"
	}
	return "unknown"
}

// Entry is one numbered long option.
type Entry struct {
	Code             int
	Long             string // without "=ARG"
	ArgumentRequired bool
	Kind             Kind
	Option           *domain.Option // set for KindOption and KindNegation
	Alias            *domain.Alias  // set for KindAlias
}

// Numbering is the dense code assignment of a run. Codes run from Base to
// End-1 without gaps.
type Numbering struct {
	Base    int
	End     int
	Entries []Entry

	byLong map[string]int
}

// Assign numbers every long option in one pass over the modules in input
// order. Within a module, options are visited sorted by long name (or
// internal name) and each option's generated negation directly follows it;
// aliases come last, sorted by long name. Assign must run after the
// resolver, which decides which negations are generated.
func Assign(modules []*domain.Module, base int) *Numbering {
	n := &Numbering{Base: base, byLong: make(map[string]int)}

	add := func(e Entry) {
		e.Code = base + len(n.Entries)
		n.byLong[e.Long] = e.Code
		n.Entries = append(n.Entries, e)
	}

	for _, m := range modules {
		for _, opt := range m.SortedOptions() {
			if opt.Long == "" {
				continue
			}
			add(Entry{
				Long:             opt.LongName(),
				ArgumentRequired: opt.ArgumentRequired(),
				Kind:             KindOption,
				Option:           opt,
			})
			if opt.HasNegation() {
				add(Entry{
					Long:             domain.NegationOf(opt.LongName()),
					ArgumentRequired: opt.ArgumentRequired(),
					Kind:             KindNegation,
					Option:           opt,
				})
			}
		}
		for _, alias := range m.SortedAliases() {
			add(Entry{
				Long:             alias.LongName(),
				ArgumentRequired: alias.ArgumentRequired(),
				Kind:             KindAlias,
				Alias:            alias,
			})
		}
	}

	n.End = base + len(n.Entries)
	return n
}

// Code returns the code assigned to the long option named long.
func (n *Numbering) Code(long string) (int, bool) {
	c, ok := n.byLong[long]
	return c, ok
}
