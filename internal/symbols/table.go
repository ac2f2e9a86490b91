// Package symbols holds the uniqueness tables shared by every specification
// file compiled in one run.
package symbols

import "github.com/fjglira/mkoptions/internal/domain"

// Namespace is one uniqueness domain.
type Namespace int

const (
	ModuleID Namespace = iota
	Name
	SMTName
	Short
	Long
)

func (n Namespace) String() string {
	switch n {
	case ModuleID:
		return "module id"
	case Name:
		return "name"
	case SMTName:
		return "smt_name"
	case Short:
		return "short"
	case Long:
		return "long"
	}
	return "unknown"
}

// Entry records where a symbol was first defined.
type Entry struct {
	Pos domain.Position
	// Negation marks a long option reserved for the generated "no-" form
	// of a boolean option.
	Negation bool
}

// Table maps symbols to their first definition site. A Table is created once
// per run and populated monotonically across all input files.
type Table struct {
	entries map[Namespace]map[string]Entry
}

// NewTable creates an empty Table.
func NewTable() *Table {
	return &Table{entries: make(map[Namespace]map[string]Entry)}
}

func (t *Table) space(ns Namespace) map[string]Entry {
	m, ok := t.entries[ns]
	if !ok {
		m = make(map[string]Entry)
		t.entries[ns] = m
	}
	return m
}

// Define records value in ns. If value already exists a SpecError is returned
// at pos that names the original definition site.
func (t *Table) Define(ns Namespace, value string, pos domain.Position) error {
	return t.define(ns, value, Entry{Pos: pos})
}

// Reserve records the generated negation name of a boolean option.
func (t *Table) Reserve(value string, pos domain.Position) error {
	return t.define(Long, value, Entry{Pos: pos, Negation: true})
}

func (t *Table) define(ns Namespace, value string, e Entry) error {
	space := t.space(ns)
	if prev, ok := space[value]; ok {
		msg := "'%s' already defined in '%s' at line %d"
		if ns == ModuleID {
			msg = "module id '%s' already defined in '%s' at line %d"
		}
		return domain.Errorf("schema", e.Pos, msg, value, prev.Pos.File, prev.Pos.Line)
	}
	space[value] = e
	return nil
}

// Lookup returns the entry for value in ns.
func (t *Table) Lookup(ns Namespace, value string) (Entry, bool) {
	e, ok := t.entries[ns][value]
	return e, ok
}

// Has reports whether value is defined in ns.
func (t *Table) Has(ns Namespace, value string) bool {
	_, ok := t.Lookup(ns, value)
	return ok
}

// ReleaseNegation removes a negation reservation so an alias can claim the
// name. It reports whether a reservation was removed; explicit definitions
// are never released.
func (t *Table) ReleaseNegation(value string) bool {
	e, ok := t.entries[Long][value]
	if !ok || !e.Negation {
		return false
	}
	delete(t.entries[Long], value)
	return true
}

// Len returns the number of symbols in ns.
func (t *Table) Len(ns Namespace) int {
	return len(t.entries[ns])
}
