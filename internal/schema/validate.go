package schema

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fjglira/mkoptions/internal/domain"
	"github.com/fjglira/mkoptions/internal/parser"
	"github.com/fjglira/mkoptions/internal/symbols"
)

// Validator checks attributes and blocks. Global uniqueness of module ids,
// option names, smt_names and short options is recorded in the symbol table
// it was created with, so one Validator is used for all files of a run.
type Validator struct {
	symbols   *symbols.Table
	headerDir string
}

// NewValidator creates a Validator that records symbols in table and
// expects module headers to live in headerDir.
func NewValidator(table *symbols.Table, headerDir string) *Validator {
	return &Validator{symbols: table, headerDir: headerDir}
}

func fail(pos domain.Position, format string, args ...any) error {
	return domain.Errorf("schema", pos, format, args...)
}

// ExpectedHeader returns the module header a specification file must
// declare: "<headerDir>/<basename without extension>.h".
func (v *Validator) ExpectedHeader(file string) string {
	base := filepath.Base(file)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%s/%s.h", v.headerDir, stem)
}

// CheckAttribute validates a single attribute while its file is parsed.
func (v *Validator) CheckAttribute(file string, kind parser.BlockKind, attr parser.Attribute) error {
	pos := domain.Position{File: file, Line: attr.Line}
	if !Allowed(kind, attr.Key) {
		return fail(pos, "invalid %s attribute '%s'", kind, attr.Key)
	}
	if err := checkShape(pos, attr); err != nil {
		return err
	}

	switch kind {
	case parser.BlockModule:
		return v.checkModuleAttribute(pos, attr)
	case parser.BlockOption:
		return v.checkOptionAttribute(pos, attr)
	case parser.BlockAlias:
		return v.checkAliasAttribute(pos, attr)
	}
	return nil
}

// checkShape verifies that the decoded value has the shape the attribute
// expects. Absent values pass and are replaced by defaults later.
func checkShape(pos domain.Position, attr parser.Attribute) error {
	val := attr.Value
	if val.Kind == parser.KindAbsent {
		return nil
	}
	switch {
	case IsListAttribute(attr.Key):
		if val.Kind != parser.KindList {
			return fail(pos, "expected list for %s attribute", attr.Key)
		}
	case parser.IsBoolAttribute(attr.Key):
		if val.Kind != parser.KindBool {
			return fail(pos, "expected true/false instead of '%s' for %s", val, attr.Key)
		}
	case attr.Key == "default":
		if val.Kind == parser.KindList {
			return fail(pos, "expected string for default attribute")
		}
	default:
		if val.Kind != parser.KindString {
			return fail(pos, "expected string for %s attribute", attr.Key)
		}
	}
	return nil
}

func (v *Validator) checkModuleAttribute(pos domain.Position, attr parser.Attribute) error {
	value := attr.Value.Str
	switch attr.Key {
	case "id":
		if value == "" {
			return fail(pos, "module id must not be empty")
		}
		if err := v.symbols.Define(symbols.ModuleID, value, pos); err != nil {
			return err
		}
		if !moduleIDRe.MatchString(value) {
			return fail(pos, "module id '%s' does not match regex criteria '%s'", value, moduleIDPattern)
		}
	case "name":
		if value == "" {
			return fail(pos, "module name must not be empty")
		}
	case "header":
		if value == "" {
			return fail(pos, "module header must not be empty")
		}
		if want := v.ExpectedHeader(pos.File); want != value {
			return fail(pos, "expected module header '%s' instead of '%s'", want, value)
		}
	}
	return nil
}

func (v *Validator) checkOptionAttribute(pos domain.Position, attr parser.Attribute) error {
	value := attr.Value.Str
	switch attr.Key {
	case "category":
		return checkCategory(pos, value)
	case "type":
		if value == "" {
			return fail(pos, "type must not be empty")
		}
	case "name":
		if value == "" {
			return nil
		}
		if !nameRe.MatchString(value) {
			return fail(pos, "name '%s' does not match regex criteria '%s'", value, namePattern)
		}
		return v.symbols.Define(symbols.Name, value, pos)
	case "smt_name":
		if value == "" {
			return nil
		}
		if !smtNameRe.MatchString(value) {
			return fail(pos, "smt_name '%s' does not match regex criteria '%s'", value, smtNamePattern)
		}
		return v.symbols.Define(symbols.SMTName, value, pos)
	case "short":
		if value == "" {
			return nil
		}
		if strings.HasPrefix(value, "-") {
			return fail(pos, "remove - prefix from short option")
		}
		if utf8.RuneCountInString(value) != 1 {
			return fail(pos, "short option must be of length 1")
		}
		r, _ := utf8.DecodeRuneInString(value)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return fail(pos, "short option must be a character or a digit")
		}
		return v.symbols.Define(symbols.Short, value, pos)
	}
	return nil
}

func (v *Validator) checkAliasAttribute(pos domain.Position, attr parser.Attribute) error {
	switch attr.Key {
	case "category":
		return checkCategory(pos, attr.Value.Str)
	case "links":
		if len(attr.Value.List) == 0 {
			return fail(pos, "links list must not be empty")
		}
	}
	return nil
}

func checkCategory(pos domain.Position, value string) error {
	if _, ok := domain.ParseCategory(value); !ok {
		return fail(pos, "invalid category value '%s'", value)
	}
	return nil
}

// CheckDocument runs the block level checks of a parsed file: required and
// allowed attribute sets plus the cross-attribute invariants of options.
func (v *Validator) CheckDocument(doc *parser.ParsedDocument) error {
	if err := v.CheckBlock(doc.FilePath, doc.Module); err != nil {
		return err
	}
	for _, b := range doc.Options {
		if err := v.CheckBlock(doc.FilePath, b); err != nil {
			return err
		}
	}
	for _, b := range doc.Aliases {
		if err := v.CheckBlock(doc.FilePath, b); err != nil {
			return err
		}
	}
	return nil
}

// CheckBlock checks a single block.
func (v *Validator) CheckBlock(file string, b *parser.Block) error {
	pos := domain.Position{File: file, Line: b.Line}

	msgFor := ""
	if name := stringAttr(b, "name"); name != "" {
		msgFor = fmt.Sprintf(" for '%s'", name)
	}
	for _, k := range Required(b.Kind) {
		if !b.Has(k) {
			return fail(pos, "required %s attribute '%s' not specified%s", b.Kind, k, msgFor)
		}
	}
	for _, a := range b.Attrs {
		if !Allowed(b.Kind, a.Key) {
			return fail(pos, "invalid %s attribute '%s' specified%s", b.Kind, a.Key, msgFor)
		}
	}

	if b.Kind == parser.BlockOption {
		return checkOptionInvariants(pos, b)
	}
	return nil
}

func checkOptionInvariants(pos domain.Position, b *parser.Block) error {
	typ := stringAttr(b, "type")
	name := stringAttr(b, "name")
	short := stringAttr(b, "short")
	long := stringAttr(b, "long")
	category := stringAttr(b, "category")

	if short != "" && long == "" {
		return fail(pos, "short option '%s' specified but no long option", short)
	}
	if typ == domain.TypeBool && stringAttr(b, "handler") != "" {
		return fail(pos, "specifying handlers for options of type bool is not allowed")
	}
	if category != string(domain.CategoryUndocumented) && stringAttr(b, "help") == "" {
		return fail(pos, "help text is required for %s options", category)
	}
	if typ == domain.TypeVoid && name != "" {
		return fail(pos, "options of type void must not specify a name")
	}
	if typ == domain.TypeBool && name == "" {
		return fail(pos, "options of type bool require a name to generate their accessors")
	}
	if name == "" && short == "" && long == "" && stringAttr(b, "smt_name") == "" {
		return fail(pos, "option must specify at least one of name, smt_name, short or long")
	}
	return nil
}

func stringAttr(b *parser.Block, key string) string {
	a, ok := b.Get(key)
	if !ok || a.Value.Kind != parser.KindString {
		return ""
	}
	return a.Value.Str
}
