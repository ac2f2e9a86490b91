// Package schema checks specification attributes against the allowed
// attribute sets and value constraints of each block kind.
package schema

import (
	"regexp"

	"github.com/fjglira/mkoptions/internal/parser"
)

// attributeSet lists the required and allowed attributes of one block kind.
type attributeSet struct {
	required []string
	allowed  map[string]bool
}

func newAttributeSet(required []string, optional ...string) attributeSet {
	s := attributeSet{required: required, allowed: make(map[string]bool)}
	for _, k := range required {
		s.allowed[k] = true
	}
	for _, k := range optional {
		s.allowed[k] = true
	}
	return s
}

var attributeSets = map[parser.BlockKind]attributeSet{
	parser.BlockModule: newAttributeSet([]string{"id", "name", "header"}),
	parser.BlockOption: newAttributeSet([]string{"category", "type"},
		"name", "help", "smt_name", "short", "long", "default", "includes",
		"handler", "predicates", "notifies", "links", "read_only", "alternate"),
	parser.BlockAlias: newAttributeSet([]string{"category", "long", "links"}, "help"),
}

// Allowed reports whether key is a valid attribute for kind.
func Allowed(kind parser.BlockKind, key string) bool {
	return attributeSets[kind].allowed[key]
}

// Required returns the required attributes of kind in declaration order.
func Required(kind parser.BlockKind) []string {
	return attributeSets[kind].required
}

const (
	namePattern     = `[a-zA-Z]+[0-9a-zA-Z_]*`
	smtNamePattern  = `[a-zA-Z]+[0-9a-zA-Z\-_]*`
	moduleIDPattern = `[A-Z]+[A-Z_]*`
	longPattern     = `[0-9a-zA-Z\-=]+`
)

var (
	nameRe     = regexp.MustCompile(`^` + namePattern + `$`)
	smtNameRe  = regexp.MustCompile(`^` + smtNamePattern + `$`)
	moduleIDRe = regexp.MustCompile(`^` + moduleIDPattern + `$`)
	longRe     = regexp.MustCompile(`^` + longPattern + `$`)
)

var listAttributes = map[string]bool{
	"includes":   true,
	"predicates": true,
	"notifies":   true,
	"links":      true,
}

// IsListAttribute reports whether key holds a list.
func IsListAttribute(key string) bool {
	return listAttributes[key]
}
