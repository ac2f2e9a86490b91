package parser

import (
	"fmt"
	"strings"
	"sync"

	"github.com/fjglira/mkoptions/internal/domain"
)

// BlockKind identifies the scope an attribute belongs to.
type BlockKind int

const (
	BlockModule BlockKind = iota
	BlockOption
	BlockAlias
)

func (k BlockKind) String() string {
	switch k {
	case BlockModule:
		return "module"
	case BlockOption:
		return "option"
	case BlockAlias:
		return "alias"
	}
	return "unknown"
}

// Attribute is one "key = value" pair.
type Attribute struct {
	Key   string
	Value Value
	Line  int // 1-based
}

// Block is one module, option or alias definition. Attributes keep their
// source order.
type Block struct {
	Kind  BlockKind
	Line  int // line of the block marker; 1 for the module block
	Attrs []Attribute
}

// Get returns the attribute named key.
func (b *Block) Get(key string) (Attribute, bool) {
	for _, a := range b.Attrs {
		if a.Key == key {
			return a, true
		}
	}
	return Attribute{}, false
}

// Has reports whether the block sets key.
func (b *Block) Has(key string) bool {
	_, ok := b.Get(key)
	return ok
}

// ParsedDocument holds the blocks of one specification file.
type ParsedDocument struct {
	FilePath string
	FileType string // "toml", "yaml"
	Module   *Block
	Options  []*Block
	Aliases  []*Block
}

func newDocument(filePath, fileType string) *ParsedDocument {
	return &ParsedDocument{
		FilePath: filePath,
		FileType: fileType,
		Module:   &Block{Kind: BlockModule, Line: 1},
	}
}

// Checker validates attributes as they are parsed.
type Checker interface {
	CheckAttribute(file string, kind BlockKind, attr Attribute) error
}

// add validates attr and appends it to b, rejecting duplicate keys within
// the same block instance.
func add(doc *ParsedDocument, b *Block, attr Attribute, checker Checker) error {
	if checker != nil {
		if err := checker.CheckAttribute(doc.FilePath, b.Kind, attr); err != nil {
			return err
		}
	}
	if b.Has(attr.Key) {
		return domain.NewError("parse", doc.FilePath, attr.Line,
			fmt.Sprintf("duplicate %s attribute '%s'", b.Kind, attr.Key), nil)
	}
	b.Attrs = append(b.Attrs, attr)
	return nil
}

// Parser reads one specification file into blocks of attributes.
type Parser interface {
	Parse(filePath string, content []byte, checker Checker) (*ParsedDocument, error)
	SupportedExtensions() []string
}

// ParserRegistry maps file extensions to parsers.
type ParserRegistry interface {
	Register(parser Parser)
	ParserFor(extension string) (Parser, error)
}

// DefaultRegistry is a thread-safe parser registry with fallback support.
type DefaultRegistry struct {
	mu       sync.RWMutex
	parsers  map[string]Parser
	fallback Parser
}

// NewRegistry creates a new DefaultRegistry.
func NewRegistry() *DefaultRegistry {
	return &DefaultRegistry{
		parsers: make(map[string]Parser),
	}
}

// NewDefaultRegistry returns a registry with the TOML and YAML front ends
// registered and the TOML parser as fallback.
func NewDefaultRegistry() *DefaultRegistry {
	r := NewRegistry()
	toml := NewTOMLParser()
	r.Register(toml)
	r.Register(NewYAMLParser())
	r.SetFallback(toml)
	return r
}

// Register adds a parser to the registry for each of its supported extensions.
func (r *DefaultRegistry) Register(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range p.SupportedExtensions() {
		ext = strings.TrimPrefix(ext, ".")
		r.parsers[ext] = p
	}
}

// SetFallback sets the fallback parser for unregistered extensions.
func (r *DefaultRegistry) SetFallback(p Parser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallback = p
}

// ParserFor returns the parser registered for the given file extension.
// If no parser is found, it returns the fallback parser if set.
func (r *DefaultRegistry) ParserFor(extension string) (Parser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.TrimPrefix(extension, ".")
	if p, ok := r.parsers[ext]; ok {
		return p, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, fmt.Errorf("no parser registered for extension %q", extension)
}
