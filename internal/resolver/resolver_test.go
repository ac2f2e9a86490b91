package resolver_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/fjglira/mkoptions/internal/domain"
	"github.com/fjglira/mkoptions/internal/resolver"
	"github.com/fjglira/mkoptions/internal/symbols"
)

func at(file string, line int) domain.Position {
	return domain.Position{File: file, Line: line}
}

func boolOption(pos domain.Position, name, long string) *domain.Option {
	return &domain.Option{Pos: pos, Category: domain.CategoryCommon, Type: domain.TypeBool, Name: name, Long: long, Alternate: true}
}

func valueOption(pos domain.Position, name, long string) *domain.Option {
	return &domain.Option{Pos: pos, Category: domain.CategoryCommon, Type: "std::string", Name: name, Long: long, Alternate: true}
}

func alias(pos domain.Position, long string, links ...string) *domain.Alias {
	return &domain.Alias{Pos: pos, Category: domain.CategoryRegular, Long: long, Links: links}
}

var _ = Describe("Resolve", func() {
	var table *symbols.Table

	BeforeEach(func() {
		table = symbols.NewTable()
	})

	It("should reserve the negation of boolean options", func() {
		m := &domain.Module{ID: "A", Options: []*domain.Option{boolOption(at("a.toml", 3), "foo", "foo")}}
		_, err := resolver.Resolve([]*domain.Module{m}, table)
		Expect(err).ToNot(HaveOccurred())

		e, ok := table.Lookup(symbols.Long, "no-foo")
		Expect(ok).To(BeTrue())
		Expect(e.Negation).To(BeTrue())
		Expect(m.Options[0].HasNegation()).To(BeTrue())
	})

	It("should let a no- alias take over the negation", func() {
		foo := boolOption(at("a.toml", 3), "foo", "foo")
		noFoo := alias(at("a.toml", 10), "no-foo", "--foo")
		m := &domain.Module{ID: "A", Options: []*domain.Option{foo}, Aliases: []*domain.Alias{noFoo}}

		_, err := resolver.Resolve([]*domain.Module{m}, table)
		Expect(err).ToNot(HaveOccurred())
		Expect(foo.Alternate).To(BeFalse())
		Expect(foo.HasNegation()).To(BeFalse())
		Expect(noFoo.AlternateFor).To(BeIdenticalTo(foo))

		e, ok := table.Lookup(symbols.Long, "no-foo")
		Expect(ok).To(BeTrue())
		Expect(e.Negation).To(BeFalse())
		Expect(e.Pos).To(Equal(noFoo.Pos))
	})

	It("should resolve negation aliases across modules", func() {
		foo := boolOption(at("a.toml", 3), "foo", "foo")
		noFoo := alias(at("b.toml", 4), "no-foo", "--foo")
		a := &domain.Module{ID: "A", Options: []*domain.Option{foo}}
		b := &domain.Module{ID: "B", Aliases: []*domain.Alias{noFoo}}

		_, err := resolver.Resolve([]*domain.Module{a, b}, table)
		Expect(err).ToNot(HaveOccurred())
		Expect(noFoo.AlternateFor).To(BeIdenticalTo(foo))
	})

	It("should not suppress negations of non-boolean options", func() {
		foo := valueOption(at("a.toml", 3), "foo", "foo=X")
		noFoo := alias(at("a.toml", 10), "no-foo", "--foo=off")
		m := &domain.Module{ID: "A", Options: []*domain.Option{foo}, Aliases: []*domain.Alias{noFoo}}

		_, err := resolver.Resolve([]*domain.Module{m}, table)
		Expect(err).ToNot(HaveOccurred())
		Expect(noFoo.AlternateFor).To(BeNil())
	})

	It("should reject duplicate long options across modules", func() {
		a := &domain.Module{ID: "A", Options: []*domain.Option{valueOption(at("a.toml", 3), "x", "shared=N")}}
		b := &domain.Module{ID: "B", Options: []*domain.Option{valueOption(at("b.toml", 8), "y", "shared")}}

		_, err := resolver.Resolve([]*domain.Module{a, b}, table)
		Expect(err).To(MatchError("b.toml:8: 'shared' already defined in 'a.toml' at line 3"))
	})

	It("should reject options that clash with a generated negation", func() {
		a := &domain.Module{ID: "A", Options: []*domain.Option{
			boolOption(at("a.toml", 3), "foo", "foo"),
			valueOption(at("a.toml", 9), "noFoo", "no-foo=N"),
		}}
		_, err := resolver.Resolve([]*domain.Module{a}, table)
		Expect(err).To(MatchError("a.toml:9: 'no-foo' already defined in 'a.toml' at line 3"))
	})

	It("should reject duplicate negation aliases", func() {
		foo := boolOption(at("a.toml", 3), "foo", "foo")
		m := &domain.Module{ID: "A", Options: []*domain.Option{foo}, Aliases: []*domain.Alias{
			alias(at("a.toml", 10), "no-foo", "--foo"),
			alias(at("a.toml", 15), "no-foo", "--foo"),
		}}
		_, err := resolver.Resolve([]*domain.Module{m}, table)
		Expect(err).To(MatchError("a.toml:15: 'no-foo' already defined in 'a.toml' at line 10"))
	})

	It("should check long option syntax", func() {
		m := &domain.Module{ID: "A", Options: []*domain.Option{valueOption(at("a.toml", 3), "x", "--x")}}
		_, err := resolver.Resolve([]*domain.Module{m}, table)
		Expect(err).To(MatchError("a.toml:3: remove -- prefix from long option"))
	})

	Describe("links", func() {
		var foo *domain.Option

		BeforeEach(func() {
			foo = valueOption(at("a.toml", 3), "foo", "foo=MODE")
		})

		It("should accept links that supply a required argument", func() {
			m := &domain.Module{ID: "A", Options: []*domain.Option{foo},
				Aliases: []*domain.Alias{alias(at("a.toml", 10), "disable-foo", "foo=off")}}
			_, err := resolver.Resolve([]*domain.Module{m}, table)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should reject links that omit a required argument", func() {
			m := &domain.Module{ID: "A", Options: []*domain.Option{foo},
				Aliases: []*domain.Alias{alias(at("a.toml", 10), "disable-foo", "foo")}}
			_, err := resolver.Resolve([]*domain.Module{m}, table)
			Expect(err).To(MatchError("a.toml:10: linked option 'foo' requires an argument"))

			var specErr *domain.SpecError
			Expect(errors.As(err, &specErr)).To(BeTrue())
			Expect(specErr.Phase).To(Equal("resolve"))
		})

		It("should reject links to unknown options", func() {
			m := &domain.Module{ID: "A", Options: []*domain.Option{foo},
				Aliases: []*domain.Alias{alias(at("a.toml", 10), "bar", "--baz")}}
			_, err := resolver.Resolve([]*domain.Module{m}, table)
			Expect(err).To(MatchError("a.toml:10: invalid long option '--baz' in links list"))
		})

		It("should resolve links of options and links to negations", func() {
			verbose := boolOption(at("a.toml", 12), "verbose", "verbose")
			verbose.Links = []string{"--no-quiet"}
			quiet := boolOption(at("a.toml", 20), "quiet", "quiet")
			m := &domain.Module{ID: "A", Options: []*domain.Option{verbose, quiet}}
			_, err := resolver.Resolve([]*domain.Module{m}, table)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should check option links after all modules are known", func() {
			verbose := boolOption(at("a.toml", 12), "verbose", "verbose")
			verbose.Links = []string{"--later"}
			a := &domain.Module{ID: "A", Options: []*domain.Option{verbose}}
			b := &domain.Module{ID: "B", Options: []*domain.Option{boolOption(at("b.toml", 2), "later", "later")}}
			_, err := resolver.Resolve([]*domain.Module{a, b}, table)
			Expect(err).ToNot(HaveOccurred())
		})
	})

	Describe("Result", func() {
		var res *resolver.Result

		BeforeEach(func() {
			m := &domain.Module{ID: "A",
				Options: []*domain.Option{
					boolOption(at("a.toml", 3), "foo", "foo"),
					valueOption(at("a.toml", 9), "limit", "limit=N"),
				},
				Aliases: []*domain.Alias{alias(at("a.toml", 15), "lim=N", "--limit=N")},
			}
			var err error
			res, err = resolver.Resolve([]*domain.Module{m}, table)
			Expect(err).ToNot(HaveOccurred())
		})

		It("should look up options by long name", func() {
			opt, ok := res.Option("limit")
			Expect(ok).To(BeTrue())
			Expect(opt.Name).To(Equal("limit"))
		})

		It("should know which long options take an argument", func() {
			Expect(res.RequiresArgument("limit")).To(BeTrue())
			Expect(res.RequiresArgument("lim")).To(BeTrue())
			Expect(res.RequiresArgument("foo")).To(BeFalse())
		})

		It("should match links to options and values", func() {
			opt, value, ok := res.Match("--foo")
			Expect(ok).To(BeTrue())
			Expect(opt.Name).To(Equal("foo"))
			Expect(value).To(BeTrue())

			opt, value, ok = res.Match("--no-foo")
			Expect(ok).To(BeTrue())
			Expect(opt.Name).To(Equal("foo"))
			Expect(value).To(BeFalse())

			opt, _, ok = res.Match("limit=5")
			Expect(ok).To(BeTrue())
			Expect(opt.Name).To(Equal("limit"))

			_, _, ok = res.Match("--lim=5")
			Expect(ok).To(BeFalse())
		})
	})
})
