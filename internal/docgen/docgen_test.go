package docgen_test

import (
	"io"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/mkoptions/internal/compiler"
	"github.com/fjglira/mkoptions/internal/converter"
	"github.com/fjglira/mkoptions/internal/docgen"
	"github.com/fjglira/mkoptions/internal/domain"
	"github.com/fjglira/mkoptions/internal/parser"
)

var _ = Describe("FormatOptions", func() {
	DescribeTable("option labels",
		func(short, long, expected string) {
			Expect(docgen.FormatOptions(short, long)).To(Equal(expected))
		},
		Entry("long and short", "i", "incremental", "--incremental | -i"),
		Entry("argument on both forms", "t", "tlimit=MS", "--tlimit=MS | -t MS"),
		Entry("long only", "", "verbose", "--verbose"),
		Entry("short only", "v", "", "-v"),
		Entry("neither", "", "", ""),
	)
})

var _ = Describe("HelpLines", func() {
	It("should pad the option column", func() {
		Expect(docgen.HelpLines("enable incremental solving [*]", "--incremental | -i", 80, 25)).To(Equal([]string{
			`"  --incremental | -i     enable incremental solving [*]\n"`,
		}))
	})

	It("should put wide labels on their own line", func() {
		indent := strings.Repeat(" ", 25)
		Expect(docgen.HelpLines("set it", "--very-long-option-name=ARGUMENT", 80, 25)).To(Equal([]string{
			`"  --very-long-option-name=ARGUMENT\n"`,
			`"` + indent + `set it\n"`,
		}))
	})

	It("should wrap help text under the help column", func() {
		indent := strings.Repeat(" ", 25)
		Expect(docgen.HelpLines("aaa bbb ccc ddd eee", "-x", 40, 25)).To(Equal([]string{
			`"  -x                     aaa bbb ccc ddd\n"`,
			`"` + indent + `eee\n"`,
		}))
	})

	It("should split words longer than the help column", func() {
		lines := docgen.HelpLines("abcdefghij", "-x", 30, 25)
		Expect(lines).To(HaveLen(2))
		Expect(lines[0]).To(HaveSuffix(`abcde\n"`))
		Expect(lines[1]).To(HaveSuffix(`fghij\n"`))
	})

	It("should escape double quotes", func() {
		lines := docgen.HelpLines(`print "sat" on success`, "--quiet", 80, 25)
		Expect(lines[0]).To(ContainSubstring(`print \"sat\" on success`))
	})
})

var _ = Describe("RenderHelp", func() {
	DescribeTable("inline markup",
		func(help, plain, roff string) {
			Expect(docgen.RenderHelp(help, docgen.Plain)).To(Equal(plain))
			Expect(docgen.RenderHelp(help, docgen.Roff)).To(Equal(roff))
		},
		Entry("no markup", "use non-linear arithmetic", "use non-linear arithmetic", `use non\-linear arithmetic`),
		Entry("code span", "limit in `ms`", "limit in ms", `limit in \fBms\fR`),
		Entry("emphasis", "*experimental* solver", "experimental solver", `\fIexperimental\fR solver`),
		Entry("strong", "**never** set this", "never set this", `\fBnever\fR set this`),
		Entry("link", "see [the manual](http://example.org)", "see the manual (http://example.org)", "see the manual (http://example.org)"),
		Entry("several paragraphs", "first\n\n*second*", "first\n\n*second*", "first\n\n*second*"),
	)

	It("should escape dashes for man pages", func() {
		Expect(docgen.EscapeRoff("--produce-models")).To(Equal(`\-\-produce\-models`))
	})
})

var _ = Describe("Build", func() {
	var (
		docs    *docgen.Docs
		modules []*domain.Module
	)

	BeforeEach(func() {
		log := logrus.New()
		log.SetOutput(io.Discard)
		c := compiler.New(parser.NewDefaultRegistry(), converter.NewConverter(),
			compiler.Settings{HeaderDir: "options", GetoptBase: 256}, log)
		specs := filepath.Join("..", "..", "testdata", "specs")
		comp, err := c.Compile([]string{
			filepath.Join(specs, "base_options.toml"),
			filepath.Join(specs, "smt_options.yaml"),
		})
		Expect(err).ToNot(HaveOccurred())
		modules = comp.Modules
		docs = docgen.Build(modules, docgen.Settings{HelpWidth: 80, OptionWidth: 25})
	})

	Describe("help text", func() {
		It("should list common options first", func() {
			help := docs.HelpSlots()
			Expect(help["help_common"]).To(HavePrefix(`"  --incremental | -i     enable incremental solving [*]\n"` + "\n" +
				`"  --verbose | -v         increase verbosity (may be repeated)\n"`))
			Expect(help["help_common"]).To(ContainSubstring(`"  --produce-models | -m  support the get-value and get-model commands [*]\n"`))
		})

		It("should copy help verbatim and wrap long help", func() {
			help := docs.HelpSlots()["help_common"]
			Expect(help).To(ContainSubstring(`"  --tlimit=MS            enable time limiting of wall clock time (give\n"` + "\n" +
				"\"" + strings.Repeat(" ", 25) + "`milliseconds`)\\n\""))
		})

		It("should group other options by module", func() {
			help := docs.HelpSlots()["help_others"]
			Expect(help).To(HavePrefix(`"\nFrom the Base module:\n"`))
			Expect(help).To(ContainSubstring(`"\nFrom the SMT Layer module:\n"`))
			Expect(help).To(ContainSubstring(`"  --strict-parsing       be less tolerant of non-conforming inputs (EXPERTS\n"`))
			Expect(help).To(ContainSubstring(`"  --dump-models          output models after every SAT/INVALID/UNKNOWN response\n"`))
		})

		It("should leave out undocumented options and aliases", func() {
			help := docs.HelpSlots()
			Expect(help["help_others"]).ToNot(ContainSubstring("--verb=N"))
			Expect(help["help_others"]).ToNot(ContainSubstring("[undocumented]"))
		})
	})

	Describe("command manual", func() {
		It("should escape option labels", func() {
			man := docs.ManSlots()
			Expect(man["man_common"]).To(HavePrefix(".IP \"\\-\\-incremental | \\-i\"\nenable incremental solving [*]"))
			Expect(man["man_common"]).To(ContainSubstring("limiting of wall clock time (give `milliseconds`)"))
		})

		It("should add a section per module", func() {
			man := docs.ManSlots()["man_others"]
			Expect(man).To(HavePrefix(".SH BASE OPTIONS"))
			Expect(man).To(ContainSubstring(".SH SMT LAYER OPTIONS"))
			Expect(man).To(ContainSubstring("(EXPERTS only)"))
		})
	})

	Describe("external name manual", func() {
		It("should document types next to the help", func() {
			smt := docs.SMTSlots()
			Expect(smt["man_common_smt"]).To(HavePrefix(".TP\n.B \"incremental\"\n(bool) enable incremental solving"))
			Expect(smt["man_common_smt"]).To(ContainSubstring(".TP\n.B \"tlimit\"\n(unsigned long) enable time limiting"))
		})

		It("should include undocumented aliases", func() {
			smt := docs.SMTSlots()["man_others_smt"]
			Expect(smt).To(HavePrefix(".TP\n.I \"BASE OPTIONS\""))
			Expect(smt).To(ContainSubstring(".TP\n.B \"verb\"\n[undocumented]"))
			Expect(smt).To(ContainSubstring(".TP\n.B \"produce-all\"\nturn on model production and dumping (EXPERTS only)"))
		})
	})

	Describe("internals manual", func() {
		It("should document internal names with defaults", func() {
			internals := docs.InternalsSlots()
			Expect(internals["man_common_internals"]).To(HavePrefix(
				".TP\n.B \"incrementalSolving\"\n(bool, default = false)\n.br\nenable incremental solving"))
			Expect(internals["man_others_internals"]).To(ContainSubstring(
				".TP\n.B \"cumulativeMillisecondLimit\"\n(unsigned long, default = 0)\n.br\n[undocumented]"))
		})

		It("should skip entries without an internal name", func() {
			internals := docs.InternalsSlots()
			Expect(internals["man_common_internals"]).ToNot(ContainSubstring("increase verbosity"))
		})
	})

	Context("with help markup enabled", func() {
		BeforeEach(func() {
			docs = docgen.Build(modules, docgen.Settings{HelpWidth: 80, OptionWidth: 25, Markup: true})
		})

		It("should render markup before wrapping", func() {
			help := docs.HelpSlots()["help_common"]
			Expect(help).To(ContainSubstring(`"  --tlimit=MS            enable time limiting of wall clock time (give\n"` + "\n" +
				`"                         milliseconds)\n"`))
		})

		It("should use roff fonts in the manuals", func() {
			Expect(docs.ManSlots()["man_common"]).To(ContainSubstring("limiting of wall clock time (give \\fBmilliseconds\\fR)"))
		})
	})
})

var _ = Describe("Build without help markup", func() {
	var docs *docgen.Docs

	BeforeEach(func() {
		m := &domain.Module{
			ID:     "CALC",
			Name:   "Calc",
			Header: "options/calc_options.h",
			Options: []*domain.Option{{
				Category: domain.CategoryCommon,
				Type:     "int",
				Name:     "scale",
				Long:     "scale=N",
				Help:     "compute a*b*c over _x_ with `--all-of` [y]",
			}},
		}
		docs = docgen.Build([]*domain.Module{m}, docgen.Settings{HelpWidth: 80, OptionWidth: 25})
	})

	It("should keep help text unchanged in --help output", func() {
		Expect(docs.HelpSlots()["help_common"]).To(Equal(
			`"  --scale=N              compute a*b*c over _x_ with ` + "`--all-of`" + ` [y]\n"`))
	})

	It("should only escape dashes in the manuals", func() {
		roff := "compute a*b*c over _x_ with `\\-\\-all\\-of` [y]"
		Expect(docs.ManSlots()["man_common"]).To(Equal(".IP \"\\-\\-scale=N\"\n" + roff))
		Expect(docs.SMTSlots()["man_common_smt"]).To(Equal(".TP\n.B \"scale\"\n(int) " + roff))
		Expect(docs.InternalsSlots()["man_common_internals"]).To(Equal(".TP\n.B \"scale\"\n(int)\n.br\n" + roff))
	})
})
