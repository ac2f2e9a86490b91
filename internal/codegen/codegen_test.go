package codegen_test

import (
	"io"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/mkoptions/internal/codegen"
	"github.com/fjglira/mkoptions/internal/compiler"
	"github.com/fjglira/mkoptions/internal/converter"
	"github.com/fjglira/mkoptions/internal/parser"
	tmpl "github.com/fjglira/mkoptions/internal/template"
)

var settings = codegen.Settings{ExportMacro: "CVC4_PUBLIC", HolderMacroPrefix: "CVC4_OPTIONS"}

func compileSamples() *compiler.Compilation {
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
	return comp
}

var _ = Describe("ModuleSlots", func() {
	var (
		comp           *compiler.Compilation
		header, source tmpl.Slots
	)

	BeforeEach(func() {
		comp = compileSamples()
		header, source = codegen.ModuleSlots(comp.Modules[0], settings)
	})

	It("should name the module", func() {
		Expect(header["filename"]).To(Equal("base_options"))
		Expect(header["header"]).To(Equal("options/base_options.h"))
		Expect(header["id"]).To(Equal("BASE"))
		Expect(source["filename"]).To(Equal("base_options"))
	})

	It("should declare the holder members", func() {
		Expect(header["holder_spec"]).To(HavePrefix("#define CVC4_OPTIONS__BASE__FOR_OPTION_HOLDER \\\n" +
			"  incrementalSolving__option_t::type incrementalSolving;\\\n" +
			"  bool incrementalSolving__setByUser__;"))
	})

	It("should skip options without a name", func() {
		Expect(header["decls"]).ToNot(ContainSubstring("verbose"))
		Expect(source["defs"]).To(Equal("struct incrementalSolving__option_t incrementalSolving;\n" +
			"struct verbosity__option_t verbosity;\n" +
			"struct strictParsing__option_t strictParsing;"))
	})

	It("should declare a mutator for writable options", func() {
		Expect(header["decls"]).To(ContainSubstring("extern struct CVC4_PUBLIC incrementalSolving__option_t\n{\n  typedef bool type;"))
		Expect(header["inls"]).To(ContainSubstring("inline void incrementalSolving__option_t::set("))
		Expect(header["specs"]).To(ContainSubstring("template <> void Options::assignBool(\n    options::incrementalSolving__option_t,"))
		Expect(source["accs"]).To(ContainSubstring("d_holder->incrementalSolving = x;"))
	})

	It("should omit the mutator of read-only options", func() {
		Expect(header["decls"]).To(ContainSubstring("extern struct CVC4_PUBLIC verbosity__option_t\n{\n  typedef int type;\n  type operator()() const;\n  bool wasSetByUser() const;\n} verbosity CVC4_PUBLIC;"))
		Expect(header["inls"]).ToNot(ContainSubstring("inline void verbosity__option_t::set("))
		Expect(header["specs"]).ToNot(ContainSubstring("const options::verbosity__option_t::type& x);"))
		Expect(header["specs"]).To(ContainSubstring("template <> void Options::assign(\n    options::verbosity__option_t,"))
		Expect(source["accs"]).ToNot(ContainSubstring("d_holder->verbosity = x;"))
		Expect(source["accs"]).To(ContainSubstring("return d_holder->verbosity;"))
	})

	It("should collect sorted includes", func() {
		header, _ := codegen.ModuleSlots(comp.Modules[1], settings)
		Expect(header["includes"]).To(Equal("#include \"options/resource_manager.h\"\n#include <cstdint>"))
	})
})

var _ = Describe("RegistrySlots", func() {
	var options, holder tmpl.Slots

	BeforeEach(func() {
		options, holder = codegen.RegistrySlots(compileSamples(), settings)
	})

	It("should include every module header", func() {
		Expect(holder["headers_module"]).To(Equal("#include \"options/base_options.h\"\n#include \"options/smt_options.h\""))
		Expect(options["headers_module"]).To(Equal(holder["headers_module"]))
		Expect(holder["macros_module"]).To(Equal("CVC4_OPTIONS__BASE__FOR_OPTION_HOLDER\nCVC4_OPTIONS__SMT__FOR_OPTION_HOLDER"))
	})

	It("should initialize options with their defaults", func() {
		Expect(options["module_defaults"]).To(HavePrefix("incrementalSolving(false),\n" +
			"  incrementalSolving__setByUser__(false),\n" +
			"  strictParsing(false),"))
		Expect(options["module_defaults"]).To(ContainSubstring("timeLimit(0),\n  timeLimit__setByUser__(false)"))
	})

	It("should list the long option table with the code range", func() {
		Expect(options["cmdline_options"]).To(HavePrefix("{ \"incremental\", no_argument, nullptr, 256 },\n" +
			"  { \"no-incremental\", no_argument, nullptr, 257 },"))
		Expect(options["cmdline_options"]).To(ContainSubstring(`{ "verbosity", required_argument, nullptr, 260 },`))
		Expect(options["cmdline_options"]).To(ContainSubstring(`{ "verb", required_argument, nullptr, 262 },`))
		Expect(options["cmdline_options"]).To(HaveSuffix(`{ "produce-all", no_argument, nullptr, 268 },`))
		Expect(options["option_value_begin"]).To(Equal("256"))
		Expect(options["option_value_end"]).To(Equal("269"))
	})

	It("should list short options with argument markers", func() {
		Expect(options["options_short"]).To(Equal("ivm"))
	})

	It("should dispatch boolean options and their negation", func() {
		Expect(options["options_handler"]).To(ContainSubstring("case 'i':\n" +
			"    case 256:// --incremental\n" +
			"      options->assignBool(options::incrementalSolving, option, true);\n" +
			"      break;\n"))
		Expect(options["options_handler"]).To(ContainSubstring("case 257:// --no-incremental\n" +
			"      options->assignBool(options::incrementalSolving, option, false);"))
	})

	It("should dispatch void options to their handler", func() {
		Expect(options["options_handler"]).To(ContainSubstring("case 'v':\n" +
			"    case 259:// --verbose\n" +
			"    handler->increaseVerbosity(option);"))
	})

	It("should let a negation alias clear the option and forward its links", func() {
		Expect(options["options_handler"]).To(ContainSubstring("case 261:// --no-strict-parsing\n" +
			"      options->assignBool(options::strictParsing, option, false);\n" +
			"    extender->pushBackPreemption(\"--verbosity=0\");"))
		Expect(options["options_handler"]).ToNot(ContainSubstring("--no-strict-parsing\n      options->assignBool(options::strictParsing, option, true)"))
	})

	It("should forward the argument of an alias", func() {
		Expect(options["options_handler"]).To(ContainSubstring("case 262:// --verb=N\n" +
			"    extender->pushBackPreemption(\"--verbosity\");\n" +
			"    extender->pushBackPreemption(optionarg.c_str());"))
	})

	It("should preempt links of options", func() {
		Expect(options["options_handler"]).To(ContainSubstring("case 263:// --dump-models\n" +
			"      options->assignBool(options::dumpModels, option, true);\n" +
			"    extender->pushBackPreemption(\"--produce-models\");"))
	})

	It("should list options known to set-option and get-option", func() {
		Expect(options["options_smt"]).To(Equal("\"incremental\",\n  \"strict-parsing\",\n  \"verbosity\",\n" +
			"  \"dump-models\",\n  \"produce-models\",\n  \"tlimit\","))
		Expect(options["options_getoptions"]).To(ContainSubstring(
			`{ std::vector<std::string> v; v.push_back("incremental"); v.push_back(std::string(d_holder->incrementalSolving ? "true" : "false")); opts.push_back(v); }`))
		Expect(options["options_getoptions"]).To(ContainSubstring(
			`{ std::stringstream ss; ss << std::fixed << std::setprecision(8); ss << d_holder->timeLimit; `))
	})

	It("should emit set-option handlers with linked options", func() {
		Expect(options["setoption_handlers"]).To(ContainSubstring("if(key == \"dump-models\") {\n" +
			"  options->assignBool(options::dumpModels, \"dump-models\", optionarg == \"true\");\n" +
			"setOption(std::string(\"produce-models\"), (\"true\"));\n" +
			"return;\n}"))
		Expect(options["setoption_handlers"]).To(ContainSubstring("if(key == \"tlimit\") {\n" +
			"  options->assign(options::timeLimit, \"tlimit\", optionarg);"))
	})

	It("should emit get-option handlers", func() {
		Expect(options["getoption_handlers"]).To(ContainSubstring("if (key == \"produce-models\") {\n" +
			"return options::produceModels() ? \"true\" : \"false\";\n}"))
		Expect(options["getoption_handlers"]).To(ContainSubstring("std::stringstream ss;\n" +
			"ss << std::fixed << std::setprecision(8);\n" +
			"ss << options::timeLimit();"))
	})

	It("should run handlers, predicates and notifications", func() {
		Expect(options["custom_handlers"]).To(ContainSubstring(
			"options::verbosity__option_t::type retval = handleOption<int>(option, optionarg);\n  handler->setVerbosity(option, retval);"))
		Expect(options["custom_handlers"]).To(ContainSubstring(
			"options::timeLimit__option_t::type retval = handler->limitHandler(option, optionarg);"))
		Expect(options["custom_handlers"]).To(ContainSubstring("d_handler->notifyProduceModels(option);"))
	})

	It("should leave the handler headers slot empty", func() {
		Expect(options).To(HaveKeyWithValue("headers_handler", ""))
	})
})
