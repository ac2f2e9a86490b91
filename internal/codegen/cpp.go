package codegen

import (
	"fmt"
	"regexp"
	"strings"
)

// Settings name the macros the generated sources use.
type Settings struct {
	ExportMacro       string // e.g. "CVC4_PUBLIC"
	HolderMacroPrefix string // e.g. "CVC4_OPTIONS"
}

// Snippets of the per-module header. %[1]s is the option name, %[2]s its
// type and %[3]s the export macro.
const (
	hStructRW = `extern struct %[3]s %[1]s__option_t
{
  typedef %[2]s type;
  type operator()() const;
  bool wasSetByUser() const;
  void set(const type& v);
} %[1]s %[3]s;`

	hStructRO = `extern struct %[3]s %[1]s__option_t
{
  typedef %[2]s type;
  type operator()() const;
  bool wasSetByUser() const;
} %[1]s %[3]s;`

	hSpecSet = `template <> void Options::set(
    options::%[1]s__option_t,
    const options::%[1]s__option_t::type& x);`

	hSpecGet = `template <> const options::%[1]s__option_t::type& Options::operator[](
    options::%[1]s__option_t) const;`

	hSpecWasSetByUser = `template <> bool Options::wasSetByUser(options::%[1]s__option_t) const;`

	hSpecAssign = `template <> void Options::assign(
    options::%[1]s__option_t,
    std::string option,
    std::string value);`

	hSpecAssignBool = `template <> void Options::assignBool(
    options::%[1]s__option_t,
    std::string option,
    bool value);`

	hInlineSet = `inline void %[1]s__option_t::set(
    const %[1]s__option_t::type& v)
{
  Options::current()->set(*this, v);
}`

	hInlineWasSetByUser = `inline bool %[1]s__option_t::wasSetByUser() const
{
  return Options::current()->wasSetByUser(*this);
}`

	hInlineGet = `inline %[1]s__option_t::type %[1]s__option_t::operator()() const
{
  return (*Options::current())[*this];
}`

	hHolderAttr = "  %[1]s__option_t::type %[1]s;\\\n  bool %[1]s__setByUser__;"
)

// Snippets of the per-module source.
const (
	cAccSet = `template <> void Options::set(
    options::%[1]s__option_t,
    const options::%[1]s__option_t::type& x)
{
  d_holder->%[1]s = x;
}`

	cAccGet = `template <> const options::%[1]s__option_t::type& Options::operator[](
    options::%[1]s__option_t) const
{
  return d_holder->%[1]s;
}`

	cAccWasSetByUser = `template <> bool Options::wasSetByUser(
    options::%[1]s__option_t) const
{
  return d_holder->%[1]s__setByUser__;
}`

	cStruct = "struct %[1]s__option_t %[1]s;"
)

// Snippets of the aggregate options source.
const (
	runHandler = `template <> options::%[1]s__option_t::type runHandlerAndPredicates(
    options::%[1]s__option_t,
    std::string option,
    std::string optionarg,
    options::OptionsHandler* handler)
{
  options::%[1]s__option_t::type retval = %[2]s;
  %[3]s
  return retval;
}`

	runBoolPredicates = `template <> void runBoolPredicates(
    options::%[1]s__option_t,
    std::string option,
    bool b,
    options::OptionsHandler* handler)
{
  %[3]s
}`

	assign = `template <> void Options::assign(
    options::%[1]s__option_t,
    std::string option,
    std::string value)
{
  d_holder->%[1]s =
    runHandlerAndPredicates(options::%[1]s, option, value, d_handler);
  d_holder->%[1]s__setByUser__ = true;
  Trace("options") << "user assigned option %[1]s" << std::endl;
  %[2]s
}`

	assignBool = `template <> void Options::assignBool(
    options::%[1]s__option_t,
    std::string option,
    bool value)
{
  runBoolPredicates(options::%[1]s, option, value, d_handler);
  d_holder->%[1]s = value;
  d_holder->%[1]s__setByUser__ = true;
  Trace("options") << "user assigned option %[1]s" << std::endl;
  %[2]s
}`
)

func callAssignBool(name, option, value string) string {
	return fmt.Sprintf("  options->assignBool(options::%s, %s, %s);", name, option, value)
}

func callAssign(name, option string) string {
	return fmt.Sprintf("  options->assign(options::%s, %s, optionarg);", name, option)
}

func callSetOption(name, value string) string {
	return fmt.Sprintf(`setOption(std::string("%s"), ("%s"));`, name, value)
}

func pushBackPreemption(arg string) string {
	return fmt.Sprintf("extender->pushBackPreemption(%s);", arg)
}

func getoptLong(name string, argumentRequired bool, code int) string {
	arg := "no"
	if argumentRequired {
		arg = "required"
	}
	return fmt.Sprintf(`{ "%s", %s_argument, nullptr, %d },`, name, arg, code)
}

func quote(s string) string {
	return `"` + s + `"`
}

// formatInclude renders an #include directive; names containing '<' are
// system headers and are used verbatim.
func formatInclude(include string) string {
	if strings.Contains(include, "<") {
		return "#include " + include
	}
	return "#include " + quote(include)
}

var fixedWidthInt = regexp.MustCompile(`^u?int[0-9]+_t$`)

// isNumeric reports whether t is a numeric C++ type. Values of these types
// are printed with fixed precision.
func isNumeric(t string) bool {
	switch t {
	case "int", "unsigned", "unsigned long", "long", "float", "double":
		return true
	}
	return fixedWidthInt.MatchString(t)
}

func (s Settings) holderMacro(id string) string {
	return fmt.Sprintf("%s__%s__FOR_OPTION_HOLDER", s.HolderMacroPrefix, id)
}
