package docgen

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// FormatOptions renders the option column of a help entry:
// "--long=ARG | -s ARG". Either part may be missing.
func FormatOptions(short, long string) string {
	var opts []string
	var arg string
	if long != "" {
		opts = append(opts, "--"+long)
		if _, a, ok := strings.Cut(long, "="); ok {
			arg = a
		}
	}
	if short != "" {
		if arg != "" {
			opts = append(opts, fmt.Sprintf("-%s %s", short, arg))
		} else {
			opts = append(opts, "-"+short)
		}
	}
	return strings.Join(opts, " | ")
}

// HelpLines formats one help entry as C string literals, one per output
// line. The help text is wrapped to width-optionWidth columns and indented
// by optionWidth; an option label too wide for its column is placed on a
// line of its own.
func HelpLines(help, opts string, width, optionWidth int) []string {
	text := wrap(strings.ReplaceAll(help, `"`, `\"`), width-optionWidth)
	indent := strings.Repeat(" ", optionWidth)

	var lines []string
	if utf8.RuneCountInString(opts) > optionWidth-3 {
		lines = append(lines, "  "+opts, indent+text[0])
	} else {
		lines = append(lines, "  "+padRight(opts, optionWidth-2)+text[0])
	}
	for _, l := range text[1:] {
		lines = append(lines, indent+l)
	}

	for i, l := range lines {
		lines[i] = `"` + l + `\n"`
	}
	return lines
}

func padRight(s string, n int) string {
	if pad := n - utf8.RuneCountInString(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}

// wrap breaks s into lines of at most width characters, splitting on
// whitespace. Words longer than width are split. The result has at least
// one line.
func wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	var line []rune
	for _, word := range strings.Fields(s) {
		w := []rune(word)
		for len(w) > 0 {
			sep := 0
			if len(line) > 0 {
				sep = 1
			}
			if len(line)+sep+len(w) <= width {
				if sep == 1 {
					line = append(line, ' ')
				}
				line = append(line, w...)
				w = nil
				continue
			}
			if len(line) > 0 {
				lines = append(lines, string(line))
				line = nil
				continue
			}
			line = append(line, w[:width]...)
			w = w[width:]
		}
	}
	if len(line) > 0 || len(lines) == 0 {
		lines = append(lines, string(line))
	}
	return lines
}
