package schema

import (
	"strings"

	"github.com/fjglira/mkoptions/internal/domain"
)

// CheckLongSyntax validates the spelling of a long option. Uniqueness is
// checked by the resolver once every file has been parsed.
func CheckLongSyntax(pos domain.Position, long string) error {
	if strings.HasPrefix(long, "--") {
		return fail(pos, "remove -- prefix from long option")
	}
	if !longRe.MatchString(long) {
		return fail(pos, "long option '%s' does not match regex criteria '%s'", long, longPattern)
	}
	return nil
}
