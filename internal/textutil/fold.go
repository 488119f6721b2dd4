package textutil

import (
	"strings"

	"golang.org/x/text/cases"
)

// FoldKey returns a comparison key for name: surrounding whitespace is
// dropped and Unicode case folding is applied. A Caser carries state, so each
// call builds its own.
func FoldKey(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// EqualFold reports whether a and b have the same FoldKey.
func EqualFold(a, b string) bool {
	return FoldKey(a) == FoldKey(b)
}
