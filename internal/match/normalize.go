// Package match resolves table headers to members of actual values.
//
// Headers and member names are compared after normalization: NFC, Unicode
// case folding, then every rune that is not a letter or digit is dropped.
// "The fourth property", "the_fourth-property" and TheFourthProperty all
// normalize to "thefourthproperty".
//
// Struct types get an index built once per reflect.Type and cached for the
// life of the process. When several members normalize to the same key the
// first one in declaration order wins; no ambiguity error is raised.
package match

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Normalize returns the comparison key for a header or member name.
func Normalize(s string) string {
	// Casers are stateful and must not be shared between goroutines.
	folded := cases.Fold().String(norm.NFC.String(s))

	var buf strings.Builder
	buf.Grow(len(folded))
	for _, r := range folded {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			buf.WriteRune(r)
		}
	}
	return buf.String()
}

// Equal reports whether a and b normalize to the same key.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
