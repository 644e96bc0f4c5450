// Package naming derives the identifier variants used by the generators from
// a user supplied name such as "user-profile".
package naming

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	dashLetter = regexp.MustCompile(`(?i)-([a-z])`)
	lowerUpper = regexp.MustCompile(`[a-z][A-Z]`)
	upperCaser = cases.Upper(language.Und)
)

// Names holds the casing variants of a name.
type Names struct {
	CamelName           string
	KebabName           string
	UpperFirstCamelName string
}

// From builds the variants of name. Conversions are literal: "user-profile"
// gives userProfile / user-profile / UserProfile, and "userProfile" gives
// userProfile / user-profile / UserProfile.
func From(name string) Names {
	camel := dashLetter.ReplaceAllStringFunc(name, func(m string) string {
		return strings.ToUpper(m[1:])
	})

	kebab := lowerUpper.ReplaceAllStringFunc(name, func(m string) string {
		return m[:1] + "-" + strings.ToLower(m[1:])
	})

	return Names{
		CamelName:           camel,
		KebabName:           kebab,
		UpperFirstCamelName: upperFirst(camel),
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return upperCaser.String(string(r)) + s[size:]
}

// Locals returns the substitution map used when rendering templates.
func (n Names) Locals() map[string]string {
	return map[string]string{
		"camelName":           n.CamelName,
		"kebabName":           n.KebabName,
		"upperFirstCamelName": n.UpperFirstCamelName,
	}
}
