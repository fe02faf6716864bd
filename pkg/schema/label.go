package schema

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// titleCaser capitalizes word-initial letters without folding the rest,
// so acronyms survive ("HTTP Status" stays "HTTP Status").
var titleCaser = cases.Title(language.English, cases.NoLower)

// Labelize converts a snake_case or camelCase column key into a
// title-cased display label. Underscores and dots become spaces and a
// lowercase-to-uppercase transition is treated as a word boundary:
// "user_name" and "userName" both become "User Name".
func Labelize(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	prev := rune(0)
	for _, r := range key {
		switch {
		case r == '_' || r == '.':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && unicode.IsLower(prev):
			b.WriteRune(' ')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
		prev = r
	}
	return titleCaser.String(strings.Join(strings.Fields(b.String()), " "))
}
