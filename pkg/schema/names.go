package schema

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ToSnakeCase converts an API name to the snake-case form used for SQL
// table and column names. An underscore is inserted on lowercase-to-
// uppercase transitions and before the last capital of an all-caps run
// followed by a lowercase letter, so HTTPServer becomes http_server and
// getHTTPResponse becomes get_http_response. Existing underscores are
// preserved, including consecutive ones.
func ToSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	prevUpper := false
	prevUnderscore := true // treat start as after an underscore
	runes := []rune(s)
	for i, r := range runes {
		switch {
		case r == '_':
			b.WriteByte('_')
			prevUnderscore = true
			prevUpper = false
		case r >= 'A' && r <= 'Z':
			if !prevUnderscore {
				nextLower := i+1 < len(runes) && runes[i+1] >= 'a' && runes[i+1] <= 'z'
				if !prevUpper || nextLower {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r + ('a' - 'A'))
			prevUpper = true
			prevUnderscore = false
		default:
			b.WriteRune(r)
			prevUpper = false
			prevUnderscore = false
		}
	}
	return b.String()
}

// DeriveLabel produces a display label from an API name: AnnualRevenue
// becomes "Annual Revenue", custom_field__c becomes "Custom Field C".
func DeriveLabel(name string) string {
	words := strings.FieldsFunc(ToSnakeCase(name), func(r rune) bool { return r == '_' })
	return cases.Title(language.English).String(strings.Join(words, " "))
}
