package sgb

import (
	"strings"
	"unicode"
)

// acronyms are rendered upper case when they appear as a whole word.
var acronyms = map[string]string{
	"Rls":  "RLS",
	"Rlm":  "RLM",
	"Gnss": "GNSS",
	"Hdop": "HDOP",
	"Vdop": "VDOP",
	"Elt":  "ELT",
	"Dt":   "DT",
}

// PrettifyKey turns a camelCase JSON key into a title for display, e.g.
// "hasEnabledRls" becomes "Has Enabled RLS".
func PrettifyKey(key string) string {
	var words []string
	var cur []rune
	var prev rune
	for i, c := range key {
		split := i > 0 && (unicode.IsUpper(c) || (unicode.IsDigit(c) && !unicode.IsDigit(prev)))
		if split && len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
		cur = append(cur, c)
		prev = c
	}
	if len(cur) > 0 {
		words = append(words, string(cur))
	}

	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		w = string(r)
		if a, ok := acronyms[w]; ok {
			w = a
		}
		words[i] = w
	}
	return strings.Join(words, " ")
}
