package phone

import (
	"regexp"
	"strings"
)

// Separators commonly seen between numbers stuffed into one field. A single
// space is not a separator; formatted numbers like "52 55 1234 5678" must
// survive as one token.
var sepRE = regexp.MustCompile(`:::|[,|/;:\t]|\s{2,}`)

// Tokenize splits one raw phone field into substrings likely to contain a
// single number each. A field holding more than one '+' is additionally cut
// before every '+', so two international numbers glued together separate
// cleanly. Without any separator the trimmed field is the sole token; blank
// fields yield none.
func Tokenize(field string) []string {
	multiPlus := strings.Count(field, "+") > 1

	var tokens []string
	for _, p := range sepRE.Split(field, -1) {
		if multiPlus {
			for _, q := range splitAtPlus(p) {
				if q = strings.TrimSpace(q); q != "" {
					tokens = append(tokens, q)
				}
			}
			continue
		}
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// splitAtPlus cuts s before each interior '+', keeping every '+' attached to
// the piece it starts.
func splitAtPlus(s string) []string {
	var out []string
	start := 0
	for i := 1; i < len(s); i++ {
		if s[i] == '+' {
			out = append(out, s[start:i])
			start = i
		}
	}
	return append(out, s[start:])
}
