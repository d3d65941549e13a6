package jsx

import "strings"

var exprWords = map[string]string{
	"true":      "True",
	"false":     "False",
	"null":      "None",
	"undefined": "None",
}

// convertExpr rewrites a JavaScript expression into the equivalent Starlark
// form. Only surface syntax changes: operators, keyword literals, and boolean
// connectives. Identifiers and calls pass through so scope resolution decides
// what they mean.
func convertExpr(src string) string {
	var b strings.Builder
	runes := []rune(src)
	i := 0
	for i < len(runes) {
		r := runes[i]

		// string literals pass through untouched
		if r == '"' || r == '\'' {
			end := scanString(runes, i)
			b.WriteString(string(runes[i:end]))
			i = end
			continue
		}

		if r == '=' || r == '!' {
			// === and !== collapse to their two-character forms
			if i+2 < len(runes) && runes[i+1] == '=' && runes[i+2] == '=' {
				b.WriteRune(r)
				b.WriteRune('=')
				i += 3
				continue
			}
			if r == '!' && (i+1 >= len(runes) || runes[i+1] != '=') {
				b.WriteString("not ")
				i++
				continue
			}
		}

		if r == '&' && i+1 < len(runes) && runes[i+1] == '&' {
			b.WriteString(" and ")
			i += 2
			continue
		}
		if r == '|' && i+1 < len(runes) && runes[i+1] == '|' {
			b.WriteString(" or ")
			i += 2
			continue
		}

		if isWordRune(r) {
			end := i
			for end < len(runes) && isWordRune(runes[end]) {
				end++
			}
			word := string(runes[i:end])
			if starlark, ok := exprWords[word]; ok {
				b.WriteString(starlark)
			} else {
				b.WriteString(word)
			}
			i = end
			continue
		}

		b.WriteRune(r)
		i++
	}
	return collapseSpace(b.String())
}

// scanString returns the index just past the string literal starting at i.
func scanString(runes []rune, i int) int {
	quote := runes[i]
	i++
	for i < len(runes) {
		if runes[i] == '\\' {
			i += 2
			continue
		}
		if runes[i] == quote {
			return i + 1
		}
		i++
	}
	return len(runes)
}

func isWordRune(r rune) bool {
	return r == '_' || r == '$' ||
		(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
