package engine

import "strings"

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource rewrites Vellum script source into something zygomys
// accepts:
//
//  1. :keyword becomes the string literal "__kw_keyword", so keyword
//     arguments need no global symbols.
//  2. kebab-case identifiers become snake_case (group-selected ->
//     group_selected); zygomys reads a bare hyphen as subtraction.
//  3. ; and ;; line comments become // comments.
//
// String literals (double-quoted and backtick) pass through untouched.
func preprocessSource(source string) string {
	var out strings.Builder
	out.Grow(len(source) + len(source)/4)

	b := source
	for i := 0; i < len(b); {
		c := b[i]
		switch {
		case c == '"':
			j := i + 1
			for j < len(b) && b[j] != '"' {
				if b[j] == '\\' && j+1 < len(b) {
					j++
				}
				j++
			}
			if j < len(b) {
				j++
			}
			out.WriteString(b[i:j])
			i = j

		case c == '`':
			j := strings.IndexByte(b[i+1:], '`')
			if j < 0 {
				out.WriteString(b[i:])
				return out.String()
			}
			out.WriteString(b[i : i+j+2])
			i += j + 2

		case c == ';':
			j := i
			for j < len(b) && b[j] == ';' {
				j++
			}
			end := strings.IndexByte(b[j:], '\n')
			if end < 0 {
				end = len(b) - j
			}
			out.WriteString("//")
			out.WriteString(b[j : j+end])
			i = j + end

		case c == ':' && i+1 < len(b) && b[i+1] == '=':
			out.WriteString(":=")
			i += 2

		case c == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out.WriteByte('"')
			out.WriteString(kwPrefix)
			out.WriteString(b[i+1 : j])
			out.WriteByte('"')
			i = j

		case c == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			out.WriteByte('_')
			i++

		default:
			out.WriteByte(c)
			i++
		}
	}
	return out.String()
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
