package asm

import (
	"strings"

	"github.com/rvkit/rvasm/isa"
)

// tokenize splits one raw source line into tokens: whitespace and commas
// separate, '#' starts a comment, a balanced double-quoted string is one
// token, and a ':' ends its token so glued labels ("end:nop") split apart.
// Blank and comment-only lines yield an empty token list.
func tokenize(line string) (isa.LineTokens, error) {
	var tokens isa.LineTokens
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for n := 0; n < len(line); {
		switch c := line[n]; {
		case c == '#':
			n = len(line)
		case c == '"':
			closing := strings.IndexByte(line[n+1:], '"')
			if closing < 0 {
				return nil, ErrStringUnterminated
			}
			current.WriteString(line[n : n+closing+2])
			n += closing + 2
		case c == ' ' || c == '\t' || c == ',':
			flush()
			n++
		case c == ':':
			current.WriteByte(':')
			flush()
			n++
		default:
			current.WriteByte(c)
			n++
		}
	}
	flush()

	return mergeParens(tokens), nil
}

// mergeParens joins runs of tokens whose parentheses do not balance, so a
// parenthesized expression with internal spacing ("(123 + (4* 3))(x10)")
// stays a single operand token. Quoted strings never merge.
func mergeParens(tokens isa.LineTokens) isa.LineTokens {
	var out isa.LineTokens
	depth := 0
	for _, token := range tokens {
		if depth > 0 {
			out[len(out)-1] += token
		} else {
			out = append(out, token)
		}
		if token[0] != '"' {
			depth += strings.Count(token, "(") - strings.Count(token, ")")
			if depth < 0 {
				depth = 0
			}
		}
	}
	return out
}
