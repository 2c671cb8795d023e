package asm

import (
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/rvkit/rvasm/isa"
)

// evaluator binds a symbol table into an operand-expression evaluator.
// Plain integer literals (decimal, 0x, 0o, 0b) take the strconv fast path
// and bare identifiers resolve straight from the table; compound
// arithmetic runs as a Starlark expression with every symbol predeclared
// as an integer.
func evaluator(symbols *SymbolTable) isa.Evaluator {
	var env starlark.StringDict // built lazily; the table is final by pass 3

	return func(expr string) (int64, error) {
		expr = strings.TrimSpace(expr)

		if value, err := strconv.ParseInt(expr, 0, 64); err == nil {
			return value, nil
		}

		if identRe.MatchString(expr) {
			addr, ok := symbols.Lookup(expr)
			if !ok {
				return 0, ErrSymbolUndefined(expr)
			}
			return int64(addr), nil
		}

		if env == nil {
			env = make(starlark.StringDict, symbols.Len())
			for name, addr := range symbols.All() {
				env[name] = starlark.MakeInt64(int64(addr))
			}
		}

		value, err := starlarkEval(expr, env)
		if err != nil {
			return 0, &ErrExpression{Expr: expr, Err: err}
		}

		return value, nil
	}
}

// starlarkEval evaluates one integer expression. '/' is rewritten to
// Starlark's integer '//' first; the operand grammar has no other use for
// a slash. Malformed arithmetic, unbalanced parentheses, undefined
// symbols and division by zero all surface as Starlark errors.
func starlarkEval(expr string, env starlark.StringDict) (int64, error) {
	expr = strings.ReplaceAll(expr, "/", "//")

	thread := &starlark.Thread{}
	opts := &syntax.FileOptions{}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(opts, thread, "operand", prog, env)
	if err != nil {
		return 0, err
	}

	rc, ok := dict["rc"]
	if !ok {
		return 0, ErrNotInteger
	}
	value, ok := rc.(starlark.Int)
	if !ok {
		return 0, ErrNotInteger
	}
	out, ok := value.Int64()
	if !ok {
		return 0, ErrNotInteger
	}

	return out, nil
}
