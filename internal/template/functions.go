package template

import (
	"strconv"
	"text/template"

	"github.com/frherrer/fragmentgen/internal/literal"
)

// CustomFuncMap returns the custom template functions available in templates.
func CustomFuncMap() template.FuncMap {
	return template.FuncMap{
		// quote renders s as a Go string literal.
		"quote": strconv.Quote,
		// literal renders pre-quoted line tokens as one Go string expression.
		"literal": func(tokens []string) string {
			return literal.Expr(tokens, "\t\t")
		},
	}
}
