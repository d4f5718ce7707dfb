package parser

import (
	"fmt"
	"go/ast"
	"strings"
)

// typeString renders a type expression the way it is written in source, so
// that two parameters of the same declared type produce identical keys.
func typeString(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		return typeString(t.X) + "." + t.Sel.Name
	case *ast.StarExpr:
		return "*" + typeString(t.X)
	case *ast.ArrayType:
		if t.Len != nil {
			return fmt.Sprintf("[%s]%s", exprText(t.Len), typeString(t.Elt))
		}
		return "[]" + typeString(t.Elt)
	case *ast.MapType:
		return fmt.Sprintf("map[%s]%s", typeString(t.Key), typeString(t.Value))
	case *ast.ChanType:
		switch t.Dir {
		case ast.RECV:
			return "<-chan " + typeString(t.Value)
		case ast.SEND:
			return "chan<- " + typeString(t.Value)
		default:
			return "chan " + typeString(t.Value)
		}
	case *ast.Ellipsis:
		return "..." + typeString(t.Elt)
	case *ast.FuncType:
		return funcTypeString(t)
	case *ast.InterfaceType:
		if len(t.Methods.List) == 0 {
			return "interface{}"
		}
		return "interface{...}"
	case *ast.StructType:
		if len(t.Fields.List) == 0 {
			return "struct{}"
		}
		return "struct{...}"
	case *ast.IndexExpr:
		return typeString(t.X) + "[" + typeString(t.Index) + "]"
	case *ast.IndexListExpr:
		args := make([]string, len(t.Indices))
		for i, index := range t.Indices {
			args[i] = typeString(index)
		}
		return typeString(t.X) + "[" + strings.Join(args, ", ") + "]"
	case *ast.ParenExpr:
		return "(" + typeString(t.X) + ")"
	default:
		return exprText(expr)
	}
}

// funcTypeString renders a function type parameter
func funcTypeString(t *ast.FuncType) string {
	var builder strings.Builder
	builder.WriteString("func(")
	if t.Params != nil {
		var params []string
		for _, field := range t.Params.List {
			typeText := typeString(field.Type)
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				params = append(params, typeText)
			}
		}
		builder.WriteString(strings.Join(params, ", "))
	}
	builder.WriteString(")")
	if t.Results != nil && len(t.Results.List) > 0 {
		var results []string
		for _, field := range t.Results.List {
			typeText := typeString(field.Type)
			count := len(field.Names)
			if count == 0 {
				count = 1
			}
			for i := 0; i < count; i++ {
				results = append(results, typeText)
			}
		}
		if len(results) == 1 {
			builder.WriteString(" " + results[0])
		} else {
			builder.WriteString(" (" + strings.Join(results, ", ") + ")")
		}
	}
	return builder.String()
}

// exprText is the fallback rendering for expressions with no structural case
func exprText(expr ast.Expr) string {
	if lit, ok := expr.(*ast.BasicLit); ok {
		return lit.Value
	}
	if ident, ok := expr.(*ast.Ident); ok {
		return ident.Name
	}
	return fmt.Sprintf("%T", expr)
}
