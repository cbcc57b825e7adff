package parser

import (
	"sqwipt/internal/ast"
	"sqwipt/internal/token"
)

// Binding powers. Higher binds tighter; every operator is left-associative.
const (
	precAdditive       = 30 // +
	precMultiplicative = 40 // - * / %
	precPower          = 50 // **
)

// binaryOp maps a token to its operator and precedence.
func binaryOp(tok token.Token) (ast.ExprBinaryOp, int, bool) {
	if tok.Kind != token.Punct {
		return 0, -1, false
	}
	switch tok.Text {
	case "+":
		return ast.ExprBinaryAdd, precAdditive, true
	case "-":
		return ast.ExprBinarySub, precMultiplicative, true
	case "*":
		return ast.ExprBinaryMul, precMultiplicative, true
	case "/":
		return ast.ExprBinaryDiv, precMultiplicative, true
	case "%":
		return ast.ExprBinaryMod, precMultiplicative, true
	case "**":
		return ast.ExprBinaryPow, precPower, true
	}
	return 0, -1, false
}

func unaryOp(tok token.Token) (ast.ExprUnaryOp, bool) {
	if tok.Kind != token.Punct {
		return 0, false
	}
	switch tok.Text {
	case "!":
		return ast.ExprUnaryNot, true
	case "+":
		return ast.ExprUnaryPlus, true
	case "-":
		return ast.ExprUnaryMinus, true
	}
	return 0, false
}
