// Package parser implements the recursive-descent parser for the
// register-machine expression language. Each grammar non-terminal is
// one method; operator precedence is encoded purely by call depth,
// with no explicit precedence table.
package parser

import (
	"github.com/skx/regc/ast"
	"github.com/skx/regc/compileerr"
	"github.com/skx/regc/lexer"
	"github.com/skx/regc/token"
)

// Parser wraps a lexer and builds one syntax tree per call to
// Statement.
type Parser struct {
	lex *lexer.Lexer
}

// New builds a Parser reading tokens from lex.
func New(lex *lexer.Lexer) *Parser {
	return &Parser{lex: lex}
}

// Statement parses one line of input.
//
//   - If the stream is exhausted, atEOF is true and tree is nil.
//   - If the line was blank (a bare END), tree is nil, atEOF is
//     false, and the caller should simply loop again.
//   - Otherwise tree holds the parsed expression and the trailing
//     END has already been consumed.
//
// Parse errors are fatal; there is no resynchronization.
func (p *Parser) Statement() (tree *ast.Node, atEOF bool, err error) {
	if p.lex.Match(token.ENDFILE) {
		return nil, true, nil
	}
	if p.lex.Match(token.END) {
		p.lex.Advance()
		return nil, false, nil
	}

	tree, err = p.assignExpr()
	if err != nil {
		return nil, false, err
	}

	if !p.lex.Match(token.END) {
		return nil, false, compileerr.New(compileerr.SyntaxError,
			"unexpected trailing token %q", p.lex.Lexeme())
	}
	p.lex.Advance()
	return tree, false, nil
}

// assign_expr := or_expr (ASSIGN assign_expr | ADDSUB_ASSIGN assign_expr)?
//
// The left-hand-side check happens on the root of the just-parsed
// or_expr, after any enclosing parentheses have already been
// unwrapped by factor() - so "(x) = 1" is accepted: parentheses are
// transparent to assignability.
func (p *Parser) assignExpr() (*ast.Node, error) {
	left, err := p.orExpr()
	if err != nil {
		return nil, err
	}

	if left.Kind == token.ID && (p.lex.Match(token.ASSIGN) || p.lex.Match(token.ADDSUB_ASSIGN)) {
		kind := p.lex.Kind()
		lexeme := p.lex.Lexeme()
		p.lex.Advance()

		right, err := p.assignExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(kind, lexeme, left, right), nil
	}
	return left, nil
}

// or_expr := xor_expr ('|' xor_expr)*
func (p *Parser) orExpr() (*ast.Node, error) {
	left, err := p.xorExpr()
	if err != nil {
		return nil, err
	}
	for p.lex.Match(token.OR) {
		lexeme := p.lex.Lexeme()
		p.lex.Advance()
		right, err := p.xorExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(token.OR, lexeme, left, right)
	}
	return left, nil
}

// xor_expr := and_expr ('^' and_expr)*
func (p *Parser) xorExpr() (*ast.Node, error) {
	left, err := p.andExpr()
	if err != nil {
		return nil, err
	}
	for p.lex.Match(token.XOR) {
		lexeme := p.lex.Lexeme()
		p.lex.Advance()
		right, err := p.andExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(token.XOR, lexeme, left, right)
	}
	return left, nil
}

// and_expr := addsub_expr ('&' addsub_expr)*
func (p *Parser) andExpr() (*ast.Node, error) {
	left, err := p.addsubExpr()
	if err != nil {
		return nil, err
	}
	for p.lex.Match(token.AND) {
		lexeme := p.lex.Lexeme()
		p.lex.Advance()
		right, err := p.addsubExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(token.AND, lexeme, left, right)
	}
	return left, nil
}

// addsub_expr := muldiv_expr (('+'|'-') muldiv_expr)*
func (p *Parser) addsubExpr() (*ast.Node, error) {
	left, err := p.muldivExpr()
	if err != nil {
		return nil, err
	}
	for p.lex.Match(token.ADDSUB) {
		lexeme := p.lex.Lexeme()
		p.lex.Advance()
		right, err := p.muldivExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(token.ADDSUB, lexeme, left, right)
	}
	return left, nil
}

// muldiv_expr := unary_expr (('*'|'/') unary_expr)*
func (p *Parser) muldivExpr() (*ast.Node, error) {
	left, err := p.unaryExpr()
	if err != nil {
		return nil, err
	}
	for p.lex.Match(token.MULDIV) {
		lexeme := p.lex.Lexeme()
		p.lex.Advance()
		right, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		left = ast.NewBinary(token.MULDIV, lexeme, left, right)
	}
	return left, nil
}

// unary_expr := ('+'|'-') unary_expr | factor
//
// A leading +/- is desugared into an ADDSUB node with a synthetic
// INT "0" on the left, so "-x" parses exactly like "0-x".
func (p *Parser) unaryExpr() (*ast.Node, error) {
	if p.lex.Match(token.ADDSUB) {
		lexeme := p.lex.Lexeme()
		p.lex.Advance()
		operand, err := p.unaryExpr()
		if err != nil {
			return nil, err
		}
		return ast.NewBinary(token.ADDSUB, lexeme, ast.ZeroLiteral(), operand), nil
	}
	return p.factor()
}

// factor := INT | ID | INCDEC ID | '(' assign_expr ')'
//
// "++"/"--" are prefix-only and apply only to a bare identifier;
// "++3", "++(x)" and a standalone "++" are all syntax errors.
func (p *Parser) factor() (*ast.Node, error) {
	switch {
	case p.lex.Match(token.INT):
		lexeme := p.lex.Lexeme()
		p.lex.Advance()
		return ast.NewLeaf(token.INT, lexeme), nil

	case p.lex.Match(token.ID):
		lexeme := p.lex.Lexeme()
		p.lex.Advance()
		return ast.NewLeaf(token.ID, lexeme), nil

	case p.lex.Match(token.INCDEC):
		opLexeme := p.lex.Lexeme()
		p.lex.Advance()
		if !p.lex.Match(token.ID) {
			return nil, compileerr.New(compileerr.SyntaxError,
				"%q must be followed by an identifier", opLexeme)
		}
		idLexeme := p.lex.Lexeme()
		p.lex.Advance()
		return ast.NewUnary(token.INCDEC, opLexeme, ast.NewLeaf(token.ID, idLexeme)), nil

	case p.lex.Match(token.LPAREN):
		p.lex.Advance()
		inner, err := p.assignExpr()
		if err != nil {
			return nil, err
		}
		if !p.lex.Match(token.RPAREN) {
			return nil, compileerr.New(compileerr.MismatchedParen, "")
		}
		p.lex.Advance()
		return inner, nil

	default:
		return nil, compileerr.New(compileerr.ExpectedNumberOrIdentifier,
			"found %q", p.lex.Lexeme())
	}
}
