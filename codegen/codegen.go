// Package codegen implements the evaluator / code generator: a
// single post-order walk of a syntax tree that simultaneously
// computes a compile-time integer value (used only for the
// divide-by-zero rule) and emits instructions for the target
// three-register machine, tracking virtual register allocation via
// a stack.Stack.
package codegen

import (
	"strconv"

	"github.com/skx/regc/ast"
	"github.com/skx/regc/compileerr"
	"github.com/skx/regc/instructions"
	"github.com/skx/regc/stack"
	"github.com/skx/regc/symtab"
	"github.com/skx/regc/token"
)

// Generator walks one syntax tree at a time, against a symbol table
// that persists across statements.
type Generator struct {
	syms *symtab.Table
	regs *stack.Stack
	out  []instructions.Instruction
}

// New builds a Generator that reads and updates syms.
func New(syms *symtab.Table) *Generator {
	return &Generator{syms: syms}
}

// Emit walks tree and returns the instructions generated for it. The
// register stack is reset to empty before every statement: the
// register counter is statement-scoped, not persistent.
func (g *Generator) Emit(tree *ast.Node) ([]instructions.Instruction, error) {
	g.regs = stack.New()
	g.out = nil

	if _, err := g.eval(tree); err != nil {
		return nil, err
	}
	return g.out, nil
}

func (g *Generator) emit(i instructions.Instruction) {
	g.out = append(g.out, i)
}

// eval dispatches on the node's kind and returns its compile-time
// value. That value is exact for constant-foldable subtrees, and
// otherwise used solely to drive the divide-by-zero check further up
// the tree.
func (g *Generator) eval(n *ast.Node) (int32, error) {
	switch n.Kind {
	case token.INT:
		return g.evalInt(n)
	case token.ID:
		return g.evalIdent(n)
	case token.ASSIGN:
		return g.evalAssign(n)
	case token.ADDSUB_ASSIGN:
		return g.evalAddSubAssign(n)
	case token.INCDEC:
		return g.evalIncDec(n)
	case token.ADDSUB, token.MULDIV, token.AND, token.OR, token.XOR:
		return g.evalBinary(n)
	default:
		return 0, compileerr.New(compileerr.SyntaxError, "unexpected node kind %s", n.Kind)
	}
}

func (g *Generator) evalInt(n *ast.Node) (int32, error) {
	v, err := strconv.ParseInt(n.Lexeme, 10, 32)
	if err != nil {
		return 0, compileerr.New(compileerr.SyntaxError, "invalid integer literal %q", n.Lexeme)
	}

	r := g.regs.Depth()
	g.emit(instructions.MovImmediate(r, int32(v)))
	g.regs.Push(r)

	return int32(v), nil
}

func (g *Generator) evalIdent(n *ast.Node) (int32, error) {
	v, err := g.syms.GetValue(n.Lexeme)
	if err != nil {
		return 0, err
	}
	addr, err := g.syms.Address(n.Lexeme)
	if err != nil {
		return 0, err
	}

	r := g.regs.Depth()
	g.emit(instructions.MovLoad(r, addr))
	g.regs.Push(r)

	return v, nil
}

func (g *Generator) evalAssign(n *ast.Node) (int32, error) {
	if n.Left.Kind != token.ID {
		return 0, compileerr.New(compileerr.NotLValue, "%q", n.Left.Lexeme)
	}

	rv, err := g.eval(n.Right)
	if err != nil {
		return 0, err
	}

	valReg, err := g.regs.Peek()
	if err != nil {
		return 0, err
	}

	if _, err := g.syms.SetValue(n.Left.Lexeme, rv); err != nil {
		return 0, err
	}
	addr, err := g.syms.Address(n.Left.Lexeme)
	if err != nil {
		return 0, err
	}

	g.emit(instructions.MovStore(addr, valReg))
	// R is not decremented: the assigned value stays visible in
	// the register it was computed in.
	return rv, nil
}

func (g *Generator) evalAddSubAssign(n *ast.Node) (int32, error) {
	if n.Left.Kind != token.ID {
		return 0, compileerr.New(compileerr.NotLValue, "%q", n.Left.Lexeme)
	}
	name := n.Left.Lexeme

	rv, err := g.eval(n.Right)
	if err != nil {
		return 0, err
	}
	exprReg, err := g.regs.Peek()
	if err != nil {
		return 0, err
	}

	cur, err := g.syms.GetValue(name)
	if err != nil {
		return 0, err
	}
	addr, err := g.syms.Address(name)
	if err != nil {
		return 0, err
	}

	scratch := g.regs.Depth()
	g.regs.Push(scratch)
	g.emit(instructions.MovLoad(scratch, addr))

	var newVal int32
	switch n.Lexeme {
	case "+=":
		newVal = cur + rv
		g.emit(instructions.BinOp(instructions.ADD, scratch, exprReg))
	case "-=":
		newVal = cur - rv
		g.emit(instructions.BinOp(instructions.SUB, scratch, exprReg))
	default:
		return 0, compileerr.New(compileerr.SyntaxError, "unknown compound assignment %q", n.Lexeme)
	}

	if _, err := g.syms.SetValue(name, newVal); err != nil {
		return 0, err
	}
	g.emit(instructions.MovStore(addr, scratch))
	g.emit(instructions.MovReg(exprReg, scratch))

	// Drop the scratch register; the result lives back in
	// exprReg, which is still on the stack from evaluating e.
	if _, err := g.regs.Pop(); err != nil {
		return 0, err
	}

	return newVal, nil
}

func (g *Generator) evalIncDec(n *ast.Node) (int32, error) {
	if n.Right == nil || n.Right.Kind != token.ID {
		return 0, compileerr.New(compileerr.NotLValue, "%q must operate on an identifier", n.Lexeme)
	}
	name := n.Right.Lexeme

	cur, err := g.syms.GetValue(name)
	if err != nil {
		return 0, err
	}
	addr, err := g.syms.Address(name)
	if err != nil {
		return 0, err
	}

	r := g.regs.Depth()
	g.regs.Push(r)
	g.emit(instructions.MovLoad(r, addr))

	scratch := g.regs.Depth()
	g.regs.Push(scratch)
	g.emit(instructions.MovImmediate(scratch, 1))

	var op instructions.Op
	var delta int32
	switch n.Lexeme {
	case "++":
		op, delta = instructions.ADD, 1
	case "--":
		op, delta = instructions.SUB, -1
	default:
		return 0, compileerr.New(compileerr.SyntaxError, "unknown increment/decrement %q", n.Lexeme)
	}
	g.emit(instructions.BinOp(op, r, scratch))

	// The scratch register is freed; its net effect on R is +1
	// (one load for the read, one load for the scratch, one pop
	// for the scratch), even though two registers were briefly
	// live at once. Net delta and peak register pressure are not
	// the same thing.
	if _, err := g.regs.Pop(); err != nil {
		return 0, err
	}

	newVal := cur + delta
	if _, err := g.syms.SetValue(name, newVal); err != nil {
		return 0, err
	}
	g.emit(instructions.MovStore(addr, r))

	return newVal, nil
}

func (g *Generator) evalBinary(n *ast.Node) (int32, error) {
	leftVal, err := g.eval(n.Left)
	if err != nil {
		return 0, err
	}
	rightVal, err := g.eval(n.Right)
	if err != nil {
		return 0, err
	}

	rightReg, err := g.regs.Pop()
	if err != nil {
		return 0, err
	}
	leftReg, err := g.regs.Peek()
	if err != nil {
		return 0, err
	}

	op := binOpFor(n.Lexeme)

	if op == instructions.DIV && rightVal == 0 && !ast.ContainsIdentifier(n.Right) {
		return 0, compileerr.New(compileerr.DivideByZero, "division by constant zero")
	}

	g.emit(instructions.BinOp(op, leftReg, rightReg))

	switch op {
	case instructions.ADD:
		return leftVal + rightVal, nil
	case instructions.SUB:
		return leftVal - rightVal, nil
	case instructions.MUL:
		return leftVal * rightVal, nil
	case instructions.DIV:
		if rightVal == 0 {
			// Deferred to the target machine: an
			// identifier appeared in the divisor, so this
			// value is never used for anything but a
			// further divide-by-zero check, which will
			// itself see an identifier and skip.
			return 0, nil
		}
		return leftVal / rightVal, nil
	case instructions.AND:
		return leftVal & rightVal, nil
	case instructions.OR:
		return leftVal | rightVal, nil
	case instructions.XOR:
		return leftVal ^ rightVal, nil
	default:
		return 0, compileerr.New(compileerr.SyntaxError, "unknown operator %q", n.Lexeme)
	}
}

func binOpFor(lexeme string) instructions.Op {
	switch lexeme {
	case "+":
		return instructions.ADD
	case "-":
		return instructions.SUB
	case "*":
		return instructions.MUL
	case "/":
		return instructions.DIV
	case "&":
		return instructions.AND
	case "|":
		return instructions.OR
	case "^":
		return instructions.XOR
	default:
		return ""
	}
}
