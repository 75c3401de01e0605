package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skx/regc/ast"
	"github.com/skx/regc/compileerr"
	"github.com/skx/regc/symtab"
	"github.com/skx/regc/token"
)

func render(t *testing.T, syms *symtab.Table, tree *ast.Node) []string {
	t.Helper()
	g := New(syms)
	instrs, err := g.Emit(tree)
	require.NoError(t, err)

	out := make([]string, len(instrs))
	for i, ins := range instrs {
		out[i] = ins.String()
	}
	return out
}

func TestAssignLiteral(t *testing.T) {
	// y = 2
	tree := ast.NewBinary(token.ASSIGN, "=", ast.NewLeaf(token.ID, "y"), ast.NewLeaf(token.INT, "2"))

	syms := symtab.New()
	got := render(t, syms, tree)
	assert.Equal(t, []string{"MOV r0 2", "MOV [4] r0"}, got)

	v, err := syms.GetValue("y")
	require.NoError(t, err)
	assert.Equal(t, int32(2), v)
}

func TestAssignExpression(t *testing.T) {
	// x = 3 * y + 1, with y already 2
	syms := symtab.New()
	_, err := syms.SetValue("y", 2)
	require.NoError(t, err)

	mul := ast.NewBinary(token.MULDIV, "*", ast.NewLeaf(token.INT, "3"), ast.NewLeaf(token.ID, "y"))
	add := ast.NewBinary(token.ADDSUB, "+", mul, ast.NewLeaf(token.INT, "1"))
	tree := ast.NewBinary(token.ASSIGN, "=", ast.NewLeaf(token.ID, "x"), add)

	got := render(t, syms, tree)
	want := []string{
		"MOV r0 3",
		"MOV r1 [4]",
		"MUL r0 r1",
		"MOV r1 1",
		"ADD r0 r1",
		"MOV [0] r0",
	}
	assert.Equal(t, want, got)

	v, err := syms.GetValue("x")
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

func TestIncrement(t *testing.T) {
	syms := symtab.New()
	tree := ast.NewUnary(token.INCDEC, "++", ast.NewLeaf(token.ID, "x"))

	got := render(t, syms, tree)
	want := []string{"MOV r0 [0]", "MOV r1 1", "ADD r0 r1", "MOV [0] r0"}
	assert.Equal(t, want, got)

	v, err := syms.GetValue("x")
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)
}

func TestDecrement(t *testing.T) {
	syms := symtab.New()
	_, err := syms.SetValue("x", 5)
	require.NoError(t, err)

	tree := ast.NewUnary(token.INCDEC, "--", ast.NewLeaf(token.ID, "x"))
	got := render(t, syms, tree)
	assert.Equal(t, []string{"MOV r0 [0]", "MOV r1 1", "SUB r0 r1", "MOV [0] r0"}, got)

	v, err := syms.GetValue("x")
	require.NoError(t, err)
	assert.Equal(t, int32(4), v)
}

func TestAddAssign(t *testing.T) {
	syms := symtab.New()

	tree := ast.NewBinary(token.ADDSUB_ASSIGN, "+=", ast.NewLeaf(token.ID, "z"), ast.NewLeaf(token.INT, "8"))
	got := render(t, syms, tree)
	want := []string{
		"MOV r0 8",
		"MOV r1 [8]",
		"ADD r1 r0",
		"MOV [8] r1",
		"MOV r0 r1",
	}
	assert.Equal(t, want, got)

	v, err := syms.GetValue("z")
	require.NoError(t, err)
	assert.Equal(t, int32(8), v)
}

func TestSubAssign(t *testing.T) {
	syms := symtab.New()
	_, err := syms.SetValue("z", 10)
	require.NoError(t, err)

	tree := ast.NewBinary(token.ADDSUB_ASSIGN, "-=", ast.NewLeaf(token.ID, "z"), ast.NewLeaf(token.INT, "3"))
	got := render(t, syms, tree)
	assert.Equal(t, []string{
		"MOV r0 3",
		"MOV r1 [8]",
		"SUB r1 r0",
		"MOV [8] r1",
		"MOV r0 r1",
	}, got)

	v, err := syms.GetValue("z")
	require.NoError(t, err)
	assert.Equal(t, int32(7), v)
}

func TestDivideByConstantZero(t *testing.T) {
	syms := symtab.New()
	tree := ast.NewBinary(token.MULDIV, "/", ast.NewLeaf(token.INT, "1"), ast.NewLeaf(token.INT, "0"))

	g := New(syms)
	_, err := g.Emit(tree)
	require.Error(t, err)

	cerr, ok := err.(*compileerr.Error)
	require.True(t, ok)
	assert.Equal(t, compileerr.DivideByZero, cerr.Kind)
}

func TestDivideByIdentifierHoldingZeroIsNotFatal(t *testing.T) {
	syms := symtab.New()
	_, err := syms.SetValue("x", 0)
	require.NoError(t, err)

	tree := ast.NewBinary(token.MULDIV, "/", ast.NewLeaf(token.INT, "1"), ast.NewLeaf(token.ID, "x"))

	got := render(t, syms, tree)
	assert.Equal(t, []string{"MOV r0 1", "MOV r1 [0]", "DIV r0 r1"}, got)
}

func TestDivideByNonZeroLiteral(t *testing.T) {
	syms := symtab.New()
	tree := ast.NewBinary(token.MULDIV, "/", ast.NewLeaf(token.INT, "10"), ast.NewLeaf(token.INT, "2"))

	got := render(t, syms, tree)
	assert.Equal(t, []string{"MOV r0 10", "MOV r1 2", "DIV r0 r1"}, got)
}

func TestBitwiseOperators(t *testing.T) {
	syms := symtab.New()

	for _, tt := range []struct {
		kind token.Kind
		lex  string
		op   string
	}{
		{token.AND, "&", "AND"},
		{token.OR, "|", "OR"},
		{token.XOR, "^", "XOR"},
	} {
		tree := ast.NewBinary(tt.kind, tt.lex, ast.NewLeaf(token.INT, "6"), ast.NewLeaf(token.INT, "3"))
		got := render(t, syms, tree)
		assert.Equal(t, []string{"MOV r0 6", "MOV r1 3", tt.op + " r0 r1"}, got)
	}
}

func TestUndefinedReadIsFatal(t *testing.T) {
	syms := symtab.New()
	tree := ast.NewLeaf(token.ID, "q")

	g := New(syms)
	_, err := g.Emit(tree)
	require.Error(t, err)

	cerr, ok := err.(*compileerr.Error)
	require.True(t, ok)
	assert.Equal(t, compileerr.NotFound, cerr.Kind)
}

func TestRegisterStackResetsPerStatement(t *testing.T) {
	syms := symtab.New()
	g := New(syms)

	first, err := g.Emit(ast.NewBinary(token.ASSIGN, "=", ast.NewLeaf(token.ID, "x"), ast.NewLeaf(token.INT, "1")))
	require.NoError(t, err)
	assert.Equal(t, "MOV r0 1", first[0].String())

	second, err := g.Emit(ast.NewBinary(token.ASSIGN, "=", ast.NewLeaf(token.ID, "y"), ast.NewLeaf(token.INT, "2")))
	require.NoError(t, err)
	assert.Equal(t, "MOV r0 2", second[0].String())
}

func TestParenthesesDoNotAffectGeneratedRegisters(t *testing.T) {
	// (x) = 1 behaves exactly like x = 1: the tree shape is
	// identical once the parser has stripped parentheses.
	syms := symtab.New()
	plain := render(t, symtab.New(), ast.NewBinary(token.ASSIGN, "=", ast.NewLeaf(token.ID, "x"), ast.NewLeaf(token.INT, "1")))
	parenthesised := render(t, syms, ast.NewBinary(token.ASSIGN, "=", ast.NewLeaf(token.ID, "x"), ast.NewLeaf(token.INT, "1")))
	assert.Equal(t, plain, parenthesised)
}
