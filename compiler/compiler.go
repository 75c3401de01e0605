// Package compiler orchestrates the lexer, parser, symbol table and
// code generator across the statement loop: read one statement, emit
// its instructions, repeat, and flush the three reserved variables to
// registers on end-of-file.
package compiler

import (
	"bufio"
	"fmt"
	"io"

	"github.com/skx/regc/codegen"
	"github.com/skx/regc/config"
	"github.com/skx/regc/instructions"
	"github.com/skx/regc/lexer"
	"github.com/skx/regc/parser"
	"github.com/skx/regc/symtab"
)

// Compiler drives one run of the statement loop against a persistent
// symbol table.
type Compiler struct {
	syms      *symtab.Table
	gen       *codegen.Generator
	maxLexeme int
	debug     func(format string, args ...interface{})
}

// New builds a Compiler whose symbol table capacity, slot width and
// lexeme bound are all taken from cfg.
func New(cfg *config.Config) *Compiler {
	syms := symtab.NewWithCapacityAndSlotWidth(cfg.Compiler.SymbolCapacity, cfg.Compiler.SlotWidth)
	return &Compiler{
		syms:      syms,
		gen:       codegen.New(syms),
		maxLexeme: cfg.Compiler.MaxLexeme,
	}
}

// SetDebugLog installs a callback invoked with diagnostic lines. It
// is never required for correct operation - when nil, diagnostics
// are simply discarded. The callback is the only place this package
// touches anything other than its w argument in Run, keeping stdout
// free of anything but the instruction stream.
func (c *Compiler) SetDebugLog(fn func(format string, args ...interface{})) {
	c.debug = fn
}

func (c *Compiler) logf(format string, args ...interface{}) {
	if c.debug != nil {
		c.debug(format, args...)
	}
}

// Run reads statements from r until end-of-file or a fatal error,
// writing the emitted instruction stream to w. It returns the fatal
// error, if any, after having already written the terminal "EXIT 1"
// line; callers only need to translate a non-nil return into however
// they report failure (the OS exit status is not otherwise part of
// the contract).
func (c *Compiler) Run(r io.Reader, w io.Writer) error {
	out := bufio.NewWriter(w)
	defer out.Flush()

	lex := lexer.NewWithLimit(r, c.maxLexeme)
	p := parser.New(lex)

	for {
		tree, atEOF, err := p.Statement()
		if err != nil {
			c.logf("parse error: %s", err)
			fmt.Fprintln(out, instructions.Exit(1).String())
			return err
		}
		if atEOF {
			break
		}
		if tree == nil {
			// blank line: no-op
			continue
		}

		c.logf("statement: %s", tree.Prefix())

		instrs, err := c.gen.Emit(tree)
		if err != nil {
			c.logf("codegen error: %s", err)
			fmt.Fprintln(out, instructions.Exit(1).String())
			return err
		}
		for _, ins := range instrs {
			fmt.Fprintln(out, ins.String())
		}
	}

	for _, ins := range c.epilogue() {
		fmt.Fprintln(out, ins.String())
	}
	return nil
}

// epilogue is the fixed four-line sequence emitted on clean
// termination: the reserved variables x, y, z flushed to r0..r2,
// followed by the success sentinel.
func (c *Compiler) epilogue() []instructions.Instruction {
	out := make([]instructions.Instruction, 0, 4)
	for reg, name := range []string{"x", "y", "z"} {
		// x, y, z are pre-seeded in every table, so this cannot miss.
		addr, _ := c.syms.Address(name)
		out = append(out, instructions.MovLoad(reg, addr))
	}
	return append(out, instructions.Exit(0))
}
