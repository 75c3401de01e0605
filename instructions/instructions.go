// Package instructions models the textual instruction grammar the
// target three-register machine accepts. The code generator builds
// Instruction values rather than formatting raw strings inline, so
// register-discipline and addressing properties have a value to
// assert against directly instead of re-parsing emitted text.
package instructions

import (
	"fmt"
	"strings"
)

// Op identifies the mnemonic of an Instruction.
type Op string

// The instruction set the target machine accepts.
const (
	MOV  Op = "MOV"
	ADD  Op = "ADD"
	SUB  Op = "SUB"
	MUL  Op = "MUL"
	DIV  Op = "DIV"
	AND  Op = "AND"
	OR   Op = "OR"
	XOR  Op = "XOR"
	EXIT Op = "EXIT"
)

// Instruction is one line of the emitted assembly-like stream.
type Instruction struct {
	Op   Op
	Args []string
}

// String renders the instruction exactly as the target machine
// expects to read it, e.g. "MOV r0 [4]" or "ADD r0 r1".
func (i Instruction) String() string {
	if len(i.Args) == 0 {
		return string(i.Op)
	}
	return string(i.Op) + " " + strings.Join(i.Args, " ")
}

// Reg renders a virtual register index as its textual name, "r{i}".
func Reg(i int) string {
	return fmt.Sprintf("r%d", i)
}

// Addr renders a byte address as its textual memory reference, "[n]".
func Addr(n int) string {
	return fmt.Sprintf("[%d]", n)
}

// MovImmediate loads a literal integer into register reg.
func MovImmediate(reg int, value int32) Instruction {
	return Instruction{Op: MOV, Args: []string{Reg(reg), fmt.Sprintf("%d", value)}}
}

// MovLoad loads the value stored at addr into register reg.
func MovLoad(reg int, addr int) Instruction {
	return Instruction{Op: MOV, Args: []string{Reg(reg), Addr(addr)}}
}

// MovStore stores the value held in register reg into addr.
func MovStore(addr int, reg int) Instruction {
	return Instruction{Op: MOV, Args: []string{Addr(addr), Reg(reg)}}
}

// MovReg copies the value in register src into register dst.
func MovReg(dst, src int) Instruction {
	return Instruction{Op: MOV, Args: []string{Reg(dst), Reg(src)}}
}

// BinOp builds a two-register arithmetic/bitwise instruction,
// "OP r{i} r{j}", computing r{i} <- r{i} OP r{j}.
func BinOp(op Op, i, j int) Instruction {
	return Instruction{Op: op, Args: []string{Reg(i), Reg(j)}}
}

// Exit builds the terminal "EXIT {code}" directive.
func Exit(code int) Instruction {
	return Instruction{Op: EXIT, Args: []string{fmt.Sprintf("%d", code)}}
}
