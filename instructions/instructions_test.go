package instructions

import "testing"

func TestRendering(t *testing.T) {
	tests := []struct {
		in   Instruction
		want string
	}{
		{MovImmediate(0, 3), "MOV r0 3"},
		{MovLoad(1, 4), "MOV r1 [4]"},
		{MovStore(0, 0), "MOV [0] r0"},
		{MovReg(1, 0), "MOV r1 r0"},
		{BinOp(MUL, 0, 1), "MUL r0 r1"},
		{BinOp(ADD, 0, 1), "ADD r0 r1"},
		{Exit(0), "EXIT 0"},
		{Exit(1), "EXIT 1"},
	}

	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
