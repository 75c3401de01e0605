package compileerr

import "testing"

func TestErrorMessage(t *testing.T) {
	err := New(NotFound, "identifier %q", "q")
	if err.Error() != `not-found: identifier "q"` {
		t.Errorf("unexpected message: %s", err.Error())
	}
}

func TestKindStrings(t *testing.T) {
	tests := map[Kind]string{
		MismatchedParen:           "mismatched-parenthesis",
		ExpectedNumberOrIdentifier: "expected-number-or-identifier",
		NotFound:                  "not-found",
		OutOfMemory:               "out-of-memory",
		NotLValue:                 "not-lvalue",
		DivideByZero:              "divide-by-zero",
		SyntaxError:               "syntax-error",
	}
	for k, want := range tests {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
