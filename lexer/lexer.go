// Package lexer implements the hand-written scanner for the
// register-machine expression language.
//
// The scanner reads one byte at a time from the underlying
// io.Reader and needs exactly one byte of pushback to disambiguate
// the multi-character operators ("++", "--", "+=", "-="). A
// bufio.Reader already gives us that: ReadByte/UnreadByte can only
// undo the single most recent read, which is precisely the amount
// of lookahead the grammar requires.
package lexer

import (
	"bufio"
	"io"

	"github.com/skx/regc/token"
)

// Lexer holds the scanner state for a single input stream. One
// Lexer is normally used for the whole run of the program, since
// statements are separated only by END tokens within the stream.
type Lexer struct {
	in  *bufio.Reader
	cur token.Token

	// primed is true once cur holds a token that hasn't been
	// consumed by Advance yet.
	primed bool

	// maxLexeme bounds how many bytes of a run of digits/letters
	// we retain; the rest of the run is still consumed from the
	// stream and dropped (mirrors a fixed-size lexeme buffer).
	maxLexeme int
}

// New builds a Lexer reading from r, using the default lexeme-length
// bound (token.MaxLexeme).
func New(r io.Reader) *Lexer {
	return NewWithLimit(r, token.MaxLexeme)
}

// NewWithLimit builds a Lexer with a caller-supplied maximum lexeme
// length, so callers (e.g. the config package) can raise or lower
// the default bound.
func NewWithLimit(r io.Reader, maxLexeme int) *Lexer {
	return &Lexer{in: bufio.NewReader(r), maxLexeme: maxLexeme}
}

// Advance discards the current token (if any) and reads the next
// one from the stream.
func (l *Lexer) Advance() {
	l.cur = l.scan()
	l.primed = true
}

// prime ensures a current token exists, lazily scanning the first
// one on first use.
func (l *Lexer) prime() {
	if !l.primed {
		l.Advance()
	}
}

// Match reports whether the current token has the given Kind,
// priming the scanner on first call.
func (l *Lexer) Match(k token.Kind) bool {
	l.prime()
	return l.cur.Kind == k
}

// Kind returns the current token's Kind, priming the scanner on
// first call.
func (l *Lexer) Kind() token.Kind {
	l.prime()
	return l.cur.Kind
}

// Lexeme returns the current token's literal text, priming the
// scanner on first call.
func (l *Lexer) Lexeme() string {
	l.prime()
	return l.cur.Lexeme
}

// scan reads and returns the next token from the stream, skipping
// leading spaces and tabs (newline is significant, it produces END).
func (l *Lexer) scan() token.Token {
	l.skipBlanks()

	c, err := l.in.ReadByte()
	if err != nil {
		return token.Token{Kind: token.ENDFILE}
	}

	switch {
	case isDigit(c):
		return l.readInt(c)

	case isLetter(c):
		return l.readIdent(c)

	case c == '+':
		return l.readPlusMinus(c)

	case c == '-':
		return l.readPlusMinus(c)

	case c == '*', c == '/':
		return token.Token{Kind: token.MULDIV, Lexeme: string(c)}

	case c == '&':
		return token.Token{Kind: token.AND, Lexeme: string(c)}

	case c == '|':
		return token.Token{Kind: token.OR, Lexeme: string(c)}

	case c == '^':
		return token.Token{Kind: token.XOR, Lexeme: string(c)}

	case c == '=':
		return token.Token{Kind: token.ASSIGN, Lexeme: string(c)}

	case c == '(':
		return token.Token{Kind: token.LPAREN, Lexeme: string(c)}

	case c == ')':
		return token.Token{Kind: token.RPAREN, Lexeme: string(c)}

	case c == '\n':
		return token.Token{Kind: token.END}

	default:
		return token.Token{Kind: token.UNKNOWN, Lexeme: string(c)}
	}
}

// skipBlanks consumes spaces and tabs; it leaves the first
// non-blank byte unread.
func (l *Lexer) skipBlanks() {
	for {
		c, err := l.in.ReadByte()
		if err != nil {
			return
		}
		if c != ' ' && c != '\t' {
			_ = l.in.UnreadByte()
			return
		}
	}
}

// readInt scans a greedy run of digits, the first of which (c) has
// already been consumed.
func (l *Lexer) readInt(c byte) token.Token {
	buf := []byte{c}

	for {
		next, err := l.in.ReadByte()
		if err != nil {
			break
		}
		if !isDigit(next) {
			_ = l.in.UnreadByte()
			break
		}
		if len(buf) < l.maxLexeme {
			buf = append(buf, next)
		}
	}
	return token.Token{Kind: token.INT, Lexeme: string(buf)}
}

// readIdent scans a greedy run of letters, digits and underscores,
// the first of which (c) has already been consumed.
func (l *Lexer) readIdent(c byte) token.Token {
	buf := []byte{c}

	for {
		next, err := l.in.ReadByte()
		if err != nil {
			break
		}
		if !isLetter(next) && !isDigit(next) {
			_ = l.in.UnreadByte()
			break
		}
		if len(buf) < l.maxLexeme {
			buf = append(buf, next)
		}
	}
	return token.Token{Kind: token.ID, Lexeme: string(buf)}
}

// readPlusMinus disambiguates "+"/"-" against their doubled
// (INCDEC) and assignment-compound (ADDSUB_ASSIGN) forms, using
// exactly one byte of pushback.
func (l *Lexer) readPlusMinus(c byte) token.Token {
	next, err := l.in.ReadByte()
	if err != nil {
		return token.Token{Kind: token.ADDSUB, Lexeme: string(c)}
	}

	switch {
	case next == c:
		return token.Token{Kind: token.INCDEC, Lexeme: string([]byte{c, next})}
	case next == '=':
		return token.Token{Kind: token.ADDSUB_ASSIGN, Lexeme: string([]byte{c, next})}
	default:
		_ = l.in.UnreadByte()
		return token.Token{Kind: token.ADDSUB, Lexeme: string(c)}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_'
}
