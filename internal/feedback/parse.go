package feedback

import (
	"errors"
	"fmt"
	"strings"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrMalformed is returned (wrapped) for feedback that is not a legal code.
var ErrMalformed = errors.New("malformed feedback")

// Feedback notation, one character per position.
const (
	SymbolHit     = '+'
	SymbolPresent = '-'
	SymbolMiss    = '.'
)

var digitSymbols = [3]byte{SymbolMiss, SymbolPresent, SymbolHit}

// Parse reads feedback typed by the user: exactly words.Len characters from
// "+-." in position order. Only a trailing line terminator is stripped;
// any other character, spaces included, fails.
func Parse(line string) (Code, error) {
	s := strings.TrimRight(line, "\r\n")
	if len(s) != words.Len {
		return 0, fmt.Errorf("%w: %q has %d characters, want %d", ErrMalformed, line, len(s), words.Len)
	}
	var digits [words.Len]int
	for i := 0; i < words.Len; i++ {
		switch s[i] {
		case SymbolHit:
			digits[i] = Hit
		case SymbolPresent:
			digits[i] = Present
		case SymbolMiss:
			digits[i] = Miss
		default:
			return 0, fmt.Errorf("%w: invalid character %q at position %d", ErrMalformed, s[i], i+1)
		}
	}
	return compose(digits), nil
}

// FromDigits builds a code from per-position digits (0 miss, 1 present,
// 2 hit), as sent by API clients.
func FromDigits(d []int) (Code, error) {
	if len(d) != words.Len {
		return 0, fmt.Errorf("%w: %d marks, want %d", ErrMalformed, len(d), words.Len)
	}
	var digits [words.Len]int
	for i, v := range d {
		if v < Miss || v > Hit {
			return 0, fmt.Errorf("%w: mark %d at position %d", ErrMalformed, v, i+1)
		}
		digits[i] = v
	}
	return compose(digits), nil
}

// String renders c in "+-." notation.
func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Code(%d)", int(c))
	}
	var b [words.Len]byte
	for i, v := range c.Digits() {
		b[i] = digitSymbols[v]
	}
	return string(b[:])
}
