// internal/words/words.go
//
// Fixed-length word values shared by every solver component.
//
// Responsibilities:
//   - Word: a five-letter lowercase word stored by value ([Len]byte).
//   - Parse/MustParse: text → Word, rejecting anything that is not exactly
//     Len lowercase ASCII letters.
//   - String: Word → text (always lossless).
//
// Words are plain arrays so they can be compared with ==, used as map keys,
// and copied without allocation.

package words

import (
	"errors"
	"fmt"
	"strings"
)

// Len is the number of letters in every word.
const Len = 5

// ErrInvalidWord is returned (wrapped) when text is not a valid word.
var ErrInvalidWord = errors.New("invalid word")

// Word is an ordered sequence of exactly Len lowercase letters.
type Word [Len]byte

// Parse converts text into a Word. Only a trailing line terminator is
// stripped; the rest must be exactly Len letters a–z.
func Parse(text string) (Word, error) {
	var w Word
	s := strings.TrimRight(text, "\r\n")
	if len(s) != Len {
		return w, fmt.Errorf("%w: %q has %d letters, want %d", ErrInvalidWord, text, len(s), Len)
	}
	for i := 0; i < Len; i++ {
		c := s[i]
		if c < 'a' || c > 'z' {
			return w, fmt.Errorf("%w: %q contains %q", ErrInvalidWord, text, c)
		}
		w[i] = c
	}
	return w, nil
}

// MustParse is Parse for known-good constants; it panics on invalid input.
func MustParse(text string) Word {
	w, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return w
}

// String returns the word as lowercase text.
func (w Word) String() string { return string(w[:]) }

// Contains reports whether w appears in list.
func Contains(list []Word, w Word) bool {
	for _, x := range list {
		if x == w {
			return true
		}
	}
	return false
}

// Distinct reports whether no word appears twice in list.
func Distinct(list []Word) bool {
	seen := make(map[Word]struct{}, len(list))
	for _, w := range list {
		if _, ok := seen[w]; ok {
			return false
		}
		seen[w] = struct{}{}
	}
	return true
}

// Strings renders a list of words as text, preserving order.
func Strings(list []Word) []string {
	out := make([]string, len(list))
	for i, w := range list {
		out[i] = w.String()
	}
	return out
}
