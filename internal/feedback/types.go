// internal/feedback/types.go
//
// Core type definitions for per-letter feedback.
// Defines:
//   - Code: a whole guess's feedback packed as a base-3 number.
//   - Mark: per-letter result of a guess (hit/present/miss).

package feedback

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// Per-position digits inside a Code.
const (
	Miss    = 0 // letter absent (after accounting for other positions)
	Present = 1 // letter present elsewhere
	Hit     = 2 // letter in the right position
)

// NumCodes is the size of the code space, 3^words.Len.
const NumCodes = 243

// Code is the feedback for a whole guess: one base-3 digit per position,
// first position most significant. Valid codes are in [0, NumCodes).
type Code int

// AllExact is the code of a guess that matches the answer exactly ("+++++").
const AllExact Code = NumCodes - 1

// Mark represents the evaluation result for a single letter in a guess.
// Possible values:
//   - "hit":     letter is correct and in the correct position.
//   - "present": letter exists in the answer but in a different position.
//   - "miss":    letter does not exist in the answer at all.
type Mark string

const (
	MarkHit     Mark = "hit"
	MarkPresent Mark = "present"
	MarkMiss    Mark = "miss"
)

var digitMarks = [3]Mark{MarkMiss, MarkPresent, MarkHit}

// Valid reports whether c is inside the code space.
func (c Code) Valid() bool { return c >= 0 && c < NumCodes }

// Digits unpacks c into one digit per position.
func (c Code) Digits() [words.Len]int {
	var d [words.Len]int
	for i := words.Len - 1; i >= 0; i-- {
		d[i] = int(c % 3)
		c /= 3
	}
	return d
}

// Marks returns the per-letter marks of c.
func (c Code) Marks() []Mark {
	d := c.Digits()
	out := make([]Mark, words.Len)
	for i, v := range d {
		out[i] = digitMarks[v]
	}
	return out
}
