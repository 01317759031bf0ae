// internal/feedback/classify.go
//
// Feedback classification for a (guess, answer) pair.
//
// Classify implements the game's two-pass scoring:
//
// Pass 1:
//   - Mark exact matches as Hit.
//   - Count remaining (non-hit) answer letters by letter index.
//
// Pass 2:
//   - For each non-hit guess letter, left to right: if the count for that
//     letter is positive, mark Present and decrement; otherwise Miss.
//
// Exact matches therefore consume repeated letters before any Present is
// handed out, and a guess never gets more Present/Hit marks for a letter
// than the answer contains.

package feedback

import "github.com/robalobadob/wordle/apps/solver/internal/words"

// Classify returns the feedback code the game would show for guess when the
// answer is answer.
func Classify(guess, answer words.Word) Code {
	var digits [words.Len]int

	// Letter frequency for the non-hit positions (a–z).
	var counts [26]int

	for i := 0; i < words.Len; i++ {
		if guess[i] == answer[i] {
			digits[i] = Hit
		} else {
			counts[idx(answer[i])]++
		}
	}

	for i := 0; i < words.Len; i++ {
		if digits[i] == Hit {
			continue
		}
		if j := idx(guess[i]); counts[j] > 0 {
			digits[i] = Present
			counts[j]--
		}
	}

	return compose(digits)
}

// compose packs digits into a Code, first position most significant.
func compose(digits [words.Len]int) Code {
	var c Code
	for _, d := range digits {
		c = c*3 + Code(d)
	}
	return c
}

// idx maps a lowercase ASCII letter to 0..25.
// Words are validated to a–z when parsed.
func idx(b byte) int { return int(b - 'a') }
