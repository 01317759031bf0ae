package solver

import (
	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Groups holds, for one guess, the candidates that produce each feedback code.
// Every code has a slot; most are empty.
type Groups [feedback.NumCodes][]words.Word

// Counts holds, for one guess, how many candidates produce each feedback code.
type Counts [feedback.NumCodes]int

// Partition buckets candidates by the code they would produce against guess.
// Relative order of candidates is preserved inside each bucket.
func Partition(candidates []words.Word, guess words.Word) Groups {
	var g Groups
	for _, answer := range candidates {
		c := feedback.Classify(guess, answer)
		g[c] = append(g[c], answer)
	}
	return g
}

// Count is Partition without building the buckets.
func Count(candidates []words.Word, guess words.Word) Counts {
	var n Counts
	for _, answer := range candidates {
		n[feedback.Classify(guess, answer)]++
	}
	return n
}

// Max returns the size of the largest bucket.
func (n *Counts) Max() int {
	m := 0
	for _, v := range n {
		if v > m {
			m = v
		}
	}
	return m
}
