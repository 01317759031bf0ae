// internal/session/types.go
//
// Core type definitions for a solving session.
// Defines:
//   - State: active → solved | exhausted.
//   - Turn: one guess played and the feedback observed for it.
//   - Guesser: the guess optimizer a session asks for its next guess.

package session

import (
	"context"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// State is the coarse lifecycle of a session.
type State string

const (
	// Active sessions have a guess to play and wait for its feedback.
	Active State = "active"
	// Solved sessions narrowed the candidates to exactly one word.
	Solved State = "solved"
	// Exhausted sessions have no word left that fits the feedback.
	Exhausted State = "exhausted"
)

// Terminal reports whether no further feedback is accepted in state s.
func (s State) Terminal() bool { return s == Solved || s == Exhausted }

// Turn is one round of play.
type Turn struct {
	Guess     words.Word
	Code      feedback.Code
	Remaining int // candidates left after applying Code
}

// Guesser chooses the next guess for a candidate set.
// *solver.Optimizer implements it.
type Guesser interface {
	BestGuess(ctx context.Context, candidates, vocabulary []words.Word) (words.Word, int, error)
}
