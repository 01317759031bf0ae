// internal/session/session.go
//
// Interactive solving session.
// Responsibilities:
//   - Hold the candidate set and the guess currently on offer.
//   - Apply observed feedback: keep only the candidates that would have
//     produced it, then either terminate or ask the Guesser for a new guess.
//   - Track state transitions: active → solved | exhausted.
//
// Notes:
//   - The candidate set is replaced wholesale each round, never edited.
//   - The opening guess is a constant supplied by the caller; scoring the
//     full vocabulary for it would always give the same answer.
//   - Sessions are safe for concurrent use (the HTTP API shares them).

package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// FixedOpening is the precomputed best first guess for the standard list.
const FixedOpening = "raise"

// ErrFinished is returned when feedback arrives after the session ended.
var ErrFinished = errors.New("session finished")

// ErrDuplicateWords is returned by New when the vocabulary repeats a word.
var ErrDuplicateWords = errors.New("session: vocabulary repeats a word")

// Session is the state of one solve.
type Session struct {
	mu sync.Mutex

	id         string
	vocabulary []words.Word // fixed guess vocabulary
	candidates []words.Word // answers still consistent with all feedback
	guess      words.Word   // guess on offer while Active
	state      State
	round      int
	turns      []Turn
	guesser    Guesser

	startedAt  time.Time
	finishedAt time.Time
}

// New starts a session over vocabulary, which is both the initial candidate
// set and the guess vocabulary, offering opening as the first guess.
func New(vocabulary []words.Word, opening words.Word, g Guesser) (*Session, error) {
	if len(vocabulary) == 0 {
		return nil, words.ErrEmptyVocabulary
	}
	if !words.Distinct(vocabulary) {
		return nil, ErrDuplicateWords
	}
	if g == nil {
		return nil, errors.New("session: nil guesser")
	}
	return &Session{
		id:         randomID(),
		vocabulary: vocabulary,
		candidates: vocabulary,
		guess:      opening,
		state:      Active,
		round:      1,
		guesser:    g,
		startedAt:  time.Now().UTC(),
	}, nil
}

// Apply consumes the feedback observed for the current guess.
// Returns the new state, or an error if code is malformed, the session is
// already finished, or choosing the next guess failed. On error the session
// is left unchanged.
func (s *Session) Apply(ctx context.Context, code feedback.Code) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !code.Valid() {
		return s.state, fmt.Errorf("%w: code %d out of range", feedback.ErrMalformed, int(code))
	}
	if s.state.Terminal() {
		return s.state, ErrFinished
	}

	next := solver.Partition(s.candidates, s.guess)[code]

	state := Active
	guess := s.guess
	switch len(next) {
	case 0:
		state = Exhausted
	case 1:
		state = Solved
	default:
		g, _, err := s.guesser.BestGuess(ctx, next, s.vocabulary)
		if err != nil {
			return s.state, fmt.Errorf("choose guess: %w", err)
		}
		guess = g
	}

	s.turns = append(s.turns, Turn{Guess: s.guess, Code: code, Remaining: len(next)})
	s.candidates = next
	s.guess = guess
	s.state = state
	s.round++
	if state.Terminal() {
		s.finishedAt = time.Now().UTC()
	}

	log.Debug().
		Str("session", s.id).
		Str("feedback", code.String()).
		Int("remaining", len(next)).
		Str("state", string(state)).
		Msg("feedback applied")
	return state, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Guess returns the guess to play. It is only meaningful while Active.
func (s *Session) Guess() words.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.guess
}

// Remaining returns the number of candidates left.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.candidates)
}

// Candidates returns a copy of the current candidate set.
func (s *Session) Candidates() []words.Word {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]words.Word(nil), s.candidates...)
}

// Solution returns the answer once the session is Solved.
func (s *Session) Solution() (words.Word, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Solved {
		return words.Word{}, false
	}
	return s.candidates[0], true
}

// Round is 1 before any feedback and grows by one per accepted feedback.
func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// Turns returns the guesses played so far with their feedback.
func (s *Session) Turns() []Turn {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Turn(nil), s.turns...)
}

// StartedAt returns when the session was created (UTC).
func (s *Session) StartedAt() time.Time { return s.startedAt }

// FinishedAt returns when the session reached a terminal state, or the zero
// time while Active.
func (s *Session) FinishedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishedAt
}

// randomID returns a compact 16-hex-char identifier.
func randomID() string {
	var b [8]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
