// internal/cli/cli.go
//
// Line-oriented front end for a solving session.
//
// Each round prints the remaining candidate count and the guess to play,
// then reads the observed feedback ("+" exact, "-" elsewhere, "." absent).
// Malformed feedback is reported and the prompt repeats; the session only
// ever sees legal codes. After the session ends nothing more is read.

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/session"
)

const prompt = "Enter result (+/-/.): "

// Run drives s to completion using in for feedback and out for the
// transcript. It returns the terminal state, or io.ErrUnexpectedEOF if input
// ends first.
func Run(ctx context.Context, in io.Reader, out io.Writer, s *session.Session) (session.State, error) {
	sc := bufio.NewScanner(in)

	for !s.State().Terminal() {
		fmt.Fprintf(out, "%d possible words\n", s.Remaining())
		fmt.Fprintf(out, "Enter pattern: %s\n", s.Guess())

		code, err := readFeedback(sc, out)
		if err != nil {
			return s.State(), err
		}
		if _, err := s.Apply(ctx, code); err != nil {
			return s.State(), err
		}
	}

	switch s.State() {
	case session.Solved:
		w, _ := s.Solution()
		fmt.Fprintf(out, "Found word: %s\n", w)
	case session.Exhausted:
		fmt.Fprintln(out, "No words found")
	}
	return s.State(), nil
}

// readFeedback prompts until a well-formed line arrives.
func readFeedback(sc *bufio.Scanner, out io.Writer) (feedback.Code, error) {
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		code, err := feedback.Parse(sc.Text())
		if err == nil {
			return code, nil
		}
		if !errors.Is(err, feedback.ErrMalformed) {
			return 0, err
		}
		log.Debug().Err(err).Msg("rejected feedback")
		fmt.Fprintf(out, "Invalid result: %v\n", err)
	}
}
