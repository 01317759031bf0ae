package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/session"
	"github.com/robalobadob/wordle/apps/solver/internal/solver"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func newSession(t *testing.T) *session.Session {
	t.Helper()
	vocab := []words.Word{words.MustParse("crane"), words.MustParse("shine"), words.MustParse("plant")}
	s, err := session.New(vocab, words.MustParse("crane"), solver.New())
	require.NoError(t, err)
	return s
}

func TestRunSolved(t *testing.T) {
	var out bytes.Buffer
	state, err := Run(context.Background(), strings.NewReader("...++\n"), &out, newSession(t))
	require.NoError(t, err)
	assert.Equal(t, session.Solved, state)
	assert.Equal(t,
		"3 possible words\n"+
			"Enter pattern: crane\n"+
			"Enter result (+/-/.): Found word: shine\n",
		out.String())
}

func TestRunExhausted(t *testing.T) {
	var out bytes.Buffer
	state, err := Run(context.Background(), strings.NewReader(".....\n"), &out, newSession(t))
	require.NoError(t, err)
	assert.Equal(t, session.Exhausted, state)
	assert.True(t, strings.HasSuffix(out.String(), "No words found\n"))
}

func TestRunRepromptsOnMalformed(t *testing.T) {
	var out bytes.Buffer
	state, err := Run(context.Background(), strings.NewReader("++\n..x++\n...++\n"), &out, newSession(t))
	require.NoError(t, err)
	assert.Equal(t, session.Solved, state)
	assert.Equal(t, 3, strings.Count(out.String(), prompt))
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid result:"))
}

func TestRunStopsReadingAfterTermination(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("+++++\n.....\n.....\n")
	state, err := Run(context.Background(), in, &out, newSession(t))
	require.NoError(t, err)
	assert.Equal(t, session.Solved, state)
	assert.Equal(t, 1, strings.Count(out.String(), prompt))
	assert.Contains(t, out.String(), "Found word: crane")
}

func TestRunEOF(t *testing.T) {
	var out bytes.Buffer
	state, err := Run(context.Background(), strings.NewReader(""), &out, newSession(t))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Equal(t, session.Active, state)
}
