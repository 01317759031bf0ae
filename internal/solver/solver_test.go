package solver

import (
	"context"
	"sort"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

func parseAll(t *testing.T, list ...string) []words.Word {
	t.Helper()
	out := make([]words.Word, len(list))
	for i, s := range list {
		w, err := words.Parse(s)
		require.NoError(t, err)
		out[i] = w
	}
	return out
}

func defaultVocabulary(t *testing.T) []words.Word {
	t.Helper()
	list, err := words.Default()
	require.NoError(t, err)
	return list
}

func sorted(list []words.Word) []string {
	s := words.Strings(list)
	sort.Strings(s)
	return s
}

func TestPartitionIsExact(t *testing.T) {
	vocab := defaultVocabulary(t)
	for _, guess := range parseAll(t, "raise", "crane", "mamma", "speed", "geese") {
		groups := Partition(vocab, guess)
		counts := Count(vocab, guess)

		var all []words.Word
		for code := range groups {
			assert.Equal(t, len(groups[code]), counts[code], "guess %s code %d", guess, code)
			for _, w := range groups[code] {
				assert.Equal(t, feedback.Code(code), feedback.Classify(guess, w))
			}
			all = append(all, groups[code]...)
		}
		if diff := cmp.Diff(sorted(vocab), sorted(all)); diff != "" {
			t.Errorf("partition of %s mismatch (-want +got):\n%s", guess, diff)
		}
	}
}

func TestPartitionPreservesOrder(t *testing.T) {
	cands := parseAll(t, "shine", "crane", "plant", "spine", "swine")
	groups := Partition(cands, words.MustParse("crane"))
	// "...++" holds every word ending in -ne except crane itself.
	assert.Equal(t, []string{"shine", "spine", "swine"}, words.Strings(groups[8]))
	assert.Equal(t, []string{"crane"}, words.Strings(groups[feedback.AllExact]))
	assert.Equal(t, []string{"plant"}, words.Strings(groups[24]))
}

func TestCountsMax(t *testing.T) {
	cands := parseAll(t, "shine", "crane", "plant", "spine", "swine")
	n := Count(cands, words.MustParse("crane"))
	assert.Equal(t, 3, n.Max())

	var empty Counts
	assert.Equal(t, 0, empty.Max())
}

func TestBestGuessTieBreakFirstSeen(t *testing.T) {
	cands := parseAll(t, "crane", "shine", "plant")
	ctx := context.Background()

	guess, score, err := New().BestGuess(ctx, cands, cands)
	require.NoError(t, err)
	assert.Equal(t, "crane", guess.String())
	assert.Equal(t, 0, score)

	reversed := parseAll(t, "shine", "crane", "plant")
	guess, _, err = New().BestGuess(ctx, cands, reversed)
	require.NoError(t, err)
	assert.Equal(t, "shine", guess.String())
}

func TestBestGuessPrefersCandidates(t *testing.T) {
	cands := parseAll(t, "crane", "shine")
	vocab := parseAll(t, "plant", "crane")

	assert.Equal(t, 1, Score(cands, words.MustParse("plant")))
	assert.Equal(t, 0, Score(cands, words.MustParse("crane")))

	guess, score, err := New().BestGuess(context.Background(), cands, vocab)
	require.NoError(t, err)
	assert.Equal(t, "crane", guess.String())
	assert.Equal(t, 0, score)
}

func TestBestGuessIsGloballyMinimal(t *testing.T) {
	vocab := defaultVocabulary(t)
	groups := Partition(vocab, words.MustParse("raise"))

	for code, cands := range groups {
		if len(cands) < 2 {
			continue
		}
		guess, score, err := New().BestGuess(context.Background(), cands, vocab)
		require.NoError(t, err)
		require.Equal(t, Score(cands, guess), score, "code %d", code)
		for _, v := range vocab {
			if s := Score(cands, v); s < score {
				t.Fatalf("code %d: %s scores %d, better than chosen %s (%d)", code, v, s, guess, score)
			}
		}
	}
}

func TestBestGuessParallelMatchesSequential(t *testing.T) {
	vocab := defaultVocabulary(t)
	ctx := context.Background()
	groups := Partition(vocab, words.MustParse("crane"))

	subsets := [][]words.Word{vocab}
	for _, g := range groups {
		if len(g) >= 3 {
			subsets = append(subsets, g)
		}
	}

	for _, cands := range subsets {
		want, wantScore, err := New().BestGuess(ctx, cands, vocab)
		require.NoError(t, err)
		for _, n := range []int{2, 3, 8, 1000} {
			got, gotScore, err := New(WithWorkers(n)).BestGuess(ctx, cands, vocab)
			require.NoError(t, err)
			assert.Equal(t, want, got, "workers=%d candidates=%d", n, len(cands))
			assert.Equal(t, wantScore, gotScore)
		}
	}
}

func TestBestGuessEmptyVocabulary(t *testing.T) {
	_, _, err := New().BestGuess(context.Background(), parseAll(t, "crane"), nil)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestBestGuessCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	vocab := defaultVocabulary(t)

	_, _, err := New().BestGuess(ctx, vocab, vocab)
	assert.ErrorIs(t, err, context.Canceled)
	_, _, err = New(WithWorkers(4)).BestGuess(ctx, vocab, vocab)
	assert.ErrorIs(t, err, context.Canceled)
}

type countingProgress struct {
	mu       sync.Mutex
	total    int
	added    int
	finished bool
}

func (c *countingProgress) Add(n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.added += n
	return nil
}

func (c *countingProgress) Finish() error {
	c.finished = true
	return nil
}

func TestBestGuessProgress(t *testing.T) {
	vocab := defaultVocabulary(t)
	var bars []*countingProgress
	opt := New(WithWorkers(4), WithProgress(func(total int) Progress {
		p := &countingProgress{total: total}
		bars = append(bars, p)
		return p
	}))

	_, _, err := opt.BestGuess(context.Background(), vocab[:50], vocab)
	require.NoError(t, err)
	require.Len(t, bars, 1)
	assert.Equal(t, len(vocab), bars[0].total)
	assert.Equal(t, len(vocab), bars[0].added)
	assert.True(t, bars[0].finished)
}
