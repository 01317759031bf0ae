// internal/solver/optimizer.go
//
// Minimax guess selection.
//
// For every word in the guess vocabulary, the optimizer counts how the
// current candidates would split by feedback code and scores the guess by
// its largest bucket (the worst case if that guess is played). The guess with
// the smallest score wins.
//
// Rules:
//   - A guess that is itself a candidate scores one less, so guesses that
//     could end the game are preferred among near-equal options. This is a
//     heuristic: it can pick a candidate whose worst case is one larger than
//     the best non-candidate.
//   - Only a strictly smaller score replaces the current best, so the first
//     guess in vocabulary order wins ties.
//   - The scan is exhaustive; nothing is pruned or cached between calls.
//
// Parallelism:
//   - With Workers > 1 the vocabulary is cut into contiguous chunks, each
//     scanned by one goroutine. Chunk winners are reduced in chunk order with
//     the same strict-less rule, which gives exactly the sequential answer no
//     matter which goroutine finishes first.

package solver

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// ErrEmptyVocabulary is returned when there is nothing to choose a guess from.
var ErrEmptyVocabulary = errors.New("solver: empty guess vocabulary")

// Progress receives one Add(1) per scored guess. *progressbar.ProgressBar
// satisfies it.
type Progress interface {
	Add(n int) error
}

// ProgressFunc creates the Progress for a scan over total guesses.
type ProgressFunc func(total int) Progress

// Optimizer picks guesses. The zero value scans sequentially without
// progress reporting.
type Optimizer struct {
	workers  int
	progress ProgressFunc
}

// Option configures an Optimizer.
type Option func(*Optimizer)

// WithWorkers sets the number of goroutines used per scan.
func WithWorkers(n int) Option {
	return func(o *Optimizer) { o.workers = n }
}

// WithProgress installs a progress factory called once per scan.
func WithProgress(f ProgressFunc) Option {
	return func(o *Optimizer) { o.progress = f }
}

// New constructs an Optimizer.
func New(opts ...Option) *Optimizer {
	o := &Optimizer{workers: 1}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// pick is the best guess found by one scan.
type pick struct {
	guess words.Word
	score int
}

// BestGuess returns the vocabulary word whose adjusted worst-case bucket
// against candidates is smallest, together with that adjusted score.
func (o *Optimizer) BestGuess(ctx context.Context, candidates, vocabulary []words.Word) (words.Word, int, error) {
	if len(vocabulary) == 0 {
		return words.Word{}, 0, ErrEmptyVocabulary
	}
	start := time.Now()

	isCandidate := make(map[words.Word]struct{}, len(candidates))
	for _, c := range candidates {
		isCandidate[c] = struct{}{}
	}

	var p Progress
	if o.progress != nil {
		p = o.progress(len(vocabulary))
	}

	workers := o.workers
	if workers > len(vocabulary) {
		workers = len(vocabulary)
	}

	var (
		best pick
		err  error
	)
	if workers <= 1 {
		best, err = scan(ctx, candidates, isCandidate, vocabulary, p)
	} else {
		best, err = scanParallel(ctx, candidates, isCandidate, vocabulary, p, workers)
	}
	if f, ok := p.(interface{ Finish() error }); ok {
		_ = f.Finish()
	}
	if err != nil {
		return words.Word{}, 0, err
	}

	log.Debug().
		Str("guess", best.guess.String()).
		Int("score", best.score).
		Int("candidates", len(candidates)).
		Int("vocabulary", len(vocabulary)).
		Int("workers", max(workers, 1)).
		Dur("took", time.Since(start)).
		Msg("best guess")
	return best.guess, best.score, nil
}

// Score returns the adjusted score of a single guess.
func Score(candidates []words.Word, guess words.Word) int {
	n := Count(candidates, guess)
	s := n.Max()
	if words.Contains(candidates, guess) {
		s--
	}
	return s
}

// scan is the sequential minimax loop over guesses.
func scan(ctx context.Context, candidates []words.Word, isCandidate map[words.Word]struct{}, guesses []words.Word, p Progress) (pick, error) {
	best := pick{score: len(candidates) + 1}
	for i, guess := range guesses {
		if i%64 == 0 {
			if err := ctx.Err(); err != nil {
				return pick{}, err
			}
		}

		n := Count(candidates, guess)
		score := n.Max()
		if _, ok := isCandidate[guess]; ok {
			score--
		}
		if score < best.score {
			best = pick{guess: guess, score: score}
		}

		if p != nil {
			_ = p.Add(1)
		}
	}
	return best, nil
}

// scanParallel splits guesses into contiguous chunks and reduces the chunk
// winners in order.
func scanParallel(ctx context.Context, candidates []words.Word, isCandidate map[words.Word]struct{}, guesses []words.Word, p Progress, workers int) (pick, error) {
	size := (len(guesses) + workers - 1) / workers
	chunks := (len(guesses) + size - 1) / size
	picks := make([]pick, chunks)

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < chunks; i++ {
		lo := i * size
		hi := min(lo+size, len(guesses))
		g.Go(func() error {
			best, err := scan(gctx, candidates, isCandidate, guesses[lo:hi], p)
			if err != nil {
				return err
			}
			picks[i] = best
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return pick{}, err
	}

	best := picks[0]
	for _, pk := range picks[1:] {
		if pk.score < best.score {
			best = pk
		}
	}
	return best, nil
}
