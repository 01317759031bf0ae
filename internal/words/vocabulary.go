// internal/words/vocabulary.go
//
// Vocabulary loading.
//
// The answer vocabulary and the guess vocabulary are the same list: one
// lowercase five-letter word per line, no header, no blank lines.
//
// Sources (see Load):
//   1. A file path (SOLVER_WORDS_FILE / -words), read strictly.
//   2. Otherwise the embedded default list from the assets package.
//
// Any malformed or repeated line, or a list with no words at all, is a load failure;
// the solver cannot start without its vocabulary.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/robalobadob/wordle/apps/solver/assets"
)

// ErrEmptyVocabulary is returned when a word list contains no words.
var ErrEmptyVocabulary = errors.New("words: vocabulary is empty")

// ErrDuplicateWord is returned (wrapped) when a word appears more than once.
var ErrDuplicateWord = errors.New("duplicate word")

// LineError reports a malformed line in a word list.
type LineError struct {
	Line int    // 1-based line number
	Text string // raw line contents
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("words: line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// Read parses a word list. Every line must be a valid word, and no word
// may appear twice.
func Read(r io.Reader) ([]Word, error) {
	var out []Word
	seen := make(map[Word]int)
	sc := bufio.NewScanner(r)
	for n := 1; sc.Scan(); n++ {
		line := sc.Text()
		w, err := Parse(line)
		if err != nil {
			return nil, &LineError{Line: n, Text: line, Err: err}
		}
		if first, dup := seen[w]; dup {
			return nil, &LineError{Line: n, Text: line, Err: fmt.Errorf("%w: first seen on line %d", ErrDuplicateWord, first)}
		}
		seen[w] = n
		out = append(out, w)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, ErrEmptyVocabulary
	}
	return out, nil
}

// ReadFile loads a word list from path.
func ReadFile(path string) ([]Word, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	defer f.Close()

	list, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// Default loads the embedded word list.
func Default() ([]Word, error) {
	f, err := assets.Vocabulary()
	if err != nil {
		return nil, fmt.Errorf("open embedded vocabulary: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Load reads path when set, otherwise the embedded list.
func Load(path string) ([]Word, error) {
	if path == "" {
		return Default()
	}
	return ReadFile(path)
}
