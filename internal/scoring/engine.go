// Package scoring implements the word selection and score update policy.
//
// The next word is drawn uniformly at random from the lowest scoring
// candidates, so the worst words get drilled without always repeating the
// single worst one. Answers reward or decay the two counters of a score.
package scoring

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/example/tallum/pkg/models"
)

// DefaultWindow is the number of lowest scoring candidates drawn from
const DefaultWindow = 10

// Engine selects words and updates scores. It is safe for concurrent use.
type Engine struct {
	// Number of lowest scoring candidates considered by SelectNext
	Window int

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configures an Engine
type Option func(*Engine)

// WithWindow sets the selection window; values below 1 keep the default
func WithWindow(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.Window = n
		}
	}
}

// WithSeed makes selection deterministic, for tests
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.rnd = rand.New(rand.NewSource(seed))
	}
}

// NewEngine creates an engine seeded from crypto/rand unless WithSeed is given
func NewEngine(opts ...Option) *Engine {
	e := &Engine{Window: DefaultWindow}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = rand.New(rand.NewSource(newSeed()))
	}
	return e
}

func newSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// SelectNext picks a random candidate among the Window lowest net scores.
// The candidates slice is left untouched.
func (e *Engine) SelectNext(candidates []models.Candidate) (models.Candidate, error) {
	if len(candidates) == 0 {
		return models.Candidate{}, NotFound("no words available")
	}

	sorted := make([]models.Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score.NetScore() < sorted[j].Score.NetScore()
	})

	window := e.Window
	if window < 1 {
		window = DefaultWindow
	}
	if len(sorted) < window {
		window = len(sorted)
	}

	e.mu.Lock()
	idx := e.rnd.Intn(window)
	e.mu.Unlock()

	return sorted[idx], nil
}

// RecordAnswer compares the normalized answers and returns the updated score.
// A correct answer increments the positive counter and halves the negative
// one; a wrong answer does the reverse.
func (e *Engine) RecordAnswer(score models.Score, submitted, correct string) (models.Score, bool) {
	isCorrect := Normalize(submitted) == Normalize(correct)

	if isCorrect {
		score.PositiveScore++
		score.NegativeScore = halve(score.NegativeScore)
	} else {
		score.NegativeScore++
		score.PositiveScore = halve(score.PositiveScore)
	}
	return score, isCorrect
}

// Normalize trims surrounding whitespace and lowercases an answer
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func halve(n int) int {
	n /= 2
	if n < 0 {
		return 0
	}
	return n
}
