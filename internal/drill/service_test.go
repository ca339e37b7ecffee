package drill

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/example/tallum/internal/scoring"
	"github.com/example/tallum/pkg/models"
)

type scoreKey struct {
	wordID int64
	scope  string
}

// memStore keeps words and scores in maps
type memStore struct {
	mu     sync.Mutex
	words  []models.Word
	scores map[scoreKey]models.Score
	saved  int
}

func newMemStore(words ...models.Word) *memStore {
	return &memStore{words: words, scores: make(map[scoreKey]models.Score)}
}

func (m *memStore) GetByID(_ context.Context, id int64) (*models.Word, error) {
	for _, w := range m.words {
		if w.ID == id {
			w := w
			return &w, nil
		}
	}
	return nil, scoring.NotFound("word %d not found", id)
}

func (m *memStore) ListCandidates(_ context.Context, scope string) ([]models.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Candidate, 0, len(m.words))
	for _, w := range m.words {
		score, ok := m.scores[scoreKey{w.ID, scope}]
		if !ok {
			score = models.Score{WordID: w.ID, UserID: scope}
		}
		out = append(out, models.Candidate{Word: w, Score: score})
	}
	return out, nil
}

func (m *memStore) Get(_ context.Context, wordID int64, scope string) (models.Score, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.scores[scoreKey{wordID, scope}]; ok {
		return s, nil
	}
	return models.Score{WordID: wordID, UserID: scope}, nil
}

func (m *memStore) Save(_ context.Context, score models.Score) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scores[scoreKey{score.WordID, score.UserID}] = score
	m.saved++
	return nil
}

func (m *memStore) Aggregate(_ context.Context, scope string) (models.Stats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stats := models.Stats{TotalWords: len(m.words)}
	if len(m.words) == 0 {
		return stats, nil
	}
	var pos, neg int
	for _, w := range m.words {
		s := m.scores[scoreKey{w.ID, scope}]
		pos += s.PositiveScore
		neg += s.NegativeScore
	}
	stats.AveragePositiveScore = float64(pos) / float64(len(m.words))
	stats.AverageNegativeScore = float64(neg) / float64(len(m.words))
	return stats, nil
}

func sampleWords() []models.Word {
	return []models.Word{
		{ID: 1, Word: "bonjour", Translation: "hello", ExampleSentence: "Bonjour, comment allez-vous?"},
		{ID: 2, Word: "merci", Translation: "thank you", ExampleSentence: "Merci beaucoup pour votre aide."},
	}
}

func newTestService(store *memStore, perUser bool) *Service {
	return NewService(store, store, store, scoring.NewEngine(scoring.WithSeed(1)), perUser)
}

func TestNextWord_Empty(t *testing.T) {
	svc := newTestService(newMemStore(), true)
	_, err := svc.NextWord(context.Background(), "")
	if !errors.Is(err, scoring.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestNextWord_ReturnsKnownWord(t *testing.T) {
	svc := newTestService(newMemStore(sampleWords()...), true)
	c, err := svc.NextWord(context.Background(), "alice")
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if c.Word.ID != 1 && c.Word.ID != 2 {
		t.Fatalf("unexpected word %+v", c.Word)
	}
}

func TestSubmitAnswer_CorrectThenWrong(t *testing.T) {
	store := newMemStore(sampleWords()...)
	store.scores[scoreKey{1, "alice"}] = models.Score{WordID: 1, UserID: "alice", PositiveScore: 1, NegativeScore: 1}
	svc := newTestService(store, true)
	ctx := context.Background()

	res, err := svc.SubmitAnswer(ctx, Answer{WordID: 1, Text: "  HELLO ", UserID: "alice"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want := models.AnswerResult{Correct: true, CorrectAnswer: "hello", PositiveScore: 2, NegativeScore: 0, NetScore: 2}
	if res != want {
		t.Fatalf("got %+v, want %+v", res, want)
	}

	res, err = svc.SubmitAnswer(ctx, Answer{WordID: 1, Text: "goodbye", UserID: "alice"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	want = models.AnswerResult{Correct: false, CorrectAnswer: "hello", PositiveScore: 1, NegativeScore: 1, NetScore: 0}
	if res != want {
		t.Fatalf("got %+v, want %+v", res, want)
	}
}

func TestSubmitAnswer_LazyScoreCreation(t *testing.T) {
	store := newMemStore(sampleWords()...)
	svc := newTestService(store, true)

	res, err := svc.SubmitAnswer(context.Background(), Answer{WordID: 2, Text: "thanks", UserID: "bob"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if res.Correct || res.PositiveScore != 0 || res.NegativeScore != 1 {
		t.Fatalf("unexpected result %+v", res)
	}
	if _, ok := store.scores[scoreKey{2, "bob"}]; !ok {
		t.Fatal("expected a score row for bob to be created")
	}
}

func TestSubmitAnswer_Errors(t *testing.T) {
	store := newMemStore(sampleWords()...)
	svc := newTestService(store, true)
	ctx := context.Background()

	_, err := svc.SubmitAnswer(ctx, Answer{Text: "hello"})
	if !errors.Is(err, scoring.ErrInvalidInput) {
		t.Fatalf("expected invalid input for missing word id, got %v", err)
	}
	_, err = svc.SubmitAnswer(ctx, Answer{WordID: 99, Text: "hello"})
	if !errors.Is(err, scoring.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if store.saved != 0 {
		t.Fatalf("failed submissions must not write, got %d saves", store.saved)
	}
}

func TestScope(t *testing.T) {
	store := newMemStore(sampleWords()...)
	perUser := newTestService(store, true)
	global := newTestService(store, false)

	if got := perUser.Scope(" alice "); got != "alice" {
		t.Fatalf("expected trimmed scope, got %q", got)
	}
	if got := global.Scope("alice"); got != models.GlobalScope {
		t.Fatalf("expected global scope, got %q", got)
	}

	ctx := context.Background()
	if _, err := global.SubmitAnswer(ctx, Answer{WordID: 1, Text: "hello", UserID: "alice"}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if s := store.scores[scoreKey{1, models.GlobalScope}]; s.PositiveScore != 1 {
		t.Fatalf("expected the global score to be updated, got %+v", s)
	}
	if _, ok := store.scores[scoreKey{1, "alice"}]; ok {
		t.Fatal("per-user row must not be written when per-user scoring is off")
	}
}

func TestSentenceAndStats(t *testing.T) {
	store := newMemStore(sampleWords()...)
	svc := newTestService(store, true)
	ctx := context.Background()

	sentence, err := svc.Sentence(ctx, 2)
	if err != nil {
		t.Fatalf("sentence: %v", err)
	}
	if sentence != "Merci beaucoup pour votre aide." {
		t.Fatalf("unexpected sentence %q", sentence)
	}
	if _, err := svc.Sentence(ctx, 42); !errors.Is(err, scoring.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	svc.SubmitAnswer(ctx, Answer{WordID: 1, Text: "hello", UserID: "alice"})
	stats, err := svc.Stats(ctx, "alice")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalWords != 2 || stats.AveragePositiveScore != 0.5 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}
