// Package drill runs one request's read-modify-write cycle against the
// store, delegating word choice and score updates to the scoring engine.
package drill

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/example/tallum/internal/scoring"
	"github.com/example/tallum/pkg/models"
)

// WordStore is the part of the word repository the service needs
type WordStore interface {
	GetByID(ctx context.Context, id int64) (*models.Word, error)
	ListCandidates(ctx context.Context, scope string) ([]models.Candidate, error)
}

// ScoreStore is the part of the score repository the service needs
type ScoreStore interface {
	Get(ctx context.Context, wordID int64, scope string) (models.Score, error)
	Save(ctx context.Context, score models.Score) error
}

// StatsStore computes aggregate statistics
type StatsStore interface {
	Aggregate(ctx context.Context, scope string) (models.Stats, error)
}

// Answer is a submitted translation for a word
type Answer struct {
	WordID int64
	Text   string
	UserID string
}

// Service implements the drill operations shared by the HTTP API and the bot
type Service struct {
	words  WordStore
	scores ScoreStore
	stats  StatsStore
	engine *scoring.Engine

	perUser bool
}

// NewService creates a drill service. With perUser off every user shares the global scope.
func NewService(words WordStore, scores ScoreStore, stats StatsStore, engine *scoring.Engine, perUser bool) *Service {
	return &Service{
		words:   words,
		scores:  scores,
		stats:   stats,
		engine:  engine,
		perUser: perUser,
	}
}

// Scope maps a caller supplied user id to the score scope in effect
func (s *Service) Scope(userID string) string {
	if !s.perUser {
		return models.GlobalScope
	}
	return strings.TrimSpace(userID)
}

// NextWord picks the next word to drill for a user
func (s *Service) NextWord(ctx context.Context, userID string) (models.Candidate, error) {
	candidates, err := s.words.ListCandidates(ctx, s.Scope(userID))
	if err != nil {
		return models.Candidate{}, err
	}
	return s.engine.SelectNext(candidates)
}

// SubmitAnswer checks an answer and stores the updated score
func (s *Service) SubmitAnswer(ctx context.Context, answer Answer) (models.AnswerResult, error) {
	if answer.WordID <= 0 {
		return models.AnswerResult{}, scoring.InvalidInput("word_id is required")
	}

	word, err := s.words.GetByID(ctx, answer.WordID)
	if err != nil {
		return models.AnswerResult{}, err
	}

	scope := s.Scope(answer.UserID)
	current, err := s.scores.Get(ctx, word.ID, scope)
	if err != nil {
		return models.AnswerResult{}, err
	}

	updated, correct := s.engine.RecordAnswer(current, answer.Text, word.Translation)
	if err := s.scores.Save(ctx, updated); err != nil {
		return models.AnswerResult{}, fmt.Errorf("record answer: %w", err)
	}

	log.Printf("word %d user %q answered correct=%v score %d/%d", word.ID, scope, correct, updated.PositiveScore, updated.NegativeScore)

	return models.AnswerResult{
		Correct:       correct,
		CorrectAnswer: word.Translation,
		PositiveScore: updated.PositiveScore,
		NegativeScore: updated.NegativeScore,
		NetScore:      updated.NetScore(),
	}, nil
}

// Sentence returns the example sentence of a word
func (s *Service) Sentence(ctx context.Context, wordID int64) (string, error) {
	if wordID <= 0 {
		return "", scoring.InvalidInput("word_id is required")
	}
	word, err := s.words.GetByID(ctx, wordID)
	if err != nil {
		return "", err
	}
	return word.ExampleSentence, nil
}

// Stats returns aggregates for a user's scope
func (s *Service) Stats(ctx context.Context, userID string) (models.Stats, error) {
	return s.stats.Aggregate(ctx, s.Scope(userID))
}
