package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/tallum/internal/scoring"
	"github.com/example/tallum/pkg/models"
	"github.com/jmoiron/sqlx"
)

// WordRepository handles database operations for words
type WordRepository struct {
	db *sqlx.DB
}

// NewWordRepository creates a new repository instance
func NewWordRepository(db *sqlx.DB) *WordRepository {
	return &WordRepository{db: db}
}

// GetByID returns a word by ID, or a not found error
func (r *WordRepository) GetByID(ctx context.Context, id int64) (*models.Word, error) {
	var word models.Word
	query := r.db.Rebind(`SELECT id, word, translation, example_sentence FROM words WHERE id = ?`)
	err := r.db.GetContext(ctx, &word, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, scoring.NotFound("word %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word by ID: %w", err)
	}
	return &word, nil
}

// ExistsByTerm reports whether a word with exactly this term is stored
func (r *WordRepository) ExistsByTerm(ctx context.Context, term string) (bool, error) {
	var n int
	query := r.db.Rebind(`SELECT COUNT(*) FROM words WHERE word = ?`)
	if err := r.db.GetContext(ctx, &n, query, term); err != nil {
		return false, fmt.Errorf("failed to look up word %q: %w", term, err)
	}
	return n > 0, nil
}

// Create inserts a new word and sets its ID
func (r *WordRepository) Create(ctx context.Context, word *models.Word) error {
	query := r.db.Rebind(`
		INSERT INTO words (word, translation, example_sentence)
		VALUES (?, ?, ?)
		RETURNING id
	`)
	err := r.db.QueryRowxContext(ctx, query, word.Word, word.Translation, word.ExampleSentence).Scan(&word.ID)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	return nil
}

// Count returns the number of stored words
func (r *WordRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM words`); err != nil {
		return 0, fmt.Errorf("failed to count words: %w", err)
	}
	return n, nil
}

// DeleteAll removes every word; scores go with them
func (r *WordRepository) DeleteAll(ctx context.Context) (int64, error) {
	// scores first, so postgres and sqlite without foreign keys behave the same
	if _, err := r.db.ExecContext(ctx, `DELETE FROM scores`); err != nil {
		return 0, fmt.Errorf("failed to delete scores: %w", err)
	}
	res, err := r.db.ExecContext(ctx, `DELETE FROM words`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete words: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return n, nil
}

type candidateRow struct {
	models.Word
	PositiveScore int `db:"positive_score"`
	NegativeScore int `db:"negative_score"`
}

// ListCandidates returns every word with its score in the given user scope.
// Words never answered in that scope come back with zero scores.
func (r *WordRepository) ListCandidates(ctx context.Context, scope string) ([]models.Candidate, error) {
	var rows []candidateRow
	query := r.db.Rebind(`
		SELECT w.id, w.word, w.translation, w.example_sentence,
			COALESCE(s.positive_score, 0) AS positive_score,
			COALESCE(s.negative_score, 0) AS negative_score
		FROM words w
		LEFT JOIN scores s ON s.word_id = w.id AND s.user_id = ?
		ORDER BY w.id
	`)
	if err := r.db.SelectContext(ctx, &rows, query, scope); err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	candidates := make([]models.Candidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, models.Candidate{
			Word: row.Word,
			Score: models.Score{
				WordID:        row.ID,
				UserID:        scope,
				PositiveScore: row.PositiveScore,
				NegativeScore: row.NegativeScore,
			},
		})
	}
	return candidates, nil
}
