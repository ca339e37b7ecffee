package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/tallum/pkg/models"
	"github.com/jmoiron/sqlx"
)

// ScoreRepository handles database operations for word scores
type ScoreRepository struct {
	db *sqlx.DB
}

// NewScoreRepository creates a new repository instance
func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Get returns the score of a word in a user scope.
// A missing row is not an error: it reads as a zero score that Save will create.
func (r *ScoreRepository) Get(ctx context.Context, wordID int64, scope string) (models.Score, error) {
	score := models.Score{WordID: wordID, UserID: scope}
	query := r.db.Rebind(`
		SELECT word_id, user_id, positive_score, negative_score
		FROM scores
		WHERE word_id = ? AND user_id = ?
	`)
	err := r.db.GetContext(ctx, &score, query, wordID, scope)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Score{WordID: wordID, UserID: scope}, nil
	}
	if err != nil {
		return models.Score{}, fmt.Errorf("failed to get score for word %d: %w", wordID, err)
	}
	return score, nil
}

// Save inserts or replaces the score of a word in its user scope
func (r *ScoreRepository) Save(ctx context.Context, score models.Score) error {
	query := r.db.Rebind(`
		INSERT INTO scores (word_id, user_id, positive_score, negative_score, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (word_id, user_id) DO UPDATE SET
			positive_score = excluded.positive_score,
			negative_score = excluded.negative_score,
			updated_at = CURRENT_TIMESTAMP
	`)
	_, err := r.db.ExecContext(ctx, query, score.WordID, score.UserID, score.PositiveScore, score.NegativeScore)
	if err != nil {
		return fmt.Errorf("failed to save score for word %d: %w", score.WordID, err)
	}
	return nil
}
