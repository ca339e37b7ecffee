package database

import (
	"context"
	"fmt"
	"math"

	"github.com/example/tallum/pkg/models"
	"github.com/jmoiron/sqlx"
)

// StatisticsRepository computes aggregate score statistics
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository creates a new repository instance
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// Aggregate returns the word count and average scores in a user scope.
// Words without a score in the scope count as zero.
func (r *StatisticsRepository) Aggregate(ctx context.Context, scope string) (models.Stats, error) {
	var stats models.Stats
	query := r.db.Rebind(`
		SELECT COUNT(*) AS total_words,
			COALESCE(AVG(COALESCE(s.positive_score, 0)), 0) AS average_positive_score,
			COALESCE(AVG(COALESCE(s.negative_score, 0)), 0) AS average_negative_score
		FROM words w
		LEFT JOIN scores s ON s.word_id = w.id AND s.user_id = ?
	`)
	if err := r.db.GetContext(ctx, &stats, query, scope); err != nil {
		return models.Stats{}, fmt.Errorf("failed to get statistics: %w", err)
	}
	stats.AveragePositiveScore = round2(stats.AveragePositiveScore)
	stats.AverageNegativeScore = round2(stats.AverageNegativeScore)
	return stats, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
