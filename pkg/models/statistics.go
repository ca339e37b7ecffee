package models

// Stats aggregates scores over all words in one user scope
type Stats struct {
	TotalWords           int     `json:"total_words" db:"total_words"`
	AveragePositiveScore float64 `json:"average_positive_score" db:"average_positive_score"`
	AverageNegativeScore float64 `json:"average_negative_score" db:"average_negative_score"`
}
