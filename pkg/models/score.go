package models

// GlobalScope is the user scope shared by everyone when per-user scoring is off
const GlobalScope = ""

// Score holds the answer counters of a word within one user scope
type Score struct {
	WordID        int64  `json:"word_id" db:"word_id"`
	UserID        string `json:"user_id,omitempty" db:"user_id"`
	PositiveScore int    `json:"positive_score" db:"positive_score"`
	NegativeScore int    `json:"negative_score" db:"negative_score"`
}

// NetScore is positive minus negative; lower means the word needs more practice
func (s Score) NetScore() int {
	return s.PositiveScore - s.NegativeScore
}

// Candidate pairs a word with its score in the scope being drilled
type Candidate struct {
	Word  Word
	Score Score
}

// AnswerResult is returned after checking a submitted answer
type AnswerResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	PositiveScore int    `json:"positive_score"`
	NegativeScore int    `json:"negative_score"`
	NetScore      int    `json:"net_score"`
}
