package models

// Word represents a vocabulary entry to be drilled
type Word struct {
	ID              int64  `json:"id" db:"id"`
	Word            string `json:"word" db:"word"`
	Translation     string `json:"translation" db:"translation"`
	ExampleSentence string `json:"example_sentence" db:"example_sentence"`
}
