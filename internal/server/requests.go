package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/example/tallum/internal/drill"
	"github.com/example/tallum/internal/scoring"
)

const maxBodyBytes = 1 << 16

// CheckAnswer is the body of POST /api/check-answer
type CheckAnswer struct {
	WordID *int64  `json:"word_id"`
	Answer *string `json:"answer"`
}

// ParseCheckAnswer decodes and validates a check-answer body
func ParseCheckAnswer(body io.Reader) (*CheckAnswer, error) {
	dec := json.NewDecoder(io.LimitReader(body, maxBodyBytes))
	dec.DisallowUnknownFields()

	var req CheckAnswer
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, scoring.InvalidInput("request body is required")
		}
		return nil, scoring.InvalidInput("bad check-answer json: %v", err)
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// Validate reports missing or out of range fields
func (c *CheckAnswer) Validate() error {
	if c.WordID == nil {
		return scoring.InvalidInput("word_id is required")
	}
	if *c.WordID <= 0 {
		return scoring.InvalidInput("word_id must be positive, got %d", *c.WordID)
	}
	if c.Answer == nil {
		return scoring.InvalidInput("answer is required")
	}
	return nil
}

// ToAnswer converts the request into a drill answer for a user
func (c *CheckAnswer) ToAnswer(userID string) drill.Answer {
	return drill.Answer{WordID: *c.WordID, Text: *c.Answer, UserID: userID}
}

func parseWordID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, scoring.InvalidInput("word id %q is not a positive integer", raw)
	}
	return id, nil
}

// userID reads the caller's user scope key from the header or query string
func userID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(HeaderUserID)); id != "" {
		return id
	}
	return strings.TrimSpace(r.URL.Query().Get("user_id"))
}

type errorResponse struct {
	Error string `json:"error"`
}

func statusFor(err error) int {
	switch scoring.KindOf(err) {
	case scoring.KindNotFound:
		return http.StatusNotFound
	case scoring.KindInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(w, `{"error":%q}`, err.Error())
	}
}
