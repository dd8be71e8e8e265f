package models

import "time"

// Result is the grading outcome of an attempt.
type Result int

const (
	Unset Result = iota
	Correct
	Incorrect
)

// Attempt is one asked question and its eventual grading outcome.
// Answer is nil while the question is still open; once set it is never
// changed again.
type Attempt struct {
	ID        int64     `json:"id" db:"id"`
	PlayerID  int64     `json:"player_id" db:"player_id"`
	NounID    int64     `json:"noun_id" db:"noun_id"`
	Answer    *bool     `json:"answer" db:"answer"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Result maps the nullable answer column to a grading outcome.
func (a *Attempt) Result() Result {
	if a.Answer == nil {
		return Unset
	}
	if *a.Answer {
		return Correct
	}
	return Incorrect
}

// Open reports whether the attempt is still awaiting an answer.
func (a *Attempt) Open() bool {
	return a.Answer == nil
}
