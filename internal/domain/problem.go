package domain

import "time"

// Difficulty enumerates problem difficulty levels.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// ProblemStatus enumerates practice progress states.
type ProblemStatus string

const (
	ProblemStatusAttempted ProblemStatus = "ATTEMPTED"
	ProblemStatusSolved    ProblemStatus = "SOLVED"
	ProblemStatusRevisit   ProblemStatus = "REVISIT"
)

// ProblemEntry records one practice problem for a user.
type ProblemEntry struct {
	ID               string
	UserID           string
	ProblemID        string
	Title            string
	URL              string
	Difficulty       Difficulty
	Language         string
	Attempts         int
	Tags             []string
	Status           ProblemStatus
	TimeTakenSeconds int
	CognitiveLoad    int
	DateSolved       time.Time
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
