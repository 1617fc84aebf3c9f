// Package ranking holds the user-expertise ranking types.
package ranking

// UserProfile is a ranking candidate: a user and their solved-query history.
// Supplied wholesale per request, never persisted.
type UserProfile struct {
	UserID        string
	SolvedQueries []string
}

// RelevanceResult is the per-user outcome of scoring against a question.
type RelevanceResult struct {
	UserID            string
	RelevanceScore    int // always within [0, 10]
	Reasoning         string
	MatchingQueries   []string // at most 3
	TotalSolvedQueries int
}

// Report aggregates a full ranking run.
type Report struct {
	Question      string
	TotalAnalyzed int
	Users         []RelevanceResult // sorted by RelevanceScore descending
	Summary       Summary
}

// Summary describes the head of the ranked list.
type Summary struct {
	HighestScore     int
	MostRelevantUser string // empty when no users were supplied
}
