// Package ranking scores users against a question by their solved-query
// history and produces a ranked report.
package ranking

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain/ranking"
)

const operationRank = "rank_users"

// maxMatchingQueries caps the per-user list of history entries reported as
// keyword matches for the question.
const maxMatchingQueries = 3

var firstInteger = regexp.MustCompile(`(\d+)`)

// Service ranks user profiles by relevance to a question.
type Service struct {
	gen           Generator
	maxConcurrent int
	logger        *zap.Logger
}

// New creates a ranking service. maxConcurrent bounds how many users are
// scored in parallel; values below one are treated as one.
func New(gen Generator, maxConcurrent int, logger *zap.Logger) *Service {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Service{gen: gen, maxConcurrent: maxConcurrent, logger: logger}
}

// Rank scores every user against the question, sorts by descending score and
// truncates to topN when topN is positive. A scoring failure for one user
// degrades that user to score zero instead of failing the run.
func (s *Service) Rank(ctx context.Context, users []ranking.UserProfile, question string, topN int) (ranking.Report, error) {
	results := make([]ranking.RelevanceResult, len(users))

	sem := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup
	for i, user := range users {
		wg.Add(1)
		go func(i int, user ranking.UserProfile) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results[i] = s.scoreUser(ctx, user, question)
		}(i, user)
	}
	wg.Wait()

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})
	if topN > 0 && len(results) > topN {
		results = results[:topN]
	}

	report := ranking.Report{
		Question:      question,
		TotalAnalyzed: len(users),
		Users:         results,
	}
	if len(results) > 0 {
		report.Summary = ranking.Summary{
			HighestScore:     results[0].RelevanceScore,
			MostRelevantUser: results[0].UserID,
		}
	}
	return report, nil
}

func (s *Service) scoreUser(ctx context.Context, user ranking.UserProfile, question string) ranking.RelevanceResult {
	result := ranking.RelevanceResult{
		UserID:             user.UserID,
		MatchingQueries:    []string{},
		TotalSolvedQueries: len(user.SolvedQueries),
	}

	raw, err := s.gen.Generate(ctx, operationRank, buildPrompt(user, question))
	if err != nil {
		s.logger.Warn("user scoring failed",
			zap.String("user_id", user.UserID),
			zap.Error(err))
		result.Reasoning = fmt.Sprintf("Analysis failed: %s", err)
		return result
	}

	result.RelevanceScore = parseScore(raw)
	result.Reasoning = reasoningFor(result.RelevanceScore)
	result.MatchingQueries = matchingQueries(user.SolvedQueries, question)
	return result
}

func buildPrompt(user ranking.UserProfile, question string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Rate how relevant this user is for the question on a scale of 0-10.\n\n")
	fmt.Fprintf(&b, "Question: %q\n\n", question)
	b.WriteString("User's solved queries:\n")
	for _, q := range user.SolvedQueries {
		fmt.Fprintf(&b, "- %s\n", q)
	}
	b.WriteString("\nGive me just a number from 0-10 where:\n")
	b.WriteString("- 10 = extremely relevant\n")
	b.WriteString("- 5 = moderately relevant\n")
	b.WriteString("- 0 = not relevant\n\n")
	b.WriteString("Just respond with the number only.")
	return b.String()
}

// parseScore extracts the first integer from a model reply and clamps it to
// [0, 10]. An unparseable reply scores zero.
func parseScore(reply string) int {
	m := firstInteger.FindString(strings.TrimSpace(reply))
	if m == "" {
		return 0
	}
	score, err := strconv.Atoi(m)
	if err != nil {
		return 0
	}
	return min(10, max(0, score))
}

func reasoningFor(score int) string {
	switch {
	case score >= 8:
		return "High relevance - user has strong expertise in this domain"
	case score >= 5:
		return "Moderate relevance - user has some related experience"
	case score >= 2:
		return "Low relevance - user has limited related experience"
	default:
		return "No relevance - user's expertise is in different domains"
	}
}

// matchingQueries returns solved queries sharing at least two words with the
// question, case-insensitive, capped at maxMatchingQueries.
func matchingQueries(solved []string, question string) []string {
	questionWords := wordSet(question)

	matched := []string{}
	for _, q := range solved {
		shared := 0
		for w := range wordSet(q) {
			if _, ok := questionWords[w]; ok {
				shared++
			}
		}
		if shared >= 2 {
			matched = append(matched, q)
			if len(matched) == maxMatchingQueries {
				break
			}
		}
	}
	return matched
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = struct{}{}
	}
	return set
}
