package chi

import (
	"math"

	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain"
	"github.com/Ritam-Vaskar/helpdesk-odoo/internal/domain/ranking"
	searchuc "github.com/Ritam-Vaskar/helpdesk-odoo/internal/usecase/search"
)

type textRequest struct {
	Text string `json:"text"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type addComplaintRequest struct {
	Text      string `json:"text"`
	Timestamp string `json:"timestamp,omitempty"`
	Category  string `json:"category,omitempty"`
	Priority  string `json:"priority,omitempty"`
	UserID    string `json:"user_id,omitempty"`
}

// metadata assembles the optional complaint attributes into the stored
// metadata record. Absent fields are omitted entirely.
func (r addComplaintRequest) metadata() map[string]string {
	md := make(map[string]string)
	if r.Timestamp != "" {
		md["timestamp"] = r.Timestamp
	}
	if r.Category != "" {
		md["category"] = r.Category
	}
	if r.Priority != "" {
		md["priority"] = r.Priority
	}
	if r.UserID != "" {
		md["user_id"] = r.UserID
	}
	return md
}

type addComplaintResponse struct {
	Message  string            `json:"message"`
	ID       string            `json:"id"`
	Metadata map[string]string `json:"metadata"`
}

type searchRequest struct {
	Query               string  `json:"query"`
	MaxResults          int     `json:"max_results"`
	SimilarityThreshold float64 `json:"similarity_threshold"`
}

type similarComplaint struct {
	ID              string  `json:"id"`
	Complaint       string  `json:"complaint"`
	SimilarityScore float64 `json:"similarity_score"`
	Distance        float64 `json:"distance"`
}

type searchResponse struct {
	Query             string             `json:"query"`
	TotalFound        int                `json:"total_found"`
	SimilarComplaints []similarComplaint `json:"similar_complaints"`
}

type enhancedSearchResponse struct {
	Query             string             `json:"query"`
	ExpandedSearches  int                `json:"expanded_searches"`
	TotalFound        int                `json:"total_found"`
	SimilarComplaints []similarComplaint `json:"similar_complaints"`
}

type complaintRecord struct {
	ID       string            `json:"id"`
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

type allComplaintsResponse struct {
	TotalComplaints int               `json:"total_complaints"`
	Complaints      []complaintRecord `json:"complaints"`
}

type userProfileRequest struct {
	UserID        string   `json:"userId"`
	SolvedQueries []string `json:"solvedQueries"`
}

type priorityUsersRequest struct {
	Question string               `json:"question"`
	Users    []userProfileRequest `json:"users"`
	TopN     int                  `json:"top_n,omitempty"`
}

type relevanceResult struct {
	UserID             string   `json:"userId"`
	RelevanceScore     int      `json:"relevance_score"`
	Reasoning          string   `json:"reasoning"`
	MatchingQueries    []string `json:"matching_queries"`
	TotalSolvedQueries int      `json:"total_solved_queries"`
}

type rankingSummary struct {
	HighestScore     int     `json:"highest_score"`
	MostRelevantUser *string `json:"most_relevant_user"`
}

type priorityUsersResponse struct {
	Question           string            `json:"question"`
	TotalUsersAnalyzed int               `json:"total_users_analyzed"`
	PriorityUsers      []relevanceResult `json:"priority_users"`
	Summary            rankingSummary    `json:"summary"`
}

func matchesToDTO(matches []domain.Match) []similarComplaint {
	out := make([]similarComplaint, len(matches))
	for i := range matches {
		m := &matches[i]
		out[i] = similarComplaint{
			ID:              m.ID(),
			Complaint:       m.Text(),
			SimilarityScore: round3(m.SimilarityScore()),
			Distance:        round3(m.Distance()),
		}
	}
	return out
}

func searchReportToDTO(r searchuc.Report) enhancedSearchResponse {
	return enhancedSearchResponse{
		Query:             r.Query,
		ExpandedSearches:  r.ExpandedSearches,
		TotalFound:        r.TotalFound,
		SimilarComplaints: matchesToDTO(r.Results),
	}
}

func usersFromDTO(users []userProfileRequest) []ranking.UserProfile {
	out := make([]ranking.UserProfile, len(users))
	for i, u := range users {
		out[i] = ranking.UserProfile{UserID: u.UserID, SolvedQueries: u.SolvedQueries}
	}
	return out
}

func rankingReportToDTO(r ranking.Report) priorityUsersResponse {
	users := make([]relevanceResult, len(r.Users))
	for i, u := range r.Users {
		users[i] = relevanceResult{
			UserID:             u.UserID,
			RelevanceScore:     u.RelevanceScore,
			Reasoning:          u.Reasoning,
			MatchingQueries:    u.MatchingQueries,
			TotalSolvedQueries: u.TotalSolvedQueries,
		}
	}

	summary := rankingSummary{HighestScore: r.Summary.HighestScore}
	if r.Summary.MostRelevantUser != "" {
		name := r.Summary.MostRelevantUser
		summary.MostRelevantUser = &name
	}

	return priorityUsersResponse{
		Question:           r.Question,
		TotalUsersAnalyzed: r.TotalAnalyzed,
		PriorityUsers:      users,
		Summary:            summary,
	}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
