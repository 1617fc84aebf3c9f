package domain

// Match is a raw nearest-neighbor hit: a stored complaint plus the
// provider-reported distance (lower = more similar, unbounded above).
type Match struct {
	id       string
	text     string
	distance float64
}

// NewMatch creates a raw search hit.
func NewMatch(id, text string, distance float64) Match {
	return Match{id: id, text: text, distance: distance}
}

// ID returns the matched complaint identifier.
func (m *Match) ID() string { return m.id }

// Text returns the matched complaint text.
func (m *Match) Text() string { return m.text }

// Distance returns the raw distance to the query.
func (m *Match) Distance() float64 { return m.distance }

// SimilarityScore converts distance into a user-facing score bounded below
// at zero: max(0, 1-distance). Monotonically decreasing in distance.
func (m *Match) SimilarityScore() float64 {
	return max(0, 1-m.distance)
}
