package analytics

import "github.com/noah-isme/sma-analytics-api/pkg/stats"

// ComparisonPolicy decides whether the compared student counts towards the class average.
type ComparisonPolicy string

const (
	// PolicyInclusive keeps the student in the class average.
	PolicyInclusive ComparisonPolicy = "inclusive"
	// PolicyExclusive averages the student's classmates only.
	PolicyExclusive ComparisonPolicy = "exclusive"
)

// Comparison sets one student's score against their class.
type Comparison struct {
	StudentScore    *float64
	ClassAverage    *float64
	StudentsCounted int
}

// Compare scores each student as the mean of their marks in rows and compares studentID
// with the mean of the per-student scores. A student without marks has a nil score; a
// class without counted students has a nil average.
func Compare(rows []GradeRow, studentID string, policy ComparisonPolicy) Comparison {
	var result Comparison
	peers := make([]float64, 0)
	for _, g := range GroupByString(rows, func(r GradeRow) string { return r.StudentID }) {
		score := stats.Mean(Percentages(g.Rows))
		if g.Key == studentID {
			result.StudentScore = score
			if policy == PolicyExclusive {
				continue
			}
		}
		peers = append(peers, *score)
	}
	result.ClassAverage = stats.Mean(peers)
	result.StudentsCounted = len(peers)
	return result
}
