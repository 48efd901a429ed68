package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func marks(studentID string, values ...float64) []GradeRow {
	rows := make([]GradeRow, 0, len(values))
	for _, v := range values {
		rows = append(rows, GradeRow{StudentID: studentID, Percentage: v})
	}
	return rows
}

func TestCompareAveragesPerStudentScores(t *testing.T) {
	var rows []GradeRow
	rows = append(rows, marks("s1", 80, 100)...)
	rows = append(rows, marks("s2", 60)...)

	inclusive := Compare(rows, "s1", PolicyInclusive)
	require.NotNil(t, inclusive.StudentScore)
	assert.Equal(t, 90.0, *inclusive.StudentScore)
	assert.Equal(t, 75.0, *inclusive.ClassAverage)
	assert.Equal(t, 2, inclusive.StudentsCounted)

	exclusive := Compare(rows, "s1", PolicyExclusive)
	assert.Equal(t, 90.0, *exclusive.StudentScore)
	assert.Equal(t, 60.0, *exclusive.ClassAverage)
	assert.Equal(t, 1, exclusive.StudentsCounted)
}

func TestCompareStudentWithoutRecord(t *testing.T) {
	var rows []GradeRow
	rows = append(rows, marks("s1", 50)...)
	rows = append(rows, marks("s2", 60)...)
	rows = append(rows, marks("s3", 70)...)

	out := Compare(rows, "s9", PolicyInclusive)
	assert.Nil(t, out.StudentScore)
	assert.Equal(t, 60.0, *out.ClassAverage)
	assert.Equal(t, 3, out.StudentsCounted)
}

func TestCompareOnlyStudentMatchesClass(t *testing.T) {
	out := Compare(marks("s1", 72.5), "s1", PolicyInclusive)
	assert.Equal(t, *out.StudentScore, *out.ClassAverage)

	alone := Compare(marks("s1", 72.5), "s1", PolicyExclusive)
	assert.Nil(t, alone.ClassAverage)
	assert.Equal(t, 0, alone.StudentsCounted)
}

func TestCompareEmptyClass(t *testing.T) {
	out := Compare(nil, "s1", PolicyInclusive)
	assert.Nil(t, out.StudentScore)
	assert.Nil(t, out.ClassAverage)
	assert.Equal(t, 0, out.StudentsCounted)
}
