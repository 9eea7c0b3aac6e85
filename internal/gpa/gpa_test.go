package gpa

import (
	"testing"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoints(t *testing.T) {
	p, graded, err := Points(" a- ")
	require.NoError(t, err)
	assert.True(t, graded)
	assert.Equal(t, 3.7, p)

	_, graded, err = Points("P")
	require.NoError(t, err)
	assert.False(t, graded)

	_, _, err = Points("Z")
	assert.ErrorIs(t, err, ErrUnknownGrade)
}

func TestGrades_DescendingPoints(t *testing.T) {
	grades := Grades()
	require.Len(t, grades, 13)
	assert.Equal(t, "A", grades[0])
	assert.Equal(t, "A+", grades[1])
	assert.Equal(t, "F", grades[len(grades)-1])
}

func TestCompute_CreditWeighted(t *testing.T) {
	courses := []domain.Course{
		{Name: "Calculus", Credits: 4, Grade: "A", Term: "2026-fall"},
		{Name: "History", Credits: 2, Grade: "C", Term: "2026-fall"},
		{Name: "Physics", Credits: 3, Grade: "B+", Term: "2027-spring"},
		{Name: "Seminar", Credits: 1, Grade: "P", Term: "2027-spring"},
	}

	sum, err := Compute(courses)
	require.NoError(t, err)

	// (16 + 4 + 9.9) / 9
	assert.InDelta(t, 3.32, sum.GPA, 1e-9)
	assert.Equal(t, 9.0, sum.Credits)
	assert.Equal(t, 4, sum.Courses)

	require.Len(t, sum.Terms, 2)
	assert.Equal(t, "2026-fall", sum.Terms[0].Term)
	assert.InDelta(t, 3.33, sum.Terms[0].GPA, 1e-9)
	assert.Equal(t, "2027-spring", sum.Terms[1].Term)
	assert.InDelta(t, 3.3, sum.Terms[1].GPA, 1e-9)
	assert.Equal(t, 2, sum.Terms[1].Courses)
}

func TestCompute_Empty(t *testing.T) {
	sum, err := Compute(nil)
	require.NoError(t, err)
	assert.Zero(t, sum.GPA)
	assert.Empty(t, sum.Terms)
}

func TestCompute_UnknownGradeFails(t *testing.T) {
	_, err := Compute([]domain.Course{{Name: "Art", Credits: 3, Grade: "E"}})
	assert.ErrorIs(t, err, ErrUnknownGrade)
}

func TestClassification(t *testing.T) {
	assert.Equal(t, "First Class", Classification(3.8))
	assert.Equal(t, "Second Class Upper", Classification(3.0))
	assert.Equal(t, "Second Class Lower", Classification(2.5))
	assert.Equal(t, "Pass", Classification(1.2))
	assert.Equal(t, "Fail", Classification(0.5))
}
