// Package gpa converts letter grades to grade points and computes
// credit-weighted averages on a 4.0 scale.
package gpa

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

var ErrUnknownGrade = errors.New("unknown grade")

var gradePoints = map[string]float64{
	"A+": 4.0, "A": 4.0, "A-": 3.7,
	"B+": 3.3, "B": 3.0, "B-": 2.7,
	"C+": 2.3, "C": 2.0, "C-": 1.7,
	"D+": 1.3, "D": 1.0, "D-": 0.7,
	"F": 0.0,
}

// Non-graded marks are accepted but excluded from every average.
var nonGraded = map[string]bool{"P": true, "W": true, "I": true}

// NormalizeGrade upper-cases and trims a grade string.
func NormalizeGrade(g string) string {
	return strings.ToUpper(strings.TrimSpace(g))
}

// Points returns the grade points for a letter grade. graded is false for
// pass, withdrawn and incomplete marks.
func Points(grade string) (points float64, graded bool, err error) {
	g := NormalizeGrade(grade)
	if nonGraded[g] {
		return 0, false, nil
	}
	p, ok := gradePoints[g]
	if !ok {
		return 0, false, fmt.Errorf("%w: %q", ErrUnknownGrade, grade)
	}
	return p, true, nil
}

// ValidateGrade reports whether grade exists on the scale.
func ValidateGrade(grade string) error {
	_, _, err := Points(grade)
	return err
}

// Grades lists the letter grades in descending order of points.
func Grades() []string {
	out := make([]string, 0, len(gradePoints))
	for g := range gradePoints {
		out = append(out, g)
	}
	sort.SliceStable(out, func(i, j int) bool {
		pi, pj := gradePoints[out[i]], gradePoints[out[j]]
		if pi != pj {
			return pi > pj
		}
		return out[i] < out[j]
	})
	return out
}

type TermSummary struct {
	Term          string  `json:"term"`
	GPA           float64 `json:"gpa"`
	Credits       float64 `json:"credits"`
	QualityPoints float64 `json:"qualityPoints"`
	Courses       int     `json:"courses"`
}

type Summary struct {
	GPA           float64       `json:"gpa"`
	Credits       float64       `json:"credits"`
	QualityPoints float64       `json:"qualityPoints"`
	Courses       int           `json:"courses"`
	Terms         []TermSummary `json:"terms"`
}

// Compute returns the cumulative and per-term GPA of courses. Terms are
// listed in first-seen order; courses without a term are grouped under "".
// Non-graded courses count in Courses but not in credits or averages.
func Compute(courses []domain.Course) (Summary, error) {
	var sum Summary
	termIdx := make(map[string]int)

	for _, c := range courses {
		points, graded, err := Points(c.Grade)
		if err != nil {
			return Summary{}, fmt.Errorf("course %q: %w", c.Name, err)
		}

		idx, ok := termIdx[c.Term]
		if !ok {
			idx = len(sum.Terms)
			termIdx[c.Term] = idx
			sum.Terms = append(sum.Terms, TermSummary{Term: c.Term})
		}
		term := &sum.Terms[idx]
		term.Courses++
		sum.Courses++
		if !graded {
			continue
		}

		qp := points * c.Credits
		term.Credits += c.Credits
		term.QualityPoints += qp
		sum.Credits += c.Credits
		sum.QualityPoints += qp
	}

	for i := range sum.Terms {
		sum.Terms[i].GPA = average(sum.Terms[i].QualityPoints, sum.Terms[i].Credits)
	}
	sum.GPA = average(sum.QualityPoints, sum.Credits)
	return sum, nil
}

// Classification names the honours band for a cumulative GPA.
func Classification(gpa float64) string {
	switch {
	case gpa >= 3.7:
		return "First Class"
	case gpa >= 3.0:
		return "Second Class Upper"
	case gpa >= 2.0:
		return "Second Class Lower"
	case gpa >= 1.0:
		return "Pass"
	default:
		return "Fail"
	}
}

func average(qualityPoints, credits float64) float64 {
	if credits == 0 {
		return 0
	}
	return math.Round(qualityPoints/credits*100) / 100
}
