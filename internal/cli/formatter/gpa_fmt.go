package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

func FormatCourses(courses []*domain.Course) string {
	t := NewTable("ID", "CODE", "COURSE", "CREDITS", "GRADE", "TERM").
		AlignRight(3).
		Empty("No courses recorded. Add one with: scholar gpa add NAME --credits 3 --grade A")
	for _, c := range courses {
		t.Row(TruncID(c.ID), c.Code, c.Name, fmt.Sprintf("%g", c.Credits), c.Grade, c.Term)
	}
	return t.String()
}

// FormatGPA renders the cumulative GPA followed by a per-term breakdown
// when more than one term is recorded.
func FormatGPA(resp *contract.GPAResponse) string {
	var b strings.Builder
	fmt.Fprintf(&b, "GPA %s  %s\n", Bold(fmt.Sprintf("%.2f", resp.GPA)), gpaStyle(resp.GPA).Render(resp.Classification))
	fmt.Fprintf(&b, "%s\n", Dim(fmt.Sprintf("%d courses · %g credits · %.1f quality points",
		resp.Courses, resp.Credits, resp.QualityPoints)))

	if len(resp.Terms) > 1 {
		b.WriteString("\n")
		t := NewTable("TERM", "GPA", "CREDITS", "COURSES").AlignRight(1, 2, 3)
		for _, term := range resp.Terms {
			name := term.Term
			if name == "" {
				name = Dim("(no term)")
			}
			t.Row(name, fmt.Sprintf("%.2f", term.GPA), fmt.Sprintf("%g", term.Credits), fmt.Sprint(term.Courses))
		}
		b.WriteString(t.String())
	}
	return b.String()
}

func gpaStyle(gpa float64) lipgloss.Style {
	switch {
	case gpa >= 3.0:
		return StyleGreen
	case gpa >= 2.0:
		return StyleYellow
	default:
		return StyleRed
	}
}
