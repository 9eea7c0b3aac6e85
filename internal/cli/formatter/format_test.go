package formatter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/gpa"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/scheduler"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/search"
)

var fmtNow = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

func samplePlan() *domain.Plan {
	deadline := fmtNow.AddDate(0, 0, 5)
	day := time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC)
	start := day.Add(9 * time.Hour)
	sess := domain.Session{
		ID:        "session-1",
		Date:      day,
		StartTime: start,
		Tasks: []domain.Task{
			{ID: "task-aaaaaaaa-1", SubjectID: "s1", Title: "Calculus: limits", Duration: 45, Type: domain.TaskStudy, ScheduledAt: start, Completed: true},
			{ID: "task-aaaaaaaa-2", SubjectID: domain.BreakSubjectID, Title: "Break", Duration: 15, Type: domain.TaskBreak, ScheduledAt: start.Add(45 * time.Minute)},
			{ID: "task-aaaaaaaa-3", SubjectID: "s1", Title: "Calculus: practice", Duration: 45, Type: domain.TaskPractice, ScheduledAt: start.Add(time.Hour)},
		},
	}
	sess.Recompute()
	return &domain.Plan{
		ID:       "plan-0001-abcdef",
		Title:    "Finals",
		IsActive: true,
		Subjects: []domain.Subject{
			{ID: "s1", Name: "Calculus", Priority: domain.PriorityHigh, Deadline: &deadline, EstimatedHours: 6, Color: "#3B82F6"},
		},
		Preferences: domain.DefaultPreferences(),
		Sessions:    []domain.Session{sess},
		Analytics:   domain.Analytics{TotalHours: 1.5, CompletedTasks: 1, TotalTasks: 2, Efficiency: 50, Streak: 1},
	}
}

func TestFormatPlanList(t *testing.T) {
	got := FormatPlanList([]*domain.Plan{samplePlan()})
	assert.Contains(t, got, "Finals")
	assert.Contains(t, got, "plan-000")
	assert.Contains(t, got, "●")

	assert.Contains(t, FormatPlanList(nil), "No plans yet")
}

func TestFormatPlan(t *testing.T) {
	got := FormatPlan(samplePlan(), fmtNow)
	assert.Contains(t, got, "Finals")
	assert.Contains(t, got, "(active)")
	assert.Contains(t, got, "Calculus")
	assert.Contains(t, got, "Oct 24")
	assert.Contains(t, got, "SUBJECTS")
	assert.Contains(t, got, "mon,tue,wed,thu,fri")
	assert.Contains(t, got, "1 / 2 tasks")
	assert.Contains(t, got, "1 day")
}

func TestFormatSession(t *testing.T) {
	p := samplePlan()
	got := FormatSession(&p.Sessions[0])
	assert.Contains(t, got, "Mon Oct 19")
	assert.Contains(t, got, "09:00")
	assert.Contains(t, got, "[✔]")
	assert.Contains(t, got, "[ ]")
	assert.Contains(t, got, "Calculus: practice")
	assert.Contains(t, got, "1h 45m")
}

func TestFormatScheduleEmpty(t *testing.T) {
	assert.Contains(t, FormatSchedule(&domain.Plan{}), "scholar generate")
}

func TestFormatToday(t *testing.T) {
	p := samplePlan()
	view := &contract.TodayView{PlanID: p.ID, PlanTitle: p.Title, Date: fmtNow, Session: &p.Sessions[0], Subjects: SubjectNames(p.Subjects)}
	got := FormatToday(view)
	assert.Contains(t, got, "MONDAY, OCT 19")
	assert.Contains(t, got, "50%")

	off := FormatToday(&contract.TodayView{Date: fmtNow})
	assert.Contains(t, off, "No study session today")
}

func TestFormatGenerateListsOverdue(t *testing.T) {
	p := samplePlan()
	p.Subjects = append(p.Subjects, domain.Subject{ID: "s2", Name: "History", Priority: domain.PriorityLow, EstimatedHours: 2})
	days := 5
	resp := &contract.GenerateResponse{
		Plan:    p,
		Overdue: []string{"s2"},
		Dropped: []string{"s2"},
		Risks: []scheduler.RiskResult{
			{SubjectID: "s1", SubjectName: "Calculus", Level: domain.RiskAtRisk, DaysLeft: &days, EstimatedMin: 360, ScheduledMin: 90, CoveragePct: 25},
		},
	}
	got := FormatGenerate(resp)
	assert.Contains(t, got, "Dropped overdue: History")
	assert.Contains(t, got, "AT RISK")
	assert.Contains(t, got, "1h 30m / 6h")
	assert.Contains(t, got, "25%")
}

func TestSubjectNamesIncludesBreak(t *testing.T) {
	names := SubjectNames([]domain.Subject{{ID: "s1", Name: "Calculus"}})
	assert.Equal(t, "Calculus", names["s1"])
	assert.Equal(t, "Break", names[domain.BreakSubjectID])
}

func TestFormatGPA(t *testing.T) {
	resp := &contract.GPAResponse{
		Summary: gpa.Summary{
			GPA: 3.5, Credits: 6, QualityPoints: 21, Courses: 2,
			Terms: []gpa.TermSummary{
				{Term: "2025/1", GPA: 4, Credits: 3, Courses: 1},
				{Term: "2025/2", GPA: 3, Credits: 3, Courses: 1},
			},
		},
		Classification: gpa.Classification(3.5),
	}
	got := FormatGPA(resp)
	assert.Contains(t, got, "3.50")
	assert.Contains(t, got, "Second Class Upper")
	assert.Contains(t, got, "2025/2")

	assert.Contains(t, FormatCourses(nil), "No courses recorded")
}

func TestFormatQuizReveal(t *testing.T) {
	qs := []domain.QuizQuestion{{Question: "2+2?", Options: []string{"3", "4"}, AnswerIndex: 1, Explanation: "arithmetic"}}

	hidden := FormatQuiz(qs, false)
	assert.Contains(t, hidden, "B) 4")
	assert.NotContains(t, hidden, "✔")
	assert.NotContains(t, hidden, "arithmetic")

	shown := FormatQuiz(qs, true)
	assert.Contains(t, shown, "B) 4  ✔")
	assert.Contains(t, shown, "arithmetic")
}

func TestFormatStudyPack(t *testing.T) {
	pack := &contract.StudyPack{
		Notes:      &domain.Notes{Title: "Limits", Summary: "Approaching values", KeyPoints: []string{"epsilon-delta"}},
		Flashcards: []domain.Flashcard{{Front: "limit", Back: "value approached"}},
	}
	got := FormatStudyPack(pack, false)
	assert.Contains(t, got, "LIMITS")
	assert.Contains(t, got, "epsilon-delta")
	assert.Contains(t, got, "FLASHCARDS")
	assert.Contains(t, got, "value approached")
	assert.NotContains(t, got, "QUIZ")
}

func TestFormatHistoryAndSearch(t *testing.T) {
	items := []*domain.Interaction{
		{Kind: domain.InteractionChat, Provider: "openai", Prompt: "explain limits", LatencyMs: 120, Success: true, CreatedAt: fmtNow.Add(-time.Hour)},
		{Kind: domain.InteractionSearch, Provider: "serper", Prompt: "limits", Success: false, CreatedAt: fmtNow},
	}
	got := FormatHistory(items, fmtNow)
	assert.Contains(t, got, "1h ago")
	assert.Contains(t, got, "failed")
	assert.Contains(t, got, "120ms")

	res := FormatSearchResults([]search.Result{{Title: "Limits", Link: "https://example.com", Snippet: "intro"}})
	assert.Contains(t, res, "https://example.com")
	assert.Contains(t, FormatSearchResults(nil), "No results")
}
