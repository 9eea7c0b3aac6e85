package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/scheduler"
)

func FormatPlanList(plans []*domain.Plan) string {
	table := make([][]string, 0, len(plans))
	for _, p := range plans {
		marker := " "
		if p.IsActive {
			marker = StyleGreen.Render("●")
		}
		table = append(table, []string{
			marker,
			TruncID(p.ID),
			p.Title,
			fmt.Sprintf("%d", len(p.Subjects)),
			fmt.Sprintf("%d", len(p.Sessions)),
			RenderCompactBar(p.Analytics.Efficiency, 10, false),
		})
	}
	return RenderTable([]string{"", "ID", "TITLE", "SUBJECTS", "SESSIONS", "DONE"}, table,
		"No plans yet. Create one with: scholar plan new --title \"Finals\"")
}

// FormatPlan renders a plan overview: subjects, preferences and progress.
func FormatPlan(p *domain.Plan, now time.Time) string {
	var b strings.Builder
	title := p.Title
	if p.IsActive {
		title += "  " + StyleGreen.Render("(active)")
	}
	b.WriteString(Bold(title) + "  " + TruncID(p.ID) + "\n")
	if p.Description != "" {
		b.WriteString(Dim(p.Description) + "\n")
	}
	b.WriteString("\n" + Header("Subjects") + "\n")
	b.WriteString(FormatSubjects(p.Subjects, now))
	b.WriteString("\n" + Header("Preferences") + "\n")
	b.WriteString(FormatPreferences(p.Preferences))
	if len(p.Sessions) > 0 {
		b.WriteString("\n" + Header("Progress") + "\n")
		b.WriteString(formatAnalyticsLines(p.Analytics))
	}
	return b.String()
}

func FormatSubjects(subjects []domain.Subject, now time.Time) string {
	rows := make([][]string, 0, len(subjects))
	for _, s := range subjects {
		rows = append(rows, []string{
			Swatch(s.Color),
			TruncID(s.ID),
			s.Name,
			PriorityBadge(s.Priority),
			DeadlineFrom(s.Deadline, now),
			FormatHours(s.EstimatedHours),
		})
	}
	return RenderTable([]string{"", "ID", "SUBJECT", "PRIORITY", "DEADLINE", "ESTIMATE"}, rows,
		"No subjects. Add one with: scholar subject add NAME")
}

func FormatPreferences(p domain.Preferences) string {
	slots := make([]string, len(p.PreferredTimeSlots))
	for i, s := range p.PreferredTimeSlots {
		slots[i] = string(s)
	}
	days := p.StudyDays.String()
	if days == "" {
		days = StyleRed.Render("none")
	}
	lines := [][2]string{
		{"Daily study", FormatHours(p.DailyStudyHours)},
		{"Session length", FormatMinutes(p.SessionDuration)},
		{"Break length", FormatMinutes(p.BreakDuration)},
		{"Study days", days},
		{"Focus mode", string(p.FocusMode)},
		{"Time slots", strings.Join(slots, ", ")},
	}
	var b strings.Builder
	for _, l := range lines {
		fmt.Fprintf(&b, "  %-15s %s\n", l[0], l[1])
	}
	return b.String()
}

// FormatSession renders one day's tasks.
func FormatSession(s *domain.Session) string {
	var b strings.Builder
	header := fmt.Sprintf("%s  %s–%s  %s",
		Bold(s.Date.Format("Mon Jan 2")),
		s.StartTime.Format("15:04"), s.EndTime.Format("15:04"),
		Dim(FormatMinutes(s.TotalDuration)))
	b.WriteString(header + "\n")
	for _, t := range s.Tasks {
		check := "[ ]"
		switch {
		case t.IsBreak():
			check = Dim(" ~ ")
		case t.Completed:
			check = StyleGreen.Render("[✔]")
		}
		title := t.Title
		if t.IsBreak() {
			title = Dim(title)
		}
		fmt.Fprintf(&b, "  %s %s  %-8s %s  %s\n",
			check, t.ScheduledAt.Format("15:04"), TaskTypeBadge(t.Type), title,
			Dim(FormatMinutes(t.Duration)+" "+TruncID(t.ID)))
	}
	if len(s.Tasks) == 0 {
		b.WriteString(Dim("  nothing scheduled") + "\n")
	}
	return b.String()
}

// FormatSchedule lists every session of a generated plan.
func FormatSchedule(p *domain.Plan) string {
	if len(p.Sessions) == 0 {
		return Dim("No sessions yet. Run: scholar generate") + "\n"
	}
	parts := make([]string, 0, len(p.Sessions))
	for i := range p.Sessions {
		parts = append(parts, FormatSession(&p.Sessions[i]))
	}
	return strings.Join(parts, "\n")
}

// SubjectNames maps subject IDs to names, including the break pseudo-subject.
func SubjectNames(subjects []domain.Subject) map[string]string {
	names := make(map[string]string, len(subjects)+1)
	for _, s := range subjects {
		names[s.ID] = s.Name
	}
	names[domain.BreakSubjectID] = "Break"
	return names
}

func FormatToday(v *contract.TodayView) string {
	title := fmt.Sprintf("Today · %s", v.Date.Format("Monday, Jan 2"))
	if v.Session == nil {
		return RenderBox(title, Dim("No study session today. Enjoy the day off."))
	}
	body := FormatSession(v.Session) + "\n" + RenderProgress(v.Session.CompletionRate, 20)
	return RenderBox(title, strings.TrimRight(body, "\n"))
}

func FormatGenerate(resp *contract.GenerateResponse) string {
	var b strings.Builder
	a := resp.Plan.Analytics
	fmt.Fprintf(&b, "Generated %s sessions with %d tasks (%s of study).\n",
		Bold(fmt.Sprint(len(resp.Plan.Sessions))), a.TotalTasks, FormatHours(round1(a.TotalHours)))

	names := SubjectNames(resp.Plan.Subjects)
	if len(resp.Dropped) > 0 {
		fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("Dropped overdue:"), joinNames(resp.Dropped, names))
	} else if len(resp.Overdue) > 0 {
		fmt.Fprintf(&b, "%s %s\n", StyleYellow.Render("Overdue, scheduled from today:"), joinNames(resp.Overdue, names))
	}
	b.WriteString("\n" + Header("Risk") + "\n")
	b.WriteString(FormatRisks(resp.Risks))
	return b.String()
}

func FormatRisks(risks []scheduler.RiskResult) string {
	t := NewTable("SUBJECT", "RISK", "DAYS LEFT", "SCHEDULED", "COVERAGE").
		AlignRight(2, 3, 4).
		Empty("No subjects.")
	for _, r := range risks {
		days := Dim("--")
		if r.DaysLeft != nil {
			days = fmt.Sprintf("%d", *r.DaysLeft)
		}
		t.Row(
			r.SubjectName,
			RiskIndicator(r.Level),
			days,
			FormatMinutes(r.ScheduledMin)+" / "+FormatMinutes(r.EstimatedMin),
			fmt.Sprintf("%.0f%%", r.CoveragePct),
		)
	}
	return t.String()
}

func FormatAnalytics(resp *contract.AnalyticsResponse) string {
	return formatAnalyticsLines(resp.Analytics) + "\n" + Header("Risk") + "\n" + FormatRisks(resp.Risks)
}

func formatAnalyticsLines(a domain.Analytics) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-15s %s\n", "Completed", fmt.Sprintf("%d / %d tasks", a.CompletedTasks, a.TotalTasks))
	fmt.Fprintf(&b, "  %-15s %s\n", "Efficiency", RenderProgress(a.Efficiency, 20))
	fmt.Fprintf(&b, "  %-15s %s\n", "Planned", FormatHours(round1(a.TotalHours)))
	streak := fmt.Sprintf("%d day", a.Streak)
	if a.Streak != 1 {
		streak += "s"
	}
	if a.Streak > 0 {
		streak = StyleGreen.Render(streak)
	}
	fmt.Fprintf(&b, "  %-15s %s\n", "Streak", streak)
	return b.String()
}

func joinNames(ids []string, names map[string]string) string {
	out := make([]string, len(ids))
	for i, id := range ids {
		if n, ok := names[id]; ok {
			out[i] = n
		} else {
			out[i] = id
		}
	}
	return strings.Join(out, ", ")
}

func round1(f float64) float64 {
	return float64(int(f*10+0.5)) / 10
}
