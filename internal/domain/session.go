package domain

import "time"

type Task struct {
	ID          string     `json:"id"`
	SubjectID   string     `json:"subjectId"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Duration    int        `json:"duration"`
	Type        TaskType   `json:"type"`
	Completed   bool       `json:"completed"`
	ScheduledAt time.Time  `json:"scheduledAt"`
	Difficulty  Difficulty `json:"difficulty"`
}

// IsBreak reports whether the task is an inserted rest period.
func (t Task) IsBreak() bool {
	return t.Type == TaskBreak
}

// Session holds the tasks scheduled for one calendar day.
type Session struct {
	ID             string    `json:"id"`
	Date           time.Time `json:"date"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	Tasks          []Task    `json:"tasks"`
	TotalDuration  int       `json:"totalDuration"`
	CompletionRate float64   `json:"completionRate"`
}

// Recompute refreshes the derived duration, end time and completion rate
// from the session's tasks. Break tasks count toward duration but not
// toward completion.
func (s *Session) Recompute() {
	total := 0
	var studied, done int
	for _, t := range s.Tasks {
		total += t.Duration
		if t.IsBreak() {
			continue
		}
		studied++
		if t.Completed {
			done++
		}
	}
	s.TotalDuration = total
	s.EndTime = s.StartTime.Add(time.Duration(total) * time.Minute)
	if studied == 0 {
		s.CompletionRate = 0
		return
	}
	s.CompletionRate = float64(done) / float64(studied) * 100
}

// HasCompletedTask reports whether at least one non-break task is done.
func (s *Session) HasCompletedTask() bool {
	for _, t := range s.Tasks {
		if t.Completed && !t.IsBreak() {
			return true
		}
	}
	return false
}

type Analytics struct {
	TotalHours     float64        `json:"totalHours"`
	CompletedTasks int            `json:"completedTasks"`
	TotalTasks     int            `json:"totalTasks"`
	Efficiency     float64        `json:"efficiency"`
	Streak         int            `json:"streak"`
	SubjectMinutes map[string]int `json:"subjectMinutes,omitempty"`
}
