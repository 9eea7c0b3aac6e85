package domain

import (
	"fmt"
	"time"
)

// Plan is the root aggregate: it owns subjects, preferences, generated
// sessions and the analytics summarizing them.
type Plan struct {
	ID            string        `json:"id"`
	UserID        string        `json:"userId"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	IsActive      bool          `json:"isActive"`
	// OverduePolicy decides what generation does with subjects whose
	// deadline already passed. Empty means OverdueScheduleToday.
	OverduePolicy OverduePolicy `json:"overduePolicy,omitempty"`
	Subjects      []Subject     `json:"subjects"`
	Preferences   Preferences   `json:"preferences"`
	Sessions      []Session     `json:"sessions"`
	Analytics     Analytics     `json:"analytics"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// SubjectByID returns a pointer into the plan's subject list.
func (p *Plan) SubjectByID(id string) (*Subject, error) {
	for i := range p.Subjects {
		if p.Subjects[i].ID == id {
			return &p.Subjects[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSubjectNotFound, id)
}

// AddSubject validates and appends a subject. Subject names are unique
// within a plan (case-sensitive).
func (p *Plan) AddSubject(s Subject) error {
	if err := s.Validate(); err != nil {
		return err
	}
	for _, existing := range p.Subjects {
		if existing.ID == s.ID {
			return fmt.Errorf("subject ID %s already exists", s.ID)
		}
		if existing.Name == s.Name {
			return fmt.Errorf("subject %q already exists", s.Name)
		}
	}
	if s.Color == "" {
		s.Color = DefaultSubjectColors[len(p.Subjects)%len(DefaultSubjectColors)]
	}
	p.Subjects = append(p.Subjects, s)
	return nil
}

// RemoveSubject drops a subject. Sessions already generated keep their
// tasks until the next generation.
func (p *Plan) RemoveSubject(id string) error {
	for i := range p.Subjects {
		if p.Subjects[i].ID == id {
			p.Subjects = append(p.Subjects[:i], p.Subjects[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSubjectNotFound, id)
}

// FindTask locates a task by ID and returns the session and task indexes.
func (p *Plan) FindTask(taskID string) (sessionIdx, taskIdx int, err error) {
	for si := range p.Sessions {
		for ti := range p.Sessions[si].Tasks {
			if p.Sessions[si].Tasks[ti].ID == taskID {
				return si, ti, nil
			}
		}
	}
	return -1, -1, fmt.Errorf("%w: %s", ErrTaskNotFound, taskID)
}

// SetTaskCompleted marks a task done or not done and refreshes the owning
// session. It returns the session that changed.
func (p *Plan) SetTaskCompleted(taskID string, completed bool) (*Session, error) {
	si, ti, err := p.FindTask(taskID)
	if err != nil {
		return nil, err
	}
	sess := &p.Sessions[si]
	if sess.Tasks[ti].IsBreak() {
		return nil, ErrBreakNotCompletable
	}
	sess.Tasks[ti].Completed = completed
	sess.Recompute()
	return sess, nil
}

// ToggleTask flips a task's completion flag and returns the new value.
func (p *Plan) ToggleTask(taskID string) (bool, error) {
	si, ti, err := p.FindTask(taskID)
	if err != nil {
		return false, err
	}
	next := !p.Sessions[si].Tasks[ti].Completed
	if _, err := p.SetTaskCompleted(taskID, next); err != nil {
		return false, err
	}
	return next, nil
}

// SessionOn returns the session scheduled on the same calendar day as t.
func (p *Plan) SessionOn(t time.Time) *Session {
	y, m, d := t.Date()
	for i := range p.Sessions {
		sy, sm, sd := p.Sessions[i].Date.Date()
		if sy == y && sm == m && sd == d {
			return &p.Sessions[i]
		}
	}
	return nil
}
