package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

// matchID resolves input against ids: an exact match wins, otherwise a
// unique prefix. what names the entity in error messages.
func matchID(what, input string, ids []string) (string, error) {
	if input == "" {
		return "", fmt.Errorf("%s ID is required", what)
	}
	for _, id := range ids {
		if id == input {
			return id, nil
		}
	}

	var matches []string
	for _, id := range ids {
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%s not found: %q", what, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s ID prefix %q is ambiguous (%d matches)", what, input, len(matches))
	}
}

// resolvePlanID maps a plan ID or prefix to a full ID. Empty input selects
// the active plan.
func resolvePlanID(ctx context.Context, app *App, input string) (string, error) {
	if input == "" {
		return "", nil
	}
	plans, err := app.Plans.List(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(plans))
	for i, p := range plans {
		ids[i] = p.ID
	}
	return matchID("plan", input, ids)
}

// resolveSubjectID accepts an ID, an ID prefix or an exact subject name.
func resolveSubjectID(plan *domain.Plan, input string) (string, error) {
	for _, s := range plan.Subjects {
		if strings.EqualFold(s.Name, input) {
			return s.ID, nil
		}
	}
	ids := make([]string, len(plan.Subjects))
	for i, s := range plan.Subjects {
		ids[i] = s.ID
	}
	return matchID("subject", input, ids)
}

func resolveTaskID(plan *domain.Plan, input string) (string, error) {
	var ids []string
	for _, s := range plan.Sessions {
		for _, t := range s.Tasks {
			ids = append(ids, t.ID)
		}
	}
	return matchID("task", input, ids)
}

func resolveMaterialID(ctx context.Context, app *App, input string) (string, error) {
	materials, err := app.Materials.List(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(materials))
	for i, m := range materials {
		ids[i] = m.ID
	}
	return matchID("material", input, ids)
}

func resolveCourseID(ctx context.Context, app *App, input string) (string, error) {
	courses, err := app.GPA.ListCourses(ctx, app.UserID)
	if err != nil {
		return "", err
	}
	ids := make([]string, len(courses))
	for i, c := range courses {
		ids[i] = c.ID
	}
	return matchID("course", input, ids)
}
