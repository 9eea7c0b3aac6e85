package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/gpa"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
)

type gpaService struct {
	courses  repository.CourseRepo
	observer UseCaseObserver
}

func NewGPAService(courses repository.CourseRepo, observers ...UseCaseObserver) GPAService {
	return &gpaService{courses: courses, observer: useCaseObserverOrNoop(observers)}
}

func (s *gpaService) AddCourse(ctx context.Context, userID string, req contract.CreateCourseRequest) (course *domain.Course, err error) {
	done := observe(ctx, s.observer, "add-course", userID, map[string]any{"course": req.Name})
	defer func() { done(err) }()

	course = &domain.Course{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      strings.TrimSpace(req.Name),
		Code:      strings.TrimSpace(req.Code),
		Credits:   req.Credits,
		Grade:     gpa.NormalizeGrade(req.Grade),
		Term:      strings.TrimSpace(req.Term),
		CreatedAt: time.Now().UTC(),
	}
	if err = course.Validate(); err != nil {
		return nil, invalid(err)
	}
	if err = gpa.ValidateGrade(course.Grade); err != nil {
		return nil, invalid(err)
	}
	if err = s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *gpaService) ListCourses(ctx context.Context, userID string) ([]*domain.Course, error) {
	return s.courses.List(ctx, userID)
}

func (s *gpaService) RemoveCourse(ctx context.Context, userID, courseID string) error {
	return s.courses.Delete(ctx, userID, courseID)
}

// Summary computes the cumulative GPA over every stored course.
func (s *gpaService) Summary(ctx context.Context, userID string) (*contract.GPAResponse, error) {
	list, err := s.courses.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	courses := make([]domain.Course, len(list))
	for i, c := range list {
		courses[i] = *c
	}
	sum, err := gpa.Compute(courses)
	if err != nil {
		return nil, err
	}
	return &contract.GPAResponse{Summary: sum, Classification: gpa.Classification(sum.GPA)}, nil
}
