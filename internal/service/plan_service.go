package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/db"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/importer"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/scheduler"
)

// PlanDefaults seeds new plans and generation requests.
type PlanDefaults struct {
	Preferences   domain.Preferences
	HorizonDays   int
	OverduePolicy domain.OverduePolicy
	// Location interprets bare YYYY-MM-DD deadlines. Nil means time.Local.
	Location      *time.Location
}

func DefaultPlanDefaults() PlanDefaults {
	return PlanDefaults{
		Preferences:   domain.DefaultPreferences(),
		HorizonDays:   scheduler.DefaultHorizonDays,
		OverduePolicy: domain.OverdueScheduleToday,
		Location:      time.Local,
	}
}

type planService struct {
	plans    repository.PlanRepo
	uow      db.UnitOfWork
	defaults PlanDefaults
	observer UseCaseObserver
}

func NewPlanService(plans repository.PlanRepo, uow db.UnitOfWork, defaults PlanDefaults, observers ...UseCaseObserver) PlanService {
	if defaults.Location == nil {
		defaults.Location = time.Local
	}
	if defaults.HorizonDays <= 0 {
		defaults.HorizonDays = scheduler.DefaultHorizonDays
	}
	return &planService{
		plans:    plans,
		uow:      uow,
		defaults: defaults,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Create stores a new plan. A user's first plan becomes the active one.
func (s *planService) Create(ctx context.Context, userID string, req contract.CreatePlanRequest) (plan *domain.Plan, err error) {
	done := observe(ctx, s.observer, "create-plan", userID, map[string]any{"title": req.Title})
	defer func() { done(err) }()

	if err = req.Validate(); err != nil {
		return nil, invalid(err)
	}
	policy, _ := domain.ParseOverduePolicy(req.OverduePolicy)
	if req.OverduePolicy == "" {
		policy = s.defaults.OverduePolicy
	}

	now := time.Now().UTC()
	plan = &domain.Plan{
		ID:            uuid.NewString(),
		UserID:        userID,
		Title:         strings.TrimSpace(req.Title),
		Description:   req.Description,
		OverduePolicy: policy,
		Subjects:      []domain.Subject{},
		Preferences:   s.defaults.Preferences,
		Sessions:      []domain.Session{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if req.Preferences != nil {
		plan.Preferences = *req.Preferences
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		_, activeErr := txPlans.GetActive(ctx, userID)
		switch {
		case errors.Is(activeErr, repository.ErrNotFound):
			plan.IsActive = true
		case activeErr != nil:
			return activeErr
		}
		return txPlans.Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Import validates a plan document and stores it as a new plan. Like Create,
// it becomes active when the user has no active plan.
func (s *planService) Import(ctx context.Context, userID string, schema *importer.ImportSchema) (plan *domain.Plan, err error) {
	done := observe(ctx, s.observer, "import-plan", userID, map[string]any{"title": schema.Plan.Title, "subjects": len(schema.Subjects)})
	defer func() { done(err) }()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, invalid(errors.Join(errs...))
	}
	if schema.Plan.OverduePolicy == "" {
		schema.Plan.OverduePolicy = string(s.defaults.OverduePolicy)
	}
	plan, err = importer.Convert(schema, s.defaults.Preferences, s.defaults.Location)
	if err != nil {
		return nil, invalid(err)
	}

	now := time.Now().UTC()
	plan.UserID = userID
	plan.CreatedAt = now
	plan.UpdatedAt = now

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		_, activeErr := txPlans.GetActive(ctx, userID)
		switch {
		case errors.Is(activeErr, repository.ErrNotFound):
			plan.IsActive = true
		case activeErr != nil:
			return activeErr
		}
		return txPlans.Create(ctx, plan)
	})
	if err != nil {
		return nil, err
	}
	return plan, nil
}

// Export renders a plan's subjects and preferences as an import document.
func (s *planService) Export(ctx context.Context, userID, planID string) (*importer.ImportSchema, error) {
	p, err := resolvePlan(ctx, s.plans, userID, planID)
	if err != nil {
		return nil, err
	}
	return importer.Export(p), nil
}

func (s *planService) List(ctx context.Context, userID string) ([]*domain.Plan, error) {
	return s.plans.List(ctx, userID)
}

func (s *planService) Get(ctx context.Context, userID, planID string) (*domain.Plan, error) {
	return resolvePlan(ctx, s.plans, userID, planID)
}

// resolvePlan loads planID, or the active plan when planID is empty.
func resolvePlan(ctx context.Context, plans repository.PlanRepo, userID, planID string) (*domain.Plan, error) {
	if planID != "" {
		return plans.GetByID(ctx, userID, planID)
	}
	p, err := plans.GetActive(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNoActivePlan
	}
	return p, err
}

func (s *planService) Activate(ctx context.Context, userID, planID string) (err error) {
	done := observe(ctx, s.observer, "activate-plan", userID, map[string]any{"plan_id": planID})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLitePlanRepo(tx).SetActive(ctx, userID, planID)
	})
}

// Delete removes a plan. Deleting the active plan promotes the most recently
// updated remaining plan, if any.
func (s *planService) Delete(ctx context.Context, userID, planID string) (err error) {
	done := observe(ctx, s.observer, "delete-plan", userID, map[string]any{"plan_id": planID})
	defer func() { done(err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		p, err := txPlans.GetByID(ctx, userID, planID)
		if err != nil {
			return err
		}
		if err := txPlans.Delete(ctx, userID, planID); err != nil {
			return err
		}
		if !p.IsActive {
			return nil
		}
		rest, err := txPlans.List(ctx, userID)
		if err != nil || len(rest) == 0 {
			return err
		}
		return txPlans.SetActive(ctx, userID, rest[0].ID)
	})
}

// mutate loads a plan, applies fn and saves it in one transaction.
func (s *planService) mutate(ctx context.Context, userID, planID string, fn func(p *domain.Plan) error) (*domain.Plan, error) {
	var out *domain.Plan
	err := s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txPlans := repository.NewSQLitePlanRepo(tx)
		p, err := resolvePlan(ctx, txPlans, userID, planID)
		if err != nil {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		p.UpdatedAt = time.Now().UTC()
		if err := txPlans.Update(ctx, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	return out, err
}

func (s *planService) AddSubject(ctx context.Context, userID, planID string, in contract.SubjectInput) (subject *domain.Subject, err error) {
	done := observe(ctx, s.observer, "add-subject", userID, map[string]any{"subject": in.Name})
	defer func() { done(err) }()

	sub, err := in.ToSubject(uuid.NewString(), s.defaults.Location)
	if err != nil {
		return nil, invalid(err)
	}
	p, err := s.mutate(ctx, userID, planID, func(p *domain.Plan) error {
		return invalid(p.AddSubject(sub))
	})
	if err != nil {
		return nil, err
	}
	return p.SubjectByID(sub.ID)
}

func (s *planService) UpdateSubject(ctx context.Context, userID, planID, subjectID string, patch domain.SubjectPatch) (*domain.Subject, error) {
	var updated domain.Subject
	_, err := s.mutate(ctx, userID, planID, func(p *domain.Plan) error {
		sub, err := p.SubjectByID(subjectID)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			for _, other := range p.Subjects {
				if other.ID != subjectID && other.Name == strings.TrimSpace(*patch.Name) {
					return invalid(fmt.Errorf("subject %q already exists", other.Name))
				}
			}
		}
		if err := patch.Apply(sub); err != nil {
			return invalid(err)
		}
		updated = *sub
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *planService) RemoveSubject(ctx context.Context, userID, planID, subjectID string) error {
	_, err := s.mutate(ctx, userID, planID, func(p *domain.Plan) error {
		return p.RemoveSubject(subjectID)
	})
	return err
}

func (s *planService) UpdatePreferences(ctx context.Context, userID, planID string, patch domain.PreferencesPatch) (*domain.Preferences, error) {
	p, err := s.mutate(ctx, userID, planID, func(p *domain.Plan) error {
		prefs, err := patch.Apply(p.Preferences)
		if err != nil {
			return invalid(err)
		}
		p.Preferences = prefs
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &p.Preferences, nil
}

// Generate replaces the plan's sessions with a freshly generated schedule.
// Completion flags of regenerated tasks are not carried over.
func (s *planService) Generate(ctx context.Context, userID, planID string, req contract.GenerateRequest) (resp *contract.GenerateResponse, err error) {
	fields := map[string]any{"plan_id": planID}
	done := observe(ctx, s.observer, "generate-schedule", userID, fields)
	defer func() { done(err) }()

	opts := scheduler.GenerateOptions{Today: time.Now().In(s.defaults.Location), HorizonDays: req.HorizonDays}
	if req.Now != nil {
		opts.Today = *req.Now
	}
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = s.defaults.HorizonDays
	}
	if err = scheduler.CheckHorizon(opts.HorizonDays); err != nil {
		return nil, invalid(err)
	}
	if req.OverduePolicy != "" {
		if opts.OverduePolicy, err = domain.ParseOverduePolicy(req.OverduePolicy); err != nil {
			return nil, invalid(err)
		}
	}

	var result scheduler.GenerateResult
	p, err := s.mutate(ctx, userID, planID, func(p *domain.Plan) error {
		if len(p.Subjects) == 0 {
			return ErrNoSubjects
		}
		if opts.OverduePolicy == "" {
			opts.OverduePolicy = p.OverduePolicy
		}
		var genErr error
		result, genErr = scheduler.GenerateSessions(p.Subjects, p.Preferences, opts)
		if genErr != nil {
			return genErr
		}
		p.Sessions = result.Sessions
		p.Analytics = result.Analytics
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["plan_id"] = p.ID
	fields["sessions"] = len(result.Sessions)
	fields["tasks"] = result.Analytics.TotalTasks
	fields["overdue"] = len(result.Overdue)

	return &contract.GenerateResponse{
		Plan:    p,
		Risks:   result.Risks,
		Overdue: result.Overdue,
		Dropped: result.Dropped,
	}, nil
}

// Preview runs generation on request data only.
func (s *planService) Preview(ctx context.Context, req contract.PreviewRequest) (*contract.PreviewResponse, error) {
	loc := s.defaults.Location
	today := time.Now().In(loc)
	if req.Today != "" {
		t, err := contract.ParseDate(req.Today, loc)
		if err != nil {
			return nil, invalid(err)
		}
		today = t
	}

	prefs := s.defaults.Preferences
	if req.Preferences != nil {
		prefs = *req.Preferences
	}
	if err := prefs.Validate(); err != nil {
		return nil, invalid(err)
	}
	policy, err := domain.ParseOverduePolicy(req.OverduePolicy)
	if err != nil {
		return nil, invalid(err)
	}

	subjects := make([]domain.Subject, 0, len(req.Subjects))
	for i, in := range req.Subjects {
		sub, err := in.ToSubject(fmt.Sprintf("subject-%d", i+1), loc)
		if err != nil {
			return nil, invalid(fmt.Errorf("subject %d: %w", i+1, err))
		}
		subjects = append(subjects, sub)
	}

	horizon := req.HorizonDays
	if horizon <= 0 {
		horizon = s.defaults.HorizonDays
	}
	if err := scheduler.CheckHorizon(horizon); err != nil {
		return nil, invalid(err)
	}
	result, err := scheduler.GenerateSessions(subjects, prefs, scheduler.GenerateOptions{
		Today:         today,
		HorizonDays:   horizon,
		OverduePolicy: policy,
	})
	if err != nil {
		return nil, err
	}
	return &contract.PreviewResponse{
		Sessions:  result.Sessions,
		Analytics: result.Analytics,
		Risks:     result.Risks,
		Overdue:   result.Overdue,
		Dropped:   result.Dropped,
	}, nil
}

// SetTaskCompleted sets or flips a task's completion flag and refreshes the
// plan analytics.
func (s *planService) SetTaskCompleted(ctx context.Context, userID, planID, taskID string, completed *bool) (*contract.ToggleTaskResponse, error) {
	resp := &contract.ToggleTaskResponse{TaskID: taskID}
	_, err := s.mutate(ctx, userID, planID, func(p *domain.Plan) error {
		si, ti, err := p.FindTask(taskID)
		if err != nil {
			return err
		}
		next := !p.Sessions[si].Tasks[ti].Completed
		if completed != nil {
			next = *completed
		}
		sess, err := p.SetTaskCompleted(taskID, next)
		if err != nil {
			return err
		}
		p.Analytics = scheduler.ComputeAnalytics(p.Sessions, time.Now().In(s.defaults.Location))

		resp.Completed = next
		resp.Session = *sess
		resp.Analytics = p.Analytics
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Analytics recomputes analytics and risk as of now without saving.
func (s *planService) Analytics(ctx context.Context, userID, planID string, now time.Time) (*contract.AnalyticsResponse, error) {
	p, err := resolvePlan(ctx, s.plans, userID, planID)
	if err != nil {
		return nil, err
	}
	return &contract.AnalyticsResponse{
		PlanID:    p.ID,
		Analytics: scheduler.ComputeAnalytics(p.Sessions, now),
		Risks:     scheduler.ComputePlanRisk(p.Subjects, p.Sessions, now),
	}, nil
}

func (s *planService) Today(ctx context.Context, userID string, now time.Time) (*contract.TodayView, error) {
	p, err := resolvePlan(ctx, s.plans, userID, "")
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(p.Subjects)+1)
	for _, sub := range p.Subjects {
		names[sub.ID] = sub.Name
	}
	names[domain.BreakSubjectID] = "Break"

	return &contract.TodayView{
		PlanID:    p.ID,
		PlanTitle: p.Title,
		Date:      scheduler.StartOfDay(now),
		Session:   p.SessionOn(now),
		Subjects:  names,
	}, nil
}
