package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/importer"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/llm"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/ratelimit"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/repository"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/search"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/service"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/testutil"
)

const testSecret = "test-secret"

// monday is 2026-10-19, a Monday.
var monday = time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)

type fakeSearcher struct{}

func (fakeSearcher) Search(_ context.Context, query string, _ int) ([]search.Result, error) {
	return []search.Result{{Title: "About " + query, Link: "https://example.org", Position: 1}}, nil
}

type testServer struct {
	router *gin.Engine
	mock   *llm.MockProvider
	token  string
}

func newTestServer(t *testing.T, limiter ratelimit.Limiter) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database := testutil.NewTestDB(t)
	interactions := repository.NewSQLiteInteractionRepo(database)
	materials := repository.NewSQLiteMaterialRepo(database)
	mock := llm.NewMockProvider()

	defaults := service.DefaultPlanDefaults()
	defaults.Location = time.UTC
	router := NewRouter(Deps{
		Plans:     service.NewPlanService(repository.NewSQLitePlanRepo(database), testutil.NewTestUoW(database), defaults),
		GPA:       service.NewGPAService(repository.NewSQLiteCourseRepo(database)),
		Materials: service.NewMaterialService(materials),
		Tutor:     service.NewTutorService(mock, materials, testutil.NewTestUoW(database)),
		History:   service.NewHistoryService(interactions),
		Search:    service.NewSearchService(fakeSearcher{}, interactions),
		JWTSecret: testSecret,
		Limiter:   limiter,
		Now:       func() time.Time { return monday },
	})

	token, err := IssueToken(testSecret, testutil.TestUserID, time.Hour)
	require.NoError(t, err)
	return &testServer{router: router, mock: mock, token: token}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.token)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) contract.ErrorCode {
	t.Helper()
	return decode[contract.ErrorEnvelope](t, rec).Error.Code
}

func TestHealthzIsPublic(t *testing.T) {
	s := newTestServer(t, nil)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/plans", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, contract.ErrUnauthorized, errorCode(t, rec))

	forged, err := IssueToken("other-secret", "mallory", time.Hour)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/plans", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec = httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	expired, err := IssueToken(testSecret, "alice", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(testSecret, expired)
	assert.Error(t, err)
}

func TestIssueToken_RoundTrip(t *testing.T) {
	token, err := IssueToken(testSecret, "alice", time.Hour)
	require.NoError(t, err)

	sub, err := ParseToken(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", sub)

	_, err = IssueToken("", "alice", time.Hour)
	assert.Error(t, err)
}

func TestPlanFlow(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/plans", contract.CreatePlanRequest{Title: "Finals"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	plan := decode[domain.Plan](t, rec)
	assert.True(t, plan.IsActive)

	rec = s.do(t, http.MethodPost, "/api/plans/"+plan.ID+"/generate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, contract.ErrNoSubjects, errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/plans/active/subjects", contract.SubjectInput{
		Name: "Math", Priority: "high", Deadline: "2026-10-23", EstimatedHours: 10,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/plans/"+plan.ID+"/generate", contract.GenerateRequest{HorizonDays: 5})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	gen := decode[contract.GenerateResponse](t, rec)
	require.Len(t, gen.Plan.Sessions, 5)
	assert.Equal(t, time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC), gen.Plan.Sessions[0].Date.UTC())

	taskID := gen.Plan.Sessions[0].Tasks[0].ID
	rec = s.do(t, http.MethodPatch, "/api/plans/"+plan.ID+"/tasks/"+taskID, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	toggled := decode[contract.ToggleTaskResponse](t, rec)
	assert.True(t, toggled.Completed)
	assert.Equal(t, 1, toggled.Analytics.CompletedTasks)

	rec = s.do(t, http.MethodGet, "/api/plans/"+plan.ID+"/analytics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	analytics := decode[contract.AnalyticsResponse](t, rec)
	assert.Equal(t, 1, analytics.Analytics.Streak)

	rec = s.do(t, http.MethodGet, "/api/today", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[contract.TodayView](t, rec)
	require.NotNil(t, view.Session)
	assert.Equal(t, plan.ID, view.PlanID)

	rec = s.do(t, http.MethodPatch, "/api/plans/"+plan.ID+"/tasks/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/plans/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, contract.ErrNotFound, errorCode(t, rec))
}

func TestPlanImportExport(t *testing.T) {
	s := newTestServer(t, nil)
	deadline := "2026-10-23"

	rec := s.do(t, http.MethodPost, "/api/plans/import", importer.ImportSchema{
		Plan:     importer.PlanImport{Title: "Finals", OverduePolicy: "drop"},
		Subjects: []importer.SubjectImport{{Name: "Math", Priority: "high", Deadline: &deadline, EstimatedHours: 4}},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	plan := decode[domain.Plan](t, rec)
	assert.True(t, plan.IsActive)
	assert.Equal(t, domain.OverdueDrop, plan.OverduePolicy)
	require.Len(t, plan.Subjects, 1)

	rec = s.do(t, http.MethodGet, "/api/plans/active/export", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	exported := decode[importer.ImportSchema](t, rec)
	assert.Equal(t, "Finals", exported.Plan.Title)
	require.Len(t, exported.Subjects, 1)
	assert.Equal(t, deadline, *exported.Subjects[0].Deadline)

	rec = s.do(t, http.MethodPost, "/api/plans/import", importer.ImportSchema{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, contract.ErrInvalidInput, errorCode(t, rec))
}

func TestNoStudyDaysIs422(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/plans", contract.CreatePlanRequest{Title: "Finals"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/plans/active/subjects", contract.SubjectInput{Name: "Math", EstimatedHours: 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(t, http.MethodPatch, "/api/plans/active/preferences", map[string]any{"studyDays": []string{}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/plans/active/generate", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, contract.ErrNoStudyDays, errorCode(t, rec))
}

func TestPreview(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/schedule/preview", contract.PreviewRequest{
		Subjects: []contract.SubjectInput{
			{Name: "Math", Priority: "high", Deadline: "2026-10-23", EstimatedHours: 10},
			{Name: "History", Priority: "low", EstimatedHours: 4},
		},
		Today:       "2026-10-19",
		HorizonDays: 10,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decode[contract.PreviewResponse](t, rec)
	assert.Len(t, resp.Sessions, 10)
	assert.Len(t, resp.Risks, 2)

	rec = s.do(t, http.MethodPost, "/api/schedule/preview", contract.PreviewRequest{
		Subjects: []contract.SubjectInput{{Name: "Math", Priority: "urgent", EstimatedHours: 1}},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, contract.ErrInvalidInput, errorCode(t, rec))

	rec = s.do(t, http.MethodPost, "/api/schedule/preview", contract.PreviewRequest{
		Subjects:    []contract.SubjectInput{{Name: "Math", EstimatedHours: 1}},
		HorizonDays: 300000,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, contract.ErrInvalidInput, errorCode(t, rec))
}

func TestCoursesAndGPA(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/courses", contract.CreateCourseRequest{Name: "Calculus", Credits: 3, Grade: "A"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/courses", contract.CreateCourseRequest{Name: "Physics", Credits: 3, Grade: "B"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = s.do(t, http.MethodPost, "/api/courses", contract.CreateCourseRequest{Name: "Bad", Credits: 3, Grade: "Z"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/gpa", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	sum := decode[contract.GPAResponse](t, rec)
	assert.InDelta(t, 3.5, sum.GPA, 0.001)
	assert.Equal(t, "Second Class Upper", sum.Classification)
}

func TestTutorRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/materials", contract.CreateMaterialRequest{Title: "Week 1", Content: "Derivatives measure change."})
	require.Equal(t, http.StatusCreated, rec.Code)
	material := decode[domain.Material](t, rec)

	s.mock.AddResponse(llm.MockText("A derivative is a rate of change."))
	rec = s.do(t, http.MethodPost, "/api/tutor/chat", contract.ChatRequest{Message: "What is a derivative?", MaterialID: material.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "A derivative is a rate of change.", decode[contract.ChatResponse](t, rec).Reply)

	// Empty mock queue behaves like an unreachable provider.
	rec = s.do(t, http.MethodPost, "/api/tutor/chat", contract.ChatRequest{Message: "again"})
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, contract.ErrAIUnavailable, errorCode(t, rec))

	s.mock.AddResponse(llm.MockJSON(map[string]any{
		"cards": []map[string]string{{"front": "Derivative", "back": "Rate of change"}},
	}))
	rec = s.do(t, http.MethodPost, "/api/tutor/study-aids", contract.StudyAidRequest{MaterialID: material.ID, Kinds: []string{"flashcards"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	pack := decode[contract.StudyPack](t, rec)
	assert.Len(t, pack.Flashcards, 1)

	rec = s.do(t, http.MethodGet, "/api/search?q=chain+rule", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "chain rule", decode[contract.SearchResponse](t, rec).Query)

	rec = s.do(t, http.MethodGet, "/api/history?kind=search", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	history := decode[map[string][]domain.Interaction](t, rec)
	assert.Len(t, history["interactions"], 1)

	rec = s.do(t, http.MethodGet, "/api/history?limit=abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRateLimitOnAIRoutes(t *testing.T) {
	s := newTestServer(t, ratelimit.NewMemoryLimiter(2, time.Minute))

	for i := 0; i < 2; i++ {
		rec := s.do(t, http.MethodGet, "/api/search?q=x", nil)
		require.Equal(t, http.StatusOK, rec.Code)
	}
	rec := s.do(t, http.MethodGet, "/api/search?q=x", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, contract.ErrRateLimited, errorCode(t, rec))
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))

	// Non-AI routes are not charged.
	rec = s.do(t, http.MethodGet, "/api/plans", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(Deps{JWTSecret: testSecret, CORSOrigins: []string{"http://localhost:5173"}})

	req := httptest.NewRequest(http.MethodOptions, "/api/plans", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}
