// Package httpapi exposes the scholar services as a JSON API over gin.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/logger"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/ratelimit"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/service"
)

// Deps are the collaborators the router dispatches to. Limiter may be nil
// to disable rate limiting.
type Deps struct {
	Plans     service.PlanService
	GPA       service.GPAService
	Materials service.MaterialService
	Tutor     service.TutorService
	History   service.HistoryService
	Search    service.SearchService

	JWTSecret   string
	CORSOrigins []string
	Limiter     ratelimit.Limiter
	Log         *logger.Logger
	// Now overrides the clock for analytics and today views.
	Now         func() time.Time
}

type handler struct {
	Deps
}

func NewRouter(deps Deps) *gin.Engine {
	if deps.Log == nil {
		deps.Log = logger.NewNop()
	}
	if deps.Limiter == nil {
		deps.Limiter = ratelimit.Noop{}
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	h := &handler{Deps: deps}

	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(deps.Log))
	if len(deps.CORSOrigins) > 0 {
		router.Use(CORS(deps.CORSOrigins))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api", RequireAuth(deps.JWTSecret))

	// Plans
	api.GET("/plans", h.listPlans)
	api.POST("/plans", h.createPlan)
	api.POST("/plans/import", h.importPlan)
	api.GET("/plans/:id", h.getPlan)
	api.DELETE("/plans/:id", h.deletePlan)
	api.GET("/plans/:id/export", h.exportPlan)
	api.POST("/plans/:id/activate", h.activatePlan)
	api.POST("/plans/:id/subjects", h.addSubject)
	api.PATCH("/plans/:id/subjects/:subjectID", h.updateSubject)
	api.DELETE("/plans/:id/subjects/:subjectID", h.removeSubject)
	api.PATCH("/plans/:id/preferences", h.updatePreferences)
	api.POST("/plans/:id/generate", h.generate)
	api.PATCH("/plans/:id/tasks/:taskID", h.toggleTask)
	api.GET("/plans/:id/analytics", h.analytics)
	api.GET("/today", h.today)
	api.POST("/schedule/preview", h.preview)

	// GPA
	api.GET("/courses", h.listCourses)
	api.POST("/courses", h.addCourse)
	api.DELETE("/courses/:id", h.removeCourse)
	api.GET("/gpa", h.gpaSummary)

	// Materials
	api.GET("/materials", h.listMaterials)
	api.POST("/materials", h.createMaterial)
	api.GET("/materials/:id", h.getMaterial)
	api.DELETE("/materials/:id", h.deleteMaterial)

	// AI and search
	ai := api.Group("", RateLimit(deps.Limiter, "ai"))
	ai.POST("/tutor/chat", h.chat)
	ai.POST("/tutor/study-aids", h.studyAids)
	ai.GET("/search", h.search)

	api.GET("/history", h.history)

	return router
}

// NewServer builds an http.Server with the timeouts used in production.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		// AI calls can take a while; leave room above the provider timeout.
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  2 * time.Minute,
	}
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, srv *http.Server, log *logger.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		log.Info("http_listen", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
