package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/importer"
)

// planID maps the "active" alias to the service's empty plan ID.
func planID(c *gin.Context) string {
	id := c.Param("id")
	if id == "active" {
		return ""
	}
	return id
}

// bindOptionalJSON accepts an empty body as the zero value.
func bindOptionalJSON(c *gin.Context, v any) bool {
	if c.Request.ContentLength == 0 {
		return true
	}
	return bindJSON(c, v)
}

func (h *handler) listPlans(c *gin.Context) {
	plans, err := h.Plans.List(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if plans == nil {
		plans = []*domain.Plan{}
	}
	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

func (h *handler) createPlan(c *gin.Context) {
	var req contract.CreatePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.Plans.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *handler) importPlan(c *gin.Context) {
	var schema importer.ImportSchema
	if !bindJSON(c, &schema) {
		return
	}
	plan, err := h.Plans.Import(c.Request.Context(), userID(c), &schema)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *handler) exportPlan(c *gin.Context) {
	schema, err := h.Plans.Export(c.Request.Context(), userID(c), planID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schema)
}

func (h *handler) getPlan(c *gin.Context) {
	plan, err := h.Plans.Get(c.Request.Context(), userID(c), planID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *handler) deletePlan(c *gin.Context) {
	if err := h.Plans.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) activatePlan(c *gin.Context) {
	if err := h.Plans.Activate(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) addSubject(c *gin.Context) {
	var in contract.SubjectInput
	if !bindJSON(c, &in) {
		return
	}
	sub, err := h.Plans.AddSubject(c.Request.Context(), userID(c), planID(c), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, sub)
}

func (h *handler) updateSubject(c *gin.Context) {
	var patch domain.SubjectPatch
	if !bindJSON(c, &patch) {
		return
	}
	sub, err := h.Plans.UpdateSubject(c.Request.Context(), userID(c), planID(c), c.Param("subjectID"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *handler) removeSubject(c *gin.Context) {
	if err := h.Plans.RemoveSubject(c.Request.Context(), userID(c), planID(c), c.Param("subjectID")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) updatePreferences(c *gin.Context) {
	var patch domain.PreferencesPatch
	if !bindJSON(c, &patch) {
		return
	}
	prefs, err := h.Plans.UpdatePreferences(c.Request.Context(), userID(c), planID(c), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *handler) generate(c *gin.Context) {
	var req contract.GenerateRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	if req.Now == nil {
		now := h.Now()
		req.Now = &now
	}
	resp, err := h.Plans.Generate(c.Request.Context(), userID(c), planID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) toggleTask(c *gin.Context) {
	var req contract.ToggleTaskRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	resp, err := h.Plans.SetTaskCompleted(c.Request.Context(), userID(c), planID(c), c.Param("taskID"), req.Completed)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) analytics(c *gin.Context) {
	resp, err := h.Plans.Analytics(c.Request.Context(), userID(c), planID(c), h.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) today(c *gin.Context) {
	view, err := h.Plans.Today(c.Request.Context(), userID(c), h.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handler) preview(c *gin.Context) {
	var req contract.PreviewRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Plans.Preview(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
