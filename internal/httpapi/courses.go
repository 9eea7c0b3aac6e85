package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

func (h *handler) listCourses(c *gin.Context) {
	courses, err := h.GPA.ListCourses(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if courses == nil {
		courses = []*domain.Course{}
	}
	c.JSON(http.StatusOK, gin.H{"courses": courses})
}

func (h *handler) addCourse(c *gin.Context) {
	var req contract.CreateCourseRequest
	if !bindJSON(c, &req) {
		return
	}
	course, err := h.GPA.AddCourse(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

func (h *handler) removeCourse(c *gin.Context) {
	if err := h.GPA.RemoveCourse(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) gpaSummary(c *gin.Context) {
	sum, err := h.GPA.Summary(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
