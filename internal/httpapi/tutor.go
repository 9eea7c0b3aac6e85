package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/contract"
	"github.com/emmanuelrichard01/caritas-ai-scholar-sub000/internal/domain"
)

func (h *handler) listMaterials(c *gin.Context) {
	list, err := h.Materials.List(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []*domain.Material{}
	}
	c.JSON(http.StatusOK, gin.H{"materials": list})
}

func (h *handler) createMaterial(c *gin.Context) {
	var req contract.CreateMaterialRequest
	if !bindJSON(c, &req) {
		return
	}
	m, err := h.Materials.Create(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, m)
}

func (h *handler) getMaterial(c *gin.Context) {
	m, err := h.Materials.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *handler) deleteMaterial(c *gin.Context) {
	if err := h.Materials.Delete(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) chat(c *gin.Context) {
	var req contract.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	resp, err := h.Tutor.Chat(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) studyAids(c *gin.Context) {
	var req contract.StudyAidRequest
	if !bindJSON(c, &req) {
		return
	}
	pack, err := h.Tutor.StudyPack(c.Request.Context(), userID(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pack)
}

func (h *handler) search(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	resp, err := h.Search.Search(c.Request.Context(), userID(c), c.Query("q"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) history(c *gin.Context) {
	limit, ok := queryInt(c, "limit", 0)
	if !ok {
		return
	}
	list, err := h.History.List(c.Request.Context(), userID(c), c.Query("kind"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	if list == nil {
		list = []*domain.Interaction{}
	}
	c.JSON(http.StatusOK, gin.H{"interactions": list})
}
