package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/models"
)

func (h *Handler) CreateSchool(c *gin.Context) {
	var input models.NewSchool
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", err.Error()))
		return
	}
	school, err := h.schools.Create(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, school)
}

func (h *Handler) ListSchools(c *gin.Context) {
	limit, offset := pageParams(c)
	page, err := h.schools.List(c.Request.Context(), limit, offset)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetSchool(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	school, err := h.schools.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if school == nil {
		h.respondNotFound(c, "School")
		return
	}
	c.JSON(http.StatusOK, school)
}

func (h *Handler) UpdateSchool(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.UpdateSchool
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", err.Error()))
		return
	}
	school, err := h.schools.Update(c.Request.Context(), id, &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if school == nil {
		h.respondNotFound(c, "School")
		return
	}
	c.JSON(http.StatusOK, school)
}

func (h *Handler) DeleteSchool(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := h.schools.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		h.respondNotFound(c, "School")
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSchoolStatement serves the school statement through the read-through
// cache: cached bytes are returned verbatim, misses recompute and repopulate.
func (h *Handler) GetSchoolStatement(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	ctx := c.Request.Context()

	key := cache.BuildKey(c.Request.Method, c.Request.URL.Path, c.Request.URL.Query())
	if blob, hit := h.cache.Get(ctx, key); hit {
		c.Data(http.StatusOK, "application/json; charset=utf-8", blob)
		return
	}

	statement, err := h.statements.GetSchoolStatement(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if statement == nil {
		h.respondNotFound(c, "School")
		return
	}

	blob, err := json.Marshal(statement)
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.cache.Set(ctx, key, blob, cache.TTL())
	c.Data(http.StatusOK, "application/json; charset=utf-8", blob)
}
