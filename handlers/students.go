package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mattilda/billing_backend/cache"
	"github.com/mattilda/billing_backend/models"
)

func (h *Handler) CreateStudent(c *gin.Context) {
	var input models.NewStudent
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", err.Error()))
		return
	}
	student, err := h.students.Create(c.Request.Context(), &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, student)
}

func (h *Handler) ListStudents(c *gin.Context) {
	limit, offset := pageParams(c)
	schoolId, ok := intQuery(c, "school_id")
	if !ok {
		return
	}
	page, err := h.students.List(c.Request.Context(), limit, offset, schoolId)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *Handler) GetStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	student, err := h.students.Get(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if student == nil {
		h.respondNotFound(c, "Student")
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *Handler) UpdateStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.UpdateStudent
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("VALIDATION_ERROR", err.Error()))
		return
	}
	student, err := h.students.Update(c.Request.Context(), id, &input)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if student == nil {
		h.respondNotFound(c, "Student")
		return
	}
	c.JSON(http.StatusOK, student)
}

func (h *Handler) DeleteStudent(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	deleted, err := h.students.Delete(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !deleted {
		h.respondNotFound(c, "Student")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetStudentStatement(c *gin.Context) {
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

	statement, err := h.statements.GetStudentStatement(ctx, id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if statement == nil {
		h.respondNotFound(c, "Student")
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
