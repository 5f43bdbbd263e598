package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendance-server/internal/domain"
)

type DepartmentResponse struct {
	ID             int64  `json:"department_id"`
	Name           string `json:"name"`
	DepartmentHead string `json:"department_head"`
	CreatedAt      string `json:"date_created"`
	UpdatedAt      string `json:"updated_at"`
}

func departmentToResponse(department domain.Department) DepartmentResponse {
	return DepartmentResponse{
		ID:             department.ID,
		Name:           department.Name,
		DepartmentHead: department.DepartmentHead,
		CreatedAt:      department.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      department.UpdatedAt.Format(time.RFC3339),
	}
}

type departmentRequest struct {
	Name           string `json:"name" binding:"required"`
	DepartmentHead string `json:"department_head" binding:"required"`
}

func (h *Handler) listDepartments(c *gin.Context) {
	departments, err := h.departments.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]DepartmentResponse, len(departments))
	for i := range departments {
		resp[i] = departmentToResponse(departments[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getDepartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	department, err := h.departments.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if department == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "department not found"})
		return
	}

	c.JSON(http.StatusOK, departmentToResponse(*department))
}

func (h *Handler) createDepartment(c *gin.Context) {
	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.departments.Create(c.Request.Context(), req.Name, req.DepartmentHead)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"department_id": outcome.ID,
		"message":       outcome.Message,
	})
}

func (h *Handler) updateDepartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req departmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.departments.Update(c.Request.Context(), id, req.Name, req.DepartmentHead)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": outcome.Success, "message": outcome.Message})
}

func (h *Handler) deleteDepartment(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	outcome, err := h.departments.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": outcome.Success, "message": outcome.Message})
}
