package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendance-server/internal/domain"
	"attendance-server/internal/service"
)

type EmployeeResponse struct {
	ID            int64  `json:"employee_id"`
	DepartmentID  *int64 `json:"department_id"`
	UniqueID      string `json:"unique_id"`
	Lastname      string `json:"lastname"`
	Firstname     string `json:"firstname"`
	Middlename    string `json:"middlename,omitempty"`
	DisplayName   string `json:"display_name"`
	Age           *int   `json:"age,omitempty"`
	Gender        string `json:"gender,omitempty"`
	BiometricData string `json:"biometric_data,omitempty"`
	Image         []byte `json:"image,omitempty"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func employeeToResponse(employee domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            employee.ID,
		DepartmentID:  employee.DepartmentID,
		UniqueID:      employee.UniqueID,
		Lastname:      employee.Lastname,
		Firstname:     employee.Firstname,
		Middlename:    employee.Middlename,
		DisplayName:   employee.DisplayName,
		Age:           employee.Age,
		Gender:        employee.Gender,
		BiometricData: employee.BiometricData,
		Image:         employee.Image,
		CreatedAt:     employee.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     employee.UpdatedAt.Format(time.RFC3339),
	}
}

func employeesToResponse(employees []domain.Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = employeeToResponse(employees[i])
	}
	return resp
}

type employeeRequest struct {
	DepartmentID  *int64 `json:"department_id"`
	UniqueID      string `json:"unique_id" binding:"required"`
	Lastname      string `json:"lastname" binding:"required"`
	Firstname     string `json:"firstname" binding:"required"`
	Middlename    string `json:"middlename"`
	DisplayName   string `json:"display_name" binding:"required"`
	Age           *int   `json:"age"`
	Gender        string `json:"gender"`
	BiometricData string `json:"biometric_data"`
	Image         []byte `json:"image"`
}

func (r employeeRequest) toParams() service.EmployeeParams {
	return service.EmployeeParams{
		DepartmentID:  r.DepartmentID,
		UniqueID:      r.UniqueID,
		Lastname:      r.Lastname,
		Firstname:     r.Firstname,
		Middlename:    r.Middlename,
		DisplayName:   r.DisplayName,
		Age:           r.Age,
		Gender:        r.Gender,
		BiometricData: r.BiometricData,
		Image:         r.Image,
	}
}

func (h *Handler) listEmployees(c *gin.Context) {
	employees, err := h.employees.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, employeesToResponse(employees))
}

func (h *Handler) searchEmployees(c *gin.Context) {
	employees, err := h.employees.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, employeesToResponse(employees))
}

func (h *Handler) getEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	employee, err := h.employees.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if employee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	c.JSON(http.StatusOK, employeeToResponse(*employee))
}

func (h *Handler) getEmployeeByUniqueID(c *gin.Context) {
	employee, err := h.employees.GetByUniqueID(c.Request.Context(), c.Param("uid"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if employee == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "employee not found"})
		return
	}

	c.JSON(http.StatusOK, employeeToResponse(*employee))
}

func (h *Handler) createEmployee(c *gin.Context) {
	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.employees.Create(c.Request.Context(), req.toParams())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !outcome.Success {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": outcome.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":     true,
		"employee_id": outcome.ID,
		"message":     outcome.Message,
	})
}

func (h *Handler) updateEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req employeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.employees.Update(c.Request.Context(), id, req.toParams())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !outcome.Success && outcome.Message == "Employee ID already exists" {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": outcome.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": outcome.Success, "message": outcome.Message})
}

func (h *Handler) deleteEmployee(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	outcome, err := h.employees.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": outcome.Success, "message": outcome.Message})
}
