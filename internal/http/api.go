package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"attendance-server/internal/scanner"
	"attendance-server/internal/service"
	"attendance-server/internal/storage"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.UserService
	employees   service.EmployeeService
	departments service.DepartmentService
	holidays    service.HolidayService
	storage     storage.Service
	scanner     *scanner.Scanner
	uploadsRoot string
	logger      *logrus.Logger
}

func NewHandler(
	users service.UserService,
	employees service.EmployeeService,
	departments service.DepartmentService,
	holidays service.HolidayService,
	store storage.Service,
	scan *scanner.Scanner,
	uploadsRoot string,
	logger *logrus.Logger,
) *Handler {
	return &Handler{
		users:       users,
		employees:   employees,
		departments: departments,
		holidays:    holidays,
		storage:     store,
		scanner:     scan,
		uploadsRoot: uploadsRoot,
		logger:      logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	if h.logger != nil {
		router.Use(requestLogger(h.logger))
	}

	router.GET("/", h.info)
	if h.uploadsRoot != "" {
		router.Static("/uploads", h.uploadsRoot)
	}

	api := router.Group("/api")
	{
		api.POST("/auth/login", h.login)
		api.GET("/auth/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Auth API is working"})
		})

		api.GET("/users", h.listUsers)
		api.GET("/users/:id", h.getUser)
		api.POST("/users", h.createUser)
		api.PUT("/users/:id", h.updateUser)
		api.DELETE("/users/:id", h.deleteUser)

		api.GET("/employees", h.listEmployees)
		api.GET("/employees/search", h.searchEmployees)
		api.GET("/employees/unique/:uid", h.getEmployeeByUniqueID)
		api.GET("/employees/:id", h.getEmployee)
		api.POST("/employees", h.createEmployee)
		api.PUT("/employees/:id", h.updateEmployee)
		api.DELETE("/employees/:id", h.deleteEmployee)

		api.GET("/departments", h.listDepartments)
		api.GET("/departments/:id", h.getDepartment)
		api.POST("/departments", h.createDepartment)
		api.PUT("/departments/:id", h.updateDepartment)
		api.DELETE("/departments/:id", h.deleteDepartment)

		api.GET("/holidays", h.listHolidays)
		api.GET("/holidays/:id", h.getHoliday)
		api.POST("/holidays", h.createHoliday)
		api.PUT("/holidays/:id", h.updateHoliday)
		api.DELETE("/holidays/:id", h.deleteHoliday)

		api.POST("/uploads", h.uploadImage)

		api.GET("/scanner/status", h.scannerStatus)
		api.POST("/scanner/capture", h.scannerCapture)
	}
}

func (h *Handler) info(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Attendance Management System API",
		"version": "1.0.0",
		"endpoints": []string{
			"/api/auth/login",
			"/api/auth/test",
			"/api/users",
			"/api/employees",
			"/api/departments",
			"/api/holidays",
			"/api/uploads",
			"/api/scanner/status",
		},
	})
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Info("request")
	}
}
