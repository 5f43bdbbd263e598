package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"attendance-server/internal/domain"
	"attendance-server/internal/service"
)

type UserResponse struct {
	ID            int64  `json:"user_id"`
	Username      string `json:"username"`
	DisplayName   string `json:"display_name"`
	BiometricData string `json:"biometric_data,omitempty"`
	Image         string `json:"image,omitempty"`
	CreatedAt     string `json:"date_created"`
}

func userToResponse(user domain.User) UserResponse {
	return UserResponse{
		ID:            user.ID,
		Username:      user.Username,
		DisplayName:   user.DisplayName,
		BiometricData: user.BiometricData,
		Image:         user.Image,
		CreatedAt:     user.CreatedAt.Format(time.RFC3339),
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !outcome.Success {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": outcome.Message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": outcome.Message,
		"user":    userToResponse(*outcome.User),
	})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = userToResponse(users[i])
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) getUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	c.JSON(http.StatusOK, userToResponse(*user))
}

type createUserRequest struct {
	Username      string `json:"username" binding:"required"`
	Password      string `json:"password" binding:"required"`
	DisplayName   string `json:"display_name" binding:"required"`
	BiometricData string `json:"biometric_data"`
	Image         string `json:"image"`
}

func (h *Handler) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.users.Create(c.Request.Context(), service.CreateUserParams{
		Username:      req.Username,
		Password:      req.Password,
		DisplayName:   req.DisplayName,
		BiometricData: req.BiometricData,
		Image:         req.Image,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !outcome.Success {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": outcome.Message})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"user_id": outcome.ID,
		"message": outcome.Message,
	})
}

type updateUserRequest struct {
	DisplayName   string `json:"display_name" binding:"required"`
	BiometricData string `json:"biometric_data"`
	Image         string `json:"image"`
}

func (h *Handler) updateUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	outcome, err := h.users.Update(c.Request.Context(), id, service.UpdateUserParams{
		DisplayName:   req.DisplayName,
		BiometricData: req.BiometricData,
		Image:         req.Image,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": outcome.Success, "message": outcome.Message})
}

func (h *Handler) deleteUser(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	outcome, err := h.users.Delete(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": outcome.Success, "message": outcome.Message})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
