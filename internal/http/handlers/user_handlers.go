package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Okita-Damian/video-streaming-App/domain"
	"github.com/Okita-Damian/video-streaming-App/internal/http/middleware"
	"github.com/Okita-Damian/video-streaming-App/internal/services"
)

// UserHandlers handles user management HTTP requests
type UserHandlers struct {
	userRepo domain.UserRepository
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userRepo domain.UserRepository) *UserHandlers {
	return &UserHandlers{userRepo: userRepo}
}

// UpdateUserRequest carries optional profile changes
type UpdateUserRequest struct {
	FullName *string `json:"fullname" binding:"omitempty,min=2,max=60"`
	Email    *string `json:"email" binding:"omitempty,email"`
}

// List returns every account's public projection
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.userRepo.FindAll(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	public := make([]domain.PublicUser, 0, len(users))
	for i := range users {
		public = append(public, users[i].Public())
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": len(public),
		"data":    gin.H{"users": public},
	})
}

// Get returns one account's public projection
func (h *UserHandlers) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"user": user.Public()}})
}

// Update patches full name and email
func (h *UserHandlers) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(domain.NewValidationError("body", err.Error()))
		return
	}

	user, err := h.userRepo.FindByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = services.NormalizeEmail(*req.Email)
	}

	if err := h.userRepo.Update(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"user": user.Public()}})
}

// Delete removes an account by id
func (h *UserHandlers) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "user deleted"})
}

// DeleteMe removes the requester's own account
func (h *UserHandlers) DeleteMe(c *gin.Context) {
	id, ok := c.Get(middleware.CtxUserID)
	if !ok {
		c.Error(domain.ErrTokenInvalid)
		return
	}

	if err := h.userRepo.Delete(c.Request.Context(), id.(uint)); err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "account deleted"})
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, domain.NewValidationError("id", "must be a positive integer")
	}
	return uint(id), nil
}
