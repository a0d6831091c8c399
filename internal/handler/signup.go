package handler

import (
	"errors"
	"net/http"

	"github.com/cleancity/api/internal/limiter"
	"github.com/cleancity/api/internal/middleware"
	"github.com/cleancity/api/internal/model"
	"github.com/cleancity/api/internal/repository"
	"github.com/cleancity/api/internal/route"
	"github.com/cleancity/api/internal/validator"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	duplicateEmailMessage = "An account with this email already exists. Please log in."
	accountCreatedMessage = "Account created! You can now log in and report issues."
)

type SignupHandler struct {
	users   *repository.UserRepository
	limiter *limiter.Limiter
	logger  *zap.Logger
}

func NewSignupHandler(users *repository.UserRepository, l *limiter.Limiter, logger *zap.Logger) *SignupHandler {
	return &SignupHandler{users: users, limiter: l, logger: logger.Named("signup")}
}

type SignupRequest struct {
	Name     string `json:"name" form:"name" binding:"required"`
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// Signup registers a resident. Both outcomes send the browser home; a
// duplicate email writes nothing.
func (h *SignupHandler) Signup(c *gin.Context) {
	if !allow(c, h.limiter, limiter.ActionSignup) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many sign-up attempts. Please try again later."})
		return
	}

	var req SignupRequest
	if err := c.ShouldBind(&req); err != nil {
		middleware.RecordSignup("invalid")
		writeInputError(c, bindError(err, "invalid request body"))
		return
	}

	input, err := validator.ValidateSignup(model.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		middleware.RecordSignup("invalid")
		writeInputError(c, err)
		return
	}

	user, err := h.users.Register(c.Request.Context(), input)
	switch {
	case errors.Is(err, repository.ErrDuplicateEmail):
		middleware.RecordSignup("duplicate")
		c.JSON(http.StatusConflict, gin.H{
			"error":    duplicateEmailMessage,
			"message":  duplicateEmailMessage,
			"redirect": route.Home.Fragment(),
		})
		return
	case err != nil:
		middleware.RecordSignup("error")
		h.logger.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	middleware.RecordSignup("created")
	c.JSON(http.StatusCreated, gin.H{
		"message":  accountCreatedMessage,
		"redirect": route.Home.Fragment(),
		"user":     gin.H{"name": user.Name, "email": user.Email, "role": user.Role},
	})
}
