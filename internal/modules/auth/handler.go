package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"solarops/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
	rg.POST("/auth/login", h.login)
	rg.POST("/auth/verify", h.verifyOTP)
	rg.POST("/auth/refresh", h.refresh)
}

func (h *Handler) register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "Email already registered")
			return
		}
		response.Internal(c, "Registration failed")
		return
	}
	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	if err := h.service.Login(c.Request.Context(), req); err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Internal(c, "Login failed")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Verification code sent"})
}

func (h *Handler) verifyOTP(c *gin.Context) {
	var req VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	pair, user, err := h.service.VerifyOTP(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "INVALID_OTP", "Invalid or expired verification code")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tokens": pair, "user": user})
}

func (h *Handler) refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidInput(c, "Invalid request body")
		return
	}

	pair, err := h.service.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid refresh token")
		return
	}
	response.Success(c, http.StatusOK, pair)
}
