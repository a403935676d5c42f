package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/meltemk/skyticket/internal/accounts"
	"github.com/meltemk/skyticket/internal/domain"
)

type AuthHandler struct {
	service accounts.UseCase
}

type registerRequest struct {
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	GovernmentID string `json:"tc"`
	Phone        string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthHandler(service accounts.UseCase) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(router *gin.RouterGroup) {
	router.POST("/register", h.register)
	router.POST("/login", h.login)
	router.POST("/logout", h.logout)
}

func (h *AuthHandler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	err := h.service.Register(c.Request.Context(), domain.UserAccount{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Password:     req.Password,
		GovernmentID: req.GovernmentID,
		Phone:        req.Phone,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "registered"})
}

func (h *AuthHandler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.service.Login(c.Request.Context(), sessionID(c), req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"email": user.Email, "firstName": user.FirstName, "lastName": user.LastName})
}

func (h *AuthHandler) logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), sessionID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}
