package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"video-hosting/pkg/auth"
	"video-hosting/pkg/database"
	"video-hosting/pkg/middleware"
	"video-hosting/pkg/models"
)

type UserHandler struct {
	store  UserStore
	tokens *auth.Manager
}

func NewUserHandler(store UserStore, tokens *auth.Manager) *UserHandler {
	return &UserHandler{store: store, tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields are required"})
		return
	}

	existing, err := h.store.GetByEmail(c.Request.Context(), req.Email)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		serverError(c, "Server Error", err)
		return
	}
	if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}

	user := &models.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := h.store.Insert(c.Request.Context(), user); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
			return
		}
		serverError(c, "Server Error", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully"})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	user, err := h.store.GetByEmail(c.Request.Context(), req.Email)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid credentials"})
		return
	}

	token, err := h.tokens.Sign(user.ID.Hex(), user.IsAdmin)
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

// Profile returns the caller's own record, password excluded. Protect has
// already loaded the user, but the record is re-read so a deletion between
// token issue and request shows up as a 404.
func (h *UserHandler) Profile(c *gin.Context) {
	current := middleware.CurrentUser(c)
	if current == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Not authorized, no token"})
		return
	}

	user, err := h.store.GetByID(c.Request.Context(), current.ID)
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// List is admin-only.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.store.List(c.Request.Context())
	if err != nil {
		serverError(c, "Server Error", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
