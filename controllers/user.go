package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/aurahealth/aura-backend/libs"
	"github.com/aurahealth/aura-backend/model"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	JWTSecret string
	Log       *zap.SugaredLogger
}

func (h *AuthHandler) Register(c *gin.Context) {
	type Body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		Name     string `json:"name"`
	}

	var body Body
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	exists, err := libs.EmailExists(ctx, body.Email)
	if err != nil {
		h.Log.Errorw("failed to check email existence", "email", body.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}
	if exists {
		c.JSON(http.StatusConflict, gin.H{"message": "This email address is already registered"})
		return
	}

	hashed, err := libs.HashPassword(body.Password)
	if err != nil {
		h.Log.Errorw("failed to hash password", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	user := &model.User{
		Email:    body.Email,
		Password: hashed,
		Name:     body.Name,
	}
	newID, err := libs.CreateUser(ctx, user)
	if err != nil {
		h.Log.Errorw("failed to create user", "email", body.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Something went wrong"})
		return
	}

	h.Log.Infow("user registered", "userId", newID.Hex())
	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	type Body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var body Body
	if err := c.ShouldBindJSON(&body); err != nil || body.Email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := libs.FindUserByEmail(ctx, body.Email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}
	if !libs.CheckPasswordHash(body.Password, user.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		return
	}

	token, err := libs.GenerateJWT(user.ID.Hex(), h.JWTSecret)
	if err != nil {
		h.Log.Errorw("failed to generate token", "userId", user.ID.Hex(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Could not generate token"})
		return
	}

	h.Log.Infow("user logged in", "userId", user.ID.Hex())
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
			"name":  user.Name,
		},
	})
}

// Logout is stateless: the client discards the bearer token.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := libs.FindUserByID(ctx, c.GetString("userId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":    user.ID.Hex(),
			"email": user.Email,
			"name":  user.Name,
		},
	})
}
