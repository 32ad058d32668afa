package handlers

import (
	"net/http"

	"schedly/services/user"
	"schedly/utils"

	"github.com/gin-gonic/gin"
)

// AuthHandler exposes sign-up, sign-in and session endpoints.
type AuthHandler struct {
	Users user.UserService
}

func NewAuthHandler(users user.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

type signUpRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
	Role        string `json:"role"`
	TzOffsetMin int    `json:"tzOffsetMin"`
}

type signInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers an account and returns its public view.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, user.CodeValidation, "Invalid request: "+err.Error())
		return
	}

	created, err := h.Users.Register(c.Request.Context(), user.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		Password:    req.Password,
		Role:        req.Role,
		TzOffsetMin: req.TzOffsetMin,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created.Public())
}

// SignIn issues a bearer token for valid credentials.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, user.CodeValidation, "Invalid request: "+err.Error())
		return
	}

	token, u, err := h.Users.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": u.Public()})
}

// Me returns the authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// SignOut revokes the current token.
func (h *AuthHandler) SignOut(c *gin.Context) {
	if err := h.Users.SignOut(c.Request.Context(), currentUserID(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}
