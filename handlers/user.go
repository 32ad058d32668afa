package handlers

import (
	"net/http"

	"schedly/models"
	"schedly/services/user"
	"schedly/utils"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes the account directory. List/update/delete of arbitrary
// accounts are wired behind the ADMIN role.
type UserHandler struct {
	Users user.UserService
}

func NewUserHandler(users user.UserService) *UserHandler {
	return &UserHandler{Users: users}
}

type updateUserRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	TzOffsetMin *int   `json:"tzOffsetMin"`
}

// Get returns one account's public view.
func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.Users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.Public())
}

// List returns all accounts, optionally filtered with ?role=BUSINESS.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context(), c.Query("role"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	out := make([]models.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	c.JSON(http.StatusOK, out)
}

// Update applies a partial profile update to the given account.
func (h *UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, user.CodeValidation, "Invalid request: "+err.Error())
		return
	}

	updated, err := h.Users.Update(c.Request.Context(), c.Param("id"), user.UpdateInput{
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
	c.JSON(http.StatusOK, updated.Public())
}

// Delete removes an account.
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.Users.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}
