package handlers

import (
	"net/http"

	"inkwell/internal/apperr"
	"inkwell/internal/services"
	"inkwell/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{
		auth: services.NewAuthService(),
	}
}

// SignUp handles POST /api/user/signup. The body is plain text for
// compatibility with the original frontend.
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req services.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid signup request")
		return
	}

	if _, err := h.auth.SignUp(req); err != nil {
		if apperr.KindOf(err) == apperr.KindConflict {
			c.String(http.StatusConflict, err.Error())
			return
		}
		c.String(http.StatusInternalServerError, "Registration failed: "+err.Error())
		return
	}

	c.String(http.StatusCreated, "User registered successfully!")
}

// SignIn handles POST /api/auth/signin. Success establishes the session.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req services.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, "Invalid email or password")
		return
	}

	user, err := h.auth.SignIn(req)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindInvalid {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		c.String(http.StatusInternalServerError, "Authentication failed: "+err.Error())
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	if err := session.Save(); err != nil {
		c.String(http.StatusInternalServerError, "Authentication failed: "+err.Error())
		return
	}

	c.String(http.StatusOK, "Authentication successful")
}

// SignOut handles POST /api/auth/signout.
func (h *AuthHandler) SignOut(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.String(http.StatusOK, "Signed out")
}

// GetUserNames handles GET /api/auth/getUserNames?userIds=1,2,3 and returns
// a map of id to username for the IDs that exist.
func (h *AuthHandler) GetUserNames(c *gin.Context) {
	ids := utils.ParseIDList(c.Query("userIds"))

	names, err := h.auth.UsernamesByIDs(ids)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, names)
}
