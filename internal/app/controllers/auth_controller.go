package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deniz/careerhub/internal/app/forms"
	"github.com/deniz/careerhub/internal/app/models"
	"github.com/deniz/careerhub/internal/app/services"
	"github.com/deniz/careerhub/internal/middleware"
	"github.com/deniz/careerhub/internal/pkg/apperrors"
	"github.com/deniz/careerhub/internal/pkg/auth"
	"github.com/deniz/careerhub/internal/pkg/flash"
)

// SessionCookie configures how the signed-in identity is stored on the client.
type SessionCookie struct {
	Name   string
	MaxAge int
	Secure bool
}

// AuthController handles the landing page, registration and the session
// lifecycle. Login success routes by role: lecturers land on management,
// everyone else on the listing.
type AuthController struct {
	authService *services.AuthService
	sessions    *auth.SessionService
	cookie      SessionCookie
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService, sessions *auth.SessionService, cookie SessionCookie) *AuthController {
	return &AuthController{
		authService: authService,
		sessions:    sessions,
		cookie:      cookie,
	}
}

// Home renders the public landing page
func (ctl *AuthController) Home(c *gin.Context) {
	render(c, http.StatusOK, "home.html", nil)
}

// ShowRegister renders the registration form
func (ctl *AuthController) ShowRegister(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Form": forms.RegisterForm{Role: "student"}})
}

// Register handles account creation with a role selection
func (ctl *AuthController) Register(c *gin.Context) {
	var form forms.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	user, err := ctl.authService.Register(c.Request.Context(), services.RegisterInput{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password1,
		Role:     models.ParseRole(form.Role),
	})
	if err != nil {
		render(c, http.StatusBadRequest, "register.html", gin.H{
			"Form":   form,
			"Errors": registrationErrors(err),
		})
		return
	}

	// Sign the new account in immediately and route by role.
	if err := ctl.signIn(c, user); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	flash.Set(c, flash.Success, "Welcome! Your account has been created.")
	c.Redirect(http.StatusSeeOther, middleware.RoleHome(user.Role))
}

// registrationErrors maps service-level registration failures onto form fields
func registrationErrors(err error) map[string]string {
	switch {
	case errors.Is(err, apperrors.ErrUsernameAlreadyExists):
		return map[string]string{"username": "This username is already taken."}
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return map[string]string{"email": "This email is already registered."}
	case errors.Is(err, apperrors.ErrValidationFailed):
		return map[string]string{"form": err.Error()}
	default:
		return map[string]string{"form": "Registration failed. Please try again."}
	}
}

// ShowLogin renders the login form
func (ctl *AuthController) ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Form": forms.LoginForm{}})
}

// Login handles the sign-in form
func (ctl *AuthController) Login(c *gin.Context) {
	var form forms.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"Form":   form,
			"Errors": forms.FieldErrors(err),
		})
		return
	}

	user, err := ctl.authService.Login(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidCredentials) {
			render(c, http.StatusUnauthorized, "login.html", gin.H{
				"Form":   form,
				"Errors": map[string]string{"form": "Invalid username or password."},
			})
			return
		}
		middleware.HandlePageError(c, err)
		return
	}

	if err := ctl.signIn(c, user); err != nil {
		middleware.HandlePageError(c, err)
		return
	}

	c.Redirect(http.StatusSeeOther, middleware.RoleHome(user.Role))
}

// Logout clears the session cookie
func (ctl *AuthController) Logout(c *gin.Context) {
	c.SetCookie(ctl.cookie.Name, "", -1, "/", "", ctl.cookie.Secure, true)
	flash.Set(c, flash.Info, "You have been signed out.")
	c.Redirect(http.StatusSeeOther, "/accounts/login/")
}

// signIn issues a session token and sets the cookie
func (ctl *AuthController) signIn(c *gin.Context, user *models.User) error {
	token, _, err := ctl.sessions.GenerateToken(user)
	if err != nil {
		return err
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(ctl.cookie.Name, token, ctl.cookie.MaxAge, "/", "", ctl.cookie.Secure, true)
	return nil
}
