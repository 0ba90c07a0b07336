package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/zoii/goblog/repositories"
	"github.com/zoii/goblog/utils"
)

// AuthController handles registration, login and logout with the classic
// form-post, flash-message, redirect flow.
type AuthController struct {
	users    repositories.UserRepository
	sessions *utils.SessionStore
}

// NewAuthController creates an AuthController.
func NewAuthController(users repositories.UserRepository, sessions *utils.SessionStore) *AuthController {
	return &AuthController{users: users, sessions: sessions}
}

type registerForm struct {
	Name     string `form:"name" binding:"required"`
	Email    string `form:"email" binding:"required,email"`
	Password string `form:"password" binding:"required,min=6"`
}

type loginForm struct {
	Email    string `form:"email" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// ShowRegister renders the registration form.
func (a *AuthController) ShowRegister(ctx *gin.Context) {
	render(ctx, a.sessions, http.StatusOK, "register.html", nil)
}

// Register creates a new account. A duplicate email sends the visitor to the
// login page instead, matching the "already registered" expectation.
func (a *AuthController) Register(ctx *gin.Context) {
	var form registerForm
	if err := ctx.ShouldBind(&form); err != nil {
		a.sessions.Flash(ctx, "Please provide a name, a valid email and a password of at least 6 characters.", "error")
		ctx.Redirect(http.StatusFound, "/register")
		return
	}

	_, err := a.users.Register(strings.TrimSpace(form.Name), strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			a.sessions.Flash(ctx, "Email already registered. Please log in.", "error")
			ctx.Redirect(http.StatusFound, "/login")
			return
		}
		utils.Sugar.Errorw("registration failed", "error", err)
		renderError(ctx, a.sessions, http.StatusInternalServerError, "Could not create your account.")
		return
	}

	ctx.Redirect(http.StatusFound, "/login")
}

// ShowLogin renders the login form.
func (a *AuthController) ShowLogin(ctx *gin.Context) {
	render(ctx, a.sessions, http.StatusOK, "login.html", nil)
}

// Login verifies credentials and binds the session to the user id.
func (a *AuthController) Login(ctx *gin.Context) {
	var form loginForm
	if err := ctx.ShouldBind(&form); err != nil {
		a.sessions.Flash(ctx, "Please enter your email and password.", "error")
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	user, err := a.users.Authenticate(strings.TrimSpace(form.Email), form.Password)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserNotFound):
			a.sessions.Flash(ctx, "Email not found, try another one", "error")
		case errors.Is(err, repositories.ErrBadPassword):
			a.sessions.Flash(ctx, "Incorrect password", "error")
		default:
			utils.Sugar.Errorw("login failed", "error", err)
			renderError(ctx, a.sessions, http.StatusInternalServerError, "Could not log you in.")
			return
		}
		ctx.Redirect(http.StatusFound, "/login")
		return
	}

	s := a.sessions.Ensure(ctx)
	s.UserID = user.ID
	a.sessions.Save(s)
	ctx.Redirect(http.StatusFound, "/")
}

// Logout invalidates the current session. Idempotent.
func (a *AuthController) Logout(ctx *gin.Context) {
	a.sessions.Destroy(ctx)
	ctx.Redirect(http.StatusFound, "/")
}
