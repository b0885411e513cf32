package handlers

import (
	"errors"
	"log"
	"net/http"

	"quizapp/internal/auth"
	"quizapp/internal/flash"
	"quizapp/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// landing is where each role goes right after logging in.
var landing = map[models.UserRole]string{
	models.RoleTeacher: "/upload",
	models.RoleStudent: "/quiz",
}

func (h *Handler) ShowLogin(c *gin.Context) {
	renderLogin(c, http.StatusOK, "", auth.LoginForm{})
}

func renderLogin(c *gin.Context, status int, msg string, form auth.LoginForm) {
	render(c, status, "login.html", gin.H{
		"Title":     "Log in",
		"error":     msg,
		"username":  form.Username,
		"user_type": form.UserType,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var form auth.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		renderLogin(c, http.StatusBadRequest, "Invalid form data", form)
		return
	}

	if err := form.Validate(); err != nil {
		renderLogin(c, http.StatusBadRequest, err.Error(), form)
		return
	}

	// an unknown user type simply never matches a stored role
	user, err := h.creds.Authenticate(c.Request.Context(), form.Username, form.Password, models.UserRole(form.UserType))
	if errors.Is(err, auth.ErrInvalidCredentials) {
		renderLogin(c, http.StatusUnauthorized, "Invalid username, password, or user type", form)
		return
	}
	if err != nil {
		log.Printf("login %q: %v", form.Username, err)
		renderLogin(c, http.StatusInternalServerError, genericError, form)
		return
	}

	if err := auth.CreateSession(sessions.Default(c), user); err != nil {
		log.Printf("failed to save session for %q: %v", user.Username, err)
		renderLogin(c, http.StatusInternalServerError, genericError, form)
		return
	}

	flash.Add(c, flash.Success, "Welcome back, "+user.Username+"!")
	dest, ok := landing[user.Role]
	if !ok {
		dest = "/"
	}
	c.Redirect(http.StatusFound, dest)
}

func (h *Handler) ShowSignup(c *gin.Context) {
	renderSignup(c, http.StatusOK, "", auth.SignupForm{})
}

func renderSignup(c *gin.Context, status int, msg string, form auth.SignupForm) {
	render(c, status, "signup.html", gin.H{
		"Title":     "Sign up",
		"error":     msg,
		"username":  form.Username,
		"user_type": form.UserType,
	})
}

func (h *Handler) Signup(c *gin.Context) {
	var form auth.SignupForm
	if err := c.ShouldBind(&form); err != nil {
		renderSignup(c, http.StatusBadRequest, "Invalid form data", form)
		return
	}

	role, err := form.Validate()
	if err != nil {
		renderSignup(c, http.StatusBadRequest, err.Error(), form)
		return
	}

	_, err = h.creds.CreateUser(c.Request.Context(), form.Username, form.Password, role)
	if errors.Is(err, auth.ErrDuplicateUsername) {
		renderSignup(c, http.StatusConflict, "Username already exists", form)
		return
	}
	if err != nil {
		log.Printf("signup %q: %v", form.Username, err)
		renderSignup(c, http.StatusInternalServerError, genericError, form)
		return
	}

	flash.Add(c, flash.Success, "Account created successfully! Please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) Logout(c *gin.Context) {
	if err := auth.DestroySession(sessions.Default(c)); err != nil {
		log.Printf("failed to clear session: %v", err)
	}
	flash.Add(c, flash.Success, "You have been logged out successfully")
	c.Redirect(http.StatusFound, "/")
}
