package server

import (
	"fmt"
	"net/http"

	"quizapp/internal/auth"
	"quizapp/internal/config"
	"quizapp/internal/database"
	"quizapp/internal/handlers"
	"quizapp/internal/middleware"
	"quizapp/internal/models"
	"quizapp/web"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const sessionName = "quiz_session"

func NewRouter(cfg *config.Config, store database.Store, creds *auth.CredentialStore) (*gin.Engine, error) {
	r := gin.Default()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("server: templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	sessStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   int(cfg.SessionMaxAge.Seconds()),
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions(sessionName, sessStore))

	r.Use(middleware.InjectUser(cfg.SessionMaxAge))

	h := handlers.New(store, creds)

	// AUTH
	r.GET("/login", h.ShowLogin)
	r.POST("/login", h.Login)
	r.GET("/signup", h.ShowSignup)
	r.POST("/signup", h.Signup)

	authed := r.Group("/")
	authed.Use(middleware.RequireLogin())

	authed.GET("/", h.IndexPage)
	authed.GET("/logout", h.Logout)

	// teacher
	authed.GET("/upload",
		middleware.RequireRole(models.RoleTeacher),
		h.ShowUpload,
	)
	authed.POST("/upload",
		middleware.RequireRole(models.RoleTeacher),
		h.Upload,
	)

	// student
	authed.GET("/quiz",
		middleware.RequireRole(models.RoleStudent),
		h.ShowQuiz,
	)
	authed.POST("/quiz",
		middleware.RequireRole(models.RoleStudent),
		h.SubmitQuiz,
	)

	r.GET("/health", h.Health)

	return r, nil
}
