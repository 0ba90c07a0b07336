package routes

import (
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/zoii/goblog/config"
	"github.com/zoii/goblog/controllers"
	"github.com/zoii/goblog/middleware"
	"github.com/zoii/goblog/repositories"
	"github.com/zoii/goblog/utils"
)

// SetupRouter wires repositories, middlewares, and controllers into a gin
// engine. Everything the handlers need is constructed here once and injected;
// there is no ambient application state.
func SetupRouter(db *gorm.DB, cfg config.AppConfig) *gin.Engine {
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	if cfg.GinPath != "" {
		if gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress); err == nil {
			r.Use(utils.Ginzap(gl, time.RFC3339, true))
			r.Use(utils.RecoveryWithZap(gl, false))
		} else {
			r.Use(gin.Recovery())
		}
	} else {
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.SetFuncMap(template.FuncMap{
		"gravatar": utils.AvatarURL,
		// post bodies are sanitized at write time
		"safe": func(s string) template.HTML { return template.HTML(s) },
	})
	r.LoadHTMLGlob(cfg.TemplateGlob)
	r.Static("/static", cfg.StaticDir)

	users := repositories.NewUserRepository(db)
	posts := repositories.NewPostRepository(db)
	comments := repositories.NewCommentRepository(db)

	sessions := utils.NewSessionStore(cfg.SessionSecret, time.Duration(cfg.SessionTTLHours)*time.Hour, utils.NewRedis(cfg))

	r.Use(middleware.CurrentUser(sessions, users))

	authController := controllers.NewAuthController(users, sessions)
	blogController := controllers.NewBlogController(posts, comments, sessions)

	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", blogController.Index)
	r.GET("/about", blogController.About)
	r.GET("/contact", blogController.Contact)
	r.GET("/post/:id", blogController.ShowPost)
	// the handler itself turns unauthenticated submissions into a login redirect
	r.POST("/post/:id", blogController.AddComment)

	credentials := r.Group("")
	credentials.Use(middleware.RateLimit(cfg.RateLimitPerMinute))
	credentials.GET("/register", authController.ShowRegister)
	credentials.POST("/register", authController.Register)
	credentials.GET("/login", authController.ShowLogin)
	credentials.POST("/login", authController.Login)

	protected := r.Group("")
	protected.Use(middleware.AuthRequired())
	protected.GET("/logout", authController.Logout)
	protected.GET("/new-post", blogController.NewPost)
	protected.POST("/new-post", blogController.CreatePost)
	protected.GET("/edit-post/:id", blogController.EditPost)
	protected.POST("/edit-post/:id", blogController.UpdatePost)
	protected.GET("/delete/:id", blogController.DeletePost)

	r.NoRoute(func(ctx *gin.Context) {
		ctx.HTML(http.StatusNotFound, "error.html", gin.H{
			"Status":  http.StatusNotFound,
			"Message": "Page not found.",
		})
	})

	return r
}
