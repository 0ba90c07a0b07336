package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/zoii/goblog/middleware"
	"github.com/zoii/goblog/utils"
)

// render writes an HTML page with the logged-in user and any pending flash
// messages injected, so every template sees the same ambient data.
func render(ctx *gin.Context, sessions *utils.SessionStore, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if user, ok := middleware.UserFrom(ctx); ok {
		data["User"] = user
	}
	data["Flashes"] = sessions.PopFlashes(ctx)
	ctx.HTML(status, name, data)
}

// renderError shows the error page. Expected failures never reach here; this
// is for missing records and store-level problems.
func renderError(ctx *gin.Context, sessions *utils.SessionStore, status int, message string) {
	render(ctx, sessions, status, "error.html", gin.H{
		"Status":  status,
		"Message": message,
	})
	ctx.Abort()
}
