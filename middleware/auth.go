package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zoii/goblog/models"
	"github.com/zoii/goblog/repositories"
	"github.com/zoii/goblog/utils"
)

// ContextUserKey is the key used to store the authenticated user in Gin context.
const ContextUserKey = "current_user"

// CurrentUser resolves the session cookie to a user and stores it in the
// context when present. It never blocks the request; public pages use it to
// render the logged-in state.
func CurrentUser(sessions *utils.SessionStore, users repositories.UserRepository) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if s := sessions.Load(ctx); s != nil && s.UserID != 0 {
			if user, err := users.ByID(s.UserID); err == nil {
				ctx.Set(ContextUserKey, user)
			}
		}
		ctx.Next()
	}
}

// AuthRequired gates protected routes. Unauthenticated requests are redirected
// to the login page. Must be registered after CurrentUser.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if _, ok := UserFrom(ctx); !ok {
			ctx.Redirect(http.StatusFound, "/login")
			ctx.Abort()
			return
		}
		ctx.Next()
	}
}

// UserFrom returns the authenticated user stored by CurrentUser.
func UserFrom(ctx *gin.Context) (*models.User, bool) {
	v, ok := ctx.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
