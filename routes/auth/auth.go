package auth

import (
	"github.com/gin-gonic/gin"

	"SereneAI/controllers"
)

// RegisterPublic registers public auth routes: /register, /login
func RegisterPublic(r *gin.Engine, app *controllers.App) {
	r.POST("/register", controllers.Register(app))
	r.POST("/login", controllers.Login(app))
}

// RegisterProtected registers protected auth routes (e.g. logout)
func RegisterProtected(g *gin.RouterGroup, app *controllers.App) {
	g.POST("/logout", controllers.Logout())
}
