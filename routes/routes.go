package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"SereneAI/controllers"
	"SereneAI/middleware"

	authRoutes "SereneAI/routes/auth"
	chatRoutes "SereneAI/routes/chat"
	insightRoutes "SereneAI/routes/insights"
	profileRoutes "SereneAI/routes/profile"
	sessionRoutes "SereneAI/routes/sessions"
	websocketRoutes "SereneAI/routes/websocket"
)

func RegisterRoutes(r *gin.Engine, app *controllers.App) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"msg": "companion backend running"})
	})

	websocketRoutes.Register(r, app)
	authRoutes.RegisterPublic(r, app)

	protected := r.Group("/")
	protected.Use(middleware.AuthMiddleware())
	authRoutes.RegisterProtected(protected, app)
	profileRoutes.Register(protected, app)
	chatRoutes.Register(protected, app)
	sessionRoutes.Register(protected, app)
	insightRoutes.Register(protected, app)
}
