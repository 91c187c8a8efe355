package chat

import (
	"github.com/gin-gonic/gin"

	"SereneAI/controllers"
	"SereneAI/middleware"
)

// Register registers chat routes (protected). Chat POSTs are rate
// limited since each one triggers model calls.
func Register(g *gin.RouterGroup, app *controllers.App) {
	g.POST("/chat", middleware.RateLimit(), controllers.SendMessage(app))
	g.POST("/chat/stream", middleware.RateLimit(), controllers.SendMessageStream(app))
}
