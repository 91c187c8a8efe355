package websocket

import (
	"github.com/gin-gonic/gin"

	"SereneAI/controllers"
	"SereneAI/middleware"
)

func Register(r *gin.Engine, app *controllers.App) {
	r.GET("/ws/chat", middleware.RateLimit(), controllers.ChatWS(app))
}
