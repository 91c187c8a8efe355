package insights

import (
	"github.com/gin-gonic/gin"

	"SereneAI/controllers"
)

// Register registers mood insight routes (protected)
func Register(g *gin.RouterGroup, app *controllers.App) {
	g.GET("/insights/mood", controllers.MoodHistory(app))
	g.GET("/insights/patterns", controllers.Patterns(app))
	g.GET("/insights/report", controllers.WeeklyReport(app))
	g.GET("/insights/feedback", controllers.Feedback(app))
	g.GET("/insights/habits", controllers.HabitSuggestions(app))
}
