package routes

import (
	"testing"

	"github.com/gin-gonic/gin"

	"SereneAI/controllers"
)

func TestRegisterRoutesWiresAllEndpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, controllers.NewApp(nil))

	want := map[string]bool{
		"POST /register":                  false,
		"POST /login":                     false,
		"POST /logout":                    false,
		"POST /chat":                      false,
		"POST /chat/stream":               false,
		"GET /ws/chat":                    false,
		"GET /profile":                    false,
		"PUT /profile":                    false,
		"GET /sessions":                   false,
		"GET /sessions/:session_id":       false,
		"POST /sessions/:session_id/end":  false,
		"DELETE /sessions/:session_id":    false,
		"GET /insights/mood":              false,
		"GET /insights/patterns":          false,
		"GET /insights/report":            false,
		"GET /insights/feedback":          false,
		"GET /insights/habits":            false,
	}
	for _, ri := range r.Routes() {
		key := ri.Method + " " + ri.Path
		if _, ok := want[key]; ok {
			want[key] = true
		}
	}
	for key, seen := range want {
		if !seen {
			t.Fatalf("route %s not registered", key)
		}
	}
}
