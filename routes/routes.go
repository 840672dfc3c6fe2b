package routes

import (
	"net/http"
	"time"

	"folio/handlers"
	"folio/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterScheduleRoutes registers all endpoints for the call-booking flow.
func RegisterScheduleRoutes(r *gin.Engine, h *handlers.SchedulingHandler) {
	schedule := r.Group("/api/schedule")
	{
		schedule.POST("/session", h.OpenSession)
		schedule.GET("/session/:sessionID", h.GetSession)
		schedule.GET("/session/:sessionID/week", h.GetWeek)
		schedule.PUT("/session/:sessionID/date", h.SelectDate)
		schedule.PUT("/session/:sessionID/time", h.SelectTime)
		schedule.POST("/session/:sessionID/submit", h.Submit)
		schedule.POST("/session/:sessionID/retry", h.Retry)
		schedule.POST("/session/:sessionID/back", h.Back)
		schedule.DELETE("/session/:sessionID", h.CloseSession)
	}
}

// RegisterContentRoutes registers the read-only portfolio content endpoints.
func RegisterContentRoutes(r *gin.Engine, h *handlers.ContentHandler) {
	content := r.Group("/api/content")
	{
		content.GET("", h.GetPortfolio)
		content.GET("/profile", h.GetProfile)
		content.GET("/projects", h.GetProjects)
		content.GET("/experience", h.GetExperience)
		content.GET("/testimonials", h.GetTestimonials)
	}
}

// RegisterHealthRoute exposes the periodic health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, utils.GetHealthStatus())
	})
}

// RegisterRoutes wires CORS and all route groups.
func RegisterRoutes(r *gin.Engine, sched *handlers.SchedulingHandler, content *handlers.ContentHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterScheduleRoutes(r, sched)
	RegisterContentRoutes(r, content)
	RegisterHealthRoute(r)
}
