package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/clinic-readiness-api/internal/middleware"
)

// Handlers groups the HTTP handlers mounted under the API prefix.
type Handlers struct {
	Children    *ChildHandler
	Assessments *AssessmentHandler
	Goals       *GoalHandler
	Behavior    *BehaviorHandler
	Readiness   *ReadinessHandler
}

// RegisterRoutes mounts every clinician-scoped route on group.
func RegisterRoutes(group *gin.RouterGroup, h Handlers) {
	group.Use(middleware.Clinician(), middleware.WithResponseMeta())

	group.GET("/dashboard", h.Readiness.Dashboard)

	children := group.Group("/children")
	children.GET("", h.Children.List)
	children.POST("", h.Children.Create)
	children.GET("/:id", h.Children.Get)
	children.DELETE("/:id", h.Children.Delete)

	children.GET("/:id/questions", h.Assessments.Questions)
	children.GET("/:id/assessments", h.Assessments.List)
	children.PUT("/:id/assessments/draft/responses", h.Assessments.SetResponse)
	children.POST("/:id/assessments/finalize", h.Assessments.Finalize)

	children.GET("/:id/goals", h.Goals.List)
	children.GET("/:id/goals/archive", h.Goals.Archive)
	children.PATCH("/:id/goals/:goalId", h.Goals.Update)
	children.PUT("/:id/goals/:goalId/status", h.Goals.SetStatus)
	children.POST("/:id/goals/:goalId/sessions", h.Goals.RecordSession)

	children.POST("/:id/behaviors", h.Behavior.RecordBehavior)
	children.GET("/:id/behaviors", h.Behavior.ListBehavior)
	children.POST("/:id/reinforcers", h.Behavior.RecordReinforcer)
	children.GET("/:id/reinforcers/top", h.Behavior.TopReinforcers)

	children.GET("/:id/readiness", h.Readiness.Child)
	children.GET("/:id/readiness/history", h.Readiness.History)
}
